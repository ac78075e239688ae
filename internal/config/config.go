package config

import "github.com/OCharnyshevich/voxelgen/pkg/world/gen"

// Config holds the world generation job configuration.
type Config struct {
	Seed      int64  `json:"seed" yaml:"seed"`
	Generator string `json:"generator" yaml:"generator"` // "default" or "flat"
	Radius    int    `json:"radius" yaml:"radius"`       // chunks around the center
	CenterX   int    `json:"center_x" yaml:"center_x"`   // center chunk
	CenterZ   int    `json:"center_z" yaml:"center_z"`
	Workers   int    `json:"workers" yaml:"workers"` // 0 = one per CPU
	OutDir    string `json:"out_dir" yaml:"out_dir"`
	// Preset is a go-getter source for a config file merged over the
	// defaults, e.g. "git::https://example.com/presets.git//alpine.yaml".
	Preset string `json:"preset,omitempty" yaml:"preset,omitempty"`

	Terrain gen.Options `json:"terrain" yaml:"terrain"`

	// fields holds the keys a loaded file set, terrain keys as
	// "terrain.<key>". Nil for configs built in code, where non-zero means set.
	fields map[string]bool
}

func (c *Config) has(key string, nonZero bool) bool {
	if c.fields == nil {
		return nonZero
	}
	return c.fields[key]
}

func (c *Config) mark(key string) {
	if c.fields == nil {
		c.fields = make(map[string]bool)
	}
	c.fields[key] = true
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Generator: "default",
		Radius:    4,
		OutDir:    "./world",
		Terrain:   gen.DefaultOptions(),
	}
}

// Merge applies file-loaded config values into cfg, but only for fields
// that were NOT explicitly set via CLI flags. explicitFlags contains the
// flag names that were explicitly provided on the command line. Seed,
// center and cave_open_to_surface are taken only when the file sets them;
// other zero fields in the file keep cfg's value.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	if !explicitFlags["seed"] && fromFile.has("seed", fromFile.Seed != 0) {
		cfg.Seed = fromFile.Seed
		cfg.mark("seed")
	}
	if !explicitFlags["generator"] && fromFile.Generator != "" {
		cfg.Generator = fromFile.Generator
	}
	if !explicitFlags["radius"] && fromFile.Radius > 0 {
		cfg.Radius = fromFile.Radius
	}
	if !explicitFlags["x"] && fromFile.has("center_x", fromFile.CenterX != 0) {
		cfg.CenterX = fromFile.CenterX
		cfg.mark("center_x")
	}
	if !explicitFlags["z"] && fromFile.has("center_z", fromFile.CenterZ != 0) {
		cfg.CenterZ = fromFile.CenterZ
		cfg.mark("center_z")
	}
	if !explicitFlags["workers"] && fromFile.Workers > 0 {
		cfg.Workers = fromFile.Workers
	}
	if !explicitFlags["out"] && fromFile.OutDir != "" {
		cfg.OutDir = fromFile.OutDir
	}
	cfg.Terrain = mergeOptions(cfg.Terrain, fromFile.Terrain)
	if fromFile.has("terrain.cave_open_to_surface", fromFile.Terrain.CaveOpenToSurface) {
		cfg.Terrain.CaveOpenToSurface = fromFile.Terrain.CaveOpenToSurface
		cfg.mark("terrain.cave_open_to_surface")
	}
}

func mergeOptions(base, over gen.Options) gen.Options {
	pickF := func(b, o float64) float64 {
		if o != 0 {
			return o
		}
		return b
	}
	pickI := func(b, o int) int {
		if o != 0 {
			return o
		}
		return b
	}

	base.Scale = pickF(base.Scale, over.Scale)
	base.Octaves = pickI(base.Octaves, over.Octaves)
	base.Persistence = pickF(base.Persistence, over.Persistence)
	base.Lacunarity = pickF(base.Lacunarity, over.Lacunarity)
	base.Amplitude = pickF(base.Amplitude, over.Amplitude)
	base.BaseHeight = pickI(base.BaseHeight, over.BaseHeight)
	base.SeaLevel = pickI(base.SeaLevel, over.SeaLevel)
	base.CaveScale = pickF(base.CaveScale, over.CaveScale)
	base.CaveOctaves = pickI(base.CaveOctaves, over.CaveOctaves)
	base.CaveThreshold = pickF(base.CaveThreshold, over.CaveThreshold)
	base.CaveMaxY = pickI(base.CaveMaxY, over.CaveMaxY)
	base.TreeProbability = pickF(base.TreeProbability, over.TreeProbability)
	base.TreeMinHeight = pickI(base.TreeMinHeight, over.TreeMinHeight)
	base.TreeMaxHeight = pickI(base.TreeMaxHeight, over.TreeMaxHeight)
	return base
}

// NewSource returns the terrain source named by cfg.Generator.
func (c *Config) NewSource() gen.Source {
	if c.Generator == "flat" {
		return gen.NewFlatGenerator(c.Seed)
	}
	return gen.New(c.Seed, c.Terrain)
}
