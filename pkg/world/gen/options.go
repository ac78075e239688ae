package gen

import "math"

// Options tunes terrain generation. A zero field, or one that is NaN,
// infinite or outside its accepted range, falls back to the matching
// DefaultOptions value when the options are normalized.
type Options struct {
	// Horizontal frequency of the base terrain noise, per block.
	Scale       float64 `json:"scale,omitempty" yaml:"scale,omitempty"`
	Octaves     int     `json:"octaves,omitempty" yaml:"octaves,omitempty"`
	Persistence float64 `json:"persistence,omitempty" yaml:"persistence,omitempty"`
	Lacunarity  float64 `json:"lacunarity,omitempty" yaml:"lacunarity,omitempty"`
	// Amplitude in blocks of the base terrain noise before biome scaling.
	Amplitude  float64 `json:"amplitude,omitempty" yaml:"amplitude,omitempty"`
	BaseHeight int     `json:"base_height,omitempty" yaml:"base_height,omitempty"`
	SeaLevel   int     `json:"sea_level,omitempty" yaml:"sea_level,omitempty"`

	CaveScale         float64 `json:"cave_scale,omitempty" yaml:"cave_scale,omitempty"`
	CaveOctaves       int     `json:"cave_octaves,omitempty" yaml:"cave_octaves,omitempty"`
	CaveThreshold     float64 `json:"cave_threshold,omitempty" yaml:"cave_threshold,omitempty"`
	CaveMaxY          int     `json:"cave_max_y,omitempty" yaml:"cave_max_y,omitempty"`
	CaveOpenToSurface bool    `json:"cave_open_to_surface,omitempty" yaml:"cave_open_to_surface,omitempty"`

	// TreeProbability is a global multiplier on every biome's tree density.
	TreeProbability float64 `json:"tree_probability,omitempty" yaml:"tree_probability,omitempty"`
	TreeMinHeight   int     `json:"tree_min_height,omitempty" yaml:"tree_min_height,omitempty"`
	TreeMaxHeight   int     `json:"tree_max_height,omitempty" yaml:"tree_max_height,omitempty"`
}

// DefaultOptions returns the module defaults.
func DefaultOptions() Options {
	return Options{
		Scale:           1.0 / 160.0,
		Octaves:         5,
		Persistence:     0.5,
		Lacunarity:      2.0,
		Amplitude:       18,
		BaseHeight:      68,
		SeaLevel:        62,
		CaveScale:       1.0 / 28.0,
		CaveOctaves:     3,
		CaveThreshold:   0.48,
		CaveMaxY:        96,
		TreeProbability: 1.0,
		TreeMinHeight:   4,
		TreeMaxHeight:   6,
	}
}

// Normalize returns a copy of o with every missing or malformed field
// replaced by its default.
func (o Options) Normalize() Options {
	d := DefaultOptions()
	n := o

	n.Scale = positiveOr(o.Scale, d.Scale, 1)
	n.Persistence = positiveOr(o.Persistence, d.Persistence, 1)
	n.Lacunarity = positiveOr(o.Lacunarity, d.Lacunarity, 8)
	if n.Lacunarity < 1 {
		n.Lacunarity = d.Lacunarity
	}
	n.Amplitude = positiveOr(o.Amplitude, d.Amplitude, Height)
	n.CaveScale = positiveOr(o.CaveScale, d.CaveScale, 1)
	n.CaveThreshold = positiveOr(o.CaveThreshold, d.CaveThreshold, 1)
	n.TreeProbability = positiveOr(o.TreeProbability, d.TreeProbability, 16)

	n.Octaves = intRangeOr(o.Octaves, d.Octaves, 1, 12)
	n.CaveOctaves = intRangeOr(o.CaveOctaves, d.CaveOctaves, 1, 8)
	n.BaseHeight = intRangeOr(o.BaseHeight, d.BaseHeight, MinY+1, MaxY-1)
	n.SeaLevel = intRangeOr(o.SeaLevel, d.SeaLevel, MinY+1, MaxY-1)
	n.CaveMaxY = intRangeOr(o.CaveMaxY, d.CaveMaxY, MinY+1, MaxY)

	n.TreeMinHeight = intRangeOr(o.TreeMinHeight, d.TreeMinHeight, 1, 32)
	n.TreeMaxHeight = intRangeOr(o.TreeMaxHeight, d.TreeMaxHeight, 1, 32)
	if n.TreeMaxHeight < n.TreeMinHeight {
		n.TreeMaxHeight = n.TreeMinHeight
	}
	return n
}

func positiveOr(v, def, limit float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 || v > limit {
		return def
	}
	return v
}

func intRangeOr(v, def, lo, hi int) int {
	if v == 0 || v < lo || v > hi {
		return def
	}
	return v
}
