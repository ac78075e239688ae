package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/OCharnyshevich/voxelgen/pkg/world/gen"
)

func TestMergeRespectsExplicitFlags(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 7
	cfg.Radius = 2

	fromFile := &Config{Seed: 99, Radius: 10, OutDir: "/tmp/elsewhere", Generator: "flat"}
	Merge(cfg, fromFile, map[string]bool{"seed": true})

	if cfg.Seed != 7 {
		t.Errorf("Seed = %d, want flag value 7", cfg.Seed)
	}
	if cfg.Radius != 10 {
		t.Errorf("Radius = %d, want file value 10", cfg.Radius)
	}
	if cfg.OutDir != "/tmp/elsewhere" || cfg.Generator != "flat" {
		t.Errorf("file values not applied: %+v", cfg)
	}
}

func TestMergeKeepsUnsetTerrain(t *testing.T) {
	cfg := DefaultConfig()
	Merge(cfg, &Config{Terrain: gen.Options{SeaLevel: 40}}, nil)

	if cfg.Terrain.SeaLevel != 40 {
		t.Errorf("SeaLevel = %d, want 40", cfg.Terrain.SeaLevel)
	}
	if cfg.Terrain.Octaves != gen.DefaultOptions().Octaves {
		t.Errorf("Octaves = %d, want default kept", cfg.Terrain.Octaves)
	}
}

func TestLoadYAMLAndJSON(t *testing.T) {
	dir := t.TempDir()

	yml := filepath.Join(dir, "world.yaml")
	if err := os.WriteFile(yml, []byte("seed: 42\nradius: 3\nterrain:\n  sea_level: 50\n  cave_open_to_surface: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	js := filepath.Join(dir, "world.json")
	if err := os.WriteFile(js, []byte(`{"seed": 42, "radius": 3, "terrain": {"sea_level": 50, "cave_open_to_surface": true}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{yml, js} {
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load(%s): %v", path, err)
		}
		if cfg.Seed != 42 || cfg.Radius != 3 {
			t.Errorf("%s: seed %d radius %d", path, cfg.Seed, cfg.Radius)
		}
		if cfg.Terrain.SeaLevel != 50 || !cfg.Terrain.CaveOpenToSurface {
			t.Errorf("%s: terrain = %+v", path, cfg.Terrain)
		}
	}
}

func TestLoadMissingAndMalformed(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{seed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestLoadPresetFromLocalPath(t *testing.T) {
	src := filepath.Join(t.TempDir(), "alpine.yaml")
	if err := os.WriteFile(src, []byte("generator: default\nterrain:\n  amplitude: 40\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadPreset(context.Background(), src, t.TempDir())
	if err != nil {
		t.Fatalf("LoadPreset: %v", err)
	}
	if cfg.Terrain.Amplitude != 40 {
		t.Errorf("Amplitude = %f, want 40", cfg.Terrain.Amplitude)
	}
}

func TestNewSource(t *testing.T) {
	cfg := DefaultConfig()
	if _, ok := cfg.NewSource().(*gen.Generator); !ok {
		t.Error("default generator should be *gen.Generator")
	}
	cfg.Generator = "flat"
	if _, ok := cfg.NewSource().(*gen.FlatGenerator); !ok {
		t.Error("flat generator should be *gen.FlatGenerator")
	}
}

func TestMergeTakesOnlyKeysTheFileSets(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) *Config {
		t.Helper()
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
		cfg, err := Load(path)
		if err != nil {
			t.Fatal(err)
		}
		return cfg
	}

	preset := write("preset.yaml", "seed: 9\ncenter_x: 4\nterrain:\n  cave_open_to_surface: true\n  sea_level: 50\n")
	overlay := write("overlay.json", `{"radius": 2, "terrain": {"cave_open_to_surface": false}}`)
	Merge(preset, overlay, nil)

	if preset.Seed != 9 || preset.CenterX != 4 {
		t.Errorf("seed %d center_x %d, want preset values 9 and 4", preset.Seed, preset.CenterX)
	}
	if preset.Terrain.CaveOpenToSurface {
		t.Error("file could not turn cave_open_to_surface off")
	}
	if preset.Radius != 2 || preset.Terrain.SeaLevel != 50 {
		t.Errorf("radius %d sea level %d, want 2 and 50", preset.Radius, preset.Terrain.SeaLevel)
	}

	cfg := DefaultConfig()
	cfg.Terrain.CaveOpenToSurface = true
	Merge(cfg, preset, nil)
	if cfg.Seed != 9 || cfg.CenterX != 4 || cfg.Terrain.CaveOpenToSurface {
		t.Errorf("merged preset lost values: seed %d center_x %d caves open %v",
			cfg.Seed, cfg.CenterX, cfg.Terrain.CaveOpenToSurface)
	}

	zero := write("zero.yaml", "seed: 0\n")
	Merge(cfg, zero, nil)
	if cfg.Seed != 0 {
		t.Errorf("Seed = %d, want explicit 0 from file", cfg.Seed)
	}
}
