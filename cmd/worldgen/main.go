package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"syscall"

	"github.com/OCharnyshevich/voxelgen/internal/config"
	"github.com/OCharnyshevich/voxelgen/internal/storage"
	"github.com/OCharnyshevich/voxelgen/internal/world"
	"github.com/OCharnyshevich/voxelgen/pkg/world/gen"
)

func main() {
	cfg := config.DefaultConfig()

	configPath := flag.String("config", "", "config file or go-getter source (yaml or json)")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	biomeAt := flag.String("biome", "", "print the biome, height and climate of world column \"x,z\" and exit")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "world seed")
	flag.StringVar(&cfg.Generator, "generator", cfg.Generator, "terrain generator: default or flat")
	flag.IntVar(&cfg.Radius, "radius", cfg.Radius, "chunks to generate around the center")
	flag.IntVar(&cfg.CenterX, "x", cfg.CenterX, "center chunk x")
	flag.IntVar(&cfg.CenterZ, "z", cfg.CenterZ, "center chunk z")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "generation workers (0 = one per CPU)")
	flag.StringVar(&cfg.OutDir, "out", cfg.OutDir, "output directory")
	flag.Parse()

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "invalid -log-level %q\n", *logLevel)
		os.Exit(2)
	}
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if *configPath != "" {
		explicit := make(map[string]bool)
		flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

		fromFile, err := loadConfig(ctx, *configPath, cfg.OutDir)
		if err != nil {
			log.Error("load config", "source", *configPath, "error", err)
			os.Exit(1)
		}
		config.Merge(cfg, fromFile, explicit)
		log.Info("loaded config", "source", *configPath)
	}

	if *biomeAt != "" {
		if err := printColumn(cfg, *biomeAt); err != nil {
			log.Error("biome query", "error", err)
			os.Exit(1)
		}
		return
	}

	if err := run(ctx, cfg, log); err != nil {
		log.Error("generate world", "error", err)
		os.Exit(1)
	}
}

// loadConfig reads a local config file directly and fetches anything else
// through go-getter. A fetched file may point at a further preset.
func loadConfig(ctx context.Context, src, outDir string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if _, statErr := os.Stat(src); statErr == nil {
		cfg, err = config.Load(src)
	} else {
		cfg, err = config.LoadPreset(ctx, src, filepath.Join(outDir, ".presets"))
	}
	if err != nil {
		return nil, err
	}
	if cfg.Preset == "" {
		return cfg, nil
	}

	base, err := config.LoadPreset(ctx, cfg.Preset, filepath.Join(outDir, ".presets"))
	if err != nil {
		return nil, err
	}
	config.Merge(base, cfg, nil)
	return base, nil
}

func parseColumn(s string) (int, int, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("column %q: want \"x,z\"", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("column x: %w", err)
	}
	z, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("column z: %w", err)
	}
	return x, z, nil
}

func printColumn(cfg *config.Config, s string) error {
	x, z, err := parseColumn(s)
	if err != nil {
		return err
	}
	g := gen.New(cfg.Seed, cfg.Terrain)
	c := g.ClimateAt(x, z)
	fmt.Printf("column (%d,%d): biome=%s height=%d temperature=%.3f humidity=%.3f continentalness=%.3f erosion=%.3f\n",
		x, z, g.BiomeAt(x, z), g.HeightAt(x, z), c.Temperature, c.Humidity, c.Continentalness, c.Erosion)
	return nil
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	store, err := storage.New(cfg.OutDir, log)
	if err != nil {
		return err
	}

	w := world.New(cfg.NewSource(), log)
	if err := store.LoadOverrides(w); err != nil {
		return err
	}

	log.Info("generating",
		"seed", cfg.Seed,
		"generator", cfg.Generator,
		"center_x", cfg.CenterX,
		"center_z", cfg.CenterZ,
		"radius", cfg.Radius,
	)
	if _, err := w.PreGenerateRadius(ctx, cfg.CenterX, cfg.CenterZ, cfg.Radius, cfg.Workers); err != nil {
		return err
	}

	m := storage.NewManifest(cfg.Seed, cfg.Generator, cfg.Terrain)
	if err := store.SaveWorld(w, m); err != nil {
		return err
	}

	logBiomes(w, log)
	log.Info("spawn", "y", w.SpawnHeight())
	return nil
}

// logBiomes logs how many columns of the generated area fall in each biome.
func logBiomes(w *world.World, log *slog.Logger) {
	counts := make(map[gen.Biome]int)
	total := 0
	w.ForEachChunk(func(c *gen.Chunk) {
		for _, b := range c.BiomeMap {
			counts[b]++
			total++
		}
	})
	if total == 0 {
		return
	}

	biomes := make([]gen.Biome, 0, len(counts))
	for b := range counts {
		biomes = append(biomes, b)
	}
	sort.Slice(biomes, func(i, j int) bool { return counts[biomes[i]] > counts[biomes[j]] })

	for _, b := range biomes {
		log.Info("biome coverage", "biome", b.String(), "columns", counts[b],
			"percent", fmt.Sprintf("%.1f", 100*float64(counts[b])/float64(total)))
	}
}
