package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/OCharnyshevich/voxelgen/internal/world"
	"github.com/OCharnyshevich/voxelgen/pkg/world/gen"
)

// Storage handles file-based persistence for exported worlds: region files,
// the manifest and consumer overrides.
type Storage struct {
	dir string
	log *slog.Logger
}

// New creates a new Storage rooted at dir, creating subdirectories as needed.
func New(dir string, log *slog.Logger) (*Storage, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	dirs := []string{
		dir,
		filepath.Join(dir, "region"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return nil, fmt.Errorf("create directory %s: %w", d, err)
		}
	}
	return &Storage{dir: dir, log: log}, nil
}

// Dir returns the storage root.
func (s *Storage) Dir() string { return s.dir }

// SaveWorld writes every cached chunk of w, with overrides applied, and
// the overrides themselves. The manifest's chunk and region counts are
// filled in and the manifest is saved last.
func (s *Storage) SaveWorld(w *world.World, m *Manifest) error {
	perChunk := make(map[gen.ChunkPos][]world.BlockPos)
	edits := make(map[world.BlockPos]gen.Block)
	w.ForEachOverride(func(pos world.BlockPos, b gen.Block) {
		cp := gen.ChunkOf(pos.X, pos.Z)
		perChunk[cp] = append(perChunk[cp], pos)
		edits[pos] = b
	})

	var chunks []*gen.Chunk
	w.ForEachChunk(func(c *gen.Chunk) {
		if len(perChunk[c.Pos()]) > 0 {
			c = withOverrides(c, perChunk[c.Pos()], edits)
		}
		chunks = append(chunks, c)
	})
	slices.SortFunc(chunks, func(a, b *gen.Chunk) int {
		if a.X != b.X {
			return a.X - b.X
		}
		return a.Z - b.Z
	})

	regions, err := s.SaveChunks(chunks)
	if err != nil {
		return err
	}
	if err := s.SaveOverrides(w); err != nil {
		return err
	}

	m.Chunks = len(chunks)
	m.Regions = regions
	if err := s.SaveManifest(m); err != nil {
		return err
	}
	s.log.Info("saved world", "dir", s.dir, "id", m.ID, "chunks", m.Chunks, "regions", m.Regions)
	return nil
}

// withOverrides returns a copy of c with the given edits applied. The
// cached chunk itself is left untouched.
func withOverrides(c *gen.Chunk, positions []world.BlockPos, edits map[world.BlockPos]gen.Block) *gen.Chunk {
	out := gen.NewChunk(c.X, c.Z)
	copy(out.Data, c.Data)
	copy(out.HeightMap, c.HeightMap)
	copy(out.BiomeMap, c.BiomeMap)
	for _, pos := range positions {
		out.SetBlock(pos.X-c.X*gen.ChunkSize, pos.Y, pos.Z-c.Z*gen.ChunkSize, edits[pos])
	}
	return out
}

// SaveManifest writes manifest.json atomically.
func (s *Storage) SaveManifest(m *Manifest) error {
	m.SavedAt = time.Now().UTC()
	path := filepath.Join(s.dir, "manifest.json")
	return s.atomicWriteJSON(path, m)
}

// LoadManifest reads manifest.json. It returns an error wrapping
// fs.ErrNotExist when the world was never saved.
func (s *Storage) LoadManifest() (*Manifest, error) {
	path := filepath.Join(s.dir, "manifest.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if m.Version != manifestVersion {
		return nil, fmt.Errorf("manifest version %d, want %d", m.Version, manifestVersion)
	}
	return &m, nil
}

// LoadOverrides reads overrides.json and bulk-loads block overrides into
// the world. If the file does not exist, the world is unchanged.
func (s *Storage) LoadOverrides(w *world.World) error {
	path := filepath.Join(s.dir, "overrides.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read world overrides: %w", err)
	}

	var od OverridesData
	if err := json.Unmarshal(data, &od); err != nil {
		return fmt.Errorf("parse world overrides: %w", err)
	}

	overrides := make(map[world.BlockPos]gen.Block, len(od.Overrides))
	for _, o := range od.Overrides {
		b, ok := gen.ParseBlock(o.Block)
		if !ok {
			return fmt.Errorf("parse world overrides: unknown block %q at (%d,%d,%d)", o.Block, o.X, o.Y, o.Z)
		}
		overrides[world.BlockPos{X: o.X, Y: o.Y, Z: o.Z}] = b
	}

	w.LoadOverrides(overrides)
	s.log.Info("loaded world overrides", "count", len(overrides))
	return nil
}

// SaveOverrides writes all block overrides to overrides.json atomically.
func (s *Storage) SaveOverrides(w *world.World) error {
	od := OverridesData{Overrides: []BlockOverrideEntry{}}
	w.ForEachOverride(func(pos world.BlockPos, b gen.Block) {
		od.Overrides = append(od.Overrides, BlockOverrideEntry{
			X: pos.X, Y: pos.Y, Z: pos.Z, Block: b.String(),
		})
	})
	slices.SortFunc(od.Overrides, func(a, b BlockOverrideEntry) int {
		if a.X != b.X {
			return a.X - b.X
		}
		if a.Z != b.Z {
			return a.Z - b.Z
		}
		return a.Y - b.Y
	})

	path := filepath.Join(s.dir, "overrides.json")
	return s.atomicWriteJSON(path, &od)
}

// atomicWriteJSON marshals v to JSON and writes it atomically using a temp file + rename.
func (s *Storage) atomicWriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	data = append(data, '\n')

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
