package world

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/alitto/pond/v2"

	"github.com/OCharnyshevich/voxelgen/pkg/world/gen"
)

// BlockPos represents a block position in the world.
type BlockPos struct {
	X, Y, Z int
}

// arenaSource is a source that can reuse per-worker scratch buffers.
type arenaSource interface {
	GenerateWith(chunkX, chunkZ int, a *gen.Arena) *gen.Chunk
}

// biomeSource classifies a single column without generating its chunk.
type biomeSource interface {
	BiomeAt(worldX, worldZ int) gen.Biome
}

// World caches generated chunks and layers consumer edits on top of them.
// Generated chunks are never modified; edits live in an override map.
type World struct {
	mu     sync.RWMutex
	blocks map[BlockPos]gen.Block
	source gen.Source
	chunks map[gen.ChunkPos]*gen.Chunk

	arenas sync.Pool
	log    *slog.Logger
}

// New creates a World backed by source.
func New(source gen.Source, log *slog.Logger) *World {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &World{
		blocks: make(map[BlockPos]gen.Block),
		source: source,
		chunks: make(map[gen.ChunkPos]*gen.Chunk),
		arenas: sync.Pool{New: func() any { return gen.NewArena() }},
		log:    log,
	}
}

func (w *World) generate(cx, cz int) *gen.Chunk {
	as, ok := w.source.(arenaSource)
	if !ok {
		return w.source.Generate(cx, cz)
	}
	a := w.arenas.Get().(*gen.Arena)
	defer w.arenas.Put(a)
	return as.GenerateWith(cx, cz, a)
}

// GetOrGenerateChunk returns the chunk at the given chunk coordinates,
// generating and caching it if needed.
func (w *World) GetOrGenerateChunk(cx, cz int) *gen.Chunk {
	pos := gen.ChunkPos{X: cx, Z: cz}

	w.mu.RLock()
	if c, ok := w.chunks[pos]; ok {
		w.mu.RUnlock()
		return c
	}
	w.mu.RUnlock()

	c := w.generate(cx, cz)

	w.mu.Lock()
	// Double-check after acquiring write lock.
	if existing, ok := w.chunks[pos]; ok {
		w.mu.Unlock()
		return existing
	}
	w.chunks[pos] = c
	w.mu.Unlock()
	return c
}

func local(x, z int) (gen.ChunkPos, int, int) {
	pos := gen.ChunkOf(x, z)
	return pos, x - pos.X*gen.ChunkSize, z - pos.Z*gen.ChunkSize
}

// GetBlock returns the block at the given world position.
// Checks overrides first, then falls back to the generated chunk.
func (w *World) GetBlock(x, y, z int) gen.Block {
	if y < gen.MinY || y > gen.MaxY {
		return gen.Air
	}

	w.mu.RLock()
	if b, ok := w.blocks[BlockPos{x, y, z}]; ok {
		w.mu.RUnlock()
		return b
	}
	w.mu.RUnlock()

	pos, lx, lz := local(x, z)
	return w.GetOrGenerateChunk(pos.X, pos.Z).Block(lx, y, lz)
}

// SetBlock stores a block override. Setting a position back to its
// generated block removes the override.
func (w *World) SetBlock(x, y, z int, b gen.Block) error {
	if y < gen.MinY || y > gen.MaxY {
		return fmt.Errorf("set block at y=%d: outside [%d, %d]", y, gen.MinY, gen.MaxY)
	}
	if !b.Valid() {
		return fmt.Errorf("set block: unknown block id %d", b)
	}

	// Ensure the chunk is generated so we know the base state.
	pos, lx, lz := local(x, z)
	base := w.GetOrGenerateChunk(pos.X, pos.Z).Block(lx, y, lz)

	w.mu.Lock()
	defer w.mu.Unlock()

	bpos := BlockPos{x, y, z}
	if b == base {
		delete(w.blocks, bpos)
	} else {
		w.blocks[bpos] = b
	}
	return nil
}

// LoadOverrides replaces all overrides, e.g. after reading them from disk.
func (w *World) LoadOverrides(overrides map[BlockPos]gen.Block) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.blocks = make(map[BlockPos]gen.Block, len(overrides))
	for pos, b := range overrides {
		w.blocks[pos] = b
	}
}

// ForEachOverride calls fn for every block override under a read lock.
func (w *World) ForEachOverride(fn func(pos BlockPos, b gen.Block)) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	for pos, b := range w.blocks {
		fn(pos, b)
	}
}

// ForEachChunk calls fn for every cached chunk under a read lock.
func (w *World) ForEachChunk(fn func(c *gen.Chunk)) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	for _, c := range w.chunks {
		fn(c)
	}
}

// ChunkCount returns the number of cached chunks.
func (w *World) ChunkCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.chunks)
}

// HeightAt returns the generated terrain height of a world column.
func (w *World) HeightAt(x, z int) int {
	return w.source.HeightAt(x, z)
}

// BiomeAt returns the biome of a world column. Columns of chunks not yet
// generated are classified by the source directly when it supports that.
func (w *World) BiomeAt(x, z int) gen.Biome {
	pos, lx, lz := local(x, z)

	w.mu.RLock()
	c, ok := w.chunks[pos]
	w.mu.RUnlock()
	if ok {
		return c.Biome(lx, lz)
	}
	if bs, ok := w.source.(biomeSource); ok {
		return bs.BiomeAt(x, z)
	}
	return w.GetOrGenerateChunk(pos.X, pos.Z).Biome(lx, lz)
}

// TopOfColumn returns the highest non-air block of a world column,
// overrides included.
func (w *World) TopOfColumn(x, z int) (int, bool) {
	for y := gen.MaxY; y >= gen.MinY; y-- {
		if w.GetBlock(x, y, z) != gen.Air {
			return y, true
		}
	}
	return 0, false
}

// FirstSolidBelow returns the y of the first solid block strictly below
// (x, y, z), overrides included.
func (w *World) FirstSolidBelow(x, y, z int) (int, bool) {
	for yy := min(y, gen.MaxY+1) - 1; yy >= gen.MinY; yy-- {
		if gen.IsSolid(w.GetBlock(x, yy, z)) {
			return yy, true
		}
	}
	return 0, false
}

// SpawnHeight returns the terrain height at spawn (0, 0) + 1 for a player
// to stand on.
func (w *World) SpawnHeight() int {
	return w.source.HeightAt(0, 0) + 1
}

// PreGenerateRadius generates every chunk within radius of (cx, cz) on a
// pool of workers, each reusing its own arena. workers <= 0 uses one per
// CPU. It returns the number of chunks in the square.
func (w *World) PreGenerateRadius(ctx context.Context, cx, cz, radius, workers int) (int, error) {
	if radius < 0 {
		return 0, fmt.Errorf("pre-generate: negative radius %d", radius)
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	pool := pond.NewPool(workers)
	defer pool.StopAndWait()

	group := pool.NewGroup()
	count := 0
	for x := cx - radius; x <= cx+radius; x++ {
		for z := cz - radius; z <= cz+radius; z++ {
			count++
			group.SubmitErr(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				w.GetOrGenerateChunk(x, z)
				return nil
			})
		}
	}

	if err := group.Wait(); err != nil {
		return 0, fmt.Errorf("pre-generate around (%d,%d): %w", cx, cz, err)
	}
	w.log.Info("pre-generated chunks", "center_x", cx, "center_z", cz, "radius", radius, "count", count, "workers", workers)
	return count, nil
}
