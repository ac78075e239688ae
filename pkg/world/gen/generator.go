package gen

// Source produces chunk data deterministically from a seed.
type Source interface {
	Generate(chunkX, chunkZ int) *Chunk
	HeightAt(worldX, worldZ int) int
}

// Generator produces terrain with climate-driven biomes, blended heights,
// caves, ores, trees and vegetation. It is immutable after New and safe for
// concurrent use; per-generation scratch lives in an Arena.
type Generator struct {
	seed int64
	opts Options

	terrain    *NoiseGenerator
	detail     *NoiseGenerator
	ridge      *NoiseGenerator
	cluster    *NoiseGenerator
	vegetation *NoiseGenerator
	climate    *climateSampler
	caves      *CaveGenerator
	ores       *OreField

	// forcedRoots are world columns (X, Z) that always grow a tree.
	forcedRoots map[ChunkPos]struct{}
}

// New creates a Generator. Missing or malformed options fall back to
// DefaultOptions.
func New(seed int64, opts Options) *Generator {
	opts = opts.Normalize()
	return &Generator{
		seed:       seed,
		opts:       opts,
		terrain:    NewNoiseGenerator(seed + seedTerrain),
		detail:     NewNoiseGenerator(seed + seedDetail),
		ridge:      NewNoiseGenerator(seed + seedRidge),
		cluster:    NewNoiseGenerator(seed + seedTreeCluster),
		vegetation: NewNoiseGenerator(seed + seedVegetation),
		climate:    newClimateSampler(seed),
		caves:      NewCaveGenerator(seed, opts),
		ores:       NewOreField(seed),
	}
}

// GenerateChunk generates chunk (chunkX, chunkZ) for a seed. Identical
// arguments always produce identical chunks.
func GenerateChunk(chunkX, chunkZ int, seed int64, opts Options) *Chunk {
	return New(seed, opts).Generate(chunkX, chunkZ)
}

// BiomeAt classifies a single world column without generating its chunk.
func BiomeAt(worldX, worldZ int, seed int64, opts Options) Biome {
	return New(seed, opts).BiomeAt(worldX, worldZ)
}

// WithForcedTrees returns a copy of g that always grows a tree rooted at
// each given world column, ignoring biome, soil and spacing rules for them.
// g itself is unchanged.
func (g *Generator) WithForcedTrees(columns ...ChunkPos) *Generator {
	cp := *g
	cp.forcedRoots = make(map[ChunkPos]struct{}, len(g.forcedRoots)+len(columns))
	for pos := range g.forcedRoots {
		cp.forcedRoots[pos] = struct{}{}
	}
	for _, pos := range columns {
		cp.forcedRoots[pos] = struct{}{}
	}
	return &cp
}

// Seed returns the world seed.
func (g *Generator) Seed() int64 { return g.seed }

// Options returns the normalized options in use.
func (g *Generator) Options() Options { return g.opts }

// Generate generates a chunk with freshly allocated scratch buffers.
func (g *Generator) Generate(chunkX, chunkZ int) *Chunk {
	return g.GenerateWith(chunkX, chunkZ, NewArena())
}

// GenerateWith generates a chunk using a caller-owned arena, letting a
// worker reuse one set of scratch buffers across many chunks. A nil arena
// allocates a new one.
func (g *Generator) GenerateWith(chunkX, chunkZ int, a *Arena) *Chunk {
	if a == nil {
		a = NewArena()
	}
	a.reset(chunkX, chunkZ)
	c := NewChunk(chunkX, chunkZ)
	ox, oz := chunkX*ChunkSize, chunkZ*ChunkSize

	// Pass 1: climate, biome and height per column.
	for x := 0; x < ChunkSize; x++ {
		for z := 0; z < ChunkSize; z++ {
			s := g.sample(a, ox+x, oz+z)
			c.setColumn(x, z, g.height(a, ox+x, oz+z), s.biome)
		}
	}

	// Pass 2: fill voxels.
	for x := 0; x < ChunkSize; x++ {
		for z := 0; z < ChunkSize; z++ {
			wx, wz := ox+x, oz+z
			h, b := c.Height(x, z), c.Biome(x, z)
			g.fillColumn(c, columnContext{
				lx: x, lz: z, wx: wx, wz: wz,
				height:      h,
				biome:       b,
				caveCeiling: g.caveCeiling(a, wx, wz, h, b),
			})
		}
	}

	// Pass 3: trees, including those rooted in neighbouring chunks.
	g.decorateTrees(a, c)

	// Pass 4: vegetation.
	g.placeVegetation(c)

	return c
}

// BiomeAt returns the biome of a world column.
func (g *Generator) BiomeAt(worldX, worldZ int) Biome {
	return g.sample(nil, worldX, worldZ).biome
}

// HeightAt returns the terrain surface y of a world column, before
// decoration.
func (g *Generator) HeightAt(worldX, worldZ int) int {
	return g.height(nil, worldX, worldZ)
}

// ClimateAt returns the climate sample of a world column.
func (g *Generator) ClimateAt(worldX, worldZ int) Climate {
	return g.sample(nil, worldX, worldZ).climate
}
