package gen

// flatSurface is the grass layer of a flat world.
const flatSurface = MinY + 4

// FlatGenerator generates a superflat world: bedrock at MinY, stone for two
// layers, dirt, then grass; plains biome everywhere.
type FlatGenerator struct{}

// NewFlatGenerator creates a FlatGenerator.
func NewFlatGenerator(_ int64) *FlatGenerator {
	return &FlatGenerator{}
}

func (g *FlatGenerator) Generate(chunkX, chunkZ int) *Chunk {
	c := NewChunk(chunkX, chunkZ)

	for x := 0; x < ChunkSize; x++ {
		for z := 0; z < ChunkSize; z++ {
			c.SetBlock(x, MinY, z, Bedrock)
			c.SetBlock(x, MinY+1, z, Stone)
			c.SetBlock(x, MinY+2, z, Stone)
			c.SetBlock(x, MinY+3, z, Dirt)
			c.SetBlock(x, flatSurface, z, Grass)
			c.setColumn(x, z, flatSurface, Plains)
		}
	}
	return c
}

func (g *FlatGenerator) HeightAt(_, _ int) int {
	return flatSurface
}
