package gen

// ChunkPos identifies a chunk by its X and Z coordinates.
type ChunkPos struct{ X, Z int }

// ChunkOf returns the chunk containing world column (wx, wz).
func ChunkOf(wx, wz int) ChunkPos {
	return ChunkPos{X: floorDiv(wx, ChunkSize), Z: floorDiv(wz, ChunkSize)}
}

// Chunk holds the generated terrain for one chunk column.
// Data index = (x*ChunkSize+z)*Height + (y-MinY); HeightMap and BiomeMap
// index = x*ChunkSize+z. All slices are owned by the caller.
type Chunk struct {
	X, Z      int
	Data      []Block
	HeightMap []int
	BiomeMap  []Biome
}

// NewChunk allocates an all-air chunk.
func NewChunk(cx, cz int) *Chunk {
	return &Chunk{
		X:         cx,
		Z:         cz,
		Data:      make([]Block, voxelCount),
		HeightMap: make([]int, columnCount),
		BiomeMap:  make([]Biome, columnCount),
	}
}

// Pos returns the chunk coordinates.
func (c *Chunk) Pos() ChunkPos {
	return ChunkPos{X: c.X, Z: c.Z}
}

// VoxelIndex returns the Data index of local (x, y, z), or -1 when out of
// range.
func VoxelIndex(x, y, z int) int {
	if x < 0 || x >= ChunkSize || z < 0 || z >= ChunkSize || y < MinY || y > MaxY {
		return -1
	}
	return (x*ChunkSize+z)*Height + (y - MinY)
}

// ColumnIndex returns the HeightMap/BiomeMap index of local (x, z), or -1.
func ColumnIndex(x, z int) int {
	if x < 0 || x >= ChunkSize || z < 0 || z >= ChunkSize {
		return -1
	}
	return x*ChunkSize + z
}

// SetBlock sets the block at local (x, y, z). Out of range writes are
// ignored.
func (c *Chunk) SetBlock(x, y, z int, b Block) {
	idx := VoxelIndex(x, y, z)
	if idx < 0 || idx >= len(c.Data) {
		return
	}
	c.Data[idx] = b
}

// Block returns the block at local (x, y, z); Air when out of range.
func (c *Chunk) Block(x, y, z int) Block {
	idx := VoxelIndex(x, y, z)
	if idx < 0 || idx >= len(c.Data) {
		return Air
	}
	return c.Data[idx]
}

// Height returns the terrain surface y of local column (x, z).
func (c *Chunk) Height(x, z int) int {
	idx := ColumnIndex(x, z)
	if idx < 0 || idx >= len(c.HeightMap) {
		return MinY
	}
	return c.HeightMap[idx]
}

// Biome returns the biome of local column (x, z).
func (c *Chunk) Biome(x, z int) Biome {
	idx := ColumnIndex(x, z)
	if idx < 0 || idx >= len(c.BiomeMap) {
		return Plains
	}
	return c.BiomeMap[idx]
}

func (c *Chunk) setColumn(x, z, height int, b Biome) {
	idx := ColumnIndex(x, z)
	if idx < 0 || idx >= len(c.HeightMap) {
		return
	}
	c.HeightMap[idx] = height
	c.BiomeMap[idx] = b
}

// TopOfColumn returns the y of the highest non-air voxel of local column
// (x, z), including water and decoration, and false for an empty column.
func (c *Chunk) TopOfColumn(x, z int) (int, bool) {
	for y := MaxY; y >= MinY; y-- {
		if c.Block(x, y, z) != Air {
			return y, true
		}
	}
	return 0, false
}

// FirstSolidBelow returns the y of the first solid voxel strictly below
// local (x, y, z).
func (c *Chunk) FirstSolidBelow(x, y, z int) (int, bool) {
	if y > MaxY+1 {
		y = MaxY + 1
	}
	for yy := y - 1; yy >= MinY; yy-- {
		if IsSolid(c.Block(x, yy, z)) {
			return yy, true
		}
	}
	return 0, false
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}
