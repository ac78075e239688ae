package gen

import "testing"

func TestChunkOutOfRange(t *testing.T) {
	c := NewChunk(0, 0)

	for _, p := range [][3]int{{-1, 0, 0}, {16, 0, 0}, {0, MinY - 1, 0}, {0, MaxY + 1, 0}, {0, 0, 16}} {
		c.SetBlock(p[0], p[1], p[2], Stone)
		if got := c.Block(p[0], p[1], p[2]); got != Air {
			t.Errorf("Block%v = %v, want air", p, got)
		}
	}
	for i, b := range c.Data {
		if b != Air {
			t.Fatalf("out of range write landed at index %d", i)
		}
	}
}

func TestChunkIndexing(t *testing.T) {
	if got := VoxelIndex(0, MinY, 0); got != 0 {
		t.Errorf("VoxelIndex(0,MinY,0) = %d", got)
	}
	if got, want := VoxelIndex(1, MinY, 2), (1*ChunkSize+2)*Height; got != want {
		t.Errorf("VoxelIndex(1,MinY,2) = %d, want %d", got, want)
	}
	if got, want := VoxelIndex(15, MaxY, 15), voxelCount-1; got != want {
		t.Errorf("last voxel index = %d, want %d", got, want)
	}

	c := NewChunk(0, 0)
	c.SetBlock(3, 10, 4, Wood)
	if c.Data[VoxelIndex(3, 10, 4)] != Wood {
		t.Error("SetBlock and VoxelIndex disagree")
	}
}

func TestChunkOf(t *testing.T) {
	tests := []struct {
		wx, wz int
		want   ChunkPos
	}{
		{0, 0, ChunkPos{0, 0}},
		{15, 16, ChunkPos{0, 1}},
		{-1, -16, ChunkPos{-1, -1}},
		{-17, 31, ChunkPos{-2, 1}},
	}
	for _, tt := range tests {
		if got := ChunkOf(tt.wx, tt.wz); got != tt.want {
			t.Errorf("ChunkOf(%d,%d) = %v, want %v", tt.wx, tt.wz, got, tt.want)
		}
	}
	if floorMod(-1, ChunkSize) != 15 {
		t.Error("floorMod(-1, 16) should be 15")
	}
}

func TestColumnQueries(t *testing.T) {
	c := NewChunk(0, 0)
	if _, ok := c.TopOfColumn(0, 0); ok {
		t.Error("empty column should have no top")
	}

	c.SetBlock(0, 10, 0, Stone)
	c.SetBlock(0, 11, 0, TallGrass)
	c.SetBlock(0, 20, 0, Leaves)

	if y, ok := c.TopOfColumn(0, 0); !ok || y != 20 {
		t.Errorf("TopOfColumn = %d, %v; want 20", y, ok)
	}
	if y, ok := c.FirstSolidBelow(0, 20, 0); !ok || y != 10 {
		t.Errorf("FirstSolidBelow(20) = %d, %v; want 10", y, ok)
	}
	if _, ok := c.FirstSolidBelow(0, 10, 0); ok {
		t.Error("nothing solid below y=10")
	}
}

func TestBlockClassification(t *testing.T) {
	if IsSolid(Air) || IsSolid(Water) || IsSolid(Poppy) {
		t.Error("air, water and flora are not solid")
	}
	if !IsSolid(Stone) || !IsSolid(Leaves) || !IsSolid(Cactus) {
		t.Error("stone, leaves and cactus are solid")
	}
	if !IsTransparent(Leaves) || IsTransparent(Dirt) {
		t.Error("transparency mismatch")
	}
	if IsOpaque(Cactus) || !IsOpaque(Bedrock) {
		t.Error("opacity mismatch")
	}
	if !IsLiquid(Water) || IsLiquid(Ice) {
		t.Error("only water is liquid")
	}
	if Block(250).Valid() {
		t.Error("out of range block id reported valid")
	}
}

func TestParseBlock(t *testing.T) {
	for b := Block(0); b < blockCount; b++ {
		if got, ok := ParseBlock(b.String()); !ok || got != b {
			t.Errorf("ParseBlock(%q) = %v, %v", b.String(), got, ok)
		}
	}
	if _, ok := ParseBlock("obsidian"); ok {
		t.Error("ParseBlock accepted an unknown name")
	}
}
