package gen

import "testing"

func TestVegetationPlacement(t *testing.T) {
	g := New(6060, Options{})

	flora := 0
	for _, pos := range []ChunkPos{{0, 0}, {5, 5}, {-8, 2}, {12, -12}} {
		c := g.Generate(pos.X, pos.Z)
		for x := 0; x < ChunkSize; x++ {
			for z := 0; z < ChunkSize; z++ {
				h := c.Height(x, z)
				above := c.Block(x, h+1, z)
				switch {
				case IsFlora(above):
					flora++
					if !isPlantable(c.Block(x, h, z)) {
						t.Errorf("chunk %v: %v on %v", pos, above, c.Block(x, h, z))
					}
				case above == Cactus:
					if s := c.Block(x, h, z); s != Sand && s != RedSand {
						t.Errorf("chunk %v: cactus on %v", pos, s)
					}
					tall := 0
					for y := h + 1; c.Block(x, y, z) == Cactus; y++ {
						tall++
					}
					if tall > maxCactusHeight {
						t.Errorf("chunk %v: cactus %d tall", pos, tall)
					}
				}
			}
		}
	}
	if flora == 0 {
		t.Skip("no flora in the sampled chunks")
	}
}
