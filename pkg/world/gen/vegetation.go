package gen

const (
	vegetationScale  = 0.09
	vegetationCutoff = 0.4
	maxCactusHeight  = 3
)

// placeVegetation scatters grass, ferns, flowers, cacti and dead bushes on
// plantable surfaces with open air above. A density field is thresholded at
// vegetationCutoff and renormalized; one hash decides placement and a second
// picks among the biome's flora.
func (g *Generator) placeVegetation(c *Chunk) {
	ox, oz := c.X*ChunkSize, c.Z*ChunkSize
	for lx := 0; lx < ChunkSize; lx++ {
		for lz := 0; lz < ChunkSize; lz++ {
			h := c.Height(lx, lz)
			if !isPlantable(c.Block(lx, h, lz)) || c.Block(lx, h+1, lz) != Air {
				continue
			}
			info := c.Biome(lx, lz).info()
			if info.vegDensity <= 0 || len(info.flora) == 0 {
				continue
			}

			wx, wz := ox+lx, oz+lz
			d := (g.vegetation.OctaveNoise2D(float64(wx)*vegetationScale, float64(wz)*vegetationScale, 2, 0.5, 2) + 1) / 2
			if d < vegetationCutoff {
				continue
			}
			density := (d - vegetationCutoff) / (1 - vegetationCutoff)
			if columnHash01(g.seed, wx, wz, saltVegPlace) >= density*info.vegDensity {
				continue
			}

			pick := hash2(g.seed, wx, wz, saltVegPick)
			plant := info.flora[pick%uint64(len(info.flora))]
			if plant != Cactus {
				c.SetBlock(lx, h+1, lz, plant)
				continue
			}
			// Cacti stand only on sand.
			if s := c.Block(lx, h, lz); s != Sand && s != RedSand {
				continue
			}
			tall := 1 + int((pick>>16)%maxCactusHeight)
			for dy := 1; dy <= tall && c.Block(lx, h+dy, lz) == Air; dy++ {
				c.SetBlock(lx, h+dy, lz, Cactus)
			}
		}
	}
}
