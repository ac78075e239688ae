package gen

// bedrockLayers is the height of the jagged bedrock band above MinY.
const bedrockLayers = 5

// isBedrock reports whether world voxel (wx, y, wz) belongs to the bedrock
// floor. MinY is always bedrock; above it the chance falls off linearly.
func isBedrock(wx, y, wz int) bool {
	if y == MinY {
		return true
	}
	d := y - MinY
	if d < 0 || d >= bedrockLayers {
		return false
	}
	p := 1 - float64(d)/bedrockLayers
	return positionHash01(wx, y, wz) < p
}

// columnContext carries what fillColumn needs to know about one column.
type columnContext struct {
	lx, lz, wx, wz int
	height         int
	biome          Biome
	// caveCeiling is the highest y a cave may reach in this column.
	caveCeiling int
}

// caveCeiling returns the highest carvable y of a column. Interior stone is
// protected by a guard band below the subsurface; the band is wider when the
// column or one of its neighbours holds water, so carving never opens water
// to air.
func (g *Generator) caveCeiling(a *Arena, wx, wz, h int, b Biome) int {
	sea := g.opts.SeaLevel
	sub := len(b.info().subsurface)

	ceiling := h - sub - 1
	if !g.opts.CaveOpenToSurface {
		ceiling -= surfaceGuard
	}
	if h < sea {
		ceiling = min(ceiling, h-sub-1-waterGuard)
	}

	for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
		nh := g.height(a, wx+d[0], wz+d[1])
		if nh < sea {
			ceiling = min(ceiling, nh-waterGuard)
		}
	}
	return ceiling
}

// fillColumn fills one column from MinY to max(height, seaLevel), in
// precedence order: bedrock, surface, subsurface, stone (ores, caves),
// then water and ice above the terrain.
func (g *Generator) fillColumn(c *Chunk, col columnContext) {
	sea := g.opts.SeaLevel
	h := col.height
	info := col.biome.info()
	top := max(h, sea)

	for y := MinY; y <= top; y++ {
		var b Block
		switch {
		case y > h:
			b = Water
			if y == sea && info.frozen {
				b = Ice
			}
		case isBedrock(col.wx, y, col.wz):
			b = Bedrock
		case y == h:
			b = surfaceFor(col.biome, h, sea)
		case h-y <= len(info.subsurface):
			b = subsurfaceFor(col.biome, h, sea, h-y-1)
		default:
			b = g.interior(col, y)
		}
		c.SetBlock(col.lx, y, col.lz, b)
	}
}

// interior resolves a stone-interior voxel: cave air, ore or stone.
func (g *Generator) interior(col columnContext, y int) Block {
	if y <= col.caveCeiling && g.caves.Carves(col.wx, y, col.wz) {
		return Air
	}
	if ore, ok := g.ores.At(col.wx, y, col.wz); ok {
		return ore
	}
	return Stone
}
