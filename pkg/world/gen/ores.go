package gen

// oreVein describes one ore type. An interior stone voxel becomes the ore
// when its noise value exceeds threshold; rarer ores use higher thresholds
// and lower ceilings.
type oreVein struct {
	block     Block
	scale     float64
	threshold float64
	maxY      int
}

// oreVeins is ordered rarest first so a rare ore wins where fields overlap.
var oreVeins = []oreVein{
	{DiamondOre, 1.0 / 5.0, 0.86, 16},
	{GoldOre, 1.0 / 6.0, 0.82, 32},
	{IronOre, 1.0 / 7.0, 0.77, 72},
	{CoalOre, 1.0 / 8.0, 0.72, 136},
}

// OreField places ore veins using one 3D noise field per ore type.
type OreField struct {
	fields []*NoiseGenerator
}

// NewOreField creates an OreField from a seed.
func NewOreField(seed int64) *OreField {
	of := &OreField{fields: make([]*NoiseGenerator, len(oreVeins))}
	for i := range oreVeins {
		of.fields[i] = NewNoiseGenerator(seed + seedOre + int64(i))
	}
	return of
}

// At returns the ore at world voxel (x, y, z), if any.
func (of *OreField) At(x, y, z int) (Block, bool) {
	for i, ore := range oreVeins {
		if y > ore.maxY {
			continue
		}
		n := of.fields[i].Noise3D(float64(x)*ore.scale, float64(y)*ore.scale, float64(z)*ore.scale)
		if n > ore.threshold {
			return ore.block, true
		}
	}
	return Stone, false
}
