package gen

import "math"

// Cave shaping constants.
const (
	caveVerticalSquash = 1.6 // caves are wider than tall
	caveAboveSeaBias   = 0.004
	caveCeilingBand    = 16
	caveCeilingBias    = 0.02
	caveFloorBand      = 12
	caveFloorBias      = 0.03
	tunnelWidth        = 0.045
	tunnelNarrowing    = 0.0005
	surfaceGuard       = 4 // stone kept below the subsurface when caves stay closed
	waterGuard         = 6 // stone kept below submerged floors
)

// CaveGenerator carves caves using 3D simplex noise: a blobby octave field
// plus thin tunnels where two independent fields both cross zero.
type CaveGenerator struct {
	cave    *NoiseGenerator
	tunnelA *NoiseGenerator
	tunnelB *NoiseGenerator

	scale     float64
	octaves   int
	threshold float64
	maxY      int
	seaLevel  int
}

// NewCaveGenerator creates a CaveGenerator from a seed and normalized options.
func NewCaveGenerator(seed int64, opts Options) *CaveGenerator {
	return &CaveGenerator{
		cave:      NewNoiseGenerator(seed + seedCave),
		tunnelA:   NewNoiseGenerator(seed + seedTunnelA),
		tunnelB:   NewNoiseGenerator(seed + seedTunnelB),
		scale:     opts.CaveScale,
		octaves:   opts.CaveOctaves,
		threshold: opts.CaveThreshold,
		maxY:      opts.CaveMaxY,
		seaLevel:  opts.SeaLevel,
	}
}

// thresholdAt biases the carve threshold by depth: caves thin out above sea
// level, near the CaveMaxY ceiling and just above the bedrock floor.
func (cg *CaveGenerator) thresholdAt(y int) float64 {
	t := cg.threshold
	if y > cg.seaLevel {
		t += float64(y-cg.seaLevel) * caveAboveSeaBias
	}
	if band := cg.maxY - caveCeilingBand; y > band {
		t += float64(y-band) * caveCeilingBias
	}
	if floor := MinY + caveFloorBand; y < floor {
		t += float64(floor-y) * caveFloorBias
	}
	return t
}

// Carves reports whether world voxel (x, y, z) is hollowed out.
func (cg *CaveGenerator) Carves(x, y, z int) bool {
	if y > cg.maxY || y <= MinY {
		return false
	}
	fx, fy, fz := float64(x)*cg.scale, float64(y)*cg.scale, float64(z)*cg.scale

	v := cg.cave.OctaveNoise3D(fx, fy*caveVerticalSquash, fz, cg.octaves, 0.5, 2)
	if v > cg.thresholdAt(y) {
		return true
	}

	w := tunnelWidth - math.Max(0, float64(y-cg.seaLevel))*tunnelNarrowing
	if w <= 0 {
		return false
	}
	a := cg.tunnelA.Noise3D(fx*1.5, fy*2, fz*1.5)
	if math.Abs(a) >= w {
		return false
	}
	b := cg.tunnelB.Noise3D(fx*1.5, fy*2, fz*1.5)
	return math.Abs(b) < w
}
