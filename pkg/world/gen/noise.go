package gen

// Simplex gradient noise over a seeded 256-entry permutation table.
// Produces values in the range [-1, 1]. The lattice repeats every 256 units.

// grad3 are gradient vectors for 3D simplex noise.
var grad3 = [12][3]float64{
	{1, 1, 0},
	{-1, 1, 0},
	{1, -1, 0},
	{-1, -1, 0},
	{1, 0, 1},
	{-1, 0, 1},
	{1, 0, -1},
	{-1, 0, -1},
	{0, 1, 1},
	{0, -1, 1},
	{0, 1, -1},
	{0, -1, -1},
}

// Seed offsets giving each purpose an independent noise field.
const (
	seedTerrain         int64 = 0
	seedDetail          int64 = 1
	seedTemperature     int64 = 100
	seedHumidity        int64 = 200
	seedContinentalness int64 = 250
	seedErosion         int64 = 275
	seedWarp            int64 = 290
	seedCave            int64 = 300
	seedTunnelA         int64 = 400
	seedTunnelB         int64 = 450
	seedOre             int64 = 500 // + ore index
	seedRidge           int64 = 550
	seedTreeCluster     int64 = 600
	seedVegetation      int64 = 700
)

// NoiseGenerator produces deterministic simplex noise from a seed.
// It is read-only after construction and safe for concurrent use.
type NoiseGenerator struct {
	perm [512]uint8
}

// NewNoiseGenerator creates a noise generator with a seeded permutation table.
func NewNoiseGenerator(seed int64) *NoiseGenerator {
	ng := &NoiseGenerator{}

	var p [256]uint8
	for i := range p {
		p[i] = uint8(i)
	}

	// Fisher-Yates shuffle driven by an LCG over the seed.
	s := uint64(seed)
	for i := 255; i > 0; i-- {
		s = s*6364136223846793005 + 1442695040888963407
		j := int((s >> 33) % uint64(i+1))
		p[i], p[j] = p[j], p[i]
	}

	for i := 0; i < 512; i++ {
		ng.perm[i] = p[i&255]
	}
	return ng
}

func (ng *NoiseGenerator) hash(i int) int {
	return int(ng.perm[i])
}

// Noise2D returns 2D simplex noise for the given coordinates.
// Output is in the range [-1, 1].
func (ng *NoiseGenerator) Noise2D(x, y float64) float64 {
	const (
		f2 = 0.36602540378443864676 // (sqrt(3) - 1) / 2
		g2 = 0.21132486540518711775 // (3 - sqrt(3)) / 6
	)

	s := (x + y) * f2
	i := fastFloor(x + s)
	j := fastFloor(y + s)

	t := float64(i+j) * g2
	x0 := x - (float64(i) - t)
	y0 := y - (float64(j) - t)

	var i1, j1 int
	if x0 > y0 {
		i1 = 1
	} else {
		j1 = 1
	}

	x1 := x0 - float64(i1) + g2
	y1 := y0 - float64(j1) + g2
	x2 := x0 - 1.0 + 2.0*g2
	y2 := y0 - 1.0 + 2.0*g2

	ii := i & 255
	jj := j & 255
	gi0 := ng.hash(ii+ng.hash(jj)) % 12
	gi1 := ng.hash(ii+i1+ng.hash(jj+j1)) % 12
	gi2 := ng.hash(ii+1+ng.hash(jj+1)) % 12

	var n0, n1, n2 float64

	t0 := 0.5 - x0*x0 - y0*y0
	if t0 >= 0 {
		t0 *= t0
		n0 = t0 * t0 * dot2(grad3[gi0], x0, y0)
	}

	t1 := 0.5 - x1*x1 - y1*y1
	if t1 >= 0 {
		t1 *= t1
		n1 = t1 * t1 * dot2(grad3[gi1], x1, y1)
	}

	t2 := 0.5 - x2*x2 - y2*y2
	if t2 >= 0 {
		t2 *= t2
		n2 = t2 * t2 * dot2(grad3[gi2], x2, y2)
	}

	return clampUnit(70.0 * (n0 + n1 + n2))
}

// Noise3D returns 3D simplex noise for the given coordinates.
// Output is in the range [-1, 1].
func (ng *NoiseGenerator) Noise3D(x, y, z float64) float64 {
	const (
		f3 = 1.0 / 3.0
		g3 = 1.0 / 6.0
	)

	s := (x + y + z) * f3
	i := fastFloor(x + s)
	j := fastFloor(y + s)
	k := fastFloor(z + s)

	t := float64(i+j+k) * g3
	x0 := x - (float64(i) - t)
	y0 := y - (float64(j) - t)
	z0 := z - (float64(k) - t)

	var i1, j1, k1, i2, j2, k2 int
	if x0 >= y0 {
		if y0 >= z0 {
			i1, j1, k1 = 1, 0, 0
			i2, j2, k2 = 1, 1, 0
		} else if x0 >= z0 {
			i1, j1, k1 = 1, 0, 0
			i2, j2, k2 = 1, 0, 1
		} else {
			i1, j1, k1 = 0, 0, 1
			i2, j2, k2 = 1, 0, 1
		}
	} else {
		if y0 < z0 {
			i1, j1, k1 = 0, 0, 1
			i2, j2, k2 = 0, 1, 1
		} else if x0 < z0 {
			i1, j1, k1 = 0, 1, 0
			i2, j2, k2 = 0, 1, 1
		} else {
			i1, j1, k1 = 0, 1, 0
			i2, j2, k2 = 1, 1, 0
		}
	}

	x1 := x0 - float64(i1) + g3
	y1 := y0 - float64(j1) + g3
	z1 := z0 - float64(k1) + g3
	x2 := x0 - float64(i2) + 2.0*g3
	y2 := y0 - float64(j2) + 2.0*g3
	z2 := z0 - float64(k2) + 2.0*g3
	x3 := x0 - 1.0 + 3.0*g3
	y3 := y0 - 1.0 + 3.0*g3
	z3 := z0 - 1.0 + 3.0*g3

	ii := i & 255
	jj := j & 255
	kk := k & 255
	gi0 := ng.hash(ii+ng.hash(jj+ng.hash(kk))) % 12
	gi1 := ng.hash(ii+i1+ng.hash(jj+j1+ng.hash(kk+k1))) % 12
	gi2 := ng.hash(ii+i2+ng.hash(jj+j2+ng.hash(kk+k2))) % 12
	gi3 := ng.hash(ii+1+ng.hash(jj+1+ng.hash(kk+1))) % 12

	var n0, n1, n2, n3 float64

	t0 := 0.6 - x0*x0 - y0*y0 - z0*z0
	if t0 >= 0 {
		t0 *= t0
		n0 = t0 * t0 * dot3(grad3[gi0], x0, y0, z0)
	}

	t1 := 0.6 - x1*x1 - y1*y1 - z1*z1
	if t1 >= 0 {
		t1 *= t1
		n1 = t1 * t1 * dot3(grad3[gi1], x1, y1, z1)
	}

	t2 := 0.6 - x2*x2 - y2*y2 - z2*z2
	if t2 >= 0 {
		t2 *= t2
		n2 = t2 * t2 * dot3(grad3[gi2], x2, y2, z2)
	}

	t3 := 0.6 - x3*x3 - y3*y3 - z3*z3
	if t3 >= 0 {
		t3 *= t3
		n3 = t3 * t3 * dot3(grad3[gi3], x3, y3, z3)
	}

	return clampUnit(32.0 * (n0 + n1 + n2 + n3))
}

// OctaveNoise2D sums octaves of 2D noise, each one lacunarity times the
// frequency and persistence times the amplitude of the previous, and
// normalizes by the total amplitude. Returns a value in [-1, 1].
func (ng *NoiseGenerator) OctaveNoise2D(x, y float64, octaves int, persistence, lacunarity float64) float64 {
	if octaves < 1 {
		octaves = 1
	}
	var total, maxVal float64
	frequency := 1.0
	amplitude := 1.0

	for range octaves {
		total += ng.Noise2D(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= lacunarity
	}
	return clampUnit(total / maxVal)
}

// OctaveNoise3D layers multiple octaves of 3D noise.
func (ng *NoiseGenerator) OctaveNoise3D(x, y, z float64, octaves int, persistence, lacunarity float64) float64 {
	if octaves < 1 {
		octaves = 1
	}
	var total, maxVal float64
	frequency := 1.0
	amplitude := 1.0

	for range octaves {
		total += ng.Noise3D(x*frequency, y*frequency, z*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= lacunarity
	}
	return clampUnit(total / maxVal)
}

func fastFloor(x float64) int {
	xi := int(x)
	if x < float64(xi) {
		return xi - 1
	}
	return xi
}

func dot2(g [3]float64, x, y float64) float64 {
	return g[0]*x + g[1]*y
}

func dot3(g [3]float64, x, y, z float64) float64 {
	return g[0]*x + g[1]*y + g[2]*z
}

func clampUnit(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
