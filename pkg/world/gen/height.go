package gen

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Biome shaping parameters are averaged on a world-aligned lattice of nodes
// blendCell blocks apart, each node weighing the biomes within blendRadius
// blocks of it, and columns interpolate between the four surrounding nodes.
// blendRadius must be a multiple of blendCell.
const (
	blendCell   = 4
	blendRadius = 12

	blendTaps = blendRadius / blendCell
)

// continentKnot is a point of the continentalness to height curve. Heights
// are relative to sea level (relSea) or to BaseHeight.
type continentKnot struct {
	c      float64
	offset float64
	relSea bool
}

var continentCurve = []continentKnot{
	{0.00, -40, true}, // deep ocean
	{0.22, -18, true}, // continental shelf
	{0.34, 1, true},   // coastline
	{0.55, 0, false},  // inland
	{0.85, 18, false}, // highlands
	{maxContinentalness, 60, false},
}

func smoothstep(t float64) float64 {
	t = mgl64.Clamp(t, 0, 1)
	return t * t * (3 - 2*t)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*mgl64.Clamp(t, 0, 1)
}

// continentHeight maps continentalness to a base surface height through a
// smoothly interpolated piecewise curve.
func (g *Generator) continentHeight(c float64) float64 {
	knotHeight := func(k continentKnot) float64 {
		if k.relSea {
			return float64(g.opts.SeaLevel) + k.offset
		}
		return float64(g.opts.BaseHeight) + k.offset
	}

	if c <= continentCurve[0].c {
		return knotHeight(continentCurve[0])
	}
	for i := 1; i < len(continentCurve); i++ {
		lo, hi := continentCurve[i-1], continentCurve[i]
		if c <= hi.c {
			t := (c - lo.c) / (hi.c - lo.c)
			return lerp(knotHeight(lo), knotHeight(hi), smoothstep(t))
		}
	}
	return knotHeight(continentCurve[len(continentCurve)-1])
}

// terrainNoise is the base+detail octave noise in blocks, before biome
// scaling.
func (g *Generator) terrainNoise(wx, wz int) float64 {
	o := &g.opts
	x, z := float64(wx)*o.Scale, float64(wz)*o.Scale
	base := g.terrain.OctaveNoise2D(x, z, o.Octaves, o.Persistence, o.Lacunarity)
	detail := g.detail.OctaveNoise2D(x*4, z*4, 3, 0.5, o.Lacunarity)
	return base*o.Amplitude + detail*4
}

// erosionDamping flattens terrain as erosion rises.
func erosionDamping(erosion float64) float64 {
	return lerp(1.15, 0.35, erosion)
}

// preliminaryHeight is the biome-independent height used by classification.
func (g *Generator) preliminaryHeight(wx, wz int, c Climate) float64 {
	return g.continentHeight(c.Continentalness) + g.terrainNoise(wx, wz)*erosionDamping(c.Erosion)
}

// sample returns climate, preliminary height and biome of a world column,
// through the arena cache when the column lies inside its window.
func (g *Generator) sample(a *Arena, wx, wz int) columnSample {
	idx := a.index(wx, wz)
	if idx >= 0 && a.sampled[idx] {
		return a.samples[idx]
	}

	c := g.climate.sample(wx, wz)
	prelim := g.preliminaryHeight(wx, wz, c)
	s := columnSample{
		climate: c,
		prelim:  prelim,
		biome:   classify(c, prelim, g.opts.SeaLevel),
	}

	if idx >= 0 {
		a.samples[idx] = s
		a.sampled[idx] = true
	}
	return s
}

// shapeParams are the biome height parameters after neighbourhood blending.
type shapeParams struct {
	scale, offset, ridge, flatten, floorVariance float64
}

func mixShape(a, b shapeParams, t float64) shapeParams {
	return shapeParams{
		scale:         lerp(a.scale, b.scale, t),
		offset:        lerp(a.offset, b.offset, t),
		ridge:         lerp(a.ridge, b.ridge, t),
		flatten:       lerp(a.flatten, b.flatten, t),
		floorVariance: lerp(a.floorVariance, b.floorVariance, t),
	}
}

// shapeNode averages biome shaping parameters around lattice node (nx, nz)
// with a tent kernel. Taps fall on lattice points, so every node reads the
// same world columns no matter which column asked for it.
func (g *Generator) shapeNode(a *Arena, nx, nz int) shapeParams {
	idx := a.nodeIndex(nx, nz)
	if idx >= 0 && a.hasShape[idx] {
		return a.shapes[idx]
	}

	var p shapeParams
	var total float64
	for i := -blendTaps; i <= blendTaps; i++ {
		for j := -blendTaps; j <= blendTaps; j++ {
			w := float64(blendTaps+1-absInt(i)) * float64(blendTaps+1-absInt(j))
			info := g.sample(a, (nx+i)*blendCell, (nz+j)*blendCell).biome.info()
			p.scale += info.terrainScale * w
			p.offset += info.heightOffset * w
			p.ridge += info.ridge * w
			p.flatten += info.flatten * w
			p.floorVariance += info.floorVariance * w
			total += w
		}
	}
	p.scale /= total
	p.offset /= total
	p.ridge /= total
	p.flatten /= total
	p.floorVariance /= total

	if idx >= 0 {
		a.shapes[idx] = p
		a.hasShape[idx] = true
	}
	return p
}

// blendedShape interpolates the lattice nodes around a column, so a biome
// boundary changes height gradually even though the label switches
// discretely. Adjacent columns differ by at most 1/((blendTaps+1)*blendCell)
// of a parameter's spread across the biome table.
func (g *Generator) blendedShape(a *Arena, wx, wz int) shapeParams {
	nx, nz := floorDiv(wx, blendCell), floorDiv(wz, blendCell)
	tx := float64(wx-nx*blendCell) / blendCell
	tz := float64(wz-nz*blendCell) / blendCell

	near := mixShape(g.shapeNode(a, nx, nz), g.shapeNode(a, nx+1, nz), tx)
	far := mixShape(g.shapeNode(a, nx, nz+1), g.shapeNode(a, nx+1, nz+1), tx)
	return mixShape(near, far, tz)
}

// ridgeBonus is ridged noise peaking along thin crests.
func (g *Generator) ridgeBonus(wx, wz int) float64 {
	n := g.ridge.OctaveNoise2D(float64(wx)/220, float64(wz)/220, 4, 0.5, 2)
	r := 1 - math.Abs(n)
	return r * r * 44
}

func (g *Generator) oceanFloor(wx, wz int) float64 {
	return g.detail.OctaveNoise2D(float64(wx)/40+100, float64(wz)/40+100, 2, 0.5, 2) * 6
}

// height returns the terrain surface y of a world column.
func (g *Generator) height(a *Arena, wx, wz int) int {
	idx := a.index(wx, wz)
	if idx >= 0 && a.hasHeight[idx] {
		return a.heights[idx]
	}

	s := g.sample(a, wx, wz)
	p := g.blendedShape(a, wx, wz)
	sea := float64(g.opts.SeaLevel)

	h := g.continentHeight(s.climate.Continentalness)
	h += g.terrainNoise(wx, wz) * erosionDamping(s.climate.Erosion) * p.scale
	h += p.offset
	if p.ridge > 0 {
		h += p.ridge * g.ridgeBonus(wx, wz) * (1 - 0.5*s.climate.Erosion)
	}
	if p.floorVariance > 0 {
		h += p.floorVariance * g.oceanFloor(wx, wz)
	}
	// Flattened biomes settle on the continent's own level, or just above
	// the sea on the coast.
	h = lerp(h, math.Max(sea+1, g.continentHeight(s.climate.Continentalness)), p.flatten)

	h = mgl64.Clamp(h, MinY, MaxY)
	out := int(math.Floor(h))

	if idx >= 0 {
		a.heights[idx] = out
		a.hasHeight[idx] = true
	}
	return out
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
