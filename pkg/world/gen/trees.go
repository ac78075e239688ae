package gen

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// canopyMargin is how far a canopy can reach past its root column; the
	// tree scan extends this far beyond the chunk.
	canopyMargin   = 3
	maxTreeSpacing = 7
	clusterScale   = 1.0 / 48.0
	// leafJitter is the chance an outer-shell leaf is left out.
	leafJitter = 0.35

	candidateSize = ChunkSize + 2*decorationReach
)

// treeRoot is an accepted or candidate tree position in world space.
type treeRoot struct {
	wx, wz   int
	surface  int // terrain y under the trunk
	trunk    int // trunk length in blocks
	biome    Biome
	priority uint64 // lower wins spacing conflicts
	forced   bool
}

// treeCandidate evaluates world column (wx, wz) as a tree root. Everything
// it reads is recomputed through the generation pipeline, so the answer is
// the same whichever chunk asks.
func (g *Generator) treeCandidate(a *Arena, wx, wz int) (treeRoot, bool) {
	o := &g.opts
	s := g.sample(a, wx, wz)
	h := g.height(a, wx, wz)
	trunk := o.TreeMinHeight + int(hash2(g.seed, wx, wz, saltTreeHeight)%uint64(o.TreeMaxHeight-o.TreeMinHeight+1))

	if _, ok := g.forcedRoots[ChunkPos{X: wx, Z: wz}]; ok {
		return treeRoot{wx: wx, wz: wz, surface: h, trunk: trunk, biome: s.biome, forced: true}, true
	}

	info := s.biome.info()
	if info.treeDensity <= 0 || h <= o.SeaLevel {
		return treeRoot{}, false
	}
	if h+trunk+2 > MaxY {
		return treeRoot{}, false
	}
	if !isSoil(surfaceFor(s.biome, h, o.SeaLevel)) {
		return treeRoot{}, false
	}

	roll := hash2(g.seed, wx, wz, saltTreeRoot)
	cluster := mgl64.Clamp(0.5+0.75*g.cluster.OctaveNoise2D(float64(wx)*clusterScale, float64(wz)*clusterScale, 2, 0.5, 2), 0, 1)
	if unit(roll) >= info.treeDensity*cluster*o.TreeProbability {
		return treeRoot{}, false
	}

	return treeRoot{
		wx: wx, wz: wz,
		surface:  h,
		trunk:    trunk,
		biome:    s.biome,
		priority: roll,
	}, true
}

// beats reports whether r takes precedence over q: forced roots first, then
// the lower hash, then scan order.
func (r treeRoot) beats(q treeRoot) bool {
	if r.forced != q.forced {
		return r.forced
	}
	if r.priority != q.priority {
		return r.priority < q.priority
	}
	if r.wx != q.wx {
		return r.wx < q.wx
	}
	return r.wz < q.wz
}

func spacingOf(b Biome) int {
	return min(b.info().treeSpacing, maxTreeSpacing)
}

// conflicts reports whether two roots sit closer than the larger of their
// biome spacings.
func conflicts(r, q treeRoot) bool {
	s := float64(max(spacingOf(r.biome), spacingOf(q.biome)))
	d := mgl64.Vec2{float64(r.wx - q.wx), float64(r.wz - q.wz)}
	return d.Dot(d) < s*s
}

// collectRoots fills a.roots with the accepted tree roots whose canopy can
// reach chunk (cx, cz), in x-major scan order. A candidate is accepted when
// no candidate that beats it lies within spacing distance. The test only
// looks at candidates, never at other acceptances, so two chunks scanning
// overlapping windows agree on every root they share.
func (g *Generator) collectRoots(a *Arena, cx, cz int) []treeRoot {
	x0 := cx*ChunkSize - decorationReach
	z0 := cz*ChunkSize - decorationReach

	cands, isCand := a.cands, a.isCand
	clear(isCand)
	for i := 0; i < candidateSize; i++ {
		for j := 0; j < candidateSize; j++ {
			if r, ok := g.treeCandidate(a, x0+i, z0+j); ok {
				cands[i*candidateSize+j] = r
				isCand[i*candidateSize+j] = true
			}
		}
	}

	a.roots = a.roots[:0]
	lo := decorationReach - canopyMargin
	hi := decorationReach + ChunkSize + canopyMargin
	for i := lo; i < hi; i++ {
		for j := lo; j < hi; j++ {
			if !isCand[i*candidateSize+j] {
				continue
			}
			r := cands[i*candidateSize+j]
			if r.forced || !g.outranked(r, cands, isCand, i, j) {
				a.roots = append(a.roots, r)
			}
		}
	}
	return a.roots
}

func (g *Generator) outranked(r treeRoot, cands []treeRoot, isCand []bool, i, j int) bool {
	for di := -maxTreeSpacing; di <= maxTreeSpacing; di++ {
		for dj := -maxTreeSpacing; dj <= maxTreeSpacing; dj++ {
			if di == 0 && dj == 0 {
				continue
			}
			ni, nj := i+di, j+dj
			if ni < 0 || ni >= candidateSize || nj < 0 || nj >= candidateSize {
				continue
			}
			if !isCand[ni*candidateSize+nj] {
				continue
			}
			q := cands[ni*candidateSize+nj]
			if conflicts(r, q) && q.beats(r) {
				return true
			}
		}
	}
	return false
}

// canopyFloor is the lowest leaf layer of a tree.
func (r treeRoot) canopyFloor() int {
	drop, _ := r.biome.info().canopy()
	return r.surface + r.trunk - drop
}

// placeTree writes the part of a tree that falls inside chunk c. Trunks
// replace air, leaves, water and flora; leaves only fill open air above the
// terrain. The final voxel is therefore the same in whatever order overlapping trees land.
func (g *Generator) placeTree(c *Chunk, r treeRoot) {
	ox, oz := c.X*ChunkSize, c.Z*ChunkSize
	lx, lz := r.wx-ox, r.wz-oz
	top := r.surface + r.trunk

	for y := r.surface + 1; y <= top; y++ {
		switch cur := c.Block(lx, y, lz); {
		case cur == Air, cur == Leaves, cur == Water, IsFlora(cur):
			c.SetBlock(lx, y, lz, Wood)
		}
	}

	_, radius := r.biome.info().canopy()
	reach := int(math.Ceil(radius))
	center := mgl64.Vec3{float64(r.wx), float64(top), float64(r.wz)}

	for y := r.canopyFloor(); y <= top+1; y++ {
		for dx := -reach; dx <= reach; dx++ {
			for dz := -reach; dz <= reach; dz++ {
				wx, wz := r.wx+dx, r.wz+dz
				px, pz := wx-ox, wz-oz
				if px < 0 || px >= ChunkSize || pz < 0 || pz >= ChunkSize {
					continue
				}
				if dx == 0 && dz == 0 && y <= top {
					continue
				}
				dist := mgl64.Vec3{float64(wx), float64(y), float64(wz)}.Sub(center).Len()
				if dist > radius {
					continue
				}
				if dist > radius-0.8 && unit(hash3(wx, y, wz, saltTreeLeaf^uint64(g.seed))) < leafJitter {
					continue
				}
				if y > c.Height(px, pz) && c.Block(px, y, pz) == Air {
					c.SetBlock(px, y, pz, Leaves)
				}
			}
		}
	}
}

// decorateTrees places every tree that reaches chunk c.
func (g *Generator) decorateTrees(a *Arena, c *Chunk) {
	for _, r := range g.collectRoots(a, c.X, c.Z) {
		g.placeTree(c, r)
	}
}
