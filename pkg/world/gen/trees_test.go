package gen

import (
	"math"
	"slices"
	"testing"
)

func withForcedTree(g *Generator, wx, wz int) *Generator {
	return g.WithForcedTrees(ChunkPos{X: wx, Z: wz})
}

func TestForcedTree(t *testing.T) {
	// Nearly zero tree probability, so the forced tree is alone.
	opts := Options{TreeProbability: 1e-9}

	var g *Generator
	for seed := int64(0); seed < 64; seed++ {
		cand := New(seed, opts)
		b := cand.BiomeAt(8, 8)
		if cand.HeightAt(8, 8) > cand.Options().SeaLevel && b != Mountains && b != SnowyMountains {
			g = cand
			break
		}
	}
	if g == nil {
		t.Skip("no lowland column at (8,8) in the seeds tried")
	}
	g = withForcedTree(g, 8, 8)
	o := g.Options()

	c := g.Generate(0, 0)
	h := c.Height(8, 8)

	run := 0
	for y := h + 1; c.Block(8, y, 8) == Wood; y++ {
		run++
	}
	if run < o.TreeMinHeight || run > o.TreeMaxHeight {
		t.Fatalf("trunk length %d, want within [%d, %d]", run, o.TreeMinHeight, o.TreeMaxHeight)
	}

	drop, radius := c.Biome(8, 8).info().canopy()
	top := h + run
	floor := top - drop
	center := [3]float64{8, float64(top), 8}

	leaves := 0
	for x := 0; x < ChunkSize; x++ {
		for z := 0; z < ChunkSize; z++ {
			for y := MinY; y <= MaxY; y++ {
				if c.Block(x, y, z) != Leaves {
					continue
				}
				leaves++
				if y < floor {
					t.Errorf("leaf at (%d,%d,%d) below canopy floor %d", x, y, z, floor)
				}
				dx, dy, dz := float64(x)-center[0], float64(y)-center[1], float64(z)-center[2]
				if d := math.Sqrt(dx*dx + dy*dy + dz*dz); d > radius {
					t.Errorf("leaf at (%d,%d,%d) is %.2f from the trunk top, radius %.1f", x, y, z, d, radius)
				}
			}
		}
	}
	if leaves < 4 {
		t.Errorf("only %d leaves around the forced tree", leaves)
	}
}

func TestTreeRootsAgreeAcrossChunks(t *testing.T) {
	for _, seed := range []int64{0, 19, 4242} {
		g := withForcedTree(New(seed, Options{TreeProbability: 4}), 15, 8)

		left := slices.Clone(g.collectRoots(newTestArena(0, 0), 0, 0))
		right := slices.Clone(g.collectRoots(newTestArena(1, 0), 1, 0))

		// Both windows cover roots with x in [13, 18].
		shared := func(roots []treeRoot) []treeRoot {
			var out []treeRoot
			for _, r := range roots {
				if r.wx >= ChunkSize-canopyMargin && r.wx < ChunkSize+canopyMargin {
					out = append(out, r)
				}
			}
			slices.SortFunc(out, func(a, b treeRoot) int {
				if a.wx != b.wx {
					return a.wx - b.wx
				}
				return a.wz - b.wz
			})
			return out
		}

		l, r := shared(left), shared(right)
		if !slices.Equal(l, r) {
			t.Fatalf("seed %d: chunks disagree on shared roots:\n(0,0): %v\n(1,0): %v", seed, l, r)
		}
		if !slices.ContainsFunc(l, func(r treeRoot) bool { return r.wx == 15 && r.wz == 8 }) {
			t.Errorf("seed %d: forced root (15,8) missing from the shared set", seed)
		}
	}
}

func TestTreePlacementIsIdempotent(t *testing.T) {
	g := withForcedTree(New(11, Options{TreeProbability: 4}), 15, 8)

	left := slices.Clone(g.collectRoots(newTestArena(0, 0), 0, 0))
	c := g.Generate(1, 0)
	replay := NewChunk(1, 0)
	copy(replay.Data, c.Data)
	copy(replay.HeightMap, c.HeightMap)
	copy(replay.BiomeMap, c.BiomeMap)

	// Re-placing trees the neighbour sees must not change a finished chunk.
	for _, r := range left {
		g.placeTree(replay, r)
	}
	if !slices.Equal(replay.Data, c.Data) {
		t.Fatal("replaying shared trees changed chunk (1,0)")
	}
}

func TestTreesNeverBelowSeaLevel(t *testing.T) {
	g := New(8, Options{TreeProbability: 4})
	sea := g.Options().SeaLevel
	for _, pos := range []ChunkPos{{0, 0}, {3, -3}} {
		for _, r := range g.collectRoots(newTestArena(pos.X, pos.Z), pos.X, pos.Z) {
			if r.surface <= sea {
				t.Errorf("tree at (%d,%d) rooted at y=%d, sea level %d", r.wx, r.wz, r.surface, sea)
			}
			if !isSoil(surfaceFor(r.biome, r.surface, sea)) {
				t.Errorf("tree at (%d,%d) rooted on %v", r.wx, r.wz, surfaceFor(r.biome, r.surface, sea))
			}
		}
	}
}

func TestTreeSpacing(t *testing.T) {
	g := New(321, Options{TreeProbability: 8})
	roots := g.collectRoots(newTestArena(0, 0), 0, 0)
	for i, r := range roots {
		for _, q := range roots[i+1:] {
			if conflicts(r, q) {
				t.Errorf("roots (%d,%d) and (%d,%d) closer than their spacing", r.wx, r.wz, q.wx, q.wz)
			}
		}
	}
}

func TestWithForcedTreesLeavesOriginal(t *testing.T) {
	g := New(1, Options{})
	forced := g.WithForcedTrees(ChunkPos{X: 3, Z: 4})
	if len(g.forcedRoots) != 0 {
		t.Error("WithForcedTrees modified the receiver")
	}
	if _, ok := forced.forcedRoots[ChunkPos{X: 3, Z: 4}]; !ok {
		t.Error("forced root missing from the copy")
	}
}

func newTestArena(cx, cz int) *Arena {
	a := NewArena()
	a.reset(cx, cz)
	return a
}
