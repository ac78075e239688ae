package gen

import "testing"

func TestCavesRespectBounds(t *testing.T) {
	opts := Options{CaveThreshold: 0.01}.Normalize()
	cg := NewCaveGenerator(5, opts)

	for x := 0; x < 32; x++ {
		for z := 0; z < 32; z++ {
			if cg.Carves(x, MinY, z) {
				t.Fatalf("carved the bedrock floor at (%d,%d)", x, z)
			}
			if cg.Carves(x, opts.CaveMaxY+1, z) {
				t.Fatalf("carved above CaveMaxY at (%d,%d)", x, z)
			}
		}
	}
}

func TestCavesExist(t *testing.T) {
	cg := NewCaveGenerator(5, DefaultOptions())
	carved := 0
	for x := 0; x < 32; x++ {
		for z := 0; z < 32; z++ {
			for y := -40; y < 20; y++ {
				if cg.Carves(x, y, z) {
					carved++
				}
			}
		}
	}
	if carved == 0 {
		t.Error("no cave voxels in a 32x60x32 block of stone")
	}
}

func TestCaveThresholdBias(t *testing.T) {
	cg := NewCaveGenerator(0, DefaultOptions())
	mid := cg.thresholdAt(0)
	if cg.thresholdAt(cg.seaLevel+20) <= mid {
		t.Error("threshold should rise above sea level")
	}
	if cg.thresholdAt(MinY+1) <= mid {
		t.Error("threshold should rise near the floor")
	}
}

func TestOreField(t *testing.T) {
	of := NewOreField(12)
	for x := 0; x < 32; x++ {
		for z := 0; z < 32; z++ {
			if b, ok := of.At(x, 200, z); ok {
				t.Fatalf("%v at y=200, above every ore ceiling", b)
			}
		}
	}
}
