package gen

import "math"

// Biome is a per-column categorical label.
type Biome uint8

// Biome ids. Values are persisted in biome maps; never reorder.
const (
	Ocean Biome = iota
	Beach
	Swamp
	Mountains
	SnowyMountains
	Snowy
	Forest
	Plains
	Savanna
	Desert

	biomeCount
)

// biomeInfo is one row of the biome attribute table.
type biomeInfo struct {
	name string

	surface           Block
	underwaterSurface Block
	// subsurface layers directly below the surface, top first.
	subsurface []Block
	frozen     bool

	treeDensity  float64 // base per-column root probability
	treeSpacing  int     // minimum distance between roots, in blocks
	canopyDrop   int     // leaf layers below the trunk top
	canopyRadius float64

	vegDensity float64
	flora      []Block

	// Height shaping, blended over neighbouring columns.
	terrainScale  float64
	heightOffset  float64
	ridge         float64
	flatten       float64
	floorVariance float64
}

var dirtLayers = []Block{Dirt, Dirt, Dirt}

// biomes is indexed by Biome. Adding a biome is adding a row here and a
// branch in classify.
var biomes = [biomeCount]biomeInfo{
	Ocean: {
		name: "ocean", surface: Gravel, underwaterSurface: Gravel,
		subsurface:   []Block{Gravel, Dirt, Dirt},
		terrainScale: 0.6, heightOffset: -4, floorVariance: 1,
	},
	Beach: {
		name: "beach", surface: Sand, underwaterSurface: Sand,
		subsurface:   []Block{Sand, Sand, Sand},
		terrainScale: 0.25, flatten: 0.7,
	},
	Swamp: {
		name: "swamp", surface: Grass, underwaterSurface: Clay,
		subsurface:  []Block{Clay, Dirt, Dirt},
		treeDensity: 0.02, treeSpacing: 5, canopyDrop: 2, canopyRadius: 2.5,
		vegDensity: 0.6, flora: []Block{TallGrass, Fern, TallGrass},
		terrainScale: 0.2, flatten: 0.8,
	},
	Mountains: {
		name: "mountains", surface: Grass, underwaterSurface: Gravel,
		subsurface:  []Block{Dirt, Dirt},
		treeDensity: 0.008, treeSpacing: 5, canopyDrop: 2, canopyRadius: 2,
		vegDensity: 0.3, flora: []Block{TallGrass},
		terrainScale: 1.8, heightOffset: 8, ridge: 1,
	},
	SnowyMountains: {
		name: "snowy_mountains", surface: Snow, underwaterSurface: Gravel,
		subsurface: []Block{Snow, Dirt}, frozen: true,
		treeDensity: 0.004, treeSpacing: 6, canopyDrop: 3, canopyRadius: 2,
		terrainScale: 2.0, heightOffset: 12, ridge: 1.2,
	},
	Snowy: {
		name: "snowy", surface: SnowyGrass, underwaterSurface: Gravel,
		subsurface: dirtLayers, frozen: true,
		treeDensity: 0.015, treeSpacing: 4, canopyDrop: 3, canopyRadius: 2,
		vegDensity: 0.25, flora: []Block{Fern},
		terrainScale: 0.9,
	},
	Forest: {
		name: "forest", surface: Grass, underwaterSurface: Dirt,
		subsurface:  dirtLayers,
		treeDensity: 0.06, treeSpacing: 3, canopyDrop: 2, canopyRadius: 2.5,
		vegDensity: 0.7, flora: []Block{TallGrass, Fern, Dandelion, Poppy},
		terrainScale: 1.0, heightOffset: 2,
	},
	Plains: {
		name: "plains", surface: Grass, underwaterSurface: Dirt,
		subsurface:  dirtLayers,
		treeDensity: 0.004, treeSpacing: 6, canopyDrop: 2, canopyRadius: 2.5,
		vegDensity: 0.9, flora: []Block{TallGrass, TallGrass, Dandelion, Poppy},
		terrainScale: 0.6,
	},
	Savanna: {
		name: "savanna", surface: Grass, underwaterSurface: Dirt,
		subsurface:  dirtLayers,
		treeDensity: 0.006, treeSpacing: 7, canopyDrop: 1, canopyRadius: 3,
		vegDensity: 0.8, flora: []Block{TallGrass, TallGrass, DeadBush},
		terrainScale: 0.7, heightOffset: 1,
	},
	Desert: {
		name: "desert", surface: Sand, underwaterSurface: Sand,
		subsurface: []Block{Sand, Sand, Sand, Sand},
		vegDensity: 0.15, flora: []Block{Cactus, DeadBush, DeadBush},
		terrainScale: 0.5,
	},
}

// Valid reports whether b is a known biome id.
func (b Biome) Valid() bool {
	return b < biomeCount
}

func (b Biome) String() string {
	if !b.Valid() {
		return "unknown"
	}
	return biomes[b].name
}

// canopy returns the leaf shape of trees in this biome. Rows without one
// (trees there only grow when forced) use a small round crown.
func (i *biomeInfo) canopy() (drop int, radius float64) {
	if i.canopyRadius <= 0 {
		return 2, 2.5
	}
	return i.canopyDrop, i.canopyRadius
}

func (b Biome) info() *biomeInfo {
	if !b.Valid() {
		return &biomes[Plains]
	}
	return &biomes[b]
}

// Biomes returns every biome id in table order.
func Biomes() []Biome {
	out := make([]Biome, 0, biomeCount)
	for b := Biome(0); b < biomeCount; b++ {
		out = append(out, b)
	}
	return out
}

// ParseBiome returns the biome with the given name.
func ParseBiome(name string) (Biome, bool) {
	for b := Biome(0); b < biomeCount; b++ {
		if biomes[b].name == name {
			return b, true
		}
	}
	return 0, false
}

// Classification thresholds.
const (
	oceanContinentalness    = 0.25
	coastContinentalness    = 0.33
	coastHeightBand         = 3
	mountainContinentalness = 0.85
	mountainErosion         = 0.3
	highlandHeight          = 70
)

// classify runs the ordered biome cascade. Earlier, more specific rules
// take priority over the generic climate table. prelim is the column's
// preliminary height, before biome shaping.
func classify(c Climate, prelim float64, seaLevel int) Biome {
	sea := float64(seaLevel)

	if c.Continentalness < oceanContinentalness {
		return Ocean
	}

	if c.Continentalness < coastContinentalness && math.Abs(prelim-sea) <= coastHeightBand {
		if c.Humidity > 0.65 && c.Temperature > 0.55 {
			return Swamp
		}
		return Beach
	}

	if c.Continentalness > mountainContinentalness && c.Erosion < mountainErosion {
		if c.Temperature < 0.3 {
			return SnowyMountains
		}
		return Mountains
	}

	if prelim > sea+highlandHeight {
		if c.Temperature < 0.4 {
			return Snowy
		}
		return Mountains
	}

	return climateTable(c.Temperature, c.Humidity)
}

// climateTable maps temperature and humidity to a biome.
//
//	Temp\Humidity   | Dry            | Medium          | Wet
//	Cold <0.3       | Snowy          | Snowy           | Snowy
//	Cool 0.3-0.5    | Plains (<0.5)  |                 | Forest
//	Mild 0.5-0.7    | Plains (<0.42) | Forest (<0.72)  | Swamp
//	Hot  >0.7       | Desert (<0.3)  | Savanna (<0.55) | Forest
func climateTable(temp, hum float64) Biome {
	switch {
	case temp < 0.3:
		return Snowy
	case temp < 0.5:
		if hum > 0.5 {
			return Forest
		}
		return Plains
	case temp < 0.7:
		switch {
		case hum > 0.72:
			return Swamp
		case hum > 0.42:
			return Forest
		default:
			return Plains
		}
	default:
		switch {
		case hum < 0.3:
			return Desert
		case hum < 0.55:
			return Savanna
		default:
			return Forest
		}
	}
}

// Altitude bands that override a biome's surface material.
const (
	bareRockHeight = 48 // above sea level, mountains
	redSandHeight  = 20 // above sea level, desert
)

// surfaceFor returns the block at the top of a column of height h.
func surfaceFor(b Biome, h, seaLevel int) Block {
	info := b.info()
	if h < seaLevel {
		return info.underwaterSurface
	}
	switch {
	case b == Mountains && h > seaLevel+bareRockHeight:
		return Stone
	case b == Desert && h > seaLevel+redSandHeight:
		return RedSand
	}
	return info.surface
}

// subsurfaceFor returns the i-th layer below the surface (0 = directly
// beneath it), or Stone past the biome's subsurface depth.
func subsurfaceFor(b Biome, h, seaLevel, i int) Block {
	info := b.info()
	if i < 0 || i >= len(info.subsurface) {
		return Stone
	}
	if b == Mountains && h > seaLevel+bareRockHeight {
		return Stone
	}
	if b == Desert && h > seaLevel+redSandHeight {
		return RedSand
	}
	return info.subsurface[i]
}
