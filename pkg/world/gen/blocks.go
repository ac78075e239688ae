package gen

// World dimensions shared with every consumer of generated chunks.
const (
	ChunkSize = 16
	MinY      = -64
	MaxY      = 319
	Height    = MaxY - MinY + 1 // 384

	columnCount = ChunkSize * ChunkSize
	voxelCount  = columnCount * Height
)

// Block is a voxel block id.
type Block uint8

// Block ids. The numeric values are part of the on-disk and consumer
// contract; append new ids before blockCount, never reorder.
const (
	Air Block = iota
	Stone
	Dirt
	Grass
	SnowyGrass
	Water
	Sand
	RedSand
	Wood
	Leaves
	Gravel
	CoalOre
	IronOre
	GoldOre
	DiamondOre
	Bedrock
	Clay
	Snow
	Ice
	Cactus
	TallGrass
	Fern
	Dandelion
	Poppy
	DeadBush

	blockCount
)

var blockNames = [blockCount]string{
	Air:        "air",
	Stone:      "stone",
	Dirt:       "dirt",
	Grass:      "grass",
	SnowyGrass: "snowy_grass",
	Water:      "water",
	Sand:       "sand",
	RedSand:    "red_sand",
	Wood:       "wood",
	Leaves:     "leaves",
	Gravel:     "gravel",
	CoalOre:    "coal_ore",
	IronOre:    "iron_ore",
	GoldOre:    "gold_ore",
	DiamondOre: "diamond_ore",
	Bedrock:    "bedrock",
	Clay:       "clay",
	Snow:       "snow",
	Ice:        "ice",
	Cactus:     "cactus",
	TallGrass:  "tall_grass",
	Fern:       "fern",
	Dandelion:  "dandelion",
	Poppy:      "poppy",
	DeadBush:   "dead_bush",
}

// Valid reports whether b is a known block id.
func (b Block) Valid() bool {
	return b < blockCount
}

func (b Block) String() string {
	if !b.Valid() {
		return "unknown"
	}
	return blockNames[b]
}

// ParseBlock returns the block with the given name.
func ParseBlock(name string) (Block, bool) {
	for b := Block(0); b < blockCount; b++ {
		if blockNames[b] == name {
			return b, true
		}
	}
	return Air, false
}

// IsFlora reports whether b is a single-voxel decorative plant.
func IsFlora(b Block) bool {
	switch b {
	case TallGrass, Fern, Dandelion, Poppy, DeadBush:
		return true
	}
	return false
}

// IsLiquid reports whether b is a fluid.
func IsLiquid(b Block) bool {
	return b == Water
}

// IsSolid reports whether b occupies its full voxel for collision and
// point queries such as FirstSolidBelow.
func IsSolid(b Block) bool {
	switch b {
	case Air, Water:
		return false
	}
	return !IsFlora(b)
}

// IsPassable reports whether entities and liquids can move through b.
func IsPassable(b Block) bool {
	return !IsSolid(b)
}

// IsTransparent reports whether light passes through b without being fully
// blocked. Leaves, ice and water attenuate light but do not stop it.
func IsTransparent(b Block) bool {
	switch b {
	case Air, Water, Ice, Leaves:
		return true
	}
	return IsFlora(b)
}

// IsOpaque reports whether b fully blocks light; meshing culls faces between
// two opaque blocks.
func IsOpaque(b Block) bool {
	return b.Valid() && !IsTransparent(b) && b != Cactus
}

// isSoil reports whether a tree may root in b.
func isSoil(b Block) bool {
	switch b {
	case Grass, SnowyGrass, Dirt:
		return true
	}
	return false
}

// isPlantable reports whether flora may grow on b.
func isPlantable(b Block) bool {
	switch b {
	case Grass, SnowyGrass, Sand, RedSand:
		return true
	}
	return false
}
