package storage

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/OCharnyshevich/voxelgen/pkg/world/gen"
)

// manifestVersion is bumped whenever the chunk payload layout changes.
const manifestVersion = 1

// worldNamespace scopes world ids derived from generation parameters.
var worldNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("voxelgen/world"))

// Manifest describes an exported world.
type Manifest struct {
	ID        uuid.UUID   `json:"id"`
	Version   int         `json:"version"`
	Seed      int64       `json:"seed"`
	Generator string      `json:"generator"`
	Terrain   gen.Options `json:"terrain"`
	Chunks    int         `json:"chunks"`
	Regions   int         `json:"regions"`
	SavedAt   time.Time   `json:"saved_at"`
}

// NewManifest builds a manifest for a world. The id depends only on the
// generator, seed and normalized options, so regenerating the same world
// yields the same id.
func NewManifest(seed int64, generator string, terrain gen.Options) *Manifest {
	terrain = terrain.Normalize()
	key := fmt.Sprintf("%s:%d:%+v", generator, seed, terrain)
	return &Manifest{
		ID:        uuid.NewSHA1(worldNamespace, []byte(key)),
		Version:   manifestVersion,
		Seed:      seed,
		Generator: generator,
		Terrain:   terrain,
	}
}

// OverridesData holds consumer block edits for persistence.
type OverridesData struct {
	Overrides []BlockOverrideEntry `json:"overrides"`
}

// BlockOverrideEntry is a single block override for JSON serialization.
type BlockOverrideEntry struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Z     int    `json:"z"`
	Block string `json:"block"`
}

// chunkNBT is the NBT payload of one chunk inside a region file.
type chunkNBT struct {
	Version   int32   `nbt:"Version"`
	XPos      int32   `nbt:"xPos"`
	ZPos      int32   `nbt:"zPos"`
	MinY      int32   `nbt:"MinY"`
	Height    int32   `nbt:"Height"`
	Blocks    []byte  `nbt:"Blocks"`
	HeightMap []int32 `nbt:"HeightMap"`
	Biomes    []byte  `nbt:"Biomes"`
}
