package gen

// Position hashes for decisions that must not depend on chunk-local
// coordinates: tree roots, vegetation picks and the bedrock boundary.

// Hash salts, one per decision.
const (
	saltTreeRoot   uint64 = 0x9e3779b97f4a7c15
	saltTreeHeight uint64 = 0xbf58476d1ce4e5b9
	saltTreeLeaf   uint64 = 0x94d049bb133111eb
	saltVegPlace   uint64 = 0x2545f4914f6cdd1d
	saltVegPick    uint64 = 0x5851f42d4c957f2d
	saltBedrock    uint64 = 0x14057b7ef767814f
)

func mix64(h uint64) uint64 {
	h ^= h >> 30
	h *= 0xbf58476d1ce4e5b9
	h ^= h >> 27
	h *= 0x94d049bb133111eb
	h ^= h >> 31
	return h
}

// hash2 hashes a world column with the seed and a salt.
func hash2(seed int64, x, z int, salt uint64) uint64 {
	h := uint64(seed) ^ salt
	h = mix64(h ^ uint64(int64(x))*0x9e3779b97f4a7c15)
	h = mix64(h ^ uint64(int64(z))*0xc2b2ae3d27d4eb4f)
	return h
}

// hash3 hashes a voxel position with a salt. It deliberately ignores the
// world seed; see positionHash01.
func hash3(x, y, z int, salt uint64) uint64 {
	h := salt
	h = mix64(h ^ uint64(int64(x))*0x9e3779b97f4a7c15)
	h = mix64(h ^ uint64(int64(y))*0x165667b19e3779f9)
	h = mix64(h ^ uint64(int64(z))*0xc2b2ae3d27d4eb4f)
	return h
}

// unit maps a hash to [0, 1).
func unit(h uint64) float64 {
	return float64(h>>11) / float64(1<<53)
}

func columnHash01(seed int64, x, z int, salt uint64) float64 {
	return unit(hash2(seed, x, z, salt))
}

// positionHash01 is the seed-independent voxel hash used for the bedrock
// boundary texture.
func positionHash01(x, y, z int) float64 {
	return unit(hash3(x, y, z, saltBedrock))
}
