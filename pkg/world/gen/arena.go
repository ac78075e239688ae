package gen

// Reach of the cached window around a chunk. Tree candidates are evaluated
// up to decorationReach columns outside the chunk, every evaluated height
// interpolates shape nodes up to blendCell further out, and each node reads
// biomes blendRadius beyond that.
const (
	decorationReach = canopyMargin + maxTreeSpacing
	arenaPad        = decorationReach + blendCell + blendRadius
	arenaSize       = ChunkSize + 2*arenaPad
	nodeSpan        = arenaSize/blendCell + 2
)

type columnSample struct {
	climate Climate
	prelim  float64
	biome   Biome
}

// Arena is the scratch memory of one chunk generation: climate, biome and
// height caches over a window of world columns around the chunk. Entries are
// keyed by world coordinates and recomputed on every reset, so cached values
// are exactly what a fresh computation would return.
//
// An Arena must not be shared by concurrent generations. Give each worker
// its own, or let Generate allocate one per call.
type Arena struct {
	originX, originZ int

	samples   []columnSample
	sampled   []bool
	heights   []int
	hasHeight []bool

	nodeX, nodeZ int
	shapes       []shapeParams
	hasShape     []bool

	cands  []treeRoot
	isCand []bool
	roots  []treeRoot
}

// NewArena allocates scratch buffers for one in-flight generation.
func NewArena() *Arena {
	n := arenaSize * arenaSize
	return &Arena{
		samples:   make([]columnSample, n),
		sampled:   make([]bool, n),
		heights:   make([]int, n),
		hasHeight: make([]bool, n),
		shapes:    make([]shapeParams, nodeSpan*nodeSpan),
		hasShape:  make([]bool, nodeSpan*nodeSpan),
		cands:     make([]treeRoot, candidateSize*candidateSize),
		isCand:    make([]bool, candidateSize*candidateSize),
		roots:     make([]treeRoot, 0, 64),
	}
}

// reset positions the window on chunk (cx, cz) and invalidates every entry.
func (a *Arena) reset(cx, cz int) {
	a.originX = cx*ChunkSize - arenaPad
	a.originZ = cz*ChunkSize - arenaPad
	a.nodeX = floorDiv(a.originX, blendCell)
	a.nodeZ = floorDiv(a.originZ, blendCell)
	clear(a.sampled)
	clear(a.hasHeight)
	clear(a.hasShape)
	clear(a.isCand)
	a.roots = a.roots[:0]
}

// index returns the cache slot of a world column, or -1 outside the window.
func (a *Arena) index(wx, wz int) int {
	if a == nil {
		return -1
	}
	lx, lz := wx-a.originX, wz-a.originZ
	if lx < 0 || lx >= arenaSize || lz < 0 || lz >= arenaSize {
		return -1
	}
	return lx*arenaSize + lz
}

// nodeIndex returns the cache slot of a shape lattice node, or -1 outside
// the window.
func (a *Arena) nodeIndex(nx, nz int) int {
	if a == nil {
		return -1
	}
	lx, lz := nx-a.nodeX, nz-a.nodeZ
	if lx < 0 || lx >= nodeSpan || lz < 0 || lz >= nodeSpan {
		return -1
	}
	return lx*nodeSpan + lz
}
