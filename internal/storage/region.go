package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Tnze/go-mc/save/region"

	"github.com/OCharnyshevich/voxelgen/pkg/world/gen"
)

const regionSpan = 32

// ErrChunkNotFound is returned by LoadChunk when the chunk was never saved.
var ErrChunkNotFound = errors.New("chunk not found")

type regionPos struct{ X, Z int }

func regionOf(pos gen.ChunkPos) (regionPos, int, int) {
	rx, rz := region.At(pos.X, pos.Z)
	lx, lz := region.In(pos.X, pos.Z)
	return regionPos{rx, rz}, lx, lz
}

func (s *Storage) regionPath(rp regionPos) string {
	return filepath.Join(s.dir, "region", fmt.Sprintf("r.%d.%d.vgr", rp.X, rp.Z))
}

// SaveChunks writes chunks into their region files and returns the number
// of region files written. Chunks already stored in a region file and not
// in chunks are kept.
func (s *Storage) SaveChunks(chunks []*gen.Chunk) (int, error) {
	byRegion := make(map[regionPos]map[int][]byte)
	for _, c := range chunks {
		rp, lx, lz := regionOf(c.Pos())
		payload, err := encodeChunk(c)
		if err != nil {
			return 0, err
		}
		if byRegion[rp] == nil {
			byRegion[rp] = make(map[int][]byte)
		}
		byRegion[rp][lx+lz*regionSpan] = payload
	}

	for rp, payloads := range byRegion {
		if err := s.mergeExisting(rp, payloads); err != nil {
			return 0, err
		}
		if err := writeRegion(s.regionPath(rp), payloads); err != nil {
			return 0, fmt.Errorf("save region (%d,%d): %w", rp.X, rp.Z, err)
		}
		s.log.Debug("saved region", "x", rp.X, "z", rp.Z, "chunks", len(payloads))
	}
	return len(byRegion), nil
}

// mergeExisting copies every chunk of an existing region file that is not
// being replaced into payloads.
func (s *Storage) mergeExisting(rp regionPos, payloads map[int][]byte) error {
	path := s.regionPath(rp)
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	r, err := region.Open(path)
	if err != nil {
		return fmt.Errorf("open region %s: %w", path, err)
	}
	defer r.Close()

	for lz := 0; lz < regionSpan; lz++ {
		for lx := 0; lx < regionSpan; lx++ {
			idx := lx + lz*regionSpan
			if _, ok := payloads[idx]; ok || !r.ExistSector(lx, lz) {
				continue
			}
			data, err := r.ReadSector(lx, lz)
			if err != nil {
				return fmt.Errorf("read chunk %d of %s: %w", idx, path, err)
			}
			payloads[idx] = data
		}
	}
	return nil
}

// LoadChunk reads one chunk back from its region file.
func (s *Storage) LoadChunk(cx, cz int) (*gen.Chunk, error) {
	rp, lx, lz := regionOf(gen.ChunkPos{X: cx, Z: cz})
	path := s.regionPath(rp)
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load chunk (%d,%d): %w", cx, cz, ErrChunkNotFound)
	}

	r, err := region.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open region %s: %w", path, err)
	}
	defer r.Close()

	if !r.ExistSector(lx, lz) {
		return nil, fmt.Errorf("load chunk (%d,%d): %w", cx, cz, ErrChunkNotFound)
	}
	data, err := r.ReadSector(lx, lz)
	if err != nil {
		return nil, fmt.Errorf("read chunk (%d,%d): %w", cx, cz, err)
	}
	c, err := decodeChunk(data)
	if err != nil {
		return nil, fmt.Errorf("load chunk (%d,%d): %w", cx, cz, err)
	}
	return c, nil
}

// writeRegion writes a region file atomically: the chunks go into a fresh
// temp file that replaces path once complete. payloads maps the in-region
// index (x + z*32) to a sector payload: compression byte then data.
func writeRegion(path string, payloads map[int][]byte) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create region dir: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.Remove(tmp); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove stale temp region file: %w", err)
	}
	r, err := region.Create(tmp)
	if err != nil {
		return fmt.Errorf("create temp region file: %w", err)
	}
	defer func() {
		if err != nil {
			r.Close()
			os.Remove(tmp)
		}
	}()

	for idx := 0; idx < regionSpan*regionSpan; idx++ {
		payload, ok := payloads[idx]
		if !ok {
			continue
		}
		if err := r.WriteSector(idx%regionSpan, idx/regionSpan, payload); err != nil {
			return fmt.Errorf("write chunk %d: %w", idx, err)
		}
	}
	if err := r.PadToFullSector(); err != nil {
		return fmt.Errorf("pad region file: %w", err)
	}
	if err := r.Close(); err != nil {
		return fmt.Errorf("close region file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename region file: %w", err)
	}
	return nil
}
