package storage

import (
	"bytes"
	"compress/gzip"
	"compress/zlib"
	"errors"
	"fmt"
	"io"

	"github.com/Tnze/go-mc/nbt"

	"github.com/OCharnyshevich/voxelgen/pkg/world/gen"
)

const (
	compressionGzip = 1
	compressionZlib = 2
)

var errBadPayload = errors.New("malformed chunk payload")

// encodeChunk serializes c as zlib-compressed NBT, prefixed by the
// compression type byte, ready to be stored in a region sector.
func encodeChunk(c *gen.Chunk) ([]byte, error) {
	payload := chunkNBT{
		Version:   manifestVersion,
		XPos:      int32(c.X),
		ZPos:      int32(c.Z),
		MinY:      gen.MinY,
		Height:    gen.Height,
		Blocks:    make([]byte, len(c.Data)),
		HeightMap: make([]int32, len(c.HeightMap)),
		Biomes:    make([]byte, len(c.BiomeMap)),
	}
	for i, b := range c.Data {
		payload.Blocks[i] = byte(b)
	}
	for i, h := range c.HeightMap {
		payload.HeightMap[i] = int32(h)
	}
	for i, b := range c.BiomeMap {
		payload.Biomes[i] = byte(b)
	}

	var buf bytes.Buffer
	buf.WriteByte(compressionZlib)
	zw := zlib.NewWriter(&buf)
	if err := nbt.NewEncoder(zw).Encode(payload, ""); err != nil {
		return nil, fmt.Errorf("encode chunk (%d,%d): %w", c.X, c.Z, err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close zlib writer: %w", err)
	}
	return buf.Bytes(), nil
}

// decodeChunk parses a region sector payload back into a chunk.
func decodeChunk(data []byte) (*gen.Chunk, error) {
	if len(data) < 1 {
		return nil, errBadPayload
	}

	var r io.Reader
	var err error
	switch data[0] {
	case compressionGzip:
		r, err = gzip.NewReader(bytes.NewReader(data[1:]))
	case compressionZlib:
		r, err = zlib.NewReader(bytes.NewReader(data[1:]))
	default:
		return nil, fmt.Errorf("%w: compression type %d", errBadPayload, data[0])
	}
	if err != nil {
		return nil, fmt.Errorf("open compressed chunk: %w", err)
	}

	var payload chunkNBT
	if _, err := nbt.NewDecoder(r).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode chunk nbt: %w", err)
	}

	c := gen.NewChunk(int(payload.XPos), int(payload.ZPos))
	if payload.MinY != gen.MinY || payload.Height != gen.Height ||
		len(payload.Blocks) != len(c.Data) ||
		len(payload.HeightMap) != len(c.HeightMap) ||
		len(payload.Biomes) != len(c.BiomeMap) {
		return nil, fmt.Errorf("%w: chunk (%d,%d) has unexpected dimensions", errBadPayload, payload.XPos, payload.ZPos)
	}

	for i, b := range payload.Blocks {
		if !gen.Block(b).Valid() {
			return nil, fmt.Errorf("%w: unknown block id %d", errBadPayload, b)
		}
		c.Data[i] = gen.Block(b)
	}
	for i, h := range payload.HeightMap {
		c.HeightMap[i] = int(h)
	}
	for i, b := range payload.Biomes {
		c.BiomeMap[i] = gen.Biome(b)
	}
	return c, nil
}
