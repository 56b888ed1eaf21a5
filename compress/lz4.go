package compress

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"
)

var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// maxLZ4Size caps the declared size of a decompressed LZ4 block.
const maxLZ4Size = 1 << 31

// LZ4Compressor compresses payloads as a single LZ4 block.
//
// The block is prefixed with the uncompressed length as a little-endian uint32 so the
// decompressor can size its buffer exactly; grid payloads compress well enough that guessing
// an expansion ratio wastes several retries.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new LZ4 compressor.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress compresses the input data using a pooled lz4.Compressor.
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if int64(len(data)) > maxLZ4Size {
		return nil, fmt.Errorf("lz4: payload too large: %d bytes", len(data))
	}

	dst := make([]byte, 4+lz4.CompressBlockBound(len(data)))
	binary.LittleEndian.PutUint32(dst, uint32(len(data)))

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst[4:])
	if err != nil {
		return nil, err
	}

	return dst[:4+n], nil
}

// Decompress decompresses a length-prefixed LZ4 block.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if len(data) < 4 {
		return nil, fmt.Errorf("lz4: block too short: %d bytes", len(data))
	}

	size := binary.LittleEndian.Uint32(data)
	if int64(size) > maxLZ4Size {
		return nil, fmt.Errorf("lz4: declared size too large: %d", size)
	}

	buf := make([]byte, size)
	n, err := lz4.UncompressBlock(data[4:], buf)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompression failed: %w", err)
	}
	if n != int(size) {
		return nil, fmt.Errorf("lz4: decompressed %d bytes, want %d", n, size)
	}

	return buf, nil
}
