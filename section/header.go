package section

import (
	"encoding/binary"
	"fmt"

	"github.com/arloliu/omf/errs"
)

// Header is the fixed 32-byte header at the start of a snapshot.
type Header struct {
	Flag Flag // byte offset 0-3
	// NX, NY and NZ are the grid dimensions.
	NX uint32 // byte offset 4-7
	NY uint32 // byte offset 8-11
	NZ uint32 // byte offset 12-15
	// MetadataSize is the length of the metadata section following the header.
	MetadataSize uint32 // byte offset 16-19
	// Checksum is the xxHash64 of the uncompressed payload.
	Checksum uint64 // byte offset 24-31
}

// NewHeader creates a header for an nx*ny*nz grid with the default flag.
func NewHeader(nx, ny, nz int) (*Header, error) {
	for _, n := range [3]int{nx, ny, nz} {
		if n <= 0 || uint64(n) > 1<<32-1 {
			return nil, fmt.Errorf("%w: %dx%dx%d", errs.ErrMissingGridDimensions, nx, ny, nz)
		}
	}

	return &Header{
		Flag: NewFlag(),
		NX:   uint32(nx),
		NY:   uint32(ny),
		NZ:   uint32(nz),
	}, nil
}

// Dims returns the grid dimensions as ints.
func (h *Header) Dims() (nx, ny, nz int) {
	return int(h.NX), int(h.NY), int(h.NZ)
}

// PayloadOffset returns the byte offset of the payload section.
func (h *Header) PayloadOffset() int {
	return MetadataOffset + int(h.MetadataSize)
}

// Parse parses the header from exactly HeaderSize bytes.
func (h *Header) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	// Options is always little-endian so the endianness bit can be read first.
	h.Flag.Options = binary.LittleEndian.Uint16(data[0:2])
	h.Flag.Codec = data[2]
	h.Flag.SourceMode = data[3]
	if err := h.Flag.Validate(); err != nil {
		return err
	}

	engine := h.Flag.EndianEngine()
	h.NX = engine.Uint32(data[4:8])
	h.NY = engine.Uint32(data[8:12])
	h.NZ = engine.Uint32(data[12:16])
	h.MetadataSize = engine.Uint32(data[16:20])
	if engine.Uint32(data[20:24]) != 0 {
		return errs.ErrInvalidHeaderFlags
	}
	h.Checksum = engine.Uint64(data[24:32])

	if h.NX == 0 || h.NY == 0 || h.NZ == 0 {
		return errs.ErrMissingGridDimensions
	}

	return nil
}

// Bytes serializes the header.
func (h *Header) Bytes() []byte {
	b := make([]byte, HeaderSize)

	binary.LittleEndian.PutUint16(b[0:2], h.Flag.Options)
	b[2] = h.Flag.Codec
	b[3] = h.Flag.SourceMode

	engine := h.Flag.EndianEngine()
	engine.PutUint32(b[4:8], h.NX)
	engine.PutUint32(b[8:12], h.NY)
	engine.PutUint32(b[12:16], h.NZ)
	engine.PutUint32(b[16:20], h.MetadataSize)
	engine.PutUint64(b[24:32], h.Checksum)

	return b
}

// ParseHeader parses a Header from the start of data.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, errs.ErrInvalidHeaderSize
	}

	h := Header{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return Header{}, err
	}

	return h, nil
}
