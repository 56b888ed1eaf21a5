package endian

import (
	"math"

	"github.com/arloliu/omf/errs"
)

// Byte order sentinels written ahead of OMF binary data blocks.
const (
	Float32Sentinel float32 = 1234567.0
	Float64Sentinel float64 = 123456789012345.0
)

// DetectFloat32Order resolves the byte order of a 4-byte OMF data block from its sentinel.
//
// The mark is decoded big-endian first; if that does not yield Float32Sentinel it is decoded
// little-endian. If neither matches, an *errs.ByteOrderMarkError with a copy of the mark is
// returned.
func DetectFloat32Order(mark []byte) (EndianEngine, error) {
	if len(mark) != 4 {
		return nil, &errs.ByteOrderMarkError{Raw: clone(mark)}
	}

	for _, engine := range detectOrder {
		if Float32(engine, mark) == Float32Sentinel {
			return engine, nil
		}
	}

	return nil, &errs.ByteOrderMarkError{Raw: clone(mark)}
}

// DetectFloat64Order resolves the byte order of an 8-byte OMF data block from its sentinel.
// Detection order and failure behaviour match DetectFloat32Order.
func DetectFloat64Order(mark []byte) (EndianEngine, error) {
	if len(mark) != 8 {
		return nil, &errs.ByteOrderMarkError{Raw: clone(mark)}
	}

	for _, engine := range detectOrder {
		if Float64(engine, mark) == Float64Sentinel {
			return engine, nil
		}
	}

	return nil, &errs.ByteOrderMarkError{Raw: clone(mark)}
}

// big first, then little
var detectOrder = [2]EndianEngine{GetBigEndianEngine(), GetLittleEndianEngine()}

// Float32 decodes an IEEE-754 single precision value from the first 4 bytes of b.
func Float32(engine EndianEngine, b []byte) float32 {
	return math.Float32frombits(engine.Uint32(b))
}

// Float64 decodes an IEEE-754 double precision value from the first 8 bytes of b.
func Float64(engine EndianEngine, b []byte) float64 {
	return math.Float64frombits(engine.Uint64(b))
}

// AppendFloat32 appends the IEEE-754 single precision encoding of v to b.
func AppendFloat32(engine EndianEngine, b []byte, v float32) []byte {
	return engine.AppendUint32(b, math.Float32bits(v))
}

// AppendFloat64 appends the IEEE-754 double precision encoding of v to b.
func AppendFloat64(engine EndianEngine, b []byte, v float64) []byte {
	return engine.AppendUint64(b, math.Float64bits(v))
}

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)

	return out
}
