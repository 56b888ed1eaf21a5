package encoding

import (
	"iter"
	"math"
	"math/bits"

	"github.com/arloliu/omf/internal/pool"
)

// FloatGorillaEncoder compresses float64 values with the Gorilla XOR scheme.
//
// Bit layout, most significant bit first:
//  1. The first value as 64 raw bits.
//  2. For every following value, the XOR with its predecessor:
//     - 0: value unchanged
//     - 1 0 <bits>: meaningful bits inside the previous leading/trailing window
//     - 1 1 <5 bits leading zeros> <6 bits block size - 1> <bits>: new window
//
// The last byte is zero padded.
type FloatGorillaEncoder struct {
	bitBuf        uint64
	prev          uint64
	bitCount      int
	count         int
	prevLeading   int
	prevTrailing  int
	prevBlockSize int

	buf *pool.ByteBuffer
}

var _ ColumnarEncoder[float64] = (*FloatGorillaEncoder)(nil)

// NewFloatGorillaEncoder creates a Gorilla encoder.
func NewFloatGorillaEncoder() *FloatGorillaEncoder {
	return &FloatGorillaEncoder{buf: pool.GetSnapshotBuffer()}
}

func (e *FloatGorillaEncoder) Write(v float64) {
	if e.buf == nil {
		panic("encoder already finished - cannot write values after Finish()")
	}

	valBits := math.Float64bits(v)
	e.count++
	if e.count == 1 {
		e.prev = valBits
		e.writeBits(valBits, 64)

		return
	}

	e.writeValue(valBits)
}

func (e *FloatGorillaEncoder) WriteSlice(values []float64) {
	for _, v := range values {
		e.Write(v)
	}
}

func (e *FloatGorillaEncoder) writeValue(valBits uint64) {
	xor := valBits ^ e.prev
	e.prev = valBits

	if xor == 0 {
		e.writeBits(0, 1)
		return
	}
	e.writeBits(1, 1)

	leading := min(bits.LeadingZeros64(xor), 31)
	trailing := bits.TrailingZeros64(xor)

	if e.prevBlockSize > 0 && leading >= e.prevLeading && trailing >= e.prevTrailing {
		e.writeBits(0, 1)
		e.writeBits(xor>>e.prevTrailing, e.prevBlockSize)

		return
	}

	blockSize := 64 - leading - trailing
	e.writeBits(1, 1)
	e.writeBits(uint64(leading), 5)     //nolint:gosec // leading is 0-31
	e.writeBits(uint64(blockSize-1), 6) //nolint:gosec // blockSize is 1-64
	e.writeBits(xor>>trailing, blockSize)

	e.prevLeading = leading
	e.prevTrailing = trailing
	e.prevBlockSize = blockSize
}

// writeBits appends the low n bits of v, 0 <= n <= 64.
func (e *FloatGorillaEncoder) writeBits(v uint64, n int) {
	if n == 0 {
		return
	}
	if n < 64 {
		v &= 1<<n - 1
	}

	free := 64 - e.bitCount
	if n <= free {
		e.bitBuf = e.bitBuf<<n | v
		e.bitCount += n
		if e.bitCount == 64 {
			e.flushBits()
		}

		return
	}

	rest := n - free
	e.bitBuf = e.bitBuf<<free | v>>rest
	e.bitCount = 64
	e.flushBits()

	e.bitBuf = v & (1<<rest - 1)
	e.bitCount = rest
}

// flushBits moves the pending bits to the byte buffer, most significant byte first.
func (e *FloatGorillaEncoder) flushBits() {
	if e.bitCount == 0 {
		return
	}

	numBytes := (e.bitCount + 7) / 8
	aligned := e.bitBuf << (64 - e.bitCount)
	e.buf.Grow(numBytes)
	for i := range numBytes {
		e.buf.B = append(e.buf.B, byte(aligned>>(56-8*i)))
	}

	e.bitBuf = 0
	e.bitCount = 0
}

func (e *FloatGorillaEncoder) Bytes() []byte {
	if e.buf == nil {
		panic("encoder already finished - cannot access bytes after Finish()")
	}
	e.flushBits()

	return e.buf.Bytes()
}

func (e *FloatGorillaEncoder) Len() int {
	return e.count
}

// Size returns the flushed byte count; pending bits are not included until Bytes is called.
func (e *FloatGorillaEncoder) Size() int {
	if e.buf == nil {
		return 0
	}

	return e.buf.Len()
}

func (e *FloatGorillaEncoder) Finish() {
	if e.buf == nil {
		return
	}

	pool.PutSnapshotBuffer(e.buf)
	e.buf = nil
}

// FloatGorillaDecoder decodes FloatGorillaEncoder output. It is stateless and safe for
// concurrent use.
type FloatGorillaDecoder struct{}

var _ ColumnarDecoder[float64] = FloatGorillaDecoder{}

func NewFloatGorillaDecoder() FloatGorillaDecoder {
	return FloatGorillaDecoder{}
}

func (FloatGorillaDecoder) All(data []byte, count int) iter.Seq[float64] {
	return func(yield func(float64) bool) {
		if count <= 0 {
			return
		}

		br := bitReader{data: data}
		prev, ok := br.readBits(64)
		if !ok || !yield(math.Float64frombits(prev)) {
			return
		}

		var trailing, blockSize int
		for range count - 1 {
			changed, ok := br.readBits(1)
			if !ok {
				return
			}
			if changed == 0 {
				if !yield(math.Float64frombits(prev)) {
					return
				}

				continue
			}

			newBlock, ok := br.readBits(1)
			if !ok {
				return
			}
			if newBlock == 1 {
				leading, ok1 := br.readBits(5)
				size, ok2 := br.readBits(6)
				if !ok1 || !ok2 {
					return
				}
				blockSize = int(size) + 1
				trailing = 64 - int(leading) - blockSize
				if trailing < 0 {
					return
				}
			} else if blockSize == 0 {
				return
			}

			meaningful, ok := br.readBits(blockSize)
			if !ok {
				return
			}
			prev ^= meaningful << trailing
			if !yield(math.Float64frombits(prev)) {
				return
			}
		}
	}
}

// At decodes values up to index; Gorilla data has no random access.
func (d FloatGorillaDecoder) At(data []byte, index int, count int) (float64, bool) {
	if index < 0 || index >= count {
		return 0, false
	}

	i := 0
	for v := range d.All(data, index+1) {
		if i == index {
			return v, true
		}
		i++
	}

	return 0, false
}

// bitReader reads big-endian bit strings from data.
type bitReader struct {
	data []byte
	pos  int
}

func (r *bitReader) readBits(n int) (uint64, bool) {
	if r.pos+n > len(r.data)*8 {
		return 0, false
	}

	var v uint64
	for n > 0 {
		avail := 8 - r.pos&7
		take := min(avail, n)
		chunk := uint64(r.data[r.pos>>3]>>(avail-take)) & (1<<take - 1)
		v = v<<take | chunk
		r.pos += take
		n -= take
	}

	return v, true
}
