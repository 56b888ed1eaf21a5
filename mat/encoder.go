package mat

import (
	"fmt"
	"math"

	"github.com/arloliu/omf/endian"
	"github.com/arloliu/omf/errs"
	"github.com/arloliu/omf/internal/pool"
)

// encoder appends MAT elements to a pooled buffer.
type encoder struct {
	engine endian.EndianEngine
	buf    *pool.ByteBuffer
}

func (e *encoder) uint32(v uint32) {
	e.buf.B = e.engine.AppendUint32(e.buf.B, v)
}

func (e *encoder) tag(typ uint32, n int) {
	e.uint32(typ)
	e.uint32(uint32(n))
}

func (e *encoder) pad() {
	if rem := e.buf.Len() % tagSize; rem != 0 {
		e.buf.B = append(e.buf.B, make([]byte, tagSize-rem)...)
	}
}

// element writes data of type typ, using the small element form for 4 bytes or less.
func (e *encoder) element(typ uint32, data []byte) {
	if len(data) <= smallMaxSize {
		e.uint32(uint32(len(data))<<16 | typ)
		e.buf.B = append(e.buf.B, data...)
		e.buf.B = append(e.buf.B, make([]byte, smallMaxSize-len(data))...)

		return
	}

	e.tag(typ, len(data))
	e.buf.B = append(e.buf.B, data...)
	e.pad()
}

func (e *encoder) int32Element(v int32) {
	e.uint32(uint32(4)<<16 | miINT32)
	e.uint32(uint32(v))
}

func (e *encoder) single(data []float32) {
	n := len(data) * 4
	if n > 0 && n <= smallMaxSize {
		e.uint32(uint32(n)<<16 | miSINGLE)
		e.uint32(math.Float32bits(data[0]))

		return
	}

	e.tag(miSINGLE, n)
	e.buf.Grow(n + tagSize)
	for _, v := range data {
		e.buf.B = endian.AppendFloat32(e.engine, e.buf.B, v)
	}
	e.pad()
}

func (e *encoder) double(data []float64) {
	e.tag(miDOUBLE, len(data)*8)
	e.buf.Grow(len(data) * 8)
	for _, v := range data {
		e.buf.B = endian.AppendFloat64(e.engine, e.buf.B, v)
	}
}

func (e *encoder) uint16s(units []uint16) {
	n := len(units) * 2
	if n <= smallMaxSize {
		e.uint32(uint32(n)<<16 | miUINT16)
		var word [4]byte
		for i, u := range units {
			e.engine.PutUint16(word[i*2:], u)
		}
		e.buf.B = append(e.buf.B, word[:]...)

		return
	}

	e.tag(miUINT16, n)
	for _, u := range units {
		e.buf.B = e.engine.AppendUint16(e.buf.B, u)
	}
	e.pad()
}

// matrix writes a miMATRIX element: array flags, dimensions, name, then whatever body writes.
// The tag's byte count is patched once the body is known.
func (e *encoder) matrix(class uint32, dims []int, name string, body func() error) error {
	start := e.buf.Len()
	e.tag(miMATRIX, 0)

	e.tag(miUINT32, 8)
	e.uint32(class)
	e.uint32(0)

	dimBytes := make([]byte, 0, len(dims)*4)
	for _, d := range dims {
		dimBytes = e.engine.AppendUint32(dimBytes, uint32(d))
	}
	e.element(miINT32, dimBytes)
	e.element(miINT8, []byte(name))

	if err := body(); err != nil {
		return err
	}

	size := e.buf.Len() - start - tagSize
	if int64(size) > math.MaxUint32 {
		return fmt.Errorf("%w: array %q needs %d bytes", errs.ErrUnsupportedValue, name, size)
	}
	e.engine.PutUint32(e.buf.B[start+4:], uint32(size))

	return nil
}
