package encoding

import (
	"fmt"
	"iter"

	"github.com/arloliu/omf/endian"
	"github.com/arloliu/omf/internal/pool"
)

// FloatRawEncoder writes float64 values as fixed-width IEEE 754 scalars. A width of 4 rounds
// every value to float32.
type FloatRawEncoder struct {
	buf    *pool.ByteBuffer
	engine endian.EndianEngine
	width  int
	count  int
}

var _ ColumnarEncoder[float64] = (*FloatRawEncoder)(nil)

// NewFloatRawEncoder creates a raw encoder writing width-byte scalars (4 or 8) with engine.
func NewFloatRawEncoder(engine endian.EndianEngine, width int) (*FloatRawEncoder, error) {
	if width != 4 && width != 8 {
		return nil, fmt.Errorf("unsupported scalar width: %d", width)
	}

	return &FloatRawEncoder{
		buf:    pool.GetSnapshotBuffer(),
		engine: engine,
		width:  width,
	}, nil
}

func (e *FloatRawEncoder) Write(v float64) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}

	e.count++
	e.append(v)
}

func (e *FloatRawEncoder) WriteSlice(values []float64) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}

	e.count += len(values)
	e.buf.Grow(len(values) * e.width)
	for _, v := range values {
		e.append(v)
	}
}

func (e *FloatRawEncoder) append(v float64) {
	if e.width == 4 {
		e.buf.B = endian.AppendFloat32(e.engine, e.buf.B, float32(v))
		return
	}
	e.buf.B = endian.AppendFloat64(e.engine, e.buf.B, v)
}

func (e *FloatRawEncoder) Bytes() []byte {
	if e.buf == nil {
		panic("encoder already finished - cannot access bytes after Finish()")
	}

	return e.buf.Bytes()
}

func (e *FloatRawEncoder) Len() int {
	return e.count
}

func (e *FloatRawEncoder) Size() int {
	if e.buf == nil {
		return 0
	}

	return e.buf.Len()
}

func (e *FloatRawEncoder) Finish() {
	if e.buf == nil {
		return
	}

	pool.PutSnapshotBuffer(e.buf)
	e.buf = nil
}

// FloatRawDecoder reads scalars written by FloatRawEncoder. It is stateless.
type FloatRawDecoder struct {
	engine endian.EndianEngine
	width  int
}

var _ ColumnarDecoder[float64] = FloatRawDecoder{}

// NewFloatRawDecoder creates a decoder for width-byte scalars (4 or 8) in engine's byte order.
func NewFloatRawDecoder(engine endian.EndianEngine, width int) (FloatRawDecoder, error) {
	if width != 4 && width != 8 {
		return FloatRawDecoder{}, fmt.Errorf("unsupported scalar width: %d", width)
	}

	return FloatRawDecoder{engine: engine, width: width}, nil
}

func (d FloatRawDecoder) All(data []byte, count int) iter.Seq[float64] {
	return func(yield func(float64) bool) {
		n := min(count, len(data)/d.width)
		for i := range n {
			if !yield(d.at(data, i)) {
				return
			}
		}
	}
}

func (d FloatRawDecoder) At(data []byte, index int, count int) (float64, bool) {
	if index < 0 || index >= count || (index+1)*d.width > len(data) {
		return 0, false
	}

	return d.at(data, index), true
}

func (d FloatRawDecoder) at(data []byte, i int) float64 {
	if d.width == 4 {
		return float64(endian.Float32(d.engine, data[i*4:]))
	}

	return endian.Float64(d.engine, data[i*8:])
}
