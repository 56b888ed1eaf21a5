package encoding

import "iter"

// ColumnarEncoder appends values of type T to an internal buffer.
type ColumnarEncoder[T any] interface {
	// Write encodes a single value.
	Write(v T)

	// WriteSlice encodes values in order.
	WriteSlice(values []T)

	// Bytes returns the encoded data. The slice is owned by the encoder and is valid until
	// the next Write, WriteSlice or Finish. Bit-packed encoders pad the last byte, so Bytes
	// must only be called once all values are written.
	Bytes() []byte

	// Len returns the number of encoded values.
	Len() int

	// Size returns the number of bytes written so far.
	Size() int

	// Finish returns the buffer to its pool. The encoder must not be used afterwards.
	Finish()
}

type ColumnarDecoder[T any] interface {
	// All yields up to count values decoded from data. Malformed or short data yields fewer
	// values; callers compare the number received with count.
	All(data []byte, count int) iter.Seq[T]

	// At returns the value at index, or false when index is outside [0, count) or data is
	// too short.
	At(data []byte, index int, count int) (T, bool)
}
