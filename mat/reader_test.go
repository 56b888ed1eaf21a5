package mat

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"testing"
	"unicode/utf16"

	"github.com/klauspost/compress/zlib"
	"github.com/stretchr/testify/require"
)

// parsedArray is a miMATRIX element read back by the test reader.
type parsedArray struct {
	class  uint32
	dims   []int
	name   string
	data   []byte
	dtype  uint32
	fields []string
	values []parsedArray
}

func (a parsedArray) singles(order binary.ByteOrder) []float32 {
	out := make([]float32, len(a.data)/4)
	for i := range out {
		out[i] = math.Float32frombits(order.Uint32(a.data[i*4:]))
	}

	return out
}

func (a parsedArray) doubles(order binary.ByteOrder) []float64 {
	out := make([]float64, len(a.data)/8)
	for i := range out {
		out[i] = math.Float64frombits(order.Uint64(a.data[i*8:]))
	}

	return out
}

func (a parsedArray) text(order binary.ByteOrder) string {
	units := make([]uint16, len(a.data)/2)
	for i := range units {
		units[i] = order.Uint16(a.data[i*2:])
	}

	return string(utf16.Decode(units))
}

func (a parsedArray) field(name string) (parsedArray, bool) {
	for i, f := range a.fields {
		if f == name {
			return a.values[i], true
		}
	}

	return parsedArray{}, false
}

// readFile parses a MAT-file written by Writer.
func readFile(t *testing.T, data []byte) (binary.ByteOrder, string, []parsedArray) {
	t.Helper()
	require.GreaterOrEqual(t, len(data), HeaderSize)

	var order binary.ByteOrder
	switch string(data[126:128]) {
	case "IM":
		order = binary.LittleEndian
	case "MI":
		order = binary.BigEndian
	default:
		t.Fatalf("bad endian indicator %q", data[126:128])
	}
	require.Equal(t, uint16(version), order.Uint16(data[124:]))

	text := string(bytes.TrimRight(data[:headerTextSize], " "))

	var vars []parsedArray
	rest := data[HeaderSize:]
	for len(rest) > 0 {
		typ, body, next := readElement(t, order, rest)
		rest = next
		if typ == miCOMPRESSED {
			zr, err := zlib.NewReader(bytes.NewReader(body))
			require.NoError(t, err)
			inflated, err := io.ReadAll(zr)
			require.NoError(t, err)

			typ, body, tail := readElement(t, order, inflated)
			require.Empty(t, tail)
			require.Equal(t, uint32(miMATRIX), typ)
			vars = append(vars, readMatrix(t, order, body))

			continue
		}
		require.Equal(t, uint32(miMATRIX), typ)
		vars = append(vars, readMatrix(t, order, body))
	}

	return order, text, vars
}

func readElement(t *testing.T, order binary.ByteOrder, b []byte) (uint32, []byte, []byte) {
	t.Helper()
	require.GreaterOrEqual(t, len(b), tagSize)

	first := order.Uint32(b)
	if n := first >> 16; n != 0 {
		require.LessOrEqual(t, n, uint32(4))
		return first & 0xffff, b[4 : 4+n], b[8:]
	}

	n := int(order.Uint32(b[4:]))
	require.LessOrEqual(t, tagSize+n, len(b), "element overruns buffer")
	body := b[tagSize : tagSize+n]

	end := tagSize + n
	if first != miCOMPRESSED && end%tagSize != 0 {
		end += tagSize - end%tagSize
	}
	if end > len(b) {
		end = len(b)
	}

	return first, body, b[end:]
}

func readMatrix(t *testing.T, order binary.ByteOrder, b []byte) parsedArray {
	t.Helper()
	var a parsedArray

	typ, flags, b := readElement(t, order, b)
	require.Equal(t, uint32(miUINT32), typ)
	a.class = order.Uint32(flags) & 0xff

	typ, dims, b := readElement(t, order, b)
	require.Equal(t, uint32(miINT32), typ)
	for i := 0; i < len(dims); i += 4 {
		a.dims = append(a.dims, int(int32(order.Uint32(dims[i:]))))
	}

	typ, name, b := readElement(t, order, b)
	require.Equal(t, uint32(miINT8), typ)
	a.name = string(name)

	if a.class == mxSTRUCT {
		typ, lenBytes, rest := readElement(t, order, b)
		require.Equal(t, uint32(miINT32), typ)
		nameLen := int(order.Uint32(lenBytes))

		typ, names, rest := readElement(t, order, rest)
		require.Equal(t, uint32(miINT8), typ)
		for i := 0; i+nameLen <= len(names); i += nameLen {
			a.fields = append(a.fields, string(bytes.TrimRight(names[i:i+nameLen], "\x00")))
		}

		for range a.fields {
			typ, body, next := readElement(t, order, rest)
			require.Equal(t, uint32(miMATRIX), typ)
			a.values = append(a.values, readMatrix(t, order, body))
			rest = next
		}
		require.Empty(t, rest)

		return a
	}

	typ, data, rest := readElement(t, order, b)
	a.dtype = typ
	a.data = data
	require.Empty(t, rest, fmt.Sprintf("trailing bytes in %q", a.name))

	return a
}
