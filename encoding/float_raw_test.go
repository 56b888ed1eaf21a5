package encoding

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/omf/endian"
)

func TestFloatRaw_RoundTrip(t *testing.T) {
	values := []float64{0, 1.5, -2.25, 1e-9, 7}

	for _, tt := range []struct {
		name   string
		engine endian.EndianEngine
		width  int
	}{
		{"little 8", endian.GetLittleEndianEngine(), 8},
		{"big 8", endian.GetBigEndianEngine(), 8},
		{"little 4", endian.GetLittleEndianEngine(), 4},
		{"big 4", endian.GetBigEndianEngine(), 4},
	} {
		t.Run(tt.name, func(t *testing.T) {
			enc, err := NewFloatRawEncoder(tt.engine, tt.width)
			require.NoError(t, err)
			defer enc.Finish()

			enc.Write(values[0])
			enc.WriteSlice(values[1:])
			require.Equal(t, len(values), enc.Len())
			require.Equal(t, len(values)*tt.width, enc.Size())

			dec, err := NewFloatRawDecoder(tt.engine, tt.width)
			require.NoError(t, err)

			got := slices.Collect(dec.All(enc.Bytes(), len(values)))
			want := values
			if tt.width == 4 {
				want = make([]float64, len(values))
				for i, v := range values {
					want[i] = float64(float32(v))
				}
			}
			require.Equal(t, want, got)

			v, ok := dec.At(enc.Bytes(), 3, len(values))
			require.True(t, ok)
			require.Equal(t, want[3], v)
		})
	}
}

func TestFloatRaw_ByteOrder(t *testing.T) {
	enc, err := NewFloatRawEncoder(endian.GetBigEndianEngine(), 4)
	require.NoError(t, err)
	defer enc.Finish()

	enc.Write(float64(endian.Float32Sentinel))
	require.Equal(t, []byte{0x49, 0x96, 0xB4, 0x38}, enc.Bytes())
}

func TestFloatRaw_ShortData(t *testing.T) {
	dec, err := NewFloatRawDecoder(endian.GetLittleEndianEngine(), 8)
	require.NoError(t, err)

	data := endian.AppendFloat64(endian.GetLittleEndianEngine(), nil, 3)
	data = append(data, 1, 2, 3)

	require.Equal(t, []float64{3}, slices.Collect(dec.All(data, 2)))

	_, ok := dec.At(data, 1, 2)
	require.False(t, ok)
	_, ok = dec.At(data, -1, 2)
	require.False(t, ok)
}

func TestFloatRaw_InvalidWidth(t *testing.T) {
	_, err := NewFloatRawEncoder(endian.GetLittleEndianEngine(), 2)
	require.Error(t, err)
	_, err = NewFloatRawDecoder(endian.GetLittleEndianEngine(), 16)
	require.Error(t, err)
}

func TestFloatRaw_Finish(t *testing.T) {
	enc, err := NewFloatRawEncoder(endian.GetLittleEndianEngine(), 8)
	require.NoError(t, err)

	enc.Finish()
	enc.Finish()
	require.Zero(t, enc.Size())
	require.Panics(t, func() { enc.Write(1) })
}
