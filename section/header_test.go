package section

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/omf/errs"
	"github.com/arloliu/omf/format"
)

func TestNewFlag(t *testing.T) {
	flag := NewFlag()

	require.Equal(t, uint16(MagicSnapshotV1), flag.MagicNumber())
	require.False(t, flag.IsBigEndian())
	require.False(t, flag.HasMetadata())
	require.False(t, flag.IsSinglePrecision())
	require.Equal(t, 8, flag.ScalarWidth())
	require.Equal(t, format.CompressionZstd, flag.PayloadCompression())
	require.Equal(t, format.EncodingRaw, flag.PayloadEncoding())
}

func TestFlag_Bits(t *testing.T) {
	flag := NewFlag()

	flag.SetHasMetadata(true)
	flag.WithBigEndian()
	flag.SetSinglePrecision(true)
	flag.SetPayloadCompression(format.CompressionLZ4)
	flag.SetMode(format.ModeBinary4)

	require.True(t, flag.HasMetadata())
	require.True(t, flag.IsBigEndian())
	require.Equal(t, 4, flag.ScalarWidth())
	require.Equal(t, format.CompressionLZ4, flag.PayloadCompression())
	require.Equal(t, format.ModeBinary4, flag.Mode())
	require.Equal(t, uint16(MagicSnapshotV1), flag.MagicNumber())
	require.NoError(t, flag.Validate())

	flag.SetHasMetadata(false)
	flag.WithLittleEndian()
	flag.SetSinglePrecision(false)
	require.False(t, flag.HasMetadata())
	require.False(t, flag.IsBigEndian())
	require.False(t, flag.IsSinglePrecision())

	flag.SetPayloadEncoding(format.EncodingGorilla)
	require.Equal(t, format.EncodingGorilla, flag.PayloadEncoding())
	require.Equal(t, format.CompressionLZ4, flag.PayloadCompression())
	require.Equal(t, uint8(0x24), flag.Codec)
	require.NoError(t, flag.Validate())
}

func TestFlag_Validate(t *testing.T) {
	valid := NewFlag()
	valid.SetMode(format.ModeText)
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Flag)
		want   error
	}{
		{"bad magic", func(f *Flag) { f.Options = 0x0001 }, errs.ErrInvalidMagicNumber},
		{"reserved bit", func(f *Flag) { f.Options |= ReservedBitsMask }, errs.ErrInvalidHeaderFlags},
		{"unknown codec", func(f *Flag) { f.SetPayloadCompression(0x0F) }, errs.ErrInvalidHeaderFlags},
		{"unknown encoding", func(f *Flag) { f.Codec |= 0xF0 }, errs.ErrInvalidHeaderFlags},
		{"missing encoding", func(f *Flag) { f.Codec &= CompressionMask }, errs.ErrInvalidHeaderFlags},
		{"gorilla float32", func(f *Flag) {
			f.SetPayloadEncoding(format.EncodingGorilla)
			f.SetSinglePrecision(true)
		}, errs.ErrInvalidHeaderFlags},
		{"unknown mode", func(f *Flag) { f.SourceMode = 9 }, errs.ErrInvalidHeaderFlags},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := valid
			tt.mutate(&f)
			require.ErrorIs(t, f.Validate(), tt.want)
		})
	}
}

func TestHeader_RoundTrip(t *testing.T) {
	for _, big := range []bool{false, true} {
		h, err := NewHeader(10, 20, 3)
		require.NoError(t, err)
		h.Flag.SetMode(format.ModeBinary8)
		h.Flag.SetHasMetadata(true)
		if big {
			h.Flag.WithBigEndian()
		}
		h.MetadataSize = 123
		h.Checksum = 0xdeadbeefcafef00d

		data := h.Bytes()
		require.Len(t, data, HeaderSize)

		parsed, err := ParseHeader(data)
		require.NoError(t, err)
		require.Equal(t, *h, parsed)

		nx, ny, nz := parsed.Dims()
		require.Equal(t, [3]int{10, 20, 3}, [3]int{nx, ny, nz})
		require.Equal(t, HeaderSize+123, parsed.PayloadOffset())
	}
}

func TestHeader_OptionsAlwaysLittleEndian(t *testing.T) {
	h, err := NewHeader(1, 1, 1)
	require.NoError(t, err)
	h.Flag.SetMode(format.ModeText)
	h.Flag.WithBigEndian()

	data := h.Bytes()
	require.Equal(t, byte((MagicSnapshotV1|EndiannessMask)&0xFF), data[0])
	require.Equal(t, byte(MagicSnapshotV1>>8), data[1])
	// NX is big-endian
	require.Equal(t, []byte{0, 0, 0, 1}, data[4:8])
}

func TestHeader_ParseErrors(t *testing.T) {
	_, err := ParseHeader([]byte{1, 2, 3})
	require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)

	h := &Header{}
	require.ErrorIs(t, h.Parse(make([]byte, HeaderSize+1)), errs.ErrInvalidHeaderSize)

	require.ErrorIs(t, h.Parse(make([]byte, HeaderSize)), errs.ErrInvalidMagicNumber)

	good, err := NewHeader(2, 2, 2)
	require.NoError(t, err)
	good.Flag.SetMode(format.ModeText)

	reserved := good.Bytes()
	reserved[20] = 1
	_, err = ParseHeader(reserved)
	require.ErrorIs(t, err, errs.ErrInvalidHeaderFlags)

	zero := good.Bytes()
	copy(zero[8:12], []byte{0, 0, 0, 0})
	_, err = ParseHeader(zero)
	require.ErrorIs(t, err, errs.ErrMissingGridDimensions)
}

func TestNewHeader_InvalidDims(t *testing.T) {
	_, err := NewHeader(0, 1, 1)
	require.ErrorIs(t, err, errs.ErrMissingGridDimensions)
}
