package format

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/omf/errs"
)

func TestParseDataMode(t *testing.T) {
	tests := []struct {
		name   string
		marker string
		want   DataMode
	}{
		{"text", "# Begin: Data Text", ModeText},
		{"binary 4", "# Begin: Data Binary 4", ModeBinary4},
		{"binary 8", "# Begin: Data Binary 8", ModeBinary8},
		{"extra spacing", "#   Begin:  Data   Binary    8  ", ModeBinary8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mode, err := ParseDataMode(tt.marker)
			require.NoError(t, err)
			require.Equal(t, tt.want, mode)
		})
	}
}

func TestParseDataMode_Unknown(t *testing.T) {
	tests := []struct {
		name      string
		marker    string
		wantKind  string
		wantWidth string
	}{
		{"hex mode", "# Begin: Data Hex 4", "Hex", "4"},
		{"binary 2", "# Begin: Data Binary 2", "Binary", "2"},
		{"binary without width", "# Begin: Data Binary", "Binary", ""},
		{"no mode", "# Begin: Data", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDataMode(tt.marker)
			require.ErrorIs(t, err, errs.ErrUnknownDataFormat)

			var target *errs.UnknownDataFormatError
			require.True(t, errors.As(err, &target))
			require.Equal(t, tt.wantKind, target.Kind)
			require.Equal(t, tt.wantWidth, target.Width)
		})
	}
}

func TestDataMode_Width(t *testing.T) {
	require.Equal(t, 0, ModeText.Width())
	require.Equal(t, 4, ModeBinary4.Width())
	require.Equal(t, 8, ModeBinary8.Width())
	require.False(t, ModeText.IsBinary())
	require.True(t, ModeBinary8.IsBinary())
	require.Equal(t, "Binary 4", ModeBinary4.String())
}

func TestParseCompression(t *testing.T) {
	c, ok := ParseCompression("zstd")
	require.True(t, ok)
	require.Equal(t, CompressionZstd, c)

	c, ok = ParseCompression("")
	require.True(t, ok)
	require.Equal(t, CompressionNone, c)

	_, ok = ParseCompression("brotli")
	require.False(t, ok)
}

func TestParseOutputFormat(t *testing.T) {
	o, ok := ParseOutputFormat("mat")
	require.True(t, ok)
	require.Equal(t, ".mat", o.Ext())

	o, ok = ParseOutputFormat("snapshot")
	require.True(t, ok)
	require.Equal(t, ".omfs", o.Ext())

	_, ok = ParseOutputFormat("hdf5")
	require.False(t, ok)
}

func TestParseEncoding(t *testing.T) {
	e, ok := ParseEncoding("gorilla")
	require.True(t, ok)
	require.Equal(t, EncodingGorilla, e)
	require.Equal(t, "Gorilla", e.String())

	e, ok = ParseEncoding("")
	require.True(t, ok)
	require.Equal(t, EncodingRaw, e)

	_, ok = ParseEncoding("delta")
	require.False(t, ok)
}
