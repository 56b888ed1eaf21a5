package endian

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/omf/errs"
)

func TestDetectFloat32Order(t *testing.T) {
	t.Run("Big endian", func(t *testing.T) {
		mark := binary.BigEndian.AppendUint32(nil, math.Float32bits(Float32Sentinel))

		engine, err := DetectFloat32Order(mark)
		require.NoError(t, err)
		require.Equal(t, GetBigEndianEngine(), engine)
	})

	t.Run("Little endian", func(t *testing.T) {
		mark := binary.LittleEndian.AppendUint32(nil, math.Float32bits(Float32Sentinel))

		engine, err := DetectFloat32Order(mark)
		require.NoError(t, err)
		require.Equal(t, GetLittleEndianEngine(), engine)
	})

	t.Run("Unrecognized", func(t *testing.T) {
		mark := binary.BigEndian.AppendUint32(nil, math.Float32bits(1.0))

		_, err := DetectFloat32Order(mark)
		require.ErrorIs(t, err, errs.ErrUnrecognizedByteOrderMark)

		var bom *errs.ByteOrderMarkError
		require.True(t, errors.As(err, &bom))
		require.Equal(t, mark, bom.Raw)
	})

	t.Run("Double precision sentinel", func(t *testing.T) {
		mark := binary.BigEndian.AppendUint64(nil, math.Float64bits(Float64Sentinel))

		_, err := DetectFloat32Order(mark[:4])
		require.ErrorIs(t, err, errs.ErrUnrecognizedByteOrderMark)
	})

	t.Run("Short mark", func(t *testing.T) {
		_, err := DetectFloat32Order([]byte{0x49, 0x96})
		require.ErrorIs(t, err, errs.ErrUnrecognizedByteOrderMark)
	})
}

func TestDetectFloat64Order(t *testing.T) {
	t.Run("Big endian", func(t *testing.T) {
		mark := binary.BigEndian.AppendUint64(nil, math.Float64bits(Float64Sentinel))

		engine, err := DetectFloat64Order(mark)
		require.NoError(t, err)
		require.True(t, IsBigEndian(engine))
	})

	t.Run("Little endian", func(t *testing.T) {
		mark := binary.LittleEndian.AppendUint64(nil, math.Float64bits(Float64Sentinel))

		engine, err := DetectFloat64Order(mark)
		require.NoError(t, err)
		require.False(t, IsBigEndian(engine))
		require.Equal(t, "little", Name(engine))
	})

	t.Run("Unrecognized", func(t *testing.T) {
		mark := []byte{1, 2, 3, 4, 5, 6, 7, 8}

		_, err := DetectFloat64Order(mark)
		require.ErrorIs(t, err, errs.ErrUnrecognizedByteOrderMark)
		require.Contains(t, err.Error(), "0x0102030405060708")
	})
}

func TestFloatHelpers(t *testing.T) {
	for _, engine := range []EndianEngine{GetBigEndianEngine(), GetLittleEndianEngine()} {
		b := AppendFloat32(engine, nil, -2.5)
		require.Len(t, b, 4)
		require.Equal(t, float32(-2.5), Float32(engine, b))

		b = AppendFloat64(engine, nil, 6.02e23)
		require.Len(t, b, 8)
		require.Equal(t, 6.02e23, Float64(engine, b))
	}
}
