package encoding

import (
	"math"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func gorillaRoundTrip(t *testing.T, values []float64) []byte {
	t.Helper()

	enc := NewFloatGorillaEncoder()
	defer enc.Finish()
	enc.WriteSlice(values)
	require.Equal(t, len(values), enc.Len())

	data := slices.Clone(enc.Bytes())
	got := slices.Collect(NewFloatGorillaDecoder().All(data, len(values)))
	require.Len(t, got, len(values))
	for i := range values {
		require.Equal(t, math.Float64bits(values[i]), math.Float64bits(got[i]), "value %d", i)
	}

	return data
}

func TestFloatGorilla_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	random := make([]float64, 500)
	for i := range random {
		random[i] = rng.NormFloat64() * 1e6
	}

	smooth := make([]float64, 300)
	for i := range smooth {
		smooth[i] = 8e5 * math.Cos(float64(i)/40)
	}

	tests := map[string][]float64{
		"single":   {42.5},
		"constant": slices.Repeat([]float64{8e5}, 100),
		"sequence": {1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
		"signs":    {0, -0.0, 1, -1, math.MaxFloat64, -math.MaxFloat64, math.SmallestNonzeroFloat64},
		"special":  {math.Inf(1), math.Inf(-1), 0, math.NaN(), 1},
		"random":   random,
		"smooth":   smooth,
	}
	for name, values := range tests {
		t.Run(name, func(t *testing.T) {
			gorillaRoundTrip(t, values)
		})
	}
}

func TestFloatGorilla_Compresses(t *testing.T) {
	// a saturated region: the same vector repeated
	values := slices.Repeat([]float64{0, 0, 8e5}, 1000)
	data := gorillaRoundTrip(t, values)

	require.Less(t, len(data), len(values)*8/10)
}

func TestFloatGorilla_Layout(t *testing.T) {
	enc := NewFloatGorillaEncoder()
	defer enc.Finish()

	enc.Write(1)
	enc.Write(1)
	data := enc.Bytes()

	// 64 raw bits of 1.0, then a single 0 bit padded to a byte
	require.Equal(t, []byte{0x3F, 0xF0, 0, 0, 0, 0, 0, 0, 0x00}, data)
}

func TestFloatGorilla_Truncated(t *testing.T) {
	values := []float64{1, 2.5, -3.75, 100, 1e-3}
	data := gorillaRoundTrip(t, values)

	got := slices.Collect(NewFloatGorillaDecoder().All(data[:len(data)-3], len(values)))
	require.Less(t, len(got), len(values))

	require.Empty(t, slices.Collect(NewFloatGorillaDecoder().All(data[:7], len(values))))
	require.Empty(t, slices.Collect(NewFloatGorillaDecoder().All(data, 0)))
}

func TestFloatGorilla_At(t *testing.T) {
	values := []float64{3, 3, 4, -8, 16}
	data := gorillaRoundTrip(t, values)
	dec := NewFloatGorillaDecoder()

	for i, want := range values {
		got, ok := dec.At(data, i, len(values))
		require.True(t, ok)
		require.Equal(t, want, got)
	}

	_, ok := dec.At(data, len(values), len(values))
	require.False(t, ok)
	_, ok = dec.At(data, -1, len(values))
	require.False(t, ok)
}

func TestFloatGorilla_EarlyStop(t *testing.T) {
	values := []float64{1, 2, 3, 4}
	data := gorillaRoundTrip(t, values)

	var got []float64
	for v := range NewFloatGorillaDecoder().All(data, len(values)) {
		got = append(got, v)
		if len(got) == 2 {
			break
		}
	}
	require.Equal(t, []float64{1, 2}, got)
}
