package fft

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestForward_DCSignalConcentratesInBinZero(t *testing.T) {
	n := 8
	input := make([]float64, n)
	for i := range input {
		input[i] = 1.0
	}
	out := Forward(input)
	require.Len(t, out, n)
	require.InDelta(t, float64(n), real(out[0]), 1e-9)
	for k := 1; k < n; k++ {
		require.InDelta(t, 0, cmplx.Abs(out[k]), 1e-9)
	}
}

func TestForward_SingleFrequencySineConcentratesInExpectedBin(t *testing.T) {
	n := 16
	freqBin := 3
	input := make([]float64, n)
	for i := range input {
		input[i] = math.Sin(2 * math.Pi * float64(freqBin) * float64(i) / float64(n))
	}
	out := Forward(input)

	peakBin, peakMag := 0, 0.0
	for k := 0; k < n/2; k++ {
		if mag := cmplx.Abs(out[k]); mag > peakMag {
			peakMag = mag
			peakBin = k
		}
	}
	require.Equal(t, freqBin, peakBin)
}

func TestIsPowerOfTwo(t *testing.T) {
	require.True(t, IsPowerOfTwo(1))
	require.True(t, IsPowerOfTwo(2048))
	require.False(t, IsPowerOfTwo(0))
	require.False(t, IsPowerOfTwo(3))
	require.False(t, IsPowerOfTwo(-4))
}
