// Package fft implements a radix-2 Cooley-Tukey FFT. No FFT or DSP library
// appears anywhere in the retrieval pack, so the audio differ's spectrogram
// feature extraction needs this in-repo.
package fft

import "math/cmplx"

// Forward returns the discrete Fourier transform of a real-valued signal.
// len(input) must be a power of two.
func Forward(input []float64) []complex128 {
	c := make([]complex128, len(input))
	for i, v := range input {
		c[i] = complex(v, 0)
	}
	transform(c)
	return c
}

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// transform performs an in-place recursive radix-2 Cooley-Tukey FFT.
func transform(a []complex128) {
	n := len(a)
	if n <= 1 {
		return
	}
	even := make([]complex128, n/2)
	odd := make([]complex128, n/2)
	for i := 0; i < n/2; i++ {
		even[i] = a[2*i]
		odd[i] = a[2*i+1]
	}
	transform(even)
	transform(odd)

	for k := 0; k < n/2; k++ {
		twiddle := cmplx.Rect(1, -2*piOver(n)*float64(k))
		t := twiddle * odd[k]
		a[k] = even[k] + t
		a[k+n/2] = even[k] - t
	}
}

func piOver(n int) float64 {
	const pi = 3.14159265358979323846
	return pi / float64(n)
}
