package audiodiff

import (
	"math"
	"math/cmplx"

	"github.com/semdiff/semdiff/internal/pkg/fft"
)

// displayRows is the number of log-compressed frequency rows the
// spectrogram diff rate (and the rendered spectrogram image) aggregates
// into. spec.md §4.6 names the growth factor between rows but not this
// count; a fixed row count independent of the FFT window size keeps the
// diff-rate computation's cost independent of N.
const displayRows = 128

// computeSpectrogram windows samples with a sine taper, FFTs each window,
// and returns one log10-magnitude vector of length N/2 per frame.
func computeSpectrogram(samples []float32, n int) [][]float64 {
	if !fft.IsPowerOfTwo(n) {
		n = 2048
	}
	hop := n / 2
	window := sineWindow(n)

	var frames [][]float64
	for start := 0; start < len(samples); start += hop {
		buf := make([]float64, n)
		for i := 0; i < n; i++ {
			idx := start + i
			if idx < len(samples) {
				buf[i] = float64(samples[idx]) * window[i]
			}
		}
		spectrum := fft.Forward(buf)
		frame := make([]float64, n/2)
		for k := 0; k < n/2; k++ {
			mag := cmplx.Abs(spectrum[k])
			if mag < 1e-12 {
				mag = 1e-12
			}
			frame[k] = math.Log10(mag)
		}
		frames = append(frames, frame)
		if start+n >= len(samples) {
			break
		}
	}
	return frames
}

func sineWindow(n int) []float64 {
	w := make([]float64, n)
	for i := 0; i < n; i++ {
		w[i] = math.Sin(math.Pi * float64(i) / float64(n-1))
	}
	return w
}

// rowBoundaries returns displayHeight+1 monotonically increasing bin
// indices covering [0, numBins], growing geometrically so low rows (low
// frequencies) cover fewer raw bins than high rows — spec.md §4.6's
// log-compressed vertical axis.
func rowBoundaries(numBins, displayHeight int, factor float64) []int {
	bounds := make([]int, displayHeight+1)
	bounds[0] = 0
	bounds[displayHeight] = numBins
	for y := 1; y < displayHeight; y++ {
		frac := (math.Pow(factor, float64(y)/float64(displayHeight)) - 1) / (factor - 1)
		b := int(math.Round(frac * float64(numBins)))
		if b <= bounds[y-1] {
			b = bounds[y-1] + 1
		}
		if b > numBins {
			b = numBins
		}
		bounds[y] = b
	}
	return bounds
}

// compressRow averages frame[lo:hi] into one log-compressed display value.
func compressRow(frame []float64, lo, hi int) float64 {
	if hi <= lo {
		return frame[lo]
	}
	sum := 0.0
	for k := lo; k < hi; k++ {
		sum += frame[k]
	}
	return sum / float64(hi-lo)
}

// spectrogramDiffRate computes the fraction of log-compressed cells whose
// values differ by more than tolerance, over the shorter of the two frame
// counts (spec.md §4.6: "diff_cells / total_cells").
func spectrogramDiffRate(e, a []float32, n int, factor, tolerance float64) float64 {
	eSpec := computeSpectrogram(e, n)
	aSpec := computeSpectrogram(a, n)

	frames := len(eSpec)
	if len(aSpec) < frames {
		frames = len(aSpec)
	}
	if frames == 0 {
		return 0
	}

	numBins := n / 2
	rows := displayRows
	if rows > numBins {
		rows = numBins
	}
	bounds := rowBoundaries(numBins, rows, factor)

	diffCells := 0
	totalCells := frames * rows
	for f := 0; f < frames; f++ {
		for y := 0; y < rows; y++ {
			ev := compressRow(eSpec[f], bounds[y], bounds[y+1])
			av := compressRow(aSpec[f], bounds[y], bounds[y+1])
			if math.Abs(ev-av) > tolerance {
				diffCells++
			}
		}
	}
	if totalCells == 0 {
		return 0
	}
	return float64(diffCells) / float64(totalCells)
}
