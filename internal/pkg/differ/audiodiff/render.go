package audiodiff

import (
	"image"
	"image/color"
)

const (
	waveformWidth  = 800
	waveformHeight = 200
)

// WaveformImage renders channel ch's aligned expected/actual waveforms as
// overlaid min/max envelopes (spec.md §4.6's "waveforms... rendered into
// fixed-size RGBA images").
func (d *Diff) WaveformImage(ch int) image.Image {
	if d.incomparable || ch >= len(d.eChannels) {
		return nil
	}
	img := image.NewRGBA(image.Rect(0, 0, waveformWidth, waveformHeight))
	fillRect(img, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	drawWaveform(img, d.eChannels[ch], color.RGBA{R: 60, G: 60, B: 200, A: 180})
	drawWaveform(img, d.aChannels[ch], color.RGBA{R: 200, G: 60, B: 60, A: 180})
	return img
}

func fillRect(img *image.RGBA, c color.RGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.Set(x, y, c)
		}
	}
}

// drawWaveform plots a min/max envelope per pixel column, the standard way
// of rendering a waveform wider than one pixel per sample.
func drawWaveform(img *image.RGBA, samples []float32, c color.RGBA) {
	if len(samples) == 0 {
		return
	}
	mid := waveformHeight / 2
	samplesPerCol := len(samples) / waveformWidth
	if samplesPerCol < 1 {
		samplesPerCol = 1
	}
	for x := 0; x < waveformWidth; x++ {
		start := x * samplesPerCol
		if start >= len(samples) {
			break
		}
		end := start + samplesPerCol
		if end > len(samples) {
			end = len(samples)
		}
		min32, max32 := samples[start], samples[start]
		for _, s := range samples[start:end] {
			if s < min32 {
				min32 = s
			}
			if s > max32 {
				max32 = s
			}
		}
		yTop := mid - int(float64(max32)*float64(mid))
		yBot := mid - int(float64(min32)*float64(mid))
		if yTop > yBot {
			yTop, yBot = yBot, yTop
		}
		for y := yTop; y <= yBot; y++ {
			if y >= 0 && y < waveformHeight {
				img.Set(x, y, c)
			}
		}
	}
}

// SpectrogramImageExpected renders channel ch's expected-side log-compressed
// spectrogram as a grayscale heatmap, one column per analysis frame.
func (d *Diff) SpectrogramImageExpected(ch int) image.Image {
	return d.spectrogramImage(ch, d.eChannels)
}

// SpectrogramImageActual is SpectrogramImageExpected's actual-side twin.
func (d *Diff) SpectrogramImageActual(ch int) image.Image {
	return d.spectrogramImage(ch, d.aChannels)
}

func (d *Diff) spectrogramImage(ch int, channels [][]float32) image.Image {
	if d.incomparable || ch >= len(channels) {
		return nil
	}
	frame := computeSpectrogram(channels[ch], d.windowSize)
	if len(frame) == 0 {
		return nil
	}
	numBins := d.windowSize / 2
	rows := displayRows
	if rows > numBins {
		rows = numBins
	}
	bounds := rowBoundaries(numBins, rows, d.compFactor)

	img := image.NewRGBA(image.Rect(0, 0, len(frame), rows))
	lo, hi := minMaxCompressed(frame, bounds, rows)
	for x, f := range frame {
		for y := 0; y < rows; y++ {
			v := compressRow(f, bounds[y], bounds[y+1])
			intensity := normalize(v, lo, hi)
			// row 0 is the lowest frequency; display it at the bottom.
			img.Set(x, rows-1-y, color.RGBA{R: intensity, G: intensity, B: intensity, A: 255})
		}
	}
	return img
}

func minMaxCompressed(frames [][]float64, bounds []int, rows int) (lo, hi float64) {
	lo, hi = frames[0][0], frames[0][0]
	for _, f := range frames {
		for y := 0; y < rows; y++ {
			v := compressRow(f, bounds[y], bounds[y+1])
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}
	return lo, hi
}

func normalize(v, lo, hi float64) uint8 {
	if hi <= lo {
		return 0
	}
	t := (v - lo) / (hi - lo)
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return uint8(t * 255)
}
