// Package audiodiff implements the audio differ (spec.md §4.6): decode via
// the wav codec probe, align via cross-correlation, and compare loudness and
// spectrogram content within configured tolerances.
package audiodiff

import (
	"math"
	"strings"

	"github.com/semdiff/semdiff/internal/pkg/differ"
	"github.com/semdiff/semdiff/internal/pkg/fft"
	"github.com/semdiff/semdiff/internal/pkg/tree"
	"github.com/semdiff/semdiff/internal/pkg/wav"
)

// Config mirrors spec.md §6's audio_* configuration keys.
type Config struct {
	ShiftToleranceSeconds        float64
	LufsToleranceDB              float64
	SpectralTolerance            float64
	SpectrogramDiffRateTolerance float64

	// WindowSize is the FFT window N (power of two); zero defaults to 2048.
	WindowSize int
	// CompressionFactor is the geometric growth factor for log-compressed
	// frequency rows; zero defaults to 20.
	CompressionFactor float64
}

func (c Config) windowSize() int {
	if c.WindowSize > 0 {
		return c.WindowSize
	}
	return 2048
}

func (c Config) compressionFactor() float64 {
	if c.CompressionFactor > 0 {
		return c.CompressionFactor
	}
	return 20
}

// Calculator is the audio differ's Calculator.
type Calculator struct {
	Config Config
}

var _ differ.Calculator = Calculator{}

func acceptsMIME(m string) bool {
	return strings.HasPrefix(m, "audio/") || strings.HasPrefix(m, "video/")
}

func (c Calculator) Diff(name string, expected, actual tree.Leaf) (differ.Diff, error) {
	if !acceptsMIME(expected.MIME()) || !acceptsMIME(actual.MIME()) {
		return nil, differ.ErrUnsupported
	}
	eb, err := expected.Bytes()
	if err != nil {
		return nil, err
	}
	ab, err := actual.Bytes()
	if err != nil {
		return nil, err
	}
	eAudio, err := wav.Decode(eb)
	if err != nil {
		return nil, differ.ErrUnsupported
	}
	aAudio, err := wav.Decode(ab)
	if err != nil {
		return nil, differ.ErrUnsupported
	}
	return compare(eAudio, aAudio, c.Config), nil
}

// Added/Deleted: a single-sided audio file has no counterpart to align or
// compare loudness against, so it is reported the same way a sample-rate or
// channel mismatch is — Incomparable, with only the present side's metadata.
func (c Calculator) Added(name string, actual tree.Leaf) (differ.Diff, error) {
	if !acceptsMIME(actual.MIME()) {
		return nil, differ.ErrUnsupported
	}
	ab, err := actual.Bytes()
	if err != nil {
		return nil, err
	}
	aAudio, err := wav.Decode(ab)
	if err != nil {
		return nil, differ.ErrUnsupported
	}
	return &Diff{incomparable: true, actualMeta: meta{sampleRate: aAudio.SampleRate, channels: aAudio.Channels}}, nil
}

func (c Calculator) Deleted(name string, expected tree.Leaf) (differ.Diff, error) {
	if !acceptsMIME(expected.MIME()) {
		return nil, differ.ErrUnsupported
	}
	eb, err := expected.Bytes()
	if err != nil {
		return nil, err
	}
	eAudio, err := wav.Decode(eb)
	if err != nil {
		return nil, differ.ErrUnsupported
	}
	return &Diff{incomparable: true, expectedMeta: meta{sampleRate: eAudio.SampleRate, channels: eAudio.Channels}}, nil
}

type meta struct {
	sampleRate int
	channels   int
}

// Diff is the audio differ's Diff value.
type Diff struct {
	incomparable bool
	expectedMeta meta
	actualMeta   meta

	shiftSamples        int
	lufsDiffDB          float64
	spectrogramDiffRate float64
	equal               bool

	// Retained only for on-demand rendering (WaveformImage/SpectrogramImage);
	// summary/JSON reporters never touch these.
	eChannels  [][]float32
	aChannels  [][]float32
	windowSize int
	compFactor float64
}

func (d *Diff) Tag() string                  { return "audio" }
func (d *Diff) Equal() bool                  { return !d.incomparable && d.equal }
func (d *Diff) Incomparable() bool           { return d.incomparable }
func (d *Diff) ShiftSamples() int            { return d.shiftSamples }
func (d *Diff) LufsDiffDB() float64          { return d.lufsDiffDB }
func (d *Diff) SpectrogramDiffRate() float64 { return d.spectrogramDiffRate }

// ExpectedMeta and ActualMeta report each side's (sampleRate, channels),
// populated whenever that side decoded successfully — including the
// Incomparable case, where they are the only detail available.
func (d *Diff) ExpectedMeta() (sampleRate, channels int) {
	return d.expectedMeta.sampleRate, d.expectedMeta.channels
}
func (d *Diff) ActualMeta() (sampleRate, channels int) {
	return d.actualMeta.sampleRate, d.actualMeta.channels
}

// Channels reports how many channels were aligned and compared (zero when
// Incomparable).
func (d *Diff) Channels() int { return len(d.eChannels) }

func compare(e, a *wav.Audio, cfg Config) *Diff {
	if e.SampleRate != a.SampleRate || e.Channels != a.Channels {
		return &Diff{
			incomparable: true,
			expectedMeta: meta{sampleRate: e.SampleRate, channels: e.Channels},
			actualMeta:   meta{sampleRate: a.SampleRate, channels: a.Channels},
		}
	}

	channels := e.Channels
	maxShift := int(cfg.ShiftToleranceSeconds * float64(e.SampleRate))
	shift := bestShift(e, a, channels, maxShift)

	eCh := make([][]float32, channels)
	aCh := make([][]float32, channels)
	for c := 0; c < channels; c++ {
		ec, ac := alignChannel(e.Channel(c), a.Channel(c), shift)
		eCh[c] = ec
		aCh[c] = ac
	}

	lufsDiff := 0.0
	for c := 0; c < channels; c++ {
		d := math.Abs(dbfs(rms(eCh[c])) - dbfs(rms(aCh[c])))
		if d > lufsDiff {
			lufsDiff = d
		}
	}

	n := cfg.windowSize()
	factor := cfg.compressionFactor()
	diffRate := 0.0
	if channels > 0 {
		sum := 0.0
		for c := 0; c < channels; c++ {
			sum += spectrogramDiffRate(eCh[c], aCh[c], n, factor, cfg.SpectralTolerance)
		}
		diffRate = sum / float64(channels)
	}

	equal := lufsDiff <= cfg.LufsToleranceDB && diffRate <= cfg.SpectrogramDiffRateTolerance

	return &Diff{
		shiftSamples:        shift,
		lufsDiffDB:          lufsDiff,
		spectrogramDiffRate: diffRate,
		equal:               equal,
		expectedMeta:        meta{sampleRate: e.SampleRate, channels: e.Channels},
		actualMeta:          meta{sampleRate: a.SampleRate, channels: a.Channels},
		eChannels:           eCh,
		aChannels:           aCh,
		windowSize:          n,
		compFactor:          factor,
	}
}

// bestShift searches integer sample shifts in [-maxShift, maxShift],
// maximizing the sum across channels of normalized cross-correlation over
// the overlap (spec.md §9's resolution of the alignment direction question:
// maximize, not the source's literal minimize).
func bestShift(e, a *wav.Audio, channels, maxShift int) int {
	if maxShift <= 0 {
		return 0
	}
	eCh := make([][]float32, channels)
	aCh := make([][]float32, channels)
	for c := 0; c < channels; c++ {
		eCh[c] = e.Channel(c)
		aCh[c] = a.Channel(c)
	}

	best := 0
	bestScore := math.Inf(-1)
	for shift := -maxShift; shift <= maxShift; shift++ {
		score := 0.0
		for c := 0; c < channels; c++ {
			eo, ao := alignChannel(eCh[c], aCh[c], shift)
			score += normalizedCrossCorrelation(eo, ao)
		}
		if score > bestScore {
			bestScore = score
			best = shift
		}
	}
	return best
}

// alignChannel drops the leading samples the shift discards on each side.
// shift > 0 means a's sample at index i+shift corresponds to e's index i.
func alignChannel(e, a []float32, shift int) (eOut, aOut []float32) {
	if shift >= 0 {
		if shift >= len(a) {
			return nil, nil
		}
		eOut, aOut = e, a[shift:]
	} else {
		s := -shift
		if s >= len(e) {
			return nil, nil
		}
		eOut, aOut = e[s:], a
	}
	n := len(eOut)
	if len(aOut) < n {
		n = len(aOut)
	}
	return eOut[:n], aOut[:n]
}

func normalizedCrossCorrelation(x, y []float32) float64 {
	n := len(x)
	if n == 0 || len(y) < n {
		return 0
	}
	var dot, ex, ey float64
	for i := 0; i < n; i++ {
		xi, yi := float64(x[i]), float64(y[i])
		dot += xi * yi
		ex += xi * xi
		ey += yi * yi
	}
	denom := math.Sqrt(ex * ey)
	if denom == 0 {
		return 0
	}
	return dot / denom
}

func rms(samples []float32) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		sum += float64(s) * float64(s)
	}
	return math.Sqrt(sum / float64(len(samples)))
}

func dbfs(r float64) float64 {
	const eps = 1e-9
	if r < eps {
		r = eps
	}
	return 20 * math.Log10(r)
}
