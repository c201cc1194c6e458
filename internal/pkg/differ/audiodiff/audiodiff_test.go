package audiodiff

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/semdiff/semdiff/internal/pkg/differ"
)

type fakeLeaf struct {
	mime string
	data []byte
}

func (f fakeLeaf) Name() string                { return "sound.wav" }
func (f fakeLeaf) IsNode() bool                 { return false }
func (f fakeLeaf) Path() string                 { return "sound.wav" }
func (f fakeLeaf) MIME() string                 { return f.mime }
func (f fakeLeaf) Size() int64                  { return int64(len(f.data)) }
func (f fakeLeaf) ModTime() (int64, bool)       { return 0, false }
func (f fakeLeaf) Bytes() ([]byte, error)       { return f.data, nil }
func (f fakeLeaf) Open() (io.ReadCloser, error) { return io.NopCloser(bytes.NewReader(f.data)), nil }

func buildMonoWAV(t *testing.T, sampleRate int, samples []int16) fakeLeaf {
	t.Helper()
	var data bytes.Buffer
	for _, s := range samples {
		require.NoError(t, binary.Write(&data, binary.LittleEndian, s))
	}

	var fmtChunk bytes.Buffer
	binary.Write(&fmtChunk, binary.LittleEndian, uint16(1))
	binary.Write(&fmtChunk, binary.LittleEndian, uint16(1))
	binary.Write(&fmtChunk, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&fmtChunk, binary.LittleEndian, uint32(sampleRate*2))
	binary.Write(&fmtChunk, binary.LittleEndian, uint16(2))
	binary.Write(&fmtChunk, binary.LittleEndian, uint16(16))

	var out bytes.Buffer
	out.WriteString("RIFF")
	binary.Write(&out, binary.LittleEndian, uint32(0))
	out.WriteString("WAVE")
	out.WriteString("fmt ")
	binary.Write(&out, binary.LittleEndian, uint32(fmtChunk.Len()))
	out.Write(fmtChunk.Bytes())
	out.WriteString("data")
	binary.Write(&out, binary.LittleEndian, uint32(data.Len()))
	out.Write(data.Bytes())

	return fakeLeaf{mime: "audio/wav", data: out.Bytes()}
}

func sineSamples(n, sampleRate, freq int, amplitude float64) []int16 {
	out := make([]int16, n)
	for i := 0; i < n; i++ {
		v := amplitude * math.Sin(2*math.Pi*float64(freq)*float64(i)/float64(sampleRate))
		out[i] = int16(v * 32767)
	}
	return out
}

func TestDiff_BitIdenticalWithZeroTolerancesIsEqual(t *testing.T) {
	samples := sineSamples(4096, 8000, 440, 0.5)
	e := buildMonoWAV(t, 8000, samples)
	a := buildMonoWAV(t, 8000, samples)

	d, err := Calculator{}.Diff("s.wav", e, a)
	require.NoError(t, err)
	require.False(t, d.(*Diff).Incomparable())
	require.True(t, d.Equal())
	require.Zero(t, d.(*Diff).ShiftSamples())
}

func TestDiff_LouderActualFailsLoudnessTolerance(t *testing.T) {
	e := buildMonoWAV(t, 8000, sineSamples(4096, 8000, 440, 0.2))
	a := buildMonoWAV(t, 8000, sineSamples(4096, 8000, 440, 0.8))

	d, err := Calculator{Config: Config{LufsToleranceDB: 0.01, SpectrogramDiffRateTolerance: 1}}.Diff("s.wav", e, a)
	require.NoError(t, err)
	require.False(t, d.Equal())
	require.Greater(t, d.(*Diff).LufsDiffDB(), 0.0)
}

func TestDiff_SampleRateMismatchIsIncomparable(t *testing.T) {
	e := buildMonoWAV(t, 8000, sineSamples(1024, 8000, 440, 0.5))
	a := buildMonoWAV(t, 16000, sineSamples(1024, 16000, 440, 0.5))

	d, err := Calculator{}.Diff("s.wav", e, a)
	require.NoError(t, err)
	require.True(t, d.(*Diff).Incomparable())
	require.False(t, d.Equal())
}

func TestDiff_ShiftedSignalAlignsWithinTolerance(t *testing.T) {
	base := sineSamples(4096, 8000, 440, 0.5)
	shifted := append(make([]int16, 10), base...)

	e := buildMonoWAV(t, 8000, base)
	a := buildMonoWAV(t, 8000, shifted)

	cfg := Config{ShiftToleranceSeconds: 0.01, LufsToleranceDB: 1, SpectralTolerance: 0.5, SpectrogramDiffRateTolerance: 0.2}
	d, err := Calculator{Config: cfg}.Diff("s.wav", e, a)
	require.NoError(t, err)
	require.Equal(t, 10, d.(*Diff).ShiftSamples())
}

func TestDiff_NonWAVIsUnsupported(t *testing.T) {
	notWav := fakeLeaf{mime: "audio/mp3", data: []byte{0xff, 0xfb, 0x90, 0x00}}
	_, err := Calculator{}.Diff("s.mp3", notWav, notWav)
	require.ErrorIs(t, err, differ.ErrUnsupported)
}

func TestDiff_WrongMIMEIsUnsupported(t *testing.T) {
	e := buildMonoWAV(t, 8000, sineSamples(100, 8000, 440, 0.5))
	other := fakeLeaf{mime: "text/plain", data: []byte("hi")}
	_, err := Calculator{}.Diff("s", e, other)
	require.ErrorIs(t, err, differ.ErrUnsupported)
}
