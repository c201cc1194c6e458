package binarydiff

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeLeaf struct{ data []byte }

func (f fakeLeaf) Name() string           { return "blob.bin" }
func (f fakeLeaf) IsNode() bool           { return false }
func (f fakeLeaf) Path() string           { return "blob.bin" }
func (f fakeLeaf) MIME() string           { return "application/octet-stream" }
func (f fakeLeaf) Size() int64            { return int64(len(f.data)) }
func (f fakeLeaf) ModTime() (int64, bool) { return 0, false }
func (f fakeLeaf) Bytes() ([]byte, error) { return f.data, nil }
func (f fakeLeaf) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(f.data)), nil
}

func leaf(b ...byte) fakeLeaf { return fakeLeaf{data: b} }

func TestDiff_IdenticalBytesEqual(t *testing.T) {
	d, err := Calculator{}.Diff("x", leaf(1, 2, 3), leaf(1, 2, 3))
	require.NoError(t, err)
	require.True(t, d.Equal())
	require.Equal(t, "binary", d.Tag())
}

func TestDiff_DifferingBytesRendersRuns(t *testing.T) {
	d, err := Calculator{}.Diff("x", leaf('a', 'b', 'c'), leaf('a', 'x', 'c'))
	require.NoError(t, err)
	bd := d.(*Diff)
	require.False(t, bd.Equal())
	require.True(t, bd.Rendered())

	var tags []RunTag
	for _, r := range bd.Runs() {
		tags = append(tags, r.Tag)
	}
	require.Contains(t, tags, RunAdded)
	require.Contains(t, tags, RunDeleted)
	require.Contains(t, tags, RunUnchanged)
}

func TestDiff_AppendOnlyIsPureAddition(t *testing.T) {
	d, err := Calculator{}.Diff("x", leaf('a', 'b'), leaf('a', 'b', 'c'))
	require.NoError(t, err)
	bd := d.(*Diff)
	require.False(t, bd.Equal())
	runs := bd.Runs()
	require.Len(t, runs, 2)
	require.Equal(t, RunUnchanged, runs[0].Tag)
	require.Equal(t, RunAdded, runs[1].Tag)
	require.Equal(t, []byte{'c'}, runs[1].Bytes)
}

func TestDiff_OversizedInputsSkipRendering(t *testing.T) {
	big := bytes.Repeat([]byte{0xAA}, maxDiffBytes+1)
	bigModified := bytes.Repeat([]byte{0xAA}, maxDiffBytes+1)
	bigModified[0] = 0xBB

	d, err := Calculator{}.Diff("x", fakeLeaf{data: big}, fakeLeaf{data: bigModified})
	require.NoError(t, err)
	bd := d.(*Diff)
	require.False(t, bd.Equal())
	require.False(t, bd.Rendered())
	require.Nil(t, bd.Runs())
}

func TestDiff_Added(t *testing.T) {
	d, err := Calculator{}.Added("x", leaf(1, 2, 3))
	require.NoError(t, err)
	require.False(t, d.Equal())
}

func TestDiff_Deleted(t *testing.T) {
	d, err := Calculator{}.Deleted("x", leaf(1, 2, 3))
	require.NoError(t, err)
	require.False(t, d.Equal())
}
