package textdiff

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/semdiff/semdiff/internal/pkg/differ"
)

type fakeLeaf struct {
	mime string
	data []byte
}

func (f fakeLeaf) Name() string                { return "file.txt" }
func (f fakeLeaf) IsNode() bool                 { return false }
func (f fakeLeaf) Path() string                 { return "file.txt" }
func (f fakeLeaf) MIME() string                 { return f.mime }
func (f fakeLeaf) Size() int64                  { return int64(len(f.data)) }
func (f fakeLeaf) ModTime() (int64, bool)       { return 0, false }
func (f fakeLeaf) Bytes() ([]byte, error)       { return f.data, nil }
func (f fakeLeaf) Open() (io.ReadCloser, error) { return io.NopCloser(bytes.NewReader(f.data)), nil }

func txt(s string) fakeLeaf { return fakeLeaf{mime: "text/plain", data: []byte(s)} }

func TestDiff_Identical(t *testing.T) {
	d, err := Calculator{}.Diff("f", txt("a\nb\nc\n"), txt("a\nb\nc\n"))
	require.NoError(t, err)
	require.True(t, d.Equal())
}

func TestDiff_OneLineChanged(t *testing.T) {
	d, err := Calculator{}.Diff("f", txt("a\nb\nc\n"), txt("a\nX\nc\n"))
	require.NoError(t, err)
	require.False(t, d.Equal())

	lines := d.(*Diff).Lines()
	var tags []LineTag
	for _, l := range lines {
		tags = append(tags, l.Tag)
	}
	require.Contains(t, tags, LineDeleted)
	require.Contains(t, tags, LineAdded)

	var unchangedCount int
	for _, l := range lines {
		if l.Tag == LineUnchanged {
			unchangedCount++
		}
	}
	require.Equal(t, 2, unchangedCount)
}

func TestDiff_BinaryMIMERejected(t *testing.T) {
	_, err := Calculator{}.Diff("f", txt("a\n"), fakeLeaf{mime: "image/png", data: []byte{0, 1, 2}})
	require.ErrorIs(t, err, differ.ErrUnsupported)
}

func TestDiff_NonUTF8Rejected(t *testing.T) {
	bad := fakeLeaf{mime: "application/octet-stream", data: []byte{0xff, 0xfe, 0x00}}
	_, err := Calculator{}.Diff("f", txt("a\n"), bad)
	require.ErrorIs(t, err, differ.ErrUnsupported)
}

func TestDiff_UnknownMIMESniffedAsText(t *testing.T) {
	unknown := fakeLeaf{mime: "application/x-custom-config", data: []byte("key=value\n")}
	d, err := Calculator{}.Diff("f", txt("key=value\n"), unknown)
	require.NoError(t, err)
	require.True(t, d.Equal())
}

func TestDiff_AddedWholeFile(t *testing.T) {
	d, err := Calculator{}.Added("f", txt("x\ny\n"))
	require.NoError(t, err)
	for _, l := range d.(*Diff).Lines() {
		require.Equal(t, LineAdded, l.Tag)
	}
}
