package htmlreport

import (
	"bytes"
	"io"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/semdiff/semdiff/internal/pkg/differ/binarydiff"
	"github.com/semdiff/semdiff/internal/pkg/report"
)

type fakeLeaf struct{ data []byte }

func (f fakeLeaf) Name() string           { return "x" }
func (f fakeLeaf) IsNode() bool           { return false }
func (f fakeLeaf) Path() string           { return "x" }
func (f fakeLeaf) MIME() string           { return "application/octet-stream" }
func (f fakeLeaf) Size() int64            { return int64(len(f.data)) }
func (f fakeLeaf) ModTime() (int64, bool) { return 0, false }
func (f fakeLeaf) Bytes() ([]byte, error) { return f.data, nil }
func (f fakeLeaf) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(f.data)), nil
}

func TestSink_FinishWritesIndexAndDetailPages(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := New(fs, "report.html")

	bd, err := binarydiff.Calculator{}.Diff("x", fakeLeaf{[]byte("a")}, fakeLeaf{[]byte("b")})
	require.NoError(t, err)

	require.NoError(t, s.Start())
	require.NoError(t, s.Record(report.Entry{Key: "dir/file.bin", Status: report.Modified, DifferTag: "binary", Detail: bd}))
	require.NoError(t, s.Record(report.Entry{Key: "same.bin", Status: report.Unchanged, DifferTag: "binary", Detail: bd}))
	require.NoError(t, s.Finish())

	indexBytes, err := afero.ReadFile(fs, "report.html")
	require.NoError(t, err)
	require.Contains(t, string(indexBytes), "dir/file.bin")
	require.Contains(t, string(indexBytes), "report_details/")

	exists, err := afero.DirExists(fs, "report_details")
	require.NoError(t, err)
	require.True(t, exists)

	entries, err := afero.ReadDir(fs, "report_details")
	require.NoError(t, err)
	require.Len(t, entries, 2)
}

func TestSink_DuplicateKeyPanics(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := New(fs, "report.html")
	require.NoError(t, s.Record(report.Entry{Key: "x", Status: report.Unchanged}))
	require.Panics(t, func() {
		_ = s.Record(report.Entry{Key: "x", Status: report.Modified})
	})
}
