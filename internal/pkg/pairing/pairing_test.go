package pairing

import (
	"context"
	"sync"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/semdiff/semdiff/internal/pkg/differ"
	"github.com/semdiff/semdiff/internal/pkg/report"
	"github.com/semdiff/semdiff/internal/pkg/tree"
	"github.com/semdiff/semdiff/internal/pkg/tree/fstree"
)

// byteEqualDiff is a minimal Diff used only by this test's stub calculator.
type byteEqualDiff struct {
	equal bool
}

func (d byteEqualDiff) Tag() string { return "stub" }
func (d byteEqualDiff) Equal() bool { return d.equal }

// stubCalculator always accepts, comparing raw bytes. It stands in for the
// real differ chain so pairing tests don't depend on any one differ's MIME
// gate.
type stubCalculator struct{}

func (stubCalculator) Diff(name string, expected, actual tree.Leaf) (differ.Diff, error) {
	e, err := expected.Bytes()
	if err != nil {
		return nil, err
	}
	a, err := actual.Bytes()
	if err != nil {
		return nil, err
	}
	return byteEqualDiff{equal: string(e) == string(a)}, nil
}

func (stubCalculator) Added(name string, actual tree.Leaf) (differ.Diff, error) {
	return byteEqualDiff{equal: false}, nil
}

func (stubCalculator) Deleted(name string, expected tree.Leaf) (differ.Diff, error) {
	return byteEqualDiff{equal: false}, nil
}

// recordingSink collects entries under a mutex, for assertions; a real
// concurrent map lives in the report/* packages.
type recordingSink struct {
	mu      sync.Mutex
	entries map[string]report.Entry
}

func newRecordingSink() *recordingSink {
	return &recordingSink{entries: make(map[string]report.Entry)}
}

func (s *recordingSink) Start() error { return nil }

func (s *recordingSink) Record(e report.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, dup := s.entries[e.Key]; dup {
		return errDuplicateKey(e.Key)
	}
	s.entries[e.Key] = e
	return nil
}

func (s *recordingSink) Finish() error { return nil }

type errDuplicateKey string

func (e errDuplicateKey) Error() string { return "duplicate key: " + string(e) }

func chain() differ.Chain {
	return differ.Chain{{Name: "stub", Calculator: stubCalculator{}}}
}

func TestWalk_IdenticalTreesAllUnchanged(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/e/a.txt", []byte("x"), 0o644))
	require.NoError(t, fs.MkdirAll("/e/dir/sub", 0o755))
	require.NoError(t, afero.WriteFile(fs, "/e/dir/sub/leaf", []byte("y"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/a/a.txt", []byte("x"), 0o644))
	require.NoError(t, fs.MkdirAll("/a/dir/sub", 0o755))
	require.NoError(t, afero.WriteFile(fs, "/a/dir/sub/leaf", []byte("y"), 0o644))

	sink := newRecordingSink()
	w := &Walker{Chain: chain(), Sink: sink}
	err := w.Walk(context.Background(), fstree.Root(fs, "/e"), fstree.Root(fs, "/a"))
	require.NoError(t, err)

	require.Len(t, sink.entries, 2)
	require.Equal(t, report.Unchanged, sink.entries["a.txt"].Status)
	require.Equal(t, report.Unchanged, sink.entries["dir/sub/leaf"].Status)
}

func TestWalk_SingleModification(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/e/dir/sub", 0o755))
	require.NoError(t, afero.WriteFile(fs, "/e/dir/sub/leaf", []byte("old"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/e/other", []byte("same"), 0o644))
	require.NoError(t, fs.MkdirAll("/a/dir/sub", 0o755))
	require.NoError(t, afero.WriteFile(fs, "/a/dir/sub/leaf", []byte("new"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/a/other", []byte("same"), 0o644))

	sink := newRecordingSink()
	w := &Walker{Chain: chain(), Sink: sink}
	require.NoError(t, w.Walk(context.Background(), fstree.Root(fs, "/e"), fstree.Root(fs, "/a")))

	require.Equal(t, report.Modified, sink.entries["dir/sub/leaf"].Status)
	require.Equal(t, report.Unchanged, sink.entries["other"].Status)
}

func TestWalk_AddedAndDeleted(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/e/only.txt", []byte("hi\n"), 0o644))
	require.NoError(t, fs.MkdirAll("/a", 0o755))
	require.NoError(t, afero.WriteFile(fs, "/a/new.txt", []byte("bye\n"), 0o644))

	sink := newRecordingSink()
	w := &Walker{Chain: chain(), Sink: sink}
	require.NoError(t, w.Walk(context.Background(), fstree.Root(fs, "/e"), fstree.Root(fs, "/a")))

	require.Len(t, sink.entries, 2)
	require.Equal(t, report.Deleted, sink.entries["only.txt"].Status)
	require.Equal(t, report.Added, sink.entries["new.txt"].Status)
}

func TestWalk_AddedDirectoryEmitsAllLeaves(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/e", 0o755))
	require.NoError(t, fs.MkdirAll("/a/dir", 0o755))
	require.NoError(t, afero.WriteFile(fs, "/a/dir/one", []byte("1"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/a/dir/two", []byte("2"), 0o644))

	sink := newRecordingSink()
	w := &Walker{Chain: chain(), Sink: sink}
	require.NoError(t, w.Walk(context.Background(), fstree.Root(fs, "/e"), fstree.Root(fs, "/a")))

	require.Len(t, sink.entries, 2)
	require.Equal(t, report.Added, sink.entries["dir/one"].Status)
	require.Equal(t, report.Added, sink.entries["dir/two"].Status)
}

func TestWalk_EmptyVsEmpty(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/e", 0o755))
	require.NoError(t, fs.MkdirAll("/a", 0o755))

	sink := newRecordingSink()
	w := &Walker{Chain: chain(), Sink: sink}
	require.NoError(t, w.Walk(context.Background(), fstree.Root(fs, "/e"), fstree.Root(fs, "/a")))
	require.Empty(t, sink.entries)
}
