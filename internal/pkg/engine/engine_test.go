package engine

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/semdiff/semdiff/internal/pkg/report"
)

type recordingSink struct {
	entries []report.Entry
}

func (s *recordingSink) Start() error { return nil }
func (s *recordingSink) Record(e report.Entry) error {
	s.entries = append(s.entries, e)
	return nil
}
func (s *recordingSink) Finish() error { return nil }

func TestRun_IdenticalTreesAllUnchanged(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "expected/a.txt", []byte("hello\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "expected/dir/b.json", []byte(`{"x":1}`), 0o644))
	require.NoError(t, afero.WriteFile(fs, "actual/a.txt", []byte("hello\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "actual/dir/b.json", []byte(`{"x":1}`), 0o644))

	sink := &recordingSink{}
	err := Run(context.Background(), fs, "expected", "actual", Config{}, sink)
	require.NoError(t, err)

	require.Len(t, sink.entries, 2)
	for _, e := range sink.entries {
		require.Equal(t, report.Unchanged, e.Status, e.Key)
	}
}

func TestRun_ModifiedAndDeletedAndAdded(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "expected/same.txt", []byte("a"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "expected/changed.txt", []byte("a"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "expected/removed.txt", []byte("a"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "actual/same.txt", []byte("a"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "actual/changed.txt", []byte("b"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "actual/added.txt", []byte("a"), 0o644))

	sink := &recordingSink{}
	err := Run(context.Background(), fs, "expected", "actual", Config{}, sink)
	require.NoError(t, err)

	byKey := map[string]report.Status{}
	for _, e := range sink.entries {
		byKey[e.Key] = e.Status
	}
	require.Equal(t, report.Unchanged, byKey["same.txt"])
	require.Equal(t, report.Modified, byKey["changed.txt"])
	require.Equal(t, report.Deleted, byKey["removed.txt"])
	require.Equal(t, report.Added, byKey["added.txt"])
}
