package summary

import (
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"github.com/semdiff/semdiff/internal/pkg/report"
)

func TestSink_CountsAndPrint(t *testing.T) {
	color.NoColor = true
	var b strings.Builder
	s := New(&b)

	require.NoError(t, s.Start())
	require.NoError(t, s.Record(report.Entry{Key: "a", Status: report.Unchanged}))
	require.NoError(t, s.Record(report.Entry{Key: "b", Status: report.Modified}))
	require.NoError(t, s.Record(report.Entry{Key: "c", Status: report.Added}))
	require.NoError(t, s.Record(report.Entry{Key: "d", Status: report.Deleted}))
	require.NoError(t, s.Record(report.Entry{Key: "e", Status: report.Deleted}))

	unchanged, modified, added, deleted := s.Counts()
	require.EqualValues(t, 1, unchanged)
	require.EqualValues(t, 1, modified)
	require.EqualValues(t, 1, added)
	require.EqualValues(t, 2, deleted)

	require.NoError(t, s.Finish())
	out := b.String()
	require.Contains(t, out, "unchanged:")
	require.Contains(t, out, "1")
	require.Contains(t, out, "2")
}
