// Package summary implements the counts-only reporter sink (spec.md §4.8):
// four atomic counters, printed on Finish. No per-entry detail is retained.
package summary

import (
	"fmt"
	"io"
	"sync/atomic"

	"github.com/fatih/color"

	"github.com/semdiff/semdiff/internal/pkg/report"
)

// Sink prints four counts on Finish. Counters are commutative (spec.md §5),
// so Record needs no locking beyond the atomic increments themselves.
type Sink struct {
	w io.Writer

	unchanged int64
	modified  int64
	added     int64
	deleted   int64
}

var _ report.Sink = (*Sink)(nil)

// New returns a Sink that prints its final counts to w.
func New(w io.Writer) *Sink {
	return &Sink{w: w}
}

func (s *Sink) Start() error { return nil }

func (s *Sink) Record(e report.Entry) error {
	switch e.Status {
	case report.Unchanged:
		atomic.AddInt64(&s.unchanged, 1)
	case report.Modified:
		atomic.AddInt64(&s.modified, 1)
	case report.Added:
		atomic.AddInt64(&s.added, 1)
	case report.Deleted:
		atomic.AddInt64(&s.deleted, 1)
	}
	return nil
}

// Finish prints the four counts. Ordering is irrelevant (spec.md §4.8) but
// is always emitted in the fixed Unchanged/Modified/Added/Deleted order for
// a stable, scriptable format.
func (s *Sink) Finish() error {
	unchanged := atomic.LoadInt64(&s.unchanged)
	modified := atomic.LoadInt64(&s.modified)
	added := atomic.LoadInt64(&s.added)
	deleted := atomic.LoadInt64(&s.deleted)

	fmt.Fprintf(s.w, "%s %d\n", color.New(color.Faint).Sprint("unchanged:"), unchanged)
	fmt.Fprintf(s.w, "%s %d\n", color.YellowString("modified: "), modified)
	fmt.Fprintf(s.w, "%s %d\n", color.GreenString("added:    "), added)
	fmt.Fprintf(s.w, "%s %d\n", color.RedString("deleted:  "), deleted)
	return nil
}

// Counts exposes the four totals for callers that want them as data (e.g.
// the CLI's non-zero exit code on any Modified/Added/Deleted entry) without
// re-parsing printed text.
func (s *Sink) Counts() (unchanged, modified, added, deleted int64) {
	return atomic.LoadInt64(&s.unchanged), atomic.LoadInt64(&s.modified), atomic.LoadInt64(&s.added), atomic.LoadInt64(&s.deleted)
}
