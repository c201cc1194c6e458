// Package jsonreport implements the structured JSON reporter sink (spec.md
// §4.8, §6): a concurrent per-key entry map plus four counters, serialized
// as one UTF-8 JSON document on Finish with entries in sorted-key order.
package jsonreport

import (
	"encoding/json"
	"io"
	"sort"
	"sync"

	"github.com/semdiff/semdiff/internal/pkg/differ/audiodiff"
	"github.com/semdiff/semdiff/internal/pkg/differ/binarydiff"
	"github.com/semdiff/semdiff/internal/pkg/differ/imagediff"
	"github.com/semdiff/semdiff/internal/pkg/differ/jsondiff"
	"github.com/semdiff/semdiff/internal/pkg/differ/textdiff"
	"github.com/semdiff/semdiff/internal/pkg/report"
)

// Sink accumulates entries in a lock-protected map (spec.md §5 recommends a
// concurrent map "or equivalent"; a single mutex over a plain map is
// equivalent here since entries are written once each and read only after
// every writer has finished) and emits the full document on Finish.
type Sink struct {
	w io.Writer

	mu      sync.Mutex
	entries map[string]report.Entry

	unchanged, modified, added, deleted int
}

var _ report.Sink = (*Sink)(nil)

// New returns a Sink that writes its final document to w.
func New(w io.Writer) *Sink {
	return &Sink{w: w, entries: make(map[string]report.Entry)}
}

func (s *Sink) Start() error { return nil }

func (s *Sink) Record(e report.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, dup := s.entries[e.Key]; dup {
		panic("jsonreport: duplicate entry key " + e.Key)
	}
	s.entries[e.Key] = e
	switch e.Status {
	case report.Unchanged:
		s.unchanged++
	case report.Modified:
		s.modified++
	case report.Added:
		s.added++
	case report.Deleted:
		s.deleted++
	}
	return nil
}

// document is the top-level shape written to w.
type document struct {
	Unchanged int                      `json:"unchanged"`
	Modified  int                      `json:"modified"`
	Added     int                      `json:"added"`
	Deleted   int                      `json:"deleted"`
	Entries   map[string]entryDocument `json:"entries"`
}

// entryDocument is one entry's JSON shape: status, differ tag, and whatever
// differ-specific fields detail() extracted for that Diff's concrete type.
type entryDocument struct {
	Status   string          `json:"status"`
	Compares string          `json:"compares"`
	Detail   json.RawMessage `json:"detail,omitempty"`
}

// Finish marshals the accumulated entries, sorted by key. The entries are
// held in a map[string]entryDocument, so the key order in the written
// document comes from encoding/json, which encodes map[string]... keys in
// sorted order (spec.md §3's "final emission sorts by key").
func (s *Sink) Finish() error {
	s.mu.Lock()
	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	doc := document{
		Unchanged: s.unchanged,
		Modified:  s.modified,
		Added:     s.added,
		Deleted:   s.deleted,
		Entries:   make(map[string]entryDocument, len(keys)),
	}
	for _, k := range keys {
		e := s.entries[k]
		doc.Entries[k] = entryDocument{
			Status:   e.Status.String(),
			Compares: e.DifferTag,
			Detail:   detail(e.DifferTag, e.Detail),
		}
	}
	s.mu.Unlock()

	enc := json.NewEncoder(s.w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// detail extracts the differ-specific summary fields spec.md §6 names
// ("size, dimensions, loudness deltas, shift samples, etc.") from the
// concrete Diff value. Unknown tags/types marshal no detail rather than
// erroring, so a future differ can be added to the chain without this sink
// rejecting its output.
func detail(tag string, d any) json.RawMessage {
	var v any
	switch tag {
	case "json":
		if t, ok := d.(*jsondiff.Tree); ok {
			v = struct {
				LineCount int `json:"line_count"`
			}{LineCount: len(t.Lines())}
		}
	case "text":
		if t, ok := d.(*textdiff.Diff); ok {
			v = struct {
				LineCount int `json:"line_count"`
			}{LineCount: len(t.Lines())}
		}
	case "image":
		if t, ok := d.(*imagediff.Diff); ok {
			ew, eh := t.ExpectedSize()
			aw, ah := t.ActualSize()
			v = struct {
				ExpectedWidth  int     `json:"expected_width"`
				ExpectedHeight int     `json:"expected_height"`
				ActualWidth    int     `json:"actual_width"`
				ActualHeight   int     `json:"actual_height"`
				DiffPixels     int     `json:"diff_pixels"`
				TotalPixels    int     `json:"total_pixels"`
				DiffRatio      float64 `json:"diff_ratio"`
			}{ew, eh, aw, ah, t.DiffPixels(), t.TotalPixels(), t.DiffRatio()}
		}
	case "audio":
		if t, ok := d.(*audiodiff.Diff); ok {
			esr, ech := t.ExpectedMeta()
			asr, ach := t.ActualMeta()
			v = struct {
				Incomparable        bool    `json:"incomparable"`
				ExpectedSampleRate  int     `json:"expected_sample_rate"`
				ExpectedChannels    int     `json:"expected_channels"`
				ActualSampleRate    int     `json:"actual_sample_rate"`
				ActualChannels      int     `json:"actual_channels"`
				ShiftSamples        int     `json:"shift_samples,omitempty"`
				LufsDiffDB          float64 `json:"lufs_diff_db,omitempty"`
				SpectrogramDiffRate float64 `json:"spectrogram_diff_rate,omitempty"`
			}{t.Incomparable(), esr, ech, asr, ach, t.ShiftSamples(), t.LufsDiffDB(), t.SpectrogramDiffRate()}
		}
	case "binary":
		if t, ok := d.(*binarydiff.Diff); ok {
			v = struct {
				ExpectedLen int `json:"expected_len"`
				ActualLen   int `json:"actual_len"`
			}{t.ExpectedLen(), t.ActualLen()}
		}
	}
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return b
}
