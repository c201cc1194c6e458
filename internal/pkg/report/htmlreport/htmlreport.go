// Package htmlreport implements the linked HTML reporter sink (spec.md
// §4.8, §6): an index file grouping entries by status, a sibling
// "<stem>_details/" directory of per-entry detail pages, and the binary
// assets (diff images, waveforms, spectrograms) those pages reference.
package htmlreport

import (
	"fmt"
	"html/template"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/spf13/afero"

	"github.com/semdiff/semdiff/internal/pkg/report"
)

// Sink writes its output under fs. IndexPath is the index file's location;
// its sibling details directory is named "<stem>_details" (spec.md §6).
type Sink struct {
	fs         afero.Fs
	indexPath  string
	detailsDir string // directory name only, relative to indexPath's dir

	mu      sync.Mutex
	entries map[string]report.Entry
}

var _ report.Sink = (*Sink)(nil)

// New returns a Sink that writes its index to indexPath (and a sibling
// "<stem>_details/" directory) on fs.
func New(fs afero.Fs, indexPath string) *Sink {
	stem := strings.TrimSuffix(filepath.Base(indexPath), filepath.Ext(indexPath))
	return &Sink{
		fs:         fs,
		indexPath:  indexPath,
		detailsDir: stem + "_details",
		entries:    make(map[string]report.Entry),
	}
}

func (s *Sink) Start() error { return nil }

func (s *Sink) Record(e report.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, dup := s.entries[e.Key]; dup {
		panic("htmlreport: duplicate entry key " + e.Key)
	}
	s.entries[e.Key] = e
	return nil
}

type indexEntry struct {
	Key        string
	DifferTag  string
	DetailFile string
	Preview    template.HTML
}

type group struct {
	Status  string
	Entries []indexEntry
}

type counts struct{ Unchanged, Modified, Added, Deleted int }

type indexData struct {
	Groups     []group
	Counts     counts
	DetailsDir string
	Tree       string
}

type detailData struct {
	Key       string
	Status    string
	DifferTag string
	IndexFile string
	Body      template.HTML
}

// statusOrder is spec.md §4.8's fixed grouping order for the index.
var statusOrder = []report.Status{report.Modified, report.Deleted, report.Added, report.Unchanged}

// Finish writes every entry's detail page and assets, then the index
// file last — so the index (the one file callers are told to open) only
// exists once every detail page it links to has been written successfully.
func (s *Sink) Finish() error {
	s.mu.Lock()
	entries := make(map[string]report.Entry, len(s.entries))
	for k, v := range s.entries {
		entries[k] = v
	}
	s.mu.Unlock()

	indexDir := filepath.Dir(s.indexPath)
	detailsDirFull := path.Join(indexDir, s.detailsDir)
	if err := s.fs.MkdirAll(detailsDirFull, 0o755); err != nil {
		return fmt.Errorf("htmlreport: create details dir: %w", err)
	}

	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	detailFiles := make(map[string]string, len(keys))
	for _, k := range keys {
		e := entries[k]
		file := assetName(k, "", "html")
		detailFiles[k] = file
		if err := s.writeDetail(detailsDirFull, file, e); err != nil {
			return err
		}
	}

	var counters counts
	groups := make([]group, 0, len(statusOrder))
	for _, status := range statusOrder {
		g := group{Status: status.String()}
		for _, k := range keys {
			e := entries[k]
			if e.Status != status {
				continue
			}
			g.Entries = append(g.Entries, indexEntry{
				Key:        k,
				DifferTag:  e.DifferTag,
				DetailFile: detailFiles[k],
				Preview:    preview(e.DifferTag, e.Detail),
			})
			switch status {
			case report.Unchanged:
				counters.Unchanged++
			case report.Modified:
				counters.Modified++
			case report.Added:
				counters.Added++
			case report.Deleted:
				counters.Deleted++
			}
		}
		groups = append(groups, g)
	}

	f, err := s.fs.Create(s.indexPath)
	if err != nil {
		return fmt.Errorf("htmlreport: create index: %w", err)
	}
	defer f.Close()

	return indexTemplate.Execute(f, indexData{Groups: groups, Counts: counters, DetailsDir: s.detailsDir, Tree: directoryTree(keys, entries)})
}

func (s *Sink) writeDetail(detailsDirFull, file string, e report.Entry) error {
	body := renderBody(s.fs, detailsDirFull, e.Key, e.DifferTag, e.Detail)

	full := path.Join(detailsDirFull, file)
	f, err := s.fs.Create(full)
	if err != nil {
		return fmt.Errorf("htmlreport: create detail %q: %w", full, err)
	}
	defer f.Close()

	return detailTemplate.Execute(f, detailData{
		Key:       e.Key,
		Status:    e.Status.String(),
		DifferTag: e.DifferTag,
		IndexFile: filepath.Base(s.indexPath),
		Body:      body,
	})
}
