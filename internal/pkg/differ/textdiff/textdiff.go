// Package textdiff implements the line-level text differ (spec.md §4.4): a
// byte-equality gate for Equal(), with a line-level LCS diff computed for
// rendering once two sides disagree. The diff is the plain dynamic-programming
// LCS of internal/pkg/lcs; unique lines are not anchored first the way a
// patience diff anchors them.
package textdiff

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/semdiff/semdiff/internal/pkg/differ"
	"github.com/semdiff/semdiff/internal/pkg/lcs"
	"github.com/semdiff/semdiff/internal/pkg/tree"
)

// Calculator is the text differ's Calculator.
type Calculator struct{}

var _ differ.Calculator = Calculator{}

func isTextMIME(m string) bool {
	return strings.HasPrefix(m, "text/") ||
		m == "application/json" || m == "application/xml" || m == "application/x-yaml" ||
		strings.HasSuffix(m, "+json") || strings.HasSuffix(m, "+xml")
}

var knownBinaryPrefixes = []string{"image/", "audio/", "video/", "application/octet-stream", "font/"}

func isKnownBinaryMIME(m string) bool {
	for _, p := range knownBinaryPrefixes {
		if strings.HasPrefix(m, p) {
			return true
		}
	}
	return false
}

// looksLikeText reports whether b is valid UTF-8 containing only \n, \r, \t
// or non-control characters — spec.md §4.4's content-sniff fallback for
// content whose MIME isn't recognized as text but also isn't known-binary.
func looksLikeText(b []byte) bool {
	if !utf8.Valid(b) {
		return false
	}
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r == utf8.RuneError && size == 1 {
			return false
		}
		if unicode.IsControl(r) && r != '\n' && r != '\r' && r != '\t' {
			return false
		}
		b = b[size:]
	}
	return true
}

func accepts(m string, content []byte) bool {
	if isTextMIME(m) {
		return true
	}
	return !isKnownBinaryMIME(m) && looksLikeText(content)
}

func (Calculator) Diff(name string, expected, actual tree.Leaf) (differ.Diff, error) {
	eb, err := expected.Bytes()
	if err != nil {
		return nil, err
	}
	ab, err := actual.Bytes()
	if err != nil {
		return nil, err
	}
	if !accepts(expected.MIME(), eb) || !accepts(actual.MIME(), ab) {
		return nil, differ.ErrUnsupported
	}

	if string(eb) == string(ab) {
		return &Diff{equal: true}, nil
	}
	return &Diff{equal: false, lines: diffLines(splitLines(string(eb)), splitLines(string(ab)))}, nil
}

func (Calculator) Added(name string, actual tree.Leaf) (differ.Diff, error) {
	ab, err := actual.Bytes()
	if err != nil {
		return nil, err
	}
	if !accepts(actual.MIME(), ab) {
		return nil, differ.ErrUnsupported
	}
	return &Diff{equal: false, lines: diffLines(nil, splitLines(string(ab)))}, nil
}

func (Calculator) Deleted(name string, expected tree.Leaf) (differ.Diff, error) {
	eb, err := expected.Bytes()
	if err != nil {
		return nil, err
	}
	if !accepts(expected.MIME(), eb) {
		return nil, differ.ErrUnsupported
	}
	return &Diff{equal: false, lines: diffLines(splitLines(string(eb)), nil)}, nil
}

// splitLines splits on \n, keeping empty trailing segments out of the slice
// the way a line-oriented tool would (a file ending in \n has no trailing
// empty "line").
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// LineTag classifies one rendered diff line.
type LineTag int

const (
	LineUnchanged LineTag = iota
	LineAdded
	LineDeleted
)

// Line is one line of the rendered diff.
type Line struct {
	Tag  LineTag
	Text string
}

// Diff is the text differ's Diff value.
type Diff struct {
	equal bool
	lines []Line
}

func (d *Diff) Tag() string   { return "text" }
func (d *Diff) Equal() bool   { return d.equal }
func (d *Diff) Lines() []Line { return d.lines }

// diffLines runs the shared LCS primitive over both line slices and expands
// the sparse match set into a full Unchanged/Added/Deleted sequence.
func diffLines(e, a []string) []Line {
	pairs := lcs.AlignStrings(e, a)

	out := make([]Line, 0, len(e)+len(a))
	i, j := 0, 0
	for _, p := range pairs {
		for ; i < p.A; i++ {
			out = append(out, Line{Tag: LineDeleted, Text: e[i]})
		}
		for ; j < p.B; j++ {
			out = append(out, Line{Tag: LineAdded, Text: a[j]})
		}
		out = append(out, Line{Tag: LineUnchanged, Text: e[p.A]})
		i, j = p.A+1, p.B+1
	}
	for ; i < len(e); i++ {
		out = append(out, Line{Tag: LineDeleted, Text: e[i]})
	}
	for ; j < len(a); j++ {
		out = append(out, Line{Tag: LineAdded, Text: a[j]})
	}
	return out
}
