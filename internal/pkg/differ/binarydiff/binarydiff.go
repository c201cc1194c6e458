// Package binarydiff implements the universal fallback differ (spec.md
// §4.7): byte equality, with a character-granularity LCS diff for
// rendering when the chain dispatches here after every semantic differ has
// declined.
package binarydiff

import (
	"bytes"

	"github.com/semdiff/semdiff/internal/pkg/differ"
	"github.com/semdiff/semdiff/internal/pkg/lcs"
	"github.com/semdiff/semdiff/internal/pkg/tree"
)

// maxDiffBytes bounds the character-granularity LCS (O(n*m) time and space)
// to files small enough for it to be practical. Beyond this size, equal
// files still report Equal via byte comparison; unequal files report the
// byte-length delta without a rendered diff rather than exhausting memory on
// an O(n*m) table over megabyte-sized binaries.
const maxDiffBytes = 1 << 16

// Calculator is the binary differ's Calculator. It never declines: it is
// meant to be the last entry in a differ.Chain.
type Calculator struct{}

var _ differ.Calculator = Calculator{}

func (Calculator) Diff(name string, expected, actual tree.Leaf) (differ.Diff, error) {
	eb, err := expected.Bytes()
	if err != nil {
		return nil, err
	}
	ab, err := actual.Bytes()
	if err != nil {
		return nil, err
	}
	return compare(eb, ab), nil
}

func (Calculator) Added(name string, actual tree.Leaf) (differ.Diff, error) {
	ab, err := actual.Bytes()
	if err != nil {
		return nil, err
	}
	return &Diff{equal: false, actualLen: len(ab), addedBytes: len(ab)}, nil
}

func (Calculator) Deleted(name string, expected tree.Leaf) (differ.Diff, error) {
	eb, err := expected.Bytes()
	if err != nil {
		return nil, err
	}
	return &Diff{equal: false, expectedLen: len(eb), deletedBytes: len(eb)}, nil
}

// Diff is the binary differ's Diff value.
type Diff struct {
	equal        bool
	expectedLen  int
	actualLen    int
	addedBytes   int
	deletedBytes int
	rendered     bool
	runs         []Run
}

func (d *Diff) Tag() string { return "binary" }
func (d *Diff) Equal() bool { return d.equal }

// ExpectedLen and ActualLen report the compared byte slice lengths.
func (d *Diff) ExpectedLen() int { return d.expectedLen }
func (d *Diff) ActualLen() int   { return d.actualLen }

// Rendered reports whether Runs holds a character-granularity diff. It is
// false when either side exceeded maxDiffBytes.
func (d *Diff) Rendered() bool { return d.rendered }
func (d *Diff) Runs() []Run    { return d.runs }

// RunTag classifies one contiguous span of a rendered byte diff.
type RunTag int

const (
	RunUnchanged RunTag = iota
	RunAdded
	RunDeleted
)

// Run is one contiguous span of bytes sharing a RunTag.
type Run struct {
	Tag   RunTag
	Bytes []byte
}

func compare(e, a []byte) *Diff {
	if bytes.Equal(e, a) {
		return &Diff{equal: true, expectedLen: len(e), actualLen: len(a), rendered: true}
	}

	d := &Diff{equal: false, expectedLen: len(e), actualLen: len(a)}
	if len(e) > maxDiffBytes || len(a) > maxDiffBytes {
		return d
	}

	d.rendered = true
	d.runs = renderRuns(e, a)
	return d
}

// renderRuns expands the byte-level LCS into a full run sequence, merging
// consecutive indices of the same tag into single runs.
func renderRuns(e, a []byte) []Run {
	pairs := lcs.Align(len(e), len(a), func(i, j int) bool { return e[i] == a[j] })

	var runs []Run
	ei, ai, pi := 0, 0, 0
	flushDeleted := func(upto int) {
		if upto > ei {
			runs = appendRun(runs, RunDeleted, e[ei:upto])
			ei = upto
		}
	}
	flushAdded := func(upto int) {
		if upto > ai {
			runs = appendRun(runs, RunAdded, a[ai:upto])
			ai = upto
		}
	}

	for pi < len(pairs) {
		p := pairs[pi]
		flushDeleted(p.A)
		flushAdded(p.B)

		start := pi
		for pi < len(pairs) && pairs[pi].A-pairs[start].A == pi-start && pairs[pi].B-pairs[start].B == pi-start {
			pi++
		}
		runs = appendRun(runs, RunUnchanged, e[pairs[start].A:pairs[pi-1].A+1])
		ei, ai = pairs[pi-1].A+1, pairs[pi-1].B+1
	}
	flushDeleted(len(e))
	flushAdded(len(a))
	return runs
}

func appendRun(runs []Run, tag RunTag, b []byte) []Run {
	if len(b) == 0 {
		return runs
	}
	if n := len(runs); n > 0 && runs[n-1].Tag == tag {
		runs[n-1].Bytes = append(runs[n-1].Bytes, b...)
		return runs
	}
	cp := make([]byte, len(b))
	copy(cp, b)
	return append(runs, Run{Tag: tag, Bytes: cp})
}
