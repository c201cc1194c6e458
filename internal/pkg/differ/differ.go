// Package differ defines the calculator/reporter dispatch contract
// (spec.md §4.2, §9): an ordered heterogeneous list of differs, the first of
// which to accept a pair handles it.
package differ

import (
	"errors"

	"github.com/semdiff/semdiff/internal/pkg/tree"
)

// ErrUnsupported signals a differ declining a pair because the content
// isn't its file type — distinct from a computation failure.
var ErrUnsupported = errors.New("differ: unsupported")

// ErrNoDifferMatched is returned when every differ in the chain declined a
// pair. It cannot happen when a Binary differ (universal fallback) is
// present; elsewhere it indicates a configuration mistake.
var ErrNoDifferMatched = errors.New("differ: no differ matched")

// Diff is the tagged result a Calculator produces for a pair it accepted.
// Tag identifies which differ produced it (for the reporter's differ_tag
// field); Equal reports whether the pair should be classified Unchanged.
type Diff interface {
	Tag() string
	Equal() bool
}

// Calculator inspects a leaf pair (or a single-sided leaf) and either
// computes a Diff or declines with ErrUnsupported.
type Calculator interface {
	// Diff compares two leaves with the same path. Returns ErrUnsupported if
	// this calculator doesn't handle the pair's content.
	Diff(name string, expected, actual tree.Leaf) (Diff, error)

	// Added and Deleted handle a leaf present on only one side. They may
	// also decline with ErrUnsupported (e.g. a differ that can only compare
	// pairs, never single-sided leaves).
	Added(name string, actual tree.Leaf) (Diff, error)
	Deleted(name string, expected tree.Leaf) (Diff, error)
}

// Entry is one differ registered in the chain: its Calculator plus an
// opaque reporter-specific detail renderer (Reporter lives in package
// report; Calculator alone is enough to drive dispatch).
type Entry struct {
	Name       string
	Calculator Calculator
}

// Chain is the ordered list of differs consulted for each leaf pair.
// Recommended order per spec.md §4.2: JSON (narrowest), text, audio, image,
// binary (universal fallback).
type Chain []Entry

// Diff dispatches a leaf pair to the first Calculator that doesn't decline.
func (c Chain) Diff(name string, expected, actual tree.Leaf) (string, Diff, error) {
	for _, e := range c {
		d, err := e.Calculator.Diff(name, expected, actual)
		if errors.Is(err, ErrUnsupported) {
			continue
		}
		if err != nil {
			return e.Name, nil, err
		}
		return e.Name, d, nil
	}
	return "", nil, ErrNoDifferMatched
}

// Added dispatches a single-sided (actual only) leaf.
func (c Chain) Added(name string, actual tree.Leaf) (string, Diff, error) {
	for _, e := range c {
		d, err := e.Calculator.Added(name, actual)
		if errors.Is(err, ErrUnsupported) {
			continue
		}
		if err != nil {
			return e.Name, nil, err
		}
		return e.Name, d, nil
	}
	return "", nil, ErrNoDifferMatched
}

// Deleted dispatches a single-sided (expected only) leaf.
func (c Chain) Deleted(name string, expected tree.Leaf) (string, Diff, error) {
	for _, e := range c {
		d, err := e.Calculator.Deleted(name, expected)
		if errors.Is(err, ErrUnsupported) {
			continue
		}
		if err != nil {
			return e.Name, nil, err
		}
		return e.Name, d, nil
	}
	return "", nil, ErrNoDifferMatched
}
