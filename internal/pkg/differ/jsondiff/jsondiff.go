// Package jsondiff implements the JSON structural differ (spec.md §4.3):
// parse both sides, optionally canonicalize key order, and produce an
// LCS-aligned structural diff with best-fit pairing for replaced array and
// object subtrees.
//
// Parsing goes through gopkg.in/yaml.v3's *yaml.Node rather than
// encoding/json: JSON is a subset of YAML, and yaml.Node preserves document
// order and per-node style the way the teacher's own
// internal/pkg/template/diff package relies on for structural CFN-template
// diffing — the same property this differ needs to detect "same keys,
// different order" versus "different keys".
package jsondiff

import (
	"strings"

	"github.com/semdiff/semdiff/internal/pkg/differ"
	"github.com/semdiff/semdiff/internal/pkg/tree"
)

// Config mirrors the relevant slice of spec.md §6's configuration bundle.
type Config struct {
	// IgnoreObjectKeyOrder sorts every object's keys recursively before
	// diffing, so {"a":1,"b":2} and {"b":2,"a":1} compare equal.
	IgnoreObjectKeyOrder bool
}

// Calculator is the JSON differ's Calculator. It accepts a pair only when
// both sides' MIME is a JSON family and both parse successfully; any parse
// failure is reported as differ.ErrUnsupported so downstream differs (text,
// binary) can still handle malformed JSON.
type Calculator struct {
	Config Config
}

var _ differ.Calculator = Calculator{}

func acceptsMIME(m string) bool {
	switch {
	case m == "application/json", m == "text/json":
		return true
	case strings.HasSuffix(m, "+json"):
		return true
	default:
		return false
	}
}

func (c Calculator) Diff(name string, expected, actual tree.Leaf) (differ.Diff, error) {
	if !acceptsMIME(expected.MIME()) || !acceptsMIME(actual.MIME()) {
		return nil, differ.ErrUnsupported
	}
	eb, err := expected.Bytes()
	if err != nil {
		return nil, err
	}
	ab, err := actual.Bytes()
	if err != nil {
		return nil, err
	}
	eNode, err := parse(eb)
	if err != nil {
		return nil, differ.ErrUnsupported
	}
	aNode, err := parse(ab)
	if err != nil {
		return nil, differ.ErrUnsupported
	}
	if c.Config.IgnoreObjectKeyOrder {
		canonicalize(eNode)
		canonicalize(aNode)
	}
	return buildTree(eNode, aNode), nil
}

// Added/Deleted: a single-sided JSON file is accepted the same way a
// Modified pair would be, diffed against an empty document so every line
// renders as Added or Deleted.
func (c Calculator) Added(name string, actual tree.Leaf) (differ.Diff, error) {
	if !acceptsMIME(actual.MIME()) {
		return nil, differ.ErrUnsupported
	}
	ab, err := actual.Bytes()
	if err != nil {
		return nil, err
	}
	aNode, err := parse(ab)
	if err != nil {
		return nil, differ.ErrUnsupported
	}
	if c.Config.IgnoreObjectKeyOrder {
		canonicalize(aNode)
	}
	return buildTree(nil, aNode), nil
}

func (c Calculator) Deleted(name string, expected tree.Leaf) (differ.Diff, error) {
	if !acceptsMIME(expected.MIME()) {
		return nil, differ.ErrUnsupported
	}
	eb, err := expected.Bytes()
	if err != nil {
		return nil, err
	}
	eNode, err := parse(eb)
	if err != nil {
		return nil, differ.ErrUnsupported
	}
	if c.Config.IgnoreObjectKeyOrder {
		canonicalize(eNode)
	}
	return buildTree(eNode, nil), nil
}
