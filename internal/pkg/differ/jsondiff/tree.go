package jsondiff

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

type entryTag int

const (
	tagUnchanged entryTag = iota
	tagModified
	tagAdded
	tagDeleted
)

// entry is one slot in a container (an object key or an array index) after
// alignment. key is empty for array entries. child holds the recursive
// diff when both sides are present and share a container kind; oldText/
// newText hold pretty-printed forms for everything else (scalar replace,
// kind-mismatch replace, or a one-sided value rendered wholesale).
type entry struct {
	key      string
	tag      entryTag
	child    *containerNode
	oldText  string
	newText  string
	oldLines []Line // pre-rendered, used for Added/Deleted whole-subtree blocks
	newLines []Line
}

// containerNode is the generalization of the teacher's keyNode/seqItemNode
// family: an ordered list of entries for one object or array, on whichever
// side(s) it is present.
type containerNode struct {
	isArray bool
	entries []entry
	equal   bool
}

// Tree is the jsondiff.Calculator's Diff value.
type Tree struct {
	root       *containerNode // nil unless both documents are present and the same container kind
	rootScalar *entry         // used when root isn't a container
	equalWhole bool
}

func (t *Tree) Tag() string { return "json" }
func (t *Tree) Equal() bool { return t.equalWhole }

// Lines renders the full document, recursively, with every line tagged
// Unchanged, Added or Deleted; a modified value renders as its Deleted (old)
// lines followed by its Added (new) lines — see render.go.
func (t *Tree) Lines() []Line {
	if t.root == nil && t.rootScalar != nil {
		return renderEntry(*t.rootScalar, 0)
	}
	if t.root == nil {
		return nil
	}
	return renderContainer(t.root, 0)
}

func buildTree(e, a *yaml.Node) *Tree {
	c, scalar, equal := diffValue(e, a)
	return &Tree{root: c, rootScalar: scalar, equalWhole: equal}
}

// diffValue compares two (possibly nil, meaning absent) yaml nodes and
// returns either a containerNode (both sides present, same container kind)
// or a leaf entry (scalar replace, kind mismatch, or single-sided value).
func diffValue(e, a *yaml.Node) (c *containerNode, leaf *entry, equal bool) {
	switch {
	case e == nil && a == nil:
		return nil, nil, true
	case e == nil:
		lines := renderAll(a, tagAdded, 0)
		return nil, &entry{tag: tagAdded, newText: prettyText(a), newLines: lines}, false
	case a == nil:
		lines := renderAll(e, tagDeleted, 0)
		return nil, &entry{tag: tagDeleted, oldText: prettyText(e), oldLines: lines}, false
	case isMapping(e) && isMapping(a):
		cn := diffObject(e, a)
		return cn, nil, cn.equal
	case isSequence(e) && isSequence(a):
		cn := diffArray(e, a)
		return cn, nil, cn.equal
	case isScalar(e) && isScalar(a) && e.Value == a.Value && e.Tag == a.Tag:
		return nil, &entry{tag: tagUnchanged, oldText: prettyText(e), newText: prettyText(a)}, true
	default:
		// Scalar-vs-scalar mismatch, or a kind mismatch (object/array/scalar
		// crossing): a single Modified entry carrying both pretty forms,
		// rendered as delete-then-insert (this JSON differ's resolution of
		// the type-mismatch-at-equal-key question).
		return nil, &entry{
			tag:      tagModified,
			oldText:  prettyText(e),
			newText:  prettyText(a),
			oldLines: renderAll(e, tagDeleted, 0),
			newLines: renderAll(a, tagAdded, 0),
		}, false
	}
}

func diffObject(e, a *yaml.Node) *containerNode {
	ekeys, akeys := mapKeys(e), mapKeys(a)
	pairs := alignKeys(ekeys, akeys)

	entries := make([]entry, 0, len(pairs))
	equal := true
	for _, p := range pairs {
		switch {
		case p.A < 0:
			key := akeys[p.B]
			v, _ := mapValue(a, key)
			entries = append(entries, entry{key: key, tag: tagAdded, newText: prettyText(v), newLines: renderAll(v, tagAdded, 0)})
			equal = false
		case p.B < 0:
			key := ekeys[p.A]
			v, _ := mapValue(e, key)
			entries = append(entries, entry{key: key, tag: tagDeleted, oldText: prettyText(v), oldLines: renderAll(v, tagDeleted, 0)})
			equal = false
		default:
			key := ekeys[p.A]
			ev, _ := mapValue(e, key)
			av, _ := mapValue(a, key)
			child, leaf, eq := diffValue(ev, av)
			if !eq {
				equal = false
			}
			tag := tagUnchanged
			if !eq {
				tag = tagModified
			}
			if leaf != nil {
				leaf.key = key
				leaf.tag = tag
				entries = append(entries, *leaf)
			} else {
				entries = append(entries, entry{key: key, tag: tag, child: child})
			}
		}
	}
	return &containerNode{isArray: false, entries: entries, equal: equal}
}

func diffArray(e, a *yaml.Node) *containerNode {
	pairs := alignArray(e.Content, a.Content)

	entries := make([]entry, 0, len(pairs))
	equal := true
	for _, p := range pairs {
		switch {
		case p.A < 0:
			v := a.Content[p.B]
			entries = append(entries, entry{tag: tagAdded, newText: prettyText(v), newLines: renderAll(v, tagAdded, 0)})
			equal = false
		case p.B < 0:
			v := e.Content[p.A]
			entries = append(entries, entry{tag: tagDeleted, oldText: prettyText(v), oldLines: renderAll(v, tagDeleted, 0)})
			equal = false
		default:
			ev, av := e.Content[p.A], a.Content[p.B]
			child, leaf, eq := diffValue(ev, av)
			if !eq {
				equal = false
			}
			tag := tagUnchanged
			if !eq {
				tag = tagModified
			}
			if leaf != nil {
				leaf.tag = tag
				entries = append(entries, *leaf)
			} else {
				entries = append(entries, entry{tag: tag, child: child})
			}
		}
	}
	return &containerNode{isArray: true, entries: entries, equal: equal}
}

// nodesEqual is the deep structural equality used to find exact array
// element matches before any best-fit pairing is attempted.
func nodesEqual(e, a *yaml.Node) bool {
	if e == nil || a == nil {
		return e == a
	}
	switch {
	case isScalar(e) && isScalar(a):
		return e.Tag == a.Tag && e.Value == a.Value
	case isMapping(e) && isMapping(a):
		ek, ak := mapKeys(e), mapKeys(a)
		if len(ek) != len(ak) {
			return false
		}
		for i := range ek {
			if ek[i] != ak[i] {
				return false
			}
			ev, _ := mapValue(e, ek[i])
			av, _ := mapValue(a, ak[i])
			if !nodesEqual(ev, av) {
				return false
			}
		}
		return true
	case isSequence(e) && isSequence(a):
		if len(e.Content) != len(a.Content) {
			return false
		}
		for i := range e.Content {
			if !nodesEqual(e.Content[i], a.Content[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// prettyText renders a whole value as indented JSON text, used for
// wholesale Added/Deleted blocks and scalar replace lines. Key order isn't
// preserved here (it goes through interface{}) which is immaterial: this is
// only ever used for subtrees that are entirely one-sided or entirely
// opaque to the structural diff.
func prettyText(n *yaml.Node) string {
	if n == nil {
		return "null"
	}
	var v interface{}
	if err := n.Decode(&v); err != nil {
		return n.Value
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return n.Value
	}
	return string(b)
}
