// Package tree abstracts a hierarchical source of named items. A Node
// contains further Items (Nodes or Leaves); a Leaf carries comparable
// content. The filesystem is the only concrete instance (see fstree), but
// nothing in the pairing engine or differ chain depends on that.
package tree

import "io"

// Item is a single named entry yielded while listing a Node's children. It
// is either a Node or a Leaf, never both.
type Item interface {
	// Name is this item's single path segment (no separators).
	Name() string

	// IsNode reports whether this item should be recursed into rather than
	// compared directly.
	IsNode() bool
}

// Node is a named container of further Items.
type Node interface {
	Item

	// Children lists this node's immediate entries. Order is unspecified;
	// the pairing engine sorts before merging.
	Children() ([]Item, error)
}

// Leaf is a named comparable unit: in the filesystem instance, a regular
// file.
type Leaf interface {
	Item

	// Path is the host-specific location of this leaf, used only for
	// diagnostics and for opening the content a second time if needed. It is
	// not made absolute: fstree joins the root path it was given with the
	// segments below it, so Path is relative whenever that root is.
	Path() string

	// MIME is the detected content type, e.g. "application/json".
	MIME() string

	// Size is the content length in bytes.
	Size() int64

	// ModTime reports whether a last-modified instant is available and, if
	// so, its Unix nanosecond value.
	ModTime() (unixNano int64, ok bool)

	// Open returns a fresh reader over this leaf's content. Implementations
	// should make repeated opens cheap (e.g. backed by an in-memory byte
	// view) since a differ may need to read content more than once.
	Open() (io.ReadCloser, error)

	// Bytes returns the full content as a read-only, cheaply cloneable byte
	// slice. Callers must not mutate the returned slice.
	Bytes() ([]byte, error)
}
