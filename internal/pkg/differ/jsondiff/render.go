package jsondiff

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// LineTag classifies one rendered line of a Tree's output.
type LineTag int

const (
	LineUnchanged LineTag = iota
	LineAdded
	LineDeleted
)

// Line is one line of the pretty-printed structural diff (spec.md §4.3's
// "ordered list of display lines").
type Line struct {
	Tag   LineTag
	Depth int
	Text  string
}

func indentOf(depth int) string { return strings.Repeat("  ", depth) }

// renderAll pretty-prints an entire value as a block of lines, every one
// tagged the same way — used when a whole subtree is one-sided.
func renderAll(n *yaml.Node, tag entryTag, depth int) []Line {
	lt := LineAdded
	if tag == tagDeleted {
		lt = LineDeleted
	}
	text := prettyText(n)
	raw := strings.Split(text, "\n")
	indent := indentOf(depth)
	out := make([]Line, len(raw))
	for i, l := range raw {
		out[i] = Line{Tag: lt, Depth: depth, Text: indent + l}
	}
	return out
}

func renderContainer(c *containerNode, depth int) []Line {
	return renderContainerWithPrefix(c, depth, "", LineUnchanged)
}

func renderContainerWithPrefix(c *containerNode, depth int, keyPrefix string, openTag LineTag) []Line {
	open, close := "{", "}"
	if c.isArray {
		open, close = "[", "]"
	}
	indent := indentOf(depth)
	out := []Line{{Tag: openTag, Depth: depth, Text: indent + keyPrefix + open}}
	for idx, e := range c.entries {
		lines := renderEntry(e, depth+1)
		if idx != len(c.entries)-1 && len(lines) > 0 {
			lines[len(lines)-1].Text += ","
		}
		out = append(out, lines...)
	}
	out = append(out, Line{Tag: openTag, Depth: depth, Text: indent + close})
	return out
}

// renderEntry renders the line(s) for one object key or array element, not
// including any trailing comma (the enclosing container adds that).
func renderEntry(e entry, depth int) []Line {
	indent := indentOf(depth)
	keyPrefix := ""
	if e.key != "" {
		keyPrefix = fmt.Sprintf("%q: ", e.key)
	}

	switch {
	case e.tag == tagUnchanged && e.child != nil:
		return renderContainerWithPrefix(e.child, depth, keyPrefix, LineUnchanged)
	case e.tag == tagModified && e.child != nil:
		// The container itself isn't added/deleted, only some of its
		// contents — render as an ordinary (unchanged-brace) container and
		// let the nested entries carry their own tags.
		return renderContainerWithPrefix(e.child, depth, keyPrefix, LineUnchanged)
	case e.tag == tagUnchanged:
		return []Line{{Tag: LineUnchanged, Depth: depth, Text: indent + keyPrefix + e.oldText}}
	case e.tag == tagModified:
		var out []Line
		out = append(out, reindentBlock(e.oldLines, depth, keyPrefix)...)
		out = append(out, reindentBlock(e.newLines, depth, keyPrefix)...)
		return out
	case e.tag == tagAdded:
		return reindentBlock(e.newLines, depth, keyPrefix)
	default: // tagDeleted
		return reindentBlock(e.oldLines, depth, keyPrefix)
	}
}

// reindentBlock takes lines rendered at depth 0 (renderAll's output) and
// shifts them to the real depth, attaching keyPrefix to the first line only.
func reindentBlock(lines []Line, depth int, keyPrefix string) []Line {
	out := make([]Line, len(lines))
	base := indentOf(depth)
	for i, l := range lines {
		text := base + l.Text
		if i == 0 {
			text = base + keyPrefix + l.Text
		}
		out[i] = Line{Tag: l.Tag, Depth: depth + l.Depth, Text: text}
	}
	return out
}
