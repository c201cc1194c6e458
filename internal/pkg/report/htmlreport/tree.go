package htmlreport

import (
	"strings"

	"github.com/xlab/treeprint"

	"github.com/semdiff/semdiff/internal/pkg/report"
)

// directoryTree renders every entry's path into an ASCII directory tree
// (an xlab/treeprint Tree, the teacher's own dependency for tree-shaped
// console output), annotating each leaf with its status. This mirrors
// spec.md §3's path-accumulator structure back into a human-scannable
// shape, complementing the flat per-status tables below it on the index
// page.
func directoryTree(sortedKeys []string, entries map[string]report.Entry) string {
	root := treeprint.New()
	branches := map[string]treeprint.Tree{"": root}

	for _, k := range sortedKeys {
		segs := strings.Split(k, "/")
		parent := ""
		path := ""
		for i, seg := range segs {
			path = seg
			if parent != "" {
				path = parent + "/" + seg
			}
			if _, ok := branches[path]; !ok {
				pb := branches[parent]
				if i == len(segs)-1 {
					pb.AddNode(seg + " (" + entries[k].Status.String() + ")")
				} else {
					branches[path] = pb.AddBranch(seg)
				}
			}
			parent = path
		}
	}
	return root.String()
}
