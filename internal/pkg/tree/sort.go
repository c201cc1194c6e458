package tree

import "sort"

// SortItems orders items for pairing: Nodes before Leaves, then
// lexicographically by the bytes of Name within each kind. This is the
// ordering spec.md's pairing engine relies on — it converts set-intersection
// into a linear two-finger merge and makes cross-kind name collisions
// (impossible in a real filesystem, but defensively handled) sort apart
// rather than appear to "match".
func SortItems(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.IsNode() != b.IsNode() {
			return a.IsNode() // nodes before leaves
		}
		return a.Name() < b.Name()
	})
}
