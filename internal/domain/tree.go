package domain

import (
	"slices"
	"strings"
)

// MaxTreeDepth bounds how far below its start node a traversal descends
const MaxTreeDepth = 3

// TreeEntry is one materialized node of a bounded tree traversal
type TreeEntry struct {
	Node  Node
	Depth int
}

// FilteredEntry is a TreeEntry with the context selection overlay
type FilteredEntry struct {
	Node     Node
	Depth    int
	Selected bool
}

// SortTreeEntries orders entries by depth ascending, then most recently
// accessed first. Name and id break remaining ties so output is stable.
func SortTreeEntries(entries []TreeEntry) {
	slices.SortStableFunc(entries, func(a, b TreeEntry) int {
		if a.Depth != b.Depth {
			return a.Depth - b.Depth
		}
		if c := b.Node.LastAccessed.Compare(a.Node.LastAccessed); c != 0 {
			return c
		}
		if c := strings.Compare(a.Node.Name, b.Node.Name); c != 0 {
			return c
		}
		return strings.Compare(a.Node.ID, b.Node.ID)
	})
}
