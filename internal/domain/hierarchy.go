package domain

import "strings"

// HierarchySeparator joins breadcrumb segments
const HierarchySeparator = " → "

// maxHierarchyHops caps the parent walk in case the edge set is malformed
const maxHierarchyHops = 100

// FormatHierarchy renders the breadcrumb of nodeID by repeatedly following its
// first parent (lowest Seq, see FirstParent) until a root is reached. Names are
// joined root to leaf. Nodes missing from the map end the walk.
func FormatHierarchy(nodeID string, nodes map[string]Node, edges []Relationship) string {
	node, ok := nodes[nodeID]
	if !ok {
		return ""
	}

	names := []string{node.Name}
	seen := map[string]bool{nodeID: true}
	current := nodeID

	for hops := 0; hops < maxHierarchyHops; hops++ {
		parentID, ok := FirstParent(current, edges)
		if !ok || seen[parentID] {
			break
		}
		parent, ok := nodes[parentID]
		if !ok {
			break
		}
		names = append(names, parent.Name)
		seen[parentID] = true
		current = parentID
	}

	// Collected leaf to root
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return strings.Join(names, HierarchySeparator)
}
