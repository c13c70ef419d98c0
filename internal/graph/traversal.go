package graph

import (
	"context"
	"slices"

	"trailhead/internal/application"
	"trailhead/internal/domain"
	"trailhead/internal/ports"
)

// childLoader returns the direct children of a node
type childLoader func(ctx context.Context, id string) ([]domain.Node, error)

type pending struct {
	node  domain.Node
	depth int
	path  []string
}

// walkTree materializes the nodes reachable from starts within maxDepth hops.
// All starts sit at depth 0 and expansion is breadth-first, so the first time
// a node is discovered is at its minimum depth; it is emitted and expanded
// only then. The per-entry path guards against cycles in corrupted data.
func walkTree(ctx context.Context, starts []domain.Node, children childLoader, maxDepth int) ([]domain.TreeEntry, error) {
	seen := make(map[string]bool, len(starts))
	out := make([]domain.TreeEntry, 0, len(starts))
	queue := make([]pending, 0, len(starts))

	for _, s := range starts {
		if seen[s.ID] {
			continue
		}
		seen[s.ID] = true
		out = append(out, domain.TreeEntry{Node: s, Depth: 0})
		queue = append(queue, pending{node: s, depth: 0, path: []string{s.ID}})
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if cur.depth >= maxDepth {
			continue
		}

		kids, err := children(ctx, cur.node.ID)
		if err != nil {
			return nil, err
		}

		for _, k := range kids {
			if slices.Contains(cur.path, k.ID) || seen[k.ID] {
				continue
			}
			seen[k.ID] = true
			depth := cur.depth + 1
			out = append(out, domain.TreeEntry{Node: k, Depth: depth})

			path := append(slices.Clone(cur.path), k.ID)
			queue = append(queue, pending{node: k, depth: depth, path: path})
		}
	}

	return out, nil
}

// NodeTree returns the bounded tree for a filter. Root filters start from
// every root node passing the filter predicate; category filters start from
// their anchor node, and yield nothing when the anchor is missing.
// The CONTEXT filter is resolved by FilteredNodeTree and behaves as ALL here.
func (e *Engine) NodeTree(ctx context.Context, filter domain.Filter) ([]domain.TreeEntry, error) {
	var entries []domain.TreeEntry
	err := e.withReadTx(ctx, "node tree", func(tx ports.GraphTx) error {
		var err error
		entries, err = e.nodeTree(ctx, tx, filter)
		return err
	})
	return entries, err
}

func (e *Engine) nodeTree(ctx context.Context, tx ports.GraphTx, filter domain.Filter) ([]domain.TreeEntry, error) {
	starts, err := e.startNodes(ctx, tx, filter)
	if err != nil {
		return nil, err
	}

	entries, err := walkTree(ctx, starts, tx.ChildNodes, domain.MaxTreeDepth)
	if err != nil {
		return nil, err
	}
	domain.SortTreeEntries(entries)
	return entries, nil
}

func (e *Engine) startNodes(ctx context.Context, tx ports.GraphTx, filter domain.Filter) ([]domain.Node, error) {
	if anchorID, ok := filter.AnchorID(); ok {
		anchor, err := tx.GetNode(ctx, anchorID)
		if err != nil || anchor == nil {
			return nil, err
		}
		return []domain.Node{*anchor}, nil
	}

	roots, err := tx.RootNodes(ctx)
	if err != nil {
		return nil, err
	}

	now := e.now()
	starts := roots[:0]
	for _, r := range roots {
		if filter.MatchesRoot(r, now) {
			starts = append(starts, r)
		}
	}
	return starts, nil
}

// FilteredNodeTree overlays the current context on NodeTree. For the CONTEXT
// filter only members are returned, each at its depth in the ALL tree or at
// depth 0 when it lies outside that bounded tree. Without a current context
// CONTEXT yields nothing and every other filter reports Selected=false.
func (e *Engine) FilteredNodeTree(ctx context.Context, filter domain.Filter) ([]domain.FilteredEntry, error) {
	current, err := e.currentContext(ctx)
	if err != nil {
		return nil, err
	}

	var result []domain.FilteredEntry
	err = e.withReadTx(ctx, "filtered node tree", func(tx ports.GraphTx) error {
		if filter != domain.FilterContext {
			entries, err := e.nodeTree(ctx, tx, filter)
			if err != nil {
				return err
			}
			result = make([]domain.FilteredEntry, 0, len(entries))
			for _, en := range entries {
				result = append(result, domain.FilteredEntry{
					Node:     en.Node,
					Depth:    en.Depth,
					Selected: current.Has(en.Node.ID),
				})
			}
			return nil
		}

		if current == nil {
			return nil
		}

		all, err := e.nodeTree(ctx, tx, domain.FilterAll)
		if err != nil {
			return err
		}
		depths := make(map[string]int, len(all))
		for _, en := range all {
			depths[en.Node.ID] = en.Depth
		}

		members := make([]domain.TreeEntry, 0, len(current.MemberNodeIDs))
		for _, id := range current.Members() {
			n, err := tx.GetNode(ctx, id)
			if err != nil {
				return err
			}
			if n == nil {
				continue
			}
			members = append(members, domain.TreeEntry{Node: *n, Depth: depths[id]})
		}
		domain.SortTreeEntries(members)

		result = make([]domain.FilteredEntry, 0, len(members))
		for _, m := range members {
			result = append(result, domain.FilteredEntry{Node: m.Node, Depth: m.Depth, Selected: true})
		}
		return nil
	})
	return result, err
}

func (e *Engine) currentContext(ctx context.Context) (*domain.Context, error) {
	if e.contexts == nil {
		return nil, nil
	}
	c, err := e.contexts.CurrentContext(ctx)
	if err != nil {
		return nil, application.WrapStorage("current context", err)
	}
	return c, nil
}

// FormatNodeWithHierarchy renders "Root → … → Parent → Node" by following the
// first parent (lowest edge sequence) upward. A root node renders as its name.
func (e *Engine) FormatNodeWithHierarchy(ctx context.Context, node domain.Node) (string, error) {
	nodes := map[string]domain.Node{node.ID: node}
	var edges []domain.Relationship

	err := e.withReadTx(ctx, "format hierarchy", func(tx ports.GraphTx) error {
		cur := node.ID
		for hops := 0; hops < MaxCycleSearchDepth; hops++ {
			parentEdges, err := tx.ParentEdges(ctx, cur)
			if err != nil {
				return err
			}
			edges = append(edges, parentEdges...)

			pid, ok := domain.FirstParent(cur, parentEdges)
			if !ok {
				return nil
			}
			if _, seen := nodes[pid]; seen {
				return nil
			}
			parent, err := tx.GetNode(ctx, pid)
			if err != nil {
				return err
			}
			if parent == nil {
				return nil
			}
			nodes[pid] = *parent
			cur = pid
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	return domain.FormatHierarchy(node.ID, nodes, edges), nil
}
