package commands

import (
	"context"

	"trailhead/internal/domain"
	"trailhead/internal/ports"
)

// resolveAll maps node references (id or unique name) to ids, keeping order
func resolveAll(ctx context.Context, graph ports.NodeGraph, refs []string) ([]string, error) {
	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		n, err := graph.ResolveNode(ctx, ref)
		if err != nil {
			return nil, err
		}
		ids = append(ids, n.ID)
	}
	return ids, nil
}

// describe renders a node with its breadcrumb, falling back to the bare name
func describe(ctx context.Context, graph ports.NodeGraph, n domain.Node) string {
	path, err := graph.FormatNodeWithHierarchy(ctx, n)
	if err != nil || path == "" {
		return n.Name
	}
	return path
}
