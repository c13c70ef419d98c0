package commands

import (
	"context"
	"fmt"
	"strings"

	"trailhead/internal/application"
	"trailhead/internal/domain"
	"trailhead/internal/ports"
)

// TreeCommand materializes the filtered tree for one filter
type TreeCommand struct {
	graph  ports.NodeGraph
	Filter string
}

// NewTreeCommand creates a new TreeCommand
func NewTreeCommand(graph ports.NodeGraph, filter string) *TreeCommand {
	return &TreeCommand{graph: graph, Filter: filter}
}

// Validate checks the filter name
func (c *TreeCommand) Validate() error {
	if _, err := domain.ParseFilter(c.Filter); err != nil {
		return &application.ValidationError{Field: "filter", Message: err.Error()}
	}
	return nil
}

// Execute runs the tree command
func (c *TreeCommand) Execute(ctx context.Context) ([]domain.FilteredEntry, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	f, _ := domain.ParseFilter(c.Filter)
	return c.graph.FilteredNodeTree(ctx, f)
}

// RenderTree formats entries one per line, indented by depth. Selected
// entries carry a leading marker.
func RenderTree(entries []domain.FilteredEntry) string {
	var b strings.Builder
	for _, e := range entries {
		marker := "  "
		if e.Selected {
			marker = "* "
		}
		fmt.Fprintf(&b, "%s%s%s\n", marker, strings.Repeat("  ", e.Depth), e.Node.Name)
	}
	return b.String()
}

// NeighboursCommand lists the parents and children of a node
type NeighboursCommand struct {
	graph ports.NodeGraph
	Ref   string
}

// NeighboursResult contains a node and its direct relatives
type NeighboursResult struct {
	Node     *domain.Node
	Path     string
	Parents  []domain.Node
	Children []domain.Node
}

// NewNeighboursCommand creates a new NeighboursCommand
func NewNeighboursCommand(graph ports.NodeGraph, ref string) *NeighboursCommand {
	return &NeighboursCommand{graph: graph, Ref: ref}
}

// Execute runs the neighbours command
func (c *NeighboursCommand) Execute(ctx context.Context) (*NeighboursResult, error) {
	if err := application.ValidateRequired("id", c.Ref); err != nil {
		return nil, err
	}

	node, err := c.graph.ResolveNode(ctx, c.Ref)
	if err != nil {
		return nil, err
	}
	parents, err := c.graph.GetParentNodes(ctx, node.ID)
	if err != nil {
		return nil, err
	}
	children, err := c.graph.GetChildNodes(ctx, node.ID)
	if err != nil {
		return nil, err
	}

	return &NeighboursResult{
		Node:     node,
		Path:     describe(ctx, c.graph, *node),
		Parents:  parents,
		Children: children,
	}, nil
}
