package commands

import (
	"context"
	"fmt"

	"trailhead/internal/application"
	"trailhead/internal/domain"
	"trailhead/internal/ports"
)

// VisitResult contains the node that became current
type VisitResult struct {
	Node    *domain.Node
	Path    string
	Message string
}

// VisitCommand makes a node the current one in the navigation history
type VisitCommand struct {
	graph ports.NodeGraph
	Ref   string
}

// NewVisitCommand creates a new VisitCommand
func NewVisitCommand(graph ports.NodeGraph, ref string) *VisitCommand {
	return &VisitCommand{graph: graph, Ref: ref}
}

// Validate checks if the visit operation is valid
func (c *VisitCommand) Validate() error {
	return application.ValidateRequired("id", c.Ref)
}

// Execute runs the visit command
func (c *VisitCommand) Execute(ctx context.Context) (*VisitResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	node, err := c.graph.ResolveNode(ctx, c.Ref)
	if err != nil {
		return nil, err
	}
	if err := c.graph.Visit(ctx, node.ID); err != nil {
		return nil, err
	}

	path := describe(ctx, c.graph, *node)
	return &VisitResult{Node: node, Path: path, Message: fmt.Sprintf("Now on %s", path)}, nil
}

// BackCommand returns to the previous node
type BackCommand struct {
	graph ports.NodeGraph
}

// NewBackCommand creates a new BackCommand
func NewBackCommand(graph ports.NodeGraph) *BackCommand {
	return &BackCommand{graph: graph}
}

// Execute runs the back command
func (c *BackCommand) Execute(ctx context.Context) (*VisitResult, error) {
	prev, err := c.graph.GetPreviousNode(ctx)
	if err != nil {
		return nil, err
	}
	if prev == nil {
		return nil, &application.ValidationError{Field: "history", Message: "no previous node"}
	}
	return NewVisitCommand(c.graph, prev.ID).Execute(ctx)
}

// WhereResult describes the current and previous nodes
type WhereResult struct {
	Current      *domain.Node
	CurrentPath  string
	Previous     *domain.Node
	PreviousPath string
}

// WhereCommand reports the current position in the history
type WhereCommand struct {
	graph ports.NodeGraph
}

// NewWhereCommand creates a new WhereCommand
func NewWhereCommand(graph ports.NodeGraph) *WhereCommand {
	return &WhereCommand{graph: graph}
}

// Execute runs the where command
func (c *WhereCommand) Execute(ctx context.Context) (*WhereResult, error) {
	cur, err := c.graph.GetCurrentNode(ctx)
	if err != nil {
		return nil, err
	}
	prev, err := c.graph.GetPreviousNode(ctx)
	if err != nil {
		return nil, err
	}

	res := &WhereResult{Current: cur, Previous: prev}
	if cur != nil {
		res.CurrentPath = describe(ctx, c.graph, *cur)
	}
	if prev != nil {
		res.PreviousPath = describe(ctx, c.graph, *prev)
	}
	return res, nil
}
