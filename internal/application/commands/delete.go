package commands

import (
	"context"
	"fmt"

	"trailhead/internal/application"
	"trailhead/internal/ports"
)

// DeleteResult contains the result of a delete operation
type DeleteResult struct {
	DeletedIDs []string
	Message    string
}

// DeleteCommand deletes a node, optionally with its whole subtree
type DeleteCommand struct {
	graph   ports.NodeGraph
	Ref     string
	Cascade bool
}

// NewDeleteCommand creates a new DeleteCommand
func NewDeleteCommand(graph ports.NodeGraph, ref string, cascade bool) *DeleteCommand {
	return &DeleteCommand{
		graph:   graph,
		Ref:     ref,
		Cascade: cascade,
	}
}

// Validate checks if the delete operation is valid
func (c *DeleteCommand) Validate() error {
	return application.ValidateRequired("id", c.Ref)
}

// Execute runs the delete command
func (c *DeleteCommand) Execute(ctx context.Context) (*DeleteResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	node, err := c.graph.ResolveNode(ctx, c.Ref)
	if err != nil {
		return nil, err
	}

	deleted, err := c.graph.DeleteNode(ctx, node.ID, c.Cascade)
	if err != nil {
		return nil, fmt.Errorf("failed to delete %s: %w", node.Name, err)
	}

	msg := fmt.Sprintf("Deleted %s", node.Name)
	if len(deleted) > 1 {
		msg = fmt.Sprintf("Deleted %s and %d descendant(s)", node.Name, len(deleted)-1)
	}
	return &DeleteResult{DeletedIDs: deleted, Message: msg}, nil
}
