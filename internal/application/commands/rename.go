package commands

import (
	"context"
	"fmt"

	"trailhead/internal/application"
	"trailhead/internal/domain"
	"trailhead/internal/ports"
)

// UpdateResult contains the result of an update operation
type UpdateResult struct {
	Node    *domain.Node
	Message string
}

// UpdateCommand applies a partial update to a node
type UpdateCommand struct {
	graph ports.NodeGraph
	Ref   string
	Patch domain.NodePatch
}

// NewUpdateCommand creates a new UpdateCommand
func NewUpdateCommand(graph ports.NodeGraph, ref string, patch domain.NodePatch) *UpdateCommand {
	return &UpdateCommand{graph: graph, Ref: ref, Patch: patch}
}

// NewRenameCommand creates an UpdateCommand that only changes the name
func NewRenameCommand(graph ports.NodeGraph, ref, newName string) *UpdateCommand {
	return NewUpdateCommand(graph, ref, domain.NodePatch{Name: &newName})
}

// Validate checks if the update operation is valid
func (c *UpdateCommand) Validate() error {
	if err := application.ValidateRequired("id", c.Ref); err != nil {
		return err
	}
	if c.Patch.IsEmpty() {
		return &application.ValidationError{Field: "patch", Message: "nothing to update"}
	}
	if c.Patch.Name != nil {
		return application.ValidateRequired("name", *c.Patch.Name)
	}
	return nil
}

// Execute runs the update command
func (c *UpdateCommand) Execute(ctx context.Context) (*UpdateResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	node, err := c.graph.ResolveNode(ctx, c.Ref)
	if err != nil {
		return nil, err
	}

	if err := c.graph.UpdateNode(ctx, node.ID, c.Patch); err != nil {
		return nil, fmt.Errorf("failed to update %s: %w", node.Name, err)
	}

	updated, err := c.graph.GetNode(ctx, node.ID)
	if err != nil {
		return nil, err
	}

	msg := fmt.Sprintf("Updated %s", updated.Name)
	if c.Patch.Name != nil && node.Name != updated.Name {
		msg = fmt.Sprintf("Renamed %s to %s", node.Name, updated.Name)
	}
	return &UpdateResult{Node: updated, Message: msg}, nil
}
