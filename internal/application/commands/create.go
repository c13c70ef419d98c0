package commands

import (
	"context"
	"fmt"
	"strings"

	"trailhead/internal/application"
	"trailhead/internal/domain"
	"trailhead/internal/ports"
)

// CreateNodeResult contains the result of creating a node
type CreateNodeResult struct {
	Node    *domain.Node
	Path    string
	Message string
}

// CreateNodeCommand creates a node under zero or more parents
type CreateNodeCommand struct {
	graph      ports.NodeGraph
	Name       string
	ParentRefs []string // ids or unique names
	Temp       bool
}

// NewCreateNodeCommand creates a new CreateNodeCommand
func NewCreateNodeCommand(graph ports.NodeGraph, name string, parentRefs []string, temp bool) *CreateNodeCommand {
	return &CreateNodeCommand{
		graph:      graph,
		Name:       name,
		ParentRefs: parentRefs,
		Temp:       temp,
	}
}

// Validate checks if the create operation is valid
func (c *CreateNodeCommand) Validate() error {
	if err := application.ValidateRequired("name", c.Name); err != nil {
		return err
	}
	if strings.Contains(c.Name, strings.TrimSpace(domain.HierarchySeparator)) {
		return &application.ValidationError{
			Field:   "name",
			Message: fmt.Sprintf("name cannot contain %q", strings.TrimSpace(domain.HierarchySeparator)),
		}
	}
	return application.ValidateIDs("parentIDs", c.ParentRefs)
}

// Execute runs the create command
func (c *CreateNodeCommand) Execute(ctx context.Context) (*CreateNodeResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	parentIDs, err := resolveAll(ctx, c.graph, c.ParentRefs)
	if err != nil {
		return nil, err
	}

	id, err := c.graph.CreateNode(ctx, c.Name, parentIDs, c.Temp)
	if err != nil {
		return nil, fmt.Errorf("failed to create node: %w", err)
	}

	node, err := c.graph.GetNode(ctx, id)
	if err != nil {
		return nil, err
	}

	path := describe(ctx, c.graph, *node)
	return &CreateNodeResult{
		Node:    node,
		Path:    path,
		Message: fmt.Sprintf("Created %s", path),
	}, nil
}
