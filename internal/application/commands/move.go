package commands

import (
	"context"
	"fmt"
	"strings"

	"trailhead/internal/application"
	"trailhead/internal/ports"
)

// RelationshipResult contains the result of an edge change
type RelationshipResult struct {
	ParentIDs []string
	ChildID   string
	Message   string
}

// LinkCommand adds a parent -> child edge
type LinkCommand struct {
	graph     ports.NodeGraph
	ParentRef string
	ChildRef  string
}

// NewLinkCommand creates a new LinkCommand
func NewLinkCommand(graph ports.NodeGraph, parentRef, childRef string) *LinkCommand {
	return &LinkCommand{graph: graph, ParentRef: parentRef, ChildRef: childRef}
}

// Validate checks if the link operation is valid
func (c *LinkCommand) Validate() error {
	if err := application.ValidateRequired("parentID", c.ParentRef); err != nil {
		return err
	}
	return application.ValidateRequired("childID", c.ChildRef)
}

// Execute runs the link command
func (c *LinkCommand) Execute(ctx context.Context) (*RelationshipResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	ids, err := resolveAll(ctx, c.graph, []string{c.ParentRef, c.ChildRef})
	if err != nil {
		return nil, err
	}

	if err := c.graph.AddNodeRelationship(ctx, ids[0], ids[1]); err != nil {
		return nil, err
	}

	return &RelationshipResult{
		ParentIDs: ids[:1],
		ChildID:   ids[1],
		Message:   fmt.Sprintf("Linked %s under %s", c.ChildRef, c.ParentRef),
	}, nil
}

// UnlinkCommand removes a parent -> child edge
type UnlinkCommand struct {
	graph     ports.NodeGraph
	ParentRef string
	ChildRef  string
}

// NewUnlinkCommand creates a new UnlinkCommand
func NewUnlinkCommand(graph ports.NodeGraph, parentRef, childRef string) *UnlinkCommand {
	return &UnlinkCommand{graph: graph, ParentRef: parentRef, ChildRef: childRef}
}

// Validate checks if the unlink operation is valid
func (c *UnlinkCommand) Validate() error {
	if err := application.ValidateRequired("parentID", c.ParentRef); err != nil {
		return err
	}
	return application.ValidateRequired("childID", c.ChildRef)
}

// Execute runs the unlink command
func (c *UnlinkCommand) Execute(ctx context.Context) (*RelationshipResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	ids, err := resolveAll(ctx, c.graph, []string{c.ParentRef, c.ChildRef})
	if err != nil {
		return nil, err
	}

	if err := c.graph.RemoveNodeRelationship(ctx, ids[0], ids[1]); err != nil {
		return nil, err
	}

	return &RelationshipResult{
		ParentIDs: ids[:1],
		ChildID:   ids[1],
		Message:   fmt.Sprintf("Unlinked %s from %s", c.ChildRef, c.ParentRef),
	}, nil
}

// MoveCommand replaces the whole parent set of a node
type MoveCommand struct {
	graph      ports.NodeGraph
	ChildRef   string
	ParentRefs []string // empty makes the node a root
}

// NewMoveCommand creates a new MoveCommand
func NewMoveCommand(graph ports.NodeGraph, childRef string, parentRefs []string) *MoveCommand {
	return &MoveCommand{graph: graph, ChildRef: childRef, ParentRefs: parentRefs}
}

// Validate checks if the move operation is valid
func (c *MoveCommand) Validate() error {
	if err := application.ValidateRequired("childID", c.ChildRef); err != nil {
		return err
	}
	return application.ValidateIDs("parentIDs", c.ParentRefs)
}

// Execute runs the move command
func (c *MoveCommand) Execute(ctx context.Context) (*RelationshipResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	child, err := c.graph.ResolveNode(ctx, c.ChildRef)
	if err != nil {
		return nil, err
	}
	parentIDs, err := resolveAll(ctx, c.graph, c.ParentRefs)
	if err != nil {
		return nil, err
	}

	if err := c.graph.SetNodeParents(ctx, child.ID, parentIDs); err != nil {
		return nil, err
	}

	msg := fmt.Sprintf("Moved %s to the top level", child.Name)
	if len(c.ParentRefs) > 0 {
		msg = fmt.Sprintf("Moved %s under %s", child.Name, strings.Join(c.ParentRefs, ", "))
	}
	return &RelationshipResult{ParentIDs: parentIDs, ChildID: child.ID, Message: msg}, nil
}
