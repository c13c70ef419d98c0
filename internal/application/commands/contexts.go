package commands

import (
	"context"
	"fmt"

	"trailhead/internal/application"
	"trailhead/internal/domain"
	"trailhead/internal/ports"
)

// ContextMembershipCommand adds or removes a node from a context.
// An empty ContextRef targets the current context.
type ContextMembershipCommand struct {
	graph      ports.NodeGraph
	contexts   ports.ContextStore
	ContextRef string
	NodeRef    string
	Remove     bool
}

// NewContextMembershipCommand creates a new ContextMembershipCommand
func NewContextMembershipCommand(graph ports.NodeGraph, contexts ports.ContextStore, contextRef, nodeRef string, remove bool) *ContextMembershipCommand {
	return &ContextMembershipCommand{
		graph:      graph,
		contexts:   contexts,
		ContextRef: contextRef,
		NodeRef:    nodeRef,
		Remove:     remove,
	}
}

// Validate checks if the membership change is valid
func (c *ContextMembershipCommand) Validate() error {
	return application.ValidateRequired("nodeID", c.NodeRef)
}

// Execute runs the membership command
func (c *ContextMembershipCommand) Execute(ctx context.Context) (string, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}

	target, err := c.target(ctx)
	if err != nil {
		return "", err
	}
	node, err := c.graph.ResolveNode(ctx, c.NodeRef)
	if err != nil {
		return "", err
	}

	if c.Remove {
		if err := c.contexts.RemoveMember(ctx, target.ID, node.ID); err != nil {
			return "", err
		}
		return fmt.Sprintf("Removed %s from %s", node.Name, target.Name), nil
	}
	if err := c.contexts.AddMember(ctx, target.ID, node.ID); err != nil {
		return "", err
	}
	return fmt.Sprintf("Added %s to %s", node.Name, target.Name), nil
}

func (c *ContextMembershipCommand) target(ctx context.Context) (*domain.Context, error) {
	if c.ContextRef != "" {
		return c.contexts.GetContext(ctx, c.ContextRef)
	}
	cur, err := c.contexts.CurrentContext(ctx)
	if err != nil {
		return nil, err
	}
	if cur == nil {
		return nil, &application.ValidationError{Field: "contextID", Message: "no current context, pass one explicitly"}
	}
	return cur, nil
}

// ToggleMembership flips the membership of nodeID in the current context.
// It reports whether the node is a member afterwards.
func ToggleMembership(ctx context.Context, contexts ports.ContextStore, nodeID string) (bool, error) {
	cur, err := contexts.CurrentContext(ctx)
	if err != nil {
		return false, err
	}
	if cur == nil {
		return false, &application.ValidationError{Field: "contextID", Message: "no current context"}
	}

	if cur.Has(nodeID) {
		return false, contexts.RemoveMember(ctx, cur.ID, nodeID)
	}
	return true, contexts.AddMember(ctx, cur.ID, nodeID)
}
