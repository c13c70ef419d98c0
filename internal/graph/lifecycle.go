package graph

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"trailhead/internal/application"
	"trailhead/internal/domain"
	"trailhead/internal/ports"
)

// CreateNode inserts a node with a fresh id and links it under every given
// parent. A new node has no children, so none of the edges can close a cycle.
func (e *Engine) CreateNode(ctx context.Context, name string, parentIDs []string, temp bool) (string, error) {
	if err := application.ValidateRequired("name", name); err != nil {
		return "", err
	}
	if err := application.ValidateIDs("parentIDs", parentIDs); err != nil {
		return "", err
	}
	parents := dedupe(parentIDs)

	now := e.now()
	node := &domain.Node{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(name),
		Created:      now,
		LastAccessed: now,
		Temp:         temp,
	}

	err := e.withTx(ctx, "create node", func(tx ports.GraphTx) error {
		for _, pid := range parents {
			if _, err := requireNode(ctx, tx, pid); err != nil {
				return err
			}
		}
		if err := tx.InsertNode(ctx, node); err != nil {
			return err
		}
		for _, pid := range parents {
			if err := tx.InsertEdge(ctx, pid, node.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	e.log.Info("node created",
		zap.String("nodeID", node.ID),
		zap.String("name", node.Name),
		zap.Int("parents", len(parents)),
		zap.Bool("temp", temp),
	)
	return node.ID, nil
}

// UpdateNode applies a partial update to an existing node
func (e *Engine) UpdateNode(ctx context.Context, id string, patch domain.NodePatch) error {
	if err := application.ValidateRequired("id", id); err != nil {
		return err
	}
	if patch.IsEmpty() {
		return &application.ValidationError{Field: "patch", Message: "no fields to update"}
	}
	if patch.Name != nil {
		if err := application.ValidateRequired("name", *patch.Name); err != nil {
			return err
		}
		trimmed := strings.TrimSpace(*patch.Name)
		patch.Name = &trimmed
	}

	err := e.withTx(ctx, "update node", func(tx ports.GraphTx) error {
		if _, err := requireNode(ctx, tx, id); err != nil {
			return err
		}
		return tx.UpdateNode(ctx, id, patch)
	})
	if err != nil {
		return err
	}

	e.log.Info("node updated", zap.String("nodeID", id))
	return nil
}

// DeleteNode removes a node and its incident edges. Without cascade a node
// with children is rejected. With cascade every node reachable below it is
// removed too, including descendants that have other parents.
// It returns the ids that were deleted.
func (e *Engine) DeleteNode(ctx context.Context, id string, cascade bool) ([]string, error) {
	if err := application.ValidateRequired("id", id); err != nil {
		return nil, err
	}

	var deleted []string
	err := e.withTx(ctx, "delete node", func(tx ports.GraphTx) error {
		if _, err := requireNode(ctx, tx, id); err != nil {
			return err
		}

		children, err := tx.ChildIDs(ctx, id)
		if err != nil {
			return err
		}
		if len(children) > 0 && !cascade {
			return &application.HasChildrenError{ID: id, ChildCount: len(children)}
		}

		visited := make(map[string]bool)
		return deleteSubtree(ctx, tx, id, visited, &deleted)
	})
	if err != nil {
		return nil, err
	}

	e.log.Info("node deleted",
		zap.String("nodeID", id),
		zap.Bool("cascade", cascade),
		zap.Int("removed", len(deleted)),
	)
	return deleted, nil
}

// deleteSubtree removes the children of id depth-first, then id itself
func deleteSubtree(ctx context.Context, tx ports.GraphTx, id string, visited map[string]bool, deleted *[]string) error {
	if visited[id] {
		return nil
	}
	visited[id] = true

	children, err := tx.ChildIDs(ctx, id)
	if err != nil {
		return err
	}
	for _, c := range children {
		if err := deleteSubtree(ctx, tx, c, visited, deleted); err != nil {
			return err
		}
	}

	if err := tx.DeleteNode(ctx, id); err != nil {
		return fmt.Errorf("delete %s: %w", id, err)
	}
	*deleted = append(*deleted, id)
	return nil
}

// GetNode returns the node with the given id
func (e *Engine) GetNode(ctx context.Context, id string) (*domain.Node, error) {
	if err := application.ValidateRequired("id", id); err != nil {
		return nil, err
	}

	var node *domain.Node
	err := e.withReadTx(ctx, "get node", func(tx ports.GraphTx) error {
		n, err := requireNode(ctx, tx, id)
		node = n
		return err
	})
	return node, err
}

// FindNodes returns nodes whose name contains query, case-insensitively
func (e *Engine) FindNodes(ctx context.Context, query string) ([]domain.Node, error) {
	var nodes []domain.Node
	err := e.withReadTx(ctx, "find nodes", func(tx ports.GraphTx) error {
		var err error
		if strings.TrimSpace(query) == "" {
			nodes, err = tx.ListNodes(ctx)
		} else {
			nodes, err = tx.FindNodesByName(ctx, strings.TrimSpace(query))
		}
		return err
	})
	return nodes, err
}

// ResolveNode looks a node up by exact id, then by unique case-insensitive name
func (e *Engine) ResolveNode(ctx context.Context, ref string) (*domain.Node, error) {
	ref = strings.TrimSpace(ref)
	if err := application.ValidateRequired("id", ref); err != nil {
		return nil, err
	}

	var node *domain.Node
	err := e.withReadTx(ctx, "resolve node", func(tx ports.GraphTx) error {
		n, err := tx.GetNode(ctx, ref)
		if err != nil {
			return err
		}
		if n != nil {
			node = n
			return nil
		}

		// Names are compared in Go so case folding covers non-ASCII names
		candidates, err := tx.ListNodes(ctx)
		if err != nil {
			return err
		}
		var matches []domain.Node
		for _, c := range candidates {
			if strings.EqualFold(c.Name, ref) {
				matches = append(matches, c)
			}
		}

		switch len(matches) {
		case 0:
			return &application.NodeNotFoundError{ID: ref}
		case 1:
			node = &matches[0]
			return nil
		default:
			return &application.ValidationError{
				Field:   "id",
				Message: fmt.Sprintf("%q matches %d nodes, use the node id", ref, len(matches)),
			}
		}
	})
	return node, err
}
