package graph

import (
	"context"

	"go.uber.org/zap"

	"trailhead/internal/application"
	"trailhead/internal/domain"
	"trailhead/internal/ports"
)

// AddNodeRelationship inserts the edge parentID -> childID. Duplicates and
// edges that would close a cycle are rejected with a RelationshipError.
func (e *Engine) AddNodeRelationship(ctx context.Context, parentID, childID string) error {
	if err := validatePair(parentID, childID); err != nil {
		return err
	}

	err := e.withTx(ctx, "add relationship", func(tx ports.GraphTx) error {
		if _, err := requireNode(ctx, tx, parentID); err != nil {
			return err
		}
		if _, err := requireNode(ctx, tx, childID); err != nil {
			return err
		}

		exists, err := tx.EdgeExists(ctx, parentID, childID)
		if err != nil {
			return err
		}
		if exists {
			return &application.RelationshipError{ParentID: parentID, ChildID: childID, Err: application.ErrAlreadyExists}
		}

		cyclic, err := wouldCreateCycle(ctx, tx, parentID, childID)
		if err != nil {
			return err
		}
		if cyclic {
			return &application.RelationshipError{ParentID: parentID, ChildID: childID, Err: application.ErrCycleDetected}
		}

		return tx.InsertEdge(ctx, parentID, childID)
	})
	if err != nil {
		return err
	}

	e.log.Info("relationship added", zap.String("parentID", parentID), zap.String("childID", childID))
	return nil
}

// RemoveNodeRelationship deletes the edge parentID -> childID.
// Removing an edge that does not exist is a no-op.
func (e *Engine) RemoveNodeRelationship(ctx context.Context, parentID, childID string) error {
	if err := validatePair(parentID, childID); err != nil {
		return err
	}

	err := e.withTx(ctx, "remove relationship", func(tx ports.GraphTx) error {
		if _, err := requireNode(ctx, tx, parentID); err != nil {
			return err
		}
		if _, err := requireNode(ctx, tx, childID); err != nil {
			return err
		}
		return tx.DeleteEdge(ctx, parentID, childID)
	})
	if err != nil {
		return err
	}

	e.log.Info("relationship removed", zap.String("parentID", parentID), zap.String("childID", childID))
	return nil
}

// SetNodeParents replaces the whole parent set of childID. Every new edge is
// cycle-checked first; on any failure the old parent set is left intact.
func (e *Engine) SetNodeParents(ctx context.Context, childID string, parentIDs []string) error {
	if err := application.ValidateRequired("childID", childID); err != nil {
		return err
	}
	if err := application.ValidateIDs("parentIDs", parentIDs); err != nil {
		return err
	}
	parents := dedupe(parentIDs)

	err := e.withTx(ctx, "set parents", func(tx ports.GraphTx) error {
		if _, err := requireNode(ctx, tx, childID); err != nil {
			return err
		}

		// The child's incoming edges never lie on a path out of the child,
		// so checking before they are dropped gives the same answer.
		for _, pid := range parents {
			if _, err := requireNode(ctx, tx, pid); err != nil {
				return err
			}
			cyclic, err := wouldCreateCycle(ctx, tx, pid, childID)
			if err != nil {
				return err
			}
			if cyclic {
				return &application.RelationshipError{ParentID: pid, ChildID: childID, Err: application.ErrCycleDetected}
			}
		}

		if err := tx.DeleteParentEdges(ctx, childID); err != nil {
			return err
		}
		for _, pid := range parents {
			if err := tx.InsertEdge(ctx, pid, childID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	e.log.Info("parents replaced", zap.String("childID", childID), zap.Strings("parentIDs", parents))
	return nil
}

// GetParentNodes returns the direct parents of id
func (e *Engine) GetParentNodes(ctx context.Context, id string) ([]domain.Node, error) {
	return e.neighbours(ctx, "get parents", id, func(tx ports.GraphTx) ([]domain.Node, error) {
		return tx.ParentNodes(ctx, id)
	})
}

// GetChildNodes returns the direct children of id
func (e *Engine) GetChildNodes(ctx context.Context, id string) ([]domain.Node, error) {
	return e.neighbours(ctx, "get children", id, func(tx ports.GraphTx) ([]domain.Node, error) {
		return tx.ChildNodes(ctx, id)
	})
}

// GetParentNodeIDs returns the parent ids of id in edge insertion order
func (e *Engine) GetParentNodeIDs(ctx context.Context, id string) ([]string, error) {
	if err := application.ValidateRequired("id", id); err != nil {
		return nil, err
	}

	var ids []string
	err := e.withReadTx(ctx, "get parent ids", func(tx ports.GraphTx) error {
		if _, err := requireNode(ctx, tx, id); err != nil {
			return err
		}
		edges, err := tx.ParentEdges(ctx, id)
		if err != nil {
			return err
		}
		ids = make([]string, 0, len(edges))
		for _, edge := range edges {
			ids = append(ids, edge.ParentID)
		}
		return nil
	})
	return ids, err
}

func (e *Engine) neighbours(ctx context.Context, op, id string, load func(ports.GraphTx) ([]domain.Node, error)) ([]domain.Node, error) {
	if err := application.ValidateRequired("id", id); err != nil {
		return nil, err
	}

	var nodes []domain.Node
	err := e.withReadTx(ctx, op, func(tx ports.GraphTx) error {
		if _, err := requireNode(ctx, tx, id); err != nil {
			return err
		}
		var err error
		nodes, err = load(tx)
		return err
	})
	return nodes, err
}

func validatePair(parentID, childID string) error {
	if err := application.ValidateRequired("parentID", parentID); err != nil {
		return err
	}
	return application.ValidateRequired("childID", childID)
}
