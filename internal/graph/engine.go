// Package graph implements the node DAG engine: lifecycle, relationships with
// cycle prevention, bounded tree traversal, hierarchy formatting and the
// navigation history. Every compound operation runs in one store transaction.
package graph

import (
	"context"
	"time"

	"go.uber.org/zap"

	"trailhead/internal/application"
	"trailhead/internal/domain"
	"trailhead/internal/ports"
)

// Engine implements ports.NodeGraph on top of a transactional GraphStore
type Engine struct {
	store    ports.GraphStore
	contexts ports.ContextProvider
	log      *zap.Logger
	now      func() time.Time
}

// Ensure Engine implements NodeGraph
var _ ports.NodeGraph = (*Engine)(nil)

// Option configures an Engine
type Option func(*Engine)

// WithLogger sets the engine logger
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// WithClock overrides the time source (tests)
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// New creates an engine. contexts may be nil when no Context collaborator exists.
func New(store ports.GraphStore, contexts ports.ContextProvider, opts ...Option) *Engine {
	e := &Engine{
		store:    store,
		contexts: contexts,
		log:      zap.NewNop(),
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// withTx runs fn inside a write transaction. Any error rolls the whole unit back.
func (e *Engine) withTx(ctx context.Context, op string, fn func(tx ports.GraphTx) error) error {
	tx, err := e.store.BeginTx(ctx)
	if err != nil {
		return application.WrapStorage(op, err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			e.log.Error("rollback failed", zap.String("op", op), zap.Error(rbErr))
		}
		return application.WrapStorage(op, err)
	}

	if err := tx.Commit(); err != nil {
		return application.WrapStorage(op+": commit", err)
	}
	return nil
}

// withReadTx runs fn inside a read-only transaction
func (e *Engine) withReadTx(ctx context.Context, op string, fn func(tx ports.GraphTx) error) error {
	tx, err := e.store.BeginReadTx(ctx)
	if err != nil {
		return application.WrapStorage(op, err)
	}
	defer tx.Rollback()

	return application.WrapStorage(op, fn(tx))
}

// requireNode loads a node or fails with NodeNotFoundError
func requireNode(ctx context.Context, tx ports.GraphTx, id string) (*domain.Node, error) {
	n, err := tx.GetNode(ctx, id)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, &application.NodeNotFoundError{ID: id}
	}
	return n, nil
}

// EnsureAnchors creates any missing category anchor node. Idempotent.
func (e *Engine) EnsureAnchors(ctx context.Context) error {
	return e.withTx(ctx, "ensure anchors", func(tx ports.GraphTx) error {
		now := e.now()
		for _, a := range domain.Anchors {
			existing, err := tx.GetNode(ctx, a.ID)
			if err != nil {
				return err
			}
			if existing != nil {
				continue
			}
			if err := tx.InsertNode(ctx, &domain.Node{
				ID:           a.ID,
				Name:         a.Name,
				Created:      now,
				LastAccessed: now,
			}); err != nil {
				return err
			}
			e.log.Info("anchor created", zap.String("nodeID", a.ID), zap.String("name", a.Name))
		}
		return nil
	})
}

// dedupe drops blank and repeated ids, keeping first-seen order
func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
