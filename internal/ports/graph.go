package ports

import (
	"context"
	"time"

	"trailhead/internal/domain"
)

// GraphStore provides transactional access to the node graph.
// Write transactions are serialized by the store so that a cycle check and
// the edge insert that follows it cannot race another writer.
type GraphStore interface {
	// BeginTx starts a read-write transaction
	BeginTx(ctx context.Context) (GraphTx, error)

	// BeginReadTx starts a read-only transaction that does not block writers
	BeginReadTx(ctx context.Context) (GraphTx, error)

	Close() error
}

// GraphTx is one unit of work against the graph tables.
// Lookups of missing rows return (nil, nil), not an error.
type GraphTx interface {
	// Node queries
	GetNode(ctx context.Context, id string) (*domain.Node, error)
	ListNodes(ctx context.Context) ([]domain.Node, error)
	RootNodes(ctx context.Context) ([]domain.Node, error)
	FindNodesByName(ctx context.Context, query string) ([]domain.Node, error)

	// Node mutations
	InsertNode(ctx context.Context, node *domain.Node) error
	UpdateNode(ctx context.Context, id string, patch domain.NodePatch) error
	TouchNode(ctx context.Context, id string, at time.Time) error
	// DeleteNode removes the node row and every edge incident to it
	DeleteNode(ctx context.Context, id string) error

	// Edge queries, ordered by insertion sequence
	EdgeExists(ctx context.Context, parentID, childID string) (bool, error)
	ParentEdges(ctx context.Context, childID string) ([]domain.Relationship, error)
	ChildIDs(ctx context.Context, parentID string) ([]string, error)
	ParentNodes(ctx context.Context, childID string) ([]domain.Node, error)
	ChildNodes(ctx context.Context, parentID string) ([]domain.Node, error)

	// Edge mutations
	InsertEdge(ctx context.Context, parentID, childID string) error
	DeleteEdge(ctx context.Context, parentID, childID string) error
	DeleteParentEdges(ctx context.Context, childID string) error

	// History log (append-only)
	AppendHistory(ctx context.Context, rec *domain.HistoryRecord) error
	LatestHistory(ctx context.Context) (*domain.HistoryRecord, error)
	RecentHistory(ctx context.Context, limit int) ([]domain.HistoryRecord, error)

	// Transaction control
	Commit() error
	Rollback() error
}
