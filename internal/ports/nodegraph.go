package ports

import (
	"context"

	"trailhead/internal/domain"
)

// NodeGraph is the operation surface of the graph engine as seen by the
// command layer and the front ends.
type NodeGraph interface {
	// Node lifecycle
	CreateNode(ctx context.Context, name string, parentIDs []string, temp bool) (string, error)
	UpdateNode(ctx context.Context, id string, patch domain.NodePatch) error
	DeleteNode(ctx context.Context, id string, cascade bool) ([]string, error)
	GetNode(ctx context.Context, id string) (*domain.Node, error)
	ResolveNode(ctx context.Context, ref string) (*domain.Node, error)
	FindNodes(ctx context.Context, query string) ([]domain.Node, error)

	// Relationships
	AddNodeRelationship(ctx context.Context, parentID, childID string) error
	RemoveNodeRelationship(ctx context.Context, parentID, childID string) error
	SetNodeParents(ctx context.Context, childID string, parentIDs []string) error
	GetParentNodes(ctx context.Context, id string) ([]domain.Node, error)
	GetChildNodes(ctx context.Context, id string) ([]domain.Node, error)
	GetParentNodeIDs(ctx context.Context, id string) ([]string, error)

	// Traversal
	NodeTree(ctx context.Context, filter domain.Filter) ([]domain.TreeEntry, error)
	FilteredNodeTree(ctx context.Context, filter domain.Filter) ([]domain.FilteredEntry, error)
	FormatNodeWithHierarchy(ctx context.Context, node domain.Node) (string, error)

	// History
	UpdateNodeHistory(ctx context.Context, currentID, previousID string) error
	Visit(ctx context.Context, id string) error
	GetCurrentNode(ctx context.Context) (*domain.Node, error)
	GetPreviousNode(ctx context.Context) (*domain.Node, error)
	RecentHistory(ctx context.Context, limit int) ([]domain.HistoryRecord, error)
}
