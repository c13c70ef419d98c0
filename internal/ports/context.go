package ports

import (
	"context"

	"trailhead/internal/domain"
)

// ContextProvider exposes the current Context to the graph engine
type ContextProvider interface {
	// CurrentContext returns nil when no context is selected
	CurrentContext(ctx context.Context) (*domain.Context, error)
}

// ContextStore manages contexts and their membership.
// It owns the contexts tables; the graph engine only reads through ContextProvider.
type ContextStore interface {
	ContextProvider

	CreateContext(ctx context.Context, name string) (*domain.Context, error)
	ListContexts(ctx context.Context) ([]domain.Context, error)
	GetContext(ctx context.Context, ref string) (*domain.Context, error)
	AddMember(ctx context.Context, contextID, nodeID string) error
	RemoveMember(ctx context.Context, contextID, nodeID string) error
	UseContext(ctx context.Context, contextID string) error
	ClearCurrent(ctx context.Context) error
}
