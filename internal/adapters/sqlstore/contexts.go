package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"trailhead/internal/application"
	"trailhead/internal/domain"
	"trailhead/internal/ports"
)

// metaCurrentContext is the meta key holding the selected context id
const metaCurrentContext = "current_context"

// ContextStore implements ports.ContextStore on the same database as the graph
type ContextStore struct {
	store *Store
}

// Ensure ContextStore implements the context ports
var (
	_ ports.ContextStore    = (*ContextStore)(nil)
	_ ports.ContextProvider = (*ContextStore)(nil)
)

// NewContextStore creates a context store sharing the graph store's pools
func NewContextStore(store *Store) *ContextStore {
	return &ContextStore{store: store}
}

func (c *ContextStore) rebind(q string) string {
	return c.store.dialect.Rebind(q)
}

// CreateContext adds a new, empty context
func (c *ContextStore) CreateContext(ctx context.Context, name string) (*domain.Context, error) {
	if err := application.ValidateRequired("name", name); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	name = strings.TrimSpace(name)
	if _, err := c.store.db.ExecContext(ctx, c.rebind(`
		INSERT INTO contexts (context_id, name) VALUES (?, ?)
	`), id, name); err != nil {
		return nil, application.WrapStorage("create context", err)
	}

	c.store.log.Info("context created", zap.String("contextID", id), zap.String("name", name))
	return domain.NewContext(id, name, nil), nil
}

// ListContexts returns every context with its members
func (c *ContextStore) ListContexts(ctx context.Context) ([]domain.Context, error) {
	rows, err := c.store.ro.QueryContext(ctx, `SELECT context_id, name FROM contexts ORDER BY name`)
	if err != nil {
		return nil, application.WrapStorage("list contexts", err)
	}

	var heads []domain.Context
	for rows.Next() {
		var h domain.Context
		if err := rows.Scan(&h.ID, &h.Name); err != nil {
			rows.Close()
			return nil, application.WrapStorage("list contexts", err)
		}
		heads = append(heads, h)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, application.WrapStorage("list contexts", err)
	}

	result := make([]domain.Context, 0, len(heads))
	for _, h := range heads {
		members, err := c.members(ctx, h.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, *domain.NewContext(h.ID, h.Name, members))
	}
	return result, nil
}

// GetContext looks a context up by id, then by name
func (c *ContextStore) GetContext(ctx context.Context, ref string) (*domain.Context, error) {
	var id, name string
	err := c.store.ro.QueryRowContext(ctx, c.rebind(`
		SELECT context_id, name FROM contexts WHERE context_id = ? OR name = ?
		ORDER BY CASE WHEN context_id = ? THEN 0 ELSE 1 END
		LIMIT 1
	`), ref, ref, ref).Scan(&id, &name)
	if err == sql.ErrNoRows {
		return nil, &application.ValidationError{Field: "contextID", Message: fmt.Sprintf("unknown context %q", ref)}
	}
	if err != nil {
		return nil, application.WrapStorage("get context", err)
	}

	members, err := c.members(ctx, id)
	if err != nil {
		return nil, err
	}
	return domain.NewContext(id, name, members), nil
}

func (c *ContextStore) members(ctx context.Context, contextID string) ([]string, error) {
	rows, err := c.store.ro.QueryContext(ctx, c.rebind(`
		SELECT node_id FROM context_nodes WHERE context_id = ? ORDER BY node_id
	`), contextID)
	if err != nil {
		return nil, application.WrapStorage("load context members", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, application.WrapStorage("load context members", err)
		}
		ids = append(ids, id)
	}
	return ids, application.WrapStorage("load context members", rows.Err())
}

// AddMember puts a node into a context. Adding an existing member is a no-op.
func (c *ContextStore) AddMember(ctx context.Context, contextID, nodeID string) error {
	var one int
	err := c.store.db.QueryRowContext(ctx, c.rebind(`SELECT 1 FROM nodes WHERE node_id = ?`), nodeID).Scan(&one)
	if err == sql.ErrNoRows {
		return &application.NodeNotFoundError{ID: nodeID}
	}
	if err != nil {
		return application.WrapStorage("add context member", err)
	}

	_, err = c.store.db.ExecContext(ctx, c.rebind(`
		INSERT INTO context_nodes (context_id, node_id) VALUES (?, ?)
		ON CONFLICT (context_id, node_id) DO NOTHING
	`), contextID, nodeID)
	return application.WrapStorage("add context member", err)
}

// RemoveMember takes a node out of a context
func (c *ContextStore) RemoveMember(ctx context.Context, contextID, nodeID string) error {
	_, err := c.store.db.ExecContext(ctx, c.rebind(`
		DELETE FROM context_nodes WHERE context_id = ? AND node_id = ?
	`), contextID, nodeID)
	return application.WrapStorage("remove context member", err)
}

// UseContext makes contextID the current context
func (c *ContextStore) UseContext(ctx context.Context, contextID string) error {
	return application.WrapStorage("use context", c.store.SetMeta(ctx, metaCurrentContext, contextID))
}

// ClearCurrent deselects the current context
func (c *ContextStore) ClearCurrent(ctx context.Context) error {
	return application.WrapStorage("clear context", c.store.DeleteMeta(ctx, metaCurrentContext))
}

// CurrentContext returns the selected context, nil when none is selected
// or the selected one was removed
func (c *ContextStore) CurrentContext(ctx context.Context) (*domain.Context, error) {
	id, err := c.store.GetMeta(ctx, metaCurrentContext)
	if err != nil {
		return nil, application.WrapStorage("current context", err)
	}
	if id == "" {
		return nil, nil
	}

	cur, err := c.GetContext(ctx, id)
	if err != nil {
		var unknown *application.ValidationError
		if errors.As(err, &unknown) {
			return nil, nil
		}
		return nil, err
	}
	return cur, nil
}
