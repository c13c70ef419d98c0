package sqlstore

import (
	"context"
	"database/sql"
	"strings"
	"time"
	"unicode/utf8"

	"trailhead/internal/domain"
	"trailhead/internal/ports"
)

const nodeColumns = `node_id, name, created, last_accessed, temp, workspace_ref`

// graphTx implements ports.GraphTx
type graphTx struct {
	tx *sql.Tx
	d  Dialect
}

// Ensure graphTx implements GraphTx
var _ ports.GraphTx = (*graphTx)(nil)

func (t *graphTx) exec(ctx context.Context, query string, args ...any) error {
	_, err := t.tx.ExecContext(ctx, t.d.Rebind(query), args...)
	return err
}

func (t *graphTx) queryNodes(ctx context.Context, query string, args ...any) ([]domain.Node, error) {
	rows, err := t.tx.QueryContext(ctx, t.d.Rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var nodes []domain.Node
	for rows.Next() {
		n, err := scanNode(rows)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, *n)
	}
	return nodes, rows.Err()
}

func (t *graphTx) queryIDs(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := t.tx.QueryContext(ctx, t.d.Rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// GetNode retrieves a node by id
func (t *graphTx) GetNode(ctx context.Context, id string) (*domain.Node, error) {
	row := t.tx.QueryRowContext(ctx, t.d.Rebind(`SELECT `+nodeColumns+` FROM nodes WHERE node_id = ?`), id)
	n, err := scanNode(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return n, err
}

// ListNodes returns every node, most recently accessed first
func (t *graphTx) ListNodes(ctx context.Context) ([]domain.Node, error) {
	return t.queryNodes(ctx, `SELECT `+nodeColumns+` FROM nodes ORDER BY last_accessed DESC, name`)
}

// RootNodes returns nodes without any incoming edge
func (t *graphTx) RootNodes(ctx context.Context) ([]domain.Node, error) {
	return t.queryNodes(ctx, `
		SELECT `+nodeColumns+` FROM nodes n
		WHERE NOT EXISTS (
			SELECT 1 FROM node_relationships r WHERE r.child_node_id = n.node_id
		)
		ORDER BY n.last_accessed DESC, n.name
	`)
}

// FindNodesByName matches a case-insensitive name substring. '%' and '_' in
// the query match literally.
func (t *graphTx) FindNodesByName(ctx context.Context, query string) ([]domain.Node, error) {
	if !isASCII(query) {
		// SQLite LOWER only folds ASCII, so fold non-ASCII queries here
		all, err := t.ListNodes(ctx)
		if err != nil {
			return nil, err
		}
		return filterByName(all, query), nil
	}

	pattern := "%" + likeEscaper.Replace(strings.ToLower(query)) + "%"
	return t.queryNodes(ctx, `
		SELECT `+nodeColumns+` FROM nodes
		WHERE LOWER(name) LIKE ? ESCAPE '\'
		ORDER BY last_accessed DESC, name
	`, pattern)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

func filterByName(nodes []domain.Node, query string) []domain.Node {
	q := strings.ToLower(query)
	var out []domain.Node
	for _, n := range nodes {
		if strings.Contains(strings.ToLower(n.Name), q) {
			out = append(out, n)
		}
	}
	return out
}

// InsertNode inserts a new node row
func (t *graphTx) InsertNode(ctx context.Context, n *domain.Node) error {
	return t.exec(ctx, `
		INSERT INTO nodes (`+nodeColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)
	`, n.ID, n.Name, toUnix(n.Created), toUnix(n.LastAccessed), n.Temp, nullString(n.WorkspaceRef))
}

// UpdateNode applies the non-nil fields of the patch
func (t *graphTx) UpdateNode(ctx context.Context, id string, p domain.NodePatch) error {
	var (
		sets []string
		args []any
	)
	if p.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *p.Name)
	}
	if p.Temp != nil {
		sets = append(sets, "temp = ?")
		args = append(args, *p.Temp)
	}
	if p.WorkspaceRef != nil {
		sets = append(sets, "workspace_ref = ?")
		args = append(args, nullString(*p.WorkspaceRef))
	}
	if p.LastAccessed != nil {
		sets = append(sets, "last_accessed = ?")
		args = append(args, toUnix(*p.LastAccessed))
	}
	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	return t.exec(ctx, `UPDATE nodes SET `+strings.Join(sets, ", ")+` WHERE node_id = ?`, args...)
}

// TouchNode sets last_accessed
func (t *graphTx) TouchNode(ctx context.Context, id string, at time.Time) error {
	return t.exec(ctx, `UPDATE nodes SET last_accessed = ? WHERE node_id = ?`, toUnix(at), id)
}

// DeleteNode removes the node and all its incident edges
func (t *graphTx) DeleteNode(ctx context.Context, id string) error {
	if err := t.exec(ctx, `DELETE FROM node_relationships WHERE parent_node_id = ? OR child_node_id = ?`, id, id); err != nil {
		return err
	}
	return t.exec(ctx, `DELETE FROM nodes WHERE node_id = ?`, id)
}

// EdgeExists reports whether parent -> child is present
func (t *graphTx) EdgeExists(ctx context.Context, parentID, childID string) (bool, error) {
	var one int
	err := t.tx.QueryRowContext(ctx, t.d.Rebind(`
		SELECT 1 FROM node_relationships WHERE parent_node_id = ? AND child_node_id = ?
	`), parentID, childID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}

// ParentEdges returns the incoming edges of a node, oldest first
func (t *graphTx) ParentEdges(ctx context.Context, childID string) ([]domain.Relationship, error) {
	rows, err := t.tx.QueryContext(ctx, t.d.Rebind(`
		SELECT parent_node_id, child_node_id, seq
		FROM node_relationships WHERE child_node_id = ?
		ORDER BY seq
	`), childID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var edges []domain.Relationship
	for rows.Next() {
		var e domain.Relationship
		if err := rows.Scan(&e.ParentID, &e.ChildID, &e.Seq); err != nil {
			return nil, err
		}
		edges = append(edges, e)
	}
	return edges, rows.Err()
}

// ChildIDs returns direct child ids, oldest edge first
func (t *graphTx) ChildIDs(ctx context.Context, parentID string) ([]string, error) {
	return t.queryIDs(ctx, `
		SELECT child_node_id FROM node_relationships
		WHERE parent_node_id = ? ORDER BY seq
	`, parentID)
}

// ParentNodes returns direct parents, oldest edge first
func (t *graphTx) ParentNodes(ctx context.Context, childID string) ([]domain.Node, error) {
	return t.queryNodes(ctx, `
		SELECT n.node_id, n.name, n.created, n.last_accessed, n.temp, n.workspace_ref
		FROM node_relationships r
		JOIN nodes n ON n.node_id = r.parent_node_id
		WHERE r.child_node_id = ?
		ORDER BY r.seq
	`, childID)
}

// ChildNodes returns direct children, oldest edge first
func (t *graphTx) ChildNodes(ctx context.Context, parentID string) ([]domain.Node, error) {
	return t.queryNodes(ctx, `
		SELECT n.node_id, n.name, n.created, n.last_accessed, n.temp, n.workspace_ref
		FROM node_relationships r
		JOIN nodes n ON n.node_id = r.child_node_id
		WHERE r.parent_node_id = ?
		ORDER BY r.seq
	`, parentID)
}

// InsertEdge adds parent -> child. Callers check for duplicates and cycles first.
func (t *graphTx) InsertEdge(ctx context.Context, parentID, childID string) error {
	return t.exec(ctx, `
		INSERT INTO node_relationships (parent_node_id, child_node_id) VALUES (?, ?)
	`, parentID, childID)
}

// DeleteEdge removes parent -> child if present
func (t *graphTx) DeleteEdge(ctx context.Context, parentID, childID string) error {
	return t.exec(ctx, `
		DELETE FROM node_relationships WHERE parent_node_id = ? AND child_node_id = ?
	`, parentID, childID)
}

// DeleteParentEdges removes every incoming edge of a node
func (t *graphTx) DeleteParentEdges(ctx context.Context, childID string) error {
	return t.exec(ctx, `DELETE FROM node_relationships WHERE child_node_id = ?`, childID)
}

// AppendHistory inserts a history record and fills in its id
func (t *graphTx) AppendHistory(ctx context.Context, rec *domain.HistoryRecord) error {
	return t.tx.QueryRowContext(ctx, t.d.Rebind(`
		INSERT INTO node_history (current_node_id, previous_node_id, recorded_at)
		VALUES (?, ?, ?)
		RETURNING id
	`), rec.CurrentNodeID, nullString(rec.PreviousNodeID), toUnix(rec.Timestamp)).Scan(&rec.ID)
}

// LatestHistory returns the most recent record, nil when the log is empty
func (t *graphTx) LatestHistory(ctx context.Context) (*domain.HistoryRecord, error) {
	recs, err := t.RecentHistory(ctx, 1)
	if err != nil || len(recs) == 0 {
		return nil, err
	}
	return &recs[0], nil
}

// RecentHistory returns up to limit records, newest first
func (t *graphTx) RecentHistory(ctx context.Context, limit int) ([]domain.HistoryRecord, error) {
	rows, err := t.tx.QueryContext(ctx, t.d.Rebind(`
		SELECT id, current_node_id, previous_node_id, recorded_at
		FROM node_history
		ORDER BY recorded_at DESC, id DESC
		LIMIT ?
	`), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []domain.HistoryRecord
	for rows.Next() {
		var (
			rec  domain.HistoryRecord
			prev sql.NullString
			at   int64
		)
		if err := rows.Scan(&rec.ID, &rec.CurrentNodeID, &prev, &at); err != nil {
			return nil, err
		}
		rec.PreviousNodeID = prev.String
		rec.Timestamp = fromUnix(at)
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// Commit commits the transaction
func (t *graphTx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction
func (t *graphTx) Rollback() error {
	return t.tx.Rollback()
}
