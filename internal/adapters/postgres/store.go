// Package postgres opens the networked graph store backed by PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"

	"trailhead/internal/adapters/sqlstore"
)

const schemaVersion = "1"

// Open connects to databaseURL through the pgx database/sql driver and applies
// the schema. Write transactions take a transaction-scoped advisory lock (see
// sqlstore.Postgres) so graph writers are serialized across processes.
func Open(ctx context.Context, databaseURL string, log *zap.Logger) (*sqlstore.Store, error) {
	if log == nil {
		log = zap.NewNop()
	}

	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	store := sqlstore.New(db, nil, sqlstore.Postgres, log)
	if err := store.SetMeta(ctx, "schema_version", schemaVersion); err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to update metadata: %w", err)
	}

	log.Debug("postgres store opened")
	return store, nil
}

const schema = `
	CREATE TABLE IF NOT EXISTS nodes (
		node_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		created BIGINT NOT NULL,
		last_accessed BIGINT NOT NULL,
		temp BOOLEAN NOT NULL DEFAULT FALSE,
		workspace_ref TEXT
	);
	CREATE TABLE IF NOT EXISTS node_relationships (
		seq BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		parent_node_id TEXT NOT NULL REFERENCES nodes(node_id) ON DELETE CASCADE,
		child_node_id TEXT NOT NULL REFERENCES nodes(node_id) ON DELETE CASCADE,
		UNIQUE (parent_node_id, child_node_id)
	);
	CREATE TABLE IF NOT EXISTS node_history (
		id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		current_node_id TEXT NOT NULL,
		previous_node_id TEXT,
		recorded_at BIGINT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS contexts (
		context_id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	);
	CREATE TABLE IF NOT EXISTS context_nodes (
		context_id TEXT NOT NULL REFERENCES contexts(context_id) ON DELETE CASCADE,
		node_id TEXT NOT NULL REFERENCES nodes(node_id) ON DELETE CASCADE,
		PRIMARY KEY (context_id, node_id)
	);
	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_relationships_child ON node_relationships(child_node_id);
	CREATE INDEX IF NOT EXISTS idx_history_recorded ON node_history(recorded_at);
	CREATE INDEX IF NOT EXISTS idx_nodes_last_accessed ON nodes(last_accessed);
`
