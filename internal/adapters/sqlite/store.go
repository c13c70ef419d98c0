// Package sqlite opens the embedded graph store backed by SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"trailhead/internal/adapters/sqlstore"
)

const schemaVersion = "1"

// Open opens (creating if needed) the SQLite database at path and applies the schema.
//
// Two pools are opened on the same file: a single-connection writer whose
// transactions BEGIN IMMEDIATE, so a cycle check and the insert that follows it
// hold the write lock together, and a read pool that never blocks on writers
// thanks to WAL.
func Open(ctx context.Context, path string, log *zap.Logger) (*sqlstore.Store, error) {
	if log == nil {
		log = zap.NewNop()
	}

	path, err := expandHome(path)
	if err != nil {
		return nil, err
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	base := "file:" + path + "?_foreign_keys=1&_busy_timeout=5000&_synchronous=NORMAL"

	db, err := sql.Open("sqlite3", base+"&_journal_mode=WAL&_txlock=immediate")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	// WAL is persisted in the file by the writer above
	ro, err := sql.Open("sqlite3", base)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open read pool: %w", err)
	}

	store := sqlstore.New(db, ro, sqlstore.SQLite, log)
	if err := store.SetMeta(ctx, "schema_version", schemaVersion); err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to update metadata: %w", err)
	}

	log.Debug("sqlite store opened", zap.String("path", path))
	return store, nil
}

// expandHome expands a leading ~ in path
func expandHome(path string) (string, error) {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(home, path[1:]), nil
	}
	return path, nil
}

// Performance pragmas + schema in single batch (reduces round-trips)
const schema = `
	PRAGMA cache_size = -64000;
	PRAGMA temp_store = MEMORY;

	CREATE TABLE IF NOT EXISTS nodes (
		node_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		created INTEGER NOT NULL,
		last_accessed INTEGER NOT NULL,
		temp INTEGER NOT NULL DEFAULT 0,
		workspace_ref TEXT
	);
	CREATE TABLE IF NOT EXISTS node_relationships (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		parent_node_id TEXT NOT NULL REFERENCES nodes(node_id) ON DELETE CASCADE,
		child_node_id TEXT NOT NULL REFERENCES nodes(node_id) ON DELETE CASCADE,
		UNIQUE (parent_node_id, child_node_id)
	);
	CREATE TABLE IF NOT EXISTS node_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		current_node_id TEXT NOT NULL,
		previous_node_id TEXT,
		recorded_at INTEGER NOT NULL
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
