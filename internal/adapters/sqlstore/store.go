// Package sqlstore implements the graph and context ports on top of
// database/sql. The sqlite and postgres adapters open the connections and
// own the schema; everything else is shared here.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"trailhead/internal/ports"
)

// Store implements ports.GraphStore
type Store struct {
	db      *sql.DB // read-write pool
	ro      *sql.DB // read pool, may be the same handle as db
	dialect Dialect
	log     *zap.Logger
}

// Ensure Store implements GraphStore
var _ ports.GraphStore = (*Store)(nil)

// New wraps already-open database handles. ro may be nil to reuse db for reads.
func New(db, ro *sql.DB, dialect Dialect, log *zap.Logger) *Store {
	if ro == nil {
		ro = db
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{db: db, ro: ro, dialect: dialect, log: log}
}

// DB returns the read-write handle
func (s *Store) DB() *sql.DB {
	return s.db
}

// Dialect returns the SQL dialect of the store
func (s *Store) Dialect() Dialect {
	return s.dialect
}

// BeginTx starts a read-write transaction holding the dialect's write lock
func (s *Store) BeginTx(ctx context.Context) (ports.GraphTx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}

	if s.dialect.WriteLock != "" {
		if _, err := tx.ExecContext(ctx, s.dialect.WriteLock); err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("acquire write lock: %w", err)
		}
	}

	return &graphTx{tx: tx, d: s.dialect}, nil
}

// BeginReadTx starts a read-only transaction on the read pool
func (s *Store) BeginReadTx(ctx context.Context) (ports.GraphTx, error) {
	tx, err := s.ro.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("begin read transaction: %w", err)
	}
	return &graphTx{tx: tx, d: s.dialect}, nil
}

// Close closes both pools
func (s *Store) Close() error {
	var firstErr error
	if s.ro != nil && s.ro != s.db {
		if err := s.ro.Close(); err != nil {
			firstErr = err
		}
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// GetMeta reads a value from the meta table, "" when unset
func (s *Store) GetMeta(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, s.dialect.Rebind(`SELECT value FROM meta WHERE key = ?`), key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

// SetMeta upserts a value in the meta table
func (s *Store) SetMeta(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, s.dialect.Rebind(`
		INSERT INTO meta (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value
	`), key, value)
	return err
}

// DeleteMeta removes a key from the meta table
func (s *Store) DeleteMeta(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, s.dialect.Rebind(`DELETE FROM meta WHERE key = ?`), key)
	return err
}
