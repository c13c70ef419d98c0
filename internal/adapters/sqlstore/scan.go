package sqlstore

import (
	"database/sql"
	"time"

	"trailhead/internal/domain"
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNode(row rowScanner) (*domain.Node, error) {
	var (
		n             domain.Node
		created, seen int64
		workspace     sql.NullString
	)
	if err := row.Scan(&n.ID, &n.Name, &created, &seen, &n.Temp, &workspace); err != nil {
		return nil, err
	}
	n.Created = fromUnix(created)
	n.LastAccessed = fromUnix(seen)
	n.WorkspaceRef = workspace.String
	return &n, nil
}

// Timestamps are stored as Unix nanoseconds so both dialects order them the same way
func toUnix(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixNano()
}

func fromUnix(ns int64) time.Time {
	if ns == 0 {
		return time.Time{}
	}
	return time.Unix(0, ns).UTC()
}

// nullString returns nil for empty strings (for nullable columns)
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
