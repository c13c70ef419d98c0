package sqlstore

import (
	"strconv"
	"strings"
)

// Dialect captures the differences between the SQL engines the store runs on.
// Queries are written with '?' placeholders and rebound per dialect.
type Dialect struct {
	Name string

	// NumberedParams rewrites '?' into $1, $2, ... (PostgreSQL)
	NumberedParams bool

	// WriteLock runs first in every write transaction to serialize writers.
	// Empty when the driver already serializes at BEGIN.
	WriteLock string
}

// SQLite is the dialect for the embedded store
var SQLite = Dialect{Name: "sqlite"}

// Postgres is the dialect for the networked store
var Postgres = Dialect{
	Name:           "postgres",
	NumberedParams: true,
	WriteLock:      "SELECT pg_advisory_xact_lock(7281944)",
}

// Rebind converts '?' placeholders to the dialect's parameter syntax
func (d Dialect) Rebind(query string) string {
	if !d.NumberedParams {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
