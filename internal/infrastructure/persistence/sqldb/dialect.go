package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

type Dialect interface {
	Name() string
	Migrate(ctx context.Context, db *sql.DB) error
	// Rebind rewrites $n placeholders into the dialect's own syntax.
	Rebind(query string) string
	UpsertEntry(ctx context.Context, tx *sql.Tx, key string, value []byte) error
}

// rebindNumbered replaces $1..$n with prefix-numbered placeholders, highest
// index first so $10 is not mistaken for $1.
func rebindNumbered(query, prefix string) string {
	n := strings.Count(query, "$")
	for i := n; i >= 1; i-- {
		query = strings.ReplaceAll(query, fmt.Sprintf("$%d", i), fmt.Sprintf("%s%d", prefix, i))
	}
	return query
}
