package sqldb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmanzanog/folio/internal/infrastructure/persistence/sqldb/migrations"
	"github.com/pressly/goose/v3"
)

// sqlitePragmas tune the embedded database for a single writer process.
var sqlitePragmas = []string{
	"PRAGMA journal_mode = WAL",
	"PRAGMA synchronous = NORMAL",
	"PRAGMA busy_timeout = 5000",
	"PRAGMA foreign_keys = ON",
}

type SQLiteDialect struct{}

func (d *SQLiteDialect) Name() string { return "sqlite" }

func (d *SQLiteDialect) Migrate(ctx context.Context, db *sql.DB) error {
	for _, pragma := range sqlitePragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			return fmt.Errorf("applying %q: %w", pragma, err)
		}
	}

	goose.SetBaseFS(migrations.SQLiteFS)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("setting dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "sqlite"); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	return nil
}

func (d *SQLiteDialect) Rebind(query string) string { return rebindNumbered(query, "?") }

func (d *SQLiteDialect) UpsertEntry(ctx context.Context, tx *sql.Tx, key string, value []byte) error {
	query := `
		INSERT INTO cache_entries (entry_key, entry_value, updated_at)
		VALUES (?1, ?2, CURRENT_TIMESTAMP)
		ON CONFLICT (entry_key) DO UPDATE SET
			entry_value = excluded.entry_value,
			updated_at = excluded.updated_at
	`
	_, err := tx.ExecContext(ctx, query, key, string(value))
	return err
}
