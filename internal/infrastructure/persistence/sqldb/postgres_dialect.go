package sqldb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmanzanog/folio/internal/infrastructure/persistence/sqldb/migrations"
	"github.com/pressly/goose/v3"
)

type PostgresDialect struct{}

func (d *PostgresDialect) Name() string { return "postgres" }

func (d *PostgresDialect) Migrate(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.PostgresFS)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("setting dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "postgres"); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	return nil
}

func (d *PostgresDialect) Rebind(query string) string { return query }

func (d *PostgresDialect) UpsertEntry(ctx context.Context, tx *sql.Tx, key string, value []byte) error {
	query := `
		INSERT INTO cache_entries (entry_key, entry_value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (entry_key) DO UPDATE SET
			entry_value = EXCLUDED.entry_value,
			updated_at = EXCLUDED.updated_at
	`
	_, err := tx.ExecContext(ctx, query, key, string(value))
	return err
}
