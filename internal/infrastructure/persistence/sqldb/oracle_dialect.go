package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmanzanog/folio/internal/infrastructure/persistence/sqldb/migrations"
)

type OracleDialect struct{}

func (d *OracleDialect) Name() string { return "oracle" }

func (d *OracleDialect) Migrate(ctx context.Context, db *sql.DB) error {
	// goose has no Oracle dialect; run the script statement by statement.
	content, err := migrations.OracleFS.ReadFile("oracle/20240101000000_cache_entries.sql")
	if err != nil {
		return fmt.Errorf("reading migration file: %w", err)
	}

	// Statements are separated by '/' as in SQL*Plus scripts
	statements := strings.Split(string(content), "/")

	for _, stmt := range statements {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}

		if _, err := db.ExecContext(ctx, stmt); err != nil {
			// ORA-00955: name is already used by an existing object
			if !strings.Contains(err.Error(), "ORA-00955") {
				return fmt.Errorf("migrating: %s: %w", stmt, err)
			}
		}
	}
	return nil
}

func (d *OracleDialect) Rebind(query string) string { return rebindNumbered(query, ":") }

func (d *OracleDialect) UpsertEntry(ctx context.Context, tx *sql.Tx, key string, value []byte) error {
	query := `MERGE INTO cache_entries c
             USING (SELECT :1 as key_val FROM dual) s
             ON (c.entry_key = s.key_val)
             WHEN MATCHED THEN
               UPDATE SET entry_value = :2, updated_at = SYSTIMESTAMP
             WHEN NOT MATCHED THEN
               INSERT (entry_key, entry_value, updated_at)
               VALUES (:3, :4, SYSTIMESTAMP)`

	_, err := tx.ExecContext(ctx, query,
		key,           // 1 (s.key_val)
		string(value), // 2 (UPDATE)
		key,           // 3 (INSERT)
		string(value), // 4 (INSERT)
	)
	return err
}
