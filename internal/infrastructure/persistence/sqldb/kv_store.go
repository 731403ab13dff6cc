package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
)

// KVStore keeps cache entries in the cache_entries table.
type KVStore struct {
	db *DB
}

func NewKVStore(db *DB) *KVStore {
	return &KVStore{db: db}
}

func (s *KVStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	query := s.db.Dialect.Rebind("SELECT entry_value FROM cache_entries WHERE entry_key = $1")

	var value sql.NullString
	err := s.db.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "Failed to read cache entry", "key", key, "error", err)
		return nil, false, fmt.Errorf("querying cache entry %s: %w", key, err)
	}
	return []byte(value.String), true, nil
}

func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	return s.db.WithTx(ctx, func(tx *sql.Tx) error {
		if err := s.db.Dialect.UpsertEntry(ctx, tx, key, value); err != nil {
			slog.ErrorContext(ctx, "Failed to save cache entry", "key", key, "error", err)
			return fmt.Errorf("upsert cache entry %s: %w", key, err)
		}
		return nil
	})
}

func (s *KVStore) Delete(ctx context.Context, key string) error {
	query := s.db.Dialect.Rebind("DELETE FROM cache_entries WHERE entry_key = $1")
	if _, err := s.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("deleting cache entry %s: %w", key, err)
	}
	return nil
}
