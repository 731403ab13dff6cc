package sqldb

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestDialect_Rebind(t *testing.T) {
	query := "UPDATE t SET a = $1, b = $2, c = $3, d = $4, e = $5, f = $6, g = $7, h = $8, i = $9, j = $10, k = $11"

	tests := []struct {
		dialect  Dialect
		expected string
	}{
		{&PostgresDialect{}, query},
		{&SQLiteDialect{}, "UPDATE t SET a = ?1, b = ?2, c = ?3, d = ?4, e = ?5, f = ?6, g = ?7, h = ?8, i = ?9, j = ?10, k = ?11"},
		{&OracleDialect{}, "UPDATE t SET a = :1, b = :2, c = :3, d = :4, e = :5, f = :6, g = :7, h = :8, i = :9, j = :10, k = :11"},
	}

	for _, tt := range tests {
		t.Run(tt.dialect.Name(), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.dialect.Rebind(query))
		})
	}
}

func TestPostgresDialect_UpsertEntry_QueryGeneration(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer func() {
		_ = db.Close()
	}()

	mock.ExpectBegin()
	tx, err := db.Begin()
	assert.NoError(t, err)

	mock.ExpectExec(`INSERT INTO cache_entries .* ON CONFLICT \(entry_key\) DO UPDATE`).
		WithArgs("blogPosts", `[]`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = (&PostgresDialect{}).UpsertEntry(context.Background(), tx, "blogPosts", []byte(`[]`))

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteDialect_UpsertEntry_QueryGeneration(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer func() {
		_ = db.Close()
	}()

	mock.ExpectBegin()
	tx, err := db.Begin()
	assert.NoError(t, err)

	mock.ExpectExec(`INSERT INTO cache_entries .* VALUES \(\?1, \?2, CURRENT_TIMESTAMP\)`).
		WithArgs("lastDataSync", "1700000000000").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = (&SQLiteDialect{}).UpsertEntry(context.Background(), tx, "lastDataSync", []byte("1700000000000"))

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOracleDialect_UpsertEntry_QueryGeneration(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer func() {
		_ = db.Close()
	}()

	// ORDER MATTERS:
	// 1. Begin Transaction
	mock.ExpectBegin()
	tx, err := db.Begin()
	assert.NoError(t, err)

	// 2. Execute Query
	mock.ExpectExec(`MERGE INTO cache_entries c`).
		WithArgs(
			"portfolioItems", // 1
			`[{"_id":"1"}]`,  // 2
			"portfolioItems", // 3
			`[{"_id":"1"}]`,  // 4
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = (&OracleDialect{}).UpsertEntry(context.Background(), tx, "portfolioItems", []byte(`[{"_id":"1"}]`))

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKVStore_Get_QueryGeneration(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer func() {
		_ = db.Close()
	}()

	store := NewKVStore(New(db, &OracleDialect{}))

	mock.ExpectQuery(`SELECT entry_value FROM cache_entries WHERE entry_key = :1`).
		WithArgs("blogPosts").
		WillReturnRows(sqlmock.NewRows([]string{"entry_value"}).AddRow(`[]`))

	value, ok, err := store.Get(context.Background(), "blogPosts")

	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte(`[]`), value)
	assert.NoError(t, mock.ExpectationsWereMet())
}
