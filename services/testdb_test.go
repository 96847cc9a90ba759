package services

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// openTestDB returns an in-memory SQLite database with the application
// schema. All production SQL is driver-portable, so the services run
// against it unchanged. Amounts are declared TEXT so decimal values survive
// the round trip exactly.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	// A second pool connection would see a different empty in-memory DB.
	db.SetMaxOpenConns(1)

	schema := []string{
		`PRAGMA foreign_keys = ON`,
		`CREATE TABLE users (
			id TEXT PRIMARY KEY,
			username TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			totp_secret TEXT,
			totp_enabled BOOLEAN NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE categories (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			is_custom BOOLEAN NOT NULL DEFAULT 0,
			user_id TEXT REFERENCES users(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE transactions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			category_id INTEGER REFERENCES categories(id),
			amount TEXT NOT NULL,
			type TEXT NOT NULL,
			transaction_date DATE NOT NULL,
			notes TEXT
		)`,
	}
	for _, stmt := range schema {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}

	t.Cleanup(func() { _ = db.Close() })
	return db
}

func createTestUser(t *testing.T, db *sql.DB, username string) string {
	t.Helper()

	id := uuid.New().String()
	_, err := db.Exec(`
		INSERT INTO users (id, username, password_hash, totp_enabled, created_at)
		VALUES ($1, $2, $3, FALSE, $4)
	`, id, username, "test-hash", time.Now().UTC())
	require.NoError(t, err)
	return id
}

func createDefaultCategory(t *testing.T, db *sql.DB, name string) int64 {
	t.Helper()

	var id int64
	err := db.QueryRow(`
		INSERT INTO categories (name, is_custom, user_id) VALUES ($1, FALSE, NULL) RETURNING id
	`, name).Scan(&id)
	require.NoError(t, err)
	return id
}

func createCustomCategory(t *testing.T, db *sql.DB, userID, name string) int64 {
	t.Helper()

	var id int64
	err := db.QueryRow(`
		INSERT INTO categories (name, is_custom, user_id) VALUES ($1, TRUE, $2) RETURNING id
	`, name, userID).Scan(&id)
	require.NoError(t, err)
	return id
}

func insertTransaction(t *testing.T, db *sql.DB, userID string, categoryID *int64, amount, txType, date string) int64 {
	t.Helper()

	day, err := time.ParseInLocation("2006-01-02", date, time.UTC)
	require.NoError(t, err)

	var id int64
	err = db.QueryRow(`
		INSERT INTO transactions (user_id, category_id, amount, type, transaction_date, notes)
		VALUES ($1, $2, $3, $4, $5, NULL)
		RETURNING id
	`, userID, nullableInt64(categoryID), decimal.RequireFromString(amount), txType, day).Scan(&id)
	require.NoError(t, err)
	return id
}
