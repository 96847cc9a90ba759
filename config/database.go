package config

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/lib/pq"
)

func InitDB() (*sql.DB, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	return db, nil
}

func RunMigrations(db *sql.DB) error {
	migrations := []string{
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`,

		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			username VARCHAR(80) UNIQUE NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			totp_secret VARCHAR(255),
			totp_enabled BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS categories (
			id BIGSERIAL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			is_custom BOOLEAN NOT NULL DEFAULT FALSE,
			user_id UUID REFERENCES users(id) ON DELETE CASCADE
		)`,

		`CREATE TABLE IF NOT EXISTS transactions (
			id BIGSERIAL PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			category_id BIGINT REFERENCES categories(id),
			amount NUMERIC(10, 2) NOT NULL,
			type VARCHAR(10) NOT NULL,
			transaction_date DATE NOT NULL,
			notes TEXT
		)`,

		`CREATE INDEX IF NOT EXISTS idx_categories_user_id ON categories(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_user_id ON transactions(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_category_id ON transactions(category_id)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_user_date ON transactions(user_id, transaction_date DESC, id DESC)`,
	}

	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}

	return nil
}

// DefaultCategories are the system-seeded categories every user can read
// but nobody can modify.
var DefaultCategories = []string{
	"Dining",
	"Shopping",
	"Transport",
	"Entertainment",
	"Education",
	"Daily Necessities",
	"Other",
}

// SeedDefaultCategories inserts any missing default category. Safe to run
// on every startup.
func SeedDefaultCategories(db *sql.DB) error {
	for _, name := range DefaultCategories {
		var exists bool
		err := db.QueryRow(`SELECT EXISTS(SELECT 1 FROM categories WHERE name = $1 AND is_custom = FALSE)`, name).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check default category %q: %w", name, err)
		}
		if exists {
			continue
		}

		if _, err := db.Exec(`INSERT INTO categories (name, is_custom, user_id) VALUES ($1, FALSE, NULL)`, name); err != nil {
			return fmt.Errorf("failed to seed default category %q: %w", name, err)
		}
		log.Printf("Seeded default category: %s", name)
	}

	return nil
}
