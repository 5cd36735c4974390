package database

import (
	"database/sql"
	"fmt"
	"log"
)

// Migrations run in order and are recorded in schema_migrations so each one
// is applied at most once per database.
var migrations = []struct {
	name string
	fn   func(*sql.DB) error
}{
	{"create_transactions", createTransactions},
	{"index_transactions_owner_category", indexTransactionsOwnerCategory},
}

func runMigrations(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("create schema_migrations table: %w", err)
	}

	for _, m := range migrations {
		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations WHERE name = ?", m.name).Scan(&count); err != nil {
			return fmt.Errorf("check migration %s: %w", m.name, err)
		}
		if count > 0 {
			continue
		}

		log.Printf("Applying migration: %s", m.name)
		if err := m.fn(db); err != nil {
			return fmt.Errorf("apply migration %s: %w", m.name, err)
		}
		if _, err := db.Exec("INSERT INTO schema_migrations (name) VALUES (?)", m.name); err != nil {
			return fmt.Errorf("record migration %s: %w", m.name, err)
		}
	}

	return nil
}

func createTransactions(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS transactions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			userId TEXT NOT NULL,
			amount NUMERIC NOT NULL CHECK (amount > 0),
			type TEXT NOT NULL CHECK (type IN ('send', 'receive')),
			category TEXT NOT NULL,
			recipient TEXT NOT NULL,
			createdAt DATETIME NOT NULL
		);
	`)
	return err
}

func indexTransactionsOwnerCategory(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_transactions_owner_category
		ON transactions (userId, category, type);
	`)
	return err
}
