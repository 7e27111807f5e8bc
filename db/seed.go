package db

import (
	"database/sql"
	"fmt"
)

// SeedData populates the database with an initial admin account so a fresh
// install can log in. Skipped when no seed credentials are configured.
func SeedData(database *sql.DB, adminEmail, adminPasswordHash string) error {
	if adminEmail == "" || adminPasswordHash == "" {
		return nil
	}

	tx, err := database.Begin()
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO users (first_name, last_name, email, password_hash, role)
		VALUES ('System', 'Admin', $1, $2, 'ADMIN')
		ON CONFLICT (email) DO NOTHING
	`, adminEmail, adminPasswordHash)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("error seeding admin user: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}

	return nil
}
