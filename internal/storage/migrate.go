package storage

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// MigrateUp applies every embedded up migration in lexical order and
// reports how many scripts ran.
func MigrateUp(db *sql.DB) (int, error) {
	return applyMigrations(db, ".up.sql")
}

// MigrateDown reverses the schema with the embedded down migrations,
// newest first.
func MigrateDown(db *sql.DB) (int, error) {
	return applyMigrations(db, ".down.sql")
}

func applyMigrations(db *sql.DB, suffix string) (int, error) {
	entries, err := fs.Glob(migrationFiles, "migrations/*"+suffix)
	if err != nil {
		return 0, fmt.Errorf("storage: glob %s migrations: %w", suffix, err)
	}
	if len(entries) == 0 {
		return 0, errors.New("storage: no embedded migrations found")
	}
	sort.Strings(entries)
	if suffix == ".down.sql" {
		reverse(entries)
	}
	applied := 0
	for _, name := range entries {
		script, readErr := migrationFiles.ReadFile(name)
		if readErr != nil {
			return applied, fmt.Errorf("storage: read migration %s: %w", name, readErr)
		}
		if _, execErr := db.Exec(string(script)); execErr != nil {
			return applied, fmt.Errorf("storage: apply migration %s: %w", name, execErr)
		}
		applied++
	}
	return applied, nil
}

func reverse(entries []string) {
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
}
