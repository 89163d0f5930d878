package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Open abre la base sqlite (driver modernc, sin cgo). WAL y busy_timeout
// para convivir con el pool de database/sql.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=500", path))
	if err != nil {
		return nil, err
	}
	return db, nil
}

// EnsureSchema crea la tabla única con columna discriminadora pet_type y
// columnas de variante nullables. AUTOINCREMENT mantiene un solo espacio
// de ids para todas las variantes.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS pets (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			pet_type TEXT NOT NULL CHECK (pet_type IN ('cat', 'dog')),
			owner_id INTEGER NOT NULL,
			in_zone INTEGER NOT NULL,
			tracker_type TEXT NOT NULL,
			lost_tracker INTEGER
		)
	`)
	return err
}
