package postgres

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Open abre una conexión pool a Postgres usando pgx (database/sql).
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	// defaults razonables, ajustable luego
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// EnsureSchema crea el esquema si no existe: una tabla por variante sobre
// una secuencia compartida, así el espacio de ids es uno solo.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE SEQUENCE IF NOT EXISTS pet_id_seq`,
		`CREATE TABLE IF NOT EXISTS cats (
			id BIGINT PRIMARY KEY DEFAULT nextval('pet_id_seq'),
			owner_id BIGINT NOT NULL,
			in_zone BOOLEAN NOT NULL,
			tracker_type TEXT NOT NULL,
			lost_tracker BOOLEAN NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS dogs (
			id BIGINT PRIMARY KEY DEFAULT nextval('pet_id_seq'),
			owner_id BIGINT NOT NULL,
			in_zone BOOLEAN NOT NULL,
			tracker_type TEXT NOT NULL
		)`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
