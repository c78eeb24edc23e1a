package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

const schemaLockKey int64 = 2026101601

const schemaDDL = `
CREATE TABLE IF NOT EXISTS users (
	id BIGSERIAL PRIMARY KEY,
	username TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS notes (
	id BIGSERIAL PRIMARY KEY,
	title TEXT NOT NULL,
	topic TEXT NOT NULL DEFAULT '',
	version INTEGER NOT NULL DEFAULT 1,
	file_url TEXT NOT NULL,
	uploaded_by BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	uploaded_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	category TEXT,
	downloads INTEGER NOT NULL DEFAULT 0 CHECK (downloads >= 0)
);

CREATE TABLE IF NOT EXISTS student_resources (
	id BIGSERIAL PRIMARY KEY,
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	file_url TEXT NOT NULL,
	uploaded_by BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	uploaded_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	verified BOOLEAN NOT NULL DEFAULT false,
	category TEXT,
	downloads INTEGER NOT NULL DEFAULT 0 CHECK (downloads >= 0)
);

CREATE TABLE IF NOT EXISTS ratings (
	id BIGSERIAL PRIMARY KEY,
	note_id BIGINT REFERENCES notes(id) ON DELETE CASCADE,
	resource_id BIGINT REFERENCES student_resources(id) ON DELETE CASCADE,
	user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	value SMALLINT NOT NULL CHECK (value BETWEEN 1 AND 5),
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (user_id, note_id),
	UNIQUE (user_id, resource_id)
);

CREATE INDEX IF NOT EXISTS idx_ratings_note_id ON ratings(note_id);
CREATE INDEX IF NOT EXISTS idx_ratings_resource_id ON ratings(resource_id);

CREATE TABLE IF NOT EXISTS activity_log (
	id TEXT PRIMARY KEY,
	user_id TEXT,
	action TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	occurred_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_activity_log_occurred_at ON activity_log(occurred_at DESC);
`

// EnsureSchema creates the catalog tables when missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Serialize bootstrap DDL across api/worker startups.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, schemaLockKey); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}
	if _, err := tx.ExecContext(ctx, schemaDDL); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}
