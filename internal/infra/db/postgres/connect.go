package postgres

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS history (
    id              BIGSERIAL PRIMARY KEY,
    report_id       TEXT NOT NULL,
    timestamp       TIMESTAMPTZ NOT NULL,
    file_path       TEXT NOT NULL,
    score           INT NOT NULL,
    max_depth       INT NULL,
    persona         TEXT NOT NULL,
    source_of_truth TEXT NOT NULL,
    verdict         TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_history_timestamp ON history(timestamp);
`

// Connect ke Postgres untuk history yang dishare satu tim
func Connect(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	// test ping
	ctx2, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx2); err != nil {
		db.Close()
		return nil, err
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
