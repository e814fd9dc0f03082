package sqlite

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS history (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,
    report_id       TEXT NOT NULL,
    timestamp       TEXT NOT NULL,
    file_path       TEXT NOT NULL,
    score           INTEGER NOT NULL,
    max_depth       INTEGER,
    persona         TEXT NOT NULL,
    source_of_truth TEXT NOT NULL,
    verdict         TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_history_timestamp ON history(timestamp);
`

// Connect opens (and creates, if needed) the embedded history database.
// Single connection only: SQLite has one writer anyway and this serializes
// concurrent analysis completions for free.
func Connect(ctx context.Context, path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

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
