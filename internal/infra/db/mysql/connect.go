package mysql

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

const schema = `
CREATE TABLE IF NOT EXISTS history (
    id              BIGINT PRIMARY KEY AUTO_INCREMENT,
    report_id       VARCHAR(64) NOT NULL,
    timestamp       DATETIME(6) NOT NULL,
    file_path       VARCHAR(1024) NOT NULL,
    score           INT NOT NULL,
    max_depth       INT NULL,
    persona         VARCHAR(32) NOT NULL,
    source_of_truth VARCHAR(16) NOT NULL,
    verdict         TEXT NOT NULL,
    INDEX idx_history_timestamp (timestamp)
);
`

// Connect ke MySQL untuk history yang dishare satu tim
func Connect(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
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
