package mysql

import (
	"context"
	"database/sql"
	"math"
	"time"

	domain "github.com/bryanwahyu/ratemycode/internal/domain/history"
)

type HistoryRepository struct {
	db *sql.DB
}

func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Save insert satu record history (append-only)
func (r *HistoryRepository) Save(ctx context.Context, rec *domain.Record) error {
	const q = `
INSERT INTO history (report_id, timestamp, file_path, score, max_depth, persona, source_of_truth, verdict)
VALUES (?,?,?,?,?,?,?,?);
`
	ts := rec.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	res, err := r.db.ExecContext(ctx, q,
		rec.ReportID, ts.UTC(), rec.FilePath, rec.Score,
		nullableInt(rec.MaxDepth), rec.Persona, rec.SourceOfTruth, rec.VerdictText,
	)
	if err != nil {
		return err
	}
	if id, err := res.LastInsertId(); err == nil {
		rec.ID = id
	}
	return nil
}

// Get by ID
func (r *HistoryRepository) Get(ctx context.Context, id int64) (*domain.Record, error) {
	const q = `
SELECT id, report_id, timestamp, file_path, score, max_depth, persona, source_of_truth, verdict
FROM history WHERE id=? LIMIT 1;
`
	return scanRecord(r.db.QueryRowContext(ctx, q, id))
}

// Latest N record terakhir
func (r *HistoryRepository) Latest(ctx context.Context, limit int) ([]*domain.Record, error) {
	if limit <= 0 {
		limit = 20
	}
	const q = `
SELECT id, report_id, timestamp, file_path, score, max_depth, persona, source_of_truth, verdict
FROM history ORDER BY id DESC LIMIT ?;
`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRecords(rows)
}

// Summary rekap skor sejak N hari
func (r *HistoryRepository) Summary(ctx context.Context, sinceDays int) (domain.Summary, error) {
	if sinceDays <= 0 {
		sinceDays = 7
	}
	cut := time.Now().AddDate(0, 0, -sinceDays).UTC()

	var s domain.Summary
	const q = `
SELECT COUNT(*), COALESCE(AVG(score), 0)
FROM history WHERE timestamp >= ?;
`
	if err := r.db.QueryRowContext(ctx, q, cut).Scan(&s.TotalReports, &s.AverageScore); err != nil {
		return domain.Summary{}, err
	}
	if s.TotalReports == 0 {
		return s, nil
	}

	const worstQ = `
SELECT file_path, score FROM history
WHERE timestamp >= ? ORDER BY score ASC, id ASC LIMIT 1;
`
	if err := r.db.QueryRowContext(ctx, worstQ, cut).Scan(&s.WorstFile, &s.WorstScore); err != nil && err != sql.ErrNoRows {
		return domain.Summary{}, err
	}
	return s, nil
}

// Paginate with offset + limit (classic pagination)
func (r *HistoryRepository) Paginate(ctx context.Context, page, pageSize int) (domain.PaginatedResult, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM history;`).Scan(&total); err != nil {
		return domain.PaginatedResult{}, err
	}

	const q = `
SELECT id, report_id, timestamp, file_path, score, max_depth, persona, source_of_truth, verdict
FROM history ORDER BY id DESC LIMIT ? OFFSET ?;
`
	rows, err := r.db.QueryContext(ctx, q, pageSize, offset)
	if err != nil {
		return domain.PaginatedResult{}, err
	}
	defer rows.Close()

	data, err := collectRecords(rows)
	if err != nil {
		return domain.PaginatedResult{}, err
	}
	return domain.PaginatedResult{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
	}, nil
}

// ---- helpers ----

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*domain.Record, error) {
	var rec domain.Record
	var depth sql.NullInt64
	if err := row.Scan(
		&rec.ID, &rec.ReportID, &rec.Timestamp, &rec.FilePath, &rec.Score,
		&depth, &rec.Persona, &rec.SourceOfTruth, &rec.VerdictText,
	); err != nil {
		return nil, err
	}
	if depth.Valid {
		d := int(depth.Int64)
		rec.MaxDepth = &d
	}
	return &rec, nil
}

func collectRecords(rows *sql.Rows) ([]*domain.Record, error) {
	var out []*domain.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func nullableInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}
