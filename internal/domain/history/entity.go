package history

import (
	"time"

	"github.com/bryanwahyu/ratemycode/internal/domain/analysis"
)

// Record is the append-only persisted projection of a ScoreReport.
// Never mutated, never deleted by the core; retention is someone else's job.
type Record struct {
	ID            int64     `json:"id"`
	ReportID      string    `json:"report_id"`
	Timestamp     time.Time `json:"timestamp"`
	FilePath      string    `json:"file_path"`
	Score         int       `json:"score"`
	MaxDepth      *int      `json:"max_depth,omitempty"`
	Persona       string    `json:"persona"`
	SourceOfTruth string    `json:"source_of_truth"`
	VerdictText   string    `json:"verdict_text"`
}

// Summary rekap history N hari terakhir
type Summary struct {
	TotalReports int     `json:"total_reports"`
	AverageScore float64 `json:"average_score"`
	WorstFile    string  `json:"worst_file,omitempty"`
	WorstScore   int     `json:"worst_score"`
}

// PaginatedResult represents a paginated response with data and metadata
type PaginatedResult struct {
	Data       []*Record `json:"data"`
	Page       int       `json:"page"`
	PageSize   int       `json:"pageSize"`
	Total      int64     `json:"totalItems"`
	TotalPages int       `json:"totalPages"`
}

// FromReport projects a finished ScoreReport into its history row.
func FromReport(r *analysis.ScoreReport) *Record {
	rec := &Record{
		ReportID:      string(r.ID),
		Timestamp:     r.Timestamp,
		FilePath:      r.FilePath,
		Score:         r.Score,
		Persona:       string(r.Persona),
		SourceOfTruth: string(r.SourceOfTruth),
		VerdictText:   r.VerdictText,
	}
	if r.MaxDepth != nil {
		d := *r.MaxDepth
		rec.MaxDepth = &d
	}
	return rec
}
