package analysis

import (
	"time"
)

// ReportID tipe untuk ScoreReport
type ReportID string

// SourceOfTruth enum: jalur mana yang menghasilkan skor
type SourceOfTruth string

const (
	SourceLocal  SourceOfTruth = "local"
	SourceRemote SourceOfTruth = "remote"
)

// AnalysisRequest is one file-change event as handed to the orchestrator.
// Immutable; built once per event by the watcher or the HTTP handler.
type AnalysisRequest struct {
	FilePath   string
	SourceText string
	Language   Language
	Persona    Persona
	APIKey     string
}

// ScopeDepth records the maximum nesting depth reached inside one named scope.
type ScopeDepth struct {
	Name  string `json:"name"`
	Depth int    `json:"depth"`
}

// NestingFinding value object hasil dari local scorer
type NestingFinding struct {
	MaxDepth int          `json:"max_depth"`
	Scopes   []ScopeDepth `json:"scopes"`
}

// RemoteReview is a validated response from the LLM path. It only exists
// when the payload passed strict validation; partial payloads are discarded.
type RemoteReview struct {
	Score   int      `json:"score"`
	Summary string   `json:"summary"`
	Issues  []string `json:"issues"`
}

// Aggregate Root: ScoreReport
// Invariant: Score selalu ada dan di range [0,100]; tepat satu jalur
// (local atau remote) yang mengisi skor, tidak pernah campuran.
type ScoreReport struct {
	ID            ReportID      `json:"id"`
	FilePath      string        `json:"file_path"`
	Score         int           `json:"score"`
	SourceOfTruth SourceOfTruth `json:"source_of_truth"`
	MaxDepth      *int          `json:"max_depth,omitempty"`
	Scopes        []ScopeDepth  `json:"scopes,omitempty"`
	ParseFailed   bool          `json:"parse_failed,omitempty"`
	VerdictText   string        `json:"verdict_text"`
	Issues        []string      `json:"issues,omitempty"`
	Persona       Persona       `json:"persona"`
	DurationMS    int64         `json:"duration_ms"`
	Timestamp     time.Time     `json:"timestamp"`
}
