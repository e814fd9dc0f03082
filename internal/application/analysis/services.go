package analysis

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	domain "github.com/bryanwahyu/ratemycode/internal/domain/analysis"
	"github.com/bryanwahyu/ratemycode/internal/domain/history"
)

// Clock abstraction supaya gampang ditest
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Options are the immutable knobs handed in at wiring time. Analyze reads
// only from here, never from process-wide state.
type Options struct {
	PenaltyPerLevel int
	RemoteTimeout   time.Duration
	SpeakThreshold  int
	VoiceEnabled    bool
}

const defaultRemoteTimeout = 10 * time.Second

// Service implements the analysis use-cases. Reviewer, Archive, Speaker and
// Renderer may be nil; History is required for the query use-cases only.
// Safe for concurrent use: one Analyze call shares nothing with another.
type Service struct {
	Reviewer domain.Reviewer
	History  history.Repository
	Archive  domain.ArchiveStore
	Speaker  domain.Speaker
	Renderer domain.Renderer
	Clock    Clock
	Opts     Options
}

//
// ==== USE CASES ====
//

// Analyze is total over well-formed requests: it always returns a report,
// never an error. Remote path first when a key is configured; any remote
// failure falls back to the local scorer. Exactly one path fills the score.
func (s *Service) Analyze(ctx context.Context, req domain.AnalysisRequest) domain.ScoreReport {
	start := time.Now()
	report := domain.ScoreReport{
		ID:       domain.ReportID(uuid.New().String()),
		FilePath: req.FilePath,
		Persona:  req.Persona,
	}

	if review := s.tryRemote(ctx, req); review != nil {
		report.Score = review.Score
		report.SourceOfTruth = domain.SourceRemote
		report.Issues = review.Issues
		report.VerdictText = review.Summary
		if report.VerdictText == "" {
			report.VerdictText = domain.VerdictFor(req.Persona, review.Score)
		}
	} else {
		s.scoreLocally(&report, req)
	}

	report.DurationMS = time.Since(start).Milliseconds()
	report.Timestamp = s.now()
	return report
}

// tryRemote runs one bounded attempt of the LLM path. Key absent is not an
// error, just a signal to skip; failures are logged and absorbed.
func (s *Service) tryRemote(ctx context.Context, req domain.AnalysisRequest) *domain.RemoteReview {
	if req.APIKey == "" || s.Reviewer == nil {
		return nil
	}
	timeout := s.Opts.RemoteTimeout
	if timeout <= 0 {
		timeout = defaultRemoteTimeout
	}
	rctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	review, err := s.Reviewer.AttemptReview(rctx, req.SourceText)
	if err != nil || review == nil {
		log.Printf("ratemycode: remote review failed, falling back to local: %v", err)
		return nil
	}
	return review
}

func (s *Service) scoreLocally(report *domain.ScoreReport, req domain.AnalysisRequest) {
	report.SourceOfTruth = domain.SourceLocal

	tree, err := domain.Parse(req.SourceText, req.Language)
	if err != nil {
		// parse failure: deterministic minimum score, depth stays nil so the
		// renderer can tell "broken" apart from "deeply nested but valid"
		report.Score = 0
		report.ParseFailed = true
		report.VerdictText = domain.SyntaxErrorVerdict(req.Persona)
		return
	}

	finding := domain.ScoreTree(tree)
	depth := finding.MaxDepth
	report.MaxDepth = &depth
	report.Scopes = finding.Scopes
	report.Score = domain.ScoreFromDepth(depth, s.Opts.PenaltyPerLevel)
	report.VerdictText = domain.VerdictFor(req.Persona, report.Score)
}

// Process adalah entry point dari watcher dan HTTP API: analyze, record,
// render, arsip, lalu audio. Record failure cuma dilog, tidak pernah fatal.
func (s *Service) Process(ctx context.Context, req domain.AnalysisRequest) domain.ScoreReport {
	report := s.Analyze(ctx, req)

	if s.History != nil {
		if err := s.History.Save(ctx, history.FromReport(&report)); err != nil {
			log.Printf("ratemycode: history save failed (non-fatal): %v", err)
		}
	}

	if s.Renderer != nil {
		s.Renderer.Render(&report)
	}

	if s.Archive != nil {
		go s.archive(report, req.SourceText)
	}

	// audio gate: only speak when enabled AND below the threshold, and
	// never wait on it
	if s.Speaker != nil && s.Opts.VoiceEnabled && report.Score < s.speakThreshold() {
		s.Speaker.Speak(report.VerdictText)
	}
	return report
}

func (s *Service) archive(report domain.ScoreReport, source string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if _, err := s.Archive.UploadReport(ctx, &report, source); err != nil {
		log.Printf("ratemycode: archive upload failed (non-fatal): %v", err)
	}
}

// Latest ambil N report terakhir dari history
func (s *Service) Latest(ctx context.Context, limit int) ([]*history.Record, error) {
	return s.History.Latest(ctx, limit)
}

// Get ambil 1 record by id
func (s *Service) Get(ctx context.Context, id int64) (*history.Record, error) {
	return s.History.Get(ctx, id)
}

// Summary rekap skor N hari terakhir
func (s *Service) Summary(ctx context.Context, sinceDays int) (history.Summary, error) {
	return s.History.Summary(ctx, sinceDays)
}

// Paginate halaman history
func (s *Service) Paginate(ctx context.Context, page, pageSize int) (history.PaginatedResult, error) {
	return s.History.Paginate(ctx, page, pageSize)
}

func (s *Service) now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock.Now()
}

func (s *Service) speakThreshold() int {
	if s.Opts.SpeakThreshold <= 0 {
		return 80
	}
	return s.Opts.SpeakThreshold
}
