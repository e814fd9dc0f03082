package analysis

import "context"

// Reviewer port (interface untuk jalur review LLM).
// One best-effort attempt per call; retry policy, if any, belongs to the
// orchestrator. A nil error means the returned review passed validation.
type Reviewer interface {
	AttemptReview(ctx context.Context, source string) (*RemoteReview, error)
}

// ArchiveStore port (interface untuk penyimpanan arsip report)
type ArchiveStore interface {
	UploadReport(ctx context.Context, report *ScoreReport, source string) (string, error)
}

// Speaker hands verdict text to the audio layer. Implementations must never
// block the analysis path and must swallow their own failures.
type Speaker interface {
	Speak(text string)
}

// Renderer port untuk output console
type Renderer interface {
	Render(report *ScoreReport)
}
