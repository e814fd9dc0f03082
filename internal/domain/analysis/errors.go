package analysis

import "errors"

// ErrQuotaExceeded indicates the AI provider returned a quota/limit error (HTTP 429 or similar).
var ErrQuotaExceeded = errors.New("ai quota exceeded")

// ParseError means the source text could not be parsed/tokenized at all.
// The orchestrator maps it to score 0 with a syntax-error verdict; it is
// never surfaced as a failure of Analyze itself.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return "parse failure: " + e.Reason
}

// ReviewFailReason classifies why the remote review path gave up.
type ReviewFailReason string

const (
	ReviewFailNetwork ReviewFailReason = "network"
	ReviewFailTimeout ReviewFailReason = "timeout"
	ReviewFailQuota   ReviewFailReason = "quota"
	ReviewFailInvalid ReviewFailReason = "invalid_response"
)

// ReviewError wraps every failure of the optional LLM path. Selalu memicu
// fallback ke local scorer, tidak pernah sampai ke end user sebagai error.
type ReviewError struct {
	Reason ReviewFailReason
	Err    error
}

func (e *ReviewError) Error() string {
	if e.Err == nil {
		return "remote review failed: " + string(e.Reason)
	}
	return "remote review failed (" + string(e.Reason) + "): " + e.Err.Error()
}

func (e *ReviewError) Unwrap() error { return e.Err }
