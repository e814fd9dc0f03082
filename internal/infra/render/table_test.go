package render

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	domain "github.com/bryanwahyu/ratemycode/internal/domain/analysis"
)

func renderToString(t *testing.T, r *domain.ScoreReport) string {
	t.Helper()
	old := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = old })

	var buf bytes.Buffer
	c := NewConsole(3)
	c.Out = &buf
	c.Render(r)
	return buf.String()
}

func intPtr(v int) *int { return &v }

func TestRenderLocalReport(t *testing.T) {
	out := renderToString(t, &domain.ScoreReport{
		FilePath:      "/src/sample.py",
		Score:         60,
		SourceOfTruth: domain.SourceLocal,
		MaxDepth:      intPtr(2),
		VerdictText:   "It runs, but it smells like mediocrity.",
	})

	assert.Contains(t, out, "RateMyCode: sample.py")
	assert.Contains(t, out, "local (nesting depth)")
	assert.Contains(t, out, "Max depth")
	assert.Contains(t, out, "2 (acceptable)")
	assert.Contains(t, out, "60/100")
	assert.Contains(t, out, "It runs, but it smells like mediocrity.")
}

func TestRenderFlagsHighDepth(t *testing.T) {
	out := renderToString(t, &domain.ScoreReport{
		FilePath:      "/src/deep.py",
		Score:         20,
		SourceOfTruth: domain.SourceLocal,
		MaxDepth:      intPtr(4),
		VerdictText:   "refactor",
	})
	assert.Contains(t, out, "4 (high)")
}

func TestRenderRemoteReport(t *testing.T) {
	out := renderToString(t, &domain.ScoreReport{
		FilePath:      "/src/sample.py",
		Score:         45,
		SourceOfTruth: domain.SourceRemote,
		VerdictText:   "Too clever by half.",
		Issues:        []string{"deep nesting", "unused import"},
	})

	assert.Contains(t, out, "remote (LLM review)")
	assert.NotContains(t, out, "Max depth")
	assert.Contains(t, out, "45/100")
	assert.Contains(t, out, "- deep nesting")
	assert.Contains(t, out, "- unused import")
}

func TestRenderParseFailure(t *testing.T) {
	out := renderToString(t, &domain.ScoreReport{
		FilePath:      "/src/broken.py",
		Score:         0,
		SourceOfTruth: domain.SourceLocal,
		ParseFailed:   true,
		VerdictText:   "The file does not parse. Fix the syntax errors before review.",
	})

	assert.Contains(t, out, "Syntax error: file could not be analyzed")
	assert.Contains(t, out, "0/100")
	assert.NotContains(t, out, "Max depth")
}

func TestNewConsoleDefaultThreshold(t *testing.T) {
	assert.Equal(t, 3, NewConsole(0).MaxComplexity)
	assert.Equal(t, 5, NewConsole(5).MaxComplexity)
}
