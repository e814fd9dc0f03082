package render

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	domain "github.com/bryanwahyu/ratemycode/internal/domain/analysis"
)

// Console renders one ScoreReport as a small two-column table, verdict
// colored by score bracket.
type Console struct {
	Out           io.Writer
	MaxComplexity int // depth at which the depth row is flagged as high
}

func NewConsole(maxComplexity int) *Console {
	if maxComplexity <= 0 {
		maxComplexity = 3
	}
	return &Console{Out: os.Stdout, MaxComplexity: maxComplexity}
}

func (c *Console) Render(r *domain.ScoreReport) {
	out := c.Out
	if out == nil {
		out = os.Stdout
	}

	title := color.New(color.FgCyan, color.Bold)
	title.Fprintf(out, "RateMyCode: %s\n", filepath.Base(r.FilePath))
	fmt.Fprintln(out, strings.Repeat("-", 48))

	if r.ParseFailed {
		color.New(color.FgRed, color.Bold).Fprintln(out, "  Syntax error: file could not be analyzed")
	} else if r.SourceOfTruth == domain.SourceRemote {
		fmt.Fprintf(out, "  %-16s %s\n", "Method", "remote (LLM review)")
	} else {
		fmt.Fprintf(out, "  %-16s %s\n", "Method", "local (nesting depth)")
		if r.MaxDepth != nil {
			marker := "acceptable"
			if *r.MaxDepth >= c.MaxComplexity {
				marker = "high"
			}
			fmt.Fprintf(out, "  %-16s %d (%s)\n", "Max depth", *r.MaxDepth, marker)
		}
	}

	fmt.Fprintf(out, "  %-16s %d/100\n", "Quality score", r.Score)
	fmt.Fprintf(out, "  %-16s ", "Verdict")
	verdictColor(r.Score, r.ParseFailed).Fprintln(out, r.VerdictText)

	for _, issue := range r.Issues {
		fmt.Fprintf(out, "    - %s\n", issue)
	}
	fmt.Fprintln(out)
}

func verdictColor(score int, parseFailed bool) *color.Color {
	if parseFailed {
		return color.New(color.FgRed, color.Bold)
	}
	switch domain.BracketFor(score) {
	case domain.BracketGood:
		return color.New(color.FgGreen)
	case domain.BracketMediocre:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}
