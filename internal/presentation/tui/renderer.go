package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/romandfa/pkg/domain"
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
// Without options it detects a light or dark background.
func NewRenderer(opts ...glamour.TermRendererOption) func(string) (string, error) {
	if len(opts) == 0 {
		opts = []glamour.TermRendererOption{glamour.WithAutoStyle()}
	}
	r, err := glamour.NewTermRenderer(opts...)

	return func(markdown string) (string, error) {
		if err != nil {
			return markdown, err
		}
		return r.Render(markdown)
	}
}

// ReportMarkdown builds a markdown summary table of verdicts.
func ReportMarkdown(verdicts []*domain.Verdict) string {
	var sb strings.Builder
	accepted := 0
	for _, v := range verdicts {
		if v.Accepted {
			accepted++
		}
	}

	sb.WriteString("# Numeral report\n\n")
	fmt.Fprintf(&sb, "%d checked, **%d accepted**, %d rejected.\n\n", len(verdicts), accepted, len(verdicts)-accepted)
	sb.WriteString("| Input | Result | Value | Final state |\n")
	sb.WriteString("|---|---|---|---|\n")
	for _, v := range verdicts {
		final := "-"
		if n := len(v.Path); n > 0 {
			final = string(v.Path[n-1].To)
		}
		if v.Accepted {
			fmt.Fprintf(&sb, "| `%s` | accepted | %d | %s |\n", escapeCell(v.Input), v.Value, final)
		} else {
			fmt.Fprintf(&sb, "| `%s` | %s | - | %s |\n", escapeCell(v.Input), escapeCell(v.Rejection.Error()), final)
		}
	}
	return sb.String()
}

// RenderReport renders the verdict report with render, typically from NewRenderer.
func RenderReport(render func(string) (string, error), verdicts []*domain.Verdict) (string, error) {
	return render(ReportMarkdown(verdicts))
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
