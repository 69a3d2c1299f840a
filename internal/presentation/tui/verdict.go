package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/romandfa/pkg/domain"
	"github.com/muesli/termenv"
)

// FormatVerdict renders a one-line verdict, plus the state path when trace is set.
// Colors follow p; termenv.Ascii yields plain text.
func FormatVerdict(p termenv.Profile, v *domain.Verdict, trace bool) string {
	var sb strings.Builder

	input := fmt.Sprintf("%-10s", v.Input)
	if v.Accepted {
		mark := p.String("✔ valid").Foreground(p.Color("#22c55e")).Bold()
		fmt.Fprintf(&sb, "%s %s = %d", input, mark, v.Value)
	} else {
		mark := p.String("✘ invalid").Foreground(p.Color("#ef4444")).Bold()
		fmt.Fprintf(&sb, "%s %s (%s)", input, mark, v.Rejection)
	}

	if trace {
		sb.WriteString("\n")
		sb.WriteString(p.String("  path: " + FormatPath(v)).Faint().String())
	}
	return sb.String()
}

// FormatPath renders the visited states as "q0 -I-> q1 -V-> q4".
// An empty run renders as "(empty)".
func FormatPath(v *domain.Verdict) string {
	if len(v.Path) == 0 {
		return "(empty)"
	}
	var sb strings.Builder
	sb.WriteString(string(v.Path[0].From))
	for _, s := range v.Path {
		fmt.Fprintf(&sb, " -%s-> %s", s.Symbol, s.To)
	}
	return sb.String()
}
