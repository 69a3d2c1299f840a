package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/romandfa/pkg/domain"
)

// Overlay contains run data to visualize on the graph.
type Overlay struct {
	Path []domain.Step
}

// Options tunes the generated chart.
type Options struct {
	// Overlay highlights the states and edges a run went through.
	Overlay *Overlay
	// HideDead drops the dead state and every edge into it.
	HideDead bool
}

type edge struct {
	from, to domain.StateID
	labels   []string
}

// GenerateMermaid produces a Mermaid flowchart for the completed automaton.
// It applies semantic styling:
// - Start: ((Circle))
// - Accepting: (((Double circle)))
// - Default: [Rectangle]
// Edges sharing endpoints are merged into one arrow with a combined label.
func GenerateMermaid(a *domain.Automaton, opts Options) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	for _, s := range a.States() {
		if opts.HideDead && a.IsDead(s) {
			continue
		}
		id := sanitizeMermaidID(s)
		opener, closer := "[", "]"
		switch {
		case a.IsAccepting(s):
			opener, closer = "(((", ")))"
		case s == a.Start():
			opener, closer = "((", "))"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", id, opener, s, closer)
	}

	edges := mergeEdges(a, opts.HideDead)
	for _, e := range edges {
		fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s\n", sanitizeMermaidID(e.from), strings.Join(e.labels, ","), sanitizeMermaidID(e.to))
	}

	sb.WriteString("\n    classDef dead fill:#ffcdd2,stroke:#c62828,color:#000;\n")
	sb.WriteString("    classDef accepting fill:#c8e6c9,stroke:#2e7d32,color:#000;\n")
	sb.WriteString("    classDef state fill:#bbdefb,stroke:#1565c0,color:#000;\n")
	for _, s := range a.States() {
		class := "state"
		switch {
		case a.IsDead(s):
			if opts.HideDead {
				continue
			}
			class = "dead"
		case a.IsAccepting(s):
			class = "accepting"
		}
		fmt.Fprintf(&sb, "    class %s %s;\n", sanitizeMermaidID(s), class)
	}

	if opts.Overlay != nil && len(opts.Overlay.Path) > 0 {
		writeOverlay(&sb, edges, opts.Overlay.Path)
	}

	return sb.String()
}

func mergeEdges(a *domain.Automaton, hideDead bool) []*edge {
	var edges []*edge
	index := make(map[[2]domain.StateID]*edge)
	for _, step := range a.Edges() {
		if hideDead && a.IsDead(step.To) {
			continue
		}
		key := [2]domain.StateID{step.From, step.To}
		e, ok := index[key]
		if !ok {
			e = &edge{from: step.From, to: step.To}
			index[key] = e
			edges = append(edges, e)
		}
		e.labels = append(e.labels, step.Symbol.String())
	}
	return edges
}

func writeOverlay(sb *strings.Builder, edges []*edge, path []domain.Step) {
	sb.WriteString("\n    %% Overlay Styles\n")
	sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
	sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

	visited := make(map[domain.StateID]bool)
	taken := make(map[[2]domain.StateID]bool)
	visit := func(s domain.StateID) {
		if !visited[s] {
			visited[s] = true
			fmt.Fprintf(sb, "    class %s visited;\n", sanitizeMermaidID(s))
		}
	}
	for _, step := range path {
		visit(step.From)
		visit(step.To)
		taken[[2]domain.StateID{step.From, step.To}] = true
	}
	fmt.Fprintf(sb, "    class %s current;\n", sanitizeMermaidID(path[len(path)-1].To))

	// linkStyle addresses edges by their declaration order.
	for i, e := range edges {
		if taken[[2]domain.StateID{e.from, e.to}] {
			fmt.Fprintf(sb, "    linkStyle %d stroke:#01579b,stroke-width:3px;\n", i)
		}
	}
}

func sanitizeMermaidID(id domain.StateID) string {
	s := strings.ReplaceAll(string(id), ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
