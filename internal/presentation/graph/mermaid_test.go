package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/romandfa/internal/presentation/graph"
	"github.com/aretw0/romandfa/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roman(t *testing.T) *domain.Automaton {
	t.Helper()
	a, err := domain.NewAutomaton(domain.RomanDefinition())
	require.NoError(t, err)
	return a
}

func TestGenerateMermaid(t *testing.T) {
	got := graph.GenerateMermaid(roman(t), graph.Options{})

	tests := []struct {
		name     string
		contains []string
	}{
		{name: "Header", contains: []string{"graph LR\n"}},
		{name: "Start Node Shape", contains: []string{`q0(("q0"))`}},
		{name: "Accepting Node Shape", contains: []string{`q1((("q1")))`, `q22((("q22")))`}},
		{name: "Dead Node Shape", contains: []string{`q_dead["q_dead"]`}},
		{name: "Single Edge", contains: []string{`q0 -- "I" --> q1`, `q0 -- "L" --> q14`}},
		{name: "Merged Labels", contains: []string{`q15 -- "V,X" --> q18`, `q14 -- "I,V,X,L" --> q_dead`}},
		{name: "Classes", contains: []string{"class q_dead dead;", "class q9 accepting;", "class q0 state;"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, want := range tt.contains {
				assert.Contains(t, got, want)
			}
		})
	}

	assert.NotContains(t, got, "Overlay Styles")
}

func TestGenerateMermaid_HideDead(t *testing.T) {
	got := graph.GenerateMermaid(roman(t), graph.Options{HideDead: true})

	assert.NotContains(t, got, "q_dead")
	assert.Contains(t, got, `q16 -- "X" --> q18`)
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	path := []domain.Step{
		{From: "q0", Symbol: domain.SymbolI, To: "q1"},
		{From: "q1", Symbol: domain.SymbolV, To: "q4"},
	}
	got := graph.GenerateMermaid(roman(t), graph.Options{Overlay: &graph.Overlay{Path: path}})

	assert.Contains(t, got, "class q0 visited;")
	assert.Contains(t, got, "class q1 visited;")
	assert.Contains(t, got, "class q4 current;")
	assert.Equal(t, 1, strings.Count(got, "class q1 visited;"))
	// q0 -I-> q1 is the very first edge declared.
	assert.Contains(t, got, "linkStyle 0 stroke")
	assert.Equal(t, 2, strings.Count(got, "linkStyle"))
}

func TestGenerateMermaid_Sanitization(t *testing.T) {
	a, err := domain.NewAutomaton(domain.Definition{
		States:      []domain.StateID{"start-1", "ok.final", "sink"},
		Start:       "start-1",
		Dead:        "sink",
		Accepting:   []domain.StateID{"ok.final"},
		Transitions: map[domain.StateID]map[domain.Symbol]domain.StateID{"start-1": {domain.SymbolI: "ok.final"}},
	})
	require.NoError(t, err)

	got := graph.GenerateMermaid(a, graph.Options{})
	assert.Contains(t, got, `start_1(("start-1"))`)
	assert.Contains(t, got, `ok_final((("ok.final")))`)
	assert.Contains(t, got, `start_1 -- "I" --> ok_final`)
}
