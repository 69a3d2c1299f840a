package dsl

import (
	"fmt"

	"github.com/aretw0/romandfa/pkg/domain"
)

// Builder manages the automaton construction.
type Builder struct {
	def   domain.Definition
	nodes map[domain.StateID]*StateBuilder
}

// New creates a new automaton builder.
func New(name string) *Builder {
	return &Builder{
		def: domain.Definition{
			Name:        name,
			Transitions: make(map[domain.StateID]map[domain.Symbol]domain.StateID),
		},
		nodes: make(map[domain.StateID]*StateBuilder),
	}
}

// Alphabet restricts the symbols the automaton reads. Without it the full numeral alphabet is used.
func (b *Builder) Alphabet(symbols ...domain.Symbol) *Builder {
	b.def.Alphabet = append([]domain.Symbol(nil), symbols...)
	return b
}

// Add declares a state. States are declared in call order.
// If the state already exists, it returns the existing builder.
func (b *Builder) Add(id domain.StateID) *StateBuilder {
	if sb, ok := b.nodes[id]; ok {
		return sb
	}
	sb := &StateBuilder{id: id, builder: b}
	b.nodes[id] = sb
	b.def.States = append(b.def.States, id)
	return sb
}

// Definition returns the authored definition built so far.
func (b *Builder) Definition() domain.Definition {
	def := b.def
	def.States = append([]domain.StateID(nil), b.def.States...)
	def.Accepting = append([]domain.StateID(nil), b.def.Accepting...)
	def.Transitions = make(map[domain.StateID]map[domain.Symbol]domain.StateID, len(b.def.Transitions))
	for from, row := range b.def.Transitions {
		cp := make(map[domain.Symbol]domain.StateID, len(row))
		for sym, to := range row {
			cp[sym] = to
		}
		def.Transitions[from] = cp
	}
	return def
}

// Build validates the definition and completes it into an Automaton.
func (b *Builder) Build() (*domain.Automaton, error) {
	a, err := domain.NewAutomaton(b.Definition())
	if err != nil {
		return nil, fmt.Errorf("failed to build automaton: %w", err)
	}
	return a, nil
}
