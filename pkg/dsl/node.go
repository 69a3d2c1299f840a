package dsl

import "github.com/aretw0/romandfa/pkg/domain"

// StateBuilder provides a fluent API for configuring a state.
type StateBuilder struct {
	id      domain.StateID
	builder *Builder
}

// Start marks the state as the start state.
func (s *StateBuilder) Start() *StateBuilder {
	s.builder.def.Start = s.id
	return s
}

// Dead marks the state as the absorbing dead state.
func (s *StateBuilder) Dead() *StateBuilder {
	s.builder.def.Dead = s.id
	return s
}

// Accept marks the state as accepting.
func (s *StateBuilder) Accept() *StateBuilder {
	for _, a := range s.builder.def.Accepting {
		if a == s.id {
			return s
		}
	}
	s.builder.def.Accepting = append(s.builder.def.Accepting, s.id)
	return s
}

// On adds a transition on sym to target. A later call for the same symbol replaces the earlier one.
// Pairs left out are routed to the dead state when the automaton is built.
func (s *StateBuilder) On(sym domain.Symbol, target domain.StateID) *StateBuilder {
	row := s.builder.def.Transitions[s.id]
	if row == nil {
		row = make(map[domain.Symbol]domain.StateID)
		s.builder.def.Transitions[s.id] = row
	}
	row[sym] = target
	return s
}

// ID returns the state identifier.
func (s *StateBuilder) ID() domain.StateID {
	return s.id
}
