package domain

// StateID identifies a state of the automaton. It carries no meaning beyond identity.
type StateID string

// Step is a single (from, symbol, to) transition. A run records the steps it
// consumed; the automaton exports its completed table as steps too.
type Step struct {
	From   StateID `json:"from"`
	Symbol Symbol  `json:"symbol"`
	To     StateID `json:"to"`
}
