package domain

import "fmt"

// RejectionKind classifies why a run was rejected.
type RejectionKind string

const (
	// RejectInvalidCharacter: the input held a symbol outside the alphabet.
	RejectInvalidCharacter RejectionKind = "invalid_character"
	// RejectNotAccepting: every symbol was valid but the run ended in a non-accepting state.
	RejectNotAccepting RejectionKind = "not_accepting"
)

// Rejection describes a failed run. It is an ordinary value, not a fault,
// and implements error so callers can use errors.Is against the sentinels.
type Rejection struct {
	Kind RejectionKind `json:"kind"`
	// Char and Position are set for RejectInvalidCharacter. Position is the
	// zero-based rune offset in the normalized input.
	Char     string `json:"char,omitempty"`
	Position int    `json:"position"`
	// State is the final state for RejectNotAccepting.
	State StateID `json:"state,omitempty"`
}

// InvalidCharacter builds the rejection for an out-of-alphabet symbol.
func InvalidCharacter(char rune, position int) *Rejection {
	return &Rejection{Kind: RejectInvalidCharacter, Char: string(char), Position: position}
}

// NotAccepting builds the rejection for a run ending in a non-accepting state.
func NotAccepting(final StateID) *Rejection {
	return &Rejection{Kind: RejectNotAccepting, State: final}
}

func (r *Rejection) Error() string {
	switch r.Kind {
	case RejectInvalidCharacter:
		return fmt.Sprintf("%s %q at position %d", ErrInvalidCharacter, r.Char, r.Position)
	case RejectNotAccepting:
		return fmt.Sprintf("%s: run ended in state %q", ErrNotAccepting, r.State)
	}
	return fmt.Sprintf("rejected: %s", r.Kind)
}

func (r *Rejection) Unwrap() error {
	switch r.Kind {
	case RejectInvalidCharacter:
		return ErrInvalidCharacter
	case RejectNotAccepting:
		return ErrNotAccepting
	}
	return nil
}

// Verdict is the outcome of validating one input string.
type Verdict struct {
	// Input is the normalized string the automaton consumed.
	Input     string     `json:"input"`
	Accepted  bool       `json:"accepted"`
	Value     int        `json:"value,omitempty"`
	Path      []Step     `json:"path"`
	Rejection *Rejection `json:"rejection,omitempty"`
}

// Accepted builds an accepting verdict.
func Accepted(input string, value int, path []Step) *Verdict {
	return &Verdict{Input: input, Accepted: true, Value: value, Path: path}
}

// Rejected builds a rejecting verdict carrying the path consumed so far.
func Rejected(input string, reason *Rejection, path []Step) *Verdict {
	return &Verdict{Input: input, Rejection: reason, Path: path}
}

// Err returns the rejection as an error, or nil when the verdict is accepted.
func (v *Verdict) Err() error {
	if v.Accepted || v.Rejection == nil {
		return nil
	}
	return v.Rejection
}

// Visited returns the states touched by the path, starting with the origin.
// An empty path yields no states.
func (v *Verdict) Visited() []StateID {
	if len(v.Path) == 0 {
		return nil
	}
	states := make([]StateID, 0, len(v.Path)+1)
	states = append(states, v.Path[0].From)
	for _, s := range v.Path {
		states = append(states, s.To)
	}
	return states
}

// Clone returns a deep copy.
func (v *Verdict) Clone() *Verdict {
	if v == nil {
		return nil
	}
	c := *v
	c.Path = append([]Step(nil), v.Path...)
	if v.Rejection != nil {
		r := *v.Rejection
		c.Rejection = &r
	}
	return &c
}

func (v *Verdict) String() string {
	if v.Accepted {
		return fmt.Sprintf("%q accepted (decimal %d)", v.Input, v.Value)
	}
	return fmt.Sprintf("%q rejected: %v", v.Input, v.Rejection)
}
