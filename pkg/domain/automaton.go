package domain

import "fmt"

// Definition is the authored form of an automaton. Transitions may be partial:
// every (state, symbol) pair left out is routed to Dead when the Automaton is built.
type Definition struct {
	Name        string                         `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`
	States      []StateID                      `json:"states" yaml:"states" mapstructure:"states"`
	Alphabet    []Symbol                       `json:"alphabet,omitempty" yaml:"alphabet,omitempty" mapstructure:"alphabet"`
	Start       StateID                        `json:"start" yaml:"start" mapstructure:"start"`
	Dead        StateID                        `json:"dead" yaml:"dead" mapstructure:"dead"`
	Accepting   []StateID                      `json:"accepting" yaml:"accepting" mapstructure:"accepting"`
	Transitions map[StateID]map[Symbol]StateID `json:"transitions" yaml:"transitions" mapstructure:"transitions"`
}

// Automaton is an immutable DFA with a total transition function.
// It is safe for concurrent use: no method mutates it after NewAutomaton returns.
type Automaton struct {
	name      string
	states    []StateID
	stateIdx  map[StateID]int
	symbols   []Symbol
	symbolIdx map[Symbol]int
	start     int
	dead      int
	accepting []bool
	// table[state][symbol] holds the next state index for every pair.
	table [][]int
}

// NewAutomaton validates def and completes its transition table.
// Completion runs once over all states and all symbols, so lookups never fall back.
func NewAutomaton(def Definition) (*Automaton, error) {
	derr := &DefinitionError{Name: def.Name}

	a := &Automaton{
		name:      def.Name,
		stateIdx:  make(map[StateID]int, len(def.States)),
		symbolIdx: make(map[Symbol]int, len(Alphabet)),
	}

	if len(def.States) == 0 {
		derr.addf("no states declared")
	}
	for _, s := range def.States {
		if s == "" {
			derr.addf("empty state id")
			continue
		}
		if _, dup := a.stateIdx[s]; dup {
			derr.addf("duplicate state %q", s)
			continue
		}
		a.stateIdx[s] = len(a.states)
		a.states = append(a.states, s)
	}

	alphabet := def.Alphabet
	if len(alphabet) == 0 {
		alphabet = Alphabet
	}
	for _, sym := range alphabet {
		if _, ok := ParseSymbol(rune(sym)); !ok {
			derr.addf("symbol %q is outside the alphabet", rune(sym))
			continue
		}
		if _, dup := a.symbolIdx[sym]; dup {
			derr.addf("duplicate symbol %q", sym)
			continue
		}
		a.symbolIdx[sym] = len(a.symbols)
		a.symbols = append(a.symbols, sym)
	}

	var ok bool
	if a.start, ok = a.stateIdx[def.Start]; !ok {
		derr.addf("start state %q not declared", def.Start)
	}
	if a.dead, ok = a.stateIdx[def.Dead]; !ok {
		derr.addf("dead state %q not declared", def.Dead)
	}

	a.accepting = make([]bool, len(a.states))
	for _, s := range def.Accepting {
		idx, ok := a.stateIdx[s]
		if !ok {
			derr.addf("accepting state %q not declared", s)
			continue
		}
		if s == def.Dead {
			derr.addf("dead state %q cannot be accepting", s)
			continue
		}
		a.accepting[idx] = true
	}

	for from, row := range def.Transitions {
		if _, ok := a.stateIdx[from]; !ok {
			derr.addf("transition from undeclared state %q", from)
		}
		for sym, to := range row {
			if _, ok := a.symbolIdx[sym]; !ok {
				derr.addf("transition %q on %q uses a symbol outside the alphabet", from, rune(sym))
			}
			if _, ok := a.stateIdx[to]; !ok {
				derr.addf("transition %q on %s targets undeclared state %q", from, sym, to)
			}
			if from == def.Dead && to != def.Dead {
				derr.addf("dead state %q must be absorbing, found %s -> %q", from, sym, to)
			}
		}
	}

	if len(derr.Problems) > 0 {
		return nil, derr
	}

	a.table = make([][]int, len(a.states))
	for i := range a.table {
		row := make([]int, len(a.symbols))
		for j := range row {
			row[j] = a.dead
		}
		a.table[i] = row
	}
	for from, row := range def.Transitions {
		fi := a.stateIdx[from]
		if fi == a.dead {
			continue
		}
		for sym, to := range row {
			a.table[fi][a.symbolIdx[sym]] = a.stateIdx[to]
		}
	}

	return a, nil
}

// MustNewAutomaton is like NewAutomaton but panics on malformed data.
func MustNewAutomaton(def Definition) *Automaton {
	a, err := NewAutomaton(def)
	if err != nil {
		panic(err)
	}
	return a
}

// Name returns the definition name, if any.
func (a *Automaton) Name() string { return a.name }

// Start returns the start state.
func (a *Automaton) Start() StateID { return a.states[a.start] }

// Dead returns the absorbing, non-accepting state.
func (a *Automaton) Dead() StateID { return a.states[a.dead] }

// States returns all states in declaration order.
func (a *Automaton) States() []StateID {
	return append([]StateID(nil), a.states...)
}

// Alphabet returns the automaton's symbols in declaration order.
func (a *Automaton) Alphabet() []Symbol {
	return append([]Symbol(nil), a.symbols...)
}

// HasSymbol reports whether sym belongs to the automaton's alphabet.
func (a *Automaton) HasSymbol(sym Symbol) bool {
	_, ok := a.symbolIdx[sym]
	return ok
}

// IsAccepting reports membership in the accepting set.
func (a *Automaton) IsAccepting(s StateID) bool {
	idx, ok := a.stateIdx[s]
	return ok && a.accepting[idx]
}

// IsDead reports whether s is the dead state.
func (a *Automaton) IsDead(s StateID) bool {
	idx, ok := a.stateIdx[s]
	return ok && idx == a.dead
}

// Transition returns the next state for (from, sym). The second result is false
// only when from or sym do not belong to this automaton.
func (a *Automaton) Transition(from StateID, sym Symbol) (StateID, bool) {
	fi, ok := a.stateIdx[from]
	if !ok {
		return "", false
	}
	si, ok := a.symbolIdx[sym]
	if !ok {
		return "", false
	}
	return a.states[a.table[fi][si]], true
}

// Edges lists every completed transition, ordered by state then symbol.
func (a *Automaton) Edges() []Step {
	edges := make([]Step, 0, len(a.states)*len(a.symbols))
	for fi, row := range a.table {
		for si, ti := range row {
			edges = append(edges, Step{From: a.states[fi], Symbol: a.symbols[si], To: a.states[ti]})
		}
	}
	return edges
}

// Definition exports the automaton with its completed transition table.
func (a *Automaton) Definition() Definition {
	def := Definition{
		Name:        a.name,
		States:      a.States(),
		Alphabet:    a.Alphabet(),
		Start:       a.Start(),
		Dead:        a.Dead(),
		Transitions: make(map[StateID]map[Symbol]StateID, len(a.states)),
	}
	for i, s := range a.states {
		if a.accepting[i] {
			def.Accepting = append(def.Accepting, s)
		}
		row := make(map[Symbol]StateID, len(a.symbols))
		for si, ti := range a.table[i] {
			row[a.symbols[si]] = a.states[ti]
		}
		def.Transitions[s] = row
	}
	return def
}

func (a *Automaton) String() string {
	name := a.name
	if name == "" {
		name = "automaton"
	}
	return fmt.Sprintf("%s(%d states, %d symbols, start=%s, dead=%s)", name, len(a.states), len(a.symbols), a.Start(), a.Dead())
}
