package domain

import "strconv"

const (
	// RomanStart is the start state of the Roman numeral automaton.
	RomanStart StateID = "q0"
	// RomanDead is the dead state of the Roman numeral automaton.
	RomanDead StateID = "q_dead"
)

// RomanDefinition returns the authored table recognizing the numerals 1 to 50.
// A fresh value is returned on each call so callers may alter it for fixtures.
func RomanDefinition() Definition {
	states := make([]StateID, 0, 24)
	accepting := make([]StateID, 0, 22)
	states = append(states, RomanStart)
	for i := 1; i <= 22; i++ {
		s := StateID("q" + strconv.Itoa(i))
		states = append(states, s)
		accepting = append(accepting, s)
	}
	states = append(states, RomanDead)

	return Definition{
		Name:      "roman",
		States:    states,
		Alphabet:  []Symbol{SymbolI, SymbolV, SymbolX, SymbolL},
		Start:     RomanStart,
		Dead:      RomanDead,
		Accepting: accepting,
		Transitions: map[StateID]map[Symbol]StateID{
			"q0":  {SymbolI: "q1", SymbolV: "q5", SymbolX: "q10", SymbolL: "q14"},
			"q1":  {SymbolI: "q2", SymbolV: "q4", SymbolX: "q9"},
			"q2":  {SymbolI: "q3"},
			"q5":  {SymbolI: "q6"},
			"q6":  {SymbolI: "q7"},
			"q7":  {SymbolI: "q8"},
			"q10": {SymbolX: "q11", SymbolL: "q13", SymbolI: "q15", SymbolV: "q19"},
			"q11": {SymbolX: "q12", SymbolI: "q15", SymbolV: "q19"},
			"q12": {SymbolI: "q15", SymbolV: "q19"},
			"q13": {SymbolI: "q15", SymbolV: "q19"},
			"q15": {SymbolI: "q16", SymbolV: "q18", SymbolX: "q18"},
			"q16": {SymbolI: "q17", SymbolX: "q18"},
			"q19": {SymbolI: "q20"},
			"q20": {SymbolI: "q21"},
			"q21": {SymbolI: "q22"},
		},
	}
}

