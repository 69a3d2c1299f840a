/*
Package romandfa recognizes and decodes Roman numerals from 1 to 50 with a deterministic
finite automaton (DFA).

The automaton has explicit states, a total transition function completed once at
construction (every unspecified pair leads to an absorbing dead state) and a set of
accepting states. Validation drives the automaton over the input one symbol at a time
and yields a Verdict: accepted with the decimal value, or rejected with the reason
(an invalid character at a given position, or a run that ended in a non-accepting state).
Every verdict carries the path of transitions taken so that collaborators can render a trace.

# Key Features

  - Total transition function: no lookup ever falls back to a missing key.
  - Immutable automata: one Automaton is shared read-only by concurrent validations.
  - Values, not faults: rejection is an ordinary return value.
  - Hexagonal layout: storage (memory, Redis), HTTP, MCP and CLI are adapters around the core.

# Usage

	package main

	import (
		"context"
		"fmt"

		"github.com/aretw0/romandfa"
	)

	func main() {
		// One-shot validation against the built-in automaton.
		v := romandfa.Validate(romandfa.BuildAutomaton(), "xlix")
		fmt.Println(v.Accepted, v.Value) // true 49

		// Long-lived engine with options (logger, hooks, verdict store...).
		eng, err := romandfa.New()
		if err != nil {
			panic(err)
		}
		v = eng.Validate(context.Background(), "IIII")
		fmt.Println(v.Err()) // not accepting: run ended in state "q_dead"
	}
*/
package romandfa
