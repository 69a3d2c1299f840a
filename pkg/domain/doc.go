/*
Package domain contains the core domain models of the romandfa engine.

It defines the deterministic finite automaton itself (states, alphabet, the total
transition function and the accepting set) together with the values produced by a
validation run. This package is kept pure and free of I/O, persistence or logging,
following the Hexagonal Architecture used by the rest of the module.

# Key Entities

  - Symbol: one letter of the closed alphabet {I, V, X, L}.
  - Definition: the authored, partial transition table as data.
  - Automaton: the immutable, completed DFA built once from a Definition.
  - Step: a single (from, symbol, to) triple consumed during a run.
  - Verdict: the outcome of a run, accepted with a decimal value or rejected with a reason.
  - Record: a Verdict stamped with an identifier for persistence adapters.
*/
package domain
