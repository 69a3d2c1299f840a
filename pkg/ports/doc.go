/*
Package ports defines the driven ports (interfaces) of the romandfa engine.

These interfaces decouple the core validator from external implementations, so the
same engine can be served over HTTP, MCP or a CLI and can persist verdicts to any
backend.

# Key Interfaces

  - Validator: runs the automaton over input and exposes it for introspection.
  - VerdictStore: persists and loads validation Records.
*/
package ports
