package ports

import (
	"context"

	"github.com/aretw0/romandfa/pkg/domain"
)

// Validator is the interface adapters (HTTP, MCP) use to reach the engine.
type Validator interface {
	// Validate runs the automaton over input. Rejection is reported in the verdict.
	Validate(ctx context.Context, input string) *domain.Verdict

	// ValidateAll validates a batch, preserving input order.
	ValidateAll(ctx context.Context, inputs []string) ([]*domain.Verdict, error)

	// Inspect returns the automaton currently in use.
	Inspect() *domain.Automaton
}
