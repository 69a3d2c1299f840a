package runtime

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/romandfa/pkg/domain"
)

// Engine drives an Automaton over input strings.
// It holds no per-run state, so one Engine serves concurrent callers.
type Engine struct {
	automaton        *domain.Automaton
	hooks            domain.LifecycleHooks
	logger           *slog.Logger
	deadShortCircuit bool
	batchConcurrency int
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets the structured logger. A nil logger is ignored.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithDeadShortCircuit stops consuming symbols once the dead state is reached.
// Verdicts are unchanged except that the path ends at the first dead step.
// Invalid characters after that point go unreported.
func WithDeadShortCircuit(enabled bool) EngineOption {
	return func(e *Engine) {
		e.deadShortCircuit = enabled
	}
}

// WithBatchConcurrency bounds the number of workers used by ValidateAll.
func WithBatchConcurrency(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.batchConcurrency = n
		}
	}
}

// NewEngine creates an engine bound to a.
func NewEngine(a *domain.Automaton, opts ...EngineOption) *Engine {
	e := &Engine{
		automaton:        a,
		logger:           slog.New(slog.NewJSONHandler(io.Discard, nil)),
		batchConcurrency: 8,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Automaton returns the automaton the engine runs.
func (e *Engine) Automaton() *domain.Automaton {
	return e.automaton
}

// Normalize applies the public input contract: surrounding whitespace is
// trimmed and the text is uppercased before any transition lookup.
func Normalize(input string) string {
	return strings.ToUpper(strings.TrimSpace(input))
}

// Validate runs the automaton over input and returns its verdict.
// Rejection is an ordinary result; Validate never fails.
func (e *Engine) Validate(ctx context.Context, input string) *domain.Verdict {
	normalized := Normalize(input)
	a := e.automaton

	state := a.Start()
	path := make([]domain.Step, 0, len(normalized))
	symbols := make([]domain.Symbol, 0, len(normalized))

	var verdict *domain.Verdict
	position := 0
	for _, r := range normalized {
		sym, ok := domain.ParseSymbol(r)
		if !ok || !a.HasSymbol(sym) {
			verdict = domain.Rejected(normalized, domain.InvalidCharacter(r, position), path)
			break
		}

		next, _ := a.Transition(state, sym)
		step := domain.Step{From: state, Symbol: sym, To: next}
		path = append(path, step)
		symbols = append(symbols, sym)
		e.emitStep(ctx, step, position)

		state = next
		position++

		if e.deadShortCircuit && a.IsDead(state) {
			break
		}
	}

	if verdict == nil {
		if a.IsAccepting(state) {
			verdict = domain.Accepted(normalized, Decode(symbols), path)
		} else {
			verdict = domain.Rejected(normalized, domain.NotAccepting(state), path)
		}
	}

	e.logVerdict(ctx, verdict)
	if e.hooks.OnVerdict != nil {
		e.hooks.OnVerdict(ctx, &domain.VerdictEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventVerdict},
			Verdict:   verdict,
		})
	}
	return verdict
}

func (e *Engine) emitStep(ctx context.Context, step domain.Step, position int) {
	if e.hooks.OnStep == nil {
		return
	}
	e.hooks.OnStep(ctx, &domain.StepEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventStep},
		Step:      step,
		Position:  position,
	})
}

func (e *Engine) logVerdict(ctx context.Context, v *domain.Verdict) {
	if v.Accepted {
		e.logger.DebugContext(ctx, "numeral accepted", "input", v.Input, "value", v.Value, "steps", len(v.Path))
		return
	}
	e.logger.DebugContext(ctx, "numeral rejected", "input", v.Input, "reason", v.Rejection.Kind, "steps", len(v.Path))
}
