package romandfa

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/aretw0/romandfa/internal/runtime"
	"github.com/aretw0/romandfa/pkg/domain"
	"github.com/aretw0/romandfa/pkg/ports"
	"github.com/google/uuid"
)

// Engine is the high-level entry point for the romandfa library.
// It wraps the internal runtime and provides a simplified API for consumers.
type Engine struct {
	runtime     atomic.Pointer[runtime.Engine]
	automaton   *domain.Automaton
	definition  *domain.Definition
	store       ports.VerdictStore
	hooks       domain.LifecycleHooks
	logger      *slog.Logger
	runtimeOpts []runtime.EngineOption
	newID       func() string
	now         func() time.Time
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithAutomaton runs the engine over an already built automaton.
func WithAutomaton(a *domain.Automaton) Option {
	return func(e *Engine) {
		e.automaton = a
	}
}

// WithDefinition builds the automaton from def when the engine is created.
func WithDefinition(def domain.Definition) Option {
	return func(e *Engine) {
		e.definition = &def
	}
}

// WithStore persists verdicts produced by Submit.
func WithStore(s ports.VerdictStore) Option {
	return func(e *Engine) {
		e.store = s
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithDeadShortCircuit stops a run as soon as it reaches the dead state.
func WithDeadShortCircuit(enabled bool) Option {
	return func(e *Engine) {
		e.runtimeOpts = append(e.runtimeOpts, runtime.WithDeadShortCircuit(enabled))
	}
}

// WithBatchConcurrency bounds the workers used by ValidateAll.
func WithBatchConcurrency(n int) Option {
	return func(e *Engine) {
		e.runtimeOpts = append(e.runtimeOpts, runtime.WithBatchConcurrency(n))
	}
}

// WithIDGenerator overrides how Submit names records (default: UUIDv4).
func WithIDGenerator(fn func() string) Option {
	return func(e *Engine) {
		e.newID = fn
	}
}

// WithClock overrides the timestamp source used by Submit.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// New initializes a new Engine.
// Without WithAutomaton or WithDefinition, it uses the built-in Roman numeral automaton.
func New(opts ...Option) (*Engine, error) {
	eng := &Engine{
		newID: func() string { return uuid.NewString() },
		now:   time.Now,
	}

	for _, opt := range opts {
		opt(eng)
	}

	if eng.automaton == nil {
		def := domain.RomanDefinition()
		if eng.definition != nil {
			def = *eng.definition
		}
		a, err := domain.NewAutomaton(def)
		if err != nil {
			return nil, fmt.Errorf("failed to build automaton: %w", err)
		}
		eng.automaton = a
	}

	// Ensure logger is initialized (so we don't pass nil to runtime)
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	eng.install(eng.automaton)
	return eng, nil
}

func (e *Engine) install(a *domain.Automaton) {
	logger := e.logger
	if name := a.Name(); name != "" {
		logger = logger.With("automaton", name)
	}
	opts := []runtime.EngineOption{
		runtime.WithLifecycleHooks(e.hooks),
		runtime.WithLogger(logger),
	}
	opts = append(opts, e.runtimeOpts...)
	e.runtime.Store(runtime.NewEngine(a, opts...))
}

// Validate drives the automaton over input and returns the verdict.
func (e *Engine) Validate(ctx context.Context, input string) *domain.Verdict {
	return e.runtime.Load().Validate(ctx, input)
}

// ValidateAll validates inputs concurrently, preserving their order.
func (e *Engine) ValidateAll(ctx context.Context, inputs []string) ([]*domain.Verdict, error) {
	return e.runtime.Load().ValidateAll(ctx, inputs)
}

// Inspect returns the automaton currently in use.
func (e *Engine) Inspect() *domain.Automaton {
	return e.runtime.Load().Automaton()
}

// Reload swaps the automaton for one built from def.
// Runs already in flight finish on the previous automaton.
func (e *Engine) Reload(def domain.Definition) error {
	a, err := domain.NewAutomaton(def)
	if err != nil {
		return fmt.Errorf("reload rejected: %w", err)
	}
	e.install(a)
	e.logger.Info("automaton reloaded", "automaton", a.Name(), "states", len(a.States()))
	return nil
}

// Submit validates input and, if a store is configured, persists the verdict.
func (e *Engine) Submit(ctx context.Context, input string) (*domain.Record, error) {
	record := &domain.Record{
		ID:        e.newID(),
		Verdict:   e.Validate(ctx, input),
		CreatedAt: e.now().UTC(),
	}
	if e.store == nil {
		return record, nil
	}
	if err := e.store.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save record %s: %w", record.ID, err)
	}
	return record, nil
}

// Record loads a persisted record.
func (e *Engine) Record(ctx context.Context, id string) (*domain.Record, error) {
	if e.store == nil {
		return nil, domain.ErrRecordNotFound
	}
	return e.store.Load(ctx, id)
}

// Records lists persisted record IDs, oldest first.
func (e *Engine) Records(ctx context.Context) ([]string, error) {
	if e.store == nil {
		return nil, nil
	}
	return e.store.List(ctx)
}

// Store returns the configured verdict store, or nil.
func (e *Engine) Store() ports.VerdictStore {
	return e.store
}

// BuildAutomaton returns the fixed Roman numeral automaton.
// It panics if the built-in data is malformed, which is a programming error.
func BuildAutomaton() *domain.Automaton {
	return domain.MustNewAutomaton(domain.RomanDefinition())
}

// Validate runs a over text without an Engine.
func Validate(a *domain.Automaton, text string) *domain.Verdict {
	return runtime.NewEngine(a).Validate(context.Background(), text)
}

// Decode converts text to its decimal value without consulting any automaton.
// The result is only meaningful for strings the automaton accepts.
func Decode(text string) (int, error) {
	return runtime.DecodeString(text)
}
