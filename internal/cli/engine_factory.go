package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/romandfa"
	"github.com/aretw0/romandfa/internal/config"
	"github.com/aretw0/romandfa/pkg/adapters/file"
	"github.com/aretw0/romandfa/pkg/adapters/memory"
	"github.com/aretw0/romandfa/pkg/adapters/redis"
	"github.com/aretw0/romandfa/pkg/domain"
	"github.com/aretw0/romandfa/pkg/observability"
	"github.com/aretw0/romandfa/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
)

// EngineOptions gathers what the commands need to build an engine.
type EngineOptions struct {
	Config config.Config
	Logger *slog.Logger
	// Registerer receives the engine metrics. Nil disables metrics.
	Registerer prometheus.Registerer
}

// NewEngine initializes an engine with standard CLI conventions.
// The returned close function releases the verdict store.
func NewEngine(ctx context.Context, opts EngineOptions) (*romandfa.Engine, func() error, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := opts.Config

	engineOpts := []romandfa.Option{
		romandfa.WithLogger(logger),
		romandfa.WithBatchConcurrency(cfg.Concurrency),
	}

	// 1. Definition
	dead := domain.RomanDead
	if cfg.Definition != "" {
		def, err := file.LoadDefinition(cfg.Definition)
		if err != nil {
			return nil, nil, fmt.Errorf("error loading definition: %w", err)
		}
		dead = def.Dead
		engineOpts = append(engineOpts, romandfa.WithDefinition(def))
	}

	// 2. Hooks
	var hooks []domain.LifecycleHooks
	if logger.Enabled(ctx, slog.LevelDebug) {
		hooks = append(hooks, createDebugHooks(logger))
	}
	if opts.Registerer != nil {
		hooks = append(hooks, observability.NewMetrics(opts.Registerer).Hooks(dead))
	}
	if len(hooks) > 0 {
		engineOpts = append(engineOpts, romandfa.WithLifecycleHooks(domain.ComposeHooks(hooks...)))
	}

	// 3. Store
	store, closeStore, err := newStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	engineOpts = append(engineOpts, romandfa.WithStore(store))

	engine, err := romandfa.New(engineOpts...)
	if err != nil {
		_ = closeStore()
		return nil, nil, fmt.Errorf("error initializing engine: %w", err)
	}
	logger.Debug("Engine ready", "automaton", engine.Inspect().Name(), "store", cfg.Store)
	return engine, closeStore, nil
}

func newStore(ctx context.Context, cfg config.Config) (ports.VerdictStore, func() error, error) {
	switch cfg.Store {
	case config.StoreRedis:
		s := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			redis.WithTTL(cfg.Redis.TTL),
			redis.WithPrefix(cfg.Redis.Prefix),
		)
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := s.Ping(pingCtx); err != nil {
			_ = s.Close()
			return nil, nil, fmt.Errorf("redis unreachable at %s: %w", cfg.Redis.Addr, err)
		}
		return s, s.Close, nil
	default:
		return memory.NewStore(), func() error { return nil }, nil
	}
}
