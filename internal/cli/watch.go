package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/romandfa"
	"github.com/aretw0/romandfa/pkg/adapters/file"
)

// WatchDefinition reloads engine every time the definition at path changes.
// A definition that fails to load or validate is logged and the current automaton stays in place.
// It blocks until ctx is cancelled.
func WatchDefinition(ctx context.Context, engine *romandfa.Engine, path string, logger *slog.Logger) error {
	changes, err := file.Watch(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to watch definition: %w", err)
	}
	logger.Info("Watching definition", "path", path)

	for changed := range changes {
		logger.Info("Change detected, triggering reload", "path", changed)
		def, err := file.LoadDefinition(changed)
		if err != nil {
			logger.Error("Definition load failed, keeping current automaton", "err", err)
			continue
		}
		if err := engine.Reload(def); err != nil {
			logger.Error("Definition rejected, keeping current automaton", "err", err)
		}
	}
	return ctx.Err()
}
