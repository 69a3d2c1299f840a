package cli

import (
	"context"
	"io"

	"github.com/aretw0/romandfa"
	"github.com/aretw0/romandfa/internal/presentation/graph"
)

// GraphOptions configures the Mermaid export.
type GraphOptions struct {
	// Input, when set, is validated and its path is highlighted.
	Input    string
	HideDead bool
}

// RunGraph writes the Mermaid chart of the engine's automaton to w.
func RunGraph(ctx context.Context, engine *romandfa.Engine, w io.Writer, opts GraphOptions) error {
	gopts := graph.Options{HideDead: opts.HideDead}
	if opts.Input != "" {
		v := engine.Validate(ctx, opts.Input)
		gopts.Overlay = &graph.Overlay{Path: v.Path}
	}
	_, err := io.WriteString(w, graph.GenerateMermaid(engine.Inspect(), gopts))
	return err
}
