package runtime

import (
	"context"

	"github.com/aretw0/romandfa/pkg/domain"
	"golang.org/x/sync/errgroup"
)

// ValidateAll validates inputs concurrently and returns verdicts in input order.
// It stops scheduling new work once ctx is done and returns ctx.Err().
func (e *Engine) ValidateAll(ctx context.Context, inputs []string) ([]*domain.Verdict, error) {
	verdicts := make([]*domain.Verdict, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.batchConcurrency)
	for i, input := range inputs {
		if err := gctx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			verdicts[i] = e.Validate(gctx, input)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return verdicts, nil
}
