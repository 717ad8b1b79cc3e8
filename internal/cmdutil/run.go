package cmdutil

import (
	"context"

	"aniseek/internal/compare"
	"aniseek/internal/pipeline"
	"aniseek/internal/reference"
)

// RunStream runs the comparison pipeline, applies a visitor, and streams
// kept outputs via send. It returns the number of kept outputs and the
// first error encountered.
func RunStream[T any](
	ctx context.Context,
	cfg pipeline.Config,
	refs []reference.Genome,
	cmp pipeline.Comparer,
	visit func(compare.Result) (bool, T, error),
	send func(T) error,
) (int, error) {
	total := 0
	err := pipeline.ForEachResult(ctx, cfg, refs, cmp, func(r compare.Result) error {
		keep, out, vErr := visit(r)
		if vErr != nil {
			return vErr
		}
		if !keep {
			return nil
		}
		if err := send(out); err != nil {
			return err
		}
		total++
		return nil
	})
	return total, err
}
