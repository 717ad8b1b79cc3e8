// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"sync"

	"aniseek/internal/compare"
	"aniseek/internal/reference"
)

// Comparer scores one reference genome.
type Comparer interface {
	Compare(ctx context.Context, g reference.Genome) (compare.Result, error)
}

// Config controls the comparison pipeline.
type Config struct {
	Threads int // number of concurrent comparisons (>=1)

	// KeepGoing records a failed comparison in Result.Err and continues;
	// otherwise the first failure cancels the run and is returned.
	KeepGoing bool
}

// ForEachResult compares every genome in refs and calls visit once per
// result, in completion order, from a single goroutine. It returns the first
// error encountered (including context cancellation).
func ForEachResult(
	ctx context.Context,
	cfg Config,
	refs []reference.Genome,
	cmp Comparer,
	visit func(compare.Result) error,
) error {
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan reference.Genome, cfg.Threads*2)
	results := make(chan compare.Result, cfg.Threads*2)

	var (
		errOnce  sync.Once
		firstErr error
	)
	fail := func(err error) {
		errOnce.Do(func() {
			firstErr = err
			cancel()
		})
	}

	// Workers
	var wg sync.WaitGroup
	wg.Add(cfg.Threads)
	for w := 0; w < cfg.Threads; w++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case g, ok := <-jobs:
					if !ok {
						return
					}
					res, err := cmp.Compare(ctx, g)
					if err != nil {
						// A cancelled run kills the aligner; report the
						// cancellation, not the dead child.
						if cerr := ctx.Err(); cerr != nil {
							fail(cerr)
							return
						}
						if !cfg.KeepGoing {
							fail(err)
							return
						}
						res.Err = err
					}
					select {
					case results <- res:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}

	// Collector
	var cwg sync.WaitGroup
	cwg.Add(1)
	go func() {
		defer cwg.Done()
		for r := range results {
			if ctx.Err() != nil {
				continue
			}
			if err := visit(r); err != nil {
				fail(err)
			}
		}
	}()

	// Feed work
feed:
	for _, g := range refs {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- g:
		}
	}

	close(jobs)
	wg.Wait()
	close(results)
	cwg.Wait()

	if firstErr != nil {
		return firstErr
	}
	return ctx.Err()
}
