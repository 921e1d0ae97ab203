package keyforms

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// AnalyzeAll analyzes docs with at most workers goroutines and returns the
// results in input order. Workers <= 0 uses GOMAXPROCS. It stops early and
// returns the context error when ctx is cancelled.
func (e *Engine) AnalyzeAll(ctx context.Context, docs []Document, workers int) ([]Analysis, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	out := make([]Analysis, len(docs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range docs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = e.Analyze(docs[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
