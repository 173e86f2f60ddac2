// SPDX-License-Identifier: MIT
// Package: fieldsim/sim

package sim

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/fieldsim/config"
)

// RunBatch runs every scenario on its own engine, at most WithParallelism
// at a time. Results keep the input order. The first failure cancels the
// remaining runs and is returned.
func RunBatch(ctx context.Context, scenarios []*config.Scenario, opts ...Option) ([]*Result, error) {
	cfg := defaultSettings()
	for _, opt := range opts {
		opt(&cfg)
	}
	limit := cfg.parallel
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	results := make([]*Result, len(scenarios))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, sc := range scenarios {
		i, sc := i, sc
		g.Go(func() error {
			res, err := run(gctx, sc, cfg)
			if err != nil {
				return fmt.Errorf("scenario %d (%s): %w", i, nameOf(sc), err)
			}
			results[i] = res

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func nameOf(sc *config.Scenario) string {
	if sc == nil {
		return "<nil>"
	}

	return sc.Name
}
