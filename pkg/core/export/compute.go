// Package export runs valuations in bulk and writes them to spreadsheets.
package export

import (
	"context"
	"fmt"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"property_valuation/pkg/core/valuation"
	"property_valuation/pkg/models"
)

// Row is one plot's outcome. Err is set when the plot could not be valued;
// other rows are unaffected.
type Row struct {
	Plot   *models.Plot
	Result valuation.Result
	Err    error
}

// Compute values every plot using up to workers goroutines. Rows come back
// in input order. The returned error is only ever the context's.
func Compute(ctx context.Context, plots []*models.Plot, opts valuation.Options, workers int, logger *zap.Logger) ([]Row, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	rows := make([]Row, len(plots))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, plot := range plots {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rows[i].Plot = plot
			if plot == nil {
				rows[i].Err = fmt.Errorf("plot %d: nil plot", i)
				return nil
			}
			if err := plot.Validate(); err != nil {
				rows[i].Err = fmt.Errorf("plot %s: %w", plot.ID, err)
				return nil
			}
			rows[i].Result, rows[i].Err = valuation.Value(plot, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	failed := 0
	for _, r := range rows {
		if r.Err != nil {
			failed++
			logger.Warn("plot valuation failed", zap.Error(r.Err))
		}
	}
	logger.Info("bulk valuation finished",
		zap.Int("plots", len(plots)),
		zap.Int("failed", failed),
		zap.Int("workers", workers))
	return rows, nil
}
