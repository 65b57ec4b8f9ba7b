package batch

import (
	"context"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/verte-zerg/iwlcalc/internal/iwl"
	"github.com/verte-zerg/iwlcalc/internal/model"
)

// Row is the outcome for one patient. Exactly one of Result and Err is set.
type Row struct {
	ID     string
	Result *model.CalculationResult
	Err    error
}

// Runner computes patients concurrently.
type Runner struct {
	logger  *zap.Logger
	workers int
}

// NewRunner returns a Runner. workers <= 0 means one per CPU.
func NewRunner(logger *zap.Logger, workers int) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Runner{logger: logger, workers: workers}
}

// Run calculates every patient and returns rows in input order. Patient
// errors are stored in their row; only cancellation fails the whole run.
func (r *Runner) Run(ctx context.Context, patients []Patient) ([]Row, error) {
	rows := make([]Row, len(patients))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, p := range patients {
		i, p := i, p
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rows[i] = r.calculate(p)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Runner) calculate(p Patient) Row {
	row := Row{ID: p.ID}
	in, err := p.Input()
	if err != nil {
		r.logger.Warn("invalid patient entry", zap.String("id", p.ID), zap.Error(err))
		row.Err = err
		return row
	}
	res, err := iwl.Calculate(in)
	if err != nil {
		r.logger.Warn("calculation rejected", zap.String("id", p.ID), zap.Error(err))
		row.Err = err
		return row
	}
	for _, w := range res.Warnings {
		r.logger.Info("implausible input", zap.String("id", p.ID), zap.String("warning", w))
	}
	row.Result = &res
	return row
}
