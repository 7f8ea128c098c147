package experiment

import (
	"context"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/samuelfneumann/avnav/experiment/tracker"
)

// Parallel runs independent experiments concurrently, one goroutine
// per experiment. Experiments must not share environments, policies,
// or trackers.
type Parallel struct {
	experiments []Experiment
}

// NewParallel returns a new Parallel experiment running experiments
func NewParallel(experiments ...Experiment) *Parallel {
	return &Parallel{experiments: experiments}
}

// NewParallelFromConfig creates workers independent experiments from
// c. Worker i is seeded with seed+i, logs with a logger named after
// it, and tracks data with the trackers returned by trackers(i), which
// may be nil.
func NewParallelFromConfig(c Config, workers int, seed uint64,
	logger *zap.Logger,
	trackers func(worker int) []tracker.Tracker) (*Parallel, error) {
	if workers < 1 {
		return nil, fmt.Errorf("newParallelFromConfig: need at least one "+
			"worker, got %v", workers)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	experiments := make([]Experiment, workers)
	for i := range experiments {
		var t []tracker.Tracker
		if trackers != nil {
			t = trackers(i)
		}

		workerLogger := logger.With(zap.Int("worker", i))
		exp, err := c.CreateExp(seed+uint64(i), workerLogger, t...)
		if err != nil {
			return nil, fmt.Errorf("newParallelFromConfig: worker %d: %w", i,
				err)
		}
		experiments[i] = exp
	}

	return NewParallel(experiments...), nil
}

// Len returns the number of experiments run in parallel
func (p *Parallel) Len() int {
	return len(p.experiments)
}

// At returns experiment i
func (p *Parallel) At(i int) Experiment {
	return p.experiments[i]
}

// Run runs all experiments to completion. The first error cancels all
// other experiments and is returned.
func (p *Parallel) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	for i, exp := range p.experiments {
		i, exp := i, exp
		g.Go(func() error {
			if err := exp.Run(ctx); err != nil {
				return fmt.Errorf("run: worker %d: %w", i, err)
			}
			return nil
		})
	}

	return g.Wait()
}

// Save saves the data tracked by every experiment
func (p *Parallel) Save() error {
	var err error
	for _, exp := range p.experiments {
		err = multierr.Append(err, exp.Save())
	}
	return err
}
