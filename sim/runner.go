package sim

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-gol-duel/model"
	"github.com/sheikhrachel/go-gol-duel/rules"
	"github.com/sheikhrachel/go-gol-duel/utils"
)

// snapshotPrealloc caps the up-front snapshot allocation in Run
const snapshotPrealloc = 1024

// ErrInvalidParameter is returned for a negative generation count or an invalid rule set
var ErrInvalidParameter = errors.New("invalid simulation parameter")

// Observer receives each generation in order. The grid is only valid until the observer
// returns when the runner recycles grids; returning an error stops the run.
type Observer func(generation int, grid *model.Grid) error

// Runner drives a simulation for a fixed number of generations
type Runner struct {
	engine model.Engine
	logger *log.Logger
}

// NewRunner creates a runner; a nil logger discards all output
func NewRunner(engine model.Engine, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{engine: engine, logger: logger}
}

func validate(initial *model.Grid, rs rules.RuleSet, generations int) error {
	if initial == nil {
		return errors.Wrap(ErrInvalidParameter, "[validate] nil initial grid")
	}
	if generations < 0 {
		return errors.Wrapf(ErrInvalidParameter, "[validate] generations must be >= 0, got %d", generations)
	}
	if err := rs.Validate(); err != nil {
		return errors.Wrapf(ErrInvalidParameter, "[validate] %v", err)
	}
	return nil
}

/*
Run computes generations 0..n and returns all n+1 snapshots.

Generation 0 is a copy of initial. The engine's pool is never used here since every
snapshot is retained.
*/
func (r *Runner) Run(ctx context.Context, initial *model.Grid, rs rules.RuleSet, generations int) ([]*model.Grid, error) {
	if err := validate(initial, rs, generations); err != nil {
		return nil, err
	}

	engine := r.engine
	engine.Pool = nil

	// generations may be huge; the slice grows as the run progresses
	snapshots := make([]*model.Grid, 0, min(generations, snapshotPrealloc)+1)
	err := r.run(ctx, engine, initial.Clone(), rs, generations, func(generation int, grid *model.Grid) error {
		snapshots = append(snapshots, grid)
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return snapshots, nil
}

// Stream computes generations 0..n, handing each one to fn before computing the next
func (r *Runner) Stream(ctx context.Context, initial *model.Grid, rs rules.RuleSet, generations int, fn Observer) error {
	if err := validate(initial, rs, generations); err != nil {
		return err
	}
	return r.run(ctx, r.engine, initial.Clone(), rs, generations, fn, true)
}

func (r *Runner) run(
	ctx context.Context,
	engine model.Engine,
	grid *model.Grid,
	rs rules.RuleSet,
	generations int,
	fn Observer,
	recycle bool,
) error {
	var (
		stats = utils.NewStats()
		hist  = newHistory(historySize)
		stale bool
	)

	r.logger.Info("Simulation started",
		"generations", generations,
		"rows", grid.Rows(),
		"cols", grid.Cols(),
		"topology", grid.Topology(),
		"strategy", engine.Strategy,
	)

	for generation := 0; ; generation++ {
		popA, popB := grid.Population(rules.SpeciesA), grid.Population(rules.SpeciesB)
		stats.Update(generation, popA, popB)
		r.logger.Debug("Generation",
			"generation", generation,
			"species_a", popA,
			"species_b", popB,
			"bounding_box", grid.BoundingBoxSize(),
		)

		if period := hist.Push(grid.Hash()); period > 0 && !stale {
			stale = true
			r.logger.Info("Grid stagnated", "generation", generation, "period", period)
		}

		if err := fn(generation, grid); err != nil {
			return errors.Wrapf(err, "[run] observer failed at generation %d", generation)
		}
		if generation == generations {
			break
		}

		// cancellation is only honored between whole generations
		if err := ctx.Err(); err != nil {
			r.logger.Warn("Simulation cancelled", "generation", generation)
			return errors.Wrapf(err, "[run] cancelled after generation %d", generation)
		}

		start := time.Now()
		next := engine.Next(grid, rs)
		stats.Observe(time.Since(start))

		if recycle {
			model.GridToPool(grid, engine.Pool)
		}
		grid = next
	}

	r.logger.Info("Simulation finished",
		"generations", stats.TotalGenerations,
		"avg_population", stats.AveragePopulation,
		"gen_per_sec", stats.GenerationsPerSecond,
		"runtime", time.Since(stats.StartTime),
	)
	return nil
}
