package model

import (
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/go-gol-duel/rules"
)

// Strategy selects how the next generation is computed
type Strategy int

const (
	Sequential Strategy = iota
	Parallel
	Bounded
)

func (s Strategy) String() string {
	switch s {
	case Parallel:
		return "parallel"
	case Bounded:
		return "bounded"
	default:
		return "sequential"
	}
}

// ParseStrategy maps a config value to a Strategy
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "sequential":
		return Sequential, nil
	case "parallel":
		return Parallel, nil
	case "", "bounded":
		return Bounded, nil
	}
	return Sequential, errors.Errorf("[ParseStrategy] unknown strategy %q", s)
}

// Engine computes successive generations
type Engine struct {
	Strategy Strategy
	// Workers caps the parallel row bands; 0 means runtime.NumCPU()
	Workers int
	// Pool, when set, supplies the grids the engine writes into
	Pool *GridPool
}

// ComputeNext returns the generation following current. It never modifies current.
func ComputeNext(current *Grid, rs rules.RuleSet) *Grid {
	return current.NextGenerationSequential(rs, nil)
}

// Next computes the generation following current using the configured strategy
func (e Engine) Next(current *Grid, rs rules.RuleSet) *Grid {
	switch e.Strategy {
	case Parallel:
		return current.NextGenerationParallel(rs, e.Pool, e.Workers)
	case Bounded:
		return current.NextGenerationBounded(rs, e.Pool, e.Workers)
	default:
		return current.NextGenerationSequential(rs, e.Pool)
	}
}

func (g *Grid) nextGrid(pool *GridPool) *Grid {
	if pool != nil {
		return pool.Get(g.rows, g.cols, g.topology)
	}
	return newGrid(g.rows, g.cols, g.topology)
}

// evolveCell writes the next state of (row, col) into next
func (g *Grid) evolveCell(next *Grid, row, col int, rs rules.RuleSet) {
	countA, countB := g.CountNeighbors(row, col)
	next.cells[row][col] = rules.ApplyDuelRules(g.cells[row][col], countA, countB, rs)
}

// NextGenerationSequential calculates the next generation row by row
func (g *Grid) NextGenerationSequential(rs rules.RuleSet, pool *GridPool) *Grid {
	next := g.nextGrid(pool)
	for r := range g.rows {
		for c := range g.cols {
			g.evolveCell(next, r, c, rs)
		}
	}
	return next
}

// NextGenerationParallel calculates the next generation using parallel processing
func (g *Grid) NextGenerationParallel(rs rules.RuleSet, pool *GridPool, workers int) *Grid {
	next := g.nextGrid(pool)
	g.evolveRows(next, 0, g.rows, 0, g.cols, rs, workers)
	return next
}

// evolveRows evaluates rows [startRow, endRow) x cols [startCol, endCol) in parallel bands.
// Each band writes a disjoint set of rows of next and reads only g.
func (g *Grid) evolveRows(next *Grid, startRow, endRow, startCol, endCol int, rs rules.RuleSet, workers int) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var (
		eg            errgroup.Group
		height        = endRow - startRow
		rowsPerWorker = (height + workers - 1) / workers // Ceiling division
	)

	for i := range workers {
		var (
			bandStart = startRow + i*rowsPerWorker
			bandEnd   = min(bandStart+rowsPerWorker, endRow)
		)
		if bandStart >= endRow {
			break
		}

		eg.Go(func() error {
			for r := bandStart; r < bandEnd; r++ {
				for c := startCol; c < endCol; c++ {
					g.evolveCell(next, r, c, rs)
				}
			}
			return nil
		})
	}

	// bands never fail; Wait is the publication barrier
	_ = eg.Wait()
}

/*
NextGenerationBounded calculates the next generation only around occupied cells.

An empty cell with no occupied neighbors stays empty under every rule set (a birth needs
strictly more neighbors of one species than of the other), so everything outside the
bounding box plus a one-cell margin is left empty. Toroidal grids wrap that margin and
fall back to the full parallel pass.
*/
func (g *Grid) NextGenerationBounded(rs rules.RuleSet, pool *GridPool, workers int) *Grid {
	if g.topology == Toroidal {
		return g.NextGenerationParallel(rs, pool, workers)
	}
	b := g.activeBounds()
	next := g.nextGrid(pool)

	// If no occupied cells, return empty grid
	if !b.valid {
		return next
	}

	// Process only the active region + 1 margin
	minRow := max(0, b.minRow-1)
	maxRow := min(g.rows-1, b.maxRow+1)
	minCol := max(0, b.minCol-1)
	maxCol := min(g.cols-1, b.maxCol+1)

	g.evolveRows(next, minRow, maxRow+1, minCol, maxCol+1, rs, workers)

	return next
}
