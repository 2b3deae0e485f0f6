package model

import (
	"crypto/md5"
	"fmt"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-gol-duel/rules"
)

// ErrDimensions is returned for non-positive or ragged grid dimensions
var ErrDimensions = errors.New("invalid grid dimensions")

// Topology controls how neighbor counting treats the grid edges
type Topology int

const (
	// Clamped stops at the grid edges: border cells have fewer neighbors
	Clamped Topology = iota
	// Toroidal wraps each edge around to the opposite one
	Toroidal
)

func (t Topology) String() string {
	if t == Toroidal {
		return "toroidal"
	}
	return "clamped"
}

// ParseTopology maps a config value to a Topology
func ParseTopology(s string) (Topology, error) {
	switch s {
	case "", "clamped":
		return Clamped, nil
	case "toroidal", "wrap":
		return Toroidal, nil
	}
	return Clamped, errors.Errorf("[ParseTopology] unknown topology %q", s)
}

// Grid is a fixed-size board of cells
type Grid struct {
	rows     int
	cols     int
	topology Topology
	cells    [][]rules.Cell
}

// bounds is the bounding box of occupied cells; valid is false for an empty grid
type bounds struct {
	minRow, maxRow, minCol, maxCol int
	valid                          bool
}

// NewGrid creates an empty grid with the specified dimensions
func NewGrid(rows, cols int, topology Topology) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, errors.Wrapf(ErrDimensions, "[NewGrid] %dx%d", rows, cols)
	}
	return newGrid(rows, cols, topology), nil
}

func newGrid(rows, cols int, topology Topology) *Grid {
	cells := make([][]rules.Cell, rows)
	for i := range cells {
		cells[i] = make([]rules.Cell, cols)
	}
	return &Grid{
		rows:     rows,
		cols:     cols,
		topology: topology,
		cells:    cells,
	}
}

// NewGridFromCells copies cells (row-major) into a new grid, validating every value
func NewGridFromCells(cells [][]rules.Cell, topology Topology) (*Grid, error) {
	if len(cells) == 0 || len(cells[0]) == 0 {
		return nil, errors.Wrap(ErrDimensions, "[NewGridFromCells] no cells")
	}
	g := newGrid(len(cells), len(cells[0]), topology)
	for r, row := range cells {
		if len(row) != g.cols {
			return nil, errors.Wrapf(ErrDimensions, "[NewGridFromCells] row %d has %d columns, want %d", r, len(row), g.cols)
		}
		for c, cell := range row {
			if !cell.Valid() {
				return nil, errors.Errorf("[NewGridFromCells] invalid cell %d at (%d, %d)", cell, r, c)
			}
			g.cells[r][c] = cell
		}
	}
	return g, nil
}

// Rows returns the number of rows
func (g *Grid) Rows() int {
	return g.rows
}

// Cols returns the number of columns
func (g *Grid) Cols() int {
	return g.cols
}

// Topology returns the edge handling of the grid
func (g *Grid) Topology() Topology {
	return g.topology
}

func (g *Grid) mustContain(row, col int) {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		panic(fmt.Sprintf("model: cell (%d, %d) outside %dx%d grid", row, col, g.rows, g.cols))
	}
}

// At returns the state of a cell. Coordinates outside the grid panic.
func (g *Grid) At(row, col int) rules.Cell {
	g.mustContain(row, col)
	return g.cells[row][col]
}

// Cells returns a copy of the cell matrix, row-major
func (g *Grid) Cells() [][]rules.Cell {
	out := make([][]rules.Cell, g.rows)
	for r := range g.rows {
		out[r] = make([]rules.Cell, g.cols)
		copy(out[r], g.cells[r])
	}
	return out
}

// Clone returns an independent copy of the grid
func (g *Grid) Clone() *Grid {
	next := newGrid(g.rows, g.cols, g.topology)
	for r := range g.rows {
		copy(next.cells[r], g.cells[r])
	}
	return next
}

// Equal reports whether both grids have the same dimensions and cells
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.rows != other.rows || g.cols != other.cols {
		return false
	}
	for r := range g.rows {
		for c := range g.cols {
			if g.cells[r][c] != other.cells[r][c] {
				return false
			}
		}
	}
	return true
}

// neighbor resolves the cell at offset (dr, dc) from (row, col).
// ok is false when the position falls off a clamped grid or lands back on the cell itself.
func (g *Grid) neighbor(row, col, dr, dc int) (nr, nc int, ok bool) {
	nr, nc = row+dr, col+dc
	if g.topology == Toroidal {
		nr = (nr%g.rows + g.rows) % g.rows
		nc = (nc%g.cols + g.cols) % g.cols
	} else if nr < 0 || nr >= g.rows || nc < 0 || nc >= g.cols {
		return 0, 0, false
	}
	if nr == row && nc == col {
		return 0, 0, false
	}
	return nr, nc, true
}

// CountNeighborsOfSpecies counts the Moore neighbors of (row, col) holding species
func (g *Grid) CountNeighborsOfSpecies(row, col int, species rules.Cell) int {
	a, b := g.CountNeighbors(row, col)
	switch species {
	case rules.SpeciesA:
		return a
	case rules.SpeciesB:
		return b
	}
	return 0
}

// CountNeighbors counts both species around (row, col) in a single scan
func (g *Grid) CountNeighbors(row, col int) (countA, countB int) {
	g.mustContain(row, col)

	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue // Skip the cell itself
			}
			nr, nc, ok := g.neighbor(row, col, dr, dc)
			if !ok {
				continue
			}
			switch g.cells[nr][nc] {
			case rules.SpeciesA:
				countA++
			case rules.SpeciesB:
				countB++
			}
		}
	}
	return countA, countB
}

// Population returns the number of cells holding species
func (g *Grid) Population(species rules.Cell) (count int) {
	for r := range g.rows {
		for c := range g.cols {
			if g.cells[r][c] == species {
				count++
			}
		}
	}
	return
}

// activeBounds calculates the bounding box of occupied cells. It only reads g.
func (g *Grid) activeBounds() (b bounds) {
	for r := range g.rows {
		for c := range g.cols {
			if g.cells[r][c] == rules.Empty {
				continue
			}
			if !b.valid {
				b.minRow, b.maxRow, b.minCol, b.maxCol = r, r, c, c
				b.valid = true
				continue
			}
			b.minRow = min(b.minRow, r)
			b.maxRow = max(b.maxRow, r)
			b.minCol = min(b.minCol, c)
			b.maxCol = max(b.maxCol, c)
		}
	}
	return b
}

// BoundingBoxSize returns the area of the occupied region
func (g *Grid) BoundingBoxSize() int {
	b := g.activeBounds()
	if !b.valid {
		return 0
	}
	return (b.maxRow - b.minRow + 1) * (b.maxCol - b.minCol + 1)
}

// Hash returns an MD5 hash of the current grid state
func (g *Grid) Hash() string {
	h := md5.New()
	for r := range g.rows {
		row := make([]byte, g.cols)
		for c, cell := range g.cells[r] {
			row[c] = byte(cell)
		}
		h.Write(row)
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

// reset resizes the grid and clears every cell
func (g *Grid) reset(rows, cols int, topology Topology) {
	g.rows = rows
	g.cols = cols
	g.topology = topology

	if len(g.cells) != rows {
		g.cells = make([][]rules.Cell, rows)
	}
	for i := range g.cells {
		if len(g.cells[i]) != cols {
			g.cells[i] = make([]rules.Cell, cols)
			continue
		}
		clear(g.cells[i])
	}
}
