package model

import (
	"strings"
	"testing"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-gol-duel/rules"
)

// gridFromRows builds a grid from rows like "1.2", '.' or '0' meaning empty
func gridFromRows(t *testing.T, topology Topology, rows ...string) *Grid {
	t.Helper()
	cells := make([][]rules.Cell, len(rows))
	for r, row := range rows {
		cells[r] = make([]rules.Cell, len(row))
		for c, ch := range row {
			switch ch {
			case '.', '0':
				cells[r][c] = rules.Empty
			case '1':
				cells[r][c] = rules.SpeciesA
			case '2':
				cells[r][c] = rules.SpeciesB
			default:
				t.Fatalf("bad cell %q", ch)
			}
		}
	}
	g, err := NewGridFromCells(cells, topology)
	if err != nil {
		t.Fatalf("NewGridFromCells: %v", err)
	}
	return g
}

func TestNewGridRejectsBadDimensions(t *testing.T) {
	for _, dims := range [][2]int{{0, 3}, {3, 0}, {-1, 4}} {
		if _, err := NewGrid(dims[0], dims[1], Clamped); !errors.Is(err, ErrDimensions) {
			t.Errorf("NewGrid(%d, %d): expected ErrDimensions, got %v", dims[0], dims[1], err)
		}
	}
	if _, err := NewGridFromCells([][]rules.Cell{{0, 0}, {0}}, Clamped); !errors.Is(err, ErrDimensions) {
		t.Errorf("ragged rows: expected ErrDimensions, got %v", err)
	}
	if _, err := NewGridFromCells([][]rules.Cell{{0, 3}}, Clamped); err == nil {
		t.Error("expected error for invalid cell value")
	}
}

func TestNewGridFromCellsCopies(t *testing.T) {
	cells := [][]rules.Cell{{rules.SpeciesA, rules.Empty}}
	g, err := NewGridFromCells(cells, Clamped)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cells[0][0] = rules.SpeciesB
	if g.At(0, 0) != rules.SpeciesA {
		t.Fatal("grid aliases the input slice")
	}
	out := g.Cells()
	out[0][0] = rules.Empty
	if g.At(0, 0) != rules.SpeciesA {
		t.Fatal("Cells exposes internal storage")
	}
}

func TestAtPanicsOutOfRange(t *testing.T) {
	g, _ := NewGrid(2, 2, Clamped)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for out-of-range access")
		}
	}()
	g.At(2, 0)
}

func TestCountNeighborsClamped(t *testing.T) {
	g := gridFromRows(t, Clamped,
		"111",
		"111",
		"111",
	)
	tests := []struct {
		row, col, want int
	}{
		{0, 0, 3},
		{0, 1, 5},
		{1, 1, 8},
		{2, 2, 3},
		{2, 1, 5},
	}
	for _, tt := range tests {
		if got := g.CountNeighborsOfSpecies(tt.row, tt.col, rules.SpeciesA); got != tt.want {
			t.Errorf("(%d,%d): got %d, want %d", tt.row, tt.col, got, tt.want)
		}
	}
}

func TestCountNeighborsExcludesSelf(t *testing.T) {
	g := gridFromRows(t, Clamped, "...", ".1.", "...")
	if got := g.CountNeighborsOfSpecies(1, 1, rules.SpeciesA); got != 0 {
		t.Fatalf("cell counted itself: got %d", got)
	}
	g = gridFromRows(t, Toroidal, "1")
	if got := g.CountNeighborsOfSpecies(0, 0, rules.SpeciesA); got != 0 {
		t.Fatalf("1x1 toroidal cell counted itself: got %d", got)
	}
}

func TestCountNeighborsBySpecies(t *testing.T) {
	g := gridFromRows(t, Clamped,
		"12.",
		"2.1",
		"..2",
	)
	a, b := g.CountNeighbors(1, 1)
	if a != 2 || b != 3 {
		t.Fatalf("got a=%d b=%d, want a=2 b=3", a, b)
	}
	if got := g.CountNeighborsOfSpecies(1, 1, rules.Empty); got != 0 {
		t.Fatalf("empty is not a species, got %d", got)
	}
}

func TestCountNeighborsToroidalWraps(t *testing.T) {
	g := gridFromRows(t, Toroidal,
		"1...",
		"....",
		"....",
		"...2",
	)
	// (0,0) and (3,3) are diagonal neighbors across both edges
	if got := g.CountNeighborsOfSpecies(0, 0, rules.SpeciesB); got != 1 {
		t.Errorf("toroidal: got %d, want 1", got)
	}
	if got := g.CountNeighborsOfSpecies(3, 3, rules.SpeciesA); got != 1 {
		t.Errorf("toroidal: got %d, want 1", got)
	}

	clamped := gridFromRows(t, Clamped, "1...", "....", "....", "...2")
	if got := clamped.CountNeighborsOfSpecies(0, 0, rules.SpeciesB); got != 0 {
		t.Errorf("clamped: got %d, want 0", got)
	}
}

func TestNeighborCountsStayInRange(t *testing.T) {
	for _, topology := range []Topology{Clamped, Toroidal} {
		g := gridFromRows(t, topology, "1212", "2121", "1212")
		for r := range g.Rows() {
			for c := range g.Cols() {
				a, b := g.CountNeighbors(r, c)
				if a < 0 || b < 0 || a+b > rules.MaxNeighbors {
					t.Fatalf("%s (%d,%d): a=%d b=%d", topology, r, c, a, b)
				}
			}
		}
	}
}

func TestCloneEqualHash(t *testing.T) {
	g := gridFromRows(t, Clamped, "1.2", ".1.")
	c := g.Clone()
	if !g.Equal(c) || g.Hash() != c.Hash() {
		t.Fatal("clone differs from original")
	}
	c.cells[0][1] = rules.SpeciesB
	if g.Equal(c) || g.Hash() == c.Hash() {
		t.Fatal("clone shares storage with original")
	}
	if g.Equal(nil) {
		t.Fatal("grid equals nil")
	}
}

func TestPopulationAndBoundingBox(t *testing.T) {
	g := gridFromRows(t, Clamped,
		".....",
		".1...",
		"...2.",
		".....",
	)
	if g.Population(rules.SpeciesA) != 1 || g.Population(rules.SpeciesB) != 1 {
		t.Fatalf("unexpected populations")
	}
	if got := g.BoundingBoxSize(); got != 6 {
		t.Fatalf("bounding box = %d, want 6", got)
	}
	empty, _ := NewGrid(3, 3, Clamped)
	if empty.BoundingBoxSize() != 0 {
		t.Fatal("empty grid should have no bounding box")
	}
}

func TestParseTopology(t *testing.T) {
	for in, want := range map[string]Topology{"": Clamped, "clamped": Clamped, "toroidal": Toroidal, "wrap": Toroidal} {
		got, err := ParseTopology(in)
		if err != nil || got != want {
			t.Errorf("ParseTopology(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseTopology("sphere"); err == nil {
		t.Error("expected error for unknown topology")
	}
}

func TestGridPoolResetsGrids(t *testing.T) {
	pool := NewGridPool()
	g := pool.Get(2, 3, Clamped)
	g.cells[1][2] = rules.SpeciesA
	GridToPool(g, pool)

	again := pool.Get(4, 4, Toroidal)
	if again.Rows() != 4 || again.Cols() != 4 || again.Topology() != Toroidal {
		t.Fatalf("pooled grid has wrong shape %dx%d", again.Rows(), again.Cols())
	}
	if again.Population(rules.SpeciesA) != 0 {
		t.Fatal("pooled grid not cleared")
	}
	GridToPool(nil, pool)
	GridToPool(again, nil)
}

func TestTextRenderer(t *testing.T) {
	g := gridFromRows(t, Clamped, "1.", ".2")
	var sb strings.Builder
	r := NewTextRenderer(&sb, "")
	if err := r.Display(3, g); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Separator + "\nIteration = 3\n\n 1 -\n - 2\n" + Separator + "\n"
	if sb.String() != want {
		t.Fatalf("got:\n%s\nwant:\n%s", sb.String(), want)
	}

	custom := NewTextRenderer(&sb, ".")
	if out := custom.Format(0, g); !strings.Contains(out, " 1 .\n . 2\n") {
		t.Fatalf("custom glyph not used:\n%s", out)
	}
}
