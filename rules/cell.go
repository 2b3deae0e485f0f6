package rules

import "fmt"

// Cell is the state of a single grid position
type Cell uint8

const (
	Empty Cell = iota
	SpeciesA
	SpeciesB
)

// MaxNeighbors is the size of a Moore neighborhood
const MaxNeighbors = 8

// Species lists the two competing non-empty states
func Species() []Cell {
	return []Cell{SpeciesA, SpeciesB}
}

// Valid reports whether c is one of the three known states
func (c Cell) Valid() bool {
	return c <= SpeciesB
}

func (c Cell) String() string {
	switch c {
	case Empty:
		return "empty"
	case SpeciesA:
		return "species-a"
	case SpeciesB:
		return "species-b"
	default:
		return fmt.Sprintf("cell(%d)", uint8(c))
	}
}
