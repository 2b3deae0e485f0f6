package rules

import (
	"fmt"

	"github.com/pkg/errors"
)

// SurvivalRange is the inclusive neighbor-count window an occupied cell survives in
type SurvivalRange struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"`
}

// Contains reports whether n lies within the range
func (r SurvivalRange) Contains(n int) bool {
	return n >= r.Min && n <= r.Max
}

// SpeciesRule holds the thresholds for one species
type SpeciesRule struct {
	BirthThreshold int           `json:"birth_threshold" yaml:"birth_threshold"`
	Survival       SurvivalRange `json:"survival" yaml:"survival"`
}

// RuleSet holds the birth and survival thresholds of both species
type RuleSet struct {
	A SpeciesRule `json:"a" yaml:"a"`
	B SpeciesRule `json:"b" yaml:"b"`
}

// Uniform returns a RuleSet applying the same rule to both species
func Uniform(rule SpeciesRule) RuleSet {
	return RuleSet{A: rule, B: rule}
}

/*
Parse decodes a birth specification ("B...") and a survival specification ("S...") into a
RuleSet shared by both species.

Only slot 1 of the birth table and slots 1 and 2 of the survival table take part in the
evolution rule, and they do so with their flag value (0 or 1): "S23" yields the survival
range [0, 1], not [2, 3].
*/
func Parse(birth, survival string) (RuleSet, error) {
	bt, err := ParseTable(birth, BirthTag)
	if err != nil {
		return RuleSet{}, errors.Wrap(err, "[Parse] birth")
	}
	st, err := ParseTable(survival, SurvivalTag)
	if err != nil {
		return RuleSet{}, errors.Wrap(err, "[Parse] survival")
	}
	return FromTables(bt, st), nil
}

// FromTables builds a RuleSet from already decoded tables
func FromTables(birth, survival Table) RuleSet {
	return Uniform(SpeciesRule{
		BirthThreshold: birth.slot(1),
		Survival: SurvivalRange{
			Min: survival.slot(1),
			Max: survival.slot(2),
		},
	})
}

// For returns the rule of the given species. Empty has no rule and yields the zero value.
func (rs RuleSet) For(species Cell) SpeciesRule {
	switch species {
	case SpeciesA:
		return rs.A
	case SpeciesB:
		return rs.B
	default:
		return SpeciesRule{}
	}
}

// Validate checks that every threshold lies within 0..8
func (rs RuleSet) Validate() error {
	for _, species := range Species() {
		r := rs.For(species)
		checks := []struct {
			name string
			v    int
		}{
			{"birth threshold", r.BirthThreshold},
			{"survival min", r.Survival.Min},
			{"survival max", r.Survival.Max},
		}
		for _, c := range checks {
			if c.v < 0 || c.v > MaxNeighbors {
				return errors.Wrapf(ErrFormat, "[Validate] %s %s = %d is outside 0..%d", species, c.name, c.v, MaxNeighbors)
			}
		}
	}
	return nil
}

func (rs RuleSet) String() string {
	return fmt.Sprintf("A{birth>=%d survive=[%d,%d]} B{birth>=%d survive=[%d,%d]}",
		rs.A.BirthThreshold, rs.A.Survival.Min, rs.A.Survival.Max,
		rs.B.BirthThreshold, rs.B.Survival.Min, rs.B.Survival.Max)
}
