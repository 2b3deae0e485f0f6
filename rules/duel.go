package rules

/*
ApplyDuelRules determines the next state of a cell from the current generation.

Empty cells are claimed by the species with strictly more neighbors, provided it meets its
birth threshold; a tie leaves the cell empty. Occupied cells survive while their own
species' neighbor count stays within the survival range.
*/
func ApplyDuelRules(current Cell, countA, countB int, rs RuleSet) Cell {
	switch current {
	case Empty:
		if countA >= rs.A.BirthThreshold && countA > countB {
			return SpeciesA
		}
		if countB >= rs.B.BirthThreshold && countB > countA {
			return SpeciesB
		}
		return Empty
	case SpeciesA:
		if rs.A.Survival.Contains(countA) {
			return SpeciesA
		}
		return Empty
	case SpeciesB:
		if rs.B.Survival.Contains(countB) {
			return SpeciesB
		}
		return Empty
	}
	return Empty
}
