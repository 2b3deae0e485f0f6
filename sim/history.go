package sim

// historySize is how many recent grid hashes are kept for cycle detection
const historySize = 5

// history remembers recent grid hashes to spot static or oscillating grids
type history struct {
	size   int
	hashes []string
}

func newHistory(size int) *history {
	return &history{size: size}
}

// Push records hash and returns the period of the cycle it closes, or 0.
// A static grid has period 1.
func (h *history) Push(hash string) int {
	period := 0
	for i := len(h.hashes) - 1; i >= 0; i-- {
		if h.hashes[i] == hash {
			period = len(h.hashes) - i
			break
		}
	}

	h.hashes = append(h.hashes, hash)
	if len(h.hashes) > h.size {
		h.hashes = h.hashes[1:]
	}
	return period
}
