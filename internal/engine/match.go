package engine

import (
	"time"

	"git.lost.host/meutraa/radial/internal/game"
)

func abs(x time.Duration) time.Duration {
	if x < 0 {
		return -x
	}
	return x
}

// match finds the pending note closest to clock in either of the lanes.
// Taking the global minimum over both lanes is the same as picking the
// nearest note per lane and then the nearer of the two. Ties keep the
// earlier note. Returns -1 when no note is a candidate.
func (e *Engine) match(lanes [2]int, clock time.Duration) (int, time.Duration) {
	bad := e.cfg.Windows.Bad
	best, bestAbs, bestDeviation := -1, time.Duration(0), time.Duration(0)

	for i := e.start; i < len(e.notes); i++ {
		n := &e.notes[i]
		d := clock - n.Time
		if d < -bad {
			// Every later note is further in the future
			break
		}
		if e.states[i] != game.Pending || (n.Lane != lanes[0] && n.Lane != lanes[1]) {
			continue
		}
		if d > bad {
			// Already past its window, the next tick misses it
			continue
		}
		if a := abs(d); best < 0 || a < bestAbs {
			best, bestAbs, bestDeviation = i, a, d
		}
	}
	return best, bestDeviation
}
