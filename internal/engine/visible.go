package engine

import (
	"time"

	"git.lost.host/meutraa/radial/internal/game"
)

type VisibleNote struct {
	Index    int
	Note     game.Note
	Held     bool
	Distance time.Duration // Note time minus clock, positive is upcoming
}

// Visible projects the notes a renderer should draw at clock: pending notes
// inside the look-ahead horizon that are not yet missed, and held holds.
// It does not change any state.
func (e *Engine) Visible(clock time.Duration) []VisibleNote {
	e.mu.Lock()
	defer e.mu.Unlock()

	horizon := clock + e.cfg.LookAhead
	bad := e.cfg.Windows.Bad
	out := []VisibleNote{}
	for i := e.start; i < len(e.notes); i++ {
		n := e.notes[i]
		if n.Time > horizon {
			break
		}
		switch {
		case e.held[i]:
		case e.states[i] == game.Pending && clock-n.Time <= bad:
		default:
			continue
		}
		out = append(out, VisibleNote{
			Index:    i,
			Note:     n,
			Held:     e.held[i],
			Distance: n.Time - clock,
		})
	}
	return out
}
