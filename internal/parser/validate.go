package parser

import (
	"git.lost.host/meutraa/radial/internal/game"
	"github.com/pkg/errors"
)

// Validate checks the timeline invariants every decoded chart holds.
func Validate(notes game.Timeline) error {
	for i := range notes {
		n := &notes[i]
		if n.Lane < 0 || n.Lane >= game.LaneCount {
			return errors.Errorf("note %d: lane %d out of range", i, n.Lane)
		}
		if n.TimeEnd != 0 && n.TimeEnd <= n.Time {
			return errors.Errorf("note %d: hold ends at %v before it starts at %v", i, n.TimeEnd, n.Time)
		}
		if i > 0 && notes[i-1].Time > n.Time {
			return errors.Errorf("note %d: out of order", i)
		}
	}
	return nil
}
