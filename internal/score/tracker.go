package score

import (
	"git.lost.host/meutraa/radial/internal/game"
)

type Tracker struct {
	state State
}

func NewTracker(totalNotes int) *Tracker {
	return &Tracker{state: State{TotalNotes: totalNotes}}
}

func (t *Tracker) Apply(grade game.Grade) {
	s := &t.state
	switch grade {
	case game.Miss:
		s.Miss++
		s.Combo = 0
		return
	case game.Perfect:
		s.Perfect++
	case game.Good:
		s.Good++
	case game.Bad:
		s.Bad++
	default:
		return
	}
	s.Points += grade.Points()
	s.Combo++
	if s.Combo > s.MaxCombo {
		s.MaxCombo = s.Combo
	}
}

func (t *Tracker) State() State {
	return t.state
}
