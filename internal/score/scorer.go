package score

import (
	"git.lost.host/meutraa/radial/internal/game"
)

type Scorer interface {
	// Fold a judgement into the cumulative state
	Apply(grade game.Grade)

	// Copy of the current state
	State() State
}

// State is the cumulative score of a single play of a chart.
type State struct {
	Perfect, Good, Bad, Miss int
	Combo, MaxCombo          int
	Points                   int64 // Raw points, 300 per perfect
	TotalNotes               int   // Notes in the whole chart
}

func (s State) Judged() int {
	return s.Perfect + s.Good + s.Bad + s.Miss
}

// Accuracy is the share of the maximum points earned so far, scaled to 101.
// Nothing judged yet counts as perfect.
func (s State) Accuracy() float64 {
	judged := s.Judged()
	if judged == 0 {
		return 101
	}
	return float64(s.Points) / float64(judged*300) * 101
}

// DisplayScore normalises points against the maximum of the entire chart,
// so it only reaches 1,010,000 when every note is a perfect.
func (s State) DisplayScore() int64 {
	if s.TotalNotes <= 0 {
		return 0
	}
	return int64(float64(s.Points) / float64(int64(s.TotalNotes)*300) * 1010000)
}

func (s State) Stats() game.Stats {
	return game.Stats{
		Score:    s.DisplayScore(),
		Combo:    s.Combo,
		MaxCombo: s.MaxCombo,
		Perfect:  s.Perfect,
		Good:     s.Good,
		Bad:      s.Bad,
		Miss:     s.Miss,
		Accuracy: s.Accuracy(),
	}
}
