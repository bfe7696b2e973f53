package engine

import (
	"sort"
	"time"

	"git.lost.host/meutraa/radial/internal/game"
)

// autoplayRelease is how long autoplay holds a control for a tap.
const autoplayRelease = 30 * time.Millisecond

// Replay drives a fresh engine over a recorded input log, ticking at every
// input and finally at end. The same log always yields the same result.
func Replay(notes game.Timeline, cfg Config, inputs []game.Input, end time.Duration) (game.Stats, []game.Judgement) {
	ins := make([]game.Input, len(inputs))
	copy(ins, inputs)
	sort.SliceStable(ins, func(i, j int) bool {
		return ins[i].Time < ins[j].Time
	})

	e := New(notes, cfg)
	judgements := []game.Judgement{}
	for _, in := range ins {
		f := e.OnTick(in.Time)
		judgements = append(judgements, f.Judgements...)
		f = e.OnInput(in.Control, in.Pressed, in.Time)
		judgements = append(judgements, f.Judgements...)
	}
	f := e.OnTick(end)
	judgements = append(judgements, f.Judgements...)
	return e.Finish(), judgements
}

// Autoplay produces the input log of a perfect play of notes.
func Autoplay(notes game.Timeline) []game.Input {
	inputs := make([]game.Input, 0, 2*len(notes))
	for _, n := range notes {
		control := game.LaneControl(n.Lane)
		release := n.Time + autoplayRelease
		if n.IsHold() {
			release = n.TimeEnd
		}
		inputs = append(inputs,
			game.Input{Control: control, Pressed: true, Time: n.Time},
			game.Input{Control: control, Pressed: false, Time: release},
		)
	}
	sort.SliceStable(inputs, func(i, j int) bool {
		return inputs[i].Time < inputs[j].Time
	})
	return inputs
}
