package parser

import (
	"math/rand"
	"time"

	"git.lost.host/meutraa/radial/internal/game"
)

type DemoOptions struct {
	Tempo      float64       // Beats per minute
	Length     time.Duration // Stop placing notes after this
	Density    float64       // Chance of a note on each eighth beat
	HoldChance float64       // Chance a placed note is a hold
}

var DefaultDemoOptions = DemoOptions{
	Tempo:      128,
	Length:     60 * time.Second,
	Density:    0.6,
	HoldChance: 0.15,
}

// Demo generates a playable chart without any container. The same seed and
// options always produce the same chart.
func Demo(seed int64, opts DemoOptions) *game.Chart {
	if opts.Tempo <= 0 {
		opts.Tempo = DefaultDemoOptions.Tempo
	}
	rng := rand.New(rand.NewSource(seed))
	beat := time.Duration(float64(time.Minute) / opts.Tempo)
	step := beat / 2

	// Lanes blocked by a hold until the given time
	busy := [game.LaneCount]time.Duration{}
	notes := game.Timeline{}
	for t := 2 * beat; t < opts.Length; t += step {
		if rng.Float64() >= opts.Density {
			continue
		}
		lane := rng.Intn(game.LaneCount)
		if busy[lane] > t {
			continue
		}
		note := game.Note{Lane: lane, Time: t}
		if rng.Float64() < opts.HoldChance {
			note.TimeEnd = t + beat*time.Duration(1+rng.Intn(2))
			busy[lane] = note.TimeEnd
		}
		notes = append(notes, note)
	}

	chart := &game.Chart{
		Title:        "Demo",
		Artist:       "radial",
		Version:      "Procedural",
		Difficulty:   game.Difficulty{CircleSize: game.LaneCount},
		Notes:        notes,
		TimingPoints: []game.TimingPoint{{BeatLength: float64(beat) / float64(time.Millisecond), Meter: 4, Uninherited: true}},
	}
	chart.Tempo = PrimaryTempo(chart.TimingPoints, notes.End())
	chart.Count()
	return chart
}
