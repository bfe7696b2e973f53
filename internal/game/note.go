package game

import (
	"time"
)

// LaneCount is the number of radial lanes every chart is mapped onto.
const LaneCount = 8

type Note struct {
	X, Y    int           // Playfield position, cosmetic only
	Lane    int           // The radial lane, [0, LaneCount)
	Time    time.Duration // The time the note should be hit
	TimeEnd time.Duration // The time a hold note should be released, zero for taps
}

func (n *Note) IsHold() bool {
	return n.TimeEnd > n.Time
}

// Timeline is the decoded, time ordered note sequence of a chart.
// It is never mutated after decoding, notes are addressed by index.
type Timeline []Note

// End returns the last instant any note of the timeline is relevant.
func (t Timeline) End() time.Duration {
	end := time.Duration(0)
	for i := range t {
		if t[i].Time > end {
			end = t[i].Time
		}
		if t[i].TimeEnd > end {
			end = t[i].TimeEnd
		}
	}
	return end
}
