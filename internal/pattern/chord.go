// Package pattern derives cosmetic signals from the judgement stream.
// Nothing here feeds back into grading or score.
package pattern

import (
	"sort"
	"time"

	"git.lost.host/meutraa/radial/internal/game"
)

// ChordWindow is how close together hits must land to count as one chord.
const ChordWindow = 40 * time.Millisecond

type hit struct {
	lane int
	time time.Duration
}

type Classifier struct {
	Window time.Duration
	recent []hit
}

func NewClassifier() *Classifier {
	return &Classifier{Window: ChordWindow}
}

// Observe records a judgement and reports a chord when the hits of the
// trailing window cover at least two distinct lanes.
func (c *Classifier) Observe(j game.Judgement) (game.ChordEvent, bool) {
	if j.Grade == game.Miss {
		return game.ChordEvent{}, false
	}

	cutoff := j.Time - c.Window
	kept := c.recent[:0]
	for _, h := range c.recent {
		if h.time >= cutoff {
			kept = append(kept, h)
		}
	}
	c.recent = append(kept, hit{lane: j.Lane, time: j.Time})

	seen := map[int]bool{}
	lanes := []int{}
	for _, h := range c.recent {
		if !seen[h.lane] {
			seen[h.lane] = true
			lanes = append(lanes, h.lane)
		}
	}
	if len(lanes) < 2 {
		return game.ChordEvent{}, false
	}
	sort.Ints(lanes)
	return game.ChordEvent{Time: j.Time, Lanes: lanes}, true
}

func (c *Classifier) Reset() {
	c.recent = c.recent[:0]
}
