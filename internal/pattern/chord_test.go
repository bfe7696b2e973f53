package pattern

import (
	"testing"
	"time"

	"git.lost.host/meutraa/radial/internal/game"
)

func observe(c *Classifier, lanes []int, times []time.Duration, grade game.Grade) []game.ChordEvent {
	events := []game.ChordEvent{}
	for i := range lanes {
		if ev, ok := c.Observe(game.Judgement{Lane: lanes[i], Time: times[i], Grade: grade}); ok {
			events = append(events, ev)
		}
	}
	return events
}

func ms(values ...int) []time.Duration {
	out := make([]time.Duration, len(values))
	for i, v := range values {
		out[i] = time.Duration(v) * time.Millisecond
	}
	return out
}

func TestChordWithinWindow(t *testing.T) {
	events := observe(NewClassifier(), []int{0, 3, 5}, ms(1000, 1015, 1030), game.Perfect)
	threes := 0
	for _, ev := range events {
		if len(ev.Lanes) == 3 {
			threes++
			if ev.Lanes[0] != 0 || ev.Lanes[1] != 3 || ev.Lanes[2] != 5 {
				t.Errorf("unexpected lanes %v", ev.Lanes)
			}
		}
	}
	if threes != 1 {
		t.Log("Events", events)
		t.Fail()
	}
}

func TestNoChordOutsideWindow(t *testing.T) {
	events := observe(NewClassifier(), []int{0, 3, 5}, ms(1000, 1050, 1100), game.Perfect)
	if len(events) != 0 {
		t.Errorf("expected no chords, got %v", events)
	}
}

func TestSameLaneIsNotAChord(t *testing.T) {
	events := observe(NewClassifier(), []int{2, 2}, ms(1000, 1010), game.Good)
	if len(events) != 0 {
		t.Errorf("expected no chords, got %v", events)
	}
}

func TestMissesIgnored(t *testing.T) {
	events := observe(NewClassifier(), []int{0, 1}, ms(1000, 1005), game.Miss)
	if len(events) != 0 {
		t.Errorf("expected no chords, got %v", events)
	}
}
