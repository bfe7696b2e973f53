package game

import (
	"time"
)

type Grade uint8

const (
	Perfect Grade = iota
	Good
	Bad
	Miss
)

var gradeNames = [...]string{"Perfect", "Good", "Bad", "Miss"}

func (g Grade) String() string {
	if int(g) < len(gradeNames) {
		return gradeNames[g]
	}
	return "Unknown"
}

// Points awarded for the grade, out of a maximum of 300.
func (g Grade) Points() int64 {
	switch g {
	case Perfect:
		return 300
	case Good:
		return 100
	case Bad:
		return 50
	}
	return 0
}

type State uint8

const (
	Pending State = iota
	Resolved
	Missed
)

// Windows are the absolute timing thresholds for each grade.
// Bad only applies to late inputs.
type Windows struct {
	Perfect time.Duration
	Good    time.Duration
	Bad     time.Duration
}

var DefaultWindows = Windows{
	Perfect: 80 * time.Millisecond,
	Good:    120 * time.Millisecond,
	Bad:     160 * time.Millisecond,
}

// Judge grades a deviation, positive deviations are late.
// The second return is false when the deviation does not match at all.
func (w Windows) Judge(deviation time.Duration) (Grade, bool) {
	abs := deviation
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs <= w.Perfect:
		return Perfect, true
	case abs <= w.Good:
		return Good, true
	case deviation > 0 && deviation <= w.Bad:
		return Bad, true
	}
	return Miss, false
}

type Judgement struct {
	Index     int // Index of the note in the timeline
	Lane      int
	Grade     Grade
	Deviation time.Duration // Engine clock minus note time, positive is late
	Time      time.Duration // Engine clock at which the judgement was made
	Jack      bool          // Rapid repeat on the same lane
}

// ChordEvent marks several lanes being hit at effectively the same time.
type ChordEvent struct {
	Time  time.Duration
	Lanes []int
}
