package game

import (
	"time"
)

type TimingPoint struct {
	Time        time.Duration
	BeatLength  float64 // Milliseconds per beat, negative for inherited points
	Meter       int
	Uninherited bool
}
