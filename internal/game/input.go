package game

import "time"

// Input is a single press or release of a physical control, stamped with
// the engine clock at which it happened.
type Input struct {
	Control int
	Pressed bool
	Time    time.Duration
}

// LaneInput is the physical input state of a single lane.
type LaneInput struct {
	Held      bool
	LastPress time.Duration
	LastHit   time.Duration
	HasHit    bool // LastHit is only meaningful once a note was hit
}
