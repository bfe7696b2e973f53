// Package clock derives the single engine clock every timing decision uses.
package clock

import (
	"sync"
	"time"

	"github.com/faiface/beep"
)

type Source interface {
	// Seconds of playback elapsed
	Seconds() float64
}

// Derive turns a playback position into engine time, compensating for the
// chart start offset and the user's audio/input offset.
func Derive(seconds float64, startOffset, userOffset time.Duration) time.Duration {
	return time.Duration(seconds*float64(time.Second)) - startOffset - userOffset
}

type Clock struct {
	Source      Source
	StartOffset time.Duration
	UserOffset  time.Duration
}

func (c *Clock) Now() time.Duration {
	return Derive(c.Source.Seconds(), c.StartOffset, c.UserOffset)
}

type Positioner interface {
	// Samples played so far
	Position() int
}

// AudioSource reads the position of a playing stream. Locker guards the
// stream against the audio goroutine, usually the speaker lock.
type AudioSource struct {
	Streamer Positioner
	Rate     beep.SampleRate
	Locker   sync.Locker
}

// Counter counts the samples a streamer produced. Unlike the position of a
// seekable stream it includes any silence sequenced in front of it.
type Counter struct {
	beep.Streamer
	pos int
}

func (c *Counter) Stream(samples [][2]float64) (int, bool) {
	n, ok := c.Streamer.Stream(samples)
	c.pos += n
	return n, ok
}

func (c *Counter) Position() int {
	return c.pos
}

func (a *AudioSource) Seconds() float64 {
	if a.Locker != nil {
		a.Locker.Lock()
		defer a.Locker.Unlock()
	}
	return a.Rate.D(a.Streamer.Position()).Seconds()
}

// WallSource measures elapsed wall time, for charts without audio.
type WallSource struct {
	Start time.Time
	now   func() time.Time
}

func NewWallSource(start time.Time) *WallSource {
	return &WallSource{Start: start, now: time.Now}
}

func (w *WallSource) Seconds() float64 {
	return w.now().Sub(w.Start).Seconds()
}
