package game

import "time"

type Asset struct {
	Name string
	Data []byte
}

type Chart struct {
	Title      string
	Artist     string
	Version    string
	Tempo      float64 // Primary tempo in beats per minute
	Difficulty Difficulty

	Notes        Timeline
	TimingPoints []TimingPoint
	NoteCount    int64
	HoldCount    int64

	Audio       Asset
	AudioLength time.Duration // Zero when there is no decodable audio
	Background  Asset
}

// Count recomputes the note and hold counts from the timeline.
func (c *Chart) Count() {
	c.NoteCount, c.HoldCount = int64(len(c.Notes)), 0
	for i := range c.Notes {
		if c.Notes[i].IsHold() {
			c.HoldCount++
		}
	}
}
