package clock

import (
	"sync"
	"testing"
	"time"

	"github.com/faiface/beep"
)

type fakeStream struct {
	pos int
}

func (f *fakeStream) Stream(samples [][2]float64) (int, bool) {
	f.pos += len(samples)
	return len(samples), true
}
func (f *fakeStream) Err() error       { return nil }
func (f *fakeStream) Len() int         { return 1 << 30 }
func (f *fakeStream) Position() int    { return f.pos }
func (f *fakeStream) Seek(p int) error { f.pos = p; return nil }

func TestDerive(t *testing.T) {
	tests := []struct {
		Seconds     float64
		Start, User time.Duration
		Expected    time.Duration
	}{
		{0, 0, 0, 0},
		{1.5, 0, 0, 1500 * time.Millisecond},
		{2, 500 * time.Millisecond, 0, 1500 * time.Millisecond},
		{2, 0, -30 * time.Millisecond, 2030 * time.Millisecond},
		{0.25, 1 * time.Second, 20 * time.Millisecond, -770 * time.Millisecond},
	}
	for _, test := range tests {
		if got := Derive(test.Seconds, test.Start, test.User); got != test.Expected {
			t.Log("Test    ", test)
			t.Log("Got     ", got)
			t.Fail()
		}
	}
}

func TestAudioSource(t *testing.T) {
	stream := &fakeStream{}
	rate := beep.SampleRate(44100)
	c := Clock{
		Source:     &AudioSource{Streamer: stream, Rate: rate, Locker: &sync.Mutex{}},
		UserOffset: 10 * time.Millisecond,
	}
	stream.Seek(44100 * 2)
	if got := c.Now(); got != 1990*time.Millisecond {
		t.Errorf("expected 1.99s, got %v", got)
	}
}

func TestWallSource(t *testing.T) {
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	w := NewWallSource(start)
	w.now = func() time.Time { return start.Add(750 * time.Millisecond) }
	c := Clock{Source: w, StartOffset: 250 * time.Millisecond}
	if got := c.Now(); got != 500*time.Millisecond {
		t.Errorf("expected 500ms, got %v", got)
	}
}

func TestCounterIncludesSilence(t *testing.T) {
	rate := beep.SampleRate(1000)
	counter := &Counter{Streamer: beep.Seq(beep.Silence(rate.N(time.Second)), &fakeStream{})}
	c := Clock{
		Source:      &AudioSource{Streamer: counter, Rate: rate},
		StartOffset: time.Second,
	}

	samples := make([][2]float64, 500)
	counter.Stream(samples)
	if got := c.Now(); got != -500*time.Millisecond {
		t.Errorf("expected -500ms during the lead in, got %v", got)
	}
	counter.Stream(samples)
	counter.Stream(samples)
	if got := c.Now(); got != 500*time.Millisecond {
		t.Errorf("expected 500ms into the track, got %v", got)
	}
}
