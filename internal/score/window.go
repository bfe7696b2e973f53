package score

import (
	"math"
	"time"
)

// WindowSize bounds how many recent deviations are kept.
const WindowSize = 30

// Window is a ring of the most recent hit deviations.
type Window struct {
	values [WindowSize]time.Duration
	next   int
	count  int
}

func (w *Window) Push(d time.Duration) {
	w.values[w.next] = d
	w.next = (w.next + 1) % WindowSize
	if w.count < WindowSize {
		w.count++
	}
}

func (w *Window) Len() int {
	return w.count
}

// Values returns the deviations oldest first.
func (w *Window) Values() []time.Duration {
	out := make([]time.Duration, 0, w.count)
	start := (w.next - w.count + WindowSize) % WindowSize
	for i := 0; i < w.count; i++ {
		out = append(out, w.values[(start+i)%WindowSize])
	}
	return out
}

func (w *Window) Mean() time.Duration {
	if w.count == 0 {
		return 0
	}
	sum := time.Duration(0)
	for _, v := range w.Values() {
		sum += v
	}
	return sum / time.Duration(w.count)
}

// Stdev is the sample standard deviation, zero until two hits are known.
func (w *Window) Stdev() time.Duration {
	if w.count < 2 {
		return 0
	}
	mean := float64(w.Mean())
	stdev := 0.0
	for _, v := range w.Values() {
		xi := float64(v) - mean
		stdev += xi * xi
	}
	stdev /= float64(w.count - 1)
	return time.Duration(math.Sqrt(stdev))
}
