// Package engine judges player input against a chart timeline.
//
// An Engine owns every piece of mutable play state: the per note judgement
// state, the lane input state, the score tracker and the chord classifier.
// OnTick and OnInput are its only mutators and are serialized, so a note is
// judged at most once even when input arrives from another goroutine.
package engine

import (
	"sync"
	"time"

	"git.lost.host/meutraa/radial/internal/game"
	"git.lost.host/meutraa/radial/internal/pattern"
	"git.lost.host/meutraa/radial/internal/score"
)

type Config struct {
	Windows    game.Windows
	LookAhead  time.Duration // How far ahead of the clock notes become visible
	JackWindow time.Duration // Repeat hits on a lane closer than this are jacks
}

var DefaultConfig = Config{
	Windows:    game.DefaultWindows,
	LookAhead:  1500 * time.Millisecond,
	JackWindow: 130 * time.Millisecond,
}

// Frame holds everything one mutation produced, in order.
type Frame struct {
	Judgements []game.Judgement
	Chords     []game.ChordEvent
}

type Engine struct {
	mu  sync.Mutex
	cfg Config

	notes   game.Timeline
	states  []game.State
	grades  []game.Grade
	held    []bool
	holding []int // Indices of held hold notes

	lanes [game.LaneCount]game.LaneInput

	// Every note before start is terminal and not held
	start int

	tracker    *score.Tracker
	deviations score.Window
	chords     *pattern.Classifier
}

func New(notes game.Timeline, cfg Config) *Engine {
	return &Engine{
		cfg:     cfg,
		notes:   notes,
		states:  make([]game.State, len(notes)),
		grades:  make([]game.Grade, len(notes)),
		held:    make([]bool, len(notes)),
		tracker: score.NewTracker(len(notes)),
		chords:  pattern.NewClassifier(),
	}
}

// OnTick advances the engine clock, missing notes whose window elapsed and
// ending holds that ran past their end.
func (e *Engine) OnTick(clock time.Duration) Frame {
	e.mu.Lock()
	defer e.mu.Unlock()

	var f Frame
	e.advance(clock, &f)
	return f
}

// OnInput applies a press or release of a physical control. Controls out of
// range are ignored.
func (e *Engine) OnInput(control int, pressed bool, clock time.Duration) Frame {
	e.mu.Lock()
	defer e.mu.Unlock()

	var f Frame
	lanes, ok := game.ControlLanes(control)
	if !ok {
		return f
	}
	e.advance(clock, &f)

	for _, l := range lanes {
		e.lanes[l].Held = pressed
		if pressed {
			e.lanes[l].LastPress = clock
		}
	}

	if !pressed {
		e.release(lanes)
		return f
	}

	index, deviation := e.match(lanes, clock)
	if index < 0 {
		return f
	}
	grade, ok := e.cfg.Windows.Judge(deviation)
	if !ok {
		// Nearest note is too early, this press is a whiff
		return f
	}
	e.hit(index, grade, deviation, clock, &f)
	return f
}

// Finish ends every hold and returns the final statistics.
func (e *Engine) Finish() game.Stats {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, i := range e.holding {
		e.held[i] = false
	}
	e.holding = e.holding[:0]
	return e.tracker.State().Stats()
}

// Done reports whether every note has reached a terminal state.
func (e *Engine) Done() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.start >= len(e.notes)
}

func (e *Engine) Score() score.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tracker.State()
}

// Deviations returns the mean and sample stdev of the recent hits.
func (e *Engine) Deviations() (mean, stdev time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.deviations.Mean(), e.deviations.Stdev()
}

func (e *Engine) Lane(lane int) game.LaneInput {
	e.mu.Lock()
	defer e.mu.Unlock()
	if lane < 0 || lane >= game.LaneCount {
		return game.LaneInput{}
	}
	return e.lanes[lane]
}

// Note returns the judgement state of the note at index.
func (e *Engine) Note(index int) (game.State, game.Grade, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if index < 0 || index >= len(e.notes) {
		return game.Pending, game.Miss, false
	}
	return e.states[index], e.grades[index], e.held[index]
}

func (e *Engine) advance(clock time.Duration, f *Frame) {
	bad := e.cfg.Windows.Bad
	for i := e.start; i < len(e.notes); i++ {
		if clock-e.notes[i].Time <= bad {
			break
		}
		if e.states[i] == game.Pending {
			e.miss(i, clock, f)
		}
	}

	kept := e.holding[:0]
	for _, i := range e.holding {
		if clock >= e.notes[i].TimeEnd {
			e.held[i] = false
			continue
		}
		kept = append(kept, i)
	}
	e.holding = kept

	for e.start < len(e.notes) && e.states[e.start] != game.Pending && !e.held[e.start] {
		e.start++
	}
}

func (e *Engine) miss(i int, clock time.Duration, f *Frame) {
	n := &e.notes[i]
	e.states[i] = game.Missed
	e.grades[i] = game.Miss
	e.tracker.Apply(game.Miss)
	f.Judgements = append(f.Judgements, game.Judgement{
		Index:     i,
		Lane:      n.Lane,
		Grade:     game.Miss,
		Deviation: clock - n.Time,
		Time:      clock,
	})
}

func (e *Engine) hit(i int, grade game.Grade, deviation, clock time.Duration, f *Frame) {
	n := &e.notes[i]
	e.states[i] = game.Resolved
	e.grades[i] = grade

	lane := &e.lanes[n.Lane]
	gap := clock - lane.LastHit
	jack := lane.HasHit && gap > 0 && gap < e.cfg.JackWindow
	lane.LastHit, lane.HasHit = clock, true

	if n.IsHold() && clock < n.TimeEnd {
		e.held[i] = true
		e.holding = append(e.holding, i)
	}

	e.deviations.Push(deviation)
	e.tracker.Apply(grade)

	j := game.Judgement{
		Index:     i,
		Lane:      n.Lane,
		Grade:     grade,
		Deviation: deviation,
		Time:      clock,
		Jack:      jack,
	}
	f.Judgements = append(f.Judgements, j)
	if chord, ok := e.chords.Observe(j); ok {
		f.Chords = append(f.Chords, chord)
	}
}

func (e *Engine) release(lanes [2]int) {
	kept := e.holding[:0]
	for _, i := range e.holding {
		l := e.notes[i].Lane
		if l == lanes[0] || l == lanes[1] {
			e.held[i] = false
			continue
		}
		kept = append(kept, i)
	}
	e.holding = kept
}
