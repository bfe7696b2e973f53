package main

import (
	"context"
	"os"
	"sync"
	"time"

	"git.lost.host/meutraa/radial/internal/clock"
	"git.lost.host/meutraa/radial/internal/config"
	"git.lost.host/meutraa/radial/internal/engine"
	"git.lost.host/meutraa/radial/internal/game"
	"git.lost.host/meutraa/radial/internal/input"
	"git.lost.host/meutraa/radial/internal/library"
	"git.lost.host/meutraa/radial/internal/parser"
	"git.lost.host/meutraa/radial/internal/render"
	"git.lost.host/meutraa/radial/internal/theme"
	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

// Keep playing this long after the last note could be judged
const tail = time.Second

type Program struct {
	Config   *config.Config
	Log      logrus.FieldLogger
	Parser   *parser.DefaultParser
	Theme    theme.Theme
	Renderer render.Renderer

	chart  *game.Chart
	engine *engine.Engine
	clock  *clock.Clock
	field  *render.Playfield
	end    time.Duration

	mu     sync.Mutex
	inputs []game.Input
	last   time.Duration // Clock of the last rendered frame
}

type speakerLock struct{}

func (speakerLock) Lock()   { speaker.Lock() }
func (speakerLock) Unlock() { speaker.Unlock() }

func (p *Program) Load(ctx context.Context) ([]library.Entry, error) {
	lib := &library.Library{Parser: p.Parser, Workers: p.Config.Workers, Log: p.Log}
	entries, failures, err := lib.Load(ctx, p.Config.Directory)
	if nil != err {
		return nil, err
	}
	p.Log.WithFields(logrus.Fields{
		"charts": len(entries),
		"failed": len(failures),
	}).Info("loaded chart library")
	if len(entries) == 0 {
		return nil, errors.Errorf("no playable charts in %s", p.Config.Directory)
	}
	return entries, nil
}

// Select prepares a fresh engine for chart.
func (p *Program) Select(chart *game.Chart) error {
	if err := parser.Validate(chart.Notes); nil != err {
		return errors.Wrap(err, "invalid chart")
	}
	cfg := p.Config.Engine()
	p.chart = chart
	p.engine = engine.New(chart.Notes, cfg)
	p.field = &render.Playfield{Theme: p.Theme, LookAhead: cfg.LookAhead}
	p.end = chart.Notes.End() + cfg.Windows.Bad + tail
	if chart.AudioLength > p.end {
		p.end = chart.AudioLength
	}
	p.inputs = []game.Input{}
	p.Log.WithFields(logrus.Fields{
		"title": chart.Title,
		"notes": chart.NoteCount,
		"holds": chart.HoldCount,
		"tempo": chart.Tempo,
	}).Info("selected chart")
	return nil
}

// startClock starts the audio, if any, after the configured delay. Without
// audio the clock follows the wall.
func (p *Program) startClock() (func(), error) {
	if len(p.chart.Audio.Data) == 0 {
		p.clock = &clock.Clock{
			Source:      clock.NewWallSource(time.Now()),
			StartOffset: p.Config.Delay,
			UserOffset:  p.Config.Offset,
		}
		return func() {}, nil
	}

	streamer, format, err := parser.OpenAudio(p.chart.Audio)
	if nil != err {
		return nil, errors.Wrap(err, "unable to open audio")
	}
	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/60)); nil != err {
		streamer.Close()
		return nil, errors.Wrap(err, "unable to open speaker")
	}
	counter := &clock.Counter{Streamer: beep.Seq(beep.Silence(format.SampleRate.N(p.Config.Delay)), streamer)}
	p.clock = &clock.Clock{
		Source:      &clock.AudioSource{Streamer: counter, Rate: format.SampleRate, Locker: speakerLock{}},
		StartOffset: p.Config.Delay,
		UserOffset:  p.Config.Offset,
	}
	speaker.Play(counter)
	return func() {
		speaker.Clear()
		streamer.Close()
	}, nil
}

func (p *Program) record(in game.Input) {
	p.mu.Lock()
	p.inputs = append(p.inputs, in)
	p.mu.Unlock()
}

// readInput applies input as it arrives, stamped with the clock on arrival.
func (p *Program) readInput(ctx context.Context, src input.Source, frames chan<- engine.Frame, quit func()) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-src.Events():
			if !ok {
				return
			}
			if ev.Quit {
				quit()
				return
			}
			now := p.clock.Now()
			p.record(game.Input{Control: ev.Control, Pressed: ev.Pressed, Time: now})
			select {
			case frames <- p.engine.OnInput(ev.Control, ev.Pressed, now):
			case <-ctx.Done():
				return
			}
		}
	}
}

func (p *Program) decorate(f engine.Frame) {
	for _, j := range f.Judgements {
		p.field.Judged(p.Renderer, j)
	}
	for _, c := range f.Chords {
		p.field.Chord(p.Renderer, c)
	}
}

func terminalSize() (int, int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if nil != err {
		return 80, 24
	}
	return width, height
}

// Play runs the chart until it ends, the player quits or ctx is done.
func (p *Program) Play(ctx context.Context, src input.Source) (game.Stats, error) {
	ctx, quit := context.WithCancel(ctx)
	defer quit()

	p.field.Resize(terminalSize())
	if err := p.Renderer.Init(); nil != err {
		return game.Stats{}, err
	}
	defer func() {
		if err := p.Renderer.Deinit(); nil != err {
			p.Log.WithError(err).Warn("unable to restore terminal")
		}
	}()

	stopAudio, err := p.startClock()
	if nil != err {
		return game.Stats{}, err
	}
	defer stopAudio()

	frames := make(chan engine.Frame, 128)
	go p.readInput(ctx, src, frames, quit)

	autoplay := []game.Input{}
	if p.Config.Autoplay {
		autoplay = engine.Autoplay(p.chart.Notes)
	}

	err = p.Renderer.RenderLoop(ctx, p.Config.FramePeriod, func() bool {
		now := p.clock.Now()
		for len(autoplay) > 0 && autoplay[0].Time <= now {
			in := autoplay[0]
			autoplay = autoplay[1:]
			p.record(in)
			p.decorate(p.engine.OnInput(in.Control, in.Pressed, in.Time))
		}
		p.decorate(p.engine.OnTick(now))
	drain:
		for {
			select {
			case f := <-frames:
				p.decorate(f)
			default:
				break drain
			}
		}

		mean, stdev := p.engine.Deviations()
		p.field.Draw(p.Renderer, render.HUD{
			Chart: p.chart,
			Score: p.engine.Score(),
			Mean:  mean,
			Stdev: stdev,
			Clock: now,
			End:   p.end,
		}, p.engine.Visible(now))

		p.mu.Lock()
		p.last = now
		p.mu.Unlock()
		return now < p.end
	}, nil)
	if nil != err && err != context.Canceled {
		return game.Stats{}, err
	}
	return p.engine.Finish(), nil
}

// Played is how far into the chart play got.
func (p *Program) Played() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.last < 0 {
		return 0
	}
	return p.last
}

// Verify replays the recorded input log and reports whether it reproduces
// the live result. Input stamped just before a frame but applied after it
// can make the two differ.
func (p *Program) Verify(stats game.Stats) bool {
	p.mu.Lock()
	inputs := make([]game.Input, len(p.inputs))
	copy(inputs, p.inputs)
	last := p.last
	p.mu.Unlock()

	replayed, _ := engine.Replay(p.chart.Notes, p.Config.Engine(), inputs, last)
	log := p.Log.WithFields(logrus.Fields{
		"inputs": len(inputs),
		"live":   stats.Score,
		"replay": replayed.Score,
	})
	if replayed != stats {
		log.Warn("replay of the input log differs from the live result")
		return false
	}
	log.Debug("replay of the input log matches")
	return true
}
