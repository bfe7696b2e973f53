package render

import (
	"fmt"
	"math"
	"time"

	"git.lost.host/meutraa/radial/internal/engine"
	"git.lost.host/meutraa/radial/internal/game"
	"git.lost.host/meutraa/radial/internal/score"
	"git.lost.host/meutraa/radial/internal/theme"
	"github.com/dustin/go-humanize"
	"github.com/hako/durafmt"
)

// HUD is the status shown beside the playfield.
type HUD struct {
	Chart       *game.Chart
	Score       score.State
	Mean, Stdev time.Duration
	Clock       time.Duration
	End         time.Duration
}

type cell struct {
	row, col int
}

// Playfield lays the eight lanes out as spokes around the centre of the
// screen. Notes start at the centre and reach their receptor on the ring
// when they are due.
type Playfield struct {
	Theme     theme.Theme
	LookAhead time.Duration

	width, height int
	centre        cell
	radius        float64
	sideCol       int

	drawn []cell // Note cells of the last frame, cleared before the next
}

const (
	judgementFrames = 60
	chordFrames     = 30
)

func (p *Playfield) Resize(width, height int) {
	p.width, p.height = width, height
	p.centre = cell{row: height / 2, col: width / 2}
	// Terminal cells are about twice as tall as they are wide
	p.radius = math.Min(float64(height/2-2), float64(width/4-2))
	if p.radius < 1 {
		p.radius = 1
	}
	p.sideCol = 2
}

// Position returns the cell of a note in lane that is distance away from
// being due. Late notes continue past the ring.
func (p *Playfield) Position(lane int, distance time.Duration) (row, col int) {
	progress := 1.0
	if p.LookAhead > 0 {
		progress = 1 - float64(distance)/float64(p.LookAhead)
	}
	if progress < 0 {
		progress = 0
	}
	r := p.radius * progress
	angle := float64(lane) * math.Pi / 4
	row = p.centre.row - int(math.Round(math.Cos(angle)*r))
	col = p.centre.col + int(math.Round(math.Sin(angle)*r*2))
	return row, col
}

func (p *Playfield) inside(row, col int) bool {
	return row >= 1 && row <= p.height && col >= 1 && col <= p.width
}

func (p *Playfield) Draw(r Renderer, hud HUD, notes []engine.VisibleNote) {
	for _, c := range p.drawn {
		r.Fill(c.row, c.col, " ")
	}
	p.drawn = p.drawn[:0]

	for lane := 0; lane < game.LaneCount; lane++ {
		row, col := p.Position(lane, 0)
		r.FillColor(row, col, p.Theme.NoteColor(lane), p.Theme.Receptor(lane))
	}

	for _, n := range notes {
		distance := n.Distance
		if n.Held && distance < 0 {
			// Held heads stay on the receptor
			distance = 0
		}
		if n.Note.IsHold() {
			clock := n.Note.Time - n.Distance
			end := n.Note.TimeEnd - clock
			if end < p.LookAhead {
				p.plot(r, n.Note.Lane, end, "·")
			}
		}
		p.plot(r, n.Note.Lane, distance, p.Theme.NoteSymbol(n.Note.IsHold()))
	}

	p.drawHUD(r, hud)
}

func (p *Playfield) plot(r Renderer, lane int, distance time.Duration, symbol string) {
	row, col := p.Position(lane, distance)
	if !p.inside(row, col) {
		return
	}
	r.FillColor(row, col, p.Theme.NoteColor(lane), symbol)
	p.drawn = append(p.drawn, cell{row, col})
}

func (p *Playfield) drawHUD(r Renderer, hud HUD) {
	line := func(row int, format string, args ...interface{}) {
		r.Fill(row, p.sideCol, fmt.Sprintf("%-28s", fmt.Sprintf(format, args...)))
	}
	s := hud.Score
	if hud.Chart != nil {
		line(2, "%s - %s", hud.Chart.Artist, hud.Chart.Title)
		line(3, "[%s] %.0f BPM", hud.Chart.Version, hud.Chart.Tempo)
		line(4, "Notes: %s  Holds: %s", humanize.Comma(hud.Chart.NoteCount), humanize.Comma(hud.Chart.HoldCount))
	}
	line(6, "Score:    %s", humanize.Comma(s.DisplayScore()))
	line(7, "Accuracy: %.2f%%", s.Accuracy())
	line(8, "Combo:    %d (%d)", s.Combo, s.MaxCombo)
	line(10, "Mean:     %+.1f ms", float64(hud.Mean)/float64(time.Millisecond))
	line(11, "Stdev:    %.1f ms", float64(hud.Stdev)/float64(time.Millisecond))
	line(12, "Left:     %s", Remaining(hud.End-hud.Clock))

	counts := []int{s.Perfect, s.Good, s.Bad, s.Miss}
	for i, g := range []game.Grade{game.Perfect, game.Good, game.Bad, game.Miss} {
		r.FillColor(14+i, p.sideCol, p.Theme.GradeColor(g), fmt.Sprintf("%-8s %6d", g.String()+":", counts[i]))
	}
}

// Judged flashes the grade of a judgement beside its receptor.
func (p *Playfield) Judged(r Renderer, j game.Judgement) {
	row, col := p.Position(j.Lane, -p.LookAhead/8)
	if !p.inside(row, col) {
		return
	}
	label := j.Grade.String()[:1]
	if j.Jack {
		label += "j"
	}
	r.AddDecoration(col, row, Colorize(p.Theme.GradeColor(j.Grade), label), judgementFrames)

	// Timing bar under the HUD, early to the left
	offset := int(j.Deviation / (10 * time.Millisecond))
	barRow, barCol := 20, p.sideCol+14+offset
	if p.inside(barRow, barCol) && barCol >= p.sideCol {
		r.AddDecoration(barCol, barRow, Colorize(p.Theme.GradeColor(j.Grade), "|"), judgementFrames)
	}
}

// Chord marks the centre when several lanes were hit together.
func (p *Playfield) Chord(r Renderer, c game.ChordEvent) {
	r.AddDecoration(p.centre.col, p.centre.row, fmt.Sprintf("%d", len(c.Lanes)), chordFrames)
}

// Remaining formats a duration left to play, never negative.
func Remaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	return durafmt.Parse(d.Truncate(time.Second)).LimitFirstN(2).String()
}
