package theme

import (
	"image/color"

	"git.lost.host/meutraa/radial/internal/game"
)

type DefaultTheme struct {
}

const (
	tapSym  = "⬤"
	holdSym = "◆"
)

var (
	// Opposite lanes share a control and a colour
	laneColors = [game.ControlCount]color.RGBA{
		{236, 30, 0, 255},  // red
		{0, 118, 236, 255}, // blue
		{236, 195, 0, 255}, // yellow
		{0, 236, 128, 255}, // green
	}
	gradeColors = map[game.Grade]color.RGBA{
		game.Perfect: {173, 236, 236, 255}, // light blue
		game.Good:    {0, 236, 128, 255},   // green
		game.Bad:     {236, 128, 0, 255},   // orange
		game.Miss:    {236, 0, 106, 255},   // pink
	}
	receptorSyms = [game.LaneCount]string{"↑", "↗", "→", "↘", "↓", "↙", "←", "↖"}
	white        = color.RGBA{255, 255, 255, 255}
)

func (t *DefaultTheme) NoteColor(lane int) color.RGBA {
	if lane < 0 {
		return white
	}
	return laneColors[game.LaneControl(lane)]
}

func (t *DefaultTheme) GradeColor(grade game.Grade) color.RGBA {
	col, ok := gradeColors[grade]
	if !ok {
		return white
	}
	return col
}

func (t *DefaultTheme) NoteSymbol(hold bool) string {
	if hold {
		return holdSym
	}
	return tapSym
}

func (t *DefaultTheme) Receptor(lane int) string {
	if lane < 0 || lane >= game.LaneCount {
		return "·"
	}
	return receptorSyms[lane]
}
