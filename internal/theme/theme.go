package theme

import (
	"image/color"

	"git.lost.host/meutraa/radial/internal/game"
)

type Theme interface {
	NoteColor(lane int) color.RGBA
	GradeColor(grade game.Grade) color.RGBA
	NoteSymbol(hold bool) string
	Receptor(lane int) string
}
