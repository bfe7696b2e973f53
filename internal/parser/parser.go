package parser

import (
	"io"

	"git.lost.host/meutraa/radial/internal/game"
)

type Parser interface {
	// Parse the chart text, asset references are left unresolved
	Parse(r io.Reader) (*game.Chart, error)

	// Decode a chart container and resolve its assets
	DecodeContainer(data []byte) (*game.Chart, error)
}
