package parser

import (
	"math"

	"git.lost.host/meutraa/radial/internal/game"
)

// playfieldWidth is the horizontal extent of hit object x coordinates.
const playfieldWidth = 512

// Column maps an x coordinate to one of keys raw columns.
func Column(x int, keys int) int {
	if keys <= 0 {
		keys = 4
	}
	col := int(math.Floor(float64(x) * float64(keys) / playfieldWidth))
	return clamp(col, 0, keys-1)
}

// Lane maps a raw column onto the radial lanes. Four key charts expand each
// column to two opposite lanes, alternating on a pure function of time and
// column so the same chart always decodes the same way.
func Lane(column int, keys int, ms float64) int {
	if keys <= 0 {
		keys = 4
	}
	var lane int
	if keys == game.ControlCount {
		parity := (int64(math.Floor(ms/20)) + int64(column)) % 2
		if parity < 0 {
			parity += 2
		}
		lane = column + int(parity)*(game.LaneCount/2)
	} else {
		lane = column * game.LaneCount / keys
	}
	return clamp(lane, 0, game.LaneCount-1)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
