package parser

import (
	"math"
	"sort"
	"time"

	"git.lost.host/meutraa/radial/internal/game"
)

// DefaultTempo is used when a chart has no usable timing points.
const DefaultTempo = 120.0

type tempoBucket struct {
	beatLength float64
	duration   time.Duration
}

// PrimaryTempo returns the tempo in effect for the longest share of the
// chart. Each uninherited point owns the time until the next one, the last
// until lastNote. Beat lengths are merged to one decimal place.
func PrimaryTempo(points []game.TimingPoint, lastNote time.Duration) float64 {
	valid := []game.TimingPoint{}
	for _, p := range points {
		if p.Uninherited && p.BeatLength > 0 && !math.IsInf(p.BeatLength, 0) && !math.IsNaN(p.BeatLength) {
			valid = append(valid, p)
		}
	}
	if len(valid) == 0 {
		return DefaultTempo
	}
	sort.SliceStable(valid, func(i, j int) bool {
		return valid[i].Time < valid[j].Time
	})

	buckets := map[int64]*tempoBucket{}
	order := []int64{}
	for i, p := range valid {
		end := lastNote
		if i+1 < len(valid) {
			end = valid[i+1].Time
		}
		d := end - p.Time
		if d < 0 {
			d = 0
		}
		key := int64(math.Round(p.BeatLength * 10))
		b, ok := buckets[key]
		if !ok {
			b = &tempoBucket{beatLength: p.BeatLength}
			buckets[key] = b
			order = append(order, key)
		}
		b.duration += d
	}

	best := buckets[order[0]]
	for _, key := range order[1:] {
		if b := buckets[key]; b.duration > best.duration {
			best = b
		}
	}
	return 60000 / best.beatLength
}
