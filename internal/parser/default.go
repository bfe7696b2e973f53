package parser

import (
	"bufio"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"git.lost.host/meutraa/radial/internal/game"
	"github.com/sirupsen/logrus"
)

type section int

const (
	secNone section = iota
	secGeneral
	secMetadata
	secDifficulty
	secEvents
	secTimingPoints
	secHitObjects
)

var sections = map[string]section{
	"[general]":      secGeneral,
	"[metadata]":     secMetadata,
	"[difficulty]":   secDifficulty,
	"[events]":       secEvents,
	"[timingpoints]": secTimingPoints,
	"[hitobjects]":   secHitObjects,
}

func (s section) String() string {
	for name, sec := range sections {
		if sec == s {
			return name
		}
	}
	return "[none]"
}

// typeHold marks a hold note in the hit object type bit field.
const typeHold = 1 << 7

type DefaultParser struct {
	Log logrus.FieldLogger
}

// A hit object before its lane is known, the key count may only be seen
// after the hit objects.
type rawObject struct {
	x, y   int
	ms     float64
	endMs  float64
	isHold bool
}

func (p *DefaultParser) log() logrus.FieldLogger {
	if p.Log == nil {
		return logrus.StandardLogger()
	}
	return p.Log
}

func (p *DefaultParser) skip(sec section, n int, line, reason string) {
	p.log().WithFields(logrus.Fields{
		"section": sec,
		"line":    n,
		"text":    line,
	}).Debug(reason)
}

func splitKeyVal(line string) (string, string) {
	i := strings.IndexByte(line, ':')
	if i < 0 {
		return strings.TrimSpace(line), ""
	}
	return strings.TrimSpace(line[:i]), strings.TrimSpace(line[i+1:])
}

func splitCSV(line string) []string {
	parts := strings.Split(line, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func parseMs(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if nil != err {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, strconv.ErrRange
	}
	return v, nil
}

func toDuration(ms float64) time.Duration {
	return time.Duration(math.Round(ms * float64(time.Millisecond)))
}

func (p *DefaultParser) Parse(r io.Reader) (*game.Chart, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)

	chart := &game.Chart{Difficulty: game.Difficulty{CircleSize: 4}}
	objects := []rawObject{}
	sec := secNone
	n := 0

	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			// Unknown sections are skipped wholesale
			sec = sections[strings.ToLower(line)]
			continue
		}

		switch sec {
		case secGeneral:
			k, v := splitKeyVal(line)
			if strings.EqualFold(k, "AudioFilename") {
				chart.Audio.Name = v
			}
		case secMetadata:
			k, v := splitKeyVal(line)
			switch strings.ToLower(k) {
			case "title":
				chart.Title = v
			case "artist":
				chart.Artist = v
			case "version":
				chart.Version = v
			}
		case secDifficulty:
			k, v := splitKeyVal(line)
			f, err := strconv.ParseFloat(v, 64)
			if nil != err {
				p.skip(sec, n, line, "skipping malformed difficulty value")
				continue
			}
			switch strings.ToLower(k) {
			case "circlesize":
				chart.Difficulty.CircleSize = f
			case "hpdrainrate":
				chart.Difficulty.HPDrainRate = f
			case "overalldifficulty":
				chart.Difficulty.OverallDifficulty = f
			}
		case secEvents:
			if !strings.HasPrefix(line, "0,0,") {
				continue
			}
			parts := splitCSV(line)
			if len(parts) < 3 {
				p.skip(sec, n, line, "skipping background without a file")
				continue
			}
			chart.Background.Name = strings.Trim(parts[2], `"`)
		case secTimingPoints:
			tp, ok := parseTimingPoint(line)
			if !ok {
				p.skip(sec, n, line, "skipping malformed timing point")
				continue
			}
			chart.TimingPoints = append(chart.TimingPoints, tp)
		case secHitObjects:
			o, ok := parseHitObject(line)
			if !ok {
				p.skip(sec, n, line, "skipping malformed hit object")
				continue
			}
			objects = append(objects, o)
		}
	}
	if err := sc.Err(); nil != err {
		return nil, &DecodeError{Kind: ErrUnreadableChart, Err: err}
	}

	keys := int(math.Round(chart.Difficulty.CircleSize))
	chart.Notes = make(game.Timeline, 0, len(objects))
	for _, o := range objects {
		note := game.Note{
			X:    o.x,
			Y:    o.y,
			Lane: Lane(Column(o.x, keys), keys, o.ms),
			Time: toDuration(o.ms),
		}
		if o.isHold {
			end := toDuration(o.endMs)
			if end > note.Time {
				note.TimeEnd = end
			} else {
				p.log().WithField("time", note.Time).Debug("hold ends before it starts, decoding as a tap")
			}
		}
		chart.Notes = append(chart.Notes, note)
	}
	sort.SliceStable(chart.Notes, func(i, j int) bool {
		return chart.Notes[i].Time < chart.Notes[j].Time
	})

	last := time.Duration(0)
	if len(chart.Notes) > 0 {
		last = chart.Notes[len(chart.Notes)-1].Time
	}
	chart.Tempo = PrimaryTempo(chart.TimingPoints, last)
	chart.Count()
	return chart, nil
}

// time,beatLength,meter,sampleSet,sampleIndex,volume,uninherited,effects
func parseTimingPoint(line string) (game.TimingPoint, bool) {
	parts := splitCSV(line)
	if len(parts) < 2 {
		return game.TimingPoint{}, false
	}
	ms, err := parseMs(parts[0])
	if nil != err {
		return game.TimingPoint{}, false
	}
	beatLength, err := strconv.ParseFloat(parts[1], 64)
	if nil != err {
		return game.TimingPoint{}, false
	}
	tp := game.TimingPoint{
		Time:        toDuration(ms),
		BeatLength:  beatLength,
		Meter:       4,
		Uninherited: beatLength > 0,
	}
	if len(parts) > 2 {
		if meter, err := strconv.Atoi(parts[2]); nil == err && meter > 0 {
			tp.Meter = meter
		}
	}
	if len(parts) > 6 {
		tp.Uninherited = parts[6] == "1"
	}
	return tp, true
}

// x,y,time,type,hitSound,extra
func parseHitObject(line string) (rawObject, bool) {
	parts := splitCSV(line)
	if len(parts) < 4 {
		return rawObject{}, false
	}
	x, err := strconv.ParseFloat(parts[0], 64)
	if nil != err {
		return rawObject{}, false
	}
	y, err := strconv.ParseFloat(parts[1], 64)
	if nil != err {
		return rawObject{}, false
	}
	ms, err := parseMs(parts[2])
	if nil != err {
		return rawObject{}, false
	}
	typ, err := strconv.Atoi(parts[3])
	if nil != err {
		return rawObject{}, false
	}

	o := rawObject{x: int(x), y: int(y), ms: ms}
	if typ&typeHold != 0 {
		if len(parts) < 6 {
			return rawObject{}, false
		}
		end, err := parseMs(strings.SplitN(parts[5], ":", 2)[0])
		if nil != err {
			return rawObject{}, false
		}
		o.isHold, o.endMs = true, end
	}
	return o, true
}
