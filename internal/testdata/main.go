// Package testdata builds chart fixtures for tests.
package testdata

import (
	"bytes"
	"encoding/binary"
	"sort"

	"github.com/klauspost/compress/zip"
)

// Chart is a four key chart with two tempos, a hold, objects out of order
// and a few malformed lines.
const Chart = `osu file format v14

[General]
AudioFilename: Audio.WAV
AudioLeadIn: 0
Mode: 3

[Editor]
DistanceSpacing: 1

[Metadata]
Title:Fixture
Artist:Nobody
Version:Hard

[Difficulty]
HPDrainRate:8
CircleSize:4
OverallDifficulty:8

[Events]
//Background and Video events
0,0,"BG.jpg",0,0

[Colours]
Combo1 : 255,0,0

[TimingPoints]
0,400,4,2,0,60,1,0
3000,300,4,2,0,60,1,0
4000,-100,4,2,0,60,0,0
7000,400.04,4,2,0,60,1,0
not,a,timing,point

[HitObjects]
64,192,1000,1,0,0:0:0:0:
192,192,1500,128,0,2500:0:0:0:0:
320,192,1250,1,0,0:0:0:0:
448,192,2000,1,0,0:0:0:0:
64,192,bad,1,0,0:0:0:0:
448,192,2000,128,0,1900:0:0:0:0:
320,192,9000,1,0,0:0:0:0:
`

// Container zips files into a chart container.
func Container(files map[string][]byte) []byte {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, name := range names {
		f, err := w.Create(name)
		if nil != err {
			panic(err)
		}
		if _, err := f.Write(files[name]); nil != err {
			panic(err)
		}
	}
	if err := w.Close(); nil != err {
		panic(err)
	}
	return buf.Bytes()
}

// WAV returns a silent 16 bit mono PCM wave of the given sample count.
func WAV(rate int32, samples int32) []byte {
	var buf bytes.Buffer
	dataSize := samples * 2
	write := func(v interface{}) {
		binary.Write(&buf, binary.LittleEndian, v)
	}
	buf.WriteString("RIFF")
	write(int32(36 + dataSize))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	write(int32(16))
	write(int16(1))  // PCM
	write(int16(1))  // Channels
	write(rate)      // Sample rate
	write(rate * 2)  // Byte rate
	write(int16(2))  // Bytes per frame
	write(int16(16)) // Bits per sample
	buf.WriteString("data")
	write(dataSize)
	buf.Write(make([]byte, dataSize))
	return buf.Bytes()
}
