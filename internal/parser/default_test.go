package parser

import (
	"io"
	"strings"
	"testing"
	"time"

	"git.lost.host/meutraa/radial/internal/game"
	"git.lost.host/meutraa/radial/internal/testdata"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

func quietParser() *DefaultParser {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return &DefaultParser{Log: log}
}

func TestParseFixture(t *testing.T) {
	chart, err := quietParser().Parse(strings.NewReader(testdata.Chart))
	if nil != err {
		t.Fatalf("unable to parse chart: %v", err)
	}
	if chart.Title != "Fixture" || chart.Artist != "Nobody" || chart.Version != "Hard" {
		t.Errorf("unexpected metadata %q %q %q", chart.Title, chart.Artist, chart.Version)
	}
	if chart.Audio.Name != "Audio.WAV" || chart.Background.Name != "BG.jpg" {
		t.Errorf("unexpected asset references %q %q", chart.Audio.Name, chart.Background.Name)
	}
	if chart.Difficulty.CircleSize != 4 {
		t.Errorf("expected circle size 4, got %v", chart.Difficulty.CircleSize)
	}
	if chart.Tempo != 150 {
		t.Errorf("expected tempo 150, got %v", chart.Tempo)
	}

	expected := game.Timeline{
		{X: 64, Y: 192, Lane: 0, Time: 1000 * time.Millisecond},
		{X: 320, Y: 192, Lane: 2, Time: 1250 * time.Millisecond},
		{X: 192, Y: 192, Lane: 1, Time: 1500 * time.Millisecond, TimeEnd: 2500 * time.Millisecond},
		{X: 448, Y: 192, Lane: 7, Time: 2000 * time.Millisecond},
		{X: 448, Y: 192, Lane: 7, Time: 2000 * time.Millisecond},
		{X: 320, Y: 192, Lane: 2, Time: 9000 * time.Millisecond},
	}
	if len(chart.Notes) != len(expected) {
		t.Fatalf("expected %d notes, got %d: %v", len(expected), len(chart.Notes), chart.Notes)
	}
	for i := range expected {
		if chart.Notes[i] != expected[i] {
			t.Log("Index   ", i)
			t.Log("Note    ", chart.Notes[i])
			t.Log("Expected", expected[i])
			t.Fail()
		}
	}
	if chart.NoteCount != 6 || chart.HoldCount != 1 {
		t.Errorf("expected 6 notes and 1 hold, got %d and %d", chart.NoteCount, chart.HoldCount)
	}
	if err := Validate(chart.Notes); nil != err {
		t.Error(err)
	}
}

func TestParseIsReproducible(t *testing.T) {
	p := quietParser()
	first, _ := p.Parse(strings.NewReader(testdata.Chart))
	for i := 0; i < 3; i++ {
		again, _ := p.Parse(strings.NewReader(testdata.Chart))
		for k := range first.Notes {
			if first.Notes[k] != again.Notes[k] {
				t.Fatalf("decode %d differs at note %d", i, k)
			}
		}
	}
}

func TestParseEmpty(t *testing.T) {
	chart, err := quietParser().Parse(strings.NewReader(""))
	if nil != err {
		t.Fatal(err)
	}
	if len(chart.Notes) != 0 || chart.Tempo != DefaultTempo {
		t.Errorf("unexpected chart %+v", chart)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk on fire")
}

func TestParseUnreadable(t *testing.T) {
	_, err := quietParser().Parse(failingReader{})
	if !errors.Is(err, ErrUnreadableChart) {
		t.Errorf("expected an unreadable chart error, got %v", err)
	}
}

func TestParseEightKeys(t *testing.T) {
	text := "[Difficulty]\nCircleSize:8\n[HitObjects]\n0,192,100,1,0\n511,192,200,1,0\n300,192,300,1,0\n"
	chart, err := quietParser().Parse(strings.NewReader(text))
	if nil != err {
		t.Fatal(err)
	}
	lanes := []int{0, 7, 4}
	for i, l := range lanes {
		if chart.Notes[i].Lane != l {
			t.Errorf("note %d: expected lane %d, got %d", i, l, chart.Notes[i].Lane)
		}
	}
}
