package parser

import (
	"testing"
	"time"
)

func TestDemo(t *testing.T) {
	chart := Demo(42, DefaultDemoOptions)
	if len(chart.Notes) == 0 {
		t.Fatal("demo chart has no notes")
	}
	if err := Validate(chart.Notes); nil != err {
		t.Error(err)
	}
	if chart.Tempo < 127.999 || chart.Tempo > 128.001 {
		t.Errorf("expected tempo 128, got %v", chart.Tempo)
	}
	if chart.HoldCount == 0 {
		t.Error("expected at least one hold")
	}
	if last := chart.Notes[len(chart.Notes)-1].Time; last >= DefaultDemoOptions.Length {
		t.Errorf("note placed after the end at %v", last)
	}
}

func TestDemoReproducible(t *testing.T) {
	opts := DemoOptions{Tempo: 170, Length: 20 * time.Second, Density: 0.8, HoldChance: 0.3}
	a, b := Demo(7, opts), Demo(7, opts)
	if len(a.Notes) != len(b.Notes) {
		t.Fatalf("same seed produced %d and %d notes", len(a.Notes), len(b.Notes))
	}
	for i := range a.Notes {
		if a.Notes[i] != b.Notes[i] {
			t.Fatalf("same seed differs at note %d", i)
		}
	}
}

func TestValidate(t *testing.T) {
	chart := Demo(1, DefaultDemoOptions)
	notes := append(chart.Notes[:0:0], chart.Notes...)
	notes[0].Lane = 8
	if Validate(notes) == nil {
		t.Error("expected lane out of range")
	}
	notes[0].Lane = 0
	notes[0].TimeEnd = notes[0].Time
	if Validate(notes) == nil {
		t.Error("expected hold ordering violation")
	}
	notes[0].TimeEnd = 0
	notes[0], notes[1] = notes[1], notes[0]
	if notes[0].Time != notes[1].Time && Validate(notes) == nil {
		t.Error("expected out of order violation")
	}
}
