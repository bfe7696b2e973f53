package parser

import (
	"testing"
	"time"

	"git.lost.host/meutraa/radial/internal/testdata"
	"github.com/pkg/errors"
)

func TestDecodeContainer(t *testing.T) {
	data := testdata.Container(map[string][]byte{
		"Nobody - Fixture (Someone) [Hard].osu": []byte(testdata.Chart),
		"audio.wav":                             testdata.WAV(44100, 44100),
		"bg.JPG":                                []byte("not really a jpeg"),
	})
	chart, err := quietParser().DecodeContainer(data)
	if nil != err {
		t.Fatalf("unable to decode container: %v", err)
	}
	if chart.Audio.Name != "audio.wav" || len(chart.Audio.Data) == 0 {
		t.Errorf("audio should resolve case insensitively, got %q", chart.Audio.Name)
	}
	if chart.Background.Name != "bg.JPG" || string(chart.Background.Data) != "not really a jpeg" {
		t.Errorf("background should resolve case insensitively, got %q", chart.Background.Name)
	}
	if chart.AudioLength != time.Second {
		t.Errorf("expected a one second track, got %v", chart.AudioLength)
	}
	if len(chart.Notes) != 6 {
		t.Errorf("expected 6 notes, got %d", len(chart.Notes))
	}
}

func TestDecodeContainerErrors(t *testing.T) {
	tests := []struct {
		Name string
		Data []byte
		Kind error
	}{
		{"not a zip", []byte("definitely not a zip"), ErrUnreadableContainer},
		{"no chart", testdata.Container(map[string][]byte{"audio.wav": testdata.WAV(8000, 10)}), ErrMissingChart},
		{"bad audio", testdata.Container(map[string][]byte{
			"a.osu":     []byte(testdata.Chart),
			"audio.wav": []byte("garbage"),
		}), ErrUnreadableAudio},
	}
	for _, test := range tests {
		_, err := quietParser().DecodeContainer(test.Data)
		if !errors.Is(err, test.Kind) {
			t.Errorf("%s: expected %v, got %v", test.Name, test.Kind, err)
		}
		var de *DecodeError
		if !errors.As(err, &de) {
			t.Errorf("%s: expected a DecodeError, got %T", test.Name, err)
		}
	}
}

func TestDecodeContainerMissingAssets(t *testing.T) {
	data := testdata.Container(map[string][]byte{
		"a.osu": []byte(testdata.Chart),
	})
	chart, err := quietParser().DecodeContainer(data)
	if nil != err {
		t.Fatalf("missing assets should not be fatal: %v", err)
	}
	if chart.Audio.Name != "" || chart.Background.Name != "" || chart.AudioLength != 0 {
		t.Errorf("unresolved assets should be empty, got %q %q", chart.Audio.Name, chart.Background.Name)
	}
}

func TestDecodeContainerPicksFirstChart(t *testing.T) {
	other := "[Metadata]\nVersion:Easy\n[HitObjects]\n64,192,1000,1,0\n"
	data := testdata.Container(map[string][]byte{
		"b [Hard].osu": []byte(testdata.Chart),
		"a [Easy].osu": []byte(other),
	})
	chart, err := quietParser().DecodeContainer(data)
	if nil != err {
		t.Fatal(err)
	}
	if chart.Version != "Easy" {
		t.Errorf("expected the first chart by name, got %q", chart.Version)
	}
}
