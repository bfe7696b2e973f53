package library

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"git.lost.host/meutraa/radial/internal/parser"
	"git.lost.host/meutraa/radial/internal/testdata"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

func fixtureDir(t *testing.T) string {
	dir, err := ioutil.TempDir("", "radial-library")
	if nil != err {
		t.Fatal(err)
	}
	valid := testdata.Container(map[string][]byte{
		"chart.osu": []byte(testdata.Chart),
		"audio.wav": testdata.WAV(8000, 800),
	})
	files := map[string][]byte{
		"a.osz":          valid,
		"nested/b.OSZ":   valid,
		"broken.osz":     []byte("not a zip"),
		"ignored.txt":    []byte("not a chart"),
		"nested/c.osu":   []byte(testdata.Chart),
		"empty/none.osz": testdata.Container(map[string][]byte{"audio.wav": testdata.WAV(8000, 8)}),
	}
	for name, data := range files {
		p := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(p), 0755); nil != err {
			t.Fatal(err)
		}
		if err := ioutil.WriteFile(p, data, 0644); nil != err {
			t.Fatal(err)
		}
	}
	return dir
}

func quietLog() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(ioutil.Discard)
	return log
}

func TestFind(t *testing.T) {
	dir := fixtureDir(t)
	defer os.RemoveAll(dir)

	paths, err := Find(dir)
	if nil != err {
		t.Fatal(err)
	}
	if len(paths) != 4 {
		t.Logf("expected 4 containers, got %v", paths)
		t.Fail()
	}
}

func TestLoad(t *testing.T) {
	dir := fixtureDir(t)
	defer os.RemoveAll(dir)

	l := &Library{Parser: &parser.DefaultParser{Log: quietLog()}, Workers: 2, Log: quietLog()}
	entries, failures, err := l.Load(context.Background(), dir)
	if nil != err {
		t.Fatal(err)
	}
	if len(entries) != 2 || len(failures) != 2 {
		t.Logf("expected 2 entries and 2 failures, got %d and %d", len(entries), len(failures))
		t.FailNow()
	}
	for _, e := range entries {
		if e.Chart.Title != "Fixture" || len(e.Chart.Notes) != 6 {
			t.Logf("%s decoded incorrectly", e.Path)
			t.Fail()
		}
	}
	kinds := map[error]bool{}
	for _, f := range failures {
		for _, kind := range []error{parser.ErrUnreadableContainer, parser.ErrMissingChart} {
			if errors.Is(f.Err, kind) {
				kinds[kind] = true
			}
		}
	}
	if len(kinds) != 2 {
		t.Logf("unexpected failures %v", failures)
		t.Fail()
	}
}

func TestLoadCancelled(t *testing.T) {
	dir := fixtureDir(t)
	defer os.RemoveAll(dir)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	l := &Library{Parser: &parser.DefaultParser{Log: quietLog()}, Log: quietLog()}
	if _, _, err := l.Load(ctx, dir); err != context.Canceled {
		t.Logf("expected cancellation, got %v", err)
		t.Fail()
	}
}
