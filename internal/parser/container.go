package parser

import (
	"bytes"
	"io/ioutil"
	"path"
	"sort"
	"strings"

	"git.lost.host/meutraa/radial/internal/game"
	"github.com/klauspost/compress/zip"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

func normaliseName(name string) string {
	return strings.ToLower(path.Clean(strings.ReplaceAll(name, `\`, "/")))
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if nil != err {
		return nil, err
	}
	defer rc.Close()
	return ioutil.ReadAll(rc)
}

// DecodeFile reads and decodes a chart container from disk.
func (p *DefaultParser) DecodeFile(file string) (*game.Chart, error) {
	data, err := ioutil.ReadFile(file)
	if nil != err {
		return nil, &DecodeError{Kind: ErrUnreadableContainer, Entry: file, Err: err}
	}
	return p.DecodeContainer(data)
}

// DecodeContainer decodes a zip archive holding a chart text entry and the
// audio and background it references. Unresolvable references leave the
// asset empty, an audio asset that is present but undecodable is fatal.
func (p *DefaultParser) DecodeContainer(data []byte) (*game.Chart, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if nil != err {
		return nil, &DecodeError{Kind: ErrUnreadableContainer, Err: err}
	}

	entries := map[string]*zip.File{}
	charts := []*zip.File{}
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		entries[normaliseName(f.Name)] = f
		if strings.EqualFold(path.Ext(f.Name), ".osu") {
			charts = append(charts, f)
		}
	}
	if len(charts) == 0 {
		return nil, &DecodeError{Kind: ErrMissingChart}
	}
	sort.Slice(charts, func(i, j int) bool {
		return charts[i].Name < charts[j].Name
	})

	entry := charts[0]
	text, err := readEntry(entry)
	if nil != err {
		return nil, &DecodeError{Kind: ErrUnreadableChart, Entry: entry.Name, Err: errors.Wrap(err, "read entry")}
	}
	chart, err := p.Parse(bytes.NewReader(text))
	if nil != err {
		return nil, err
	}

	log := p.log().WithField("chart", entry.Name)
	chart.Audio = p.resolve(entries, chart.Audio.Name, log)
	chart.Background = p.resolve(entries, chart.Background.Name, log)

	if chart.Audio.Name != "" {
		length, err := probeAudio(chart.Audio)
		if nil != err {
			return nil, &DecodeError{Kind: ErrUnreadableAudio, Entry: chart.Audio.Name, Err: err}
		}
		chart.AudioLength = length
	}
	return chart, nil
}

func (p *DefaultParser) resolve(entries map[string]*zip.File, name string, log logrus.FieldLogger) game.Asset {
	if name == "" {
		return game.Asset{}
	}
	f, ok := entries[normaliseName(name)]
	if !ok {
		log.WithField("asset", name).Warn("referenced asset not in container")
		return game.Asset{}
	}
	data, err := readEntry(f)
	if nil != err {
		log.WithError(err).WithField("asset", name).Warn("unable to read asset")
		return game.Asset{}
	}
	return game.Asset{Name: f.Name, Data: data}
}
