package parser

import (
	"bytes"
	"path"
	"strings"
	"time"

	"git.lost.host/meutraa/radial/internal/game"
	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"
	"github.com/pkg/errors"
)

// The decoders only report a length when they can seek.
type memoryFile struct {
	*bytes.Reader
}

func (memoryFile) Close() error {
	return nil
}

// OpenAudio decodes an audio asset by its file extension.
func OpenAudio(asset game.Asset) (beep.StreamSeekCloser, beep.Format, error) {
	rc := memoryFile{bytes.NewReader(asset.Data)}
	switch strings.ToLower(path.Ext(asset.Name)) {
	case ".mp3":
		return mp3.Decode(rc)
	case ".ogg":
		return vorbis.Decode(rc)
	case ".wav":
		return wav.Decode(rc)
	}
	return nil, beep.Format{}, errors.Errorf("unsupported audio format %q", path.Ext(asset.Name))
}

// probeAudio checks the asset decodes and returns its length.
func probeAudio(asset game.Asset) (time.Duration, error) {
	streamer, format, err := OpenAudio(asset)
	if nil != err {
		return 0, err
	}
	defer streamer.Close()
	return format.SampleRate.D(streamer.Len()), nil
}
