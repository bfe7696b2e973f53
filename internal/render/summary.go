package render

import (
	"fmt"
	"io"
	"time"

	"git.lost.host/meutraa/radial/internal/game"
	"git.lost.host/meutraa/radial/internal/library"
	"github.com/dustin/go-humanize"
	"github.com/hako/durafmt"
)

// Summary prints the result of a play.
func Summary(w io.Writer, chart *game.Chart, stats game.Stats, played time.Duration) error {
	_, err := fmt.Fprintf(w, "%s - %s [%s]\n"+
		"Score     %s\n"+
		"Accuracy  %.2f%%\n"+
		"Max combo %d\n"+
		"Perfect %d  Good %d  Bad %d  Miss %d\n"+
		"Played    %s\n",
		chart.Artist, chart.Title, chart.Version,
		humanize.Comma(stats.Score),
		stats.Accuracy,
		stats.MaxCombo,
		stats.Perfect, stats.Good, stats.Bad, stats.Miss,
		durafmt.Parse(played.Truncate(time.Second)).String(),
	)
	return err
}

// Listing prints the charts of a library for selection.
func Listing(w io.Writer, entries []library.Entry) error {
	for i, e := range entries {
		c := e.Chart
		length := "no audio"
		if c.AudioLength > 0 {
			length = durafmt.Parse(c.AudioLength.Truncate(time.Second)).LimitFirstN(2).String()
		}
		if _, err := fmt.Fprintf(w, "%2d) %s - %s [%s]  %s notes  %.0f BPM  %s  %s\n",
			i, c.Artist, c.Title, c.Version,
			humanize.Comma(c.NoteCount), c.Tempo, length,
			humanize.Bytes(uint64(len(c.Audio.Data))),
		); nil != err {
			return err
		}
	}
	return nil
}
