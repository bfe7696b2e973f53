package render

import (
	"context"
	"image/color"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/term"
)

// DefaultRenderer draws with ANSI escapes, buffering a whole frame before
// writing it out.
type DefaultRenderer struct {
	Out io.Writer
	Fd  int // Terminal switched to raw mode while rendering, negative for none

	buffer       strings.Builder
	restoreState *term.State
	decorations  []*decoration
}

type decoration struct {
	X, Y    int
	Content string
	Frames  int // remaining frames until removed
}

func (r *DefaultRenderer) Init() error {
	if r.Fd >= 0 && term.IsTerminal(r.Fd) {
		state, err := term.MakeRaw(r.Fd)
		if nil != err {
			return errors.Wrap(err, "unable to make terminal raw")
		}
		r.restoreState = state
	}

	r.buffer.WriteString("\033[?1049h") // Enable alternate buffer
	r.buffer.WriteString("\033[?25l")   // Make the cursor invisible
	r.buffer.WriteString("\033[2J")     // Clear the screen
	return r.Flush()
}

func (r *DefaultRenderer) Deinit() error {
	r.buffer.WriteString("\033[?1049l") // Disable alternate buffer
	r.buffer.WriteString("\033[?25h")   // Make the cursor visible
	if err := r.Flush(); nil != err {
		return err
	}
	if r.restoreState == nil {
		return nil
	}
	return term.Restore(r.Fd, r.restoreState)
}

func (r *DefaultRenderer) AddDecoration(col, row int, content string, frames int) {
	r.decorations = append(r.decorations, &decoration{
		X:       col,
		Y:       row,
		Content: content,
		Frames:  frames,
	})
	r.Fill(row, col, content)
}

func (r *DefaultRenderer) tickDecorations() {
	nd := make([]*decoration, 0, len(r.decorations))
	for _, d := range r.decorations {
		if d.Frames == 0 {
			r.Fill(d.Y, d.X, " ")
			continue
		}
		nd = append(nd, d)
		d.Frames--
	}
	r.decorations = nd
}

// RenderLoop calls render once per period until it returns false or ctx
// is done.
func (r *DefaultRenderer) RenderLoop(
	ctx context.Context,
	period time.Duration,
	render func() bool,
	endRender func(renderDuration time.Duration),
) error {
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		now := time.Now()
		cont := render()

		r.tickDecorations()
		if err := r.Flush(); nil != err {
			return err
		}
		if !cont {
			return nil
		}
		if nil != endRender {
			endRender(time.Since(now))
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (r *DefaultRenderer) moveTo(row, column int) {
	r.buffer.WriteString("\033[")
	r.buffer.WriteString(strconv.Itoa(row))
	r.buffer.WriteString(";")
	r.buffer.WriteString(strconv.Itoa(column))
	r.buffer.WriteString("H")
}

func (r *DefaultRenderer) Fill(row, column int, message string) {
	r.moveTo(row, column)
	r.buffer.WriteString(message)
}

func (r *DefaultRenderer) FillColor(row, column int, c color.RGBA, message string) {
	r.moveTo(row, column)
	r.buffer.WriteString(Colorize(c, message))
}

// Colorize wraps message in a 24 bit foreground colour escape.
func Colorize(c color.RGBA, message string) string {
	return "\033[38;2;" +
		strconv.Itoa(int(c.R)) + ";" +
		strconv.Itoa(int(c.G)) + ";" +
		strconv.Itoa(int(c.B)) + "m" +
		message + "\033[0m"
}

func (r *DefaultRenderer) Flush() error {
	if r.buffer.Len() == 0 {
		return nil
	}
	_, err := io.WriteString(r.Out, r.buffer.String())
	r.buffer.Reset()
	return err
}
