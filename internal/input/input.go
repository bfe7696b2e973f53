// Package input turns physical key events into control presses.
package input

// Event is a press or release of a control. Quit is set instead when the
// player asked to leave.
type Event struct {
	Control int
	Pressed bool
	Quit    bool
}

type Source interface {
	Events() <-chan Event
	Close() error
}

// Binding maps a key to a control, or -1 when the key is unbound.
type Binding func(r rune) int
