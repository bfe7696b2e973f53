package parser

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrMissingChart        = errors.New("no chart entry in container")
	ErrUnreadableContainer = errors.New("unreadable chart container")
	ErrUnreadableChart     = errors.New("unreadable chart text")
	ErrUnreadableAudio     = errors.New("undecodable audio asset")
)

// DecodeError is fatal to loading a single chart. Kind is one of the Err
// values above and matches with errors.Is.
type DecodeError struct {
	Kind  error
	Entry string // Container entry involved, if any
	Err   error
}

func (e *DecodeError) Error() string {
	msg := e.Kind.Error()
	if e.Entry != "" {
		msg = fmt.Sprintf("%s %q", msg, e.Entry)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *DecodeError) Is(target error) bool {
	return target == e.Kind
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
