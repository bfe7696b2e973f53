package input

import (
	"encoding/binary"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// https://github.com/torvalds/linux/blob/master/include/uapi/linux/input-event-codes.h
const (
	evKey = 0x01

	keyEsc = 1

	valueRelease = 0
	valuePress   = 1
)

// struct input_event on 64 bit linux
type rawEvent struct {
	Sec   int64
	Usec  int64
	Type  uint16
	Code  uint16
	Value int32
}

var keyCodes = map[rune]uint16{
	'1': 2, '2': 3, '3': 4, '4': 5, '5': 6, '6': 7, '7': 8, '8': 9, '9': 10, '0': 11,
	'q': 16, 'w': 17, 'e': 18, 'r': 19, 't': 20, 'y': 21, 'u': 22, 'i': 23, 'o': 24, 'p': 25,
	'a': 30, 's': 31, 'd': 32, 'f': 33, 'g': 34, 'h': 35, 'j': 36, 'k': 37, 'l': 38, ';': 39,
	'z': 44, 'x': 45, 'c': 46, 'v': 47, 'b': 48, 'n': 49, 'm': 50, ',': 51, '.': 52, '/': 53,
	' ': 57,
}

// EvdevCodes resolves the key code of every bound key.
func EvdevCodes(keys string, bind Binding) (map[uint16]int, error) {
	codes := map[uint16]int{}
	for _, r := range keys {
		code, ok := keyCodes[r]
		if !ok {
			return nil, errors.Errorf("no evdev key code for %q", r)
		}
		codes[code] = bind(r)
	}
	return codes, nil
}

// Evdev reads a keyboard device directly, which unlike a terminal reports
// key releases, so holds can be played.
type Evdev struct {
	file   *os.File
	events chan Event
}

func OpenEvdev(device string, codes map[uint16]int, log logrus.FieldLogger) (*Evdev, error) {
	file, err := os.Open(device)
	if nil != err {
		return nil, errors.Wrap(err, "unable to open keyboard device")
	}
	e := &Evdev{file: file, events: make(chan Event, 128)}
	go func() {
		defer close(e.events)
		if err := decode(file, codes, e.events); nil != err {
			log.WithError(err).Warn("unable to read keyboard input")
		}
	}()
	return e, nil
}

func (e *Evdev) Events() <-chan Event {
	return e.events
}

func (e *Evdev) Close() error {
	return e.file.Close()
}

// decode forwards key events until r is exhausted. Auto repeats and
// unbound keys are dropped.
func decode(r io.Reader, codes map[uint16]int, out chan<- Event) error {
	var ev rawEvent
	for {
		if err := binary.Read(r, binary.LittleEndian, &ev); nil != err {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if ev.Type != evKey || (ev.Value != valuePress && ev.Value != valueRelease) {
			continue
		}
		if ev.Code == keyEsc {
			out <- Event{Quit: true}
			continue
		}
		control, ok := codes[ev.Code]
		if !ok || control < 0 {
			continue
		}
		out <- Event{Control: control, Pressed: ev.Value == valuePress}
	}
}
