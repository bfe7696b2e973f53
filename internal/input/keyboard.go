package input

import (
	"github.com/eiannone/keyboard"
	"github.com/pkg/errors"
)

// Keyboard reads keys from the terminal. Terminals only report presses,
// so every press is followed by an immediate release and holds end as soon
// as they start.
type Keyboard struct {
	events chan Event
}

func OpenKeyboard(bind Binding) (*Keyboard, error) {
	keys, err := keyboard.GetKeys(128)
	if nil != err {
		return nil, errors.Wrap(err, "unable to open keyboard")
	}
	k := &Keyboard{events: make(chan Event, 256)}
	go func() {
		defer close(k.events)
		for key := range keys {
			if nil != key.Err {
				continue
			}
			for _, ev := range translate(key, bind) {
				k.events <- ev
			}
		}
	}()
	return k, nil
}

func translate(key keyboard.KeyEvent, bind Binding) []Event {
	switch key.Key {
	case keyboard.KeyEsc, keyboard.KeyCtrlC:
		return []Event{{Quit: true}}
	case keyboard.KeySpace:
		key.Rune = ' '
	}
	control := bind(key.Rune)
	if control < 0 {
		return nil
	}
	return []Event{
		{Control: control, Pressed: true},
		{Control: control, Pressed: false},
	}
}

func (k *Keyboard) Events() <-chan Event {
	return k.events
}

func (k *Keyboard) Close() error {
	return keyboard.Close()
}
