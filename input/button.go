// Package input turns held buttons into discrete triggers with the
// press, delay, repeat cadence the game expects.
package input

import (
	"errors"
	"fmt"
	"strings"
)

//go:generate stringer -type=Button

// Button is one of the six logical controls.
type Button uint8

const (
	Left Button = iota
	Right
	Pause
	Down
	A
	B
)

const ButtonCount = 6

var ErrUnknownButton = errors.New("unknown button")

// Buttons lists every button in index order.
var Buttons = [ButtonCount]Button{Left, Right, Pause, Down, A, B}

// ParseButton maps a case-insensitive button name onto a Button.
func ParseButton(name string) (Button, error) {
	for _, b := range Buttons {
		if strings.EqualFold(b.String(), name) {
			return b, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownButton, name)
}

// State holds which buttons are down, indexed by Button.
type State [ButtonCount]bool

// Any reports whether at least one button is set.
func (s State) Any() bool {
	for _, v := range s {
		if v {
			return true
		}
	}
	return false
}

// Source is polled once per tick for held buttons.
type Source interface {
	Poll() State
}

// SourceFunc adapts a function to Source.
type SourceFunc func() State

func (f SourceFunc) Poll() State { return f() }

type merged []Source

func (m merged) Poll() State {
	var out State
	for _, src := range m {
		s := src.Poll()
		for i := range out {
			out[i] = out[i] || s[i]
		}
	}
	return out
}

// Merge combines sources; a button is held if any source holds it.
func Merge(sources ...Source) Source {
	return merged(sources)
}
