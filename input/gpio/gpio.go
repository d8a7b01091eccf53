// Package gpio reads the arcade buttons wired to Raspberry Pi header pins.
// Buttons pull their pin low when pressed.
package gpio

import (
	"fmt"

	"github.com/plus3/tetrispi/input"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// DefaultPins are the BCM pins for Left, Right, Pause, Down, A and B.
var DefaultPins = [input.ButtonCount]string{"GPIO26", "GPIO19", "GPIO16", "GPIO20", "GPIO21", "GPIO13"}

// Source polls six input pins.
type Source struct {
	pins [input.ButtonCount]gpio.PinIn
}

// Open initialises the host drivers and configures the named pins as
// pulled-up inputs.
func Open(names [input.ButtonCount]string) (*Source, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("initialise gpio host: %w", err)
	}

	var pins [input.ButtonCount]gpio.PinIn
	for i, name := range names {
		p := gpioreg.ByName(name)
		if p == nil {
			return nil, fmt.Errorf("gpio pin %q for %v not found", name, input.Button(i))
		}
		pins[i] = p
	}
	return New(pins)
}

// New configures already resolved pins.
func New(pins [input.ButtonCount]gpio.PinIn) (*Source, error) {
	for i, p := range pins {
		if p == nil {
			return nil, fmt.Errorf("no pin for %v", input.Button(i))
		}
		if err := p.In(gpio.PullUp, gpio.NoEdge); err != nil {
			return nil, fmt.Errorf("configure %s for %v: %w", p, input.Button(i), err)
		}
	}
	return &Source{pins: pins}, nil
}

func (s *Source) Poll() input.State {
	var st input.State
	for i, p := range s.pins {
		st[i] = p.Read() == gpio.Low
	}
	return st
}
