package gpio_test

import (
	"testing"

	"github.com/plus3/tetrispi/input"
	inputgpio "github.com/plus3/tetrispi/input/gpio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
)

func TestSourceReadsActiveLow(t *testing.T) {
	var fakes [input.ButtonCount]*gpiotest.Pin
	var pins [input.ButtonCount]gpio.PinIn
	for i, name := range inputgpio.DefaultPins {
		fakes[i] = &gpiotest.Pin{N: name, L: gpio.High}
		pins[i] = fakes[i]
	}

	src, err := inputgpio.New(pins)
	require.NoError(t, err)
	for _, f := range fakes {
		assert.Equal(t, gpio.PullUp, f.P)
	}
	assert.False(t, src.Poll().Any())

	fakes[input.Down].L = gpio.Low
	fakes[input.B].L = gpio.Low
	st := src.Poll()
	assert.True(t, st[input.Down])
	assert.True(t, st[input.B])
	assert.False(t, st[input.Left])
}

func TestNewRejectsMissingPin(t *testing.T) {
	var pins [input.ButtonCount]gpio.PinIn
	_, err := inputgpio.New(pins)
	assert.Error(t, err)
}
