package ebitenui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/tetrispi/input"
)

// KeyMap lists the keys that hold each button.
type KeyMap [input.ButtonCount][]ebiten.Key

// DefaultKeys is the cabinet layout: a d w s j k, plus arrows for the
// directions.
var DefaultKeys = KeyMap{
	input.Left:  {ebiten.KeyA, ebiten.KeyArrowLeft},
	input.Right: {ebiten.KeyD, ebiten.KeyArrowRight},
	input.Pause: {ebiten.KeyW, ebiten.KeyArrowUp},
	input.Down:  {ebiten.KeyS, ebiten.KeyArrowDown},
	input.A:     {ebiten.KeyJ},
	input.B:     {ebiten.KeyK},
}

// Keyboard is an input.Source reading the ebiten keyboard. It must be
// polled from the ebiten update goroutine.
type Keyboard struct {
	keys KeyMap
	// Blocked suppresses the keyboard, e.g. while an overlay has focus.
	Blocked func() bool
}

func NewKeyboard(keys KeyMap) *Keyboard {
	return &Keyboard{keys: keys}
}

func (k *Keyboard) Poll() input.State {
	var s input.State
	if k.Blocked != nil && k.Blocked() {
		return s
	}
	for b, keys := range k.keys {
		for _, key := range keys {
			if ebiten.IsKeyPressed(key) {
				s[b] = true
				break
			}
		}
	}
	return s
}
