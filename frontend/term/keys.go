package term

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/tetrispi/input"
)

// DefaultHold is how many polls a key stays held after its last press.
// Terminals report no key releases, so a held key is one whose autorepeat
// keeps arriving within the window.
const DefaultHold = 6

var runeBindings = map[rune]input.Button{
	'a': input.Left,
	'd': input.Right,
	'w': input.Pause,
	's': input.Down,
	'j': input.A,
	'k': input.B,
}

var keyBindings = map[tcell.Key]input.Button{
	tcell.KeyLeft:  input.Left,
	tcell.KeyRight: input.Right,
	tcell.KeyUp:    input.Pause,
	tcell.KeyDown:  input.Down,
}

// Keys is an input.Source fed by terminal key events.
type Keys struct {
	mu        sync.Mutex
	hold      int
	remaining [input.ButtonCount]int
}

func NewKeys(hold int) *Keys {
	if hold <= 0 {
		hold = DefaultHold
	}
	return &Keys{hold: hold}
}

// HandleKey records ev and reports whether it maps to a button.
func (k *Keys) HandleKey(ev *tcell.EventKey) bool {
	b, ok := keyBindings[ev.Key()]
	if !ok && ev.Key() == tcell.KeyRune {
		b, ok = runeBindings[ev.Rune()]
	}
	if !ok {
		return false
	}
	k.Press(b)
	return true
}

// Press holds b for the next hold polls.
func (k *Keys) Press(b input.Button) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.remaining[b] = k.hold
}

// Poll reports the held buttons and ages every hold by one.
func (k *Keys) Poll() input.State {
	k.mu.Lock()
	defer k.mu.Unlock()

	var s input.State
	for i, n := range k.remaining {
		if n > 0 {
			s[i] = true
			k.remaining[i]--
		}
	}
	return s
}
