// Package term runs a session in a terminal through tcell. It is the
// frontend for headless cabinets and SSH sessions.
package term

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/tetrispi/session"
	"golang.org/x/sync/errgroup"
)

// NewScreen opens and initializes the terminal.
func NewScreen() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("opening terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initializing terminal: %w", err)
	}
	screen.HideCursor()
	return screen, nil
}

// quit reports whether ev asks to leave the game.
func quit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q'
	}
	return false
}

// Run ticks s and feeds keys from screen until ctx is done or the player
// quits. It finalizes screen before returning.
func Run(ctx context.Context, s *session.Session, screen tcell.Screen, keys *Keys) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.Run(ctx)
		screen.Fini()
		return nil
	})
	g.Go(func() error {
		for {
			switch ev := screen.PollEvent().(type) {
			case nil:
				return nil
			case *tcell.EventKey:
				if quit(ev) {
					cancel()
					continue
				}
				keys.HandleKey(ev)
			case *tcell.EventResize:
				screen.Sync()
			}
		}
	})
	return g.Wait()
}
