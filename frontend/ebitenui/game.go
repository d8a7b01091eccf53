// Package ebitenui runs a session in an ebiten window: the keyboard feeds
// the session and the renderer draws the frames it produces.
package ebitenui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/tetrispi/session"
)

type Options struct {
	Title         string
	Width, Height int
	// Debug draws the Dear ImGui inspector over the game.
	Debug bool
}

// Game implements ebiten.Game. Each ebiten update is one session tick.
type Game struct {
	session  *session.Session
	renderer *Renderer
	debug    *debugOverlay
	width    int
	height   int
}

// NewGame wires s to ebiten. r must be the renderer s was built with. When
// the debug overlay has keyboard focus, kb is silenced.
func NewGame(s *session.Session, r *Renderer, kb *Keyboard, opts Options) *Game {
	g := &Game{
		session:  s,
		renderer: r,
		width:    opts.Width,
		height:   opts.Height,
	}
	if opts.Debug {
		g.debug = newDebugOverlay(s, opts.Title, opts.Width, opts.Height)
		if kb != nil {
			kb.Blocked = g.debug.wantsKeyboard
		}
	}
	return g
}

func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if g.debug != nil {
		g.debug.begin()
		defer g.debug.end()
	}
	g.session.Tick()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen)
	if g.debug != nil {
		g.debug.draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.debug != nil {
		g.debug.layout(g.width, g.height)
	}
	return g.width, g.height
}

// Run opens the window and blocks until it is closed or Escape is pressed.
func Run(g *Game, opts Options) error {
	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(g.session.TickRate())
	return ebiten.RunGame(g)
}
