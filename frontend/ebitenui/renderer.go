package ebitenui

import (
	"fmt"
	"image/color"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/tetrispi/effects"
	"github.com/plus3/tetrispi/menu"
	"github.com/plus3/tetrispi/session"
	"github.com/plus3/tetrispi/tetris"
)

var (
	intenseCell = tetris.IntenseShade.NRGBA()
	cellShadow  = color.NRGBA{A: 50}
	demoShade   = color.NRGBA{A: 160}
	menuShade   = color.NRGBA{A: 230}
	cursorFill  = color.NRGBA{R: 0x00, G: 0xee, B: 0xff, A: 50}
)

// charWidth and lineHeight are the metrics of the ebitenutil debug font.
const (
	charWidth  = 6
	lineHeight = 16
)

// Renderer keeps the latest session frame and draws it when ebiten asks.
// Render and Draw both run on the ebiten goroutine.
type Renderer struct {
	geo   geometry
	frame session.Frame
	scene *ebiten.Image
	ready bool
}

func NewRenderer(width, height int) *Renderer {
	return &Renderer{geo: newGeometry(width, height)}
}

// Render copies f. The effect slice is reused by the session, so it is
// copied into the renderer's own buffer.
func (r *Renderer) Render(f session.Frame) {
	fx := r.frame.Effects[:0]
	r.frame = f
	r.frame.Effects = append(fx, f.Effects...)
	r.ready = true
}

// Frame returns the last rendered frame.
func (r *Renderer) Frame() session.Frame {
	return r.frame
}

func (r *Renderer) Draw(screen *ebiten.Image) {
	if !r.ready {
		return
	}
	f := &r.frame
	if r.scene == nil {
		r.scene = ebiten.NewImage(r.geo.width, r.geo.height)
	}
	r.scene.Fill(background(f.Palette, f.Tick, f.Intense))

	r.drawBoard(r.scene, f)
	r.drawEffects(r.scene, f)
	r.drawSidebar(r.scene, f)

	op := &ebiten.DrawImageOptions{}
	if f.Intense && f.Shake > 0 {
		dx, dy := r.geo.shakeRange()
		op.GeoM.Translate(float64((rand.Float32()*2-1)*dx), float64((rand.Float32()*2-1)*dy))
	}
	screen.DrawImage(r.scene, op)

	switch {
	case f.Mode == session.ModeMenu:
		r.drawMenu(screen, f)
	case f.Demo:
		r.drawScores(screen, f)
	}
}

func (r *Renderer) drawCell(dst *ebiten.Image, x, y int, c tetris.Color, intense bool) {
	cell := r.geo.cell
	px, py := float32(x)*cell, float32(y)*cell
	if intense {
		vector.DrawFilledRect(dst, px, py, cell*0.9, cell*0.9, intenseCell, false)
		return
	}
	vector.DrawFilledRect(dst, px, py, cell-2, cell-2, c.NRGBA(), false)
	vector.DrawFilledRect(dst, px, py, cell-6, cell-6, cellShadow, false)
}

func (r *Renderer) drawBoard(dst *ebiten.Image, f *session.Frame) {
	for y := range f.Board {
		for x, c := range f.Board[y] {
			if c.Filled {
				r.drawCell(dst, x, y, c.Color, f.Intense)
			}
		}
	}
	for _, p := range []tetris.Piece{f.Current, f.Next} {
		for _, c := range p.Cells() {
			r.drawCell(dst, c.X, c.Y, p.Color, f.Intense)
		}
	}
}

func (r *Renderer) drawEffects(dst *ebiten.Image, f *session.Frame) {
	cell := r.geo.cell
	for _, fx := range f.Effects {
		x, y := r.geo.px(fx.X), r.geo.px(fx.Y)
		switch fx.Kind {
		case effects.Explode:
			size := r.geo.px(fx.Size)
			vector.StrokeRect(dst, x-size/2, y-size/2, size, size, 4, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: fx.Alpha()}, false)
		case effects.LineClear:
			var c color.Color = color.Black
			switch {
			case f.Intense:
				c = color.Gray{Y: fx.Alpha()}
			case fx.Lit():
				c = color.White
			}
			vector.DrawFilledRect(dst, x, y, cell*tetris.Width, cell, c, false)
		case effects.LineExplode:
			block := cell * 0.8
			for i := range effects.RingSpokes {
				theta := float64(i+1) * 2 * math.Pi / effects.RingSpokes
				dist := fx.Dist * float64(cell)
				bx := x - float32(dist*math.Sin(theta))
				by := y + float32(dist*math.Cos(theta))
				vector.DrawFilledRect(dst, bx, by, block, block, color.NRGBA{R: 45, G: 45, B: 45, A: fx.Alpha()}, false)
			}
		case effects.Streak:
			vector.DrawFilledCircle(dst, x, y, cell/8, color.NRGBA{R: 45, G: 45, B: 45, A: fx.Alpha()}, false)
		}
	}
}

func (r *Renderer) drawSidebar(dst *ebiten.Image, f *session.Frame) {
	end := r.geo.boardEnd()
	var ink color.Color = color.Black
	if !f.Intense {
		ink = f.Current.Color.NRGBA()
	}
	vector.StrokeLine(dst, end, 0, end, float32(r.geo.height), 2, ink, false)

	h := float32(r.geo.height)
	centered(dst, r.geo.sidebarCenter(), h*0.05, "TETRIS")
	centered(dst, r.geo.sidebarCenter(), h*0.35, "score", fmt.Sprint(f.Score))
	centered(dst, r.geo.sidebarCenter(), h*0.55, "level", fmt.Sprint(f.Level))
	centered(dst, r.geo.sidebarCenter(), h*0.75, "lines", fmt.Sprint(f.Lines))
	centered(dst, r.geo.sidebarCenter(), h*0.9, fmt.Sprint(f.Countdown))
	if f.Name != "" {
		centered(dst, r.geo.sidebarCenter(), h*0.15, f.Name)
	}
}

func (r *Renderer) drawScores(dst *ebiten.Image, f *session.Frame) {
	vector.DrawFilledRect(dst, 0, 0, float32(r.geo.width), float32(r.geo.height), demoShade, false)
	y := int(float32(r.geo.height) * 0.1)
	ebitenutil.DebugPrintAt(dst, "HIGH SCORES", 100, y-lineHeight*2)
	for i, e := range f.Scores {
		ebitenutil.DebugPrintAt(dst, fmt.Sprintf("%2d %-10s %d", i+1, e.Name, e.Score), 100, y+i*lineHeight*2)
	}
}

func (r *Renderer) drawMenu(dst *ebiten.Image, f *session.Frame) {
	w, h := float32(r.geo.width), float32(r.geo.height)
	vector.DrawFilledRect(dst, 0, 0, w, h, menuShade, false)

	m := f.Menu
	spacing := w / 2 / menu.NameLength
	for i, ch := range m.NameChars {
		x := w/4 + float32(i)*spacing
		if m.Option == menu.OptionName && m.Cursor == i {
			vector.DrawFilledRect(dst, x-charWidth, h*0.1-4, w*0.05, h*0.075, cursorFill, false)
		}
		ebitenutil.DebugPrintAt(dst, string(ch), int(x), int(h*0.1))
	}

	rows := []struct {
		option menu.Option
		label  string
		value  string
		y      float32
	}{
		{menu.OptionLevel, "Level", fmt.Sprint(m.Settings.StartLevel), 0.35},
		{menu.OptionMusic, "Music", gainText(m.Settings.MusicGain), 0.6},
		{menu.OptionSound, "Sound", gainText(m.Settings.SoundGain), 0.8},
	}
	for _, row := range rows {
		label := row.label
		if m.Option == row.option {
			label = "> " + label + " <"
		}
		centered(dst, w/2, h*row.y, label)
		arrows := "<" + strings.Repeat(" ", int(w/2/charWidth)) + ">"
		if m.Option == row.option {
			centered(dst, w/2, h*(row.y+0.1), arrows)
		}
		centered(dst, w/2, h*(row.y+0.1), row.value)
	}
}

func gainText(g float64) string {
	if menu.Muted(g) {
		return "muted"
	}
	return fmt.Sprintf("%+.1f dB", g)
}

// centered prints lines of text centered on x, starting at y.
func centered(dst *ebiten.Image, x, y float32, lines ...string) {
	for i, line := range lines {
		ebitenutil.DebugPrintAt(dst, line, int(x)-len(line)*charWidth/2, int(y)+i*lineHeight)
	}
}
