package ebitenui

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/plus3/tetrispi/tetris"
)

// boardShare is the part of the screen width given to the board; the rest
// is the sidebar.
const boardShare = 0.625

// geometry maps cell coordinates onto the logical screen.
type geometry struct {
	width, height int
	cell          float32
}

func newGeometry(width, height int) geometry {
	cell := min(float32(height)/tetris.Height, float32(width)*boardShare/tetris.Width)
	return geometry{width: width, height: height, cell: cell}
}

// boardEnd is the x of the line between the board and the sidebar.
func (g geometry) boardEnd() float32 {
	return g.cell * tetris.Width
}

// sidebarCenter is the x the sidebar text is centered on.
func (g geometry) sidebarCenter() float32 {
	return g.boardEnd() + (float32(g.width)-g.boardEnd())/2
}

func (g geometry) px(v float64) float32 {
	return float32(v) * g.cell
}

// shakeRange is the largest shake offset in each axis.
func (g geometry) shakeRange() (float32, float32) {
	return float32(g.width) / 50, float32(g.height) / 50
}

// backgroundHue is the intense-mode background hue in degrees. It swings
// between the palette bounds, which are on a 0..255 scale.
func backgroundHue(p tetris.Palette, tick uint64) float64 {
	t := (math.Sin(float64(tick)*0.03) + 1) / 2
	h := float64(p.HueLow) + t*float64(p.HueHigh-p.HueLow)
	return h / 255 * 360
}

func background(p tetris.Palette, tick uint64, intense bool) color.Color {
	if !intense {
		return color.Black
	}
	r, g, b := colorful.Hsv(backgroundHue(p, tick), 1, 1).RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}
