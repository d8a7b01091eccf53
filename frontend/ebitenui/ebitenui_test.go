package ebitenui

import (
	"image/color"
	"testing"

	"github.com/plus3/tetrispi/effects"
	"github.com/plus3/tetrispi/session"
	"github.com/plus3/tetrispi/tetris"
	"github.com/stretchr/testify/assert"
)

func TestGeometry(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		cell          float32
	}{
		{"cabinet", 640, 960, 40},
		{"wide", 1280, 480, 20},
		{"narrow", 320, 960, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGeometry(tt.width, tt.height)
			assert.Equal(t, tt.cell, g.cell)
			assert.Equal(t, tt.cell*tetris.Width, g.boardEnd())
			assert.Greater(t, g.sidebarCenter(), g.boardEnd())
		})
	}
}

func TestBackgroundHue(t *testing.T) {
	p := tetris.PaletteFor(1)
	lo := float64(p.HueLow) / 255 * 360
	hi := float64(p.HueHigh) / 255 * 360
	for tick := range uint64(300) {
		h := backgroundHue(p, tick)
		assert.GreaterOrEqual(t, h, lo-1e-9)
		assert.LessOrEqual(t, h, hi+1e-9)
	}

	assert.Equal(t, color.Color(color.Black), background(p, 10, false))
	_, ok := background(p, 10, true).(color.NRGBA)
	assert.True(t, ok)
}

func TestRendererCopiesEffects(t *testing.T) {
	r := NewRenderer(640, 960)
	shared := []effects.Effect{effects.NewLineClear(3)}

	r.Render(session.Frame{Tick: 1, Effects: shared})
	shared[0] = effects.NewStreak(1)

	f := r.Frame()
	assert.Equal(t, uint64(1), f.Tick)
	assert.Equal(t, effects.LineClear, f.Effects[0].Kind)
}

func TestGainText(t *testing.T) {
	assert.Equal(t, "muted", gainText(-20))
	assert.Equal(t, "+0.0 dB", gainText(0))
	assert.Equal(t, "-4.0 dB", gainText(-4))
}
