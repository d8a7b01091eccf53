package effects

import (
	"testing"

	"github.com/plus3/tetrispi/tetris"
	"github.com/stretchr/testify/assert"
)

func TestStep(t *testing.T) {
	t.Run("explode grows", func(t *testing.T) {
		e := NewExplode(tetris.Vec{X: 4, Y: 20})
		e.Step()
		assert.InDelta(t, 2.4, e.Size, 1e-9)
		assert.Equal(t, 9, e.Life)
		assert.Equal(t, 4.0, e.X)
	})

	t.Run("line explode widens", func(t *testing.T) {
		e := NewLineExplode([]int{20, 21, 22, 23})
		assert.InDelta(t, 21.5, e.Y, 1e-9)
		assert.Equal(t, 5.0, e.X)
		e.Step()
		e.Step()
		assert.InDelta(t, 2*13/ReferenceCell, e.Dist, 1e-9)
	})

	t.Run("streak rises", func(t *testing.T) {
		e := NewStreak(3)
		y := e.Y
		e.Step()
		assert.InDelta(t, y-1, e.Y, 1e-9)
	})

	t.Run("line clear flashes", func(t *testing.T) {
		e := NewLineClear(7)
		var lit []bool
		for range 6 {
			e.Step()
			lit = append(lit, e.Lit())
		}
		// 10, 8, 6, 4, 2, 0
		assert.Equal(t, []bool{false, false, false, true, true, false}, lit)
	})
}

func TestExpired(t *testing.T) {
	e := NewLineClear(0)
	for range 9 {
		e.Step()
	}
	assert.False(t, e.Expired())
	e.Step()
	assert.True(t, e.Expired())
}

func TestVisible(t *testing.T) {
	assert.True(t, NewLineClear(0).Visible(false))
	assert.False(t, NewExplode(tetris.Vec{}).Visible(false))
	assert.True(t, NewExplode(tetris.Vec{}).Visible(true))
	assert.False(t, NewStreak(0).Visible(false))
}

func TestAlpha(t *testing.T) {
	e := NewLineClear(0)
	assert.Equal(t, uint8(255), e.Alpha())
	for range 5 {
		e.Step()
	}
	assert.Equal(t, uint8(127), e.Alpha())

	x := NewExplode(tetris.Vec{})
	for range 10 {
		x.Step()
	}
	assert.Equal(t, uint8(0), x.Alpha())
}

func TestSpawner(t *testing.T) {
	var s Spawner
	var fired []int
	for tick := range 20 {
		if s.Tick(true) {
			fired = append(fired, tick)
		}
	}
	assert.Equal(t, []int{0, 8, 16}, fired)

	assert.False(t, s.Tick(false))
	assert.True(t, s.Tick(true))
}
