// Package effects holds the short-lived visual effects spawned by the game:
// the lock burst, the row flash, the tetris ring and the intense-mode
// streaks. Positions and sizes are in board cells.
package effects

import "github.com/plus3/tetrispi/tetris"

// ReferenceCell is the cell size in pixels the effect speeds were tuned for.
// Pixel velocities are expressed in cells by dividing by it.
const ReferenceCell = 20.0

type Kind uint8

const (
	Explode Kind = iota
	LineClear
	LineExplode
	Streak
)

func (k Kind) String() string {
	switch k {
	case Explode:
		return "explode"
	case LineClear:
		return "line-clear"
	case LineExplode:
		return "line-explode"
	case Streak:
		return "streak"
	}
	return "unknown"
}

const (
	explodeLife     = 10
	explodeGrowth   = 1.2
	lineClearLife   = 10
	lineExplodeLife = 200
	lineExplodeVel  = 13 / ReferenceCell
	streakLife      = 200
	streakVel       = 20 / ReferenceCell
	streakStartY    = tetris.Height * 1.4

	// StreakInterval is the number of ticks between streak spawns.
	StreakInterval = 8
	// RingSpokes is the number of blocks drawn around a LineExplode.
	RingSpokes = 24

	flashPeriod = 10
	flashStep   = 2
)

// Effect is a tagged union over the effect kinds. Fields that do not apply
// to Kind stay zero.
type Effect struct {
	Kind        Kind
	X, Y        float64
	Life        int
	IntenseOnly bool

	Size  float64 // Explode: side of the square
	Vel   float64 // LineExplode, Streak
	Dist  float64 // LineExplode: ring radius
	Flash int     // LineClear: classic-mode flash counter
}

// NewExplode bursts at the anchor of a piece that just locked.
func NewExplode(at tetris.Vec) Effect {
	return Effect{Kind: Explode, X: at.X, Y: at.Y, Life: explodeLife, IntenseOnly: true, Size: 2}
}

// NewLineClear flashes row.
func NewLineClear(row int) Effect {
	return Effect{Kind: LineClear, X: 0, Y: float64(row), Life: lineClearLife}
}

// NewLineExplode rings outward from the centre of the rows removed by a
// tetris.
func NewLineExplode(rows []int) Effect {
	var avg float64
	for _, r := range rows {
		avg += float64(r)
	}
	if len(rows) > 0 {
		avg /= float64(len(rows))
	}
	return Effect{
		Kind:        LineExplode,
		X:           tetris.Width / 2,
		Y:           avg,
		Life:        lineExplodeLife,
		IntenseOnly: true,
		Vel:         lineExplodeVel,
	}
}

// NewStreak rises from below the board at column x.
func NewStreak(x float64) Effect {
	return Effect{Kind: Streak, X: x, Y: streakStartY, Life: streakLife, IntenseOnly: true, Vel: streakVel}
}

// Step advances the effect by one tick.
func (e *Effect) Step() {
	e.Life--
	switch e.Kind {
	case Explode:
		e.Size *= explodeGrowth
	case LineClear:
		if e.Flash <= 0 {
			e.Flash = flashPeriod
		} else {
			e.Flash -= flashStep
		}
	case LineExplode:
		e.Dist += e.Vel
	case Streak:
		e.Y -= e.Vel
	}
}

func (e Effect) Expired() bool {
	return e.Life <= 0
}

// Visible reports whether the effect is drawn in the given mode.
func (e Effect) Visible(intense bool) bool {
	return intense || !e.IntenseOnly
}

// Lit reports whether a classic-mode LineClear is in the white half of its
// flash.
func (e Effect) Lit() bool {
	return e.Kind == LineClear && e.Flash > 0 && e.Flash <= flashPeriod/2
}

// Alpha is the opacity to draw the effect with in intense mode.
func (e Effect) Alpha() uint8 {
	switch e.Kind {
	case Explode:
		return clampAlpha(255 - e.Size*ReferenceCell*1.4)
	case LineClear:
		return clampAlpha(255 * float64(e.Life) / lineClearLife)
	case LineExplode:
		return 160
	case Streak:
		return 120
	}
	return 0
}

func clampAlpha(v float64) uint8 {
	return uint8(max(0, min(255, v)))
}

// Spawner emits a streak every StreakInterval ticks while intense mode is on.
type Spawner struct {
	timer int
}

// Tick returns true when a streak should be spawned this tick.
func (s *Spawner) Tick(intense bool) bool {
	if !intense {
		s.timer = 0
		return false
	}
	if s.timer > 0 {
		s.timer--
		return false
	}
	s.timer = StreakInterval - 1
	return true
}
