package tetris_test

import (
	"math/rand/v2"
	"testing"

	"github.com/plus3/tetrispi/tetris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filled(k tetris.Kind) tetris.Cell {
	return tetris.Cell{Filled: true, Kind: k, Color: tetris.PaletteFor(0).ColorOf(k)}
}

func fillRow(b *tetris.Board, y int, except ...int) {
	for x := 0; x < tetris.Width; x++ {
		b.Set(x, y, filled(tetris.T))
	}
	for _, x := range except {
		b.Set(x, y, tetris.Cell{})
	}
}

func dropCurrent(g *tetris.Grid) {
	for !g.MoveCurrent(tetris.Down, true) {
	}
}

// settle runs ticks until the spawn delay after a lock has elapsed.
func settle(g *tetris.Grid) {
	for range tetris.SpawnDelay + 1 {
		g.Update()
	}
}

func eventsOf(events []tetris.Event, typ tetris.EventType) []tetris.Event {
	var out []tetris.Event
	for _, e := range events {
		if e.Type == typ {
			out = append(out, e)
		}
	}
	return out
}

func TestCollisionTotality(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))

	expected := func(b *tetris.Board, cells [4]tetris.Point) bool {
		for _, c := range cells {
			switch {
			case c.X < 0, c.X >= tetris.Width, c.Y >= tetris.Height:
				return true
			case c.Y >= 0 && b.At(c.X, c.Y).Filled:
				return true
			}
		}
		return false
	}

	for range 2000 {
		var b tetris.Board
		density := rng.Float64()
		for y := 0; y < tetris.Height; y++ {
			for x := 0; x < tetris.Width; x++ {
				if rng.Float64() < density {
					b.Set(x, y, filled(tetris.O))
				}
			}
		}

		var cells [4]tetris.Point
		for i := range cells {
			cells[i] = tetris.Point{X: rng.IntN(tetris.Width+4) - 2, Y: rng.IntN(tetris.Height+6) - 4}
		}
		assert.Equal(t, expected(&b, cells), b.Collides(cells), "cells %v", cells)
	}
}

func TestMoveCurrent(t *testing.T) {
	t.Run("open move commits", func(t *testing.T) {
		g := tetris.New(tetris.WithSequence(tetris.T, tetris.O))
		assert.False(t, g.MoveCurrent(tetris.Left, true))
		assert.Equal(t, tetris.Vec{X: 4, Y: 0}, g.Current().Anchor)
	})

	t.Run("side wall does not lock", func(t *testing.T) {
		g := tetris.New(tetris.WithSequence(tetris.T, tetris.O))
		for range 4 {
			require.False(t, g.MoveCurrent(tetris.Left, true))
		}
		assert.True(t, g.MoveCurrent(tetris.Left, true))
		assert.False(t, g.Current().Locked)
		assert.Equal(t, 0, g.Current().Cells()[0].X)
		assert.Empty(t, g.Events())
	})

	t.Run("floor without handling does not lock", func(t *testing.T) {
		g := tetris.New(tetris.WithSequence(tetris.T, tetris.O))
		for !g.MoveCurrent(tetris.Down, false) {
		}
		assert.False(t, g.Current().Locked)
		assert.Equal(t, 0, g.Board().FilledCount())
	})

	t.Run("locked piece always collides", func(t *testing.T) {
		g := tetris.New(tetris.WithSequence(tetris.T, tetris.O))
		dropCurrent(g)
		for _, dir := range []tetris.Direction{tetris.Down, tetris.Left, tetris.Right, tetris.Up} {
			assert.True(t, g.MoveCurrent(dir, true))
		}
	})
}

func TestLockInvariant(t *testing.T) {
	for _, kind := range allKinds {
		t.Run(kind.String(), func(t *testing.T) {
			g := tetris.New(tetris.WithSequence(kind, tetris.O))
			g.MoveCurrent(tetris.Left, false)
			dropCurrent(g)

			p := g.Current()
			require.True(t, p.Locked)
			board := g.Board()
			for _, c := range p.Cells() {
				cell := board.At(c.X, c.Y)
				assert.True(t, cell.Filled)
				assert.Equal(t, p.Color, cell.Color)
				assert.Equal(t, kind, cell.Kind)
			}
			assert.Equal(t, 4, board.FilledCount())

			locked := eventsOf(g.Events(), tetris.EventLocked)
			require.Len(t, locked, 1)
			assert.Empty(t, locked[0].Rows)
		})
	}
}

func TestRotateCurrent(t *testing.T) {
	t.Run("O never turns", func(t *testing.T) {
		g := tetris.New(tetris.WithSequence(tetris.O, tetris.O))
		before := g.Current()
		assert.False(t, g.RotateCurrent(true, false))
		assert.False(t, g.RotateCurrent(false, true))
		assert.Equal(t, before, g.Current())
	})

	for _, kind := range []tetris.Kind{tetris.S, tetris.Z, tetris.I} {
		t.Run(kind.String()+" toggles between two states", func(t *testing.T) {
			g := tetris.New(tetris.WithSequence(kind, tetris.O))
			g.MoveCurrent(tetris.Down, true)
			g.MoveCurrent(tetris.Down, true)
			before := g.Current()

			require.True(t, g.RotateCurrent(false, false))
			assert.Equal(t, 1, g.Current().Orientation)
			require.True(t, g.RotateCurrent(false, false))
			assert.Equal(t, before, g.Current())

			require.True(t, g.RotateCurrent(true, false))
			require.True(t, g.RotateCurrent(true, false))
			assert.Equal(t, before, g.Current())
		})
	}

	t.Run("L J T follow the requested direction", func(t *testing.T) {
		g := tetris.New(tetris.WithSequence(tetris.T, tetris.O))
		g.MoveCurrent(tetris.Down, true)
		require.True(t, g.RotateCurrent(false, false))
		assert.Equal(t, 3, g.Current().Orientation)
		require.True(t, g.RotateCurrent(true, false))
		require.True(t, g.RotateCurrent(true, false))
		assert.Equal(t, 1, g.Current().Orientation)
	})

	t.Run("blocked rotation leaves the piece untouched", func(t *testing.T) {
		var b tetris.Board
		b.Set(5, 1, filled(tetris.O))
		g := tetris.New(tetris.WithBoard(b), tetris.WithSequence(tetris.I, tetris.O))
		before := g.Current()

		assert.False(t, g.RotateCurrent(true, false))
		assert.Equal(t, before, g.Current())

		assert.True(t, g.RotateCurrent(true, true))
		assert.Equal(t, 1, g.Current().Orientation)
	})
}

func TestLineClear(t *testing.T) {
	var b tetris.Board
	fillRow(&b, 3)
	fillRow(&b, 7)
	b.Set(1, 2, filled(tetris.J))
	b.Set(2, 5, filled(tetris.L))
	b.Set(0, 10, filled(tetris.S))

	g := tetris.New(tetris.WithBoard(b), tetris.WithSequence(tetris.O, tetris.T))
	dropCurrent(g)

	locked := eventsOf(g.Events(), tetris.EventLocked)
	require.Len(t, locked, 1)
	assert.Equal(t, []int{3, 7}, locked[0].Rows)
	assert.Equal(t, []int{3, 7}, g.PendingRows())

	before := g.Board()
	settle(g)
	after := g.Board()

	assert.Equal(t, 2, g.Lines())
	assert.Equal(t, 300, g.Score())

	source := func(row int) int {
		switch {
		case row > 7:
			return row
		case row >= 5:
			return row - 1
		case row >= 2:
			return row - 2
		default:
			return -1
		}
	}
	for row := 0; row < tetris.Height; row++ {
		src := source(row)
		if src < 0 {
			assert.Equal(t, [tetris.Width]tetris.Cell{}, after[row], "row %d", row)
			continue
		}
		assert.Equal(t, before[src], after[row], "row %d from %d", row, src)
	}
	assert.Empty(t, after.FullRows())
}

func TestLinePoints(t *testing.T) {
	assert.Equal(t, 100, tetris.LinePoints(1, 0))
	assert.Equal(t, 300, tetris.LinePoints(2, 0))
	assert.Equal(t, 600, tetris.LinePoints(3, 0))
	assert.Equal(t, 1000, tetris.LinePoints(4, 0))
	assert.Equal(t, 2600, tetris.LinePoints(4, 2))
	assert.Equal(t, 180, tetris.LinePoints(1, 1))
	assert.Equal(t, 0, tetris.LinePoints(0, 5))
}

func TestTetrisScenario(t *testing.T) {
	var b tetris.Board
	for y := tetris.Height - 4; y < tetris.Height; y++ {
		fillRow(&b, y, 9)
	}

	g := tetris.New(tetris.WithBoard(b), tetris.WithSequence(tetris.I, tetris.O))
	require.True(t, g.RotateCurrent(true, false))
	for range 4 {
		require.False(t, g.MoveCurrent(tetris.Right, true))
	}
	dropCurrent(g)

	locked := eventsOf(g.Events(), tetris.EventLocked)
	require.Len(t, locked, 1)
	assert.True(t, locked[0].Tetris())

	settle(g)
	events := g.Events()
	cleared := eventsOf(events, tetris.EventLinesCleared)
	require.Len(t, cleared, 1)
	assert.Equal(t, 4, cleared[0].Lines)
	assert.Equal(t, 1000, cleared[0].Points)
	assert.True(t, cleared[0].Tetris())

	assert.Equal(t, 4, g.Lines())
	assert.Equal(t, 1000, g.Score())
	assert.Equal(t, 0, g.Level())
	assert.Equal(t, 0, g.Board().FilledCount())
	assert.Len(t, eventsOf(events, tetris.EventSpawned), 1)
}

func TestUpdateGravity(t *testing.T) {
	g := tetris.New(tetris.WithLevel(9), tetris.WithSequence(tetris.T, tetris.O))
	require.Equal(t, 8, g.FallRate())

	for range 8 {
		g.Update()
	}
	assert.Equal(t, 0.0, g.Current().Anchor.Y)
	g.Update()
	assert.Equal(t, 1.0, g.Current().Anchor.Y)
}

func TestSpawnAfterDelay(t *testing.T) {
	g := tetris.New(tetris.WithSequence(tetris.T, tetris.I, tetris.O))
	dropCurrent(g)
	g.Events()

	for range tetris.SpawnDelay {
		g.Update()
		assert.True(t, g.Current().Locked)
	}
	g.Update()

	assert.Equal(t, tetris.I, g.Current().Kind)
	assert.False(t, g.Current().Locked)
	assert.Equal(t, tetris.SpawnAnchor, g.Current().Anchor)
	assert.Equal(t, tetris.O, g.Next().Kind)
	assert.Equal(t, tetris.PreviewAnchor, g.Next().Anchor)

	spawned := eventsOf(g.Events(), tetris.EventSpawned)
	require.Len(t, spawned, 1)
	assert.Equal(t, tetris.I, spawned[0].Kind)
	assert.Equal(t, 0, spawned[0].Drought)
}

func TestDrought(t *testing.T) {
	g := tetris.New(tetris.WithSequence(tetris.O, tetris.T, tetris.S, tetris.I, tetris.O))
	for range 3 {
		g.MoveCurrent(tetris.Left, false)
		g.MoveCurrent(tetris.Left, false)
		g.MoveCurrent(tetris.Left, false)
		g.MoveCurrent(tetris.Left, false)
		dropCurrent(g)
		settle(g)
	}
	assert.Equal(t, tetris.I, g.Current().Kind)
	assert.Equal(t, 0, g.Drought())
	assert.Equal(t, 2, g.LastDrought())
}

func TestGameOver(t *testing.T) {
	t.Run("spawn overlap", func(t *testing.T) {
		var b tetris.Board
		for y := 2; y < tetris.Height; y++ {
			b.Set(5, y, filled(tetris.O))
			b.Set(6, y, filled(tetris.O))
		}
		g := tetris.New(tetris.WithBoard(b), tetris.WithSequence(tetris.O, tetris.T))
		dropCurrent(g)
		settle(g)

		assert.True(t, g.IsGameOver())
		over := eventsOf(g.Events(), tetris.EventGameOver)
		require.Len(t, over, 1)

		before := g.Board()
		g.Update()
		assert.Equal(t, before, g.Board())
		assert.True(t, g.MoveCurrent(tetris.Left, false))
	})

	t.Run("lock above the board", func(t *testing.T) {
		var b tetris.Board
		for y := 2; y < tetris.Height; y++ {
			b.Set(5, y, filled(tetris.O))
		}
		g := tetris.New(tetris.WithBoard(b), tetris.WithSequence(tetris.I, tetris.O))
		require.True(t, g.RotateCurrent(true, false))
		dropCurrent(g)

		assert.True(t, g.IsGameOver())
		events := g.Events()
		assert.Empty(t, eventsOf(events, tetris.EventLocked))
		assert.Len(t, eventsOf(events, tetris.EventGameOver), 1)
	})
}

func TestClone(t *testing.T) {
	var b tetris.Board
	fillRow(&b, 23, 0)
	g := tetris.New(tetris.WithBoard(b), tetris.WithLevel(3), tetris.WithSequence(tetris.L, tetris.J))
	g.MoveCurrent(tetris.Down, true)
	g.SetTarget(tetris.Target{X: 2, Orientation: 1, Valid: true})

	c := g.Clone()
	assert.Equal(t, g.Board(), c.Board())
	assert.Equal(t, g.Current(), c.Current())
	assert.Equal(t, g.Next(), c.Next())
	assert.Equal(t, g.Level(), c.Level())
	assert.Equal(t, g.Target(), c.Target())

	c.RotateCurrent(true, false)
	for !c.MoveCurrent(tetris.Down, true) {
	}
	c.BoardRef().Set(0, 0, filled(tetris.Z))

	assert.Equal(t, b, g.Board())
	assert.Equal(t, 0, g.Current().Orientation)
	assert.Equal(t, 1.0, g.Current().Anchor.Y)
	assert.False(t, g.Current().Locked)
	assert.Empty(t, g.Events())
}

func TestSetIntense(t *testing.T) {
	g := tetris.New(tetris.WithLevel(4))
	assert.Equal(t, 26, g.FallRate())
	g.SetIntense(true)
	assert.True(t, g.Intense())
	assert.Equal(t, 18, g.FallRate())
	g.SetIntense(false)
	assert.Equal(t, 26, g.FallRate())

	assert.Equal(t, 0, tetris.FallRate(40, false))
	assert.Equal(t, 45, tetris.FallRate(-3, false))
}
