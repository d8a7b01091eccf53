package menu_test

import (
	"testing"

	"github.com/plus3/tetrispi/input"
	"github.com/plus3/tetrispi/menu"
	"github.com/stretchr/testify/assert"
)

func press(m *menu.Menu, buttons ...input.Button) menu.Result {
	r := menu.Stay
	for _, b := range buttons {
		r = m.Handle(b)
	}
	return r
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "JEFF", menu.NormalizeName("jeff"))
	assert.Equal(t, "A B", menu.NormalizeName("a-b"))
	assert.Equal(t, "ABCDEFGHIJ", menu.NormalizeName("abcdefghijklmnop"))
	assert.Equal(t, "", menu.NormalizeName("   "))
}

func TestNameEditing(t *testing.T) {
	m := menu.New(menu.Settings{Name: "AZ9"})

	press(m, input.A)
	assert.Equal(t, "BZ9", m.Settings().Name)

	press(m, input.Right, input.A)
	assert.Equal(t, "B09", m.Settings().Name)

	press(m, input.Right, input.A)
	assert.Equal(t, "B0", m.Settings().Name)

	press(m, input.Right, input.A)
	assert.Equal(t, "B0 A", m.Settings().Name)
	assert.Equal(t, 3, m.Cursor())
}

func TestCursorBounds(t *testing.T) {
	m := menu.New(menu.Settings{})
	press(m, input.Left)
	assert.Equal(t, 0, m.Cursor())

	for range 20 {
		press(m, input.Right)
	}
	assert.Equal(t, menu.NameLength-1, m.Cursor())

	press(m, input.Down)
	assert.Equal(t, menu.OptionLevel, m.Option())
	assert.Equal(t, 0, m.Cursor())

	press(m, input.Right, input.Pause)
	assert.Equal(t, menu.OptionName, m.Option())
	assert.Equal(t, 1, m.Cursor())

	press(m, input.Down, input.Down, input.Down, input.Down)
	assert.Equal(t, menu.OptionSound, m.Option())
	press(m, input.Pause, input.Pause, input.Pause, input.Pause)
	assert.Equal(t, menu.OptionName, m.Option())
}

func TestStartLevel(t *testing.T) {
	m := menu.New(menu.Settings{StartLevel: 15})
	press(m, input.Down)

	press(m, input.Right, input.Right, input.Right, input.Right)
	assert.Equal(t, 16, m.Settings().StartLevel)

	press(m, input.A)
	assert.Equal(t, 16, m.Settings().StartLevel)

	press(m, input.Left, input.Left)
	assert.Equal(t, 15, m.Settings().StartLevel)

	for range 20 {
		press(m, input.A)
	}
	assert.Equal(t, 0, m.Settings().StartLevel)
}

func TestGains(t *testing.T) {
	m := menu.New(menu.Settings{MusicGain: 2.5, SoundGain: -19.5})
	press(m, input.Down, input.Down)
	assert.Equal(t, menu.OptionMusic, m.Option())

	press(m, input.Right, input.Right)
	assert.Equal(t, menu.MaxGain, m.Settings().MusicGain)

	press(m, input.Down)
	assert.Equal(t, 1, m.Cursor())
	press(m, input.Left)
	assert.Equal(t, 0, m.Cursor())
	press(m, input.Left)
	assert.Equal(t, menu.MinGain, m.Settings().SoundGain)
	assert.True(t, menu.Muted(m.Settings().SoundGain))

	press(m, input.Right, input.A)
	assert.InDelta(t, menu.MinGain+menu.GainStep, m.Settings().SoundGain, 1e-9)
}

func TestClose(t *testing.T) {
	t.Run("unchanged resumes", func(t *testing.T) {
		m := menu.New(menu.Settings{Name: "AI", StartLevel: 3})
		press(m, input.Down, input.Down)
		press(m, input.Left)
		assert.Equal(t, menu.Resume, press(m, input.B))
	})

	t.Run("level change restarts", func(t *testing.T) {
		m := menu.New(menu.Settings{StartLevel: 3})
		press(m, input.Down, input.Left)
		assert.Equal(t, menu.Restart, press(m, input.B))
	})

	t.Run("name change restarts", func(t *testing.T) {
		m := menu.New(menu.Settings{Name: "BOB"})
		press(m, input.A)
		assert.Equal(t, menu.Restart, press(m, input.B))
	})

	t.Run("reopen forgets previous edits", func(t *testing.T) {
		m := menu.New(menu.Settings{Name: "BOB"})
		press(m, input.A)
		m.Open(m.Settings())
		assert.Equal(t, menu.Resume, m.Close())
		assert.Equal(t, "COB", m.Settings().Name)
	})
}
