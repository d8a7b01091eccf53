package session

import (
	"io"
	"log/slog"
	"testing"

	"github.com/plus3/tetrispi/audio"
	"github.com/plus3/tetrispi/effects"
	"github.com/plus3/tetrispi/input"
	"github.com/plus3/tetrispi/menu"
	"github.com/plus3/tetrispi/scores"
	"github.com/plus3/tetrispi/tetris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingAudio struct {
	audio.Nop
	cues   []audio.Cue
	played []int
	paused int
}

func (r *recordingAudio) PlayEffect(c audio.Cue) { r.cues = append(r.cues, c) }
func (r *recordingAudio) PlayMusic(tick int)     { r.played = append(r.played, tick) }
func (r *recordingAudio) PauseMusic()            { r.paused++ }

type heldButtons struct {
	state input.State
}

func (h *heldButtons) Poll() input.State { return h.state }

type harness struct {
	*Session
	buttons *heldButtons
	audio   *recordingAudio
	store   *scores.Store
	frames  []Frame
}

func newHarness(t *testing.T, opts Options) *harness {
	t.Helper()
	h := &harness{
		buttons: &heldButtons{},
		audio:   &recordingAudio{},
		store:   scores.NewMemory(),
	}
	if opts.Scores == nil {
		opts.Scores = h.store
	}
	opts.Input = h.buttons
	opts.Audio = h.audio
	opts.Seed = 7
	opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	opts.Renderer = RendererFunc(func(f Frame) { h.frames = append(h.frames, f) })
	h.Session = New(opts)
	return h
}

func (h *harness) ticks(n int) {
	for range n {
		h.Tick()
	}
}

func (h *harness) lastFrame() Frame {
	return h.frames[len(h.frames)-1]
}

func TestNewSession(t *testing.T) {
	h := newHarness(t, Options{Settings: menu.Settings{Name: "bob", StartLevel: 3}})
	st := h.State()

	assert.Equal(t, ModePlaying, st.Mode)
	assert.Equal(t, 1, st.Games)
	assert.Equal(t, "BOB", st.ActiveName)
	assert.Equal(t, 3, st.Grid.Level())
	assert.Equal(t, StartDelay, st.StartDelay)
	assert.Equal(t, DefaultInactivity, st.Inactivity)
	assert.Equal(t, []int{0}, h.audio.played)

	h.ticks(1)
	f := h.lastFrame()
	assert.Equal(t, uint64(1), f.Tick)
	assert.False(t, f.Demo)
	assert.Equal(t, "BOB", f.Name)
}

func TestStartDelayHoldsGravity(t *testing.T) {
	h := newHarness(t, Options{})
	start := h.State().Grid.Current().Anchor

	h.ticks(StartDelay)
	assert.Equal(t, start, h.State().Grid.Current().Anchor)
}

func TestDemoEntry(t *testing.T) {
	h := newHarness(t, Options{Inactivity: 5})
	st := h.State()

	h.ticks(4)
	assert.False(t, st.Demo())

	h.ticks(1)
	require.True(t, st.Demo())
	assert.Equal(t, AIName, st.ActiveName)
	assert.True(t, st.Grid.Target().Valid, "the agent plans as soon as it takes over")

	h.ticks(1)
	assert.True(t, h.lastFrame().Demo)
}

func TestDemoPlaysPieces(t *testing.T) {
	h := newHarness(t, Options{Inactivity: 1})
	st := h.State()

	h.ticks(400)
	assert.Equal(t, 1, st.Games, "the agent should not top out this quickly")
	assert.Greater(t, st.Grid.Board().FilledCount(), 0)
	assert.Contains(t, h.audio.cues, audio.Drop)
}

func TestInterruptDemo(t *testing.T) {
	h := newHarness(t, Options{Inactivity: 3, Settings: menu.Settings{Name: "EVE"}})
	st := h.State()
	h.ticks(3)
	require.True(t, st.Demo())
	paused := h.audio.paused

	h.buttons.state[input.Down] = true
	h.ticks(1)

	assert.Equal(t, ModeMenu, st.Mode)
	assert.Equal(t, 2, st.Games)
	assert.Equal(t, 2, st.Inactivity, "reloaded, then counted down by this tick")
	assert.Equal(t, "EVE", st.ActiveName)
	assert.Greater(t, h.audio.paused, paused)
	assert.Equal(t, ModeMenu, h.lastFrame().Mode)
}

func TestInterruptDemoIgnoresOtherButtons(t *testing.T) {
	h := newHarness(t, Options{Inactivity: 3, Settings: menu.Settings{Name: "EVE"}})
	st := h.State()
	h.ticks(3)
	require.True(t, st.Demo())

	// B alone would close the menu the interrupt just opened.
	h.buttons.state[input.Down] = true
	h.buttons.state[input.B] = true
	h.ticks(1)

	assert.Equal(t, ModeMenu, st.Mode)
	assert.Equal(t, 2, st.Games)
	assert.Equal(t, ModeMenu, h.lastFrame().Mode)
}

func TestWallCharge(t *testing.T) {
	h := newHarness(t, Options{})
	st := h.State()
	st.Grid = tetris.New(tetris.WithSequence(tetris.T, tetris.O))
	for !st.Grid.MoveCurrent(tetris.Left, true) {
	}
	anchor := st.Grid.Current().Anchor

	h.buttons.state[input.Left] = true
	h.ticks(1)
	assert.True(t, st.Triggers[input.Left])

	h.ticks(1)
	assert.True(t, st.Triggers[input.Left], "a blocked move retriggers on the next tick")
	assert.False(t, st.Grid.Current().Locked)
	assert.Equal(t, anchor, st.Grid.Current().Anchor)
}

func TestPauseOpensMenu(t *testing.T) {
	h := newHarness(t, Options{Settings: menu.Settings{Name: "ANN"}})
	st := h.State()

	h.buttons.state[input.Pause] = true
	h.ticks(1)
	h.buttons.state[input.Pause] = false
	require.Equal(t, ModeMenu, st.Mode)
	assert.Equal(t, 1, h.audio.paused)

	pos := st.Music.Pos
	h.ticks(5)
	assert.Equal(t, pos, st.Music.Pos, "music does not advance in the menu")

	// B closes without changes and resumes the same game.
	h.buttons.state[input.B] = true
	h.ticks(1)
	assert.Equal(t, ModePlaying, st.Mode)
	assert.Equal(t, 1, st.Games)
}

func TestMenuRestartOnLevelChange(t *testing.T) {
	h := newHarness(t, Options{Settings: menu.Settings{Name: "ANN"}})
	st := h.State()

	press := func(b input.Button) {
		h.buttons.state[b] = true
		h.ticks(1)
		h.buttons.state[b] = false
		h.ticks(1)
	}
	press(input.Pause)
	press(input.Down) // level
	press(input.Right)
	press(input.Right) // 0 -> 1
	press(input.B)

	assert.Equal(t, ModePlaying, st.Mode)
	assert.Equal(t, 2, st.Games)
	assert.Equal(t, 1, st.Settings.StartLevel)
	assert.Equal(t, 1, st.Grid.Level())
}

// toppingOutGrid clears one row for 100 points, then stacks an O under the
// spawn point so the following T cannot enter.
func toppingOutGrid() *tetris.Grid {
	var b tetris.Board
	filled := tetris.Cell{Filled: true, Kind: tetris.Z}
	for y := 2; y < tetris.Height; y++ {
		for x := 0; x < tetris.Width-1; x++ {
			b.Set(x, y, filled)
		}
	}
	for x := 0; x < tetris.Width; x++ {
		if x < 3 || x > 6 {
			b.Set(x, 1, filled)
		}
	}
	return tetris.New(tetris.WithBoard(b), tetris.WithSequence(tetris.I, tetris.O, tetris.T))
}

func TestGameOverPersistsScore(t *testing.T) {
	h := newHarness(t, Options{Settings: menu.Settings{Name: "JEFF", StartLevel: 2}})
	st := h.State()
	st.Grid = toppingOutGrid()

	for i := 0; i < 1000 && st.Games == 1; i++ {
		h.Tick()
	}
	require.Equal(t, 2, st.Games)
	assert.Equal(t, Result{Name: "JEFF", Score: 100, Lines: 1}, st.Last)

	assert.Equal(t, []scores.Entry{{Name: "JEFF", Score: 100}}, h.store.Entries())
	assert.Equal(t, []scores.Entry{{Name: "JEFF", Score: 100}}, st.Scores)
	assert.Equal(t, 2, st.Grid.Level(), "restart at the selected level")
	assert.Equal(t, 0, st.Grid.Score())
	assert.Contains(t, h.audio.cues, audio.Clear)
	assert.Contains(t, h.audio.cues, audio.Lost)
	assert.Contains(t, h.audio.cues, audio.NeckAndNeck)
}

func TestLockSpawnsEffects(t *testing.T) {
	h := newHarness(t, Options{})
	st := h.State()
	st.Grid = toppingOutGrid()
	st.StartDelay = 0

	for !st.Grid.Current().Locked {
		st.Grid.MoveCurrent(tetris.Down, true)
	}
	h.ticks(1)
	assert.Equal(t, LockShake-1, st.Shake)
	assert.Equal(t, 2, h.Storage().Len(), "explode and line clear entities")
	assert.Contains(t, h.audio.cues, audio.Clear)

	h.ticks(1)
	var kinds []effects.Kind
	for _, fx := range h.lastFrame().Effects {
		kinds = append(kinds, fx.Kind)
	}
	assert.Equal(t, []effects.Kind{effects.LineClear}, kinds, "explode is only drawn in intense mode")
	assert.Equal(t, 1, h.Storage().Len(), "classic mode drops intense-only effects")
}

func TestProfiles(t *testing.T) {
	t.Run("always intense", func(t *testing.T) {
		h := newHarness(t, Options{Settings: menu.Settings{Name: "LOGAN"}})
		st := h.State()
		assert.True(t, st.Intense)
		assert.True(t, st.Grid.Intense())
		assert.Equal(t, 16, st.Grid.Level())
		assert.Equal(t, []int{st.Music.Points[0]}, h.audio.played)
	})

	t.Run("delete rank", func(t *testing.T) {
		store := scores.NewMemory()
		require.NoError(t, store.Append("AI", 900))
		require.NoError(t, store.Append("BOB", 800))
		require.NoError(t, store.Append("BOB", 100))

		h := newHarness(t, Options{Scores: store, Settings: menu.Settings{Name: "DEL1"}})
		assert.Equal(t, []scores.Entry{{Name: "AI", Score: 900}}, store.Entries())
		assert.Equal(t, store.Top(ShownScores), h.State().Scores)
	})
}

func TestMusicTogglesIntense(t *testing.T) {
	h := newHarness(t, Options{TickRate: 1})
	st := h.State()
	st.Music = MusicClock{Points: [3]int{3, 6, 9}}
	st.Music.Start(false)

	h.ticks(5)
	assert.True(t, st.Intense)
	assert.Equal(t, tetris.FallRate(0, true), st.Grid.FallRate())
}
