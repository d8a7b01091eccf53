// Package session runs a game: it polls input, drives the grid or the
// autoplay agent, reacts to grid events and hands a snapshot to the
// renderer each tick.
package session

import (
	"github.com/google/uuid"
	"github.com/plus3/tetrispi/audio"
	"github.com/plus3/tetrispi/effects"
	"github.com/plus3/tetrispi/input"
	"github.com/plus3/tetrispi/menu"
	"github.com/plus3/tetrispi/scores"
	"github.com/plus3/tetrispi/tetris"
)

type Mode uint8

const (
	ModePlaying Mode = iota
	ModeMenu
)

func (m Mode) String() string {
	if m == ModeMenu {
		return "menu"
	}
	return "playing"
}

const (
	// DefaultInactivity is how long, in ticks, the player may be idle before
	// the agent takes over.
	DefaultInactivity = 1200
	// StartDelay holds the grid still at the start of each game.
	StartDelay = 20
	// LockShake is how long the screen shakes after a lock.
	LockShake = 8
	// ShownScores is the length of the displayed high score table.
	ShownScores = 10
	// DroughtCue is the drought length the commentary reacts to.
	DroughtCue = 15
)

// State is the session singleton shared by every system.
type State struct {
	RunID uuid.UUID `inspect:"readonly"`
	Mode  Mode
	Grid  *tetris.Grid

	// Settings are the menu values; ActiveName is who the running game is
	// recorded under.
	Settings   menu.Settings
	ActiveName string `inspect:"readonly"`
	Profile    Profile

	Intense    bool
	Inactivity int
	StartDelay int
	Music      MusicClock
	Shake      int

	Held     input.State `inspect:"readonly"`
	Triggers input.State `inspect:"readonly"`

	Games     int `inspect:"readonly"`
	Last      Result
	Scores    []scores.Entry
	MadeTop10 bool
	MadeTop2  bool
}

// Result summarizes a game that ended by topping out.
type Result struct {
	Name  string
	Score int
	Lines int
	Level int
}

// Demo reports whether the agent is playing.
func (s *State) Demo() bool {
	return s.Mode == ModePlaying && s.Inactivity == 0
}

// Renderer draws one tick. Implementations must not retain Frame slices
// past the next call.
type Renderer interface {
	Render(f Frame)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(Frame)

func (f RendererFunc) Render(fr Frame) { f(fr) }

// AudioPlayer is the part of audio.Player the session drives.
type AudioPlayer interface {
	PlayEffect(c audio.Cue)
	PlayMusic(tick int)
	PauseMusic()
	ResumeMusic()
	SeekMusic(tick int)
	SetGains(music, sound float64)
}

// ScoreStore persists finished games.
type ScoreStore interface {
	Append(name string, score int) error
	Delete(name string) error
	Top(n int) []scores.Entry
}

// MenuView is what the renderer needs to draw the settings menu.
type MenuView struct {
	Option    menu.Option
	Cursor    int
	NameChars [menu.NameLength]rune
	Settings  menu.Settings
}

// Frame is a snapshot of everything drawn in one tick.
type Frame struct {
	Tick      uint64
	Mode      Mode
	Demo      bool
	Intense   bool
	Board     tetris.Board
	Current   tetris.Piece
	Next      tetris.Piece
	Palette   tetris.Palette
	Score     int
	Level     int
	Lines     int
	Countdown int
	Shake     int
	Name      string
	Scores    []scores.Entry
	Effects   []effects.Effect
	Menu      MenuView
}
