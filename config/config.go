// Package config loads the JSON configuration for the game binaries.
package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/pixil98/go-errors"
	"github.com/plus3/tetrispi/input"
	"github.com/plus3/tetrispi/menu"
	"github.com/plus3/tetrispi/tetris"
)

const (
	FrontendEbiten   = "ebiten"
	FrontendTerminal = "terminal"
)

var frontends = []string{FrontendEbiten, FrontendTerminal}

type Config struct {
	TickRate   int          `json:"tick_rate"`
	Frontend   string       `json:"frontend"`
	Seed       uint64       `json:"seed"`
	Window     WindowConfig `json:"window"`
	Player     PlayerConfig `json:"player"`
	Inactivity int          `json:"inactivity_ticks"`
	ScoresPath string       `json:"scores_path"`
	Audio      AudioConfig  `json:"audio"`
	GPIO       GPIOConfig   `json:"gpio"`
	Debug      DebugConfig  `json:"debug"`
}

type WindowConfig struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Title  string `json:"title"`
}

type PlayerConfig struct {
	Name       string `json:"name"`
	StartLevel int    `json:"start_level"`
}

type AudioConfig struct {
	Enabled    bool    `json:"enabled"`
	SampleRate int     `json:"sample_rate"`
	MusicPath  string  `json:"music_path"`
	EffectsDir string  `json:"effects_dir"`
	MusicGain  float64 `json:"music_gain"`
	SoundGain  float64 `json:"sound_gain"`
}

type GPIOConfig struct {
	Enabled bool     `json:"enabled"`
	Pins    []string `json:"pins"`
}

type DebugConfig struct {
	Overlay  bool   `json:"overlay"`
	LogPath  string `json:"log_path"`
	LogLevel string `json:"log_level"`
}

// Default is the configuration used when no file is given. Loaded files are
// decoded over it, so a file only needs the fields it changes.
func Default() Config {
	return Config{
		TickRate: 60,
		Frontend: FrontendEbiten,
		Window: WindowConfig{
			Width:  640,
			Height: 960,
			Title:  "TetrisPi",
		},
		Player: PlayerConfig{
			Name: "PLAYER",
		},
		Inactivity: 1200,
		ScoresPath: "data/scores.csv",
		Audio: AudioConfig{
			Enabled:    true,
			SampleRate: 44100,
			MusicPath:  "data/music.wav",
			EffectsDir: "data/sounds",
		},
		GPIO: GPIOConfig{
			Pins: []string{"GPIO26", "GPIO19", "GPIO16", "GPIO20", "GPIO21", "GPIO13"},
		},
		Debug: DebugConfig{
			LogLevel: "info",
		},
	}
}

// Load reads the config at path. An empty or missing path yields Default.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	if c.TickRate <= 0 {
		el.Add(fmt.Errorf("tick_rate must be positive"))
	}
	if !slices.Contains(frontends, c.Frontend) {
		el.Add(fmt.Errorf("frontend %q must be one of %v", c.Frontend, frontends))
	}
	if c.Inactivity <= 0 {
		el.Add(fmt.Errorf("inactivity_ticks must be positive"))
	}
	if c.ScoresPath == "" {
		el.Add(fmt.Errorf("scores_path is required"))
	}

	el.Add(c.Window.Validate())
	el.Add(c.Player.Validate())
	el.Add(c.Audio.Validate())
	el.Add(c.GPIO.Validate())
	el.Add(c.Debug.Validate())

	return el.Err()
}

func (c *WindowConfig) Validate() error {
	el := errors.NewErrorList()
	if c.Width <= 0 || c.Height <= 0 {
		el.Add(fmt.Errorf("window: size %dx%d must be positive", c.Width, c.Height))
	}
	return el.Err()
}

func (c *PlayerConfig) Validate() error {
	el := errors.NewErrorList()
	if len([]rune(c.Name)) > menu.NameLength {
		el.Add(fmt.Errorf("player: name %q longer than %d characters", c.Name, menu.NameLength))
	}
	if c.StartLevel < 0 || c.StartLevel > tetris.MaxLevel {
		el.Add(fmt.Errorf("player: start_level %d outside 0..%d", c.StartLevel, tetris.MaxLevel))
	}
	return el.Err()
}

func (c *AudioConfig) Validate() error {
	el := errors.NewErrorList()
	if !c.Enabled {
		return nil
	}
	if c.SampleRate <= 0 {
		el.Add(fmt.Errorf("audio: sample_rate must be positive"))
	}
	for name, g := range map[string]float64{"music_gain": c.MusicGain, "sound_gain": c.SoundGain} {
		if g < menu.MinGain || g > menu.MaxGain {
			el.Add(fmt.Errorf("audio: %s %.1f outside %.0f..%.0f dB", name, g, menu.MinGain, menu.MaxGain))
		}
	}
	return el.Err()
}

func (c *GPIOConfig) Validate() error {
	el := errors.NewErrorList()
	if !c.Enabled {
		return nil
	}
	if len(c.Pins) != int(input.ButtonCount) {
		el.Add(fmt.Errorf("gpio: %d pins given, want one per button (%v)", len(c.Pins), input.Buttons))
	}
	for i, p := range c.Pins {
		if p == "" {
			el.Add(fmt.Errorf("gpio: pin %d is empty", i))
		}
	}
	return el.Err()
}

func (c *DebugConfig) Validate() error {
	if _, err := c.Level(); err != nil {
		return fmt.Errorf("debug: %w", err)
	}
	return nil
}

// Level parses LogLevel. An empty level is info.
func (c *DebugConfig) Level() (slog.Level, error) {
	var lvl slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level: %w", err)
	}
	return lvl, nil
}

// Tick converts a duration in milliseconds to ticks at the configured rate.
func (c *Config) Tick(ms int) int {
	return ms * c.TickRate / 1000
}
