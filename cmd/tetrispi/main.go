package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/plus3/tetrispi/audio"
	"github.com/plus3/tetrispi/config"
	"github.com/plus3/tetrispi/frontend/ebitenui"
	"github.com/plus3/tetrispi/frontend/term"
	"github.com/plus3/tetrispi/input"
	"github.com/plus3/tetrispi/input/gpio"
	"github.com/plus3/tetrispi/menu"
	"github.com/plus3/tetrispi/scores"
	"github.com/plus3/tetrispi/session"
)

// keyHoldMillis is how long a terminal key press counts as held.
const keyHoldMillis = 100

func main() {
	configPath := flag.String("config", "", "Path to a JSON config file.")
	frontend := flag.String("frontend", "", "Override the frontend (ebiten or terminal).")
	name := flag.String("name", "", "Override the player name.")
	level := flag.Int("level", -1, "Override the starting level.")
	useGPIO := flag.Bool("gpio", false, "Read buttons from the GPIO pins in the config.")
	debug := flag.Bool("debug", false, "Draw the debug overlay (ebiten only).")
	scoresPath := flag.String("scores", "", "Override the high score file.")
	mute := flag.Bool("mute", false, "Disable audio.")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *frontend != "" {
		cfg.Frontend = *frontend
	}
	if *name != "" {
		cfg.Player.Name = *name
	}
	if *level >= 0 {
		cfg.Player.StartLevel = *level
	}
	if *useGPIO {
		cfg.GPIO.Enabled = true
	}
	if *debug {
		cfg.Debug.Overlay = true
	}
	if *scoresPath != "" {
		cfg.ScoresPath = *scoresPath
	}
	if *mute {
		cfg.Audio.Enabled = false
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closeLog()

	if err := run(cfg, logger); err != nil {
		logger.Error("exiting", "err", err)
		closeLog()
		os.Exit(1)
	}
	logger.Info("exiting")
}

func newLogger(cfg config.DebugConfig) (*slog.Logger, func(), error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, nil, err
	}

	var w io.Writer = os.Stderr
	closeLog := func() {}
	if cfg.LogPath != "" {
		f, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log: %w", err)
		}
		w = f
		closeLog = func() { f.Close() }
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), closeLog, nil
}

func run(cfg config.Config, logger *slog.Logger) error {
	store, err := scores.Open(cfg.ScoresPath)
	if err != nil {
		return err
	}

	player := openAudio(cfg, logger)
	defer player.Close()

	opts := session.Options{
		Settings: menu.Settings{
			Name:       cfg.Player.Name,
			StartLevel: cfg.Player.StartLevel,
			MusicGain:  cfg.Audio.MusicGain,
			SoundGain:  cfg.Audio.SoundGain,
		},
		Inactivity: cfg.Inactivity,
		TickRate:   cfg.TickRate,
		Seed:       cfg.Seed,
		Audio:      player,
		Scores:     store,
		Logger:     logger,
	}

	var pins input.Source
	if cfg.GPIO.Enabled {
		var names [input.ButtonCount]string
		copy(names[:], cfg.GPIO.Pins)
		src, err := gpio.Open(names)
		if err != nil {
			return fmt.Errorf("opening buttons: %w", err)
		}
		pins = src
	}

	logger.Info("starting", "frontend", cfg.Frontend, "player", cfg.Player.Name, "level", cfg.Player.StartLevel)

	switch cfg.Frontend {
	case config.FrontendTerminal:
		return runTerminal(cfg, opts, pins)
	default:
		return runEbiten(cfg, opts, pins)
	}
}

type audioPlayer interface {
	session.AudioPlayer
	Close() error
}

func openAudio(cfg config.Config, logger *slog.Logger) audioPlayer {
	if !cfg.Audio.Enabled {
		return audio.Nop{}
	}
	p, err := audio.Open(audio.Options{
		SampleRate: cfg.Audio.SampleRate,
		TickRate:   cfg.TickRate,
		MusicPath:  cfg.Audio.MusicPath,
		EffectsDir: cfg.Audio.EffectsDir,
		MusicGain:  cfg.Audio.MusicGain,
		SoundGain:  cfg.Audio.SoundGain,
	}, logger)
	if err != nil {
		logger.Warn("audio disabled", "err", err)
		return audio.Nop{}
	}
	return p
}

func withPins(src, pins input.Source) input.Source {
	if pins == nil {
		return src
	}
	return input.Merge(src, pins)
}

func runEbiten(cfg config.Config, opts session.Options, pins input.Source) error {
	renderer := ebitenui.NewRenderer(cfg.Window.Width, cfg.Window.Height)
	kb := ebitenui.NewKeyboard(ebitenui.DefaultKeys)
	opts.Input = withPins(kb, pins)
	opts.Renderer = renderer

	s := session.New(opts)
	uiOpts := ebitenui.Options{
		Title:  cfg.Window.Title,
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		Debug:  cfg.Debug.Overlay,
	}
	return ebitenui.Run(ebitenui.NewGame(s, renderer, kb, uiOpts), uiOpts)
}

func runTerminal(cfg config.Config, opts session.Options, pins input.Source) error {
	screen, err := term.NewScreen()
	if err != nil {
		return err
	}
	keys := term.NewKeys(max(cfg.Tick(keyHoldMillis), 1))
	opts.Input = withPins(keys, pins)
	opts.Renderer = term.NewRenderer(screen)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return term.Run(ctx, session.New(opts), screen, keys)
}
