package session

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/plus3/tetrispi/ai"
	"github.com/plus3/tetrispi/audio"
	"github.com/plus3/tetrispi/ecs"
	"github.com/plus3/tetrispi/effects"
	"github.com/plus3/tetrispi/input"
	"github.com/plus3/tetrispi/menu"
	"github.com/plus3/tetrispi/scores"
)

type Options struct {
	Settings menu.Settings
	// Inactivity defaults to DefaultInactivity.
	Inactivity int
	// TickRate defaults to 60.
	TickRate int
	// Seed makes piece order reproducible; 0 picks a random seed.
	Seed uint64

	Input    input.Source
	Renderer Renderer
	Audio    AudioPlayer
	Scores   ScoreStore
	Searcher *ai.Searcher
	Logger   *slog.Logger
}

// Session owns the ECS storage and the scheduler running the game systems.
type Session struct {
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	state     *State
	env       *env
}

// New builds a session and starts the first game.
func New(opts Options) *Session {
	if opts.Inactivity <= 0 {
		opts.Inactivity = DefaultInactivity
	}
	if opts.TickRate <= 0 {
		opts.TickRate = 60
	}
	if opts.Input == nil {
		opts.Input = input.SourceFunc(func() input.State { return input.State{} })
	}
	if opts.Renderer == nil {
		opts.Renderer = RendererFunc(func(Frame) {})
	}
	if opts.Audio == nil {
		opts.Audio = audio.Nop{}
	}
	if opts.Scores == nil {
		opts.Scores = scores.NewMemory()
	}
	if opts.Searcher == nil {
		opts.Searcher = ai.NewSearcher(nil)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[effects.Effect](registry)
	storage := ecs.NewStorage(registry)

	runID := uuid.New()
	settings := opts.Settings
	settings.Name = menu.NormalizeName(settings.Name)
	state := ecs.AddSingleton(storage, State{
		RunID:      runID,
		Settings:   settings,
		Inactivity: opts.Inactivity,
		Music:      NewMusicClock(opts.TickRate),
	})

	e := &env{
		input:      opts.Input,
		renderer:   opts.Renderer,
		audio:      opts.Audio,
		scores:     opts.Scores,
		searcher:   opts.Searcher,
		logger:     opts.Logger.With("run", runID.String()),
		rng:        rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		repeater:   input.NewRepeater(),
		menu:       menu.New(settings),
		inactivity: opts.Inactivity,
		tickRate:   opts.TickRate,
	}

	s := &Session{
		storage:   storage,
		scheduler: ecs.NewScheduler(storage),
		state:     state,
		env:       e,
	}
	s.scheduler.Register(&InputSystem{env: e})
	s.scheduler.Register(&ControlSystem{env: e})
	s.scheduler.Register(&PlaySystem{env: e})
	s.scheduler.Register(&FeedbackSystem{env: e})
	s.scheduler.Register(&EffectSystem{env: e})
	s.scheduler.Register(&RenderSystem{env: e})
	s.scheduler.Register(&InactivitySystem{env: e})

	e.audio.SetGains(settings.MusicGain, settings.SoundGain)
	state.Scores = e.scores.Top(ShownScores)
	e.startGame(state)
	return s
}

// Tick runs every system once.
func (s *Session) Tick() {
	s.scheduler.Once()
}

// Run ticks at the session's tick rate until ctx is done.
func (s *Session) Run(ctx context.Context) {
	s.scheduler.Run(ctx, time.Second/time.Duration(s.env.tickRate))
}

func (s *Session) State() *State             { return s.state }
func (s *Session) Scheduler() *ecs.Scheduler { return s.scheduler }
func (s *Session) Storage() *ecs.Storage     { return s.storage }
func (s *Session) Searcher() *ai.Searcher    { return s.env.searcher }
func (s *Session) TickRate() int             { return s.env.tickRate }

var (
	_ ScoreStore  = (*scores.Store)(nil)
	_ AudioPlayer = (*audio.Player)(nil)
)
