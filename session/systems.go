package session

import (
	"log/slog"
	"math/rand/v2"

	"github.com/plus3/tetrispi/ai"
	"github.com/plus3/tetrispi/audio"
	"github.com/plus3/tetrispi/ecs"
	"github.com/plus3/tetrispi/effects"
	"github.com/plus3/tetrispi/input"
	"github.com/plus3/tetrispi/menu"
	"github.com/plus3/tetrispi/tetris"
)

// env carries the collaborators and the helpers shared by the systems.
type env struct {
	input    input.Source
	renderer Renderer
	audio    AudioPlayer
	scores   ScoreStore
	searcher *ai.Searcher
	logger   *slog.Logger
	rng      *rand.Rand
	repeater *input.Repeater
	menu     *menu.Menu

	inactivity int
	tickRate   int
}

// startGame deals a fresh grid for the active name and restarts the music.
func (e *env) startGame(st *State) {
	if st.Demo() {
		st.ActiveName = AIName
	} else {
		st.ActiveName = st.Settings.Name
	}

	p := ProfileFor(st.ActiveName)
	if p.StartLevel >= 0 {
		st.Settings.StartLevel = p.StartLevel
	}
	if p.DeleteRank >= 0 {
		e.deleteRank(st, p.DeleteRank)
	}
	if p.Special() {
		e.logger.Info("profile active", "name", p.Name)
	}
	st.Profile = p
	st.MadeTop10 = false
	st.MadeTop2 = false

	st.Intense = p.AlwaysIntense
	st.Grid = tetris.New(
		tetris.WithLevel(st.Settings.StartLevel),
		tetris.WithIntense(st.Intense),
		tetris.WithRand(rand.New(rand.NewPCG(e.rng.Uint64(), e.rng.Uint64()))),
	)
	st.StartDelay = StartDelay
	st.Shake = 0
	st.Games++

	st.Music.Start(p.AlwaysIntense)
	e.audio.PlayMusic(st.Music.Pos)

	e.logger.Info("game started",
		"game", st.Games,
		"name", st.ActiveName,
		"level", st.Settings.StartLevel,
		"intense", st.Intense)
}

func (e *env) deleteRank(st *State, rank int) {
	if rank >= len(st.Scores) {
		return
	}
	name := st.Scores[rank].Name
	if err := e.scores.Delete(name); err != nil {
		e.logger.Error("deleting score", "name", name, "error", err)
		return
	}
	e.logger.Info("score deleted", "rank", rank, "name", name)
	st.Scores = e.scores.Top(ShownScores)
}

// reset records the running game and starts another.
func (e *env) reset(st *State) {
	if st.Inactivity > 0 {
		st.Inactivity = e.inactivity
	}
	e.audio.PauseMusic()
	if score := st.Grid.Score(); score > 0 {
		if err := e.scores.Append(st.ActiveName, score); err != nil {
			e.logger.Error("saving score", "name", st.ActiveName, "score", score, "error", err)
		}
		st.Scores = e.scores.Top(ShownScores)
	}
	e.startGame(st)
}

func (e *env) openMenu(st *State) {
	e.audio.PauseMusic()
	e.repeater.SetMenu(true)
	e.menu.Open(st.Settings)
	st.Mode = ModeMenu
}

func (e *env) closeMenu(st *State, r menu.Result) {
	e.repeater.SetMenu(false)
	st.Settings = e.menu.Settings()
	st.Mode = ModePlaying
	if r == menu.Restart {
		e.reset(st)
		return
	}
	e.audio.ResumeMusic()
}

func (e *env) play(c audio.Cue, intense bool) {
	e.audio.PlayEffect(audio.Variant(c, intense))
}

// InputSystem polls the input source and derives this tick's triggers.
type InputSystem struct {
	env   *env
	State ecs.Singleton[State]
}

func (s *InputSystem) Execute(frame *ecs.UpdateFrame) {
	st := s.State.Get()
	st.Held = s.env.input.Poll()
	st.Triggers = s.env.repeater.Update(st.Held)
}

// ControlSystem applies triggers to the menu or the falling piece.
type ControlSystem struct {
	env   *env
	State ecs.Singleton[State]
}

func (s *ControlSystem) Execute(frame *ecs.UpdateFrame) {
	st := s.State.Get()
	for _, b := range input.Buttons {
		if !st.Triggers[b] {
			continue
		}

		if st.Inactivity == 0 {
			s.env.logger.Info("demo interrupted", "score", st.Grid.Score())
			st.Inactivity = s.env.inactivity
			s.env.reset(st)
			s.env.openMenu(st)
			return
		}
		st.Inactivity = s.env.inactivity

		if st.Mode == ModeMenu {
			s.handleMenu(st, b)
		} else {
			s.handleGame(st, b)
		}
	}
}

func (s *ControlSystem) handleMenu(st *State, b input.Button) {
	r := s.env.menu.Handle(b)
	settings := s.env.menu.Settings()
	s.env.audio.SetGains(settings.MusicGain, settings.SoundGain)
	if r != menu.Stay {
		s.env.closeMenu(st, r)
	}
}

func (s *ControlSystem) handleGame(st *State, b input.Button) {
	g := st.Grid
	switch b {
	case input.Left:
		if g.MoveCurrent(tetris.Left, true) {
			s.env.repeater.Charge(input.Left)
		}
		s.env.repeater.Release(input.Right)
	case input.Right:
		if g.MoveCurrent(tetris.Right, true) {
			s.env.repeater.Charge(input.Right)
		}
		s.env.repeater.Release(input.Left)
	case input.Down:
		g.MoveCurrent(tetris.Down, true)
	case input.A:
		g.RotateCurrent(false, false)
	case input.B:
		g.RotateCurrent(true, false)
	case input.Pause:
		s.env.openMenu(st)
	}
}

// PlaySystem advances the music clock, the grid and, during the demo, the
// agent.
type PlaySystem struct {
	env   *env
	State ecs.Singleton[State]
}

func (s *PlaySystem) Execute(frame *ecs.UpdateFrame) {
	st := s.State.Get()
	if st.Mode != ModePlaying {
		return
	}

	flip, seek := st.Music.Step(st.Profile.AlwaysIntense, st.Intense)
	if flip {
		st.Intense = !st.Intense
		st.Grid.SetIntense(st.Intense)
		s.env.logger.Debug("mode changed", "intense", st.Intense, "music", st.Music.Pos)
	}
	if seek {
		s.env.audio.SeekMusic(st.Music.Pos)
	}

	if st.StartDelay > 0 {
		st.StartDelay--
	} else {
		st.Grid.Update()
	}

	if st.Demo() {
		st.ActiveName = AIName
		s.env.plan(st.Grid)
		ai.Step(st.Grid)
	}
}

// plan searches a placement for the current piece unless it already has one.
func (e *env) plan(g *tetris.Grid) {
	if g.Target().Valid || g.IsGameOver() || g.Current().Locked {
		return
	}
	e.searcher.Plan(g)
}

// FeedbackSystem turns grid events into sounds, effects, commentary and
// game restarts.
type FeedbackSystem struct {
	env   *env
	State ecs.Singleton[State]
}

func (s *FeedbackSystem) Execute(frame *ecs.UpdateFrame) {
	st := s.State.Get()
	for _, ev := range st.Grid.Events() {
		switch ev.Type {
		case tetris.EventLocked:
			s.locked(st, ev, frame.Commands)
		case tetris.EventLinesCleared:
			s.cleared(st, ev)
		case tetris.EventLevelUp:
			s.env.logger.Debug("level up", "level", ev.Level)
		case tetris.EventSpawned:
			s.spawned(st, ev)
		case tetris.EventGameOver:
			s.gameOver(st, ev)
			return
		}
	}
}

func (s *FeedbackSystem) locked(st *State, ev tetris.Event, cmds *ecs.Commands) {
	cmds.Spawn(effects.NewExplode(ev.Anchor))
	st.Shake = LockShake

	for _, row := range ev.Rows {
		cmds.Spawn(effects.NewLineClear(row))
	}
	switch len(ev.Rows) {
	case 0:
		s.env.play(audio.Drop, st.Intense)
	case 4:
		cmds.Spawn(effects.NewLineExplode(ev.Rows))
		s.env.play(audio.Tetris, st.Intense)
	default:
		s.env.play(audio.Clear, st.Intense)
	}
}

func (s *FeedbackSystem) cleared(st *State, ev tetris.Event) {
	if !st.Profile.Commentary {
		return
	}
	if ev.Tetris() {
		if st.Grid.LastDrought() >= DroughtCue {
			s.env.play(audio.IntenseBoom, false)
		} else {
			s.env.play(audio.Boom(s.env.rng.IntN(audio.BoomVariants)), false)
		}
	}

	var top10, top2 int
	if n := len(st.Scores); n > 0 {
		top10 = st.Scores[n-1].Score
	}
	if len(st.Scores) >= 2 {
		top2 = st.Scores[1].Score
	}
	if !st.MadeTop10 && ev.Score > top10 {
		s.env.play(audio.NeckAndNeck, false)
		st.MadeTop10 = true
	}
	if !st.MadeTop2 && ev.Score > top2 {
		s.env.play(audio.Top2, false)
		st.MadeTop2 = true
	}
}

func (s *FeedbackSystem) spawned(st *State, ev tetris.Event) {
	if !st.Profile.Commentary {
		return
	}
	if ev.Drought == DroughtCue && ev.Kind != tetris.I {
		s.env.play(audio.Drought, false)
	}
	if ev.LastDrought >= DroughtCue && ev.Kind == tetris.I {
		s.env.play(audio.LongBar, false)
	}
}

func (s *FeedbackSystem) gameOver(st *State, ev tetris.Event) {
	if st.Profile.Commentary {
		s.env.play(audio.Lost, false)
	}
	st.Last = Result{Name: st.ActiveName, Score: ev.Score, Lines: ev.Lines, Level: ev.Level}
	s.env.logger.Info("game over",
		"name", st.ActiveName,
		"score", ev.Score,
		"lines", ev.Lines,
		"level", ev.Level)
	s.env.reset(st)
}

// EffectSystem ages effect entities and spawns intense-mode streaks.
type EffectSystem struct {
	env     *env
	State   ecs.Singleton[State]
	Effects ecs.Query[effects.Effect]

	streaks effects.Spawner
	game    int
}

func (s *EffectSystem) Execute(frame *ecs.UpdateFrame) {
	st := s.State.Get()

	// A new game starts with a clean slate.
	if s.game != st.Games {
		s.game = st.Games
		for id := range s.Effects.Iter() {
			frame.Commands.Delete(id)
		}
		return
	}
	if st.Mode != ModePlaying {
		return
	}

	if s.streaks.Tick(st.Intense) {
		frame.Commands.Spawn(effects.NewStreak(s.env.rng.Float64() * tetris.Width))
	}

	for id, fx := range s.Effects.Iter() {
		if fx.Expired() || !fx.Visible(st.Intense) {
			frame.Commands.Delete(id)
			continue
		}
		fx.Step()
	}
}

// RenderSystem hands the renderer a snapshot of the tick.
type RenderSystem struct {
	env     *env
	State   ecs.Singleton[State]
	Effects ecs.Query[effects.Effect]

	fx []effects.Effect
}

func (s *RenderSystem) Execute(frame *ecs.UpdateFrame) {
	st := s.State.Get()
	g := st.Grid

	s.fx = s.fx[:0]
	for fx := range s.Effects.Values() {
		if fx.Visible(st.Intense) {
			s.fx = append(s.fx, *fx)
		}
	}

	f := Frame{
		Tick:      frame.Tick,
		Mode:      st.Mode,
		Demo:      st.Demo(),
		Intense:   st.Intense,
		Board:     g.Board(),
		Current:   g.Current(),
		Next:      g.Next(),
		Palette:   g.Palette(),
		Score:     g.Score(),
		Level:     g.Level(),
		Lines:     g.Lines(),
		Countdown: st.Music.Seconds(s.env.tickRate),
		Shake:     st.Shake,
		Name:      st.ActiveName,
		Scores:    st.Scores,
		Effects:   s.fx,
	}
	if st.Mode == ModeMenu {
		f.Menu = MenuView{
			Option:    s.env.menu.Option(),
			Cursor:    s.env.menu.Cursor(),
			NameChars: s.env.menu.NameChars(),
			Settings:  s.env.menu.Settings(),
		}
	}
	s.env.renderer.Render(f)

	if st.Shake > 0 {
		st.Shake--
	}
}

// InactivitySystem counts down to the demo and starts it.
type InactivitySystem struct {
	env   *env
	State ecs.Singleton[State]
}

func (s *InactivitySystem) Execute(frame *ecs.UpdateFrame) {
	st := s.State.Get()
	if st.Inactivity == 0 {
		return
	}
	st.Inactivity--
	if st.Inactivity > 0 || st.Mode != ModePlaying {
		return
	}

	st.ActiveName = AIName
	s.env.logger.Info("demo started", "score", st.Grid.Score())
	s.env.plan(st.Grid)
}
