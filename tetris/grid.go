package tetris

import (
	"math/rand/v2"
	"slices"
)

const (
	SpawnColumn   = 5
	LinesPerLevel = 5
	LevelFactor   = 0.8
	MaxLevel      = 16
	// SpawnDelay is the number of ticks between a lock and the next spawn.
	SpawnDelay = 10
)

var (
	SpawnAnchor   = Vec{X: SpawnColumn, Y: 0}
	PreviewAnchor = Vec{X: 12.5, Y: 4}
)

// Ticks between gravity steps, indexed by level.
var (
	normalSpeeds  = [MaxLevel + 1]int{45, 40, 35, 30, 26, 22, 18, 14, 11, 8, 6, 5, 4, 3, 2, 1, 0}
	intenseSpeeds = [MaxLevel + 1]int{35, 30, 25, 22, 18, 15, 13, 11, 8, 6, 5, 4, 3, 2, 1, 0, 0}
)

var lineScores = [4]int{100, 300, 600, 1000}

// FallRate returns the gravity interval for level in the normal or intense
// table. Levels past the table use its last entry.
func FallRate(level int, intense bool) int {
	level = max(0, min(level, MaxLevel))
	if intense {
		return intenseSpeeds[level]
	}
	return normalSpeeds[level]
}

// LinePoints is the score for clearing n rows at level.
func LinePoints(n, level int) int {
	if n <= 0 {
		return 0
	}
	n = min(n, len(lineScores))
	return roundHalfUp(float64(lineScores[n-1]) * (1 + LevelFactor*float64(level)))
}

// Target is a placement chosen by the autoplay search: the anchor column
// and orientation the current piece should reach.
type Target struct {
	X           float64
	Orientation int
	Valid       bool
}

// Grid is the board together with the falling and preview pieces and the
// timers that drive them.
type Grid struct {
	board   Board
	current Piece
	next    Piece
	rng     *rand.Rand
	queue   []Kind

	level int
	score int
	lines int

	intense    bool
	fallRate   int
	fallTimer  int
	spawnTimer int
	pending    []int

	drought     int
	lastDrought int

	target   Target
	events   []Event
	gameOver bool
}

type Option func(*Grid)

// WithLevel sets the starting level, clamped to 0..MaxLevel.
func WithLevel(level int) Option {
	return func(g *Grid) {
		g.level = max(0, min(level, MaxLevel))
	}
}

func WithIntense(intense bool) Option {
	return func(g *Grid) {
		g.intense = intense
	}
}

// WithRand sets the source used to pick piece kinds.
func WithRand(rng *rand.Rand) Option {
	return func(g *Grid) {
		g.rng = rng
	}
}

// WithSequence makes the grid deal kinds in the given order before falling
// back to the random source.
func WithSequence(kinds ...Kind) Option {
	return func(g *Grid) {
		for _, k := range kinds {
			Shape(k)
		}
		g.queue = append(g.queue, kinds...)
	}
}

// WithBoard seeds the grid with locked cells.
func WithBoard(b Board) Option {
	return func(g *Grid) {
		g.board = b
	}
}

// New creates a grid with a current piece at the spawn point and a next
// piece waiting in the preview slot.
func New(opts ...Option) *Grid {
	g := &Grid{}
	for _, opt := range opts {
		opt(g)
	}
	g.fallRate = FallRate(g.level, g.intense)
	g.fallTimer = g.fallRate
	g.current = g.randomPiece(SpawnAnchor)
	g.next = g.randomPiece(PreviewAnchor)
	return g
}

func (g *Grid) random() *rand.Rand {
	if g.rng == nil {
		g.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return g.rng
}

func (g *Grid) randomPiece(at Vec) Piece {
	var kind Kind
	if len(g.queue) > 0 {
		kind, g.queue = g.queue[0], g.queue[1:]
	} else {
		kind = Kind(g.random().IntN(KindCount))
	}
	return NewPiece(kind, at, PaletteFor(g.level).ColorOf(kind))
}

// Update advances the grid by one tick.
func (g *Grid) Update() {
	if g.gameOver {
		return
	}

	switch {
	case !g.current.Locked:
		if g.fallTimer > 0 {
			g.fallTimer--
			return
		}
		g.MoveCurrent(Down, true)
		g.fallTimer = g.fallRate
	case g.spawnTimer > 0:
		g.spawnTimer--
	default:
		if len(g.pending) > 0 {
			g.clearPending()
		}
		g.spawn()
	}
}

// MoveCurrent shifts the current piece one cell in dir and reports whether
// it collided instead. Only a downward collision with handleCollisions set
// locks the piece. A locked piece always reports a collision.
func (g *Grid) MoveCurrent(dir Direction, handleCollisions bool) bool {
	d := dir.Delta()
	if g.gameOver || g.current.Locked {
		return true
	}

	cells := g.current.Cells()
	for i := range cells {
		cells[i].X += d.X
		cells[i].Y += d.Y
	}

	if g.board.Collides(cells) {
		if dir == Down && handleCollisions {
			g.lock()
		}
		return true
	}

	g.current.Translate(float64(d.X), float64(d.Y))
	return false
}

// RotateCurrent turns the current piece a quarter turn and reports whether
// it moved. O never turns. S, Z and I flip between two states and ignore cw.
// The rotation is tested in place with no wall kicks unless skipCheck is set.
func (g *Grid) RotateCurrent(cw, skipCheck bool) bool {
	if g.gameOver || g.current.Locked {
		return false
	}

	switch g.current.Kind {
	case O:
		return false
	case S, Z, I:
		cw = g.current.Orientation != 1
	}

	probe := g.current.Clone()
	probe.Rotate(cw)
	if !skipCheck && g.board.Collides(probe.Cells()) {
		return false
	}
	g.current = probe
	return true
}

// Collides reports whether cells hit a wall, the floor or a locked cell.
func (g *Grid) Collides(cells [4]Point) bool {
	return g.board.Collides(cells)
}

func (g *Grid) lock() {
	g.current.Locked = true
	cell := Cell{Filled: true, Kind: g.current.Kind, Color: g.current.Color}
	if overflow := g.board.Stamp(g.current.Cells(), cell); overflow {
		g.endGame()
		return
	}

	g.pending = g.board.FullRows()
	g.spawnTimer = SpawnDelay
	g.emit(Event{
		Type:   EventLocked,
		Kind:   g.current.Kind,
		Anchor: g.current.Anchor,
		Rows:   slices.Clone(g.pending),
		Level:  g.level,
	})
}

func (g *Grid) clearPending() {
	n := len(g.pending)
	for _, row := range g.pending {
		g.board.ClearRow(row)
	}
	g.pending = g.pending[:0]

	points := LinePoints(n, g.level)
	g.lines += n
	g.score += points
	g.emit(Event{
		Type:   EventLinesCleared,
		Lines:  n,
		Points: points,
		Level:  g.level,
		Score:  g.score,
	})

	if g.lines >= LinesPerLevel*(g.level+1) && g.level != MaxLevel {
		g.levelUp()
	}
}

func (g *Grid) levelUp() {
	g.level++
	palette := PaletteFor(g.level)
	g.board.Recolor(palette)
	g.next.Color = palette.ColorOf(g.next.Kind)
	g.fallRate = FallRate(g.level, g.intense)
	g.emit(Event{Type: EventLevelUp, Level: g.level})
}

func (g *Grid) spawn() {
	g.current = g.next
	g.current.MoveTo(SpawnAnchor.X, SpawnAnchor.Y)
	g.next = g.randomPiece(PreviewAnchor)
	g.target = Target{}

	if g.board.Collides(g.current.Cells()) {
		g.endGame()
		return
	}

	if g.current.Kind == I {
		g.lastDrought = g.drought
		g.drought = 0
	} else {
		g.drought++
	}

	g.emit(Event{
		Type:        EventSpawned,
		Kind:        g.current.Kind,
		Drought:     g.drought,
		LastDrought: g.lastDrought,
	})
}

func (g *Grid) endGame() {
	g.gameOver = true
	g.emit(Event{
		Type:  EventGameOver,
		Level: g.level,
		Lines: g.lines,
		Score: g.score,
	})
}

func (g *Grid) emit(e Event) {
	g.events = append(g.events, e)
}

// Events drains the events recorded since the last call.
func (g *Grid) Events() []Event {
	events := g.events
	g.events = nil
	return events
}

// SetIntense switches between the normal and intense speed tables.
func (g *Grid) SetIntense(intense bool) {
	g.intense = intense
	g.fallRate = FallRate(g.level, intense)
}

func (g *Grid) SetTarget(t Target) {
	g.target = t
}

func (g *Grid) Target() Target {
	return g.target
}

// Clone returns a fully independent copy carrying the board, both pieces,
// level, score and mode. Timers, pending rows and events start fresh.
func (g *Grid) Clone() *Grid {
	return &Grid{
		board:       g.board,
		current:     g.current.Clone(),
		next:        g.next.Clone(),
		level:       g.level,
		score:       g.score,
		lines:       g.lines,
		intense:     g.intense,
		fallRate:    g.fallRate,
		drought:     g.drought,
		lastDrought: g.lastDrought,
		target:      g.target,
		gameOver:    g.gameOver,
	}
}

// Board returns a copy of the locked cells.
func (g *Grid) Board() Board { return g.board }

// BoardRef exposes the board for in-place edits of a scratch grid.
func (g *Grid) BoardRef() *Board { return &g.board }

func (g *Grid) Current() Piece     { return g.current }
func (g *Grid) Next() Piece        { return g.next }
func (g *Grid) Level() int         { return g.level }
func (g *Grid) Score() int         { return g.score }
func (g *Grid) Lines() int         { return g.lines }
func (g *Grid) Intense() bool      { return g.intense }
func (g *Grid) FallRate() int      { return g.fallRate }
func (g *Grid) Drought() int       { return g.drought }
func (g *Grid) LastDrought() int   { return g.lastDrought }
func (g *Grid) IsGameOver() bool   { return g.gameOver }
func (g *Grid) PendingRows() []int { return slices.Clone(g.pending) }

// Palette returns the colors of the current level.
func (g *Grid) Palette() Palette { return PaletteFor(g.level) }
