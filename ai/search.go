// Package ai picks placements for the autoplayer by simulating every
// rotation and column on throwaway copies of the grid.
package ai

import (
	"fmt"
	"math"

	"github.com/plus3/tetrispi/tetris"
)

// Candidate is one simulated placement.
type Candidate struct {
	Rotations int
	Shift     int
	Target    tetris.Target
	Score     float64
}

// Searcher enumerates placements of the current piece.
type Searcher struct {
	evaluator Evaluator
}

// NewSearcher returns a searcher scoring boards with ev. A nil ev uses the
// default heuristic.
func NewSearcher(ev Evaluator) *Searcher {
	if ev == nil {
		ev = NewHeuristic(DefaultWeights)
	}
	return &Searcher{evaluator: ev}
}

var defaultSearcher = NewSearcher(nil)

// Candidates scores every rotation and shift in search order: rotations
// 0..3 in the outer loop, shifts 0..9 in the inner one.
func (s *Searcher) Candidates(g *tetris.Grid) []Candidate {
	candidates := make([]Candidate, 0, 4*tetris.Width)
	for r := range 4 {
		for shift := range tetris.Width {
			candidates = append(candidates, s.simulate(g, r, shift))
		}
	}
	return candidates
}

// Best returns the highest scoring placement. The first of equal scores
// wins. The live grid is never modified.
func (s *Searcher) Best(g *tetris.Grid) tetris.Target {
	best := Candidate{Score: math.Inf(-1)}
	for r := range 4 {
		for shift := range tetris.Width {
			c := s.simulate(g, r, shift)
			if c.Score > best.Score {
				best = c
			}
		}
	}
	if !best.Target.Valid {
		panic(fmt.Sprintf("ai: no placement scored for %v", g.Current().Kind))
	}
	return best.Target
}

func (s *Searcher) simulate(g *tetris.Grid, rotations, shift int) Candidate {
	scratch := g.Clone()
	for range rotations {
		scratch.RotateCurrent(true, false)
	}
	for range tetris.Width {
		if scratch.MoveCurrent(tetris.Left, false) {
			break
		}
	}
	for range shift {
		scratch.MoveCurrent(tetris.Right, false)
	}
	for !scratch.MoveCurrent(tetris.Down, false) {
	}

	piece := scratch.Current()
	board := scratch.BoardRef()
	board.Stamp(piece.Cells(), tetris.Cell{Filled: true, Kind: piece.Kind, Color: piece.Color})

	return Candidate{
		Rotations: rotations,
		Shift:     shift,
		Target: tetris.Target{
			X:           piece.Anchor.X,
			Orientation: piece.Orientation,
			Valid:       true,
		},
		Score: s.evaluator.Evaluate(board),
	}
}

// Plan stores the best placement for the current piece on g.
func (s *Searcher) Plan(g *tetris.Grid) tetris.Target {
	t := s.Best(g)
	g.SetTarget(t)
	return t
}

// Plan runs the default searcher against g.
func Plan(g *tetris.Grid) tetris.Target {
	return defaultSearcher.Plan(g)
}

// Step nudges the current piece one move toward its target: rotate first,
// then slide, then drop. Without a target it does nothing.
func Step(g *tetris.Grid) {
	t := g.Target()
	if !t.Valid {
		return
	}

	p := g.Current()
	switch {
	case p.Orientation != t.Orientation:
		g.RotateCurrent(true, false)
	case p.Anchor.X < t.X:
		g.MoveCurrent(tetris.Right, true)
	case p.Anchor.X > t.X:
		g.MoveCurrent(tetris.Left, true)
	default:
		g.MoveCurrent(tetris.Down, true)
	}
}
