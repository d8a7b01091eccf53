package ai

import (
	"fmt"

	"github.com/plus3/tetrispi/tetris"
)

// Evaluator scores a board after a simulated placement.
type Evaluator interface {
	Evaluate(b *tetris.Board) float64
}

// WeightedEvaluator sums its evaluators scaled by signed weights.
type WeightedEvaluator struct {
	evaluators []Evaluator
	weights    []float64
}

// NewWeightedEvaluator pairs evaluators with weights by index.
func NewWeightedEvaluator(evaluators []Evaluator, weights []float64) *WeightedEvaluator {
	if len(evaluators) != len(weights) {
		panic(fmt.Sprintf("ai: %d evaluators but %d weights", len(evaluators), len(weights)))
	}
	return &WeightedEvaluator{
		evaluators: evaluators,
		weights:    weights,
	}
}

func (w *WeightedEvaluator) Evaluate(b *tetris.Board) float64 {
	score := 0.0
	for i, ev := range w.evaluators {
		score += w.weights[i] * ev.Evaluate(b)
	}
	return score
}

// Weights are the magnitudes of the four placement heuristics. Height, holes
// and roughness count against a placement; completed lines count for it.
type Weights struct {
	Height    float64
	Lines     float64
	Holes     float64
	Roughness float64
}

// DefaultWeights are the tuned values the autoplayer ships with.
var DefaultWeights = Weights{
	Height:    0.510066,
	Lines:     0.760666,
	Holes:     0.35663,
	Roughness: 0.184483,
}

// NewHeuristic builds -h*height + l*lines - o*holes - r*roughness.
func NewHeuristic(w Weights) *WeightedEvaluator {
	return NewWeightedEvaluator(
		[]Evaluator{
			&HeightEvaluator{},
			&LinesEvaluator{},
			&HolesEvaluator{},
			&RoughnessEvaluator{},
		},
		[]float64{-w.Height, w.Lines, -w.Holes, -w.Roughness},
	)
}

// HeightEvaluator is the summed stack height of every column.
type HeightEvaluator struct{}

func (e *HeightEvaluator) Evaluate(b *tetris.Board) float64 {
	return float64(AggregateHeight(b))
}

// LinesEvaluator counts full rows.
type LinesEvaluator struct{}

func (e *LinesEvaluator) Evaluate(b *tetris.Board) float64 {
	return float64(CompleteLines(b))
}

// HolesEvaluator counts empty cells covered by a filled cell in the same column.
type HolesEvaluator struct{}

func (e *HolesEvaluator) Evaluate(b *tetris.Board) float64 {
	return float64(Holes(b))
}

// RoughnessEvaluator sums height differences of neighbouring columns.
type RoughnessEvaluator struct{}

func (e *RoughnessEvaluator) Evaluate(b *tetris.Board) float64 {
	return float64(Roughness(b))
}

func AggregateHeight(b *tetris.Board) int {
	total := 0
	for x := 0; x < tetris.Width; x++ {
		total += b.ColumnHeight(x)
	}
	return total
}

func CompleteLines(b *tetris.Board) int {
	n := 0
	for y := 0; y < tetris.Height; y++ {
		if b.RowFull(y) {
			n++
		}
	}
	return n
}

func Holes(b *tetris.Board) int {
	holes := 0
	for x := 0; x < tetris.Width; x++ {
		covered := false
		for y := 0; y < tetris.Height; y++ {
			switch {
			case b.Occupied(x, y):
				covered = true
			case covered:
				holes++
			}
		}
	}
	return holes
}

func Roughness(b *tetris.Board) int {
	total := 0
	prev := b.ColumnHeight(0)
	for x := 1; x < tetris.Width; x++ {
		h := b.ColumnHeight(x)
		total += abs(h - prev)
		prev = h
	}
	return total
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
