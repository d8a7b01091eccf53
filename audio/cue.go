// Package audio plays the game's sound effects and music through beep.
package audio

import "fmt"

// Cue names a sound effect. The Player looks for <EffectsDir>/<Cue>.wav and
// synthesizes a stand-in when the file is missing.
type Cue string

const (
	Drop   Cue = "Drop"
	Clear  Cue = "Clear"
	Tetris Cue = "Tetris"

	IntenseDrop   Cue = "IntenseDrop"
	IntenseClear  Cue = "IntenseClear"
	IntenseTetris Cue = "IntenseTetris"

	// Commentary for the JEFF profile.
	Drought     Cue = "Drought"
	LongBar     Cue = "LongBar"
	Lost        Cue = "Lost"
	NeckAndNeck Cue = "NeckandNeck"
	Top2        Cue = "Top2"
	IntenseBoom Cue = "IntenseBoom"
)

// BoomVariants is the number of BoomTetrisForJeff recordings.
const BoomVariants = 5

// Boom returns the i-th tetris commentary cue.
func Boom(i int) Cue {
	return Cue(fmt.Sprintf("BoomTetrisForJeff%d", i))
}

// Variant returns the intense-mode counterpart of a gameplay cue. Cues
// without one are returned unchanged.
func Variant(c Cue, intense bool) Cue {
	if !intense {
		return c
	}
	switch c {
	case Drop, Clear, Tetris:
		return "Intense" + c
	}
	return c
}

// Cues lists every cue the game can play.
func Cues() []Cue {
	cues := []Cue{
		Drop, Clear, Tetris,
		IntenseDrop, IntenseClear, IntenseTetris,
		Drought, LongBar, Lost, NeckAndNeck, Top2, IntenseBoom,
	}
	for i := range BoomVariants {
		cues = append(cues, Boom(i))
	}
	return cues
}
