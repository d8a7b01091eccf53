package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMusicClockPoints(t *testing.T) {
	m := NewMusicClock(60)
	assert.Equal(t, [3]int{1618, 3060, 5217}, m.Points)

	m.Start(false)
	assert.Equal(t, 0, m.Pos)
	assert.Equal(t, 1618, m.Countdown)
	assert.Equal(t, 26, m.Seconds(60))

	m.Start(true)
	assert.Equal(t, 1618, m.Pos)
	assert.Equal(t, 1, m.Section)
	assert.Equal(t, 3060-1618, m.Countdown)
}

func TestMusicClockCycle(t *testing.T) {
	m := MusicClock{Points: [3]int{3, 6, 9}}
	m.Start(false)

	intense := false
	var flips []int
	var seeks []int
	for tick := 1; tick < 30; tick++ {
		flip, seek := m.Step(false, intense)
		if flip {
			intense = !intense
			flips = append(flips, tick)
		}
		if seek {
			seeks = append(seeks, tick)
			assert.Equal(t, 5, m.Pos, "classic end loops back to the intense section")
		}
	}

	assert.Equal(t, []int{5, 8, 11, 14, 17, 20, 23, 26, 29}, flips)
	assert.Equal(t, []int{11, 17, 23, 29}, seeks)
}

func TestMusicClockAlwaysIntense(t *testing.T) {
	m := MusicClock{Points: [3]int{3, 6, 9}}
	m.Start(true)

	var seeks []int
	for tick := 1; tick < 15; tick++ {
		flip, seek := m.Step(true, true)
		assert.False(t, flip)
		if seek {
			seeks = append(seeks, tick)
		}
	}
	assert.Equal(t, []int{5, 9, 13}, seeks)
}
