package session

// Transition points of the game track in milliseconds: the end of the
// intro, the end of the intense section and the end of the classic section.
var musicPointsMs = [3]int{26975, 51000, 86959}

// MusicClock follows the music track position in ticks. Reaching the end of
// a section flips between classic and intense play; the intense section
// loops back to the first transition point.
type MusicClock struct {
	Points    [3]int
	Pos       int
	Section   int
	Countdown int
}

// NewMusicClock converts the transition points to ticks at tickRate.
func NewMusicClock(tickRate int) MusicClock {
	var m MusicClock
	for i, ms := range musicPointsMs {
		m.Points[i] = ms * tickRate / 1000
	}
	return m
}

// Start rewinds the track. fromLoop starts at the intense loop point.
func (m *MusicClock) Start(fromLoop bool) {
	if fromLoop {
		m.Pos = m.Points[0]
		m.Section = 1
	} else {
		m.Pos = 0
		m.Section = 0
	}
	m.Countdown = m.Points[m.Section] - m.Pos
}

// Step advances one playing tick. flip reports that intense mode toggles
// this tick; seek reports that Pos jumped and playback must follow.
func (m *MusicClock) Step(alwaysIntense, intense bool) (flip, seek bool) {
	if m.Countdown <= 0 {
		switch {
		case alwaysIntense:
			m.Pos = m.Points[0]
			m.Section = 1
			seek = true
		case !intense:
			flip = true
			if m.Section == 2 {
				m.Pos += m.Points[0] - m.Points[2]
				seek = true
			}
			m.Section = 1
		default:
			flip = true
			m.Section = 2
		}
	}
	m.Countdown = m.Points[m.Section] - m.Pos
	m.Pos++
	return flip, seek
}

// Seconds is the countdown shown on screen.
func (m *MusicClock) Seconds(tickRate int) int {
	if tickRate <= 0 {
		return 0
	}
	return max(0, m.Countdown) / tickRate
}
