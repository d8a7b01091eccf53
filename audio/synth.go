package audio

import (
	"math"
	"strings"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveTriangle
)

type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     Wave
	rate     beep.SampleRate
}

// NewOscillator streams a single tone for duration, then ends.
func NewOscillator(freq float64, duration time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveTriangle:
			val = 4*math.Abs(o.phase-0.5) - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope fades a stream in over attack and out over release.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if left := e.total - e.position; left < e.release {
			vol = min(vol, float64(left)/float64(e.release))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

type note struct {
	freq float64
	dur  time.Duration
}

// Stand-in phrases, roughly matching the mood of each recording.
var phrases = map[Cue][]note{
	Drop:          {{220, 60 * time.Millisecond}},
	Clear:         {{523.25, 70 * time.Millisecond}, {659.25, 90 * time.Millisecond}},
	Tetris:        {{523.25, 80 * time.Millisecond}, {659.25, 80 * time.Millisecond}, {783.99, 80 * time.Millisecond}, {1046.5, 200 * time.Millisecond}},
	IntenseDrop:   {{110, 80 * time.Millisecond}},
	IntenseClear:  {{392, 60 * time.Millisecond}, {783.99, 120 * time.Millisecond}},
	IntenseTetris: {{261.63, 60 * time.Millisecond}, {392, 60 * time.Millisecond}, {523.25, 60 * time.Millisecond}, {1046.5, 300 * time.Millisecond}},
	Drought:       {{196, 250 * time.Millisecond}, {174.61, 350 * time.Millisecond}},
	LongBar:       {{440, 120 * time.Millisecond}, {880, 300 * time.Millisecond}},
	Lost:          {{329.63, 200 * time.Millisecond}, {261.63, 200 * time.Millisecond}, {196, 400 * time.Millisecond}},
	NeckAndNeck:   {{440, 100 * time.Millisecond}, {440, 100 * time.Millisecond}, {587.33, 200 * time.Millisecond}},
	Top2:          {{587.33, 100 * time.Millisecond}, {880, 250 * time.Millisecond}},
	IntenseBoom:   {{130.81, 150 * time.Millisecond}, {1046.5, 400 * time.Millisecond}},
}

// Synth builds a short tone sequence standing in for a missing recording.
func Synth(c Cue, rate beep.SampleRate) beep.Streamer {
	notes, ok := phrases[c]
	if !ok && strings.HasPrefix(string(c), "BoomTetrisForJeff") {
		notes = phrases[IntenseBoom]
	}
	if len(notes) == 0 {
		notes = phrases[Drop]
	}

	wave := WaveSquare
	if strings.HasPrefix(string(c), "Intense") {
		wave = WaveSaw
	}

	seq := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		osc := NewOscillator(n.freq, n.dur, wave, rate)
		seq = append(seq, NewEnvelope(osc, n.dur, 5*time.Millisecond, n.dur/3, rate))
	}
	return newVolume(beep.Seq(seq...), -12)
}

// newVolume applies a gain in decibels. Gains at or below MinGain are
// silent.
func newVolume(s beep.Streamer, gain float64) *effects.Volume {
	return &effects.Volume{
		Streamer: s,
		Base:     2,
		Volume:   gainToVolume(gain),
		Silent:   gain <= MinGain,
	}
}

// MinGain is the quietest gain in decibels; anything at or below it mutes.
const MinGain = -20.0

// gainToVolume converts decibels to a base-2 exponent for effects.Volume.
func gainToVolume(gain float64) float64 {
	return gain / (20 * math.Log10(2))
}
