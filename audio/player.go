package audio

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
)

type Options struct {
	SampleRate int
	// TickRate converts music positions given in ticks to samples.
	TickRate   int
	MusicPath  string
	EffectsDir string
	MusicGain  float64
	SoundGain  float64
}

// Player mixes sound effects over a single seekable music track. All
// positions are in game ticks.
type Player struct {
	rate     beep.SampleRate
	tickRate int
	logger   *slog.Logger

	mixer   *beep.Mixer
	effects map[Cue]*beep.Buffer

	music       beep.StreamSeekCloser
	musicRate   beep.SampleRate
	musicCtrl   *beep.Ctrl
	musicVolume *effects.Volume

	mu        sync.Mutex
	soundGain float64
	closed    bool
}

// Open initializes the speaker and loads every cue. Cues without a WAV
// file get a synthesized stand-in; a missing music file leaves the game
// without music.
func Open(opts Options, logger *slog.Logger) (*Player, error) {
	if opts.TickRate <= 0 {
		return nil, fmt.Errorf("tick rate must be positive")
	}
	p := &Player{
		rate:      beep.SampleRate(opts.SampleRate),
		tickRate:  opts.TickRate,
		logger:    logger,
		mixer:     &beep.Mixer{},
		effects:   make(map[Cue]*beep.Buffer),
		soundGain: opts.SoundGain,
	}

	for _, c := range Cues() {
		buf, err := p.loadEffect(filepath.Join(opts.EffectsDir, string(c)+".wav"))
		if errors.Is(err, os.ErrNotExist) {
			buf = p.render(Synth(c, p.rate))
		} else if err != nil {
			return nil, fmt.Errorf("loading %s: %w", c, err)
		}
		p.effects[c] = buf
	}

	if err := p.loadMusic(opts.MusicPath, opts.MusicGain); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("loading music: %w", err)
		}
		logger.Warn("music not found, playing without it", "path", opts.MusicPath)
	}

	if err := speaker.Init(p.rate, p.rate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("initializing speaker: %w", err)
	}
	speaker.Play(p.mixer)
	return p, nil
}

func (p *Player) loadEffect(path string) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	s, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	defer s.Close()

	var src beep.Streamer = s
	if format.SampleRate != p.rate {
		src = beep.Resample(4, format.SampleRate, p.rate, s)
	}
	buf := beep.NewBuffer(beep.Format{SampleRate: p.rate, NumChannels: 2, Precision: 2})
	buf.Append(src)
	return buf, nil
}

func (p *Player) render(s beep.Streamer) *beep.Buffer {
	buf := beep.NewBuffer(beep.Format{SampleRate: p.rate, NumChannels: 2, Precision: 2})
	buf.Append(s)
	return buf
}

func (p *Player) loadMusic(path string, gain float64) error {
	if path == "" {
		return os.ErrNotExist
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	s, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return err
	}

	p.music = s
	p.musicRate = format.SampleRate
	var src beep.Streamer = s
	if format.SampleRate != p.rate {
		src = beep.Resample(4, format.SampleRate, p.rate, s)
	}
	p.musicCtrl = &beep.Ctrl{Streamer: src, Paused: true}
	p.musicVolume = newVolume(p.musicCtrl, gain)
	p.mixer.Add(p.musicVolume)
	return nil
}

// PlayEffect starts c from the beginning over whatever is already playing.
func (p *Player) PlayEffect(c Cue) {
	buf, ok := p.effects[c]
	if !ok {
		p.logger.Debug("unknown cue", "cue", c)
		return
	}

	p.mu.Lock()
	gain := p.soundGain
	closed := p.closed
	p.mu.Unlock()
	if closed || gain <= MinGain {
		return
	}

	speaker.Lock()
	p.mixer.Add(newVolume(buf.Streamer(0, buf.Len()), gain))
	speaker.Unlock()
}

// PlayMusic seeks to tick and unpauses.
func (p *Player) PlayMusic(tick int) {
	if p.musicCtrl == nil {
		return
	}
	speaker.Lock()
	defer speaker.Unlock()
	p.seekLocked(tick)
	p.musicCtrl.Paused = false
}

func (p *Player) PauseMusic() {
	p.setPaused(true)
}

func (p *Player) ResumeMusic() {
	p.setPaused(false)
}

func (p *Player) setPaused(paused bool) {
	if p.musicCtrl == nil {
		return
	}
	speaker.Lock()
	p.musicCtrl.Paused = paused
	speaker.Unlock()
}

// SeekMusic jumps the track to tick without changing its paused state.
func (p *Player) SeekMusic(tick int) {
	if p.musicCtrl == nil {
		return
	}
	speaker.Lock()
	p.seekLocked(tick)
	speaker.Unlock()
}

func (p *Player) seekLocked(tick int) {
	d := time.Duration(tick) * time.Second / time.Duration(p.tickRate)
	pos := min(p.musicRate.N(d), p.music.Len()-1)
	if err := p.music.Seek(max(pos, 0)); err != nil {
		p.logger.Warn("seeking music", "tick", tick, "error", err)
	}
}

// SetGains applies new music and sound gains in decibels.
func (p *Player) SetGains(music, sound float64) {
	p.mu.Lock()
	p.soundGain = sound
	p.mu.Unlock()

	if p.musicVolume == nil {
		return
	}
	speaker.Lock()
	p.musicVolume.Volume = gainToVolume(music)
	p.musicVolume.Silent = music <= MinGain
	speaker.Unlock()
}

func (p *Player) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	p.mu.Unlock()

	speaker.Clear()
	speaker.Close()
	if p.music != nil {
		return p.music.Close()
	}
	return nil
}
