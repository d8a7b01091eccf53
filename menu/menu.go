// Package menu is the settings screen: player name, start level and the
// music and effect gains.
package menu

import (
	"strings"

	"github.com/plus3/tetrispi/input"
	"github.com/plus3/tetrispi/tetris"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Option is a menu row.
type Option uint8

const (
	OptionName Option = iota
	OptionLevel
	OptionMusic
	OptionSound
	optionCount
)

// NameLength is the number of editable name characters.
const NameLength = 10

const (
	MinGain  = -20.0
	MaxGain  = 3.0
	GainStep = 0.8
)

var optionWidths = [optionCount]int{
	OptionName:  NameLength,
	OptionLevel: 2,
	OptionMusic: 2,
	OptionSound: 2,
}

var optionNames = [optionCount]string{"name", "level", "music", "sound"}

func (o Option) String() string {
	if o < optionCount {
		return optionNames[o]
	}
	return "unknown"
}

// Width is the number of cursor positions on the row.
func (o Option) Width() int {
	return optionWidths[o]
}

// Settings are the values the menu edits.
type Settings struct {
	Name       string
	StartLevel int
	MusicGain  float64
	SoundGain  float64
}

// Muted reports whether a gain sits at the floor.
func Muted(gain float64) bool {
	return gain <= MinGain
}

// Result tells the caller what closing the menu implies.
type Result uint8

const (
	Stay Result = iota
	Resume
	Restart
)

// Menu is the cursor and the pending settings.
type Menu struct {
	option   Option
	cursor   int
	chars    [NameLength]rune
	settings Settings
	opened   Settings
}

func New(s Settings) *Menu {
	m := &Menu{}
	m.Open(s)
	return m
}

var upper = cases.Upper(language.Und)

// NormalizeName folds a name into the menu alphabet: upper case letters,
// digits and spaces, at most NameLength runes, trimmed.
func NormalizeName(name string) string {
	var chars [NameLength]rune
	fillName(&chars, name)
	return nameOf(chars)
}

func fillName(chars *[NameLength]rune, name string) {
	for i := range chars {
		chars[i] = ' '
	}
	i := 0
	for _, r := range upper.String(name) {
		if i == NameLength {
			break
		}
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			chars[i] = r
		}
		i++
	}
}

func nameOf(chars [NameLength]rune) string {
	return strings.TrimSpace(string(chars[:]))
}

// Open resets the cursor and remembers s so Close can tell whether a
// restart is needed.
func (m *Menu) Open(s Settings) {
	fillName(&m.chars, s.Name)
	s.Name = nameOf(m.chars)
	s.StartLevel = max(0, min(s.StartLevel, tetris.MaxLevel))
	s.MusicGain = clampGain(s.MusicGain)
	s.SoundGain = clampGain(s.SoundGain)
	m.settings = s
	m.opened = s
	m.option = OptionName
	m.cursor = 0
}

func (m *Menu) Settings() Settings { return m.settings }
func (m *Menu) Option() Option     { return m.option }
func (m *Menu) Cursor() int        { return m.cursor }

// NameChars returns the name slots including trailing blanks.
func (m *Menu) NameChars() [NameLength]rune { return m.chars }

// Handle applies one triggered button.
func (m *Menu) Handle(b input.Button) Result {
	switch b {
	case input.Left:
		if m.cursor > 0 {
			m.cursor--
		} else {
			m.adjust(-1)
		}
	case input.Right:
		if m.cursor < m.option.Width()-1 {
			m.cursor++
		} else {
			m.adjust(1)
		}
	case input.Pause:
		if m.option > 0 {
			m.option--
		}
		m.clampCursor()
	case input.Down:
		if m.option == OptionName {
			m.cursor = 0
		}
		if m.option < optionCount-1 {
			m.option++
		}
		m.clampCursor()
	case input.A:
		if m.option == OptionName {
			m.chars[m.cursor] = nextNameChar(m.chars[m.cursor])
			m.settings.Name = nameOf(m.chars)
		} else if m.cursor == 0 {
			m.adjust(-1)
		} else {
			m.adjust(1)
		}
	case input.B:
		return m.Close()
	}
	return Stay
}

// Close reports Restart if the name or start level changed, Resume otherwise.
func (m *Menu) Close() Result {
	if m.settings.Name != m.opened.Name || m.settings.StartLevel != m.opened.StartLevel {
		return Restart
	}
	return Resume
}

func (m *Menu) clampCursor() {
	m.cursor = min(m.cursor, m.option.Width()-1)
}

func (m *Menu) adjust(dir int) {
	switch m.option {
	case OptionLevel:
		m.settings.StartLevel = max(0, min(m.settings.StartLevel+dir, tetris.MaxLevel))
	case OptionMusic:
		m.settings.MusicGain = clampGain(m.settings.MusicGain + float64(dir)*GainStep)
	case OptionSound:
		m.settings.SoundGain = clampGain(m.settings.SoundGain + float64(dir)*GainStep)
	}
}

func clampGain(g float64) float64 {
	return max(MinGain, min(g, MaxGain))
}

// nextNameChar cycles blank, A..Z, 0..9, blank.
func nextNameChar(r rune) rune {
	switch r {
	case ' ':
		return 'A'
	case 'Z':
		return '0'
	case '9':
		return ' '
	default:
		return r + 1
	}
}
