package term

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/tetrispi/effects"
	"github.com/plus3/tetrispi/menu"
	"github.com/plus3/tetrispi/session"
	"github.com/plus3/tetrispi/tetris"
)

// Board cells are two columns wide so they come out roughly square.
const (
	cellCols   = 2
	boardLeft  = 1
	boardTop   = 1
	boardCols  = tetris.Width * cellCols
	sidebarCol = boardLeft + boardCols + 4
	sidebarRow = 8
)

var (
	borderStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
	textStyle   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	dimStyle    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	cursorStyle = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorAqua)
	intenseCell = tcell.StyleDefault.Background(tcell.NewHexColor(tetris.IntenseShade.RGB()))
)

// Renderer draws frames onto a tcell screen. Render is called from the
// session goroutine only.
type Renderer struct {
	screen tcell.Screen
}

func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen}
}

func (r *Renderer) Render(f session.Frame) {
	r.screen.Clear()

	left := boardLeft
	if f.Intense && f.Shake > 0 {
		left += rand.IntN(3) - 1
	}

	r.drawBorder(left)
	r.drawBoard(left, &f)
	r.drawEffects(left, &f)
	r.drawSidebar(&f)

	switch {
	case f.Mode == session.ModeMenu:
		r.drawMenu(&f)
	case f.Demo:
		r.drawScores(&f)
	}

	r.screen.Show()
}

func (r *Renderer) put(x, y int, s string, style tcell.Style) {
	for i, ch := range []rune(s) {
		r.screen.SetContent(x+i, y, ch, nil, style)
	}
}

func (r *Renderer) drawBorder(left int) {
	bottom := boardTop + tetris.Height
	for y := boardTop; y < bottom; y++ {
		r.screen.SetContent(left-1, y, '│', nil, borderStyle)
		r.screen.SetContent(left+boardCols, y, '│', nil, borderStyle)
	}
	for x := left - 1; x <= left+boardCols; x++ {
		r.screen.SetContent(x, bottom, '─', nil, borderStyle)
	}
	r.screen.SetContent(left-1, bottom, '└', nil, borderStyle)
	r.screen.SetContent(left+boardCols, bottom, '┘', nil, borderStyle)
}

func (r *Renderer) cell(left, x, y int, style tcell.Style) {
	for i := range cellCols {
		r.screen.SetContent(left+x*cellCols+i, boardTop+y, ' ', nil, style)
	}
}

func cellStyle(c tetris.Color, intense bool) tcell.Style {
	if intense {
		return intenseCell
	}
	return tcell.StyleDefault.Background(tcell.NewHexColor(c.RGB()))
}

func (r *Renderer) drawBoard(left int, f *session.Frame) {
	for y := range f.Board {
		for x, c := range f.Board[y] {
			if c.Filled {
				r.cell(left, x, y, cellStyle(c.Color, f.Intense))
			}
		}
	}
	for _, p := range []tetris.Piece{f.Current, f.Next} {
		for _, c := range p.Cells() {
			if c.Y >= 0 {
				r.cell(left, c.X, c.Y, cellStyle(p.Color, f.Intense))
			}
		}
	}
}

func (r *Renderer) drawEffects(left int, f *session.Frame) {
	for _, fx := range f.Effects {
		x, y := int(math.Round(fx.X)), int(math.Round(fx.Y))
		switch fx.Kind {
		case effects.LineClear:
			style := tcell.StyleDefault.Background(tcell.ColorBlack)
			if f.Intense || fx.Lit() {
				style = tcell.StyleDefault.Background(tcell.ColorWhite)
			}
			for col := range tetris.Width {
				r.cell(left, col, y, style)
			}
		case effects.Explode:
			half := int(fx.Size / 2)
			for _, dx := range []int{-half, half} {
				for _, dy := range []int{-half, half} {
					r.mark(left, x+dx, y+dy, '+')
				}
			}
		case effects.LineExplode:
			for i := range effects.RingSpokes {
				theta := float64(i+1) * 2 * math.Pi / effects.RingSpokes
				r.mark(left, x-int(math.Round(fx.Dist*math.Sin(theta))), y+int(math.Round(fx.Dist*math.Cos(theta))), '■')
			}
		case effects.Streak:
			r.mark(left, x, y, '·')
		}
	}
}

// mark draws ch in board cell (x, y) if it is on the board.
func (r *Renderer) mark(left, x, y int, ch rune) {
	if x < 0 || x >= tetris.Width || y < 0 || y >= tetris.Height {
		return
	}
	r.screen.SetContent(left+x*cellCols, boardTop+y, ch, nil, dimStyle)
}

func (r *Renderer) drawSidebar(f *session.Frame) {
	lines := []string{
		"TETRIS",
		"",
		f.Name,
		"",
		fmt.Sprintf("score %d", f.Score),
		fmt.Sprintf("level %d", f.Level),
		fmt.Sprintf("lines %d", f.Lines),
		"",
		fmt.Sprintf("%d", f.Countdown),
	}
	if f.Intense {
		lines = append(lines, "", "INTENSE")
	}
	for i, line := range lines {
		r.put(sidebarCol, sidebarRow+i, line, textStyle)
	}
}

func (r *Renderer) drawScores(f *session.Frame) {
	r.put(boardLeft+2, boardTop+2, "HIGH SCORES", textStyle)
	for i, e := range f.Scores {
		r.put(boardLeft+2, boardTop+4+i, fmt.Sprintf("%2d %-10s %d", i+1, e.Name, e.Score), textStyle)
	}
}

func (r *Renderer) drawMenu(f *session.Frame) {
	m := f.Menu
	r.clearBoard()

	for i, ch := range m.NameChars {
		style := textStyle
		if m.Option == menu.OptionName && m.Cursor == i {
			style = cursorStyle
		}
		r.screen.SetContent(boardLeft+2+i*cellCols, boardTop+2, ch, nil, style)
	}

	rows := []struct {
		option menu.Option
		label  string
		value  string
	}{
		{menu.OptionLevel, "level", fmt.Sprint(m.Settings.StartLevel)},
		{menu.OptionMusic, "music", gainText(m.Settings.MusicGain)},
		{menu.OptionSound, "sound", gainText(m.Settings.SoundGain)},
	}
	for i, row := range rows {
		text := fmt.Sprintf("  %-6s %s", row.label, row.value)
		if m.Option == row.option {
			text = fmt.Sprintf("< %-6s %s >", row.label, row.value)
		}
		r.put(boardLeft+2, boardTop+5+i*2, text, textStyle)
	}
}

func (r *Renderer) clearBoard() {
	for y := range tetris.Height {
		for x := range tetris.Width {
			r.cell(boardLeft, x, y, tcell.StyleDefault)
		}
	}
}

func gainText(g float64) string {
	if menu.Muted(g) {
		return "muted"
	}
	return fmt.Sprintf("%+.1f dB", g)
}
