package tetris

const (
	Width  = 10
	Height = 24
)

// Cell is one board square. Kind and Color only matter for recoloring and
// drawing; the simulation looks at Filled alone.
type Cell struct {
	Filled bool
	Kind   Kind
	Color  Color
}

// Board is the locked-cell matrix indexed [row][column]. It is a value type:
// assigning a Board copies every cell.
type Board [Height][Width]Cell

func inBounds(x, y int) bool {
	return x >= 0 && x < Width && y >= 0 && y < Height
}

// At returns the cell at (x, y), or an empty cell when out of bounds.
func (b *Board) At(x, y int) Cell {
	if !inBounds(x, y) {
		return Cell{}
	}
	return b[y][x]
}

func (b *Board) Occupied(x, y int) bool {
	return inBounds(x, y) && b[y][x].Filled
}

// Set writes c at (x, y). Out of bounds writes are dropped.
func (b *Board) Set(x, y int, c Cell) {
	if inBounds(x, y) {
		b[y][x] = c
	}
}

// Collides reports whether any of cells hits the floor, a side wall or an
// occupied square. Rows above the board are open.
func (b *Board) Collides(cells [4]Point) bool {
	for _, c := range cells {
		if c.Y >= Height || c.X < 0 || c.X >= Width {
			return true
		}
		if c.Y >= 0 && b[c.Y][c.X].Filled {
			return true
		}
	}
	return false
}

// Stamp writes c into every on-board cell of cells and reports whether any
// of them lay above row 0.
func (b *Board) Stamp(cells [4]Point, c Cell) (overflow bool) {
	for _, p := range cells {
		if p.Y < 0 {
			overflow = true
			continue
		}
		b.Set(p.X, p.Y, c)
	}
	return overflow
}

func (b *Board) RowFull(y int) bool {
	if y < 0 || y >= Height {
		return false
	}
	for x := 0; x < Width; x++ {
		if !b[y][x].Filled {
			return false
		}
	}
	return true
}

// FullRows lists the full rows in ascending order.
func (b *Board) FullRows() []int {
	var rows []int
	for y := 0; y < Height; y++ {
		if b.RowFull(y) {
			rows = append(rows, y)
		}
	}
	return rows
}

// ClearRow removes row y by shifting every row above it down by one and
// emptying row 0.
func (b *Board) ClearRow(y int) {
	if y < 0 || y >= Height {
		return
	}
	for r := y; r > 0; r-- {
		b[r] = b[r-1]
	}
	b[0] = [Width]Cell{}
}

// Recolor repaints every filled cell with its kind's color in p.
func (b *Board) Recolor(p Palette) {
	for y := range b {
		for x := range b[y] {
			if b[y][x].Filled {
				b[y][x].Color = p.ColorOf(b[y][x].Kind)
			}
		}
	}
}

// ColumnHeight is the stack height of column x: Height minus the topmost
// filled row, or 0 for an empty column.
func (b *Board) ColumnHeight(x int) int {
	for y := 0; y < Height; y++ {
		if b.Occupied(x, y) {
			return Height - y
		}
	}
	return 0
}

// FilledCount is the number of occupied squares. It takes a value so
// Grid.Board() results can be counted directly.
func (b Board) FilledCount() int {
	n := 0
	for y := range b {
		for x := range b[y] {
			if b[y][x].Filled {
				n++
			}
		}
	}
	return n
}
