package tetris

import "math"

// Vec is a position in cell units. Anchors and offsets may sit on half cells.
type Vec struct {
	X, Y float64
}

// Point is an integer cell coordinate. Y grows downwards from row 0.
type Point struct {
	X, Y int
}

// Piece is a tetromino: an anchor plus four offsets from it.
type Piece struct {
	Kind        Kind
	Anchor      Vec
	Offsets     [4]Vec
	Orientation int
	Color       Color
	Locked      bool
}

// NewPiece builds a piece of the given kind in its spawn orientation.
// It panics if kind is not one of the seven defined kinds.
func NewPiece(kind Kind, anchor Vec, color Color) Piece {
	return Piece{
		Kind:    kind,
		Anchor:  anchor,
		Offsets: Shape(kind),
		Color:   color,
	}
}

// Rotate turns every offset a quarter turn around the anchor. It does not
// consult the board.
func (p *Piece) Rotate(cw bool) {
	for i, o := range p.Offsets {
		x, y := o.Y, o.X
		if cw {
			x = -x
		} else {
			y = -y
		}
		p.Offsets[i] = Vec{X: x, Y: y}
	}
	if cw {
		p.Orientation = (p.Orientation + 1) % 4
	} else {
		p.Orientation = (p.Orientation + 3) % 4
	}
}

func (p *Piece) MoveTo(x, y float64) {
	p.Anchor = Vec{X: x, Y: y}
}

func (p *Piece) Translate(dx, dy float64) {
	p.Anchor.X += dx
	p.Anchor.Y += dy
}

// Cells returns the absolute cells covered by the piece, rounding half
// cells up.
func (p Piece) Cells() [4]Point {
	var cells [4]Point
	for i, o := range p.Offsets {
		cells[i] = Point{
			X: roundHalfUp(p.Anchor.X + o.X),
			Y: roundHalfUp(p.Anchor.Y + o.Y),
		}
	}
	return cells
}

// Clone returns an independent copy. Piece holds no references, so this is
// a plain value copy.
func (p Piece) Clone() Piece {
	return p
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
