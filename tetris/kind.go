package tetris

import (
	"errors"
	"fmt"
)

//go:generate stringer -type=Kind

// Kind identifies one of the seven tetrominoes.
type Kind uint8

const (
	I Kind = iota
	O
	L
	J
	S
	Z
	T
)

// KindCount is the number of piece kinds.
const KindCount = 7

var ErrUnknownKind = errors.New("unknown piece kind")

// KindFromIndex maps 0..6 onto a Kind in I, O, L, J, S, Z, T order.
func KindFromIndex(i int) (Kind, error) {
	if i < 0 || i >= KindCount {
		return 0, fmt.Errorf("%w: index %d", ErrUnknownKind, i)
	}
	return Kind(i), nil
}

// Valid reports whether k is one of the seven defined kinds.
func (k Kind) Valid() bool {
	return k < KindCount
}

// shapes holds the spawn-orientation offsets of every kind relative to the
// piece anchor. Half-unit offsets give O, S and Z a pivot between cells.
var shapes = [KindCount][4]Vec{
	I: {{-2, 0}, {-1, 0}, {0, 0}, {1, 0}},
	O: {{-.5, -.5}, {.5, -.5}, {.5, .5}, {-.5, .5}},
	L: {{-1, 0}, {0, 0}, {1, 0}, {-1, 1}},
	J: {{-1, 0}, {0, 0}, {1, 0}, {1, 1}},
	S: {{.5, -.5}, {-.5, -.5}, {-.5, .5}, {-1.5, .5}},
	Z: {{-1.5, -.5}, {-.5, -.5}, {-.5, .5}, {.5, .5}},
	T: {{-1, 0}, {0, 0}, {1, 0}, {0, 1}},
}

// Shape returns the spawn-orientation offsets for k. It panics on an unknown kind.
func Shape(k Kind) [4]Vec {
	if !k.Valid() {
		panic(fmt.Sprintf("tetris: %v: %d", ErrUnknownKind, uint8(k)))
	}
	return shapes[k]
}
