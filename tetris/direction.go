package tetris

import "fmt"

// Direction is a unit movement applied to the current piece.
type Direction uint8

const (
	Down Direction = iota
	Left
	Right
	Up
)

var directionDeltas = [...]Point{
	Down:  {0, 1},
	Left:  {-1, 0},
	Right: {1, 0},
	Up:    {0, -1},
}

var directionNames = [...]string{
	Down:  "down",
	Left:  "left",
	Right: "right",
	Up:    "up",
}

// Delta returns the cell offset for d. It panics on an unknown direction.
func (d Direction) Delta() Point {
	if int(d) >= len(directionDeltas) {
		panic(fmt.Sprintf("tetris: unknown direction %d", uint8(d)))
	}
	return directionDeltas[d]
}

func (d Direction) String() string {
	if int(d) >= len(directionNames) {
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
	return directionNames[d]
}
