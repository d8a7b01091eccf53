package ecs_test

// Component types shared by the package tests.
type Position struct {
	X, Y int
}

type Velocity struct {
	DX, DY int
}

type Lifetime struct {
	Ticks int
}

type Counter int

type Label string
