package domain

import (
	"fmt"
)

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type Direction struct {
	X int
	Y int
}

var allDirections = [8]Direction{
	{X: -1, Y: -1},
	{X: -1, Y: 0},
	{X: -1, Y: 1},
	{X: 0, Y: -1},
	{X: 0, Y: 1},
	{X: 1, Y: -1},
	{X: 1, Y: 0},
	{X: 1, Y: 1},
}

// Validate reports whether (x, y) addresses a cell of the board.
func Validate(x, y int) bool {
	return x >= 0 && x < BoardSize && y >= 0 && y < BoardSize
}

func (p Position) Valid() bool {
	return Validate(p.X, p.Y)
}

func (p Position) Step(d Direction) Position {
	return Position{X: p.X + d.X, Y: p.Y + d.Y}
}

func (p Position) String() string {
	return fmt.Sprintf("x: %d, y: %d", p.X, p.Y)
}
