package domain

import (
	"strconv"
	"strings"
)

const BoardSize = 8

type Cell int8

const (
	Empty = Cell(0)
	Black = Cell(1)
	White = Cell(-1)
)

func (c Cell) Opponent() Cell {
	return -c
}

func (c Cell) String() string {
	switch c {
	case Black:
		return "black"
	case White:
		return "white"
	default:
		return "empty"
	}
}

func (c Cell) Rune() rune {
	switch c {
	case Black:
		return 'X'
	case White:
		return 'O'
	default:
		return '.'
	}
}

// Board is addressed as board[x][y].
type Board [BoardSize][BoardSize]Cell

func StartBoard() Board {
	var board Board
	board[3][3], board[4][4] = White, White
	board[3][4], board[4][3] = Black, Black
	return board
}

func (b Board) At(pos Position) Cell {
	return b[pos.X][pos.Y]
}

func (b Board) Count(cell Cell) int {
	count := 0
	for x := range b {
		for y := range b[x] {
			if b[x][y] == cell {
				count++
			}
		}
	}
	return count
}

func (b Board) String() string {
	sb := strings.Builder{}
	sb.WriteString("  ")
	for y := 0; y < BoardSize; y++ {
		sb.WriteString(" " + strconv.Itoa(y))
	}
	for x := range b {
		sb.WriteString("\n" + strconv.Itoa(x) + " ")
		for y := range b[x] {
			sb.WriteByte(' ')
			sb.WriteRune(b[x][y].Rune())
		}
	}
	return sb.String()
}
