package domain

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

// State is a board together with the colour to move. It is a value type:
// copies never share cells.
type State struct {
	board Board
	turn  Cell
}

func NewState() State {
	return State{
		board: StartBoard(),
		turn:  Black,
	}
}

// NewStateFrom does not validate the supplied position.
func NewStateFrom(board Board, turn Cell) State {
	return State{
		board: board,
		turn:  turn,
	}
}

func (s State) Board() Board {
	return s.board
}

func (s State) Turn() Cell {
	return s.turn
}

// Place puts a disc of the current colour at pos and reverses every captured
// disc. On error the state is left untouched.
func (s *State) Place(pos Position) error {
	captured, err := s.Captures(pos)
	if err != nil {
		return err
	}
	for _, p := range captured {
		s.board[p.X][p.Y] = s.turn
	}
	s.board[pos.X][pos.Y] = s.turn
	s.turn = s.turn.Opponent()
	return nil
}

// Captures returns the discs a placement at pos would reverse.
func (s State) Captures(pos Position) ([]Position, error) {
	if !pos.Valid() {
		return nil, placementError(ErrInvalidPosition, pos)
	}
	if s.board.At(pos) != Empty {
		return nil, placementError(ErrCellOccupied, pos)
	}
	var captured []Position
	for _, dir := range allDirections {
		captured = append(captured, s.scan(pos, dir)...)
	}
	if len(captured) == 0 {
		return nil, placementError(ErrNoCaptures, pos)
	}
	return captured, nil
}

// scan walks from pos along dir and returns the run of opponent discs closed
// by a disc of the mover's colour. A run broken by an empty cell or the edge
// of the board captures nothing.
func (s State) scan(pos Position, dir Direction) []Position {
	var run []Position
	for p := pos.Step(dir); p.Valid(); p = p.Step(dir) {
		switch s.board.At(p) {
		case Empty:
			return nil
		case s.turn:
			return run
		default:
			run = append(run, p)
		}
	}
	return nil
}

// Check returns the error Place would return for pos without applying it.
func (s State) Check(pos Position) error {
	_, err := s.Captures(pos)
	return err
}

func (s State) CanPlace(pos Position) bool {
	return s.Check(pos) == nil
}

// HasNoLegalMoves reports whether the colour to move has to pass.
func (s State) HasNoLegalMoves() bool {
	for x := 0; x < BoardSize; x++ {
		for y := 0; y < BoardSize; y++ {
			if s.CanPlace(Position{X: x, Y: y}) {
				return false
			}
		}
	}
	return true
}

func (s State) LegalMoves() []Position {
	var moves []Position
	for x := 0; x < BoardSize; x++ {
		for y := 0; y < BoardSize; y++ {
			pos := Position{X: x, Y: y}
			if s.CanPlace(pos) {
				moves = append(moves, pos)
			}
		}
	}
	return moves
}

type stateJson struct {
	Board Board `json:"board"`
	Turn  Cell  `json:"turn"`
}

func (s State) MarshalJSON() ([]byte, error) {
	data, err := jsoniter.Marshal(stateJson{Board: s.board, Turn: s.turn})
	if err != nil {
		return nil, errors.WithMessage(err, "marshal state")
	}
	return data, nil
}

func (s *State) UnmarshalJSON(data []byte) error {
	v := stateJson{}
	if err := jsoniter.Unmarshal(data, &v); err != nil {
		return errors.WithMessage(err, "unmarshal state")
	}
	s.board = v.Board
	s.turn = v.Turn
	return nil
}
