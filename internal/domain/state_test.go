package domain

import (
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewState(t *testing.T) {
	state := NewState()
	assert.Equal(t, Board{
		{0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, -1, 1, 0, 0, 0},
		{0, 0, 0, 1, -1, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 0},
	}, state.Board())
	assert.Equal(t, Black, state.Turn())
	assert.Equal(t, NewState(), state)
}

func TestFirstTurn(t *testing.T) {
	state := NewState()
	require.NoError(t, state.Place(Position{X: 4, Y: 5}))
	assert.Equal(t, Board{
		{0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, -1, 1, 0, 0, 0},
		{0, 0, 0, 1, 1, 1, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 0},
	}, state.Board())
	assert.Equal(t, White, state.Turn())
}

func TestSecondTurn(t *testing.T) {
	state := NewState()
	require.NoError(t, state.Place(Position{X: 4, Y: 5}))
	require.NoError(t, state.Place(Position{X: 5, Y: 5}))
	assert.Equal(t, Board{
		{0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, -1, 1, 0, 0, 0},
		{0, 0, 0, 1, -1, 1, 0, 0},
		{0, 0, 0, 0, 0, -1, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 0},
	}, state.Board())
	assert.Equal(t, Black, state.Turn())
}

func TestPlaceRejected(t *testing.T) {
	tests := []struct {
		name string
		pos  Position
		err  error
	}{
		{name: "occupied by black", pos: Position{X: 3, Y: 4}, err: ErrCellOccupied},
		{name: "occupied by white", pos: Position{X: 3, Y: 3}, err: ErrCellOccupied},
		{name: "isolated corner", pos: Position{X: 0, Y: 0}, err: ErrNoCaptures},
		{name: "adjacent to own disc only", pos: Position{X: 2, Y: 5}, err: ErrNoCaptures},
		{name: "negative coordinate", pos: Position{X: -1, Y: 3}, err: ErrInvalidPosition},
		{name: "past the edge", pos: Position{X: 3, Y: 8}, err: ErrInvalidPosition},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := NewState()
			err := state.Place(tt.pos)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.err), err.Error())
			assert.Contains(t, err.Error(), tt.pos.String())
			assert.Equal(t, NewState(), state)
		})
	}
}

func TestPlaceOnEveryOccupiedCell(t *testing.T) {
	state := NewState()
	require.NoError(t, state.Place(Position{X: 4, Y: 5}))
	before := state
	for x := 0; x < BoardSize; x++ {
		for y := 0; y < BoardSize; y++ {
			pos := Position{X: x, Y: y}
			if state.Board().At(pos) == Empty {
				continue
			}
			assert.ErrorIs(t, state.Place(pos), ErrCellOccupied)
			assert.Equal(t, before, state)
		}
	}
}

func TestPlaceReversesWholeRun(t *testing.T) {
	var board Board
	board[4][1], board[4][2] = White, White
	board[4][3] = Black
	// reaches the edge without an anchor
	board[5][0], board[6][0], board[7][0] = White, White, White
	// broken by an empty cell at [2][0]
	board[3][0] = White
	state := NewStateFrom(board, Black)

	captured, err := state.Captures(Position{X: 4, Y: 0})
	require.NoError(t, err)
	assert.ElementsMatch(t, []Position{{X: 4, Y: 1}, {X: 4, Y: 2}}, captured)

	require.NoError(t, state.Place(Position{X: 4, Y: 0}))

	expected := board
	expected[4][0], expected[4][1], expected[4][2] = Black, Black, Black
	assert.Equal(t, expected, state.Board())
	assert.Equal(t, White, state.Turn())
}

func TestPlaceBrokenRun(t *testing.T) {
	var board Board
	board[2][1], board[2][2] = White, White
	board[2][4] = Black
	state := NewStateFrom(board, Black)

	assert.ErrorIs(t, state.Place(Position{X: 2, Y: 0}), ErrNoCaptures)
	assert.Equal(t, board, state.Board())
	assert.Equal(t, Black, state.Turn())
}

func TestPlaceSeveralDirections(t *testing.T) {
	var board Board
	board[3][3], board[3][4], board[4][3] = White, White, White
	board[2][3], board[3][5], board[5][3], board[5][5] = Black, Black, Black, Black
	board[4][4] = White
	state := NewStateFrom(board, Black)

	require.NoError(t, state.Place(Position{X: 3, Y: 2}))
	assert.Equal(t, Black, state.Board()[3][3])
	assert.Equal(t, Black, state.Board()[3][4])
	assert.Equal(t, White, state.Board()[4][3])
	assert.Equal(t, White, state.Board()[4][4])
	assert.Equal(t, 7, state.Board().Count(Black))
	assert.Equal(t, 2, state.Board().Count(White))
}

func TestCanPlaceDoesNotMutate(t *testing.T) {
	state := NewState()
	before := state
	for i := 0; i < 3; i++ {
		assert.True(t, state.CanPlace(Position{X: 4, Y: 5}))
		assert.False(t, state.CanPlace(Position{X: 0, Y: 0}))
		assert.False(t, state.CanPlace(Position{X: 3, Y: 3}))
		assert.False(t, state.CanPlace(Position{X: 8, Y: 8}))
	}
	assert.Equal(t, before, state)
}

func TestLegalMoves(t *testing.T) {
	state := NewState()
	assert.Equal(t, []Position{
		{X: 2, Y: 3},
		{X: 3, Y: 2},
		{X: 4, Y: 5},
		{X: 5, Y: 4},
	}, state.LegalMoves())
	for _, pos := range state.LegalMoves() {
		assert.NoError(t, state.Check(pos))
	}
}

func TestHasNoLegalMoves(t *testing.T) {
	passBoard := Board{
		{0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 1, 1, 0, 0, 0},
		{0, 0, 0, 1, -1, 1, 0, 0},
		{0, 0, 0, 0, 1, 1, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 0},
	}
	var firstOnly, lastOnly Board
	firstOnly[0][1], firstOnly[0][2] = White, Black
	lastOnly[7][6], lastOnly[7][5] = White, Black

	tests := []struct {
		name   string
		state  State
		noMove bool
		only   *Position
	}{
		{name: "opening", state: NewState(), noMove: false},
		{name: "black must pass", state: NewStateFrom(passBoard, Black), noMove: true},
		{name: "white can still move", state: NewStateFrom(passBoard, White), noMove: false},
		{name: "empty board", state: NewStateFrom(Board{}, Black), noMove: true},
		{name: "first scanned cell", state: NewStateFrom(firstOnly, Black), only: &Position{X: 0, Y: 0}},
		{name: "last scanned cell", state: NewStateFrom(lastOnly, Black), only: &Position{X: 7, Y: 7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.state
			assert.Equal(t, tt.noMove, tt.state.HasNoLegalMoves())
			assert.Equal(t, before, tt.state)
			if tt.only != nil {
				assert.Equal(t, []Position{*tt.only}, tt.state.LegalMoves())
			}
			if tt.noMove {
				assert.Empty(t, tt.state.LegalMoves())
			}
		})
	}
}

func TestStateJson(t *testing.T) {
	state := NewState()
	require.NoError(t, state.Place(Position{X: 4, Y: 5}))

	data, err := jsoniter.Marshal(state)
	require.NoError(t, err)

	var decoded State
	require.NoError(t, jsoniter.Unmarshal(data, &decoded))
	assert.Equal(t, state, decoded)
}
