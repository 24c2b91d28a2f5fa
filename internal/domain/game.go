package domain

import (
	"context"
	"sync"
)

type MoveStatus byte

const (
	NoneMove = MoveStatus(iota)
	MoveBlack
	MoveWhite
	PassMove
	Draw
	WinBlack
	WinWhite
	Disconnect
)

// Move is passed between the goroutines of both players. Result is set to
// Draw, WinBlack or WinWhite when the game is over after the move.
type Move struct {
	Color    Cell
	Position Position
	Status   MoveStatus
	Result   MoveStatus
}

func (m Move) IsFinal() bool {
	return m.Status == Disconnect || m.Result != NoneMove
}

type Status byte

const (
	ReadyToStart = Status(iota)
	InProgress
	Finished
)

// GameSnapshot is the replicated part of a game.
type GameSnapshot struct {
	Stage       State  `json:"stage"`
	PlayerBlack string `json:"player_black"`
	PlayerWhite string `json:"player_white"`
	Status      Status `json:"status"`
	Round       uint8  `json:"round"`
}

// GameState guards a single game shared by the goroutines of both players.
type GameState struct {
	mu       sync.Mutex
	snapshot GameSnapshot
	MoveChan chan Move
}

func NewGameState(snapshot GameSnapshot) *GameState {
	return &GameState{
		snapshot: snapshot,
		MoveChan: make(chan Move),
	}
}

func (g *GameState) Snapshot() GameSnapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshot
}

// Update applies fn under the game lock. Changes made by fn are kept only if
// it returns nil.
func (g *GameState) Update(fn func(s *GameSnapshot) error) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	snapshot := g.snapshot
	if err := fn(&snapshot); err != nil {
		return err
	}
	g.snapshot = snapshot
	return nil
}

type GameUseCase interface {
	Play(ctx context.Context, player Player, state *GameState) error
}
