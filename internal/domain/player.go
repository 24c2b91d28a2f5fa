package domain

import (
	"context"
)

type Player struct {
	uuid      string
	gameUuid  string
	playerCli Client
	color     Cell
	ch        chan Move
}

func NewPlayer(gameUuid string, cli Client, color Cell, ch chan Move) Player {
	return Player{
		uuid:      cli.Uuid(),
		gameUuid:  gameUuid,
		playerCli: cli,
		color:     color,
		ch:        ch,
	}
}

func (p Player) Uuid() string {
	return p.uuid
}

func (p Player) GameUuid() string {
	return p.gameUuid
}

func (p Player) SendMessage(msg Message) error {
	return p.playerCli.WriteMessage(msg)
}

func (p Player) ReceiveMessage() (Message, error) {
	return p.playerCli.ReadMessage()
}

func (p Player) Color() Cell {
	return p.color
}

// WaitEnemyMove blocks until the other player hands over a move or ctx is done.
func (p Player) WaitEnemyMove(ctx context.Context) (Move, error) {
	select {
	case move := <-p.ch:
		return move, nil
	case <-ctx.Done():
		return Move{}, ctx.Err()
	}
}

func (p Player) MakeMove(ctx context.Context, move Move) error {
	select {
	case p.ch <- move:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
