package domain

import (
	"github.com/pkg/errors"
)

var ErrConnectionClosed = errors.New("connection closed")

const (
	ClientUuidHeader = "X-Client-Key"
)

type messageType byte

const (
	StartGame = messageType(iota)
	RequestMove
	PlayerMove
	Pass
	InvalidMove
	Walkover
	SwitchServer
)

type Message struct {
	Type    messageType
	Payload any
}

type StartGamePayload struct {
	Color Cell
	Board Board
	Turn  Cell
}

type RequestMovePayload struct {
	LegalMoves []Position
}

type PlayerMovePayload struct {
	Color      Cell
	Position   Position
	Board      Board
	GameResult *string
}

type PassPayload struct {
	Color      Cell
	GameResult *string
}

type InvalidMovePayload struct {
	Reason string
}

type WalkoverPayload struct {
	GameResult string
}

type SwitchServerPayload struct {
	MasterServer string
}

type Client interface {
	WriteMessage(msg Message) error
	ReadMessage() (Message, error)
	Uuid() string
}
