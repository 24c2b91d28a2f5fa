package game

import (
	"github.com/pkg/errors"
)

var (
	errUnexpectedMoveStatus  = errors.New("unexpected move status")
	errUnexpectedMessageType = errors.New("unexpected message type")
	errNotPlayersTurn        = errors.New("it is not the player's turn")
)
