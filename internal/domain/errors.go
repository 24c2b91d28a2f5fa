package domain

import (
	"github.com/pkg/errors"
)

var (
	ErrCellOccupied    = errors.New("cell is already occupied")
	ErrNoCaptures      = errors.New("no discs to reverse")
	ErrInvalidPosition = errors.New("position is out of the board")
)

func placementError(err error, pos Position) error {
	return errors.WithMessagef(err, "position(%s)", pos)
}
