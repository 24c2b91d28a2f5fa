package game

import (
	"github.com/kiryu-dev/reversi/internal/domain"
	"github.com/pkg/errors"
)

// skipTurn hands the move to the opponent without touching the board.
func skipTurn(stage domain.State) domain.State {
	return domain.NewStateFrom(stage.Board(), stage.Turn().Opponent())
}

// outcome returns NoneMove while at least one side can still place a disc,
// otherwise the result decided by the disc count.
func outcome(stage domain.State) domain.MoveStatus {
	if !stage.HasNoLegalMoves() || !skipTurn(stage).HasNoLegalMoves() {
		return domain.NoneMove
	}
	board := stage.Board()
	black, white := board.Count(domain.Black), board.Count(domain.White)
	switch {
	case black > white:
		return domain.WinBlack
	case white > black:
		return domain.WinWhite
	default:
		return domain.Draw
	}
}

func moveStatus(color domain.Cell) (domain.MoveStatus, error) {
	switch color {
	case domain.Black:
		return domain.MoveBlack, nil
	case domain.White:
		return domain.MoveWhite, nil
	default:
		return domain.NoneMove, errUnexpectedMoveStatus
	}
}

func isRejectedPlacement(err error) bool {
	return errors.Is(err, domain.ErrCellOccupied) ||
		errors.Is(err, domain.ErrNoCaptures) ||
		errors.Is(err, domain.ErrInvalidPosition)
}

const (
	WinGameResult      = "Победа"
	LoseGameResult     = "Поражение"
	DrawGameResult     = "Ничья"
	WalkoverGameResult = "Техническая победа (оппонент отключился)"
)

func toGameResult(status domain.MoveStatus, player domain.Player) (string, error) {
	winner := domain.White
	switch status {
	case domain.WinBlack:
		winner = domain.Black
		fallthrough
	case domain.WinWhite:
		if player.Color() != winner {
			return LoseGameResult, nil
		}
		return WinGameResult, nil
	case domain.Draw:
		return DrawGameResult, nil
	case domain.Disconnect:
		return WalkoverGameResult, nil
	default:
		return "", errUnexpectedMoveStatus
	}
}
