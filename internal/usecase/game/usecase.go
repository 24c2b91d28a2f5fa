package game

import (
	"context"

	"github.com/kiryu-dev/reversi/internal/domain"
	"github.com/kiryu-dev/reversi/pkg/utils"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type useCase struct {
	logger *zap.Logger
}

func New(logger *zap.Logger) useCase {
	return useCase{
		logger: logger,
	}
}

func (u useCase) Play(ctx context.Context, player domain.Player, state *domain.GameState) error {
	snapshot := state.Snapshot()
	if err := startGame(player, snapshot.Stage); err != nil {
		return errors.WithMessage(err, "start game")
	}
	_ = state.Update(func(s *domain.GameSnapshot) error {
		if s.Status == domain.ReadyToStart {
			s.Status = domain.InProgress
		}
		return nil
	})
	if player.Color() != snapshot.Stage.Turn() {
		if err := player.MakeMove(ctx, domain.Move{Status: domain.NoneMove}); err != nil {
			return errors.WithMessage(err, "hand over first move")
		}
	}
	for {
		v, err := player.WaitEnemyMove(ctx)
		if err != nil {
			return errors.WithMessage(err, "wait for enemy move")
		}
		if err := relayEnemyMove(player, v, state); err != nil {
			if !v.IsFinal() {
				u.leave(ctx, player, state)
			}
			return errors.WithMessage(err, "relay enemy move")
		}
		if v.IsFinal() {
			return nil
		}
		move, err := u.makeMove(player, state)
		if err != nil {
			u.leave(ctx, player, state)
			if errors.Is(err, domain.ErrConnectionClosed) {
				return nil
			}
			return errors.WithMessage(err, "make move")
		}
		if err := player.MakeMove(ctx, move); err != nil {
			return errors.WithMessage(err, "hand over move")
		}
		if err := confirmMove(player, move, state); err != nil {
			if !move.IsFinal() {
				u.abandon(ctx, player, state)
			}
			return errors.WithMessage(err, "confirm move")
		}
		if move.IsFinal() {
			u.logger.Info("game finished",
				zap.String("game uuid", player.GameUuid()),
				zap.Stringer("board", state.Snapshot().Stage.Board()))
			return nil
		}
	}
}

// leave finishes the game and hands the opponent a disconnect while it waits
// for this player's move.
func (u useCase) leave(ctx context.Context, player domain.Player, state *domain.GameState) {
	markFinished(state)
	if err := player.MakeMove(ctx, domain.Move{Color: player.Color(), Status: domain.Disconnect}); err != nil {
		u.logger.Warn("hand over disconnect", zap.String("game uuid", player.GameUuid()), zap.Error(err))
	}
}

// abandon is leave for a player whose move was already handed over: the
// opponent answers that move first.
func (u useCase) abandon(ctx context.Context, player domain.Player, state *domain.GameState) {
	markFinished(state)
	v, err := player.WaitEnemyMove(ctx)
	if err != nil {
		u.logger.Warn("wait for enemy move", zap.String("game uuid", player.GameUuid()), zap.Error(err))
		return
	}
	if v.IsFinal() {
		return
	}
	if err := player.MakeMove(ctx, domain.Move{Color: player.Color(), Status: domain.Disconnect}); err != nil {
		u.logger.Warn("hand over disconnect", zap.String("game uuid", player.GameUuid()), zap.Error(err))
	}
}

func startGame(player domain.Player, stage domain.State) error {
	err := player.SendMessage(domain.Message{
		Type: domain.StartGame,
		Payload: domain.StartGamePayload{
			Color: player.Color(),
			Board: stage.Board(),
			Turn:  stage.Turn(),
		},
	})
	if err != nil {
		return errors.WithMessage(err, "send message to player")
	}
	return nil
}

func relayEnemyMove(player domain.Player, move domain.Move, state *domain.GameState) error {
	switch move.Status {
	case domain.NoneMove:
		return nil
	case domain.Disconnect:
		err := player.SendMessage(domain.Message{
			Type:    domain.Walkover,
			Payload: domain.WalkoverPayload{GameResult: WalkoverGameResult},
		})
		if err != nil {
			return errors.WithMessage(err, "send message to player")
		}
		return nil
	default:
		return sendMove(player, move, state.Snapshot().Stage.Board())
	}
}

func confirmMove(player domain.Player, move domain.Move, state *domain.GameState) error {
	return sendMove(player, move, state.Snapshot().Stage.Board())
}

func sendMove(player domain.Player, move domain.Move, board domain.Board) error {
	var gameResult *string
	if move.Result != domain.NoneMove {
		result, err := toGameResult(move.Result, player)
		if err != nil {
			return errors.WithMessage(err, "to game result")
		}
		gameResult = &result
	}
	msg := domain.Message{
		Type: domain.PlayerMove,
		Payload: domain.PlayerMovePayload{
			Color:      move.Color,
			Position:   move.Position,
			Board:      board,
			GameResult: gameResult,
		},
	}
	if move.Status == domain.PassMove {
		msg = domain.Message{
			Type: domain.Pass,
			Payload: domain.PassPayload{
				Color:      move.Color,
				GameResult: gameResult,
			},
		}
	}
	if err := player.SendMessage(msg); err != nil {
		return errors.WithMessage(err, "send message to player")
	}
	return nil
}

func (u useCase) makeMove(player domain.Player, state *domain.GameState) (domain.Move, error) {
	stage := state.Snapshot().Stage
	if stage.Turn() != player.Color() {
		return domain.Move{}, errors.WithMessagef(errNotPlayersTurn, "turn of %s", stage.Turn())
	}
	if stage.HasNoLegalMoves() {
		return u.pass(player, state), nil
	}
	legalMoves := stage.LegalMoves()
	if err := requestMove(player, legalMoves); err != nil {
		return domain.Move{}, err
	}
	for {
		pos, err := receiveMoveMessage(player)
		if err != nil {
			return domain.Move{}, errors.WithMessage(err, "receive move message")
		}
		move, err := executeMove(pos, player.Color(), state)
		switch {
		case isRejectedPlacement(err):
			u.logger.Debug("rejected move", zap.String("game uuid", player.GameUuid()), zap.Error(err))
			reason := err.Error()
			err = player.SendMessage(domain.Message{
				Type:    domain.InvalidMove,
				Payload: domain.InvalidMovePayload{Reason: reason},
			})
			if err != nil {
				return domain.Move{}, errors.WithMessage(err, "send message to player")
			}
			if err := requestMove(player, legalMoves); err != nil {
				return domain.Move{}, err
			}
		case err != nil:
			return domain.Move{}, errors.WithMessage(err, "execute player's move")
		default:
			u.logger.Debug("player's move",
				zap.String("game uuid", player.GameUuid()),
				zap.Stringer("position", pos),
				zap.Stringer("board", state.Snapshot().Stage.Board()))
			return move, nil
		}
	}
}

func (u useCase) pass(player domain.Player, state *domain.GameState) domain.Move {
	move := domain.Move{Color: player.Color(), Status: domain.PassMove}
	_ = state.Update(func(s *domain.GameSnapshot) error {
		s.Stage = skipTurn(s.Stage)
		s.Round++
		move.Result = finishIfOver(s)
		return nil
	})
	u.logger.Info("player passes", zap.String("game uuid", player.GameUuid()), zap.Stringer("color", player.Color()))
	return move
}

func requestMove(player domain.Player, legalMoves []domain.Position) error {
	err := player.SendMessage(domain.Message{
		Type:    domain.RequestMove,
		Payload: domain.RequestMovePayload{LegalMoves: legalMoves},
	})
	if err != nil {
		return errors.WithMessage(err, "send message to player")
	}
	return nil
}

func receiveMoveMessage(player domain.Player) (domain.Position, error) {
	msg, err := player.ReceiveMessage()
	if err != nil {
		return domain.Position{}, errors.WithMessage(err, "read message from player")
	}
	if msg.Type != domain.PlayerMove {
		return domain.Position{}, errors.WithMessagef(errUnexpectedMessageType, "type %d", msg.Type)
	}
	move, err := utils.DecodePayload[domain.PlayerMovePayload](msg.Payload)
	if err != nil {
		return domain.Position{}, errors.WithMessage(err, "unmarshal player's move")
	}
	return move.Position, nil
}

func executeMove(pos domain.Position, color domain.Cell, state *domain.GameState) (domain.Move, error) {
	status, err := moveStatus(color)
	if err != nil {
		return domain.Move{}, err
	}
	move := domain.Move{Color: color, Position: pos, Status: status}
	err = state.Update(func(s *domain.GameSnapshot) error {
		if err := s.Stage.Place(pos); err != nil {
			return err
		}
		s.Round++
		move.Result = finishIfOver(s)
		return nil
	})
	if err != nil {
		return domain.Move{}, err
	}
	return move, nil
}

func finishIfOver(s *domain.GameSnapshot) domain.MoveStatus {
	result := outcome(s.Stage)
	if result != domain.NoneMove {
		s.Status = domain.Finished
	}
	return result
}

func markFinished(state *domain.GameState) {
	_ = state.Update(func(s *domain.GameSnapshot) error {
		s.Status = domain.Finished
		return nil
	})
}
