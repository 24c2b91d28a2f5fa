package hub

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kiryu-dev/reversi/internal/domain"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const clientQueueBufSize = 2

type enqueuedClient struct {
	client     domain.Client
	resultChan chan seat
}

// seat is a player bound to the game it plays.
type seat struct {
	player domain.Player
	state  *domain.GameState
}

type useCase struct {
	game        domain.GameUseCase
	clientQueue chan enqueuedClient
	gamesStates map[string]*domain.GameState
	statesChan  chan map[string]domain.GameSnapshot
	ticker      *time.Ticker
	mu          *sync.RWMutex
	logger      *zap.Logger
}

func New(game domain.GameUseCase, syncPeriod time.Duration, logger *zap.Logger) *useCase {
	u := &useCase{
		game:        game,
		clientQueue: make(chan enqueuedClient, clientQueueBufSize),
		gamesStates: make(map[string]*domain.GameState),
		statesChan:  make(chan map[string]domain.GameSnapshot),
		ticker:      time.NewTicker(syncPeriod),
		mu:          &sync.RWMutex{},
		logger:      logger,
	}
	go u.createGames()
	go u.syncStates()
	return u
}

func (u *useCase) Handle(ctx context.Context, client domain.Client) error {
	s, ok := u.continueActiveGame(client)
	if !ok {
		s = u.enqueueForGame(client)
	}
	if err := u.game.Play(ctx, s.player, s.state); err != nil {
		return errors.WithMessage(err, "play game")
	}
	return nil
}

func (u *useCase) enqueueForGame(client domain.Client) seat {
	ch := make(chan seat)
	defer close(ch)
	u.clientQueue <- enqueuedClient{
		client:     client,
		resultChan: ch,
	}
	return <-ch
}

func (u *useCase) createGames() {
	for {
		black := <-u.clientQueue
		white := <-u.clientQueue
		gameUuid, state := u.createGame(black.client.Uuid(), white.client.Uuid())
		u.logger.Info("new game", zap.String("game uuid", gameUuid),
			zap.String("black", black.client.Uuid()), zap.String("white", white.client.Uuid()))
		black.resultChan <- seat{
			player: domain.NewPlayer(gameUuid, black.client, domain.Black, state.MoveChan),
			state:  state,
		}
		white.resultChan <- seat{
			player: domain.NewPlayer(gameUuid, white.client, domain.White, state.MoveChan),
			state:  state,
		}
	}
}

func (u *useCase) createGame(playerBlack string, playerWhite string) (string, *domain.GameState) {
	u.mu.Lock()
	defer u.mu.Unlock()
	gameUuid := uuid.NewString()
	state := domain.NewGameState(domain.GameSnapshot{
		Stage:       domain.NewState(),
		PlayerBlack: playerBlack,
		PlayerWhite: playerWhite,
		Status:      domain.ReadyToStart,
	})
	u.gamesStates[gameUuid] = state
	return gameUuid, state
}

func (u *useCase) syncStates() {
	defer u.ticker.Stop()
	for range u.ticker.C {
		if currentGameCount := u.removeFinishedGames(); currentGameCount > 0 {
			u.statesChan <- u.snapshots()
		}
	}
}

func (u *useCase) GamesStates() <-chan map[string]domain.GameSnapshot {
	return u.statesChan
}

func (u *useCase) snapshots() map[string]domain.GameSnapshot {
	u.mu.RLock()
	defer u.mu.RUnlock()
	snapshots := make(map[string]domain.GameSnapshot, len(u.gamesStates))
	for gameUuid, state := range u.gamesStates {
		snapshots[gameUuid] = state.Snapshot()
	}
	return snapshots
}

func (u *useCase) removeFinishedGames() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	for gameUuid, state := range u.gamesStates {
		if state.Snapshot().Status == domain.Finished {
			delete(u.gamesStates, gameUuid)
		}
	}
	return len(u.gamesStates)
}

func (u *useCase) ApplyStates(_ context.Context, states map[string]domain.GameSnapshot) {
	gamesStates := make(map[string]*domain.GameState, len(states))
	for gameUuid, snapshot := range states {
		gamesStates[gameUuid] = domain.NewGameState(snapshot)
	}
	u.mu.Lock()
	u.gamesStates = gamesStates
	u.mu.Unlock()
	u.logger.Info("applied states", zap.Int("games", len(gamesStates)))
}

func (u *useCase) continueActiveGame(client domain.Client) (seat, bool) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	clientUuid := client.Uuid()
	for gameUuid, state := range u.gamesStates {
		snapshot := state.Snapshot()
		if snapshot.Status == domain.Finished {
			continue
		}
		color := domain.Empty
		switch clientUuid {
		case snapshot.PlayerBlack:
			color = domain.Black
		case snapshot.PlayerWhite:
			color = domain.White
		default:
			continue
		}
		u.logger.Info("found active game", zap.String("game uuid", gameUuid), zap.Stringer("color", color))
		return seat{
			player: domain.NewPlayer(gameUuid, client, color, state.MoveChan),
			state:  state,
		}, true
	}
	return seat{}, false
}
