package domain

import (
	"context"
)

type HubUseCase interface {
	Handle(ctx context.Context, client Client) error
	GamesStates() <-chan map[string]GameSnapshot
	ApplyStates(ctx context.Context, states map[string]GameSnapshot)
}
