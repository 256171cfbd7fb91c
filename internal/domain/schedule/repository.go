package schedule

import (
	"context"

	"github.com/nbanima/pickem/internal/domain/slate"
)

type Repository interface {
	ListBySlate(ctx context.Context, date slate.Date) ([]Game, error)
	UpsertGames(ctx context.Context, games []Game) error
}
