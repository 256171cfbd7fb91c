package picks

import (
	"context"

	"github.com/nbanima/pickem/internal/domain/slate"
)

// Repository exposes picks to the engine. Picks are written upstream when
// users submit them; settlement only ever reads.
type Repository interface {
	ListBySlate(ctx context.Context, date slate.Date) ([]UserPicks, error)
	ListByUserAndSlate(ctx context.Context, userID string, date slate.Date) (UserPicks, error)
}
