package results

import (
	"context"

	"github.com/nbanima/pickem/internal/domain/slate"
)

// Repository reads and upserts published outcomes. Upserts are only used by
// the ingestion path; settlement treats results as read-only.
type Repository interface {
	ListTeamResultsByGames(ctx context.Context, gameIDs []string) ([]TeamResult, error)
	ListPlayerResultsByGames(ctx context.Context, gameIDs []string) ([]PlayerResult, error)
	ListHighlightResultsBySlate(ctx context.Context, date slate.Date) ([]HighlightResult, error)

	UpsertTeamResult(ctx context.Context, result TeamResult) error
	UpsertPlayerResult(ctx context.Context, result PlayerResult) error
	UpsertHighlightResults(ctx context.Context, date slate.Date, rows []HighlightResult) error
}
