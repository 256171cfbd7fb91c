package usecase

import (
	"context"
	"fmt"

	"github.com/nbanima/pickem/internal/domain/results"
	"github.com/nbanima/pickem/internal/domain/schedule"
	"github.com/nbanima/pickem/internal/domain/slate"
	"github.com/nbanima/pickem/internal/platform/logging"
)

// SlateProvider is the upstream stats feed: the day's games and whatever
// final outcomes it has published so far.
type SlateProvider interface {
	GamesForDate(ctx context.Context, date slate.Date) ([]schedule.Game, error)
	ResultsForDate(ctx context.Context, date slate.Date) (results.Set, error)
}

// SettlementQueue defers a settlement run instead of executing it inline.
// Enqueuing the same slate repeatedly must collapse to one job.
type SettlementQueue interface {
	EnqueueSettlement(ctx context.Context, date slate.Date) error
}

// IngestionService pulls schedule and result data from the provider into
// local storage and queues settlement for the touched slate.
type IngestionService struct {
	provider     SlateProvider
	scheduleRepo schedule.Repository
	resultsRepo  results.Repository
	queue        SettlementQueue
	logger       *logging.Logger
}

func NewIngestionService(
	provider SlateProvider,
	scheduleRepo schedule.Repository,
	resultsRepo results.Repository,
	queue SettlementQueue,
	logger *logging.Logger,
) *IngestionService {
	if logger == nil {
		logger = logging.Default()
	}
	return &IngestionService{
		provider:     provider,
		scheduleRepo: scheduleRepo,
		resultsRepo:  resultsRepo,
		queue:        queue,
		logger:       logger,
	}
}

// SyncSchedule refreshes the slate's games from the provider. Returns the
// number of games upserted.
func (s *IngestionService) SyncSchedule(ctx context.Context, date slate.Date) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.SyncSchedule")
	defer span.End()

	if date == "" {
		return 0, fmt.Errorf("%w: slate date is required", ErrInvalidInput)
	}
	if s.provider == nil {
		return 0, fmt.Errorf("%w: slate provider is not configured", ErrDependencyUnavailable)
	}

	games, err := s.provider.GamesForDate(ctx, date)
	if err != nil {
		return 0, fmt.Errorf("fetch games for slate %s: %w", date, err)
	}
	if len(games) == 0 {
		return 0, nil
	}
	if err := s.scheduleRepo.UpsertGames(ctx, games); err != nil {
		return 0, fmt.Errorf("upsert games for slate %s: %w", date, err)
	}

	s.logger.InfoContext(ctx, "schedule synced", "slate_date", string(date), "games", len(games))
	return len(games), nil
}

// ResultsSyncSummary reports what one ingestion run stored and whether a
// settlement job was queued for it.
type ResultsSyncSummary struct {
	SlateDate        slate.Date `json:"slate_date"`
	TeamResults      int        `json:"team_results"`
	PlayerResults    int        `json:"player_results"`
	HighlightResults int        `json:"highlight_results"`
	SettlementQueued bool       `json:"settlement_queued"`
}

// SyncResults pulls the slate's published outcomes, upserts them, and queues
// a settlement run. A slate with no outcomes yet stores nothing and queues
// nothing.
func (s *IngestionService) SyncResults(ctx context.Context, date slate.Date) (ResultsSyncSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.SyncResults")
	defer span.End()

	if date == "" {
		return ResultsSyncSummary{}, fmt.Errorf("%w: slate date is required", ErrInvalidInput)
	}
	if s.provider == nil {
		return ResultsSyncSummary{}, fmt.Errorf("%w: slate provider is not configured", ErrDependencyUnavailable)
	}

	set, err := s.provider.ResultsForDate(ctx, date)
	if err != nil {
		return ResultsSyncSummary{}, fmt.Errorf("fetch results for slate %s: %w", date, err)
	}

	summary := ResultsSyncSummary{
		SlateDate:        date,
		TeamResults:      len(set.Teams),
		PlayerResults:    len(set.Players),
		HighlightResults: len(set.Highlights),
	}
	if summary.TeamResults+summary.PlayerResults+summary.HighlightResults == 0 {
		return summary, nil
	}

	for _, result := range set.Teams {
		if err := s.resultsRepo.UpsertTeamResult(ctx, result); err != nil {
			return ResultsSyncSummary{}, fmt.Errorf("upsert team result for game %s: %w", result.GameID, err)
		}
	}
	for _, result := range set.Players {
		if err := s.resultsRepo.UpsertPlayerResult(ctx, result); err != nil {
			return ResultsSyncSummary{}, fmt.Errorf("upsert player result for game %s: %w", result.GameID, err)
		}
	}
	if len(set.Highlights) > 0 {
		if err := s.resultsRepo.UpsertHighlightResults(ctx, date, set.Highlights); err != nil {
			return ResultsSyncSummary{}, fmt.Errorf("upsert highlight results for slate %s: %w", date, err)
		}
	}

	if s.queue != nil {
		if err := s.queue.EnqueueSettlement(ctx, date); err != nil {
			// Stored results stand; the nightly resettle sweep covers a
			// missed settlement job.
			s.logger.WarnContext(ctx, "settlement enqueue failed",
				"slate_date", string(date), "error", err.Error())
		} else {
			summary.SettlementQueued = true
		}
	}

	s.logger.InfoContext(ctx, "results synced",
		"slate_date", string(date),
		"team_results", summary.TeamResults,
		"player_results", summary.PlayerResults,
		"highlight_results", summary.HighlightResults,
		"settlement_queued", summary.SettlementQueued,
	)
	return summary, nil
}
