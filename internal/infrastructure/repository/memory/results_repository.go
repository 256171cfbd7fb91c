package memory

import (
	"context"
	"sync"

	"github.com/nbanima/pickem/internal/domain/results"
	"github.com/nbanima/pickem/internal/domain/slate"
)

type ResultsRepository struct {
	mu         sync.RWMutex
	teams      map[string]results.TeamResult
	players    map[string]results.PlayerResult
	highlights map[slate.Date][]results.HighlightResult
}

func NewResultsRepository() *ResultsRepository {
	return &ResultsRepository{
		teams:      make(map[string]results.TeamResult),
		players:    make(map[string]results.PlayerResult),
		highlights: make(map[slate.Date][]results.HighlightResult),
	}
}

func (r *ResultsRepository) ListTeamResultsByGames(_ context.Context, gameIDs []string) ([]results.TeamResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]results.TeamResult, 0, len(gameIDs))
	for _, id := range gameIDs {
		if row, ok := r.teams[id]; ok {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *ResultsRepository) ListPlayerResultsByGames(_ context.Context, gameIDs []string) ([]results.PlayerResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := make(map[string]struct{}, len(gameIDs))
	for _, id := range gameIDs {
		wanted[id] = struct{}{}
	}
	out := make([]results.PlayerResult, 0, len(gameIDs))
	for _, row := range r.players {
		if _, ok := wanted[row.GameID]; ok {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *ResultsRepository) ListHighlightResultsBySlate(_ context.Context, date slate.Date) ([]results.HighlightResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]results.HighlightResult(nil), r.highlights[date]...), nil
}

func (r *ResultsRepository) UpsertTeamResult(_ context.Context, result results.TeamResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.teams[result.GameID] = result
	return nil
}

func (r *ResultsRepository) UpsertPlayerResult(_ context.Context, result results.PlayerResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.players[result.GameID+":"+result.Category] = result
	return nil
}

func (r *ResultsRepository) UpsertHighlightResults(_ context.Context, date slate.Date, rows []results.HighlightResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.highlights[date] = append([]results.HighlightResult(nil), rows...)
	return nil
}
