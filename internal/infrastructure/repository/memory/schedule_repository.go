package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/nbanima/pickem/internal/domain/schedule"
	"github.com/nbanima/pickem/internal/domain/slate"
)

type ScheduleRepository struct {
	mu    sync.RWMutex
	games map[string]schedule.Game
}

func NewScheduleRepository(games []schedule.Game) *ScheduleRepository {
	repo := &ScheduleRepository{games: make(map[string]schedule.Game, len(games))}
	for _, game := range games {
		repo.games[game.ID] = game
	}
	return repo
}

func (r *ScheduleRepository) ListBySlate(_ context.Context, date slate.Date) ([]schedule.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]schedule.Game, 0)
	for _, game := range r.games {
		if game.SlateDate == date {
			out = append(out, game)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartsAt.Equal(out[j].StartsAt) {
			return out[i].StartsAt.Before(out[j].StartsAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *ScheduleRepository) UpsertGames(_ context.Context, games []schedule.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, game := range games {
		if game.ID == "" {
			continue
		}
		r.games[game.ID] = game
	}
	return nil
}
