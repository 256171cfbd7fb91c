package memory

import (
	"context"
	"sync"

	"github.com/nbanima/pickem/internal/domain/picks"
	"github.com/nbanima/pickem/internal/domain/slate"
)

type PicksRepository struct {
	mu      sync.RWMutex
	bySlate map[slate.Date][]picks.UserPicks
}

func NewPicksRepository(sets []picks.UserPicks) *PicksRepository {
	repo := &PicksRepository{bySlate: make(map[slate.Date][]picks.UserPicks)}
	for _, set := range sets {
		date := slateOfPicks(set)
		if date == "" {
			continue
		}
		repo.bySlate[date] = append(repo.bySlate[date], clonePicks(set))
	}
	return repo
}

func (r *PicksRepository) ListBySlate(_ context.Context, date slate.Date) ([]picks.UserPicks, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := r.bySlate[date]
	out := make([]picks.UserPicks, 0, len(rows))
	for _, set := range rows {
		out = append(out, clonePicks(set))
	}
	return out, nil
}

func (r *PicksRepository) ListByUserAndSlate(_ context.Context, userID string, date slate.Date) (picks.UserPicks, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, set := range r.bySlate[date] {
		if set.UserID == userID {
			return clonePicks(set), nil
		}
	}
	return picks.UserPicks{UserID: userID}, nil
}

// ReplaceUserPicks swaps one user's picks for a slate, used by seeds and
// tests; the engine itself never writes picks.
func (r *PicksRepository) ReplaceUserPicks(_ context.Context, set picks.UserPicks) error {
	date := slateOfPicks(set)
	if date == "" {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rows := r.bySlate[date]
	for i, existing := range rows {
		if existing.UserID == set.UserID {
			rows[i] = clonePicks(set)
			return nil
		}
	}
	r.bySlate[date] = append(rows, clonePicks(set))
	return nil
}

func slateOfPicks(set picks.UserPicks) slate.Date {
	if len(set.Teams) > 0 {
		return set.Teams[0].SlateDate
	}
	if len(set.Players) > 0 {
		return set.Players[0].SlateDate
	}
	if len(set.Highlights) > 0 {
		return set.Highlights[0].SlateDate
	}
	return ""
}

func clonePicks(set picks.UserPicks) picks.UserPicks {
	out := picks.UserPicks{UserID: set.UserID}
	out.Teams = append(out.Teams, set.Teams...)
	out.Players = append(out.Players, set.Players...)
	out.Highlights = append(out.Highlights, set.Highlights...)
	return out
}
