package scoring

import (
	"github.com/nbanima/pickem/internal/domain/picks"
	"github.com/nbanima/pickem/internal/domain/results"
)

// DailyScoreInput is one user's picks alongside the current published
// outcomes for the slate.
type DailyScoreInput struct {
	Picks   picks.UserPicks
	Results results.Set
}

// HitCounts tallies correct picks per category.
type HitCounts struct {
	Teams      int
	Players    int
	Highlights int
	Total      int
}

// ScoreBreakdown is the freshly computed score for one user and one slate.
// It is never persisted; settlement turns it into a ledger delta.
type ScoreBreakdown struct {
	BasePoints  int
	Multiplier  int
	TotalPoints int
	Hits        HitCounts
}
