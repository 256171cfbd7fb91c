package schedule

import (
	"time"

	"github.com/nbanima/pickem/internal/domain/slate"
)

// Game is one scheduled matchup on a slate. StartsAt is the absolute tip-off
// instant, never a naive local time.
type Game struct {
	ID         string
	SlateDate  slate.Date
	HomeTeamID string
	AwayTeamID string
	StartsAt   time.Time
	Status     string
}

const (
	StatusScheduled = "scheduled"
	StatusFinal     = "final"
)

// EarliestTipOff returns the first scheduled start among the games, used to
// derive the Sunday lock threshold.
func EarliestTipOff(games []Game) (time.Time, bool) {
	earliest := time.Time{}
	for _, game := range games {
		if game.StartsAt.IsZero() {
			continue
		}
		if earliest.IsZero() || game.StartsAt.Before(earliest) {
			earliest = game.StartsAt
		}
	}
	if earliest.IsZero() {
		return time.Time{}, false
	}
	return earliest, true
}
