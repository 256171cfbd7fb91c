package results

import "github.com/nbanima/pickem/internal/domain/slate"

// TeamResult is the published winner of one game.
type TeamResult struct {
	GameID       string
	WinnerTeamID string
}

// PlayerResult is the published standout player for one game and category.
type PlayerResult struct {
	GameID   string
	Category string
	PlayerID string
}

// HighlightResult is one row of the nightly highlight ranking, rank 1 being
// the top play.
type HighlightResult struct {
	SlateDate slate.Date
	PlayerID  string
	Rank      int
}

// Set bundles every authoritative outcome relevant to scoring one slate.
// Results may be republished after corrections; settlement re-reads the
// current set on every run.
type Set struct {
	Teams      []TeamResult
	Players    []PlayerResult
	Highlights []HighlightResult
}
