package picks

import "github.com/nbanima/pickem/internal/domain/slate"

// TeamPick is a bet on the winner of one game.
type TeamPick struct {
	UserID         string
	SlateDate      slate.Date
	GameID         string
	SelectedTeamID string
}

// PlayerPick is a bet on the standout player of one game in one stat
// category (points, rebounds, assists, ...).
type PlayerPick struct {
	UserID    string
	SlateDate slate.Date
	GameID    string
	Category  string
	PlayerID  string
}

// HighlightPick is a bet that a player lands anywhere in the nightly
// highlight ranking. Rank is the user's claimed placement; scoring ignores it
// and pays by the authoritative rank.
type HighlightPick struct {
	UserID    string
	SlateDate slate.Date
	PlayerID  string
	Rank      int
}

// UserPicks groups one user's picks for a single slate.
type UserPicks struct {
	UserID     string
	Teams      []TeamPick
	Players    []PlayerPick
	Highlights []HighlightPick
}

// GameIDs collects the distinct game ids referenced by a set of user picks,
// in first-seen order.
func GameIDs(sets []UserPicks) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, set := range sets {
		for _, pick := range set.Teams {
			if pick.GameID == "" {
				continue
			}
			if _, ok := seen[pick.GameID]; ok {
				continue
			}
			seen[pick.GameID] = struct{}{}
			out = append(out, pick.GameID)
		}
		for _, pick := range set.Players {
			if pick.GameID == "" {
				continue
			}
			if _, ok := seen[pick.GameID]; ok {
				continue
			}
			seen[pick.GameID] = struct{}{}
			out = append(out, pick.GameID)
		}
	}
	return out
}
