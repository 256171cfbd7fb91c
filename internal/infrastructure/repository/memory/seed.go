package memory

import (
	"time"

	"github.com/nbanima/pickem/internal/domain/account"
	"github.com/nbanima/pickem/internal/domain/picks"
	"github.com/nbanima/pickem/internal/domain/schedule"
	"github.com/nbanima/pickem/internal/domain/slate"
)

// Seed data covers one already-played slate so a fresh memory-backed process
// can settle something immediately.
const SeedSlateDate = slate.Date("2024-03-09")

func SeedAccounts() []account.Account {
	return []account.Account{
		{ID: "user-ari", DisplayName: "Ari", Balance: 0},
		{ID: "user-bima", DisplayName: "Bima", Balance: 0},
		{ID: "user-citra", DisplayName: "Citra", Balance: 0},
	}
}

func SeedGames() []schedule.Game {
	return []schedule.Game{
		{
			ID:         "game-lal-bos-20240309",
			SlateDate:  SeedSlateDate,
			HomeTeamID: "team-lal",
			AwayTeamID: "team-bos",
			StartsAt:   time.Date(2024, time.March, 10, 0, 30, 0, 0, time.UTC),
			Status:     schedule.StatusFinal,
		},
		{
			ID:         "game-den-okc-20240309",
			SlateDate:  SeedSlateDate,
			HomeTeamID: "team-den",
			AwayTeamID: "team-okc",
			StartsAt:   time.Date(2024, time.March, 10, 2, 0, 0, 0, time.UTC),
			Status:     schedule.StatusFinal,
		},
	}
}

func SeedPicks() []picks.UserPicks {
	return []picks.UserPicks{
		{
			UserID: "user-ari",
			Teams: []picks.TeamPick{
				{UserID: "user-ari", SlateDate: SeedSlateDate, GameID: "game-lal-bos-20240309", SelectedTeamID: "team-lal"},
				{UserID: "user-ari", SlateDate: SeedSlateDate, GameID: "game-den-okc-20240309", SelectedTeamID: "team-den"},
			},
			Players: []picks.PlayerPick{
				{UserID: "user-ari", SlateDate: SeedSlateDate, GameID: "game-den-okc-20240309", Category: "points", PlayerID: "player-jokic"},
			},
			Highlights: []picks.HighlightPick{
				{UserID: "user-ari", SlateDate: SeedSlateDate, PlayerID: "player-gordon", Rank: 2},
			},
		},
		{
			UserID: "user-bima",
			Teams: []picks.TeamPick{
				{UserID: "user-bima", SlateDate: SeedSlateDate, GameID: "game-lal-bos-20240309", SelectedTeamID: "team-bos"},
			},
			Highlights: []picks.HighlightPick{
				{UserID: "user-bima", SlateDate: SeedSlateDate, PlayerID: "player-wemby", Rank: 1},
			},
		},
		{
			UserID: "user-citra",
			Players: []picks.PlayerPick{
				{UserID: "user-citra", SlateDate: SeedSlateDate, GameID: "game-lal-bos-20240309", Category: "rebounds", PlayerID: "player-davis"},
			},
		},
	}
}
