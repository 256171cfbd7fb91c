package scoring

import (
	"testing"

	"github.com/nbanima/pickem/internal/domain/picks"
	"github.com/nbanima/pickem/internal/domain/results"
)

func TestComputeDailyScore_MixedCategories(t *testing.T) {
	t.Parallel()

	in := DailyScoreInput{
		Picks: picks.UserPicks{
			UserID: "user-1",
			Teams: []picks.TeamPick{
				{GameID: "g1", SelectedTeamID: "lakers"},
				{GameID: "g2", SelectedTeamID: "bulls"},
			},
			Players: []picks.PlayerPick{
				{GameID: "g1", Category: "points", PlayerID: "p1"},
			},
			Highlights: []picks.HighlightPick{
				{PlayerID: "p9", Rank: 1},
			},
		},
		Results: results.Set{
			Teams: []results.TeamResult{
				{GameID: "g1", WinnerTeamID: "lakers"},
				{GameID: "g2", WinnerTeamID: "heat"},
			},
			Players: []results.PlayerResult{
				{GameID: "g1", Category: "points", PlayerID: "p1"},
			},
			Highlights: []results.HighlightResult{
				{PlayerID: "p9", Rank: 3},
			},
		},
	}

	got := ComputeDailyScore(in)

	// 1 team hit (30) + 1 player hit (50) + highlight at authoritative rank 3 (80).
	if got.BasePoints != 160 {
		t.Fatalf("unexpected base points: got=%d want=160", got.BasePoints)
	}
	if got.Hits.Total != 3 {
		t.Fatalf("unexpected total hits: got=%d want=3", got.Hits.Total)
	}
	if got.Multiplier != 1 {
		t.Fatalf("unexpected multiplier: got=%d want=1", got.Multiplier)
	}
	if got.TotalPoints != 160 {
		t.Fatalf("unexpected total points: got=%d want=160", got.TotalPoints)
	}
}

func TestComputeDailyScore_HighlightPaysResultRankNotClaimedRank(t *testing.T) {
	t.Parallel()

	in := DailyScoreInput{
		Picks: picks.UserPicks{
			Highlights: []picks.HighlightPick{
				{PlayerID: "p1", Rank: 10}, // claimed last place
				{PlayerID: "p2", Rank: 1},  // claimed first, not in results
			},
		},
		Results: results.Set{
			Highlights: []results.HighlightResult{
				{PlayerID: "p1", Rank: 1},
			},
		},
	}

	got := ComputeDailyScore(in)
	if got.BasePoints != 100 {
		t.Fatalf("payout follows the result's rank: got=%d want=100", got.BasePoints)
	}
	if got.Hits.Highlights != 1 {
		t.Fatalf("unexpected highlight hits: got=%d want=1", got.Hits.Highlights)
	}
}

func TestComputeDailyScore_MissingResultsAreNonMatches(t *testing.T) {
	t.Parallel()

	in := DailyScoreInput{
		Picks: picks.UserPicks{
			Teams:   []picks.TeamPick{{GameID: "g1", SelectedTeamID: "lakers"}},
			Players: []picks.PlayerPick{{GameID: "g1", Category: "rebounds", PlayerID: "p1"}},
		},
		Results: results.Set{
			// Winner published for a different game, unknown category row.
			Teams:   []results.TeamResult{{GameID: "g2", WinnerTeamID: "lakers"}},
			Players: []results.PlayerResult{{GameID: "g1", Category: "triple-doubles", PlayerID: "p1"}},
		},
	}

	got := ComputeDailyScore(in)
	if got.TotalPoints != 0 {
		t.Fatalf("missing results must score zero: got=%d", got.TotalPoints)
	}
	if got.Hits.Total != 0 {
		t.Fatalf("unexpected hits: got=%d want=0", got.Hits.Total)
	}
}

func TestComputeDailyScore_MultiplierThresholds(t *testing.T) {
	t.Parallel()

	buildInput := func(teamHits int) DailyScoreInput {
		in := DailyScoreInput{}
		for i := 0; i < teamHits; i++ {
			gameID := "g" + string(rune('a'+i))
			in.Picks.Teams = append(in.Picks.Teams, picks.TeamPick{GameID: gameID, SelectedTeamID: "w"})
			in.Results.Teams = append(in.Results.Teams, results.TeamResult{GameID: gameID, WinnerTeamID: "w"})
		}
		return in
	}

	cases := []struct {
		hits           int
		wantMultiplier int
	}{
		{hits: 4, wantMultiplier: 1},
		{hits: 5, wantMultiplier: 2},
		{hits: 9, wantMultiplier: 2},
		{hits: 10, wantMultiplier: 3},
	}
	for _, tc := range cases {
		got := ComputeDailyScore(buildInput(tc.hits))
		if got.Multiplier != tc.wantMultiplier {
			t.Fatalf("multiplier for %d hits: got=%d want=%d", tc.hits, got.Multiplier, tc.wantMultiplier)
		}
		if want := tc.hits * TeamHitPoints * tc.wantMultiplier; got.TotalPoints != want {
			t.Fatalf("total for %d hits: got=%d want=%d", tc.hits, got.TotalPoints, want)
		}
	}
}

func TestHighlightRankPoints_OutOfRange(t *testing.T) {
	t.Parallel()

	if got := HighlightRankPoints(0); got != 0 {
		t.Fatalf("rank 0: got=%d want=0", got)
	}
	if got := HighlightRankPoints(11); got != 0 {
		t.Fatalf("rank 11: got=%d want=0", got)
	}
	if got := HighlightRankPoints(1); got != 100 {
		t.Fatalf("rank 1: got=%d want=100", got)
	}
	if got := HighlightRankPoints(10); got != 10 {
		t.Fatalf("rank 10: got=%d want=10", got)
	}
}
