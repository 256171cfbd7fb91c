package scoring

// Point values and multiplier thresholds are the product contract: winners
// pay 30, standout players 50, highlight ranks pay 100 down to 10, and hot
// nights double or triple the base.
const (
	TeamHitPoints   = 30
	PlayerHitPoints = 50
)

var highlightRankPoints = [...]int{100, 90, 80, 70, 60, 50, 40, 30, 20, 10}

var multiplierThresholds = []struct {
	threshold  int
	multiplier int
}{
	{threshold: 10, multiplier: 3},
	{threshold: 5, multiplier: 2},
}

// HighlightRankPoints returns the payout for an authoritative highlight rank,
// zero for ranks outside the published 1..10 range.
func HighlightRankPoints(rank int) int {
	if rank < 1 || rank > len(highlightRankPoints) {
		return 0
	}
	return highlightRankPoints[rank-1]
}

func multiplierFor(totalHits int) int {
	for _, tier := range multiplierThresholds {
		if totalHits >= tier.threshold {
			return tier.multiplier
		}
	}
	return 1
}

// ComputeDailyScore scores one user's slate against the current published
// results. Pure and deterministic: missing results and unknown categories are
// non-matches worth zero, never errors, because results may lag picks.
func ComputeDailyScore(in DailyScoreInput) ScoreBreakdown {
	winnerByGame := make(map[string]string, len(in.Results.Teams))
	for _, result := range in.Results.Teams {
		winnerByGame[result.GameID] = result.WinnerTeamID
	}

	teamHits := 0
	for _, pick := range in.Picks.Teams {
		if winner, ok := winnerByGame[pick.GameID]; ok && winner == pick.SelectedTeamID {
			teamHits++
		}
	}

	standoutByGameCategory := make(map[string]string, len(in.Results.Players))
	for _, result := range in.Results.Players {
		standoutByGameCategory[result.GameID+":"+result.Category] = result.PlayerID
	}

	playerHits := 0
	for _, pick := range in.Picks.Players {
		if standout, ok := standoutByGameCategory[pick.GameID+":"+pick.Category]; ok && standout == pick.PlayerID {
			playerHits++
		}
	}

	// The result's rank decides the payout; the rank the user claimed when
	// picking is irrelevant.
	highlightPointsByPlayer := make(map[string]int, len(in.Results.Highlights))
	for _, result := range in.Results.Highlights {
		highlightPointsByPlayer[result.PlayerID] = HighlightRankPoints(result.Rank)
	}

	highlightHits := 0
	highlightPoints := 0
	for _, pick := range in.Picks.Highlights {
		points, ok := highlightPointsByPlayer[pick.PlayerID]
		if !ok {
			continue
		}
		highlightHits++
		highlightPoints += points
	}

	basePoints := teamHits*TeamHitPoints + playerHits*PlayerHitPoints + highlightPoints
	totalHits := teamHits + playerHits + highlightHits
	multiplier := multiplierFor(totalHits)

	return ScoreBreakdown{
		BasePoints:  basePoints,
		Multiplier:  multiplier,
		TotalPoints: basePoints * multiplier,
		Hits: HitCounts{
			Teams:      teamHits,
			Players:    playerHits,
			Highlights: highlightHits,
			Total:      totalHits,
		},
	}
}
