package balldontlie

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/nbanima/pickem/internal/domain/results"
	"github.com/nbanima/pickem/internal/domain/schedule"
	"github.com/nbanima/pickem/internal/domain/slate"
)

type gamesEnvelope struct {
	Data []gamePayload `json:"data"`
	Meta metaPayload   `json:"meta"`
}

type gamePayload struct {
	ID               int64       `json:"id"`
	Date             string      `json:"date"`
	Status           string      `json:"status"`
	HomeTeam         teamPayload `json:"home_team"`
	VisitorTeam      teamPayload `json:"visitor_team"`
	HomeTeamScore    int         `json:"home_team_score"`
	VisitorTeamScore int         `json:"visitor_team_score"`
	DatetimeUTC      string      `json:"datetime"`
}

type teamPayload struct {
	ID           int64  `json:"id"`
	Abbreviation string `json:"abbreviation"`
}

type statsEnvelope struct {
	Data []statPayload `json:"data"`
	Meta metaPayload   `json:"meta"`
}

type statPayload struct {
	Player   playerPayload `json:"player"`
	Game     gameRef       `json:"game"`
	Points   int           `json:"pts"`
	Rebounds int           `json:"reb"`
	Assists  int           `json:"ast"`
}

type playerPayload struct {
	ID int64 `json:"id"`
}

type gameRef struct {
	ID int64 `json:"id"`
}

type metaPayload struct {
	NextCursor *int64 `json:"next_cursor"`
}

// GamesForDate lists the provider's schedule for one slate.
func (c *Client) GamesForDate(ctx context.Context, date slate.Date) ([]schedule.Game, error) {
	payloads, err := c.fetchGames(ctx, date)
	if err != nil {
		return nil, err
	}

	start, _ := date.BoundsUTC()
	out := make([]schedule.Game, 0, len(payloads))
	for _, payload := range payloads {
		game := schedule.Game{
			ID:         providerGameID(payload.ID),
			SlateDate:  date,
			HomeTeamID: providerTeamID(payload.HomeTeam.ID),
			AwayTeamID: providerTeamID(payload.VisitorTeam.ID),
			StartsAt:   start,
			Status:     schedule.StatusScheduled,
		}
		if parsed, ok := parseGameTime(payload.DatetimeUTC); ok {
			game.StartsAt = parsed
		}
		if isFinalStatus(payload.Status) {
			game.Status = schedule.StatusFinal
		}
		out = append(out, game)
	}
	return out, nil
}

// ResultsForDate derives publishable outcomes for the slate: winners from
// final scores and per-game standouts from box-score leaders. Games that are
// not final yet yield nothing. Highlights are never returned here.
func (c *Client) ResultsForDate(ctx context.Context, date slate.Date) (results.Set, error) {
	games, err := c.fetchGames(ctx, date)
	if err != nil {
		return results.Set{}, err
	}

	var set results.Set
	finalGames := make(map[int64]struct{}, len(games))
	for _, game := range games {
		if !isFinalStatus(game.Status) || game.HomeTeamScore == game.VisitorTeamScore {
			continue
		}
		finalGames[game.ID] = struct{}{}
		winner := game.HomeTeam
		if game.VisitorTeamScore > game.HomeTeamScore {
			winner = game.VisitorTeam
		}
		set.Teams = append(set.Teams, results.TeamResult{
			GameID:       providerGameID(game.ID),
			WinnerTeamID: providerTeamID(winner.ID),
		})
	}
	if len(finalGames) == 0 {
		return results.Set{}, nil
	}

	stats, err := c.fetchStats(ctx, date)
	if err != nil {
		return results.Set{}, err
	}
	set.Players = standoutsFromStats(stats, finalGames)
	return set, nil
}

func (c *Client) fetchGames(ctx context.Context, date slate.Date) ([]gamePayload, error) {
	out := make([]gamePayload, 0, 16)
	var cursor *int64
	for {
		query := url.Values{}
		query.Set("dates[]", string(date))
		query.Set("per_page", strconv.Itoa(maxPageSize))
		if cursor != nil {
			query.Set("cursor", strconv.FormatInt(*cursor, 10))
		}

		var envelope gamesEnvelope
		if err := c.doJSON(ctx, "/games", query, &envelope); err != nil {
			return nil, fmt.Errorf("fetch games for %s: %w", date, err)
		}
		out = append(out, envelope.Data...)
		if envelope.Meta.NextCursor == nil {
			return out, nil
		}
		cursor = envelope.Meta.NextCursor
	}
}

func (c *Client) fetchStats(ctx context.Context, date slate.Date) ([]statPayload, error) {
	out := make([]statPayload, 0, 256)
	var cursor *int64
	for {
		query := url.Values{}
		query.Set("dates[]", string(date))
		query.Set("per_page", strconv.Itoa(maxPageSize))
		if cursor != nil {
			query.Set("cursor", strconv.FormatInt(*cursor, 10))
		}

		var envelope statsEnvelope
		if err := c.doJSON(ctx, "/stats", query, &envelope); err != nil {
			return nil, fmt.Errorf("fetch stats for %s: %w", date, err)
		}
		out = append(out, envelope.Data...)
		if envelope.Meta.NextCursor == nil {
			return out, nil
		}
		cursor = envelope.Meta.NextCursor
	}
}

// standoutCategories maps each scored category to its box-score stat.
var standoutCategories = []struct {
	name  string
	value func(statPayload) int
}{
	{name: "points", value: func(s statPayload) int { return s.Points }},
	{name: "rebounds", value: func(s statPayload) int { return s.Rebounds }},
	{name: "assists", value: func(s statPayload) int { return s.Assists }},
}

func standoutsFromStats(stats []statPayload, finalGames map[int64]struct{}) []results.PlayerResult {
	type leader struct {
		playerID int64
		value    int
	}
	leaders := make(map[int64]map[string]leader)

	for _, stat := range stats {
		if _, ok := finalGames[stat.Game.ID]; !ok {
			continue
		}
		byCategory, ok := leaders[stat.Game.ID]
		if !ok {
			byCategory = make(map[string]leader, len(standoutCategories))
			leaders[stat.Game.ID] = byCategory
		}
		for _, category := range standoutCategories {
			value := category.value(stat)
			if value <= 0 {
				continue
			}
			current, exists := byCategory[category.name]
			// Ties go to the lower player id so repeated syncs stay stable.
			if !exists || value > current.value || (value == current.value && stat.Player.ID < current.playerID) {
				byCategory[category.name] = leader{playerID: stat.Player.ID, value: value}
			}
		}
	}

	out := make([]results.PlayerResult, 0, len(leaders)*len(standoutCategories))
	for gameID, byCategory := range leaders {
		for name, row := range byCategory {
			out = append(out, results.PlayerResult{
				GameID:   providerGameID(gameID),
				Category: name,
				PlayerID: providerPlayerID(row.playerID),
			})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].GameID != out[j].GameID {
			return out[i].GameID < out[j].GameID
		}
		return out[i].Category < out[j].Category
	})
	return out
}

func providerGameID(id int64) string {
	return "bdl-game-" + strconv.FormatInt(id, 10)
}

func providerTeamID(id int64) string {
	return "bdl-team-" + strconv.FormatInt(id, 10)
}

func providerPlayerID(id int64) string {
	return "bdl-player-" + strconv.FormatInt(id, 10)
}

func isFinalStatus(status string) bool {
	return status == "Final"
}

func parseGameTime(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false
	}
	return parsed.UTC(), true
}
