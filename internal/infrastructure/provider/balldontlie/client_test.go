package balldontlie

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nbanima/pickem/internal/domain/schedule"
	"github.com/nbanima/pickem/internal/domain/slate"
	"github.com/nbanima/pickem/internal/platform/logging"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(ClientConfig{
		BaseURL: server.URL,
		APIKey:  "test-key",
		Logger:  logging.NewNop(),
	})
}

func TestClient_GamesForDate(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/games" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("dates[]"); got != "2024-03-09" {
			t.Errorf("unexpected dates param: %s", got)
		}
		if got := r.Header.Get("Authorization"); got != "test-key" {
			t.Errorf("unexpected authorization header: %s", got)
		}
		w.Write([]byte(`{
			"data": [
				{
					"id": 101,
					"date": "2024-03-09",
					"status": "Final",
					"datetime": "2024-03-10T00:30:00Z",
					"home_team": {"id": 14, "abbreviation": "LAL"},
					"visitor_team": {"id": 2, "abbreviation": "BOS"},
					"home_team_score": 110,
					"visitor_team_score": 105
				},
				{
					"id": 102,
					"date": "2024-03-09",
					"status": "7:00 pm ET",
					"home_team": {"id": 8, "abbreviation": "DEN"},
					"visitor_team": {"id": 21, "abbreviation": "OKC"},
					"home_team_score": 0,
					"visitor_team_score": 0
				}
			],
			"meta": {"next_cursor": null}
		}`))
	})

	games, err := client.GamesForDate(context.Background(), slate.Date("2024-03-09"))
	if err != nil {
		t.Fatalf("GamesForDate error: %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("unexpected game count: got=%d want=2", len(games))
	}

	first := games[0]
	if first.ID != "bdl-game-101" || first.HomeTeamID != "bdl-team-14" || first.AwayTeamID != "bdl-team-2" {
		t.Fatalf("unexpected first game: %+v", first)
	}
	if first.Status != schedule.StatusFinal {
		t.Fatalf("unexpected first game status: %s", first.Status)
	}
	if first.StartsAt.Hour() != 0 || first.StartsAt.Minute() != 30 {
		t.Fatalf("unexpected tip-off: %s", first.StartsAt)
	}
	if games[1].Status != schedule.StatusScheduled {
		t.Fatalf("unexpected second game status: %s", games[1].Status)
	}
}

func TestClient_ResultsForDate_DerivesWinnersAndStandouts(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/games":
			w.Write([]byte(`{
				"data": [
					{
						"id": 101,
						"status": "Final",
						"home_team": {"id": 14},
						"visitor_team": {"id": 2},
						"home_team_score": 105,
						"visitor_team_score": 110
					},
					{
						"id": 102,
						"status": "Half",
						"home_team": {"id": 8},
						"visitor_team": {"id": 21},
						"home_team_score": 50,
						"visitor_team_score": 48
					}
				],
				"meta": {"next_cursor": null}
			}`))
		case "/stats":
			w.Write([]byte(`{
				"data": [
					{"player": {"id": 7}, "game": {"id": 101}, "pts": 38, "reb": 6, "ast": 4},
					{"player": {"id": 9}, "game": {"id": 101}, "pts": 22, "reb": 14, "ast": 11},
					{"player": {"id": 5}, "game": {"id": 102}, "pts": 30, "reb": 10, "ast": 9}
				],
				"meta": {"next_cursor": null}
			}`))
		default:
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
	})

	set, err := client.ResultsForDate(context.Background(), slate.Date("2024-03-09"))
	if err != nil {
		t.Fatalf("ResultsForDate error: %v", err)
	}

	if len(set.Teams) != 1 {
		t.Fatalf("unexpected team results: %+v", set.Teams)
	}
	if set.Teams[0].GameID != "bdl-game-101" || set.Teams[0].WinnerTeamID != "bdl-team-2" {
		t.Fatalf("unexpected winner: %+v", set.Teams[0])
	}

	// Only the final game contributes standouts; the in-progress one is
	// excluded entirely.
	if len(set.Players) != 3 {
		t.Fatalf("unexpected player results: %+v", set.Players)
	}
	byCategory := make(map[string]string, len(set.Players))
	for _, row := range set.Players {
		if row.GameID != "bdl-game-101" {
			t.Fatalf("standout from non-final game: %+v", row)
		}
		byCategory[row.Category] = row.PlayerID
	}
	if byCategory["points"] != "bdl-player-7" || byCategory["rebounds"] != "bdl-player-9" || byCategory["assists"] != "bdl-player-9" {
		t.Fatalf("unexpected standouts: %v", byCategory)
	}

	if len(set.Highlights) != 0 {
		t.Fatalf("provider must not emit highlights: %+v", set.Highlights)
	}
}

func TestClient_FetchGamesPaginates(t *testing.T) {
	t.Parallel()

	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Query().Get("cursor") == "" {
			w.Write([]byte(`{"data": [{"id": 1, "status": "Final", "home_team": {"id": 1}, "visitor_team": {"id": 2}, "home_team_score": 1, "visitor_team_score": 0}], "meta": {"next_cursor": 25}}`))
			return
		}
		w.Write([]byte(`{"data": [{"id": 2, "status": "Final", "home_team": {"id": 3}, "visitor_team": {"id": 4}, "home_team_score": 0, "visitor_team_score": 1}], "meta": {"next_cursor": null}}`))
	})

	games, err := client.fetchGames(context.Background(), slate.Date("2024-03-09"))
	if err != nil {
		t.Fatalf("fetchGames error: %v", err)
	}
	if calls != 2 {
		t.Fatalf("unexpected call count: got=%d want=2", calls)
	}
	if len(games) != 2 || games[0].ID != 1 || games[1].ID != 2 {
		t.Fatalf("unexpected games: %+v", games)
	}
}

func TestClient_ServerErrorIsReported(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	})

	if _, err := client.GamesForDate(context.Background(), slate.Date("2024-03-09")); err == nil {
		t.Fatal("expected error from 502 response")
	}
}
