package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/nbanima/pickem/internal/domain/results"
	"github.com/nbanima/pickem/internal/domain/slate"
	qb "github.com/nbanima/pickem/internal/platform/querybuilder"
)

type ResultsRepository struct {
	db *sqlx.DB
}

func NewResultsRepository(db *sqlx.DB) *ResultsRepository {
	return &ResultsRepository{db: db}
}

func (r *ResultsRepository) ListTeamResultsByGames(ctx context.Context, gameIDs []string) ([]results.TeamResult, error) {
	if len(gameIDs) == 0 {
		return nil, nil
	}

	query, args, err := qb.Select("game_id", "winner_team_id").
		From("results_team").
		Where(qb.In("game_id", anyStrings(gameIDs))).
		OrderBy("game_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list team results query: %w", err)
	}

	var rows []teamResultTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list team results: %w", err)
	}

	out := make([]results.TeamResult, 0, len(rows))
	for _, row := range rows {
		out = append(out, results.TeamResult{GameID: row.GameID, WinnerTeamID: row.WinnerTeamID})
	}
	return out, nil
}

func (r *ResultsRepository) ListPlayerResultsByGames(ctx context.Context, gameIDs []string) ([]results.PlayerResult, error) {
	if len(gameIDs) == 0 {
		return nil, nil
	}

	query, args, err := qb.Select("game_id", "category", "player_id").
		From("results_players").
		Where(qb.In("game_id", anyStrings(gameIDs))).
		OrderBy("game_id", "category").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list player results query: %w", err)
	}

	var rows []playerResultTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list player results: %w", err)
	}

	out := make([]results.PlayerResult, 0, len(rows))
	for _, row := range rows {
		out = append(out, results.PlayerResult{GameID: row.GameID, Category: row.Category, PlayerID: row.PlayerID})
	}
	return out, nil
}

func (r *ResultsRepository) ListHighlightResultsBySlate(ctx context.Context, date slate.Date) ([]results.HighlightResult, error) {
	query, args, err := qb.Select("slate_date", "player_id", "rank").
		From("results_highlights").
		Where(qb.Eq("slate_date", string(date))).
		OrderBy("rank").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list highlight results query: %w", err)
	}

	var rows []highlightResultTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list highlight results: %w", err)
	}

	out := make([]results.HighlightResult, 0, len(rows))
	for _, row := range rows {
		out = append(out, results.HighlightResult{SlateDate: slate.Date(row.SlateDate), PlayerID: row.PlayerID, Rank: row.Rank})
	}
	return out, nil
}

func (r *ResultsRepository) UpsertTeamResult(ctx context.Context, result results.TeamResult) error {
	query, args, err := qb.InsertModel("results_team", teamResultTableModel{
		GameID:       result.GameID,
		WinnerTeamID: result.WinnerTeamID,
	}, "ON CONFLICT (game_id) DO UPDATE SET winner_team_id = EXCLUDED.winner_team_id")
	if err != nil {
		return fmt.Errorf("build upsert team result query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert team result: %w", err)
	}
	return nil
}

func (r *ResultsRepository) UpsertPlayerResult(ctx context.Context, result results.PlayerResult) error {
	query, args, err := qb.InsertModel("results_players", playerResultTableModel{
		GameID:   result.GameID,
		Category: result.Category,
		PlayerID: result.PlayerID,
	}, "ON CONFLICT (game_id, category) DO UPDATE SET player_id = EXCLUDED.player_id")
	if err != nil {
		return fmt.Errorf("build upsert player result query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert player result: %w", err)
	}
	return nil
}

// UpsertHighlightResults replaces the slate's ranking wholesale inside one
// transaction; a partial ranking would corrupt highlight scoring.
func (r *ResultsRepository) UpsertHighlightResults(ctx context.Context, date slate.Date, rows []results.HighlightResult) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upsert highlight results tx: %w", err)
	}
	defer tx.Rollback()

	query, args, err := qb.DeleteFrom("results_highlights").
		Where(qb.Eq("slate_date", string(date))).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete highlight results query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete highlight results: %w", err)
	}

	if len(rows) > 0 {
		models := make([]highlightResultTableModel, 0, len(rows))
		for _, row := range rows {
			models = append(models, highlightResultTableModel{
				SlateDate: string(date),
				PlayerID:  row.PlayerID,
				Rank:      row.Rank,
			})
		}
		query, args, err = qb.InsertModel("results_highlights", models, "")
		if err != nil {
			return fmt.Errorf("build insert highlight results query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert highlight results: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert highlight results tx: %w", err)
	}
	return nil
}
