package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/nbanima/pickem/internal/domain/schedule"
	"github.com/nbanima/pickem/internal/domain/slate"
	qb "github.com/nbanima/pickem/internal/platform/querybuilder"
)

type ScheduleRepository struct {
	db *sqlx.DB
}

func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

func (r *ScheduleRepository) ListBySlate(ctx context.Context, date slate.Date) ([]schedule.Game, error) {
	query, args, err := qb.Select("id", "slate_date", "home_team_id", "away_team_id", "starts_at", "status").
		From("games").
		Where(qb.Eq("slate_date", string(date))).
		OrderBy("starts_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list games query: %w", err)
	}

	var rows []gameTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}

	out := make([]schedule.Game, 0, len(rows))
	for _, row := range rows {
		out = append(out, schedule.Game{
			ID:         row.ID,
			SlateDate:  slate.Date(row.SlateDate),
			HomeTeamID: row.HomeTeamID,
			AwayTeamID: row.AwayTeamID,
			StartsAt:   row.StartsAt.UTC(),
			Status:     row.Status,
		})
	}
	return out, nil
}

func (r *ScheduleRepository) UpsertGames(ctx context.Context, games []schedule.Game) error {
	if len(games) == 0 {
		return nil
	}

	models := make([]gameTableModel, 0, len(games))
	for _, game := range games {
		models = append(models, gameTableModel{
			ID:         game.ID,
			SlateDate:  string(game.SlateDate),
			HomeTeamID: game.HomeTeamID,
			AwayTeamID: game.AwayTeamID,
			StartsAt:   game.StartsAt.UTC(),
			Status:     game.Status,
		})
	}

	query, args, err := qb.InsertModel("games", models,
		"ON CONFLICT (id) DO UPDATE SET slate_date = EXCLUDED.slate_date, home_team_id = EXCLUDED.home_team_id, away_team_id = EXCLUDED.away_team_id, starts_at = EXCLUDED.starts_at, status = EXCLUDED.status")
	if err != nil {
		return fmt.Errorf("build upsert games query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert games: %w", err)
	}
	return nil
}
