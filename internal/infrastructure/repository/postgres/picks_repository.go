package postgres

import (
	"context"
	"fmt"
	"sort"

	"github.com/jmoiron/sqlx"

	"github.com/nbanima/pickem/internal/domain/picks"
	"github.com/nbanima/pickem/internal/domain/slate"
	qb "github.com/nbanima/pickem/internal/platform/querybuilder"
)

type PicksRepository struct {
	db *sqlx.DB
}

func NewPicksRepository(db *sqlx.DB) *PicksRepository {
	return &PicksRepository{db: db}
}

func (r *PicksRepository) ListBySlate(ctx context.Context, date slate.Date) ([]picks.UserPicks, error) {
	conditions := []qb.Condition{qb.Eq("slate_date", string(date))}
	return r.list(ctx, conditions)
}

func (r *PicksRepository) ListByUserAndSlate(ctx context.Context, userID string, date slate.Date) (picks.UserPicks, error) {
	conditions := []qb.Condition{
		qb.Eq("user_id", userID),
		qb.Eq("slate_date", string(date)),
	}
	sets, err := r.list(ctx, conditions)
	if err != nil {
		return picks.UserPicks{}, err
	}
	for _, set := range sets {
		if set.UserID == userID {
			return set, nil
		}
	}
	return picks.UserPicks{UserID: userID}, nil
}

func (r *PicksRepository) list(ctx context.Context, conditions []qb.Condition) ([]picks.UserPicks, error) {
	byUser := make(map[string]*picks.UserPicks)
	order := make([]string, 0)
	userSet := func(userID string) *picks.UserPicks {
		if set, ok := byUser[userID]; ok {
			return set
		}
		set := &picks.UserPicks{UserID: userID}
		byUser[userID] = set
		order = append(order, userID)
		return set
	}

	query, args, err := qb.Select("user_id", "slate_date", "game_id", "selected_team_id").
		From("picks_teams").
		Where(conditions...).
		OrderBy("user_id", "game_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list team picks query: %w", err)
	}
	var teamRows []teamPickTableModel
	if err := r.db.SelectContext(ctx, &teamRows, query, args...); err != nil {
		return nil, fmt.Errorf("list team picks: %w", err)
	}
	for _, row := range teamRows {
		set := userSet(row.UserID)
		set.Teams = append(set.Teams, picks.TeamPick{
			UserID:         row.UserID,
			SlateDate:      slate.Date(row.SlateDate),
			GameID:         row.GameID,
			SelectedTeamID: row.SelectedTeamID,
		})
	}

	query, args, err = qb.Select("user_id", "slate_date", "game_id", "category", "player_id").
		From("picks_players").
		Where(conditions...).
		OrderBy("user_id", "game_id", "category").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list player picks query: %w", err)
	}
	var playerRows []playerPickTableModel
	if err := r.db.SelectContext(ctx, &playerRows, query, args...); err != nil {
		return nil, fmt.Errorf("list player picks: %w", err)
	}
	for _, row := range playerRows {
		set := userSet(row.UserID)
		set.Players = append(set.Players, picks.PlayerPick{
			UserID:    row.UserID,
			SlateDate: slate.Date(row.SlateDate),
			GameID:    row.GameID,
			Category:  row.Category,
			PlayerID:  row.PlayerID,
		})
	}

	query, args, err = qb.Select("user_id", "slate_date", "player_id", "rank").
		From("picks_highlights").
		Where(conditions...).
		OrderBy("user_id", "rank").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list highlight picks query: %w", err)
	}
	var highlightRows []highlightPickTableModel
	if err := r.db.SelectContext(ctx, &highlightRows, query, args...); err != nil {
		return nil, fmt.Errorf("list highlight picks: %w", err)
	}
	for _, row := range highlightRows {
		set := userSet(row.UserID)
		set.Highlights = append(set.Highlights, picks.HighlightPick{
			UserID:    row.UserID,
			SlateDate: slate.Date(row.SlateDate),
			PlayerID:  row.PlayerID,
			Rank:      row.Rank,
		})
	}

	sort.Strings(order)
	out := make([]picks.UserPicks, 0, len(order))
	for _, userID := range order {
		out = append(out, *byUser[userID])
	}
	return out, nil
}
