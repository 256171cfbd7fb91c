package postgres

import "time"

type gameTableModel struct {
	ID         string    `db:"id"`
	SlateDate  string    `db:"slate_date"`
	HomeTeamID string    `db:"home_team_id"`
	AwayTeamID string    `db:"away_team_id"`
	StartsAt   time.Time `db:"starts_at"`
	Status     string    `db:"status"`
}
