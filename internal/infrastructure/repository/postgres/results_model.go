package postgres

type teamResultTableModel struct {
	GameID       string `db:"game_id"`
	WinnerTeamID string `db:"winner_team_id"`
}

type playerResultTableModel struct {
	GameID   string `db:"game_id"`
	Category string `db:"category"`
	PlayerID string `db:"player_id"`
}

type highlightResultTableModel struct {
	SlateDate string `db:"slate_date"`
	PlayerID  string `db:"player_id"`
	Rank      int    `db:"rank"`
}
