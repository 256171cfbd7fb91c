package postgres

type teamPickTableModel struct {
	UserID         string `db:"user_id"`
	SlateDate      string `db:"slate_date"`
	GameID         string `db:"game_id"`
	SelectedTeamID string `db:"selected_team_id"`
}

type playerPickTableModel struct {
	UserID    string `db:"user_id"`
	SlateDate string `db:"slate_date"`
	GameID    string `db:"game_id"`
	Category  string `db:"category"`
	PlayerID  string `db:"player_id"`
}

type highlightPickTableModel struct {
	UserID    string `db:"user_id"`
	SlateDate string `db:"slate_date"`
	PlayerID  string `db:"player_id"`
	Rank      int    `db:"rank"`
}
