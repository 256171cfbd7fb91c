package postgres

import "time"

type ledgerEntryInsertModel struct {
	UserID       string    `db:"user_id"`
	Delta        int       `db:"delta"`
	BalanceAfter int       `db:"balance_after"`
	Reason       string    `db:"reason"`
	ReasonKind   string    `db:"reason_kind"`
	SlateDate    string    `db:"slate_date"`
	CreatedAt    time.Time `db:"created_at"`
}

type userDeltaRowModel struct {
	UserID string `db:"user_id"`
	Delta  int    `db:"delta"`
}

type userTotalRowModel struct {
	UserID string `db:"user_id"`
	Total  int    `db:"total"`
}
