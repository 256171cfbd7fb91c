package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/nbanima/pickem/internal/domain/account"
	qb "github.com/nbanima/pickem/internal/platform/querybuilder"
)

type accountTableModel struct {
	ID          string `db:"id"`
	DisplayName string `db:"display_name"`
	Balance     int    `db:"balance"`
}

type AccountRepository struct {
	db *sqlx.DB
}

func NewAccountRepository(db *sqlx.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) ListByIDs(ctx context.Context, ids []string) ([]account.Account, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := qb.Select("id", "display_name", "balance").
		From("accounts").
		Where(qb.In("id", anyStrings(ids))).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list accounts query: %w", err)
	}

	var rows []accountTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	out := make([]account.Account, 0, len(rows))
	for _, row := range rows {
		out = append(out, account.Account{ID: row.ID, DisplayName: row.DisplayName, Balance: row.Balance})
	}
	return out, nil
}
