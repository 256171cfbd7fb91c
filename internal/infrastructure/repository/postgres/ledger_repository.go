package postgres

import (
	"context"
	"fmt"
	"sort"

	"github.com/jmoiron/sqlx"

	"github.com/nbanima/pickem/internal/domain/ledger"
	"github.com/nbanima/pickem/internal/domain/slate"
	qb "github.com/nbanima/pickem/internal/platform/querybuilder"
)

// LedgerRepository persists ledger entries in points_ledger. The reason is
// stored both encoded (for exact replace-by-reason) and split into
// reason_kind + slate_date so week-range sums stay indexable.
type LedgerRepository struct {
	db *sqlx.DB
}

func NewLedgerRepository(db *sqlx.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

func (r *LedgerRepository) ListDeltasByReason(ctx context.Context, reason ledger.Reason) ([]ledger.UserDelta, error) {
	query, args, err := qb.Select("user_id", "SUM(delta) AS delta").
		From("points_ledger").
		Where(qb.Eq("reason", reason.Encode())).
		GroupBy("user_id").
		OrderBy("user_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list deltas by reason query: %w", err)
	}

	var rows []userDeltaRowModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list deltas by reason: %w", err)
	}

	out := make([]ledger.UserDelta, 0, len(rows))
	for _, row := range rows {
		out = append(out, ledger.UserDelta{UserID: row.UserID, Delta: row.Delta})
	}
	return out, nil
}

func (r *LedgerRepository) SumDeltasBySlateRange(ctx context.Context, kind ledger.ReasonKind, from, to slate.Date) ([]ledger.UserTotal, error) {
	query, args, err := qb.Select("user_id", "SUM(delta) AS total").
		From("points_ledger").
		Where(
			qb.Eq("reason_kind", string(kind)),
			qb.Gte("slate_date", string(from)),
			qb.Lte("slate_date", string(to)),
		).
		GroupBy("user_id").
		OrderBy("total DESC", "user_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build sum deltas by slate range query: %w", err)
	}

	var rows []userTotalRowModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("sum deltas by slate range: %w", err)
	}

	out := make([]ledger.UserTotal, 0, len(rows))
	for _, row := range rows {
		out = append(out, ledger.UserTotal{UserID: row.UserID, Total: row.Total})
	}
	return out, nil
}

func (r *LedgerRepository) ApplySettlement(ctx context.Context, reason ledger.Reason, entries []ledger.Entry, balances map[string]int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin settlement tx: %w", err)
	}
	defer tx.Rollback()

	query, args, err := qb.DeleteFrom("points_ledger").
		Where(qb.Eq("reason", reason.Encode())).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete settlement entries query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete settlement entries: %w", err)
	}

	if len(entries) > 0 {
		models := make([]ledgerEntryInsertModel, 0, len(entries))
		for _, entry := range entries {
			models = append(models, ledgerEntryInsertModel{
				UserID:       entry.UserID,
				Delta:        entry.Delta,
				BalanceAfter: entry.BalanceAfter,
				Reason:       entry.Reason.Encode(),
				ReasonKind:   string(entry.Reason.Kind),
				SlateDate:    string(entry.Reason.Slate),
				CreatedAt:    entry.CreatedAt,
			})
		}
		query, args, err = qb.InsertModel("points_ledger", models, "")
		if err != nil {
			return fmt.Errorf("build insert settlement entries query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert settlement entries: %w", err)
		}
	}

	// Deterministic order keeps concurrent settlements from deadlocking on
	// account row locks.
	userIDs := make([]string, 0, len(balances))
	for userID := range balances {
		userIDs = append(userIDs, userID)
	}
	sort.Strings(userIDs)
	for _, userID := range userIDs {
		query, args, err := qb.InsertInto("accounts").
			Columns("id", "display_name", "balance").
			Values(userID, "", balances[userID]).
			Suffix("ON CONFLICT (id) DO UPDATE SET balance = EXCLUDED.balance").
			ToSQL()
		if err != nil {
			return fmt.Errorf("build update balance query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("update balance for user %s: %w", userID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit settlement tx: %w", err)
	}
	return nil
}
