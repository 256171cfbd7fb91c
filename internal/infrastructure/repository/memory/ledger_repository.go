package memory

import (
	"context"
	"sync"

	"github.com/nbanima/pickem/internal/domain/ledger"
	"github.com/nbanima/pickem/internal/domain/slate"
)

// LedgerRepository stores entries keyed by encoded reason. ApplySettlement
// holds one lock across the delete, insert, and balance writes so readers
// never observe a half-applied settlement, matching the transaction the
// postgres repository uses.
type LedgerRepository struct {
	mu       sync.RWMutex
	entries  map[string][]ledger.Entry
	accounts *AccountRepository
}

func NewLedgerRepository(accounts *AccountRepository) *LedgerRepository {
	return &LedgerRepository{
		entries:  make(map[string][]ledger.Entry),
		accounts: accounts,
	}
}

func (r *LedgerRepository) ListDeltasByReason(_ context.Context, reason ledger.Reason) ([]ledger.UserDelta, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byUser := make(map[string]int)
	order := make([]string, 0)
	for _, entry := range r.entries[reason.Encode()] {
		if _, ok := byUser[entry.UserID]; !ok {
			order = append(order, entry.UserID)
		}
		byUser[entry.UserID] += entry.Delta
	}

	out := make([]ledger.UserDelta, 0, len(order))
	for _, userID := range order {
		out = append(out, ledger.UserDelta{UserID: userID, Delta: byUser[userID]})
	}
	return out, nil
}

func (r *LedgerRepository) SumDeltasBySlateRange(_ context.Context, kind ledger.ReasonKind, from, to slate.Date) ([]ledger.UserTotal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byUser := make(map[string]int)
	order := make([]string, 0)
	for raw, entries := range r.entries {
		reason, err := ledger.ParseReason(raw)
		if err != nil || reason.Kind != kind {
			continue
		}
		if reason.Slate.Before(from) || to.Before(reason.Slate) {
			continue
		}
		for _, entry := range entries {
			if _, ok := byUser[entry.UserID]; !ok {
				order = append(order, entry.UserID)
			}
			byUser[entry.UserID] += entry.Delta
		}
	}

	out := make([]ledger.UserTotal, 0, len(order))
	for _, userID := range order {
		out = append(out, ledger.UserTotal{UserID: userID, Total: byUser[userID]})
	}
	return out, nil
}

func (r *LedgerRepository) ApplySettlement(_ context.Context, reason ledger.Reason, entries []ledger.Entry, balances map[string]int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[reason.Encode()] = append([]ledger.Entry(nil), entries...)
	if r.accounts != nil {
		for userID, balance := range balances {
			r.accounts.setBalance(userID, balance)
		}
	}
	return nil
}
