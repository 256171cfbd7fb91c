package memory

import (
	"context"
	"sync"

	"github.com/nbanima/pickem/internal/domain/account"
)

type AccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]account.Account
}

func NewAccountRepository(accounts []account.Account) *AccountRepository {
	repo := &AccountRepository{accounts: make(map[string]account.Account, len(accounts))}
	for _, acct := range accounts {
		repo.accounts[acct.ID] = acct
	}
	return repo
}

func (r *AccountRepository) ListByIDs(_ context.Context, ids []string) ([]account.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]account.Account, 0, len(ids))
	for _, id := range ids {
		if acct, ok := r.accounts[id]; ok {
			out = append(out, acct)
		}
	}
	return out, nil
}

// setBalance is the write hook the ledger repository uses so settlement's
// balance updates land in the same store the read path serves.
func (r *AccountRepository) setBalance(id string, balance int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	acct := r.accounts[id]
	acct.ID = id
	acct.Balance = balance
	r.accounts[id] = acct
}
