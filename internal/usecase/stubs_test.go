package usecase

import (
	"context"
	"sync"
	"testing"

	"github.com/nbanima/pickem/internal/domain/account"
	"github.com/nbanima/pickem/internal/domain/ledger"
	"github.com/nbanima/pickem/internal/domain/picks"
	"github.com/nbanima/pickem/internal/domain/results"
	"github.com/nbanima/pickem/internal/domain/schedule"
	"github.com/nbanima/pickem/internal/domain/slate"
)

func mustDate(t *testing.T, raw string) slate.Date {
	t.Helper()
	date, err := slate.ParseDate(raw)
	if err != nil {
		t.Fatalf("parse date %q: %v", raw, err)
	}
	return date
}

type stubPicksRepository struct {
	bySlate    map[slate.Date][]picks.UserPicks
	errBySlate map[slate.Date]error
}

func (r *stubPicksRepository) ListBySlate(_ context.Context, date slate.Date) ([]picks.UserPicks, error) {
	if err := r.errBySlate[date]; err != nil {
		return nil, err
	}
	return r.bySlate[date], nil
}

func (r *stubPicksRepository) ListByUserAndSlate(_ context.Context, userID string, date slate.Date) (picks.UserPicks, error) {
	if err := r.errBySlate[date]; err != nil {
		return picks.UserPicks{}, err
	}
	for _, set := range r.bySlate[date] {
		if set.UserID == userID {
			return set, nil
		}
	}
	return picks.UserPicks{UserID: userID}, nil
}

type stubResultsRepository struct {
	teams      []results.TeamResult
	players    []results.PlayerResult
	highlights map[slate.Date][]results.HighlightResult

	upsertedTeams      []results.TeamResult
	upsertedPlayers    []results.PlayerResult
	upsertedHighlights map[slate.Date][]results.HighlightResult
}

func (r *stubResultsRepository) ListTeamResultsByGames(_ context.Context, gameIDs []string) ([]results.TeamResult, error) {
	wanted := make(map[string]struct{}, len(gameIDs))
	for _, id := range gameIDs {
		wanted[id] = struct{}{}
	}
	out := make([]results.TeamResult, 0, len(r.teams))
	for _, row := range r.teams {
		if _, ok := wanted[row.GameID]; ok {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *stubResultsRepository) ListPlayerResultsByGames(_ context.Context, gameIDs []string) ([]results.PlayerResult, error) {
	wanted := make(map[string]struct{}, len(gameIDs))
	for _, id := range gameIDs {
		wanted[id] = struct{}{}
	}
	out := make([]results.PlayerResult, 0, len(r.players))
	for _, row := range r.players {
		if _, ok := wanted[row.GameID]; ok {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *stubResultsRepository) ListHighlightResultsBySlate(_ context.Context, date slate.Date) ([]results.HighlightResult, error) {
	return r.highlights[date], nil
}

func (r *stubResultsRepository) UpsertTeamResult(_ context.Context, result results.TeamResult) error {
	r.upsertedTeams = append(r.upsertedTeams, result)
	return nil
}

func (r *stubResultsRepository) UpsertPlayerResult(_ context.Context, result results.PlayerResult) error {
	r.upsertedPlayers = append(r.upsertedPlayers, result)
	return nil
}

func (r *stubResultsRepository) UpsertHighlightResults(_ context.Context, date slate.Date, rows []results.HighlightResult) error {
	if r.upsertedHighlights == nil {
		r.upsertedHighlights = make(map[slate.Date][]results.HighlightResult)
	}
	r.upsertedHighlights[date] = rows
	return nil
}

type stubScheduleRepository struct {
	bySlate  map[slate.Date][]schedule.Game
	upserted [][]schedule.Game
}

func (r *stubScheduleRepository) ListBySlate(_ context.Context, date slate.Date) ([]schedule.Game, error) {
	return r.bySlate[date], nil
}

func (r *stubScheduleRepository) UpsertGames(_ context.Context, games []schedule.Game) error {
	r.upserted = append(r.upserted, games)
	return nil
}

type stubAccountRepository struct {
	mu       sync.Mutex
	accounts map[string]account.Account
}

func newStubAccountRepository(accounts ...account.Account) *stubAccountRepository {
	byID := make(map[string]account.Account, len(accounts))
	for _, acct := range accounts {
		byID[acct.ID] = acct
	}
	return &stubAccountRepository{accounts: byID}
}

func (r *stubAccountRepository) ListByIDs(_ context.Context, ids []string) ([]account.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]account.Account, 0, len(ids))
	for _, id := range ids {
		if acct, ok := r.accounts[id]; ok {
			out = append(out, acct)
		}
	}
	return out, nil
}

func (r *stubAccountRepository) balance(id string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.accounts[id].Balance
}

// stubLedgerRepository keeps entries per encoded reason and writes balances
// through to the account stub, mirroring how the postgres repository updates
// both tables in one transaction.
type stubLedgerRepository struct {
	mu       sync.Mutex
	entries  map[string][]ledger.Entry
	accounts *stubAccountRepository
	applyErr error
	applies  int
}

func newStubLedgerRepository(accounts *stubAccountRepository) *stubLedgerRepository {
	return &stubLedgerRepository{
		entries:  make(map[string][]ledger.Entry),
		accounts: accounts,
	}
}

func (r *stubLedgerRepository) ListDeltasByReason(_ context.Context, reason ledger.Reason) ([]ledger.UserDelta, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
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

func (r *stubLedgerRepository) SumDeltasBySlateRange(_ context.Context, kind ledger.ReasonKind, from, to slate.Date) ([]ledger.UserTotal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
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

func (r *stubLedgerRepository) ApplySettlement(_ context.Context, reason ledger.Reason, entries []ledger.Entry, balances map[string]int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.applyErr != nil {
		return r.applyErr
	}
	r.applies++
	r.entries[reason.Encode()] = append([]ledger.Entry(nil), entries...)

	if r.accounts != nil {
		r.accounts.mu.Lock()
		for userID, balance := range balances {
			acct := r.accounts.accounts[userID]
			acct.ID = userID
			acct.Balance = balance
			r.accounts.accounts[userID] = acct
		}
		r.accounts.mu.Unlock()
	}
	return nil
}

func (r *stubLedgerRepository) entriesForReason(reason ledger.Reason) []ledger.Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ledger.Entry(nil), r.entries[reason.Encode()]...)
}

func (r *stubLedgerRepository) seed(reason ledger.Reason, entries ...ledger.Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[reason.Encode()] = append(r.entries[reason.Encode()], entries...)
}
