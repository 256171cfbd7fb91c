package memory

import (
	"context"
	"testing"

	"github.com/nbanima/pickem/internal/domain/ledger"
	"github.com/nbanima/pickem/internal/domain/picks"
)

func TestLedgerRepository_ApplySettlementWritesBalances(t *testing.T) {
	t.Parallel()

	accounts := NewAccountRepository(SeedAccounts())
	repo := NewLedgerRepository(accounts)

	reason := ledger.SettlementReason(SeedSlateDate)
	entries := []ledger.Entry{
		{UserID: "user-ari", Delta: 160, BalanceAfter: 160, Reason: reason},
	}
	balances := map[string]int{"user-ari": 160, "user-bima": 0}

	if err := repo.ApplySettlement(context.Background(), reason, entries, balances); err != nil {
		t.Fatalf("apply settlement: %v", err)
	}

	deltas, err := repo.ListDeltasByReason(context.Background(), reason)
	if err != nil {
		t.Fatalf("list deltas: %v", err)
	}
	if len(deltas) != 1 || deltas[0].UserID != "user-ari" || deltas[0].Delta != 160 {
		t.Fatalf("unexpected deltas: %+v", deltas)
	}

	got, err := accounts.ListByIDs(context.Background(), []string{"user-ari"})
	if err != nil {
		t.Fatalf("list accounts: %v", err)
	}
	if len(got) != 1 || got[0].Balance != 160 {
		t.Fatalf("unexpected balance: %+v", got)
	}

	// A re-run replaces the reason's rows instead of stacking them.
	if err := repo.ApplySettlement(context.Background(), reason, entries, balances); err != nil {
		t.Fatalf("apply settlement again: %v", err)
	}
	deltas, err = repo.ListDeltasByReason(context.Background(), reason)
	if err != nil {
		t.Fatalf("list deltas after rerun: %v", err)
	}
	if len(deltas) != 1 || deltas[0].Delta != 160 {
		t.Fatalf("unexpected deltas after rerun: %+v", deltas)
	}
}

func TestPicksRepository_ReplaceUserPicks(t *testing.T) {
	t.Parallel()

	repo := NewPicksRepository(SeedPicks())

	replacement := picks.UserPicks{
		UserID: "user-ari",
		Teams: []picks.TeamPick{
			{UserID: "user-ari", SlateDate: SeedSlateDate, GameID: "game-lal-bos-20240309", SelectedTeamID: "team-bos"},
		},
	}
	if err := repo.ReplaceUserPicks(context.Background(), replacement); err != nil {
		t.Fatalf("replace picks: %v", err)
	}

	got, err := repo.ListByUserAndSlate(context.Background(), "user-ari", SeedSlateDate)
	if err != nil {
		t.Fatalf("list picks: %v", err)
	}
	if len(got.Teams) != 1 || got.Teams[0].SelectedTeamID != "team-bos" {
		t.Fatalf("unexpected teams after replace: %+v", got.Teams)
	}
	if len(got.Highlights) != 0 {
		t.Fatalf("expected highlights to be replaced away, got %+v", got.Highlights)
	}

	others, err := repo.ListBySlate(context.Background(), SeedSlateDate)
	if err != nil {
		t.Fatalf("list slate picks: %v", err)
	}
	if len(others) != 3 {
		t.Fatalf("unexpected user count for slate: got=%d want=3", len(others))
	}
}
