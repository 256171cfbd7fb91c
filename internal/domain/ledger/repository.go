package ledger

import (
	"context"

	"github.com/nbanima/pickem/internal/domain/slate"
)

// Repository persists ledger entries and the derived account balances.
//
// ApplySettlement is the single failure-atomic unit of settlement: delete
// every entry under the reason, insert the replacement rows, and set each
// affected user's balance. Implementations must apply all of it or none of
// it; a partial write is a fatal, retryable condition because settlement is
// safe to re-run from scratch.
type Repository interface {
	ListDeltasByReason(ctx context.Context, reason Reason) ([]UserDelta, error)
	SumDeltasBySlateRange(ctx context.Context, kind ReasonKind, from, to slate.Date) ([]UserTotal, error)
	ApplySettlement(ctx context.Context, reason Reason, entries []Entry, balances map[string]int) error
}
