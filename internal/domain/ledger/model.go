package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/nbanima/pickem/internal/domain/slate"
)

// ReasonKind tags why a ledger entry exists.
type ReasonKind string

const (
	// ReasonSettlement marks entries posted by slate settlement. All entries
	// sharing one settlement reason are superseded as a unit on re-runs.
	ReasonSettlement ReasonKind = "settlement"
)

// Reason is the typed key locating every entry of one posting batch. It is a
// struct rather than a formatted string so callers never parse free text;
// Encode/ParseReason exist only for the storage boundary.
type Reason struct {
	Kind  ReasonKind
	Slate slate.Date
}

func SettlementReason(date slate.Date) Reason {
	return Reason{Kind: ReasonSettlement, Slate: date}
}

// Encode renders the storage form, e.g. "settlement:2024-03-10".
func (r Reason) Encode() string {
	return string(r.Kind) + ":" + string(r.Slate)
}

// ParseReason reconstructs a typed reason from its storage form.
func ParseReason(raw string) (Reason, error) {
	kind, rawDate, ok := strings.Cut(raw, ":")
	if !ok {
		return Reason{}, fmt.Errorf("ledger reason %q is missing a kind", raw)
	}
	if ReasonKind(kind) != ReasonSettlement {
		return Reason{}, fmt.Errorf("unknown ledger reason kind %q", kind)
	}
	date, err := slate.ParseDate(rawDate)
	if err != nil {
		return Reason{}, fmt.Errorf("ledger reason %q: %w", raw, err)
	}
	return Reason{Kind: ReasonSettlement, Slate: date}, nil
}

// Entry is one append-only ledger row. The ledger, not the running balance,
// is the source of truth for what was granted and why.
type Entry struct {
	UserID       string
	Delta        int
	BalanceAfter int
	Reason       Reason
	CreatedAt    time.Time
}

// UserDelta is the summed delta already posted for one user under a reason.
type UserDelta struct {
	UserID string
	Delta  int
}

// UserTotal is one user's summed deltas inside a week bucket.
type UserTotal struct {
	UserID string
	Total  int
}
