package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc/pool"

	"github.com/nbanima/pickem/internal/domain/account"
	"github.com/nbanima/pickem/internal/domain/ledger"
	"github.com/nbanima/pickem/internal/domain/picks"
	"github.com/nbanima/pickem/internal/domain/results"
	"github.com/nbanima/pickem/internal/domain/scoring"
	"github.com/nbanima/pickem/internal/domain/slate"
	"github.com/nbanima/pickem/internal/platform/logging"
	"github.com/nbanima/pickem/internal/platform/resilience"
)

const defaultResettleWorkers = 4

// SettlementService recomputes slate scores from picks and published results
// and reconciles the points ledger against them. Settling the same slate
// twice is a no-op; settling after a result correction moves every affected
// balance to where a single clean run would have put it.
type SettlementService struct {
	picksRepo   picks.Repository
	resultsRepo results.Repository
	ledgerRepo  ledger.Repository
	accountRepo account.Repository
	logger      *logging.Logger

	now             func() time.Time
	settleFlight    resilience.SingleFlight
	resettleWorkers int
}

func NewSettlementService(
	picksRepo picks.Repository,
	resultsRepo results.Repository,
	ledgerRepo ledger.Repository,
	accountRepo account.Repository,
	logger *logging.Logger,
) *SettlementService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SettlementService{
		picksRepo:       picksRepo,
		resultsRepo:     resultsRepo,
		ledgerRepo:      ledgerRepo,
		accountRepo:     accountRepo,
		logger:          logger,
		now:             time.Now,
		resettleWorkers: defaultResettleWorkers,
	}
}

// SettlementSummary reports what one settlement run changed.
type SettlementSummary struct {
	SlateDate     slate.Date `json:"slate_date"`
	AffectedUsers int        `json:"affected_users"`
	ChangedUsers  int        `json:"changed_users"`
	EntriesPosted int        `json:"entries_posted"`
	PointsAwarded int        `json:"points_awarded"`
	Deduplicated  bool       `json:"deduplicated"`
}

// Settle recomputes every score for the slate and replaces the slate's
// ledger postings with the recomputed set in one atomic write. Concurrent
// calls for the same slate collapse into one run.
func (s *SettlementService) Settle(ctx context.Context, date slate.Date) (SettlementSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SettlementService.Settle")
	defer span.End()

	if date == "" {
		return SettlementSummary{}, fmt.Errorf("%w: slate date is required", ErrInvalidInput)
	}

	value, err, shared := s.settleFlight.Do(string(date), func() (any, error) {
		return s.settleSlate(ctx, date)
	})
	if err != nil {
		return SettlementSummary{}, err
	}

	summary := value.(SettlementSummary)
	summary.Deduplicated = shared
	return summary, nil
}

func (s *SettlementService) settleSlate(ctx context.Context, date slate.Date) (SettlementSummary, error) {
	var (
		allPicks []picks.UserPicks
		previous []ledger.UserDelta
	)

	loads := pool.New().WithErrors().WithContext(ctx)
	loads.Go(func(ctx context.Context) error {
		rows, err := s.picksRepo.ListBySlate(ctx, date)
		if err != nil {
			return fmt.Errorf("list picks for slate %s: %w", date, err)
		}
		allPicks = rows
		return nil
	})
	loads.Go(func(ctx context.Context) error {
		rows, err := s.ledgerRepo.ListDeltasByReason(ctx, ledger.SettlementReason(date))
		if err != nil {
			return fmt.Errorf("list prior settlement deltas for slate %s: %w", date, err)
		}
		previous = rows
		return nil
	})
	if err := loads.Wait(); err != nil {
		return SettlementSummary{}, err
	}

	resultSet, err := s.loadResults(ctx, date, picks.GameIDs(allPicks))
	if err != nil {
		return SettlementSummary{}, err
	}

	picksByUser := make(map[string]picks.UserPicks, len(allPicks))
	for _, userPicks := range allPicks {
		picksByUser[userPicks.UserID] = userPicks
	}
	previousByUser := make(map[string]int, len(previous))
	for _, row := range previous {
		previousByUser[row.UserID] += row.Delta
	}

	// Users who previously earned points but no longer hold picks still get
	// corrected down to zero; the union covers both directions.
	affected := make([]string, 0, len(picksByUser)+len(previousByUser))
	seen := make(map[string]struct{}, len(picksByUser)+len(previousByUser))
	for userID := range picksByUser {
		seen[userID] = struct{}{}
		affected = append(affected, userID)
	}
	for userID := range previousByUser {
		if _, ok := seen[userID]; ok {
			continue
		}
		seen[userID] = struct{}{}
		affected = append(affected, userID)
	}
	sort.Strings(affected)

	accounts, err := s.accountRepo.ListByIDs(ctx, affected)
	if err != nil {
		return SettlementSummary{}, fmt.Errorf("list accounts for slate %s: %w", date, err)
	}
	balanceByUser := make(map[string]int, len(accounts))
	for _, acct := range accounts {
		balanceByUser[acct.ID] = acct.Balance
	}

	reason := ledger.SettlementReason(date)
	createdAt := s.now().UTC()

	entries := make([]ledger.Entry, 0, len(affected))
	balances := make(map[string]int, len(affected))
	summary := SettlementSummary{SlateDate: date, AffectedUsers: len(affected)}

	for _, userID := range affected {
		breakdown := scoring.ComputeDailyScore(scoring.DailyScoreInput{
			Picks:   picksByUser[userID],
			Results: resultSet,
		})
		newDelta := breakdown.TotalPoints
		previousDelta := previousByUser[userID]
		newBalance := balanceByUser[userID] - previousDelta + newDelta

		balances[userID] = newBalance
		if newDelta != previousDelta {
			summary.ChangedUsers++
		}
		summary.PointsAwarded += newDelta

		// Zero scores leave no ledger row; absence under the reason encodes
		// "settled, earned nothing" and keeps re-runs convergent.
		if newDelta > 0 {
			entries = append(entries, ledger.Entry{
				UserID:       userID,
				Delta:        newDelta,
				BalanceAfter: newBalance,
				Reason:       reason,
				CreatedAt:    createdAt,
			})
		}
	}
	summary.EntriesPosted = len(entries)

	if err := s.ledgerRepo.ApplySettlement(ctx, reason, entries, balances); err != nil {
		return SettlementSummary{}, fmt.Errorf("apply settlement for slate %s: %w", date, err)
	}

	s.logger.InfoContext(ctx, "slate settled",
		"slate_date", string(date),
		"affected_users", summary.AffectedUsers,
		"changed_users", summary.ChangedUsers,
		"entries_posted", summary.EntriesPosted,
		"points_awarded", summary.PointsAwarded,
	)
	return summary, nil
}

func (s *SettlementService) loadResults(ctx context.Context, date slate.Date, gameIDs []string) (results.Set, error) {
	var set results.Set

	loads := pool.New().WithErrors().WithContext(ctx)
	loads.Go(func(ctx context.Context) error {
		rows, err := s.resultsRepo.ListTeamResultsByGames(ctx, gameIDs)
		if err != nil {
			return fmt.Errorf("list team results for slate %s: %w", date, err)
		}
		set.Teams = rows
		return nil
	})
	loads.Go(func(ctx context.Context) error {
		rows, err := s.resultsRepo.ListPlayerResultsByGames(ctx, gameIDs)
		if err != nil {
			return fmt.Errorf("list player results for slate %s: %w", date, err)
		}
		set.Players = rows
		return nil
	})
	loads.Go(func(ctx context.Context) error {
		rows, err := s.resultsRepo.ListHighlightResultsBySlate(ctx, date)
		if err != nil {
			return fmt.Errorf("list highlight results for slate %s: %w", date, err)
		}
		set.Highlights = rows
		return nil
	})
	if err := loads.Wait(); err != nil {
		return results.Set{}, err
	}
	return set, nil
}

// PreviewUserScore computes one user's current score for a slate without
// touching the ledger. The preview uses the same scoring path settlement
// does, so a preview after the final settlement always matches the posted
// delta.
func (s *SettlementService) PreviewUserScore(ctx context.Context, userID string, date slate.Date) (scoring.ScoreBreakdown, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SettlementService.PreviewUserScore")
	defer span.End()

	if userID == "" {
		return scoring.ScoreBreakdown{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if date == "" {
		return scoring.ScoreBreakdown{}, fmt.Errorf("%w: slate date is required", ErrInvalidInput)
	}

	userPicks, err := s.picksRepo.ListByUserAndSlate(ctx, userID, date)
	if err != nil {
		return scoring.ScoreBreakdown{}, fmt.Errorf("list picks for user %s slate %s: %w", userID, date, err)
	}

	resultSet, err := s.loadResults(ctx, date, picks.GameIDs([]picks.UserPicks{userPicks}))
	if err != nil {
		return scoring.ScoreBreakdown{}, err
	}

	return scoring.ComputeDailyScore(scoring.DailyScoreInput{Picks: userPicks, Results: resultSet}), nil
}

// ResettleOutcome reports a sweep over recent slates. Per-slate failures do
// not abort the sweep; each failed date is reported alongside the summaries
// of the slates that did settle.
type ResettleOutcome struct {
	Requested []slate.Date        `json:"requested"`
	Settled   []SettlementSummary `json:"settled"`
	Failed    []ResettleFailure   `json:"failed"`
}

type ResettleFailure struct {
	SlateDate slate.Date `json:"slate_date"`
	Error     string     `json:"error"`
}

// ResettleRecent re-settles the last days completed slates, newest first.
// Late stat corrections usually land within a couple of days, so a small
// nightly sweep keeps balances converged without replaying the season.
func (s *SettlementService) ResettleRecent(ctx context.Context, days int) (ResettleOutcome, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SettlementService.ResettleRecent")
	defer span.End()

	if days <= 0 {
		return ResettleOutcome{}, fmt.Errorf("%w: days must be positive", ErrInvalidInput)
	}

	dates := slate.LastNDates(s.now(), days)
	outcome := ResettleOutcome{Requested: dates}

	workerCount := s.resettleWorkers
	if workerCount > len(dates) {
		workerCount = len(dates)
	}
	workerPool, err := ants.NewPool(workerCount)
	if err != nil {
		return ResettleOutcome{}, fmt.Errorf("create resettle worker pool: %w", err)
	}
	defer workerPool.Release()

	var (
		mu      sync.Mutex
		workers sync.WaitGroup
	)
	for _, date := range dates {
		date := date
		workers.Add(1)
		if err := workerPool.Submit(func() {
			defer workers.Done()

			summary, err := s.Settle(ctx, date)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				outcome.Failed = append(outcome.Failed, ResettleFailure{SlateDate: date, Error: err.Error()})
				return
			}
			outcome.Settled = append(outcome.Settled, summary)
		}); err != nil {
			workers.Done()
			return ResettleOutcome{}, fmt.Errorf("submit slate %s to worker pool: %w", date, err)
		}
	}
	workers.Wait()

	sort.Slice(outcome.Settled, func(i, j int) bool {
		return outcome.Settled[j].SlateDate.Before(outcome.Settled[i].SlateDate)
	})
	sort.Slice(outcome.Failed, func(i, j int) bool {
		return outcome.Failed[j].SlateDate.Before(outcome.Failed[i].SlateDate)
	})

	if len(outcome.Failed) > 0 {
		s.logger.WarnContext(ctx, "resettle sweep finished with failures",
			"requested", len(outcome.Requested),
			"settled", len(outcome.Settled),
			"failed", len(outcome.Failed),
		)
	}
	return outcome, nil
}
