package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/nbanima/pickem/internal/domain/account"
	"github.com/nbanima/pickem/internal/domain/ledger"
	"github.com/nbanima/pickem/internal/domain/schedule"
	"github.com/nbanima/pickem/internal/domain/slate"
	"github.com/nbanima/pickem/internal/platform/cache"
	"github.com/nbanima/pickem/internal/platform/logging"
)

const DefaultLockBuffer = 5 * time.Minute

// WeeklyService aggregates settled ledger deltas into per-user weekly
// totals. Weeks are stored Sunday-anchored and shown Monday-anchored; on
// Sundays, before the first game locks, totals from the week that is ending
// and the week that is beginning are merged so the leaderboard never resets
// mid-viewing.
type WeeklyService struct {
	ledgerRepo   ledger.Repository
	accountRepo  account.Repository
	scheduleRepo schedule.Repository
	cache        *cache.Store
	logger       *logging.Logger

	lockBuffer time.Duration
	now        func() time.Time
}

func NewWeeklyService(
	ledgerRepo ledger.Repository,
	accountRepo account.Repository,
	scheduleRepo schedule.Repository,
	totalsCache *cache.Store,
	lockBuffer time.Duration,
	logger *logging.Logger,
) *WeeklyService {
	if lockBuffer <= 0 {
		lockBuffer = DefaultLockBuffer
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &WeeklyService{
		ledgerRepo:   ledgerRepo,
		accountRepo:  accountRepo,
		scheduleRepo: scheduleRepo,
		cache:        totalsCache,
		logger:       logger,
		lockBuffer:   lockBuffer,
		now:          time.Now,
	}
}

// WeeklyTotals is the aggregate for one resolved week window, sorted by
// points descending with user id as the tiebreak.
type WeeklyTotals struct {
	Window slate.WeekWindow `json:"window"`
	Totals []UserWeekTotal  `json:"totals"`
}

type UserWeekTotal struct {
	UserID string `json:"user_id"`
	Points int    `json:"points"`
}

// TotalsAt resolves the week window containing the instant and returns the
// merged totals for it.
func (s *WeeklyService) TotalsAt(ctx context.Context, at time.Time) (WeeklyTotals, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WeeklyService.TotalsAt")
	defer span.End()

	window, err := s.resolveWindow(ctx, at)
	if err != nil {
		return WeeklyTotals{}, err
	}
	totals, err := s.totalsForWindow(ctx, window)
	if err != nil {
		return WeeklyTotals{}, err
	}
	return WeeklyTotals{Window: window, Totals: totals}, nil
}

// TotalsForWeek returns the totals of one explicit Sunday-anchored storage
// week with no rollover merging, for historical views.
func (s *WeeklyService) TotalsForWeek(ctx context.Context, weekStart slate.Date) (WeeklyTotals, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WeeklyService.TotalsForWeek")
	defer span.End()

	if weekStart == "" {
		return WeeklyTotals{}, fmt.Errorf("%w: week start is required", ErrInvalidInput)
	}
	if weekStart.Weekday() != time.Sunday {
		return WeeklyTotals{}, fmt.Errorf("%w: week start %s is not a Sunday", ErrInvalidInput, weekStart)
	}

	window := slate.WeekWindow{
		StorageWeekStart: weekStart,
		DisplayWeekStart: weekStart.AddDays(1),
	}
	totals, err := s.totalsForWindow(ctx, window)
	if err != nil {
		return WeeklyTotals{}, err
	}
	return WeeklyTotals{Window: window, Totals: totals}, nil
}

// WeeklyRanking is the ranked leaderboard for a week window. Ranks are
// dense: equal totals share a rank and the next distinct total takes the
// following rank.
type WeeklyRanking struct {
	Window  slate.WeekWindow `json:"window"`
	Entries []RankingEntry   `json:"entries"`
}

type RankingEntry struct {
	Rank        int    `json:"rank"`
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Points      int    `json:"points"`
}

// RankingAt builds the leaderboard for the week containing the instant.
func (s *WeeklyService) RankingAt(ctx context.Context, at time.Time) (WeeklyRanking, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WeeklyService.RankingAt")
	defer span.End()

	totals, err := s.TotalsAt(ctx, at)
	if err != nil {
		return WeeklyRanking{}, err
	}

	userIDs := make([]string, 0, len(totals.Totals))
	for _, total := range totals.Totals {
		userIDs = append(userIDs, total.UserID)
	}
	accounts, err := s.accountRepo.ListByIDs(ctx, userIDs)
	if err != nil {
		return WeeklyRanking{}, fmt.Errorf("list accounts for ranking: %w", err)
	}
	nameByUser := make(map[string]string, len(accounts))
	for _, acct := range accounts {
		nameByUser[acct.ID] = acct.DisplayName
	}

	ranking := WeeklyRanking{
		Window:  totals.Window,
		Entries: make([]RankingEntry, 0, len(totals.Totals)),
	}
	rank := 0
	lastPoints := 0
	for i, total := range totals.Totals {
		if i == 0 || total.Points != lastPoints {
			rank++
			lastPoints = total.Points
		}
		ranking.Entries = append(ranking.Entries, RankingEntry{
			Rank:        rank,
			UserID:      total.UserID,
			DisplayName: nameByUser[total.UserID],
			Points:      total.Points,
		})
	}
	return ranking, nil
}

// WeekContext bundles the temporal coordinates of an instant: its slate
// date, Eastern wall clock, and resolved week window.
type WeekContext struct {
	SlateDate slate.Date       `json:"slate_date"`
	Clock     slate.WallClock  `json:"eastern_clock"`
	Window    slate.WeekWindow `json:"window"`
}

// ContextAt resolves the slate date and week window for an instant, using
// the day's schedule for the Sunday lock threshold.
func (s *WeeklyService) ContextAt(ctx context.Context, at time.Time) (WeekContext, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WeeklyService.ContextAt")
	defer span.End()

	window, err := s.resolveWindow(ctx, at)
	if err != nil {
		return WeekContext{}, err
	}
	return WeekContext{
		SlateDate: slate.SlateDateOf(at),
		Clock:     slate.ToEasternWallClock(at),
		Window:    window,
	}, nil
}

// resolveWindow derives the Sunday lock threshold from the slate's first
// tip-off when the instant falls on an Eastern Sunday. A Sunday without
// scheduled games never rolls over; the ending week stays live all day.
func (s *WeeklyService) resolveWindow(ctx context.Context, at time.Time) (slate.WeekWindow, error) {
	if slate.SlateDateOf(at).Weekday() != time.Sunday {
		return slate.ResolveWeek(at), nil
	}

	games, err := s.scheduleRepo.ListBySlate(ctx, slate.SlateDateOf(at))
	if err != nil {
		return slate.WeekWindow{}, fmt.Errorf("list games for sunday lock threshold: %w", err)
	}
	tipOff, ok := schedule.EarliestTipOff(games)
	if !ok {
		return slate.ResolveWeek(at), nil
	}
	return slate.ResolveWeek(at, slate.WithSundayResetAt(tipOff.Add(-s.lockBuffer))), nil
}

func (s *WeeklyService) totalsForWindow(ctx context.Context, window slate.WeekWindow) ([]UserWeekTotal, error) {
	if s.cache == nil {
		return s.loadTotals(ctx, window)
	}
	key := "weekly:" + string(window.StorageWeekStart) + ":" + string(window.RolloverWeekStart)
	value, err := s.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return s.loadTotals(ctx, window)
	})
	if err != nil {
		return nil, err
	}
	return value.([]UserWeekTotal), nil
}

func (s *WeeklyService) loadTotals(ctx context.Context, window slate.WeekWindow) ([]UserWeekTotal, error) {
	pointsByUser := make(map[string]int)

	buckets := []slate.Date{window.StorageWeekStart}
	if window.HasRollover() {
		buckets = append(buckets, window.RolloverWeekStart)
	}
	for _, weekStart := range buckets {
		rows, err := s.ledgerRepo.SumDeltasBySlateRange(ctx, ledger.ReasonSettlement, weekStart, weekStart.AddDays(6))
		if err != nil {
			return nil, fmt.Errorf("sum weekly deltas from %s: %w", weekStart, err)
		}
		for _, row := range rows {
			pointsByUser[row.UserID] += row.Total
		}
	}

	totals := make([]UserWeekTotal, 0, len(pointsByUser))
	for userID, points := range pointsByUser {
		totals = append(totals, UserWeekTotal{UserID: userID, Points: points})
	}
	sort.Slice(totals, func(i, j int) bool {
		if totals[i].Points != totals[j].Points {
			return totals[i].Points > totals[j].Points
		}
		return totals[i].UserID < totals[j].UserID
	})
	return totals, nil
}

// InvalidateWeek drops cached totals for the windows that can contain the
// slate, called after a settlement changes ledger rows.
func (s *WeeklyService) InvalidateWeek(ctx context.Context, date slate.Date) {
	if s.cache == nil {
		return
	}
	weekStart := date.AddDays(-int(date.Weekday()))
	previous := weekStart.AddDays(-7)
	s.cache.Delete(ctx, "weekly:"+string(weekStart)+":")
	s.cache.Delete(ctx, "weekly:"+string(previous)+":"+string(weekStart))
}
