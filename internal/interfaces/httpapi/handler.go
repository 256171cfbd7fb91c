package httpapi

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/nbanima/pickem/internal/domain/slate"
	"github.com/nbanima/pickem/internal/usecase"
)

type Handler struct {
	settlementService *usecase.SettlementService
	weeklyService     *usecase.WeeklyService
	ingestionService  *usecase.IngestionService
	logger            *slog.Logger
	validator         *validator.Validate
	now               func() time.Time
}

func NewHandler(
	settlementService *usecase.SettlementService,
	weeklyService *usecase.WeeklyService,
	ingestionService *usecase.IngestionService,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		settlementService: settlementService,
		weeklyService:     weeklyService,
		ingestionService:  ingestionService,
		logger:            logger,
		validator:         validator.New(),
		now:               time.Now,
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeSuccess(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetScorePreview serves the live score breakdown for one user and slate.
func (h *Handler) GetScorePreview(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetScorePreview")
	defer span.End()

	userID := strings.TrimSpace(r.PathValue("userID"))
	date, err := parseSlateDate(r.PathValue("date"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	breakdown, err := h.settlementService.PreviewUserScore(ctx, userID, date)
	if err != nil {
		h.logger.ErrorContext(ctx, "score preview failed", "user_id", userID, "slate_date", string(date), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, scorePreviewDTO{
		UserID:      userID,
		SlateDate:   string(date),
		BasePoints:  breakdown.BasePoints,
		Multiplier:  breakdown.Multiplier,
		TotalPoints: breakdown.TotalPoints,
		Hits: hitCountsDTO{
			Teams:      breakdown.Hits.Teams,
			Players:    breakdown.Hits.Players,
			Highlights: breakdown.Hits.Highlights,
			Total:      breakdown.Hits.Total,
		},
	})
}

// GetCurrentWeekTotals serves merged totals for the week containing now (or
// the optional at= instant, RFC3339).
func (h *Handler) GetCurrentWeekTotals(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCurrentWeekTotals")
	defer span.End()

	at, err := h.resolveInstant(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	totals, err := h.weeklyService.TotalsAt(ctx, at)
	if err != nil {
		h.logger.ErrorContext(ctx, "week totals failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, totals)
}

// GetWeekTotals serves one explicit Sunday-anchored storage week.
func (h *Handler) GetWeekTotals(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetWeekTotals")
	defer span.End()

	weekStart, err := parseSlateDate(r.PathValue("weekStart"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	totals, err := h.weeklyService.TotalsForWeek(ctx, weekStart)
	if err != nil {
		h.logger.ErrorContext(ctx, "week totals failed", "week_start", string(weekStart), "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, totals)
}

// GetCurrentWeekRanking serves the leaderboard for the current week.
func (h *Handler) GetCurrentWeekRanking(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCurrentWeekRanking")
	defer span.End()

	at, err := h.resolveInstant(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	ranking, err := h.weeklyService.RankingAt(ctx, at)
	if err != nil {
		h.logger.ErrorContext(ctx, "week ranking failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, ranking)
}

// GetSlateContext serves the temporal coordinates of an instant: slate date,
// Eastern wall clock, and week window.
func (h *Handler) GetSlateContext(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSlateContext")
	defer span.End()

	at, err := h.resolveInstant(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	weekCtx, err := h.weeklyService.ContextAt(ctx, at)
	if err != nil {
		h.logger.ErrorContext(ctx, "slate context failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, weekCtx)
}

func (h *Handler) resolveInstant(r *http.Request) (time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("at"))
	if raw == "" {
		return h.now(), nil
	}
	at, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: at must be RFC3339: %v", usecase.ErrInvalidInput, err)
	}
	return at, nil
}

func parseSlateDate(raw string) (slate.Date, error) {
	date, err := slate.ParseDate(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}
	return date, nil
}

type scorePreviewDTO struct {
	UserID      string       `json:"user_id"`
	SlateDate   string       `json:"slate_date"`
	BasePoints  int          `json:"base_points"`
	Multiplier  int          `json:"multiplier"`
	TotalPoints int          `json:"total_points"`
	Hits        hitCountsDTO `json:"hits"`
}

type hitCountsDTO struct {
	Teams      int `json:"teams"`
	Players    int `json:"players"`
	Highlights int `json:"highlights"`
	Total      int `json:"total"`
}
