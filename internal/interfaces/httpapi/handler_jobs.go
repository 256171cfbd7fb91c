package httpapi

import (
	"fmt"
	"io"
	"net/http"

	"github.com/bytedance/sonic"

	"github.com/nbanima/pickem/internal/domain/slate"
	"github.com/nbanima/pickem/internal/usecase"
)

// Internal job handlers receive QStash callbacks (or operator curl) behind
// the internal job token middleware. Payloads are small JSON bodies.

const maxJobBodyBytes = 1 << 16

type settleJobRequest struct {
	SlateDate string `json:"slate_date" validate:"required,datetime=2006-01-02"`
}

type resettleRecentJobRequest struct {
	Days int `json:"days" validate:"required,min=1,max=60"`
}

type slateJobRequest struct {
	SlateDate string `json:"slate_date" validate:"required,datetime=2006-01-02"`
}

// RunSettleJob settles one slate: recompute scores, diff against the ledger,
// and write the corrected entries and balances.
func (h *Handler) RunSettleJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSettleJob")
	defer span.End()

	var req settleJobRequest
	if err := h.decodeJobRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	summary, err := h.settlementService.Settle(ctx, slate.Date(req.SlateDate))
	if err != nil {
		h.logger.ErrorContext(ctx, "settle job failed", "slate_date", req.SlateDate, "error", err)
		writeError(ctx, w, err)
		return
	}
	h.weeklyService.InvalidateWeek(ctx, summary.SlateDate)
	writeSuccess(ctx, w, http.StatusOK, summary)
}

// RunResettleRecentJob re-settles a trailing window of slates. It is the
// nightly sweep that absorbs late stat corrections.
func (h *Handler) RunResettleRecentJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunResettleRecentJob")
	defer span.End()

	var req resettleRecentJobRequest
	if err := h.decodeJobRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	outcome, err := h.settlementService.ResettleRecent(ctx, req.Days)
	if err != nil {
		h.logger.ErrorContext(ctx, "resettle job failed", "days", req.Days, "error", err)
		writeError(ctx, w, err)
		return
	}
	for _, summary := range outcome.Settled {
		h.weeklyService.InvalidateWeek(ctx, summary.SlateDate)
	}
	writeSuccess(ctx, w, http.StatusOK, outcome)
}

// RunSyncScheduleJob pulls the provider's game list for one slate into storage.
func (h *Handler) RunSyncScheduleJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSyncScheduleJob")
	defer span.End()

	var req slateJobRequest
	if err := h.decodeJobRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	stored, err := h.ingestionService.SyncSchedule(ctx, slate.Date(req.SlateDate))
	if err != nil {
		h.logger.ErrorContext(ctx, "schedule sync job failed", "slate_date", req.SlateDate, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"slate_date":   req.SlateDate,
		"games_stored": stored,
	})
}

// RunIngestResultsJob pulls provider outcomes for one slate and queues its
// settlement.
func (h *Handler) RunIngestResultsJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunIngestResultsJob")
	defer span.End()

	var req slateJobRequest
	if err := h.decodeJobRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	summary, err := h.ingestionService.SyncResults(ctx, slate.Date(req.SlateDate))
	if err != nil {
		h.logger.ErrorContext(ctx, "results sync job failed", "slate_date", req.SlateDate, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, summary)
}

func (h *Handler) decodeJobRequest(r *http.Request, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxJobBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: read request body: %v", usecase.ErrInvalidInput, err)
	}
	if len(body) == 0 {
		return fmt.Errorf("%w: request body is required", usecase.ErrInvalidInput)
	}
	if err := sonic.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%w: decode request body: %v", usecase.ErrInvalidInput, err)
	}
	if err := h.validator.StructCtx(r.Context(), dst); err != nil {
		return fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}
