package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/users/{userID}/slates/{date}/score", handler.GetScorePreview)
	mux.HandleFunc("GET /v1/weeks/current/totals", handler.GetCurrentWeekTotals)
	mux.HandleFunc("GET /v1/weeks/current/ranking", handler.GetCurrentWeekRanking)
	mux.HandleFunc("GET /v1/weeks/{weekStart}/totals", handler.GetWeekTotals)
	mux.HandleFunc("GET /v1/slates/context", handler.GetSlateContext)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/settle", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunSettleJob)))
	mux.Handle("POST /v1/internal/jobs/resettle-recent", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunResettleRecentJob)))
	mux.Handle("POST /v1/internal/jobs/sync-schedule", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunSyncScheduleJob)))
	mux.Handle("POST /v1/internal/jobs/sync-results", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunIngestResultsJob)))
}
