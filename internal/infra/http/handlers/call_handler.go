package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/xavierca1/calltracker/internal/entity"
	"github.com/xavierca1/calltracker/internal/usecase"
)

type CallSubmitter interface {
	Execute(ctx context.Context, input usecase.SubmitCallInput) (entity.CallRecord, error)
}

type StatsReader interface {
	Daily(ctx context.Context, date string) (entity.DailyStats, error)
	ListCalls(ctx context.Context, date string) ([]entity.CallRecord, error)
}

type CallHandler struct {
	SubmitUC CallSubmitter
	StatsUC  StatsReader
	Logger   zerolog.Logger
}

func NewCallHandler(submit CallSubmitter, stats StatsReader, logger zerolog.Logger) *CallHandler {
	return &CallHandler{SubmitUC: submit, StatsUC: stats, Logger: logger}
}

// Create (POST /calls)
func (h *CallHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.SubmitCallInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid JSON: "+err.Error())
		return
	}

	rec, err := h.SubmitUC.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, rec)
}

// List (GET /calls?date=YYYY-MM-DD)
func (h *CallHandler) List(w http.ResponseWriter, r *http.Request) {
	calls, err := h.StatsUC.ListCalls(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, calls)
}

// DailyStats (GET /stats/daily?date=YYYY-MM-DD)
func (h *CallHandler) DailyStats(w http.ResponseWriter, r *http.Request) {
	s, err := h.StatsUC.Daily(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}
