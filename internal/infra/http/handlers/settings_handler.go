package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/xavierca1/calltracker/internal/entity"
	"github.com/xavierca1/calltracker/internal/infra/integration/webhook"
)

type SettingsService interface {
	Get(ctx context.Context) (entity.AppSettings, error)
	Save(ctx context.Context, s entity.AppSettings) (entity.AppSettings, error)
	TestWebhook(ctx context.Context, s entity.AppSettings) (webhook.Result, error)
}

type SettingsHandler struct {
	SettingsUC SettingsService
	Logger     zerolog.Logger
}

func NewSettingsHandler(uc SettingsService, logger zerolog.Logger) *SettingsHandler {
	return &SettingsHandler{SettingsUC: uc, Logger: logger}
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, err := h.SettingsUC.Get(r.Context())
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *SettingsHandler) Put(w http.ResponseWriter, r *http.Request) {
	var input entity.AppSettings
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid JSON: "+err.Error())
		return
	}

	saved, err := h.SettingsUC.Save(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// Test (POST /settings/test) pings the URL in the body, or the saved one
// when the body is empty.
func (h *SettingsHandler) Test(w http.ResponseWriter, r *http.Request) {
	current, err := h.SettingsUC.Get(r.Context())
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}

	if err := json.NewDecoder(r.Body).Decode(&current); err != nil && !errors.Is(err, io.EOF) {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid JSON: "+err.Error())
		return
	}

	res, err := h.SettingsUC.TestWebhook(r.Context(), current)
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"ok": res.OK, "status_code": res.StatusCode})
}
