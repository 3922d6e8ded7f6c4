package handlers

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"
)

type Maintainer interface {
	ClearHistory(ctx context.Context) error
	FactoryReset(ctx context.Context) error
}

type MaintenanceHandler struct {
	UC     Maintainer
	Logger zerolog.Logger
}

func NewMaintenanceHandler(uc Maintainer, logger zerolog.Logger) *MaintenanceHandler {
	return &MaintenanceHandler{UC: uc, Logger: logger}
}

func (h *MaintenanceHandler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	if err := h.UC.ClearHistory(r.Context()); err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *MaintenanceHandler) FactoryReset(w http.ResponseWriter, r *http.Request) {
	if err := h.UC.FactoryReset(r.Context()); err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
