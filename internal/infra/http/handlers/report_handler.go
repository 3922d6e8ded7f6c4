package handlers

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/xavierca1/calltracker/internal/usecase"
)

type ReportSender interface {
	Execute(ctx context.Context, trigger usecase.Trigger) (usecase.ReportResult, error)
}

type ReportHandler struct {
	ReportUC ReportSender
	Logger   zerolog.Logger
}

func NewReportHandler(uc ReportSender, logger zerolog.Logger) *ReportHandler {
	return &ReportHandler{ReportUC: uc, Logger: logger}
}

// SendDaily (POST /reports/daily)
func (h *ReportHandler) SendDaily(w http.ResponseWriter, r *http.Request) {
	res, err := h.ReportUC.Execute(r.Context(), usecase.TriggerManual)
	if err != nil {
		writeUseCaseError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
