package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/xavierca1/calltracker/internal/usecase"
)

type ErrorResponse struct {
	Code     string `json:"code"`
	Error    string `json:"error"`
	Field    string `json:"field,omitempty"`
	Redirect string `json:"redirect,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeErrorResponse(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Error: message})
}

// writeUseCaseError maps use case failures onto HTTP statuses. Anything not
// recognised is logged and hidden behind a 500.
func writeUseCaseError(w http.ResponseWriter, logger zerolog.Logger, err error) {
	var vErr usecase.ValidationError
	switch {
	case errors.As(err, &vErr):
		status := http.StatusBadRequest
		if vErr.Hint != "" {
			status = http.StatusUnprocessableEntity
		}
		writeJSON(w, status, ErrorResponse{
			Code:     "VALIDATION_ERROR",
			Error:    vErr.Error(),
			Field:    vErr.Field,
			Redirect: vErr.Hint,
		})
	case errors.Is(err, usecase.ErrDispatchFailed):
		writeErrorResponse(w, http.StatusBadGateway, "DISPATCH_FAILED", err.Error())
	case errors.Is(err, usecase.ErrReportInFlight):
		writeErrorResponse(w, http.StatusConflict, "REPORT_IN_PROGRESS", err.Error())
	default:
		logger.Error().Err(err).Msg("request failed")
		writeErrorResponse(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal error")
	}
}
