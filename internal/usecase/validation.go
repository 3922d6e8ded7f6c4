package usecase

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/xavierca1/calltracker/internal/entity"
)

// Hint tells a client which screen can fix the problem.
type ValidationError struct {
	Field   string
	Message string
	Hint    string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var timeOfDay = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

func ValidateSubmitCallInput(input SubmitCallInput) []ValidationError {
	var errors []ValidationError

	status := entity.CallStatus(strings.TrimSpace(input.Status))
	if status == "" {
		errors = append(errors, ValidationError{Field: "status", Message: "is required"})
		return errors
	}
	if !status.Valid() {
		errors = append(errors, ValidationError{Field: "status", Message: "must be deal or no-deal"})
		return errors
	}

	// A deal never carries a reason; SubmitCall drops whatever was sent.
	if status == entity.StatusNoDeal {
		if input.RejectionReason == nil || *input.RejectionReason == "" {
			errors = append(errors, ValidationError{Field: "rejectionReason", Message: "is required for no-deal"})
		} else if !entity.RejectionReason(*input.RejectionReason).Valid() {
			errors = append(errors, ValidationError{Field: "rejectionReason", Message: "is not a known reason"})
		}
	}

	return errors
}

func ValidateSettings(s entity.AppSettings) []ValidationError {
	var errors []ValidationError

	if s.DailyReportTime != "" && !isValidTimeOfDay(s.DailyReportTime) {
		errors = append(errors, ValidationError{Field: "dailyReportTime", Message: "must be HH:MM (24h)"})
	}

	return errors
}

func isValidTimeOfDay(v string) bool {
	return timeOfDay.MatchString(v)
}

func firstError(errs []ValidationError) error {
	if len(errs) == 0 {
		return nil
	}
	return errs[0]
}
