package usecase

import (
	"github.com/xavierca1/calltracker/internal/entity"
)

type SubmitCallInput struct {
	Status          string  `json:"status"`
	RejectionReason *string `json:"rejectionReason,omitempty"`
}

type Trigger string

const (
	TriggerManual    Trigger = "manual"
	TriggerScheduled Trigger = "scheduled"
)

type ReportResult struct {
	Sent       bool              `json:"sent"`
	StatusCode int               `json:"status_code,omitempty"`
	Stats      entity.DailyStats `json:"stats"`
}
