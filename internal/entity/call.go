package entity

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout is the calendar-date format used for CallRecord.DateStr and
// the last-report marker.
const DateLayout = "2006-01-02"

type CallStatus string

const (
	StatusDeal   CallStatus = "deal"
	StatusNoDeal CallStatus = "no-deal"
)

func (s CallStatus) Valid() bool {
	return s == StatusDeal || s == StatusNoDeal
}

// RejectionReason values double as the labels sent to the webhook.
type RejectionReason string

const (
	ReasonNoMoney       RejectionReason = "No Money"
	ReasonNoCredit      RejectionReason = "No Credit"
	ReasonNotInterested RejectionReason = "Not Interested"
	ReasonOther         RejectionReason = "Other"
)

// RejectionReasons is the declared order. Aggregation and tie-breaking
// iterate this slice, never a map.
var RejectionReasons = []RejectionReason{
	ReasonNoMoney,
	ReasonNoCredit,
	ReasonNotInterested,
	ReasonOther,
}

func (r RejectionReason) Valid() bool {
	for _, known := range RejectionReasons {
		if r == known {
			return true
		}
	}
	return false
}

type CallRecord struct {
	ID              string           `json:"id"`
	Timestamp       int64            `json:"timestamp"` // unix millis
	DateStr         string           `json:"dateStr"`
	Status          CallStatus       `json:"status"`
	RejectionReason *RejectionReason `json:"rejectionReason,omitempty"`
}

// NewCallRecord stamps a fresh record. The date string is computed in the
// location of now, so callers pick the calendar by passing a localized time.
func NewCallRecord(status CallStatus, reason *RejectionReason, now time.Time) CallRecord {
	var r *RejectionReason
	if reason != nil {
		v := *reason
		r = &v
	}
	return CallRecord{
		ID:              uuid.New().String(),
		Timestamp:       now.UnixMilli(),
		DateStr:         now.Format(DateLayout),
		Status:          status,
		RejectionReason: r,
	}
}

func (c CallRecord) Time() time.Time {
	return time.UnixMilli(c.Timestamp)
}

// Reason returns the rejection reason or "" when none was recorded.
func (c CallRecord) Reason() RejectionReason {
	if c.RejectionReason == nil {
		return ""
	}
	return *c.RejectionReason
}
