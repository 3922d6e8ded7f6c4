package stats

import (
	"time"

	"github.com/xavierca1/calltracker/internal/entity"
)

// TimestampLayout matches JavaScript's Date.toISOString, which the
// downstream sheet already parses.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

func BuildDailyPayload(settings entity.AppSettings, s entity.DailyStats) entity.WebhookPayload {
	return entity.WebhookPayload{
		Type:               entity.PayloadDailySummary,
		AgentName:          settings.AgentName,
		Date:               s.Date,
		TotalCalls:         intPtr(s.TotalCalls),
		TotalSales:         intPtr(s.TotalSales),
		FailedTotal:        intPtr(s.FailedTotal),
		ConversionRate:     s.ConversionRate,
		TopRejectionReason: s.TopRejectionReason,
		CountNoMoney:       intPtr(s.RejectionCounts[entity.ReasonNoMoney]),
		CountNoCredit:      intPtr(s.RejectionCounts[entity.ReasonNoCredit]),
		CountNotInterested: intPtr(s.RejectionCounts[entity.ReasonNotInterested]),
		CountOther:         intPtr(s.RejectionCounts[entity.ReasonOther]),
	}
}

func BuildSingleCallPayload(settings entity.AppSettings, call entity.CallRecord) entity.WebhookPayload {
	reason := string(call.Reason())
	return entity.WebhookPayload{
		Type:            entity.PayloadSingleCall,
		AgentName:       settings.AgentName,
		Timestamp:       FormatTimestamp(call.Time()),
		CallStatus:      string(call.Status),
		RejectionReason: &reason,
	}
}

func BuildTestPayload(settings entity.AppSettings, now time.Time) entity.WebhookPayload {
	return entity.WebhookPayload{
		Type:      entity.PayloadTest,
		AgentName: settings.AgentName,
		Timestamp: FormatTimestamp(now),
	}
}

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

func intPtr(v int) *int {
	return &v
}
