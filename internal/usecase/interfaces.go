package usecase

import (
	"context"
	"time"

	"github.com/xavierca1/calltracker/internal/entity"
	"github.com/xavierca1/calltracker/internal/infra/integration/webhook"
)

type RecordStore interface {
	Now() time.Time
	Today() string
	ListCalls(ctx context.Context) ([]entity.CallRecord, error)
	AppendCall(ctx context.Context, status entity.CallStatus, reason *entity.RejectionReason) (entity.CallRecord, error)
	CallsOnDate(ctx context.Context, date string) ([]entity.CallRecord, error)
	GetSettings(ctx context.Context) (entity.AppSettings, error)
	SaveSettings(ctx context.Context, settings entity.AppSettings) error
	GetLastReportDate(ctx context.Context) (string, bool, error)
	SetLastReportDate(ctx context.Context, date string) error
	ClearCallHistory(ctx context.Context) error
	FactoryReset(ctx context.Context) error
}

type Dispatcher interface {
	Send(ctx context.Context, url string, payload entity.WebhookPayload) webhook.Result
	SendTestPing(ctx context.Context, settings entity.AppSettings) webhook.Result
}

// CallPublisher hands a single-call event off without blocking the caller.
type CallPublisher interface {
	PublishCall(ctx context.Context, url string, payload entity.WebhookPayload) error
}

type ReportMailer interface {
	SendDailySummary(settings entity.AppSettings, stats entity.DailyStats) error
}
