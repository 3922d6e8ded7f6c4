package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/xavierca1/calltracker/internal/entity"
	"github.com/xavierca1/calltracker/internal/infra/http/middleware"
	"github.com/xavierca1/calltracker/internal/stats"
)

// DailyReportUseCase is shared by the HTTP handler and the scheduler. At most
// one send runs at a time; the lock only guards the claim and the marker,
// never the webhook call.
type DailyReportUseCase struct {
	Store      RecordStore
	Dispatcher Dispatcher
	Mailer     ReportMailer
	Logger     zerolog.Logger

	mu       sync.Mutex
	inFlight bool
}

func NewDailyReportUseCase(store RecordStore, dispatcher Dispatcher, mailer ReportMailer, logger zerolog.Logger) *DailyReportUseCase {
	return &DailyReportUseCase{
		Store:      store,
		Dispatcher: dispatcher,
		Mailer:     mailer,
		Logger:     logger.With().Str("usecase", "daily_report").Logger(),
	}
}

// Execute sends today's summary unconditionally. It fails with
// ErrReportInFlight while another send is running.
func (uc *DailyReportUseCase) Execute(ctx context.Context, trigger Trigger) (ReportResult, error) {
	uc.mu.Lock()
	if uc.inFlight {
		uc.mu.Unlock()
		return ReportResult{}, ErrReportInFlight
	}
	uc.inFlight = true
	uc.mu.Unlock()
	defer uc.release()

	return uc.run(ctx, trigger)
}

// ExecuteIfPending sends today's summary only when it has not gone out yet.
// The bool is false when the marker already equals today or another send is
// running.
func (uc *DailyReportUseCase) ExecuteIfPending(ctx context.Context, trigger Trigger) (ReportResult, bool, error) {
	uc.mu.Lock()
	if uc.inFlight {
		uc.mu.Unlock()
		return ReportResult{}, false, nil
	}
	last, ok, err := uc.Store.GetLastReportDate(ctx)
	if err != nil {
		uc.mu.Unlock()
		return ReportResult{}, false, fmt.Errorf("read last report date: %w", err)
	}
	if ok && last == uc.Store.Today() {
		uc.mu.Unlock()
		return ReportResult{}, false, nil
	}
	uc.inFlight = true
	uc.mu.Unlock()
	defer uc.release()

	res, err := uc.run(ctx, trigger)
	return res, true, err
}

func (uc *DailyReportUseCase) release() {
	uc.mu.Lock()
	uc.inFlight = false
	uc.mu.Unlock()
}

// markSent records today's date under the lock so a concurrent claim sees it.
// The send already happened, so a cancelled caller must not skip the write.
func (uc *DailyReportUseCase) markSent(ctx context.Context, today string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.Store.SetLastReportDate(context.WithoutCancel(ctx), today)
}

func (uc *DailyReportUseCase) run(ctx context.Context, trigger Trigger) (ReportResult, error) {
	settings, err := uc.Store.GetSettings(ctx)
	if err != nil {
		return ReportResult{}, fmt.Errorf("read settings: %w", err)
	}
	if !settings.HasWebhook() {
		return ReportResult{}, ValidationError{Field: "webhook_url", Message: "is required", Hint: "settings"}
	}

	today := uc.Store.Today()
	calls, err := uc.Store.CallsOnDate(ctx, today)
	if err != nil {
		return ReportResult{}, fmt.Errorf("read calls: %w", err)
	}

	daily := stats.ComputeDaily(calls, today)
	payload := stats.BuildDailyPayload(settings, daily)

	log := uc.Logger.With().Str("trigger", string(trigger)).Str("date", today).Logger()

	res := uc.Dispatcher.Send(ctx, settings.WebhookURL, payload)
	out := ReportResult{Sent: res.OK, StatusCode: res.StatusCode, Stats: daily}
	if !res.OK {
		middleware.RecordDailyReport(string(trigger), "failed")
		log.Warn().Err(res.Err).Int("status", res.StatusCode).Msg("daily report not delivered")
		return out, &DispatchError{StatusCode: res.StatusCode, Err: res.Err}
	}

	if err := uc.markSent(ctx, today); err != nil {
		// Delivered but unmarked: the scheduler may send again later today.
		log.Error().Err(err).Msg("daily report sent but marker not saved")
	}
	middleware.RecordDailyReport(string(trigger), "sent")

	log.Info().
		Int("total_calls", daily.TotalCalls).
		Int("total_sales", daily.TotalSales).
		Str("conversion_rate", daily.ConversionRate).
		Msg("daily report sent")

	uc.mail(log, settings, daily)
	return out, nil
}

func (uc *DailyReportUseCase) mail(log zerolog.Logger, settings entity.AppSettings, daily entity.DailyStats) {
	if uc.Mailer == nil {
		return
	}
	if err := uc.Mailer.SendDailySummary(settings, daily); err != nil {
		log.Warn().Err(err).Msg("daily summary e-mail failed")
	}
}
