package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/xavierca1/calltracker/internal/entity"
	"github.com/xavierca1/calltracker/internal/usecase"
)

const clockLayout = "15:04"

type SettingsSource interface {
	Now() time.Time
	GetSettings(ctx context.Context) (entity.AppSettings, error)
}

type DailyReporter interface {
	ExecuteIfPending(ctx context.Context, trigger usecase.Trigger) (usecase.ReportResult, bool, error)
}

// DailyReportWorker fires the daily summary when the wall clock reaches the
// configured HH:MM. A failed send is retried on every tick that still falls
// inside the same minute. Sends run off the tick loop, one at a time.
type DailyReportWorker struct {
	source       SettingsSource
	reporter     DailyReporter
	tickInterval time.Duration
	logger       zerolog.Logger

	running atomic.Bool
	wg      sync.WaitGroup
}

func NewDailyReportWorker(source SettingsSource, reporter DailyReporter, interval time.Duration, logger zerolog.Logger) *DailyReportWorker {
	if interval <= 0 {
		interval = time.Minute
	}
	return &DailyReportWorker{
		source:       source,
		reporter:     reporter,
		tickInterval: interval,
		logger:       logger.With().Str("worker", "daily_report").Logger(),
	}
}

func (w *DailyReportWorker) Start(ctx context.Context) {
	w.logger.Info().Dur("interval", w.tickInterval).Msg("daily report worker started")

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.Check(ctx)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("daily report worker stopped")
			return
		case <-ticker.C:
			w.Check(ctx)
		}
	}
}

// Check reports whether a send was started. The send itself runs in the
// background; a tick that finds one still running does nothing.
func (w *DailyReportWorker) Check(ctx context.Context) bool {
	settings, err := w.source.GetSettings(ctx)
	if err != nil {
		w.logger.Error().Err(err).Msg("could not read settings")
		return false
	}
	if !settings.HasWebhook() || settings.DailyReportTime == "" {
		return false
	}

	now := w.source.Now()
	if now.Format(clockLayout) != settings.DailyReportTime {
		return false
	}

	if !w.running.CompareAndSwap(false, true) {
		w.logger.Debug().Msg("scheduled report still running, skipping tick")
		return false
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer w.running.Store(false)
		// Shutdown must not abort a send that already started.
		w.dispatch(context.WithoutCancel(ctx))
	}()
	return true
}

// Wait blocks until any background send has returned.
func (w *DailyReportWorker) Wait() {
	w.wg.Wait()
}

func (w *DailyReportWorker) dispatch(ctx context.Context) {
	res, ran, err := w.reporter.ExecuteIfPending(ctx, usecase.TriggerScheduled)
	switch {
	case !ran && err == nil:
		w.logger.Debug().Msg("scheduled report already handled")
	case errors.Is(err, usecase.ErrDispatchFailed):
		w.logger.Warn().Err(err).Msg("scheduled report failed, will retry next tick")
	case err != nil:
		w.logger.Error().Err(err).Msg("scheduled report aborted")
	default:
		w.logger.Info().Str("date", res.Stats.Date).Msg("scheduled report sent")
	}
}
