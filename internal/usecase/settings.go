package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/xavierca1/calltracker/internal/entity"
	"github.com/xavierca1/calltracker/internal/infra/integration/webhook"
)

type SettingsUseCase struct {
	Store      RecordStore
	Dispatcher Dispatcher
	Logger     zerolog.Logger
}

func NewSettingsUseCase(store RecordStore, dispatcher Dispatcher, logger zerolog.Logger) *SettingsUseCase {
	return &SettingsUseCase{
		Store:      store,
		Dispatcher: dispatcher,
		Logger:     logger.With().Str("usecase", "settings").Logger(),
	}
}

func (uc *SettingsUseCase) Get(ctx context.Context) (entity.AppSettings, error) {
	return uc.Store.GetSettings(ctx)
}

func (uc *SettingsUseCase) Save(ctx context.Context, s entity.AppSettings) (entity.AppSettings, error) {
	s.AgentName = strings.TrimSpace(s.AgentName)
	s.WebhookURL = strings.TrimSpace(s.WebhookURL)
	s.DailyReportTime = strings.TrimSpace(s.DailyReportTime)

	if err := firstError(ValidateSettings(s)); err != nil {
		return entity.AppSettings{}, err
	}
	if err := uc.Store.SaveSettings(ctx, s); err != nil {
		return entity.AppSettings{}, fmt.Errorf("save settings: %w", err)
	}

	uc.Logger.Info().
		Str("agent", s.AgentName).
		Bool("webhook", s.HasWebhook()).
		Str("report_time", s.DailyReportTime).
		Msg("settings saved")
	return s, nil
}

// TestWebhook pings the URL in s, which may not be saved yet.
func (uc *SettingsUseCase) TestWebhook(ctx context.Context, s entity.AppSettings) (webhook.Result, error) {
	s.WebhookURL = strings.TrimSpace(s.WebhookURL)
	if s.WebhookURL == "" {
		return webhook.Result{}, ValidationError{Field: "webhook_url", Message: "is required", Hint: "settings"}
	}

	res := uc.Dispatcher.SendTestPing(ctx, s)
	if !res.OK {
		return res, &DispatchError{StatusCode: res.StatusCode, Err: res.Err}
	}
	return res, nil
}
