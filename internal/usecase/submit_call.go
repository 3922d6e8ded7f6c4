package usecase

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/xavierca1/calltracker/internal/entity"
	"github.com/xavierca1/calltracker/internal/infra/http/middleware"
	"github.com/xavierca1/calltracker/internal/stats"
)

type SubmitCallUseCase struct {
	Store     RecordStore
	Publisher CallPublisher
	Logger    zerolog.Logger
}

func NewSubmitCallUseCase(store RecordStore, publisher CallPublisher, logger zerolog.Logger) *SubmitCallUseCase {
	return &SubmitCallUseCase{
		Store:     store,
		Publisher: publisher,
		Logger:    logger.With().Str("usecase", "submit_call").Logger(),
	}
}

// Execute persists the call and then forwards it to the webhook. Forwarding
// problems never undo the save.
func (uc *SubmitCallUseCase) Execute(ctx context.Context, input SubmitCallInput) (entity.CallRecord, error) {
	if err := firstError(ValidateSubmitCallInput(input)); err != nil {
		return entity.CallRecord{}, err
	}

	status := entity.CallStatus(input.Status)
	var reason *entity.RejectionReason
	if status == entity.StatusNoDeal {
		r := entity.RejectionReason(*input.RejectionReason)
		reason = &r
	}

	rec, err := uc.Store.AppendCall(ctx, status, reason)
	if err != nil {
		return entity.CallRecord{}, fmt.Errorf("save call: %w", err)
	}
	middleware.RecordCallLogged(string(status))

	uc.Logger.Info().
		Str("call_id", rec.ID).
		Str("status", string(rec.Status)).
		Str("reason", string(rec.Reason())).
		Msg("call logged")

	uc.forward(ctx, rec)
	return rec, nil
}

func (uc *SubmitCallUseCase) forward(ctx context.Context, rec entity.CallRecord) {
	if uc.Publisher == nil {
		return
	}

	settings, err := uc.Store.GetSettings(ctx)
	if err != nil {
		uc.Logger.Error().Err(err).Str("call_id", rec.ID).Msg("could not read settings, call not forwarded")
		return
	}
	if !settings.HasWebhook() {
		return
	}

	payload := stats.BuildSingleCallPayload(settings, rec)
	if err := uc.Publisher.PublishCall(ctx, settings.WebhookURL, payload); err != nil {
		uc.Logger.Warn().Err(err).Str("call_id", rec.ID).Msg("call saved but not forwarded")
	}
}
