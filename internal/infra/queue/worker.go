package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/xavierca1/calltracker/internal/entity"
	"github.com/xavierca1/calltracker/internal/infra/integration/webhook"
)

type Dispatcher interface {
	Send(ctx context.Context, url string, payload entity.WebhookPayload) webhook.Result
}

type SettingsReader interface {
	GetSettings(ctx context.Context) (entity.AppSettings, error)
}

// Worker drains call events and forwards each one to the webhook currently
// configured in settings.
type Worker struct {
	Channel    *amqp.Channel
	Dispatcher Dispatcher
	Settings   SettingsReader
	Logger     zerolog.Logger
}

func NewWorker(ch *amqp.Channel, dispatcher Dispatcher, settings SettingsReader, logger zerolog.Logger) *Worker {
	return &Worker{
		Channel:    ch,
		Dispatcher: dispatcher,
		Settings:   settings,
		Logger:     logger.With().Str("worker", "call_events").Logger(),
	}
}

// Start blocks until ctx is cancelled or the delivery channel closes.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.Consume(
		queueName,
		"calltracker",
		false, // manual ack
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("register consumer: %w", err)
	}

	w.Logger.Info().Str("queue", queueName).Msg("consumer started")

	for {
		select {
		case <-ctx.Done():
			w.Logger.Info().Msg("consumer stopped")
			return nil
		case d, ok := <-msgs:
			if !ok {
				w.Logger.Warn().Msg("delivery channel closed")
				return nil
			}
			w.processDelivery(ctx, d)
		}
	}
}

func (w *Worker) processDelivery(ctx context.Context, d amqp.Delivery) {
	var payload entity.WebhookPayload
	if err := json.Unmarshal(d.Body, &payload); err != nil {
		w.Logger.Error().Err(err).Msg("malformed call event, dead-lettering")
		d.Nack(false, false)
		return
	}

	settings, err := w.Settings.GetSettings(ctx)
	if err != nil {
		w.Logger.Error().Err(err).Msg("could not read settings, requeueing")
		d.Nack(false, true)
		return
	}

	if !webhook.ValidURL(settings.WebhookURL) {
		w.Logger.Info().Msg("no webhook configured, dropping call event")
		d.Ack(false)
		return
	}

	res := w.Dispatcher.Send(context.WithoutCancel(ctx), settings.WebhookURL, payload)
	if !res.OK {
		w.Logger.Warn().Err(res.Err).Int("status", res.StatusCode).Msg("call event not delivered, dead-lettering")
		d.Nack(false, false)
		return
	}

	d.Ack(false)
}
