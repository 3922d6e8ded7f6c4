package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/calltracker/internal/entity"
)

type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// CallEventProducer puts single-call payloads on the broker. The consumer
// resolves the destination URL at delivery time.
type CallEventProducer struct {
	Ch publisher
}

func NewProducer(ch publisher) *CallEventProducer {
	return &CallEventProducer{Ch: ch}
}

func (p *CallEventProducer) PublishCall(ctx context.Context, _ string, payload entity.WebhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal call event: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Type:         string(payload.Type),
		},
	)
	if err != nil {
		return fmt.Errorf("publish call event: %w", err)
	}
	return nil
}
