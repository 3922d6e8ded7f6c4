package webhook

import (
	"context"

	"github.com/xavierca1/calltracker/internal/entity"
)

// AsyncPublisher forwards call events straight from the request goroutine,
// without a broker.
type AsyncPublisher struct {
	client *Client
}

func NewAsyncPublisher(client *Client) *AsyncPublisher {
	return &AsyncPublisher{client: client}
}

// PublishCall never fails: the outcome is logged by the client.
func (p *AsyncPublisher) PublishCall(ctx context.Context, url string, payload entity.WebhookPayload) error {
	p.client.SendAsync(ctx, url, payload)
	return nil
}
