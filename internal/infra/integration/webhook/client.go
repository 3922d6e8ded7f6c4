package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/xavierca1/calltracker/internal/entity"
	"github.com/xavierca1/calltracker/internal/infra/http/middleware"
	"github.com/xavierca1/calltracker/internal/stats"
)

// Client posts payloads to the user's automation webhook. One attempt per
// call: no retry, no backoff.
type Client struct {
	http   *http.Client
	now    func() time.Time
	logger zerolog.Logger
}

// NewClient builds a dispatcher. A zero timeout keeps net/http's default
// behaviour of no client-side deadline.
func NewClient(timeout time.Duration, logger zerolog.Logger) *Client {
	return &Client{
		http:   &http.Client{Timeout: timeout},
		now:    time.Now,
		logger: logger.With().Str("component", "webhook").Logger(),
	}
}

func (c *Client) WithClock(now func() time.Time) *Client {
	c.now = now
	return c
}

// ValidURL is the only URL check the dispatcher performs.
func ValidURL(url string) bool {
	return url != "" && strings.HasPrefix(url, "http")
}

func (c *Client) Send(ctx context.Context, url string, payload entity.WebhookPayload) Result {
	res := c.send(ctx, url, payload)

	outcome := "ok"
	switch {
	case res.OK:
	case errors.Is(res.Err, ErrInvalidURL):
		outcome = "invalid_url"
	case res.StatusCode != 0:
		outcome = "bad_status"
	default:
		outcome = "error"
	}
	middleware.RecordWebhookDispatch(string(payload.Type), outcome)

	if !res.OK {
		c.logger.Warn().
			Err(res.Err).
			Str("type", string(payload.Type)).
			Int("status", res.StatusCode).
			Msg("webhook dispatch failed")
	}
	return res
}

func (c *Client) send(ctx context.Context, url string, payload entity.WebhookPayload) Result {
	if !ValidURL(url) {
		return Result{Err: ErrInvalidURL}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return Result{Err: fmt.Errorf("marshal payload: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return Result{Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Result{Err: fmt.Errorf("post webhook: %w", err)}
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Result{StatusCode: resp.StatusCode, Err: fmt.Errorf("webhook returned status %d", resp.StatusCode)}
	}

	c.logger.Debug().Str("type", string(payload.Type)).Int("status", resp.StatusCode).Msg("webhook delivered")
	return Result{OK: true, StatusCode: resp.StatusCode}
}

// SendAsync dispatches on its own goroutine and delivers exactly one Result.
// The channel is buffered, so nobody has to read it. Cancelling ctx does not
// abort the request.
func (c *Client) SendAsync(ctx context.Context, url string, payload entity.WebhookPayload) <-chan Result {
	out := make(chan Result, 1)
	detached := context.WithoutCancel(ctx)
	go func() {
		out <- c.Send(detached, url, payload)
		close(out)
	}()
	return out
}

func (c *Client) SendTestPing(ctx context.Context, settings entity.AppSettings) Result {
	return c.Send(ctx, settings.WebhookURL, stats.BuildTestPayload(settings, c.now()))
}
