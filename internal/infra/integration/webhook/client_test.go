package webhook

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/calltracker/internal/entity"
	"github.com/xavierca1/calltracker/internal/stats"
)

func newTestClient() *Client {
	return NewClient(2*time.Second, zerolog.Nop()).
		WithClock(func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) })
}

func TestSendPostsJSON(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	settings := entity.AppSettings{AgentName: "Ana"}
	call := entity.NewCallRecord(entity.StatusDeal, nil, time.Now())

	res := newTestClient().Send(context.Background(), srv.URL, stats.BuildSingleCallPayload(settings, call))

	assert.True(t, res.OK)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.NoError(t, res.Err)
	assert.Equal(t, "single_call", got["type"])
	assert.Equal(t, "Ana", got["agent_name"])
	assert.Equal(t, "deal", got["call_status"])
	assert.Equal(t, "", got["rejection_reason"])
}

func TestSendNon2xxIsFailure(t *testing.T) {
	for _, status := range []int{http.StatusMovedPermanently, http.StatusBadRequest, http.StatusInternalServerError} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		res := newTestClient().Send(context.Background(), srv.URL, entity.WebhookPayload{Type: entity.PayloadTest})
		srv.Close()

		assert.False(t, res.OK, "status %d", status)
		assert.Equal(t, status, res.StatusCode)
		assert.Error(t, res.Err)
	}
}

func TestSendInvalidURLSkipsNetwork(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()

	tests := []string{"", "ftp://example.com/hook", "example.com"}
	for _, url := range tests {
		res := newTestClient().Send(context.Background(), url, entity.WebhookPayload{Type: entity.PayloadTest})
		assert.False(t, res.OK)
		assert.ErrorIs(t, res.Err, ErrInvalidURL)
		assert.Zero(t, res.StatusCode)
	}
	assert.Zero(t, atomic.LoadInt32(&hits))
}

func TestSendTransportErrorNeverPanics(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	res := newTestClient().Send(context.Background(), url, entity.WebhookPayload{Type: entity.PayloadTest})

	assert.False(t, res.OK)
	assert.Zero(t, res.StatusCode)
	assert.Error(t, res.Err)
}

func TestSendAsyncSurvivesCancelledContext(t *testing.T) {
	received := make(chan struct{}, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received <- struct{}{}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	ch := newTestClient().SendAsync(ctx, srv.URL, entity.WebhookPayload{Type: entity.PayloadSingleCall})
	cancel()

	select {
	case res := <-ch:
		assert.True(t, res.OK)
		assert.Equal(t, http.StatusNoContent, res.StatusCode)
	case <-time.After(3 * time.Second):
		t.Fatal("async dispatch did not complete")
	}
	<-received
}

func TestSendTestPing(t *testing.T) {
	var got entity.WebhookPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
	}))
	defer srv.Close()

	res := newTestClient().SendTestPing(context.Background(), entity.AppSettings{AgentName: "Bo", WebhookURL: srv.URL})

	assert.True(t, res.OK)
	assert.Equal(t, entity.PayloadTest, got.Type)
	assert.Equal(t, "Bo", got.AgentName)
	assert.Equal(t, "2024-05-01T12:00:00.000Z", got.Timestamp)
}

func TestValidURL(t *testing.T) {
	assert.True(t, ValidURL("https://hooks.example.com/x"))
	assert.True(t, ValidURL("http://localhost:8080"))
	assert.False(t, ValidURL(""))
	assert.False(t, ValidURL("hooks.example.com"))
}

func TestAsyncPublisherDoesNotBlock(t *testing.T) {
	release := make(chan struct{})
	done := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		close(done)
	}))
	defer srv.Close()

	p := NewAsyncPublisher(newTestClient())
	err := p.PublishCall(context.Background(), srv.URL, entity.WebhookPayload{Type: entity.PayloadSingleCall})
	require.NoError(t, err)

	close(release)
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("request never reached the server")
	}
}
