package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/calltracker/internal/entity"
	"github.com/xavierca1/calltracker/internal/infra/filestore"
	"github.com/xavierca1/calltracker/internal/infra/integration/webhook"
	"github.com/xavierca1/calltracker/internal/store"
)

type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Send(ctx context.Context, url string, payload entity.WebhookPayload) webhook.Result {
	args := m.Called(ctx, url, payload)
	return args.Get(0).(webhook.Result)
}

func (m *MockDispatcher) SendTestPing(ctx context.Context, settings entity.AppSettings) webhook.Result {
	args := m.Called(ctx, settings)
	return args.Get(0).(webhook.Result)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishCall(ctx context.Context, url string, payload entity.WebhookPayload) error {
	args := m.Called(ctx, url, payload)
	return args.Error(0)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendDailySummary(settings entity.AppSettings, stats entity.DailyStats) error {
	args := m.Called(settings, stats)
	return args.Error(0)
}

var fixedNow = time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) *store.RecordStore {
	t.Helper()
	return store.NewRecordStore(
		filestore.NewMemoryStore(),
		store.WithClock(func() time.Time { return fixedNow }),
		store.WithLocation(time.UTC),
	)
}

func strPtr(s string) *string { return &s }

func reasonPtr(r entity.RejectionReason) *entity.RejectionReason { return &r }
