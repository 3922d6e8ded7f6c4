package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/calltracker/internal/entity"
	"github.com/xavierca1/calltracker/internal/infra/integration/webhook"
	"github.com/xavierca1/calltracker/internal/usecase"
)

type MockSubmitter struct{ mock.Mock }

func (m *MockSubmitter) Execute(ctx context.Context, input usecase.SubmitCallInput) (entity.CallRecord, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(entity.CallRecord), args.Error(1)
}

type MockStats struct{ mock.Mock }

func (m *MockStats) Daily(ctx context.Context, date string) (entity.DailyStats, error) {
	args := m.Called(ctx, date)
	return args.Get(0).(entity.DailyStats), args.Error(1)
}

func (m *MockStats) ListCalls(ctx context.Context, date string) ([]entity.CallRecord, error) {
	args := m.Called(ctx, date)
	calls, _ := args.Get(0).([]entity.CallRecord)
	return calls, args.Error(1)
}

type MockReport struct{ mock.Mock }

func (m *MockReport) Execute(ctx context.Context, trigger usecase.Trigger) (usecase.ReportResult, error) {
	args := m.Called(ctx, trigger)
	return args.Get(0).(usecase.ReportResult), args.Error(1)
}

type MockSettings struct{ mock.Mock }

func (m *MockSettings) Get(ctx context.Context) (entity.AppSettings, error) {
	args := m.Called(ctx)
	return args.Get(0).(entity.AppSettings), args.Error(1)
}

func (m *MockSettings) Save(ctx context.Context, s entity.AppSettings) (entity.AppSettings, error) {
	args := m.Called(ctx, s)
	return args.Get(0).(entity.AppSettings), args.Error(1)
}

func (m *MockSettings) TestWebhook(ctx context.Context, s entity.AppSettings) (webhook.Result, error) {
	args := m.Called(ctx, s)
	return args.Get(0).(webhook.Result), args.Error(1)
}

type MockMaintainer struct{ mock.Mock }

func (m *MockMaintainer) ClearHistory(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockMaintainer) FactoryReset(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
