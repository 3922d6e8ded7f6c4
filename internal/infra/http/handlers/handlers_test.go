package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/calltracker/internal/entity"
	"github.com/xavierca1/calltracker/internal/infra/integration/webhook"
	"github.com/xavierca1/calltracker/internal/usecase"
)

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestCallHandler_Create(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		sub := new(MockSubmitter)
		sub.On("Execute", mock.Anything, usecase.SubmitCallInput{Status: "deal"}).
			Return(entity.CallRecord{ID: "c1", Status: entity.StatusDeal, DateStr: "2024-03-15"}, nil)
		h := NewCallHandler(sub, new(MockStats), zerolog.Nop())

		req := httptest.NewRequest(http.MethodPost, "/calls", bytes.NewBufferString(`{"status":"deal"}`))
		w := httptest.NewRecorder()
		h.Create(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		var rec entity.CallRecord
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rec))
		assert.Equal(t, "c1", rec.ID)
	})

	t.Run("invalid json", func(t *testing.T) {
		sub := new(MockSubmitter)
		h := NewCallHandler(sub, new(MockStats), zerolog.Nop())

		w := httptest.NewRecorder()
		h.Create(w, httptest.NewRequest(http.MethodPost, "/calls", bytes.NewBufferString(`{`)))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_JSON", decodeError(t, w).Code)
		sub.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
	})

	t.Run("validation error", func(t *testing.T) {
		sub := new(MockSubmitter)
		sub.On("Execute", mock.Anything, mock.Anything).
			Return(entity.CallRecord{}, usecase.ValidationError{Field: "rejectionReason", Message: "is required for no-deal"})
		h := NewCallHandler(sub, new(MockStats), zerolog.Nop())

		w := httptest.NewRecorder()
		h.Create(w, httptest.NewRequest(http.MethodPost, "/calls", bytes.NewBufferString(`{"status":"no-deal"}`)))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeError(t, w)
		assert.Equal(t, "rejectionReason", resp.Field)
		assert.Empty(t, resp.Redirect)
	})

	t.Run("storage error is hidden", func(t *testing.T) {
		sub := new(MockSubmitter)
		sub.On("Execute", mock.Anything, mock.Anything).Return(entity.CallRecord{}, errors.New("disk full at /var/x"))
		h := NewCallHandler(sub, new(MockStats), zerolog.Nop())

		w := httptest.NewRecorder()
		h.Create(w, httptest.NewRequest(http.MethodPost, "/calls", bytes.NewBufferString(`{"status":"deal"}`)))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "/var/x")
	})
}

func TestCallHandler_ListAndStats(t *testing.T) {
	st := new(MockStats)
	st.On("ListCalls", mock.Anything, "2024-03-15").Return([]entity.CallRecord{{ID: "a"}, {ID: "b"}}, nil)
	st.On("Daily", mock.Anything, "").Return(entity.DailyStats{Date: "2024-03-15", ConversionRate: "0%", TopRejectionReason: "N/A"}, nil)
	h := NewCallHandler(new(MockSubmitter), st, zerolog.Nop())

	w := httptest.NewRecorder()
	h.List(w, httptest.NewRequest(http.MethodGet, "/calls?date=2024-03-15", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	var calls []entity.CallRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &calls))
	assert.Len(t, calls, 2)

	w = httptest.NewRecorder()
	h.DailyStats(w, httptest.NewRequest(http.MethodGet, "/stats/daily", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"topRejectionReason":"N/A"`)
}

func TestReportHandler_SendDaily(t *testing.T) {
	t.Run("sent", func(t *testing.T) {
		uc := new(MockReport)
		uc.On("Execute", mock.Anything, usecase.TriggerManual).
			Return(usecase.ReportResult{Sent: true, StatusCode: 200, Stats: entity.DailyStats{Date: "2024-03-15"}}, nil)
		h := NewReportHandler(uc, zerolog.Nop())

		w := httptest.NewRecorder()
		h.SendDaily(w, httptest.NewRequest(http.MethodPost, "/reports/daily", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"sent":true`)
	})

	t.Run("no webhook redirects to settings", func(t *testing.T) {
		uc := new(MockReport)
		uc.On("Execute", mock.Anything, usecase.TriggerManual).
			Return(usecase.ReportResult{}, usecase.ValidationError{Field: "webhook_url", Message: "is required", Hint: "settings"})
		h := NewReportHandler(uc, zerolog.Nop())

		w := httptest.NewRecorder()
		h.SendDaily(w, httptest.NewRequest(http.MethodPost, "/reports/daily", nil))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		resp := decodeError(t, w)
		assert.Equal(t, "webhook_url", resp.Field)
		assert.Equal(t, "settings", resp.Redirect)
	})

	t.Run("dispatch failure", func(t *testing.T) {
		uc := new(MockReport)
		uc.On("Execute", mock.Anything, usecase.TriggerManual).
			Return(usecase.ReportResult{}, &usecase.DispatchError{StatusCode: 500})
		h := NewReportHandler(uc, zerolog.Nop())

		w := httptest.NewRecorder()
		h.SendDaily(w, httptest.NewRequest(http.MethodPost, "/reports/daily", nil))

		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Equal(t, "DISPATCH_FAILED", decodeError(t, w).Code)
	})

	t.Run("send already running", func(t *testing.T) {
		uc := new(MockReport)
		uc.On("Execute", mock.Anything, usecase.TriggerManual).
			Return(usecase.ReportResult{}, usecase.ErrReportInFlight)
		h := NewReportHandler(uc, zerolog.Nop())

		w := httptest.NewRecorder()
		h.SendDaily(w, httptest.NewRequest(http.MethodPost, "/reports/daily", nil))

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "REPORT_IN_PROGRESS", decodeError(t, w).Code)
	})
}

func TestSettingsHandler(t *testing.T) {
	saved := entity.AppSettings{AgentName: "Uma", WebhookURL: "https://hook", DailyReportTime: "18:00"}

	t.Run("get", func(t *testing.T) {
		uc := new(MockSettings)
		uc.On("Get", mock.Anything).Return(saved, nil)
		h := NewSettingsHandler(uc, zerolog.Nop())

		w := httptest.NewRecorder()
		h.Get(w, httptest.NewRequest(http.MethodGet, "/settings", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"agentName":"Uma","webhookUrl":"https://hook","dailyReportTime":"18:00"}`, w.Body.String())
	})

	t.Run("put", func(t *testing.T) {
		uc := new(MockSettings)
		uc.On("Save", mock.Anything, saved).Return(saved, nil)
		h := NewSettingsHandler(uc, zerolog.Nop())

		body, _ := json.Marshal(saved)
		w := httptest.NewRecorder()
		h.Put(w, httptest.NewRequest(http.MethodPut, "/settings", bytes.NewReader(body)))

		assert.Equal(t, http.StatusOK, w.Code)
		uc.AssertExpectations(t)
	})

	t.Run("test uses saved settings when body is empty", func(t *testing.T) {
		uc := new(MockSettings)
		uc.On("Get", mock.Anything).Return(saved, nil)
		uc.On("TestWebhook", mock.Anything, saved).Return(webhook.Result{OK: true, StatusCode: 200}, nil)
		h := NewSettingsHandler(uc, zerolog.Nop())

		w := httptest.NewRecorder()
		h.Test(w, httptest.NewRequest(http.MethodPost, "/settings/test", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"ok":true`)
	})

	t.Run("test with unsaved url", func(t *testing.T) {
		uc := new(MockSettings)
		uc.On("Get", mock.Anything).Return(saved, nil)
		override := saved
		override.WebhookURL = "https://other"
		uc.On("TestWebhook", mock.Anything, override).Return(webhook.Result{Err: errors.New("refused")}, &usecase.DispatchError{Err: errors.New("refused")})
		h := NewSettingsHandler(uc, zerolog.Nop())

		w := httptest.NewRecorder()
		h.Test(w, httptest.NewRequest(http.MethodPost, "/settings/test", bytes.NewBufferString(`{"webhookUrl":"https://other"}`)))

		assert.Equal(t, http.StatusBadGateway, w.Code)
		uc.AssertExpectations(t)
	})

	t.Run("test with empty url", func(t *testing.T) {
		uc := new(MockSettings)
		uc.On("Get", mock.Anything).Return(entity.DefaultSettings(), nil)
		uc.On("TestWebhook", mock.Anything, mock.Anything).
			Return(webhook.Result{}, usecase.ValidationError{Field: "webhook_url", Message: "is required", Hint: "settings"})
		h := NewSettingsHandler(uc, zerolog.Nop())

		w := httptest.NewRecorder()
		h.Test(w, httptest.NewRequest(http.MethodPost, "/settings/test", nil))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestMaintenanceHandler(t *testing.T) {
	uc := new(MockMaintainer)
	uc.On("ClearHistory", mock.Anything).Return(nil)
	uc.On("FactoryReset", mock.Anything).Return(errors.New("redis down"))
	h := NewMaintenanceHandler(uc, zerolog.Nop())

	w := httptest.NewRecorder()
	h.ClearHistory(w, httptest.NewRequest(http.MethodPost, "/maintenance/clear-history", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	h.FactoryReset(w, httptest.NewRequest(http.MethodPost, "/maintenance/factory-reset", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
