package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tesso57/briefing/internal/application/usecase"
	"github.com/tesso57/briefing/internal/domain/news"
	"github.com/tesso57/briefing/internal/infrastructure/events"
)

type stubAction struct {
	result usecase.ActionResult
	err    error
	calls  int
}

func (s *stubAction) Execute(ctx context.Context, emitter usecase.Emitter) (usecase.ActionResult, error) {
	s.calls++
	_ = emitter.Emit(ctx, usecase.StatusEvent("Fetching RSS feeds...", false))
	if s.err != nil {
		_ = emitter.Emit(ctx, usecase.StatusEvent("Error: "+s.err.Error(), true))
		return usecase.ActionResult{}, s.err
	}
	_ = emitter.Emit(ctx, usecase.StatusEvent("News loaded.", true))
	_ = emitter.Emit(ctx, usecase.MessageEvent(s.result.Digest))
	return s.result, nil
}

type mockRuns struct {
	mock.Mock
}

func (m *mockRuns) Recent(ctx context.Context, limit int) ([]usecase.RunRecord, error) {
	args := m.Called(ctx, limit)
	runs, _ := args.Get(0).([]usecase.RunRecord)
	return runs, args.Error(1)
}

func TestHandleAction_Success(t *testing.T) {
	action := &stubAction{result: usecase.ActionResult{
		RunID:  "run-1",
		Digest: "# digest",
		Articles: []news.Article{
			{Title: "Kubernetes 1.30 released", Link: "https://example.com", Source: "Kubernetes", Date: time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)},
		},
	}}
	sink := &events.Buffer{}
	handler := NewServer(action, nil, sink, nil).Handler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/action", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	var body struct {
		RunID    string         `json:"run_id"`
		Digest   string         `json:"digest"`
		Articles []news.Article `json:"articles"`
		Events   []struct {
			Type string `json:"type"`
		} `json:"events"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "run-1", body.RunID)
	assert.Equal(t, "# digest", body.Digest)
	require.Len(t, body.Articles, 1)
	assert.Equal(t, "Kubernetes", body.Articles[0].Source)
	require.Len(t, body.Events, 3)
	assert.Equal(t, "message", body.Events[2].Type)
	assert.Len(t, sink.Events(), 3, "extra sink receives the same events")
}

func TestHandleAction_Failure(t *testing.T) {
	action := &stubAction{err: errors.New("pipeline panicked: boom")}
	handler := NewServer(action, nil, nil, nil).Handler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/action", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "\"digest\"")
}

func TestHandleAction_WrongMethod(t *testing.T) {
	action := &stubAction{}
	handler := NewServer(action, nil, nil, nil).Handler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/action", nil))

	assert.NotEqual(t, http.StatusOK, rec.Code)
	assert.Zero(t, action.calls)
}

func TestHandleRuns(t *testing.T) {
	runs := &mockRuns{}
	runs.On("Recent", mock.Anything, 5).Return([]usecase.RunRecord{
		{ID: "run-9", StartedAt: time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC), Duration: 1200 * time.Millisecond, Articles: 4},
	}, nil).Once()
	handler := NewServer(&stubAction{}, runs, nil, nil).Handler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/runs?limit=5", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body []runResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, "run-9", body[0].ID)
	assert.Equal(t, int64(1200), body[0].DurationMS)
	runs.AssertExpectations(t)
}

func TestHandleRuns_Errors(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		rec := httptest.NewRecorder()
		NewServer(&stubAction{}, nil, nil, nil).Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/runs", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("bad limit", func(t *testing.T) {
		rec := httptest.NewRecorder()
		NewServer(&stubAction{}, &mockRuns{}, nil, nil).Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/runs?limit=-1", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("store failure", func(t *testing.T) {
		runs := &mockRuns{}
		runs.On("Recent", mock.Anything, defaultRunsLimit).Return(nil, errors.New("locked")).Once()
		rec := httptest.NewRecorder()
		NewServer(&stubAction{}, runs, nil, nil).Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/runs", nil))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestHealthz(t *testing.T) {
	rec := httptest.NewRecorder()
	NewServer(&stubAction{}, nil, nil, nil).Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRequestIDMiddleware_ReusesHeader(t *testing.T) {
	var seen string
	handler := RequestIDMiddleware(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = RequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "abc", seen)
	assert.Equal(t, "abc", rec.Header().Get("X-Request-ID"))
}
