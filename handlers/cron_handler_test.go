package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Dosada05/referee-review/services"
	"github.com/stretchr/testify/assert"
)

type stubMatchStatus struct {
	result services.StatusRunResult
	err    error
	gotNow time.Time
}

func (s *stubMatchStatus) CheckWindow(context.Context, time.Time) (services.WindowDecision, error) {
	return services.WindowDecision{}, nil
}

func (s *stubMatchStatus) UpdateStatuses(context.Context, time.Time) (int, error) {
	return 0, nil
}

func (s *stubMatchStatus) Run(_ context.Context, now time.Time) (services.StatusRunResult, error) {
	s.gotNow = now
	return s.result, s.err
}

type stubRoundFocus struct {
	updated int
	err     error
}

func (s *stubRoundFocus) UpdateFocus(context.Context, time.Time) (int, error) {
	return s.updated, s.err
}

func TestCronHandler_MatchStatus(t *testing.T) {
	now := time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		stub     *stubMatchStatus
		wantCode int
		wantBody string
	}{
		{
			name:     "outside window",
			stub:     &stubMatchStatus{result: services.StatusRunResult{Reason: services.SkipReasonOutsideWindow}},
			wantCode: http.StatusOK,
			wantBody: `{"ran":false,"reason":"outside window"}`,
		},
		{
			name:     "no matches",
			stub:     &stubMatchStatus{result: services.StatusRunResult{Reason: services.SkipReasonNoMatchesToday}},
			wantCode: http.StatusOK,
			wantBody: `{"ran":false,"reason":"no matches today"}`,
		},
		{
			name:     "ran",
			stub:     &stubMatchStatus{result: services.StatusRunResult{Ran: true, Updated: 4}},
			wantCode: http.StatusOK,
			wantBody: `{"ran":true,"updated":4}`,
		},
		{
			name: "partial failure",
			stub: &stubMatchStatus{
				result: services.StatusRunResult{Ran: true, Updated: 2},
				err:    fmt.Errorf("%w: match 3: db down", services.ErrStatusUpdateFailed),
			},
			wantCode: http.StatusInternalServerError,
			wantBody: `{"ran":false,"error":"match status update failed","updated":2}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewCronHandler(tt.stub, &stubRoundFocus{})
			h.now = func() time.Time { return now }

			rec := httptest.NewRecorder()
			h.MatchStatus(rec, httptest.NewRequest(http.MethodPost, "/cron/match-status", nil))

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
			assert.Equal(t, now, tt.stub.gotNow)
		})
	}
}

func TestCronHandler_RoundFocus(t *testing.T) {
	h := NewCronHandler(&stubMatchStatus{}, &stubRoundFocus{updated: 3})
	rec := httptest.NewRecorder()
	h.RoundFocus(rec, httptest.NewRequest(http.MethodPost, "/cron/round-focus", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ran":true,"updated":3}`, rec.Body.String())

	h = NewCronHandler(&stubMatchStatus{}, &stubRoundFocus{updated: 1, err: services.ErrFocusUpdateFailed})
	rec = httptest.NewRecorder()
	h.RoundFocus(rec, httptest.NewRequest(http.MethodPost, "/cron/round-focus", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"ran":false,"error":"round focus update failed","updated":1}`, rec.Body.String())
}
