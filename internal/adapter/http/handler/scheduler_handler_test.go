package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/iho/goinvest/internal/adapter/http/dto"
	"github.com/iho/goinvest/internal/usecase"
)

func TestSchedulerHandler_Tick(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		tickErr  error
		wantCode int
		wantDate string
	}{
		{name: "explicit date", body: `{"date":"2024-02-17"}`, wantCode: http.StatusOK, wantDate: "2024-02-17"},
		{name: "defaults to today", body: "", wantCode: http.StatusOK, wantDate: "2024-01-15"},
		{name: "bad date", body: `{"date":"tomorrow"}`, wantCode: http.StatusBadRequest},
		{name: "partial failure", body: `{"date":"2024-02-01"}`, tickErr: errors.New("owner bob: disk full"), wantCode: http.StatusInternalServerError, wantDate: "2024-02-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewSchedulerHandler(&tickServiceStub{
				tickFn: func(ctx context.Context, date time.Time) (*usecase.TickResult, error) {
					return &usecase.TickResult{Date: date, InvestmentsAdvanced: 1}, tt.tickErr
				},
			})
			h.now = func() time.Time { return testNow.Add(15 * time.Hour) }

			rec := httptest.NewRecorder()
			h.Tick(rec, newRequest(http.MethodPost, "/scheduler/tick", tt.body, nil, nil))

			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d: %s", tt.wantCode, rec.Code, rec.Body.String())
			}
			if tt.wantDate == "" {
				return
			}

			var resp dto.TickResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Date != tt.wantDate || resp.InvestmentsAdvanced != 1 {
				t.Fatalf("unexpected response %+v", resp)
			}
			if (tt.tickErr != nil) != (resp.Error != "") {
				t.Fatalf("unexpected error field %q", resp.Error)
			}
		})
	}
}
