package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/iho/goinvest/internal/adapter/http/dto"
	"github.com/iho/goinvest/internal/usecase"
)

// TickService defines the behavior needed by SchedulerHandler.
type TickService interface {
	RunScheduledTick(ctx context.Context, date time.Time) (*usecase.TickResult, error)
}

// SchedulerHandler lets an admin run the daily tick on demand.
type SchedulerHandler struct {
	schedulerUC TickService
	now         func() time.Time
}

// NewSchedulerHandler creates a new SchedulerHandler.
func NewSchedulerHandler(schedulerUC TickService) *SchedulerHandler {
	return &SchedulerHandler{
		schedulerUC: schedulerUC,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Tick runs maturity and release processing for the requested date. Admin only.
// Partial failures are reported with the counts of what did succeed.
func (h *SchedulerHandler) Tick(w http.ResponseWriter, r *http.Request) {
	var req dto.TickRequest
	if r.ContentLength != 0 && !decodeJSON(w, r, &req) {
		return
	}

	date, err := req.ParseDate(h.now())
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date", err.Error())
		return
	}

	res, err := h.schedulerUC.RunScheduledTick(r.Context(), date)
	if res == nil {
		writeDomainError(w, "tick failed", err)
		return
	}

	status := http.StatusOK
	if err != nil {
		status = mapDomainError(err)
	}
	writeJSON(w, status, dto.TickFromResult(res, err))
}
