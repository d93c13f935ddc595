package scheduler

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/goinvest/internal/usecase"
)

type fakeTicker struct {
	mu    sync.Mutex
	dates []time.Time
	err   error
}

func (f *fakeTicker) RunScheduledTick(_ context.Context, date time.Time) (*usecase.TickResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dates = append(f.dates, date)
	return &usecase.TickResult{Date: date, InvestmentsAdvanced: 2, ReleasesCompleted: 1}, f.err
}

func (f *fakeTicker) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.dates)
}

func TestNew_RejectsBadSpec(t *testing.T) {
	_, err := New(Config{Spec: "every day"}, &fakeTicker{}, zerolog.Nop())
	assert.Error(t, err)
}

func TestRunOnce_TicksStartOfDay(t *testing.T) {
	var buf bytes.Buffer
	ticker := &fakeTicker{}
	s, err := New(Config{Spec: "5 0 * * *"}, ticker, zerolog.New(&buf))
	require.NoError(t, err)
	s.now = func() time.Time { return time.Date(2024, time.February, 1, 0, 5, 12, 0, time.UTC) }

	res, err := s.RunOnce(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, res.InvestmentsAdvanced)
	require.Len(t, ticker.dates, 1)
	assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), ticker.dates[0])
	assert.Contains(t, buf.String(), `"date":"2024-02-01"`)
	assert.Contains(t, buf.String(), `"releases_completed":1`)
}

func TestRunOnce_LogsFailure(t *testing.T) {
	var buf bytes.Buffer
	ticker := &fakeTicker{err: errors.New("owner bob: disk full")}
	s, err := New(Config{Spec: "@daily"}, ticker, zerolog.New(&buf))
	require.NoError(t, err)

	_, err = s.RunOnce(context.Background())
	assert.Error(t, err)
	assert.Contains(t, buf.String(), `"level":"error"`)
	assert.Contains(t, buf.String(), "disk full")
}

func TestScheduler_RunsOnSchedule(t *testing.T) {
	ticker := &fakeTicker{}
	s, err := New(Config{Spec: "@every 10ms"}, ticker, zerolog.Nop())
	require.NoError(t, err)

	s.Start()
	assert.Eventually(t, func() bool { return ticker.calls() >= 2 }, time.Second, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}
