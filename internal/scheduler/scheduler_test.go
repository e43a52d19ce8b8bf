package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"contentops/internal/domain"
	"contentops/internal/stream"
)

type countingRunner struct {
	calls atomic.Int64
	err   error
}

func (r *countingRunner) RunCycle(_ context.Context, projectID, _ int64, _ *stream.Emitter) (*domain.CycleStats, error) {
	r.calls.Add(1)
	if r.err != nil {
		return nil, r.err
	}
	return &domain.CycleStats{ProjectID: projectID, Action: domain.ActionCreateNew, Generated: true}, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestScheduler_RunsImmediatelyThenOnTicks(t *testing.T) {
	runner := &countingRunner{}
	sched := NewScheduler(runner, 7, 9, 20*time.Millisecond, time.Second, testLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 70*time.Millisecond)
	defer cancel()

	err := sched.Start(ctx)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.GreaterOrEqual(t, runner.calls.Load(), int64(2))
}

func TestScheduler_FailedCycleDoesNotStopTheLoop(t *testing.T) {
	runner := &countingRunner{err: errors.New("cycle failed")}
	sched := NewScheduler(runner, 7, 9, 20*time.Millisecond, time.Second, testLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 70*time.Millisecond)
	defer cancel()

	_ = sched.Start(ctx)

	assert.GreaterOrEqual(t, runner.calls.Load(), int64(2))
}

func TestScheduler_StopsOnCancel(t *testing.T) {
	runner := &countingRunner{}
	sched := NewScheduler(runner, 7, 9, time.Hour, time.Second, testLogger())

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- sched.Start(ctx) }()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop on cancel")
	}
	assert.Equal(t, int64(1), runner.calls.Load())
}
