package expiry

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingSweeper struct {
	calls  atomic.Int32
	err    error
	cancel context.CancelFunc
	stopAt int32
}

func (s *countingSweeper) Execute(context.Context) (int, error) {
	n := s.calls.Add(1)
	if n >= s.stopAt {
		s.cancel()
	}
	return 1, s.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func runUntilDone(t *testing.T, w *Worker, ctx context.Context) {
	t.Helper()

	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not stop after context cancellation")
	}
}

func TestWorker_SweepsUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sweeper := &countingSweeper{cancel: cancel, stopAt: 3}
	runUntilDone(t, NewWorker(sweeper, time.Millisecond, nopLogger{}), ctx)

	assert.Equal(t, int32(3), sweeper.calls.Load())
}

func TestWorker_KeepsRunningAfterError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sweeper := &countingSweeper{cancel: cancel, stopAt: 2, err: errors.New("db is down")}
	runUntilDone(t, NewWorker(sweeper, time.Millisecond, nopLogger{}), ctx)

	assert.Equal(t, int32(2), sweeper.calls.Load())
}

func TestWorker_FirstSweepIsImmediate(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sweeper := &countingSweeper{cancel: cancel, stopAt: 1}
	start := time.Now()
	runUntilDone(t, NewWorker(sweeper, time.Hour, nopLogger{}), ctx)

	assert.Equal(t, int32(1), sweeper.calls.Load())
	assert.Less(t, time.Since(start), time.Minute)
}
