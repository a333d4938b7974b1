package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/abdelrahman464/blackbox/internal/domain/model"
	testhelpers "github.com/abdelrahman464/blackbox/internal/test"
)

func TestNewRetryWorkerDefaults(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	w := NewRetryWorker(&testhelpers.WorkerFacadeStub{}, time.Second, 0, 0, 0, logger)
	if w.batchSize != 1 {
		t.Fatalf("expected batch size default to 1, got %d", w.batchSize)
	}
	if w.workers != 1 {
		t.Fatalf("expected workers default to 1, got %d", w.workers)
	}
	if w.maxAttempts != 1 {
		t.Fatalf("expected max attempts default to 1, got %d", w.maxAttempts)
	}
}

func TestRetryWorkerProcessesFailures(t *testing.T) {
	defer goleak.VerifyNone(t)

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	facade := &testhelpers.WorkerFacadeStub{
		Batches: [][]model.ReconciliationFailure{{{ID: 1, SessionID: "cs_1", Attempts: 1}}},
	}
	w := NewRetryWorker(facade, 10*time.Millisecond, 1, 5, 1, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)

	deadline := time.After(500 * time.Millisecond)
	for {
		facade.Lock()
		processed := len(facade.Retried) > 0
		facade.Unlock()
		if processed {
			break
		}
		select {
		case <-deadline:
			t.Fatal("timeout waiting for failure retry")
		case <-time.After(10 * time.Millisecond):
		}
	}

	w.Stop()
	facade.Lock()
	defer facade.Unlock()
	if facade.Retried[0].ID != 1 {
		t.Fatalf("unexpected retried failure %+v", facade.Retried[0])
	}
}

func TestRetryWorkerKeepsGoingOnRetryError(t *testing.T) {
	defer goleak.VerifyNone(t)

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	facade := &testhelpers.WorkerFacadeStub{
		Batches: [][]model.ReconciliationFailure{
			{{ID: 1, SessionID: "cs_1", Attempts: 5}},
			{{ID: 2, SessionID: "cs_2", Attempts: 1}},
		},
		RetryFn: func(ctx context.Context, f model.ReconciliationFailure) error {
			if f.ID == 1 {
				return errors.New("still unresolved")
			}
			return nil
		},
	}
	w := NewRetryWorker(facade, 5*time.Millisecond, 1, 5, 1, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)

	deadline := time.After(time.Second)
	for {
		facade.Lock()
		done := len(facade.Retried) >= 2
		facade.Unlock()
		if done {
			break
		}
		select {
		case <-deadline:
			t.Fatal("timeout waiting for both retries")
		case <-time.After(10 * time.Millisecond):
		}
	}
	w.Stop()
}

func TestRetryWorkerStopIsIdempotent(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	w := NewRetryWorker(&testhelpers.WorkerFacadeStub{}, 10*time.Millisecond, 1, 5, 2, logger)

	w.Start(context.Background())
	w.Stop()
	w.Stop()
}
