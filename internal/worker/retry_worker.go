package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/abdelrahman464/blackbox/internal/domain/model"
)

// ReconciliationFacade exposes the subset of application functionality
// required by the worker.
type ReconciliationFacade interface {
	FailuresForRetry(ctx context.Context, limit, maxAttempts int) ([]model.ReconciliationFailure, error)
	RetryFailure(ctx context.Context, f model.ReconciliationFailure) error
}

// RetryWorker polls stored reconciliation failures and re-attempts them
// concurrently.
type RetryWorker struct {
	facade       ReconciliationFacade
	pollInterval time.Duration
	batchSize    int
	maxAttempts  int
	workers      int
	logger       *slog.Logger

	jobs   chan model.ReconciliationFailure
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewRetryWorker constructs reconciliation retry worker pool.
func NewRetryWorker(facade ReconciliationFacade, pollInterval time.Duration, batchSize, maxAttempts, workers int, logger *slog.Logger) *RetryWorker {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	return &RetryWorker{
		facade:       facade,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		maxAttempts:  maxAttempts,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.ReconciliationFailure, batchSize*workers),
	}
}

// Start launches background processing.
func (w *RetryWorker) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	for i := 0; i < w.workers; i++ {
		w.wg.Add(1)
		go w.worker(runCtx)
	}

	w.wg.Add(1)
	go w.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (w *RetryWorker) Stop() {
	w.mu.Lock()
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
	w.mu.Unlock()

	w.wg.Wait()
}

func (w *RetryWorker) dispatch(ctx context.Context) {
	defer w.wg.Done()
	defer close(w.jobs)
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.fetchAndDispatch(ctx)
		}
	}
}

func (w *RetryWorker) fetchAndDispatch(ctx context.Context) {
	failures, err := w.facade.FailuresForRetry(ctx, w.batchSize, w.maxAttempts)
	if err != nil {
		w.logger.Error("fetch reconciliation failures failed", slog.String("error", err.Error()))
		return
	}
	for _, failure := range failures {
		select {
		case <-ctx.Done():
			return
		case w.jobs <- failure:
		}
	}
}

func (w *RetryWorker) worker(ctx context.Context) {
	defer w.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case failure, ok := <-w.jobs:
			if !ok {
				return
			}
			w.handleFailure(ctx, failure)
		}
	}
}

func (w *RetryWorker) handleFailure(ctx context.Context, failure model.ReconciliationFailure) {
	err := w.facade.RetryFailure(ctx, failure)
	if err == nil {
		w.logger.Info("reconciliation failure resolved",
			slog.Int64("failure_id", failure.ID),
			slog.String("session_id", failure.SessionID),
		)
		return
	}

	if failure.Attempts >= w.maxAttempts {
		// Last attempt exhausted: escalate so an operator picks it up.
		w.logger.Error("reconciliation failure exhausted retries",
			slog.Int64("failure_id", failure.ID),
			slog.String("session_id", failure.SessionID),
			slog.String("email", failure.Email),
			slog.Int("attempts", failure.Attempts),
			slog.String("error", err.Error()),
		)
		return
	}

	w.logger.Warn("reconciliation retry failed",
		slog.Int64("failure_id", failure.ID),
		slog.String("session_id", failure.SessionID),
		slog.Int("attempts", failure.Attempts),
		slog.String("error", err.Error()),
	)
}
