package repository

import (
	"context"

	"github.com/abdelrahman464/blackbox/internal/domain/model"
)

// ReconciliationRepository stores reconciliation failures pending retry.
type ReconciliationRepository interface {
	RecordFailure(ctx context.Context, f model.ReconciliationFailure) (*model.ReconciliationFailure, error)
	SelectBatchForRetry(ctx context.Context, limit, maxAttempts int) ([]model.ReconciliationFailure, error)
	MarkResolved(ctx context.Context, id int64) error
}
