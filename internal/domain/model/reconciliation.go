package model

import "time"

// ReconciliationFailure records a verified payment event that could not be
// converted into an order, so it can be retried and alerted on.
type ReconciliationFailure struct {
	ID               int64
	EventID          string
	SessionID        string
	CorrelationToken string
	Email            string
	AmountMinor      int64
	Reason           string
	Attempts         int
	CreatedAt        time.Time
	ResolvedAt       *time.Time
}
