package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/abdelrahman464/blackbox/internal/adapter/payment"
	domainErrors "github.com/abdelrahman464/blackbox/internal/domain/errors"
	"github.com/abdelrahman464/blackbox/internal/domain/model"
	"github.com/abdelrahman464/blackbox/internal/domain/repository"
	"github.com/abdelrahman464/blackbox/internal/observability"
)

const (
	reasonUserNotFound      = "purchasing user not found"
	reasonBadCorrelation    = "correlation token is not a service id"
	reasonDuplicateDelivery = "duplicate_session"
)

// ReconcileUseCase converts verified payment-completed events into durable
// paid orders.
type ReconcileUseCase struct {
	users    repository.UserRepository
	orders   repository.OrderRepository
	failures repository.ReconciliationRepository
	logger   *slog.Logger
	now      func() time.Time
}

// NewReconcileUseCase constructs ReconcileUseCase.
func NewReconcileUseCase(
	users repository.UserRepository,
	orders repository.OrderRepository,
	failures repository.ReconciliationRepository,
	logger *slog.Logger,
) *ReconcileUseCase {
	return &ReconcileUseCase{users: users, orders: orders, failures: failures, logger: logger, now: time.Now}
}

// Reconcile records a paid order for a completed checkout session. Events of
// any other type are ignored. Failures to relink the payment to a local user
// are recorded for background retry and swallowed: the caller still
// acknowledges the delivery so the provider does not retry-storm.
func (u *ReconcileUseCase) Reconcile(ctx context.Context, event *payment.Event) error {
	if event.Type != payment.EventCheckoutCompleted {
		observability.WebhookEventsSkipped.WithLabelValues("event_type").Inc()
		return nil
	}
	session := event.Session

	serviceID, err := strconv.ParseInt(session.ClientReferenceID, 10, 64)
	if err != nil {
		return u.recordFailure(ctx, event, reasonBadCorrelation)
	}

	user, err := u.users.GetByEmail(ctx, session.CustomerEmail)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return u.recordFailure(ctx, event, reasonUserNotFound)
		}
		return err
	}

	return u.materialize(ctx, user.ID, serviceID, session)
}

// FailuresForRetry returns stored reconciliation failures eligible for another
// attempt, bumping their attempt counters.
func (u *ReconcileUseCase) FailuresForRetry(ctx context.Context, limit, maxAttempts int) ([]model.ReconciliationFailure, error) {
	return u.failures.SelectBatchForRetry(ctx, limit, maxAttempts)
}

// RetryFailure re-runs reconciliation for a stored failure and marks it
// resolved on success.
func (u *ReconcileUseCase) RetryFailure(ctx context.Context, f model.ReconciliationFailure) error {
	serviceID, err := strconv.ParseInt(f.CorrelationToken, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: correlation token %q", domainErrors.ErrIntegrity, f.CorrelationToken)
	}

	user, err := u.users.GetByEmail(ctx, f.Email)
	if err != nil {
		observability.ReconciliationRetries.WithLabelValues("unresolved").Inc()
		return err
	}

	session := payment.CheckoutSession{
		ID:                f.SessionID,
		ClientReferenceID: f.CorrelationToken,
		CustomerEmail:     f.Email,
		AmountTotal:       f.AmountMinor,
	}
	if err := u.materialize(ctx, user.ID, serviceID, session); err != nil {
		observability.ReconciliationRetries.WithLabelValues("unresolved").Inc()
		return err
	}
	if err := u.failures.MarkResolved(ctx, f.ID); err != nil {
		return err
	}
	observability.ReconciliationRetries.WithLabelValues("resolved").Inc()
	return nil
}

// materialize creates the paid order and lets storage bump the sold counter in
// the same transaction. A redelivered session id is a no-op.
func (u *ReconcileUseCase) materialize(ctx context.Context, userID, serviceID int64, session payment.CheckoutSession) error {
	order, created, err := u.orders.CreatePaid(ctx, repository.PaidOrderParams{
		UserID:            userID,
		ServiceID:         serviceID,
		TotalPrice:        float64(session.AmountTotal) / 100,
		PaymentMethod:     model.PaymentMethodCard,
		ProviderSessionID: session.ID,
		PaidAt:            u.now(),
	})
	if err != nil {
		return err
	}
	if !created {
		observability.WebhookEventsSkipped.WithLabelValues(reasonDuplicateDelivery).Inc()
		u.logger.Info("checkout session already reconciled",
			slog.String("session_id", session.ID),
			slog.Int64("order_id", order.ID),
		)
		return nil
	}

	observability.OrdersReconciled.Inc()
	u.logger.Info("order reconciled",
		slog.Int64("order_id", order.ID),
		slog.Int64("user_id", userID),
		slog.Int64("service_id", serviceID),
		slog.Float64("total_price", order.TotalPrice),
	)
	return nil
}

func (u *ReconcileUseCase) recordFailure(ctx context.Context, event *payment.Event, reason string) error {
	session := event.Session
	failure := model.ReconciliationFailure{
		EventID:          event.ID,
		SessionID:        session.ID,
		CorrelationToken: session.ClientReferenceID,
		Email:            session.CustomerEmail,
		AmountMinor:      session.AmountTotal,
		Reason:           reason,
	}
	if _, err := u.failures.RecordFailure(ctx, failure); err != nil {
		return err
	}
	observability.ReconciliationFailures.WithLabelValues(reason).Inc()
	u.logger.Error("payment reconciliation failed",
		slog.String("event_id", event.ID),
		slog.String("session_id", session.ID),
		slog.String("email", session.CustomerEmail),
		slog.String("reason", reason),
	)
	return nil
}
