package app

import (
	"context"

	"github.com/abdelrahman464/blackbox/internal/adapter/payment"
	"github.com/abdelrahman464/blackbox/internal/domain/model"
	pkgAuth "github.com/abdelrahman464/blackbox/internal/pkg/auth"
	"github.com/abdelrahman464/blackbox/internal/usecase"
)

// MarketFacade aggregates the use cases behind a single application surface
// consumed by the HTTP layer and the retry worker.
type MarketFacade struct {
	tokens    pkgAuth.Strategy
	requests  *usecase.RequestUseCase
	checkout  *usecase.CheckoutUseCase
	orders    *usecase.OrderUseCase
	reconcile *usecase.ReconcileUseCase
	gateway   payment.Gateway
}

// NewMarketFacade constructs MarketFacade.
func NewMarketFacade(
	tokens pkgAuth.Strategy,
	requests *usecase.RequestUseCase,
	checkout *usecase.CheckoutUseCase,
	orders *usecase.OrderUseCase,
	reconcile *usecase.ReconcileUseCase,
	gateway payment.Gateway,
) *MarketFacade {
	return &MarketFacade{
		tokens:    tokens,
		requests:  requests,
		checkout:  checkout,
		orders:    orders,
		reconcile: reconcile,
		gateway:   gateway,
	}
}

// ParseToken resolves a bearer token into the acting principal.
func (f *MarketFacade) ParseToken(token string) (model.Principal, error) {
	return f.tokens.ParseToken(token)
}

// Requests returns all requests with related fields projected.
func (f *MarketFacade) Requests(ctx context.Context) ([]model.Request, error) {
	return f.requests.List(ctx)
}

// CreateRequest stores a new pending request.
func (f *MarketFacade) CreateRequest(ctx context.Context, principal model.Principal, serviceID int64, text string) (*model.Request, error) {
	return f.requests.Create(ctx, principal, serviceID, text)
}

// Request returns one request visible to the principal.
func (f *MarketFacade) Request(ctx context.Context, principal model.Principal, id int64) (*model.Request, error) {
	return f.requests.Get(ctx, principal, id)
}

// UpdateRequest rewrites the request text.
func (f *MarketFacade) UpdateRequest(ctx context.Context, principal model.Principal, id int64, text string) (*model.Request, error) {
	return f.requests.UpdateText(ctx, principal, id, text)
}

// DeleteRequest removes a request.
func (f *MarketFacade) DeleteRequest(ctx context.Context, id int64) error {
	return f.requests.Delete(ctx, id)
}

// UpdateRequestStatus moves a request to a new status.
func (f *MarketFacade) UpdateRequestStatus(ctx context.Context, id int64, status string) (*model.Request, error) {
	return f.requests.UpdateStatus(ctx, id, status)
}

// CreateCheckoutSession opens a provider-hosted payment session.
func (f *MarketFacade) CreateCheckoutSession(ctx context.Context, principal model.Principal, serviceID int64, origin string) (*payment.Session, error) {
	return f.checkout.CreateSession(ctx, principal, serviceID, origin)
}

// Orders lists orders scoped to the principal's role.
func (f *MarketFacade) Orders(ctx context.Context, principal model.Principal) ([]model.Order, error) {
	return f.orders.List(ctx, principal)
}

// Order returns one order visible to the principal.
func (f *MarketFacade) Order(ctx context.Context, principal model.Principal, id int64) (*model.Order, error) {
	return f.orders.Get(ctx, principal, id)
}

// VerifyPaymentEvent authenticates and parses a raw webhook delivery.
func (f *MarketFacade) VerifyPaymentEvent(payload []byte, signatureHeader string) (*payment.Event, error) {
	return f.gateway.VerifyAndParseEvent(payload, signatureHeader)
}

// ReconcilePayment turns a verified event into a durable order.
func (f *MarketFacade) ReconcilePayment(ctx context.Context, event *payment.Event) error {
	return f.reconcile.Reconcile(ctx, event)
}

// FailuresForRetry exposes stored reconciliation failures to the worker.
func (f *MarketFacade) FailuresForRetry(ctx context.Context, limit, maxAttempts int) ([]model.ReconciliationFailure, error) {
	return f.reconcile.FailuresForRetry(ctx, limit, maxAttempts)
}

// RetryFailure re-runs reconciliation for a stored failure.
func (f *MarketFacade) RetryFailure(ctx context.Context, failure model.ReconciliationFailure) error {
	return f.reconcile.RetryFailure(ctx, failure)
}
