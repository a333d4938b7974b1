package test

import (
	"context"
	"sync"

	"github.com/abdelrahman464/blackbox/internal/adapter/payment"
	"github.com/abdelrahman464/blackbox/internal/domain/model"
)

// MarketFacadeStub simulates the application facade for HTTP layer tests.
// Every operation can be overridden with a function field; unset operations
// return benign defaults.
type MarketFacadeStub struct {
	ParseTokenFn         func(string) (model.Principal, error)
	RequestsFn           func(context.Context) ([]model.Request, error)
	CreateRequestFn      func(context.Context, model.Principal, int64, string) (*model.Request, error)
	RequestFn            func(context.Context, model.Principal, int64) (*model.Request, error)
	UpdateRequestFn      func(context.Context, model.Principal, int64, string) (*model.Request, error)
	DeleteRequestFn      func(context.Context, int64) error
	UpdateStatusFn       func(context.Context, int64, string) (*model.Request, error)
	CreateSessionFn      func(context.Context, model.Principal, int64, string) (*payment.Session, error)
	OrdersFn             func(context.Context, model.Principal) ([]model.Order, error)
	OrderFn              func(context.Context, model.Principal, int64) (*model.Order, error)
	VerifyPaymentEventFn func([]byte, string) (*payment.Event, error)
	ReconcilePaymentFn   func(context.Context, *payment.Event) error
}

// ParseToken resolves test tokens into principals.
func (s MarketFacadeStub) ParseToken(token string) (model.Principal, error) {
	if s.ParseTokenFn != nil {
		return s.ParseTokenFn(token)
	}
	return model.Principal{UserID: 1, Role: model.RoleUser}, nil
}

// Requests lists requests.
func (s MarketFacadeStub) Requests(ctx context.Context) ([]model.Request, error) {
	if s.RequestsFn != nil {
		return s.RequestsFn(ctx)
	}
	return nil, nil
}

// CreateRequest stores a request.
func (s MarketFacadeStub) CreateRequest(ctx context.Context, principal model.Principal, serviceID int64, text string) (*model.Request, error) {
	if s.CreateRequestFn != nil {
		return s.CreateRequestFn(ctx, principal, serviceID, text)
	}
	return &model.Request{ID: 1, UserID: principal.UserID, ServiceID: serviceID, Text: text, Status: model.RequestStatusPending}, nil
}

// Request reads one request.
func (s MarketFacadeStub) Request(ctx context.Context, principal model.Principal, id int64) (*model.Request, error) {
	if s.RequestFn != nil {
		return s.RequestFn(ctx, principal, id)
	}
	return &model.Request{ID: id, UserID: principal.UserID}, nil
}

// UpdateRequest rewrites one request.
func (s MarketFacadeStub) UpdateRequest(ctx context.Context, principal model.Principal, id int64, text string) (*model.Request, error) {
	if s.UpdateRequestFn != nil {
		return s.UpdateRequestFn(ctx, principal, id, text)
	}
	return &model.Request{ID: id, UserID: principal.UserID, Text: text}, nil
}

// DeleteRequest removes one request.
func (s MarketFacadeStub) DeleteRequest(ctx context.Context, id int64) error {
	if s.DeleteRequestFn != nil {
		return s.DeleteRequestFn(ctx, id)
	}
	return nil
}

// UpdateRequestStatus moves one request to a new status.
func (s MarketFacadeStub) UpdateRequestStatus(ctx context.Context, id int64, status string) (*model.Request, error) {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, id, status)
	}
	return &model.Request{ID: id, Status: model.RequestStatus(status)}, nil
}

// CreateCheckoutSession opens a fake hosted session.
func (s MarketFacadeStub) CreateCheckoutSession(ctx context.Context, principal model.Principal, serviceID int64, origin string) (*payment.Session, error) {
	if s.CreateSessionFn != nil {
		return s.CreateSessionFn(ctx, principal, serviceID, origin)
	}
	return &payment.Session{ID: "cs_stub", URL: "https://checkout.example/cs_stub"}, nil
}

// Orders lists orders.
func (s MarketFacadeStub) Orders(ctx context.Context, principal model.Principal) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, principal)
	}
	return nil, nil
}

// Order reads one order.
func (s MarketFacadeStub) Order(ctx context.Context, principal model.Principal, id int64) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, principal, id)
	}
	return &model.Order{ID: id, UserID: principal.UserID}, nil
}

// VerifyPaymentEvent authenticates a delivery.
func (s MarketFacadeStub) VerifyPaymentEvent(payload []byte, signatureHeader string) (*payment.Event, error) {
	if s.VerifyPaymentEventFn != nil {
		return s.VerifyPaymentEventFn(payload, signatureHeader)
	}
	return &payment.Event{ID: "evt_stub", Type: payment.EventCheckoutCompleted}, nil
}

// ReconcilePayment records the event.
func (s MarketFacadeStub) ReconcilePayment(ctx context.Context, event *payment.Event) error {
	if s.ReconcilePaymentFn != nil {
		return s.ReconcilePaymentFn(ctx, event)
	}
	return nil
}

// WorkerFacadeStub feeds the retry worker scripted failure batches.
type WorkerFacadeStub struct {
	sync.Mutex
	Batches [][]model.ReconciliationFailure
	RetryFn func(context.Context, model.ReconciliationFailure) error
	Retried []model.ReconciliationFailure
}

// FailuresForRetry pops the next scripted batch.
func (s *WorkerFacadeStub) FailuresForRetry(ctx context.Context, limit, maxAttempts int) ([]model.ReconciliationFailure, error) {
	s.Lock()
	defer s.Unlock()
	if len(s.Batches) == 0 {
		return nil, nil
	}
	batch := s.Batches[0]
	s.Batches = s.Batches[1:]
	return batch, nil
}

// RetryFailure records the attempt and delegates to the override.
func (s *WorkerFacadeStub) RetryFailure(ctx context.Context, f model.ReconciliationFailure) error {
	s.Lock()
	s.Retried = append(s.Retried, f)
	fn := s.RetryFn
	s.Unlock()
	if fn != nil {
		return fn(ctx, f)
	}
	return nil
}
