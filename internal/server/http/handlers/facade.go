package handlers

import (
	"context"

	"github.com/abdelrahman464/blackbox/internal/adapter/payment"
	"github.com/abdelrahman464/blackbox/internal/domain/model"
)

// RequestFacade encapsulates request lifecycle operations exposed via HTTP.
type RequestFacade interface {
	Requests(ctx context.Context) ([]model.Request, error)
	CreateRequest(ctx context.Context, principal model.Principal, serviceID int64, text string) (*model.Request, error)
	Request(ctx context.Context, principal model.Principal, id int64) (*model.Request, error)
	UpdateRequest(ctx context.Context, principal model.Principal, id int64, text string) (*model.Request, error)
	DeleteRequest(ctx context.Context, id int64) error
	UpdateRequestStatus(ctx context.Context, id int64, status string) (*model.Request, error)
}

// OrderFacade encapsulates checkout and order read operations.
type OrderFacade interface {
	CreateCheckoutSession(ctx context.Context, principal model.Principal, serviceID int64, origin string) (*payment.Session, error)
	Orders(ctx context.Context, principal model.Principal) ([]model.Order, error)
	Order(ctx context.Context, principal model.Principal, id int64) (*model.Order, error)
}

// WebhookFacade authenticates and reconciles provider deliveries.
type WebhookFacade interface {
	VerifyPaymentEvent(payload []byte, signatureHeader string) (*payment.Event, error)
	ReconcilePayment(ctx context.Context, event *payment.Event) error
}

// MarketFacade aggregates the full set of operations used across handlers.
type MarketFacade interface {
	ParseToken(token string) (model.Principal, error)
	RequestFacade
	OrderFacade
	WebhookFacade
}
