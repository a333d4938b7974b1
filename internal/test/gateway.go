package test

import (
	"context"

	"github.com/abdelrahman464/blackbox/internal/adapter/payment"
)

// GatewayStub substitutes the payment provider client in tests.
type GatewayStub struct {
	CreateSessionFn func(context.Context, payment.SessionParams) (*payment.Session, error)
	VerifyFn        func([]byte, string) (*payment.Event, error)

	CreatedParams []payment.SessionParams
}

// CreateCheckoutSession records parameters and returns a configured session.
func (s *GatewayStub) CreateCheckoutSession(ctx context.Context, params payment.SessionParams) (*payment.Session, error) {
	s.CreatedParams = append(s.CreatedParams, params)
	if s.CreateSessionFn != nil {
		return s.CreateSessionFn(ctx, params)
	}
	return &payment.Session{ID: "cs_stub", URL: "https://checkout.example/cs_stub"}, nil
}

// VerifyAndParseEvent delegates to the override or accepts any payload.
func (s *GatewayStub) VerifyAndParseEvent(payload []byte, signatureHeader string) (*payment.Event, error) {
	if s.VerifyFn != nil {
		return s.VerifyFn(payload, signatureHeader)
	}
	return &payment.Event{ID: "evt_stub", Type: payment.EventCheckoutCompleted}, nil
}

var _ payment.Gateway = (*GatewayStub)(nil)
