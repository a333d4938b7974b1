package payment

import "context"

// SignatureHeader carries the provider signature on webhook deliveries.
const SignatureHeader = "Stripe-Signature"

// EventCheckoutCompleted is the only event type that produces an order.
const EventCheckoutCompleted = "checkout.session.completed"

// SessionParams describes a hosted checkout session to open.
type SessionParams struct {
	AmountMinor       int64
	Currency          string
	ProductLabel      string
	Quantity          int64
	CustomerEmail     string
	ClientReferenceID string
	SuccessURL        string
	CancelURL         string
}

// Session is the handle returned by the provider for a hosted session.
type Session struct {
	ID  string
	URL string
}

// CheckoutSession is the completed-session payload extracted from an event.
// ClientReferenceID is the correlation token echoed back verbatim by the
// provider; it is the only link to the originating checkout request.
type CheckoutSession struct {
	ID                string
	ClientReferenceID string
	CustomerEmail     string
	AmountTotal       int64
}

// Event is a verified webhook event.
type Event struct {
	ID      string
	Type    string
	Session CheckoutSession
}

// Gateway abstracts the payment provider so tests can substitute it.
type Gateway interface {
	CreateCheckoutSession(ctx context.Context, p SessionParams) (*Session, error)
	VerifyAndParseEvent(payload []byte, signatureHeader string) (*Event, error)
}
