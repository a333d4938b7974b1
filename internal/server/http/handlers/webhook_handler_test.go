package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/abdelrahman464/blackbox/internal/adapter/payment"
	"github.com/abdelrahman464/blackbox/internal/server/http/dto"
	testhelpers "github.com/abdelrahman464/blackbox/internal/test"
)

func newWebhookHandler(facade WebhookFacade) *WebhookHandler {
	return NewWebhookHandler(facade, slog.New(slog.NewJSONHandler(io.Discard, nil)))
}

func TestWebhookHandlerBadSignature(t *testing.T) {
	reconciled := false
	handler := newWebhookHandler(testhelpers.MarketFacadeStub{
		VerifyPaymentEventFn: func(payload []byte, header string) (*payment.Event, error) {
			return nil, payment.ErrInvalidSignature
		},
		ReconcilePaymentFn: func(context.Context, *payment.Event) error {
			reconciled = true
			return nil
		},
	})

	resp := performRequest(t, http.MethodPost, "/webhook-checkout", "/webhook-checkout", handler.HandleCheckout, nil,
		[]byte(`{"type":"checkout.session.completed"}`), map[string]string{payment.SignatureHeader: "t=1,v1=bad"})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
	if reconciled {
		t.Fatal("an unauthenticated delivery must never reach reconciliation")
	}
}

func TestWebhookHandlerAck(t *testing.T) {
	var got *payment.Event
	handler := newWebhookHandler(testhelpers.MarketFacadeStub{
		VerifyPaymentEventFn: func(payload []byte, header string) (*payment.Event, error) {
			return &payment.Event{
				ID:   "evt_1",
				Type: payment.EventCheckoutCompleted,
				Session: payment.CheckoutSession{
					ID:                "cs_1",
					ClientReferenceID: "3",
					CustomerEmail:     "jane@example.com",
					AmountTotal:       5000,
				},
			}, nil
		},
		ReconcilePaymentFn: func(ctx context.Context, event *payment.Event) error {
			got = event
			return nil
		},
	})

	resp := performRequest(t, http.MethodPost, "/webhook-checkout", "/webhook-checkout", handler.HandleCheckout, nil,
		[]byte(`{}`), map[string]string{payment.SignatureHeader: "t=1,v1=good"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var ack dto.WebhookAck
	if err := json.Unmarshal(resp.Body.Bytes(), &ack); err != nil {
		t.Fatalf("decode ack: %v", err)
	}
	if !ack.Received {
		t.Fatal("expected received ack")
	}
	if got == nil || got.Session.ID != "cs_1" {
		t.Fatalf("expected event forwarded to reconciliation, got %+v", got)
	}
}

func TestWebhookHandlerAcksDespiteReconcileError(t *testing.T) {
	handler := newWebhookHandler(testhelpers.MarketFacadeStub{
		ReconcilePaymentFn: func(context.Context, *payment.Event) error {
			return errors.New("db down")
		},
	})

	resp := performRequest(t, http.MethodPost, "/webhook-checkout", "/webhook-checkout", handler.HandleCheckout, nil,
		[]byte(`{}`), map[string]string{payment.SignatureHeader: "t=1,v1=good"})
	if resp.Code != http.StatusOK {
		t.Fatalf("verified deliveries must always ack 200, got %d", resp.Code)
	}
}
