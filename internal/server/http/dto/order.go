package dto

import (
	"time"

	"github.com/abdelrahman464/blackbox/internal/domain/model"
)

// OrderResponse is the wire shape of a reconciled order.
type OrderResponse struct {
	ID            int64      `json:"id"`
	TotalPrice    float64    `json:"totalPrice"`
	Paid          bool       `json:"paid"`
	PaidAt        *time.Time `json:"paidAt,omitempty"`
	PaymentMethod string     `json:"paymentMethod"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// ToOrderResponse projects a domain order onto the wire shape.
func ToOrderResponse(order model.Order) OrderResponse {
	return OrderResponse{
		ID:            order.ID,
		TotalPrice:    order.TotalPrice,
		Paid:          order.Paid,
		PaidAt:        order.PaidAt,
		PaymentMethod: string(order.PaymentMethod),
		CreatedAt:     order.CreatedAt,
	}
}

// CheckoutSessionResponse carries the hosted session handle back to the client.
type CheckoutSessionResponse struct {
	SessionID  string `json:"sessionId"`
	SessionURL string `json:"sessionUrl"`
}
