package model

import "time"

// PaymentMethod describes how an order was settled.
type PaymentMethod string

const (
	PaymentMethodCard PaymentMethod = "card"
	PaymentMethodCash PaymentMethod = "cash"
)

// Order is a durable record of a confirmed payment. Orders are created only
// by webhook reconciliation and are immutable afterwards.
type Order struct {
	ID                int64
	UserID            int64
	TotalPrice        float64
	Paid              bool
	PaidAt            *time.Time
	PaymentMethod     PaymentMethod
	ProviderSessionID string
	CreatedAt         time.Time
}
