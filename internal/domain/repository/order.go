package repository

import (
	"context"
	"time"

	"github.com/abdelrahman464/blackbox/internal/domain/model"
)

// PaidOrderParams carries everything needed to materialize a paid order
// from a confirmed payment event.
type PaidOrderParams struct {
	UserID            int64
	ServiceID         int64
	TotalPrice        float64
	PaymentMethod     model.PaymentMethod
	ProviderSessionID string
	PaidAt            time.Time
}

// OrderRepository describes persistence operations for orders.
//
// CreatePaid inserts the order and increments the service sold counter in a
// single transaction. The provider session id is unique, so redelivered
// events return created=false without a second insert or increment.
type OrderRepository interface {
	CreatePaid(ctx context.Context, p PaidOrderParams) (*model.Order, bool, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	List(ctx context.Context) ([]model.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)
}
