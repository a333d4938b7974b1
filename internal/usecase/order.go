package usecase

import (
	"context"

	domainErrors "github.com/abdelrahman464/blackbox/internal/domain/errors"
	"github.com/abdelrahman464/blackbox/internal/domain/model"
	"github.com/abdelrahman464/blackbox/internal/domain/repository"
)

// OrderUseCase serves read access to reconciled orders.
type OrderUseCase struct {
	orders repository.OrderRepository
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository) *OrderUseCase {
	return &OrderUseCase{orders: orders}
}

// List returns every order for admins and only the principal's own otherwise.
func (u *OrderUseCase) List(ctx context.Context, principal model.Principal) ([]model.Order, error) {
	if principal.IsAdmin() {
		return u.orders.List(ctx)
	}
	return u.orders.ListByUser(ctx, principal.UserID)
}

// Get returns a single order visible to the acting principal.
func (u *OrderUseCase) Get(ctx context.Context, principal model.Principal, id int64) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !principal.IsAdmin() && order.UserID != principal.UserID {
		return nil, domainErrors.ErrNotAuthorized
	}
	return order, nil
}
