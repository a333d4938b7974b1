package usecase

import (
	"context"
	"errors"

	domainErrors "github.com/abdelrahman464/blackbox/internal/domain/errors"
	"github.com/abdelrahman464/blackbox/internal/domain/model"
	"github.com/abdelrahman464/blackbox/internal/domain/repository"
)

// RequestUseCase encapsulates service request lifecycle logic.
type RequestUseCase struct {
	requests repository.RequestRepository
	services repository.ServiceRepository
}

// NewRequestUseCase constructs RequestUseCase.
func NewRequestUseCase(requests repository.RequestRepository, services repository.ServiceRepository) *RequestUseCase {
	return &RequestUseCase{requests: requests, services: services}
}

// List returns all requests with user and service fields projected.
func (u *RequestUseCase) List(ctx context.Context) ([]model.Request, error) {
	return u.requests.List(ctx, repository.Relations{User: true, Service: true})
}

// Create stores a new pending request for the acting principal.
func (u *RequestUseCase) Create(ctx context.Context, principal model.Principal, serviceID int64, text string) (*model.Request, error) {
	if !ValidateRequestText(text) {
		return nil, domainErrors.ErrValidation
	}
	if _, err := u.services.GetByID(ctx, serviceID); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrValidation
		}
		return nil, err
	}
	return u.requests.Create(ctx, principal.UserID, serviceID, text)
}

// Get returns a request visible to the acting principal.
func (u *RequestUseCase) Get(ctx context.Context, principal model.Principal, id int64) (*model.Request, error) {
	if err := u.authorizeOwner(ctx, principal, id); err != nil {
		return nil, err
	}
	return u.requests.GetByID(ctx, id, repository.Relations{User: true, Service: true})
}

// UpdateText rewrites the request text on behalf of its owner.
func (u *RequestUseCase) UpdateText(ctx context.Context, principal model.Principal, id int64, text string) (*model.Request, error) {
	if !ValidateRequestText(text) {
		return nil, domainErrors.ErrValidation
	}
	if err := u.authorizeOwner(ctx, principal, id); err != nil {
		return nil, err
	}
	return u.requests.UpdateText(ctx, id, text)
}

// Delete removes a request. Role restriction is enforced at the route.
func (u *RequestUseCase) Delete(ctx context.Context, id int64) error {
	return u.requests.Delete(ctx, id)
}

// UpdateStatus moves a request to the given status. Unknown status values are
// rejected before touching storage.
func (u *RequestUseCase) UpdateStatus(ctx context.Context, id int64, status string) (*model.Request, error) {
	parsed, err := model.ParseRequestStatus(status)
	if err != nil {
		return nil, domainErrors.ErrValidation
	}
	return u.requests.UpdateStatus(ctx, id, parsed)
}

// authorizeOwner loads the record and compares its owner to the acting
// principal. Running the guard before the operation keeps a missing record
// distinguishable from a foreign one: absent yields ErrNotFound, foreign
// yields ErrNotAuthorized.
func (u *RequestUseCase) authorizeOwner(ctx context.Context, principal model.Principal, id int64) error {
	req, err := u.requests.GetByID(ctx, id, repository.Relations{})
	if err != nil {
		return err
	}
	if principal.IsAdmin() {
		return nil
	}
	if req.UserID != principal.UserID {
		return domainErrors.ErrNotAuthorized
	}
	return nil
}
