package test

import (
	"context"
	"time"

	domainErrors "github.com/abdelrahman464/blackbox/internal/domain/errors"
	"github.com/abdelrahman464/blackbox/internal/domain/model"
	"github.com/abdelrahman464/blackbox/internal/domain/repository"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	ByID    map[int64]*model.User
	ByEmail map[string]*model.User
	Err     error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		ByID:    make(map[int64]*model.User),
		ByEmail: make(map[string]*model.User),
	}
}

// Add registers user in both lookup maps.
func (s *UserRepositoryStub) Add(u *model.User) {
	s.ByID[u.ID] = u
	s.ByEmail[u.Email] = u
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByEmail fetches user by email or returns not found.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByEmail[email]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ServiceRepositoryStub serves catalog entries from a map.
type ServiceRepositoryStub struct {
	Services map[int64]*model.Service
	Err      error
}

// NewServiceRepositoryStub constructs stub repository with an initialized map.
func NewServiceRepositoryStub() *ServiceRepositoryStub {
	return &ServiceRepositoryStub{Services: make(map[int64]*model.Service)}
}

// GetByID fetches service by identifier or returns not found.
func (s *ServiceRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Service, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if svc, ok := s.Services[id]; ok {
		return svc, nil
	}
	return nil, domainErrors.ErrNotFound
}

// RequestRepositoryStub allows tests to customize behaviour.
type RequestRepositoryStub struct {
	CreateFn       func(context.Context, int64, int64, string) (*model.Request, error)
	GetByIDFn      func(context.Context, int64, repository.Relations) (*model.Request, error)
	ListFn         func(context.Context, repository.Relations) ([]model.Request, error)
	UpdateTextFn   func(context.Context, int64, string) (*model.Request, error)
	UpdateStatusFn func(context.Context, int64, model.RequestStatus) (*model.Request, error)
	DeleteFn       func(context.Context, int64) error

	Requests map[int64]*model.Request
	Next     int64
	Deleted  []int64
}

// NewRequestRepositoryStub constructs stub repository with an initialized map.
func NewRequestRepositoryStub() *RequestRepositoryStub {
	return &RequestRepositoryStub{Requests: make(map[int64]*model.Request), Next: 1}
}

// Create stores a request with the next identifier.
func (s *RequestRepositoryStub) Create(ctx context.Context, userID, serviceID int64, text string) (*model.Request, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, userID, serviceID, text)
	}
	if s.Next == 0 {
		s.Next = 1
	}
	req := &model.Request{ID: s.Next, UserID: userID, ServiceID: serviceID, Text: text, Status: model.RequestStatusPending}
	s.Next++
	s.Requests[req.ID] = req
	return req, nil
}

// GetByID returns stored request or not found.
func (s *RequestRepositoryStub) GetByID(ctx context.Context, id int64, rel repository.Relations) (*model.Request, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id, rel)
	}
	if req, ok := s.Requests[id]; ok {
		return req, nil
	}
	return nil, domainErrors.ErrNotFound
}

// List returns all stored requests.
func (s *RequestRepositoryStub) List(ctx context.Context, rel repository.Relations) ([]model.Request, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, rel)
	}
	var result []model.Request
	for _, req := range s.Requests {
		result = append(result, *req)
	}
	return result, nil
}

// UpdateText rewrites the stored request text.
func (s *RequestRepositoryStub) UpdateText(ctx context.Context, id int64, text string) (*model.Request, error) {
	if s.UpdateTextFn != nil {
		return s.UpdateTextFn(ctx, id, text)
	}
	req, ok := s.Requests[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	req.Text = text
	return req, nil
}

// UpdateStatus rewrites the stored request status.
func (s *RequestRepositoryStub) UpdateStatus(ctx context.Context, id int64, status model.RequestStatus) (*model.Request, error) {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, id, status)
	}
	req, ok := s.Requests[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	req.Status = status
	return req, nil
}

// Delete removes the stored request.
func (s *RequestRepositoryStub) Delete(ctx context.Context, id int64) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	if _, ok := s.Requests[id]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(s.Requests, id)
	s.Deleted = append(s.Deleted, id)
	return nil
}

// OrderRepositoryStub allows tests to customize behaviour.
type OrderRepositoryStub struct {
	CreatePaidFn func(context.Context, repository.PaidOrderParams) (*model.Order, bool, error)
	GetByIDFn    func(context.Context, int64) (*model.Order, error)
	ListFn       func(context.Context) ([]model.Order, error)
	ListByUserFn func(context.Context, int64) ([]model.Order, error)

	Created []repository.PaidOrderParams
	Orders  []model.Order
}

// CreatePaid tracks invocations and returns configured responses. A repeated
// provider session id behaves like the real unique constraint: the existing
// order is returned with created=false.
func (s *OrderRepositoryStub) CreatePaid(ctx context.Context, p repository.PaidOrderParams) (*model.Order, bool, error) {
	if s.CreatePaidFn != nil {
		return s.CreatePaidFn(ctx, p)
	}
	for i := range s.Orders {
		if s.Orders[i].ProviderSessionID == p.ProviderSessionID {
			existing := s.Orders[i]
			return &existing, false, nil
		}
	}
	s.Created = append(s.Created, p)
	paidAt := p.PaidAt
	order := model.Order{
		ID:                int64(len(s.Orders) + 1),
		UserID:            p.UserID,
		TotalPrice:        p.TotalPrice,
		Paid:              true,
		PaidAt:            &paidAt,
		PaymentMethod:     p.PaymentMethod,
		ProviderSessionID: p.ProviderSessionID,
	}
	s.Orders = append(s.Orders, order)
	return &order, true, nil
}

// GetByID returns matched order either via override or stored slice.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	for _, o := range s.Orders {
		if o.ID == id {
			order := o
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// List returns all orders from the configured slice.
func (s *OrderRepositoryStub) List(ctx context.Context) ([]model.Order, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	return s.Orders, nil
}

// ListByUser filters the configured slice by owner.
func (s *OrderRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.ListByUserFn != nil {
		return s.ListByUserFn(ctx, userID)
	}
	var result []model.Order
	for _, o := range s.Orders {
		if o.UserID == userID {
			result = append(result, o)
		}
	}
	return result, nil
}

// ReconciliationRepositoryStub stores reconciliation failures for tests.
type ReconciliationRepositoryStub struct {
	RecordFailureFn func(context.Context, model.ReconciliationFailure) (*model.ReconciliationFailure, error)
	SelectBatchFn   func(context.Context, int, int) ([]model.ReconciliationFailure, error)
	MarkResolvedFn  func(context.Context, int64) error
	Failures        []model.ReconciliationFailure
	Resolved        []int64
	Next            int64
}

// RecordFailure appends a failure row.
func (s *ReconciliationRepositoryStub) RecordFailure(ctx context.Context, f model.ReconciliationFailure) (*model.ReconciliationFailure, error) {
	if s.RecordFailureFn != nil {
		return s.RecordFailureFn(ctx, f)
	}
	s.Next++
	f.ID = s.Next
	s.Failures = append(s.Failures, f)
	return &f, nil
}

// SelectBatchForRetry returns unresolved failures below the attempt cap.
func (s *ReconciliationRepositoryStub) SelectBatchForRetry(ctx context.Context, limit, maxAttempts int) ([]model.ReconciliationFailure, error) {
	if s.SelectBatchFn != nil {
		return s.SelectBatchFn(ctx, limit, maxAttempts)
	}
	var result []model.ReconciliationFailure
	for i := range s.Failures {
		if len(result) >= limit {
			break
		}
		if s.Failures[i].ResolvedAt == nil && s.Failures[i].Attempts < maxAttempts {
			s.Failures[i].Attempts++
			result = append(result, s.Failures[i])
		}
	}
	return result, nil
}

// MarkResolved records the resolved identifier.
func (s *ReconciliationRepositoryStub) MarkResolved(ctx context.Context, id int64) error {
	if s.MarkResolvedFn != nil {
		return s.MarkResolvedFn(ctx, id)
	}
	s.Resolved = append(s.Resolved, id)
	for i := range s.Failures {
		if s.Failures[i].ID == id {
			now := time.Now()
			s.Failures[i].ResolvedAt = &now
		}
	}
	return nil
}

var _ repository.UserRepository = (*UserRepositoryStub)(nil)
var _ repository.ServiceRepository = (*ServiceRepositoryStub)(nil)
var _ repository.RequestRepository = (*RequestRepositoryStub)(nil)
var _ repository.OrderRepository = (*OrderRepositoryStub)(nil)
var _ repository.ReconciliationRepository = (*ReconciliationRepositoryStub)(nil)
