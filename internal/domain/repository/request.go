package repository

import (
	"context"

	"github.com/abdelrahman464/blackbox/internal/domain/model"
)

// Relations selects which related entities a request read joins in.
// Keeping this a call-site parameter makes the data-access contract explicit.
type Relations struct {
	User    bool
	Service bool
}

// RequestRepository describes persistence operations for service requests.
type RequestRepository interface {
	Create(ctx context.Context, userID, serviceID int64, text string) (*model.Request, error)
	GetByID(ctx context.Context, id int64, rel Relations) (*model.Request, error)
	List(ctx context.Context, rel Relations) ([]model.Request, error)
	UpdateText(ctx context.Context, id int64, text string) (*model.Request, error)
	UpdateStatus(ctx context.Context, id int64, status model.RequestStatus) (*model.Request, error)
	Delete(ctx context.Context, id int64) error
}
