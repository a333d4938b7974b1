package repository

import (
	"context"

	"github.com/abdelrahman464/blackbox/internal/domain/model"
)

// ServiceRepository describes persistence operations for listed services.
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*model.Service, error)
}
