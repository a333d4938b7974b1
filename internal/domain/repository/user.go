package repository

import (
	"context"

	"github.com/abdelrahman464/blackbox/internal/domain/model"
)

// UserRepository describes persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}
