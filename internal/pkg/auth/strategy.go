package auth

import (
	"time"

	"github.com/abdelrahman464/blackbox/internal/domain/model"
)

// Strategy issues and verifies signed principal tokens.
type Strategy interface {
	IssueToken(userID int64, role model.Role) (string, error)
	ParseToken(token string) (model.Principal, error)
	Name() string
}

type Options struct {
	TTL time.Duration
}
