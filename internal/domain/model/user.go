package model

import "time"

// User represents a registered marketplace customer.
type User struct {
	ID         int64
	Name       string
	Email      string
	ProfileImg string
	Role       Role
	CreatedAt  time.Time
}
