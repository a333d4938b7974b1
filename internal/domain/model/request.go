package model

import (
	"fmt"
	"time"
)

// RequestStatus describes the progression of a service request.
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusWorking  RequestStatus = "working"
	RequestStatusComplete RequestStatus = "complete"
)

// ParseRequestStatus validates a status value against the closed set.
func ParseRequestStatus(s string) (RequestStatus, error) {
	switch RequestStatus(s) {
	case RequestStatusPending, RequestStatusWorking, RequestStatusComplete:
		return RequestStatus(s), nil
	default:
		return "", fmt.Errorf("unknown request status %q", s)
	}
}

// Request is a service request submitted by a user.
type Request struct {
	ID        int64
	UserID    int64
	ServiceID int64
	Text      string
	Status    RequestStatus
	CreatedAt time.Time
	UpdatedAt time.Time

	// Populated only when the read asked for the relation.
	User    *UserSummary
	Service *ServiceSummary
}

// UserSummary is the safe projection of a related user exposed on reads.
type UserSummary struct {
	Name       string
	Email      string
	ProfileImg string
}

// ServiceSummary is the projection of a related service exposed on reads.
type ServiceSummary struct {
	Title    string
	Category string
}
