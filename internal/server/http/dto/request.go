package dto

import (
	"time"

	"github.com/abdelrahman464/blackbox/internal/domain/model"
)

// CreateRequestPayload describes the body of POST /requests.
type CreateRequestPayload struct {
	ServiceID int64  `json:"serviceId"`
	Text      string `json:"text"`
}

// UpdateRequestPayload describes the body of PUT /requests/:id.
type UpdateRequestPayload struct {
	Text string `json:"text"`
}

// UpdateStatusPayload describes the body of PUT /requests/:id/status.
type UpdateStatusPayload struct {
	Status string `json:"status"`
}

// RequestUser is the safe projection of the owning user.
type RequestUser struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	ProfileImg string `json:"profileImg,omitempty"`
}

// RequestService is the safe projection of the referenced service.
type RequestService struct {
	Title    string `json:"title"`
	Category string `json:"category"`
}

// RequestResponse is the wire shape of a service request.
type RequestResponse struct {
	ID        int64           `json:"id"`
	ServiceID int64           `json:"serviceId"`
	Text      string          `json:"text"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
	User      *RequestUser    `json:"user,omitempty"`
	Service   *RequestService `json:"service,omitempty"`
}

// ToRequestResponse projects a domain request onto the wire shape.
func ToRequestResponse(req model.Request) RequestResponse {
	resp := RequestResponse{
		ID:        req.ID,
		ServiceID: req.ServiceID,
		Text:      req.Text,
		Status:    string(req.Status),
		CreatedAt: req.CreatedAt,
		UpdatedAt: req.UpdatedAt,
	}
	if req.User != nil {
		resp.User = &RequestUser{Name: req.User.Name, Email: req.User.Email, ProfileImg: req.User.ProfileImg}
	}
	if req.Service != nil {
		resp.Service = &RequestService{Title: req.Service.Title, Category: req.Service.Category}
	}
	return resp
}
