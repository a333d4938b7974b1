package dto

// WebhookAck acknowledges a verified webhook delivery.
type WebhookAck struct {
	Received bool `json:"received"`
}

// ErrorResponse is the body of structured 4xx responses.
type ErrorResponse struct {
	Message string `json:"message"`
}
