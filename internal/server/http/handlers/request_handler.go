package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abdelrahman464/blackbox/internal/server/http/dto"
)

// RequestHandler manages service request endpoints.
type RequestHandler struct {
	facade RequestFacade
}

// NewRequestHandler constructs RequestHandler.
func NewRequestHandler(facade RequestFacade) *RequestHandler {
	return &RequestHandler{facade: facade}
}

// List handles GET /requests.
func (h *RequestHandler) List(c *gin.Context) {
	requests, err := h.facade.Requests(c.Request.Context())
	if err != nil {
		respondDomainError(c, err)
		return
	}

	response := make([]dto.RequestResponse, 0, len(requests))
	for _, req := range requests {
		response = append(response, dto.ToRequestResponse(req))
	}
	c.JSON(http.StatusOK, response)
}

// Create handles POST /requests.
func (h *RequestHandler) Create(c *gin.Context) {
	var payload dto.CreateRequestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid request"})
		return
	}

	req, err := h.facade.CreateRequest(c.Request.Context(), CurrentPrincipal(c), payload.ServiceID, payload.Text)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToRequestResponse(*req))
}

// Get handles GET /requests/:id.
func (h *RequestHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	req, err := h.facade.Request(c.Request.Context(), CurrentPrincipal(c), id)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToRequestResponse(*req))
}

// Update handles PUT /requests/:id.
func (h *RequestHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var payload dto.UpdateRequestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid request"})
		return
	}

	req, err := h.facade.UpdateRequest(c.Request.Context(), CurrentPrincipal(c), id, payload.Text)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToRequestResponse(*req))
}

// Delete handles DELETE /requests/:id.
func (h *RequestHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.facade.DeleteRequest(c.Request.Context(), id); err != nil {
		respondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdateStatus handles PUT /requests/:id/status.
func (h *RequestHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var payload dto.UpdateStatusPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid request"})
		return
	}

	req, err := h.facade.UpdateRequestStatus(c.Request.Context(), id, payload.Status)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToRequestResponse(*req))
}
