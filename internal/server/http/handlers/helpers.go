package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/abdelrahman464/blackbox/internal/domain/errors"
	"github.com/abdelrahman464/blackbox/internal/domain/model"
	"github.com/abdelrahman464/blackbox/internal/server/http/dto"
	"github.com/abdelrahman464/blackbox/internal/server/http/middleware"
)

// CurrentPrincipal extracts the authenticated principal from context.
func CurrentPrincipal(c *gin.Context) model.Principal {
	val, ok := c.Get(middleware.PrincipalContextKey)
	if !ok {
		return model.Principal{}
	}
	principal, _ := val.(model.Principal)
	return principal
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid " + name})
		return 0, false
	}
	return id, true
}

// respondDomainError maps sentinel domain errors onto structured responses.
// Unexpected failures become a bare 500 with no internal detail.
func respondDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrValidation):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid request"})
	case errors.Is(err, domainErrors.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "not found"})
	case errors.Is(err, domainErrors.ErrNotAuthorized):
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Message: "not authorized to access this request"})
	default:
		c.Status(http.StatusInternalServerError)
	}
}
