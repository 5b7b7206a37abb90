package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scentlog/scentlog/internal/application"
	"github.com/scentlog/scentlog/internal/domain"
	"github.com/scentlog/scentlog/pkg/response"
)

// fail maps a service error onto the HTTP status taxonomy and writes the
// failure envelope. Unrecognized errors become 500 with a generic message so
// internals never leak.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		response.ErrorJSON(c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, domain.ErrNotFound):
		response.ErrorJSON(c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, domain.ErrConflict):
		response.ErrorJSON(c, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, domain.ErrForbidden):
		response.ErrorJSON(c, http.StatusForbidden, err.Error(), nil)
	case errors.Is(err, application.ErrInvalidCredentials):
		response.ErrorJSON(c, http.StatusUnauthorized, "invalid credentials", nil)
	case errors.Is(err, application.ErrInvalidToken):
		response.ErrorJSON(c, http.StatusBadRequest, "invalid or expired token", nil)
	default:
		response.ErrorJSON(c, http.StatusInternalServerError, "internal error", nil)
	}
}
