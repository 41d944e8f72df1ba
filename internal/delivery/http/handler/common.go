package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/beaconhq/beacon-backend/internal/delivery/http/middleware"
	"github.com/beaconhq/beacon-backend/internal/domain"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// currentUserID pulls the authenticated user set by the auth middleware.
func currentUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return "", false
	}
	id, ok := v.(string)
	if !ok || id == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return "", false
	}
	return id, true
}

// respondError maps domain conditions onto HTTP statuses. Anything
// unmapped is a 500 with a generic message.
func respondError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	case errors.Is(err, domain.ErrDuplicateMatch):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrMatchNotPending):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrNotMatchParticipant):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrMatchNotFound),
		errors.Is(err, domain.ErrProfileNotFound),
		errors.Is(err, domain.ErrPreferencesNotFound),
		errors.Is(err, domain.ErrNeedsNotFound),
		errors.Is(err, domain.ErrConversationNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
