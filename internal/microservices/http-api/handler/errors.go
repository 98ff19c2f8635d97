package handler

import (
	"errors"
	"net/http"

	"bazzangee/internal/microservices/http-api/render"
	"bazzangee/internal/microservices/http-api/service"
	"bazzangee/internal/session"
	"bazzangee/internal/validation"

	"github.com/gin-gonic/gin"
)

// statusFor maps an error kind to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrUnauthenticated):
		return http.StatusUnauthorized
	case validation.IsValidationError(err):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrReviewNotFound),
		errors.Is(err, service.ErrOrderFoodNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrCategoryNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrNotReviewOwner):
		return http.StatusForbidden
	case errors.Is(err, service.ErrAlreadyReviewed),
		errors.Is(err, service.ErrNameInUse),
		errors.Is(err, service.ErrEmailInUse):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// respondError renders err with its mapped status. Unexpected errors are
// attached to the context for the request logger and hidden from the client.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		render.Error(c, status, "internal server error")
		return
	}
	render.Error(c, status, err.Error())
}

// respondBindError answers a failed ShouldBind. Bodies cut off by the
// size cap get 413, anything else is a malformed request.
func respondBindError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		render.Error(c, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}
	render.Error(c, http.StatusBadRequest, err.Error())
}
