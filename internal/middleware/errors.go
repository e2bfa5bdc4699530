package middleware

import (
	"errors"
	"net/http"

	"user_portal/internal/service"

	"github.com/gin-gonic/gin"
)

// ErrorToHTTPStatus maps service errors to a status code and the detail shown to the client
func ErrorToHTTPStatus(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrDuplicateUsername):
		return http.StatusBadRequest, "Username already taken"
	case errors.Is(err, service.ErrPasswordTooLong):
		return http.StatusBadRequest, "Password must be at most 72 bytes"
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, service.ErrUnauthenticated):
		return http.StatusForbidden, "User not authenticated"
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden, "Unauthorised"
	case errors.Is(err, service.ErrUserNotFound):
		return http.StatusNotFound, "User not found"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// AbortWithError writes {"detail": ...} for err and stops the handler chain
func AbortWithError(c *gin.Context, err error) {
	status, detail := ErrorToHTTPStatus(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, gin.H{"detail": detail})
}
