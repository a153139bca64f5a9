// Package apierr defines the error taxonomy surfaced to API clients and the
// single mapping point from internal errors to HTTP statuses.
package apierr

import (
	"errors"
	"fmt"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/projectsetu/setu-api/internal/api/validate"
	"github.com/projectsetu/setu-api/internal/auth"
)

// Error is an API error with a fixed HTTP status.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

func New(status int, format string, args ...any) *Error {
	return &Error{Status: status, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) *Error {
	return New(http.StatusNotFound, format, args...)
}

func BadRequest(format string, args ...any) *Error {
	return New(http.StatusBadRequest, format, args...)
}

func Unauthorized(format string, args ...any) *Error {
	return New(http.StatusUnauthorized, format, args...)
}

func Forbidden(format string, args ...any) *Error {
	return New(http.StatusForbidden, format, args...)
}

func Conflict(format string, args ...any) *Error {
	return New(http.StatusConflict, format, args...)
}

// Map funnels any error to a client status and message. Unrecognized errors
// pass through with their original message and a 500 default.
func Map(err error) (int, string) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status, apiErr.Message
	}

	var fieldErrs validate.Errs
	if errors.As(err, &fieldErrs) {
		return http.StatusBadRequest, fieldErrs.Error()
	}

	if mongo.IsDuplicateKeyError(err) {
		return http.StatusBadRequest, "Duplicate field value entered"
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return http.StatusNotFound, "Resource not found"
	}

	if errors.Is(err, auth.ErrTokenExpired) {
		return http.StatusUnauthorized, "Token expired, please log in again"
	}
	if errors.Is(err, auth.ErrInvalidToken) {
		return http.StatusUnauthorized, "Not authorized to access this route"
	}

	return http.StatusInternalServerError, err.Error()
}
