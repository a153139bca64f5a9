package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/projectsetu/setu-api/internal/api/validate"
	"github.com/projectsetu/setu-api/internal/auth"
)

func TestMap(t *testing.T) {
	dupKey := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "typed api error",
			err:        NotFound("Blog not found with id of %s", "abc"),
			wantStatus: http.StatusNotFound,
			wantMsg:    "Blog not found with id of abc",
		},
		{
			name:       "wrapped api error",
			err:        fmt.Errorf("handler: %w", Forbidden("nope")),
			wantStatus: http.StatusForbidden,
			wantMsg:    "nope",
		},
		{
			name:       "field errors",
			err:        validate.Errs{{Field: "title", Msg: "required"}},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "title: required",
		},
		{
			name:       "duplicate key",
			err:        dupKey,
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Duplicate field value entered",
		},
		{
			name:       "missing document",
			err:        mongo.ErrNoDocuments,
			wantStatus: http.StatusNotFound,
			wantMsg:    "Resource not found",
		},
		{
			name:       "expired token",
			err:        auth.ErrTokenExpired,
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Token expired, please log in again",
		},
		{
			name:       "invalid token",
			err:        auth.ErrInvalidToken,
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Not authorized to access this route",
		},
		{
			name:       "unknown error defaults to 500",
			err:        errors.New("disk on fire"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "disk on fire",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := Map(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestConstructors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, BadRequest("x").Status)
	assert.Equal(t, http.StatusUnauthorized, Unauthorized("x").Status)
	assert.Equal(t, http.StatusConflict, Conflict("x").Status)
	assert.Equal(t, "boom 42", New(http.StatusTeapot, "boom %d", 42).Error())
}
