package middleware

import (
	"context"

	"github.com/projectsetu/setu-api/internal/models"
)

type userKey struct{}

// WithUser attaches the authenticated user to the context.
func WithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, userKey{}, u)
}

// UserFrom returns the authenticated user, or nil for anonymous requests.
func UserFrom(ctx context.Context) *models.User {
	if u, ok := ctx.Value(userKey{}).(*models.User); ok {
		return u
	}
	return nil
}

// IsAdmin reports whether the context carries an admin identity.
func IsAdmin(ctx context.Context) bool {
	u := UserFrom(ctx)
	return u != nil && u.Role == models.RoleAdmin
}
