package middleware

import (
	"net/http"

	"github.com/projectsetu/setu-api/internal/api/apierr"
	"github.com/projectsetu/setu-api/internal/api/httpx"
	"github.com/projectsetu/setu-api/internal/models"
)

// RequireRole allows only the listed roles past. It composes after
// Authenticator.Require, which puts the user on the context.
func RequireRole(rs *httpx.Responder, roles ...models.Role) func(http.Handler) http.Handler {
	allowed := make(map[models.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u := UserFrom(r.Context())
			if u == nil {
				rs.Error(w, apierr.NotFound("User not found"))
				return
			}
			if _, ok := allowed[u.Role]; !ok {
				rs.Error(w, apierr.Forbidden("User role %s is not authorized to access this route", u.Role))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
