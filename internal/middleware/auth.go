package middleware

import (
	"context"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/projectsetu/setu-api/internal/api/apierr"
	"github.com/projectsetu/setu-api/internal/api/httpx"
	"github.com/projectsetu/setu-api/internal/auth"
	"github.com/projectsetu/setu-api/internal/models"
)

// TokenCookie is the httpOnly cookie carrying the token for browser clients.
const TokenCookie = "token"

// UserLoader resolves a token subject to an account.
type UserLoader interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error)
}

type Authenticator struct {
	TM    *auth.TokenManager
	Users UserLoader
	RS    *httpx.Responder
}

func NewAuthenticator(tm *auth.TokenManager, users UserLoader, rs *httpx.Responder) *Authenticator {
	return &Authenticator{TM: tm, Users: users, RS: rs}
}

// extractToken checks the Authorization header first, then the cookie.
func extractToken(r *http.Request) string {
	if ah := r.Header.Get("Authorization"); strings.HasPrefix(ah, "Bearer ") {
		return strings.TrimSpace(ah[len("Bearer "):])
	}
	if c, err := r.Cookie(TokenCookie); err == nil {
		return c.Value
	}
	return ""
}

func (a *Authenticator) authenticate(r *http.Request) (*models.User, error) {
	token := extractToken(r)
	if token == "" {
		return nil, apierr.Unauthorized("Not authorized to access this route")
	}
	claims, err := a.TM.Parse(token)
	if err != nil {
		return nil, err
	}
	oid, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, apierr.Unauthorized("Not authorized to access this route")
	}
	user, err := a.Users.GetByID(r.Context(), oid)
	if err != nil {
		// Kept from the original: a verified token whose subject no longer
		// exists answers 404, not 401.
		return nil, apierr.NotFound("User not found")
	}
	return &user, nil
}

// Require rejects requests without a valid token.
func (a *Authenticator) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := a.authenticate(r)
		if err != nil {
			a.RS.Error(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

// Optional attaches the user when a valid token is present and continues
// anonymously otherwise. Public endpoints use it so admins see drafts and
// unverified content.
func (a *Authenticator) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user, err := a.authenticate(r); err == nil {
			r = r.WithContext(WithUser(r.Context(), user))
		}
		next.ServeHTTP(w, r)
	})
}
