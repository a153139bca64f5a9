package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/projectsetu/setu-api/internal/api/apierr"
	"github.com/projectsetu/setu-api/internal/auth"
	"github.com/projectsetu/setu-api/internal/models"
)

func newAuthService() (*AuthService, *stubUsers, *auth.TokenManager) {
	users := newStubUsers()
	tm := auth.NewTokenManager("test-secret", time.Hour)
	return NewAuthService(users, tm), users, tm
}

func assertAPIError(t *testing.T, err error, status int) {
	t.Helper()
	gotStatus, _ := apierr.Map(err)
	assert.Equal(t, status, gotStatus)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates user with defaults and a token", func(t *testing.T) {
		svc, _, tm := newAuthService()
		u, token, err := svc.Register(ctx, "  Asha ", " Asha@Example.org ", "secret1")
		require.NoError(t, err)

		assert.Equal(t, "Asha", u.Name)
		assert.Equal(t, "asha@example.org", u.Email)
		assert.Equal(t, models.RoleUser, u.Role)
		assert.Equal(t, models.DefaultAvatar, u.Avatar)
		assert.NoError(t, auth.VerifyPassword("secret1", u.Password))

		claims, err := tm.Parse(token)
		require.NoError(t, err)
		assert.Equal(t, u.ID.Hex(), claims.UserID)
		assert.Equal(t, "user", claims.Role)
	})

	t.Run("short password rejected", func(t *testing.T) {
		svc, _, _ := newAuthService()
		_, _, err := svc.Register(ctx, "Asha", "asha@example.org", "abc")
		assertAPIError(t, err, http.StatusBadRequest)
	})

	t.Run("duplicate email surfaces store error", func(t *testing.T) {
		svc, _, _ := newAuthService()
		_, _, err := svc.Register(ctx, "Asha", "asha@example.org", "secret1")
		require.NoError(t, err)
		_, _, err = svc.Register(ctx, "Asha Two", "asha@example.org", "secret1")
		assertAPIError(t, err, http.StatusBadRequest)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T, svc *AuthService) models.User {
		t.Helper()
		u, _, err := svc.Register(ctx, "Asha", "asha@example.org", "secret1")
		require.NoError(t, err)
		return u
	}

	t.Run("valid credentials", func(t *testing.T) {
		svc, _, tm := newAuthService()
		seeded := seed(t, svc)

		u, token, err := svc.Login(ctx, "Asha@Example.org", "secret1")
		require.NoError(t, err)
		assert.Equal(t, seeded.ID, u.ID)

		_, err = tm.Parse(token)
		assert.NoError(t, err)
	})

	t.Run("missing fields", func(t *testing.T) {
		svc, _, _ := newAuthService()
		_, _, err := svc.Login(ctx, "", "")
		assertAPIError(t, err, http.StatusBadRequest)
		assert.EqualError(t, err, "Please provide an email and password")
	})

	t.Run("unknown email", func(t *testing.T) {
		svc, _, _ := newAuthService()
		_, _, err := svc.Login(ctx, "nobody@example.org", "secret1")
		assertAPIError(t, err, http.StatusUnauthorized)
		assert.EqualError(t, err, "Invalid credentials")
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, _, _ := newAuthService()
		seed(t, svc)
		_, _, err := svc.Login(ctx, "asha@example.org", "wrong")
		assertAPIError(t, err, http.StatusUnauthorized)
		assert.EqualError(t, err, "Invalid credentials")
	})
}

func TestUpdateDetails(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newAuthService()
	u, _, err := svc.Register(ctx, "Asha", "asha@example.org", "secret1")
	require.NoError(t, err)

	t.Run("both fields", func(t *testing.T) {
		updated, err := svc.UpdateDetails(ctx, u.ID, "New Name", "New@Example.org")
		require.NoError(t, err)
		assert.Equal(t, "New Name", updated.Name)
		assert.Equal(t, "new@example.org", updated.Email)
	})

	t.Run("empty fields leave values alone", func(t *testing.T) {
		updated, err := svc.UpdateDetails(ctx, u.ID, "", "")
		require.NoError(t, err)
		assert.Equal(t, "New Name", updated.Name)
		assert.Equal(t, "new@example.org", updated.Email)
	})

	t.Run("invalid email rejected", func(t *testing.T) {
		_, err := svc.UpdateDetails(ctx, u.ID, "", "nope")
		assertAPIError(t, err, http.StatusBadRequest)
	})
}

func TestUpdatePassword(t *testing.T) {
	ctx := context.Background()
	svc, _, tm := newAuthService()
	u, _, err := svc.Register(ctx, "Asha", "asha@example.org", "secret1")
	require.NoError(t, err)

	t.Run("wrong current password", func(t *testing.T) {
		_, _, err := svc.UpdatePassword(ctx, u.ID, "wrong", "newsecret")
		assertAPIError(t, err, http.StatusUnauthorized)
		assert.EqualError(t, err, "Password is incorrect")
	})

	t.Run("short new password", func(t *testing.T) {
		_, _, err := svc.UpdatePassword(ctx, u.ID, "secret1", "abc")
		assertAPIError(t, err, http.StatusBadRequest)
	})

	t.Run("rotates hash and reissues token", func(t *testing.T) {
		updated, token, err := svc.UpdatePassword(ctx, u.ID, "secret1", "newsecret")
		require.NoError(t, err)
		assert.NoError(t, auth.VerifyPassword("newsecret", updated.Password))
		assert.Error(t, auth.VerifyPassword("secret1", updated.Password))

		claims, err := tm.Parse(token)
		require.NoError(t, err)
		assert.Equal(t, u.ID.Hex(), claims.UserID)
	})
}
