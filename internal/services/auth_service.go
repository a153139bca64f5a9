package services

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/projectsetu/setu-api/internal/api/apierr"
	"github.com/projectsetu/setu-api/internal/auth"
	"github.com/projectsetu/setu-api/internal/models"
	repo "github.com/projectsetu/setu-api/internal/repository"
)

type AuthService struct {
	users repo.Users
	tm    *auth.TokenManager
}

func NewAuthService(users repo.Users, tm *auth.TokenManager) *AuthService {
	return &AuthService{users: users, tm: tm}
}

// Token signs a fresh token for the user.
func (s *AuthService) Token(u models.User) (string, error) {
	tok, _, err := s.tm.Generate(u.ID.Hex(), string(u.Role))
	return tok, err
}

// Register creates a user account with the default role and signs it in.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (models.User, string, error) {
	if err := models.ValidatePassword(password); err != nil {
		return models.User{}, "", err
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, "", err
	}

	u := models.User{
		Name:     strings.TrimSpace(name),
		Email:    strings.ToLower(strings.TrimSpace(email)),
		Password: hash,
		Role:     models.RoleUser,
	}
	u.ApplyDefaults()
	if err := u.Validate(); err != nil {
		return models.User{}, "", err
	}

	created, err := s.users.Create(ctx, u)
	if err != nil {
		return models.User{}, "", err
	}
	tok, err := s.Token(created)
	return created, tok, err
}

func (s *AuthService) Login(ctx context.Context, email, password string) (models.User, string, error) {
	if email == "" || password == "" {
		return models.User{}, "", apierr.BadRequest("Please provide an email and password")
	}
	u, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, "", apierr.Unauthorized("Invalid credentials")
		}
		return models.User{}, "", err
	}
	if err := auth.VerifyPassword(password, u.Password); err != nil {
		return models.User{}, "", apierr.Unauthorized("Invalid credentials")
	}
	tok, err := s.Token(u)
	return u, tok, err
}

// UpdateDetails changes the caller's name and/or email.
func (s *AuthService) UpdateDetails(ctx context.Context, id primitive.ObjectID, name, email string) (models.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	if name != "" {
		u.Name = strings.TrimSpace(name)
	}
	if email != "" {
		u.Email = strings.ToLower(strings.TrimSpace(email))
	}
	if err := u.Validate(); err != nil {
		return models.User{}, err
	}
	return s.users.Update(ctx, u)
}

// UpdatePassword verifies the current password, stores the new hash and
// re-issues a token.
func (s *AuthService) UpdatePassword(ctx context.Context, id primitive.ObjectID, current, newPassword string) (models.User, string, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return models.User{}, "", err
	}
	if err := auth.VerifyPassword(current, u.Password); err != nil {
		return models.User{}, "", apierr.Unauthorized("Password is incorrect")
	}
	if err := models.ValidatePassword(newPassword); err != nil {
		return models.User{}, "", err
	}
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return models.User{}, "", err
	}
	u.Password = hash
	updated, err := s.users.Update(ctx, u)
	if err != nil {
		return models.User{}, "", err
	}
	tok, err := s.Token(updated)
	return updated, tok, err
}
