package services

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/projectsetu/setu-api/internal/api/apierr"
	"github.com/projectsetu/setu-api/internal/auth"
	"github.com/projectsetu/setu-api/internal/models"
	repo "github.com/projectsetu/setu-api/internal/repository"
)

type UserService struct {
	users repo.Users
}

func NewUserService(users repo.Users) *UserService { return &UserService{users: users} }

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) Get(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	return s.users.GetByID(ctx, id)
}

// Create makes an account with an admin-chosen role.
func (s *UserService) Create(ctx context.Context, u models.User, password string) (models.User, error) {
	if err := models.ValidatePassword(password); err != nil {
		return models.User{}, err
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}
	u.Name = strings.TrimSpace(u.Name)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.Password = hash
	u.ApplyDefaults()
	if err := u.Validate(); err != nil {
		return models.User{}, err
	}
	return s.users.Create(ctx, u)
}

func (s *UserService) Update(ctx context.Context, u models.User) (models.User, error) {
	if err := u.Validate(); err != nil {
		return models.User{}, err
	}
	return s.users.Update(ctx, u)
}

// Delete removes an account, refusing to delete the sole remaining admin.
// The admin count and the delete are separate operations, so concurrent
// deletes can race past the guard; accepted limitation.
func (s *UserService) Delete(ctx context.Context, id primitive.ObjectID) error {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if u.Role == models.RoleAdmin {
		n, err := s.users.CountByRole(ctx, models.RoleAdmin)
		if err != nil {
			return err
		}
		if n == 1 {
			return apierr.Conflict("Cannot delete the last admin user")
		}
	}
	return s.users.Delete(ctx, id)
}
