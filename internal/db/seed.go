package db

import (
	"context"
	"errors"
	"log/slog"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/projectsetu/setu-api/internal/auth"
	"github.com/projectsetu/setu-api/internal/config"
	"github.com/projectsetu/setu-api/internal/models"
	repo "github.com/projectsetu/setu-api/internal/repository"
)

// SeedAdmin ensures an admin account exists, creating one from the
// configured credentials. Runs once at startup; skipped when the
// credentials are not configured or an admin already exists.
func SeedAdmin(ctx context.Context, users repo.Users, cfg config.Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		slog.Warn("admin seeding skipped: ADMIN_EMAIL or ADMIN_PASSWORD not set")
		return nil
	}

	_, err := users.FindOneByRole(ctx, models.RoleAdmin)
	if err == nil {
		slog.Info("admin user already exists")
		return nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}

	hash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}
	admin := models.User{
		Name:     cfg.AdminName,
		Email:    cfg.AdminEmail,
		Password: hash,
		Role:     models.RoleAdmin,
	}
	admin.ApplyDefaults()
	if err := admin.Validate(); err != nil {
		return err
	}

	created, err := users.Create(ctx, admin)
	if err != nil {
		return err
	}
	slog.Info("admin user created", "email", created.Email)
	return nil
}
