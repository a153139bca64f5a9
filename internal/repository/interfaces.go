package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/projectsetu/setu-api/internal/models"
	"github.com/projectsetu/setu-api/internal/query"
)

// List methods return the page of documents plus the collection's total
// document count (unfiltered; pagination metadata is computed from it).

type Users interface {
	Create(ctx context.Context, u models.User) (models.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, u models.User) (models.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	CountByRole(ctx context.Context, role models.Role) (int64, error)
	FindOneByRole(ctx context.Context, role models.Role) (models.User, error)
}

type Blogs interface {
	Create(ctx context.Context, b models.Blog) (models.Blog, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (models.Blog, error)
	GetBySlug(ctx context.Context, slug string) (models.Blog, error)
	List(ctx context.Context, p query.ListParams, visibility bson.M) ([]models.Blog, int64, error)
	Featured(ctx context.Context, limit int64) ([]models.Blog, error)
	ByCategory(ctx context.Context, category string, page, limit int64) ([]models.Blog, int64, error)
	Update(ctx context.Context, b models.Blog) (models.Blog, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	IncrementViews(ctx context.Context, id primitive.ObjectID) error
}

type Projects interface {
	Create(ctx context.Context, p models.Project) (models.Project, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (models.Project, error)
	GetBySlug(ctx context.Context, slug string) (models.Project, error)
	List(ctx context.Context, p query.ListParams, visibility bson.M) ([]models.Project, int64, error)
	Featured(ctx context.Context, limit int64) ([]models.Project, error)
	ByStatus(ctx context.Context, status models.ProjectStatus, page, limit int64) ([]models.Project, int64, error)
	ByCategory(ctx context.Context, category string, page, limit int64) ([]models.Project, int64, error)
	Update(ctx context.Context, p models.Project) (models.Project, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type Testimonials interface {
	Create(ctx context.Context, t models.Testimonial) (models.Testimonial, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (models.Testimonial, error)
	List(ctx context.Context, p query.ListParams, visibility bson.M) ([]models.Testimonial, int64, error)
	Featured(ctx context.Context, limit int64) ([]models.Testimonial, error)
	ByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.Testimonial, error)
	Update(ctx context.Context, t models.Testimonial) (models.Testimonial, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	SetVerified(ctx context.Context, id primitive.ObjectID, verified bool) (models.Testimonial, error)
}
