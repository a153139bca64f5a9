package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/projectsetu/setu-api/internal/models"
	"github.com/projectsetu/setu-api/internal/query"
)

var projectSearchFields = []string{"title", "description", "category"}

type projectsRepo struct{ c *mongo.Collection }

func (r *projectsRepo) Create(ctx context.Context, p models.Project) (models.Project, error) {
	now := time.Now()
	p.CreatedAt, p.UpdatedAt = now, now
	res, err := r.c.InsertOne(ctx, p)
	if err != nil {
		return models.Project{}, err
	}
	p.ID = res.InsertedID.(primitive.ObjectID)
	return p, nil
}

func (r *projectsRepo) GetByID(ctx context.Context, id primitive.ObjectID) (models.Project, error) {
	var p models.Project
	err := r.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	return p, err
}

func (r *projectsRepo) GetBySlug(ctx context.Context, slug string) (models.Project, error) {
	var p models.Project
	err := r.c.FindOne(ctx, bson.M{"slug": slug}).Decode(&p)
	return p, err
}

func (r *projectsRepo) List(ctx context.Context, p query.ListParams, visibility bson.M) ([]models.Project, int64, error) {
	cur, err := r.c.Find(ctx, p.Filter(projectSearchFields, visibility), p.FindOptions())
	if err != nil {
		return nil, 0, err
	}
	var out []models.Project
	if err := cur.All(ctx, &out); err != nil {
		return nil, 0, err
	}
	total, err := r.c.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *projectsRepo) Featured(ctx context.Context, limit int64) ([]models.Project, error) {
	cur, err := r.c.Find(ctx, bson.M{"featured": true},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(limit))
	if err != nil {
		return nil, err
	}
	var out []models.Project
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *projectsRepo) ByStatus(ctx context.Context, status models.ProjectStatus, page, limit int64) ([]models.Project, int64, error) {
	return r.pagedFind(ctx, bson.M{"status": status}, page, limit)
}

func (r *projectsRepo) ByCategory(ctx context.Context, category string, page, limit int64) ([]models.Project, int64, error) {
	return r.pagedFind(ctx, bson.M{"category": category}, page, limit)
}

func (r *projectsRepo) pagedFind(ctx context.Context, filter bson.M, page, limit int64) ([]models.Project, int64, error) {
	cur, err := r.c.Find(ctx, filter,
		options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}}).
			SetSkip((page-1)*limit).
			SetLimit(limit))
	if err != nil {
		return nil, 0, err
	}
	var out []models.Project
	if err := cur.All(ctx, &out); err != nil {
		return nil, 0, err
	}
	total, err := r.c.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *projectsRepo) Update(ctx context.Context, p models.Project) (models.Project, error) {
	p.UpdatedAt = time.Now()
	res, err := r.c.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return models.Project{}, err
	}
	if res.MatchedCount == 0 {
		return models.Project{}, mongo.ErrNoDocuments
	}
	return p, nil
}

func (r *projectsRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
