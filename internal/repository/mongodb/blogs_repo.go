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

// blogSearchFields are the fields a ?search= term matches against.
var blogSearchFields = []string{"title", "summary", "categories", "tags"}

type blogsRepo struct{ c *mongo.Collection }

func (r *blogsRepo) Create(ctx context.Context, b models.Blog) (models.Blog, error) {
	now := time.Now()
	b.CreatedAt, b.UpdatedAt = now, now
	res, err := r.c.InsertOne(ctx, b)
	if err != nil {
		return models.Blog{}, err
	}
	b.ID = res.InsertedID.(primitive.ObjectID)
	return b, nil
}

func (r *blogsRepo) GetByID(ctx context.Context, id primitive.ObjectID) (models.Blog, error) {
	var b models.Blog
	err := r.c.FindOne(ctx, bson.M{"_id": id}).Decode(&b)
	return b, err
}

func (r *blogsRepo) GetBySlug(ctx context.Context, slug string) (models.Blog, error) {
	var b models.Blog
	err := r.c.FindOne(ctx, bson.M{"slug": slug}).Decode(&b)
	return b, err
}

func (r *blogsRepo) List(ctx context.Context, p query.ListParams, visibility bson.M) ([]models.Blog, int64, error) {
	cur, err := r.c.Find(ctx, p.Filter(blogSearchFields, visibility), p.FindOptions())
	if err != nil {
		return nil, 0, err
	}
	var out []models.Blog
	if err := cur.All(ctx, &out); err != nil {
		return nil, 0, err
	}
	// Collection-wide count, not the filtered one; pagination metadata
	// inherits that inaccuracy.
	total, err := r.c.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *blogsRepo) Featured(ctx context.Context, limit int64) ([]models.Blog, error) {
	cur, err := r.c.Find(ctx,
		bson.M{"status": models.BlogPublished, "isFeatured": true},
		options.Find().SetSort(bson.D{{Key: "publishedAt", Value: -1}}).SetLimit(limit))
	if err != nil {
		return nil, err
	}
	var out []models.Blog
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *blogsRepo) ByCategory(ctx context.Context, category string, page, limit int64) ([]models.Blog, int64, error) {
	filter := bson.M{"categories": category, "status": models.BlogPublished}
	cur, err := r.c.Find(ctx, filter,
		options.Find().
			SetSort(bson.D{{Key: "publishedAt", Value: -1}}).
			SetSkip((page-1)*limit).
			SetLimit(limit))
	if err != nil {
		return nil, 0, err
	}
	var out []models.Blog
	if err := cur.All(ctx, &out); err != nil {
		return nil, 0, err
	}
	total, err := r.c.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *blogsRepo) Update(ctx context.Context, b models.Blog) (models.Blog, error) {
	b.UpdatedAt = time.Now()
	res, err := r.c.ReplaceOne(ctx, bson.M{"_id": b.ID}, b)
	if err != nil {
		return models.Blog{}, err
	}
	if res.MatchedCount == 0 {
		return models.Blog{}, mongo.ErrNoDocuments
	}
	return b, nil
}

func (r *blogsRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *blogsRepo) IncrementViews(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.c.UpdateByID(ctx, id, bson.M{"$inc": bson.M{"viewCount": 1}})
	return err
}
