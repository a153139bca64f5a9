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

var testimonialSearchFields = []string{"name", "content", "organization"}

type testimonialsRepo struct{ c *mongo.Collection }

func (r *testimonialsRepo) Create(ctx context.Context, t models.Testimonial) (models.Testimonial, error) {
	now := time.Now()
	t.CreatedAt, t.UpdatedAt = now, now
	res, err := r.c.InsertOne(ctx, t)
	if err != nil {
		return models.Testimonial{}, err
	}
	t.ID = res.InsertedID.(primitive.ObjectID)
	return t, nil
}

func (r *testimonialsRepo) GetByID(ctx context.Context, id primitive.ObjectID) (models.Testimonial, error) {
	var t models.Testimonial
	err := r.c.FindOne(ctx, bson.M{"_id": id}).Decode(&t)
	return t, err
}

func (r *testimonialsRepo) List(ctx context.Context, p query.ListParams, visibility bson.M) ([]models.Testimonial, int64, error) {
	cur, err := r.c.Find(ctx, p.Filter(testimonialSearchFields, visibility), p.FindOptions())
	if err != nil {
		return nil, 0, err
	}
	var out []models.Testimonial
	if err := cur.All(ctx, &out); err != nil {
		return nil, 0, err
	}
	total, err := r.c.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *testimonialsRepo) Featured(ctx context.Context, limit int64) ([]models.Testimonial, error) {
	cur, err := r.c.Find(ctx,
		bson.M{"featured": true, "verified": true},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(limit))
	if err != nil {
		return nil, err
	}
	var out []models.Testimonial
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *testimonialsRepo) ByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.Testimonial, error) {
	cur, err := r.c.Find(ctx,
		bson.M{"projectRelated": projectID, "verified": true},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var out []models.Testimonial
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *testimonialsRepo) Update(ctx context.Context, t models.Testimonial) (models.Testimonial, error) {
	t.UpdatedAt = time.Now()
	res, err := r.c.ReplaceOne(ctx, bson.M{"_id": t.ID}, t)
	if err != nil {
		return models.Testimonial{}, err
	}
	if res.MatchedCount == 0 {
		return models.Testimonial{}, mongo.ErrNoDocuments
	}
	return t, nil
}

func (r *testimonialsRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *testimonialsRepo) SetVerified(ctx context.Context, id primitive.ObjectID, verified bool) (models.Testimonial, error) {
	after := options.After
	var t models.Testimonial
	err := r.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"verified": verified, "updatedAt": time.Now()}},
		&options.FindOneAndUpdateOptions{ReturnDocument: &after},
	).Decode(&t)
	return t, err
}
