package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/projectsetu/setu-api/internal/models"
)

type usersRepo struct{ c *mongo.Collection }

func (r *usersRepo) Create(ctx context.Context, u models.User) (models.User, error) {
	now := time.Now()
	u.CreatedAt, u.UpdatedAt = now, now
	res, err := r.c.InsertOne(ctx, u)
	if err != nil {
		return models.User{}, err
	}
	u.ID = res.InsertedID.(primitive.ObjectID)
	return u, nil
}

func (r *usersRepo) GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var u models.User
	err := r.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	return u, err
}

func (r *usersRepo) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := r.c.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	return u, err
}

func (r *usersRepo) List(ctx context.Context) ([]models.User, error) {
	cur, err := r.c.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var out []models.User
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *usersRepo) Update(ctx context.Context, u models.User) (models.User, error) {
	u.UpdatedAt = time.Now()
	res, err := r.c.ReplaceOne(ctx, bson.M{"_id": u.ID}, u)
	if err != nil {
		return models.User{}, err
	}
	if res.MatchedCount == 0 {
		return models.User{}, mongo.ErrNoDocuments
	}
	return u, nil
}

func (r *usersRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *usersRepo) CountByRole(ctx context.Context, role models.Role) (int64, error) {
	return r.c.CountDocuments(ctx, bson.M{"role": role})
}

func (r *usersRepo) FindOneByRole(ctx context.Context, role models.Role) (models.User, error) {
	var u models.User
	err := r.c.FindOne(ctx, bson.M{"role": role}).Decode(&u)
	return u, err
}
