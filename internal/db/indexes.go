package db

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the unique and query indexes the schemas rely on.
// Duplicate slugs and emails surface as duplicate-key errors because of the
// unique constraints here.
func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	unique := options.Index().SetUnique(true)

	byCollection := map[string][]mongo.IndexModel{
		"users": {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		},
		"blogs": {
			{Keys: bson.D{{Key: "slug", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "publishedAt", Value: -1}}},
			{Keys: bson.D{{Key: "categories", Value: 1}}},
			{Keys: bson.D{{Key: "tags", Value: 1}}},
		},
		"projects": {
			{Keys: bson.D{{Key: "slug", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "status", Value: 1}}},
			{Keys: bson.D{{Key: "category", Value: 1}}},
			{Keys: bson.D{{Key: "featured", Value: 1}}},
		},
		"testimonials": {
			{Keys: bson.D{{Key: "featured", Value: 1}}},
			{Keys: bson.D{{Key: "verified", Value: 1}}},
			{Keys: bson.D{{Key: "projectRelated", Value: 1}}},
		},
	}

	for name, indexes := range byCollection {
		if _, err := database.Collection(name).Indexes().CreateMany(ctx, indexes); err != nil {
			return err
		}
	}
	return nil
}
