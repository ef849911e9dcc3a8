package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Nombres de colección.
const (
	CollUsers       = "users"
	CollAccounts    = "accounts"
	CollCards       = "cards"
	CollDishes      = "dishes"
	CollIngredients = "ingredients"
	CollOrders      = "orders"
)

// UniqueFields índices únicos por colección.
var UniqueFields = map[string][]string{
	CollUsers:       {"email", "externalId"},
	CollAccounts:    {"email", "uid"},
	CollCards:       {"name"},
	CollDishes:      {"name"},
	CollIngredients: {"name"},
}

// EnsureIndexes crea los índices únicos (idempotente).
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for coll, fields := range UniqueFields {
		models := make([]mongo.IndexModel, 0, len(fields))
		for _, f := range fields {
			models = append(models, mongo.IndexModel{
				Keys:    bson.D{{Key: f, Value: 1}},
				Options: options.Index().SetUnique(true).SetName(f + "_unique"),
			})
		}
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("índices de %s: %w", coll, err)
		}
	}
	// Consultas de pedidos por estado y por autor.
	_, err := db.Collection(CollOrders).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "createdBy", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("índices de %s: %w", CollOrders, err)
	}
	return nil
}
