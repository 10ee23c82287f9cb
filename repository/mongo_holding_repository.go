package repository

import (
	"context"
	"fmt"

	"stockplatform/database"
	"stockplatform/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoHoldingRepository struct {
	collection *mongo.Collection
}

func NewMongoHoldingRepository(db *mongo.Database) *MongoHoldingRepository {
	return &MongoHoldingRepository{
		collection: db.Collection("holdings"),
	}
}

func (r *MongoHoldingRepository) Load(ctx context.Context) ([]model.Holding, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "position", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to execute find: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoHolding
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode holdings: %w", err)
	}

	holdings := make([]model.Holding, 0, len(docs))
	for _, d := range docs {
		holdings = append(holdings, d.Holding)
	}
	return holdings, nil
}

func (r *MongoHoldingRepository) Save(ctx context.Context, holdings []model.Holding) error {
	docs := make([]mongoHolding, len(holdings))
	for i, h := range holdings {
		docs[i] = mongoHolding{Holding: h, Position: i}
	}
	return database.ReplaceAllGeneric(ctx, r.collection, docs, func(d mongoHolding) string {
		return d.Ticker
	})
}

// mongoHolding keeps insertion order, which Mongo does not preserve by itself.
type mongoHolding struct {
	model.Holding `bson:",inline"`
	Position      int `bson:"position"`
}
