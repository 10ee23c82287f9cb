package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ReplaceAllGeneric makes the collection hold exactly docs: each one is
// upserted by the id returned from idOf, and every other document is removed.
func ReplaceAllGeneric[T any](ctx context.Context, collection *mongo.Collection, docs []T, idOf func(T) string) error {
	ids := make([]string, 0, len(docs))
	writes := make([]mongo.WriteModel, 0, len(docs))
	for _, doc := range docs {
		id := idOf(doc)
		ids = append(ids, id)
		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": id}).
			SetReplacement(doc).
			SetUpsert(true))
	}

	if len(writes) > 0 {
		if _, err := collection.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(true)); err != nil {
			return fmt.Errorf("failed to upsert documents: %w", err)
		}
	}

	filter := bson.M{
		"_id": bson.M{
			"$nin": ids,
		},
	}
	if _, err := collection.DeleteMany(ctx, filter); err != nil {
		return fmt.Errorf("failed to delete stale documents: %w", err)
	}
	return nil
}
