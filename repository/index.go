package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SetupIndexes creates the indexes the repositories rely on. The unique email index backs
// duplicate detection on registration.
func SetupIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexes := map[string][]mongo.IndexModel{
		UsersCollection: {
			{
				Keys: bson.D{{Key: "email", Value: 1}},
				Options: options.Index().
					SetName("unique_email").
					SetUnique(true),
			},
		},
		NotesCollection: {
			{
				Keys: bson.D{
					{Key: "user", Value: 1},
					{Key: "_id", Value: 1},
				},
				Options: options.Index().
					SetName("user_notes"),
			},
		},
		MessagesCollection: {
			{
				Keys: bson.D{{Key: "date", Value: -1}},
				Options: options.Index().
					SetName("messages_newest_first"),
			},
		},
	}

	for collection, models := range indexes {
		names, err := db.Collection(collection).Indexes().CreateMany(ctx, models)
		if err != nil {
			return fmt.Errorf("failed to create %s indexes: %w", collection, err)
		}
		log.Info().Str("collection", collection).Strs("indexes", names).Msg("indexes ready")
	}
	return nil
}
