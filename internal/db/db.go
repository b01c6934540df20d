package db

import (
	"context"
	"net/url"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectToDB opens the Mongo database named in MONGODB_URI. It backs
// the kiosk diagnostics log only; the relational data lives in Postgres.
func ConnectToDB(mongoURI string) (*mongo.Database, context.CancelFunc, error) {
	uri, err := url.Parse(mongoURI)
	if err != nil {
		return nil, nil, err
	}

	dbName := strings.TrimPrefix(uri.Path, "/")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		cancel()
		return nil, nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		cancel()
		return nil, nil, err
	}

	return client.Database(dbName), cancel, nil
}

// EnsureTTLIndex creates a TTL index on expires_at so documents age out
// once their expiry passes. ExpireAfterSeconds 0 means Mongo honors the
// per-document expires_at value.
func EnsureTTLIndex(ctx context.Context, db *mongo.Database, collectionName string) error {
	collection := db.Collection(collectionName)

	indexModel := mongo.IndexModel{
		Keys:    bson.M{"expires_at": 1},
		Options: options.Index().SetExpireAfterSeconds(0),
	}

	_, err := collection.Indexes().CreateOne(ctx, indexModel)
	return err
}
