// Package database opens the MongoDB connection and prepares collections.
package database

import (
	"context"
	"fmt"
	"time"

	"relief-coordination-api/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const connectTimeout = 10 * time.Second

func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, client.Database(cfg.DBName), nil
}

// IndexBuilder is implemented by every repository owning a collection.
type IndexBuilder interface {
	EnsureIndexes(ctx context.Context) error
}

func EnsureIndexes(ctx context.Context, builders ...IndexBuilder) error {
	for _, b := range builders {
		if err := b.EnsureIndexes(ctx); err != nil {
			return err
		}
	}
	return nil
}
