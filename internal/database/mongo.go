package database

import (
	"context"
	"fmt"

	"products-api/internal/config"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// NewMongoClient connects to the document store and verifies the connection
// with a ping against the primary.
func NewMongoClient(ctx context.Context, cfg config.MongoConfig, logger zerolog.Logger) (*mongo.Client, error) {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.Timeout())
	defer cancel()

	logger.Info().
		Str("database", cfg.Database).
		Str("collection", cfg.Collection).
		Msg("connecting to document store")

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.Timeout()).
		SetServerSelectionTimeout(cfg.Timeout())

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	logger.Info().Msg("document store connection established")

	return client, nil
}
