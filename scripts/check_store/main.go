// Command check_store verifies that the configured product store is reachable.
// It reads the same environment variables as the API server.
package main

import (
	"context"
	"fmt"
	"os"

	"products-api/internal/config"
	"products-api/internal/database"

	"github.com/jackc/pgx/v5"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger := config.NewLogger(cfg.Logger)
	ctx := context.Background()

	switch cfg.Store.Backend {
	case config.BackendMongo:
		client, err := database.NewMongoClient(ctx, cfg.Mongo, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Unable to connect to mongo: %v\n", err)
			os.Exit(1)
		}
		defer client.Disconnect(ctx)

		count, err := client.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection).EstimatedDocumentCount(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Count failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Successfully connected to mongo database %s (%d products)\n", cfg.Mongo.Database, count)

	case config.BackendPostgres:
		conn, err := pgx.Connect(ctx, cfg.Database.ConnectionString())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
			os.Exit(1)
		}
		defer conn.Close(ctx)

		var dbName string
		if err := conn.QueryRow(ctx, "SELECT current_database()").Scan(&dbName); err != nil {
			fmt.Fprintf(os.Stderr, "QueryRow failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Successfully connected to database: %s\n", dbName)

	default:
		fmt.Printf("Store backend %q needs no connection\n", cfg.Store.Backend)
	}
}
