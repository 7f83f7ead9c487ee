package integration

import (
	"context"
	"testing"
	"time"

	"products-api/internal/config"
	"products-api/internal/database"
	"products-api/internal/repository"

	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestStore is a product repository backed by a throwaway container.
type TestStore struct {
	Name string
	Repo repository.ProductRepository
}

// SetupStores starts every container-backed store used by the integration suite.
func SetupStores(t *testing.T) []TestStore {
	t.Helper()

	return []TestStore{
		{Name: config.BackendMongo, Repo: SetupMongo(t)},
		{Name: config.BackendPostgres, Repo: SetupPostgres(t)},
	}
}

// SetupPostgres creates a PostgreSQL test container with the products schema.
func SetupPostgres(t *testing.T) repository.ProductRepository {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	dbConfig := config.DatabaseConfig{
		MaxConnections:  10,
		MinConnections:  2,
		MaxConnLifetime: 300,
	}

	logger := zerolog.Nop()
	pool, err := database.NewPoolFromURL(ctx, connStr, dbConfig, logger)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := repository.Migrate(ctx, pool); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	return repository.NewProductRepository(pool, logger)
}

// SetupMongo creates a MongoDB test container.
func SetupMongo(t *testing.T) repository.ProductRepository {
	t.Helper()

	ctx := context.Background()

	mongoContainer, err := mongodb.Run(ctx, "mongo:7")
	if err != nil {
		t.Fatalf("failed to start mongo container: %v", err)
	}
	t.Cleanup(func() {
		if err := mongoContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	uri, err := mongoContainer.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	mongoConfig := config.MongoConfig{
		URI:            uri,
		Database:       "testdb",
		Collection:     "product",
		ConnectTimeout: 10,
	}

	logger := zerolog.Nop()
	client, err := database.NewMongoClient(ctx, mongoConfig, logger)
	if err != nil {
		t.Fatalf("failed to connect to mongo: %v", err)
	}
	t.Cleanup(func() {
		if err := client.Disconnect(ctx); err != nil {
			t.Logf("failed to disconnect from mongo: %v", err)
		}
	})

	collection := client.Database(mongoConfig.Database).Collection(mongoConfig.Collection)
	return repository.NewMongoProductRepository(collection, logger)
}

// CleanupStore removes every product from the store.
func CleanupStore(t *testing.T, repo repository.ProductRepository) {
	t.Helper()

	if err := repo.DeleteAll(context.Background()); err != nil {
		t.Fatalf("failed to clean products: %v", err)
	}
}
