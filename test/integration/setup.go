package integration

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"codebind/internal/config"
	"codebind/internal/coupon"
	"codebind/internal/database"
	"codebind/internal/handler"
	"codebind/internal/metrics"
	"codebind/internal/model"
	"codebind/internal/repository"
	"codebind/internal/router"
	"codebind/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
}

// SetupTestDB creates a PostgreSQL test container and a pool opened through
// database.NewPool.
func SetupTestDB(t *testing.T) *TestDB {
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

	host, err := postgresContainer.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get container host: %v", err)
	}
	port, err := postgresContainer.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("failed to get container port: %v", err)
	}

	dbConfig := config.DatabaseConfig{
		Host:            host,
		Port:            port.Int(),
		User:            "testuser",
		Password:        "testpass",
		Database:        "testdb",
		MaxConnections:  10,
		MinConnections:  2,
		MaxConnLifetime: 300,
	}

	pool, err := database.NewPool(ctx, dbConfig, zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
	}
}

// NewPostgresStore opens the named document on testDB and seeds it with doc
// when doc is not nil.
func NewPostgresStore(t *testing.T, testDB *TestDB, name string, doc *model.Document) repository.DocumentStore {
	t.Helper()

	ctx := context.Background()
	store, err := repository.NewPostgresStore(ctx, testDB.Pool, name, zerolog.Nop())
	require.NoError(t, err)

	if doc != nil {
		require.NoError(t, store.Save(ctx, doc))
	}
	return store
}

// NewFileStore returns a file store in a temporary directory seeded with doc
// when doc is not nil.
func NewFileStore(t *testing.T, doc *model.Document) (repository.DocumentStore, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "codes.json")
	store := repository.NewFileStore(path, zerolog.Nop())

	if doc != nil {
		require.NoError(t, store.Save(context.Background(), doc))
	}
	return store, path
}

// setupTestServer wires the full HTTP stack on top of store.
func setupTestServer(t *testing.T, store repository.DocumentStore) http.Handler {
	t.Helper()

	logger := zerolog.Nop()

	registry := coupon.NewRegistry(store, logger)
	codeService := service.NewCodeService(registry, metrics.New(prometheus.NewRegistry()), logger)
	codeHandler := handler.NewCodeHandler(codeService, logger)

	return router.New(codeHandler, nil, "", logger)
}
