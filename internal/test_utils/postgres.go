package test_utils

import (
	"context"
	"testing"

	"github.com/finanzapp/finanzapp/internal/config"
	"github.com/finanzapp/finanzapp/internal/database"
	log "github.com/sirupsen/logrus"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

const (
	pgDatabase = "finanzapp"
	pgUser     = "test_finanzapp"
	pgPassword = "test_finanzapp"
)

// SetupPostgresDB starts a throwaway PostgreSQL container and applies all
// migrations. It skips the test in -short mode or when Docker is unavailable.
func SetupPostgresDB(t *testing.T) *database.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := postgres.Run(
		ctx, "postgres:18.1-alpine",
		postgres.WithDatabase(pgDatabase),
		postgres.WithUsername(pgUser),
		postgres.WithPassword(pgPassword),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, container)
	if err != nil {
		t.Fatalf("Failed to start postgres container: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to resolve postgres host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("Failed to resolve postgres port: %v", err)
	}
	log.Infof("Postgres container started at %s:%d", host, port.Int())

	db, err := database.Open(config.Database{
		Driver: config.DriverPostgres,
		Host:   host,
		Port:   port.Int(),
		User:   pgUser,
		Pass:   pgPassword,
		Name:   pgDatabase,
		Schema: "public",
	})
	if err != nil {
		t.Fatalf("Failed to open database connection: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})

	if err := database.Migrate(db); err != nil {
		t.Fatalf("Failed to apply migrations: %v", err)
	}
	return db
}
