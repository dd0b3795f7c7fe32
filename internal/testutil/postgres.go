package testutil

import (
	"context"
	"testing"

	postgresmodule "github.com/testcontainers/testcontainers-go/modules/postgres"
)

// SetupPostgresContainer starts a throwaway Postgres and returns its DSN.
// The test is skipped when no container runtime is available.
func SetupPostgresContainer(ctx context.Context, t *testing.T) (string, func()) {
	t.Helper()

	defer func() {
		if r := recover(); r != nil {
			t.Skipf("failed to start postgres container: %v", r)
		}
	}()

	container, err := postgresmodule.Run(ctx, "postgres:17-alpine",
		postgresmodule.WithDatabase("jetlag"),
		postgresmodule.WithUsername("jetlag"),
		postgresmodule.WithPassword("jetlag"),
		postgresmodule.BasicWaitStrategies(),
	)
	if err != nil {
		t.Skipf("failed to start postgres container: %v", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Skipf("failed to get postgres connection string: %v", err)
	}

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate postgres container: %v", err)
		}
	}

	return dsn, cleanup
}
