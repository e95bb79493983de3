package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	dbschema "github.com/andreasstove999/ecommerce-system/services/product-service-go/internal/db"
)

const (
	dbUser     = "product_user"
	dbPassword = "product_pass"
	dbName     = "products"
)

// StartPostgres launches a temporary Postgres container, creates the product
// table, and returns its DSN. The container is terminated when the test ends.
func StartPostgres(ctx context.Context, t *testing.T) string {
	t.Helper()

	req := testcontainers.ContainerRequest{
		Image: "postgres:16",
		Env: map[string]string{
			"POSTGRES_USER":     dbUser,
			"POSTGRES_PASSWORD": dbPassword,
			"POSTGRES_DB":       dbName,
		},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(30 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		terminateCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		require.NoError(t, container.Terminate(terminateCtx))
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", dbUser, dbPassword, host, mappedPort.Port(), dbName)
	applySchema(ctx, t, dsn)
	return dsn
}

// applySchema retries until the server accepts connections; the port can be
// open before initdb has finished.
func applySchema(ctx context.Context, t *testing.T, dsn string) {
	t.Helper()

	deadline := time.Now().Add(30 * time.Second)
	for {
		conn, err := sql.Open("postgres", dsn)
		if err == nil {
			pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
			err = conn.PingContext(pingCtx)
			cancel()
			if err == nil {
				_, err = conn.ExecContext(ctx, dbschema.Schema)
			}
			_ = conn.Close()
			if err == nil {
				return
			}
		}

		if time.Now().After(deadline) {
			t.Fatalf("timeout preparing postgres: %v", err)
		}

		select {
		case <-ctx.Done():
			t.Fatalf("context cancelled preparing postgres: %v", ctx.Err())
		case <-time.After(500 * time.Millisecond):
		}
	}
}
