//go:build integration_pg

// Start/Open need Docker and are only built with the integration_pg tag

package pgtest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"dltally/internal/platform/store"

	"github.com/rs/zerolog"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Start runs postgres:16-alpine and returns its DSN; the container is removed on cleanup
func Start(t *testing.T) string {
	t.Helper()

	// first image pull can be slow
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
			"POSTGRES_DB":       "dltally",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		).WithDeadline(2 * time.Minute),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		t.Fatalf("start postgres container: %v", err)
	}
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, err := c.Host(ctx)
	if err != nil {
		t.Fatalf("container host: %v", err)
	}
	mapped, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("mapped port: %v", err)
	}
	return fmt.Sprintf("postgres://postgres:postgres@%s:%s/dltally?sslmode=disable", host, mapped.Port())
}

// Open starts a container, applies the embedded migrations and opens a Store
func Open(t *testing.T) *store.Store {
	t.Helper()
	dsn := Start(t)
	log := zerolog.New(zerolog.NewTestWriter(t))

	if _, err := store.MigrateUp(dsn, log); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	s, err := store.Open(context.Background(), store.Config{
		AppName: "dltally-integration",
		PG:      store.PGConfig{Enabled: true, URL: dsn, ConnectRetries: 10},
	}, store.WithLogger(log))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}
