// AngelaMos | 2026
// postgres.go

// Package testinfra starts the containers behind integration tests.
// Tests using it are skipped unless TEST_INTEGRATION is set.
package testinfra

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/aurafinsurance/insurance-backend/internal/config"
	"github.com/aurafinsurance/insurance-backend/internal/core"
)

func requireIntegration(t *testing.T) {
	t.Helper()
	if os.Getenv("TEST_INTEGRATION") == "" {
		t.Skip("set TEST_INTEGRATION to run integration tests")
	}
}

// Postgres returns a migrated database. TEST_DATABASE_URL reuses an
// existing server instead of starting a container.
func Postgres(t *testing.T) *core.Database {
	t.Helper()
	requireIntegration(t)

	ctx := context.Background()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		container, err := postgres.Run(ctx,
			"docker.io/postgres:17-alpine",
			postgres.WithDatabase("auraf_test"),
			postgres.WithUsername("auraf"),
			postgres.WithPassword("test-password"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(60*time.Second),
			),
		)
		require.NoError(t, err)
		t.Cleanup(func() {
			if err := container.Terminate(ctx); err != nil {
				t.Logf("terminate postgres: %v", err)
			}
		})

		url, err = container.ConnectionString(ctx, "sslmode=disable")
		require.NoError(t, err)
	}

	require.NoError(t, core.Migrate(url, nil))

	db, err := core.NewDatabase(ctx, config.DatabaseConfig{
		URL:             url,
		MaxOpenConns:    5,
		MaxIdleConns:    2,
		ConnMaxLifetime: time.Minute,
		ConnMaxIdleTime: time.Minute,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return db
}

// SeedUser inserts a bare identity and returns its id, for rows that
// reference a reviewer.
func SeedUser(t *testing.T, db *core.Database, email string) string {
	t.Helper()

	id := uuid.New().String()
	_, err := db.DB.ExecContext(context.Background(),
		`INSERT INTO users (id, email, password_hash) VALUES ($1, $2, 'hash')`,
		id, email,
	)
	require.NoError(t, err)
	return id
}

// CountAudit returns how many audit rows exist for one target.
func CountAudit(t *testing.T, db *core.Database, targetType, targetID string) int {
	t.Helper()

	var n int
	require.NoError(t, db.DB.GetContext(context.Background(), &n,
		`SELECT COUNT(*) FROM audit_log WHERE target_type = $1 AND target_id = $2`,
		targetType, targetID,
	))
	return n
}
