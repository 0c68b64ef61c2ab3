// AngelaMos | 2026
// repository_integration_test.go

package agentapp

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurafinsurance/insurance-backend/internal/audit"
	"github.com/aurafinsurance/insurance-backend/internal/core"
	"github.com/aurafinsurance/insurance-backend/internal/testinfra"
)

func createApplication(t *testing.T, repo Repository, email string) *Application {
	t.Helper()
	a := &Application{
		ID:       uuid.New().String(),
		FullName: "Ravi Kumar",
		Email:    email,
		Phone:    "9876543210",
	}
	require.NoError(t, repo.Create(context.Background(), a))
	require.Equal(t, StatusPending, a.Status)
	return a
}

func TestDecideIsConditionalOnPending(t *testing.T) {
	db := testinfra.Postgres(t)
	repo := NewRepository(db.DB)
	ctx := context.Background()
	reviewer := testinfra.SeedUser(t, db, "reviewer@auraf.in")

	app := createApplication(t, repo, "ravi@example.in")

	note := "welcome aboard"
	decided, err := repo.Decide(ctx, app.ID, StatusApproved, &note, reviewer)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, decided.Status)
	require.NotNil(t, decided.ApprovedBy)
	assert.Equal(t, reviewer, *decided.ApprovedBy)
	assert.NotNil(t, decided.ApprovedAt)
	assert.Equal(t, 1, testinfra.CountAudit(t, db, audit.TargetApplication, app.ID))

	_, err = repo.Decide(ctx, app.ID, StatusRejected, nil, reviewer)
	assert.ErrorIs(t, err, core.ErrConflict)

	stored, err := repo.GetByID(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, stored.Status)
	require.NotNil(t, stored.DecisionNote)
	assert.Equal(t, note, *stored.DecisionNote)
	assert.Equal(t, 1, testinfra.CountAudit(t, db, audit.TargetApplication, app.ID))

	_, err = repo.Decide(ctx, uuid.New().String(), StatusApproved, nil, reviewer)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestConcurrentDecisionsHaveOneWinner(t *testing.T) {
	db := testinfra.Postgres(t)
	repo := NewRepository(db.DB)
	ctx := context.Background()
	reviewer := testinfra.SeedUser(t, db, "reviewer@auraf.in")

	app := createApplication(t, repo, "meera@example.in")

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		wins      int
		conflicts int
	)
	for _, decision := range []string{StatusApproved, StatusRejected, StatusApproved, StatusRejected} {
		wg.Go(func() {
			_, err := repo.Decide(ctx, app.ID, decision, nil, reviewer)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				wins++
			case errors.Is(err, core.ErrConflict):
				conflicts++
			default:
				t.Errorf("decide: %v", err)
			}
		})
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
	assert.Equal(t, 3, conflicts)
	assert.Equal(t, 1, testinfra.CountAudit(t, db, audit.TargetApplication, app.ID))
}
