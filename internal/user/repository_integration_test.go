// AngelaMos | 2026
// repository_integration_test.go

package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurafinsurance/insurance-backend/internal/audit"
	"github.com/aurafinsurance/insurance-backend/internal/core"
	"github.com/aurafinsurance/insurance-backend/internal/testinfra"
)

func TestRepositoryRoleLifecycle(t *testing.T) {
	db := testinfra.Postgres(t)
	ctx := context.Background()
	svc := NewService(NewRepository(db.DB))

	actor, err := svc.Provision(ctx, NewAccount{
		Email:        "admin@auraf.in",
		FullName:     "Admin",
		PasswordHash: "hash",
		Role:         RoleAdmin,
	})
	require.NoError(t, err)
	adminActor := core.Actor{UserID: actor.ID, Role: core.RoleAdmin}

	target, err := svc.Provision(ctx, NewAccount{
		Email:        "Ravi@Auraf.in",
		FullName:     "Ravi",
		PasswordHash: "hash",
		Role:         RoleClient,
		ActorID:      actor.ID,
	})
	require.NoError(t, err)

	_, err = svc.Provision(ctx, NewAccount{
		Email:        "ravi@auraf.in",
		PasswordHash: "hash",
		Role:         RoleClient,
	})
	assert.ErrorIs(t, err, core.ErrDuplicateKey)

	for _, role := range []string{RoleAgent, RoleAdmin, RoleClient} {
		updated, err := svc.SetRole(ctx, adminActor, target.ID, role)
		require.NoError(t, err)
		assert.Equal(t, role, updated.EffectiveRole())
	}

	var roleRows int
	require.NoError(t, db.DB.GetContext(ctx, &roleRows,
		`SELECT COUNT(*) FROM user_roles WHERE user_id = $1`, target.ID))
	assert.Equal(t, 1, roleRows)

	require.NoError(t, svc.SetBanned(ctx, target.ID, true, actor.ID))
	info, err := svc.GetByEmail(ctx, "RAVI@auraf.in")
	require.NoError(t, err)
	assert.True(t, info.Banned)
	assert.Equal(t, 1, info.TokenVersion)

	accounts, err := svc.ListAccounts(ctx, adminActor)
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, target.ID, accounts[0].UserID)
	assert.True(t, accounts[0].Banned)

	entries, err := audit.NewRepository(db.DB).ListForTarget(ctx, audit.TargetUser, target.ID)
	require.NoError(t, err)
	require.Len(t, entries, 5)
	assert.Equal(t, audit.ActionAccountBanned, entries[0].Action)
	require.NotNil(t, entries[0].ActorID)
	assert.Equal(t, actor.ID, *entries[0].ActorID)
}
