package bootstrap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hingaguru/farmdesk/internal/config"
	"github.com/hingaguru/farmdesk/internal/repository/memory"
	"github.com/hingaguru/farmdesk/internal/service/auth"
	"github.com/hingaguru/farmdesk/internal/service/crop"
)

var ownerCfg = config.DefaultOwnerConfig{Email: "demo@hingaguru.com", Name: "Demo Farmer", Phone: "+250700000000"}

func TestRun_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	crops := crop.NewService(store, nil)

	first, err := Run(ctx, store, crops, ownerCfg, nil)
	require.NoError(t, err)
	require.False(t, first.IsZero())

	second, err := Run(ctx, store, crops, ownerCfg, nil)
	require.NoError(t, err)
	require.Equal(t, first, second)

	users, err := store.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)

	count, err := store.CountCrops(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(5), count)
}

func TestEnsureDefaultOwner_CannotLogIn(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	id, err := EnsureDefaultOwner(ctx, store, ownerCfg, nil)
	require.NoError(t, err)

	user, err := store.FindUserByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Demo Farmer", user.Name)
	require.False(t, auth.CheckPassword(user.PasswordHash, "dummy-hash"))
}
