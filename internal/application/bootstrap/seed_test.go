package bootstrap_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/boutique-api/internal/application/bootstrap"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/infrastructure/memory"
	"github.com/jhoicas/boutique-api/pkg/logger"
)

func seedOptions() bootstrap.Options {
	return bootstrap.Options{
		AdminEmail:    "Admin@Boutique.test",
		AdminPassword: "cambiar123",
		BranchName:    "Centro",
		WalkInEmail:   "mostrador@local",
		WalkInName:    "Mostrador",
		OnlineEmail:   "online@cliente",
		OnlineName:    "Cliente Online",
	}
}

func repos(s *memory.Store) bootstrap.Repos {
	return bootstrap.Repos{Roles: s.Roles(), Users: s.Users(), Branches: s.Branches(), Customers: s.Customers()}
}

func TestSeed_CreaDatosBase(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	res, err := bootstrap.Seed(ctx, repos(store), seedOptions(), logger.Nop())
	require.NoError(t, err)
	require.NotEmpty(t, res.BranchID)

	admin, err := store.Roles().GetByName(ctx, entity.RoleAdmin)
	require.NoError(t, err)
	assert.True(t, admin.Has(entity.PermissionSendNotification))

	vendedor, err := store.Roles().GetByName(ctx, entity.RoleVendedor)
	require.NoError(t, err)
	assert.False(t, vendedor.Has(entity.PermissionSendNotification))

	user, err := store.Users().GetByEmail(ctx, "admin@boutique.test")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, entity.RoleAdmin, user.Role)
	assert.Equal(t, res.AdminID, user.ID)
	assert.NotEqual(t, "cambiar123", user.PasswordHash)

	c, err := store.Customers().GetByEmail(ctx, "mostrador@local")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "Mostrador", c.FirstName)
}

func TestSeed_EsIdempotente(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	first, err := bootstrap.Seed(ctx, repos(store), seedOptions(), logger.Nop())
	require.NoError(t, err)
	second, err := bootstrap.Seed(ctx, repos(store), seedOptions(), logger.Nop())
	require.NoError(t, err)

	assert.Equal(t, first.AdminID, second.AdminID)
	assert.Equal(t, first.BranchID, second.BranchID)

	branches, err := store.Branches().List(ctx)
	require.NoError(t, err)
	assert.Len(t, branches, 1)
	customers, err := store.Customers().List(ctx, 0, 0)
	require.NoError(t, err)
	assert.Len(t, customers, 2)
}

func TestSeed_SucursalConIDFijo(t *testing.T) {
	opt := seedOptions()
	opt.BranchID = "suc-fija"
	res, err := bootstrap.Seed(context.Background(), repos(memory.New()), opt, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, "suc-fija", res.BranchID)
}

func TestSeed_SinPasswordDeAdmin(t *testing.T) {
	opt := seedOptions()
	opt.AdminPassword = ""
	_, err := bootstrap.Seed(context.Background(), repos(memory.New()), opt, logger.Nop())
	assert.Error(t, err)
}
