package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/boutique-api/internal/application/auth"
	"github.com/jhoicas/boutique-api/internal/application/dto"
	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/infrastructure/memory"
	"github.com/jhoicas/boutique-api/pkg/jwt"
)

const secret = "test-secret"

func newAuth(t *testing.T) (*memory.Store, *auth.AuthUseCase) {
	t.Helper()
	store := memory.New()
	require.NoError(t, store.Roles().Create(context.Background(), &entity.Role{ID: "r1", Name: entity.RoleVendedor}))
	return store, auth.NewAuthUseCase(store.Users(), store.Roles(), auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "boutique-test"})
}

func TestRegisterAndLogin(t *testing.T) {
	_, uc := newAuth(t)
	ctx := context.Background()

	user, err := uc.RegisterUser(ctx, dto.Identity{}, dto.RegisterRequest{Email: " Ana@Mail.com ", Password: "secreto1", Role: entity.RoleVendedor})
	require.NoError(t, err)
	assert.Equal(t, "ana@mail.com", user.Email)
	assert.Equal(t, entity.RoleCliente, user.Role, "sin admin el rol pedido se ignora")
	assert.Equal(t, "ana@mail.com", user.Name)

	_, err = uc.RegisterUser(ctx, dto.Identity{}, dto.RegisterRequest{Email: "ana@mail.com", Password: "secreto1"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	res, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@mail.com", Password: "secreto1"})
	require.NoError(t, err)
	id, err := jwt.Parse(secret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, id.UserID)
	assert.Equal(t, "ana@mail.com", id.Email)
	assert.Equal(t, entity.RoleCliente, id.Role)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana@mail.com", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@mail.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestRegister_AdminAssignsRole(t *testing.T) {
	_, uc := newAuth(t)
	ctx := context.Background()
	admin := dto.Identity{UserID: "u0", Role: entity.RoleAdmin}

	user, err := uc.RegisterUser(ctx, admin, dto.RegisterRequest{Email: "vend@mail.com", Password: "secreto1", Role: entity.RoleVendedor})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleVendedor, user.Role)

	_, err = uc.RegisterUser(ctx, admin, dto.RegisterRequest{Email: "x@mail.com", Password: "secreto1", Role: "gerente"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RegisterUser(ctx, admin, dto.RegisterRequest{Email: "sin-arroba", Password: "secreto1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.RegisterUser(ctx, admin, dto.RegisterRequest{Email: "y@mail.com", Password: "123"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateFCMToken(t *testing.T) {
	_, uc := newAuth(t)
	ctx := context.Background()
	user, err := uc.RegisterUser(ctx, dto.Identity{}, dto.RegisterRequest{Email: "ana@mail.com", Password: "secreto1"})
	require.NoError(t, err)
	assert.False(t, user.HasToken)

	caller := dto.Identity{UserID: user.ID, Role: user.Role}
	require.NoError(t, uc.UpdateFCMToken(ctx, caller, dto.UpdateFCMTokenRequest{Token: " tok-1 "}))
	me, err := uc.Me(ctx, caller)
	require.NoError(t, err)
	assert.True(t, me.HasToken)

	assert.ErrorIs(t, uc.UpdateFCMToken(ctx, dto.Identity{}, dto.UpdateFCMTokenRequest{Token: "x"}), domain.ErrUnauthorized)
	assert.ErrorIs(t, uc.UpdateFCMToken(ctx, dto.Identity{UserID: "nope"}, dto.UpdateFCMTokenRequest{Token: "x"}), domain.ErrUserNotFound)
}
