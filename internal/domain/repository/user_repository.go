package repository

import (
	"context"

	"github.com/jhoicas/boutique-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	UpdateFCMToken(ctx context.Context, userID, token string) error
	// ListWithToken usuarios con token push no vacío; roles vacío = todos los roles.
	ListWithToken(ctx context.Context, roles []string) ([]*entity.User, error)
}

// RoleRepository lectura de roles y permisos.
type RoleRepository interface {
	Create(ctx context.Context, role *entity.Role) error
	GetByName(ctx context.Context, name string) (*entity.Role, error)
}
