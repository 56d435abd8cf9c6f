// Package bootstrap carga los datos mínimos para operar: roles, admin, sucursal principal y clientes genéricos.
package bootstrap

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
	"github.com/jhoicas/boutique-api/pkg/logger"
)

// Repos repositorios que toca la carga inicial.
type Repos struct {
	Roles     repository.RoleRepository
	Users     repository.UserRepository
	Branches  repository.BranchRepository
	Customers repository.CustomerRepository
}

// Options datos de la carga inicial.
type Options struct {
	AdminEmail    string
	AdminPassword string
	AdminName     string
	BranchID      string // vacío = se genera
	BranchName    string
	WalkInEmail   string
	WalkInName    string
	OnlineEmail   string
	OnlineName    string
}

// Result ids resultantes; BranchID es el valor para CHECKOUT_PRIMARY_BRANCH_ID.
type Result struct {
	AdminID  string
	BranchID string
}

// DefaultRoles roles base con sus permisos.
func DefaultRoles() []entity.Role {
	return []entity.Role{
		{Name: entity.RoleAdmin, Permissions: []string{entity.PermissionAll}},
		{Name: entity.RoleVendedor, Permissions: []string{}},
		{Name: entity.RoleCliente, Permissions: []string{}},
	}
}

// Seed es idempotente: lo que ya existe (por nombre o email) no se vuelve a crear.
func Seed(ctx context.Context, r Repos, opt Options, log *logger.Logger) (*Result, error) {
	log = log.Component("seed")
	now := time.Now()

	for _, role := range DefaultRoles() {
		existing, err := r.Roles.GetByName(ctx, role.Name)
		if err != nil {
			return nil, fmt.Errorf("buscar rol %s: %w", role.Name, err)
		}
		if existing != nil {
			continue
		}
		role.ID = uuid.New().String()
		if err := r.Roles.Create(ctx, &role); err != nil {
			return nil, fmt.Errorf("crear rol %s: %w", role.Name, err)
		}
		log.Info().Str("rol", role.Name).Msg("rol creado")
	}

	adminID, err := seedAdmin(ctx, r.Users, opt, now)
	if err != nil {
		return nil, err
	}
	log.Info().Str("email", opt.AdminEmail).Msg("usuario admin listo")

	branchID, err := seedBranch(ctx, r.Branches, opt, now)
	if err != nil {
		return nil, err
	}
	log.Info().Str("sucursal_id", branchID).Str("nombre", opt.BranchName).Msg("sucursal principal lista")

	for _, c := range []struct{ email, name string }{
		{opt.WalkInEmail, opt.WalkInName},
		{opt.OnlineEmail, opt.OnlineName},
	} {
		email := strings.ToLower(strings.TrimSpace(c.email))
		if email == "" {
			continue
		}
		if _, err := r.Customers.GetOrCreateByEmail(ctx, &entity.Customer{
			ID:        uuid.New().String(),
			FirstName: c.name,
			Email:     email,
			CreatedAt: now,
		}); err != nil {
			return nil, fmt.Errorf("crear cliente %s: %w", email, err)
		}
	}

	return &Result{AdminID: adminID, BranchID: branchID}, nil
}

func seedAdmin(ctx context.Context, users repository.UserRepository, opt Options, now time.Time) (string, error) {
	email := strings.ToLower(strings.TrimSpace(opt.AdminEmail))
	if email == "" || opt.AdminPassword == "" {
		return "", fmt.Errorf("email y password del admin son requeridos")
	}
	existing, err := users.GetByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("buscar admin: %w", err)
	}
	if existing != nil {
		return existing.ID, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(opt.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	name := opt.AdminName
	if name == "" {
		name = "Administrador"
	}
	u := &entity.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         entity.RoleAdmin,
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := users.Create(ctx, u); err != nil {
		return "", fmt.Errorf("crear admin: %w", err)
	}
	return u.ID, nil
}

func seedBranch(ctx context.Context, branches repository.BranchRepository, opt Options, now time.Time) (string, error) {
	if opt.BranchID != "" {
		b, err := branches.GetByID(ctx, opt.BranchID)
		if err != nil {
			return "", fmt.Errorf("buscar sucursal: %w", err)
		}
		if b != nil {
			return b.ID, nil
		}
	} else {
		list, err := branches.List(ctx)
		if err != nil {
			return "", fmt.Errorf("listar sucursales: %w", err)
		}
		for _, b := range list {
			if strings.EqualFold(b.Name, opt.BranchName) {
				return b.ID, nil
			}
		}
	}
	id := opt.BranchID
	if id == "" {
		id = uuid.New().String()
	}
	name := opt.BranchName
	if name == "" {
		name = "Principal"
	}
	if err := branches.Create(ctx, &entity.Branch{ID: id, Name: name, CreatedAt: now}); err != nil {
		return "", fmt.Errorf("crear sucursal: %w", err)
	}
	return id, nil
}
