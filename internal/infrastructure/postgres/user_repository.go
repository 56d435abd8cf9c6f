package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
)

var (
	_ repository.UserRepository = (*UserRepo)(nil)
	_ repository.RoleRepository = (*RoleRepo)(nil)
)

const userColumns = `id, nombre, email, password_hash, rol, fcm_token, estado, created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.FCMToken, &u.Status, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	query := `INSERT INTO usuario (` + userColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		u.ID, u.Name, u.Email, u.PasswordHash, u.Role, u.FCMToken, u.Status, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		if isForeignKeyViolation(err) {
			return domain.NotFound("rol %s", u.Role)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.find(ctx, `SELECT `+userColumns+` FROM usuario WHERE id = $1`, id)
}

// GetByEmail obtiene un usuario por email sin distinguir mayúsculas.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.find(ctx, `SELECT `+userColumns+` FROM usuario WHERE lower(email) = lower($1)`, email)
}

func (r *UserRepo) find(ctx context.Context, query string, arg string) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// UpdateFCMToken reemplaza el token push del usuario.
func (r *UserRepo) UpdateFCMToken(ctx context.Context, userID, token string) error {
	if !validID(userID) {
		return domain.ErrUserNotFound
	}
	tag, err := r.q.Exec(ctx, `UPDATE usuario SET fcm_token = $2, updated_at = $3 WHERE id = $1`, userID, token, time.Now())
	if err != nil {
		return fmt.Errorf("update fcm token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// ListWithToken usuarios con token push, opcionalmente filtrados por rol.
func (r *UserRepo) ListWithToken(ctx context.Context, roles []string) ([]*entity.User, error) {
	query := `
		SELECT ` + userColumns + ` FROM usuario
		WHERE btrim(fcm_token) <> ''
		  AND (COALESCE(cardinality($1::text[]), 0) = 0 OR rol = ANY($1::text[]))
		ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query, roles)
	if err != nil {
		return nil, fmt.Errorf("list users with token: %w", err)
	}
	defer rows.Close()
	var out []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// ── Roles ─────────────────────────────────────────────────────────────────────

// RoleRepo roles con permisos en JSONB.
type RoleRepo struct {
	q Querier
}

// NewRoleRepository construye el adaptador de roles. Pasar pool o tx (Querier).
func NewRoleRepository(q Querier) *RoleRepo {
	return &RoleRepo{q: q}
}

// Create persiste un rol. Nombre repetido = ErrDuplicate.
func (r *RoleRepo) Create(ctx context.Context, role *entity.Role) error {
	perms := role.Permissions
	if perms == nil {
		perms = []string{}
	}
	_, err := r.q.Exec(ctx, `INSERT INTO rol (id, nombre, permisos) VALUES ($1, $2, $3)`, role.ID, role.Name, perms)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert role: %w", err)
	}
	return nil
}

// GetByName obtiene un rol por nombre. Retorna nil, nil si no existe.
func (r *RoleRepo) GetByName(ctx context.Context, name string) (*entity.Role, error) {
	var role entity.Role
	err := r.q.QueryRow(ctx, `SELECT id, nombre, permisos FROM rol WHERE nombre = $1`, name).
		Scan(&role.ID, &role.Name, &role.Permissions)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get role: %w", err)
	}
	return &role, nil
}
