package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

const customerColumns = `id, nombre, apellido, COALESCE(email, ''), telefono, documento, direccion, created_at`

// CustomerRepo implementación de CustomerRepository sobre PostgreSQL (pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador de clientes. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	if err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.Document, &c.Address, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste un cliente. El email vacío se guarda como NULL para no chocar con el índice único.
func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	query := `
		INSERT INTO cliente (id, nombre, apellido, email, telefono, documento, direccion, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query, c.ID, c.FirstName, c.LastName, c.Email, c.Phone, c.Document, c.Address, c.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID. Retorna nil, nil si no existe.
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	if !validID(id) {
		return nil, nil
	}
	c, err := scanCustomer(r.q.QueryRow(ctx, `SELECT `+customerColumns+` FROM cliente WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

// GetByEmail obtiene un cliente por email (ya normalizado en minúsculas).
func (r *CustomerRepo) GetByEmail(ctx context.Context, email string) (*entity.Customer, error) {
	c, err := scanCustomer(r.q.QueryRow(ctx, `SELECT `+customerColumns+` FROM cliente WHERE email = $1`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer by email: %w", err)
	}
	return c, nil
}

// GetOrCreateByEmail inserta el cliente si el email no existe y devuelve la fila vigente.
// ON CONFLICT resuelve la carrera entre checkouts concurrentes con el mismo email.
func (r *CustomerRepo) GetOrCreateByEmail(ctx context.Context, c *entity.Customer) (*entity.Customer, error) {
	insert := `
		INSERT INTO cliente (id, nombre, apellido, email, telefono, documento, direccion, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (email) DO NOTHING`
	_, err := r.q.Exec(ctx, insert, c.ID, c.FirstName, c.LastName, c.Email, c.Phone, c.Document, c.Address, c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert customer: %w", err)
	}
	out, err := r.GetByEmail(ctx, c.Email)
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, fmt.Errorf("customer %s not visible after insert", c.Email)
	}
	return out, nil
}

// List lista clientes por fecha de alta.
func (r *CustomerRepo) List(ctx context.Context, limit, offset int) ([]*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM cliente ORDER BY created_at, id LIMIT NULLIF($1::int, 0) OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	var out []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
