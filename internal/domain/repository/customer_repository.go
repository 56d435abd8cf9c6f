package repository

import (
	"context"

	"github.com/jhoicas/boutique-api/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para clientes.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	// GetByEmail devuelve el primer cliente con ese email o nil.
	GetByEmail(ctx context.Context, email string) (*entity.Customer, error)
	// GetOrCreateByEmail devuelve el cliente con customer.Email o lo crea con los datos dados.
	// Seguro ante checkouts concurrentes que crean el mismo cliente.
	GetOrCreateByEmail(ctx context.Context, customer *entity.Customer) (*entity.Customer, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Customer, error)
}
