package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/boutique-api/internal/domain/entity"
)

// SaleFilter criterios de listado de ventas. CustomerID vacío = sin filtro.
type SaleFilter struct {
	CustomerID string
	Limit      int
	Offset     int
}

// SaleRepository define el puerto de persistencia para ventas y sus líneas.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	AddLine(ctx context.Context, line *entity.SaleLine) error
	UpdateTotal(ctx context.Context, saleID string, total decimal.Decimal) error
	UpdateStatus(ctx context.Context, saleID, status, paymentStatus string) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	// GetForUpdate bloquea la venta hasta el fin de la tx.
	GetForUpdate(ctx context.Context, id string) (*entity.Sale, error)
	ListLines(ctx context.Context, saleID string) ([]*entity.SaleLine, error)
	List(ctx context.Context, filter SaleFilter) ([]*entity.Sale, error)
}
