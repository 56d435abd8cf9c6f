package repository

import (
	"context"

	"github.com/jhoicas/boutique-api/internal/domain/entity"
)

// StockRepository define el puerto para consultar/actualizar stock por variante+sucursal.
// Usado dentro de transacciones para garantizar consistencia.
type StockRepository interface {
	// Get devuelve el stock actual; cantidad 0 si la fila no existe.
	Get(ctx context.Context, variantID, branchID string) (*entity.StockEntry, error)
	// GetForUpdate crea la fila con cantidad 0 si no existe y la bloquea hasta el fin de la tx (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, variantID, branchID string) (*entity.StockEntry, error)
	Upsert(ctx context.Context, stock *entity.StockEntry) error
	ListByBranch(ctx context.Context, branchID string, limit, offset int) ([]*entity.StockEntry, error)
}
