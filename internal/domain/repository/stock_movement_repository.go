package repository

import (
	"context"

	"github.com/jhoicas/boutique-api/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia para movimientos de stock (DIP).
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	ListByVariant(ctx context.Context, variantID string, limit, offset int) ([]*entity.StockMovement, error)
}
