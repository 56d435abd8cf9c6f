package inventory

import (
	"context"

	"github.com/jhoicas/boutique-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para los movimientos manuales de stock.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
		variantRepo repository.VariantRepository,
		branchRepo repository.BranchRepository,
	) error) error
}
