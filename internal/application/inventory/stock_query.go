package inventory

import (
	"context"

	"github.com/jhoicas/boutique-api/internal/application/dto"
	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
)

// StockQueryUseCase consultas de stock y movimientos (sin transacción).
type StockQueryUseCase struct {
	stock     repository.StockRepository
	movements repository.StockMovementRepository
	branches  repository.BranchRepository
}

// NewStockQueryUseCase construye el caso de uso.
func NewStockQueryUseCase(stock repository.StockRepository, movements repository.StockMovementRepository, branches repository.BranchRepository) *StockQueryUseCase {
	return &StockQueryUseCase{stock: stock, movements: movements, branches: branches}
}

// ListByBranch stock de todas las variantes de una sucursal.
func (uc *StockQueryUseCase) ListByBranch(ctx context.Context, branchID string, page dto.PageRequest) ([]dto.StockResponse, error) {
	page.DefaultPage()
	branch, err := uc.branches.GetByID(ctx, branchID)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, domain.NotFound("sucursal %s", branchID)
	}
	list, err := uc.stock.ListByBranch(ctx, branchID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.StockResponse{VariantID: s.VariantID, BranchID: s.BranchID, Quantity: s.Quantity, UpdatedAt: s.UpdatedAt})
	}
	return out, nil
}

// ListMovements historial de movimientos de una variante, del más reciente al más antiguo.
func (uc *StockQueryUseCase) ListMovements(ctx context.Context, variantID string, page dto.PageRequest) ([]dto.MovementResponse, error) {
	page.DefaultPage()
	list, err := uc.movements.ListByVariant(ctx, variantID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toMovementResponse(m))
	}
	return out, nil
}
