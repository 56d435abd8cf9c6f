package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/boutique-api/internal/application/checkout"
	"github.com/jhoicas/boutique-api/internal/application/inventory"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
)

var (
	_ inventory.TxRunner = (*TxRunner)(nil)
	_ checkout.TxRunner  = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

func (r *TxRunner) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Run inicia una transacción, ejecuta fn con los repos de inventario atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	movRepo repository.StockMovementRepository,
	variantRepo repository.VariantRepository,
	branchRepo repository.BranchRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewStockRepository(tx), NewStockMovementRepository(tx), NewVariantRepository(tx), NewBranchRepository(tx))
	})
}

// RunCheckout inicia una transacción con todos los repos que toca una venta.
func (r *TxRunner) RunCheckout(ctx context.Context, fn func(repos checkout.Repos) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(checkout.Repos{
			Customers: NewCustomerRepository(tx),
			Branches:  NewBranchRepository(tx),
			Products:  NewProductRepository(tx),
			Variants:  NewVariantRepository(tx),
			Stock:     NewStockRepository(tx),
			Movements: NewStockMovementRepository(tx),
			Sales:     NewSaleRepository(tx),
		})
	})
}
