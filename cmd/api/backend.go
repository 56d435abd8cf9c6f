package main

import (
	"context"
	"fmt"

	"github.com/jhoicas/boutique-api/internal/application/checkout"
	"github.com/jhoicas/boutique-api/internal/application/inventory"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
	"github.com/jhoicas/boutique-api/internal/infrastructure/memory"
	"github.com/jhoicas/boutique-api/internal/infrastructure/postgres"
	"github.com/jhoicas/boutique-api/pkg/config"
	"github.com/jhoicas/boutique-api/pkg/logger"
)

// backend repositorios y transacciones del driver configurado.
type backend struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
	variants   repository.VariantRepository
	images     repository.ProductImageRepository
	branches   repository.BranchRepository
	stock      repository.StockRepository
	movements  repository.StockMovementRepository
	customers  repository.CustomerRepository
	sales      repository.SaleRepository
	users      repository.UserRepository
	roles      repository.RoleRepository
	reports    repository.ReportRepository
	checkoutTx checkout.TxRunner
	stockTx    inventory.TxRunner
	close      func()
}

func newBackend(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (*backend, error) {
	switch cfg.Driver {
	case "memory":
		log.Warn().Msg("DB_DRIVER=memory: los datos se pierden al reiniciar")
		return memoryBackend(memory.New()), nil
	case "", "postgres":
		return postgresBackend(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("DB_DRIVER desconocido: %q", cfg.Driver)
	}
}

func memoryBackend(s *memory.Store) *backend {
	return &backend{
		categories: s.Categories(),
		products:   s.Products(),
		variants:   s.Variants(),
		images:     s.Images(),
		branches:   s.Branches(),
		stock:      s.Stock(),
		movements:  s.Movements(),
		customers:  s.Customers(),
		sales:      s.Sales(),
		users:      s.Users(),
		roles:      s.Roles(),
		reports:    s.Reports(),
		checkoutTx: s,
		stockTx:    s,
		close:      func() {},
	}
}

func postgresBackend(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (*backend, error) {
	if cfg.MigrationsPath != "" {
		if err := postgres.RunMigrations(cfg.ConnectionString(), cfg.MigrationsPath, log); err != nil {
			return nil, err
		}
	}
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, err
	}
	tx := postgres.NewTxRunner(pool)
	return &backend{
		categories: postgres.NewCategoryRepository(pool),
		products:   postgres.NewProductRepository(pool),
		variants:   postgres.NewVariantRepository(pool),
		images:     postgres.NewProductImageRepository(pool),
		branches:   postgres.NewBranchRepository(pool),
		stock:      postgres.NewStockRepository(pool),
		movements:  postgres.NewStockMovementRepository(pool),
		customers:  postgres.NewCustomerRepository(pool),
		sales:      postgres.NewSaleRepository(pool),
		users:      postgres.NewUserRepository(pool),
		roles:      postgres.NewRoleRepository(pool),
		reports:    postgres.NewReportRepository(pool),
		checkoutTx: tx,
		stockTx:    tx,
		close:      pool.Close,
	}, nil
}
