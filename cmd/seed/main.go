// seed carga en PostgreSQL los datos mínimos para operar: roles, usuario admin,
// sucursal principal y los clientes genéricos de mostrador y online.
//
// Uso: SEED_ADMIN_PASSWORD=... go run ./cmd/seed
// Aplica las migraciones pendientes antes de cargar. Es idempotente.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jhoicas/boutique-api/internal/application/bootstrap"
	"github.com/jhoicas/boutique-api/internal/infrastructure/postgres"
	"github.com/jhoicas/boutique-api/pkg/config"
	"github.com/jhoicas/boutique-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	if cfg.DB.MigrationsPath != "" {
		if err := postgres.RunMigrations(cfg.DB.ConnectionString(), cfg.DB.MigrationsPath, log); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	res, err := bootstrap.Seed(ctx, bootstrap.Repos{
		Roles:     postgres.NewRoleRepository(pool),
		Users:     postgres.NewUserRepository(pool),
		Branches:  postgres.NewBranchRepository(pool),
		Customers: postgres.NewCustomerRepository(pool),
	}, seedOptions(cfg), log)
	if err != nil {
		log.Fatal().Err(err).Msg("carga inicial")
	}

	if cfg.Checkout.PrimaryBranchID == "" {
		fmt.Printf("Configure CHECKOUT_PRIMARY_BRANCH_ID=%s\n", res.BranchID)
	}
}

func seedOptions(cfg *config.Config) bootstrap.Options {
	return bootstrap.Options{
		AdminEmail:    cfg.Seed.AdminEmail,
		AdminPassword: cfg.Seed.AdminPassword,
		AdminName:     cfg.Seed.AdminName,
		BranchID:      cfg.Checkout.PrimaryBranchID,
		BranchName:    cfg.Seed.BranchName,
		WalkInEmail:   cfg.Checkout.WalkInEmail,
		WalkInName:    cfg.Checkout.WalkInName,
		OnlineEmail:   cfg.Checkout.OnlineEmail,
		OnlineName:    cfg.Checkout.OnlineName,
	}
}
