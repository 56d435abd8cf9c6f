package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/boutique-api/docs"
	"github.com/jhoicas/boutique-api/internal/application/auth"
	"github.com/jhoicas/boutique-api/internal/application/bootstrap"
	"github.com/jhoicas/boutique-api/internal/application/checkout"
	"github.com/jhoicas/boutique-api/internal/application/inventory"
	"github.com/jhoicas/boutique-api/internal/application/notify"
	"github.com/jhoicas/boutique-api/internal/application/reports"
	"github.com/jhoicas/boutique-api/internal/application/sales"
	"github.com/jhoicas/boutique-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/boutique-api/internal/infrastructure/pdf"
	"github.com/jhoicas/boutique-api/internal/infrastructure/push"
	infraredis "github.com/jhoicas/boutique-api/internal/infrastructure/redis"
	"github.com/jhoicas/boutique-api/internal/infrastructure/spreadsheet"
	"github.com/jhoicas/boutique-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/boutique-api/internal/interfaces/http"
	"github.com/jhoicas/boutique-api/pkg/config"
	"github.com/jhoicas/boutique-api/pkg/logger"
)

// @title                       Boutique API
// @version                     1.0
// @description                 Catálogo, inventario multi-sucursal, ventas POS/online y reportes de una boutique.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	// Hora local del proceso = zona del negocio; la sesión PostgreSQL usa la misma (DB.TimeZone).
	loc, err := cfg.App.Location()
	if err != nil {
		panic("zona horaria: " + err.Error())
	}
	time.Local = loc

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Str("timezone", loc.String()).
		Msg("iniciando aplicación")

	ctx := context.Background()
	be, err := newBackend(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar persistencia")
	}
	defer be.close()

	if cfg.DB.Driver == "memory" {
		seedMemory(ctx, be, cfg, log)
	}

	// Cache de reportes (opcional)
	var reportCache reports.Cache
	if cfg.Redis.Addr != "" {
		client, err := infraredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no disponible, reportes sin cache")
		} else {
			defer client.Close()
			reportCache = infraredis.NewReportCache(client, cfg.App.Name)
		}
	}

	// Imágenes de producto (opcional)
	var imageStore usecase.ImageStore
	if cfg.Storage.Endpoint != "" {
		store, err := storage.NewMinioImageStore(ctx, cfg.Storage)
		if err != nil {
			log.Warn().Err(err).Str("endpoint", cfg.Storage.Endpoint).Msg("object storage no disponible, carga de imágenes deshabilitada")
		} else {
			imageStore = store
		}
	}

	// Push: Firebase si está habilitado, si no se registran en el log
	var sender notify.Sender = push.NewLogSender(log)
	if cfg.Push.Enabled {
		fcm, err := push.NewFirebaseSender(ctx, cfg.Push)
		if err != nil {
			log.Warn().Err(err).Msg("firebase no disponible, notificaciones solo en log")
		} else {
			sender = fcm
		}
	}
	dispatcher := notify.NewDispatcher(sender, log)

	authUC := auth.NewAuthUseCase(be.users, be.roles, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	checkoutUC := checkout.NewUseCase(be.checkoutTx, be.users, dispatcher, checkout.Config{
		PrimaryBranchID:   cfg.Checkout.PrimaryBranchID,
		WalkInEmail:       cfg.Checkout.WalkInEmail,
		WalkInName:        cfg.Checkout.WalkInName,
		OnlineEmail:       cfg.Checkout.OnlineEmail,
		OnlineName:        cfg.Checkout.OnlineName,
		OnlineStockPolicy: checkout.StockPolicy(cfg.Checkout.OnlineStockPolicy),
	}, log)

	reportsUC := reports.NewUseCase(be.reports, reportCache, cfg.Reports.CacheTTL, log)
	reportsUC.RegisterRenderer(reports.FormatPDF, infrapdf.NewReportRenderer(cfg.App.Name))
	reportsUC.RegisterRenderer(reports.FormatExcel, spreadsheet.NewExcelRenderer())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    8 << 20,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Boutique API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:           authUC,
		CategoryUC:       usecase.NewCategoryUseCase(be.categories),
		ProductUC:        usecase.NewProductUseCase(be.products, be.variants, be.images, be.categories, imageStore),
		BranchUC:         usecase.NewBranchUseCase(be.branches),
		CustomerUC:       usecase.NewCustomerUseCase(be.customers),
		RegisterMovement: inventory.NewRegisterMovementUseCase(be.stockTx),
		StockQuery:       inventory.NewStockQueryUseCase(be.stock, be.movements, be.branches),
		CheckoutUC:       checkoutUC,
		SalesUC:          sales.NewUseCase(be.sales, be.customers, be.variants, be.products),
		ReportsUC:        reportsUC,
		BroadcastUC:      notify.NewBroadcastUseCase(be.users, be.roles, sender, log),
		JWTSecret:        cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if err := dispatcher.Wait(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("notificaciones pendientes al apagar")
	}

	log.Info().Msg("aplicación detenida")
}

// seedMemory carga roles, admin y sucursal principal en el store en memoria.
// Sin SEED_ADMIN_PASSWORD se usa una contraseña de desarrollo.
func seedMemory(ctx context.Context, be *backend, cfg *config.Config, log *logger.Logger) {
	password := cfg.Seed.AdminPassword
	if password == "" {
		password = "admin123"
		log.Warn().Str("email", cfg.Seed.AdminEmail).Msg("admin en memoria con contraseña de desarrollo")
	}
	res, err := bootstrap.Seed(ctx, bootstrap.Repos{
		Roles:     be.roles,
		Users:     be.users,
		Branches:  be.branches,
		Customers: be.customers,
	}, bootstrap.Options{
		AdminEmail:    cfg.Seed.AdminEmail,
		AdminPassword: password,
		AdminName:     cfg.Seed.AdminName,
		BranchID:      cfg.Checkout.PrimaryBranchID,
		BranchName:    cfg.Seed.BranchName,
		WalkInEmail:   cfg.Checkout.WalkInEmail,
		WalkInName:    cfg.Checkout.WalkInName,
		OnlineEmail:   cfg.Checkout.OnlineEmail,
		OnlineName:    cfg.Checkout.OnlineName,
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("carga inicial en memoria")
	}
	cfg.Checkout.PrimaryBranchID = res.BranchID
}
