package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/boutique-api/internal/application/auth"
	"github.com/jhoicas/boutique-api/internal/application/checkout"
	"github.com/jhoicas/boutique-api/internal/application/inventory"
	"github.com/jhoicas/boutique-api/internal/application/notify"
	"github.com/jhoicas/boutique-api/internal/application/reports"
	"github.com/jhoicas/boutique-api/internal/application/sales"
	"github.com/jhoicas/boutique-api/internal/application/usecase"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC           *auth.AuthUseCase
	CategoryUC       *usecase.CategoryUseCase
	ProductUC        *usecase.ProductUseCase
	BranchUC         *usecase.BranchUseCase
	CustomerUC       *usecase.CustomerUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	StockQuery       *inventory.StockQueryUseCase
	CheckoutUC       *checkout.UseCase
	SalesUC          *sales.UseCase
	ReportsUC        *reports.UseCase
	BroadcastUC      *notify.BroadcastUseCase
	JWTSecret        string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")
	admin := RequireRole(entity.RoleAdmin)
	staff := RequireRole(entity.RoleAdmin, entity.RoleVendedor)

	// Auth (público; un admin autenticado puede registrar con otro rol)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", OptionalAuth(deps.JWTSecret), authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	users := protected.Group("/usuarios")
	users.Get("/me", authHandler.Me)
	users.Put("/me/fcm-token", authHandler.UpdateFCMToken)

	// Catálogo
	catalogHandler := NewCatalogHandler(deps.ProductUC, deps.CategoryUC)
	categories := protected.Group("/categorias")
	categories.Get("/", catalogHandler.ListCategories)
	categories.Post("/", admin, catalogHandler.CreateCategory)

	products := protected.Group("/productos")
	products.Get("/", catalogHandler.ListProducts)
	products.Get("/:id", catalogHandler.GetProduct)
	products.Post("/", admin, catalogHandler.CreateProduct)
	products.Put("/:id", admin, catalogHandler.UpdateProduct)
	products.Post("/:id/variantes", admin, catalogHandler.AddVariant)
	products.Post("/:id/imagenes", admin, catalogHandler.UploadImage)

	// Sucursales
	branchHandler := NewBranchHandler(deps.BranchUC)
	branches := protected.Group("/sucursales")
	branches.Get("/", branchHandler.List)
	branches.Get("/:id", branchHandler.GetByID)
	branches.Post("/", admin, branchHandler.Create)

	// Clientes
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers := protected.Group("/clientes", staff)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)

	// Inventario
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.StockQuery)
	inv := protected.Group("/inventario", staff)
	inv.Post("/movimientos", inventoryHandler.RegisterMovement)
	inv.Get("/stock/:branch_id", inventoryHandler.StockByBranch)
	inv.Get("/variantes/:id/movimientos", inventoryHandler.MovementsByVariant)

	// Ventas: el alcance por rol de listados y detalle lo decide el caso de uso
	salesHandler := NewSalesHandler(deps.CheckoutUC, deps.SalesUC)
	ventas := protected.Group("/ventas")
	ventas.Post("/pos", staff, salesHandler.CheckoutPOS)
	ventas.Post("/online", salesHandler.CheckoutOnline)
	ventas.Get("/", salesHandler.List)
	ventas.Get("/:id", salesHandler.Get)
	ventas.Post("/:id/confirmar-pago", staff, salesHandler.ConfirmPayment)

	// Reportes (solo admin)
	reportHandler := NewReportHandler(deps.ReportsUC)
	rep := protected.Group("/reportes", admin)
	rep.Get("/resumen", reportHandler.Summary)
	rep.Get("/ventas-diarias", reportHandler.DailySeries)
	rep.Get("/productos-top", reportHandler.TopProducts)
	rep.Get("/tipos-pago", reportHandler.PaymentMix)
	rep.Get("/stock-bajo", reportHandler.LowStock)
	rep.Get("/prediccion", reportHandler.Forecast)
	rep.Get("/exportar", reportHandler.Export)

	// Notificaciones: el permiso lo valida el caso de uso contra el rol
	notificationHandler := NewNotificationHandler(deps.BroadcastUC)
	protected.Post("/notificaciones/global", notificationHandler.Global)
}
