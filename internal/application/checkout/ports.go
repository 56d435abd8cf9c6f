package checkout

import (
	"context"

	"github.com/jhoicas/boutique-api/internal/application/notify"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
)

// Repos repositorios atados a una misma transacción de checkout.
type Repos struct {
	Customers repository.CustomerRepository
	Branches  repository.BranchRepository
	Products  repository.ProductRepository
	Variants  repository.VariantRepository
	Stock     repository.StockRepository
	Movements repository.StockMovementRepository
	Sales     repository.SaleRepository
}

// TxRunner ejecuta fn dentro de una transacción; si fn retorna error no persiste nada.
type TxRunner interface {
	RunCheckout(ctx context.Context, fn func(r Repos) error) error
}

// Notifier despacha una notificación sin bloquear al llamador (ver notify.Dispatcher).
type Notifier interface {
	Dispatch(token string, n notify.Notification)
}

// StockPolicy política de validación de stock para ventas online.
type StockPolicy string

const (
	// StockPolicyDeferred no valida ni descuenta stock al crear la venta online (se resuelve al despachar).
	StockPolicyDeferred StockPolicy = "deferred"
	// StockPolicyEnforce aplica las mismas reglas que el POS.
	StockPolicyEnforce StockPolicy = "enforce"
)

// Config valores por defecto del checkout.
type Config struct {
	PrimaryBranchID   string
	WalkInEmail       string
	WalkInName        string
	OnlineEmail       string
	OnlineName        string
	OnlineStockPolicy StockPolicy
}
