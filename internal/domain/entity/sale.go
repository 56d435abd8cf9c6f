package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Canales de venta.
const (
	ChannelStore  = "tienda"
	ChannelOnline = "online"
)

// Estados de venta y de pago.
const (
	SaleStatusPending    = "pendiente"
	SaleStatusCompleted  = "completado"
	PaymentStatusPending = "pendiente"
	PaymentStatusPaid    = "pagado"
	PaymentTypeCash      = "contado"
	PaymentTypeQR        = "qr"
)

// Sale una transacción de venta (tienda u online) con una o más líneas.
// Total siempre es la suma de los subtotales de sus líneas.
type Sale struct {
	ID            string
	CustomerID    string
	BranchID      string
	Total         decimal.Decimal
	PaymentType   string
	Channel       string
	Status        string
	PaymentStatus string
	CreatedAt     time.Time
}

// IsSettled indica si la venta está completada y pagada.
func (s *Sale) IsSettled() bool {
	return s.Status == SaleStatusCompleted && s.PaymentStatus == PaymentStatusPaid
}

// SaleLine línea de una venta. Subtotal = UnitPrice * Quantity.
type SaleLine struct {
	ID        string
	SaleID    string
	VariantID string
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}
