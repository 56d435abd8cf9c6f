package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeIn       = "entrada"
	MovementTypeOut      = "salida"
	MovementTypeAdjust   = "ajuste"
	MovementTypeTransfer = "transferencia"
	MovementTypeSale     = "venta"
)

// StockMovement registro auditable de un cambio de stock (manual o por venta).
type StockMovement struct {
	ID             string
	VariantID      string
	BranchID       string
	Type           string
	Quantity       int // siempre positivo; el sentido lo da Type
	QuantityBefore int
	QuantityAfter  int
	Reference      string // venta, transferencia, nota de ajuste
	Notes          string
	CreatedBy      string // UserID, vacío si fue el sistema
	CreatedAt      time.Time
}
