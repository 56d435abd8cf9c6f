package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleResponse venta en listados y detalle.
type SaleResponse struct {
	ID            string             `json:"id"`
	CustomerID    string             `json:"customer_id"`
	BranchID      string             `json:"branch_id"`
	Total         decimal.Decimal    `json:"total"`
	PaymentType   string             `json:"tipo_pago"`
	Channel       string             `json:"canal_venta"`
	Status        string             `json:"estado"`
	PaymentStatus string             `json:"estado_pago"`
	CreatedAt     time.Time          `json:"fecha"`
	Lines         []SaleLineResponse `json:"lines,omitempty"`
}

// SaleListResponse lista paginada de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
