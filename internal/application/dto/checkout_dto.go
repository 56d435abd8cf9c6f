package dto

import "github.com/shopspring/decimal"

// CheckoutRequest body para POST /api/ventas/pos y /api/ventas/online.
// Cliente: customer_id, o customer_email (se crea si no existe), o el cliente por defecto del canal.
// En /online un usuario cliente siempre compra a su nombre: customer_id y customer_email se ignoran.
type CheckoutRequest struct {
	CustomerID    string                `json:"customer_id,omitempty"`
	CustomerEmail string                `json:"customer_email,omitempty"`
	CustomerName  string                `json:"customer_name,omitempty"`
	BranchID      string                `json:"branch_id,omitempty"`
	PaymentType   string                `json:"payment_type,omitempty"`
	Items         []CheckoutItemRequest `json:"items"`
}

// CheckoutItemRequest ítem del carrito: variant_id o product_id. quantity por defecto 1, unit_price por defecto 0.
type CheckoutItemRequest struct {
	VariantID string           `json:"variant_id,omitempty"`
	ProductID string           `json:"product_id,omitempty"`
	Quantity  *int             `json:"quantity,omitempty"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

// CheckoutResponse venta creada con sus líneas.
type CheckoutResponse struct {
	SaleID        string             `json:"sale_id"`
	Total         decimal.Decimal    `json:"total"`
	Status        string             `json:"estado"`
	PaymentStatus string             `json:"estado_pago"`
	Lines         []SaleLineResponse `json:"lines"`
}

// SaleLineResponse línea de venta en respuestas.
type SaleLineResponse struct {
	ID          string          `json:"id"`
	VariantID   string          `json:"variant_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// ConfirmPaymentResponse resultado de POST /api/ventas/:id/confirmar-pago.
type ConfirmPaymentResponse struct {
	SaleID        string `json:"sale_id"`
	Status        string `json:"estado"`
	PaymentStatus string `json:"estado_pago"`
}
