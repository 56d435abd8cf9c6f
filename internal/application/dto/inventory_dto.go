package dto

import "time"

// RegisterMovementRequest body para POST /api/inventario/movimientos.
// Para transferencia se usan from_branch_id y to_branch_id; para el resto branch_id.
type RegisterMovementRequest struct {
	VariantID    string `json:"variant_id"`
	BranchID     string `json:"branch_id,omitempty"`
	FromBranchID string `json:"from_branch_id,omitempty"`
	ToBranchID   string `json:"to_branch_id,omitempty"`
	Type         string `json:"type"` // entrada | salida | ajuste | transferencia
	Quantity     int    `json:"quantity"`
	Notes        string `json:"notes,omitempty"`
}

// StockResponse stock de una variante en una sucursal.
type StockResponse struct {
	VariantID string    `json:"variant_id"`
	BranchID  string    `json:"branch_id"`
	Quantity  int       `json:"quantity"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MovementResponse movimiento de stock en respuestas.
type MovementResponse struct {
	ID             string    `json:"id"`
	VariantID      string    `json:"variant_id"`
	BranchID       string    `json:"branch_id"`
	Type           string    `json:"type"`
	Quantity       int       `json:"quantity"`
	QuantityBefore int       `json:"quantity_before"`
	QuantityAfter  int       `json:"quantity_after"`
	Reference      string    `json:"reference,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
