package entity

import "time"

// StockEntry cantidad disponible de una variante en una sucursal.
// Se crea perezosamente con cantidad 0 la primera vez que se referencia.
type StockEntry struct {
	VariantID string
	BranchID  string
	Quantity  int
	UpdatedAt time.Time
}
