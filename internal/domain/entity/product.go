package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de producto.
const (
	ProductStatusActive   = "activo"
	ProductStatusInactive = "inactivo"
)

// Product representa un artículo del catálogo. Las unidades vendibles son sus variantes.
type Product struct {
	ID          string
	CategoryID  string // vacío si no tiene categoría
	Name        string
	Description string
	BaseCode    string
	BasePrice   decimal.Decimal
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Variant es un SKU comprable de un producto (combinación talla/color/modelo).
type Variant struct {
	ID        string
	ProductID string
	Code      string // SKU único
	Size      string
	Color     string
	Model     string
	Price     decimal.Decimal
	Barcode   string
	CreatedAt time.Time
}

// ProductImage imagen asociada a un producto, almacenada en object storage.
type ProductImage struct {
	ID        string
	ProductID string
	URL       string
	ObjectKey string
	CreatedAt time.Time
}
