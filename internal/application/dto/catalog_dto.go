package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCategoryRequest body para POST /api/categorias.
type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CategoryResponse categoría en respuestas.
type CategoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CreateProductRequest body para POST /api/productos.
type CreateProductRequest struct {
	CategoryID  string          `json:"category_id,omitempty"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	BaseCode    string          `json:"base_code"`
	BasePrice   decimal.Decimal `json:"base_price"`
}

// UpdateProductRequest body para PUT /api/productos/:id.
type UpdateProductRequest struct {
	CategoryID  *string          `json:"category_id"`
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	BasePrice   *decimal.Decimal `json:"base_price"`
	Status      *string          `json:"status"`
}

// ProductResponse producto con sus variantes e imágenes (estas solo en detalle).
type ProductResponse struct {
	ID          string            `json:"id"`
	CategoryID  string            `json:"category_id,omitempty"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	BaseCode    string            `json:"base_code"`
	BasePrice   decimal.Decimal   `json:"base_price"`
	Status      string            `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	Variants    []VariantResponse `json:"variants,omitempty"`
	Images      []ImageResponse   `json:"images,omitempty"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// CreateVariantRequest body para POST /api/productos/:id/variantes.
type CreateVariantRequest struct {
	Code    string          `json:"code"`
	Size    string          `json:"size"`
	Color   string          `json:"color"`
	Model   string          `json:"model"`
	Price   decimal.Decimal `json:"price"`
	Barcode string          `json:"barcode"`
}

// VariantResponse variante en respuestas.
type VariantResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Code      string          `json:"code"`
	Size      string          `json:"size"`
	Color     string          `json:"color"`
	Model     string          `json:"model"`
	Price     decimal.Decimal `json:"price"`
	Barcode   string          `json:"barcode"`
}

// ImageResponse imagen de producto.
type ImageResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// CreateBranchRequest body para POST /api/sucursales.
type CreateBranchRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

// BranchResponse sucursal en respuestas.
type BranchResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

// CreateCustomerRequest body para POST /api/clientes.
type CreateCustomerRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Document  string `json:"document"`
	Address   string `json:"address"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Document  string `json:"document,omitempty"`
	Address   string `json:"address,omitempty"`
}
