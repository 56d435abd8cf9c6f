package repository

import (
	"context"

	"github.com/jhoicas/boutique-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los métodos Get devuelven (nil, nil) si el registro no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
}

// VariantRepository persistencia de variantes (SKU) de producto.
type VariantRepository interface {
	Create(ctx context.Context, variant *entity.Variant) error
	GetByID(ctx context.Context, id string) (*entity.Variant, error)
	// FirstByProduct devuelve la variante más antigua del producto o nil si no tiene.
	FirstByProduct(ctx context.Context, productID string) (*entity.Variant, error)
	ListByProduct(ctx context.Context, productID string) ([]*entity.Variant, error)
}

// ProductImageRepository persistencia de las imágenes de producto (solo metadatos; el binario va a object storage).
type ProductImageRepository interface {
	Create(ctx context.Context, image *entity.ProductImage) error
	ListByProduct(ctx context.Context, productID string) ([]*entity.ProductImage, error)
}
