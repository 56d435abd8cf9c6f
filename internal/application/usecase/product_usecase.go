package usecase

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/boutique-api/internal/application/dto"
	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
)

const maxImageSize = 5 << 20

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// ProductUseCase casos de uso CRUD para productos, sus variantes e imágenes. El stock se maneja vía movimientos.
type ProductUseCase struct {
	repo       repository.ProductRepository
	variants   repository.VariantRepository
	images     repository.ProductImageRepository
	categories repository.CategoryRepository
	store      ImageStore
}

// NewProductUseCase construye el caso de uso. store puede ser nil si no hay object storage configurado.
func NewProductUseCase(
	repo repository.ProductRepository,
	variants repository.VariantRepository,
	images repository.ProductImageRepository,
	categories repository.CategoryRepository,
	store ImageStore,
) *ProductUseCase {
	return &ProductUseCase{repo: repo, variants: variants, images: images, categories: categories, store: store}
}

func (uc *ProductUseCase) checkCategory(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	c, err := uc.categories.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.NotFound("categoría %s", id)
	}
	return nil
}

// Create crea un nuevo producto activo.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, domain.Invalid("name requerido")
	}
	if in.BasePrice.IsNegative() {
		return nil, domain.Invalid("base_price no puede ser negativo")
	}
	if err := uc.checkCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		CategoryID:  in.CategoryID,
		Name:        in.Name,
		Description: in.Description,
		BaseCode:    strings.TrimSpace(in.BaseCode),
		BasePrice:   in.BasePrice,
		Status:      entity.ProductStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto con sus variantes e imágenes.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NotFound("producto %s", id)
	}
	out := toProductResponse(product)
	variants, err := uc.variants.ListByProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, v := range variants {
		out.Variants = append(out.Variants, toVariantResponse(v))
	}
	images, err := uc.images.ListByProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, img := range images {
		out.Images = append(out.Images, dto.ImageResponse{ID: img.ID, URL: img.URL})
	}
	return out, nil
}

// Update actualiza un producto. No permite modificar el stock (se maneja vía movimientos).
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NotFound("producto %s", id)
	}
	if in.CategoryID != nil {
		if err := uc.checkCategory(ctx, *in.CategoryID); err != nil {
			return nil, err
		}
		product.CategoryID = *in.CategoryID
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.Invalid("name no puede quedar vacío")
		}
		product.Name = name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.BasePrice != nil {
		if in.BasePrice.IsNegative() {
			return nil, domain.Invalid("base_price no puede ser negativo")
		}
		product.BasePrice = *in.BasePrice
	}
	if in.Status != nil {
		product.Status = *in.Status
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// AddVariant agrega una variante (talle/color) al producto. El código (SKU) es único.
func (uc *ProductUseCase) AddVariant(ctx context.Context, productID string, in dto.CreateVariantRequest) (*dto.VariantResponse, error) {
	product, err := uc.repo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NotFound("producto %s", productID)
	}
	in.Code = strings.TrimSpace(in.Code)
	if in.Code == "" {
		return nil, domain.Invalid("code requerido")
	}
	if in.Price.IsNegative() {
		return nil, domain.Invalid("price no puede ser negativo")
	}
	v := &entity.Variant{
		ID:        uuid.New().String(),
		ProductID: product.ID,
		Code:      in.Code,
		Size:      in.Size,
		Color:     in.Color,
		Model:     in.Model,
		Price:     in.Price,
		Barcode:   in.Barcode,
		CreatedAt: time.Now(),
	}
	if err := uc.variants.Create(ctx, v); err != nil {
		return nil, err
	}
	out := toVariantResponse(v)
	return &out, nil
}

// UploadImage sube la imagen al object storage y registra su URL en el producto.
func (uc *ProductUseCase) UploadImage(ctx context.Context, productID, contentType string, body io.Reader, size int64) (*dto.ImageResponse, error) {
	if uc.store == nil {
		return nil, fmt.Errorf("%w: almacenamiento de imágenes no configurado", domain.ErrConflict)
	}
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return nil, domain.Invalid("tipo de imagen no soportado: %q", contentType)
	}
	if size <= 0 || size > maxImageSize {
		return nil, domain.Invalid("la imagen debe pesar entre 1 byte y %d MB", maxImageSize>>20)
	}
	product, err := uc.repo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NotFound("producto %s", productID)
	}

	id := uuid.New().String()
	key := path.Join("productos", product.ID, id+ext)
	url, err := uc.store.Upload(ctx, key, body, size, contentType)
	if err != nil {
		return nil, fmt.Errorf("subir imagen: %w", err)
	}
	img := &entity.ProductImage{ID: id, ProductID: product.ID, URL: url, ObjectKey: key, CreatedAt: time.Now()}
	if err := uc.images.Create(ctx, img); err != nil {
		return nil, err
	}
	return &dto.ImageResponse{ID: img.ID, URL: img.URL}, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		CategoryID:  p.CategoryID,
		Name:        p.Name,
		Description: p.Description,
		BaseCode:    p.BaseCode,
		BasePrice:   p.BasePrice,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
	}
}

func toVariantResponse(v *entity.Variant) dto.VariantResponse {
	return dto.VariantResponse{
		ID:        v.ID,
		ProductID: v.ProductID,
		Code:      v.Code,
		Size:      v.Size,
		Color:     v.Color,
		Model:     v.Model,
		Price:     v.Price,
		Barcode:   v.Barcode,
	}
}
