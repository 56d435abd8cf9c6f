package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
)

var (
	_ repository.CategoryRepository     = (*CategoryRepo)(nil)
	_ repository.ProductRepository      = (*ProductRepo)(nil)
	_ repository.VariantRepository      = (*VariantRepo)(nil)
	_ repository.ProductImageRepository = (*ProductImageRepo)(nil)
)

// ── Categorías ────────────────────────────────────────────────────────────────

// CategoryRepo implementación de CategoryRepository sobre PostgreSQL.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador de categorías. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	query := `INSERT INTO categoria (id, nombre, descripcion, created_at) VALUES ($1, $2, $3, $4)`
	if _, err := r.q.Exec(ctx, query, c.ID, c.Name, c.Description, c.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	if !validID(id) {
		return nil, nil
	}
	query := `SELECT id, nombre, descripcion, created_at FROM categoria WHERE id = $1`
	var c entity.Category
	err := r.q.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

func (r *CategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	rows, err := r.q.Query(ctx, `SELECT id, nombre, descripcion, created_at FROM categoria ORDER BY nombre`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var out []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

// ── Productos ─────────────────────────────────────────────────────────────────

const productColumns = `id, COALESCE(categoria_id::text, ''), nombre, descripcion, codigo_base, precio_base, estado, created_at, updated_at`

// ProductRepo implementación de ProductRepository sobre PostgreSQL.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.CategoryID, &p.Name, &p.Description, &p.BaseCode, &p.BasePrice, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO producto (id, categoria_id, nombre, descripcion, codigo_base, precio_base, estado, created_at, updated_at)
		VALUES ($1, NULLIF($2, '')::uuid, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.CategoryID, p.Name, p.Description, p.BaseCode, p.BasePrice, p.Status, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.NotFound("categoría %s", p.CategoryID)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	if !validID(id) {
		return nil, nil
	}
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM producto WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE producto SET categoria_id = NULLIF($2, '')::uuid, nombre = $3, descripcion = $4,
			codigo_base = $5, precio_base = $6, estado = $7, updated_at = $8
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		p.ID, p.CategoryID, p.Name, p.Description, p.BaseCode, p.BasePrice, p.Status, p.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.NotFound("categoría %s", p.CategoryID)
		}
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("producto %s", p.ID)
	}
	return nil
}

func (r *ProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM producto ORDER BY nombre LIMIT NULLIF($1::int, 0) OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var out []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ── Variantes ─────────────────────────────────────────────────────────────────

const variantColumns = `id, producto_id, codigo, talla, color, modelo, precio, codigo_barras, created_at`

// VariantRepo implementación de VariantRepository sobre PostgreSQL.
type VariantRepo struct {
	q Querier
}

// NewVariantRepository construye el adaptador de variantes. Pasar pool o tx (Querier).
func NewVariantRepository(q Querier) *VariantRepo {
	return &VariantRepo{q: q}
}

func scanVariant(row pgx.Row) (*entity.Variant, error) {
	var v entity.Variant
	if err := row.Scan(&v.ID, &v.ProductID, &v.Code, &v.Size, &v.Color, &v.Model, &v.Price, &v.Barcode, &v.CreatedAt); err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VariantRepo) Create(ctx context.Context, v *entity.Variant) error {
	query := `INSERT INTO producto_variante (` + variantColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query, v.ID, v.ProductID, v.Code, v.Size, v.Color, v.Model, v.Price, v.Barcode, v.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.NotFound("producto %s", v.ProductID)
		}
		return fmt.Errorf("insert variant: %w", err)
	}
	return nil
}

func (r *VariantRepo) GetByID(ctx context.Context, id string) (*entity.Variant, error) {
	if !validID(id) {
		return nil, nil
	}
	v, err := scanVariant(r.q.QueryRow(ctx, `SELECT `+variantColumns+` FROM producto_variante WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get variant: %w", err)
	}
	return v, nil
}

func (r *VariantRepo) FirstByProduct(ctx context.Context, productID string) (*entity.Variant, error) {
	if !validID(productID) {
		return nil, nil
	}
	query := `SELECT ` + variantColumns + ` FROM producto_variante WHERE producto_id = $1 ORDER BY created_at, id LIMIT 1`
	v, err := scanVariant(r.q.QueryRow(ctx, query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("first variant: %w", err)
	}
	return v, nil
}

func (r *VariantRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Variant, error) {
	if !validID(productID) {
		return nil, nil
	}
	query := `SELECT ` + variantColumns + ` FROM producto_variante WHERE producto_id = $1 ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list variants: %w", err)
	}
	defer rows.Close()
	var out []*entity.Variant
	for rows.Next() {
		v, err := scanVariant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan variant: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// ── Imágenes ──────────────────────────────────────────────────────────────────

// ProductImageRepo metadatos de imágenes de producto sobre PostgreSQL.
type ProductImageRepo struct {
	q Querier
}

// NewProductImageRepository construye el adaptador de imágenes. Pasar pool o tx (Querier).
func NewProductImageRepository(q Querier) *ProductImageRepo {
	return &ProductImageRepo{q: q}
}

func (r *ProductImageRepo) Create(ctx context.Context, img *entity.ProductImage) error {
	query := `INSERT INTO producto_imagen (id, producto_id, url, object_key, created_at) VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.q.Exec(ctx, query, img.ID, img.ProductID, img.URL, img.ObjectKey, img.CreatedAt); err != nil {
		return fmt.Errorf("insert product image: %w", err)
	}
	return nil
}

func (r *ProductImageRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.ProductImage, error) {
	if !validID(productID) {
		return nil, nil
	}
	query := `SELECT id, producto_id, url, object_key, created_at FROM producto_imagen WHERE producto_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list product images: %w", err)
	}
	defer rows.Close()
	var out []*entity.ProductImage
	for rows.Next() {
		var img entity.ProductImage
		if err := rows.Scan(&img.ID, &img.ProductID, &img.URL, &img.ObjectKey, &img.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan product image: %w", err)
		}
		out = append(out, &img)
	}
	return out, rows.Err()
}
