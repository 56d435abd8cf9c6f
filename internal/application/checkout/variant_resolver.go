package checkout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
)

// resolveVariant devuelve la variante a vender y su producto.
// Con variant_id se usa esa variante. Con product_id se usa la primera variante del producto
// y, si no tiene ninguna, se cae al flujo legado de variante provisional.
func (uc *UseCase) resolveVariant(ctx context.Context, r Repos, m mode, it cartItem) (*entity.Variant, *entity.Product, error) {
	if it.variantID != "" {
		v, err := r.Variants.GetByID(ctx, it.variantID)
		if err != nil {
			return nil, nil, err
		}
		if v == nil {
			return nil, nil, domain.NotFound("variante %s", it.variantID)
		}
		p, err := r.Products.GetByID(ctx, v.ProductID)
		if err != nil {
			return nil, nil, err
		}
		if p == nil {
			return nil, nil, domain.NotFound("producto %s", v.ProductID)
		}
		return v, p, nil
	}

	p, err := r.Products.GetByID(ctx, it.productID)
	if err != nil {
		return nil, nil, err
	}
	if p == nil {
		return nil, nil, domain.NotFound("producto %s", it.productID)
	}
	v, err := r.Variants.FirstByProduct(ctx, p.ID)
	if err != nil {
		return nil, nil, err
	}
	if v != nil {
		return v, p, nil
	}
	v, err = uc.materializePlaceholderVariant(ctx, r, m, p, it.unitPrice)
	if err != nil {
		return nil, nil, err
	}
	return v, p, nil
}

// materializePlaceholderVariant flujo legado: carritos que solo traen product_id de productos sin variantes.
// Crea una variante provisional con SKU y código de barras generados a partir del producto y la hora.
// TODO: retirar cuando el catálogo exija al menos una variante por producto.
func (uc *UseCase) materializePlaceholderVariant(ctx context.Context, r Repos, m mode, p *entity.Product, price decimal.Decimal) (*entity.Variant, error) {
	now := uc.now()
	code, barcode := placeholderCodes(m.placeholderPrefix, p.ID, now)
	v := &entity.Variant{
		ID:        uuid.New().String(),
		ProductID: p.ID,
		Code:      code,
		Model:     m.placeholderModel,
		Price:     price,
		Barcode:   barcode,
		CreatedAt: now,
	}
	if err := r.Variants.Create(ctx, v); err != nil {
		return nil, fmt.Errorf("crear variante provisional: %w", err)
	}
	uc.log.Warn().
		Str("producto_id", p.ID).
		Str("sku", v.Code).
		Str("canal", m.channel).
		Msg("variante provisional creada para producto sin variantes")
	return v, nil
}

// placeholderCodes SKU {PREFIJO}-{producto}-{HHMMSSffffff} y código de barras {PREFIJO}{producto}{HHMMSS}.
func placeholderCodes(prefix, productID string, now time.Time) (code, barcode string) {
	short := strings.ReplaceAll(productID, "-", "")
	if len(short) > 8 {
		short = short[:8]
	}
	hms := now.Format("150405")
	code = fmt.Sprintf("%s-%s-%s%06d", prefix, short, hms, now.Nanosecond()/1000)
	barcode = prefix + short + hms
	return code, barcode
}
