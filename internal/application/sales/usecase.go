package sales

import (
	"context"
	"strings"

	"github.com/jhoicas/boutique-api/internal/application/dto"
	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
)

// UseCase listado y detalle de ventas.
type UseCase struct {
	sales     repository.SaleRepository
	customers repository.CustomerRepository
	variants  repository.VariantRepository
	products  repository.ProductRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	sales repository.SaleRepository,
	customers repository.CustomerRepository,
	variants repository.VariantRepository,
	products repository.ProductRepository,
) *UseCase {
	return &UseCase{sales: sales, customers: customers, variants: variants, products: products}
}

// ownCustomerID resuelve el cliente del alcance. ok=false si el usuario no tiene cliente asociado.
func (uc *UseCase) ownCustomerID(ctx context.Context, scope Scope) (string, bool, error) {
	if scope.CustomerEmail == "" {
		return "", false, nil
	}
	c, err := uc.customers.GetByEmail(ctx, scope.CustomerEmail)
	if err != nil {
		return "", false, err
	}
	if c == nil {
		return "", false, nil
	}
	return c.ID, true, nil
}

// List ventas visibles para el usuario, de la más reciente a la más antigua.
func (uc *UseCase) List(ctx context.Context, caller dto.Identity, page dto.PageRequest) (*dto.SaleListResponse, error) {
	page.DefaultPage()
	out := &dto.SaleListResponse{Items: []dto.SaleResponse{}, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}

	filter := repository.SaleFilter{Limit: page.Limit, Offset: page.Offset}
	if scope := ScopeFor(caller); scope.Own {
		id, ok, err := uc.ownCustomerID(ctx, scope)
		if err != nil {
			return nil, err
		}
		if !ok {
			return out, nil
		}
		filter.CustomerID = id
	}

	list, err := uc.sales.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	for _, s := range list {
		out.Items = append(out.Items, toSaleResponse(s, nil))
	}
	return out, nil
}

// Get detalle de una venta con sus líneas. Para un cliente, una venta ajena se informa como inexistente.
func (uc *UseCase) Get(ctx context.Context, caller dto.Identity, saleID string) (*dto.SaleResponse, error) {
	saleID = strings.TrimSpace(saleID)
	s, err := uc.sales.GetByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.NotFound("venta %s", saleID)
	}
	if scope := ScopeFor(caller); scope.Own {
		id, ok, err := uc.ownCustomerID(ctx, scope)
		if err != nil {
			return nil, err
		}
		if !ok || id != s.CustomerID {
			return nil, domain.NotFound("venta %s", saleID)
		}
	}

	lines, err := uc.sales.ListLines(ctx, s.ID)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string)
	resp := make([]dto.SaleLineResponse, 0, len(lines))
	for _, l := range lines {
		name, err := uc.productName(ctx, l.VariantID, names)
		if err != nil {
			return nil, err
		}
		resp = append(resp, dto.SaleLineResponse{
			ID:          l.ID,
			VariantID:   l.VariantID,
			ProductName: name,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Subtotal:    l.Subtotal,
		})
	}
	out := toSaleResponse(s, resp)
	return &out, nil
}

func (uc *UseCase) productName(ctx context.Context, variantID string, cache map[string]string) (string, error) {
	if n, ok := cache[variantID]; ok {
		return n, nil
	}
	v, err := uc.variants.GetByID(ctx, variantID)
	if err != nil || v == nil {
		return "", err
	}
	p, err := uc.products.GetByID(ctx, v.ProductID)
	if err != nil || p == nil {
		return "", err
	}
	cache[variantID] = p.Name
	return p.Name, nil
}

func toSaleResponse(s *entity.Sale, lines []dto.SaleLineResponse) dto.SaleResponse {
	return dto.SaleResponse{
		ID:            s.ID,
		CustomerID:    s.CustomerID,
		BranchID:      s.BranchID,
		Total:         s.Total,
		PaymentType:   s.PaymentType,
		Channel:       s.Channel,
		Status:        s.Status,
		PaymentStatus: s.PaymentStatus,
		CreatedAt:     s.CreatedAt,
		Lines:         lines,
	}
}
