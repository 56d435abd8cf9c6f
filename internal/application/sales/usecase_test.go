package sales_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/boutique-api/internal/application/dto"
	"github.com/jhoicas/boutique-api/internal/application/sales"
	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/infrastructure/memory"
)

func seed(t *testing.T) (*memory.Store, *sales.UseCase) {
	t.Helper()
	ctx := context.Background()
	store := memory.New()
	require.NoError(t, store.Products().Create(ctx, &entity.Product{ID: "p1", Name: "Vestido"}))
	require.NoError(t, store.Variants().Create(ctx, &entity.Variant{ID: "v1", ProductID: "p1", Code: "VES-S"}))
	require.NoError(t, store.Customers().Create(ctx, &entity.Customer{ID: "c-ana", FirstName: "Ana", Email: "ana@mail.com"}))
	require.NoError(t, store.Customers().Create(ctx, &entity.Customer{ID: "c-luis", FirstName: "Luis", Email: "luis@mail.com"}))

	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	for i, c := range []string{"c-ana", "c-luis", "c-ana"} {
		s := &entity.Sale{
			ID: []string{"s1", "s2", "s3"}[i], CustomerID: c, BranchID: "b1",
			Total: decimal.NewFromInt(100), Channel: entity.ChannelOnline, PaymentType: entity.PaymentTypeQR,
			Status: entity.SaleStatusPending, PaymentStatus: entity.PaymentStatusPending,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, store.Sales().Create(ctx, s))
		require.NoError(t, store.Sales().AddLine(ctx, &entity.SaleLine{
			ID: s.ID + "-l1", SaleID: s.ID, VariantID: "v1", Quantity: 1,
			UnitPrice: decimal.NewFromInt(100), Subtotal: decimal.NewFromInt(100),
		}))
	}
	return store, sales.NewUseCase(store.Sales(), store.Customers(), store.Variants(), store.Products())
}

func TestScopeFor(t *testing.T) {
	assert.Equal(t, sales.Scope{Own: true, CustomerEmail: "ana@mail.com"},
		sales.ScopeFor(dto.Identity{Role: entity.RoleCliente, Email: " Ana@Mail.com "}))
	assert.False(t, sales.ScopeFor(dto.Identity{Role: entity.RoleVendedor}).Own)
	assert.False(t, sales.ScopeFor(dto.Identity{Role: entity.RoleAdmin}).Own)
}

func TestList_ScopedByRole(t *testing.T) {
	_, uc := seed(t)
	ctx := context.Background()

	all, err := uc.List(ctx, dto.Identity{Role: entity.RoleAdmin}, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, all.Items, 3)
	assert.Equal(t, "s3", all.Items[0].ID, "más reciente primero")

	own, err := uc.List(ctx, dto.Identity{Role: entity.RoleCliente, Email: "ana@mail.com"}, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, own.Items, 2)
	for _, s := range own.Items {
		assert.Equal(t, "c-ana", s.CustomerID)
	}

	none, err := uc.List(ctx, dto.Identity{Role: entity.RoleCliente, Email: "nadie@mail.com"}, dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, none.Items)
}

func TestGet_HidesOtherCustomersSales(t *testing.T) {
	_, uc := seed(t)
	ctx := context.Background()
	ana := dto.Identity{Role: entity.RoleCliente, Email: "ana@mail.com"}

	s, err := uc.Get(ctx, ana, "s1")
	require.NoError(t, err)
	require.Len(t, s.Lines, 1)
	assert.Equal(t, "Vestido", s.Lines[0].ProductName)

	_, err = uc.Get(ctx, ana, "s2")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	s, err = uc.Get(ctx, dto.Identity{Role: entity.RoleVendedor}, "s2")
	require.NoError(t, err)
	assert.Equal(t, "c-luis", s.CustomerID)

	_, err = uc.Get(ctx, dto.Identity{Role: entity.RoleAdmin}, "zz")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
