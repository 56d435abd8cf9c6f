package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/boutique-api/internal/application/dto"
	"github.com/jhoicas/boutique-api/internal/application/inventory"
	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
	"github.com/jhoicas/boutique-api/internal/infrastructure/memory"
)

const (
	variantID = "var-1"
	centro    = "suc-centro"
	norte     = "suc-norte"
)

func seed(t *testing.T) *memory.Store {
	t.Helper()
	ctx := context.Background()
	store := memory.New()
	require.NoError(t, store.Products().Create(ctx, &entity.Product{ID: "prod-1", Name: "Blusa"}))
	require.NoError(t, store.Variants().Create(ctx, &entity.Variant{ID: variantID, ProductID: "prod-1", Code: "BLU-M"}))
	require.NoError(t, store.Branches().Create(ctx, &entity.Branch{ID: centro, Name: "Centro"}))
	require.NoError(t, store.Branches().Create(ctx, &entity.Branch{ID: norte, Name: "Norte"}))
	return store
}

func quantity(t *testing.T, store *memory.Store, branchID string) int {
	t.Helper()
	s, err := store.Stock().Get(context.Background(), variantID, branchID)
	require.NoError(t, err)
	return s.Quantity
}

func TestRegisterMovement_InOutAdjust(t *testing.T) {
	store := seed(t)
	uc := inventory.NewRegisterMovementUseCase(store)
	ctx := context.Background()

	movs, err := uc.RegisterMovementFromRequest(ctx, "u1", dto.RegisterMovementRequest{
		VariantID: variantID, BranchID: centro, Type: " Entrada ", Quantity: 10,
	})
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, 0, movs[0].QuantityBefore)
	assert.Equal(t, 10, movs[0].QuantityAfter)

	_, err = uc.RegisterMovement(ctx, inventory.MovementInputDTO{VariantID: variantID, BranchID: centro, Type: entity.MovementTypeOut, Quantity: 4})
	require.NoError(t, err)
	assert.Equal(t, 6, quantity(t, store, centro))

	_, err = uc.RegisterMovement(ctx, inventory.MovementInputDTO{VariantID: variantID, BranchID: centro, Type: entity.MovementTypeAdjust, Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, quantity(t, store, centro))

	history, err := inventory.NewStockQueryUseCase(store.Stock(), store.Movements(), store.Branches()).
		ListMovements(ctx, variantID, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, history, 3)
}

func TestRegisterMovement_OutWithoutStockRollsBack(t *testing.T) {
	store := seed(t)
	uc := inventory.NewRegisterMovementUseCase(store)
	ctx := context.Background()

	_, err := uc.RegisterMovement(ctx, inventory.MovementInputDTO{VariantID: variantID, BranchID: centro, Type: entity.MovementTypeIn, Quantity: 1})
	require.NoError(t, err)

	_, err = uc.RegisterMovement(ctx, inventory.MovementInputDTO{VariantID: variantID, BranchID: centro, Type: entity.MovementTypeOut, Quantity: 5})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "Stock insuficiente para BLU-M en Centro. Disponible: 1, Solicitado: 5")
	assert.Equal(t, 1, quantity(t, store, centro))
}

func TestRegisterMovement_Transfer(t *testing.T) {
	store := seed(t)
	uc := inventory.NewRegisterMovementUseCase(store)
	ctx := context.Background()

	_, err := uc.RegisterMovement(ctx, inventory.MovementInputDTO{VariantID: variantID, BranchID: centro, Type: entity.MovementTypeIn, Quantity: 5})
	require.NoError(t, err)

	movs, err := uc.RegisterMovement(ctx, inventory.MovementInputDTO{
		VariantID: variantID, FromBranchID: centro, ToBranchID: norte, Type: entity.MovementTypeTransfer, Quantity: 3,
	})
	require.NoError(t, err)
	require.Len(t, movs, 2)
	assert.Equal(t, movs[0].Reference, movs[1].Reference)
	assert.Equal(t, entity.MovementTypeTransfer, movs[0].Type)
	assert.Equal(t, 2, quantity(t, store, centro))
	assert.Equal(t, 3, quantity(t, store, norte))

	// sin stock en origen no se toca ninguna sucursal
	_, err = uc.RegisterMovement(ctx, inventory.MovementInputDTO{
		VariantID: variantID, FromBranchID: centro, ToBranchID: norte, Type: entity.MovementTypeTransfer, Quantity: 9,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 2, quantity(t, store, centro))
	assert.Equal(t, 3, quantity(t, store, norte))

	stock, err := inventory.NewStockQueryUseCase(store.Stock(), store.Movements(), store.Branches()).
		ListByBranch(ctx, norte, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, stock, 1)
	assert.Equal(t, 3, stock[0].Quantity)
}

// lockRecorder registra el orden de los GetForUpdate.
type lockRecorder struct {
	repository.StockRepository
	locks *[]string
}

func (r lockRecorder) GetForUpdate(ctx context.Context, variantID, branchID string) (*entity.StockEntry, error) {
	*r.locks = append(*r.locks, branchID)
	return r.StockRepository.GetForUpdate(ctx, variantID, branchID)
}

type recordingRunner struct {
	store *memory.Store
	locks []string
}

func (r *recordingRunner) Run(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	movRepo repository.StockMovementRepository,
	variantRepo repository.VariantRepository,
	branchRepo repository.BranchRepository,
) error) error {
	return r.store.Run(ctx, func(
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
		variantRepo repository.VariantRepository,
		branchRepo repository.BranchRepository,
	) error {
		return fn(lockRecorder{StockRepository: stockRepo, locks: &r.locks}, movRepo, variantRepo, branchRepo)
	})
}

func TestRegisterMovement_TransferLocksInSameOrderBothWays(t *testing.T) {
	store := seed(t)
	ctx := context.Background()
	_, err := inventory.NewRegisterMovementUseCase(store).RegisterMovement(ctx, inventory.MovementInputDTO{
		VariantID: variantID, BranchID: norte, Type: entity.MovementTypeIn, Quantity: 4,
	})
	require.NoError(t, err)
	_, err = inventory.NewRegisterMovementUseCase(store).RegisterMovement(ctx, inventory.MovementInputDTO{
		VariantID: variantID, BranchID: centro, Type: entity.MovementTypeIn, Quantity: 4,
	})
	require.NoError(t, err)

	firstLocks := func(from, to string) []string {
		runner := &recordingRunner{store: store}
		_, err := inventory.NewRegisterMovementUseCase(runner).RegisterMovement(ctx, inventory.MovementInputDTO{
			VariantID: variantID, FromBranchID: from, ToBranchID: to, Type: entity.MovementTypeTransfer, Quantity: 1,
		})
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(runner.locks), 2)
		return runner.locks[:2]
	}
	// suc-centro < suc-norte: ambas direcciones bloquean primero centro.
	assert.Equal(t, []string{centro, norte}, firstLocks(centro, norte))
	assert.Equal(t, []string{centro, norte}, firstLocks(norte, centro))
}

func TestRegisterMovement_TransferUnknownBranch(t *testing.T) {
	store := seed(t)
	_, err := inventory.NewRegisterMovementUseCase(store).RegisterMovement(context.Background(), inventory.MovementInputDTO{
		VariantID: variantID, FromBranchID: centro, ToBranchID: "suc-inexistente", Type: entity.MovementTypeTransfer, Quantity: 1,
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 0, quantity(t, store, centro))
}

func TestRegisterMovement_Validation(t *testing.T) {
	store := seed(t)
	uc := inventory.NewRegisterMovementUseCase(store)
	ctx := context.Background()

	cases := []struct {
		name string
		in   inventory.MovementInputDTO
		want error
	}{
		{"sin variante", inventory.MovementInputDTO{BranchID: centro, Type: entity.MovementTypeIn, Quantity: 1}, domain.ErrInvalidInput},
		{"tipo desconocido", inventory.MovementInputDTO{VariantID: variantID, BranchID: centro, Type: "regalo", Quantity: 1}, domain.ErrInvalidInput},
		{"cantidad cero", inventory.MovementInputDTO{VariantID: variantID, BranchID: centro, Type: entity.MovementTypeIn}, domain.ErrInvalidInput},
		{"transferencia misma sucursal", inventory.MovementInputDTO{VariantID: variantID, FromBranchID: centro, ToBranchID: centro, Type: entity.MovementTypeTransfer, Quantity: 1}, domain.ErrInvalidInput},
		{"variante inexistente", inventory.MovementInputDTO{VariantID: "nope", BranchID: centro, Type: entity.MovementTypeIn, Quantity: 1}, domain.ErrNotFound},
		{"sucursal inexistente", inventory.MovementInputDTO{VariantID: variantID, BranchID: "nope", Type: entity.MovementTypeIn, Quantity: 1}, domain.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.RegisterMovement(ctx, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	_, err := inventory.NewStockQueryUseCase(store.Stock(), store.Movements(), store.Branches()).
		ListByBranch(ctx, "nope", dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
