package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/domain/inventory"
)

func TestApplyMovement(t *testing.T) {
	tests := []struct {
		name    string
		current int
		typ     string
		qty     int
		want    int
		wantErr error
	}{
		{"entrada suma", 3, entity.MovementTypeIn, 2, 5, nil},
		{"salida resta", 3, entity.MovementTypeOut, 3, 0, nil},
		{"venta resta", 4, entity.MovementTypeSale, 1, 3, nil},
		{"salida sin stock", 1, entity.MovementTypeOut, 2, 1, domain.ErrInsufficientStock},
		{"ajuste fija valor", 9, entity.MovementTypeAdjust, 2, 2, nil},
		{"tipo desconocido", 1, "regalo", 1, 1, domain.ErrInvalidInput},
		{"cantidad negativa", 1, entity.MovementTypeIn, -1, 1, domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := inventory.ApplyMovement(tt.current, tt.typ, tt.qty)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLockOrder(t *testing.T) {
	keys := []inventory.StockKey{
		{VariantID: "v-b", BranchID: "s-1"},
		{VariantID: "v-a", BranchID: "s-2"},
		{VariantID: "v-b", BranchID: "s-1"},
		{VariantID: "v-a", BranchID: "s-1"},
	}
	assert.Equal(t, []inventory.StockKey{
		{VariantID: "v-a", BranchID: "s-1"},
		{VariantID: "v-a", BranchID: "s-2"},
		{VariantID: "v-b", BranchID: "s-1"},
	}, inventory.LockOrder(keys))

	// {A,B} y {B,A} producen el mismo orden.
	ab := inventory.LockOrder([]inventory.StockKey{{VariantID: "A", BranchID: "X"}, {VariantID: "B", BranchID: "X"}})
	ba := inventory.LockOrder([]inventory.StockKey{{VariantID: "B", BranchID: "X"}, {VariantID: "A", BranchID: "X"}})
	assert.Equal(t, ab, ba)
}
