package inventory

import (
	"sort"

	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
)

// ApplyMovement calcula la cantidad resultante de aplicar un movimiento al stock actual (servicio de dominio).
// entrada suma, salida y venta restan sin permitir negativos, ajuste fija el valor absoluto.
// Devuelve ErrInsufficientStock si la resta dejaría el stock en negativo.
func ApplyMovement(current int, movementType string, quantity int) (int, error) {
	if quantity < 0 {
		return current, domain.Invalid("cantidad negativa")
	}
	switch movementType {
	case entity.MovementTypeIn:
		return current + quantity, nil
	case entity.MovementTypeOut, entity.MovementTypeSale:
		if current < quantity {
			return current, domain.ErrInsufficientStock
		}
		return current - quantity, nil
	case entity.MovementTypeAdjust:
		return quantity, nil
	default:
		return current, domain.Invalid("tipo de movimiento desconocido: %s", movementType)
	}
}

// StockKey identifica una fila de stock.
type StockKey struct {
	VariantID string
	BranchID  string
}

// LockOrder devuelve las claves sin repetir, ordenadas por (variante, sucursal).
// Toda transacción que toque varias filas de stock las bloquea en este orden.
func LockOrder(keys []StockKey) []StockKey {
	seen := make(map[StockKey]struct{}, len(keys))
	out := make([]StockKey, 0, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].VariantID != out[j].VariantID {
			return out[i].VariantID < out[j].VariantID
		}
		return out[i].BranchID < out[j].BranchID
	})
	return out
}
