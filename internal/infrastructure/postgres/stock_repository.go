package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
)

var (
	_ repository.StockRepository         = (*StockRepo)(nil)
	_ repository.StockMovementRepository = (*StockMovementRepo)(nil)
)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene el stock actual de una variante en una sucursal.
func (r *StockRepo) Get(ctx context.Context, variantID, branchID string) (*entity.StockEntry, error) {
	empty := &entity.StockEntry{VariantID: variantID, BranchID: branchID}
	if !validID(variantID) || !validID(branchID) {
		return empty, nil
	}
	query := `
		SELECT producto_variante_id, sucursal_id, cantidad, updated_at
		FROM stock WHERE producto_variante_id = $1 AND sucursal_id = $2`
	var s entity.StockEntry
	err := r.q.QueryRow(ctx, query, variantID, branchID).Scan(&s.VariantID, &s.BranchID, &s.Quantity, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return empty, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// GetForUpdate crea la fila en 0 si falta y la bloquea (SELECT FOR UPDATE) hasta el fin de la tx.
func (r *StockRepo) GetForUpdate(ctx context.Context, variantID, branchID string) (*entity.StockEntry, error) {
	insert := `
		INSERT INTO stock (producto_variante_id, sucursal_id, cantidad, updated_at)
		VALUES ($1, $2, 0, now())
		ON CONFLICT (producto_variante_id, sucursal_id) DO NOTHING`
	if _, err := r.q.Exec(ctx, insert, variantID, branchID); err != nil {
		return nil, fmt.Errorf("ensure stock row: %w", err)
	}
	query := `
		SELECT producto_variante_id, sucursal_id, cantidad, updated_at
		FROM stock WHERE producto_variante_id = $1 AND sucursal_id = $2
		FOR UPDATE`
	var s entity.StockEntry
	err := r.q.QueryRow(ctx, query, variantID, branchID).Scan(&s.VariantID, &s.BranchID, &s.Quantity, &s.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza la cantidad en stock (por variante y sucursal).
func (r *StockRepo) Upsert(ctx context.Context, stock *entity.StockEntry) error {
	query := `
		INSERT INTO stock (producto_variante_id, sucursal_id, cantidad, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (producto_variante_id, sucursal_id)
		DO UPDATE SET cantidad = EXCLUDED.cantidad, updated_at = now()`
	if _, err := r.q.Exec(ctx, query, stock.VariantID, stock.BranchID, stock.Quantity); err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// ListByBranch lista el stock registrado en una sucursal.
func (r *StockRepo) ListByBranch(ctx context.Context, branchID string, limit, offset int) ([]*entity.StockEntry, error) {
	if !validID(branchID) {
		return nil, nil
	}
	query := `
		SELECT producto_variante_id, sucursal_id, cantidad, updated_at
		FROM stock WHERE sucursal_id = $1
		ORDER BY producto_variante_id
		LIMIT NULLIF($2::int, 0) OFFSET $3`
	rows, err := r.q.Query(ctx, query, branchID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()
	var out []*entity.StockEntry
	for rows.Next() {
		var s entity.StockEntry
		if err := rows.Scan(&s.VariantID, &s.BranchID, &s.Quantity, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

// ── Movimientos ───────────────────────────────────────────────────────────────

// StockMovementRepo historial de movimientos de stock sobre PostgreSQL.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador de movimientos. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create registra un movimiento.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO movimiento_stock (id, producto_variante_id, sucursal_id, tipo_movimiento, cantidad,
			cantidad_anterior, cantidad_nueva, referencia, notas, usuario_id, fecha)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.VariantID, m.BranchID, m.Type, m.Quantity,
		m.QuantityBefore, m.QuantityAfter, m.Reference, m.Notes, m.CreatedBy, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// ListByVariant historial de una variante, más reciente primero.
func (r *StockMovementRepo) ListByVariant(ctx context.Context, variantID string, limit, offset int) ([]*entity.StockMovement, error) {
	if !validID(variantID) {
		return nil, nil
	}
	query := `
		SELECT id, producto_variante_id, sucursal_id, tipo_movimiento, cantidad,
			cantidad_anterior, cantidad_nueva, referencia, notas, usuario_id, fecha
		FROM movimiento_stock WHERE producto_variante_id = $1
		ORDER BY fecha DESC, id
		LIMIT NULLIF($2::int, 0) OFFSET $3`
	rows, err := r.q.Query(ctx, query, variantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var out []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(
			&m.ID, &m.VariantID, &m.BranchID, &m.Type, &m.Quantity,
			&m.QuantityBefore, &m.QuantityAfter, &m.Reference, &m.Notes, &m.CreatedBy, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}
