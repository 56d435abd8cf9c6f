package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, cliente_id, sucursal_id, total, tipo_pago, canal_venta, estado, estado_pago, fecha`

// SaleRepo ventas y sus líneas sobre PostgreSQL (pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de ventas. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	err := row.Scan(&s.ID, &s.CustomerID, &s.BranchID, &s.Total, &s.PaymentType, &s.Channel, &s.Status, &s.PaymentStatus, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserta la cabecera de la venta.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	query := `INSERT INTO venta (` + saleColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.CustomerID, s.BranchID, s.Total, s.PaymentType, s.Channel, s.Status, s.PaymentStatus, s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// AddLine inserta una línea de la venta.
func (r *SaleRepo) AddLine(ctx context.Context, l *entity.SaleLine) error {
	query := `
		INSERT INTO venta_detalle (id, venta_id, producto_variante_id, cantidad, precio, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.q.Exec(ctx, query, l.ID, l.SaleID, l.VariantID, l.Quantity, l.UnitPrice, l.Subtotal); err != nil {
		return fmt.Errorf("insert sale line: %w", err)
	}
	return nil
}

// UpdateTotal fija el total de la venta.
func (r *SaleRepo) UpdateTotal(ctx context.Context, saleID string, total decimal.Decimal) error {
	tag, err := r.q.Exec(ctx, `UPDATE venta SET total = $2 WHERE id = $1`, saleID, total)
	if err != nil {
		return fmt.Errorf("update sale total: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("venta %s", saleID)
	}
	return nil
}

// UpdateStatus cambia estado y estado de pago.
func (r *SaleRepo) UpdateStatus(ctx context.Context, saleID, status, paymentStatus string) error {
	tag, err := r.q.Exec(ctx, `UPDATE venta SET estado = $2, estado_pago = $3 WHERE id = $1`, saleID, status, paymentStatus)
	if err != nil {
		return fmt.Errorf("update sale status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("venta %s", saleID)
	}
	return nil
}

// GetByID obtiene una venta por ID. Retorna nil, nil si no existe.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	return r.get(ctx, `SELECT `+saleColumns+` FROM venta WHERE id = $1`, id)
}

// GetForUpdate obtiene la venta bloqueando la fila hasta el fin de la tx.
func (r *SaleRepo) GetForUpdate(ctx context.Context, id string) (*entity.Sale, error) {
	return r.get(ctx, `SELECT `+saleColumns+` FROM venta WHERE id = $1 FOR UPDATE`, id)
}

func (r *SaleRepo) get(ctx context.Context, query, id string) (*entity.Sale, error) {
	if !validID(id) {
		return nil, nil
	}
	s, err := scanSale(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return s, nil
}

// ListLines líneas de una venta en orden de inserción.
func (r *SaleRepo) ListLines(ctx context.Context, saleID string) ([]*entity.SaleLine, error) {
	if !validID(saleID) {
		return nil, nil
	}
	query := `
		SELECT id, venta_id, producto_variante_id, cantidad, precio, subtotal
		FROM venta_detalle WHERE venta_id = $1 ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale lines: %w", err)
	}
	defer rows.Close()
	var out []*entity.SaleLine
	for rows.Next() {
		var l entity.SaleLine
		if err := rows.Scan(&l.ID, &l.SaleID, &l.VariantID, &l.Quantity, &l.UnitPrice, &l.Subtotal); err != nil {
			return nil, fmt.Errorf("scan sale line: %w", err)
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}

// List ventas más recientes primero, opcionalmente de un solo cliente.
func (r *SaleRepo) List(ctx context.Context, f repository.SaleFilter) ([]*entity.Sale, error) {
	if f.CustomerID != "" && !validID(f.CustomerID) {
		return nil, nil
	}
	query := `
		SELECT ` + saleColumns + ` FROM venta
		WHERE ($1 = '' OR cliente_id::text = $1)
		ORDER BY fecha DESC, id
		LIMIT NULLIF($2::int, 0) OFFSET $3`
	rows, err := r.q.Query(ctx, query, f.CustomerID, f.Limit, f.Offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var out []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
