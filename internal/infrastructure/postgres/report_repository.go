package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de agregación para reportes (solo lectura).
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el repositorio de reportes. Pasar pool (Querier).
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// where acumula condiciones y argumentos posicionales.
type where struct {
	conds []string
	args  []any
}

func (w *where) add(cond string, arg any) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, strings.ReplaceAll(cond, "?", fmt.Sprintf("$%d", len(w.args))))
}

func (w *where) raw(cond string) {
	w.conds = append(w.conds, cond)
}

func (w *where) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

func settledWhere(p repository.Period) *where {
	w := &where{}
	w.add("v.estado = ?", entity.SaleStatusCompleted)
	w.add("v.estado_pago = ?", entity.PaymentStatusPaid)
	if p.From != nil {
		w.add("v.fecha >= ?", *p.From)
	}
	if p.To != nil {
		w.add("v.fecha < ?", *p.To)
	}
	return w
}

// Totals suma y cuenta las ventas liquidadas del período.
func (r *ReportRepo) Totals(ctx context.Context, p repository.Period) (repository.TotalsResult, error) {
	w := settledWhere(p)
	query := `SELECT COALESCE(SUM(v.total), 0), COUNT(*)::int FROM venta v` + w.String()
	res := repository.TotalsResult{}
	if err := r.q.QueryRow(ctx, query, w.args...).Scan(&res.Total, &res.Count); err != nil {
		return repository.TotalsResult{}, fmt.Errorf("report totals: %w", err)
	}
	return res, nil
}

func (r *ReportRepo) groupBy(ctx context.Context, column string, p repository.Period) ([]repository.GroupTotal, error) {
	w := settledWhere(p)
	query := `SELECT ` + column + `, COALESCE(SUM(v.total), 0), COUNT(*)::int FROM venta v` + w.String() +
		` GROUP BY ` + column + ` ORDER BY 2 DESC, 1`
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("report group by %s: %w", column, err)
	}
	defer rows.Close()
	var out []repository.GroupTotal
	for rows.Next() {
		var g repository.GroupTotal
		if err := rows.Scan(&g.Key, &g.Total, &g.Count); err != nil {
			return nil, fmt.Errorf("scan group total: %w", err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// TotalsByChannel ventas liquidadas agrupadas por canal.
func (r *ReportRepo) TotalsByChannel(ctx context.Context, p repository.Period) ([]repository.GroupTotal, error) {
	return r.groupBy(ctx, "v.canal_venta", p)
}

// TotalsByPaymentType ventas liquidadas agrupadas por tipo de pago.
func (r *ReportRepo) TotalsByPaymentType(ctx context.Context, p repository.Period) ([]repository.GroupTotal, error) {
	return r.groupBy(ctx, "v.tipo_pago", p)
}

// DailyTotals ventas liquidadas por día calendario (zona horaria de la sesión).
func (r *ReportRepo) DailyTotals(ctx context.Context, p repository.Period) ([]repository.DailyTotal, error) {
	w := settledWhere(p)
	query := `
		SELECT date_trunc('day', v.fecha) AS dia, COALESCE(SUM(v.total), 0), COUNT(*)::int
		FROM venta v` + w.String() + `
		GROUP BY dia ORDER BY dia`
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("report daily totals: %w", err)
	}
	defer rows.Close()
	var out []repository.DailyTotal
	for rows.Next() {
		var d repository.DailyTotal
		if err := rows.Scan(&d.Day, &d.Total, &d.Count); err != nil {
			return nil, fmt.Errorf("scan daily total: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// ProductMetrics unidades y monto por producto sobre las líneas que cumplen el filtro.
func (r *ReportRepo) ProductMetrics(ctx context.Context, f repository.ProductFilter) ([]repository.ProductMetricRow, error) {
	w := settledWhere(f.Period)
	if f.Year != 0 {
		w.add("EXTRACT(YEAR FROM v.fecha)::int = ?", f.Year)
	}
	if f.Month != 0 {
		w.add("EXTRACT(MONTH FROM v.fecha)::int = ?", f.Month)
	}
	if len(f.Months) > 0 {
		w.add("EXTRACT(MONTH FROM v.fecha)::int = ANY(?::int[])", f.Months)
	}
	if f.Channel != "" {
		w.add("v.canal_venta = ?", f.Channel)
	}
	if f.CategoryID != "" {
		if !validID(f.CategoryID) {
			return nil, nil
		}
		w.add("p.categoria_id = ?", f.CategoryID)
	}
	if f.MinUnitPrice != nil {
		w.add("d.precio >= ?", *f.MinUnitPrice)
	}
	if f.MaxUnitPrice != nil {
		w.add("d.precio <= ?", *f.MaxUnitPrice)
	}
	query := `
		SELECT p.id, p.nombre, COALESCE(SUM(d.cantidad), 0)::int, COALESCE(SUM(d.subtotal), 0)
		FROM venta_detalle d
		JOIN venta v ON v.id = d.venta_id
		JOIN producto_variante pv ON pv.id = d.producto_variante_id
		JOIN producto p ON p.id = pv.producto_id` + w.String() + `
		GROUP BY p.id, p.nombre`
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("report product metrics: %w", err)
	}
	defer rows.Close()
	var out []repository.ProductMetricRow
	for rows.Next() {
		var m repository.ProductMetricRow
		if err := rows.Scan(&m.ProductID, &m.ProductName, &m.Units, &m.Amount); err != nil {
			return nil, fmt.Errorf("scan product metric: %w", err)
		}
		// Exclusión por nombre con textfold, las mismas reglas que el backend en memoria.
		if f.ExcludesName(m.ProductName) {
			continue
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// LowStock suma por producto las filas de stock con cantidad <= threshold.
func (r *ReportRepo) LowStock(ctx context.Context, threshold, limit int) ([]repository.LowStockRow, error) {
	query := `
		SELECT p.id, p.nombre, COALESCE(SUM(s.cantidad), 0)::int AS unidades
		FROM stock s
		JOIN producto_variante pv ON pv.id = s.producto_variante_id
		JOIN producto p ON p.id = pv.producto_id
		WHERE s.cantidad <= $1
		GROUP BY p.id, p.nombre
		ORDER BY unidades, p.nombre
		LIMIT NULLIF($2::int, 0)`
	rows, err := r.q.Query(ctx, query, threshold, limit)
	if err != nil {
		return nil, fmt.Errorf("report low stock: %w", err)
	}
	defer rows.Close()
	var out []repository.LowStockRow
	for rows.Next() {
		var l repository.LowStockRow
		if err := rows.Scan(&l.ProductID, &l.ProductName, &l.Units); err != nil {
			return nil, fmt.Errorf("scan low stock: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// CatalogCounts cantidad de productos y de variantes.
func (r *ReportRepo) CatalogCounts(ctx context.Context) (products, variants int, err error) {
	query := `SELECT (SELECT COUNT(*) FROM producto)::int, (SELECT COUNT(*) FROM producto_variante)::int`
	if err := r.q.QueryRow(ctx, query).Scan(&products, &variants); err != nil {
		return 0, 0, fmt.Errorf("report catalog counts: %w", err)
	}
	return products, variants, nil
}

// SaleLinesBetween líneas de venta en [from, to) con su producto, sin filtrar por estado.
func (r *ReportRepo) SaleLinesBetween(ctx context.Context, from, to time.Time) ([]repository.SaleLineFact, error) {
	query := `
		SELECT v.id, v.fecha, p.id, p.nombre, d.cantidad
		FROM venta_detalle d
		JOIN venta v ON v.id = d.venta_id
		JOIN producto_variante pv ON pv.id = d.producto_variante_id
		JOIN producto p ON p.id = pv.producto_id
		WHERE v.fecha >= $1 AND v.fecha < $2
		ORDER BY v.fecha`
	rows, err := r.q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("report sale lines: %w", err)
	}
	defer rows.Close()
	var out []repository.SaleLineFact
	for rows.Next() {
		var l repository.SaleLineFact
		if err := rows.Scan(&l.SaleID, &l.SoldAt, &l.ProductID, &l.ProductName, &l.Quantity); err != nil {
			return nil, fmt.Errorf("scan sale line fact: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
