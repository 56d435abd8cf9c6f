package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/boutique-api/pkg/textfold"
)

// Period rango [From, To) sobre la fecha de la venta. Un extremo nil no restringe.
type Period struct {
	From *time.Time
	To   *time.Time
}

// TotalsResult suma y cantidad de ventas.
type TotalsResult struct {
	Total decimal.Decimal
	Count int
}

// GroupTotal total y cantidad agrupados por una clave (canal, tipo de pago).
type GroupTotal struct {
	Key   string
	Total decimal.Decimal
	Count int
}

// DailyTotal total y cantidad de un día calendario.
type DailyTotal struct {
	Day   time.Time
	Total decimal.Decimal
	Count int
}

// LowStockRow unidades en filas de stock bajo, agregadas por producto.
type LowStockRow struct {
	ProductID   string
	ProductName string
	Units       int
}

// ProductFilter filtros conjuntivos sobre líneas de venta para el ranking de productos.
// Los campos vacíos o nil no filtran.
type ProductFilter struct {
	Period
	Year         int
	Month        int
	Months       []int // temporada
	Channel      string
	CategoryID   string
	MinUnitPrice *decimal.Decimal
	MaxUnitPrice *decimal.Decimal
	ExcludeNames []string // términos ya normalizados con textfold.Fold
}

// ExcludesName indica si el nombre de producto contiene alguno de los términos excluidos,
// comparando con textfold (sin mayúsculas, tildes ni espacios repetidos).
func (f ProductFilter) ExcludesName(name string) bool {
	for _, term := range f.ExcludeNames {
		if textfold.Contains(name, term) {
			return true
		}
	}
	return false
}

// ProductMetricRow unidades y monto vendidos de un producto.
type ProductMetricRow struct {
	ProductID   string
	ProductName string
	Units       int
	Amount      decimal.Decimal
}

// SaleLineFact línea de venta con su fecha, sin filtro de estado (para predicción).
type SaleLineFact struct {
	SaleID      string
	SoldAt      time.Time
	ProductID   string
	ProductName string
	Quantity    int
}

// ReportRepository consultas de lectura para reportes.
// Salvo SaleLinesBetween, todas consideran solo ventas completadas y pagadas.
type ReportRepository interface {
	Totals(ctx context.Context, p Period) (TotalsResult, error)
	TotalsByChannel(ctx context.Context, p Period) ([]GroupTotal, error)
	TotalsByPaymentType(ctx context.Context, p Period) ([]GroupTotal, error)
	// DailyTotals agrupa por día calendario; los días sin ventas no aparecen.
	DailyTotals(ctx context.Context, p Period) ([]DailyTotal, error)
	// ProductMetrics agrega por producto las líneas que cumplen el filtro. Sin orden definido.
	ProductMetrics(ctx context.Context, f ProductFilter) ([]ProductMetricRow, error)
	// LowStock suma por producto las filas con cantidad <= threshold, ascendente, hasta limit.
	LowStock(ctx context.Context, threshold, limit int) ([]LowStockRow, error)
	CatalogCounts(ctx context.Context) (products, variants int, err error)
	SaleLinesBetween(ctx context.Context, from, to time.Time) ([]SaleLineFact, error)
}
