package dto

import "github.com/shopspring/decimal"

// ── Query parameters ──────────────────────────────────────────────────────────

// DailySeriesRequest parámetros para GET /api/reportes/ventas-diarias.
type DailySeriesRequest struct {
	Start string `query:"start"` // YYYY-MM-DD
	End   string `query:"end"`   // YYYY-MM-DD, inclusive
	Days  int    `query:"dias"`  // ventana hacia atrás si no hay fechas (default 30)
}

// TopProductsRequest parámetros para GET /api/reportes/productos-top.
type TopProductsRequest struct {
	Limit        int    `query:"limit"`  // default 5
	Metric       string `query:"metric"` // unidades | monto
	Order        string `query:"order"`  // desc | asc
	Start        string `query:"start"`
	End          string `query:"end"`
	Year         int    `query:"year"`
	Month        int    `query:"month"`
	Season       string `query:"season"` // otono | invierno | primavera | verano
	Channel      string `query:"canal"`
	CategoryID   string `query:"categoria"`
	MinUnitPrice string `query:"min_precio_unitario"`
	MaxUnitPrice string `query:"max_precio_unitario"`
	MinAmount    string `query:"min_monto"`
	MaxAmount    string `query:"max_monto"`
	Exclude      string `query:"exclude"` // nombres separados por coma
}

// LowStockRequest parámetros para GET /api/reportes/stock-bajo.
type LowStockRequest struct {
	Threshold *int `query:"umbral"` // nil = 5; 0 = solo agotados
	Limit     int  `query:"limit"`  // default 20
}

// ForecastRequest parámetros para GET /api/reportes/prediccion.
type ForecastRequest struct {
	Date string `query:"fecha"` // YYYY-MM-DD, default mañana
}

// ── Respuestas ────────────────────────────────────────────────────────────────

// TotalsDTO total, cantidad y ticket promedio.
type TotalsDTO struct {
	Total         decimal.Decimal `json:"total"`
	Count         int             `json:"cantidad"`
	AverageTicket float64         `json:"ticket_promedio"`
}

// GroupTotalDTO total y cantidad por clave (canal o tipo de pago).
type GroupTotalDTO struct {
	Key   string          `json:"clave"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"cantidad"`
}

// LowStockDTO unidades en stock bajo por producto.
type LowStockDTO struct {
	ProductID   string `json:"producto_id"`
	ProductName string `json:"producto"`
	Units       int    `json:"unidades"`
}

// SummaryResponse respuesta de GET /api/reportes/resumen.
type SummaryResponse struct {
	Overall       TotalsDTO       `json:"general"`
	Last30Days    TotalsDTO       `json:"ultimos_30_dias"`
	ByChannel     []GroupTotalDTO `json:"por_canal"`
	ByPaymentType []GroupTotalDTO `json:"por_tipo_pago"`
	LowStock      []LowStockDTO   `json:"stock_bajo"`
	Products      int             `json:"total_productos"`
	Variants      int             `json:"total_variantes"`
}

// DailyPointDTO total de un día.
type DailyPointDTO struct {
	Day   string          `json:"fecha"` // YYYY-MM-DD
	Total decimal.Decimal `json:"total"`
	Count int             `json:"cantidad"`
}

// DailySeriesResponse serie diaria (sin días vacíos).
type DailySeriesResponse struct {
	Start string          `json:"desde"`
	End   string          `json:"hasta"` // inclusive
	Days  []DailyPointDTO `json:"dias"`
}

// TopProductDTO fila del ranking de productos.
type TopProductDTO struct {
	Rank        int             `json:"posicion"`
	ProductID   string          `json:"producto_id"`
	ProductName string          `json:"producto"`
	Units       int             `json:"unidades"`
	Amount      decimal.Decimal `json:"monto"`
}

// TopProductsResponse respuesta de GET /api/reportes/productos-top.
type TopProductsResponse struct {
	Metric string          `json:"metric"`
	Order  string          `json:"order"`
	Items  []TopProductDTO `json:"items"`
}

// ForecastItemDTO predicción de un producto para la fecha objetivo.
type ForecastItemDTO struct {
	ProductID      string  `json:"producto_id"`
	ProductName    string  `json:"producto"`
	EstimatedUnits int     `json:"cantidad_estimada"`
	Average        float64 `json:"promedio_historico"`
	TimesSold      int     `json:"veces_vendido"`
	Confidence     int     `json:"confianza"`
}

// ForecastResponse respuesta de GET /api/reportes/prediccion.
type ForecastResponse struct {
	Date          string            `json:"fecha"`
	Weekday       string            `json:"dia_semana"`
	Occurrences   int               `json:"ocurrencias"`
	TotalProducts int               `json:"total_productos"`
	Items         []ForecastItemDTO `json:"predicciones"`
}
