// Package pdf genera la exportación del reporte de ventas en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + fecha de generación                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: total / ventas / ticket / últimos 30 días          │
//	│  VENTAS POR DÍA (7 días)                                     │
//	│  CANALES  |  TIPOS DE PAGO                                   │
//	│  TOP PRODUCTOS                                               │
//	│  STOCK BAJO                                                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/boutique-api/internal/application/dto"
	"github.com/jhoicas/boutique-api/internal/application/reports"
)

var _ reports.Renderer = (*ReportRenderer)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 120, Green: 40, Blue: 90}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Renderer ──────────────────────────────────────────────────────────────────

// ReportRenderer implementa reports.Renderer usando Maroto v2.
type ReportRenderer struct {
	storeName string
}

// NewReportRenderer construye el renderer. storeName aparece en el encabezado.
func NewReportRenderer(storeName string) *ReportRenderer {
	return &ReportRenderer{storeName: nonEmpty(storeName, "Boutique")}
}

func (g *ReportRenderer) ContentType() string { return "application/pdf" }
func (g *ReportRenderer) Extension() string   { return "pdf" }

// Render genera el PDF y devuelve sus bytes.
func (g *ReportRenderer) Render(_ context.Context, r *reports.Report) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de ventas", true).
		WithAuthor(g.storeName, true).
		Build()

	m := maroto.New(cfg)
	s := r.Summary

	m.AddRows(headerRow(g.storeName, r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(s))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("VENTAS POR DÍA (ÚLTIMOS 7 DÍAS)"))
	m.AddRows(tableHeader([]string{"Fecha", "Ventas", "Total"}, []int{4, 4, 4}))
	for _, d := range r.Last7Days {
		m.AddRows(tableRow([]string{d.Day, fmt.Sprint(d.Count), money(d.Total)}, []int{4, 4, 4}))
	}
	if len(r.Last7Days) == 0 {
		m.AddRows(emptyRow("Sin ventas en los últimos 7 días"))
	}

	m.AddRows(sectionTitle("VENTAS POR CANAL"))
	m.AddRows(groupRows(s.ByChannel)...)
	m.AddRows(sectionTitle("VENTAS POR TIPO DE PAGO"))
	m.AddRows(groupRows(s.ByPaymentType)...)

	m.AddRows(sectionTitle("TOP PRODUCTOS"))
	m.AddRows(tableHeader([]string{"#", "Producto", "Unidades", "Monto"}, []int{1, 6, 2, 3}))
	for _, p := range r.TopProducts {
		m.AddRows(tableRow([]string{fmt.Sprint(p.Rank), p.ProductName, fmt.Sprint(p.Units), money(p.Amount)}, []int{1, 6, 2, 3}))
	}
	if len(r.TopProducts) == 0 {
		m.AddRows(emptyRow("Sin productos vendidos"))
	}

	m.AddRows(sectionTitle("STOCK BAJO"))
	m.AddRows(tableHeader([]string{"Producto", "Unidades"}, []int{9, 3}))
	for _, l := range s.LowStock {
		m.AddRows(tableRow([]string{l.ProductName, fmt.Sprint(l.Units)}, []int{9, 3}))
	}
	if len(s.LowStock) == 0 {
		m.AddRows(emptyRow("Sin productos con stock bajo"))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre de la tienda (izq) y fecha de generación (der).
func headerRow(storeName string, r *reports.Report) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(storeName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Reporte de ventas", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Generado: "+r.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// summaryRow: bloque de totales generales.
func summaryRow(s dto.SummaryResponse) core.Row {
	label := func(v string) core.Component {
		return text.New(v, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1})
	}
	value := func(v string) core.Component {
		return text.New(v, props.Text{Style: fontstyle.Bold, Size: 11, Top: 6})
	}
	return row.New(14).Add(
		col.New(3).Add(label("TOTAL VENDIDO"), value(money(s.Overall.Total))),
		col.New(3).Add(label("VENTAS"), value(fmt.Sprint(s.Overall.Count))),
		col.New(3).Add(label("TICKET PROMEDIO"), value(money(decimal.NewFromFloat(s.Overall.AverageTicket)))),
		col.New(3).Add(label("ÚLTIMOS 30 DÍAS"), value(money(s.Last30Days.Total))),
	)
}

func sectionTitle(title string) core.Row {
	return row.New(9).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 3}),
	))
}

// tableHeader cabecera con fondo del color primario.
func tableHeader(labels []string, sizes []int) core.Row {
	cols := make([]core.Col, 0, len(labels))
	for i, l := range labels {
		cols = append(cols, col.New(sizes[i]).Add(text.New(l, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: cellAlign(i), Color: colorWhite, Top: 1.5, Left: 1, Right: 1,
		})))
	}
	return row.New(7).Add(cols...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func tableRow(values []string, sizes []int) core.Row {
	cols := make([]core.Col, 0, len(values))
	for i, v := range values {
		cols = append(cols, col.New(sizes[i]).Add(text.New(v, props.Text{
			Size: 8, Align: cellAlign(i), Top: 1, Left: 1, Right: 1,
		})))
	}
	return row.New(6).Add(cols...)
}

func emptyRow(msg string) core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New(msg, props.Text{Size: 8, Color: colorGray, Top: 1, Left: 1}),
	))
}

func groupRows(groups []dto.GroupTotalDTO) []core.Row {
	sizes := []int{6, 3, 3}
	rows := []core.Row{tableHeader([]string{"Clave", "Ventas", "Total"}, sizes)}
	for _, g := range groups {
		rows = append(rows, tableRow([]string{g.Key, fmt.Sprint(g.Count), money(g.Total)}, sizes))
	}
	if len(groups) == 0 {
		rows = append(rows, emptyRow("Sin ventas"))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

// cellAlign primera columna a la izquierda, el resto a la derecha.
func cellAlign(i int) align.Type {
	if i == 0 {
		return align.Left
	}
	return align.Right
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// money formatea con puntos de miles y coma decimal. Ej: 1234567.5 → "$1.234.567,50".
func money(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	return sign + "$" + formatMoney(intPart) + "," + frac
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatMoney(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
