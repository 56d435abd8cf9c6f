// Package spreadsheet genera la exportación del reporte de ventas en Excel.
package spreadsheet

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/boutique-api/internal/application/dto"
	"github.com/jhoicas/boutique-api/internal/application/reports"
)

var _ reports.Renderer = (*ExcelRenderer)(nil)

// Hojas del libro, en orden.
const (
	SheetSummary  = "Resumen"
	SheetDaily    = "VentasPorDia_7d"
	SheetChannels = "Canales"
	SheetPayments = "TiposPago"
	SheetTop      = "TopProductos"
	SheetLowStock = "StockBajo"
)

// ExcelRenderer implementa reports.Renderer con excelize: una hoja por sección.
type ExcelRenderer struct{}

// NewExcelRenderer construye el renderer.
func NewExcelRenderer() *ExcelRenderer { return &ExcelRenderer{} }

func (ExcelRenderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}
func (ExcelRenderer) Extension() string { return "xlsx" }

// Render arma el libro y devuelve el .xlsx serializado.
func (e *ExcelRenderer) Render(_ context.Context, r *reports.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"78285A"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("excel: estilo: %w", err)
	}
	w := &sheetWriter{f: f, header: header}

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return nil, fmt.Errorf("excel: hoja %s: %w", SheetSummary, err)
	}
	s := r.Summary
	w.table(SheetSummary, []any{"Indicador", "Valor"}, [][]any{
		{"Generado", r.GeneratedAt.Format("2006-01-02 15:04")},
		{"Total vendido", s.Overall.Total.InexactFloat64()},
		{"Ventas", s.Overall.Count},
		{"Ticket promedio", s.Overall.AverageTicket},
		{"Total últimos 30 días", s.Last30Days.Total.InexactFloat64()},
		{"Ventas últimos 30 días", s.Last30Days.Count},
		{"Productos", s.Products},
		{"Variantes", s.Variants},
	})

	daily := make([][]any, 0, len(r.Last7Days))
	for _, d := range r.Last7Days {
		daily = append(daily, []any{d.Day, d.Count, d.Total.InexactFloat64()})
	}
	w.table(SheetDaily, []any{"Fecha", "Ventas", "Total"}, daily)

	w.table(SheetChannels, []any{"Canal", "Ventas", "Total"}, groupRows(s.ByChannel))
	w.table(SheetPayments, []any{"Tipo de pago", "Ventas", "Total"}, groupRows(s.ByPaymentType))

	top := make([][]any, 0, len(r.TopProducts))
	for _, p := range r.TopProducts {
		top = append(top, []any{p.Rank, p.ProductName, p.Units, p.Amount.InexactFloat64()})
	}
	w.table(SheetTop, []any{"#", "Producto", "Unidades", "Monto"}, top)

	low := make([][]any, 0, len(s.LowStock))
	for _, l := range s.LowStock {
		low = append(low, []any{l.ProductName, l.Units})
	}
	w.table(SheetLowStock, []any{"Producto", "Unidades"}, low)

	if w.err != nil {
		return nil, w.err
	}
	f.SetActiveSheet(0)
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: serializar: %w", err)
	}
	return buf.Bytes(), nil
}

func groupRows(groups []dto.GroupTotalDTO) [][]any {
	rows := make([][]any, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, []any{g.Key, g.Count, g.Total.InexactFloat64()})
	}
	return rows
}

// sheetWriter escribe tablas conservando el primer error.
type sheetWriter struct {
	f      *excelize.File
	header int
	err    error
}

func (w *sheetWriter) table(sheet string, header []any, rows [][]any) {
	if w.err != nil {
		return
	}
	if idx, _ := w.f.GetSheetIndex(sheet); idx < 0 {
		if _, err := w.f.NewSheet(sheet); err != nil {
			w.err = fmt.Errorf("excel: hoja %s: %w", sheet, err)
			return
		}
	}
	if err := w.f.SetSheetRow(sheet, "A1", &header); err != nil {
		w.err = fmt.Errorf("excel: cabecera %s: %w", sheet, err)
		return
	}
	last, _ := excelize.CoordinatesToCellName(len(header), 1)
	if err := w.f.SetCellStyle(sheet, "A1", last, w.header); err != nil {
		w.err = fmt.Errorf("excel: estilo %s: %w", sheet, err)
		return
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := w.f.SetSheetRow(sheet, cell, &row); err != nil {
			w.err = fmt.Errorf("excel: fila %d de %s: %w", i+2, sheet, err)
			return
		}
	}
	lastCol, _ := excelize.ColumnNumberToName(len(header))
	_ = w.f.SetColWidth(sheet, "A", lastCol, 18)
}
