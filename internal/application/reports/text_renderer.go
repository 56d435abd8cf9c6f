package reports

import (
	"bytes"
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/jhoicas/boutique-api/internal/application/dto"
)

// TextRenderer exportación en texto plano; siempre disponible.
type TextRenderer struct{}

func (TextRenderer) ContentType() string { return "text/plain; charset=utf-8" }
func (TextRenderer) Extension() string   { return "txt" }

// Render escribe las secciones del reporte como tablas alineadas.
func (TextRenderer) Render(_ context.Context, r *Report) ([]byte, error) {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	s := r.Summary

	fmt.Fprintf(w, "REPORTE DE VENTAS\t%s\n\n", r.GeneratedAt.Format("2006-01-02 15:04"))

	fmt.Fprintln(w, "RESUMEN")
	fmt.Fprintf(w, "Total vendido\t%s\n", s.Overall.Total.StringFixed(2))
	fmt.Fprintf(w, "Ventas\t%d\n", s.Overall.Count)
	fmt.Fprintf(w, "Ticket promedio\t%.2f\n", s.Overall.AverageTicket)
	fmt.Fprintf(w, "Últimos 30 días\t%s (%d ventas)\n", s.Last30Days.Total.StringFixed(2), s.Last30Days.Count)
	fmt.Fprintf(w, "Productos / variantes\t%d / %d\n\n", s.Products, s.Variants)

	fmt.Fprintln(w, "VENTAS POR DÍA (7 días)")
	for _, d := range r.Last7Days {
		fmt.Fprintf(w, "%s\t%s\t%d\n", d.Day, d.Total.StringFixed(2), d.Count)
	}
	fmt.Fprintln(w)

	writeGroups(w, "CANALES", s.ByChannel)
	writeGroups(w, "TIPOS DE PAGO", s.ByPaymentType)

	fmt.Fprintln(w, "TOP PRODUCTOS")
	for _, p := range r.TopProducts {
		fmt.Fprintf(w, "%d.\t%s\t%d u.\t%s\n", p.Rank, p.ProductName, p.Units, p.Amount.StringFixed(2))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "STOCK BAJO")
	for _, l := range s.LowStock {
		fmt.Fprintf(w, "%s\t%d u.\n", l.ProductName, l.Units)
	}

	if err := w.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeGroups(w *tabwriter.Writer, title string, rows []dto.GroupTotalDTO) {
	fmt.Fprintln(w, title)
	for _, g := range rows {
		fmt.Fprintf(w, "%s\t%s\t%d\n", g.Key, g.Total.StringFixed(2), g.Count)
	}
	fmt.Fprintln(w)
}
