package reports

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/boutique-api/internal/application/dto"
	"github.com/jhoicas/boutique-api/internal/domain"
)

// Build arma el contenido de la exportación: resumen, últimos 7 días y top 5 por unidades.
func (uc *UseCase) Build(ctx context.Context) (*Report, error) {
	summary, err := uc.Summary(ctx)
	if err != nil {
		return nil, err
	}
	series, err := uc.DailySeries(ctx, dto.DailySeriesRequest{Days: 7})
	if err != nil {
		return nil, err
	}
	top, err := uc.TopProducts(ctx, dto.TopProductsRequest{Limit: defaultTopLimit})
	if err != nil {
		return nil, err
	}
	return &Report{
		GeneratedAt: uc.now(),
		Summary:     *summary,
		Last7Days:   series.Days,
		TopProducts: top.Items,
	}, nil
}

// Export genera el archivo en el formato pedido. Si el renderer no está registrado o falla,
// se devuelve la versión en texto plano.
func (uc *UseCase) Export(ctx context.Context, format string) (*ExportFile, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = FormatPDF
	}
	switch format {
	case FormatPDF, FormatExcel, FormatText:
	default:
		return nil, domain.Invalid("formato no soportado: %q", format)
	}

	report, err := uc.Build(ctx)
	if err != nil {
		return nil, err
	}
	stamp := report.GeneratedAt.Format("20060102_1504")

	if r, ok := uc.renderers[format]; ok && format != FormatText {
		content, err := r.Render(ctx, report)
		if err == nil {
			return &ExportFile{
				Content:     content,
				ContentType: r.ContentType(),
				FileName:    fmt.Sprintf("reporte_ventas_%s.%s", stamp, r.Extension()),
			}, nil
		}
		uc.log.Warn().Err(err).Str("formato", format).Msg("falló el renderer, se exporta en texto")
	} else if format != FormatText {
		uc.log.Warn().Str("formato", format).Msg("renderer no disponible, se exporta en texto")
	}

	content, err := TextRenderer{}.Render(ctx, report)
	if err != nil {
		return nil, err
	}
	return &ExportFile{
		Content:     content,
		ContentType: TextRenderer{}.ContentType(),
		FileName:    fmt.Sprintf("reporte_ventas_%s.%s", stamp, TextRenderer{}.Extension()),
	}, nil
}
