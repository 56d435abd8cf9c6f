// Package reports agrega las ventas liquidadas para el panel de administración y la exportación.
package reports

import (
	"context"
	"time"

	"github.com/jhoicas/boutique-api/internal/application/dto"
)

// Cache guarda resultados serializables de reportes. Un miss no es error.
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// Report contenido completo de una exportación.
type Report struct {
	GeneratedAt time.Time
	Summary     dto.SummaryResponse
	Last7Days   []dto.DailyPointDTO
	TopProducts []dto.TopProductDTO
}

// Renderer serializa un Report a un formato de archivo.
type Renderer interface {
	Render(ctx context.Context, r *Report) ([]byte, error)
	ContentType() string
	Extension() string
}

// ExportFile archivo listo para descargar.
type ExportFile struct {
	Content     []byte
	ContentType string
	FileName    string
}

const (
	FormatPDF   = "pdf"
	FormatExcel = "excel"
	FormatText  = "txt"
)
