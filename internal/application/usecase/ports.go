package usecase

import (
	"context"
	"io"
)

// ImageStore almacenamiento de objetos para imágenes de producto.
// Upload devuelve la URL pública del objeto.
type ImageStore interface {
	Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) (url string, err error)
}
