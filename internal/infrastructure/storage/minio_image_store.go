// Package storage guarda las imágenes de producto en MinIO (o cualquier S3 compatible).
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/jhoicas/boutique-api/internal/application/usecase"
	"github.com/jhoicas/boutique-api/pkg/config"
)

var _ usecase.ImageStore = (*MinioImageStore)(nil)

// MinioImageStore sube objetos al bucket configurado y devuelve su URL pública.
type MinioImageStore struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

// NewMinioImageStore crea el cliente y se asegura de que el bucket exista.
func NewMinioImageStore(ctx context.Context, cfg config.StorageConfig) (*MinioImageStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}
	if err := ensureBucket(ctx, client, cfg.Bucket); err != nil {
		return nil, fmt.Errorf("minio bucket %s: %w", cfg.Bucket, err)
	}

	baseURL := strings.TrimRight(cfg.PublicBaseURL, "/")
	if baseURL == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		baseURL = scheme + "://" + cfg.Endpoint
	}
	return &MinioImageStore{client: client, bucket: cfg.Bucket, baseURL: baseURL}, nil
}

func ensureBucket(ctx context.Context, client *minio.Client, bucket string) error {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return err
	}
	if !exists {
		return client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{})
	}
	return nil
}

// Upload sube el objeto con la clave dada y retorna su URL pública.
func (s *MinioImageStore) Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	info, err := s.client.PutObject(ctx, s.bucket, key, body, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("minio put %s: %w", key, err)
	}
	return s.objectURL(info.Key), nil
}

func (s *MinioImageStore) objectURL(key string) string {
	return s.baseURL + "/" + s.bucket + "/" + key
}
