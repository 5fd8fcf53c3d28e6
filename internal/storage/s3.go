package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"teamblog/internal/config"
)

// Таймаут на каждый вызов к удалённому хосту: в нём нет смысла висеть
// дольше, чем живёт сам HTTP-запрос пользователя.
const s3CallTimeout = 10 * time.Second

// S3 — хранилище картинок в S3-совместимом сервисе (MinIO).
type S3 struct {
	client   *minio.Client
	bucket   string
	endpoint string
	useSSL   bool
}

// NewS3 создаёт клиента, проверяет доступность bucket и создаёт его
// при отсутствии. Конфигурация читается один раз при старте процесса.
func NewS3(cfg *config.Config) (*S3, error) {
	if cfg.S3Endpoint == "" {
		return nil, fmt.Errorf("%w: s3 endpoint is required", ErrStorage)
	}
	if cfg.S3AccessKey == "" || cfg.S3SecretKey == "" {
		return nil, fmt.Errorf("%w: s3 credentials are required", ErrStorage)
	}
	if cfg.S3Bucket == "" {
		return nil, fmt.Errorf("%w: s3 bucket is required", ErrStorage)
	}

	cli, err := minio.New(cfg.S3Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		Secure: cfg.S3UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: create s3 client: %v", ErrStorage, err)
	}

	s := &S3{client: cli, bucket: cfg.S3Bucket, endpoint: cfg.S3Endpoint, useSSL: cfg.S3UseSSL}

	ctx, cancel := context.WithTimeout(context.Background(), s3CallTimeout)
	defer cancel()

	exists, err := cli.BucketExists(ctx, cfg.S3Bucket)
	if err != nil {
		return nil, fmt.Errorf("%w: check bucket: %v", ErrStorage, err)
	}
	if !exists {
		if err := cli.MakeBucket(ctx, cfg.S3Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("%w: create bucket: %v", ErrStorage, err)
		}
	}

	return s, nil
}

// Store загружает объект под uuid-ключом, сохраняя расширение исходного
// имени. Ключ объекта служит delete-токеном для последующего удаления.
func (s *S3) Store(ctx context.Context, r io.Reader, size int64, name, contentType string) (*Ref, error) {
	key := uuid.NewString() + filepath.Ext(SanitizeFilename(name))

	ctx, cancel := context.WithTimeout(ctx, s3CallTimeout)
	defer cancel()

	opts := minio.PutObjectOptions{ContentType: contentType}
	if _, err := s.client.PutObject(ctx, s.bucket, key, r, size, opts); err != nil {
		return nil, fmt.Errorf("%w: put object %s: %v", ErrStorage, key, err)
	}

	return &Ref{URL: s.publicURL(key), DeleteToken: key}, nil
}

// Delete удаляет объект по сохранённому токену. Нет токена — нечего чистить.
func (s *S3) Delete(ctx context.Context, ref Ref) error {
	if ref.DeleteToken == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, s3CallTimeout)
	defer cancel()

	if err := s.client.RemoveObject(ctx, s.bucket, ref.DeleteToken, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("%w: remove object %s: %v", ErrStorage, ref.DeleteToken, err)
	}
	return nil
}

// URL — публичный URL, зафиксированный при загрузке.
func (s *S3) URL(ref Ref) string {
	return ref.URL
}

func (s *S3) publicURL(key string) string {
	scheme := "http"
	if s.useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.endpoint, s.bucket, key)
}

var _ Storage = (*S3)(nil)
