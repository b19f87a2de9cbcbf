// Package storage implementa ports.ObjectStorage sobre la API S3 (Supabase Storage, MinIO o AWS).
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/ecoplaza/ecoplaza-api/internal/application/ports"
	"github.com/ecoplaza/ecoplaza-api/pkg/config"
)

var _ ports.ObjectStorage = (*S3Storage)(nil)

// S3Storage cliente S3 con path-style (requerido por Supabase y MinIO).
type S3Storage struct {
	client    *s3.Client
	presign   *s3.PresignClient
	publicURL string
}

// NewS3Storage construye el cliente. Sin credenciales usa la cadena por defecto de AWS.
func NewS3Storage(ctx context.Context, cfg config.StorageConfig) (*S3Storage, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage: cargar configuración: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = true
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return &S3Storage{
		client:    client,
		presign:   s3.NewPresignClient(client),
		publicURL: publicBase(cfg),
	}, nil
}

// publicBase STORAGE_PUBLIC_URL o, en su defecto, endpoint/bucket path-style.
func publicBase(cfg config.StorageConfig) string {
	if cfg.PublicURL != "" {
		return strings.TrimRight(cfg.PublicURL, "/")
	}
	return strings.TrimRight(cfg.Endpoint, "/")
}

// Upload sube body con su tamaño conocido. El payload va sin firmar para aceptar
// readers no posicionables (multipart).
func (s *S3Storage) Upload(ctx context.Context, bucket, key string, body io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	}, s3.WithAPIOptions(v4.SwapComputePayloadSHA256ForUnsignedPayloadMiddleware))
	if err != nil {
		return fmt.Errorf("storage: subir %s/%s: %w", bucket, key, err)
	}
	return nil
}

// Remove elimina el objeto; S3 no falla si la key no existe.
func (s *S3Storage) Remove(ctx context.Context, bucket, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("storage: eliminar %s/%s: %w", bucket, key, err)
	}
	return nil
}

// Stat HeadObject; NotFound ⇒ exists=false sin error.
func (s *S3Storage) Stat(ctx context.Context, bucket, key string) (int64, bool, error) {
	out, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err == nil {
		return aws.ToInt64(out.ContentLength), true, nil
	}
	var nf *types.NotFound
	var nsk *types.NoSuchKey
	if errors.As(err, &nf) || errors.As(err, &nsk) {
		return 0, false, nil
	}
	return 0, false, fmt.Errorf("storage: verificar %s/%s: %w", bucket, key, err)
}

// PresignPut URL firmada de subida con el content-type fijado.
func (s *S3Storage) PresignPut(ctx context.Context, bucket, key, contentType string, ttl time.Duration) (string, error) {
	req, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("storage: firmar subida %s/%s: %w", bucket, key, err)
	}
	return req.URL, nil
}

// PublicURL base/bucket/key con cada segmento de la key escapado.
func (s *S3Storage) PublicURL(bucket, key string) string {
	parts := strings.Split(key, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return s.publicURL + "/" + bucket + "/" + strings.Join(parts, "/")
}
