package ports

import (
	"context"
	"io"
	"time"
)

// ObjectStorage almacenamiento de archivos (media de reuniones, documentos de corredores).
type ObjectStorage interface {
	Upload(ctx context.Context, bucket, key string, body io.Reader, size int64, contentType string) error
	Remove(ctx context.Context, bucket, key string) error
	// Stat tamaño real del objeto; exists=false sin error si no está.
	Stat(ctx context.Context, bucket, key string) (size int64, exists bool, err error)
	// PresignPut URL firmada para subir directo desde el navegador.
	PresignPut(ctx context.Context, bucket, key, contentType string, ttl time.Duration) (string, error)
	// PublicURL URL de lectura del objeto.
	PublicURL(bucket, key string) string
}
