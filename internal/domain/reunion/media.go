// Package reunion reglas de media y de extracción de action items de reuniones.
package reunion

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/ecoplaza/ecoplaza-api/internal/domain"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/entity"
)

// MaxMediaBytes tamaño máximo de una grabación (2GB).
const MaxMediaBytes int64 = 2 * 1024 * 1024 * 1024

var (
	extensiones = []string{".mp3", ".mp4", ".wav", ".m4a", ".webm", ".mov", ".avi", ".mpeg"}

	mimes = []string{
		"audio/mpeg", "audio/mp3", "audio/wav", "audio/x-wav", "audio/mp4", "audio/x-m4a",
		"video/mp4", "video/webm", "video/quicktime", "video/x-msvideo",
	}

	extensionesAudio = map[string]bool{".mp3": true, ".wav": true, ".m4a": true}
)

// ValidarArchivo revisa tamaño, extensión y MIME. Devuelve el media_tipo (audio|video).
func ValidarArchivo(fileName, contentType string, size int64) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("%w: el archivo está vacío", domain.ErrInvalidInput)
	}
	if size > MaxMediaBytes {
		return "", fmt.Errorf("%w: el archivo es demasiado grande (%dMB). Máximo permitido: 2GB",
			domain.ErrInvalidInput, size/(1024*1024))
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	if !contiene(extensiones, ext) {
		return "", fmt.Errorf("%w: extensión de archivo no válida. Permitidas: %s",
			domain.ErrInvalidInput, strings.Join(extensiones, ", "))
	}

	mime := strings.ToLower(contentType)
	valido := false
	for _, m := range mimes {
		if strings.Contains(mime, m) {
			valido = true
			break
		}
	}
	if !valido {
		return "", fmt.Errorf("%w: tipo de archivo no válido (%s)", domain.ErrInvalidInput, contentType)
	}

	if strings.HasPrefix(mime, "audio/") || extensionesAudio[ext] {
		return entity.MediaAudio, nil
	}
	return entity.MediaVideo, nil
}

// RutaMedia reuniones/global/{unix_ms}_{archivo}; el nombre ya debe venir saneado.
func RutaMedia(archivo string, ahora time.Time) string {
	return fmt.Sprintf("reuniones/global/%d_%s", ahora.UnixMilli(), archivo)
}

// EsEstado estados aceptados por el callback del pipeline.
func EsEstado(estado string) bool {
	switch estado {
	case entity.ReunionSubiendo, entity.ReunionProcesando, entity.ReunionCompletado, entity.ReunionError:
		return true
	}
	return false
}

// EsPrioridad alta|media|baja.
func EsPrioridad(p string) bool {
	return p == entity.PrioridadAlta || p == entity.PrioridadMedia || p == entity.PrioridadBaja
}

func contiene(xs []string, x string) bool {
	for _, s := range xs {
		if s == x {
			return true
		}
	}
	return false
}
