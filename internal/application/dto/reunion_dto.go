package dto

import "time"

// ReunionResponse salida de una reunión.
type ReunionResponse struct {
	ID                    string     `json:"id"`
	ProyectoID            *string    `json:"proyecto_id"`
	CreatedBy             *string    `json:"created_by"`
	Titulo                string     `json:"titulo"`
	FechaReunion          *time.Time `json:"fecha_reunion"`
	DuracionSegundos      *int       `json:"duracion_segundos"`
	Participantes         []string   `json:"participantes"`
	MediaStoragePath      *string    `json:"media_storage_path"`
	MediaTipo             *string    `json:"media_tipo"`
	MediaSizeBytes        *int64     `json:"media_size_bytes"`
	MediaDeletedAt        *time.Time `json:"media_deleted_at"`
	TranscripcionCompleta *string    `json:"transcripcion_completa,omitempty"`
	Resumen               *string    `json:"resumen"`
	PuntosClave           []string   `json:"puntos_clave"`
	Decisiones            []string   `json:"decisiones"`
	PreguntasAbiertas     []string   `json:"preguntas_abiertas"`
	Estado                string     `json:"estado"`
	ErrorMensaje          *string    `json:"error_mensaje"`
	CreatedAt             time.Time  `json:"created_at"`
	ProcessedAt           *time.Time `json:"processed_at"`
}

// ReunionDetalleResponse reunión con sus action items.
type ReunionDetalleResponse struct {
	Reunion     ReunionResponse      `json:"reunion"`
	ActionItems []ActionItemResponse `json:"action_items"`
}

// ReunionListResponse página de reuniones.
type ReunionListResponse struct {
	Reuniones []ReunionResponse `json:"reuniones"`
	Total     int               `json:"total"`
	HasMore   bool              `json:"hasMore"`
}

// UploadReunionInput archivo ya leído del multipart.
type UploadReunionInput struct {
	Titulo       string
	FechaReunion *time.Time
	ProyectoID   *string
	FileName     string
	ContentType  string
	Size         int64
}

// PresignedURLRequest subida directa de archivos grandes.
type PresignedURLRequest struct {
	Titulo       string  `json:"titulo" validate:"required"`
	FileName     string  `json:"file_name" validate:"required"`
	ContentType  string  `json:"content_type" validate:"required"`
	FileSize     int64   `json:"file_size" validate:"required"`
	FechaReunion *string `json:"fecha_reunion"` // YYYY-MM-DD
}

// PresignedURLResponse URL firmada, ruta destino y reunión creada en subiendo.
type PresignedURLResponse struct {
	ReunionID   string `json:"reunion_id"`
	UploadURL   string `json:"upload_url"`
	StoragePath string `json:"storage_path"`
	ExpiresIn   int    `json:"expires_in"` // segundos
}

// UploadCompleteRequest confirma la subida directa.
type UploadCompleteRequest struct {
	StoragePath string `json:"storage_path" validate:"required"`
}

// ReextractResponse resultado de la re-extracción de action items.
type ReextractResponse struct {
	ActionItemsCount int    `json:"actionItemsCount"`
	Message          string `json:"message"`
}

// ActionItemInput action item devuelto por el pipeline.
type ActionItemInput struct {
	Descripcion    string  `json:"descripcion"`
	AsignadoNombre *string `json:"asignado_nombre"`
	Deadline       *string `json:"deadline"` // YYYY-MM-DD
	Prioridad      string  `json:"prioridad"`
	ContextoQuote  *string `json:"contexto_quote"`
}

// ResultadoReunion resultado del pipeline de transcripción.
type ResultadoReunion struct {
	TranscripcionCompleta string            `json:"transcripcion_completa"`
	Resumen               string            `json:"resumen"`
	DuracionSegundos      *int              `json:"duracion_segundos"`
	Participantes         []string          `json:"participantes"`
	PuntosClave           []string          `json:"puntos_clave"`
	Decisiones            []string          `json:"decisiones"`
	PreguntasAbiertas     []string          `json:"preguntas_abiertas"`
	ActionItems           []ActionItemInput `json:"action_items"`
}

// UpdateReunionEstadoRequest callback del pipeline.
type UpdateReunionEstadoRequest struct {
	Estado       string            `json:"estado" validate:"required"`
	ErrorMensaje *string           `json:"error_mensaje,omitempty"`
	Resultado    *ResultadoReunion `json:"resultado,omitempty"`
}

// ActionItemResponse salida de un action item.
type ActionItemResponse struct {
	ID                string     `json:"id"`
	ReunionID         string     `json:"reunion_id"`
	ReunionTitulo     *string    `json:"reunion_titulo,omitempty"`
	Descripcion       string     `json:"descripcion"`
	AsignadoNombre    *string    `json:"asignado_nombre"`
	AsignadoUsuarioID *string    `json:"asignado_usuario_id"`
	Deadline          *string    `json:"deadline"`
	Prioridad         string     `json:"prioridad"`
	ContextoQuote     *string    `json:"contexto_quote"`
	Completado        bool       `json:"completado"`
	CompletadoAt      *time.Time `json:"completado_at"`
	CompletadoPor     *string    `json:"completado_por"`
}

// CompletarActionItemRequest marca o desmarca completado.
type CompletarActionItemRequest struct {
	Completado bool `json:"completado"`
}

// VincularActionItemRequest asigna el item a un usuario existente.
type VincularActionItemRequest struct {
	UsuarioID string `json:"usuario_id" validate:"required"`
}

// UpdateActionItemRequest edición administrativa; solo se aplican los campos presentes.
type UpdateActionItemRequest struct {
	Descripcion       *string `json:"descripcion"`
	Deadline          *string `json:"deadline"`
	Prioridad         *string `json:"prioridad"`
	AsignadoNombre    *string `json:"asignado_nombre"`
	AsignadoUsuarioID *string `json:"asignado_usuario_id"`
}

// CleanupDetails detalle de la limpieza de media.
type CleanupDetails struct {
	SuccessIDs []string  `json:"success_ids"`
	Errors     []string  `json:"errors"`
	Timestamp  time.Time `json:"timestamp"`
}

// CleanupResponse resultado de la limpieza de media vencida.
type CleanupResponse struct {
	CleanedCount int            `json:"cleaned_count"`
	ErrorCount   int            `json:"error_count"`
	Details      CleanupDetails `json:"details"`
}
