package entity

import "time"

// Estados de procesamiento de una reunión.
const (
	ReunionSubiendo   = "subiendo"
	ReunionProcesando = "procesando"
	ReunionCompletado = "completado"
	ReunionError      = "error"
)

// Tipos de media.
const (
	MediaAudio = "audio"
	MediaVideo = "video"
)

// Prioridades de action items.
const (
	PrioridadAlta  = "alta"
	PrioridadMedia = "media"
	PrioridadBaja  = "baja"
)

// Reunion grabación de una reunión con su transcripción y resumen.
type Reunion struct {
	ID                    string
	ProyectoID            *string
	CreatedBy             *string
	Titulo                string
	FechaReunion          *time.Time
	DuracionSegundos      *int
	Participantes         []string
	MediaStoragePath      *string
	MediaTipo             *string
	MediaSizeBytes        *int64
	MediaDeletedAt        *time.Time
	TranscripcionCompleta *string
	Resumen               *string
	PuntosClave           []string
	Decisiones            []string
	PreguntasAbiertas     []string
	Estado                string
	ErrorMensaje          *string
	CreatedAt             time.Time
	UpdatedAt             time.Time
	ProcessedAt           *time.Time
}

// ActionItem tarea extraída de una reunión.
type ActionItem struct {
	ID                string
	ReunionID         string
	Descripcion       string
	AsignadoNombre    *string
	AsignadoUsuarioID *string
	Deadline          *time.Time
	Prioridad         string
	ContextoQuote     *string
	Completado        bool
	CompletadoAt      *time.Time
	CompletadoPor     *string
	CreatedAt         time.Time

	ReunionTitulo *string
}

// ReunionFilter filtros del listado.
type ReunionFilter struct {
	ProyectoID string
	Estado     string
	CreatedBy  string
	Limit      int
	Offset     int
}

// ReunionResultado lo que devuelve el pipeline de transcripción al completar.
type ReunionResultado struct {
	TranscripcionCompleta string
	Resumen               string
	DuracionSegundos      *int
	Participantes         []string
	PuntosClave           []string
	Decisiones            []string
	PreguntasAbiertas     []string
	ActionItems           []*ActionItem
}
