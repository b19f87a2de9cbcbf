package entity

import "time"

// Estados de un lead dentro de la campaña de re-engagement.
const (
	RepulsePendiente    = "pendiente"
	RepulseEnviado      = "enviado"
	RepulseRespondio    = "respondio"
	RepulseSinRespuesta = "sin_respuesta"
	RepulseExcluido     = "excluido"
)

// Orígenes de un lead en repulse.
const (
	RepulseOrigenAutomatico = "cron_automatico"
	RepulseOrigenManual     = "manual"
)

// Estados de entrega de un envío.
const (
	EnvioPendiente = "pendiente"
	EnvioEnviando  = "enviando"
	EnvioEnviado   = "enviado"
	EnvioError     = "error"
)

// RepulseTemplate plantilla de mensaje con variables {{nombre}} y {{telefono}}.
type RepulseTemplate struct {
	ID         string
	ProyectoID string
	Nombre     string
	Mensaje    string
	Activo     bool
	CreatedBy  *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// RepulseLead lead incluido en la campaña de un proyecto.
type RepulseLead struct {
	ID                   string
	LeadID               string
	ProyectoID           string
	Origen               string
	Estado               string
	ConteoRepulses       int
	UltimoRepulseAt      *time.Time
	TemplateUsadoID      *string
	MensajePersonalizado *string
	AgregadoPor          *string
	CreatedAt            time.Time
	UpdatedAt            time.Time

	// Datos de lectura (JOIN con leads)
	LeadNombre        *string
	LeadTelefono      string
	LeadHorarioVisita *string
	LeadEstado        string
	LeadCreatedAt     time.Time
}

// RepulseEnvio un mensaje despachado (o por despachar) dentro de un lote.
type RepulseEnvio struct {
	ID                string
	RepulseLeadID     string
	LeadID            string
	ProyectoID        string
	TemplateID        *string
	BatchID           string
	MensajeEnviado    string
	EnviadoPor        *string
	EnvioEstado       string
	EnvioError        *string
	WhatsappMessageID *string
	EnviadoAt         *time.Time
	RespuestaRecibida bool
	RespuestaAt       *time.Time
	CreatedAt         time.Time

	// Datos de lectura usados para armar el payload
	LeadNombre        *string
	LeadTelefono      string
	LeadHorarioVisita *string
}

// RepulseLeadFilter filtros del listado de la campaña.
type RepulseLeadFilter struct {
	ProyectoID string
	Estado     string
	IDs        []string
}

// RepulseStats conteos por estado de un proyecto.
type RepulseStats struct {
	Total        int
	Pendientes   int
	Enviados     int
	Respondieron int
	SinRespuesta int
	Excluidos    int
}

// RepulseBatchEstado avance de un lote.
type RepulseBatchEstado struct {
	Total      int
	Enviados   int
	Errores    int
	Pendientes int
	Enviando   int
}

// RepulseElegibilidad datos del lead base que deciden si puede entrar a la campaña.
type RepulseElegibilidad struct {
	Existe      bool
	Excluido    bool
	TieneCompra bool
}
