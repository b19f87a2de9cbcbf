package dto

import "time"

// RepulseTemplateRequest alta y edición de plantillas.
type RepulseTemplateRequest struct {
	ProyectoID string `json:"proyecto_id"`
	Nombre     string `json:"nombre" validate:"required"`
	Mensaje    string `json:"mensaje" validate:"required"`
}

// RepulseTemplateResponse salida de una plantilla.
type RepulseTemplateResponse struct {
	ID         string    `json:"id"`
	ProyectoID string    `json:"proyecto_id"`
	Nombre     string    `json:"nombre"`
	Mensaje    string    `json:"mensaje"`
	Activo     bool      `json:"activo"`
	CreatedAt  time.Time `json:"created_at"`
}

// RepulseLeadResponse lead en la campaña con los datos de contacto.
type RepulseLeadResponse struct {
	ID              string     `json:"id"`
	LeadID          string     `json:"lead_id"`
	ProyectoID      string     `json:"proyecto_id"`
	Origen          string     `json:"origen"`
	Estado          string     `json:"estado"`
	ConteoRepulses  int        `json:"conteo_repulses"`
	UltimoRepulseAt *time.Time `json:"ultimo_repulse_at"`
	TemplateUsadoID *string    `json:"template_usado_id"`
	Nombre          *string    `json:"nombre"`
	Telefono        string     `json:"telefono"`
	LeadEstado      string     `json:"lead_estado"`
	LeadCreatedAt   time.Time  `json:"lead_created_at"`
	CreatedAt       time.Time  `json:"created_at"`
}

// AgregarRepulseRequest POST /api/repulse/leads.
type AgregarRepulseRequest struct {
	ProyectoID string   `json:"proyecto_id" validate:"required"`
	LeadIDs    []string `json:"lead_ids" validate:"required,min=1"`
}

// AgregarRepulseResult resultado del alta masiva.
type AgregarRepulseResult struct {
	Agregados int      `json:"agregados"`
	Omitidos  int      `json:"omitidos"`
	Errores   []string `json:"errores"`
}

// RepulseEstadoRequest PATCH /api/repulse/leads/:id/estado.
type RepulseEstadoRequest struct {
	Estado string `json:"estado" validate:"required"`
}

// DeteccionRepulseResponse leads agregados automáticamente.
type DeteccionRepulseResponse struct {
	ProyectoID     string `json:"proyecto_id"`
	LeadsAgregados int    `json:"leads_agregados"`
}

// EnviarLoteRequest POST /api/repulse/send-batch. Si TemplateID viene, su mensaje
// reemplaza a Mensaje.
type EnviarLoteRequest struct {
	ProyectoID     string   `json:"proyecto_id" validate:"required"`
	RepulseLeadIDs []string `json:"repulse_lead_ids" validate:"required,min=1"`
	TemplateID     *string  `json:"template_id"`
	Mensaje        string   `json:"mensaje"`
}

// EnviarLoteResponse el lote queda en proceso en segundo plano.
type EnviarLoteResponse struct {
	BatchID string `json:"batch_id"`
	Total   int    `json:"total"`
	Message string `json:"message"`
}

// EstadoLoteResponse GET /api/repulse/send-batch/:batchId.
type EstadoLoteResponse struct {
	BatchID    string `json:"batch_id"`
	Total      int    `json:"total"`
	Enviados   int    `json:"enviados"`
	Errores    int    `json:"errores"`
	Pendientes int    `json:"pendientes"`
	Enviando   int    `json:"enviando"`
	Completado bool   `json:"completado"`
}

// RepulseEnvioResponse un envío del historial.
type RepulseEnvioResponse struct {
	ID                string     `json:"id"`
	RepulseLeadID     string     `json:"repulse_lead_id"`
	BatchID           string     `json:"batch_id"`
	MensajeEnviado    string     `json:"mensaje_enviado"`
	EnvioEstado       string     `json:"envio_estado"`
	EnvioError        *string    `json:"envio_error"`
	WhatsappMessageID *string    `json:"whatsapp_message_id"`
	EnviadoAt         *time.Time `json:"enviado_at"`
	RespuestaRecibida bool       `json:"respuesta_recibida"`
	RespuestaAt       *time.Time `json:"respuesta_at"`
	CreatedAt         time.Time  `json:"created_at"`
}

// RepulseStatsResponse conteos de la campaña.
type RepulseStatsResponse struct {
	Total        int `json:"total"`
	Pendientes   int `json:"pendientes"`
	Enviados     int `json:"enviados"`
	Respondieron int `json:"respondieron"`
	SinRespuesta int `json:"sinRespuesta"`
	Excluidos    int `json:"excluidos"`
}

// CuotaWhatsAppResponse uso del cupo diario.
type CuotaWhatsAppResponse struct {
	LeadsHoy        int `json:"leadsHoy"`
	Limite          int `json:"limite"`
	Disponible      int `json:"disponible"`
	PorcentajeUsado int `json:"porcentajeUsado"`
}
