package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// LeadAsignado payload enviado a n8n cuando se asigna un lead a un vendedor.
type LeadAsignado struct {
	LeadTelefono     string `json:"leadTelefono"`
	LeadNombre       string `json:"leadNombre"`
	VendedorNombre   string `json:"vendedorNombre"`
	VendedorTelefono string `json:"vendedorTelefono"`
	ProyectoID       string `json:"proyectoId"`
	ProyectoNombre   string `json:"proyectoNombre"`
}

// LeadNotifier notifica asignaciones de leads. Las implementaciones no deben bloquear
// al llamador ni propagar fallos de la entrega.
type LeadNotifier interface {
	LeadAsignado(ctx context.Context, n LeadAsignado)
}

// RepulseMensaje payload de un mensaje de re-engagement para el flujo de WhatsApp.
type RepulseMensaje struct {
	Telefono      string `json:"telefono"`
	Mensaje       string `json:"mensaje"`
	Nombre        string `json:"nombre"`
	FechaVisita   string `json:"fecha_visita"`
	ProyectoID    string `json:"proyectoId"`
	LeadID        string `json:"lead_id"`
	RepulseLeadID string `json:"repulse_lead_id"`
}

// RepulseResultado respuesta del flujo tras entregar el mensaje a Meta.
type RepulseResultado struct {
	Success           bool    `json:"success"`
	WhatsappMessageID *string `json:"whatsapp_message_id"`
	Status            string  `json:"status"`
	Error             *string `json:"error"`
}

// Aceptado indica que Meta recibió el mensaje.
func (r RepulseResultado) Aceptado() bool { return r.Success && r.Status == "accepted" }

// RepulseSender envía un mensaje y espera la confirmación. A diferencia de
// LeadNotifier, el llamador necesita el resultado para registrar la entrega.
type RepulseSender interface {
	Configurado() bool
	EnviarRepulse(ctx context.Context, m RepulseMensaje) (RepulseResultado, error)
}

// Tipos de evento de aprobaciones de descuento.
const (
	EventoNuevaSolicitud     = "nueva_solicitud"
	EventoSolicitudAprobada  = "solicitud_aprobado"
	EventoSolicitudRechazada = "solicitud_rechazado"
)

// AprobacionEvento payload enviado al flujo de aprobaciones.
type AprobacionEvento struct {
	Tipo                  string          `json:"tipo"`
	AprobacionID          string          `json:"aprobacion_id"`
	ProyectoID            string          `json:"proyecto_id"`
	LocalID               string          `json:"local_id"`
	LocalCodigo           string          `json:"local_codigo,omitempty"`
	VendedorNombre        string          `json:"vendedor_nombre"`
	PrecioLista           decimal.Decimal `json:"precio_lista"`
	PrecioNegociado       decimal.Decimal `json:"precio_negociado"`
	DescuentoPorcentaje   decimal.Decimal `json:"descuento_porcentaje"`
	AprobadoresRequeridos []string        `json:"aprobadores_requeridos"`
	Estado                string          `json:"estado"`
	Comentario            string          `json:"comentario,omitempty"`
	Fecha                 time.Time       `json:"fecha"`
}

// AprobacionNotifier igual que LeadNotifier: no bloquea ni propaga fallos.
type AprobacionNotifier interface {
	AprobacionEvento(ctx context.Context, e AprobacionEvento)
}
