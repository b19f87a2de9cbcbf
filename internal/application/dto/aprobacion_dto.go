package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ecoplaza/ecoplaza-api/internal/domain/entity"
)

// ConfigAprobacionRequest PUT /api/aprobaciones/config/:proyectoId.
type ConfigAprobacionRequest struct {
	Rangos                   []entity.RangoDescuento `json:"rangos" validate:"required,min=1"`
	NotificarWhatsapp        bool                    `json:"notificar_whatsapp"`
	BloquearHastaAprobacion  bool                    `json:"bloquear_hasta_aprobacion"`
	PermitirVentaProvisional bool                    `json:"permitir_venta_provisional"`
}

// ConfigAprobacionResponse configuración efectiva; PorDefecto indica que no hay fila guardada.
type ConfigAprobacionResponse struct {
	ProyectoID               string                  `json:"proyecto_id"`
	Rangos                   []entity.RangoDescuento `json:"rangos"`
	NotificarWhatsapp        bool                    `json:"notificar_whatsapp"`
	BloquearHastaAprobacion  bool                    `json:"bloquear_hasta_aprobacion"`
	PermitirVentaProvisional bool                    `json:"permitir_venta_provisional"`
	PorDefecto               bool                    `json:"por_defecto"`
}

// SolicitarDescuentoRequest POST /api/aprobaciones. PrecioLista se toma del
// local cuando tiene precio base.
type SolicitarDescuentoRequest struct {
	LocalID         string           `json:"local_id" validate:"required"`
	PrecioLista     *decimal.Decimal `json:"precio_lista"`
	PrecioNegociado decimal.Decimal  `json:"precio_negociado" validate:"required"`
	Comentario      *string          `json:"comentario"`
}

// SolicitarDescuentoResponse RequiereAprobacion=false significa que el descuento
// entra en el tramo libre y no se creó solicitud.
type SolicitarDescuentoResponse struct {
	RequiereAprobacion  bool                `json:"requiere_aprobacion"`
	DescuentoPorcentaje decimal.Decimal     `json:"descuento_porcentaje"`
	Descripcion         string              `json:"descripcion"`
	Solicitud           *AprobacionResponse `json:"solicitud,omitempty"`
}

// ResolverAprobacionRequest comentario opcional al aprobar, rechazar o cancelar.
type ResolverAprobacionRequest struct {
	Comentario *string `json:"comentario"`
}

// AprobacionResponse salida de una solicitud.
type AprobacionResponse struct {
	ID                    string                      `json:"id"`
	ProyectoID            string                      `json:"proyecto_id"`
	LocalID               string                      `json:"local_id"`
	LocalCodigo           *string                     `json:"local_codigo,omitempty"`
	VendedorID            string                      `json:"vendedor_id"`
	VendedorNombre        string                      `json:"vendedor_nombre"`
	PrecioLista           decimal.Decimal             `json:"precio_lista"`
	PrecioNegociado       decimal.Decimal             `json:"precio_negociado"`
	DescuentoPorcentaje   decimal.Decimal             `json:"descuento_porcentaje"`
	DescuentoMonto        decimal.Decimal             `json:"descuento_monto"`
	AprobadoresRequeridos []string                    `json:"aprobadores_requeridos"`
	Aprobaciones          []entity.DecisionAprobacion `json:"aprobaciones"`
	Estado                string                      `json:"estado"`
	ComentarioVendedor    *string                     `json:"vendedor_comentario"`
	FechaSolicitud        time.Time                   `json:"fecha_solicitud"`
	FechaResolucion       *time.Time                  `json:"fecha_resolucion"`
	ResueltoPor           *string                     `json:"resuelto_por"`
	ComentarioResolucion  *string                     `json:"comentario_resolucion"`
}

// AprobacionStatsResponse agregados del proyecto.
type AprobacionStatsResponse struct {
	Total                         int             `json:"total"`
	Pendientes                    int             `json:"pendientes"`
	Aprobadas                     int             `json:"aprobadas"`
	Rechazadas                    int             `json:"rechazadas"`
	Canceladas                    int             `json:"canceladas"`
	DescuentoPromedio             decimal.Decimal `json:"descuento_promedio"`
	TiempoResolucionPromedioHoras decimal.Decimal `json:"tiempo_resolucion_promedio_horas"`
}
