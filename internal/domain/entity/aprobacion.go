package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una solicitud de descuento.
const (
	AprobacionPendiente = "pendiente"
	AprobacionAprobado  = "aprobado"
	AprobacionRechazado = "rechazado"
	AprobacionCancelado = "cancelado"
)

// RangoDescuento tramo de porcentaje y los roles que deben aprobarlo.
type RangoDescuento struct {
	Min         decimal.Decimal `json:"min"`
	Max         decimal.Decimal `json:"max"`
	Aprobadores []string        `json:"aprobadores"`
	Descripcion string          `json:"descripcion"`
}

// DecisionAprobacion voto de un aprobador.
type DecisionAprobacion struct {
	Rol           string    `json:"rol"`
	UsuarioID     string    `json:"usuario_id"`
	UsuarioNombre string    `json:"usuario_nombre"`
	Fecha         time.Time `json:"fecha"`
	Decision      string    `json:"decision"`
	Comentario    *string   `json:"comentario,omitempty"`
}

// ConfigAprobacion reglas de descuento de un proyecto.
type ConfigAprobacion struct {
	ID                       string
	ProyectoID               string
	Rangos                   []RangoDescuento
	NotificarWhatsapp        bool
	BloquearHastaAprobacion  bool
	PermitirVentaProvisional bool
	UpdatedBy                *string
	UpdatedAt                time.Time
}

// SolicitudAprobacion pedido de descuento sobre el precio de lista de un local.
type SolicitudAprobacion struct {
	ID                    string
	ProyectoID            string
	LocalID               string
	VendedorID            string
	VendedorNombre        string
	PrecioLista           decimal.Decimal
	PrecioNegociado       decimal.Decimal
	DescuentoPorcentaje   decimal.Decimal
	DescuentoMonto        decimal.Decimal
	AprobadoresRequeridos []string
	Aprobaciones          []DecisionAprobacion
	Estado                string
	ComentarioVendedor    *string
	FechaSolicitud        time.Time
	FechaResolucion       *time.Time
	ResueltoPor           *string
	ComentarioResolucion  *string

	// Datos de lectura (JOIN)
	LocalCodigo *string
}

// AprobacionFilter filtros del historial. Rol vacío no restringe por aprobador.
type AprobacionFilter struct {
	ProyectoID string
	Estado     string
	VendedorID string
	Rol        string
	Desde      *time.Time
	Hasta      *time.Time
}

// AprobacionStats agregados por proyecto.
type AprobacionStats struct {
	Total                 int
	Pendientes            int
	Aprobadas             int
	Rechazadas            int
	Canceladas            int
	DescuentoPromedio     decimal.Decimal
	TiempoResolucionHoras decimal.Decimal
}
