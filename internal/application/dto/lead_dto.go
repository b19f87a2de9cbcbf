package dto

import "time"

// LeadResponse salida de un lead.
type LeadResponse struct {
	ID                 string    `json:"id"`
	ProyectoID         string    `json:"proyecto_id"`
	ProyectoNombre     *string   `json:"proyecto_nombre,omitempty"`
	Telefono           string    `json:"telefono"`
	Nombre             *string   `json:"nombre"`
	Email              *string   `json:"email"`
	Rubro              *string   `json:"rubro"`
	HorarioVisita      *string   `json:"horario_visita"`
	Estado             string    `json:"estado"`
	UTM                *string   `json:"utm"`
	Asistio            bool      `json:"asistio"`
	VendedorAsignadoID *string   `json:"vendedor_asignado_id"`
	VendedorNombre     *string   `json:"vendedor_nombre,omitempty"`
	FechaCaptura       time.Time `json:"fecha_captura"`
}

// LeadListRequest filtros de GET /api/leads.
type LeadListRequest struct {
	ProyectoID string
	Estado     string
	VendedorID string
	Desde      *time.Time
	Hasta      *time.Time
	PageRequest
}

// LeadListResponse página de leads.
type LeadListResponse struct {
	Leads []LeadResponse `json:"leads"`
	Page  PageResponse   `json:"page"`
}

// LeadStatsResponse conteos por estado y tasa de conversión.
type LeadStatsResponse struct {
	Total          int     `json:"total"`
	Completos      int     `json:"completos"`
	Incompletos    int     `json:"incompletos"`
	Conversacion   int     `json:"conversacion"`
	Abandonados    int     `json:"abandonados"`
	TasaConversion float64 `json:"tasa_conversion"`
}

// LeadBusqueda resumen devuelto por la búsqueda por teléfono.
type LeadBusqueda struct {
	ID             string  `json:"id"`
	Nombre         *string `json:"nombre"`
	Email          *string `json:"email"`
	ProyectoID     string  `json:"proyecto_id"`
	ProyectoNombre *string `json:"proyecto_nombre"`
}

// AsignarLeadRequest vendedor vacío libera el lead.
type AsignarLeadRequest struct {
	VendedorID string `json:"vendedor_id"`
}

// CreateLeadManualRequest lead cargado a mano.
type CreateLeadManualRequest struct {
	Nombre     string  `json:"nombre" validate:"required"`
	Telefono   string  `json:"telefono" validate:"required"`
	ProyectoID string  `json:"proyecto_id" validate:"required"`
	VendedorID string  `json:"vendedor_id" validate:"required"`
	Email      *string `json:"email,omitempty"`
	Rubro      *string `json:"rubro,omitempty"`
}

// RegistrarVisitaRequest visita sin local.
type RegistrarVisitaRequest struct {
	Telefono   string  `json:"telefono" validate:"required"`
	Nombre     string  `json:"nombre"`
	ProyectoID string  `json:"proyecto_id" validate:"required"`
	VendedorID string  `json:"vendedor_id"`
	Email      *string `json:"email,omitempty"`
	Rubro      *string `json:"rubro,omitempty"`
}

// RegistrarVisitaResponse indica si el lead ya existía.
type RegistrarVisitaResponse struct {
	Lead   LeadResponse `json:"lead"`
	Creado bool         `json:"creado"`
}

// ImportLeadRow fila del import manual.
type ImportLeadRow struct {
	Nombre        string  `json:"nombre"`
	Telefono      string  `json:"telefono"`
	EmailVendedor string  `json:"email_vendedor"`
	UTM           string  `json:"utm"`
	Email         *string `json:"email,omitempty"`
	Rubro         *string `json:"rubro,omitempty"`
}

// ImportLeadsRequest import de leads a un proyecto.
type ImportLeadsRequest struct {
	ProyectoID string          `json:"proyecto_id" validate:"required"`
	Leads      []ImportLeadRow `json:"leads" validate:"required"`
}

// FilaInvalida fila rechazada con su motivo (fila empieza en 1).
type FilaInvalida struct {
	Fila   int    `json:"fila"`
	Motivo string `json:"motivo"`
}

// ImportLeadsResponse resultado del import.
type ImportLeadsResponse struct {
	Importados int            `json:"importados"`
	Duplicados int            `json:"duplicados"`
	Invalidos  []FilaInvalida `json:"invalidos"`
	Total      int            `json:"total"`
}
