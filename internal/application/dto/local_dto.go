package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LocalResponse salida de un local.
type LocalResponse struct {
	ID                   string           `json:"id"`
	Codigo               string           `json:"codigo"`
	ProyectoID           string           `json:"proyecto_id"`
	ProyectoNombre       *string          `json:"proyecto_nombre,omitempty"`
	Metraje              decimal.Decimal  `json:"metraje"`
	PrecioBase           *decimal.Decimal `json:"precio_base"`
	Estado               string           `json:"estado"`
	Bloqueado            bool             `json:"bloqueado"`
	MontoVenta           *decimal.Decimal `json:"monto_venta"`
	LeadID               *string          `json:"lead_id"`
	VendedorActualID     *string          `json:"vendedor_actual_id"`
	VendedorCerroVentaID *string          `json:"vendedor_cerro_venta_id"`
	FechaCierreVenta     *time.Time       `json:"fecha_cierre_venta"`
	UsuarioPasoNaranjaID *string          `json:"usuario_paso_naranja_id"`
	UsuarioPasoRojoID    *string          `json:"usuario_paso_rojo_id"`
	EnControlPagos       bool             `json:"en_control_pagos"`
	UpdatedAt            time.Time        `json:"updated_at"`
}

// LocalListRequest filtros y paginación por página.
type LocalListRequest struct {
	ProyectoID string
	Estado     string
	MetrajeMin *decimal.Decimal
	MetrajeMax *decimal.Decimal
	Page       int
	PageSize   int
}

// LocalListResponse página de locales.
type LocalListResponse struct {
	Locales  []LocalResponse `json:"locales"`
	Total    int             `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

// LocalStatsResponse conteo por color.
type LocalStatsResponse struct {
	Verde    int `json:"verde"`
	Amarillo int `json:"amarillo"`
	Naranja  int `json:"naranja"`
	Rojo     int `json:"rojo"`
	Total    int `json:"total"`
}

// LocalHistorialResponse fila del historial.
type LocalHistorialResponse struct {
	ID             string    `json:"id"`
	UsuarioID      string    `json:"usuario_id"`
	UsuarioNombre  *string   `json:"usuario_nombre"`
	EstadoAnterior string    `json:"estado_anterior"`
	EstadoNuevo    string    `json:"estado_nuevo"`
	Accion         string    `json:"accion"`
	CreatedAt      time.Time `json:"created_at"`
}

// CambiarEstadoRequest PATCH /api/locales/:id/estado.
type CambiarEstadoRequest struct {
	Estado string  `json:"estado" validate:"required"`
	LeadID *string `json:"lead_id,omitempty"`
}

// SetMontoRequest PATCH /api/locales/:id/monto.
type SetMontoRequest struct {
	MontoVenta decimal.Decimal `json:"monto_venta"`
}

// ImportLocalRow fila del import (CSV o JSON).
type ImportLocalRow struct {
	Codigo     string           `json:"codigo"`
	Proyecto   string           `json:"proyecto"` // slug
	Metraje    decimal.Decimal  `json:"metraje"`
	PrecioBase *decimal.Decimal `json:"precio_base,omitempty"`
	Estado     string           `json:"estado,omitempty"`
}

// ImportLocalesResponse resultado del import.
type ImportLocalesResponse struct {
	Inserted int      `json:"inserted"`
	Skipped  int      `json:"skipped"`
	Total    int      `json:"total"`
	Errors   []string `json:"errors"`
}
