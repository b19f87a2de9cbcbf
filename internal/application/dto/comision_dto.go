package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ComisionResponse salida de una comisión.
type ComisionResponse struct {
	ID                   string          `json:"id"`
	ControlPagoID        string          `json:"control_pago_id"`
	LocalID              string          `json:"local_id"`
	LocalCodigo          *string         `json:"local_codigo,omitempty"`
	ProyectoNombre       *string         `json:"proyecto_nombre,omitempty"`
	UsuarioID            string          `json:"usuario_id"`
	UsuarioNombre        *string         `json:"usuario_nombre,omitempty"`
	RolUsuario           string          `json:"rol_usuario"`
	Fase                 string          `json:"fase"`
	PorcentajeComision   decimal.Decimal `json:"porcentaje_comision"`
	MontoVenta           decimal.Decimal `json:"monto_venta"`
	MontoComision        decimal.Decimal `json:"monto_comision"`
	Estado               string          `json:"estado"`
	FechaProcesado       time.Time       `json:"fecha_procesado"`
	FechaDisponible      *time.Time      `json:"fecha_disponible"`
	FechaInicialCompleta *time.Time      `json:"fecha_inicial_completa"`
	FechaPagoComision    *time.Time      `json:"fecha_pago_comision"`
	PagadoPor            *string         `json:"pagado_por"`
}

// ComisionTrazabilidadResponse comisión con los usuarios de la venta.
type ComisionTrazabilidadResponse struct {
	ComisionResponse
	VendedorLeadNombre     *string `json:"vendedor_lead_nombre"`
	UsuarioNaranjaNombre   *string `json:"usuario_naranja_nombre"`
	UsuarioRojoNombre      *string `json:"usuario_rojo_nombre"`
	UsuarioProcesadoNombre *string `json:"usuario_procesado_nombre"`
}

// ComisionStatsResponse totales por estado.
type ComisionStatsResponse struct {
	TotalGenerado    decimal.Decimal `json:"total_generado"`
	Disponible       decimal.Decimal `json:"disponible"`
	Pagado           decimal.Decimal `json:"pagado"`
	PendienteInicial decimal.Decimal `json:"pendiente_inicial"`
	CountTotal       int             `json:"count_total"`
	CountDisponible  int             `json:"count_disponible"`
	CountPagado      int             `json:"count_pagado"`
	CountPendiente   int             `json:"count_pendiente"`
}

// UpdatePorcentajeRequest PATCH /api/comisiones/:id/porcentaje.
type UpdatePorcentajeRequest struct {
	Porcentaje decimal.Decimal `json:"porcentaje"`
}
