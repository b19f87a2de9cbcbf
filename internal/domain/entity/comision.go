package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Fases de comisión.
const (
	FaseVendedor = "vendedor"
	FaseGestion  = "gestion"
)

// Estados de comisión.
const (
	ComisionPendienteInicial = "pendiente_inicial"
	ComisionDisponible       = "disponible"
	ComisionPagada           = "pagada"
)

// Comision monto que corresponde a un usuario por la venta de un local.
type Comision struct {
	ID                   string
	ControlPagoID        string
	LocalID              string
	UsuarioID            string
	RolUsuario           string
	Fase                 string
	PorcentajeComision   decimal.Decimal
	MontoVenta           decimal.Decimal
	MontoComision        decimal.Decimal
	Estado               string
	FechaProcesado       time.Time
	FechaDisponible      *time.Time
	FechaInicialCompleta *time.Time
	FechaPagoComision    *time.Time
	PagadoPor            *string
	CreatedAt            time.Time

	// Datos de lectura (JOIN)
	UsuarioNombre  *string
	LocalCodigo    *string
	ProyectoNombre *string
}

// ComisionTrazabilidad comisión enriquecida con los usuarios que intervinieron en la venta.
type ComisionTrazabilidad struct {
	Comision
	VendedorLeadNombre     *string
	UsuarioNaranjaNombre   *string
	UsuarioRojoNombre      *string
	UsuarioProcesadoNombre *string
}

// ComisionFilter filtros del listado administrativo.
type ComisionFilter struct {
	Estado    string
	UsuarioID string
}

// ComisionStats totales por estado.
type ComisionStats struct {
	TotalGenerado    decimal.Decimal
	Disponible       decimal.Decimal
	Pagado           decimal.Decimal
	PendienteInicial decimal.Decimal
	CountTotal       int
	CountDisponible  int
	CountPagado      int
	CountPendiente   int
}
