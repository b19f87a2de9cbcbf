package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// LeadsConteo totales de leads para el resumen y el embudo.
type LeadsConteo struct {
	Total     int
	Completos int
	Visitaron int
}

// LocalValor estado y montos de un local; el use case calcula el valor del pipeline.
type LocalValor struct {
	Estado     string
	MontoVenta *decimal.Decimal
	PrecioBase *decimal.Decimal
}

// VendedorActivo usuario con rol de venta.
type VendedorActivo struct {
	UsuarioID  string
	Nombre     string
	Rol        string
	VendedorID *string
}

// ConteoVendedor leads asignados a un vendedor (tabla vendedores).
type ConteoVendedor struct {
	VendedorID string
	Asignados  int
	Visitaron  int
}

// VentasUsuario locales en rojo cerrados por un usuario.
type VentasUsuario struct {
	UsuarioID string
	Ventas    int
	Monto     decimal.Decimal
}

// MontoUsuario suma por usuario (comisiones disponibles).
type MontoUsuario struct {
	UsuarioID string
	Monto     decimal.Decimal
}

// CanalConteo leads agrupados por utm crudo (nil si no tiene).
type CanalConteo struct {
	UTM       *string
	Leads     int
	Visitaron int
	Compraron int
}

// PagoPendiente pago no completado de un control activo.
type PagoPendiente struct {
	ControlPagoID string
	MontoEsperado decimal.Decimal
	MontoAbonado  decimal.Decimal
	FechaEsperada time.Time
	Estado        string
}

// ControlSaldo control activo con su inicial pendiente.
type ControlSaldo struct {
	ID              string
	InicialRestante decimal.Decimal
}

// ProyectoMetricas leads, locales y revenue por proyecto activo.
type ProyectoMetricas struct {
	ProyectoID      string
	Nombre          string
	Leads           int
	LocalesTotal    int
	LocalesVendidos int
	Revenue         decimal.Decimal
}

// ExecutiveRepository consultas read-only del dashboard ejecutivo.
// proyectoID vacío significa todos los proyectos.
type ExecutiveRepository interface {
	ContarLeads(ctx context.Context, proyectoID string) (LeadsConteo, error)
	LocalesValor(ctx context.Context, proyectoID string) ([]LocalValor, error)
	VendedoresActivos(ctx context.Context) ([]VendedorActivo, error)
	LeadsPorVendedor(ctx context.Context, proyectoID string) ([]ConteoVendedor, error)
	VentasPorUsuario(ctx context.Context, proyectoID string) ([]VentasUsuario, error)
	ComisionesDisponibles(ctx context.Context) ([]MontoUsuario, error)
	LeadsPorCanal(ctx context.Context, proyectoID string) ([]CanalConteo, error)
	PagosPendientes(ctx context.Context, proyectoID string) ([]PagoPendiente, error)
	ControlesActivos(ctx context.Context, proyectoID string) ([]ControlSaldo, error)
	MetricasProyectos(ctx context.Context) ([]ProyectoMetricas, error)
}
