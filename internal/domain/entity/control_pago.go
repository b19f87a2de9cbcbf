package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del control de pagos.
const (
	ControlActivo     = "activo"
	ControlCompletado = "completado"
	ControlCancelado  = "cancelado"
)

// Tipos de pago del calendario.
const (
	PagoSeparacion = "separacion"
	PagoInicial    = "inicial"
	PagoCuota      = "cuota"
)

// Estados de un pago.
const (
	PagoPendiente  = "pendiente"
	PagoParcial    = "parcial"
	PagoCompletado = "completado"
	PagoVencido    = "vencido"
)

// ControlPago snapshot de la venta de un local y su financiamiento.
type ControlPago struct {
	ID                string
	LocalID           string
	CodigoLocal       string
	ProyectoID        string
	ProyectoNombre    string
	Metraje           decimal.Decimal
	LeadID            *string
	LeadNombre        string
	LeadTelefono      string
	MontoVenta        decimal.Decimal
	MontoSeparacion   decimal.Decimal
	MontoInicial      decimal.Decimal
	InicialRestante   decimal.Decimal
	MontoRestante     decimal.Decimal
	ConFinanciamiento bool
	PorcentajeInicial *decimal.Decimal
	NumeroCuotas      int
	TEA               *decimal.Decimal
	FechaPrimerPago   time.Time
	Estado            string
	ProcesadoPor      string
	VendedorID        *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// PagoLocal cuota, inicial o separación esperada.
type PagoLocal struct {
	ID            string
	ControlPagoID string
	Tipo          string
	NumeroCuota   *int
	MontoEsperado decimal.Decimal
	MontoAbonado  decimal.Decimal
	FechaEsperada time.Time
	Estado        string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Abonos []*AbonoPago
}

// Restante lo que falta abonar.
func (p *PagoLocal) Restante() decimal.Decimal {
	return p.MontoEsperado.Sub(p.MontoAbonado)
}

// AbonoPago abono parcial o total sobre un pago.
type AbonoPago struct {
	ID             string
	PagoID         string
	Monto          decimal.Decimal
	FechaAbono     time.Time
	MetodoPago     string
	ComprobanteURL *string
	Notas          *string
	RegistradoPor  string
	CreatedAt      time.Time
}

// ControlPagoStats conteo por estado.
type ControlPagoStats struct {
	Activo     int
	Completado int
	Cancelado  int
	Total      int
}
