package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProcesarVentaRequest POST /api/control-pagos.
type ProcesarVentaRequest struct {
	LocalID           string           `json:"local_id" validate:"required"`
	MontoVenta        decimal.Decimal  `json:"monto_venta"`
	MontoSeparacion   decimal.Decimal  `json:"monto_separacion"`
	MontoInicial      decimal.Decimal  `json:"monto_inicial"`
	InicialRestante   decimal.Decimal  `json:"inicial_restante"`
	MontoRestante     decimal.Decimal  `json:"monto_restante"`
	ConFinanciamiento bool             `json:"con_financiamiento"`
	PorcentajeInicial *decimal.Decimal `json:"porcentaje_inicial,omitempty"`
	NumeroCuotas      int              `json:"numero_cuotas"`
	TEA               *decimal.Decimal `json:"tea,omitempty"`
	FechaPrimerPago   string           `json:"fecha_primer_pago" validate:"required"` // YYYY-MM-DD
}

// ControlPagoResponse salida de un control de pagos.
type ControlPagoResponse struct {
	ID                string           `json:"id"`
	LocalID           string           `json:"local_id"`
	CodigoLocal       string           `json:"codigo_local"`
	ProyectoID        string           `json:"proyecto_id"`
	ProyectoNombre    string           `json:"proyecto_nombre"`
	Metraje           decimal.Decimal  `json:"metraje"`
	LeadID            *string          `json:"lead_id"`
	LeadNombre        string           `json:"lead_nombre"`
	LeadTelefono      string           `json:"lead_telefono"`
	MontoVenta        decimal.Decimal  `json:"monto_venta"`
	MontoSeparacion   decimal.Decimal  `json:"monto_separacion"`
	MontoInicial      decimal.Decimal  `json:"monto_inicial"`
	InicialRestante   decimal.Decimal  `json:"inicial_restante"`
	MontoRestante     decimal.Decimal  `json:"monto_restante"`
	ConFinanciamiento bool             `json:"con_financiamiento"`
	PorcentajeInicial *decimal.Decimal `json:"porcentaje_inicial"`
	NumeroCuotas      int              `json:"numero_cuotas"`
	TEA               *decimal.Decimal `json:"tea"`
	FechaPrimerPago   string           `json:"fecha_primer_pago"`
	Estado            string           `json:"estado"`
	ProcesadoPor      string           `json:"procesado_por"`
	VendedorID        *string          `json:"vendedor_id"`
	CreatedAt         time.Time        `json:"created_at"`
}

// ProcesarVentaResponse control creado con su calendario y comisiones.
type ProcesarVentaResponse struct {
	Control    ControlPagoResponse `json:"control"`
	Pagos      []PagoResponse      `json:"pagos"`
	Comisiones []ComisionResponse  `json:"comisiones"`
}

// ControlPagoListResponse página de controles.
type ControlPagoListResponse struct {
	Controles []ControlPagoResponse `json:"controles"`
	Page      PageResponse          `json:"page"`
}

// ControlPagoStatsResponse conteo por estado.
type ControlPagoStatsResponse struct {
	Activo     int `json:"activo"`
	Completado int `json:"completado"`
	Cancelado  int `json:"cancelado"`
	Total      int `json:"total"`
}

// PagoResponse fila del calendario con sus abonos.
type PagoResponse struct {
	ID            string          `json:"id"`
	ControlPagoID string          `json:"control_pago_id"`
	Tipo          string          `json:"tipo"`
	NumeroCuota   *int            `json:"numero_cuota"`
	MontoEsperado decimal.Decimal `json:"monto_esperado"`
	MontoAbonado  decimal.Decimal `json:"monto_abonado"`
	FechaEsperada string          `json:"fecha_esperada"`
	Estado        string          `json:"estado"`
	Abonos        []AbonoResponse `json:"abonos"`
}

// AbonoResponse abono registrado.
type AbonoResponse struct {
	ID             string          `json:"id"`
	Monto          decimal.Decimal `json:"monto"`
	FechaAbono     string          `json:"fecha_abono"`
	MetodoPago     string          `json:"metodo_pago"`
	ComprobanteURL *string         `json:"comprobante_url"`
	Notas          *string         `json:"notas"`
	RegistradoPor  string          `json:"registrado_por"`
	CreatedAt      time.Time       `json:"created_at"`
}

// RegistrarAbonoRequest POST /api/pagos/:id/abonos.
type RegistrarAbonoRequest struct {
	Monto          decimal.Decimal `json:"monto"`
	FechaAbono     string          `json:"fecha_abono" validate:"required"`
	MetodoPago     string          `json:"metodo_pago" validate:"required"`
	ComprobanteURL *string         `json:"comprobante_url,omitempty"`
	Notas          *string         `json:"notas,omitempty"`
}

// MarcarSeparacionRequest POST /api/pagos/:id/separacion.
type MarcarSeparacionRequest struct {
	Pagado bool `json:"pagado"`
}

// PagosStatsResponse resumen del calendario.
type PagosStatsResponse struct {
	Inicial struct {
		Esperado   decimal.Decimal `json:"esperado"`
		Abonado    decimal.Decimal `json:"abonado"`
		Porcentaje int             `json:"porcentaje"`
		Estado     string          `json:"estado"`
	} `json:"inicial"`
	Cuotas struct {
		Total        int     `json:"total"`
		Pagadas      int     `json:"pagadas"`
		Parciales    int     `json:"parciales"`
		Pendientes   int     `json:"pendientes"`
		Vencidas     int     `json:"vencidas"`
		ProximaFecha *string `json:"proxima_fecha"`
	} `json:"cuotas"`
}
