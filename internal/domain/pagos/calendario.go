// Package pagos genera el calendario de pagos de una venta y resume su avance.
package pagos

import (
	"fmt"
	"math"
	"time"

	"github.com/ecoplaza/ecoplaza-api/internal/domain"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Parametros montos y condiciones de financiamiento de la venta.
type Parametros struct {
	FechaVenta        time.Time
	MontoSeparacion   decimal.Decimal
	InicialRestante   decimal.Decimal
	MontoRestante     decimal.Decimal
	ConFinanciamiento bool
	TEA               *decimal.Decimal // tasa efectiva anual en %
	NumeroCuotas      int
	FechaPrimerPago   time.Time
}

// PagoProgramado fila del calendario antes de persistirse.
type PagoProgramado struct {
	Tipo        string
	NumeroCuota *int
	Monto       decimal.Decimal
	Fecha       time.Time
}

// GenerarCalendario separación, inicial y cuotas mensuales a partir de FechaPrimerPago.
func GenerarCalendario(p Parametros) ([]PagoProgramado, error) {
	if p.NumeroCuotas < 0 {
		return nil, fmt.Errorf("%w: numero_cuotas no puede ser negativo", domain.ErrInvalidInput)
	}
	if p.MontoRestante.IsPositive() && p.NumeroCuotas == 0 {
		return nil, fmt.Errorf("%w: hay saldo por financiar y no se indicaron cuotas", domain.ErrInvalidInput)
	}

	var out []PagoProgramado
	if p.MontoSeparacion.IsPositive() {
		out = append(out, PagoProgramado{Tipo: entity.PagoSeparacion, Monto: p.MontoSeparacion.Round(2), Fecha: dia(p.FechaVenta)})
	}
	if p.InicialRestante.IsPositive() {
		out = append(out, PagoProgramado{Tipo: entity.PagoInicial, Monto: p.InicialRestante.Round(2), Fecha: dia(p.FechaPrimerPago)})
	}
	if p.NumeroCuotas == 0 || !p.MontoRestante.IsPositive() {
		return out, nil
	}

	montos := cuotasSinInteres(p.MontoRestante, p.NumeroCuotas)
	if p.ConFinanciamiento && p.TEA != nil && p.TEA.IsPositive() {
		montos = cuotasFrancesas(p.MontoRestante, *p.TEA, p.NumeroCuotas)
	}
	for i, m := range montos {
		n := i + 1
		out = append(out, PagoProgramado{
			Tipo:        entity.PagoCuota,
			NumeroCuota: &n,
			Monto:       m,
			Fecha:       SumarMeses(p.FechaPrimerPago, n),
		})
	}
	return out, nil
}

// cuotasSinInteres reparte en partes iguales; el residuo va a la última cuota.
func cuotasSinInteres(total decimal.Decimal, n int) []decimal.Decimal {
	cada := total.Div(decimal.NewFromInt(int64(n))).RoundDown(2)
	out := make([]decimal.Decimal, n)
	for i := range out {
		out[i] = cada
	}
	out[n-1] = total.Sub(cada.Mul(decimal.NewFromInt(int64(n - 1))))
	return out
}

// cuotasFrancesas cuota constante con TEM = (1+TEA)^(1/12) - 1.
func cuotasFrancesas(principal, tea decimal.Decimal, n int) []decimal.Decimal {
	teaF, _ := tea.Div(decimal.NewFromInt(100)).Float64()
	tem := math.Pow(1+teaF, 1.0/12) - 1
	p, _ := principal.Float64()
	cuota := p * tem / (1 - math.Pow(1+tem, -float64(n)))

	valor := decimal.NewFromFloat(cuota).Round(2)
	out := make([]decimal.Decimal, n)
	for i := range out {
		out[i] = valor
	}
	return out
}

// EstadoPago estado de un pago según lo abonado.
func EstadoPago(esperado, abonado decimal.Decimal) string {
	switch {
	case abonado.GreaterThanOrEqual(esperado):
		return entity.PagoCompletado
	case abonado.IsPositive():
		return entity.PagoParcial
	default:
		return entity.PagoPendiente
	}
}

// ValidarAbono el monto debe ser positivo y no exceder el restante.
func ValidarAbono(pago *entity.PagoLocal, monto decimal.Decimal) error {
	if !monto.IsPositive() {
		return fmt.Errorf("%w: el monto debe ser mayor a 0", domain.ErrInvalidInput)
	}
	if restante := pago.Restante(); monto.GreaterThan(restante) {
		return fmt.Errorf("%w (%s)", domain.ErrMontoExcedido, restante.StringFixed(2))
	}
	return nil
}

// SumarMeses avanza n meses conservando el día; si el mes destino es más
// corto cae en su último día (31 ene + 1 = 28 feb).
func SumarMeses(t time.Time, n int) time.Time {
	y, m := t.Year(), t.Month()+time.Month(n)
	ultimo := time.Date(y, m+1, 0, 0, 0, 0, 0, t.Location()).Day()
	d := t.Day()
	if d > ultimo {
		d = ultimo
	}
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func dia(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
