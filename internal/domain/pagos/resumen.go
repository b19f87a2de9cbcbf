package pagos

import (
	"strings"
	"time"

	"github.com/ecoplaza/ecoplaza-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ResumenInicial avance del pago inicial.
type ResumenInicial struct {
	Esperado   decimal.Decimal
	Abonado    decimal.Decimal
	Porcentaje int
	Estado     string
}

// ResumenCuotas conteo de cuotas por situación.
type ResumenCuotas struct {
	Total        int
	Pagadas      int
	Parciales    int
	Pendientes   int // pendientes aún no vencidas
	Vencidas     int
	ProximaFecha *time.Time
}

// Resumen estadísticas del calendario de un control de pagos.
type Resumen struct {
	Inicial ResumenInicial
	Cuotas  ResumenCuotas
}

// Resumir calcula el resumen tomando hoy como fecha de corte (sin hora).
func Resumir(lista []*entity.PagoLocal, hoy time.Time) Resumen {
	corte := dia(hoy)
	r := Resumen{Inicial: ResumenInicial{Estado: entity.PagoPendiente}}

	for _, p := range lista {
		switch p.Tipo {
		case entity.PagoInicial:
			r.Inicial.Esperado = p.MontoEsperado
			r.Inicial.Abonado = p.MontoAbonado
			r.Inicial.Estado = p.Estado
			if p.MontoEsperado.IsPositive() {
				r.Inicial.Porcentaje = int(p.MontoAbonado.Div(p.MontoEsperado).Mul(decimal.NewFromInt(100)).Round(0).IntPart())
			}
		case entity.PagoCuota:
			r.Cuotas.Total++
			fecha := dia(p.FechaEsperada)
			vencida := fecha.Before(corte)
			switch {
			case p.Estado == entity.PagoCompletado:
				r.Cuotas.Pagadas++
			case vencida && (p.Estado == entity.PagoPendiente || p.Estado == entity.PagoParcial || p.Estado == entity.PagoVencido):
				r.Cuotas.Vencidas++
			case p.Estado == entity.PagoParcial:
				r.Cuotas.Parciales++
			default:
				r.Cuotas.Pendientes++
				if r.Cuotas.ProximaFecha == nil || fecha.Before(*r.Cuotas.ProximaFecha) {
					f := fecha
					r.Cuotas.ProximaFecha = &f
				}
			}
		}
	}
	return r
}

// FormatMonto separador de miles y dos decimales (12,345.60).
func FormatMonto(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	entero, dec, _ := strings.Cut(strings.TrimPrefix(s, "-"), ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range entero {
		if i > 0 && (len(entero)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteByte('.')
	b.WriteString(dec)
	return b.String()
}
