package pagos

import (
	"testing"
	"time"

	"github.com/ecoplaza/ecoplaza-api/internal/domain"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var (
	fechaVenta = time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)
	primerPago = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
)

func TestGenerarCalendario_SinFinanciamiento(t *testing.T) {
	cal, err := GenerarCalendario(Parametros{
		FechaVenta:      fechaVenta,
		MontoSeparacion: dec("1000"),
		InicialRestante: dec("9000"),
		MontoRestante:   dec("100"),
		NumeroCuotas:    3,
		FechaPrimerPago: primerPago,
	})
	require.NoError(t, err)
	require.Len(t, cal, 5)

	assert.Equal(t, entity.PagoSeparacion, cal[0].Tipo)
	assert.Equal(t, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), cal[0].Fecha)
	assert.Equal(t, entity.PagoInicial, cal[1].Tipo)
	assert.Equal(t, primerPago, cal[1].Fecha)

	// 100 / 3 = 33.33, 33.33, 33.34
	assert.True(t, dec("33.33").Equal(cal[2].Monto))
	assert.True(t, dec("33.34").Equal(cal[4].Monto))
	require.NotNil(t, cal[4].NumeroCuota)
	assert.Equal(t, 3, *cal[4].NumeroCuota)
	assert.Equal(t, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), cal[4].Fecha)
}

func TestGenerarCalendario_ConFinanciamientoCuotaFija(t *testing.T) {
	tea := dec("12")
	cal, err := GenerarCalendario(Parametros{
		FechaVenta:        fechaVenta,
		MontoRestante:     dec("12000"),
		ConFinanciamiento: true,
		TEA:               &tea,
		NumeroCuotas:      12,
		FechaPrimerPago:   primerPago,
	})
	require.NoError(t, err)
	require.Len(t, cal, 12)

	primera := cal[0].Monto
	for _, p := range cal {
		assert.True(t, primera.Equal(p.Monto))
	}
	// con interés la cuota supera la división simple (≈1062.8)
	assert.True(t, primera.GreaterThan(dec("1000")))
	assert.True(t, primera.LessThan(dec("1070")))
}

func TestGenerarCalendario_FinDeMes(t *testing.T) {
	cal, err := GenerarCalendario(Parametros{
		FechaVenta:      fechaVenta,
		MontoRestante:   dec("300"),
		NumeroCuotas:    3,
		FechaPrimerPago: time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, cal, 3)

	want := []time.Time{
		time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC),
	}
	for i, w := range want {
		assert.Equal(t, w, cal[i].Fecha, "cuota %d", i+1)
	}
}

func TestSumarMeses(t *testing.T) {
	base := time.Date(2028, 1, 31, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2028, 2, 29, 0, 0, 0, 0, time.UTC), SumarMeses(base, 1))
	assert.Equal(t, time.Date(2029, 1, 31, 0, 0, 0, 0, time.UTC), SumarMeses(base, 12))
	assert.Equal(t, time.Date(2028, 11, 30, 0, 0, 0, 0, time.UTC), SumarMeses(time.Date(2028, 8, 31, 0, 0, 0, 0, time.UTC), 3))
}

func TestGenerarCalendario_Validaciones(t *testing.T) {
	_, err := GenerarCalendario(Parametros{MontoRestante: dec("500"), NumeroCuotas: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = GenerarCalendario(Parametros{NumeroCuotas: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	cal, err := GenerarCalendario(Parametros{FechaVenta: fechaVenta})
	require.NoError(t, err)
	assert.Empty(t, cal)
}

func TestEstadoPago(t *testing.T) {
	assert.Equal(t, entity.PagoPendiente, EstadoPago(dec("100"), decimal.Zero))
	assert.Equal(t, entity.PagoParcial, EstadoPago(dec("100"), dec("40")))
	assert.Equal(t, entity.PagoCompletado, EstadoPago(dec("100"), dec("100")))
}

func TestValidarAbono(t *testing.T) {
	pago := &entity.PagoLocal{MontoEsperado: dec("500"), MontoAbonado: dec("200")}
	assert.NoError(t, ValidarAbono(pago, dec("300")))
	assert.ErrorIs(t, ValidarAbono(pago, dec("300.01")), domain.ErrMontoExcedido)
	assert.ErrorIs(t, ValidarAbono(pago, decimal.Zero), domain.ErrInvalidInput)
}

func TestResumir(t *testing.T) {
	hoy := time.Date(2026, 4, 10, 18, 0, 0, 0, time.UTC)
	cuota := func(n int, mes time.Month, estado string) *entity.PagoLocal {
		return &entity.PagoLocal{
			Tipo:          entity.PagoCuota,
			NumeroCuota:   &n,
			MontoEsperado: dec("100"),
			FechaEsperada: time.Date(2026, mes, 1, 0, 0, 0, 0, time.UTC),
			Estado:        estado,
		}
	}
	lista := []*entity.PagoLocal{
		{Tipo: entity.PagoInicial, MontoEsperado: dec("3000"), MontoAbonado: dec("1000"), Estado: entity.PagoParcial},
		cuota(1, time.February, entity.PagoCompletado),
		cuota(2, time.March, entity.PagoParcial),
		cuota(3, time.April, entity.PagoPendiente),
		cuota(4, time.May, entity.PagoPendiente),
		cuota(5, time.June, entity.PagoPendiente),
	}

	r := Resumir(lista, hoy)
	assert.Equal(t, 33, r.Inicial.Porcentaje)
	assert.Equal(t, entity.PagoParcial, r.Inicial.Estado)
	assert.Equal(t, 5, r.Cuotas.Total)
	assert.Equal(t, 1, r.Cuotas.Pagadas)
	assert.Equal(t, 2, r.Cuotas.Vencidas)
	assert.Equal(t, 2, r.Cuotas.Pendientes)
	require.NotNil(t, r.Cuotas.ProximaFecha)
	assert.Equal(t, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), *r.Cuotas.ProximaFecha)
}

func TestFormatMonto(t *testing.T) {
	assert.Equal(t, "0.00", FormatMonto(decimal.Zero))
	assert.Equal(t, "999.99", FormatMonto(dec("999.991")))
	assert.Equal(t, "1,000.00", FormatMonto(decimal.NewFromInt(1000)))
	assert.Equal(t, "1,234,567.80", FormatMonto(dec("1234567.8")))
	assert.Equal(t, "-12,345.60", FormatMonto(dec("-12345.6")))
}
