package semaforo

import (
	"errors"
	"testing"
	"time"

	"github.com/ecoplaza/ecoplaza-api/internal/domain"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ahora = time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

func localEn(estado string) *entity.Local {
	return &entity.Local{ID: "l1", Codigo: "A-101", Estado: estado, Bloqueado: estado == entity.LocalRojo}
}

func TestAplicar_AvanceNormal(t *testing.T) {
	casos := []struct {
		desde, hacia, accion string
	}{
		{entity.LocalVerde, entity.LocalAmarillo, "Vendedor inició negociación"},
		{entity.LocalAmarillo, entity.LocalNaranja, "Cliente confirmó que tomará el local"},
		{entity.LocalNaranja, entity.LocalRojo, "Vendedor cerró venta"},
		{entity.LocalAmarillo, entity.LocalVerde, "Local liberado"},
	}
	for _, c := range casos {
		t.Run(c.desde+"_"+c.hacia, func(t *testing.T) {
			l := localEn(c.desde)
			cambio, err := Aplicar(l, c.hacia, "u1", Opciones{}, ahora)
			require.NoError(t, err)
			assert.Equal(t, c.hacia, l.Estado)
			assert.Equal(t, c.accion, cambio.Accion)
			assert.True(t, cambio.RegistrarHistorial)
			require.NotNil(t, l.VendedorActualID)
			assert.Equal(t, "u1", *l.VendedorActualID)
		})
	}
}

func TestAplicar_RojoBloqueaYRegistraCierre(t *testing.T) {
	l := localEn(entity.LocalNaranja)
	_, err := Aplicar(l, entity.LocalRojo, "u2", Opciones{}, ahora)
	require.NoError(t, err)

	assert.True(t, l.Bloqueado)
	require.NotNil(t, l.VendedorCerroVentaID)
	assert.Equal(t, "u2", *l.VendedorCerroVentaID)
	assert.Equal(t, "u2", *l.UsuarioPasoRojoID)
	require.NotNil(t, l.FechaCierreVenta)
	assert.Equal(t, ahora, *l.FechaCierreVenta)
}

func TestAplicar_NaranjaRegistraUsuario(t *testing.T) {
	l := localEn(entity.LocalAmarillo)
	_, err := Aplicar(l, entity.LocalNaranja, "u3", Opciones{}, ahora)
	require.NoError(t, err)
	require.NotNil(t, l.UsuarioPasoNaranjaID)
	assert.Equal(t, "u3", *l.UsuarioPasoNaranjaID)
}

func TestAplicar_BloqueadoSoloAceptaVerde(t *testing.T) {
	for _, destino := range []string{entity.LocalAmarillo, entity.LocalNaranja, entity.LocalRojo} {
		l := localEn(entity.LocalRojo)
		_, err := Aplicar(l, destino, "u1", Opciones{PuedeLiberarVenta: true}, ahora)
		assert.ErrorIs(t, err, domain.ErrLocalBloqueado, destino)
		assert.Equal(t, entity.LocalRojo, l.Estado)
	}
}

func TestAplicar_LiberarVentaRequiereAdmin(t *testing.T) {
	l := localEn(entity.LocalRojo)
	_, err := Aplicar(l, entity.LocalVerde, "u1", Opciones{}, ahora)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = Aplicar(l, entity.LocalVerde, "admin", Opciones{PuedeLiberarVenta: true}, ahora)
	require.NoError(t, err)
	assert.False(t, l.Bloqueado)
	assert.Nil(t, l.VendedorCerroVentaID)
	assert.Nil(t, l.FechaCierreVenta)
	assert.Nil(t, l.MontoVenta)
}

func TestAplicar_NoLiberaLocalEnControlPagos(t *testing.T) {
	l := localEn(entity.LocalRojo)
	l.EnControlPagos = true
	_, err := Aplicar(l, entity.LocalVerde, "admin", Opciones{PuedeLiberarVenta: true}, ahora)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestAplicar_MismoEstadoNoRegistraHistorial(t *testing.T) {
	l := localEn(entity.LocalAmarillo)
	cambio, err := Aplicar(l, entity.LocalAmarillo, "u1", Opciones{}, ahora)
	require.NoError(t, err)
	assert.False(t, cambio.RegistrarHistorial)
}

func TestAplicar_EstadoInvalido(t *testing.T) {
	_, err := Aplicar(localEn(entity.LocalVerde), "azul", "u1", Opciones{}, ahora)
	assert.True(t, errors.Is(err, domain.ErrEstadoInvalido))
}

func TestValidarMonto(t *testing.T) {
	assert.NoError(t, ValidarMonto(localEn(entity.LocalNaranja), decimal.NewFromInt(50000)))
	assert.ErrorIs(t, ValidarMonto(localEn(entity.LocalAmarillo), decimal.NewFromInt(50000)), domain.ErrEstadoInvalido)
	assert.ErrorIs(t, ValidarMonto(localEn(entity.LocalNaranja), decimal.Zero), domain.ErrInvalidInput)
}

func TestAccionMonto(t *testing.T) {
	assert.Equal(t, "Estableció monto de venta: S/ 45,000.00", AccionMonto(nil, decimal.NewFromInt(45000)))

	anterior := decimal.NewFromInt(45000)
	assert.Equal(t, "Actualizó monto de venta de S/ 45,000.00 a S/ 1,250,000.50",
		AccionMonto(&anterior, decimal.RequireFromString("1250000.5")))
}
