package comision

import (
	"testing"

	"github.com/ecoplaza/ecoplaza-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestMonto(t *testing.T) {
	assert.True(t, dec("1250").Equal(Monto(dec("50000"), dec("2.5"))))
	assert.True(t, dec("333.33").Equal(Monto(dec("33333.33"), dec("1"))))
}

func TestCalcular_UnVendedorYGestor(t *testing.T) {
	lineas := Calcular(Entrada{
		MontoVenta:  dec("100000"),
		PctVendedor: dec("2.5"),
		PctGestion:  dec("1"),
		Vendedores: []Participante{
			{UsuarioID: "v1", Rol: entity.RolVendedor},
			{UsuarioID: "v1", Rol: entity.RolVendedor},
			{UsuarioID: "", Rol: ""},
		},
		Gestor: &Participante{UsuarioID: "j1", Rol: entity.RolJefeVentas},
	})

	require.Len(t, lineas, 2)
	assert.Equal(t, entity.FaseVendedor, lineas[0].Fase)
	assert.Equal(t, "v1", lineas[0].UsuarioID)
	assert.True(t, dec("2500").Equal(lineas[0].Monto))
	assert.Equal(t, entity.ComisionPendienteInicial, lineas[0].Estado)

	assert.Equal(t, entity.FaseGestion, lineas[1].Fase)
	assert.Equal(t, "j1", lineas[1].UsuarioID)
	assert.True(t, dec("1000").Equal(lineas[1].Monto))
}

func TestCalcular_SplitEntreVendedoresConResiduo(t *testing.T) {
	lineas := Calcular(Entrada{
		MontoVenta:      dec("10000"),
		PctVendedor:     dec("1"),
		Vendedores:      []Participante{{UsuarioID: "a"}, {UsuarioID: "b"}, {UsuarioID: "c"}},
		InicialCompleta: true,
	})

	require.Len(t, lineas, 3)
	total := decimal.Zero
	pct := decimal.Zero
	for _, l := range lineas {
		total = total.Add(l.Monto)
		pct = pct.Add(l.Porcentaje)
		assert.Equal(t, entity.ComisionDisponible, l.Estado)
	}
	// 100.00 / 3 = 33.33 c/u, el residuo va al primero
	assert.True(t, dec("100").Equal(total))
	assert.True(t, dec("1").Equal(pct))
	assert.True(t, dec("33.34").Equal(lineas[0].Monto))
	assert.True(t, dec("33.33").Equal(lineas[2].Monto))
}

func TestCalcular_SinParticipantes(t *testing.T) {
	assert.Empty(t, Calcular(Entrada{MontoVenta: dec("1000"), PctVendedor: dec("2"), PctGestion: dec("1")}))
}
