package aprobacion

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecoplaza/ecoplaza-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestPorcentaje(t *testing.T) {
	assert.True(t, dec("8").Equal(Porcentaje(dec("50000"), dec("46000"))))
	assert.True(t, dec("3.33").Equal(Porcentaje(dec("30000"), dec("29000"))))
	assert.True(t, decimal.Zero.Equal(Porcentaje(decimal.Zero, dec("100"))))
}

func TestRequeridos_PorDefecto(t *testing.T) {
	rangos := RangosPorDefecto()
	tests := []struct {
		pct  string
		want []string
	}{
		{"0", []string{}},
		{"4.99", []string{}},
		{"5", []string{entity.RolJefeVentas}},
		{"12", []string{entity.RolJefeVentas, entity.RolAdmin}},
		{"15", []string{entity.RolAdmin}},
		{"100", []string{entity.RolAdmin}},
		{"120", []string{entity.RolAdmin}},
	}
	for _, tt := range tests {
		t.Run(tt.pct, func(t *testing.T) {
			got, _ := Requeridos(rangos, dec(tt.pct))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRequeridos_FueraDeRango(t *testing.T) {
	rangos := []entity.RangoDescuento{{Min: dec("5"), Max: dec("10"), Aprobadores: []string{entity.RolAdmin}}}
	got, desc := Requeridos(rangos, dec("2"))
	assert.Empty(t, got)
	assert.Equal(t, "Sin aprobación requerida", desc)

	got, _ = Requeridos(nil, dec("50"))
	assert.Empty(t, got)
}

func TestValidarRangos(t *testing.T) {
	require.NoError(t, ValidarRangos(RangosPorDefecto()))
	assert.Error(t, ValidarRangos(nil))
	assert.Error(t, ValidarRangos([]entity.RangoDescuento{{Min: dec("10"), Max: dec("5")}}))
	assert.Error(t, ValidarRangos([]entity.RangoDescuento{{Min: dec("0"), Max: dec("120")}}))
	assert.Error(t, ValidarRangos([]entity.RangoDescuento{
		{Min: dec("0"), Max: dec("10")},
		{Min: dec("8"), Max: dec("20")},
	}))
}

func TestRolQueAprueba(t *testing.T) {
	req := []string{entity.RolJefeVentas}
	rol, ok := RolQueAprueba(entity.RolJefeVentas, req)
	assert.True(t, ok)
	assert.Equal(t, entity.RolJefeVentas, rol)

	rol, ok = RolQueAprueba(entity.RolSuperadmin, req)
	assert.True(t, ok)
	assert.Equal(t, entity.RolAdmin, rol)

	_, ok = RolQueAprueba(entity.RolVendedor, req)
	assert.False(t, ok)
}

func TestCompleta(t *testing.T) {
	req := []string{entity.RolJefeVentas, entity.RolAdmin}
	votos := []entity.DecisionAprobacion{{Rol: entity.RolJefeVentas, Decision: DecisionAprobado}}
	assert.False(t, Completa(req, votos))

	votos = append(votos, entity.DecisionAprobacion{Rol: entity.RolAdmin, Decision: DecisionAprobado})
	assert.True(t, Completa(req, votos))
	assert.True(t, Completa(nil, nil))
}
