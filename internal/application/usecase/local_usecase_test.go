package usecase

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecoplaza/ecoplaza-api/internal/application/dto"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/entity"
)

// ── Import ───────────────────────────────────────────────────────────────────

func localPorCodigo(s *memStore, codigo string) *entity.Local {
	for _, l := range s.locales {
		if l.Codigo == codigo {
			return l
		}
	}
	return nil
}

func TestImportLocales_Conteos(t *testing.T) {
	s := seedVenta(t)
	uc := newLocalUC(s)
	precio := decimal.NewFromInt(45000)

	res, err := uc.Import(context.Background(), []dto.ImportLocalRow{
		{Codigo: " B-201 ", Proyecto: "Trapiche", Metraje: decimal.NewFromInt(12), PrecioBase: &precio},
		{Codigo: "B-202", Proyecto: "trapiche", Metraje: decimal.NewFromInt(14), Estado: "ROJO"},
		{Codigo: "A-101", Proyecto: "trapiche", Metraje: decimal.NewFromInt(25)},
		{Codigo: "B-201", Proyecto: "trapiche", Metraje: decimal.NewFromInt(12)},
		{Codigo: "B-203", Proyecto: "trapiche", Metraje: decimal.NewFromInt(10), Estado: "azul"},
		{Codigo: "C-301", Proyecto: "Callao Norte", Metraje: decimal.NewFromInt(10)},
		{Codigo: "C-302", Proyecto: "trapiche", Metraje: decimal.Zero},
		{Codigo: "", Proyecto: "trapiche", Metraje: decimal.NewFromInt(10)},
	})
	require.NoError(t, err)

	assert.Equal(t, 8, res.Total)
	assert.Equal(t, 2, res.Inserted)
	assert.Equal(t, 2, res.Skipped, "A-101 ya existía y B-201 se repite en el archivo")
	require.Len(t, res.Errors, 4)
	assert.Contains(t, res.Errors[0], "Fila 5")
	assert.Contains(t, res.Errors[0], "estado inválido")
	assert.Contains(t, res.Errors[1], "Fila 6")
	assert.Contains(t, res.Errors[1], `"Callao Norte" no existe`)
	assert.Contains(t, res.Errors[2], "metraje")
	assert.Contains(t, res.Errors[3], "requeridos")

	b201 := localPorCodigo(s, "B-201")
	require.NotNil(t, b201)
	assert.Equal(t, entity.LocalVerde, b201.Estado)
	assert.False(t, b201.Bloqueado)
	assert.True(t, precio.Equal(*b201.PrecioBase))
	assert.Equal(t, "p1", b201.ProyectoID)
}

func TestImportLocales_RojoQuedaBloqueado(t *testing.T) {
	s := seedVenta(t)
	uc := newLocalUC(s)

	res, err := uc.Import(context.Background(), []dto.ImportLocalRow{
		{Codigo: "R-1", Proyecto: "trapiche", Metraje: decimal.NewFromInt(20), Estado: entity.LocalRojo},
		{Codigo: "N-1", Proyecto: "trapiche", Metraje: decimal.NewFromInt(20), Estado: entity.LocalNaranja},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Inserted)
	assert.Empty(t, res.Errors)

	assert.True(t, localPorCodigo(s, "R-1").Bloqueado)
	assert.False(t, localPorCodigo(s, "N-1").Bloqueado)
	assert.Equal(t, fechaFija, localPorCodigo(s, "R-1").CreatedAt)
}

func TestImportLocales_Vacio(t *testing.T) {
	res, err := newLocalUC(seedVenta(t)).Import(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, res.Total)
	assert.NotNil(t, res.Errors)
}
