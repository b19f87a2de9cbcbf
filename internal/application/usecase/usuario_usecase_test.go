package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ecoplaza/ecoplaza-api/internal/application/dto"
	"github.com/ecoplaza/ecoplaza-api/internal/domain"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/entity"
)

type spyCache struct{ invalidados []string }

func (s *spyCache) InvalidateUser(id string) { s.invalidados = append(s.invalidados, id) }

func TestUsuarioCreate_VendedorRecibeFicha(t *testing.T) {
	s := newStore()
	uc := NewUsuarioUseCase(&fakeUsuarioRepo{s}, s, nil)

	u, err := uc.Create(context.Background(), dto.CreateUsuarioRequest{
		Nombre: "Vera Díaz", Email: " Vera@EcoPlaza.pe", Password: "secreto123", Rol: entity.RolVendedorCaseta,
		Telefono: ptr("51987000111"),
	})
	require.NoError(t, err)
	assert.Equal(t, "vera@ecoplaza.pe", u.Email)
	require.NotNil(t, u.VendedorID)
	v := s.vendedores[*u.VendedorID]
	require.NotNil(t, v)
	assert.Equal(t, "Vera Díaz", v.Nombre)
	assert.Equal(t, "51987000111", v.Telefono)

	guardado := s.usuarios[u.ID]
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(guardado.PasswordHash), []byte("secreto123")))

	_, err = uc.Create(context.Background(), dto.CreateUsuarioRequest{
		Nombre: "Otra", Email: "vera@ecoplaza.pe", Password: "secreto123", Rol: entity.RolFinanzas,
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestUsuarioCreate_SinFichaParaOtrosRoles(t *testing.T) {
	s := newStore()
	u, err := NewUsuarioUseCase(&fakeUsuarioRepo{s}, s, nil).Create(context.Background(), dto.CreateUsuarioRequest{
		Nombre: "Lía", Email: "lia@ecoplaza.pe", Password: "secreto123", Rol: entity.RolLegal,
	})
	require.NoError(t, err)
	assert.Nil(t, u.VendedorID)
	assert.Empty(t, s.vendedores)
}

func TestUsuarioCreate_Validaciones(t *testing.T) {
	uc := NewUsuarioUseCase(&fakeUsuarioRepo{newStore()}, newStore(), nil)
	_, err := uc.Create(context.Background(), dto.CreateUsuarioRequest{Nombre: "x", Email: "x@e.pe", Password: "corta", Rol: entity.RolLegal})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(context.Background(), dto.CreateUsuarioRequest{Nombre: "x", Email: "x@e.pe", Password: "secreto123", Rol: "gerente"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUsuarioSetActivo_InvalidaCache(t *testing.T) {
	s := newStore()
	s.usuarios["u1"] = &entity.Usuario{ID: "u1", Nombre: "Ana", Rol: entity.RolMarketing, Activo: true}
	cache := &spyCache{}
	uc := NewUsuarioUseCase(&fakeUsuarioRepo{s}, s, cache)

	require.NoError(t, uc.SetActivo(context.Background(), "u1", false))
	assert.False(t, s.usuarios["u1"].Activo)
	assert.Equal(t, []string{"u1"}, cache.invalidados)

	list, err := uc.List(context.Background(), dto.UsuarioListRequest{ActivosOnly: true})
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = uc.List(context.Background(), dto.UsuarioListRequest{ConReuniones: true})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProyectoList_FiltraInactivos(t *testing.T) {
	s := newStore()
	s.proyectos["p1"] = &entity.Proyecto{ID: "p1", Nombre: "Trapiche", Slug: "trapiche", Activo: true}
	s.proyectos["p2"] = &entity.Proyecto{ID: "p2", Nombre: "Huaral", Slug: "huaral", Activo: false}
	uc := NewProyectoUseCase(&fakeProyectoRepo{s})

	activos, err := uc.List(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, activos, 1)
	assert.Equal(t, "trapiche", activos[0].Slug)

	todos, err := uc.List(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, todos, 2)
}
