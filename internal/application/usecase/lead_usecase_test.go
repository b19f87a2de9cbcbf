package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecoplaza/ecoplaza-api/internal/application/dto"
	"github.com/ecoplaza/ecoplaza-api/internal/domain"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/entity"
)

func newLeadUC(s *memStore, n *fakeNotifier) *LeadUseCase {
	var uc *LeadUseCase
	if n == nil {
		uc = NewLeadUseCase(&fakeLeadRepo{s}, &fakeUsuarioRepo{s}, &fakeVendedorRepo{s}, &fakeProyectoRepo{s}, nil)
	} else {
		uc = NewLeadUseCase(&fakeLeadRepo{s}, &fakeUsuarioRepo{s}, &fakeVendedorRepo{s}, &fakeProyectoRepo{s}, n)
	}
	uc.now = fixedNow
	return uc
}

// ── Búsqueda ─────────────────────────────────────────────────────────────────

func TestSearch_NormalizaTelefono(t *testing.T) {
	uc := newLeadUC(seedVenta(t), nil)

	for _, tel := range []string{"51999888777", " 51 999-888-777 ", "(51) 999 888 777"} {
		b, err := uc.Search(context.Background(), tel)
		require.NoError(t, err, tel)
		require.NotNil(t, b, tel)
		assert.Equal(t, "l1", b.ID)
		assert.Equal(t, "p1", b.ProyectoID)
		assert.Equal(t, "Carla", *b.Nombre)
	}
}

func TestSearch_NoEncontrado(t *testing.T) {
	uc := newLeadUC(seedVenta(t), nil)

	b, err := uc.Search(context.Background(), "51900000000")
	require.NoError(t, err)
	assert.Nil(t, b)

	_, err = uc.Search(context.Background(), " - ( ) ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── Asignación ───────────────────────────────────────────────────────────────

func TestAsignar_NotificaConValoresPorDefecto(t *testing.T) {
	s := seedVenta(t)
	s.leads["l2"] = &entity.Lead{ID: "l2", ProyectoID: "p1", Telefono: "51911222333", Estado: entity.LeadCompleto}
	n := &fakeNotifier{}
	uc := newLeadUC(s, n)

	resp, err := uc.Asignar(context.Background(), "l2", "v1")
	require.NoError(t, err)
	require.NotNil(t, resp.VendedorAsignadoID)
	assert.Equal(t, "v1", *resp.VendedorAsignadoID)
	assert.Equal(t, "Vera", *resp.VendedorNombre)

	require.Len(t, n.envios, 1)
	assert.Equal(t, "Cliente", n.envios[0].LeadNombre)
	assert.Equal(t, "EcoPlaza", n.envios[0].ProyectoNombre)
	assert.Equal(t, "51987000111", n.envios[0].VendedorTelefono)
	assert.Equal(t, "v1", *s.leads["l2"].VendedorAsignadoID)
}

func TestAsignar_Liberar(t *testing.T) {
	s := seedVenta(t)
	n := &fakeNotifier{}
	uc := newLeadUC(s, n)

	resp, err := uc.Asignar(context.Background(), "l1", "")
	require.NoError(t, err)
	assert.Nil(t, resp.VendedorAsignadoID)
	assert.Nil(t, s.leads["l1"].VendedorAsignadoID)
	assert.Empty(t, n.envios)
}

func TestAsignar_VendedorInactivo(t *testing.T) {
	s := seedVenta(t)
	s.vendedores["v2"] = &entity.Vendedor{ID: "v2", Nombre: "Beto", Activo: false}
	uc := newLeadUC(s, nil)

	_, err := uc.Asignar(context.Background(), "l1", "v2")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, "v1", *s.leads["l1"].VendedorAsignadoID)
}

func TestAsignar_LeadInexistente(t *testing.T) {
	s := seedVenta(t)
	_, err := newLeadUC(s, nil).Asignar(context.Background(), "nope", "v1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── Alta manual y visitas ────────────────────────────────────────────────────

func TestCreateManual(t *testing.T) {
	s := seedVenta(t)
	uc := newLeadUC(s, nil)

	resp, err := uc.CreateManual(context.Background(), dto.CreateLeadManualRequest{
		Nombre: " Rosa ", Telefono: "+51 944-555-666", ProyectoID: "p1", VendedorID: "v1", Email: ptr("  "),
	})
	require.NoError(t, err)
	assert.Equal(t, "51944555666", resp.Telefono)
	assert.Equal(t, "Rosa", *resp.Nombre)
	assert.Equal(t, entity.LeadManual, resp.Estado)
	assert.Equal(t, entity.UTMVinculacionManual, *resp.UTM)
	assert.True(t, resp.Asistio)
	assert.Nil(t, resp.Email)
	assert.Equal(t, "Trapiche", *resp.ProyectoNombre)
}

func TestCreateManual_Duplicado(t *testing.T) {
	s := seedVenta(t)
	_, err := newLeadUC(s, nil).CreateManual(context.Background(), dto.CreateLeadManualRequest{
		Nombre: "Carla", Telefono: "51999888777", ProyectoID: "p1", VendedorID: "v1",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestRegistrarVisita_LeadExistente(t *testing.T) {
	s := seedVenta(t)
	resp, err := newLeadUC(s, nil).RegistrarVisita(context.Background(), dto.RegistrarVisitaRequest{
		Telefono: "51 999 888 777", ProyectoID: "p1",
	})
	require.NoError(t, err)
	assert.False(t, resp.Creado)
	assert.Equal(t, "l1", resp.Lead.ID)
	assert.True(t, resp.Lead.Asistio)
	assert.True(t, s.leads["l1"].Asistio)
}

func TestRegistrarVisita_NuevoLead(t *testing.T) {
	s := seedVenta(t)
	uc := newLeadUC(s, nil)

	_, err := uc.RegistrarVisita(context.Background(), dto.RegistrarVisitaRequest{Telefono: "51900000001", ProyectoID: "p1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	resp, err := uc.RegistrarVisita(context.Background(), dto.RegistrarVisitaRequest{
		Telefono: "51900000001", Nombre: "Hugo", ProyectoID: "p1", VendedorID: "v1",
	})
	require.NoError(t, err)
	assert.True(t, resp.Creado)
	assert.Equal(t, entity.UTMVisitaProyecto, *resp.Lead.UTM)
	assert.Equal(t, "Vera", *resp.Lead.VendedorNombre)
	assert.Equal(t, fechaFija, resp.Lead.FechaCaptura)
	assert.Len(t, s.leads, 2)
}

// ── Import ───────────────────────────────────────────────────────────────────

func TestImport_ReportaFilas(t *testing.T) {
	s := seedVenta(t)
	s.usuarios["u-v"].Email = "vende@ecoplaza.pe"
	s.usuarios["u-f"].Email = "finanzas@ecoplaza.pe"
	s.usuarios["u-c"] = &entity.Usuario{ID: "u-c", Email: "caseta@ecoplaza.pe", Rol: entity.RolVendedorCaseta, Activo: true}
	uc := newLeadUC(s, nil)

	resp, err := uc.Import(context.Background(), dto.ImportLeadsRequest{
		ProyectoID: "p1",
		Leads: []dto.ImportLeadRow{
			{Nombre: "Ok", Telefono: "51 900 111 222", EmailVendedor: "VENDE@ecoplaza.pe", UTM: "facebook"},
			{Nombre: "Corto", Telefono: "12345", EmailVendedor: "vende@ecoplaza.pe", UTM: "facebook"},
			{Nombre: "SinUTM", Telefono: "51900111333", EmailVendedor: "vende@ecoplaza.pe"},
			{Nombre: "Nadie", Telefono: "51900111444", EmailVendedor: "nadie@ecoplaza.pe", UTM: "x"},
			{Nombre: "Rol", Telefono: "51900111555", EmailVendedor: "finanzas@ecoplaza.pe", UTM: "x"},
			{Nombre: "SinFicha", Telefono: "51900111666", EmailVendedor: "caseta@ecoplaza.pe", UTM: "x"},
			{Nombre: "Dup", Telefono: "51999888777", EmailVendedor: "vende@ecoplaza.pe", UTM: "x"},
			{Nombre: "Dup2", Telefono: "51900111222", EmailVendedor: "vende@ecoplaza.pe", UTM: "x"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 8, resp.Total)
	assert.Equal(t, 1, resp.Importados)
	assert.Equal(t, 2, resp.Duplicados)
	require.Len(t, resp.Invalidos, 5)
	assert.Equal(t, []int{2, 3, 4, 5, 6}, []int{
		resp.Invalidos[0].Fila, resp.Invalidos[1].Fila, resp.Invalidos[2].Fila,
		resp.Invalidos[3].Fila, resp.Invalidos[4].Fila,
	})
	assert.Equal(t, "utm es requerido", resp.Invalidos[1].Motivo)
	assert.Equal(t, "rol inválido: finanzas", resp.Invalidos[3].Motivo)
	assert.Equal(t, "sin vendedor_id", resp.Invalidos[4].Motivo)

	nuevo, _ := (&fakeLeadRepo{s}).FindByTelefonoProyecto(context.Background(), "51900111222", "p1")
	require.NotNil(t, nuevo)
	assert.Equal(t, entity.LeadManual, nuevo.Estado)
	assert.False(t, nuevo.Asistio)
	assert.Equal(t, "v1", *nuevo.VendedorAsignadoID)
}

func TestImport_ProyectoInexistente(t *testing.T) {
	s := seedVenta(t)
	_, err := newLeadUC(s, nil).Import(context.Background(), dto.ImportLeadsRequest{ProyectoID: "px"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── Listado ──────────────────────────────────────────────────────────────────

func TestList_VendedorSoloVeSusLeads(t *testing.T) {
	s := seedVenta(t)
	s.leads["l2"] = &entity.Lead{ID: "l2", ProyectoID: "p1", Telefono: "51911222333", Estado: entity.LeadIncompleto}
	uc := newLeadUC(s, nil)

	resp, err := uc.List(context.Background(), vendedor, dto.LeadListRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Leads, 1)
	assert.Equal(t, "l1", resp.Leads[0].ID)
	assert.Equal(t, 20, resp.Page.Limit)

	todos, err := uc.List(context.Background(), jefe, dto.LeadListRequest{})
	require.NoError(t, err)
	assert.Len(t, todos.Leads, 2)

	st, err := uc.Stats(context.Background(), jefe, dto.LeadListRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, st.Total)
	assert.Equal(t, 50.0, st.TasaConversion)
}

func TestList_VendedorSinFicha(t *testing.T) {
	s := seedVenta(t)
	s.usuarios["u-v"].VendedorID = nil
	resp, err := newLeadUC(s, nil).List(context.Background(), vendedor, dto.LeadListRequest{})
	require.NoError(t, err)
	assert.NotNil(t, resp.Leads)
	assert.Empty(t, resp.Leads)
}
