package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecoplaza/ecoplaza-api/internal/application/dto"
	"github.com/ecoplaza/ecoplaza-api/internal/domain"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/entity"
)

func newRepulseUC(t *testing.T) (*RepulseUseCase, *fakeRepulseRepo, *fakeRepulseSender) {
	t.Helper()
	repo := newRepulseRepo()
	viejo := fechaFija.AddDate(0, -2, 0)
	repo.base["l1"] = &entity.Lead{ID: "l1", ProyectoID: "p1", Telefono: "51911000001", Nombre: ptr("Carla"),
		HorarioVisita: ptr("sábado 10am"), CreatedAt: viejo}
	repo.base["l2"] = &entity.Lead{ID: "l2", ProyectoID: "p1", Telefono: "51911000002", CreatedAt: viejo}
	repo.base["l3"] = &entity.Lead{ID: "l3", ProyectoID: "p1", Telefono: "51911000003", CreatedAt: viejo}
	repo.base["l4"] = &entity.Lead{ID: "l4", ProyectoID: "p1", Telefono: "51911000004", CreatedAt: fechaFija.AddDate(0, 0, -3)}
	repo.base["l5"] = &entity.Lead{ID: "l5", ProyectoID: "p2", Telefono: "51911000005", CreatedAt: viejo}
	repo.compras["l3"] = true

	sender := &fakeRepulseSender{rechazar: map[string]string{}, fallar: map[string]error{}}
	uc := NewRepulseUseCase(repo, sender, RepulseConfig{CuotaLimite: 250, LoteTamano: 2})
	uc.now = fixedNow
	return uc, repo, sender
}

// enCampania agrega los leads y devuelve los ids de sus entradas.
func enCampania(t *testing.T, uc *RepulseUseCase, repo *fakeRepulseRepo, leadIDs ...string) []string {
	t.Helper()
	res, err := uc.AgregarVarios(context.Background(), jefe, dto.AgregarRepulseRequest{ProyectoID: "p1", LeadIDs: leadIDs})
	require.NoError(t, err)
	require.Equal(t, len(leadIDs), res.Agregados)
	list, err := repo.ListLeads(context.Background(), entity.RepulseLeadFilter{ProyectoID: "p1"})
	require.NoError(t, err)
	ids := make([]string, 0, len(list))
	for _, rl := range list {
		ids = append(ids, rl.ID)
	}
	return ids
}

// ── Plantillas ───────────────────────────────────────────────────────────────

func TestRepulseTemplates_CRUD(t *testing.T) {
	uc, _, _ := newRepulseUC(t)
	ctx := context.Background()

	_, err := uc.CreateTemplate(ctx, jefe, dto.RepulseTemplateRequest{ProyectoID: "p1", Nombre: " "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	tpl, err := uc.CreateTemplate(ctx, jefe, dto.RepulseTemplateRequest{ProyectoID: "p1", Nombre: "Volvé", Mensaje: "Hola {{nombre}}"})
	require.NoError(t, err)
	assert.True(t, tpl.Activo)

	upd, err := uc.UpdateTemplate(ctx, tpl.ID, dto.RepulseTemplateRequest{Nombre: "Volvé 2", Mensaje: "Hola de nuevo {{nombre}}"})
	require.NoError(t, err)
	assert.Equal(t, "Volvé 2", upd.Nombre)

	require.NoError(t, uc.DeleteTemplate(ctx, tpl.ID))
	list, err := uc.Templates(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, list)

	assert.ErrorIs(t, uc.DeleteTemplate(ctx, "nope"), domain.ErrNotFound)
}

// ── Leads de la campaña ──────────────────────────────────────────────────────

func TestRepulseAgregar_Reglas(t *testing.T) {
	uc, repo, _ := newRepulseUC(t)
	ctx := context.Background()
	repo.excluidos["l2"] = true

	res, err := uc.AgregarVarios(ctx, jefe, dto.AgregarRepulseRequest{ProyectoID: "p1", LeadIDs: []string{"l1", "l1", "l2", "l3", "nope"}})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Agregados)
	assert.Equal(t, 1, res.Omitidos)
	require.Len(t, res.Errores, 3)
	assert.Contains(t, res.Errores[0], "excluido")
	assert.Contains(t, res.Errores[1], "compra")

	err = uc.Agregar(ctx, jefe, "p1", "l1")
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	list, err := uc.Leads(ctx, "p1", "")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, entity.RepulseOrigenManual, list[0].Origen)
	assert.Equal(t, "Carla", *list[0].Nombre)
}

func TestRepulse_ExcluirYReincluir(t *testing.T) {
	uc, repo, _ := newRepulseUC(t)
	ctx := context.Background()
	ids := enCampania(t, uc, repo, "l1")

	require.NoError(t, uc.Excluir(ctx, "l1"))
	rl, _ := repo.GetLead(ctx, ids[0])
	assert.Equal(t, entity.RepulseExcluido, rl.Estado)
	assert.ErrorIs(t, uc.Agregar(ctx, jefe, "p1", "l1"), domain.ErrConflict)

	require.NoError(t, uc.Reincluir(ctx, "l1"))
	rl, _ = repo.GetLead(ctx, ids[0])
	assert.Equal(t, entity.RepulsePendiente, rl.Estado)
}

func TestRepulse_CambiarEstado(t *testing.T) {
	uc, repo, _ := newRepulseUC(t)
	ctx := context.Background()
	ids := enCampania(t, uc, repo, "l1")

	assert.ErrorIs(t, uc.CambiarEstado(ctx, ids[0], "perdido"), domain.ErrEstadoInvalido)
	require.NoError(t, uc.CambiarEstado(ctx, ids[0], entity.RepulseSinRespuesta))

	require.NoError(t, uc.Quitar(ctx, ids[0]))
	assert.ErrorIs(t, uc.Quitar(ctx, ids[0]), domain.ErrNotFound)
}

// ── Detección ────────────────────────────────────────────────────────────────

func TestRepulseDetectar_SoloCandidatos(t *testing.T) {
	uc, repo, _ := newRepulseUC(t)
	ctx := context.Background()
	repo.excluidos["l2"] = true

	cand, err := uc.Candidatos(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, cand, 1)
	assert.Equal(t, "l1", cand[0].ID)

	out, err := uc.Detectar(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 1, out.LeadsAgregados)

	list, err := uc.Leads(ctx, "p1", entity.RepulsePendiente)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, entity.RepulseOrigenAutomatico, list[0].Origen)

	// Segunda pasada: ya están en la campaña.
	out, err = uc.Detectar(ctx, "p1")
	require.NoError(t, err)
	assert.Zero(t, out.LeadsAgregados)

	_, err = uc.Detectar(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── Envío por lotes ──────────────────────────────────────────────────────────

func TestEnviarLote_EnviaYRegistra(t *testing.T) {
	uc, repo, sender := newRepulseUC(t)
	ctx := context.Background()
	ids := enCampania(t, uc, repo, "l1", "l2")
	tpl, err := uc.CreateTemplate(ctx, jefe, dto.RepulseTemplateRequest{ProyectoID: "p1", Nombre: "A", Mensaje: "Hola {{nombre}}"})
	require.NoError(t, err)

	out, err := uc.EnviarLote(ctx, jefe, dto.EnviarLoteRequest{ProyectoID: "p1", RepulseLeadIDs: ids, TemplateID: &tpl.ID})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Total)
	uc.Wait()

	estado, err := uc.EstadoLote(ctx, out.BatchID)
	require.NoError(t, err)
	assert.Equal(t, 2, estado.Enviados)
	assert.True(t, estado.Completado)

	require.Len(t, sender.mensajes, 2)
	porTel := map[string]string{}
	for _, m := range sender.mensajes {
		porTel[m.Telefono] = m.Mensaje
	}
	assert.Equal(t, "Hola Carla", porTel["51911000001"])
	assert.Equal(t, "Hola Cliente", porTel["51911000002"])

	rl, _ := repo.GetLead(ctx, ids[0])
	assert.Equal(t, entity.RepulseEnviado, rl.Estado)
	assert.Equal(t, 1, rl.ConteoRepulses)
	assert.Equal(t, tpl.ID, *rl.TemplateUsadoID)

	hist, err := uc.Historial(ctx, "l1")
	require.NoError(t, err)
	require.Len(t, hist, 1)
	assert.Equal(t, "wamid.51911000001", *hist[0].WhatsappMessageID)
}

func TestEnviarLote_ErroresPorEnvio(t *testing.T) {
	uc, repo, sender := newRepulseUC(t)
	ctx := context.Background()
	ids := enCampania(t, uc, repo, "l1", "l2")
	sender.rechazar["51911000001"] = "número inválido"
	sender.fallar["51911000002"] = errors.New("HTTP 502: upstream caído")

	out, err := uc.EnviarLote(ctx, jefe, dto.EnviarLoteRequest{ProyectoID: "p1", RepulseLeadIDs: ids, Mensaje: "Hola"})
	require.NoError(t, err)
	uc.Wait()

	estado, err := uc.EstadoLote(ctx, out.BatchID)
	require.NoError(t, err)
	assert.Equal(t, 2, estado.Errores)
	assert.Zero(t, estado.Enviados)

	h1, _ := uc.Historial(ctx, "l1")
	assert.Equal(t, "Meta: número inválido", *h1[0].EnvioError)
	h2, _ := uc.Historial(ctx, "l2")
	assert.Equal(t, "HTTP 502: upstream caído", *h2[0].EnvioError)

	rl, _ := repo.GetLead(ctx, ids[0])
	assert.Equal(t, entity.RepulsePendiente, rl.Estado)
}

func TestEnviarLote_Rechazos(t *testing.T) {
	uc, repo, sender := newRepulseUC(t)
	ctx := context.Background()
	ids := enCampania(t, uc, repo, "l1", "l2")

	_, err := uc.EnviarLote(ctx, jefe, dto.EnviarLoteRequest{ProyectoID: "p1", RepulseLeadIDs: ids})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin mensaje")

	repo.leadsHoy = 249
	_, err = uc.EnviarLote(ctx, jefe, dto.EnviarLoteRequest{ProyectoID: "p1", RepulseLeadIDs: ids, Mensaje: "Hola"})
	assert.ErrorIs(t, err, domain.ErrConflict, "supera el cupo")

	repo.leadsHoy = 0
	require.NoError(t, uc.Excluir(ctx, "l1"))
	require.NoError(t, uc.Excluir(ctx, "l2"))
	_, err = uc.EnviarLote(ctx, jefe, dto.EnviarLoteRequest{ProyectoID: "p1", RepulseLeadIDs: ids, Mensaje: "Hola"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "todos excluidos")

	sender.sinURL = true
	_, err = uc.EnviarLote(ctx, jefe, dto.EnviarLoteRequest{ProyectoID: "p1", RepulseLeadIDs: ids, Mensaje: "Hola"})
	assert.ErrorIs(t, err, domain.ErrConflict, "sin webhook")
	assert.Empty(t, repo.envios)
}

func TestEstadoLote_Desconocido(t *testing.T) {
	uc, _, _ := newRepulseUC(t)
	_, err := uc.EstadoLote(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── Respuestas, métricas y cupo ──────────────────────────────────────────────

func TestMarcarRespuesta(t *testing.T) {
	uc, repo, _ := newRepulseUC(t)
	ctx := context.Background()
	ids := enCampania(t, uc, repo, "l1")
	_, err := uc.EnviarLote(ctx, jefe, dto.EnviarLoteRequest{ProyectoID: "p1", RepulseLeadIDs: ids, Mensaje: "Hola"})
	require.NoError(t, err)
	uc.Wait()

	hist, _ := uc.Historial(ctx, "l1")
	out, err := uc.MarcarRespuesta(ctx, hist[0].ID)
	require.NoError(t, err)
	assert.True(t, out.RespuestaRecibida)

	st, err := uc.Stats(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 1, st.Total)
	assert.Equal(t, 1, st.Respondieron)

	_, err = uc.MarcarRespuesta(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCuota_DesdeMedianocheLima(t *testing.T) {
	uc, repo, _ := newRepulseUC(t)
	repo.leadsHoy = 200
	uc.now = func() time.Time { return time.Date(2026, 6, 15, 3, 0, 0, 0, time.UTC) }

	c, err := uc.Cuota(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 50, c.Disponible)
	assert.Equal(t, 80, c.PorcentajeUsado)
	// 03:00 UTC todavía es el 14 en Lima.
	assert.Equal(t, time.Date(2026, 6, 14, 5, 0, 0, 0, time.UTC), repo.desdeCuota.UTC())
}
