package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecoplaza/ecoplaza-api/internal/application/dto"
	"github.com/ecoplaza/ecoplaza-api/internal/domain"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/entity"
)

const bucketReuniones = "reuniones"

func newReunionUC(s *memStore, st *fakeStorage, ex *fakeExtractor) *ReunionUseCase {
	cfg := ReunionConfig{Bucket: bucketReuniones}
	var uc *ReunionUseCase
	if ex == nil {
		uc = NewReunionUseCase(&fakeReunionRepo{s}, &fakeActionItemRepo{s}, &fakeUsuarioRepo{s}, s, st, nil, cfg)
	} else {
		uc = NewReunionUseCase(&fakeReunionRepo{s}, &fakeActionItemRepo{s}, &fakeUsuarioRepo{s}, s, st, ex, cfg)
	}
	uc.now = fixedNow
	return uc
}

func subirReunion(t *testing.T, uc *ReunionUseCase) *dto.ReunionResponse {
	t.Helper()
	r, err := uc.Upload(context.Background(), jefe, dto.UploadReunionInput{
		Titulo: "Comité semanal", FileName: "comité 01.mp3", ContentType: "audio/mpeg", Size: 3,
	}, strings.NewReader("ID3"))
	require.NoError(t, err)
	return r
}

// ── Subida ───────────────────────────────────────────────────────────────────

func TestReunionUpload(t *testing.T) {
	s := newStore()
	st := newStorage()
	uc := newReunionUC(s, st, nil)

	r := subirReunion(t, uc)
	assert.Equal(t, entity.ReunionProcesando, r.Estado)
	assert.Equal(t, "audio", *r.MediaTipo)
	assert.Equal(t, "u-j", *r.CreatedBy)
	assert.NotNil(t, r.Participantes)
	assert.True(t, strings.HasPrefix(*r.MediaStoragePath, "reuniones/global/"))
	assert.True(t, strings.HasSuffix(*r.MediaStoragePath, "_comite_01.mp3"))
	assert.Contains(t, st.objetos, bucketReuniones+"/"+*r.MediaStoragePath)
}

func TestReunionUpload_InsertFallidoEliminaMedia(t *testing.T) {
	s := newStore()
	s.createErr = errors.New("insert falló")
	st := newStorage()
	uc := newReunionUC(s, st, nil)

	_, err := uc.Upload(context.Background(), jefe, dto.UploadReunionInput{
		Titulo: "X", FileName: "x.mp4", ContentType: "video/mp4", Size: 2,
	}, strings.NewReader("ok"))
	assert.Error(t, err)
	assert.Empty(t, st.objetos)
}

func TestReunionUpload_Validaciones(t *testing.T) {
	uc := newReunionUC(newStore(), newStorage(), nil)
	ctx := context.Background()

	_, err := uc.Upload(ctx, jefe, dto.UploadReunionInput{Titulo: " ", FileName: "a.mp3", ContentType: "audio/mpeg", Size: 1}, strings.NewReader("x"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Upload(ctx, jefe, dto.UploadReunionInput{Titulo: "a", FileName: "a.exe", ContentType: "application/octet-stream", Size: 1}, strings.NewReader("x"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── Subida directa ───────────────────────────────────────────────────────────

func TestPresignedURL_YUploadComplete(t *testing.T) {
	s := newStore()
	st := newStorage()
	uc := newReunionUC(s, st, nil)
	ctx := context.Background()

	p, err := uc.PresignedURL(ctx, jefe, dto.PresignedURLRequest{
		Titulo: "Directorio", FileName: "dir.mp4", ContentType: "video/mp4", FileSize: 1 << 30, FechaReunion: ptr("2026-06-10"),
	})
	require.NoError(t, err)
	assert.Equal(t, 3600, p.ExpiresIn)
	assert.Contains(t, p.UploadURL, p.StoragePath)
	require.Contains(t, s.reuniones, p.ReunionID)
	assert.Equal(t, entity.ReunionSubiendo, s.reuniones[p.ReunionID].Estado)

	_, err = uc.UploadComplete(ctx, p.ReunionID, "reuniones/global/otro.mp4")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	st.objetos[bucketReuniones+"/"+p.StoragePath] = []byte("mp4")
	r, err := uc.UploadComplete(ctx, p.ReunionID, p.StoragePath)
	require.NoError(t, err)
	assert.Equal(t, entity.ReunionProcesando, r.Estado)
	// se declaró 1GB pero el bucket tiene 3 bytes
	require.NotNil(t, r.MediaSizeBytes)
	assert.Equal(t, int64(3), *r.MediaSizeBytes)
	assert.Equal(t, int64(3), *s.reuniones[p.ReunionID].MediaSizeBytes)

	_, err = uc.UploadComplete(ctx, p.ReunionID, p.StoragePath)
	assert.ErrorIs(t, err, domain.ErrEstadoInvalido)
}

func TestUploadComplete_ObjetoAusente(t *testing.T) {
	s := newStore()
	uc := newReunionUC(s, newStorage(), nil)
	ctx := context.Background()

	p, err := uc.PresignedURL(ctx, jefe, dto.PresignedURLRequest{
		Titulo: "Directorio", FileName: "dir.wav", ContentType: "audio/wav", FileSize: 10,
	})
	require.NoError(t, err)

	_, err = uc.UploadComplete(ctx, p.ReunionID, p.StoragePath)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	re := s.reuniones[p.ReunionID]
	assert.Equal(t, entity.ReunionError, re.Estado)
	assert.Equal(t, "El archivo no se encontró en storage", *re.ErrorMensaje)
}

func TestPresignedURL_CamposFaltantes(t *testing.T) {
	uc := newReunionUC(newStore(), newStorage(), nil)
	_, err := uc.PresignedURL(context.Background(), jefe, dto.PresignedURLRequest{Titulo: "x", FileName: "a.mp3"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── Callback del pipeline ────────────────────────────────────────────────────

func TestUpdateEstado_ConResultado(t *testing.T) {
	s := newStore()
	uc := newReunionUC(s, newStorage(), nil)
	ctx := context.Background()
	r := subirReunion(t, uc)
	s.actionItems["viejo"] = &entity.ActionItem{ID: "viejo", ReunionID: r.ID, Descripcion: "Obsoleto"}

	dur := 1800
	out, err := uc.UpdateEstado(ctx, r.ID, dto.UpdateReunionEstadoRequest{
		Estado: entity.ReunionCompletado,
		Resultado: &dto.ResultadoReunion{
			TranscripcionCompleta: "Hola a todos...",
			Resumen:               "Se revisó el avance",
			DuracionSegundos:      &dur,
			Participantes:         []string{"Ana", "Luis"},
			ActionItems: []dto.ActionItemInput{
				{Descripcion: "Llamar al notario", Prioridad: "urgente", Deadline: ptr("null")},
				{Descripcion: " llamar al notario "},
				{Descripcion: "Publicar aviso", AsignadoNombre: ptr("Ana"), Prioridad: entity.PrioridadBaja, Deadline: ptr("2026-06-20")},
			},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ReunionCompletado, out.Estado)
	require.NotNil(t, out.ProcessedAt)
	assert.Equal(t, 1800, *out.DuracionSegundos)

	det, err := uc.Get(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hola a todos...", *det.Reunion.TranscripcionCompleta)
	require.Len(t, det.ActionItems, 2)
	assert.Equal(t, "Llamar al notario", det.ActionItems[0].Descripcion)
	assert.Equal(t, entity.PrioridadMedia, det.ActionItems[0].Prioridad)
	assert.Equal(t, "No especificado", *det.ActionItems[0].AsignadoNombre)
	assert.Nil(t, det.ActionItems[0].Deadline)
	assert.Equal(t, "2026-06-20", *det.ActionItems[1].Deadline)
	assert.NotContains(t, s.actionItems, "viejo")
}

func TestUpdateEstado_Error(t *testing.T) {
	s := newStore()
	uc := newReunionUC(s, newStorage(), nil)
	r := subirReunion(t, uc)

	out, err := uc.UpdateEstado(context.Background(), r.ID, dto.UpdateReunionEstadoRequest{
		Estado: entity.ReunionError, ErrorMensaje: ptr("Whisper timeout"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Whisper timeout", *out.ErrorMensaje)
	assert.Nil(t, out.ProcessedAt)

	_, err = uc.UpdateEstado(context.Background(), r.ID, dto.UpdateReunionEstadoRequest{Estado: "pausado"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── Listado y borrado ────────────────────────────────────────────────────────

func TestReunionList_Paginacion(t *testing.T) {
	s := newStore()
	uc := newReunionUC(s, newStorage(), nil)
	for i, id := range []string{"r1", "r2", "r3"} {
		s.reuniones[id] = &entity.Reunion{ID: id, Titulo: id, Estado: entity.ReunionCompletado,
			CreatedAt: fechaFija.Add(time.Duration(i) * time.Hour)}
	}

	out, err := uc.List(context.Background(), entity.ReunionFilter{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, out.Total)
	assert.True(t, out.HasMore)
	require.Len(t, out.Reuniones, 2)
	assert.Equal(t, "r3", out.Reuniones[0].ID)

	out, err = uc.List(context.Background(), entity.ReunionFilter{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.False(t, out.HasMore)

	_, err = uc.List(context.Background(), entity.ReunionFilter{Estado: "otro"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReunionDelete_FalloDeStorageNoBloquea(t *testing.T) {
	s := newStore()
	st := newStorage()
	uc := newReunionUC(s, st, nil)
	r := subirReunion(t, uc)
	st.removeErr[*r.MediaStoragePath] = errors.New("403")

	require.NoError(t, uc.Delete(context.Background(), r.ID))
	assert.NotContains(t, s.reuniones, r.ID)
	assert.ErrorIs(t, uc.Delete(context.Background(), r.ID), domain.ErrNotFound)
}

// ── Limpieza de media ────────────────────────────────────────────────────────

func TestCleanupMedia(t *testing.T) {
	s := newStore()
	st := newStorage()
	uc := newReunionUC(s, st, nil)
	viejo := fechaFija.AddDate(0, 0, -40)
	for _, id := range []string{"a", "b", "c"} {
		key := "reuniones/global/" + id + ".mp3"
		s.reuniones[id] = &entity.Reunion{ID: id, MediaStoragePath: &key, Estado: entity.ReunionCompletado, CreatedAt: viejo}
		st.objetos[bucketReuniones+"/"+key] = []byte("x")
	}
	reciente := "reuniones/global/d.mp3"
	s.reuniones["d"] = &entity.Reunion{ID: "d", MediaStoragePath: &reciente, CreatedAt: fechaFija.AddDate(0, 0, -2)}
	st.removeErr["reuniones/global/b.mp3"] = errors.New("timeout")

	out, err := uc.CleanupMedia(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 2, out.CleanedCount)
	assert.Equal(t, 1, out.ErrorCount)
	assert.Equal(t, []string{"a", "c"}, out.Details.SuccessIDs)
	assert.Contains(t, out.Details.Errors[0], "b: timeout")
	assert.NotNil(t, s.reuniones["a"].MediaDeletedAt)
	assert.Nil(t, s.reuniones["a"].MediaStoragePath)
	assert.NotNil(t, s.reuniones["b"].MediaStoragePath)
	assert.Nil(t, s.reuniones["d"].MediaDeletedAt)
}

// ── Re-extracción ────────────────────────────────────────────────────────────

func transcripcionLarga() string {
	return strings.Repeat("a", 80000) + strings.Repeat("b", 80000)
}

func TestReextract_PorTrozos(t *testing.T) {
	s := newStore()
	ex := &fakeExtractor{}
	uc := newReunionUC(s, newStorage(), ex)
	tr := transcripcionLarga()
	s.reuniones["r1"] = &entity.Reunion{ID: "r1", Titulo: "Comité", TranscripcionCompleta: &tr}
	s.actionItems["viejo"] = &entity.ActionItem{ID: "viejo", ReunionID: "r1", Descripcion: "Obsoleto"}

	out, err := uc.Reextract(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, 3, ex.llamas)
	assert.Equal(t, 3, out.ActionItemsCount)
	assert.Equal(t, "Se extrajeron 3 action items", out.Message)
	assert.NotContains(t, s.actionItems, "viejo")
	assert.Len(t, s.actionItems, 3)
}

func TestReextract_TrozoFallidoSeOmite(t *testing.T) {
	s := newStore()
	ex := &fakeExtractor{fallar: "b"}
	uc := newReunionUC(s, newStorage(), ex)
	tr := transcripcionLarga()
	s.reuniones["r1"] = &entity.Reunion{ID: "r1", Titulo: "Comité", TranscripcionCompleta: &tr}

	out, err := uc.Reextract(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, 2, out.ActionItemsCount)
}

func TestReextract_SinTranscripcionOSinProveedor(t *testing.T) {
	s := newStore()
	s.reuniones["r1"] = &entity.Reunion{ID: "r1", Titulo: "Vacía"}

	_, err := newReunionUC(s, newStorage(), &fakeExtractor{}).Reextract(context.Background(), "r1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = newReunionUC(s, newStorage(), nil).Reextract(context.Background(), "r1")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrInvalidInput)
}

// ── Action items ─────────────────────────────────────────────────────────────

func TestActionItems_CompletarVincularEditar(t *testing.T) {
	s := newStore()
	s.usuarios["u-v"] = &entity.Usuario{ID: "u-v", Nombre: "Vera", Rol: entity.RolVendedor, Activo: true}
	s.actionItems["i1"] = &entity.ActionItem{ID: "i1", ReunionID: "r1", Descripcion: "Enviar planos", Prioridad: entity.PrioridadMedia}
	uc := newReunionUC(s, newStorage(), nil)
	ctx := context.Background()

	_, err := uc.VincularActionItem(ctx, "i1", "u-nadie")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	v, err := uc.VincularActionItem(ctx, "i1", "u-v")
	require.NoError(t, err)
	assert.Equal(t, "u-v", *v.AsignadoUsuarioID)

	mios, err := uc.MisActionItems(ctx, vendedor, false)
	require.NoError(t, err)
	require.Len(t, mios, 1)

	c, err := uc.CompletarActionItem(ctx, vendedor, "i1", true)
	require.NoError(t, err)
	assert.True(t, c.Completado)
	assert.Equal(t, "u-v", *c.CompletadoPor)

	mios, err = uc.MisActionItems(ctx, vendedor, false)
	require.NoError(t, err)
	assert.Empty(t, mios)

	c, err = uc.CompletarActionItem(ctx, vendedor, "i1", false)
	require.NoError(t, err)
	assert.Nil(t, c.CompletadoAt)

	_, err = uc.UpdateActionItem(ctx, "i1", dto.UpdateActionItemRequest{Prioridad: ptr("critica")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	e, err := uc.UpdateActionItem(ctx, "i1", dto.UpdateActionItemRequest{
		Descripcion: ptr(" Enviar planos finales "), Deadline: ptr("2026-07-01"), Prioridad: ptr(entity.PrioridadAlta),
	})
	require.NoError(t, err)
	assert.Equal(t, "Enviar planos finales", e.Descripcion)
	assert.Equal(t, "2026-07-01", *e.Deadline)
	assert.Equal(t, "u-v", *e.AsignadoUsuarioID)

	e, err = uc.UpdateActionItem(ctx, "i1", dto.UpdateActionItemRequest{Deadline: ptr(""), AsignadoUsuarioID: ptr("")})
	require.NoError(t, err)
	assert.Nil(t, e.Deadline)
	assert.Nil(t, e.AsignadoUsuarioID)
}
