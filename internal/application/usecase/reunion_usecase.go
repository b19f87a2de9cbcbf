package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/ecoplaza/ecoplaza-api/internal/application/dto"
	"github.com/ecoplaza/ecoplaza-api/internal/application/ports"
	"github.com/ecoplaza/ecoplaza-api/internal/domain"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/entity"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/repository"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/reunion"
)

// Límites del listado de reuniones.
const (
	reunionesLimitDefault = 20
	reunionesLimitMax     = 100
)

// reextractTimeout cubre todos los trozos de una transcripción larga.
const reextractTimeout = 2 * time.Minute

// ReunionConfig bucket y tiempos del módulo.
type ReunionConfig struct {
	Bucket        string
	PresignTTL    time.Duration
	RetencionDias int
}

// ReunionUseCase grabaciones, callback del pipeline, action items y limpieza de media.
type ReunionUseCase struct {
	reuniones repository.ReunionRepository
	items     repository.ActionItemRepository
	usuarios  repository.UsuarioRepository
	tx        ports.TxRunner
	storage   ports.ObjectStorage
	extractor ports.ActionItemExtractor
	cfg       ReunionConfig
	now       func() time.Time
}

// NewReunionUseCase construye el caso de uso. extractor puede ser nil si no hay proveedor de IA.
func NewReunionUseCase(
	reuniones repository.ReunionRepository,
	items repository.ActionItemRepository,
	usuarios repository.UsuarioRepository,
	tx ports.TxRunner,
	storage ports.ObjectStorage,
	extractor ports.ActionItemExtractor,
	cfg ReunionConfig,
) *ReunionUseCase {
	if cfg.PresignTTL <= 0 {
		cfg.PresignTTL = time.Hour
	}
	if cfg.RetencionDias <= 0 {
		cfg.RetencionDias = 30
	}
	return &ReunionUseCase{
		reuniones: reuniones,
		items:     items,
		usuarios:  usuarios,
		tx:        tx,
		storage:   storage,
		extractor: extractor,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Upload sube la grabación y deja la reunión en procesando.
// Si el insert falla se elimina el objeto subido.
func (uc *ReunionUseCase) Upload(ctx context.Context, actor Actor, in dto.UploadReunionInput, body io.Reader) (*dto.ReunionResponse, error) {
	titulo := strings.TrimSpace(in.Titulo)
	if titulo == "" {
		return nil, fmt.Errorf("%w: el título es requerido", domain.ErrInvalidInput)
	}
	mediaTipo, err := reunion.ValidarArchivo(in.FileName, in.ContentType, in.Size)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	key := reunion.RutaMedia(SanitizarArchivo(in.FileName), now)
	if err := uc.storage.Upload(ctx, uc.cfg.Bucket, key, body, in.Size, in.ContentType); err != nil {
		return nil, fmt.Errorf("subir media: %w", err)
	}

	re := uc.nuevaReunion(actor, titulo, in.FechaReunion, in.ProyectoID, key, mediaTipo, in.Size, entity.ReunionProcesando)
	if err := uc.reuniones.Create(ctx, re); err != nil {
		if rmErr := uc.storage.Remove(ctx, uc.cfg.Bucket, key); rmErr != nil {
			log.Warn().Err(rmErr).Str("key", key).Msg("reuniones: no se pudo eliminar la media huérfana")
		}
		return nil, err
	}
	log.Info().Str("reunion_id", re.ID).Int64("bytes", in.Size).Msg("reuniones: media subida")
	resp := toReunionResponse(re, false)
	return &resp, nil
}

// PresignedURL crea la reunión en subiendo y devuelve una URL firmada para subida directa.
func (uc *ReunionUseCase) PresignedURL(ctx context.Context, actor Actor, in dto.PresignedURLRequest) (*dto.PresignedURLResponse, error) {
	titulo := strings.TrimSpace(in.Titulo)
	if titulo == "" || in.FileName == "" || in.ContentType == "" || in.FileSize == 0 {
		return nil, fmt.Errorf("%w: faltan campos requeridos: titulo, file_name, file_size, content_type", domain.ErrInvalidInput)
	}
	mediaTipo, err := reunion.ValidarArchivo(in.FileName, in.ContentType, in.FileSize)
	if err != nil {
		return nil, err
	}
	var fecha *time.Time
	if f := nilSiVacio(in.FechaReunion); f != nil {
		t, err := parseFecha(*f)
		if err != nil {
			return nil, fmt.Errorf("%w: fecha_reunion debe tener formato YYYY-MM-DD", domain.ErrInvalidInput)
		}
		fecha = &t
	}

	key := reunion.RutaMedia(SanitizarArchivo(in.FileName), uc.now())
	re := uc.nuevaReunion(actor, titulo, fecha, nil, key, mediaTipo, in.FileSize, entity.ReunionSubiendo)
	if err := uc.reuniones.Create(ctx, re); err != nil {
		return nil, err
	}

	url, err := uc.storage.PresignPut(ctx, uc.cfg.Bucket, key, in.ContentType, uc.cfg.PresignTTL)
	if err != nil {
		if delErr := uc.reuniones.Delete(ctx, re.ID); delErr != nil {
			log.Warn().Err(delErr).Str("reunion_id", re.ID).Msg("reuniones: no se pudo revertir el registro")
		}
		return nil, fmt.Errorf("generar url de subida: %w", err)
	}
	return &dto.PresignedURLResponse{
		ReunionID:   re.ID,
		UploadURL:   url,
		StoragePath: key,
		ExpiresIn:   int(uc.cfg.PresignTTL.Seconds()),
	}, nil
}

// UploadComplete confirma una subida directa: subiendo → procesando si el objeto existe,
// o error si no llegó al bucket.
func (uc *ReunionUseCase) UploadComplete(ctx context.Context, id, storagePath string) (*dto.ReunionResponse, error) {
	if strings.TrimSpace(storagePath) == "" {
		return nil, fmt.Errorf("%w: storage_path es requerido", domain.ErrInvalidInput)
	}
	re, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if re.Estado != entity.ReunionSubiendo {
		return nil, fmt.Errorf("%w: la reunión no está en estado subiendo (estado actual: %s)", domain.ErrEstadoInvalido, re.Estado)
	}
	if re.MediaStoragePath == nil || *re.MediaStoragePath != storagePath {
		return nil, fmt.Errorf("%w: el storage_path no coincide con el registrado", domain.ErrInvalidInput)
	}

	size, existe, err := uc.storage.Stat(ctx, uc.cfg.Bucket, storagePath)
	if err != nil {
		return nil, fmt.Errorf("verificar media: %w", err)
	}
	re.UpdatedAt = uc.now()
	if !existe {
		re.Estado = entity.ReunionError
		re.ErrorMensaje = strPtr("El archivo no se encontró en storage")
		if err := uc.reuniones.Update(ctx, re); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: el archivo no se encontró en storage", domain.ErrInvalidInput)
	}
	// el tamaño declarado al pedir la URL no es confiable
	re.MediaSizeBytes = &size
	re.Estado = entity.ReunionProcesando
	if err := uc.reuniones.Update(ctx, re); err != nil {
		return nil, err
	}
	resp := toReunionResponse(re, false)
	return &resp, nil
}

func (uc *ReunionUseCase) nuevaReunion(actor Actor, titulo string, fecha *time.Time, proyectoID *string, key, mediaTipo string, size int64, estado string) *entity.Reunion {
	now := uc.now()
	creador := actor.UserID
	return &entity.Reunion{
		ID:               uuid.New().String(),
		ProyectoID:       proyectoID,
		CreatedBy:        &creador,
		Titulo:           titulo,
		FechaReunion:     fecha,
		MediaStoragePath: &key,
		MediaTipo:        &mediaTipo,
		MediaSizeBytes:   &size,
		Estado:           estado,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// List página de reuniones (limit 20 por defecto).
func (uc *ReunionUseCase) List(ctx context.Context, f entity.ReunionFilter) (*dto.ReunionListResponse, error) {
	if f.Estado != "" && !reunion.EsEstado(f.Estado) {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, f.Estado)
	}
	if f.Limit <= 0 {
		f.Limit = reunionesLimitDefault
	}
	if f.Limit > reunionesLimitMax {
		f.Limit = reunionesLimitMax
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	list, total, err := uc.reuniones.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := &dto.ReunionListResponse{
		Reuniones: make([]dto.ReunionResponse, 0, len(list)),
		Total:     total,
		HasMore:   f.Offset+len(list) < total,
	}
	for _, re := range list {
		out.Reuniones = append(out.Reuniones, toReunionResponse(re, false))
	}
	return out, nil
}

// Get reunión con transcripción y action items.
func (uc *ReunionUseCase) Get(ctx context.Context, id string) (*dto.ReunionDetalleResponse, error) {
	re, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	items, err := uc.items.ListByReunion(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.ReunionDetalleResponse{
		Reunion:     toReunionResponse(re, true),
		ActionItems: toActionItemResponses(items),
	}, nil
}

// UpdateEstado callback del pipeline de transcripción. Con resultado reemplaza el
// contenido procesado y los action items.
func (uc *ReunionUseCase) UpdateEstado(ctx context.Context, id string, in dto.UpdateReunionEstadoRequest) (*dto.ReunionResponse, error) {
	if !reunion.EsEstado(in.Estado) {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, in.Estado)
	}
	re, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	re.Estado = in.Estado
	re.UpdatedAt = now
	re.ErrorMensaje = nil
	if in.Estado == entity.ReunionError {
		re.ErrorMensaje = nilSiVacio(in.ErrorMensaje)
	}
	if in.Estado == entity.ReunionCompletado {
		re.ProcessedAt = &now
	}

	var items []*entity.ActionItem
	if res := in.Resultado; res != nil {
		re.TranscripcionCompleta = nilSiVacio(&res.TranscripcionCompleta)
		re.Resumen = nilSiVacio(&res.Resumen)
		if res.DuracionSegundos != nil {
			re.DuracionSegundos = res.DuracionSegundos
		}
		re.Participantes = res.Participantes
		re.PuntosClave = res.PuntosClave
		re.Decisiones = res.Decisiones
		re.PreguntasAbiertas = res.PreguntasAbiertas
		items = uc.actionItemsDesdeInput(re.ID, res.ActionItems)
	}

	err = uc.tx.Run(ctx, func(r ports.TxRepos) error {
		if err := r.Reuniones.Update(ctx, re); err != nil {
			return err
		}
		if in.Resultado == nil {
			return nil
		}
		if err := r.ActionItems.DeleteByReunion(ctx, re.ID); err != nil {
			return err
		}
		return r.ActionItems.CreateBatch(ctx, items)
	})
	if err != nil {
		return nil, err
	}
	resp := toReunionResponse(re, false)
	return &resp, nil
}

func (uc *ReunionUseCase) actionItemsDesdeInput(reunionID string, in []dto.ActionItemInput) []*entity.ActionItem {
	lote := make([]*entity.ActionItem, 0, len(in))
	for _, a := range in {
		it := &entity.ActionItem{
			Descripcion:    a.Descripcion,
			AsignadoNombre: nilSiVacio(a.AsignadoNombre),
			Prioridad:      a.Prioridad,
			ContextoQuote:  nilSiVacio(a.ContextoQuote),
			Deadline:       parseDeadline(a.Deadline),
		}
		lote = append(lote, it)
	}
	return uc.completarItems(reunionID, reunion.Dedup([][]*entity.ActionItem{lote}))
}

func (uc *ReunionUseCase) completarItems(reunionID string, items []*entity.ActionItem) []*entity.ActionItem {
	now := uc.now()
	for _, it := range items {
		it.ID = uuid.New().String()
		it.ReunionID = reunionID
		it.CreatedAt = now
	}
	return items
}

// parseDeadline el modelo a veces devuelve "null" como texto o fechas sin formato.
func parseDeadline(s *string) *time.Time {
	v := nilSiVacio(s)
	if v == nil || strings.EqualFold(*v, "null") {
		return nil
	}
	t, err := parseFecha(*v)
	if err != nil {
		return nil
	}
	return &t
}

// Delete elimina la media y luego la reunión; los action items caen por cascada.
func (uc *ReunionUseCase) Delete(ctx context.Context, id string) error {
	re, err := uc.get(ctx, id)
	if err != nil {
		return err
	}
	if re.MediaStoragePath != nil {
		if err := uc.storage.Remove(ctx, uc.cfg.Bucket, *re.MediaStoragePath); err != nil {
			log.Warn().Err(err).Str("reunion_id", id).Msg("reuniones: no se pudo eliminar la media")
		}
	}
	return uc.reuniones.Delete(ctx, id)
}

// CleanupMedia elimina la media con más de dias de antigüedad (0 usa la retención configurada).
// Los fallos por reunión se acumulan sin cortar el lote.
func (uc *ReunionUseCase) CleanupMedia(ctx context.Context, dias int) (*dto.CleanupResponse, error) {
	if dias <= 0 {
		dias = uc.cfg.RetencionDias
	}
	now := uc.now()
	vencidas, err := uc.reuniones.ListMediaVencida(ctx, now.AddDate(0, 0, -dias))
	if err != nil {
		return nil, err
	}

	out := &dto.CleanupResponse{
		Details: dto.CleanupDetails{SuccessIDs: []string{}, Errors: []string{}, Timestamp: now},
	}
	var merr *multierror.Error
	for _, re := range vencidas {
		if re.MediaStoragePath == nil {
			continue
		}
		if err := uc.storage.Remove(ctx, uc.cfg.Bucket, *re.MediaStoragePath); err != nil {
			merr = multierror.Append(merr, fmt.Errorf("%s: %w", re.ID, err))
			out.Details.Errors = append(out.Details.Errors, fmt.Sprintf("%s: %v", re.ID, err))
			continue
		}
		if err := uc.reuniones.MarcarMediaEliminada(ctx, re.ID, now); err != nil {
			merr = multierror.Append(merr, fmt.Errorf("%s: %w", re.ID, err))
			out.Details.Errors = append(out.Details.Errors, fmt.Sprintf("%s: %v", re.ID, err))
			continue
		}
		out.Details.SuccessIDs = append(out.Details.SuccessIDs, re.ID)
	}
	out.CleanedCount = len(out.Details.SuccessIDs)
	out.ErrorCount = len(out.Details.Errors)

	if err := merr.ErrorOrNil(); err != nil {
		log.Warn().Err(err).Int("errores", out.ErrorCount).Msg("reuniones: limpieza de media con errores")
	}
	log.Info().Int("limpiadas", out.CleanedCount).Int("dias", dias).Msg("reuniones: limpieza de media")
	return out, nil
}

// Reextract vuelve a extraer los action items de la transcripción completa.
// Las transcripciones largas se procesan por trozos en paralelo; un trozo fallido no corta el resto.
func (uc *ReunionUseCase) Reextract(ctx context.Context, id string) (*dto.ReextractResponse, error) {
	if uc.extractor == nil {
		return nil, errors.New("reuniones: no hay proveedor de IA configurado")
	}
	re, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if re.TranscripcionCompleta == nil || strings.TrimSpace(*re.TranscripcionCompleta) == "" {
		return nil, fmt.Errorf("%w: la reunión no tiene transcripción aún", domain.ErrInvalidInput)
	}

	ctx, cancel := context.WithTimeout(ctx, reextractTimeout)
	defer cancel()

	chunks := reunion.Chunks(*re.TranscripcionCompleta)
	lotes := make([][]*entity.ActionItem, len(chunks))
	g, gctx := errgroup.WithContext(ctx)
	for i, chunk := range chunks {
		g.Go(func() error {
			items, err := uc.extractor.ExtraerActionItems(gctx, re.Titulo, chunk)
			if err != nil {
				log.Warn().Err(err).Str("reunion_id", id).Int("chunk", i+1).Int("chunks", len(chunks)).
					Msg("reuniones: falló la extracción del trozo")
				return nil
			}
			lotes[i] = items
			return nil
		})
	}
	_ = g.Wait()

	items := uc.completarItems(re.ID, reunion.Dedup(lotes))
	err = uc.tx.Run(ctx, func(r ports.TxRepos) error {
		if err := r.ActionItems.DeleteByReunion(ctx, re.ID); err != nil {
			return err
		}
		return r.ActionItems.CreateBatch(ctx, items)
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("reunion_id", id).Int("chunks", len(chunks)).Int("items", len(items)).Msg("reuniones: action items re-extraídos")
	return &dto.ReextractResponse{
		ActionItemsCount: len(items),
		Message:          fmt.Sprintf("Se extrajeron %d action items", len(items)),
	}, nil
}

// MisActionItems items asignados al usuario autenticado.
func (uc *ReunionUseCase) MisActionItems(ctx context.Context, actor Actor, includeCompleted bool) ([]dto.ActionItemResponse, error) {
	items, err := uc.items.ListByUsuario(ctx, actor.UserID, includeCompleted)
	if err != nil {
		return nil, err
	}
	return toActionItemResponses(items), nil
}

// CompletarActionItem marca o desmarca el item.
func (uc *ReunionUseCase) CompletarActionItem(ctx context.Context, actor Actor, id string, completado bool) (*dto.ActionItemResponse, error) {
	it, err := uc.getItem(ctx, id)
	if err != nil {
		return nil, err
	}
	it.Completado = completado
	it.CompletadoAt, it.CompletadoPor = nil, nil
	if completado {
		now, por := uc.now(), actor.UserID
		it.CompletadoAt, it.CompletadoPor = &now, &por
	}
	if err := uc.items.Update(ctx, it); err != nil {
		return nil, err
	}
	resp := toActionItemResponse(it)
	return &resp, nil
}

// VincularActionItem asigna el item a un usuario existente.
func (uc *ReunionUseCase) VincularActionItem(ctx context.Context, id, usuarioID string) (*dto.ActionItemResponse, error) {
	if strings.TrimSpace(usuarioID) == "" {
		return nil, fmt.Errorf("%w: usuario_id es requerido", domain.ErrInvalidInput)
	}
	u, err := uc.usuarios.GetByID(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("%w: usuario no encontrado", domain.ErrNotFound)
	}
	it, err := uc.getItem(ctx, id)
	if err != nil {
		return nil, err
	}
	it.AsignadoUsuarioID = &u.ID
	if err := uc.items.Update(ctx, it); err != nil {
		return nil, err
	}
	resp := toActionItemResponse(it)
	return &resp, nil
}

// UpdateActionItem edición administrativa; solo aplica los campos presentes.
func (uc *ReunionUseCase) UpdateActionItem(ctx context.Context, id string, in dto.UpdateActionItemRequest) (*dto.ActionItemResponse, error) {
	it, err := uc.getItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Descripcion != nil {
		d := strings.TrimSpace(*in.Descripcion)
		if d == "" {
			return nil, fmt.Errorf("%w: la descripción no puede estar vacía", domain.ErrInvalidInput)
		}
		it.Descripcion = d
	}
	if in.Prioridad != nil {
		if !reunion.EsPrioridad(*in.Prioridad) {
			return nil, fmt.Errorf("%w: prioridad debe ser alta, media o baja", domain.ErrInvalidInput)
		}
		it.Prioridad = *in.Prioridad
	}
	if in.Deadline != nil {
		if *in.Deadline == "" {
			it.Deadline = nil
		} else {
			t, err := parseFecha(*in.Deadline)
			if err != nil {
				return nil, fmt.Errorf("%w: deadline debe tener formato YYYY-MM-DD", domain.ErrInvalidInput)
			}
			it.Deadline = &t
		}
	}
	if in.AsignadoNombre != nil {
		it.AsignadoNombre = nilSiVacio(in.AsignadoNombre)
	}
	if in.AsignadoUsuarioID != nil {
		it.AsignadoUsuarioID = nilSiVacio(in.AsignadoUsuarioID)
		if it.AsignadoUsuarioID != nil {
			u, err := uc.usuarios.GetByID(ctx, *it.AsignadoUsuarioID)
			if err != nil {
				return nil, err
			}
			if u == nil {
				return nil, fmt.Errorf("%w: usuario no encontrado", domain.ErrNotFound)
			}
		}
	}
	if err := uc.items.Update(ctx, it); err != nil {
		return nil, err
	}
	resp := toActionItemResponse(it)
	return &resp, nil
}

func (uc *ReunionUseCase) get(ctx context.Context, id string) (*entity.Reunion, error) {
	re, err := uc.reuniones.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if re == nil {
		return nil, fmt.Errorf("%w: reunión no encontrada", domain.ErrNotFound)
	}
	return re, nil
}

func (uc *ReunionUseCase) getItem(ctx context.Context, id string) (*entity.ActionItem, error) {
	it, err := uc.items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, fmt.Errorf("%w: action item no encontrado", domain.ErrNotFound)
	}
	return it, nil
}

func vacioSiNil(xs []string) []string {
	if xs == nil {
		return []string{}
	}
	return xs
}

func toReunionResponse(r *entity.Reunion, conTranscripcion bool) dto.ReunionResponse {
	resp := dto.ReunionResponse{
		ID:                r.ID,
		ProyectoID:        r.ProyectoID,
		CreatedBy:         r.CreatedBy,
		Titulo:            r.Titulo,
		FechaReunion:      r.FechaReunion,
		DuracionSegundos:  r.DuracionSegundos,
		Participantes:     vacioSiNil(r.Participantes),
		MediaStoragePath:  r.MediaStoragePath,
		MediaTipo:         r.MediaTipo,
		MediaSizeBytes:    r.MediaSizeBytes,
		MediaDeletedAt:    r.MediaDeletedAt,
		Resumen:           r.Resumen,
		PuntosClave:       vacioSiNil(r.PuntosClave),
		Decisiones:        vacioSiNil(r.Decisiones),
		PreguntasAbiertas: vacioSiNil(r.PreguntasAbiertas),
		Estado:            r.Estado,
		ErrorMensaje:      r.ErrorMensaje,
		CreatedAt:         r.CreatedAt,
		ProcessedAt:       r.ProcessedAt,
	}
	if conTranscripcion {
		resp.TranscripcionCompleta = r.TranscripcionCompleta
	}
	return resp
}

func toActionItemResponses(items []*entity.ActionItem) []dto.ActionItemResponse {
	out := make([]dto.ActionItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toActionItemResponse(it))
	}
	return out
}

func toActionItemResponse(a *entity.ActionItem) dto.ActionItemResponse {
	return dto.ActionItemResponse{
		ID:                a.ID,
		ReunionID:         a.ReunionID,
		ReunionTitulo:     a.ReunionTitulo,
		Descripcion:       a.Descripcion,
		AsignadoNombre:    a.AsignadoNombre,
		AsignadoUsuarioID: a.AsignadoUsuarioID,
		Deadline:          formatFechaPtr(a.Deadline),
		Prioridad:         a.Prioridad,
		ContextoQuote:     a.ContextoQuote,
		Completado:        a.Completado,
		CompletadoAt:      a.CompletadoAt,
		CompletadoPor:     a.CompletadoPor,
	}
}
