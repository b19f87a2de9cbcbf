package usecase

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ecoplaza/ecoplaza-api/internal/application/dto"
	"github.com/ecoplaza/ecoplaza-api/internal/application/ports"
	"github.com/ecoplaza/ecoplaza-api/internal/domain"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/entity"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/expansion"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/rbac"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/repository"
)

// UploadDocumentoInput archivo del expediente ya leído del multipart.
type UploadDocumentoInput struct {
	TipoDocumento string
	FileName      string
	ContentType   string
	Size          int64
	Body          io.Reader
}

// CorredorUseCase registro de corredores y bandeja de revisión legal.
type CorredorUseCase struct {
	repo    repository.CorredorRepository
	tx      ports.TxRunner
	storage ports.ObjectStorage
	bucket  string
	perms   PermissionChecker
	now     func() time.Time
}

// NewCorredorUseCase construye el caso de uso; bucket es el de documentos.
func NewCorredorUseCase(
	repo repository.CorredorRepository,
	tx ports.TxRunner,
	storage ports.ObjectStorage,
	bucket string,
	perms PermissionChecker,
) *CorredorUseCase {
	return &CorredorUseCase{repo: repo, tx: tx, storage: storage, bucket: bucket, perms: perms, now: time.Now}
}

// Create alta del registro del corredor autenticado (uno por usuario).
func (uc *CorredorUseCase) Create(ctx context.Context, actor Actor, in dto.RegistroCorredorRequest) (*dto.RegistroCorredorResponse, error) {
	if actor.Rol != entity.RolCorredor {
		return nil, fmt.Errorf("%w: solo corredores pueden registrarse", domain.ErrForbidden)
	}
	existe, err := uc.repo.GetByUsuario(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if existe != nil {
		return nil, fmt.Errorf("%w: el usuario ya tiene un registro", domain.ErrConflict)
	}

	now := uc.now()
	reg := &entity.RegistroCorredor{
		ID:        uuid.New().String(),
		UsuarioID: actor.UserID,
		Estado:    entity.RegistroBorrador,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := aplicarDatos(reg, in); err != nil {
		return nil, err
	}
	if err := expansion.ValidarDatos(reg); err != nil {
		return nil, err
	}

	err = uc.tx.Run(ctx, func(r ports.TxRepos) error {
		if err := r.Corredores.Create(ctx, reg); err != nil {
			return err
		}
		return r.Corredores.AddHistorial(ctx, uc.historial(reg.ID, entity.AccionCreado, "Registro creado", actor.UserID))
	})
	if err != nil {
		return nil, err
	}
	resp := toRegistroResponse(reg)
	return &resp, nil
}

// Update edición de datos por el dueño (borrador u observado).
func (uc *CorredorUseCase) Update(ctx context.Context, actor Actor, id string, in dto.RegistroCorredorRequest) (*dto.RegistroCorredorResponse, error) {
	reg, err := uc.propio(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !expansion.Editable(reg.Estado) {
		return nil, fmt.Errorf("%w: el registro no se puede editar en estado %s", domain.ErrTransicionInvalida, reg.Estado)
	}
	if err := aplicarDatos(reg, in); err != nil {
		return nil, err
	}
	if err := expansion.ValidarDatos(reg); err != nil {
		return nil, err
	}
	reg.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, reg); err != nil {
		return nil, err
	}
	resp := toRegistroResponse(reg)
	return &resp, nil
}

// Mine detalle del registro del corredor autenticado.
func (uc *CorredorUseCase) Mine(ctx context.Context, actor Actor) (*dto.RegistroDetalleResponse, error) {
	reg, err := uc.repo.GetByUsuario(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if reg == nil {
		return nil, fmt.Errorf("%w: no tiene registro de corredor", domain.ErrNotFound)
	}
	return uc.detalle(ctx, reg)
}

// Detalle registro con documentos e historial; el dueño o quien tenga expansion:read_all.
func (uc *CorredorUseCase) Detalle(ctx context.Context, actor Actor, id string) (*dto.RegistroDetalleResponse, error) {
	reg, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if reg.UsuarioID != actor.UserID && !uc.puede(ctx, actor, rbac.AccReadAll) {
		return nil, domain.ErrForbidden
	}
	return uc.detalle(ctx, reg)
}

func (uc *CorredorUseCase) detalle(ctx context.Context, reg *entity.RegistroCorredor) (*dto.RegistroDetalleResponse, error) {
	docs, err := uc.repo.ListDocumentos(ctx, reg.ID)
	if err != nil {
		return nil, err
	}
	hist, err := uc.repo.ListHistorial(ctx, reg.ID)
	if err != nil {
		return nil, err
	}
	out := &dto.RegistroDetalleResponse{
		Registro:   toRegistroResponse(reg),
		Documentos: make([]dto.DocumentoCorredorResponse, 0, len(docs)),
		Historial:  make([]dto.HistorialCorredorResponse, 0, len(hist)),
		Faltantes:  expansion.Faltantes(reg.TipoPersona, tiposPresentes(docs)),
	}
	if out.Faltantes == nil {
		out.Faltantes = []string{}
	}
	for _, d := range docs {
		out.Documentos = append(out.Documentos, toDocumentoResponse(d))
	}
	for _, h := range hist {
		out.Historial = append(out.Historial, dto.HistorialCorredorResponse{
			ID:            h.ID,
			Accion:        h.Accion,
			Comentario:    h.Comentario,
			RealizadoPor:  h.RealizadoPor,
			UsuarioNombre: h.UsuarioNombre,
			CreatedAt:     h.CreatedAt,
		})
	}
	return out, nil
}

var extensionPorTipo = map[string]string{
	"image/jpeg":      "jpg",
	"image/png":       "png",
	"image/webp":      "webp",
	"application/pdf": "pdf",
}

// UploadDocumento sube el archivo a corredores/{registro}/{tipo}_{ts}.{ext} y reemplaza
// el documento previo del mismo tipo.
func (uc *CorredorUseCase) UploadDocumento(ctx context.Context, actor Actor, registroID string, in UploadDocumentoInput) (*dto.DocumentoCorredorResponse, error) {
	reg, err := uc.propio(ctx, actor, registroID)
	if err != nil {
		return nil, err
	}
	if !expansion.Editable(reg.Estado) {
		return nil, fmt.Errorf("%w: no se pueden subir documentos en estado %s", domain.ErrTransicionInvalida, reg.Estado)
	}
	if !expansion.EsTipoDocumento(in.TipoDocumento) {
		return nil, fmt.Errorf("%w: tipo de documento %q", domain.ErrInvalidInput, in.TipoDocumento)
	}
	if err := expansion.ValidarArchivo(in.ContentType, in.Size); err != nil {
		return nil, err
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(in.FileName)), ".")
	if ext == "" {
		ext = extensionPorTipo[in.ContentType]
	}
	now := uc.now()
	key := fmt.Sprintf("corredores/%s/%s_%d.%s", reg.ID, in.TipoDocumento, now.UnixMilli(), ext)
	if err := uc.storage.Upload(ctx, uc.bucket, key, in.Body, in.Size, in.ContentType); err != nil {
		return nil, fmt.Errorf("subir documento: %w", err)
	}

	previo, err := uc.repo.GetDocumento(ctx, reg.ID, in.TipoDocumento)
	if err != nil {
		uc.removerObjeto(ctx, key)
		return nil, err
	}
	url := uc.storage.PublicURL(uc.bucket, key)
	nombre, ct, size := in.FileName, in.ContentType, in.Size
	doc := &entity.DocumentoCorredor{
		ID:             uuid.New().String(),
		RegistroID:     reg.ID,
		TipoDocumento:  in.TipoDocumento,
		StoragePath:    key,
		PublicURL:      &url,
		NombreOriginal: &nombre,
		ContentType:    &ct,
		SizeBytes:      &size,
		CreatedAt:      now,
	}
	if err := uc.repo.SaveDocumento(ctx, doc); err != nil {
		uc.removerObjeto(ctx, key)
		return nil, err
	}
	if previo != nil && previo.StoragePath != key {
		uc.removerObjeto(ctx, previo.StoragePath)
	}
	resp := toDocumentoResponse(doc)
	return &resp, nil
}

func (uc *CorredorUseCase) removerObjeto(ctx context.Context, key string) {
	if err := uc.storage.Remove(ctx, uc.bucket, key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("expansion: no se pudo eliminar el archivo")
	}
}

// Enviar manda el registro a revisión (borrador u observado) con todos los documentos.
func (uc *CorredorUseCase) Enviar(ctx context.Context, actor Actor, id string) (*dto.RegistroCorredorResponse, error) {
	reg, err := uc.propio(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	docs, err := uc.repo.ListDocumentos(ctx, reg.ID)
	if err != nil {
		return nil, err
	}
	accion, comentario, err := expansion.Enviar(reg, tiposPresentes(docs), uc.now())
	if err != nil {
		return nil, err
	}
	return uc.guardarTransicion(ctx, reg, accion, comentario, actor.UserID)
}

// TomarRevision enviado → en_revision.
func (uc *CorredorUseCase) TomarRevision(ctx context.Context, actor Actor, id string) (*dto.RegistroCorredorResponse, error) {
	reg, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := expansion.TomarRevision(reg); err != nil {
		return nil, err
	}
	return uc.guardarTransicion(ctx, reg, entity.AccionEnRevision, "Registro tomado para revisión", actor.UserID)
}

// Aprobar registro en revisión.
func (uc *CorredorUseCase) Aprobar(ctx context.Context, actor Actor, id string) (*dto.RegistroCorredorResponse, error) {
	reg, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := expansion.Aprobar(reg, actor.UserID, uc.now()); err != nil {
		return nil, err
	}
	return uc.guardarTransicion(ctx, reg, entity.AccionAprobado, "Registro aprobado", actor.UserID)
}

// Rechazar con motivo obligatorio.
func (uc *CorredorUseCase) Rechazar(ctx context.Context, actor Actor, id, motivo string) (*dto.RegistroCorredorResponse, error) {
	reg, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := expansion.Rechazar(reg, motivo); err != nil {
		return nil, err
	}
	return uc.guardarTransicion(ctx, reg, entity.AccionRechazado, *reg.Observaciones, actor.UserID)
}

// Observar devuelve el registro al corredor con observaciones.
func (uc *CorredorUseCase) Observar(ctx context.Context, actor Actor, id, observaciones string) (*dto.RegistroCorredorResponse, error) {
	reg, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := expansion.Observar(reg, observaciones); err != nil {
		return nil, err
	}
	return uc.guardarTransicion(ctx, reg, entity.AccionObservado, *reg.Observaciones, actor.UserID)
}

func (uc *CorredorUseCase) guardarTransicion(ctx context.Context, reg *entity.RegistroCorredor, accion, comentario, usuarioID string) (*dto.RegistroCorredorResponse, error) {
	reg.UpdatedAt = uc.now()
	err := uc.tx.Run(ctx, func(r ports.TxRepos) error {
		if err := r.Corredores.Update(ctx, reg); err != nil {
			return err
		}
		return r.Corredores.AddHistorial(ctx, uc.historial(reg.ID, accion, comentario, usuarioID))
	})
	if err != nil {
		return nil, err
	}
	resp := toRegistroResponse(reg)
	return &resp, nil
}

// List bandeja de revisión.
func (uc *CorredorUseCase) List(ctx context.Context, f entity.RegistroFilter) ([]dto.RegistroCorredorResponse, error) {
	f.Busqueda = strings.TrimSpace(f.Busqueda)
	list, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RegistroCorredorResponse, 0, len(list))
	for _, r := range list {
		out = append(out, toRegistroResponse(r))
	}
	return out, nil
}

// Stats conteo de la bandeja por estado.
func (uc *CorredorUseCase) Stats(ctx context.Context) (*dto.InboxStatsResponse, error) {
	s, err := uc.repo.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.InboxStatsResponse{
		Total:      s.Total,
		Borradores: s.Borradores,
		Enviados:   s.Enviados,
		EnRevision: s.EnRevision,
		Observados: s.Observados,
		Aprobados:  s.Aprobados,
		Rechazados: s.Rechazados,
	}, nil
}

func (uc *CorredorUseCase) get(ctx context.Context, id string) (*entity.RegistroCorredor, error) {
	reg, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if reg == nil {
		return nil, fmt.Errorf("%w: registro no encontrado", domain.ErrNotFound)
	}
	return reg, nil
}

// propio registro del actor; otro usuario ⇒ ErrForbidden.
func (uc *CorredorUseCase) propio(ctx context.Context, actor Actor, id string) (*entity.RegistroCorredor, error) {
	reg, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if reg.UsuarioID != actor.UserID {
		return nil, fmt.Errorf("%w: el registro pertenece a otro usuario", domain.ErrForbidden)
	}
	return reg, nil
}

func (uc *CorredorUseCase) puede(ctx context.Context, actor Actor, accion string) bool {
	return uc.perms != nil && uc.perms.HasPermission(ctx, actor.UserID, actor.Rol, rbac.P(rbac.ModExpansion, accion))
}

func (uc *CorredorUseCase) historial(registroID, accion, comentario, usuarioID string) *entity.HistorialCorredor {
	h := &entity.HistorialCorredor{
		ID:         uuid.New().String(),
		RegistroID: registroID,
		Accion:     accion,
		CreatedAt:  uc.now(),
	}
	if comentario != "" {
		h.Comentario = &comentario
	}
	if usuarioID != "" {
		h.RealizadoPor = &usuarioID
	}
	return h
}

func aplicarDatos(reg *entity.RegistroCorredor, in dto.RegistroCorredorRequest) error {
	reg.TipoPersona = strings.TrimSpace(in.TipoPersona)
	reg.Email = strings.ToLower(strings.TrimSpace(in.Email))
	reg.Telefono = strings.TrimSpace(in.Telefono)
	reg.DireccionDeclarada = nilSiVacio(in.DireccionDeclarada)
	reg.DNI = nilSiVacio(in.DNI)
	reg.Nombres = nilSiVacio(in.Nombres)
	reg.ApellidoPaterno = nilSiVacio(in.ApellidoPaterno)
	reg.ApellidoMaterno = nilSiVacio(in.ApellidoMaterno)
	reg.RazonSocial = nilSiVacio(in.RazonSocial)
	reg.RUC = nilSiVacio(in.RUC)
	reg.RepresentanteLegal = nilSiVacio(in.RepresentanteLegal)
	reg.DNIRepresentante = nilSiVacio(in.DNIRepresentante)
	reg.EsPEP = in.EsPEP
	reg.FechaNacimiento = nil
	if f := nilSiVacio(in.FechaNacimiento); f != nil {
		t, err := parseFecha(*f)
		if err != nil {
			return fmt.Errorf("%w: fecha_nacimiento debe tener formato YYYY-MM-DD", domain.ErrInvalidInput)
		}
		reg.FechaNacimiento = &t
	}
	return nil
}

func tiposPresentes(docs []*entity.DocumentoCorredor) []string {
	out := make([]string, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.TipoDocumento)
	}
	return out
}

func toRegistroResponse(r *entity.RegistroCorredor) dto.RegistroCorredorResponse {
	return dto.RegistroCorredorResponse{
		ID:                 r.ID,
		UsuarioID:          r.UsuarioID,
		TipoPersona:        r.TipoPersona,
		NombreCompleto:     r.NombreCompleto(),
		Email:              r.Email,
		Telefono:           r.Telefono,
		DireccionDeclarada: r.DireccionDeclarada,
		DNI:                r.DNI,
		Nombres:            r.Nombres,
		ApellidoPaterno:    r.ApellidoPaterno,
		ApellidoMaterno:    r.ApellidoMaterno,
		FechaNacimiento:    formatFechaPtr(r.FechaNacimiento),
		RazonSocial:        r.RazonSocial,
		RUC:                r.RUC,
		RepresentanteLegal: r.RepresentanteLegal,
		DNIRepresentante:   r.DNIRepresentante,
		EsPEP:              r.EsPEP,
		Estado:             r.Estado,
		Observaciones:      r.Observaciones,
		EnviadoAt:          r.EnviadoAt,
		AprobadoPor:        r.AprobadoPor,
		AprobadoAt:         r.AprobadoAt,
		DocumentosCount:    r.DocumentosCount,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}

func toDocumentoResponse(d *entity.DocumentoCorredor) dto.DocumentoCorredorResponse {
	return dto.DocumentoCorredorResponse{
		ID:             d.ID,
		TipoDocumento:  d.TipoDocumento,
		StoragePath:    d.StoragePath,
		PublicURL:      d.PublicURL,
		NombreOriginal: d.NombreOriginal,
		ContentType:    d.ContentType,
		SizeBytes:      d.SizeBytes,
		CreatedAt:      d.CreatedAt,
	}
}
