package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ecoplaza/ecoplaza-api/internal/domain"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/entity"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/repository"
)

var (
	_ repository.ReunionRepository    = (*ReunionRepo)(nil)
	_ repository.ActionItemRepository = (*ActionItemRepo)(nil)
)

// ReunionRepo implementación del puerto ReunionRepository sobre PostgreSQL.
type ReunionRepo struct {
	q Querier
}

// NewReunionRepository construye el adaptador.
func NewReunionRepository(q Querier) *ReunionRepo {
	return &ReunionRepo{q: q}
}

const reunionCols = `id, proyecto_id, created_by, titulo, fecha_reunion, duracion_segundos, participantes,
	media_storage_path, media_tipo, media_size_bytes, media_deleted_at, transcripcion_completa, resumen,
	puntos_clave, decisiones, preguntas_abiertas, estado, error_mensaje, created_at, updated_at, processed_at`

func scanReunion(row pgx.Row) (*entity.Reunion, error) {
	var r entity.Reunion
	err := row.Scan(&r.ID, &r.ProyectoID, &r.CreatedBy, &r.Titulo, &r.FechaReunion, &r.DuracionSegundos,
		&r.Participantes, &r.MediaStoragePath, &r.MediaTipo, &r.MediaSizeBytes, &r.MediaDeletedAt,
		&r.TranscripcionCompleta, &r.Resumen, &r.PuntosClave, &r.Decisiones, &r.PreguntasAbiertas,
		&r.Estado, &r.ErrorMensaje, &r.CreatedAt, &r.UpdatedAt, &r.ProcessedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func noNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// Create inserta una reunión en estado subiendo.
func (r *ReunionRepo) Create(ctx context.Context, re *entity.Reunion) error {
	query := `
		INSERT INTO reuniones (id, proyecto_id, created_by, titulo, fecha_reunion, participantes,
		                       media_storage_path, media_tipo, media_size_bytes, estado, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query, re.ID, re.ProyectoID, re.CreatedBy, re.Titulo, re.FechaReunion,
		noNil(re.Participantes), re.MediaStoragePath, re.MediaTipo, re.MediaSizeBytes, re.Estado,
		re.CreatedAt, re.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert reunion: %w", err)
	}
	return nil
}

// GetByID obtiene una reunión.
func (r *ReunionRepo) GetByID(ctx context.Context, id string) (*entity.Reunion, error) {
	re, err := scanReunion(r.q.QueryRow(ctx, `SELECT `+reunionCols+` FROM reuniones WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get reunion: %w", err)
	}
	return re, nil
}

// List reuniones más recientes primero y total sin paginar.
func (r *ReunionRepo) List(ctx context.Context, f entity.ReunionFilter) ([]*entity.Reunion, int, error) {
	var w filtros
	if f.ProyectoID != "" {
		w.add("proyecto_id = ?", f.ProyectoID)
	}
	if f.Estado != "" {
		w.add("estado = ?", f.Estado)
	}
	if f.CreatedBy != "" {
		w.add("created_by = ?", f.CreatedBy)
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM reuniones`+w.where(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count reuniones: %w", err)
	}

	query := `SELECT ` + reunionCols + ` FROM reuniones` + w.where() +
		` ORDER BY COALESCE(fecha_reunion, created_at) DESC LIMIT ` + w.next(f.Limit) + ` OFFSET ` + w.next(f.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list reuniones: %w", err)
	}
	defer rows.Close()
	var list []*entity.Reunion
	for rows.Next() {
		re, err := scanReunion(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan reunion: %w", err)
		}
		list = append(list, re)
	}
	return list, total, rows.Err()
}

// Update persiste estado, tamaño de media, error y resultado del procesamiento.
func (r *ReunionRepo) Update(ctx context.Context, re *entity.Reunion) error {
	query := `
		UPDATE reuniones SET
			titulo = $2, fecha_reunion = $3, duracion_segundos = $4, participantes = $5,
			transcripcion_completa = $6, resumen = $7, puntos_clave = $8, decisiones = $9,
			preguntas_abiertas = $10, estado = $11, error_mensaje = $12, updated_at = $13, processed_at = $14,
			media_size_bytes = $15
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, re.ID, re.Titulo, re.FechaReunion, re.DuracionSegundos,
		noNil(re.Participantes), re.TranscripcionCompleta, re.Resumen, noNil(re.PuntosClave),
		noNil(re.Decisiones), noNil(re.PreguntasAbiertas), re.Estado, re.ErrorMensaje, re.UpdatedAt, re.ProcessedAt,
		re.MediaSizeBytes)
	if err != nil {
		return fmt.Errorf("update reunion: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la reunión; los action items caen por cascada.
func (r *ReunionRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM reuniones WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete reunion: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListMediaVencida reuniones con media anterior a la fecha y aún no eliminada.
func (r *ReunionRepo) ListMediaVencida(ctx context.Context, antes time.Time) ([]*entity.Reunion, error) {
	query := `SELECT ` + reunionCols + ` FROM reuniones
		WHERE created_at < $1 AND media_storage_path IS NOT NULL AND media_deleted_at IS NULL
		ORDER BY created_at`
	rows, err := r.q.Query(ctx, query, antes)
	if err != nil {
		return nil, fmt.Errorf("list media vencida: %w", err)
	}
	defer rows.Close()
	var list []*entity.Reunion
	for rows.Next() {
		re, err := scanReunion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reunion: %w", err)
		}
		list = append(list, re)
	}
	return list, rows.Err()
}

// MarcarMediaEliminada limpia la ruta y registra la fecha de borrado.
func (r *ReunionRepo) MarcarMediaEliminada(ctx context.Context, id string, ahora time.Time) error {
	_, err := r.q.Exec(ctx, `
		UPDATE reuniones SET media_storage_path = NULL, media_deleted_at = $2, updated_at = $2
		WHERE id = $1`, id, ahora)
	if err != nil {
		return fmt.Errorf("marcar media eliminada: %w", err)
	}
	return nil
}

// ActionItemRepo implementación del puerto ActionItemRepository.
type ActionItemRepo struct {
	q Querier
}

// NewActionItemRepository construye el adaptador.
func NewActionItemRepository(q Querier) *ActionItemRepo {
	return &ActionItemRepo{q: q}
}

const actionItemSelect = `
	SELECT a.id, a.reunion_id, a.descripcion, a.asignado_nombre, a.asignado_usuario_id, a.deadline, a.prioridad,
	       a.contexto_quote, a.completado, a.completado_at, a.completado_por, a.created_at, r.titulo
	FROM reunion_action_items a
	JOIN reuniones r ON r.id = a.reunion_id`

func scanActionItem(row pgx.Row) (*entity.ActionItem, error) {
	var a entity.ActionItem
	err := row.Scan(&a.ID, &a.ReunionID, &a.Descripcion, &a.AsignadoNombre, &a.AsignadoUsuarioID, &a.Deadline,
		&a.Prioridad, &a.ContextoQuote, &a.Completado, &a.CompletadoAt, &a.CompletadoPor, &a.CreatedAt,
		&a.ReunionTitulo)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateBatch inserta los action items de una reunión.
func (r *ActionItemRepo) CreateBatch(ctx context.Context, items []*entity.ActionItem) error {
	if len(items) == 0 {
		return nil
	}
	b := &pgx.Batch{}
	for _, a := range items {
		b.Queue(`
			INSERT INTO reunion_action_items (id, reunion_id, descripcion, asignado_nombre, asignado_usuario_id,
			                                  deadline, prioridad, contexto_quote, completado, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			a.ID, a.ReunionID, a.Descripcion, a.AsignadoNombre, a.AsignadoUsuarioID, a.Deadline,
			a.Prioridad, a.ContextoQuote, a.Completado, a.CreatedAt)
	}
	if err := r.q.SendBatch(ctx, b).Close(); err != nil {
		return fmt.Errorf("insert action items: %w", err)
	}
	return nil
}

// DeleteByReunion borra los action items de la reunión.
func (r *ActionItemRepo) DeleteByReunion(ctx context.Context, reunionID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM reunion_action_items WHERE reunion_id = $1`, reunionID); err != nil {
		return fmt.Errorf("delete action items: %w", err)
	}
	return nil
}

// GetByID obtiene un action item.
func (r *ActionItemRepo) GetByID(ctx context.Context, id string) (*entity.ActionItem, error) {
	a, err := scanActionItem(r.q.QueryRow(ctx, actionItemSelect+` WHERE a.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get action item: %w", err)
	}
	return a, nil
}

// ListByReunion items de la reunión por prioridad.
func (r *ActionItemRepo) ListByReunion(ctx context.Context, reunionID string) ([]*entity.ActionItem, error) {
	return r.list(ctx, actionItemSelect+` WHERE a.reunion_id = $1
		ORDER BY CASE a.prioridad WHEN 'alta' THEN 0 WHEN 'media' THEN 1 ELSE 2 END, a.created_at`, reunionID)
}

// ListByUsuario items asignados al usuario; pendientes primero.
func (r *ActionItemRepo) ListByUsuario(ctx context.Context, usuarioID string, includeCompleted bool) ([]*entity.ActionItem, error) {
	query := actionItemSelect + ` WHERE a.asignado_usuario_id = $1`
	if !includeCompleted {
		query += ` AND a.completado = FALSE`
	}
	query += ` ORDER BY a.completado, a.deadline NULLS LAST, a.created_at DESC`
	return r.list(ctx, query, usuarioID)
}

func (r *ActionItemRepo) list(ctx context.Context, query string, args ...any) ([]*entity.ActionItem, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list action items: %w", err)
	}
	defer rows.Close()
	var list []*entity.ActionItem
	for rows.Next() {
		a, err := scanActionItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan action item: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// Update persiste los campos editables y el estado de completado.
func (r *ActionItemRepo) Update(ctx context.Context, a *entity.ActionItem) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE reunion_action_items SET
			descripcion = $2, asignado_nombre = $3, asignado_usuario_id = $4, deadline = $5,
			prioridad = $6, completado = $7, completado_at = $8, completado_por = $9
		WHERE id = $1`, a.ID, a.Descripcion, a.AsignadoNombre, a.AsignadoUsuarioID, a.Deadline,
		a.Prioridad, a.Completado, a.CompletadoAt, a.CompletadoPor)
	if err != nil {
		return fmt.Errorf("update action item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
