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

var _ repository.RepulseRepository = (*RepulseRepo)(nil)

// RepulseRepo implementación del puerto RepulseRepository sobre PostgreSQL.
type RepulseRepo struct {
	q Querier
}

// NewRepulseRepository construye el adaptador.
func NewRepulseRepository(q Querier) *RepulseRepo {
	return &RepulseRepo{q: q}
}

// ── Templates ───────────────────────────────────────────────────────────────

const templateSelect = `
	SELECT id, proyecto_id, nombre, mensaje, activo, created_by, created_at, updated_at
	FROM repulse_templates`

func scanTemplate(row pgx.Row) (*entity.RepulseTemplate, error) {
	var t entity.RepulseTemplate
	err := row.Scan(&t.ID, &t.ProyectoID, &t.Nombre, &t.Mensaje, &t.Activo, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt)
	return &t, err
}

// ListTemplates plantillas activas, por nombre.
func (r *RepulseRepo) ListTemplates(ctx context.Context, proyectoID string) ([]*entity.RepulseTemplate, error) {
	rows, err := r.q.Query(ctx, templateSelect+` WHERE proyecto_id = $1 AND activo ORDER BY nombre`, proyectoID)
	if err != nil {
		return nil, fmt.Errorf("list repulse templates: %w", err)
	}
	defer rows.Close()
	var list []*entity.RepulseTemplate
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan repulse template: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// GetTemplate obtiene una plantilla, activa o no.
func (r *RepulseRepo) GetTemplate(ctx context.Context, id string) (*entity.RepulseTemplate, error) {
	t, err := scanTemplate(r.q.QueryRow(ctx, templateSelect+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get repulse template: %w", err)
	}
	return t, nil
}

// CreateTemplate inserta una plantilla.
func (r *RepulseRepo) CreateTemplate(ctx context.Context, t *entity.RepulseTemplate) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO repulse_templates (id, proyecto_id, nombre, mensaje, activo, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		t.ID, t.ProyectoID, t.Nombre, t.Mensaje, t.Activo, t.CreatedBy, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert repulse template: %w", err)
	}
	return nil
}

// UpdateTemplate persiste nombre, mensaje y activo.
func (r *RepulseRepo) UpdateTemplate(ctx context.Context, t *entity.RepulseTemplate) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE repulse_templates SET nombre = $2, mensaje = $3, activo = $4, updated_at = $5 WHERE id = $1`,
		t.ID, t.Nombre, t.Mensaje, t.Activo, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update repulse template: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ── Leads de la campaña ─────────────────────────────────────────────────────

const repulseLeadSelect = `
	SELECT rl.id, rl.lead_id, rl.proyecto_id, rl.origen, rl.estado, rl.conteo_repulses, rl.ultimo_repulse_at,
	       rl.template_usado_id, rl.mensaje_personalizado, rl.agregado_por, rl.created_at, rl.updated_at,
	       l.nombre, l.telefono, l.horario_visita, l.estado, l.created_at
	FROM repulse_leads rl
	JOIN leads l ON l.id = rl.lead_id`

func repulseLeadDest(rl *entity.RepulseLead) []any {
	return []any{&rl.ID, &rl.LeadID, &rl.ProyectoID, &rl.Origen, &rl.Estado, &rl.ConteoRepulses, &rl.UltimoRepulseAt,
		&rl.TemplateUsadoID, &rl.MensajePersonalizado, &rl.AgregadoPor, &rl.CreatedAt, &rl.UpdatedAt,
		&rl.LeadNombre, &rl.LeadTelefono, &rl.LeadHorarioVisita, &rl.LeadEstado, &rl.LeadCreatedAt}
}

// ListLeads entradas de la campaña, las más recientes primero.
func (r *RepulseRepo) ListLeads(ctx context.Context, f entity.RepulseLeadFilter) ([]*entity.RepulseLead, error) {
	var w filtros
	if f.ProyectoID != "" {
		w.add("rl.proyecto_id = ?", f.ProyectoID)
	}
	if f.Estado != "" {
		w.add("rl.estado = ?", f.Estado)
	}
	if len(f.IDs) > 0 {
		w.add("rl.id::text = ANY(?)", f.IDs)
	}
	rows, err := r.q.Query(ctx, repulseLeadSelect+w.where()+` ORDER BY rl.created_at DESC`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list repulse leads: %w", err)
	}
	defer rows.Close()
	var list []*entity.RepulseLead
	for rows.Next() {
		var rl entity.RepulseLead
		if err := rows.Scan(repulseLeadDest(&rl)...); err != nil {
			return nil, fmt.Errorf("scan repulse lead: %w", err)
		}
		list = append(list, &rl)
	}
	return list, rows.Err()
}

// GetLead obtiene una entrada de la campaña.
func (r *RepulseRepo) GetLead(ctx context.Context, id string) (*entity.RepulseLead, error) {
	var rl entity.RepulseLead
	if err := r.q.QueryRow(ctx, repulseLeadSelect+` WHERE rl.id = $1`, id).Scan(repulseLeadDest(&rl)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get repulse lead: %w", err)
	}
	return &rl, nil
}

// CreateLead inserta una entrada; (lead_id, proyecto_id) es único.
func (r *RepulseRepo) CreateLead(ctx context.Context, rl *entity.RepulseLead) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO repulse_leads (id, lead_id, proyecto_id, origen, estado, agregado_por, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		rl.ID, rl.LeadID, rl.ProyectoID, rl.Origen, rl.Estado, rl.AgregadoPor, rl.CreatedAt, rl.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert repulse lead: %w", err)
	}
	return nil
}

// UpdateEstado cambia el estado de una entrada.
func (r *RepulseRepo) UpdateEstado(ctx context.Context, id, estado string, ahora time.Time) error {
	tag, err := r.q.Exec(ctx, `UPDATE repulse_leads SET estado = $2, updated_at = $3 WHERE id = $1`, id, estado, ahora)
	if err != nil {
		return fmt.Errorf("update repulse lead: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteLead quita el lead de la campaña; su historial de envíos se borra en cascada.
func (r *RepulseRepo) DeleteLead(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM repulse_leads WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete repulse lead: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Elegibilidad exclusión y compra registrada del lead base.
func (r *RepulseRepo) Elegibilidad(ctx context.Context, leadID string) (entity.RepulseElegibilidad, error) {
	e := entity.RepulseElegibilidad{Existe: true}
	err := r.q.QueryRow(ctx, `
		SELECT l.excluido_repulse,
		       EXISTS (SELECT 1 FROM locales_leads ll WHERE ll.lead_id = l.id)
		FROM leads l WHERE l.id = $1`, leadID).Scan(&e.Excluido, &e.TieneCompra)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.RepulseElegibilidad{}, nil
		}
		return e, fmt.Errorf("elegibilidad repulse: %w", err)
	}
	return e, nil
}

// SetExcluido actualiza el lead y sus entradas en un solo batch.
func (r *RepulseRepo) SetExcluido(ctx context.Context, leadID string, excluido bool, ahora time.Time) error {
	b := &pgx.Batch{}
	b.Queue(`UPDATE leads SET excluido_repulse = $2, updated_at = $3 WHERE id = $1`, leadID, excluido, ahora)
	if excluido {
		b.Queue(`UPDATE repulse_leads SET estado = 'excluido', updated_at = $2 WHERE lead_id = $1`, leadID, ahora)
	} else {
		b.Queue(`UPDATE repulse_leads SET estado = 'pendiente', updated_at = $2 WHERE lead_id = $1 AND estado = 'excluido'`, leadID, ahora)
	}
	br := r.q.SendBatch(ctx, b)
	tag, err := br.Exec()
	if err != nil {
		_ = br.Close()
		return fmt.Errorf("excluir lead: %w", err)
	}
	if tag.RowsAffected() == 0 {
		_ = br.Close()
		return domain.ErrNotFound
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("excluir repulse leads: %w", err)
	}
	return nil
}

// Candidatos leads antiguos del proyecto que aún no están en la campaña.
func (r *RepulseRepo) Candidatos(ctx context.Context, proyectoID string, corte time.Time) ([]*entity.Lead, error) {
	query := leadSelect + `
		WHERE l.proyecto_id = $1 AND NOT l.excluido_repulse AND l.created_at <= $2
		  AND NOT EXISTS (SELECT 1 FROM locales_leads ll WHERE ll.lead_id = l.id)
		  AND NOT EXISTS (SELECT 1 FROM repulse_leads rl WHERE rl.lead_id = l.id AND rl.proyecto_id = l.proyecto_id)
		ORDER BY l.created_at`
	rows, err := r.q.Query(ctx, query, proyectoID, corte)
	if err != nil {
		return nil, fmt.Errorf("candidatos repulse: %w", err)
	}
	defer rows.Close()
	var list []*entity.Lead
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("scan candidato: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

// Stats conteos por estado.
func (r *RepulseRepo) Stats(ctx context.Context, proyectoID string) (*entity.RepulseStats, error) {
	var s entity.RepulseStats
	err := r.q.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE estado = 'pendiente'),
		       COUNT(*) FILTER (WHERE estado = 'enviado'),
		       COUNT(*) FILTER (WHERE estado = 'respondio'),
		       COUNT(*) FILTER (WHERE estado = 'sin_respuesta'),
		       COUNT(*) FILTER (WHERE estado = 'excluido')
		FROM repulse_leads WHERE proyecto_id = $1`, proyectoID).
		Scan(&s.Total, &s.Pendientes, &s.Enviados, &s.Respondieron, &s.SinRespuesta, &s.Excluidos)
	if err != nil {
		return nil, fmt.Errorf("repulse stats: %w", err)
	}
	return &s, nil
}

// LeadsCampaniaDesde cuenta leads de campaña creados desde t.
func (r *RepulseRepo) LeadsCampaniaDesde(ctx context.Context, t time.Time) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM leads WHERE created_at >= $1 AND estado <> 'lead_manual'`, t).Scan(&n); err != nil {
		return 0, fmt.Errorf("cuota whatsapp: %w", err)
	}
	return n, nil
}

// ── Envíos ──────────────────────────────────────────────────────────────────

const envioSelect = `
	SELECT h.id, h.repulse_lead_id, h.lead_id, h.proyecto_id, h.template_id, h.batch_id, h.mensaje_enviado,
	       h.enviado_por, h.envio_estado, h.envio_error, h.whatsapp_message_id, h.enviado_at,
	       h.respuesta_recibida, h.respuesta_at, h.created_at,
	       l.nombre, l.telefono, l.horario_visita
	FROM repulse_historial h
	JOIN leads l ON l.id = h.lead_id`

func envioDest(e *entity.RepulseEnvio) []any {
	return []any{&e.ID, &e.RepulseLeadID, &e.LeadID, &e.ProyectoID, &e.TemplateID, &e.BatchID, &e.MensajeEnviado,
		&e.EnviadoPor, &e.EnvioEstado, &e.EnvioError, &e.WhatsappMessageID, &e.EnviadoAt,
		&e.RespuestaRecibida, &e.RespuestaAt, &e.CreatedAt,
		&e.LeadNombre, &e.LeadTelefono, &e.LeadHorarioVisita}
}

// CreateEnvios inserta los envíos de un lote.
func (r *RepulseRepo) CreateEnvios(ctx context.Context, es []*entity.RepulseEnvio) error {
	if len(es) == 0 {
		return nil
	}
	b := &pgx.Batch{}
	for _, e := range es {
		b.Queue(`
			INSERT INTO repulse_historial (id, repulse_lead_id, lead_id, proyecto_id, template_id, batch_id,
			                               mensaje_enviado, enviado_por, envio_estado, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			e.ID, e.RepulseLeadID, e.LeadID, e.ProyectoID, e.TemplateID, e.BatchID,
			e.MensajeEnviado, e.EnviadoPor, e.EnvioEstado, e.CreatedAt)
	}
	if err := r.q.SendBatch(ctx, b).Close(); err != nil {
		return fmt.Errorf("insert repulse historial: %w", err)
	}
	return nil
}

// GetEnvio obtiene un envío.
func (r *RepulseRepo) GetEnvio(ctx context.Context, id string) (*entity.RepulseEnvio, error) {
	var e entity.RepulseEnvio
	if err := r.q.QueryRow(ctx, envioSelect+` WHERE h.id = $1`, id).Scan(envioDest(&e)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get repulse envio: %w", err)
	}
	return &e, nil
}

// UpdateEnvio persiste estado de entrega y respuesta.
func (r *RepulseRepo) UpdateEnvio(ctx context.Context, e *entity.RepulseEnvio) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE repulse_historial SET envio_estado = $2, envio_error = $3, whatsapp_message_id = $4, enviado_at = $5,
		       respuesta_recibida = $6, respuesta_at = $7
		WHERE id = $1`,
		e.ID, e.EnvioEstado, e.EnvioError, e.WhatsappMessageID, e.EnviadoAt, e.RespuestaRecibida, e.RespuestaAt)
	if err != nil {
		return fmt.Errorf("update repulse envio: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListEnvios historial de un lead, el más reciente primero.
func (r *RepulseRepo) ListEnvios(ctx context.Context, leadID string) ([]*entity.RepulseEnvio, error) {
	rows, err := r.q.Query(ctx, envioSelect+` WHERE h.lead_id = $1 ORDER BY h.created_at DESC`, leadID)
	if err != nil {
		return nil, fmt.Errorf("list repulse envios: %w", err)
	}
	defer rows.Close()
	var list []*entity.RepulseEnvio
	for rows.Next() {
		var e entity.RepulseEnvio
		if err := rows.Scan(envioDest(&e)...); err != nil {
			return nil, fmt.Errorf("scan repulse envio: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// EstadoBatch conteos por estado de entrega del lote.
func (r *RepulseRepo) EstadoBatch(ctx context.Context, batchID string) (*entity.RepulseBatchEstado, error) {
	var s entity.RepulseBatchEstado
	err := r.q.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE envio_estado = 'enviado'),
		       COUNT(*) FILTER (WHERE envio_estado = 'error'),
		       COUNT(*) FILTER (WHERE envio_estado = 'pendiente'),
		       COUNT(*) FILTER (WHERE envio_estado = 'enviando')
		FROM repulse_historial WHERE batch_id = $1`, batchID).
		Scan(&s.Total, &s.Enviados, &s.Errores, &s.Pendientes, &s.Enviando)
	if err != nil {
		return nil, fmt.Errorf("estado batch: %w", err)
	}
	return &s, nil
}

// RegistrarEnvio incrementa el contador en la misma sentencia para no perder envíos concurrentes.
func (r *RepulseRepo) RegistrarEnvio(ctx context.Context, repulseLeadID string, templateID *string, ahora time.Time) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE repulse_leads SET estado = 'enviado', conteo_repulses = conteo_repulses + 1,
		       ultimo_repulse_at = $2, template_usado_id = $3, updated_at = $2
		WHERE id = $1`, repulseLeadID, ahora, templateID)
	if err != nil {
		return fmt.Errorf("registrar envio repulse: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
