package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ecoplaza/ecoplaza-api/internal/domain"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/entity"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/repository"
)

var _ repository.CorredorRepository = (*CorredorRepo)(nil)

// CorredorRepo registro de corredores, documentos e historial.
type CorredorRepo struct {
	q Querier
}

// NewCorredorRepository construye el adaptador.
func NewCorredorRepository(q Querier) *CorredorRepo {
	return &CorredorRepo{q: q}
}

const registroSelect = `
	SELECT r.id, r.usuario_id, r.tipo_persona, r.email, r.telefono, r.direccion_declarada, r.dni, r.nombres,
	       r.apellido_paterno, r.apellido_materno, r.fecha_nacimiento, r.razon_social, r.ruc,
	       r.representante_legal, r.dni_representante, r.es_pep, r.estado, r.observaciones, r.enviado_at,
	       r.aprobado_por, r.aprobado_at, r.created_at, r.updated_at,
	       (SELECT COUNT(*) FROM corredores_documentos d WHERE d.registro_id = r.id)
	FROM corredores_registro r`

func scanRegistro(row pgx.Row) (*entity.RegistroCorredor, error) {
	var r entity.RegistroCorredor
	err := row.Scan(&r.ID, &r.UsuarioID, &r.TipoPersona, &r.Email, &r.Telefono, &r.DireccionDeclarada, &r.DNI,
		&r.Nombres, &r.ApellidoPaterno, &r.ApellidoMaterno, &r.FechaNacimiento, &r.RazonSocial, &r.RUC,
		&r.RepresentanteLegal, &r.DNIRepresentante, &r.EsPEP, &r.Estado, &r.Observaciones, &r.EnviadoAt,
		&r.AprobadoPor, &r.AprobadoAt, &r.CreatedAt, &r.UpdatedAt, &r.DocumentosCount)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// Create persiste un registro. Uno por usuario (ErrConflict).
func (r *CorredorRepo) Create(ctx context.Context, reg *entity.RegistroCorredor) error {
	query := `
		INSERT INTO corredores_registro (id, usuario_id, tipo_persona, email, telefono, direccion_declarada, dni,
		       nombres, apellido_paterno, apellido_materno, fecha_nacimiento, razon_social, ruc,
		       representante_legal, dni_representante, es_pep, estado, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.q.Exec(ctx, query,
		reg.ID, reg.UsuarioID, reg.TipoPersona, reg.Email, reg.Telefono, reg.DireccionDeclarada, reg.DNI,
		reg.Nombres, reg.ApellidoPaterno, reg.ApellidoMaterno, reg.FechaNacimiento, reg.RazonSocial, reg.RUC,
		reg.RepresentanteLegal, reg.DNIRepresentante, reg.EsPEP, reg.Estado, reg.CreatedAt, reg.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: el usuario ya tiene un registro", domain.ErrConflict)
		}
		return fmt.Errorf("insert registro corredor: %w", err)
	}
	return nil
}

// GetByID obtiene un registro.
func (r *CorredorRepo) GetByID(ctx context.Context, id string) (*entity.RegistroCorredor, error) {
	return r.getOne(ctx, registroSelect+` WHERE r.id = $1`, id)
}

// GetByUsuario registro del corredor.
func (r *CorredorRepo) GetByUsuario(ctx context.Context, usuarioID string) (*entity.RegistroCorredor, error) {
	return r.getOne(ctx, registroSelect+` WHERE r.usuario_id = $1`, usuarioID)
}

func (r *CorredorRepo) getOne(ctx context.Context, query, arg string) (*entity.RegistroCorredor, error) {
	reg, err := scanRegistro(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get registro corredor: %w", err)
	}
	return reg, nil
}

// Update persiste datos y estado del registro.
func (r *CorredorRepo) Update(ctx context.Context, reg *entity.RegistroCorredor) error {
	query := `
		UPDATE corredores_registro SET
			email = $2, telefono = $3, direccion_declarada = $4, dni = $5, nombres = $6, apellido_paterno = $7,
			apellido_materno = $8, fecha_nacimiento = $9, razon_social = $10, ruc = $11, representante_legal = $12,
			dni_representante = $13, es_pep = $14, estado = $15, observaciones = $16, enviado_at = $17,
			aprobado_por = $18, aprobado_at = $19, updated_at = $20
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		reg.ID, reg.Email, reg.Telefono, reg.DireccionDeclarada, reg.DNI, reg.Nombres, reg.ApellidoPaterno,
		reg.ApellidoMaterno, reg.FechaNacimiento, reg.RazonSocial, reg.RUC, reg.RepresentanteLegal,
		reg.DNIRepresentante, reg.EsPEP, reg.Estado, reg.Observaciones, reg.EnviadoAt,
		reg.AprobadoPor, reg.AprobadoAt, reg.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update registro corredor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List bandeja de registros; los enviados más antiguos primero.
func (r *CorredorRepo) List(ctx context.Context, f entity.RegistroFilter) ([]*entity.RegistroCorredor, error) {
	var w filtros
	if f.Estado != "" {
		w.add("r.estado = ?", f.Estado)
	}
	if f.TipoPersona != "" {
		w.add("r.tipo_persona = ?", f.TipoPersona)
	}
	if f.Busqueda != "" {
		w.add(`(r.nombres ILIKE ? OR r.apellido_paterno ILIKE ? OR r.razon_social ILIKE ?
			OR r.email ILIKE ? OR r.dni ILIKE ? OR r.ruc ILIKE ?)`, "%"+f.Busqueda+"%")
	}
	rows, err := r.q.Query(ctx, registroSelect+w.where()+` ORDER BY r.enviado_at NULLS LAST, r.created_at DESC`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list registros corredor: %w", err)
	}
	defer rows.Close()
	var list []*entity.RegistroCorredor
	for rows.Next() {
		reg, err := scanRegistro(rows)
		if err != nil {
			return nil, fmt.Errorf("scan registro corredor: %w", err)
		}
		list = append(list, reg)
	}
	return list, rows.Err()
}

// Stats conteo por estado.
func (r *CorredorRepo) Stats(ctx context.Context) (*entity.InboxStats, error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE estado = 'borrador'),
		       COUNT(*) FILTER (WHERE estado = 'enviado'),
		       COUNT(*) FILTER (WHERE estado = 'en_revision'),
		       COUNT(*) FILTER (WHERE estado = 'observado'),
		       COUNT(*) FILTER (WHERE estado = 'aprobado'),
		       COUNT(*) FILTER (WHERE estado = 'rechazado')
		FROM corredores_registro`
	var s entity.InboxStats
	err := r.q.QueryRow(ctx, query).Scan(&s.Total, &s.Borradores, &s.Enviados, &s.EnRevision, &s.Observados,
		&s.Aprobados, &s.Rechazados)
	if err != nil {
		return nil, fmt.Errorf("stats corredores: %w", err)
	}
	return &s, nil
}

const documentoCols = `id, registro_id, tipo_documento, storage_path, public_url, nombre_original, content_type, size_bytes, created_at`

func scanDocumento(row pgx.Row) (*entity.DocumentoCorredor, error) {
	var d entity.DocumentoCorredor
	err := row.Scan(&d.ID, &d.RegistroID, &d.TipoDocumento, &d.StoragePath, &d.PublicURL, &d.NombreOriginal,
		&d.ContentType, &d.SizeBytes, &d.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// GetDocumento documento vigente de un tipo.
func (r *CorredorRepo) GetDocumento(ctx context.Context, registroID, tipo string) (*entity.DocumentoCorredor, error) {
	d, err := scanDocumento(r.q.QueryRow(ctx,
		`SELECT `+documentoCols+` FROM corredores_documentos WHERE registro_id = $1 AND tipo_documento = $2`, registroID, tipo))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get documento: %w", err)
	}
	return d, nil
}

// SaveDocumento inserta o reemplaza el documento del tipo.
func (r *CorredorRepo) SaveDocumento(ctx context.Context, d *entity.DocumentoCorredor) error {
	query := `
		INSERT INTO corredores_documentos (` + documentoCols + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (registro_id, tipo_documento) DO UPDATE SET
			storage_path = EXCLUDED.storage_path, public_url = EXCLUDED.public_url,
			nombre_original = EXCLUDED.nombre_original, content_type = EXCLUDED.content_type,
			size_bytes = EXCLUDED.size_bytes, created_at = EXCLUDED.created_at`
	_, err := r.q.Exec(ctx, query, d.ID, d.RegistroID, d.TipoDocumento, d.StoragePath, d.PublicURL,
		d.NombreOriginal, d.ContentType, d.SizeBytes, d.CreatedAt)
	if err != nil {
		return fmt.Errorf("save documento: %w", err)
	}
	return nil
}

// ListDocumentos documentos del registro.
func (r *CorredorRepo) ListDocumentos(ctx context.Context, registroID string) ([]*entity.DocumentoCorredor, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+documentoCols+` FROM corredores_documentos WHERE registro_id = $1 ORDER BY tipo_documento`, registroID)
	if err != nil {
		return nil, fmt.Errorf("list documentos: %w", err)
	}
	defer rows.Close()
	var list []*entity.DocumentoCorredor
	for rows.Next() {
		d, err := scanDocumento(rows)
		if err != nil {
			return nil, fmt.Errorf("scan documento: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// AddHistorial registra una acción del flujo.
func (r *CorredorRepo) AddHistorial(ctx context.Context, h *entity.HistorialCorredor) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO corredores_historial (id, registro_id, accion, comentario, realizado_por, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`, h.ID, h.RegistroID, h.Accion, h.Comentario, h.RealizadoPor, h.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert historial corredor: %w", err)
	}
	return nil
}

// ListHistorial historial del registro, más reciente primero.
func (r *CorredorRepo) ListHistorial(ctx context.Context, registroID string) ([]*entity.HistorialCorredor, error) {
	rows, err := r.q.Query(ctx, `
		SELECT h.id, h.registro_id, h.accion, h.comentario, h.realizado_por, h.created_at, u.nombre
		FROM corredores_historial h
		LEFT JOIN usuarios u ON u.id = h.realizado_por
		WHERE h.registro_id = $1
		ORDER BY h.created_at DESC`, registroID)
	if err != nil {
		return nil, fmt.Errorf("list historial corredor: %w", err)
	}
	defer rows.Close()
	var list []*entity.HistorialCorredor
	for rows.Next() {
		var h entity.HistorialCorredor
		if err := rows.Scan(&h.ID, &h.RegistroID, &h.Accion, &h.Comentario, &h.RealizadoPor, &h.CreatedAt, &h.UsuarioNombre); err != nil {
			return nil, fmt.Errorf("scan historial corredor: %w", err)
		}
		list = append(list, &h)
	}
	return list, rows.Err()
}
