package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/ecoplaza/ecoplaza-api/internal/domain"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/entity"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/repository"
)

var _ repository.ControlPagoRepository = (*ControlPagoRepo)(nil)

// ControlPagoRepo ventas procesadas a control de pagos.
type ControlPagoRepo struct {
	q Querier
}

// NewControlPagoRepository construye el adaptador.
func NewControlPagoRepository(q Querier) *ControlPagoRepo {
	return &ControlPagoRepo{q: q}
}

const controlCols = `
	id, local_id, codigo_local, proyecto_id, proyecto_nombre, metraje, lead_id, lead_nombre, lead_telefono,
	monto_venta, monto_separacion, monto_inicial, inicial_restante, monto_restante, con_financiamiento,
	porcentaje_inicial, numero_cuotas, tea, fecha_primer_pago, estado, procesado_por, vendedor_id,
	created_at, updated_at`

func scanControl(row pgx.Row) (*entity.ControlPago, error) {
	var c entity.ControlPago
	err := row.Scan(&c.ID, &c.LocalID, &c.CodigoLocal, &c.ProyectoID, &c.ProyectoNombre, &c.Metraje, &c.LeadID,
		&c.LeadNombre, &c.LeadTelefono, &c.MontoVenta, &c.MontoSeparacion, &c.MontoInicial, &c.InicialRestante,
		&c.MontoRestante, &c.ConFinanciamiento, &c.PorcentajeInicial, &c.NumeroCuotas, &c.TEA,
		&c.FechaPrimerPago, &c.Estado, &c.ProcesadoPor, &c.VendedorID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste el control. Un local solo se procesa una vez (ErrConflict).
func (r *ControlPagoRepo) Create(ctx context.Context, c *entity.ControlPago) error {
	query := `INSERT INTO control_pagos (` + controlCols + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.LocalID, c.CodigoLocal, c.ProyectoID, c.ProyectoNombre, c.Metraje, c.LeadID, c.LeadNombre,
		c.LeadTelefono, c.MontoVenta, c.MontoSeparacion, c.MontoInicial, c.InicialRestante, c.MontoRestante,
		c.ConFinanciamiento, c.PorcentajeInicial, c.NumeroCuotas, c.TEA, c.FechaPrimerPago, c.Estado,
		c.ProcesadoPor, c.VendedorID, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: el local ya fue procesado", domain.ErrConflict)
		}
		return fmt.Errorf("insert control pago: %w", err)
	}
	return nil
}

// GetByID obtiene un control.
func (r *ControlPagoRepo) GetByID(ctx context.Context, id string) (*entity.ControlPago, error) {
	return r.getOne(ctx, `SELECT `+controlCols+` FROM control_pagos WHERE id = $1`, id)
}

// GetByLocal obtiene el control de un local.
func (r *ControlPagoRepo) GetByLocal(ctx context.Context, localID string) (*entity.ControlPago, error) {
	return r.getOne(ctx, `SELECT `+controlCols+` FROM control_pagos WHERE local_id = $1`, localID)
}

func (r *ControlPagoRepo) getOne(ctx context.Context, query, arg string) (*entity.ControlPago, error) {
	c, err := scanControl(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get control pago: %w", err)
	}
	return c, nil
}

// List controles más recientes primero.
func (r *ControlPagoRepo) List(ctx context.Context, estado string, limit, offset int) ([]*entity.ControlPago, int, error) {
	var w filtros
	if estado != "" {
		w.add("estado = ?", estado)
	}
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM control_pagos`+w.where(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count control pagos: %w", err)
	}
	query := `SELECT ` + controlCols + ` FROM control_pagos` + w.where() +
		` ORDER BY created_at DESC LIMIT ` + w.next(limit) + ` OFFSET ` + w.next(offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list control pagos: %w", err)
	}
	defer rows.Close()
	var list []*entity.ControlPago
	for rows.Next() {
		c, err := scanControl(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan control pago: %w", err)
		}
		list = append(list, c)
	}
	return list, total, rows.Err()
}

// Stats conteo por estado.
func (r *ControlPagoRepo) Stats(ctx context.Context) (*entity.ControlPagoStats, error) {
	query := `
		SELECT COUNT(*) FILTER (WHERE estado = 'activo'),
		       COUNT(*) FILTER (WHERE estado = 'completado'),
		       COUNT(*) FILTER (WHERE estado = 'cancelado'),
		       COUNT(*)
		FROM control_pagos`
	var s entity.ControlPagoStats
	if err := r.q.QueryRow(ctx, query).Scan(&s.Activo, &s.Completado, &s.Cancelado, &s.Total); err != nil {
		return nil, fmt.Errorf("control pagos stats: %w", err)
	}
	return &s, nil
}

// UpdateInicialRestante actualiza el saldo de la inicial.
func (r *ControlPagoRepo) UpdateInicialRestante(ctx context.Context, id string, monto decimal.Decimal) error {
	_, err := r.q.Exec(ctx, `UPDATE control_pagos SET inicial_restante = $2, updated_at = NOW() WHERE id = $1`, id, monto)
	if err != nil {
		return fmt.Errorf("update inicial restante: %w", err)
	}
	return nil
}

// UpdateEstado cambia el estado del control.
func (r *ControlPagoRepo) UpdateEstado(ctx context.Context, id, estado string) error {
	_, err := r.q.Exec(ctx, `UPDATE control_pagos SET estado = $2, updated_at = NOW() WHERE id = $1`, id, estado)
	if err != nil {
		return fmt.Errorf("update estado control: %w", err)
	}
	return nil
}

var _ repository.PagoRepository = (*PagoRepo)(nil)

// PagoRepo calendario de pagos y abonos.
type PagoRepo struct {
	q Querier
}

// NewPagoRepository construye el adaptador.
func NewPagoRepository(q Querier) *PagoRepo {
	return &PagoRepo{q: q}
}

const pagoCols = `id, control_pago_id, tipo, numero_cuota, monto_esperado, monto_abonado, fecha_esperada, estado, created_at, updated_at`

func scanPago(row pgx.Row) (*entity.PagoLocal, error) {
	var p entity.PagoLocal
	err := row.Scan(&p.ID, &p.ControlPagoID, &p.Tipo, &p.NumeroCuota, &p.MontoEsperado, &p.MontoAbonado,
		&p.FechaEsperada, &p.Estado, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateBatch inserta el calendario completo en un solo round-trip.
func (r *PagoRepo) CreateBatch(ctx context.Context, pagos []*entity.PagoLocal) error {
	if len(pagos) == 0 {
		return nil
	}
	b := &pgx.Batch{}
	for _, p := range pagos {
		b.Queue(`INSERT INTO pagos_local (`+pagoCols+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			p.ID, p.ControlPagoID, p.Tipo, p.NumeroCuota, p.MontoEsperado, p.MontoAbonado,
			p.FechaEsperada, p.Estado, p.CreatedAt, p.UpdatedAt)
	}
	if err := r.q.SendBatch(ctx, b).Close(); err != nil {
		return fmt.Errorf("insert pagos: %w", err)
	}
	return nil
}

// GetByID obtiene un pago.
func (r *PagoRepo) GetByID(ctx context.Context, id string) (*entity.PagoLocal, error) {
	return r.getOne(ctx, `SELECT `+pagoCols+` FROM pagos_local WHERE id = $1`, id)
}

// GetForUpdate obtiene el pago bloqueando su fila.
func (r *PagoRepo) GetForUpdate(ctx context.Context, id string) (*entity.PagoLocal, error) {
	return r.getOne(ctx, `SELECT `+pagoCols+` FROM pagos_local WHERE id = $1 FOR UPDATE`, id)
}

func (r *PagoRepo) getOne(ctx context.Context, query, id string) (*entity.PagoLocal, error) {
	p, err := scanPago(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pago: %w", err)
	}
	return p, nil
}

// ListByControl calendario ordenado por fecha con los abonos de cada pago.
func (r *PagoRepo) ListByControl(ctx context.Context, controlID string) ([]*entity.PagoLocal, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+pagoCols+` FROM pagos_local WHERE control_pago_id = $1 ORDER BY fecha_esperada, numero_cuota NULLS FIRST`, controlID)
	if err != nil {
		return nil, fmt.Errorf("list pagos: %w", err)
	}
	var list []*entity.PagoLocal
	byID := make(map[string]*entity.PagoLocal)
	for rows.Next() {
		p, err := scanPago(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan pago: %w", err)
		}
		list = append(list, p)
		byID[p.ID] = p
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return list, nil
	}

	abonos, err := r.q.Query(ctx, `
		SELECT a.id, a.pago_id, a.monto, a.fecha_abono, a.metodo_pago, a.comprobante_url, a.notas,
		       a.registrado_por, a.created_at
		FROM abonos_pago a
		JOIN pagos_local p ON p.id = a.pago_id
		WHERE p.control_pago_id = $1
		ORDER BY a.fecha_abono, a.created_at`, controlID)
	if err != nil {
		return nil, fmt.Errorf("list abonos: %w", err)
	}
	defer abonos.Close()
	for abonos.Next() {
		var a entity.AbonoPago
		if err := abonos.Scan(&a.ID, &a.PagoID, &a.Monto, &a.FechaAbono, &a.MetodoPago, &a.ComprobanteURL,
			&a.Notas, &a.RegistradoPor, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan abono: %w", err)
		}
		if p := byID[a.PagoID]; p != nil {
			p.Abonos = append(p.Abonos, &a)
		}
	}
	return list, abonos.Err()
}

// UpdateAbonado actualiza el acumulado y el estado del pago.
func (r *PagoRepo) UpdateAbonado(ctx context.Context, id string, abonado decimal.Decimal, estado string) error {
	_, err := r.q.Exec(ctx,
		`UPDATE pagos_local SET monto_abonado = $2, estado = $3, updated_at = NOW() WHERE id = $1`, id, abonado, estado)
	if err != nil {
		return fmt.Errorf("update pago: %w", err)
	}
	return nil
}

// AddAbono registra un abono.
func (r *PagoRepo) AddAbono(ctx context.Context, a *entity.AbonoPago) error {
	query := `
		INSERT INTO abonos_pago (id, pago_id, monto, fecha_abono, metodo_pago, comprobante_url, notas, registrado_por, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.PagoID, a.Monto, a.FechaAbono, a.MetodoPago, a.ComprobanteURL, a.Notas, a.RegistradoPor, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert abono: %w", err)
	}
	return nil
}

// CountAbonos cantidad de abonos del pago.
func (r *PagoRepo) CountAbonos(ctx context.Context, pagoID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM abonos_pago WHERE pago_id = $1`, pagoID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count abonos: %w", err)
	}
	return n, nil
}

// DeleteAbonos elimina los abonos del pago.
func (r *PagoRepo) DeleteAbonos(ctx context.Context, pagoID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM abonos_pago WHERE pago_id = $1`, pagoID); err != nil {
		return fmt.Errorf("delete abonos: %w", err)
	}
	return nil
}
