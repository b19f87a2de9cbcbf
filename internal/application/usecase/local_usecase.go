package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/ecoplaza/ecoplaza-api/internal/application/dto"
	"github.com/ecoplaza/ecoplaza-api/internal/application/ports"
	"github.com/ecoplaza/ecoplaza-api/internal/domain"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/entity"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/rbac"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/repository"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/semaforo"
)

// LocalUseCase semáforo de locales, historial e import masivo.
type LocalUseCase struct {
	locales   repository.LocalRepository
	proyectos repository.ProyectoRepository
	tx        ports.TxRunner
	perms     PermissionChecker
	metrics   ports.Metrics
	now       func() time.Time
}

// NewLocalUseCase construye el caso de uso.
func NewLocalUseCase(
	locales repository.LocalRepository,
	proyectos repository.ProyectoRepository,
	tx ports.TxRunner,
	perms PermissionChecker,
	metrics ports.Metrics,
) *LocalUseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &LocalUseCase{
		locales:   locales,
		proyectos: proyectos,
		tx:        tx,
		perms:     perms,
		metrics:   metrics,
		now:       time.Now,
	}
}

// List página de locales (page_size por defecto 50).
func (uc *LocalUseCase) List(ctx context.Context, in dto.LocalListRequest) (*dto.LocalListResponse, error) {
	if in.Page < 1 {
		in.Page = 1
	}
	if in.PageSize < 1 {
		in.PageSize = 50
	}
	if in.PageSize > 500 {
		in.PageSize = 500
	}
	if in.Estado != "" && !entity.EsEstadoLocalValido(in.Estado) {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, in.Estado)
	}
	list, total, err := uc.locales.List(ctx, entity.LocalFilter{
		ProyectoID: in.ProyectoID,
		Estado:     in.Estado,
		MetrajeMin: in.MetrajeMin,
		MetrajeMax: in.MetrajeMax,
		Page:       in.Page,
		PageSize:   in.PageSize,
	})
	if err != nil {
		return nil, err
	}
	out := &dto.LocalListResponse{Locales: make([]dto.LocalResponse, 0, len(list)), Total: total, Page: in.Page, PageSize: in.PageSize}
	for _, l := range list {
		out.Locales = append(out.Locales, toLocalResponse(l))
	}
	return out, nil
}

// GetByID detalle del local.
func (uc *LocalUseCase) GetByID(ctx context.Context, id string) (*dto.LocalResponse, error) {
	l, err := uc.locales.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, fmt.Errorf("%w: local no encontrado", domain.ErrNotFound)
	}
	resp := toLocalResponse(l)
	return &resp, nil
}

// Stats conteo por color.
func (uc *LocalUseCase) Stats(ctx context.Context, proyectoID string) (*dto.LocalStatsResponse, error) {
	s, err := uc.locales.Stats(ctx, proyectoID)
	if err != nil {
		return nil, err
	}
	return &dto.LocalStatsResponse{Verde: s.Verde, Amarillo: s.Amarillo, Naranja: s.Naranja, Rojo: s.Rojo, Total: s.Total}, nil
}

// Historial cambios del local, más recientes primero.
func (uc *LocalUseCase) Historial(ctx context.Context, id string) ([]dto.LocalHistorialResponse, error) {
	list, err := uc.locales.ListHistorial(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LocalHistorialResponse, 0, len(list))
	for _, h := range list {
		out = append(out, dto.LocalHistorialResponse{
			ID:             h.ID,
			UsuarioID:      h.UsuarioID,
			UsuarioNombre:  h.UsuarioNombre,
			EstadoAnterior: h.EstadoAnterior,
			EstadoNuevo:    h.EstadoNuevo,
			Accion:         h.Accion,
			CreatedAt:      h.CreatedAt,
		})
	}
	return out, nil
}

// CambiarEstado aplica la transición del semáforo con la fila bloqueada.
// El historial se escribe después del commit; si falla solo se registra en el log.
func (uc *LocalUseCase) CambiarEstado(ctx context.Context, actor Actor, id string, in dto.CambiarEstadoRequest) (*dto.LocalResponse, error) {
	opts := semaforo.Opciones{
		PuedeLiberarVenta: uc.perms != nil && uc.perms.HasPermission(ctx, actor.UserID, actor.Rol, rbac.P(rbac.ModLocales, rbac.AccAdmin)),
	}

	var (
		local  *entity.Local
		cambio *semaforo.Cambio
	)
	err := uc.tx.Run(ctx, func(r ports.TxRepos) error {
		l, err := r.Locales.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if l == nil {
			return fmt.Errorf("%w: local no encontrado", domain.ErrNotFound)
		}
		c, err := semaforo.Aplicar(l, in.Estado, actor.UserID, opts, uc.now())
		if err != nil {
			return err
		}
		if in.LeadID != nil && *in.LeadID != "" && c.EstadoNuevo != entity.LocalVerde {
			l.LeadID = in.LeadID
			if err := r.Locales.VincularLead(ctx, l.ID, *in.LeadID); err != nil {
				return err
			}
		}
		if err := r.Locales.Update(ctx, l); err != nil {
			return err
		}
		local, cambio = l, c
		return nil
	})
	if err != nil {
		return nil, err
	}

	if cambio.RegistrarHistorial {
		uc.metrics.LocalTransicion(cambio.EstadoAnterior, cambio.EstadoNuevo)
		uc.registrarHistorial(ctx, local.ID, actor.UserID, cambio.EstadoAnterior, cambio.EstadoNuevo, cambio.Accion)
	}
	resp := toLocalResponse(local)
	return &resp, nil
}

// Desbloquear devuelve el local a verde.
func (uc *LocalUseCase) Desbloquear(ctx context.Context, actor Actor, id string) (*dto.LocalResponse, error) {
	return uc.CambiarEstado(ctx, actor, id, dto.CambiarEstadoRequest{Estado: entity.LocalVerde})
}

// SetMonto fija el monto de venta (solo en naranja).
func (uc *LocalUseCase) SetMonto(ctx context.Context, actor Actor, id string, monto decimal.Decimal) (*dto.LocalResponse, error) {
	var (
		local  *entity.Local
		accion string
	)
	err := uc.tx.Run(ctx, func(r ports.TxRepos) error {
		l, err := r.Locales.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if l == nil {
			return fmt.Errorf("%w: local no encontrado", domain.ErrNotFound)
		}
		if err := semaforo.ValidarMonto(l, monto); err != nil {
			return err
		}
		accion = semaforo.AccionMonto(l.MontoVenta, monto)
		m := monto.Round(2)
		l.MontoVenta = &m
		if err := r.Locales.Update(ctx, l); err != nil {
			return err
		}
		local = l
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.registrarHistorial(ctx, local.ID, actor.UserID, local.Estado, local.Estado, accion)
	resp := toLocalResponse(local)
	return &resp, nil
}

// Delete elimina el local.
func (uc *LocalUseCase) Delete(ctx context.Context, id string) error {
	return uc.locales.Delete(ctx, id)
}

func (uc *LocalUseCase) registrarHistorial(ctx context.Context, localID, usuarioID, anterior, nuevo, accion string) {
	h := &entity.LocalHistorial{
		ID:             uuid.New().String(),
		LocalID:        localID,
		UsuarioID:      usuarioID,
		EstadoAnterior: anterior,
		EstadoNuevo:    nuevo,
		Accion:         accion,
		CreatedAt:      uc.now(),
	}
	if err := uc.locales.AddHistorial(ctx, h); err != nil {
		log.Error().Err(err).Str("local_id", localID).Str("accion", accion).Msg("locales: no se pudo registrar historial")
	}
}

// Import alta masiva. Códigos repetidos se omiten y las filas inválidas no detienen el resto.
func (uc *LocalUseCase) Import(ctx context.Context, rows []dto.ImportLocalRow) (*dto.ImportLocalesResponse, error) {
	out := &dto.ImportLocalesResponse{Total: len(rows), Errors: []string{}}
	proyectos := map[string]*entity.Proyecto{}
	var merr *multierror.Error

	for i, row := range rows {
		fila := i + 1
		fallo := func(format string, args ...any) {
			msg := fmt.Sprintf("Fila %d: ", fila) + fmt.Sprintf(format, args...)
			out.Errors = append(out.Errors, msg)
		}

		codigo := strings.TrimSpace(row.Codigo)
		slug := Slug(row.Proyecto)
		if codigo == "" || slug == "" {
			fallo("codigo y proyecto son requeridos")
			continue
		}
		if !row.Metraje.IsPositive() {
			fallo("metraje debe ser mayor a 0")
			continue
		}
		estado := strings.ToLower(strings.TrimSpace(row.Estado))
		if estado == "" {
			estado = entity.LocalVerde
		}
		if !entity.EsEstadoLocalValido(estado) {
			fallo("estado inválido %q", row.Estado)
			continue
		}

		p, visto := proyectos[slug]
		if !visto {
			var err error
			p, err = uc.proyectos.GetBySlug(ctx, slug)
			if err != nil {
				return nil, err
			}
			proyectos[slug] = p
		}
		if p == nil {
			fallo("proyecto %q no existe", row.Proyecto)
			continue
		}

		existe, err := uc.locales.GetByCodigo(ctx, p.ID, codigo)
		if err != nil {
			return nil, err
		}
		if existe != nil {
			out.Skipped++
			continue
		}

		now := uc.now()
		l := &entity.Local{
			ID:         uuid.New().String(),
			Codigo:     codigo,
			ProyectoID: p.ID,
			Metraje:    row.Metraje,
			PrecioBase: row.PrecioBase,
			Estado:     estado,
			Bloqueado:  estado == entity.LocalRojo,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := uc.locales.Create(ctx, l); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				out.Skipped++
				continue
			}
			merr = multierror.Append(merr, fmt.Errorf("fila %d (%s): %w", fila, codigo, err))
			fallo("error al insertar %s", codigo)
			continue
		}
		out.Inserted++
	}

	if err := merr.ErrorOrNil(); err != nil {
		log.Warn().Err(err).Msg("import locales: filas con error")
	}
	return out, nil
}

func toLocalResponse(l *entity.Local) dto.LocalResponse {
	return dto.LocalResponse{
		ID:                   l.ID,
		Codigo:               l.Codigo,
		ProyectoID:           l.ProyectoID,
		ProyectoNombre:       l.ProyectoNombre,
		Metraje:              l.Metraje,
		PrecioBase:           l.PrecioBase,
		Estado:               l.Estado,
		Bloqueado:            l.Bloqueado,
		MontoVenta:           l.MontoVenta,
		LeadID:               l.LeadID,
		VendedorActualID:     l.VendedorActualID,
		VendedorCerroVentaID: l.VendedorCerroVentaID,
		FechaCierreVenta:     l.FechaCierreVenta,
		UsuarioPasoNaranjaID: l.UsuarioPasoNaranjaID,
		UsuarioPasoRojoID:    l.UsuarioPasoRojoID,
		EnControlPagos:       l.EnControlPagos,
		UpdatedAt:            l.UpdatedAt,
	}
}
