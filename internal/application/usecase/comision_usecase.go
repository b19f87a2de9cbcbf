package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ecoplaza/ecoplaza-api/internal/application/dto"
	"github.com/ecoplaza/ecoplaza-api/internal/domain"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/comision"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/entity"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/rbac"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/repository"
)

// ComisionUseCase consulta y pago de comisiones.
type ComisionUseCase struct {
	repo  repository.ComisionRepository
	perms PermissionChecker
	now   func() time.Time
}

// NewComisionUseCase construye el caso de uso.
func NewComisionUseCase(repo repository.ComisionRepository, perms PermissionChecker) *ComisionUseCase {
	return &ComisionUseCase{repo: repo, perms: perms, now: time.Now}
}

// Mine comisiones del usuario autenticado.
func (uc *ComisionUseCase) Mine(ctx context.Context, actor Actor) ([]dto.ComisionResponse, error) {
	return uc.list(ctx, entity.ComisionFilter{UsuarioID: actor.UserID})
}

// All listado administrativo con filtros opcionales.
func (uc *ComisionUseCase) All(ctx context.Context, estado, usuarioID string) ([]dto.ComisionResponse, error) {
	return uc.list(ctx, entity.ComisionFilter{Estado: estado, UsuarioID: usuarioID})
}

func (uc *ComisionUseCase) list(ctx context.Context, f entity.ComisionFilter) ([]dto.ComisionResponse, error) {
	list, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ComisionResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toComisionResponse(c))
	}
	return out, nil
}

// Stats totales por estado. Sin comisiones:read_all solo se ven las propias.
func (uc *ComisionUseCase) Stats(ctx context.Context, actor Actor, usuarioID string) (*dto.ComisionStatsResponse, error) {
	if !uc.veTodas(ctx, actor) {
		usuarioID = actor.UserID
	}
	s, err := uc.repo.Stats(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	return &dto.ComisionStatsResponse{
		TotalGenerado:    s.TotalGenerado,
		Disponible:       s.Disponible,
		Pagado:           s.Pagado,
		PendienteInicial: s.PendienteInicial,
		CountTotal:       s.CountTotal,
		CountDisponible:  s.CountDisponible,
		CountPagado:      s.CountPagado,
		CountPendiente:   s.CountPendiente,
	}, nil
}

func (uc *ComisionUseCase) veTodas(ctx context.Context, actor Actor) bool {
	return uc.perms != nil && uc.perms.HasPermission(ctx, actor.UserID, actor.Rol, rbac.P(rbac.ModComisiones, rbac.AccReadAll))
}

// Pagar marca como pagada una comisión disponible.
func (uc *ComisionUseCase) Pagar(ctx context.Context, actor Actor, id string) (*dto.ComisionResponse, error) {
	c, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.Estado != entity.ComisionDisponible {
		return nil, fmt.Errorf("%w: solo se pagan comisiones disponibles (estado actual: %s)", domain.ErrEstadoInvalido, c.Estado)
	}
	now, pagador := uc.now(), actor.UserID
	c.Estado = entity.ComisionPagada
	c.FechaPagoComision = &now
	c.PagadoPor = &pagador
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	resp := toComisionResponse(c)
	return &resp, nil
}

var cien = decimal.NewFromInt(100)

// UpdatePorcentaje cambia el porcentaje y recalcula el monto. Las pagadas no se tocan.
func (uc *ComisionUseCase) UpdatePorcentaje(ctx context.Context, id string, pct decimal.Decimal) (*dto.ComisionResponse, error) {
	if !pct.IsPositive() || pct.GreaterThan(cien) {
		return nil, fmt.Errorf("%w: el porcentaje debe estar entre 0 y 100", domain.ErrInvalidInput)
	}
	c, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.Estado == entity.ComisionPagada {
		return nil, fmt.Errorf("%w: la comisión ya fue pagada", domain.ErrConflict)
	}
	c.PorcentajeComision = pct
	c.MontoComision = comision.Monto(c.MontoVenta, pct)
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	resp := toComisionResponse(c)
	return &resp, nil
}

// Trazabilidad comisiones del local con los usuarios de la venta.
// Los roles de venta solo ven la fase vendedor.
func (uc *ComisionUseCase) Trazabilidad(ctx context.Context, actor Actor, localID string) ([]dto.ComisionTrazabilidadResponse, error) {
	list, err := uc.repo.Trazabilidad(ctx, localID)
	if err != nil {
		return nil, err
	}
	soloVendedor := entity.EsRolVendedor(actor.Rol)
	out := make([]dto.ComisionTrazabilidadResponse, 0, len(list))
	for _, t := range list {
		if soloVendedor && t.Fase != entity.FaseVendedor {
			continue
		}
		out = append(out, dto.ComisionTrazabilidadResponse{
			ComisionResponse:       toComisionResponse(&t.Comision),
			VendedorLeadNombre:     t.VendedorLeadNombre,
			UsuarioNaranjaNombre:   t.UsuarioNaranjaNombre,
			UsuarioRojoNombre:      t.UsuarioRojoNombre,
			UsuarioProcesadoNombre: t.UsuarioProcesadoNombre,
		})
	}
	return out, nil
}

func (uc *ComisionUseCase) get(ctx context.Context, id string) (*entity.Comision, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: comisión no encontrada", domain.ErrNotFound)
	}
	return c, nil
}

func toComisionResponse(c *entity.Comision) dto.ComisionResponse {
	return dto.ComisionResponse{
		ID:                   c.ID,
		ControlPagoID:        c.ControlPagoID,
		LocalID:              c.LocalID,
		LocalCodigo:          c.LocalCodigo,
		ProyectoNombre:       c.ProyectoNombre,
		UsuarioID:            c.UsuarioID,
		UsuarioNombre:        c.UsuarioNombre,
		RolUsuario:           c.RolUsuario,
		Fase:                 c.Fase,
		PorcentajeComision:   c.PorcentajeComision,
		MontoVenta:           c.MontoVenta,
		MontoComision:        c.MontoComision,
		Estado:               c.Estado,
		FechaProcesado:       c.FechaProcesado,
		FechaDisponible:      c.FechaDisponible,
		FechaInicialCompleta: c.FechaInicialCompleta,
		FechaPagoComision:    c.FechaPagoComision,
		PagadoPor:            c.PagadoPor,
	}
}
