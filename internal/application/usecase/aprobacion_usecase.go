package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/ecoplaza/ecoplaza-api/internal/application/dto"
	"github.com/ecoplaza/ecoplaza-api/internal/application/ports"
	"github.com/ecoplaza/ecoplaza-api/internal/domain"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/aprobacion"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/entity"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/repository"
)

// AprobacionUseCase flujo de aprobación de descuentos sobre el precio de lista.
type AprobacionUseCase struct {
	repo     repository.AprobacionRepository
	locales  repository.LocalRepository
	usuarios repository.UsuarioRepository
	notifier ports.AprobacionNotifier
	now      func() time.Time
}

// NewAprobacionUseCase construye el caso de uso. notifier puede ser nil.
func NewAprobacionUseCase(
	repo repository.AprobacionRepository,
	locales repository.LocalRepository,
	usuarios repository.UsuarioRepository,
	notifier ports.AprobacionNotifier,
) *AprobacionUseCase {
	return &AprobacionUseCase{repo: repo, locales: locales, usuarios: usuarios, notifier: notifier, now: time.Now}
}

// ── Configuración ───────────────────────────────────────────────────────────

// GetConfig configuración del proyecto o la de fábrica si no tiene una guardada.
func (uc *AprobacionUseCase) GetConfig(ctx context.Context, proyectoID string) (*dto.ConfigAprobacionResponse, error) {
	c, err := uc.config(ctx, proyectoID)
	if err != nil {
		return nil, err
	}
	return &dto.ConfigAprobacionResponse{
		ProyectoID:               proyectoID,
		Rangos:                   c.Rangos,
		NotificarWhatsapp:        c.NotificarWhatsapp,
		BloquearHastaAprobacion:  c.BloquearHastaAprobacion,
		PermitirVentaProvisional: c.PermitirVentaProvisional,
		PorDefecto:               c.ID == "",
	}, nil
}

// SaveConfig guarda los rangos del proyecto.
func (uc *AprobacionUseCase) SaveConfig(ctx context.Context, actor Actor, proyectoID string, in dto.ConfigAprobacionRequest) (*dto.ConfigAprobacionResponse, error) {
	if proyectoID == "" {
		return nil, fmt.Errorf("%w: proyecto_id es requerido", domain.ErrInvalidInput)
	}
	if err := aprobacion.ValidarRangos(in.Rangos); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	for i := range in.Rangos {
		if in.Rangos[i].Aprobadores == nil {
			in.Rangos[i].Aprobadores = []string{}
		}
	}
	c := &entity.ConfigAprobacion{
		ID:                       uuid.New().String(),
		ProyectoID:               proyectoID,
		Rangos:                   in.Rangos,
		NotificarWhatsapp:        in.NotificarWhatsapp,
		BloquearHastaAprobacion:  in.BloquearHastaAprobacion,
		PermitirVentaProvisional: in.PermitirVentaProvisional,
		UpdatedBy:                nilSiVacio(strPtr(actor.UserID)),
		UpdatedAt:                uc.now(),
	}
	if err := uc.repo.SaveConfig(ctx, c); err != nil {
		return nil, err
	}
	return uc.GetConfig(ctx, proyectoID)
}

func (uc *AprobacionUseCase) config(ctx context.Context, proyectoID string) (*entity.ConfigAprobacion, error) {
	c, err := uc.repo.GetConfig(ctx, proyectoID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return &entity.ConfigAprobacion{
			ProyectoID:              proyectoID,
			Rangos:                  aprobacion.RangosPorDefecto(),
			NotificarWhatsapp:       true,
			BloquearHastaAprobacion: true,
		}, nil
	}
	return c, nil
}

// ── Solicitudes ─────────────────────────────────────────────────────────────

// Solicitar calcula el descuento pedido por el vendedor y, si el tramo lo exige,
// registra una solicitud pendiente.
func (uc *AprobacionUseCase) Solicitar(ctx context.Context, actor Actor, in dto.SolicitarDescuentoRequest) (*dto.SolicitarDescuentoResponse, error) {
	local, err := uc.locales.GetByID(ctx, in.LocalID)
	if err != nil {
		return nil, err
	}
	if local == nil {
		return nil, fmt.Errorf("%w: local no encontrado", domain.ErrNotFound)
	}

	var lista decimal.Decimal
	switch {
	case local.PrecioBase != nil && local.PrecioBase.IsPositive():
		lista = *local.PrecioBase
	case in.PrecioLista != nil:
		lista = *in.PrecioLista
	default:
		return nil, fmt.Errorf("%w: el local no tiene precio base; envíe precio_lista", domain.ErrInvalidInput)
	}
	if !lista.IsPositive() || !in.PrecioNegociado.IsPositive() || !in.PrecioNegociado.LessThan(lista) {
		return nil, fmt.Errorf("%w: el precio negociado debe ser mayor a 0 y menor al de lista", domain.ErrInvalidInput)
	}

	cfg, err := uc.config(ctx, local.ProyectoID)
	if err != nil {
		return nil, err
	}
	pct := aprobacion.Porcentaje(lista, in.PrecioNegociado)
	requeridos, desc := aprobacion.Requeridos(cfg.Rangos, pct)
	out := &dto.SolicitarDescuentoResponse{DescuentoPorcentaje: pct, Descripcion: desc}
	if len(requeridos) == 0 {
		return out, nil
	}

	nombre := actor.Email
	if u, err := uc.usuarios.GetByID(ctx, actor.UserID); err != nil {
		return nil, err
	} else if u != nil {
		nombre = u.Nombre
	}

	s := &entity.SolicitudAprobacion{
		ID:                    uuid.New().String(),
		ProyectoID:            local.ProyectoID,
		LocalID:               local.ID,
		VendedorID:            actor.UserID,
		VendedorNombre:        nombre,
		PrecioLista:           lista,
		PrecioNegociado:       in.PrecioNegociado,
		DescuentoPorcentaje:   pct,
		DescuentoMonto:        lista.Sub(in.PrecioNegociado),
		AprobadoresRequeridos: append([]string{}, requeridos...),
		Aprobaciones:          []entity.DecisionAprobacion{},
		Estado:                entity.AprobacionPendiente,
		ComentarioVendedor:    nilSiVacio(in.Comentario),
		FechaSolicitud:        uc.now(),
		LocalCodigo:           &local.Codigo,
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	log.Info().Str("aprobacion_id", s.ID).Str("local", local.Codigo).Str("descuento", pct.String()).
		Strs("aprobadores", s.AprobadoresRequeridos).Msg("aprobaciones: solicitud creada")

	if cfg.NotificarWhatsapp {
		uc.notificar(ctx, ports.EventoNuevaSolicitud, s, s.ComentarioVendedor)
	}
	out.RequiereAprobacion = true
	resp := toAprobacionResponse(s)
	out.Solicitud = &resp
	return out, nil
}

// Pendientes solicitudes que esperan el voto del rol; admin ve todas.
func (uc *AprobacionUseCase) Pendientes(ctx context.Context, actor Actor, proyectoID string) ([]dto.AprobacionResponse, error) {
	f := entity.AprobacionFilter{ProyectoID: proyectoID, Estado: entity.AprobacionPendiente}
	if actor.Rol != entity.RolAdmin && actor.Rol != entity.RolSuperadmin {
		f.Rol = actor.Rol
	}
	return uc.listar(ctx, f)
}

// Historial listado filtrado para gerencia.
func (uc *AprobacionUseCase) Historial(ctx context.Context, f entity.AprobacionFilter) ([]dto.AprobacionResponse, error) {
	return uc.listar(ctx, f)
}

// MisSolicitudes solicitudes creadas por el usuario.
func (uc *AprobacionUseCase) MisSolicitudes(ctx context.Context, actor Actor, proyectoID string) ([]dto.AprobacionResponse, error) {
	return uc.listar(ctx, entity.AprobacionFilter{ProyectoID: proyectoID, VendedorID: actor.UserID})
}

func (uc *AprobacionUseCase) listar(ctx context.Context, f entity.AprobacionFilter) ([]dto.AprobacionResponse, error) {
	list, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AprobacionResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toAprobacionResponse(s))
	}
	return out, nil
}

// Get una solicitud.
func (uc *AprobacionUseCase) Get(ctx context.Context, id string) (*dto.AprobacionResponse, error) {
	s, err := uc.pendiente(ctx, id, false)
	if err != nil {
		return nil, err
	}
	resp := toAprobacionResponse(s)
	return &resp, nil
}

// ── Resolución ──────────────────────────────────────────────────────────────

// Aprobar registra el voto del rol; la solicitud queda aprobada cuando votaron
// todos los roles requeridos.
func (uc *AprobacionUseCase) Aprobar(ctx context.Context, actor Actor, id string, comentario *string) (*dto.AprobacionResponse, error) {
	s, err := uc.pendiente(ctx, id, true)
	if err != nil {
		return nil, err
	}
	rol, ok := aprobacion.RolQueAprueba(actor.Rol, s.AprobadoresRequeridos)
	if !ok {
		return nil, fmt.Errorf("%w: su rol no puede aprobar esta solicitud", domain.ErrForbidden)
	}
	if aprobacion.YaVoto(s.Aprobaciones, rol) {
		return nil, fmt.Errorf("%w: el rol %s ya aprobó esta solicitud", domain.ErrConflict, rol)
	}

	now := uc.now()
	s.Aprobaciones = append(s.Aprobaciones, uc.decision(ctx, actor, rol, aprobacion.DecisionAprobado, comentario, now))
	if aprobacion.Completa(s.AprobadoresRequeridos, s.Aprobaciones) {
		c := "Aprobado"
		if v := nilSiVacio(comentario); v != nil {
			c = *v
		}
		s.Estado, s.FechaResolucion, s.ResueltoPor, s.ComentarioResolucion = entity.AprobacionAprobado, &now, strPtr(actor.UserID), &c
	}
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	if s.Estado == entity.AprobacionAprobado {
		uc.notificar(ctx, ports.EventoSolicitudAprobada, s, s.ComentarioResolucion)
	}
	resp := toAprobacionResponse(s)
	return &resp, nil
}

// Rechazar basta un rechazo de cualquier rol requerido.
func (uc *AprobacionUseCase) Rechazar(ctx context.Context, actor Actor, id string, comentario *string) (*dto.AprobacionResponse, error) {
	s, err := uc.pendiente(ctx, id, true)
	if err != nil {
		return nil, err
	}
	rol, ok := aprobacion.RolQueAprueba(actor.Rol, s.AprobadoresRequeridos)
	if !ok {
		return nil, fmt.Errorf("%w: su rol no puede rechazar esta solicitud", domain.ErrForbidden)
	}
	now := uc.now()
	s.Aprobaciones = append(s.Aprobaciones, uc.decision(ctx, actor, rol, aprobacion.DecisionRechazado, comentario, now))
	s.Estado, s.FechaResolucion, s.ResueltoPor, s.ComentarioResolucion = entity.AprobacionRechazado, &now, strPtr(actor.UserID), nilSiVacio(comentario)
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	uc.notificar(ctx, ports.EventoSolicitudRechazada, s, s.ComentarioResolucion)
	resp := toAprobacionResponse(s)
	return &resp, nil
}

// Cancelar solo el vendedor que creó la solicitud, mientras siga pendiente.
func (uc *AprobacionUseCase) Cancelar(ctx context.Context, actor Actor, id string) (*dto.AprobacionResponse, error) {
	s, err := uc.pendiente(ctx, id, true)
	if err != nil {
		return nil, err
	}
	if s.VendedorID != actor.UserID {
		return nil, fmt.Errorf("%w: solo el vendedor que creó la solicitud puede cancelarla", domain.ErrForbidden)
	}
	now := uc.now()
	s.Estado, s.FechaResolucion, s.ResueltoPor = entity.AprobacionCancelado, &now, strPtr(actor.UserID)
	s.ComentarioResolucion = strPtr("Cancelado por el vendedor")
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	resp := toAprobacionResponse(s)
	return &resp, nil
}

// Stats agregados del proyecto.
func (uc *AprobacionUseCase) Stats(ctx context.Context, proyectoID string) (*dto.AprobacionStatsResponse, error) {
	if proyectoID == "" {
		return nil, fmt.Errorf("%w: proyecto_id es requerido", domain.ErrInvalidInput)
	}
	s, err := uc.repo.Stats(ctx, proyectoID)
	if err != nil {
		return nil, err
	}
	return &dto.AprobacionStatsResponse{
		Total:                         s.Total,
		Pendientes:                    s.Pendientes,
		Aprobadas:                     s.Aprobadas,
		Rechazadas:                    s.Rechazadas,
		Canceladas:                    s.Canceladas,
		DescuentoPromedio:             s.DescuentoPromedio,
		TiempoResolucionPromedioHoras: s.TiempoResolucionHoras,
	}, nil
}

// pendiente carga la solicitud; con soloPendiente exige que no esté resuelta.
func (uc *AprobacionUseCase) pendiente(ctx context.Context, id string, soloPendiente bool) (*entity.SolicitudAprobacion, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("%w: solicitud no encontrada", domain.ErrNotFound)
	}
	if soloPendiente && s.Estado != entity.AprobacionPendiente {
		return nil, fmt.Errorf("%w: esta solicitud ya fue procesada", domain.ErrConflict)
	}
	return s, nil
}

func (uc *AprobacionUseCase) decision(ctx context.Context, actor Actor, rol, decision string, comentario *string, ahora time.Time) entity.DecisionAprobacion {
	nombre := actor.Email
	if u, err := uc.usuarios.GetByID(ctx, actor.UserID); err == nil && u != nil {
		nombre = u.Nombre
	}
	return entity.DecisionAprobacion{
		Rol:           rol,
		UsuarioID:     actor.UserID,
		UsuarioNombre: nombre,
		Fecha:         ahora,
		Decision:      decision,
		Comentario:    nilSiVacio(comentario),
	}
}

func (uc *AprobacionUseCase) notificar(ctx context.Context, tipo string, s *entity.SolicitudAprobacion, comentario *string) {
	if uc.notifier == nil {
		return
	}
	codigo := ""
	if s.LocalCodigo != nil {
		codigo = *s.LocalCodigo
	}
	c := ""
	if comentario != nil {
		c = *comentario
	}
	uc.notifier.AprobacionEvento(ctx, ports.AprobacionEvento{
		Tipo:                  tipo,
		AprobacionID:          s.ID,
		ProyectoID:            s.ProyectoID,
		LocalID:               s.LocalID,
		LocalCodigo:           codigo,
		VendedorNombre:        s.VendedorNombre,
		PrecioLista:           s.PrecioLista,
		PrecioNegociado:       s.PrecioNegociado,
		DescuentoPorcentaje:   s.DescuentoPorcentaje,
		AprobadoresRequeridos: s.AprobadoresRequeridos,
		Estado:                s.Estado,
		Comentario:            c,
		Fecha:                 uc.now(),
	})
}

func toAprobacionResponse(s *entity.SolicitudAprobacion) dto.AprobacionResponse {
	aprobaciones := s.Aprobaciones
	if aprobaciones == nil {
		aprobaciones = []entity.DecisionAprobacion{}
	}
	return dto.AprobacionResponse{
		ID:                    s.ID,
		ProyectoID:            s.ProyectoID,
		LocalID:               s.LocalID,
		LocalCodigo:           s.LocalCodigo,
		VendedorID:            s.VendedorID,
		VendedorNombre:        s.VendedorNombre,
		PrecioLista:           s.PrecioLista,
		PrecioNegociado:       s.PrecioNegociado,
		DescuentoPorcentaje:   s.DescuentoPorcentaje,
		DescuentoMonto:        s.DescuentoMonto,
		AprobadoresRequeridos: vacioSiNil(s.AprobadoresRequeridos),
		Aprobaciones:          aprobaciones,
		Estado:                s.Estado,
		ComentarioVendedor:    s.ComentarioVendedor,
		FechaSolicitud:        s.FechaSolicitud,
		FechaResolucion:       s.FechaResolucion,
		ResueltoPor:           s.ResueltoPor,
		ComentarioResolucion:  s.ComentarioResolucion,
	}
}
