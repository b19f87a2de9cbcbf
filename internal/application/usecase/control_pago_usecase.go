package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ecoplaza/ecoplaza-api/internal/application/dto"
	"github.com/ecoplaza/ecoplaza-api/internal/application/ports"
	"github.com/ecoplaza/ecoplaza-api/internal/domain"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/comision"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/entity"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/pagos"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/repository"
)

// AccionVentaProcesada texto del historial al pasar el local a control de pagos.
const AccionVentaProcesada = "Venta procesada a control de pagos"

// ComisionConfig porcentajes por fase.
type ComisionConfig struct {
	PctVendedor decimal.Decimal
	PctGestion  decimal.Decimal
}

// ControlPagoUseCase procesamiento de ventas y consulta del calendario de pagos.
type ControlPagoUseCase struct {
	tx        ports.TxRunner
	controles repository.ControlPagoRepository
	pagos     repository.PagoRepository
	pdf       ports.EstadoCuentaPDF
	pct       ComisionConfig
	now       func() time.Time
}

// NewControlPagoUseCase construye el caso de uso.
func NewControlPagoUseCase(
	tx ports.TxRunner,
	controles repository.ControlPagoRepository,
	pagosRepo repository.PagoRepository,
	pdf ports.EstadoCuentaPDF,
	pct ComisionConfig,
) *ControlPagoUseCase {
	return &ControlPagoUseCase{
		tx:        tx,
		controles: controles,
		pagos:     pagosRepo,
		pdf:       pdf,
		pct:       pct,
		now:       time.Now,
	}
}

// ProcesarVenta pasa un local vendido (rojo) a control de pagos: snapshot de la venta,
// calendario, comisiones e historial en una sola transacción.
func (uc *ControlPagoUseCase) ProcesarVenta(ctx context.Context, actor Actor, in dto.ProcesarVentaRequest) (*dto.ProcesarVentaResponse, error) {
	if in.LocalID == "" {
		return nil, fmt.Errorf("%w: local_id es requerido", domain.ErrInvalidInput)
	}
	if !in.MontoVenta.IsPositive() {
		return nil, fmt.Errorf("%w: monto_venta debe ser mayor a 0", domain.ErrInvalidInput)
	}
	if in.MontoSeparacion.IsNegative() || in.MontoInicial.IsNegative() || in.InicialRestante.IsNegative() || in.MontoRestante.IsNegative() {
		return nil, fmt.Errorf("%w: los montos no pueden ser negativos", domain.ErrInvalidInput)
	}
	primerPago, err := parseFecha(in.FechaPrimerPago)
	if err != nil {
		return nil, fmt.Errorf("%w: fecha_primer_pago debe tener formato YYYY-MM-DD", domain.ErrInvalidInput)
	}
	now := uc.now()

	var out dto.ProcesarVentaResponse
	err = uc.tx.Run(ctx, func(r ports.TxRepos) error {
		local, err := r.Locales.GetForUpdate(ctx, in.LocalID)
		if err != nil {
			return err
		}
		if local == nil {
			return fmt.Errorf("%w: local no encontrado", domain.ErrNotFound)
		}
		if local.Estado != entity.LocalRojo {
			return fmt.Errorf("%w: solo se procesan locales en rojo", domain.ErrEstadoInvalido)
		}
		if local.EnControlPagos {
			return fmt.Errorf("%w: el local ya fue procesado", domain.ErrConflict)
		}

		control := &entity.ControlPago{
			ID:                uuid.New().String(),
			LocalID:           local.ID,
			CodigoLocal:       local.Codigo,
			ProyectoID:        local.ProyectoID,
			Metraje:           local.Metraje,
			LeadID:            local.LeadID,
			MontoVenta:        in.MontoVenta.Round(2),
			MontoSeparacion:   in.MontoSeparacion.Round(2),
			MontoInicial:      in.MontoInicial.Round(2),
			InicialRestante:   in.InicialRestante.Round(2),
			MontoRestante:     in.MontoRestante.Round(2),
			ConFinanciamiento: in.ConFinanciamiento,
			PorcentajeInicial: in.PorcentajeInicial,
			NumeroCuotas:      in.NumeroCuotas,
			TEA:               in.TEA,
			FechaPrimerPago:   primerPago,
			Estado:            entity.ControlActivo,
			ProcesadoPor:      actor.UserID,
			VendedorID:        local.VendedorCerroVentaID,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		if local.ProyectoNombre != nil {
			control.ProyectoNombre = *local.ProyectoNombre
		}

		participantes, err := participantesVenta(ctx, r, local, control)
		if err != nil {
			return err
		}

		if err := r.ControlPagos.Create(ctx, control); err != nil {
			return err
		}

		programa, err := pagos.GenerarCalendario(pagos.Parametros{
			FechaVenta:        now,
			MontoSeparacion:   control.MontoSeparacion,
			InicialRestante:   control.InicialRestante,
			MontoRestante:     control.MontoRestante,
			ConFinanciamiento: control.ConFinanciamiento,
			TEA:               control.TEA,
			NumeroCuotas:      control.NumeroCuotas,
			FechaPrimerPago:   primerPago,
		})
		if err != nil {
			return err
		}
		calendario := make([]*entity.PagoLocal, 0, len(programa))
		for _, p := range programa {
			calendario = append(calendario, &entity.PagoLocal{
				ID:            uuid.New().String(),
				ControlPagoID: control.ID,
				Tipo:          p.Tipo,
				NumeroCuota:   p.NumeroCuota,
				MontoEsperado: p.Monto,
				MontoAbonado:  decimal.Zero,
				FechaEsperada: p.Fecha,
				Estado:        entity.PagoPendiente,
				CreatedAt:     now,
				UpdatedAt:     now,
			})
		}
		if err := r.Pagos.CreateBatch(ctx, calendario); err != nil {
			return err
		}

		lineas := comision.Calcular(comision.Entrada{
			MontoVenta:      control.MontoVenta,
			PctVendedor:     uc.pct.PctVendedor,
			PctGestion:      uc.pct.PctGestion,
			Vendedores:      participantes,
			Gestor:          &comision.Participante{UsuarioID: actor.UserID, Rol: actor.Rol},
			InicialCompleta: !control.InicialRestante.IsPositive(),
		})
		comisiones := make([]*entity.Comision, 0, len(lineas))
		for _, ln := range lineas {
			c := &entity.Comision{
				ID:                 uuid.New().String(),
				ControlPagoID:      control.ID,
				LocalID:            local.ID,
				UsuarioID:          ln.UsuarioID,
				RolUsuario:         ln.Rol,
				Fase:               ln.Fase,
				PorcentajeComision: ln.Porcentaje,
				MontoVenta:         control.MontoVenta,
				MontoComision:      ln.Monto,
				Estado:             ln.Estado,
				FechaProcesado:     now,
				CreatedAt:          now,
			}
			if ln.Estado == entity.ComisionDisponible {
				t := now
				c.FechaDisponible, c.FechaInicialCompleta = &t, &t
			}
			comisiones = append(comisiones, c)
		}
		if err := r.Comisiones.CreateBatch(ctx, comisiones); err != nil {
			return err
		}

		local.EnControlPagos = true
		if err := r.Locales.Update(ctx, local); err != nil {
			return err
		}
		if err := r.Locales.AddHistorial(ctx, &entity.LocalHistorial{
			ID:             uuid.New().String(),
			LocalID:        local.ID,
			UsuarioID:      actor.UserID,
			EstadoAnterior: entity.LocalRojo,
			EstadoNuevo:    entity.LocalRojo,
			Accion:         AccionVentaProcesada,
			CreatedAt:      now,
		}); err != nil {
			return err
		}

		out.Control = toControlPagoResponse(control)
		out.Pagos = toPagoResponses(calendario)
		out.Comisiones = make([]dto.ComisionResponse, 0, len(comisiones))
		for _, c := range comisiones {
			out.Comisiones = append(out.Comisiones, toComisionResponse(c))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// participantesVenta vendedor del lead, quien pasó a naranja y quien pasó a rojo.
// También completa los datos del lead en el snapshot.
func participantesVenta(ctx context.Context, r ports.TxRepos, local *entity.Local, control *entity.ControlPago) ([]comision.Participante, error) {
	var out []comision.Participante

	if local.LeadID != nil {
		lead, err := r.Leads.GetByID(ctx, *local.LeadID)
		if err != nil {
			return nil, err
		}
		if lead != nil {
			control.LeadTelefono = lead.Telefono
			if lead.Nombre != nil {
				control.LeadNombre = *lead.Nombre
			}
			if lead.VendedorAsignadoID != nil {
				u, err := r.Usuarios.GetByVendedorID(ctx, *lead.VendedorAsignadoID)
				if err != nil {
					return nil, err
				}
				if u != nil {
					out = append(out, comision.Participante{UsuarioID: u.ID, Rol: u.Rol})
				}
			}
		}
	}

	for _, id := range []*string{local.UsuarioPasoNaranjaID, local.UsuarioPasoRojoID} {
		if id == nil {
			continue
		}
		u, err := r.Usuarios.GetByID(ctx, *id)
		if err != nil {
			return nil, err
		}
		if u != nil {
			out = append(out, comision.Participante{UsuarioID: u.ID, Rol: u.Rol})
		}
	}
	return out, nil
}

// List controles más recientes primero.
func (uc *ControlPagoUseCase) List(ctx context.Context, estado string, page dto.PageRequest) (*dto.ControlPagoListResponse, error) {
	page.DefaultPage()
	list, total, err := uc.controles.List(ctx, estado, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := &dto.ControlPagoListResponse{
		Controles: make([]dto.ControlPagoResponse, 0, len(list)),
		Page:      dto.NewPage(page.Limit, page.Offset, total),
	}
	for _, c := range list {
		out.Controles = append(out.Controles, toControlPagoResponse(c))
	}
	return out, nil
}

// GetByID detalle del control.
func (uc *ControlPagoUseCase) GetByID(ctx context.Context, id string) (*dto.ControlPagoResponse, error) {
	c, err := uc.controles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: control de pagos no encontrado", domain.ErrNotFound)
	}
	resp := toControlPagoResponse(c)
	return &resp, nil
}

// GetByLocal control del local, si fue procesado.
func (uc *ControlPagoUseCase) GetByLocal(ctx context.Context, localID string) (*dto.ControlPagoResponse, error) {
	c, err := uc.controles.GetByLocal(ctx, localID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: el local no está en control de pagos", domain.ErrNotFound)
	}
	resp := toControlPagoResponse(c)
	return &resp, nil
}

// Stats conteo por estado.
func (uc *ControlPagoUseCase) Stats(ctx context.Context) (*dto.ControlPagoStatsResponse, error) {
	s, err := uc.controles.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.ControlPagoStatsResponse{Activo: s.Activo, Completado: s.Completado, Cancelado: s.Cancelado, Total: s.Total}, nil
}

// Pagos calendario con abonos ordenado por fecha esperada.
func (uc *ControlPagoUseCase) Pagos(ctx context.Context, controlID string) ([]dto.PagoResponse, error) {
	list, err := uc.pagos.ListByControl(ctx, controlID)
	if err != nil {
		return nil, err
	}
	return toPagoResponses(list), nil
}

// PagosStats avance del inicial y de las cuotas al día de hoy.
func (uc *ControlPagoUseCase) PagosStats(ctx context.Context, controlID string) (*dto.PagosStatsResponse, error) {
	list, err := uc.pagos.ListByControl(ctx, controlID)
	if err != nil {
		return nil, err
	}
	r := pagos.Resumir(list, uc.now())
	var out dto.PagosStatsResponse
	out.Inicial.Esperado = r.Inicial.Esperado
	out.Inicial.Abonado = r.Inicial.Abonado
	out.Inicial.Porcentaje = r.Inicial.Porcentaje
	out.Inicial.Estado = r.Inicial.Estado
	out.Cuotas.Total = r.Cuotas.Total
	out.Cuotas.Pagadas = r.Cuotas.Pagadas
	out.Cuotas.Parciales = r.Cuotas.Parciales
	out.Cuotas.Pendientes = r.Cuotas.Pendientes
	out.Cuotas.Vencidas = r.Cuotas.Vencidas
	out.Cuotas.ProximaFecha = formatFechaPtr(r.Cuotas.ProximaFecha)
	return &out, nil
}

// EstadoCuenta PDF con el calendario y su avance. Devuelve también el nombre sugerido del archivo.
func (uc *ControlPagoUseCase) EstadoCuenta(ctx context.Context, controlID string) ([]byte, string, error) {
	if uc.pdf == nil {
		return nil, "", fmt.Errorf("generador de PDF no configurado")
	}
	c, err := uc.controles.GetByID(ctx, controlID)
	if err != nil {
		return nil, "", err
	}
	if c == nil {
		return nil, "", fmt.Errorf("%w: control de pagos no encontrado", domain.ErrNotFound)
	}
	list, err := uc.pagos.ListByControl(ctx, controlID)
	if err != nil {
		return nil, "", err
	}
	b, err := uc.pdf.EstadoCuenta(c, list, pagos.Resumir(list, uc.now()))
	if err != nil {
		return nil, "", fmt.Errorf("estado de cuenta pdf: %w", err)
	}
	return b, fmt.Sprintf("estado-cuenta-%s.pdf", SanitizarArchivo(c.CodigoLocal)), nil
}

func toControlPagoResponse(c *entity.ControlPago) dto.ControlPagoResponse {
	return dto.ControlPagoResponse{
		ID:                c.ID,
		LocalID:           c.LocalID,
		CodigoLocal:       c.CodigoLocal,
		ProyectoID:        c.ProyectoID,
		ProyectoNombre:    c.ProyectoNombre,
		Metraje:           c.Metraje,
		LeadID:            c.LeadID,
		LeadNombre:        c.LeadNombre,
		LeadTelefono:      c.LeadTelefono,
		MontoVenta:        c.MontoVenta,
		MontoSeparacion:   c.MontoSeparacion,
		MontoInicial:      c.MontoInicial,
		InicialRestante:   c.InicialRestante,
		MontoRestante:     c.MontoRestante,
		ConFinanciamiento: c.ConFinanciamiento,
		PorcentajeInicial: c.PorcentajeInicial,
		NumeroCuotas:      c.NumeroCuotas,
		TEA:               c.TEA,
		FechaPrimerPago:   formatFecha(c.FechaPrimerPago),
		Estado:            c.Estado,
		ProcesadoPor:      c.ProcesadoPor,
		VendedorID:        c.VendedorID,
		CreatedAt:         c.CreatedAt,
	}
}

func toPagoResponses(list []*entity.PagoLocal) []dto.PagoResponse {
	out := make([]dto.PagoResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toPagoResponse(p))
	}
	return out
}

func toPagoResponse(p *entity.PagoLocal) dto.PagoResponse {
	r := dto.PagoResponse{
		ID:            p.ID,
		ControlPagoID: p.ControlPagoID,
		Tipo:          p.Tipo,
		NumeroCuota:   p.NumeroCuota,
		MontoEsperado: p.MontoEsperado,
		MontoAbonado:  p.MontoAbonado,
		FechaEsperada: formatFecha(p.FechaEsperada),
		Estado:        p.Estado,
		Abonos:        make([]dto.AbonoResponse, 0, len(p.Abonos)),
	}
	for _, a := range p.Abonos {
		r.Abonos = append(r.Abonos, toAbonoResponse(a))
	}
	return r
}

func toAbonoResponse(a *entity.AbonoPago) dto.AbonoResponse {
	return dto.AbonoResponse{
		ID:             a.ID,
		Monto:          a.Monto,
		FechaAbono:     formatFecha(a.FechaAbono),
		MetodoPago:     a.MetodoPago,
		ComprobanteURL: a.ComprobanteURL,
		Notas:          a.Notas,
		RegistradoPor:  a.RegistradoPor,
		CreatedAt:      a.CreatedAt,
	}
}
