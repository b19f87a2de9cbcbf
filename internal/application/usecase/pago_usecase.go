package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/ecoplaza/ecoplaza-api/internal/application/dto"
	"github.com/ecoplaza/ecoplaza-api/internal/application/ports"
	"github.com/ecoplaza/ecoplaza-api/internal/domain"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/entity"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/pagos"
)

// PagoUseCase abonos sobre el calendario y consolidación del control.
type PagoUseCase struct {
	tx  ports.TxRunner
	now func() time.Time
}

// NewPagoUseCase construye el caso de uso.
func NewPagoUseCase(tx ports.TxRunner) *PagoUseCase {
	return &PagoUseCase{tx: tx, now: time.Now}
}

// RegistrarAbono suma el abono al pago, recalcula su estado y consolida el control:
// inicial completo libera comisiones y todos los pagos completos cierran el control.
func (uc *PagoUseCase) RegistrarAbono(ctx context.Context, actor Actor, pagoID string, in dto.RegistrarAbonoRequest) (*dto.PagoResponse, error) {
	fecha, err := parseFecha(in.FechaAbono)
	if err != nil {
		return nil, fmt.Errorf("%w: fecha_abono debe tener formato YYYY-MM-DD", domain.ErrInvalidInput)
	}
	metodo := strings.TrimSpace(in.MetodoPago)
	if metodo == "" {
		return nil, fmt.Errorf("%w: metodo_pago es requerido", domain.ErrInvalidInput)
	}

	var pago *entity.PagoLocal
	err = uc.tx.Run(ctx, func(r ports.TxRepos) error {
		p, err := r.Pagos.GetForUpdate(ctx, pagoID)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("%w: pago no encontrado", domain.ErrNotFound)
		}
		monto := in.Monto.Round(2)
		if err := pagos.ValidarAbono(p, monto); err != nil {
			return err
		}
		abono := &entity.AbonoPago{
			ID:             uuid.New().String(),
			PagoID:         p.ID,
			Monto:          monto,
			FechaAbono:     fecha,
			MetodoPago:     metodo,
			ComprobanteURL: nilSiVacio(in.ComprobanteURL),
			Notas:          nilSiVacio(in.Notas),
			RegistradoPor:  actor.UserID,
			CreatedAt:      uc.now(),
		}
		if err := r.Pagos.AddAbono(ctx, abono); err != nil {
			return err
		}
		p.Abonos = append(p.Abonos, abono)
		if err := uc.aplicarAbonado(ctx, r, p, p.MontoAbonado.Add(monto)); err != nil {
			return err
		}
		pago = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := toPagoResponse(pago)
	return &resp, nil
}

// MarcarSeparacion pagado=true crea un abono por el total; pagado=false borra los abonos.
func (uc *PagoUseCase) MarcarSeparacion(ctx context.Context, actor Actor, pagoID string, pagado bool) (*dto.PagoResponse, error) {
	var pago *entity.PagoLocal
	err := uc.tx.Run(ctx, func(r ports.TxRepos) error {
		p, err := r.Pagos.GetForUpdate(ctx, pagoID)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("%w: pago no encontrado", domain.ErrNotFound)
		}
		if p.Tipo != entity.PagoSeparacion {
			return fmt.Errorf("%w: el pago no es de separación", domain.ErrInvalidInput)
		}

		if !pagado {
			if err := r.Pagos.DeleteAbonos(ctx, p.ID); err != nil {
				return err
			}
			p.Abonos = nil
			if err := uc.aplicarAbonado(ctx, r, p, decimal.Zero); err != nil {
				return err
			}
			pago = p
			return nil
		}

		n, err := r.Pagos.CountAbonos(ctx, p.ID)
		if err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("%w: la separación ya tiene abonos registrados", domain.ErrConflict)
		}
		now := uc.now()
		abono := &entity.AbonoPago{
			ID:            uuid.New().String(),
			PagoID:        p.ID,
			Monto:         p.MontoEsperado,
			FechaAbono:    now,
			MetodoPago:    "Efectivo",
			Notas:         strPtr("Separación marcada como pagada"),
			RegistradoPor: actor.UserID,
			CreatedAt:     now,
		}
		if err := r.Pagos.AddAbono(ctx, abono); err != nil {
			return err
		}
		p.Abonos = []*entity.AbonoPago{abono}
		if err := uc.aplicarAbonado(ctx, r, p, p.MontoEsperado); err != nil {
			return err
		}
		pago = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := toPagoResponse(pago)
	return &resp, nil
}

// aplicarAbonado persiste el nuevo abonado del pago y propaga al control y sus comisiones.
func (uc *PagoUseCase) aplicarAbonado(ctx context.Context, r ports.TxRepos, p *entity.PagoLocal, abonado decimal.Decimal) error {
	estado := pagos.EstadoPago(p.MontoEsperado, abonado)
	if err := r.Pagos.UpdateAbonado(ctx, p.ID, abonado, estado); err != nil {
		return err
	}
	p.MontoAbonado, p.Estado = abonado, estado

	if p.Tipo == entity.PagoInicial {
		restante := decimal.Max(p.Restante(), decimal.Zero)
		if err := r.ControlPagos.UpdateInicialRestante(ctx, p.ControlPagoID, restante); err != nil {
			return err
		}
		if estado == entity.PagoCompletado {
			n, err := r.Comisiones.Liberar(ctx, p.ControlPagoID, uc.now())
			if err != nil {
				return err
			}
			if n > 0 {
				log.Info().Str("control_pago_id", p.ControlPagoID).Int64("comisiones", n).Msg("pagos: inicial completo, comisiones disponibles")
			}
		}
	}

	control, err := r.ControlPagos.GetByID(ctx, p.ControlPagoID)
	if err != nil {
		return err
	}
	if control == nil || control.Estado == entity.ControlCancelado {
		return nil
	}
	calendario, err := r.Pagos.ListByControl(ctx, p.ControlPagoID)
	if err != nil {
		return err
	}
	completo := len(calendario) > 0
	for _, x := range calendario {
		if x.Estado != entity.PagoCompletado {
			completo = false
			break
		}
	}
	nuevo := entity.ControlActivo
	if completo {
		nuevo = entity.ControlCompletado
	}
	if nuevo != control.Estado {
		return r.ControlPagos.UpdateEstado(ctx, control.ID, nuevo)
	}
	return nil
}
