package repository

import (
	"context"

	"github.com/ecoplaza/ecoplaza-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ControlPagoRepository puerto de persistencia de ventas procesadas.
type ControlPagoRepository interface {
	Create(ctx context.Context, c *entity.ControlPago) error
	GetByID(ctx context.Context, id string) (*entity.ControlPago, error)
	GetByLocal(ctx context.Context, localID string) (*entity.ControlPago, error)
	List(ctx context.Context, estado string, limit, offset int) ([]*entity.ControlPago, int, error)
	Stats(ctx context.Context) (*entity.ControlPagoStats, error)
	UpdateInicialRestante(ctx context.Context, id string, monto decimal.Decimal) error
	UpdateEstado(ctx context.Context, id, estado string) error
}

// PagoRepository puerto del calendario de pagos y sus abonos.
type PagoRepository interface {
	CreateBatch(ctx context.Context, pagos []*entity.PagoLocal) error
	GetByID(ctx context.Context, id string) (*entity.PagoLocal, error)
	// GetForUpdate bloquea la fila del pago (usar dentro de una transacción).
	GetForUpdate(ctx context.Context, id string) (*entity.PagoLocal, error)
	// ListByControl devuelve los pagos ordenados por fecha_esperada con sus abonos.
	ListByControl(ctx context.Context, controlID string) ([]*entity.PagoLocal, error)
	UpdateAbonado(ctx context.Context, id string, abonado decimal.Decimal, estado string) error

	AddAbono(ctx context.Context, a *entity.AbonoPago) error
	CountAbonos(ctx context.Context, pagoID string) (int, error)
	DeleteAbonos(ctx context.Context, pagoID string) error
}
