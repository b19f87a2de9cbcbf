package ports

import (
	"github.com/ecoplaza/ecoplaza-api/internal/domain/entity"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/pagos"
)

// EstadoCuentaPDF genera el estado de cuenta de una venta procesada.
type EstadoCuentaPDF interface {
	EstadoCuenta(control *entity.ControlPago, calendario []*entity.PagoLocal, resumen pagos.Resumen) ([]byte, error)
}
