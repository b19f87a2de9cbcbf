// Package semaforo contiene las reglas de transición del semáforo de locales
// (verde → amarillo → naranja → rojo). Es lógica pura: no persiste nada.
package semaforo

import (
	"fmt"
	"time"

	"github.com/ecoplaza/ecoplaza-api/internal/domain"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/entity"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/pagos"
	"github.com/shopspring/decimal"
)

// Cambio describe el efecto de una transición ya aplicada sobre el local.
type Cambio struct {
	EstadoAnterior     string
	EstadoNuevo        string
	Accion             string
	RegistrarHistorial bool // solo si el estado realmente cambió
}

// Opciones permisos del actor que condicionan la transición.
type Opciones struct {
	// PuedeLiberarVenta permite volver a verde un local en rojo (admin / jefe_ventas).
	PuedeLiberarVenta bool
}

// Aplicar valida la transición y muta local en consecuencia.
func Aplicar(local *entity.Local, nuevo, usuarioID string, opts Opciones, ahora time.Time) (*Cambio, error) {
	if !entity.EsEstadoLocalValido(nuevo) {
		return nil, fmt.Errorf("%w: %q", domain.ErrEstadoInvalido, nuevo)
	}
	if local.Bloqueado && nuevo != entity.LocalVerde {
		return nil, domain.ErrLocalBloqueado
	}
	if nuevo == entity.LocalVerde && local.Estado == entity.LocalRojo {
		if !opts.PuedeLiberarVenta {
			return nil, fmt.Errorf("%w: solo admin puede liberar un local vendido", domain.ErrForbidden)
		}
		if local.EnControlPagos {
			return nil, fmt.Errorf("%w: el local ya está en control de pagos", domain.ErrConflict)
		}
	}

	anterior := local.Estado
	actor := usuarioID
	local.Estado = nuevo
	local.VendedorActualID = &actor

	switch nuevo {
	case entity.LocalNaranja:
		local.UsuarioPasoNaranjaID = &actor
	case entity.LocalRojo:
		fecha := ahora
		local.Bloqueado = true
		local.VendedorCerroVentaID = &actor
		local.UsuarioPasoRojoID = &actor
		local.FechaCierreVenta = &fecha
	case entity.LocalVerde:
		local.Bloqueado = false
		local.VendedorCerroVentaID = nil
		local.FechaCierreVenta = nil
		local.UsuarioPasoNaranjaID = nil
		local.UsuarioPasoRojoID = nil
		local.MontoVenta = nil
		local.LeadID = nil
	}

	return &Cambio{
		EstadoAnterior:     anterior,
		EstadoNuevo:        nuevo,
		Accion:             AccionDe(nuevo),
		RegistrarHistorial: anterior != nuevo,
	}, nil
}

// AccionDe texto del historial para el estado destino.
func AccionDe(estado string) string {
	switch estado {
	case entity.LocalRojo:
		return "Vendedor cerró venta"
	case entity.LocalNaranja:
		return "Cliente confirmó que tomará el local"
	case entity.LocalAmarillo:
		return "Vendedor inició negociación"
	case entity.LocalVerde:
		return "Local liberado"
	default:
		return "Cambio de estado"
	}
}

// ValidarMonto el monto de venta solo se fija en naranja y debe ser positivo.
func ValidarMonto(local *entity.Local, monto decimal.Decimal) error {
	if local.Estado != entity.LocalNaranja {
		return fmt.Errorf("%w: solo se puede establecer monto en estado naranja", domain.ErrEstadoInvalido)
	}
	if !monto.IsPositive() {
		return fmt.Errorf("%w: el monto debe ser mayor a 0", domain.ErrInvalidInput)
	}
	return nil
}

// AccionMonto texto del historial al fijar o cambiar el monto de venta.
func AccionMonto(anterior *decimal.Decimal, nuevo decimal.Decimal) string {
	if anterior == nil {
		return "Estableció monto de venta: S/ " + pagos.FormatMonto(nuevo)
	}
	return fmt.Sprintf("Actualizó monto de venta de S/ %s a S/ %s", pagos.FormatMonto(*anterior), pagos.FormatMonto(nuevo))
}
