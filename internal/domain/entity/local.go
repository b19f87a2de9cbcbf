package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del semáforo de un local.
const (
	LocalVerde    = "verde"
	LocalAmarillo = "amarillo"
	LocalNaranja  = "naranja"
	LocalRojo     = "rojo"
)

// EstadosLocal en el orden del pipeline.
var EstadosLocal = []string{LocalVerde, LocalAmarillo, LocalNaranja, LocalRojo}

// EsEstadoLocalValido indica si estado es un color del semáforo.
func EsEstadoLocalValido(estado string) bool {
	for _, e := range EstadosLocal {
		if e == estado {
			return true
		}
	}
	return false
}

// Local unidad inmobiliaria en venta.
type Local struct {
	ID                   string
	Codigo               string
	ProyectoID           string
	Metraje              decimal.Decimal
	PrecioBase           *decimal.Decimal
	Estado               string
	Bloqueado            bool
	MontoVenta           *decimal.Decimal
	LeadID               *string
	VendedorActualID     *string
	VendedorCerroVentaID *string
	FechaCierreVenta     *time.Time
	UsuarioPasoNaranjaID *string
	UsuarioPasoRojoID    *string
	EnControlPagos       bool
	CreatedAt            time.Time
	UpdatedAt            time.Time

	ProyectoNombre *string
}

// LocalHistorial registro de cada cambio de estado o de monto.
type LocalHistorial struct {
	ID             string
	LocalID        string
	UsuarioID      string
	EstadoAnterior string
	EstadoNuevo    string
	Accion         string
	CreatedAt      time.Time

	UsuarioNombre *string
}

// LocalFilter filtros del listado paginado.
type LocalFilter struct {
	ProyectoID string
	Estado     string
	MetrajeMin *decimal.Decimal
	MetrajeMax *decimal.Decimal
	Page       int
	PageSize   int
}

// LocalStats conteo por color.
type LocalStats struct {
	Verde    int
	Amarillo int
	Naranja  int
	Rojo     int
	Total    int
}
