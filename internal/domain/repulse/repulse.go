// Package repulse reglas de las campañas de re-engagement por WhatsApp.
package repulse

import (
	"math"
	"strings"
	"time"

	"github.com/ecoplaza/ecoplaza-api/internal/domain/entity"
)

const (
	NombrePorDefecto  = "Cliente"
	FechaPorConfirmar = "fecha por confirmar"
	CuotaPorDefecto   = 250

	// DiasCandidato antigüedad mínima de un lead para volver a contactarlo.
	DiasCandidato = 30
)

// Personalizar reemplaza {{nombre}} y {{telefono}} en el mensaje.
func Personalizar(mensaje string, nombre *string, telefono string) string {
	n := NombrePorDefecto
	if nombre != nil && strings.TrimSpace(*nombre) != "" {
		n = strings.TrimSpace(*nombre)
	}
	return strings.NewReplacer("{{nombre}}", n, "{{telefono}}", telefono).Replace(mensaje)
}

// FechaVisita texto de la fecha de visita para la plantilla de Meta.
func FechaVisita(horario *string) string {
	if horario == nil || strings.TrimSpace(*horario) == "" {
		return FechaPorConfirmar
	}
	return strings.TrimSpace(*horario)
}

// EstadoValido estados que se pueden asignar a mano.
func EstadoValido(estado string) bool {
	switch estado {
	case entity.RepulsePendiente, entity.RepulseEnviado, entity.RepulseRespondio,
		entity.RepulseSinRespuesta, entity.RepulseExcluido:
		return true
	}
	return false
}

// CorteCandidato fecha de creación máxima para que un lead sea candidato.
func CorteCandidato(ahora time.Time) time.Time {
	return ahora.AddDate(0, 0, -DiasCandidato)
}

// Cuota uso del cupo diario de conversaciones de WhatsApp.
type Cuota struct {
	LeadsHoy        int
	Limite          int
	Disponible      int
	PorcentajeUsado int
}

// CalcularCuota con límite no positivo usa el valor por defecto.
func CalcularCuota(leadsHoy, limite int) Cuota {
	if limite <= 0 {
		limite = CuotaPorDefecto
	}
	return Cuota{
		LeadsHoy:        leadsHoy,
		Limite:          limite,
		Disponible:      max(0, limite-leadsHoy),
		PorcentajeUsado: int(math.Round(float64(leadsHoy) / float64(limite) * 100)),
	}
}

var lima = cargarLima()

func cargarLima() *time.Location {
	if loc, err := time.LoadLocation("America/Lima"); err == nil {
		return loc
	}
	// Perú no tiene horario de verano
	return time.FixedZone("PET", -5*60*60)
}

// InicioDelDia medianoche de Lima del día de t.
func InicioDelDia(t time.Time) time.Time {
	l := t.In(lima)
	return time.Date(l.Year(), l.Month(), l.Day(), 0, 0, 0, 0, lima)
}

// Lotes parte items en grupos de tamaño n conservando el orden.
func Lotes[T any](items []T, n int) [][]T {
	if n <= 0 {
		n = 1
	}
	var out [][]T
	for i := 0; i < len(items); i += n {
		out = append(out, items[i:min(i+n, len(items))])
	}
	return out
}
