// Package aprobacion reglas de aprobación de descuentos sobre el precio de lista.
package aprobacion

import (
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/ecoplaza/ecoplaza-api/internal/domain/entity"
)

// Decisiones registradas en el historial de una solicitud.
const (
	DecisionAprobado  = "aprobado"
	DecisionRechazado = "rechazado"
)

var cien = decimal.NewFromInt(100)

// RangosPorDefecto se usan cuando el proyecto no tiene configuración guardada.
func RangosPorDefecto() []entity.RangoDescuento {
	d := decimal.NewFromInt
	return []entity.RangoDescuento{
		{Min: d(0), Max: d(5), Aprobadores: []string{}, Descripcion: "Sin aprobación requerida"},
		{Min: d(5), Max: d(10), Aprobadores: []string{entity.RolJefeVentas}, Descripcion: "Requiere jefe de ventas"},
		{Min: d(10), Max: d(15), Aprobadores: []string{entity.RolJefeVentas, entity.RolAdmin}, Descripcion: "Requiere jefe de ventas y administración"},
		{Min: d(15), Max: d(100), Aprobadores: []string{entity.RolAdmin}, Descripcion: "Requiere administración"},
	}
}

// Porcentaje descuento de negociado respecto de lista, con dos decimales.
func Porcentaje(lista, negociado decimal.Decimal) decimal.Decimal {
	if !lista.IsPositive() {
		return decimal.Zero
	}
	return lista.Sub(negociado).Div(lista).Mul(cien).Round(2)
}

// Requeridos roles que deben aprobar un descuento pct. El primer rango con
// min <= pct < max decide; por encima del último máximo aplica el último rango.
func Requeridos(rangos []entity.RangoDescuento, pct decimal.Decimal) (roles []string, descripcion string) {
	for _, r := range rangos {
		if pct.GreaterThanOrEqual(r.Min) && pct.LessThan(r.Max) {
			return r.Aprobadores, r.Descripcion
		}
	}
	if n := len(rangos); n > 0 && pct.GreaterThanOrEqual(rangos[n-1].Max) {
		return rangos[n-1].Aprobadores, rangos[n-1].Descripcion
	}
	return nil, "Sin aprobación requerida"
}

// ValidarRangos exige tramos ordenados dentro de 0..100 con min < max.
func ValidarRangos(rangos []entity.RangoDescuento) error {
	if len(rangos) == 0 {
		return fmt.Errorf("se requiere al menos un rango")
	}
	for i, r := range rangos {
		if r.Min.IsNegative() || r.Max.GreaterThan(cien) || !r.Min.LessThan(r.Max) {
			return fmt.Errorf("rango %d: debe cumplir 0 <= min < max <= 100", i+1)
		}
		if i > 0 && r.Min.LessThan(rangos[i-1].Max) {
			return fmt.Errorf("rango %d: se superpone con el anterior", i+1)
		}
	}
	return nil
}

// RolQueAprueba rol con el que cuenta el voto del usuario. Admin y superadmin
// pueden aprobar cualquier solicitud; el resto solo si su rol es requerido.
func RolQueAprueba(rol string, requeridos []string) (string, bool) {
	if slices.Contains(requeridos, rol) {
		return rol, true
	}
	if rol == entity.RolAdmin || rol == entity.RolSuperadmin {
		return entity.RolAdmin, true
	}
	return "", false
}

// YaVoto indica si el rol ya registró una aprobación.
func YaVoto(decisiones []entity.DecisionAprobacion, rol string) bool {
	return slices.ContainsFunc(decisiones, func(d entity.DecisionAprobacion) bool {
		return d.Rol == rol && d.Decision == DecisionAprobado
	})
}

// Completa indica si todos los roles requeridos aprobaron.
func Completa(requeridos []string, decisiones []entity.DecisionAprobacion) bool {
	for _, rol := range requeridos {
		if !YaVoto(decisiones, rol) {
			return false
		}
	}
	return true
}
