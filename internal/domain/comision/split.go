// Package comision reparte la comisión de una venta entre las fases vendedor y gestión.
package comision

import (
	"github.com/ecoplaza/ecoplaza-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

var cien = decimal.NewFromInt(100)

// Participante usuario que interviene en la venta.
type Participante struct {
	UsuarioID string
	Rol       string
}

// Entrada datos de la venta procesada.
type Entrada struct {
	MontoVenta      decimal.Decimal
	PctVendedor     decimal.Decimal
	PctGestion      decimal.Decimal
	Vendedores      []Participante // vendedor del lead, quien pasó a naranja, quien pasó a rojo
	Gestor          *Participante  // quien procesó la venta
	InicialCompleta bool
}

// Linea comisión calculada para un usuario y fase.
type Linea struct {
	UsuarioID  string
	Rol        string
	Fase       string
	Porcentaje decimal.Decimal
	Monto      decimal.Decimal
	Estado     string
}

// Monto monto_venta × pct / 100, redondeado a 2 decimales.
func Monto(montoVenta, pct decimal.Decimal) decimal.Decimal {
	return montoVenta.Mul(pct).Div(cien).Round(2)
}

// Calcular genera las líneas de comisión. Los vendedores repetidos se cuentan una vez
// y el residuo del redondeo queda en el primero.
func Calcular(e Entrada) []Linea {
	estado := entity.ComisionPendienteInicial
	if e.InicialCompleta {
		estado = entity.ComisionDisponible
	}

	var lineas []Linea
	vendedores := unicos(e.Vendedores)
	if n := len(vendedores); n > 0 && e.PctVendedor.IsPositive() {
		lineas = append(lineas, repartir(vendedores, entity.FaseVendedor, e.MontoVenta, e.PctVendedor, estado)...)
	}
	if e.Gestor != nil && e.Gestor.UsuarioID != "" && e.PctGestion.IsPositive() {
		lineas = append(lineas, Linea{
			UsuarioID:  e.Gestor.UsuarioID,
			Rol:        e.Gestor.Rol,
			Fase:       entity.FaseGestion,
			Porcentaje: e.PctGestion,
			Monto:      Monto(e.MontoVenta, e.PctGestion),
			Estado:     estado,
		})
	}
	return lineas
}

func repartir(ps []Participante, fase string, montoVenta, pct decimal.Decimal, estado string) []Linea {
	n := decimal.NewFromInt(int64(len(ps)))
	total := Monto(montoVenta, pct)
	cada := total.Div(n).RoundDown(2)
	pctCada := pct.Div(n).RoundDown(4)

	out := make([]Linea, 0, len(ps))
	for i, p := range ps {
		monto, porc := cada, pctCada
		if i == 0 {
			resto := decimal.NewFromInt(int64(len(ps) - 1))
			monto = total.Sub(cada.Mul(resto))
			porc = pct.Sub(pctCada.Mul(resto))
		}
		out = append(out, Linea{
			UsuarioID:  p.UsuarioID,
			Rol:        p.Rol,
			Fase:       fase,
			Porcentaje: porc,
			Monto:      monto,
			Estado:     estado,
		})
	}
	return out
}

func unicos(ps []Participante) []Participante {
	vistos := make(map[string]bool, len(ps))
	out := make([]Participante, 0, len(ps))
	for _, p := range ps {
		if p.UsuarioID == "" || vistos[p.UsuarioID] {
			continue
		}
		vistos[p.UsuarioID] = true
		out = append(out, p)
	}
	return out
}
