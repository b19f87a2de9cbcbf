// Package pdf genera el estado de cuenta de una venta con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Proyecto + Local      │  Estado de cuenta + Fecha  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: nombre + teléfono                                 │
//	│  VENTA: monto, separación, inicial, financiamiento          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Tipo | N° | Vence | Esperado | Abonado | Estado     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: avance del inicial y cuotas                       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/ecoplaza/ecoplaza-api/internal/domain/entity"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/pagos"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 27, Green: 94, Blue: 32}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorHeader  = &props.Color{Red: 46, Green: 125, Blue: 50}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoEstadoCuenta implementa ports.EstadoCuentaPDF usando Maroto v2.
type MarotoEstadoCuenta struct {
	now func() time.Time
}

// NewMarotoEstadoCuenta construye el generador.
func NewMarotoEstadoCuenta() *MarotoEstadoCuenta { return &MarotoEstadoCuenta{now: time.Now} }

// EstadoCuenta genera el PDF y devuelve sus bytes.
func (g *MarotoEstadoCuenta) EstadoCuenta(c *entity.ControlPago, calendario []*entity.PagoLocal, resumen pagos.Resumen) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Estado de cuenta "+c.CodigoLocal, true).
		WithAuthor("EcoPlaza", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(c, g.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clienteRow(c))
	m.AddRows(ventaRow(c))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(calendario)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(resumenRows(resumen)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar estado de cuenta: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(c *entity.ControlPago, ahora time.Time) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(c.ProyectoNombre, "EcoPlaza"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Local "+c.CodigoLocal+"  |  "+c.Metraje.StringFixed(2)+" m²", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("ESTADO DE CUENTA", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Emitido: "+ahora.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
			text.New("Control: "+strings.ToUpper(c.Estado), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

func clienteRow(c *entity.ControlPago) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(nonEmpty(c.LeadNombre, "Sin nombre"), props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New("Tel: "+nonEmpty(c.LeadTelefono, "-"), props.Text{Size: 8, Top: 11, Color: colorGray}),
		),
	)
}

func ventaRow(c *entity.ControlPago) core.Row {
	financiamiento := "Sin financiamiento"
	if c.ConFinanciamiento {
		financiamiento = fmt.Sprintf("%d cuotas", c.NumeroCuotas)
		if c.TEA != nil {
			financiamiento += "  |  TEA " + c.TEA.StringFixed(2) + "%"
		}
	}
	dato := func(label, valor string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1}),
			text.New(valor, props.Text{Style: fontstyle.Bold, Size: 9, Top: 5}),
		)
	}
	return row.New(16).Add(
		dato("Monto de venta", money(c.MontoVenta)),
		dato("Separación", money(c.MontoSeparacion)),
		dato("Inicial", money(c.MontoInicial)),
		dato("Financiamiento", financiamiento),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorHeader}).Add(
		h("Tipo", 2, align.Left),
		h("N°", 1, align.Center),
		h("Vence", 2, align.Center),
		h("Esperado", 2, align.Right),
		h("Abonado", 2, align.Right),
		h("Estado", 3, align.Center),
	)
}

func tableRows(calendario []*entity.PagoLocal) []core.Row {
	out := make([]core.Row, 0, len(calendario))
	for _, p := range calendario {
		numero := "-"
		if p.NumeroCuota != nil {
			numero = fmt.Sprintf("%d", *p.NumeroCuota)
		}
		celda := func(s string, size int, a align.Type) core.Col {
			return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
		}
		out = append(out, row.New(7).Add(
			celda(etiquetaTipo(p.Tipo), 2, align.Left),
			celda(numero, 1, align.Center),
			celda(p.FechaEsperada.Format("02/01/2006"), 2, align.Center),
			celda(money(p.MontoEsperado), 2, align.Right),
			celda(money(p.MontoAbonado), 2, align.Right),
			celda(strings.ToUpper(p.Estado), 3, align.Center),
		))
	}
	return out
}

func resumenRows(r pagos.Resumen) []core.Row {
	proxima := "-"
	if r.Cuotas.ProximaFecha != nil {
		proxima = r.Cuotas.ProximaFecha.Format("02/01/2006")
	}
	return []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("RESUMEN", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		)),
		row.New(6).Add(col.New(12).Add(text.New(
			fmt.Sprintf("Inicial: %s de %s (%d%%)  |  %s",
				money(r.Inicial.Abonado), money(r.Inicial.Esperado), r.Inicial.Porcentaje, strings.ToUpper(r.Inicial.Estado)),
			props.Text{Size: 8, Top: 1},
		))),
		row.New(6).Add(col.New(12).Add(text.New(
			fmt.Sprintf("Cuotas: %d en total  |  %d pagadas  |  %d parciales  |  %d pendientes  |  %d vencidas",
				r.Cuotas.Total, r.Cuotas.Pagadas, r.Cuotas.Parciales, r.Cuotas.Pendientes, r.Cuotas.Vencidas),
			props.Text{Size: 8, Top: 1},
		))),
		row.New(6).Add(col.New(12).Add(text.New(
			"Próximo vencimiento: "+proxima, props.Text{Size: 8, Top: 1, Color: colorGray},
		))),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func etiquetaTipo(tipo string) string {
	switch tipo {
	case entity.PagoSeparacion:
		return "Separación"
	case entity.PagoInicial:
		return "Inicial"
	case entity.PagoCuota:
		return "Cuota"
	}
	return tipo
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// money "$ 1,234,567.80".
func money(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$ " + pagos.FormatMonto(d.Neg())
	}
	return "$ " + pagos.FormatMonto(d)
}
