// Package csvimport lee los CSV de carga masiva de locales y leads.
// La primera fila es la cabecera; el orden de columnas es libre.
package csvimport

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ecoplaza/ecoplaza-api/internal/application/dto"
	"github.com/ecoplaza/ecoplaza-api/internal/domain"
)

type tabla struct {
	cols  map[string]int
	filas [][]string
}

func leer(r io.Reader, requeridas ...string) (*tabla, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	registros, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: csv: %v", domain.ErrInvalidInput, err)
	}
	if len(registros) == 0 {
		return nil, fmt.Errorf("%w: csv vacío", domain.ErrInvalidInput)
	}
	t := &tabla{cols: make(map[string]int), filas: registros[1:]}
	for i, h := range registros[0] {
		t.cols[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, c := range requeridas {
		if _, ok := t.cols[c]; !ok {
			return nil, fmt.Errorf("%w: falta la columna %q", domain.ErrInvalidInput, c)
		}
	}
	return t, nil
}

func (t *tabla) valor(fila []string, col string) string {
	i, ok := t.cols[col]
	if !ok || i >= len(fila) {
		return ""
	}
	return strings.TrimSpace(fila[i])
}

func (t *tabla) opcional(fila []string, col string) *string {
	v := t.valor(fila, col)
	if v == "" {
		return nil
	}
	return &v
}

// Locales columnas codigo, proyecto, metraje y opcionales precio_base y estado.
func Locales(r io.Reader) ([]dto.ImportLocalRow, error) {
	t, err := leer(r, "codigo", "proyecto", "metraje")
	if err != nil {
		return nil, err
	}
	out := make([]dto.ImportLocalRow, 0, len(t.filas))
	var errs []error
	for i, f := range t.filas {
		row := dto.ImportLocalRow{
			Codigo:   t.valor(f, "codigo"),
			Proyecto: t.valor(f, "proyecto"),
			Estado:   strings.ToLower(t.valor(f, "estado")),
		}
		if m := t.valor(f, "metraje"); m != "" {
			d, err := decimal.NewFromString(m)
			if err != nil {
				errs = append(errs, fmt.Errorf("fila %d: metraje %q", i+2, m))
				continue
			}
			row.Metraje = d
		}
		if p := t.valor(f, "precio_base"); p != "" {
			d, err := decimal.NewFromString(p)
			if err != nil {
				errs = append(errs, fmt.Errorf("fila %d: precio_base %q", i+2, p))
				continue
			}
			row.PrecioBase = &d
		}
		out = append(out, row)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, errors.Join(errs...))
	}
	return out, nil
}

// Leads columnas nombre, telefono, email_vendedor, utm y opcionales email y rubro.
func Leads(r io.Reader) ([]dto.ImportLeadRow, error) {
	t, err := leer(r, "nombre", "telefono", "email_vendedor", "utm")
	if err != nil {
		return nil, err
	}
	out := make([]dto.ImportLeadRow, 0, len(t.filas))
	for _, f := range t.filas {
		out = append(out, dto.ImportLeadRow{
			Nombre:        t.valor(f, "nombre"),
			Telefono:      t.valor(f, "telefono"),
			EmailVendedor: t.valor(f, "email_vendedor"),
			UTM:           t.valor(f, "utm"),
			Email:         t.opcional(f, "email"),
			Rubro:         t.opcional(f, "rubro"),
		})
	}
	return out, nil
}
