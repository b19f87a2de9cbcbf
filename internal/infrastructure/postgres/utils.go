package postgres

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Schema DDL idempotente de la base de datos.
//
//go:embed schema.sql
var Schema string

// Querier es lo común entre *pgxpool.Pool y pgx.Tx; los repos funcionan con ambos.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// ApplySchema ejecuta el DDL embebido.
func ApplySchema(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// filtros acumula condiciones WHERE con placeholders numerados.
type filtros struct {
	conds []string
	args  []any
}

// add agrega una condición; cada "?" se reemplaza por el mismo $n.
func (f *filtros) add(cond string, arg any) {
	f.args = append(f.args, arg)
	f.conds = append(f.conds, strings.ReplaceAll(cond, "?", fmt.Sprintf("$%d", len(f.args))))
}

func (f *filtros) where() string {
	if len(f.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(f.conds, " AND ")
}

// and agrega condiciones fijas a las del filtro.
func (f *filtros) and(conds ...string) string {
	all := append(append([]string{}, f.conds...), conds...)
	if len(all) == 0 {
		return ""
	}
	g := filtros{conds: all}
	return g.where()
}

// next placeholder para LIMIT/OFFSET después de los filtros.
func (f *filtros) next(arg any) string {
	f.args = append(f.args, arg)
	return fmt.Sprintf("$%d", len(f.args))
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
