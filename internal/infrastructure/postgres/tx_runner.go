package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ecoplaza/ecoplaza-api/internal/application/ports"
)

var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repos ports.TxRepos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(ReposFor(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// ReposFor construye todos los repos sobre el mismo Querier (pool o tx).
func ReposFor(q Querier) ports.TxRepos {
	return ports.TxRepos{
		Usuarios:     NewUsuarioRepository(q),
		Vendedores:   NewVendedorRepository(q),
		Leads:        NewLeadRepository(q),
		Locales:      NewLocalRepository(q),
		ControlPagos: NewControlPagoRepository(q),
		Pagos:        NewPagoRepository(q),
		Comisiones:   NewComisionRepository(q),
		Corredores:   NewCorredorRepository(q),
		Reuniones:    NewReunionRepository(q),
		ActionItems:  NewActionItemRepository(q),
	}
}
