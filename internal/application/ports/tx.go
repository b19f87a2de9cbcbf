package ports

import (
	"context"

	"github.com/ecoplaza/ecoplaza-api/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Usuarios     repository.UsuarioRepository
	Vendedores   repository.VendedorRepository
	Leads        repository.LeadRepository
	Locales      repository.LocalRepository
	ControlPagos repository.ControlPagoRepository
	Pagos        repository.PagoRepository
	Comisiones   repository.ComisionRepository
	Corredores   repository.CorredorRepository
	Reuniones    repository.ReunionRepository
	ActionItems  repository.ActionItemRepository
}

// TxRunner ejecuta fn dentro de una transacción; si fn devuelve error se hace rollback.
type TxRunner interface {
	Run(ctx context.Context, fn func(r TxRepos) error) error
}
