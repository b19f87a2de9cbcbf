package repository

import (
	"context"
	"time"

	"github.com/ecoplaza/ecoplaza-api/internal/domain/entity"
)

// RepulseRepository puerto de persistencia de las campañas de re-engagement.
type RepulseRepository interface {
	// Templates activos del proyecto.
	ListTemplates(ctx context.Context, proyectoID string) ([]*entity.RepulseTemplate, error)
	GetTemplate(ctx context.Context, id string) (*entity.RepulseTemplate, error)
	CreateTemplate(ctx context.Context, t *entity.RepulseTemplate) error
	UpdateTemplate(ctx context.Context, t *entity.RepulseTemplate) error

	ListLeads(ctx context.Context, f entity.RepulseLeadFilter) ([]*entity.RepulseLead, error)
	GetLead(ctx context.Context, id string) (*entity.RepulseLead, error)
	// CreateLead devuelve domain.ErrDuplicate si el lead ya está en la campaña del proyecto.
	CreateLead(ctx context.Context, rl *entity.RepulseLead) error
	UpdateEstado(ctx context.Context, id, estado string, ahora time.Time) error
	DeleteLead(ctx context.Context, id string) error
	Elegibilidad(ctx context.Context, leadID string) (entity.RepulseElegibilidad, error)
	// SetExcluido marca el lead base y mueve sus entradas de campaña a excluido
	// (o de vuelta a pendiente al reincluir).
	SetExcluido(ctx context.Context, leadID string, excluido bool, ahora time.Time) error
	// Candidatos leads creados antes de corte, sin exclusión, sin compra y fuera de la campaña.
	Candidatos(ctx context.Context, proyectoID string, corte time.Time) ([]*entity.Lead, error)
	Stats(ctx context.Context, proyectoID string) (*entity.RepulseStats, error)
	// LeadsCampaniaDesde leads que no son manuales creados desde t.
	LeadsCampaniaDesde(ctx context.Context, t time.Time) (int, error)

	CreateEnvios(ctx context.Context, es []*entity.RepulseEnvio) error
	GetEnvio(ctx context.Context, id string) (*entity.RepulseEnvio, error)
	UpdateEnvio(ctx context.Context, e *entity.RepulseEnvio) error
	ListEnvios(ctx context.Context, leadID string) ([]*entity.RepulseEnvio, error)
	EstadoBatch(ctx context.Context, batchID string) (*entity.RepulseBatchEstado, error)
	// RegistrarEnvio incrementa el conteo del lead y lo deja en enviado.
	RegistrarEnvio(ctx context.Context, repulseLeadID string, templateID *string, ahora time.Time) error
}
