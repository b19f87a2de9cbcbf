// Package bootstrap arma repositorios, adaptadores y casos de uso a partir de la
// configuración. Lo comparten el servidor HTTP y ecoplazactl.
package bootstrap

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/ecoplaza/ecoplaza-api/internal/application/analytics"
	"github.com/ecoplaza/ecoplaza-api/internal/application/auth"
	"github.com/ecoplaza/ecoplaza-api/internal/application/permisos"
	"github.com/ecoplaza/ecoplaza-api/internal/application/ports"
	"github.com/ecoplaza/ecoplaza-api/internal/application/usecase"
	infraai "github.com/ecoplaza/ecoplaza-api/internal/infrastructure/ai"
	infrapdf "github.com/ecoplaza/ecoplaza-api/internal/infrastructure/pdf"
	"github.com/ecoplaza/ecoplaza-api/internal/infrastructure/postgres"
	"github.com/ecoplaza/ecoplaza-api/internal/infrastructure/storage"
	"github.com/ecoplaza/ecoplaza-api/internal/infrastructure/webhook"
	"github.com/ecoplaza/ecoplaza-api/pkg/config"
)

// Container casos de uso listos para usar.
type Container struct {
	Auth        *auth.AuthUseCase
	Usuarios    *usecase.UsuarioUseCase
	Proyectos   *usecase.ProyectoUseCase
	Leads       *usecase.LeadUseCase
	Locales     *usecase.LocalUseCase
	ControlPago *usecase.ControlPagoUseCase
	Pagos       *usecase.PagoUseCase
	Comisiones  *usecase.ComisionUseCase
	Corredores  *usecase.CorredorUseCase
	Reuniones   *usecase.ReunionUseCase
	Repulse     *usecase.RepulseUseCase
	Aprobacion  *usecase.AprobacionUseCase
	Executive   *analytics.ExecutiveUseCase
	Permisos    *permisos.Service
	Notifier    *webhook.N8NNotifier
}

// Build construye el contenedor. m puede ser nil (CLI).
func Build(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool, m ports.Metrics) (*Container, error) {
	if m == nil {
		m = ports.NopMetrics{}
	}

	usuarioRepo := postgres.NewUsuarioRepository(pool)
	vendedorRepo := postgres.NewVendedorRepository(pool)
	proyectoRepo := postgres.NewProyectoRepository(pool)
	leadRepo := postgres.NewLeadRepository(pool)
	localRepo := postgres.NewLocalRepository(pool)
	controlRepo := postgres.NewControlPagoRepository(pool)
	pagoRepo := postgres.NewPagoRepository(pool)
	comisionRepo := postgres.NewComisionRepository(pool)
	corredorRepo := postgres.NewCorredorRepository(pool)
	reunionRepo := postgres.NewReunionRepository(pool)
	itemRepo := postgres.NewActionItemRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	permSvc := permisos.NewService(postgres.NewRBACRepository(pool), permisos.Config{
		Enabled: cfg.RBAC.Enabled,
		TTL:     time.Duration(cfg.RBAC.CacheTTLMinutes) * time.Minute,
		Cleanup: time.Duration(cfg.RBAC.CleanupMinutes) * time.Minute,
	}, m)

	objStorage, err := storage.NewS3Storage(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}
	extractor, err := NewExtractor(ctx, cfg.AI)
	if err != nil {
		return nil, err
	}
	notifier := webhook.NewN8NNotifier(webhook.Endpoints{
		LeadAsignado: cfg.Webhook.LeadAsignadoURL,
		Repulse:      cfg.Webhook.RepulseURL,
		Aprobaciones: cfg.Webhook.AprobacionesURL,
	}, cfg.Webhook.MaxRetries, cfg.Webhook.RatePerSecond, m)

	return &Container{
		Auth: auth.NewAuthUseCase(usuarioRepo, auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		}),
		Usuarios:  usecase.NewUsuarioUseCase(usuarioRepo, txRunner, permSvc),
		Proyectos: usecase.NewProyectoUseCase(proyectoRepo),
		Leads:     usecase.NewLeadUseCase(leadRepo, usuarioRepo, vendedorRepo, proyectoRepo, notifier),
		Locales:   usecase.NewLocalUseCase(localRepo, proyectoRepo, txRunner, permSvc, m),
		ControlPago: usecase.NewControlPagoUseCase(txRunner, controlRepo, pagoRepo, infrapdf.NewMarotoEstadoCuenta(), usecase.ComisionConfig{
			PctVendedor: cfg.Comisiones.PctVendedor,
			PctGestion:  cfg.Comisiones.PctGestion,
		}),
		Pagos:      usecase.NewPagoUseCase(txRunner),
		Comisiones: usecase.NewComisionUseCase(comisionRepo, permSvc),
		Corredores: usecase.NewCorredorUseCase(corredorRepo, txRunner, objStorage, cfg.Storage.BucketDocumentos, permSvc),
		Reuniones: usecase.NewReunionUseCase(reunionRepo, itemRepo, usuarioRepo, txRunner, objStorage, extractor, usecase.ReunionConfig{
			Bucket:        cfg.Storage.BucketReuniones,
			PresignTTL:    time.Duration(cfg.Storage.PresignTTLMinutes) * time.Minute,
			RetencionDias: cfg.Cron.ReunionesRetencionDias,
		}),
		Repulse: usecase.NewRepulseUseCase(postgres.NewRepulseRepository(pool), notifier, usecase.RepulseConfig{
			CuotaLimite: cfg.Repulse.CuotaLimite,
			LoteTamano:  cfg.Repulse.LoteTamano,
			PausaEnvio:  time.Duration(cfg.Repulse.PausaEnvioMS) * time.Millisecond,
			PausaLote:   time.Duration(cfg.Repulse.PausaLoteMS) * time.Millisecond,
		}),
		Aprobacion: usecase.NewAprobacionUseCase(postgres.NewAprobacionRepository(pool), localRepo, usuarioRepo, notifier),
		Executive:  analytics.NewExecutiveUseCase(postgres.NewExecutiveRepository(pool)),
		Permisos:   permSvc,
		Notifier:   notifier,
	}, nil
}

// NewExtractor elige el proveedor de IA según AI_PROVIDER. Sin proveedor devuelve nil
// y la re-extracción de action items queda deshabilitada.
func NewExtractor(ctx context.Context, cfg config.AIConfig) (ports.ActionItemExtractor, error) {
	switch strings.ToLower(cfg.Provider) {
	case "anthropic":
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("AI_PROVIDER=anthropic requiere ANTHROPIC_API_KEY")
		}
		return infraai.NewAnthropicExtractor(cfg.AnthropicAPIKey, cfg.AnthropicModel), nil
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("AI_PROVIDER=gemini requiere GEMINI_API_KEY")
		}
		g, err := infraai.NewGeminiExtractor(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, fmt.Errorf("gemini: %w", err)
		}
		return g, nil
	case "":
		log.Warn().Msg("bootstrap: AI_PROVIDER vacío, re-extracción de action items deshabilitada")
		return nil, nil
	default:
		return nil, fmt.Errorf("AI_PROVIDER desconocido: %q", cfg.Provider)
	}
}
