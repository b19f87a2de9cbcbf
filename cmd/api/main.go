package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/ecoplaza/ecoplaza-api/docs"
	"github.com/ecoplaza/ecoplaza-api/internal/bootstrap"
	"github.com/ecoplaza/ecoplaza-api/internal/infrastructure/metrics"
	"github.com/ecoplaza/ecoplaza-api/internal/infrastructure/postgres"
	httpRouter "github.com/ecoplaza/ecoplaza-api/internal/interfaces/http"
	"github.com/ecoplaza/ecoplaza-api/pkg/config"
	"github.com/ecoplaza/ecoplaza-api/pkg/logger"
)

// Grabaciones de reuniones hasta 2 GB por multipart.
const bodyLimit = 2 << 30

// @title EcoPlaza API
// @version 1.0
// @description Leads, semáforo de locales, control de pagos, comisiones, expansión y reuniones.
// @BasePath /
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
		File:  cfg.Log.File,
	})
	defer log.Close()
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("version", cfg.App.Version).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es requerido")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	m := metrics.New(prometheus.DefaultRegisterer)
	c, err := bootstrap.Build(ctx, cfg, pool, m)
	if err != nil {
		log.Fatal().Err(err).Msg("construir dependencias")
	}

	app := fiber.New(fiber.Config{
		AppName:           cfg.App.Name,
		BodyLimit:         bodyLimit,
		StreamRequestBody: true,
		ReadTimeout:       time.Minute * 10,
		WriteTimeout:      time.Minute * 3,
		IdleTimeout:       time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(m))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))

	// Swagger UI: http://localhost:<port>/docs
	if !cfg.IsProduction() {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "EcoPlaza API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         c.Auth,
		UsuarioUC:      c.Usuarios,
		ProyectoUC:     c.Proyectos,
		LeadUC:         c.Leads,
		LocalUC:        c.Locales,
		ControlPagoUC:  c.ControlPago,
		PagoUC:         c.Pagos,
		ComisionUC:     c.Comisiones,
		CorredorUC:     c.Corredores,
		ReunionUC:      c.Reuniones,
		RepulseUC:      c.Repulse,
		AprobacionUC:   c.Aprobacion,
		ExecutiveUC:    c.Executive,
		Permisos:       c.Permisos,
		JWTSecret:      cfg.JWT.Secret,
		CronSecret:     cfg.Cron.Secret,
		RetencionDias:  cfg.Cron.ReunionesRetencionDias,
		MetricsHandler: adaptor.HTTPHandler(promhttp.Handler()),
		Build: httpRouter.BuildInfo{
			Service:     cfg.App.Name,
			Version:     cfg.App.Version,
			BuildID:     cfg.App.BuildID,
			Environment: cfg.App.Env,
		},
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	// lotes de repulse y webhooks en vuelo
	c.Repulse.Wait()
	c.Notifier.Wait()

	log.Info().Msg("aplicación detenida")
}
