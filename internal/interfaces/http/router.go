package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/ecoplaza/ecoplaza-api/internal/application/analytics"
	"github.com/ecoplaza/ecoplaza-api/internal/application/auth"
	"github.com/ecoplaza/ecoplaza-api/internal/application/permisos"
	"github.com/ecoplaza/ecoplaza-api/internal/application/usecase"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/entity"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/rbac"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	UsuarioUC     *usecase.UsuarioUseCase
	ProyectoUC    *usecase.ProyectoUseCase
	LeadUC        *usecase.LeadUseCase
	LocalUC       *usecase.LocalUseCase
	ControlPagoUC *usecase.ControlPagoUseCase
	PagoUC        *usecase.PagoUseCase
	ComisionUC    *usecase.ComisionUseCase
	CorredorUC    *usecase.CorredorUseCase
	ReunionUC     *usecase.ReunionUseCase
	RepulseUC     *usecase.RepulseUseCase
	AprobacionUC  *usecase.AprobacionUseCase
	ExecutiveUC   *analytics.ExecutiveUseCase
	Permisos      *permisos.Service
	JWTSecret     string
	CronSecret    string
	RetencionDias int
	Build         BuildInfo
	// MetricsHandler expone /metrics; nil lo omite.
	MetricsHandler fiber.Handler
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	perm := func(modulo, accion string) fiber.Handler {
		return RequirePermission(deps.Permisos, modulo, accion)
	}

	app.Get("/health", Health(deps.Build))
	if deps.MetricsHandler != nil {
		app.Get("/metrics", deps.MetricsHandler)
	}

	api := app.Group("/api")
	api.Get("/version", Version(deps.Build))

	usuarioHandler := NewUsuarioHandler(deps.UsuarioUC, deps.ProyectoUC)
	reunionHandler := NewReunionHandler(deps.ReunionUC, deps.RetencionDias)
	repulseHandler := NewRepulseHandler(deps.RepulseUC)

	// Públicos
	api.Get("/public/proyectos", cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,OPTIONS"}), usuarioHandler.ProyectosPublicos)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)
	api.Get("/cron/cleanup-reuniones", CronAuth(deps.CronSecret), reunionHandler.Cleanup)
	api.Get("/cron/repulse-detect", CronAuth(deps.CronSecret), repulseHandler.Detectar)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)
	protected.Get("/proyectos", usuarioHandler.Proyectos)

	usuarios := protected.Group("/usuarios")
	usuarios.Get("/", perm(rbac.ModUsuarios, rbac.AccRead), usuarioHandler.List)
	usuarios.Post("/", RequireRole(entity.RolAdmin), usuarioHandler.Create)
	usuarios.Patch("/:id/activo", RequireRole(entity.RolAdmin), usuarioHandler.SetActivo)

	// RBAC
	rbacHandler := NewRBACHandler(deps.Permisos)
	protected.Get("/permissions", rbacHandler.Permissions)
	dev := protected.Group("/dev", RequireRole())
	dev.Post("/clear-rbac-cache", rbacHandler.ClearCache)
	dev.Get("/rbac-cache-stats", rbacHandler.CacheStats)

	// Leads
	leads := protected.Group("/leads")
	leadHandler := NewLeadHandler(deps.LeadUC)
	leads.Get("/", perm(rbac.ModLeads, rbac.AccRead), leadHandler.List)
	leads.Get("/stats", perm(rbac.ModLeads, rbac.AccRead), leadHandler.Stats)
	leads.Get("/search", perm(rbac.ModLeads, rbac.AccRead), leadHandler.Search)
	leads.Post("/", perm(rbac.ModLeads, rbac.AccWrite), leadHandler.CreateManual)
	leads.Post("/visita", perm(rbac.ModLeads, rbac.AccWrite), leadHandler.RegistrarVisita)
	leads.Post("/import", RequireRole(entity.RolAdmin), leadHandler.Import)
	leads.Patch("/:id/asignar", perm(rbac.ModLeads, rbac.AccAssign), leadHandler.Asignar)

	// Locales (semáforo)
	locales := protected.Group("/locales")
	localHandler := NewLocalHandler(deps.LocalUC)
	locales.Get("/", perm(rbac.ModLocales, rbac.AccRead), localHandler.List)
	locales.Get("/stats", perm(rbac.ModLocales, rbac.AccRead), localHandler.Stats)
	locales.Post("/import", RequireRole(entity.RolAdmin), localHandler.Import)
	locales.Get("/:id", perm(rbac.ModLocales, rbac.AccRead), localHandler.GetByID)
	locales.Get("/:id/historial", perm(rbac.ModLocales, rbac.AccRead), localHandler.Historial)
	locales.Patch("/:id/estado", perm(rbac.ModLocales, rbac.AccCambiarEstado), localHandler.CambiarEstado)
	locales.Patch("/:id/monto", perm(rbac.ModLocales, rbac.AccCambiarPrecio), localHandler.SetMonto)
	locales.Post("/:id/desbloquear", RequireRole(entity.RolAdmin), localHandler.Desbloquear)
	locales.Delete("/:id", RequireRole(entity.RolAdmin), localHandler.Delete)

	// Control de pagos
	controlHandler := NewControlPagoHandler(deps.ControlPagoUC, deps.PagoUC)
	cp := protected.Group("/control-pagos")
	cp.Post("/", RequireRole(entity.RolAdmin, entity.RolJefeVentas), controlHandler.ProcesarVenta)
	cp.Get("/", perm(rbac.ModControlPagos, rbac.AccRead), controlHandler.List)
	cp.Get("/stats", perm(rbac.ModControlPagos, rbac.AccRead), controlHandler.Stats)
	cp.Get("/local/:localId", perm(rbac.ModControlPagos, rbac.AccRead), controlHandler.GetByLocal)
	cp.Get("/:id", perm(rbac.ModControlPagos, rbac.AccRead), controlHandler.GetByID)
	cp.Get("/:id/pagos", perm(rbac.ModControlPagos, rbac.AccRead), controlHandler.Pagos)
	cp.Get("/:id/pagos/stats", perm(rbac.ModControlPagos, rbac.AccRead), controlHandler.PagosStats)
	cp.Get("/:id/pdf", perm(rbac.ModControlPagos, rbac.AccRead), controlHandler.EstadoCuentaPDF)
	pagos := protected.Group("/pagos")
	pagos.Post("/:id/abonos", perm(rbac.ModControlPagos, rbac.AccWrite), controlHandler.RegistrarAbono)
	pagos.Post("/:id/separacion", perm(rbac.ModControlPagos, rbac.AccWrite), controlHandler.MarcarSeparacion)

	// Comisiones
	comisionHandler := NewComisionHandler(deps.ComisionUC)
	com := protected.Group("/comisiones")
	com.Get("/", perm(rbac.ModComisiones, rbac.AccRead), comisionHandler.Mine)
	com.Get("/all", RequireRole(entity.RolAdmin, entity.RolJefeVentas), comisionHandler.All)
	com.Get("/stats", perm(rbac.ModComisiones, rbac.AccRead), comisionHandler.Stats)
	com.Get("/local/:localId", perm(rbac.ModComisiones, rbac.AccRead), comisionHandler.Trazabilidad)
	com.Patch("/:id/pagar", RequireRole(entity.RolAdmin), comisionHandler.Pagar)
	com.Patch("/:id/porcentaje", RequireRole(entity.RolAdmin), comisionHandler.UpdatePorcentaje)

	// Aprobaciones de descuento
	aprobacionHandler := NewAprobacionHandler(deps.AprobacionUC)
	apr := protected.Group("/aprobaciones")
	apr.Post("/", perm(rbac.ModAprobaciones, rbac.AccWrite), aprobacionHandler.Solicitar)
	apr.Get("/pendientes", perm(rbac.ModAprobaciones, rbac.AccApprove), aprobacionHandler.Pendientes)
	apr.Get("/mias", perm(rbac.ModAprobaciones, rbac.AccRead), aprobacionHandler.Mias)
	apr.Get("/historial", perm(rbac.ModAprobaciones, rbac.AccReadAll), aprobacionHandler.Historial)
	apr.Get("/stats", perm(rbac.ModAprobaciones, rbac.AccReadAll), aprobacionHandler.Stats)
	apr.Get("/config/:proyectoId", perm(rbac.ModAprobaciones, rbac.AccRead), aprobacionHandler.GetConfig)
	apr.Put("/config/:proyectoId", perm(rbac.ModAprobaciones, rbac.AccConfig), aprobacionHandler.SaveConfig)
	apr.Get("/:id", perm(rbac.ModAprobaciones, rbac.AccRead), aprobacionHandler.Get)
	apr.Post("/:id/aprobar", perm(rbac.ModAprobaciones, rbac.AccApprove), aprobacionHandler.Aprobar)
	apr.Post("/:id/rechazar", perm(rbac.ModAprobaciones, rbac.AccReject), aprobacionHandler.Rechazar)
	apr.Post("/:id/cancelar", perm(rbac.ModAprobaciones, rbac.AccWrite), aprobacionHandler.Cancelar)

	// Repulse
	rep := protected.Group("/repulse")
	rep.Get("/templates", perm(rbac.ModRepulse, rbac.AccRead), repulseHandler.Templates)
	rep.Post("/templates", perm(rbac.ModRepulse, rbac.AccWrite), repulseHandler.CreateTemplate)
	rep.Put("/templates/:id", perm(rbac.ModRepulse, rbac.AccWrite), repulseHandler.UpdateTemplate)
	rep.Delete("/templates/:id", perm(rbac.ModRepulse, rbac.AccWrite), repulseHandler.DeleteTemplate)
	rep.Get("/leads", perm(rbac.ModRepulse, rbac.AccRead), repulseHandler.Leads)
	rep.Post("/leads", perm(rbac.ModRepulse, rbac.AccWrite), repulseHandler.Agregar)
	rep.Delete("/leads/:id", perm(rbac.ModRepulse, rbac.AccWrite), repulseHandler.Quitar)
	rep.Patch("/leads/:id/estado", perm(rbac.ModRepulse, rbac.AccWrite), repulseHandler.CambiarEstado)
	rep.Post("/exclusiones/:leadId", perm(rbac.ModRepulse, rbac.AccExclude), repulseHandler.Excluir)
	rep.Delete("/exclusiones/:leadId", perm(rbac.ModRepulse, rbac.AccExclude), repulseHandler.Reincluir)
	rep.Get("/candidatos", perm(rbac.ModRepulse, rbac.AccRead), repulseHandler.Candidatos)
	rep.Post("/send-batch", perm(rbac.ModRepulse, rbac.AccBulkActions), repulseHandler.EnviarLote)
	rep.Get("/send-batch/:batchId", perm(rbac.ModRepulse, rbac.AccRead), repulseHandler.EstadoLote)
	rep.Get("/historial/:leadId", perm(rbac.ModRepulse, rbac.AccRead), repulseHandler.Historial)
	rep.Post("/envios/:id/respuesta", perm(rbac.ModRepulse, rbac.AccWrite), repulseHandler.MarcarRespuesta)
	rep.Get("/stats", perm(rbac.ModRepulse, rbac.AccRead), repulseHandler.Stats)
	rep.Get("/cuota", perm(rbac.ModRepulse, rbac.AccRead), repulseHandler.Cuota)

	// Expansión
	corredorHandler := NewCorredorHandler(deps.CorredorUC)
	exp := protected.Group("/expansion")
	exp.Get("/registro", perm(rbac.ModExpansion, rbac.AccRead), corredorHandler.Mine)
	exp.Post("/registro", perm(rbac.ModExpansion, rbac.AccWrite), corredorHandler.Create)
	exp.Get("/stats", perm(rbac.ModExpansion, rbac.AccReadAll), corredorHandler.Stats)
	exp.Get("/registros", perm(rbac.ModExpansion, rbac.AccReadAll), corredorHandler.List)
	exp.Get("/registros/:id", perm(rbac.ModExpansion, rbac.AccRead), corredorHandler.Detalle)
	exp.Put("/registros/:id", perm(rbac.ModExpansion, rbac.AccWrite), corredorHandler.Update)
	exp.Post("/registros/:id/documentos", perm(rbac.ModExpansion, rbac.AccWrite), corredorHandler.UploadDocumento)
	exp.Post("/registros/:id/enviar", perm(rbac.ModExpansion, rbac.AccWrite), corredorHandler.Enviar)
	exp.Post("/registros/:id/revision", perm(rbac.ModExpansion, rbac.AccApprove), corredorHandler.TomarRevision)
	exp.Post("/registros/:id/aprobar", perm(rbac.ModExpansion, rbac.AccApprove), corredorHandler.Aprobar)
	exp.Post("/registros/:id/observar", perm(rbac.ModExpansion, rbac.AccApprove), corredorHandler.Observar)
	exp.Post("/registros/:id/rechazar", perm(rbac.ModExpansion, rbac.AccReject), corredorHandler.Rechazar)

	// Reuniones
	subida := RequireRole(entity.RolAdmin, entity.RolJefeVentas)
	reu := protected.Group("/reuniones")
	reu.Post("/upload", subida, reunionHandler.Upload)
	reu.Post("/presigned-url", subida, reunionHandler.PresignedURL)
	reu.Get("/", perm(rbac.ModReuniones, rbac.AccRead), reunionHandler.List)
	reu.Get("/:id", perm(rbac.ModReuniones, rbac.AccRead), reunionHandler.Get)
	reu.Post("/:id/upload-complete", subida, reunionHandler.UploadComplete)
	reu.Patch("/:id/estado", perm(rbac.ModReuniones, rbac.AccWrite), reunionHandler.UpdateEstado)
	reu.Post("/:id/reextract-actions", perm(rbac.ModReuniones, rbac.AccWrite), reunionHandler.Reextract)
	reu.Delete("/:id", RequireRole(entity.RolAdmin), reunionHandler.Delete)
	items := protected.Group("/action-items")
	items.Get("/", reunionHandler.MisActionItems)
	items.Patch("/:id/completar", reunionHandler.CompletarActionItem)
	items.Patch("/:id/vincular", perm(rbac.ModReuniones, rbac.AccWrite), reunionHandler.VincularActionItem)
	items.Patch("/:id", RequireRole(entity.RolAdmin, entity.RolGerencia), reunionHandler.UpdateActionItem)

	// Executive
	executiveHandler := NewExecutiveHandler(deps.ExecutiveUC)
	ex := protected.Group("/executive", perm(rbac.ModInsights, rbac.AccRead))
	ex.Get("/summary", executiveHandler.Summary)
	ex.Get("/funnel", executiveHandler.Funnel)
	ex.Get("/pipeline", executiveHandler.Pipeline)
	ex.Get("/vendedores", executiveHandler.Vendedores)
	ex.Get("/canales", executiveHandler.Canales)
	ex.Get("/financiero", executiveHandler.Financiero)
	ex.Get("/proyectos", executiveHandler.Proyectos)
}
