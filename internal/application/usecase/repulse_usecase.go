package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/ecoplaza/ecoplaza-api/internal/application/dto"
	"github.com/ecoplaza/ecoplaza-api/internal/application/ports"
	"github.com/ecoplaza/ecoplaza-api/internal/domain"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/entity"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/repository"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/repulse"
)

// RepulseConfig cupo diario y ritmo de despacho de los lotes.
type RepulseConfig struct {
	CuotaLimite int
	LoteTamano  int
	PausaEnvio  time.Duration
	PausaLote   time.Duration
}

// RepulseUseCase campañas de re-engagement: plantillas, leads de la campaña,
// detección de candidatos y envío por lotes al flujo de WhatsApp.
type RepulseUseCase struct {
	repo   repository.RepulseRepository
	sender ports.RepulseSender
	cfg    RepulseConfig
	now    func() time.Time
	wg     sync.WaitGroup
}

// NewRepulseUseCase construye el caso de uso.
func NewRepulseUseCase(repo repository.RepulseRepository, sender ports.RepulseSender, cfg RepulseConfig) *RepulseUseCase {
	if cfg.LoteTamano <= 0 {
		cfg.LoteTamano = 10
	}
	return &RepulseUseCase{repo: repo, sender: sender, cfg: cfg, now: time.Now}
}

// ── Plantillas ──────────────────────────────────────────────────────────────

// Templates plantillas activas del proyecto.
func (uc *RepulseUseCase) Templates(ctx context.Context, proyectoID string) ([]dto.RepulseTemplateResponse, error) {
	list, err := uc.repo.ListTemplates(ctx, proyectoID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RepulseTemplateResponse, 0, len(list))
	for _, t := range list {
		out = append(out, toTemplateResponse(t))
	}
	return out, nil
}

// CreateTemplate alta de plantilla.
func (uc *RepulseUseCase) CreateTemplate(ctx context.Context, actor Actor, in dto.RepulseTemplateRequest) (*dto.RepulseTemplateResponse, error) {
	if in.ProyectoID == "" || strings.TrimSpace(in.Nombre) == "" || strings.TrimSpace(in.Mensaje) == "" {
		return nil, fmt.Errorf("%w: proyecto, nombre y mensaje son requeridos", domain.ErrInvalidInput)
	}
	now := uc.now()
	t := &entity.RepulseTemplate{
		ID:         uuid.New().String(),
		ProyectoID: in.ProyectoID,
		Nombre:     strings.TrimSpace(in.Nombre),
		Mensaje:    in.Mensaje,
		Activo:     true,
		CreatedBy:  nilSiVacio(strPtr(actor.UserID)),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.CreateTemplate(ctx, t); err != nil {
		return nil, err
	}
	resp := toTemplateResponse(t)
	return &resp, nil
}

// UpdateTemplate cambia nombre y mensaje.
func (uc *RepulseUseCase) UpdateTemplate(ctx context.Context, id string, in dto.RepulseTemplateRequest) (*dto.RepulseTemplateResponse, error) {
	if strings.TrimSpace(in.Nombre) == "" || strings.TrimSpace(in.Mensaje) == "" {
		return nil, fmt.Errorf("%w: nombre y mensaje son requeridos", domain.ErrInvalidInput)
	}
	t, err := uc.template(ctx, id)
	if err != nil {
		return nil, err
	}
	t.Nombre, t.Mensaje, t.UpdatedAt = strings.TrimSpace(in.Nombre), in.Mensaje, uc.now()
	if err := uc.repo.UpdateTemplate(ctx, t); err != nil {
		return nil, err
	}
	resp := toTemplateResponse(t)
	return &resp, nil
}

// DeleteTemplate baja lógica; los envíos que la usaron conservan la referencia.
func (uc *RepulseUseCase) DeleteTemplate(ctx context.Context, id string) error {
	t, err := uc.template(ctx, id)
	if err != nil {
		return err
	}
	t.Activo, t.UpdatedAt = false, uc.now()
	return uc.repo.UpdateTemplate(ctx, t)
}

func (uc *RepulseUseCase) template(ctx context.Context, id string) (*entity.RepulseTemplate, error) {
	t, err := uc.repo.GetTemplate(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("%w: plantilla no encontrada", domain.ErrNotFound)
	}
	return t, nil
}

// ── Leads de la campaña ─────────────────────────────────────────────────────

// Leads entradas de la campaña; estado vacío lista todas.
func (uc *RepulseUseCase) Leads(ctx context.Context, proyectoID, estado string) ([]dto.RepulseLeadResponse, error) {
	if proyectoID == "" {
		return nil, fmt.Errorf("%w: proyecto_id es requerido", domain.ErrInvalidInput)
	}
	list, err := uc.repo.ListLeads(ctx, entity.RepulseLeadFilter{ProyectoID: proyectoID, Estado: estado})
	if err != nil {
		return nil, err
	}
	out := make([]dto.RepulseLeadResponse, 0, len(list))
	for _, rl := range list {
		out = append(out, toRepulseLeadResponse(rl))
	}
	return out, nil
}

// Agregar incluye un lead en la campaña a mano.
func (uc *RepulseUseCase) Agregar(ctx context.Context, actor Actor, proyectoID, leadID string) error {
	el, err := uc.repo.Elegibilidad(ctx, leadID)
	if err != nil {
		return err
	}
	switch {
	case !el.Existe:
		return fmt.Errorf("%w: lead no encontrado", domain.ErrNotFound)
	case el.Excluido:
		return fmt.Errorf("%w: este lead está excluido de repulse", domain.ErrConflict)
	case el.TieneCompra:
		return fmt.Errorf("%w: el lead ya tiene una compra registrada", domain.ErrConflict)
	}
	err = uc.repo.CreateLead(ctx, uc.nuevoRepulseLead(proyectoID, leadID, entity.RepulseOrigenManual, nilSiVacio(strPtr(actor.UserID))))
	if errors.Is(err, domain.ErrDuplicate) {
		return fmt.Errorf("%w: el lead ya está en la lista de repulse", domain.ErrDuplicate)
	}
	return err
}

// AgregarVarios alta masiva; los duplicados cuentan como omitidos y el resto de
// rechazos se informan sin cortar el lote.
func (uc *RepulseUseCase) AgregarVarios(ctx context.Context, actor Actor, in dto.AgregarRepulseRequest) (*dto.AgregarRepulseResult, error) {
	if in.ProyectoID == "" || len(in.LeadIDs) == 0 {
		return nil, fmt.Errorf("%w: proyecto_id y lead_ids son requeridos", domain.ErrInvalidInput)
	}
	res := &dto.AgregarRepulseResult{Errores: []string{}}
	for _, id := range in.LeadIDs {
		err := uc.Agregar(ctx, actor, in.ProyectoID, id)
		switch {
		case err == nil:
			res.Agregados++
		case errors.Is(err, domain.ErrDuplicate):
			res.Omitidos++
		case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrNotFound):
			res.Errores = append(res.Errores, fmt.Sprintf("%s: %v", id, err))
		default:
			return nil, err
		}
	}
	return res, nil
}

// Quitar saca el lead de la campaña.
func (uc *RepulseUseCase) Quitar(ctx context.Context, id string) error {
	return uc.repo.DeleteLead(ctx, id)
}

// CambiarEstado asigna un estado a mano (por ejemplo sin_respuesta tras el seguimiento).
func (uc *RepulseUseCase) CambiarEstado(ctx context.Context, id, estado string) error {
	if !repulse.EstadoValido(estado) {
		return fmt.Errorf("%w: estado %q no válido", domain.ErrEstadoInvalido, estado)
	}
	return uc.repo.UpdateEstado(ctx, id, estado, uc.now())
}

// Excluir marca el lead para que no vuelva a recibir mensajes.
func (uc *RepulseUseCase) Excluir(ctx context.Context, leadID string) error {
	return uc.repo.SetExcluido(ctx, leadID, true, uc.now())
}

// Reincluir revierte la exclusión; las entradas excluidas vuelven a pendiente.
func (uc *RepulseUseCase) Reincluir(ctx context.Context, leadID string) error {
	return uc.repo.SetExcluido(ctx, leadID, false, uc.now())
}

// ── Detección ───────────────────────────────────────────────────────────────

// Candidatos leads del proyecto que cumplen las condiciones de re-engagement.
func (uc *RepulseUseCase) Candidatos(ctx context.Context, proyectoID string) ([]dto.LeadResponse, error) {
	if proyectoID == "" {
		return nil, fmt.Errorf("%w: proyecto_id es requerido", domain.ErrInvalidInput)
	}
	list, err := uc.repo.Candidatos(ctx, proyectoID, repulse.CorteCandidato(uc.now()))
	if err != nil {
		return nil, err
	}
	out := make([]dto.LeadResponse, 0, len(list))
	for _, l := range list {
		out = append(out, toLeadResponse(l))
	}
	return out, nil
}

// Detectar agrega a la campaña todos los candidatos del proyecto con origen automático.
func (uc *RepulseUseCase) Detectar(ctx context.Context, proyectoID string) (*dto.DeteccionRepulseResponse, error) {
	if proyectoID == "" {
		return nil, fmt.Errorf("%w: proyecto_id es requerido", domain.ErrInvalidInput)
	}
	list, err := uc.repo.Candidatos(ctx, proyectoID, repulse.CorteCandidato(uc.now()))
	if err != nil {
		return nil, err
	}
	agregados := 0
	for _, l := range list {
		err := uc.repo.CreateLead(ctx, uc.nuevoRepulseLead(proyectoID, l.ID, entity.RepulseOrigenAutomatico, nil))
		if errors.Is(err, domain.ErrDuplicate) {
			continue
		}
		if err != nil {
			return nil, err
		}
		agregados++
	}
	log.Info().Str("proyecto_id", proyectoID).Int("agregados", agregados).Msg("repulse: detección terminada")
	return &dto.DeteccionRepulseResponse{ProyectoID: proyectoID, LeadsAgregados: agregados}, nil
}

func (uc *RepulseUseCase) nuevoRepulseLead(proyectoID, leadID, origen string, por *string) *entity.RepulseLead {
	now := uc.now()
	return &entity.RepulseLead{
		ID:          uuid.New().String(),
		LeadID:      leadID,
		ProyectoID:  proyectoID,
		Origen:      origen,
		Estado:      entity.RepulsePendiente,
		AgregadoPor: por,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// ── Envío por lotes ─────────────────────────────────────────────────────────

// EnviarLote registra un envío pendiente por lead y despacha el lote en segundo
// plano. Responde apenas los envíos quedan registrados.
func (uc *RepulseUseCase) EnviarLote(ctx context.Context, actor Actor, in dto.EnviarLoteRequest) (*dto.EnviarLoteResponse, error) {
	if in.ProyectoID == "" || len(in.RepulseLeadIDs) == 0 {
		return nil, fmt.Errorf("%w: no se proporcionaron leads", domain.ErrInvalidInput)
	}
	if uc.sender == nil || !uc.sender.Configurado() {
		return nil, fmt.Errorf("%w: N8N_REPULSE_WEBHOOK_URL no está configurado", domain.ErrConflict)
	}
	mensaje := in.Mensaje
	if in.TemplateID != nil {
		t, err := uc.template(ctx, *in.TemplateID)
		if err != nil {
			return nil, err
		}
		mensaje = t.Mensaje
	}
	if strings.TrimSpace(mensaje) == "" {
		return nil, fmt.Errorf("%w: el mensaje es requerido", domain.ErrInvalidInput)
	}

	leads, err := uc.repo.ListLeads(ctx, entity.RepulseLeadFilter{ProyectoID: in.ProyectoID, IDs: in.RepulseLeadIDs})
	if err != nil {
		return nil, err
	}
	var destinatarios []*entity.RepulseLead
	for _, rl := range leads {
		if rl.Estado != entity.RepulseExcluido {
			destinatarios = append(destinatarios, rl)
		}
	}
	if len(destinatarios) == 0 {
		return nil, fmt.Errorf("%w: ninguno de los leads está disponible para envío", domain.ErrInvalidInput)
	}

	cuota, err := uc.cuota(ctx)
	if err != nil {
		return nil, err
	}
	if len(destinatarios) > cuota.Disponible {
		return nil, fmt.Errorf("%w: el lote (%d) supera el cupo disponible de hoy (%d)",
			domain.ErrConflict, len(destinatarios), cuota.Disponible)
	}

	now, batchID := uc.now(), uuid.New().String()
	envios := make([]*entity.RepulseEnvio, 0, len(destinatarios))
	for _, rl := range destinatarios {
		envios = append(envios, &entity.RepulseEnvio{
			ID:                uuid.New().String(),
			RepulseLeadID:     rl.ID,
			LeadID:            rl.LeadID,
			ProyectoID:        rl.ProyectoID,
			TemplateID:        in.TemplateID,
			BatchID:           batchID,
			MensajeEnviado:    repulse.Personalizar(mensaje, rl.LeadNombre, rl.LeadTelefono),
			EnviadoPor:        nilSiVacio(strPtr(actor.UserID)),
			EnvioEstado:       entity.EnvioPendiente,
			CreatedAt:         now,
			LeadNombre:        rl.LeadNombre,
			LeadTelefono:      rl.LeadTelefono,
			LeadHorarioVisita: rl.LeadHorarioVisita,
		})
	}
	if err := uc.repo.CreateEnvios(ctx, envios); err != nil {
		return nil, err
	}

	bg := context.WithoutCancel(ctx)
	uc.wg.Add(1)
	go func() {
		defer uc.wg.Done()
		uc.procesarLote(bg, batchID, envios)
	}()

	log.Info().Str("batch_id", batchID).Int("total", len(envios)).Msg("repulse: lote iniciado")
	return &dto.EnviarLoteResponse{BatchID: batchID, Total: len(envios), Message: "Procesamiento iniciado en background"}, nil
}

// Wait espera los lotes en curso; se usa en el apagado y en tests.
func (uc *RepulseUseCase) Wait() { uc.wg.Wait() }

// procesarLote despacha en grupos concurrentes con pausa entre grupos.
func (uc *RepulseUseCase) procesarLote(ctx context.Context, batchID string, envios []*entity.RepulseEnvio) {
	var enviados, errores int
	var mu sync.Mutex
	grupos := repulse.Lotes(envios, uc.cfg.LoteTamano)
	for i, grupo := range grupos {
		var g errgroup.Group
		for _, e := range grupo {
			g.Go(func() error {
				ok := uc.procesarEnvio(ctx, e)
				mu.Lock()
				defer mu.Unlock()
				if ok {
					enviados++
				} else {
					errores++
				}
				return nil
			})
		}
		_ = g.Wait()
		log.Debug().Str("batch_id", batchID).Int("procesados", enviados+errores).Int("total", len(envios)).Msg("repulse: progreso")
		if i < len(grupos)-1 && !dormir(ctx, uc.cfg.PausaLote) {
			break
		}
	}
	log.Info().Str("batch_id", batchID).Int("enviados", enviados).Int("errores", errores).Msg("repulse: lote completado")
}

// procesarEnvio un mensaje: enviando, webhook y resultado. Devuelve true si Meta lo aceptó.
func (uc *RepulseUseCase) procesarEnvio(ctx context.Context, e *entity.RepulseEnvio) bool {
	e.EnvioEstado = entity.EnvioEnviando
	if err := uc.repo.UpdateEnvio(ctx, e); err != nil {
		log.Warn().Err(err).Str("envio_id", e.ID).Msg("repulse: no se pudo marcar enviando")
	}

	res, err := uc.sender.EnviarRepulse(ctx, ports.RepulseMensaje{
		Telefono:      e.LeadTelefono,
		Mensaje:       e.MensajeEnviado,
		Nombre:        repulse.Personalizar("{{nombre}}", e.LeadNombre, e.LeadTelefono),
		FechaVisita:   repulse.FechaVisita(e.LeadHorarioVisita),
		ProyectoID:    e.ProyectoID,
		LeadID:        e.LeadID,
		RepulseLeadID: e.RepulseLeadID,
	})
	dormir(ctx, uc.cfg.PausaEnvio)

	switch {
	case err != nil:
		return uc.fallarEnvio(ctx, e, err.Error())
	case !res.Aceptado():
		msg := "Meta rechazó el mensaje"
		if res.Error != nil && *res.Error != "" {
			msg = *res.Error
		}
		return uc.fallarEnvio(ctx, e, "Meta: "+msg)
	}

	now := uc.now()
	e.EnvioEstado, e.EnviadoAt, e.WhatsappMessageID = entity.EnvioEnviado, &now, res.WhatsappMessageID
	if err := uc.repo.UpdateEnvio(ctx, e); err != nil {
		log.Error().Err(err).Str("envio_id", e.ID).Msg("repulse: enviado pero no se pudo registrar")
	}
	if err := uc.repo.RegistrarEnvio(ctx, e.RepulseLeadID, e.TemplateID, now); err != nil {
		log.Error().Err(err).Str("repulse_lead_id", e.RepulseLeadID).Msg("repulse: no se pudo actualizar el lead")
	}
	return true
}

func (uc *RepulseUseCase) fallarEnvio(ctx context.Context, e *entity.RepulseEnvio, msg string) bool {
	e.EnvioEstado, e.EnvioError = entity.EnvioError, &msg
	if err := uc.repo.UpdateEnvio(ctx, e); err != nil {
		log.Error().Err(err).Str("envio_id", e.ID).Msg("repulse: no se pudo registrar el error")
	}
	log.Warn().Str("envio_id", e.ID).Str("telefono", e.LeadTelefono).Str("error", msg).Msg("repulse: envío fallido")
	return false
}

// dormir espera d salvo cancelación; false si el contexto terminó.
func dormir(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// EstadoLote avance de un lote; completado cuando no quedan pendientes ni en curso.
func (uc *RepulseUseCase) EstadoLote(ctx context.Context, batchID string) (*dto.EstadoLoteResponse, error) {
	if batchID == "" {
		return nil, fmt.Errorf("%w: batchId es requerido", domain.ErrInvalidInput)
	}
	s, err := uc.repo.EstadoBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if s.Total == 0 {
		return nil, fmt.Errorf("%w: lote no encontrado", domain.ErrNotFound)
	}
	return &dto.EstadoLoteResponse{
		BatchID:    batchID,
		Total:      s.Total,
		Enviados:   s.Enviados,
		Errores:    s.Errores,
		Pendientes: s.Pendientes,
		Enviando:   s.Enviando,
		Completado: s.Pendientes == 0 && s.Enviando == 0,
	}, nil
}

// ── Historial y métricas ────────────────────────────────────────────────────

// Historial envíos hechos a un lead.
func (uc *RepulseUseCase) Historial(ctx context.Context, leadID string) ([]dto.RepulseEnvioResponse, error) {
	list, err := uc.repo.ListEnvios(ctx, leadID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RepulseEnvioResponse, 0, len(list))
	for _, e := range list {
		out = append(out, toEnvioResponse(e))
	}
	return out, nil
}

// MarcarRespuesta registra que el lead contestó un envío.
func (uc *RepulseUseCase) MarcarRespuesta(ctx context.Context, envioID string) (*dto.RepulseEnvioResponse, error) {
	e, err := uc.repo.GetEnvio(ctx, envioID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, fmt.Errorf("%w: envío no encontrado", domain.ErrNotFound)
	}
	now := uc.now()
	e.RespuestaRecibida, e.RespuestaAt = true, &now
	if err := uc.repo.UpdateEnvio(ctx, e); err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateEstado(ctx, e.RepulseLeadID, entity.RepulseRespondio, now); err != nil {
		return nil, err
	}
	resp := toEnvioResponse(e)
	return &resp, nil
}

// Stats conteos por estado del proyecto.
func (uc *RepulseUseCase) Stats(ctx context.Context, proyectoID string) (*dto.RepulseStatsResponse, error) {
	s, err := uc.repo.Stats(ctx, proyectoID)
	if err != nil {
		return nil, err
	}
	return &dto.RepulseStatsResponse{
		Total:        s.Total,
		Pendientes:   s.Pendientes,
		Enviados:     s.Enviados,
		Respondieron: s.Respondieron,
		SinRespuesta: s.SinRespuesta,
		Excluidos:    s.Excluidos,
	}, nil
}

// Cuota uso del cupo diario de WhatsApp, contando desde la medianoche de Lima.
func (uc *RepulseUseCase) Cuota(ctx context.Context) (*dto.CuotaWhatsAppResponse, error) {
	c, err := uc.cuota(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.CuotaWhatsAppResponse{
		LeadsHoy:        c.LeadsHoy,
		Limite:          c.Limite,
		Disponible:      c.Disponible,
		PorcentajeUsado: c.PorcentajeUsado,
	}, nil
}

func (uc *RepulseUseCase) cuota(ctx context.Context) (repulse.Cuota, error) {
	n, err := uc.repo.LeadsCampaniaDesde(ctx, repulse.InicioDelDia(uc.now()))
	if err != nil {
		return repulse.Cuota{}, err
	}
	return repulse.CalcularCuota(n, uc.cfg.CuotaLimite), nil
}

func toTemplateResponse(t *entity.RepulseTemplate) dto.RepulseTemplateResponse {
	return dto.RepulseTemplateResponse{
		ID:         t.ID,
		ProyectoID: t.ProyectoID,
		Nombre:     t.Nombre,
		Mensaje:    t.Mensaje,
		Activo:     t.Activo,
		CreatedAt:  t.CreatedAt,
	}
}

func toRepulseLeadResponse(rl *entity.RepulseLead) dto.RepulseLeadResponse {
	return dto.RepulseLeadResponse{
		ID:              rl.ID,
		LeadID:          rl.LeadID,
		ProyectoID:      rl.ProyectoID,
		Origen:          rl.Origen,
		Estado:          rl.Estado,
		ConteoRepulses:  rl.ConteoRepulses,
		UltimoRepulseAt: rl.UltimoRepulseAt,
		TemplateUsadoID: rl.TemplateUsadoID,
		Nombre:          rl.LeadNombre,
		Telefono:        rl.LeadTelefono,
		LeadEstado:      rl.LeadEstado,
		LeadCreatedAt:   rl.LeadCreatedAt,
		CreatedAt:       rl.CreatedAt,
	}
}

func toEnvioResponse(e *entity.RepulseEnvio) dto.RepulseEnvioResponse {
	return dto.RepulseEnvioResponse{
		ID:                e.ID,
		RepulseLeadID:     e.RepulseLeadID,
		BatchID:           e.BatchID,
		MensajeEnviado:    e.MensajeEnviado,
		EnvioEstado:       e.EnvioEstado,
		EnvioError:        e.EnvioError,
		WhatsappMessageID: e.WhatsappMessageID,
		EnviadoAt:         e.EnviadoAt,
		RespuestaRecibida: e.RespuestaRecibida,
		RespuestaAt:       e.RespuestaAt,
		CreatedAt:         e.CreatedAt,
	}
}
