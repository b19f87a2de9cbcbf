package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog/log"

	"github.com/ecoplaza/ecoplaza-api/internal/application/dto"
	"github.com/ecoplaza/ecoplaza-api/internal/application/ports"
	"github.com/ecoplaza/ecoplaza-api/internal/domain"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/entity"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/repository"
)

var reDigitos = regexp.MustCompile(`\D`)

// LeadUseCase listado, asignación y carga manual de leads.
type LeadUseCase struct {
	leads      repository.LeadRepository
	usuarios   repository.UsuarioRepository
	vendedores repository.VendedorRepository
	proyectos  repository.ProyectoRepository
	notifier   ports.LeadNotifier
	now        func() time.Time
}

// NewLeadUseCase construye el caso de uso. notifier puede ser nil.
func NewLeadUseCase(
	leads repository.LeadRepository,
	usuarios repository.UsuarioRepository,
	vendedores repository.VendedorRepository,
	proyectos repository.ProyectoRepository,
	notifier ports.LeadNotifier,
) *LeadUseCase {
	return &LeadUseCase{
		leads:      leads,
		usuarios:   usuarios,
		vendedores: vendedores,
		proyectos:  proyectos,
		notifier:   notifier,
		now:        time.Now,
	}
}

// filtroActor arma el filtro; los roles de venta solo ven sus leads.
// ok=false cuando el vendedor no tiene ficha y por lo tanto no ve nada.
func (uc *LeadUseCase) filtroActor(ctx context.Context, actor Actor, in dto.LeadListRequest) (entity.LeadFilter, bool, error) {
	f := entity.LeadFilter{
		ProyectoID: in.ProyectoID,
		Estado:     in.Estado,
		VendedorID: in.VendedorID,
		Desde:      in.Desde,
		Hasta:      in.Hasta,
		Limit:      in.Limit,
		Offset:     in.Offset,
	}
	if !entity.EsRolVendedor(actor.Rol) {
		return f, true, nil
	}
	u, err := uc.usuarios.GetByID(ctx, actor.UserID)
	if err != nil {
		return f, false, err
	}
	if u == nil || u.VendedorID == nil {
		return f, false, nil
	}
	f.VendedorID = *u.VendedorID
	return f, true, nil
}

// List página de leads.
func (uc *LeadUseCase) List(ctx context.Context, actor Actor, in dto.LeadListRequest) (*dto.LeadListResponse, error) {
	in.DefaultPage()
	f, ok, err := uc.filtroActor(ctx, actor, in)
	if err != nil {
		return nil, err
	}
	out := &dto.LeadListResponse{Leads: []dto.LeadResponse{}, Page: dto.NewPage(in.Limit, in.Offset, 0)}
	if !ok {
		return out, nil
	}
	list, total, err := uc.leads.List(ctx, f)
	if err != nil {
		return nil, err
	}
	for _, l := range list {
		out.Leads = append(out.Leads, toLeadResponse(l))
	}
	out.Page = dto.NewPage(in.Limit, in.Offset, total)
	return out, nil
}

// Stats conteos por estado y tasa de conversión (completos/total, un decimal).
func (uc *LeadUseCase) Stats(ctx context.Context, actor Actor, in dto.LeadListRequest) (*dto.LeadStatsResponse, error) {
	f, ok, err := uc.filtroActor(ctx, actor, in)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &dto.LeadStatsResponse{}, nil
	}
	s, err := uc.leads.Stats(ctx, f)
	if err != nil {
		return nil, err
	}
	out := &dto.LeadStatsResponse{
		Total:        s.Total,
		Completos:    s.Completos,
		Incompletos:  s.Incompletos,
		Conversacion: s.Conversacion,
		Abandonados:  s.Abandonados,
	}
	if s.Total > 0 {
		out.TasaConversion = math.Round(float64(s.Completos)/float64(s.Total)*1000) / 10
	}
	return out, nil
}

// Search busca por teléfono en todos los proyectos. nil si no existe.
func (uc *LeadUseCase) Search(ctx context.Context, telefono string) (*dto.LeadBusqueda, error) {
	tel := NormalizarTelefono(telefono)
	if tel == "" {
		return nil, fmt.Errorf("%w: telefono es requerido", domain.ErrInvalidInput)
	}
	l, err := uc.leads.FindByTelefono(ctx, tel)
	if err != nil || l == nil {
		return nil, err
	}
	return &dto.LeadBusqueda{
		ID:             l.ID,
		Nombre:         l.Nombre,
		Email:          l.Email,
		ProyectoID:     l.ProyectoID,
		ProyectoNombre: l.ProyectoNombre,
	}, nil
}

// Asignar asigna el lead a un vendedor activo o lo libera (vendedorID vacío).
// La notificación a n8n no bloquea ni hace fallar la asignación.
func (uc *LeadUseCase) Asignar(ctx context.Context, leadID, vendedorID string) (*dto.LeadResponse, error) {
	var vendedor *entity.Vendedor
	if vendedorID != "" {
		v, err := uc.vendedores.GetByID(ctx, vendedorID)
		if err != nil {
			return nil, err
		}
		if v == nil {
			return nil, fmt.Errorf("%w: vendedor no encontrado", domain.ErrNotFound)
		}
		if !v.Activo {
			return nil, fmt.Errorf("%w: vendedor no está activo", domain.ErrInvalidInput)
		}
		vendedor = v
	}

	lead, err := uc.leads.GetByID(ctx, leadID)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, fmt.Errorf("%w: lead no encontrado", domain.ErrNotFound)
	}

	var asignado *string
	if vendedor != nil {
		asignado = &vendedor.ID
	}
	if err := uc.leads.AsignarVendedor(ctx, leadID, asignado); err != nil {
		return nil, err
	}
	lead.VendedorAsignadoID = asignado
	lead.VendedorNombre = nil

	if vendedor != nil {
		lead.VendedorNombre = &vendedor.Nombre
		if uc.notifier != nil {
			uc.notifier.LeadAsignado(ctx, notificacionAsignacion(lead, vendedor))
		}
	}
	resp := toLeadResponse(lead)
	return &resp, nil
}

func notificacionAsignacion(l *entity.Lead, v *entity.Vendedor) ports.LeadAsignado {
	n := ports.LeadAsignado{
		LeadTelefono:     l.Telefono,
		LeadNombre:       "Cliente",
		VendedorNombre:   v.Nombre,
		VendedorTelefono: v.Telefono,
		ProyectoID:       l.ProyectoID,
		ProyectoNombre:   "EcoPlaza",
	}
	if l.Nombre != nil && *l.Nombre != "" {
		n.LeadNombre = *l.Nombre
	}
	if l.ProyectoNombre != nil && *l.ProyectoNombre != "" {
		n.ProyectoNombre = *l.ProyectoNombre
	}
	return n
}

// CreateManual crea un lead desde la vinculación manual de un local.
func (uc *LeadUseCase) CreateManual(ctx context.Context, in dto.CreateLeadManualRequest) (*dto.LeadResponse, error) {
	nombre := strings.TrimSpace(in.Nombre)
	tel := NormalizarTelefono(in.Telefono)
	if nombre == "" || tel == "" || in.ProyectoID == "" || in.VendedorID == "" {
		return nil, fmt.Errorf("%w: nombre, telefono, proyecto y vendedor son requeridos", domain.ErrInvalidInput)
	}
	proyecto, err := uc.proyectos.GetByID(ctx, in.ProyectoID)
	if err != nil {
		return nil, err
	}
	if proyecto == nil {
		return nil, fmt.Errorf("%w: proyecto no encontrado", domain.ErrNotFound)
	}
	vendedor, err := uc.vendedores.GetByID(ctx, in.VendedorID)
	if err != nil {
		return nil, err
	}
	if vendedor == nil {
		return nil, fmt.Errorf("%w: vendedor no encontrado", domain.ErrNotFound)
	}
	existe, err := uc.leads.FindByTelefonoProyecto(ctx, tel, in.ProyectoID)
	if err != nil {
		return nil, err
	}
	if existe != nil {
		return nil, fmt.Errorf("%w: ya existe un lead con ese teléfono en el proyecto", domain.ErrDuplicate)
	}

	l := uc.nuevoLead(in.ProyectoID, tel, nombre, entity.UTMVinculacionManual)
	l.Email = nilSiVacio(in.Email)
	l.Rubro = nilSiVacio(in.Rubro)
	l.Asistio = true
	l.VendedorAsignadoID = &vendedor.ID
	if err := uc.leads.Create(ctx, l); err != nil {
		return nil, err
	}
	l.ProyectoNombre = &proyecto.Nombre
	l.VendedorNombre = &vendedor.Nombre
	resp := toLeadResponse(l)
	return &resp, nil
}

// RegistrarVisita marca asistencia del lead del proyecto o crea uno manual.
func (uc *LeadUseCase) RegistrarVisita(ctx context.Context, in dto.RegistrarVisitaRequest) (*dto.RegistrarVisitaResponse, error) {
	tel := NormalizarTelefono(in.Telefono)
	if tel == "" {
		return nil, fmt.Errorf("%w: el teléfono es requerido", domain.ErrInvalidInput)
	}
	if in.ProyectoID == "" {
		return nil, fmt.Errorf("%w: el proyecto es requerido", domain.ErrInvalidInput)
	}

	existe, err := uc.leads.FindByTelefonoProyecto(ctx, tel, in.ProyectoID)
	if err != nil {
		return nil, err
	}
	if existe != nil {
		if err := uc.leads.MarcarAsistio(ctx, existe.ID); err != nil {
			return nil, err
		}
		existe.Asistio = true
		return &dto.RegistrarVisitaResponse{Lead: toLeadResponse(existe), Creado: false}, nil
	}

	nombre := strings.TrimSpace(in.Nombre)
	if nombre == "" {
		return nil, fmt.Errorf("%w: el nombre es requerido para crear un nuevo lead", domain.ErrInvalidInput)
	}
	proyecto, err := uc.proyectos.GetByID(ctx, in.ProyectoID)
	if err != nil {
		return nil, err
	}
	if proyecto == nil {
		return nil, fmt.Errorf("%w: proyecto no encontrado", domain.ErrNotFound)
	}

	l := uc.nuevoLead(in.ProyectoID, tel, nombre, entity.UTMVisitaProyecto)
	l.Asistio = true
	l.Email = nilSiVacio(in.Email)
	l.Rubro = nilSiVacio(in.Rubro)
	if in.VendedorID != "" {
		v, err := uc.vendedores.GetByID(ctx, in.VendedorID)
		if err != nil {
			return nil, err
		}
		if v == nil {
			return nil, fmt.Errorf("%w: vendedor no encontrado", domain.ErrNotFound)
		}
		l.VendedorAsignadoID = &v.ID
		l.VendedorNombre = &v.Nombre
	}
	if err := uc.leads.Create(ctx, l); err != nil {
		return nil, err
	}
	l.ProyectoNombre = &proyecto.Nombre
	return &dto.RegistrarVisitaResponse{Lead: toLeadResponse(l), Creado: true}, nil
}

// rolesImportables roles a los que se pueden importar leads manuales.
var rolesImportables = map[string]bool{
	entity.RolVendedor:       true,
	entity.RolVendedorCaseta: true,
	entity.RolCoordinador:    true,
}

// Import carga manual de leads a un proyecto. Las filas inválidas o duplicadas
// se informan y no detienen el resto.
func (uc *LeadUseCase) Import(ctx context.Context, in dto.ImportLeadsRequest) (*dto.ImportLeadsResponse, error) {
	if in.ProyectoID == "" {
		return nil, fmt.Errorf("%w: proyecto_id es requerido", domain.ErrInvalidInput)
	}
	proyecto, err := uc.proyectos.GetByID(ctx, in.ProyectoID)
	if err != nil {
		return nil, err
	}
	if proyecto == nil {
		return nil, fmt.Errorf("%w: proyecto no encontrado", domain.ErrNotFound)
	}

	out := &dto.ImportLeadsResponse{Invalidos: []dto.FilaInvalida{}, Total: len(in.Leads)}
	vendedorPorEmail := map[string]*entity.Usuario{}
	var merr *multierror.Error

	invalida := func(fila int, motivo string) {
		out.Invalidos = append(out.Invalidos, dto.FilaInvalida{Fila: fila, Motivo: motivo})
	}

	for i, row := range in.Leads {
		fila := i + 1
		tel := reDigitos.ReplaceAllString(row.Telefono, "")
		if n := len(tel); n < 10 || n > 15 {
			invalida(fila, "teléfono inválido: debe tener entre 10 y 15 dígitos incluyendo código de país")
			continue
		}
		utm := strings.TrimSpace(row.UTM)
		if utm == "" {
			invalida(fila, "utm es requerido")
			continue
		}

		email := strings.ToLower(strings.TrimSpace(row.EmailVendedor))
		u, visto := vendedorPorEmail[email]
		if !visto {
			u, err = uc.usuarios.GetByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			vendedorPorEmail[email] = u
		}
		switch {
		case u == nil:
			invalida(fila, "vendedor no encontrado: "+row.EmailVendedor)
			continue
		case !rolesImportables[u.Rol]:
			invalida(fila, "rol inválido: "+u.Rol)
			continue
		case u.VendedorID == nil:
			invalida(fila, "sin vendedor_id")
			continue
		}

		existe, err := uc.leads.FindByTelefonoProyecto(ctx, tel, in.ProyectoID)
		if err != nil {
			return nil, err
		}
		if existe != nil {
			out.Duplicados++
			continue
		}

		l := uc.nuevoLead(in.ProyectoID, tel, strings.TrimSpace(row.Nombre), utm)
		l.Email = nilSiVacio(row.Email)
		l.Rubro = nilSiVacio(row.Rubro)
		l.VendedorAsignadoID = u.VendedorID
		if err := uc.leads.Create(ctx, l); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				out.Duplicados++
				continue
			}
			merr = multierror.Append(merr, fmt.Errorf("fila %d: %w", fila, err))
			invalida(fila, "error al insertar")
			continue
		}
		out.Importados++
	}

	if err := merr.ErrorOrNil(); err != nil {
		log.Warn().Err(err).Str("proyecto_id", in.ProyectoID).Msg("import leads: filas con error")
	}
	return out, nil
}

func (uc *LeadUseCase) nuevoLead(proyectoID, telefono, nombre, utm string) *entity.Lead {
	now := uc.now()
	l := &entity.Lead{
		ID:           uuid.New().String(),
		ProyectoID:   proyectoID,
		Telefono:     telefono,
		Estado:       entity.LeadManual,
		UTM:          strPtr(utm),
		FechaCaptura: now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if nombre != "" {
		l.Nombre = strPtr(nombre)
	}
	return l
}

func toLeadResponse(l *entity.Lead) dto.LeadResponse {
	return dto.LeadResponse{
		ID:                 l.ID,
		ProyectoID:         l.ProyectoID,
		ProyectoNombre:     l.ProyectoNombre,
		Telefono:           l.Telefono,
		Nombre:             l.Nombre,
		Email:              l.Email,
		Rubro:              l.Rubro,
		HorarioVisita:      l.HorarioVisita,
		Estado:             l.Estado,
		UTM:                l.UTM,
		Asistio:            l.Asistio,
		VendedorAsignadoID: l.VendedorAsignadoID,
		VendedorNombre:     l.VendedorNombre,
		FechaCaptura:       l.FechaCaptura,
	}
}
