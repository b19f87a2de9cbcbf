package usecase

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ecoplaza/ecoplaza-api/internal/application/ports"
	"github.com/ecoplaza/ecoplaza-api/internal/domain"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/entity"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/rbac"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/repository"
)

// memStore base en memoria compartida por todos los repos fake.
type memStore struct {
	mu          sync.Mutex
	usuarios    map[string]*entity.Usuario
	vendedores  map[string]*entity.Vendedor
	proyectos   map[string]*entity.Proyecto
	leads       map[string]*entity.Lead
	locales     map[string]*entity.Local
	historial   []*entity.LocalHistorial
	vinculos    map[string]string
	controles   map[string]*entity.ControlPago
	pagos       map[string]*entity.PagoLocal
	comisiones  map[string]*entity.Comision
	registros   map[string]*entity.RegistroCorredor
	documentos  map[string]*entity.DocumentoCorredor
	histCorr    []*entity.HistorialCorredor
	reuniones   map[string]*entity.Reunion
	actionItems map[string]*entity.ActionItem
	txFail      error
	createErr   error
}

func newStore() *memStore {
	return &memStore{
		usuarios:    map[string]*entity.Usuario{},
		vendedores:  map[string]*entity.Vendedor{},
		proyectos:   map[string]*entity.Proyecto{},
		leads:       map[string]*entity.Lead{},
		locales:     map[string]*entity.Local{},
		vinculos:    map[string]string{},
		controles:   map[string]*entity.ControlPago{},
		pagos:       map[string]*entity.PagoLocal{},
		comisiones:  map[string]*entity.Comision{},
		registros:   map[string]*entity.RegistroCorredor{},
		documentos:  map[string]*entity.DocumentoCorredor{},
		reuniones:   map[string]*entity.Reunion{},
		actionItems: map[string]*entity.ActionItem{},
	}
}

func (s *memStore) repos() ports.TxRepos {
	return ports.TxRepos{
		Usuarios:     &fakeUsuarioRepo{s},
		Vendedores:   &fakeVendedorRepo{s},
		Leads:        &fakeLeadRepo{s},
		Locales:      &fakeLocalRepo{s},
		ControlPagos: &fakeControlRepo{s},
		Pagos:        &fakePagoRepo{s},
		Comisiones:   &fakeComisionRepo{s},
		Corredores:   &fakeCorredorRepo{s},
		Reuniones:    &fakeReunionRepo{s},
		ActionItems:  &fakeActionItemRepo{s},
	}
}

// Run no aísla cambios; un error de fn se devuelve tal cual.
func (s *memStore) Run(_ context.Context, fn func(r ports.TxRepos) error) error {
	if s.txFail != nil {
		return s.txFail
	}
	return fn(s.repos())
}

func clone[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// ── Usuarios, vendedores, proyectos ──────────────────────────────────────────

type fakeUsuarioRepo struct{ s *memStore }

func (f *fakeUsuarioRepo) Create(_ context.Context, u *entity.Usuario) error {
	f.s.usuarios[u.ID] = clone(u)
	return nil
}
func (f *fakeUsuarioRepo) GetByID(_ context.Context, id string) (*entity.Usuario, error) {
	return clone(f.s.usuarios[id]), nil
}
func (f *fakeUsuarioRepo) GetByEmail(_ context.Context, email string) (*entity.Usuario, error) {
	for _, u := range f.s.usuarios {
		if u.Email == email {
			return clone(u), nil
		}
	}
	return nil, nil
}
func (f *fakeUsuarioRepo) GetByVendedorID(_ context.Context, vendedorID string) (*entity.Usuario, error) {
	for _, u := range f.s.usuarios {
		if u.VendedorID != nil && *u.VendedorID == vendedorID {
			return clone(u), nil
		}
	}
	return nil, nil
}
func (f *fakeUsuarioRepo) List(_ context.Context, fl entity.UsuarioFilter) ([]*entity.Usuario, error) {
	var out []*entity.Usuario
	for _, u := range f.s.usuarios {
		if fl.Rol != "" && u.Rol != fl.Rol {
			continue
		}
		if fl.ActivosOnly && !u.Activo {
			continue
		}
		out = append(out, clone(u))
	}
	return out, nil
}
func (f *fakeUsuarioRepo) SetActivo(_ context.Context, id string, activo bool) error {
	u, ok := f.s.usuarios[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.Activo = activo
	return nil
}

type fakeVendedorRepo struct{ s *memStore }

func (f *fakeVendedorRepo) Create(_ context.Context, v *entity.Vendedor) error {
	f.s.vendedores[v.ID] = clone(v)
	return nil
}
func (f *fakeVendedorRepo) GetByID(_ context.Context, id string) (*entity.Vendedor, error) {
	return clone(f.s.vendedores[id]), nil
}

type fakeProyectoRepo struct{ s *memStore }

func (f *fakeProyectoRepo) List(_ context.Context, includeInactive bool) ([]*entity.Proyecto, error) {
	var out []*entity.Proyecto
	for _, p := range f.s.proyectos {
		if p.Activo || includeInactive {
			out = append(out, clone(p))
		}
	}
	return out, nil
}
func (f *fakeProyectoRepo) GetByID(_ context.Context, id string) (*entity.Proyecto, error) {
	return clone(f.s.proyectos[id]), nil
}
func (f *fakeProyectoRepo) GetBySlug(_ context.Context, slug string) (*entity.Proyecto, error) {
	for _, p := range f.s.proyectos {
		if p.Slug == slug {
			return clone(p), nil
		}
	}
	return nil, nil
}

// ── Leads ────────────────────────────────────────────────────────────────────

type fakeLeadRepo struct{ s *memStore }

func (f *fakeLeadRepo) Create(_ context.Context, l *entity.Lead) error {
	for _, x := range f.s.leads {
		if x.Telefono == l.Telefono && x.ProyectoID == l.ProyectoID {
			return domain.ErrDuplicate
		}
	}
	f.s.leads[l.ID] = clone(l)
	return nil
}
func (f *fakeLeadRepo) GetByID(_ context.Context, id string) (*entity.Lead, error) {
	return clone(f.s.leads[id]), nil
}
func (f *fakeLeadRepo) filtrar(fl entity.LeadFilter) []*entity.Lead {
	var out []*entity.Lead
	for _, l := range f.s.leads {
		if fl.ProyectoID != "" && l.ProyectoID != fl.ProyectoID {
			continue
		}
		if fl.Estado != "" && l.Estado != fl.Estado {
			continue
		}
		if fl.VendedorID != "" && (l.VendedorAsignadoID == nil || *l.VendedorAsignadoID != fl.VendedorID) {
			continue
		}
		out = append(out, clone(l))
	}
	return out
}
func (f *fakeLeadRepo) List(_ context.Context, fl entity.LeadFilter) ([]*entity.Lead, int, error) {
	out := f.filtrar(fl)
	return out, len(out), nil
}
func (f *fakeLeadRepo) Stats(_ context.Context, fl entity.LeadFilter) (*entity.LeadStats, error) {
	st := &entity.LeadStats{}
	for _, l := range f.filtrar(fl) {
		st.Total++
		if l.Estado == entity.LeadCompleto {
			st.Completos++
		}
	}
	return st, nil
}
func (f *fakeLeadRepo) FindByTelefono(_ context.Context, tel string) (*entity.Lead, error) {
	for _, l := range f.s.leads {
		if l.Telefono == tel {
			return clone(l), nil
		}
	}
	return nil, nil
}
func (f *fakeLeadRepo) FindByTelefonoProyecto(_ context.Context, tel, proyectoID string) (*entity.Lead, error) {
	for _, l := range f.s.leads {
		if l.Telefono == tel && l.ProyectoID == proyectoID {
			return clone(l), nil
		}
	}
	return nil, nil
}
func (f *fakeLeadRepo) AsignarVendedor(_ context.Context, id string, vendedorID *string) error {
	l, ok := f.s.leads[id]
	if !ok {
		return domain.ErrNotFound
	}
	l.VendedorAsignadoID = vendedorID
	return nil
}
func (f *fakeLeadRepo) MarcarAsistio(_ context.Context, id string) error {
	l, ok := f.s.leads[id]
	if !ok {
		return domain.ErrNotFound
	}
	l.Asistio = true
	return nil
}

// ── Locales ──────────────────────────────────────────────────────────────────

type fakeLocalRepo struct{ s *memStore }

func (f *fakeLocalRepo) Create(_ context.Context, l *entity.Local) error {
	for _, x := range f.s.locales {
		if x.Codigo == l.Codigo && x.ProyectoID == l.ProyectoID {
			return domain.ErrDuplicate
		}
	}
	f.s.locales[l.ID] = clone(l)
	return nil
}
func (f *fakeLocalRepo) GetByID(_ context.Context, id string) (*entity.Local, error) {
	return clone(f.s.locales[id]), nil
}
func (f *fakeLocalRepo) GetForUpdate(ctx context.Context, id string) (*entity.Local, error) {
	return f.GetByID(ctx, id)
}
func (f *fakeLocalRepo) GetByCodigo(_ context.Context, proyectoID, codigo string) (*entity.Local, error) {
	for _, l := range f.s.locales {
		if l.Codigo == codigo && l.ProyectoID == proyectoID {
			return clone(l), nil
		}
	}
	return nil, nil
}
func (f *fakeLocalRepo) List(_ context.Context, fl entity.LocalFilter) ([]*entity.Local, int, error) {
	var out []*entity.Local
	for _, l := range f.s.locales {
		if fl.Estado != "" && l.Estado != fl.Estado {
			continue
		}
		out = append(out, clone(l))
	}
	return out, len(out), nil
}
func (f *fakeLocalRepo) Stats(_ context.Context, _ string) (*entity.LocalStats, error) {
	return &entity.LocalStats{Total: len(f.s.locales)}, nil
}
func (f *fakeLocalRepo) Update(_ context.Context, l *entity.Local) error {
	if _, ok := f.s.locales[l.ID]; !ok {
		return domain.ErrNotFound
	}
	f.s.locales[l.ID] = clone(l)
	return nil
}
func (f *fakeLocalRepo) Delete(_ context.Context, id string) error {
	delete(f.s.locales, id)
	return nil
}
func (f *fakeLocalRepo) VincularLead(_ context.Context, localID, leadID string) error {
	f.s.vinculos[localID] = leadID
	return nil
}
func (f *fakeLocalRepo) AddHistorial(_ context.Context, h *entity.LocalHistorial) error {
	f.s.historial = append(f.s.historial, clone(h))
	return nil
}
func (f *fakeLocalRepo) ListHistorial(_ context.Context, localID string) ([]*entity.LocalHistorial, error) {
	var out []*entity.LocalHistorial
	for _, h := range f.s.historial {
		if h.LocalID == localID {
			out = append(out, clone(h))
		}
	}
	return out, nil
}

// ── Control de pagos ─────────────────────────────────────────────────────────

type fakeControlRepo struct{ s *memStore }

func (f *fakeControlRepo) Create(_ context.Context, c *entity.ControlPago) error {
	f.s.controles[c.ID] = clone(c)
	return nil
}
func (f *fakeControlRepo) GetByID(_ context.Context, id string) (*entity.ControlPago, error) {
	return clone(f.s.controles[id]), nil
}
func (f *fakeControlRepo) GetByLocal(_ context.Context, localID string) (*entity.ControlPago, error) {
	for _, c := range f.s.controles {
		if c.LocalID == localID {
			return clone(c), nil
		}
	}
	return nil, nil
}
func (f *fakeControlRepo) List(_ context.Context, estado string, _, _ int) ([]*entity.ControlPago, int, error) {
	var out []*entity.ControlPago
	for _, c := range f.s.controles {
		if estado == "" || c.Estado == estado {
			out = append(out, clone(c))
		}
	}
	return out, len(out), nil
}
func (f *fakeControlRepo) Stats(context.Context) (*entity.ControlPagoStats, error) {
	return &entity.ControlPagoStats{Total: len(f.s.controles)}, nil
}
func (f *fakeControlRepo) UpdateInicialRestante(_ context.Context, id string, monto decimal.Decimal) error {
	f.s.controles[id].InicialRestante = monto
	return nil
}
func (f *fakeControlRepo) UpdateEstado(_ context.Context, id, estado string) error {
	f.s.controles[id].Estado = estado
	return nil
}

type fakePagoRepo struct{ s *memStore }

func (f *fakePagoRepo) CreateBatch(_ context.Context, ps []*entity.PagoLocal) error {
	for _, p := range ps {
		f.s.pagos[p.ID] = clone(p)
	}
	return nil
}
func (f *fakePagoRepo) GetByID(_ context.Context, id string) (*entity.PagoLocal, error) {
	return clone(f.s.pagos[id]), nil
}
func (f *fakePagoRepo) GetForUpdate(ctx context.Context, id string) (*entity.PagoLocal, error) {
	return f.GetByID(ctx, id)
}
func (f *fakePagoRepo) ListByControl(_ context.Context, controlID string) ([]*entity.PagoLocal, error) {
	var out []*entity.PagoLocal
	for _, p := range f.s.pagos {
		if p.ControlPagoID == controlID {
			out = append(out, clone(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FechaEsperada.Before(out[j].FechaEsperada) })
	return out, nil
}
func (f *fakePagoRepo) UpdateAbonado(_ context.Context, id string, abonado decimal.Decimal, estado string) error {
	p, ok := f.s.pagos[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.MontoAbonado, p.Estado = abonado, estado
	return nil
}
func (f *fakePagoRepo) AddAbono(_ context.Context, a *entity.AbonoPago) error {
	p := f.s.pagos[a.PagoID]
	p.Abonos = append(p.Abonos, clone(a))
	return nil
}
func (f *fakePagoRepo) CountAbonos(_ context.Context, pagoID string) (int, error) {
	return len(f.s.pagos[pagoID].Abonos), nil
}
func (f *fakePagoRepo) DeleteAbonos(_ context.Context, pagoID string) error {
	f.s.pagos[pagoID].Abonos = nil
	return nil
}

// ── Comisiones ───────────────────────────────────────────────────────────────

type fakeComisionRepo struct{ s *memStore }

func (f *fakeComisionRepo) CreateBatch(_ context.Context, cs []*entity.Comision) error {
	for _, c := range cs {
		f.s.comisiones[c.ID] = clone(c)
	}
	return nil
}
func (f *fakeComisionRepo) GetByID(_ context.Context, id string) (*entity.Comision, error) {
	return clone(f.s.comisiones[id]), nil
}
func (f *fakeComisionRepo) List(_ context.Context, fl entity.ComisionFilter) ([]*entity.Comision, error) {
	var out []*entity.Comision
	for _, c := range f.s.comisiones {
		if fl.Estado != "" && c.Estado != fl.Estado {
			continue
		}
		if fl.UsuarioID != "" && c.UsuarioID != fl.UsuarioID {
			continue
		}
		out = append(out, clone(c))
	}
	return out, nil
}
func (f *fakeComisionRepo) Stats(_ context.Context, usuarioID string) (*entity.ComisionStats, error) {
	st := &entity.ComisionStats{}
	for _, c := range f.s.comisiones {
		if usuarioID != "" && c.UsuarioID != usuarioID {
			continue
		}
		st.CountTotal++
		st.TotalGenerado = st.TotalGenerado.Add(c.MontoComision)
	}
	return st, nil
}
func (f *fakeComisionRepo) Update(_ context.Context, c *entity.Comision) error {
	f.s.comisiones[c.ID] = clone(c)
	return nil
}
func (f *fakeComisionRepo) Liberar(_ context.Context, controlID string, ahora time.Time) (int64, error) {
	var n int64
	for _, c := range f.s.comisiones {
		if c.ControlPagoID == controlID && c.Estado == entity.ComisionPendienteInicial {
			t := ahora
			c.Estado, c.FechaDisponible, c.FechaInicialCompleta = entity.ComisionDisponible, &t, &t
			n++
		}
	}
	return n, nil
}
func (f *fakeComisionRepo) Trazabilidad(_ context.Context, localID string) ([]*entity.ComisionTrazabilidad, error) {
	var out []*entity.ComisionTrazabilidad
	for _, c := range f.s.comisiones {
		if c.LocalID == localID {
			out = append(out, &entity.ComisionTrazabilidad{Comision: *c})
		}
	}
	return out, nil
}

// ── Corredores ───────────────────────────────────────────────────────────────

type fakeCorredorRepo struct{ s *memStore }

func (f *fakeCorredorRepo) Create(_ context.Context, r *entity.RegistroCorredor) error {
	f.s.registros[r.ID] = clone(r)
	return nil
}
func (f *fakeCorredorRepo) GetByID(_ context.Context, id string) (*entity.RegistroCorredor, error) {
	return clone(f.s.registros[id]), nil
}
func (f *fakeCorredorRepo) GetByUsuario(_ context.Context, usuarioID string) (*entity.RegistroCorredor, error) {
	for _, r := range f.s.registros {
		if r.UsuarioID == usuarioID {
			return clone(r), nil
		}
	}
	return nil, nil
}
func (f *fakeCorredorRepo) Update(_ context.Context, r *entity.RegistroCorredor) error {
	f.s.registros[r.ID] = clone(r)
	return nil
}
func (f *fakeCorredorRepo) List(_ context.Context, fl entity.RegistroFilter) ([]*entity.RegistroCorredor, error) {
	var out []*entity.RegistroCorredor
	for _, r := range f.s.registros {
		if fl.Estado == "" || r.Estado == fl.Estado {
			out = append(out, clone(r))
		}
	}
	return out, nil
}
func (f *fakeCorredorRepo) Stats(context.Context) (*entity.InboxStats, error) {
	st := &entity.InboxStats{}
	for _, r := range f.s.registros {
		st.Total++
		if r.Estado == entity.RegistroEnviado {
			st.Enviados++
		}
	}
	return st, nil
}
func docKey(registroID, tipo string) string { return registroID + "/" + tipo }
func (f *fakeCorredorRepo) GetDocumento(_ context.Context, registroID, tipo string) (*entity.DocumentoCorredor, error) {
	return clone(f.s.documentos[docKey(registroID, tipo)]), nil
}
func (f *fakeCorredorRepo) SaveDocumento(_ context.Context, d *entity.DocumentoCorredor) error {
	f.s.documentos[docKey(d.RegistroID, d.TipoDocumento)] = clone(d)
	return nil
}
func (f *fakeCorredorRepo) ListDocumentos(_ context.Context, registroID string) ([]*entity.DocumentoCorredor, error) {
	var out []*entity.DocumentoCorredor
	for _, d := range f.s.documentos {
		if d.RegistroID == registroID {
			out = append(out, clone(d))
		}
	}
	return out, nil
}
func (f *fakeCorredorRepo) AddHistorial(_ context.Context, h *entity.HistorialCorredor) error {
	f.s.histCorr = append(f.s.histCorr, clone(h))
	return nil
}
func (f *fakeCorredorRepo) ListHistorial(_ context.Context, registroID string) ([]*entity.HistorialCorredor, error) {
	var out []*entity.HistorialCorredor
	for _, h := range f.s.histCorr {
		if h.RegistroID == registroID {
			out = append(out, clone(h))
		}
	}
	return out, nil
}

// ── Reuniones ────────────────────────────────────────────────────────────────

type fakeReunionRepo struct{ s *memStore }

func (f *fakeReunionRepo) Create(_ context.Context, r *entity.Reunion) error {
	if f.s.createErr != nil {
		return f.s.createErr
	}
	f.s.reuniones[r.ID] = clone(r)
	return nil
}
func (f *fakeReunionRepo) GetByID(_ context.Context, id string) (*entity.Reunion, error) {
	return clone(f.s.reuniones[id]), nil
}
func (f *fakeReunionRepo) List(_ context.Context, fl entity.ReunionFilter) ([]*entity.Reunion, int, error) {
	var all []*entity.Reunion
	for _, r := range f.s.reuniones {
		if fl.Estado == "" || r.Estado == fl.Estado {
			all = append(all, clone(r))
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	total := len(all)
	if fl.Offset >= total {
		return nil, total, nil
	}
	return all[fl.Offset:min(fl.Offset+fl.Limit, total)], total, nil
}
func (f *fakeReunionRepo) Update(_ context.Context, r *entity.Reunion) error {
	if _, ok := f.s.reuniones[r.ID]; !ok {
		return domain.ErrNotFound
	}
	f.s.reuniones[r.ID] = clone(r)
	return nil
}
func (f *fakeReunionRepo) Delete(_ context.Context, id string) error {
	delete(f.s.reuniones, id)
	for k, it := range f.s.actionItems {
		if it.ReunionID == id {
			delete(f.s.actionItems, k)
		}
	}
	return nil
}
func (f *fakeReunionRepo) ListMediaVencida(_ context.Context, antes time.Time) ([]*entity.Reunion, error) {
	var out []*entity.Reunion
	for _, r := range f.s.reuniones {
		if r.CreatedAt.Before(antes) && r.MediaStoragePath != nil && r.MediaDeletedAt == nil {
			out = append(out, clone(r))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
func (f *fakeReunionRepo) MarcarMediaEliminada(_ context.Context, id string, ahora time.Time) error {
	r := f.s.reuniones[id]
	t := ahora
	r.MediaStoragePath, r.MediaDeletedAt = nil, &t
	return nil
}

type fakeActionItemRepo struct{ s *memStore }

func (f *fakeActionItemRepo) CreateBatch(_ context.Context, items []*entity.ActionItem) error {
	for _, it := range items {
		f.s.actionItems[it.ID] = clone(it)
	}
	return nil
}
func (f *fakeActionItemRepo) DeleteByReunion(_ context.Context, reunionID string) error {
	for k, it := range f.s.actionItems {
		if it.ReunionID == reunionID {
			delete(f.s.actionItems, k)
		}
	}
	return nil
}
func (f *fakeActionItemRepo) GetByID(_ context.Context, id string) (*entity.ActionItem, error) {
	return clone(f.s.actionItems[id]), nil
}
func (f *fakeActionItemRepo) ListByReunion(_ context.Context, reunionID string) ([]*entity.ActionItem, error) {
	var out []*entity.ActionItem
	for _, it := range f.s.actionItems {
		if it.ReunionID == reunionID {
			out = append(out, clone(it))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Descripcion < out[j].Descripcion })
	return out, nil
}
func (f *fakeActionItemRepo) ListByUsuario(_ context.Context, usuarioID string, includeCompleted bool) ([]*entity.ActionItem, error) {
	var out []*entity.ActionItem
	for _, it := range f.s.actionItems {
		if it.AsignadoUsuarioID == nil || *it.AsignadoUsuarioID != usuarioID {
			continue
		}
		if it.Completado && !includeCompleted {
			continue
		}
		out = append(out, clone(it))
	}
	return out, nil
}
func (f *fakeActionItemRepo) Update(_ context.Context, a *entity.ActionItem) error {
	f.s.actionItems[a.ID] = clone(a)
	return nil
}

// ── Puertos de salida ────────────────────────────────────────────────────────

type fakeStorage struct {
	mu        sync.Mutex
	objetos   map[string][]byte
	uploadErr error
	removeErr map[string]error
}

func newStorage() *fakeStorage {
	return &fakeStorage{objetos: map[string][]byte{}, removeErr: map[string]error{}}
}

func (f *fakeStorage) Upload(_ context.Context, bucket, key string, body io.Reader, _ int64, _ string) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, body); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objetos[bucket+"/"+key] = buf.Bytes()
	return nil
}
func (f *fakeStorage) Remove(_ context.Context, bucket, key string) error {
	if err := f.removeErr[key]; err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objetos, bucket+"/"+key)
	return nil
}
func (f *fakeStorage) Stat(_ context.Context, bucket, key string) (int64, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.objetos[bucket+"/"+key]
	return int64(len(b)), ok, nil
}
func (f *fakeStorage) PresignPut(_ context.Context, bucket, key, _ string, _ time.Duration) (string, error) {
	return "https://storage.test/" + bucket + "/" + key + "?firma=1", nil
}
func (f *fakeStorage) PublicURL(bucket, key string) string {
	return "https://storage.test/" + bucket + "/" + key
}

// fakePerms concede permitidos; con roles != nil solo a esos roles.
type fakePerms struct {
	permitidos map[string]bool
	roles      map[string]bool
}

func (f fakePerms) HasPermission(_ context.Context, _ string, rol string, p rbac.Permission) bool {
	if rol == entity.RolSuperadmin {
		return true
	}
	if f.roles != nil && !f.roles[rol] {
		return false
	}
	return f.permitidos[p.String()]
}

type fakeNotifier struct {
	mu     sync.Mutex
	envios []ports.LeadAsignado
}

func (f *fakeNotifier) LeadAsignado(_ context.Context, n ports.LeadAsignado) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.envios = append(f.envios, n)
}

// fakeExtractor devuelve items según el contenido del trozo.
type fakeExtractor struct {
	mu     sync.Mutex
	llamas int
	fallar string
}

func (f *fakeExtractor) ExtraerActionItems(_ context.Context, _, chunk string) ([]*entity.ActionItem, error) {
	f.mu.Lock()
	f.llamas++
	f.mu.Unlock()
	if f.fallar != "" && strings.Contains(chunk, f.fallar) {
		return nil, io.ErrUnexpectedEOF
	}
	return []*entity.ActionItem{
		{Descripcion: "Enviar cotización", Prioridad: entity.PrioridadAlta},
		{Descripcion: "Revisar planos del local " + chunk[:1]},
	}, nil
}

var _ repository.ReunionRepository = (*fakeReunionRepo)(nil)

// fechaFija reloj de prueba.
var fechaFija = time.Date(2026, 6, 15, 10, 0, 0, 0, time.Local)

func fixedNow() time.Time { return fechaFija }

func ptr[T any](v T) *T { return &v }

// ── Repulse ──────────────────────────────────────────────────────────────────

// fakeRepulseRepo propio mutex: los lotes se procesan en goroutines.
type fakeRepulseRepo struct {
	mu         sync.Mutex
	templates  map[string]*entity.RepulseTemplate
	leads      map[string]*entity.RepulseLead
	base       map[string]*entity.Lead
	excluidos  map[string]bool
	compras    map[string]bool
	envios     map[string]*entity.RepulseEnvio
	leadsHoy   int
	desdeCuota time.Time
}

func newRepulseRepo() *fakeRepulseRepo {
	return &fakeRepulseRepo{
		templates: map[string]*entity.RepulseTemplate{},
		leads:     map[string]*entity.RepulseLead{},
		base:      map[string]*entity.Lead{},
		excluidos: map[string]bool{},
		compras:   map[string]bool{},
		envios:    map[string]*entity.RepulseEnvio{},
	}
}

func (f *fakeRepulseRepo) ListTemplates(_ context.Context, proyectoID string) ([]*entity.RepulseTemplate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.RepulseTemplate
	for _, t := range f.templates {
		if t.ProyectoID == proyectoID && t.Activo {
			out = append(out, clone(t))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return out, nil
}
func (f *fakeRepulseRepo) GetTemplate(_ context.Context, id string) (*entity.RepulseTemplate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return clone(f.templates[id]), nil
}
func (f *fakeRepulseRepo) CreateTemplate(_ context.Context, t *entity.RepulseTemplate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.templates[t.ID] = clone(t)
	return nil
}
func (f *fakeRepulseRepo) UpdateTemplate(_ context.Context, t *entity.RepulseTemplate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.templates[t.ID] = clone(t)
	return nil
}

// conDatos completa los campos de lectura como lo haría el JOIN.
func (f *fakeRepulseRepo) conDatos(rl *entity.RepulseLead) *entity.RepulseLead {
	c := clone(rl)
	if l := f.base[rl.LeadID]; l != nil {
		c.LeadNombre, c.LeadTelefono, c.LeadHorarioVisita = l.Nombre, l.Telefono, l.HorarioVisita
		c.LeadEstado, c.LeadCreatedAt = l.Estado, l.CreatedAt
	}
	return c
}

func (f *fakeRepulseRepo) ListLeads(_ context.Context, fl entity.RepulseLeadFilter) ([]*entity.RepulseLead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := map[string]bool{}
	for _, id := range fl.IDs {
		ids[id] = true
	}
	var out []*entity.RepulseLead
	for _, rl := range f.leads {
		if fl.ProyectoID != "" && rl.ProyectoID != fl.ProyectoID {
			continue
		}
		if fl.Estado != "" && rl.Estado != fl.Estado {
			continue
		}
		if len(ids) > 0 && !ids[rl.ID] {
			continue
		}
		out = append(out, f.conDatos(rl))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
func (f *fakeRepulseRepo) GetLead(_ context.Context, id string) (*entity.RepulseLead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if rl := f.leads[id]; rl != nil {
		return f.conDatos(rl), nil
	}
	return nil, nil
}
func (f *fakeRepulseRepo) CreateLead(_ context.Context, rl *entity.RepulseLead) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.leads {
		if e.LeadID == rl.LeadID && e.ProyectoID == rl.ProyectoID {
			return domain.ErrDuplicate
		}
	}
	f.leads[rl.ID] = clone(rl)
	return nil
}
func (f *fakeRepulseRepo) UpdateEstado(_ context.Context, id, estado string, ahora time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rl, ok := f.leads[id]
	if !ok {
		return domain.ErrNotFound
	}
	rl.Estado, rl.UpdatedAt = estado, ahora
	return nil
}
func (f *fakeRepulseRepo) DeleteLead(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.leads[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.leads, id)
	return nil
}
func (f *fakeRepulseRepo) Elegibilidad(_ context.Context, leadID string) (entity.RepulseElegibilidad, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, existe := f.base[leadID]
	return entity.RepulseElegibilidad{Existe: existe, Excluido: f.excluidos[leadID], TieneCompra: f.compras[leadID]}, nil
}
func (f *fakeRepulseRepo) SetExcluido(_ context.Context, leadID string, excluido bool, ahora time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.base[leadID]; !ok {
		return domain.ErrNotFound
	}
	f.excluidos[leadID] = excluido
	for _, rl := range f.leads {
		if rl.LeadID != leadID {
			continue
		}
		switch {
		case excluido:
			rl.Estado, rl.UpdatedAt = entity.RepulseExcluido, ahora
		case rl.Estado == entity.RepulseExcluido:
			rl.Estado, rl.UpdatedAt = entity.RepulsePendiente, ahora
		}
	}
	return nil
}
func (f *fakeRepulseRepo) Candidatos(_ context.Context, proyectoID string, corte time.Time) ([]*entity.Lead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	enCampania := map[string]bool{}
	for _, rl := range f.leads {
		if rl.ProyectoID == proyectoID {
			enCampania[rl.LeadID] = true
		}
	}
	var out []*entity.Lead
	for _, l := range f.base {
		if l.ProyectoID != proyectoID || !l.CreatedAt.Before(corte) {
			continue
		}
		if f.excluidos[l.ID] || f.compras[l.ID] || enCampania[l.ID] {
			continue
		}
		out = append(out, clone(l))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
func (f *fakeRepulseRepo) Stats(_ context.Context, proyectoID string) (*entity.RepulseStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var s entity.RepulseStats
	for _, rl := range f.leads {
		if rl.ProyectoID != proyectoID {
			continue
		}
		s.Total++
		switch rl.Estado {
		case entity.RepulsePendiente:
			s.Pendientes++
		case entity.RepulseEnviado:
			s.Enviados++
		case entity.RepulseRespondio:
			s.Respondieron++
		case entity.RepulseSinRespuesta:
			s.SinRespuesta++
		case entity.RepulseExcluido:
			s.Excluidos++
		}
	}
	return &s, nil
}
func (f *fakeRepulseRepo) LeadsCampaniaDesde(_ context.Context, t time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.desdeCuota = t
	return f.leadsHoy, nil
}
func (f *fakeRepulseRepo) CreateEnvios(_ context.Context, es []*entity.RepulseEnvio) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range es {
		f.envios[e.ID] = clone(e)
	}
	return nil
}
func (f *fakeRepulseRepo) GetEnvio(_ context.Context, id string) (*entity.RepulseEnvio, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return clone(f.envios[id]), nil
}
func (f *fakeRepulseRepo) UpdateEnvio(_ context.Context, e *entity.RepulseEnvio) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.envios[e.ID]; !ok {
		return domain.ErrNotFound
	}
	f.envios[e.ID] = clone(e)
	return nil
}
func (f *fakeRepulseRepo) ListEnvios(_ context.Context, leadID string) ([]*entity.RepulseEnvio, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.RepulseEnvio
	for _, e := range f.envios {
		if e.LeadID == leadID {
			out = append(out, clone(e))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
func (f *fakeRepulseRepo) EstadoBatch(_ context.Context, batchID string) (*entity.RepulseBatchEstado, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var s entity.RepulseBatchEstado
	for _, e := range f.envios {
		if e.BatchID != batchID {
			continue
		}
		s.Total++
		switch e.EnvioEstado {
		case entity.EnvioEnviado:
			s.Enviados++
		case entity.EnvioError:
			s.Errores++
		case entity.EnvioPendiente:
			s.Pendientes++
		case entity.EnvioEnviando:
			s.Enviando++
		}
	}
	return &s, nil
}
func (f *fakeRepulseRepo) RegistrarEnvio(_ context.Context, repulseLeadID string, templateID *string, ahora time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rl, ok := f.leads[repulseLeadID]
	if !ok {
		return domain.ErrNotFound
	}
	t := ahora
	rl.Estado, rl.ConteoRepulses, rl.UltimoRepulseAt, rl.UpdatedAt = entity.RepulseEnviado, rl.ConteoRepulses+1, &t, ahora
	if templateID != nil {
		rl.TemplateUsadoID = clone(templateID)
	}
	return nil
}

var _ repository.RepulseRepository = (*fakeRepulseRepo)(nil)

// fakeRepulseSender acepta todo salvo los teléfonos en rechazar o fallar.
type fakeRepulseSender struct {
	mu       sync.Mutex
	sinURL   bool
	rechazar map[string]string
	fallar   map[string]error
	mensajes []ports.RepulseMensaje
}

func (f *fakeRepulseSender) Configurado() bool { return !f.sinURL }

func (f *fakeRepulseSender) EnviarRepulse(_ context.Context, m ports.RepulseMensaje) (ports.RepulseResultado, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mensajes = append(f.mensajes, m)
	if err := f.fallar[m.Telefono]; err != nil {
		return ports.RepulseResultado{}, err
	}
	if msg, ok := f.rechazar[m.Telefono]; ok {
		return ports.RepulseResultado{Success: false, Status: "failed", Error: &msg}, nil
	}
	return ports.RepulseResultado{Success: true, Status: "accepted", WhatsappMessageID: ptr("wamid." + m.Telefono)}, nil
}

// ── Aprobaciones ─────────────────────────────────────────────────────────────

type fakeAprobacionRepo struct {
	config      map[string]*entity.ConfigAprobacion
	solicitudes map[string]*entity.SolicitudAprobacion
}

func newAprobacionRepo() *fakeAprobacionRepo {
	return &fakeAprobacionRepo{
		config:      map[string]*entity.ConfigAprobacion{},
		solicitudes: map[string]*entity.SolicitudAprobacion{},
	}
}

func (f *fakeAprobacionRepo) GetConfig(_ context.Context, proyectoID string) (*entity.ConfigAprobacion, error) {
	return clone(f.config[proyectoID]), nil
}
func (f *fakeAprobacionRepo) SaveConfig(_ context.Context, c *entity.ConfigAprobacion) error {
	if prev := f.config[c.ProyectoID]; prev != nil {
		c.ID = prev.ID
	}
	f.config[c.ProyectoID] = clone(c)
	return nil
}
func (f *fakeAprobacionRepo) Create(_ context.Context, s *entity.SolicitudAprobacion) error {
	f.solicitudes[s.ID] = clonarSolicitud(s)
	return nil
}
func (f *fakeAprobacionRepo) GetByID(_ context.Context, id string) (*entity.SolicitudAprobacion, error) {
	if s := f.solicitudes[id]; s != nil {
		return clonarSolicitud(s), nil
	}
	return nil, nil
}
func (f *fakeAprobacionRepo) List(_ context.Context, fl entity.AprobacionFilter) ([]*entity.SolicitudAprobacion, error) {
	var out []*entity.SolicitudAprobacion
	for _, s := range f.solicitudes {
		if fl.ProyectoID != "" && s.ProyectoID != fl.ProyectoID {
			continue
		}
		if fl.Estado != "" && s.Estado != fl.Estado {
			continue
		}
		if fl.VendedorID != "" && s.VendedorID != fl.VendedorID {
			continue
		}
		if fl.Rol != "" && !contiene(s.AprobadoresRequeridos, fl.Rol) {
			continue
		}
		out = append(out, clonarSolicitud(s))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FechaSolicitud.After(out[j].FechaSolicitud) })
	return out, nil
}
func (f *fakeAprobacionRepo) Update(_ context.Context, s *entity.SolicitudAprobacion) error {
	prev := f.solicitudes[s.ID]
	if prev == nil || prev.Estado != entity.AprobacionPendiente {
		return domain.ErrConflict
	}
	f.solicitudes[s.ID] = clonarSolicitud(s)
	return nil
}
func (f *fakeAprobacionRepo) Stats(_ context.Context, proyectoID string) (*entity.AprobacionStats, error) {
	var s entity.AprobacionStats
	suma := decimal.Zero
	for _, a := range f.solicitudes {
		if a.ProyectoID != proyectoID {
			continue
		}
		s.Total++
		suma = suma.Add(a.DescuentoPorcentaje)
		switch a.Estado {
		case entity.AprobacionPendiente:
			s.Pendientes++
		case entity.AprobacionAprobado:
			s.Aprobadas++
		case entity.AprobacionRechazado:
			s.Rechazadas++
		case entity.AprobacionCancelado:
			s.Canceladas++
		}
	}
	if s.Total > 0 {
		s.DescuentoPromedio = suma.Div(decimal.NewFromInt(int64(s.Total))).Round(2)
	}
	return &s, nil
}

var _ repository.AprobacionRepository = (*fakeAprobacionRepo)(nil)

func clonarSolicitud(s *entity.SolicitudAprobacion) *entity.SolicitudAprobacion {
	c := clone(s)
	c.AprobadoresRequeridos = append([]string(nil), s.AprobadoresRequeridos...)
	c.Aprobaciones = append([]entity.DecisionAprobacion(nil), s.Aprobaciones...)
	return c
}

func contiene(xs []string, x string) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

type fakeAprobacionNotifier struct {
	mu      sync.Mutex
	eventos []ports.AprobacionEvento
}

func (f *fakeAprobacionNotifier) AprobacionEvento(_ context.Context, e ports.AprobacionEvento) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.eventos = append(f.eventos, e)
}

func (f *fakeAprobacionNotifier) tipos() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, e := range f.eventos {
		out = append(out, e.Tipo)
	}
	return out
}
