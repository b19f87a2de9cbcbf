package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ecoplaza/ecoplaza-api/internal/application/dto"
	"github.com/ecoplaza/ecoplaza-api/internal/application/ports"
	"github.com/ecoplaza/ecoplaza-api/internal/domain"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/entity"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/repository"
)

// UsuarioUseCase administración de cuentas.
type UsuarioUseCase struct {
	repo  repository.UsuarioRepository
	tx    ports.TxRunner
	cache CacheInvalidator
}

// NewUsuarioUseCase construye el caso de uso.
func NewUsuarioUseCase(repo repository.UsuarioRepository, tx ports.TxRunner, cache CacheInvalidator) *UsuarioUseCase {
	return &UsuarioUseCase{repo: repo, tx: tx, cache: cache}
}

// List usuarios ordenados por nombre. con_reuniones exige proyecto.
func (uc *UsuarioUseCase) List(ctx context.Context, in dto.UsuarioListRequest) ([]dto.UsuarioResponse, error) {
	f := entity.UsuarioFilter{ActivosOnly: in.ActivosOnly, Rol: in.Rol}
	if in.ConReuniones {
		if in.ProyectoID == "" {
			return nil, fmt.Errorf("%w: proyecto_id es requerido con con_reuniones", domain.ErrInvalidInput)
		}
		f.ConReunionesProyecto = in.ProyectoID
	}
	list, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UsuarioResponse, 0, len(list))
	for _, u := range list {
		out = append(out, *toUsuarioResponse(u))
	}
	return out, nil
}

// Create alta de cuenta; los roles de venta reciben su ficha de vendedor en la misma transacción.
func (uc *UsuarioUseCase) Create(ctx context.Context, in dto.CreateUsuarioRequest) (*dto.UsuarioResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	nombre := strings.TrimSpace(in.Nombre)
	if email == "" || nombre == "" || len(in.Password) < 8 {
		return nil, fmt.Errorf("%w: nombre, email y password (mínimo 8) son requeridos", domain.ErrInvalidInput)
	}
	if !entity.EsRolValido(in.Rol) {
		return nil, fmt.Errorf("%w: rol %q", domain.ErrInvalidInput, in.Rol)
	}
	existing, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	u := &entity.Usuario{
		ID:           uuid.New().String(),
		Nombre:       nombre,
		Email:        email,
		PasswordHash: string(hash),
		Rol:          in.Rol,
		Activo:       true,
		Telefono:     nilSiVacio(in.Telefono),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = uc.tx.Run(ctx, func(r ports.TxRepos) error {
		if entity.EsRolVendedor(u.Rol) {
			v := &entity.Vendedor{
				ID:        uuid.New().String(),
				Nombre:    u.Nombre,
				Activo:    true,
				CreatedAt: now,
			}
			if u.Telefono != nil {
				v.Telefono = *u.Telefono
			}
			if err := r.Vendedores.Create(ctx, v); err != nil {
				return err
			}
			u.VendedorID = &v.ID
		}
		return r.Usuarios.Create(ctx, u)
	})
	if err != nil {
		return nil, err
	}
	return toUsuarioResponse(u), nil
}

// SetActivo activa o desactiva la cuenta e invalida sus permisos en caché.
func (uc *UsuarioUseCase) SetActivo(ctx context.Context, id string, activo bool) error {
	if err := uc.repo.SetActivo(ctx, id, activo); err != nil {
		return err
	}
	if uc.cache != nil {
		uc.cache.InvalidateUser(id)
	}
	return nil
}

func toUsuarioResponse(u *entity.Usuario) *dto.UsuarioResponse {
	if u == nil {
		return nil
	}
	return &dto.UsuarioResponse{
		ID:         u.ID,
		Nombre:     u.Nombre,
		Email:      u.Email,
		Rol:        u.Rol,
		Activo:     u.Activo,
		VendedorID: u.VendedorID,
		Telefono:   u.Telefono,
		CreatedAt:  u.CreatedAt,
	}
}
