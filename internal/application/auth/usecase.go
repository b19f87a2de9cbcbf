package auth

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/ecoplaza/ecoplaza-api/internal/application/dto"
	"github.com/ecoplaza/ecoplaza-api/internal/domain"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/entity"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/repository"
	"github.com/ecoplaza/ecoplaza-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación.
type AuthUseCase struct {
	usuarioRepo repository.UsuarioRepository
	jwtCfg      JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(usuarioRepo repository.UsuarioRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{usuarioRepo: usuarioRepo, jwtCfg: jwtCfg}
}

// Login verifica email/password, genera JWT y retorna token + usuario.
// Usuario inexistente o password incorrecto ⇒ ErrUnauthorized; cuenta inactiva ⇒ ErrForbidden.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.usuarioRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.Activo {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, user.Rol, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUsuarioResponse(user),
	}, nil
}

// Me datos del usuario autenticado.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.UsuarioResponse, error) {
	user, err := uc.usuarioRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUsuarioResponse(user), nil
}

// HashPassword bcrypt con costo por defecto.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
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
