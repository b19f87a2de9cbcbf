package dto

import "time"

// LoginRequest credenciales.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token JWT y usuario autenticado.
type LoginResponse struct {
	Token string          `json:"token"`
	User  UsuarioResponse `json:"user"`
}

// CreateUsuarioRequest alta de una cuenta (password en texto, se hashea en el use case).
type CreateUsuarioRequest struct {
	Nombre   string  `json:"nombre" validate:"required,max=200"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	Rol      string  `json:"rol" validate:"required"`
	Telefono *string `json:"telefono,omitempty"`
}

// SetActivoRequest activa o desactiva una cuenta.
type SetActivoRequest struct {
	Activo bool `json:"activo"`
}

// UsuarioResponse salida de un usuario (sin password).
type UsuarioResponse struct {
	ID         string    `json:"id"`
	Nombre     string    `json:"nombre"`
	Email      string    `json:"email"`
	Rol        string    `json:"rol"`
	Activo     bool      `json:"activo"`
	VendedorID *string   `json:"vendedor_id,omitempty"`
	Telefono   *string   `json:"telefono,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// UsuarioListRequest filtros de GET /api/usuarios.
type UsuarioListRequest struct {
	ActivosOnly  bool
	Rol          string
	ConReuniones bool
	ProyectoID   string
}

// ProyectoResponse salida de un proyecto.
type ProyectoResponse struct {
	ID     string  `json:"id"`
	Nombre string  `json:"nombre"`
	Slug   string  `json:"slug"`
	Color  *string `json:"color,omitempty"`
	Activo bool    `json:"activo"`
}
