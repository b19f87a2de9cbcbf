package entity

import "time"

// Roles válidos para Usuario.
const (
	RolSuperadmin     = "superadmin"
	RolAdmin          = "admin"
	RolJefeVentas     = "jefe_ventas"
	RolGerencia       = "gerencia"
	RolVendedor       = "vendedor"
	RolVendedorCaseta = "vendedor_caseta"
	RolFinanzas       = "finanzas"
	RolMarketing      = "marketing"
	RolCoordinador    = "coordinador"
	RolCorredor       = "corredor"
	RolLegal          = "legal"
)

// RolesValidos lista de roles aceptados al crear cuentas.
var RolesValidos = []string{
	RolSuperadmin, RolAdmin, RolJefeVentas, RolGerencia, RolVendedor,
	RolVendedorCaseta, RolFinanzas, RolMarketing, RolCoordinador, RolCorredor, RolLegal,
}

// EsRolValido indica si rol pertenece a RolesValidos.
func EsRolValido(rol string) bool {
	for _, r := range RolesValidos {
		if r == rol {
			return true
		}
	}
	return false
}

// EsRolVendedor agrupa los roles de fuerza de ventas (ven solo lo propio).
func EsRolVendedor(rol string) bool {
	return rol == RolVendedor || rol == RolVendedorCaseta
}

// Usuario representa una cuenta del sistema.
type Usuario struct {
	ID           string
	Nombre       string
	Email        string
	PasswordHash string // bcrypt
	Rol          string
	Activo       bool
	VendedorID   *string // enlace a vendedores para roles de venta
	Telefono     *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Vendedor es la ficha comercial a la que se asignan los leads.
type Vendedor struct {
	ID        string
	Nombre    string
	Telefono  string
	Activo    bool
	CreatedAt time.Time
}

// UsuarioFilter filtros del listado de usuarios.
type UsuarioFilter struct {
	ActivosOnly bool
	Rol         string
	// ConReunionesProyecto limita a usuarios con reuniones creadas en ese proyecto.
	ConReunionesProyecto string
}
