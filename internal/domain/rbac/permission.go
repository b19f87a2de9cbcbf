// Package rbac define permisos "modulo:accion" y la matriz de roles heredada.
package rbac

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ecoplaza/ecoplaza-api/internal/domain"
)

// Módulos del sistema.
const (
	ModLeads         = "leads"
	ModLocales       = "locales"
	ModVentas        = "ventas"
	ModControlPagos  = "control_pagos"
	ModComisiones    = "comisiones"
	ModRepulse       = "repulse"
	ModAprobaciones  = "aprobaciones"
	ModUsuarios      = "usuarios"
	ModProyectos     = "proyectos"
	ModInsights      = "insights"
	ModReuniones     = "reuniones"
	ModConfiguracion = "configuracion"
	ModExpansion     = "expansion"
)

// Modulos lista completa.
var Modulos = []string{
	ModLeads, ModLocales, ModVentas, ModControlPagos, ModComisiones, ModRepulse,
	ModAprobaciones, ModUsuarios, ModProyectos, ModInsights, ModReuniones,
	ModConfiguracion, ModExpansion,
}

// Acciones.
const (
	AccRead               = "read"
	AccReadAll            = "read_all"
	AccWrite              = "write"
	AccDelete             = "delete"
	AccExport             = "export"
	AccImport             = "import"
	AccBulkActions        = "bulk_actions"
	AccAssign             = "assign"
	AccApprove            = "approve"
	AccReject             = "reject"
	AccVerify             = "verify"
	AccConfig             = "config"
	AccAdmin              = "admin"
	AccCambiarEstado      = "cambiar_estado"
	AccCambiarPrecio      = "cambiar_precio"
	AccGenerarConstancias = "generar_constancias"
	AccGenerarContratos   = "generar_contratos"
	AccExpediente         = "expediente"
	AccValidacionBancaria = "validacion_bancaria"
	AccChangeRole         = "change_role"
	AccAssignPermissions  = "assign_permissions"
	AccViewAudit          = "view_audit"
	AccWebhooks           = "webhooks"
	AccIntegraciones      = "integraciones"
	AccExclude            = "exclude"
)

// Acciones lista completa.
var Acciones = []string{
	AccRead, AccReadAll, AccWrite, AccDelete, AccExport, AccImport, AccBulkActions,
	AccAssign, AccApprove, AccReject, AccVerify, AccConfig, AccAdmin,
	AccCambiarEstado, AccCambiarPrecio, AccGenerarConstancias, AccGenerarContratos,
	AccExpediente, AccValidacionBancaria, AccChangeRole, AccAssignPermissions,
	AccViewAudit, AccWebhooks, AccIntegraciones, AccExclude,
}

// Permission par módulo/acción.
type Permission struct {
	Modulo string
	Accion string
}

// P atajo de construcción.
func P(modulo, accion string) Permission { return Permission{Modulo: modulo, Accion: accion} }

// String formato "modulo:accion".
func (p Permission) String() string { return p.Modulo + ":" + p.Accion }

// Parse interpreta "modulo:accion"; exige exactamente dos partes no vacías.
func Parse(s string) (Permission, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Permission{}, fmt.Errorf("%w: permiso %q", domain.ErrInvalidInput, s)
	}
	return Permission{Modulo: parts[0], Accion: parts[1]}, nil
}

// UserPermissions permisos efectivos de un usuario.
type UserPermissions struct {
	UserID        string
	Rol           string
	RolID         string
	Permisos      []Permission
	PermisosExtra []Permission
}

// Has busca el permiso en los del rol y los extra.
func (u *UserPermissions) Has(p Permission) bool {
	for _, x := range u.Permisos {
		if x == p {
			return true
		}
	}
	for _, x := range u.PermisosExtra {
		if x == p {
			return true
		}
	}
	return false
}

// List permisos deduplicados y ordenados en formato "modulo:accion".
func (u *UserPermissions) List() []string {
	set := make(map[string]struct{}, len(u.Permisos)+len(u.PermisosExtra))
	for _, p := range u.Permisos {
		set[p.String()] = struct{}{}
	}
	for _, p := range u.PermisosExtra {
		set[p.String()] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
