package rbac

import "github.com/ecoplaza/ecoplaza-api/internal/domain/entity"

// LegacyPermissions matriz fija por rol, usada cuando ENABLE_RBAC está apagado.
func LegacyPermissions(rol string) []Permission {
	switch rol {
	case entity.RolSuperadmin, entity.RolAdmin:
		return todos(Modulos...)
	case entity.RolJefeVentas, entity.RolGerencia:
		return excepto(todos(Modulos...),
			P(ModUsuarios, AccWrite), P(ModUsuarios, AccDelete), P(ModUsuarios, AccChangeRole),
			P(ModConfiguracion, AccWrite), P(ModConfiguracion, AccWebhooks), P(ModConfiguracion, AccIntegraciones),
		)
	case entity.RolVendedor, entity.RolVendedorCaseta:
		return []Permission{
			P(ModLeads, AccRead), P(ModLeads, AccWrite),
			P(ModLocales, AccRead), P(ModLocales, AccCambiarEstado),
			P(ModReuniones, AccRead), P(ModReuniones, AccWrite),
			P(ModComisiones, AccRead),
			P(ModAprobaciones, AccRead), P(ModAprobaciones, AccWrite),
		}
	case entity.RolFinanzas:
		return append(todos(ModControlPagos),
			P(ModComisiones, AccRead), P(ModComisiones, AccReadAll), P(ModComisiones, AccExport),
			P(ModLocales, AccRead),
		)
	case entity.RolMarketing:
		out := append(todos(ModRepulse), todos(ModInsights)...)
		return append(out, P(ModLeads, AccRead), P(ModLeads, AccReadAll), P(ModLeads, AccExport))
	case entity.RolCoordinador:
		return append(todos(ModReuniones),
			P(ModLeads, AccRead), P(ModLeads, AccAssign),
			P(ModLocales, AccRead),
		)
	case entity.RolCorredor:
		return []Permission{P(ModExpansion, AccRead), P(ModExpansion, AccWrite)}
	case entity.RolLegal:
		return []Permission{
			P(ModExpansion, AccRead), P(ModExpansion, AccReadAll),
			P(ModExpansion, AccApprove), P(ModExpansion, AccReject),
			P(ModControlPagos, AccRead),
		}
	default:
		return nil
	}
}

// Evaluar aplica las reglas especiales antes de consultar la lista del usuario.
func Evaluar(up *UserPermissions, p Permission) bool {
	// sin rol: usuario inactivo o inexistente
	if up == nil || up.Rol == "" {
		return false
	}
	if up.Rol == entity.RolSuperadmin {
		return true
	}
	switch p {
	case P(ModLeads, AccAssign):
		return up.Rol != entity.RolCorredor
	case P(ModLeads, AccExport):
		return false
	}
	return up.Has(p)
}

func todos(modulos ...string) []Permission {
	out := make([]Permission, 0, len(modulos)*len(Acciones))
	for _, m := range modulos {
		for _, a := range Acciones {
			out = append(out, P(m, a))
		}
	}
	return out
}

func excepto(ps []Permission, quitar ...Permission) []Permission {
	out := ps[:0:0]
	for _, p := range ps {
		skip := false
		for _, q := range quitar {
			if p == q {
				skip = true
				break
			}
		}
		if !skip {
			out = append(out, p)
		}
	}
	return out
}
