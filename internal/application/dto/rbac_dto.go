package dto

// UserPermissionsResponse permisos efectivos del usuario actual.
type UserPermissionsResponse struct {
	UserID        string   `json:"user_id"`
	Rol           string   `json:"rol"`
	RolID         string   `json:"rol_id,omitempty"`
	Permisos      []string `json:"permisos"`
	PermisosExtra []string `json:"permisos_extra"`
}

// CacheStatsResponse estado de la caché de permisos.
type CacheStatsResponse struct {
	Total   int `json:"total"`
	Valid   int `json:"valid"`
	Expired int `json:"expired"`
}

// ClearCacheRequest user_id vacío limpia toda la caché.
type ClearCacheRequest struct {
	UserID string `json:"user_id"`
}
