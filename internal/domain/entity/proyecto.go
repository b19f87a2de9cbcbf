package entity

import "time"

// Proyecto agrupa locales y leads (Trapiche, Callao, ...).
type Proyecto struct {
	ID        string
	Nombre    string
	Slug      string
	Color     *string
	Activo    bool
	CreatedAt time.Time
}
