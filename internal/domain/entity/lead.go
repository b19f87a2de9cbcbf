package entity

import "time"

// Estados de un lead.
const (
	LeadCompleto               = "lead_completo"
	LeadIncompleto             = "lead_incompleto"
	LeadEnConversacion         = "en_conversacion"
	LeadConversacionAbandonada = "conversacion_abandonada"
	LeadManual                 = "lead_manual"
)

// Orígenes especiales de leads creados desde la operación.
const (
	UTMVinculacionManual = "vinculacion_manual"
	UTMVisitaProyecto    = "visita_proyecto"
)

// Lead representa un prospecto captado por algún canal.
type Lead struct {
	ID                 string
	ProyectoID         string
	Telefono           string
	Nombre             *string
	Email              *string
	Rubro              *string
	HorarioVisita      *string
	Estado             string
	UTM                *string
	Asistio            bool
	VendedorAsignadoID *string
	FechaCaptura       time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time

	// Datos de lectura (JOIN)
	ProyectoNombre *string
	VendedorNombre *string
}

// LeadFilter filtros del listado de leads.
type LeadFilter struct {
	ProyectoID string
	Estado     string
	VendedorID string
	Desde      *time.Time
	Hasta      *time.Time
	Limit      int
	Offset     int
}

// LeadStats conteos por estado.
type LeadStats struct {
	Total        int
	Completos    int
	Incompletos  int
	Conversacion int
	Abandonados  int
}
