package dto

import "time"

// RegistroCorredorRequest datos del registro (alta y edición).
type RegistroCorredorRequest struct {
	TipoPersona        string  `json:"tipo_persona" validate:"required,oneof=natural juridica"`
	Email              string  `json:"email" validate:"required,email"`
	Telefono           string  `json:"telefono" validate:"required"`
	DireccionDeclarada *string `json:"direccion_declarada"`
	DNI                *string `json:"dni"`
	Nombres            *string `json:"nombres"`
	ApellidoPaterno    *string `json:"apellido_paterno"`
	ApellidoMaterno    *string `json:"apellido_materno"`
	FechaNacimiento    *string `json:"fecha_nacimiento"` // YYYY-MM-DD
	RazonSocial        *string `json:"razon_social"`
	RUC                *string `json:"ruc"`
	RepresentanteLegal *string `json:"representante_legal"`
	DNIRepresentante   *string `json:"dni_representante"`
	EsPEP              bool    `json:"es_pep"`
}

// RegistroCorredorResponse salida del registro.
type RegistroCorredorResponse struct {
	ID                 string     `json:"id"`
	UsuarioID          string     `json:"usuario_id"`
	TipoPersona        string     `json:"tipo_persona"`
	NombreCompleto     string     `json:"nombre_completo"`
	Email              string     `json:"email"`
	Telefono           string     `json:"telefono"`
	DireccionDeclarada *string    `json:"direccion_declarada"`
	DNI                *string    `json:"dni"`
	Nombres            *string    `json:"nombres"`
	ApellidoPaterno    *string    `json:"apellido_paterno"`
	ApellidoMaterno    *string    `json:"apellido_materno"`
	FechaNacimiento    *string    `json:"fecha_nacimiento"`
	RazonSocial        *string    `json:"razon_social"`
	RUC                *string    `json:"ruc"`
	RepresentanteLegal *string    `json:"representante_legal"`
	DNIRepresentante   *string    `json:"dni_representante"`
	EsPEP              bool       `json:"es_pep"`
	Estado             string     `json:"estado"`
	Observaciones      *string    `json:"observaciones"`
	EnviadoAt          *time.Time `json:"enviado_at"`
	AprobadoPor        *string    `json:"aprobado_por"`
	AprobadoAt         *time.Time `json:"aprobado_at"`
	DocumentosCount    int        `json:"documentos_count"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// DocumentoCorredorResponse documento del expediente.
type DocumentoCorredorResponse struct {
	ID             string    `json:"id"`
	TipoDocumento  string    `json:"tipo_documento"`
	StoragePath    string    `json:"storage_path"`
	PublicURL      *string   `json:"public_url"`
	NombreOriginal *string   `json:"nombre_original"`
	ContentType    *string   `json:"content_type"`
	SizeBytes      *int64    `json:"size_bytes"`
	CreatedAt      time.Time `json:"created_at"`
}

// HistorialCorredorResponse acción del flujo.
type HistorialCorredorResponse struct {
	ID            string    `json:"id"`
	Accion        string    `json:"accion"`
	Comentario    *string   `json:"comentario"`
	RealizadoPor  *string   `json:"realizado_por"`
	UsuarioNombre *string   `json:"usuario_nombre"`
	CreatedAt     time.Time `json:"created_at"`
}

// RegistroDetalleResponse registro con documentos, historial y faltantes.
type RegistroDetalleResponse struct {
	Registro   RegistroCorredorResponse    `json:"registro"`
	Documentos []DocumentoCorredorResponse `json:"documentos"`
	Historial  []HistorialCorredorResponse `json:"historial"`
	Faltantes  []string                    `json:"documentos_faltantes"`
}

// MotivoRequest texto obligatorio para rechazar u observar.
type MotivoRequest struct {
	Motivo        string `json:"motivo"`
	Observaciones string `json:"observaciones"`
}

// InboxStatsResponse conteo de la bandeja.
type InboxStatsResponse struct {
	Total      int `json:"total"`
	Borradores int `json:"borradores"`
	Enviados   int `json:"enviados"`
	EnRevision int `json:"en_revision"`
	Observados int `json:"observados"`
	Aprobados  int `json:"aprobados"`
	Rechazados int `json:"rechazados"`
}
