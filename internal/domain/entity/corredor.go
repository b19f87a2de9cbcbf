package entity

import "time"

// Tipo de persona del corredor.
const (
	PersonaNatural  = "natural"
	PersonaJuridica = "juridica"
)

// Estados del registro de corredor.
const (
	RegistroBorrador   = "borrador"
	RegistroEnviado    = "enviado"
	RegistroEnRevision = "en_revision"
	RegistroObservado  = "observado"
	RegistroAprobado   = "aprobado"
	RegistroRechazado  = "rechazado"
)

// Acciones del historial del registro.
const (
	AccionCreado     = "creado"
	AccionEnviado    = "enviado"
	AccionEnRevision = "en_revision"
	AccionObservado  = "observado"
	AccionCorregido  = "corregido"
	AccionAprobado   = "aprobado"
	AccionRechazado  = "rechazado"
)

// Tipos de documento del expediente.
const (
	DocDNIFrente                  = "dni_frente"
	DocDNIReverso                 = "dni_reverso"
	DocReciboLuz                  = "recibo_luz"
	DocDeclaracionJuradaDireccion = "declaracion_jurada_direccion"
	DocFichaRUC                   = "ficha_ruc"
	DocVigenciaPoder              = "vigencia_poder"
	DocDeclaracionPEP             = "declaracion_pep"
)

// RegistroCorredor solicitud de alta de un corredor externo.
type RegistroCorredor struct {
	ID                 string
	UsuarioID          string
	TipoPersona        string
	Email              string
	Telefono           string
	DireccionDeclarada *string
	DNI                *string
	Nombres            *string
	ApellidoPaterno    *string
	ApellidoMaterno    *string
	FechaNacimiento    *time.Time
	RazonSocial        *string
	RUC                *string
	RepresentanteLegal *string
	DNIRepresentante   *string
	EsPEP              bool
	Estado             string
	Observaciones      *string
	EnviadoAt          *time.Time
	AprobadoPor        *string
	AprobadoAt         *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time

	DocumentosCount int
}

// NombreCompleto nombres y apellidos, o razón social para personas jurídicas.
func (r *RegistroCorredor) NombreCompleto() string {
	if r.TipoPersona == PersonaJuridica {
		return deref(r.RazonSocial)
	}
	nombre := deref(r.Nombres)
	for _, p := range []*string{r.ApellidoPaterno, r.ApellidoMaterno} {
		if s := deref(p); s != "" {
			nombre += " " + s
		}
	}
	return nombre
}

// DocumentoCorredor archivo del expediente en el bucket de documentos.
type DocumentoCorredor struct {
	ID             string
	RegistroID     string
	TipoDocumento  string
	StoragePath    string
	PublicURL      *string
	NombreOriginal *string
	ContentType    *string
	SizeBytes      *int64
	CreatedAt      time.Time
}

// HistorialCorredor traza de acciones sobre el registro.
type HistorialCorredor struct {
	ID            string
	RegistroID    string
	Accion        string
	Comentario    *string
	RealizadoPor  *string
	CreatedAt     time.Time
	UsuarioNombre *string
}

// RegistroFilter filtros de la bandeja de revisión.
type RegistroFilter struct {
	Estado      string
	TipoPersona string
	Busqueda    string
}

// InboxStats conteo por estado de la bandeja.
type InboxStats struct {
	Total      int
	Borradores int
	Enviados   int
	EnRevision int
	Observados int
	Aprobados  int
	Rechazados int
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
