// Package expansion contiene la máquina de estados del registro de corredores:
// borrador → enviado → en_revision → aprobado | rechazado, con observado como
// vuelta al corredor para correcciones.
package expansion

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/ecoplaza/ecoplaza-api/internal/domain"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/entity"
)

// MaxDocumentoBytes tamaño máximo de un documento del expediente (5MB).
const MaxDocumentoBytes = 5 * 1024 * 1024

var (
	reDNI = regexp.MustCompile(`^\d{8}$`)
	reRUC = regexp.MustCompile(`^\d{11}$`)

	tiposArchivo = map[string]bool{
		"image/jpeg":      true,
		"image/png":       true,
		"image/webp":      true,
		"application/pdf": true,
	}
)

// DocumentosRequeridos según tipo de persona.
func DocumentosRequeridos(tipoPersona string) []string {
	if tipoPersona == entity.PersonaJuridica {
		return []string{
			entity.DocFichaRUC, entity.DocVigenciaPoder, entity.DocDNIFrente,
			entity.DocDNIReverso, entity.DocDeclaracionJuradaDireccion, entity.DocDeclaracionPEP,
		}
	}
	return []string{
		entity.DocDNIFrente, entity.DocDNIReverso, entity.DocReciboLuz, entity.DocDeclaracionJuradaDireccion,
	}
}

// EsTipoDocumento indica si tipo es un documento conocido del expediente.
func EsTipoDocumento(tipo string) bool {
	for _, t := range DocumentosRequeridos(entity.PersonaJuridica) {
		if t == tipo {
			return true
		}
	}
	return tipo == entity.DocReciboLuz
}

// Faltantes documentos requeridos que no están en presentes.
func Faltantes(tipoPersona string, presentes []string) []string {
	tiene := make(map[string]bool, len(presentes))
	for _, p := range presentes {
		tiene[p] = true
	}
	var out []string
	for _, req := range DocumentosRequeridos(tipoPersona) {
		if !tiene[req] {
			out = append(out, req)
		}
	}
	return out
}

// Editable el corredor solo puede modificar datos o documentos en borrador u observado.
func Editable(estado string) bool {
	return estado == entity.RegistroBorrador || estado == entity.RegistroObservado
}

func enRevisable(estado string) bool {
	return estado == entity.RegistroEnviado || estado == entity.RegistroEnRevision
}

// Enviar pasa a enviado. Devuelve la acción de historial (enviado o corregido) y su comentario.
func Enviar(r *entity.RegistroCorredor, presentes []string, ahora time.Time) (accion, comentario string, err error) {
	if !Editable(r.Estado) {
		return "", "", fmt.Errorf("%w: no se puede enviar en estado %s", domain.ErrTransicionInvalida, r.Estado)
	}
	if faltan := Faltantes(r.TipoPersona, presentes); len(faltan) > 0 {
		return "", "", fmt.Errorf("%w: %s", domain.ErrDocumentosFaltantes, strings.Join(faltan, ", "))
	}

	accion, comentario = entity.AccionEnviado, "Registro enviado para revisión"
	if r.Estado == entity.RegistroObservado {
		accion, comentario = entity.AccionCorregido, "Correcciones enviadas para nueva revisión"
	}
	t := ahora
	r.Estado = entity.RegistroEnviado
	r.EnviadoAt = &t
	r.Observaciones = nil
	return accion, comentario, nil
}

// TomarRevision enviado → en_revision.
func TomarRevision(r *entity.RegistroCorredor) error {
	if r.Estado != entity.RegistroEnviado {
		return fmt.Errorf("%w: solo se toman registros enviados", domain.ErrTransicionInvalida)
	}
	r.Estado = entity.RegistroEnRevision
	return nil
}

// Aprobar enviado|en_revision → aprobado.
func Aprobar(r *entity.RegistroCorredor, usuarioID string, ahora time.Time) error {
	if !enRevisable(r.Estado) {
		return fmt.Errorf("%w: solo se aprueban registros en revisión", domain.ErrTransicionInvalida)
	}
	t, u := ahora, usuarioID
	r.Estado = entity.RegistroAprobado
	r.AprobadoPor = &u
	r.AprobadoAt = &t
	return nil
}

// Rechazar enviado|en_revision → rechazado; el motivo es obligatorio.
func Rechazar(r *entity.RegistroCorredor, motivo string) error {
	motivo = strings.TrimSpace(motivo)
	if motivo == "" {
		return fmt.Errorf("%w: debe indicar el motivo del rechazo", domain.ErrInvalidInput)
	}
	if !enRevisable(r.Estado) {
		return fmt.Errorf("%w: solo se rechazan registros en revisión", domain.ErrTransicionInvalida)
	}
	r.Estado = entity.RegistroRechazado
	r.Observaciones = &motivo
	return nil
}

// Observar enviado|en_revision → observado; devuelve el registro al corredor.
func Observar(r *entity.RegistroCorredor, observaciones string) error {
	observaciones = strings.TrimSpace(observaciones)
	if observaciones == "" {
		return fmt.Errorf("%w: debe indicar las observaciones", domain.ErrInvalidInput)
	}
	if !enRevisable(r.Estado) {
		return fmt.Errorf("%w: solo se observan registros en revisión", domain.ErrTransicionInvalida)
	}
	r.Estado = entity.RegistroObservado
	r.Observaciones = &observaciones
	return nil
}

// ValidarDatos campos obligatorios según tipo de persona.
func ValidarDatos(r *entity.RegistroCorredor) error {
	var faltan []string
	req := func(nombre string, v *string) {
		if v == nil || strings.TrimSpace(*v) == "" {
			faltan = append(faltan, nombre)
		}
	}

	if strings.TrimSpace(r.Email) == "" {
		faltan = append(faltan, "email")
	}
	if strings.TrimSpace(r.Telefono) == "" {
		faltan = append(faltan, "telefono")
	}
	req("direccion_declarada", r.DireccionDeclarada)

	switch r.TipoPersona {
	case entity.PersonaNatural:
		req("dni", r.DNI)
		req("nombres", r.Nombres)
		req("apellido_paterno", r.ApellidoPaterno)
		req("apellido_materno", r.ApellidoMaterno)
		if r.FechaNacimiento == nil {
			faltan = append(faltan, "fecha_nacimiento")
		}
	case entity.PersonaJuridica:
		req("razon_social", r.RazonSocial)
		req("ruc", r.RUC)
		req("representante_legal", r.RepresentanteLegal)
		req("dni_representante", r.DNIRepresentante)
	default:
		return fmt.Errorf("%w: tipo_persona debe ser natural o juridica", domain.ErrInvalidInput)
	}
	if len(faltan) > 0 {
		return fmt.Errorf("%w: campos requeridos: %s", domain.ErrInvalidInput, strings.Join(faltan, ", "))
	}

	if r.DNI != nil && !reDNI.MatchString(*r.DNI) {
		return fmt.Errorf("%w: el DNI debe tener 8 dígitos", domain.ErrInvalidInput)
	}
	if r.DNIRepresentante != nil && !reDNI.MatchString(*r.DNIRepresentante) {
		return fmt.Errorf("%w: el DNI del representante debe tener 8 dígitos", domain.ErrInvalidInput)
	}
	if r.RUC != nil && !reRUC.MatchString(*r.RUC) {
		return fmt.Errorf("%w: el RUC debe tener 11 dígitos", domain.ErrInvalidInput)
	}
	return nil
}

// ValidarArchivo tipo (jpeg, png, webp, pdf) y tamaño de un documento.
func ValidarArchivo(contentType string, size int64) error {
	if !tiposArchivo[contentType] {
		return fmt.Errorf("%w: tipo de archivo no permitido", domain.ErrInvalidInput)
	}
	if size <= 0 {
		return fmt.Errorf("%w: el archivo está vacío", domain.ErrInvalidInput)
	}
	if size > MaxDocumentoBytes {
		return fmt.Errorf("%w: el archivo excede el tamaño máximo (5MB)", domain.ErrInvalidInput)
	}
	return nil
}
