package expansion

import (
	"testing"
	"time"

	"github.com/ecoplaza/ecoplaza-api/internal/domain"
	"github.com/ecoplaza/ecoplaza-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ahora = time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

func str(s string) *string { return &s }

func registroNatural(estado string) *entity.RegistroCorredor {
	nac := time.Date(1990, 5, 4, 0, 0, 0, 0, time.UTC)
	return &entity.RegistroCorredor{
		ID:                 "r1",
		UsuarioID:          "c1",
		TipoPersona:        entity.PersonaNatural,
		Email:              "corredor@mail.com",
		Telefono:           "987654321",
		DireccionDeclarada: str("Av. Arequipa 123"),
		DNI:                str("45678912"),
		Nombres:            str("Ana"),
		ApellidoPaterno:    str("Quispe"),
		ApellidoMaterno:    str("Rojas"),
		FechaNacimiento:    &nac,
		Estado:             estado,
	}
}

var docsNatural = []string{entity.DocDNIFrente, entity.DocDNIReverso, entity.DocReciboLuz, entity.DocDeclaracionJuradaDireccion}

func TestEnviar_DesdeBorrador(t *testing.T) {
	r := registroNatural(entity.RegistroBorrador)
	accion, _, err := Enviar(r, docsNatural, ahora)
	require.NoError(t, err)
	assert.Equal(t, entity.AccionEnviado, accion)
	assert.Equal(t, entity.RegistroEnviado, r.Estado)
	require.NotNil(t, r.EnviadoAt)
}

func TestEnviar_DesdeObservadoEsCorreccion(t *testing.T) {
	r := registroNatural(entity.RegistroObservado)
	r.Observaciones = str("DNI ilegible")
	accion, comentario, err := Enviar(r, docsNatural, ahora)
	require.NoError(t, err)
	assert.Equal(t, entity.AccionCorregido, accion)
	assert.Contains(t, comentario, "Correcciones")
	assert.Nil(t, r.Observaciones)
}

func TestEnviar_FaltanDocumentos(t *testing.T) {
	r := registroNatural(entity.RegistroBorrador)
	_, _, err := Enviar(r, []string{entity.DocDNIFrente}, ahora)
	assert.ErrorIs(t, err, domain.ErrDocumentosFaltantes)
	assert.Contains(t, err.Error(), entity.DocReciboLuz)
	assert.Equal(t, entity.RegistroBorrador, r.Estado)
}

func TestEnviar_EstadoNoEditable(t *testing.T) {
	for _, e := range []string{entity.RegistroEnviado, entity.RegistroEnRevision, entity.RegistroAprobado, entity.RegistroRechazado} {
		_, _, err := Enviar(registroNatural(e), docsNatural, ahora)
		assert.ErrorIs(t, err, domain.ErrTransicionInvalida, e)
	}
}

func TestFlujoRevision(t *testing.T) {
	r := registroNatural(entity.RegistroEnviado)
	require.NoError(t, TomarRevision(r))
	assert.Equal(t, entity.RegistroEnRevision, r.Estado)
	assert.ErrorIs(t, TomarRevision(r), domain.ErrTransicionInvalida)

	require.NoError(t, Aprobar(r, "legal1", ahora))
	assert.Equal(t, entity.RegistroAprobado, r.Estado)
	assert.Equal(t, "legal1", *r.AprobadoPor)

	assert.ErrorIs(t, Rechazar(r, "tarde"), domain.ErrTransicionInvalida)
}

func TestRechazarYObservarExigenTexto(t *testing.T) {
	r := registroNatural(entity.RegistroEnviado)
	assert.ErrorIs(t, Rechazar(r, "  "), domain.ErrInvalidInput)
	assert.ErrorIs(t, Observar(r, ""), domain.ErrInvalidInput)

	require.NoError(t, Observar(r, "Falta firma"))
	assert.Equal(t, entity.RegistroObservado, r.Estado)
	assert.True(t, Editable(r.Estado))

	r2 := registroNatural(entity.RegistroEnRevision)
	require.NoError(t, Rechazar(r2, "Documentación falsa"))
	assert.Equal(t, "Documentación falsa", *r2.Observaciones)
}

func TestAprobarBorradorFalla(t *testing.T) {
	assert.ErrorIs(t, Aprobar(registroNatural(entity.RegistroBorrador), "x", ahora), domain.ErrTransicionInvalida)
}

func TestValidarDatos(t *testing.T) {
	assert.NoError(t, ValidarDatos(registroNatural(entity.RegistroBorrador)))

	sinDNI := registroNatural(entity.RegistroBorrador)
	sinDNI.DNI = str("123")
	assert.ErrorIs(t, ValidarDatos(sinDNI), domain.ErrInvalidInput)

	juridica := &entity.RegistroCorredor{
		TipoPersona:        entity.PersonaJuridica,
		Email:              "empresa@mail.com",
		Telefono:           "014445555",
		DireccionDeclarada: str("Jr. Lima 45"),
		RazonSocial:        str("Inmobiliaria SAC"),
		RUC:                str("20123456789"),
		RepresentanteLegal: str("Luis Pérez"),
		DNIRepresentante:   str("40404040"),
	}
	assert.NoError(t, ValidarDatos(juridica))

	juridica.RUC = str("2012345")
	assert.ErrorIs(t, ValidarDatos(juridica), domain.ErrInvalidInput)

	assert.ErrorIs(t, ValidarDatos(&entity.RegistroCorredor{TipoPersona: "otra"}), domain.ErrInvalidInput)
}

func TestValidarArchivo(t *testing.T) {
	assert.NoError(t, ValidarArchivo("application/pdf", 1024))
	assert.ErrorIs(t, ValidarArchivo("text/plain", 1024), domain.ErrInvalidInput)
	assert.ErrorIs(t, ValidarArchivo("image/png", MaxDocumentoBytes+1), domain.ErrInvalidInput)
}

func TestFaltantesJuridica(t *testing.T) {
	f := Faltantes(entity.PersonaJuridica, []string{entity.DocFichaRUC, entity.DocDNIFrente})
	assert.ElementsMatch(t, []string{
		entity.DocVigenciaPoder, entity.DocDNIReverso, entity.DocDeclaracionJuradaDireccion, entity.DocDeclaracionPEP,
	}, f)
	assert.True(t, EsTipoDocumento(entity.DocReciboLuz))
	assert.False(t, EsTipoDocumento("pasaporte"))
}
