package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// Semáforo de locales
	ErrLocalBloqueado = errors.New("local bloqueado")
	ErrEstadoInvalido = errors.New("estado inválido")

	// Expansión (registro de corredores)
	ErrTransicionInvalida  = errors.New("el registro no admite esta acción en su estado actual")
	ErrDocumentosFaltantes = errors.New("faltan documentos requeridos")

	// Pagos
	ErrMontoExcedido = errors.New("el monto excede lo que falta pagar")
)
