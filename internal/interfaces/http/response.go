package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/ecoplaza/ecoplaza-api/internal/application/dto"
	"github.com/ecoplaza/ecoplaza-api/internal/domain"
)

// errorStatus traduce un error de dominio a status HTTP y código.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrEstadoInvalido):
		return fiber.StatusBadRequest, "ESTADO_INVALIDO"
	case errors.Is(err, domain.ErrDocumentosFaltantes):
		return fiber.StatusBadRequest, "DOCUMENTOS_FALTANTES"
	case errors.Is(err, domain.ErrMontoExcedido):
		return fiber.StatusBadRequest, "MONTO_EXCEDIDO"
	case errors.Is(err, domain.ErrLocalBloqueado):
		return fiber.StatusForbidden, "LOCAL_BLOQUEADO"
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return fiber.StatusConflict, "EMAIL_EXISTS"
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrTransicionInvalida):
		return fiber.StatusConflict, "TRANSICION_INVALIDA"
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, "CONFLICT"
	default:
		return fiber.StatusInternalServerError, "INTERNAL"
	}
}

// mapError responde con el status que corresponde al error. Los 500 se registran
// y no exponen el detalle interno.
func mapError(c *fiber.Ctx, err error) error {
	status, code := errorStatus(err)
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("http: error interno")
		msg = "error interno del servidor"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Success: false, Error: msg, Code: code})
}

func fail(c *fiber.Ctx, status int, code, msg string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Success: false, Error: msg, Code: code})
}

func badBody(c *fiber.Ctx) error {
	return fail(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
}

func ok(c *fiber.Ctx, data any) error {
	return c.JSON(dto.DataResponse{Success: true, Data: data})
}

func created(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusCreated).JSON(dto.DataResponse{Success: true, Data: data})
}

func noCache(c *fiber.Ctx) {
	c.Set(fiber.HeaderCacheControl, "no-store, no-cache, must-revalidate")
	c.Set(fiber.HeaderPragma, "no-cache")
	c.Set(fiber.HeaderExpires, "0")
}
