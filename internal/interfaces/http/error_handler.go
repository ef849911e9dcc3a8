package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Restaurante-api/internal/application/apperr"
	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/domain"
)

// Códigos de error expuestos a los clientes.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeInvalidInput = "INVALID_INPUT"
	CodeDuplicate    = "DUPLICATE_ENTRY"
	CodeInternal     = "INTERNAL_SERVER_ERROR"
	CodeUnknown      = "UNKNOWN_ERROR"
)

var statusCodes = map[int]string{
	http.StatusBadRequest:          "BAD_REQUEST",
	http.StatusUnauthorized:        "UNAUTHORIZED",
	http.StatusForbidden:           "FORBIDDEN",
	http.StatusNotFound:            "NOT_FOUND",
	http.StatusMethodNotAllowed:    "METHOD_NOT_ALLOWED",
	http.StatusConflict:            "CONFLICT",
	http.StatusUnprocessableEntity: "UNPROCESSABLE_ENTITY",
	http.StatusTooManyRequests:     "TOO_MANY_REQUESTS",
	http.StatusInternalServerError: CodeInternal,
	http.StatusBadGateway:          "BAD_GATEWAY",
	http.StatusServiceUnavailable:  "SERVICE_UNAVAILABLE",
}

// StatusCode código de error para un estado HTTP; HTTP_<status> si no está en la tabla.
func StatusCode(status int) string {
	if code, ok := statusCodes[status]; ok {
		return code
	}
	return fmt.Sprintf("HTTP_%d", status)
}

// NewErrorHandler traductor global de errores: todo error que llega a Fiber sale con la forma
// {errorCode, message, details?}. La primera regla que coincide decide la respuesta.
func NewErrorHandler(log zerolog.Logger, production bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, body := translate(err, production)

		var ev *zerolog.Event
		if status >= http.StatusInternalServerError {
			ev = log.Error()
		} else {
			ev = log.Warn()
		}
		ev = ev.Str("method", c.Method()).Str("path", c.Path())
		if production {
			ev.Str("code", body.ErrorCode).Str("message", body.Message).Msg("petición con error")
		} else {
			ev.Stack().Err(err).Int("status", status).Msg("petición con error")
		}

		return c.Status(status).JSON(body)
	}
}

func translate(err error, production bool) (int, dto.ErrorResponse) {
	var (
		httpErr   *apperr.HTTPError
		fiberErr  *fiber.Error
		docErr    *domain.ValidationError
		castErr   *domain.CastError
		dupErr    *domain.DuplicateKeyError
		fieldErrs validator.ValidationErrors
		unknown   *apperr.UnknownError
	)
	switch {
	case errors.As(err, &httpErr) && len(httpErr.Validation) > 0:
		return http.StatusBadRequest, dto.ErrorResponse{
			ErrorCode: CodeValidation,
			Message:   httpErr.Message,
			Details:   httpErr.Validation,
		}

	case errors.As(err, &httpErr):
		msg := httpErr.Message
		if msg == "" {
			msg = http.StatusText(httpErr.Status)
		}
		return httpErr.Status, dto.ErrorResponse{ErrorCode: StatusCode(httpErr.Status), Message: msg}

	case errors.As(err, &fiberErr):
		return fiberErr.Code, dto.ErrorResponse{ErrorCode: StatusCode(fiberErr.Code), Message: fiberErr.Message}

	case errors.As(err, &docErr):
		return http.StatusBadRequest, dto.ErrorResponse{
			ErrorCode: CodeValidation,
			Message:   docErr.Error(),
			Details:   docErr.Violations,
		}

	case errors.As(err, &castErr):
		return http.StatusBadRequest, dto.ErrorResponse{
			ErrorCode: CodeInvalidInput,
			Message:   fmt.Sprintf("valor inválido para %s", castErr.Field),
			Details: fiber.Map{
				"field": castErr.Field,
				"value": castErr.Value,
				"kind":  castErr.Kind,
			},
		}

	case errors.As(err, &dupErr):
		field, value := dupErr.Field()
		return http.StatusConflict, dto.ErrorResponse{
			ErrorCode: CodeDuplicate,
			Message:   dupErr.Error(),
			Details:   fiber.Map{"field": field, "value": value},
		}

	case errors.As(err, &fieldErrs):
		return http.StatusBadRequest, dto.ErrorResponse{
			ErrorCode: CodeValidation,
			Message:   "datos de entrada inválidos",
			Details:   fieldErrors(fieldErrs),
		}

	case errors.As(err, &unknown):
		return http.StatusInternalServerError, dto.ErrorResponse{ErrorCode: CodeUnknown, Message: "error desconocido"}
	}

	msg := "error interno del servidor"
	if !production {
		msg = err.Error()
	}
	return http.StatusInternalServerError, dto.ErrorResponse{ErrorCode: CodeInternal, Message: msg}
}
