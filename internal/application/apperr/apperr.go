// Package apperr define los errores con estado HTTP que devuelven los casos de uso.
package apperr

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"

	"github.com/jhoicas/Restaurante-api/internal/domain"
)

// FieldError detalle de un campo inválido en una petición.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// HTTPError error reconocido por la capa HTTP: lleva estado, mensaje y, para errores de
// validación de DTO, la lista de campos.
type HTTPError struct {
	Status     int
	Message    string
	Validation []FieldError
	Err        error
}

func (e *HTTPError) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
	return e.Message
}

func (e *HTTPError) Unwrap() error { return e.Err }

// New error con estado y mensaje arbitrarios.
func New(status int, message string) *HTTPError {
	return &HTTPError{Status: status, Message: message}
}

func BadRequest(message string) *HTTPError   { return New(http.StatusBadRequest, message) }
func Unauthorized(message string) *HTTPError { return New(http.StatusUnauthorized, message) }
func Forbidden(message string) *HTTPError    { return New(http.StatusForbidden, message) }
func NotFound(message string) *HTTPError     { return New(http.StatusNotFound, message) }
func Conflict(message string) *HTTPError     { return New(http.StatusConflict, message) }
func BadGateway(message string) *HTTPError   { return New(http.StatusBadGateway, message) }

// Validation error 400 con el detalle de campos de un DTO.
func Validation(fields []FieldError) *HTTPError {
	return &HTTPError{Status: http.StatusBadRequest, Message: "datos de entrada inválidos", Validation: fields}
}

// Internal error 500; conserva la causa con su stack para el log.
func Internal(err error) *HTTPError {
	if err == nil {
		err = errors.New("error interno")
	}
	return &HTTPError{Status: http.StatusInternalServerError, Message: "error interno del servidor", Err: errors.WithStack(err)}
}

// Wrapf adjunta una causa a un error HTTP.
func (e *HTTPError) Wrapf(err error, format string, args ...any) *HTTPError {
	e.Err = errors.Wrapf(err, format, args...)
	return e
}

// FromDomain traduce errores de dominio a errores HTTP. Los errores tipados del almacén
// (validación, cast, clave duplicada) se devuelven sin cambios para el traductor global.
func FromDomain(err error) error {
	if err == nil {
		return nil
	}
	var (
		httpErr *HTTPError
		verr    *domain.ValidationError
		cerr    *domain.CastError
		derr    *domain.DuplicateKeyError
	)
	switch {
	case errors.As(err, &httpErr), errors.As(err, &verr), errors.As(err, &cerr), errors.As(err, &derr):
		return err
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return &HTTPError{Status: http.StatusNotFound, Message: err.Error(), Err: err}
	case errors.Is(err, domain.ErrForbidden):
		return &HTTPError{Status: http.StatusForbidden, Message: err.Error(), Err: err}
	case errors.Is(err, domain.ErrUnauthorized):
		return &HTTPError{Status: http.StatusUnauthorized, Message: err.Error(), Err: err}
	case errors.Is(err, domain.ErrInvalidInput):
		return &HTTPError{Status: http.StatusBadRequest, Message: err.Error(), Err: err}
	case errors.Is(err, domain.ErrConflict):
		return &HTTPError{Status: http.StatusConflict, Message: err.Error(), Err: err}
	default:
		return Internal(err)
	}
}

// UnknownError envuelve un valor recuperado de un panic que no es un error.
type UnknownError struct {
	Value any
}

func (e *UnknownError) Error() string {
	return fmt.Sprintf("valor desconocido: %v", e.Value)
}
