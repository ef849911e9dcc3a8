package http_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Restaurante-api/internal/application/apperr"
	"github.com/jhoicas/Restaurante-api/internal/domain"
	apphttp "github.com/jhoicas/Restaurante-api/internal/interfaces/http"
)

// errorApp aplicación cuya única ruta ejecuta fn; los panics pasan por Recover.
func errorApp(production bool, fn fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.NewErrorHandler(zerolog.Nop(), production)})
	app.Use(apphttp.Recover())
	app.Get("/boom", fn)
	return app
}

func failWith(err error) fiber.Handler {
	return func(*fiber.Ctx) error { return err }
}

type nuevoPlato struct {
	Name  string `validate:"required"`
	Email string `validate:"required,email"`
}

func TestErrorHandler_Reglas(t *testing.T) {
	fieldErr := validator.New().Struct(nuevoPlato{Email: "no-es-correo"})
	require.Error(t, fieldErr)

	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{
			name:   "validación de DTO",
			err:    apperr.Validation([]apperr.FieldError{{Field: "email", Message: "es obligatorio"}}),
			status: http.StatusBadRequest, code: "VALIDATION_ERROR", message: "datos de entrada inválidos",
		},
		{
			name:   "error HTTP de caso de uso",
			err:    apperr.Forbidden("solo admin puede otorgar owner"),
			status: http.StatusForbidden, code: "FORBIDDEN", message: "solo admin puede otorgar owner",
		},
		{
			name:   "error HTTP sin mensaje",
			err:    &apperr.HTTPError{Status: http.StatusNotFound},
			status: http.StatusNotFound, code: "NOT_FOUND", message: "Not Found",
		},
		{
			name:   "estado fuera de la tabla",
			err:    apperr.New(http.StatusTeapot, "soy una tetera"),
			status: http.StatusTeapot, code: "HTTP_418", message: "soy una tetera",
		},
		{
			name:   "error de fiber",
			err:    fiber.ErrMethodNotAllowed,
			status: http.StatusMethodNotAllowed, code: "METHOD_NOT_ALLOWED", message: "Method Not Allowed",
		},
		{
			name: "validación de documento",
			err: &domain.ValidationError{Model: "Dish", Violations: []domain.FieldViolation{
				{Field: "price", Message: "must be >= 0"},
			}},
			status: http.StatusBadRequest, code: "VALIDATION_ERROR", message: "Dish validation failed: price: must be >= 0",
		},
		{
			name:   "id mal formado",
			err:    &domain.CastError{Field: "_id", Value: "abc", Kind: "ObjectId"},
			status: http.StatusBadRequest, code: "INVALID_INPUT", message: "valor inválido para _id",
		},
		{
			name: "clave duplicada",
			err: &domain.DuplicateKeyError{
				Code:       11000,
				KeyPattern: map[string]any{"name": 1},
				KeyValue:   map[string]any{"name": "X"},
			},
			status: http.StatusConflict, code: "DUPLICATE_ENTRY", message: "name 'X' already exists",
		},
		{
			name:   "errores de validator",
			err:    fieldErr,
			status: http.StatusBadRequest, code: "VALIDATION_ERROR", message: "datos de entrada inválidos",
		},
		{
			name:   "error genérico",
			err:    errors.New("conexión rechazada"),
			status: http.StatusInternalServerError, code: "INTERNAL_SERVER_ERROR", message: "conexión rechazada",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := doGet(t, errorApp(false, failWith(tt.err)), "/boom", "")

			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.code, body["errorCode"])
			assert.Equal(t, tt.message, body["message"])
		})
	}
}

func TestErrorHandler_DetallesDeDuplicado(t *testing.T) {
	dup := &domain.DuplicateKeyError{Code: 11000, KeyPattern: map[string]any{"email": 1}, KeyValue: map[string]any{"email": "ana@restaurante.co"}}

	_, body := doGet(t, errorApp(false, failWith(dup)), "/boom", "")

	details, ok := body["details"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "email", details["field"])
	assert.Equal(t, "ana@restaurante.co", details["value"])
}

func TestErrorHandler_DetallesDeCast(t *testing.T) {
	cast := &domain.CastError{Field: "_id", Value: "abc", Kind: "ObjectId"}

	_, body := doGet(t, errorApp(false, failWith(cast)), "/boom", "")

	details, ok := body["details"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "_id", details["field"])
	assert.Equal(t, "abc", details["value"])
	assert.Equal(t, "ObjectId", details["kind"])
}

func TestErrorHandler_DetallesDeCampos(t *testing.T) {
	err := validator.New().Struct(nuevoPlato{Email: "no-es-correo"})

	_, body := doGet(t, errorApp(false, failWith(err)), "/boom", "")

	details, ok := body["details"].([]any)
	require.True(t, ok)
	assert.Len(t, details, 2)
}

// Un error tipado envuelto conserva su regla.
func TestErrorHandler_ErrorEnvuelto(t *testing.T) {
	cast := &domain.CastError{Field: "dishes.0", Value: "zz", Kind: "ObjectId"}
	wrapped := fmt.Errorf("creando pedido: %w", cast)

	resp, body := doGet(t, errorApp(false, failWith(wrapped)), "/boom", "")

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_INPUT", body["errorCode"])
}

func TestErrorHandler_PanicConValorNoError(t *testing.T) {
	app := errorApp(false, func(*fiber.Ctx) error { panic("algo raro") })

	resp, body := doGet(t, app, "/boom", "")

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "UNKNOWN_ERROR", body["errorCode"])
	assert.Equal(t, "error desconocido", body["message"])
}

func TestErrorHandler_PanicConError(t *testing.T) {
	app := errorApp(false, func(*fiber.Ctx) error { panic(apperr.Conflict("pedido ya tomado")) })

	resp, body := doGet(t, app, "/boom", "")

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "CONFLICT", body["errorCode"])
}

func TestErrorHandler_ProduccionOcultaMensajeInterno(t *testing.T) {
	resp, body := doGet(t, errorApp(true, failWith(errors.New("dial tcp 10.0.0.5:27017"))), "/boom", "")

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", body["errorCode"])
	assert.Equal(t, "error interno del servidor", body["message"])
}

func TestErrorHandler_RutaInexistente(t *testing.T) {
	resp, body := doGet(t, errorApp(false, failWith(nil)), "/no-existe", "")

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body["errorCode"])
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, "UNAUTHORIZED", apphttp.StatusCode(http.StatusUnauthorized))
	assert.Equal(t, "HTTP_402", apphttp.StatusCode(http.StatusPaymentRequired))
}
