package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrUserNotFound = errors.New("usuario no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")
)

// FieldViolation describe un campo que no cumple el esquema del documento.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   any    `json:"value,omitempty"`
}

// ValidationError se produce cuando un documento no cumple su esquema al persistirse.
type ValidationError struct {
	Model      string
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Field+": "+v.Message)
	}
	return fmt.Sprintf("%s validation failed: %s", e.Model, strings.Join(parts, ", "))
}

// CastError indica que un valor no puede convertirse al tipo esperado (p. ej. un id mal formado).
type CastError struct {
	Field string
	Value any
	Kind  string
}

func (e *CastError) Error() string {
	return fmt.Sprintf("cast to %s failed for value %v at path %s", e.Kind, e.Value, e.Field)
}

// DuplicateKeyError viola un índice único del almacén de documentos.
type DuplicateKeyError struct {
	Code       int
	KeyPattern map[string]any
	KeyValue   map[string]any
}

// Field devuelve el primer campo en conflicto y su valor.
func (e *DuplicateKeyError) Field() (string, any) {
	for k, v := range e.KeyValue {
		return k, v
	}
	for k := range e.KeyPattern {
		return k, nil
	}
	return "", nil
}

func (e *DuplicateKeyError) Error() string {
	field, value := e.Field()
	if field == "" {
		return "duplicate key"
	}
	return fmt.Sprintf("%s '%v' already exists", field, value)
}
