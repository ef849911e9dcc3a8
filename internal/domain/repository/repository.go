package repository

import (
	"context"
	"encoding/hex"

	"github.com/jhoicas/Restaurante-api/internal/domain"
)

// Condition filtro sin tipo (igualdad por campo u operadores del almacén, p. ej. "$in").
type Condition map[string]any

// Fields campos a modificar, a agregar o a retirar de un arreglo.
type Fields map[string]any

// FindOptions opciones de lectura.
type FindOptions struct {
	// Select incluye campos ocultos por defecto (p. ej. externalId de usuarios).
	Select []string
	Limit  int64
	Offset int64
}

// Repository define el puerto genérico de persistencia sobre una colección de documentos (DIP).
//
// Las lecturas y escrituras "By" nunca devuelven error: los fallos del almacén se registran y
// se colapsan a nil, slice vacío o false. Quien llama no puede distinguir "no existe" de
// "falló la infraestructura"; para eso está FindOne.
type Repository[T any] interface {
	// Insert valida y persiste el documento; devuelve la representación guardada (con _id).
	Insert(ctx context.Context, payload *T) (*T, error)
	// FindOne variante estricta: domain.ErrNotFound si no hay coincidencia, o el error del almacén.
	FindOne(ctx context.Context, cond Condition, opts ...FindOptions) (*T, error)
	FindOneBy(ctx context.Context, cond Condition, opts ...FindOptions) *T
	FindOneByID(ctx context.Context, id string, opts ...FindOptions) *T
	FindManyBy(ctx context.Context, cond Condition, opts ...FindOptions) []*T
	FindAll(ctx context.Context, opts ...FindOptions) []*T
	// UpdateOneBy aplica $set sobre el primer documento que coincide e incrementa la revisión.
	UpdateOneBy(ctx context.Context, cond Condition, fields Fields) bool
	DeleteOneBy(ctx context.Context, cond Condition) bool
	PushArray(ctx context.Context, cond Condition, fields Fields) bool
	PullArray(ctx context.Context, cond Condition, fields Fields) bool
}

// CheckID valida el formato de un identificador (ObjectID hexadecimal de 24 caracteres).
func CheckID(field, id string) error {
	if len(id) != 24 {
		return &domain.CastError{Field: field, Value: id, Kind: "ObjectId"}
	}
	if _, err := hex.DecodeString(id); err != nil {
		return &domain.CastError{Field: field, Value: id, Kind: "ObjectId"}
	}
	return nil
}
