package mongodb

import (
	"context"
	"errors"
	"regexp"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/jhoicas/Restaurante-api/internal/domain"
)

// QueryOptions proyección y paginación de una lectura.
type QueryOptions struct {
	Projection bson.M
	Limit      int64
	Skip       int64
}

// Collection adaptador mínimo sobre una colección de documentos.
// Las implementaciones traducen sus propios errores: domain.ErrNotFound cuando no hay
// documento y *domain.DuplicateKeyError para violaciones de índice único.
type Collection interface {
	Name() string
	InsertOne(ctx context.Context, doc bson.M) error
	FindOne(ctx context.Context, filter bson.M, opts QueryOptions) (bson.Raw, error)
	Find(ctx context.Context, filter bson.M, opts QueryOptions) ([]bson.Raw, error)
	// UpdateOne devuelve la cantidad de documentos modificados.
	UpdateOne(ctx context.Context, filter, update bson.M) (int64, error)
	// DeleteOne devuelve la cantidad de documentos eliminados.
	DeleteOne(ctx context.Context, filter bson.M) (int64, error)
}

var _ Collection = (*MongoCollection)(nil)

// MongoCollection implementación de Collection sobre el driver oficial.
type MongoCollection struct {
	coll *mongo.Collection
}

// NewCollection construye el adaptador para una colección de la base.
func NewCollection(db *mongo.Database, name string) *MongoCollection {
	return &MongoCollection{coll: db.Collection(name)}
}

// Name nombre de la colección.
func (c *MongoCollection) Name() string { return c.coll.Name() }

// InsertOne inserta un documento.
func (c *MongoCollection) InsertOne(ctx context.Context, doc bson.M) error {
	_, err := c.coll.InsertOne(ctx, doc)
	return translateWriteError(err)
}

// FindOne primer documento que coincide con el filtro.
func (c *MongoCollection) FindOne(ctx context.Context, filter bson.M, opts QueryOptions) (bson.Raw, error) {
	fo := options.FindOne()
	if len(opts.Projection) > 0 {
		fo.SetProjection(opts.Projection)
	}
	if opts.Skip > 0 {
		fo.SetSkip(opts.Skip)
	}
	raw, err := c.coll.FindOne(ctx, filter, fo).Raw()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return raw, nil
}

// Find documentos que coinciden con el filtro.
func (c *MongoCollection) Find(ctx context.Context, filter bson.M, opts QueryOptions) ([]bson.Raw, error) {
	fo := options.Find()
	if len(opts.Projection) > 0 {
		fo.SetProjection(opts.Projection)
	}
	if opts.Limit > 0 {
		fo.SetLimit(opts.Limit)
	}
	if opts.Skip > 0 {
		fo.SetSkip(opts.Skip)
	}
	cur, err := c.coll.Find(ctx, filter, fo)
	if err != nil {
		return nil, err
	}
	defer func() { _ = cur.Close(ctx) }()

	docs := make([]bson.Raw, 0)
	for cur.Next(ctx) {
		// cur.Current se reutiliza en cada iteración.
		docs = append(docs, append(bson.Raw(nil), cur.Current...))
	}
	return docs, cur.Err()
}

// UpdateOne actualiza el primer documento que coincide.
func (c *MongoCollection) UpdateOne(ctx context.Context, filter, update bson.M) (int64, error) {
	res, err := c.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return 0, translateWriteError(err)
	}
	return res.ModifiedCount, nil
}

// DeleteOne elimina el primer documento que coincide.
func (c *MongoCollection) DeleteOne(ctx context.Context, filter bson.M) (int64, error) {
	res, err := c.coll.DeleteOne(ctx, filter)
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

const duplicateKeyCode = 11000

// dupKeyRe extrae "{ campo: valor }" del mensaje E11000 cuando el error no trae keyValue.
var dupKeyRe = regexp.MustCompile(`dup key: \{ ?([^:]+): "?([^"}]*)"? ?\}`)

// translateWriteError convierte violaciones de índice único en *domain.DuplicateKeyError.
func translateWriteError(err error) error {
	if err == nil || !mongo.IsDuplicateKeyError(err) {
		return err
	}
	dup := &domain.DuplicateKeyError{Code: duplicateKeyCode}
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code != duplicateKeyCode {
				continue
			}
			dup.KeyPattern = rawMap(e.Raw, "keyPattern")
			dup.KeyValue = rawMap(e.Raw, "keyValue")
			if len(dup.KeyValue) == 0 {
				if m := dupKeyRe.FindStringSubmatch(e.Message); m != nil {
					dup.KeyValue = map[string]any{m[1]: m[2]}
				}
			}
			break
		}
	}
	return dup
}

func rawMap(raw bson.Raw, key string) map[string]any {
	if len(raw) == 0 {
		return nil
	}
	val, err := raw.LookupErr(key)
	if err != nil {
		return nil
	}
	doc, ok := val.DocumentOK()
	if !ok {
		return nil
	}
	var m map[string]any
	if err := bson.Unmarshal(doc, &m); err != nil {
		return nil
	}
	return m
}
