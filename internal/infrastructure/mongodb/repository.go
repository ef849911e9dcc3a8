package mongodb

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
	"github.com/jhoicas/Restaurante-api/internal/observability"
)

const (
	fieldID        = "_id"
	fieldVersion   = "__v"
	fieldCreatedAt = "createdAt"
	fieldUpdatedAt = "updatedAt"
)

// Option configura un Repository.
type Option func(*repoConfig)

type repoConfig struct {
	hidden  []string
	log     zerolog.Logger
	metrics *observability.Metrics
	now     func() time.Time
}

// WithHiddenFields campos excluidos de las lecturas salvo que FindOptions.Select los pida.
func WithHiddenFields(fields ...string) Option {
	return func(c *repoConfig) { c.hidden = append(c.hidden, fields...) }
}

// WithLogger logger donde se registran los errores colapsados.
func WithLogger(l zerolog.Logger) Option {
	return func(c *repoConfig) { c.log = l }
}

// WithMetrics contador de errores colapsados.
func WithMetrics(m *observability.Metrics) Option {
	return func(c *repoConfig) { c.metrics = m }
}

// WithClock reloj usado para createdAt/updatedAt.
func WithClock(now func() time.Time) Option {
	return func(c *repoConfig) { c.now = now }
}

// Repository implementación genérica de repository.Repository[T] sobre una Collection.
// T debe declarar _id, __v, createdAt y updatedAt en sus etiquetas bson.
type Repository[T any] struct {
	coll  Collection
	model string
	cfg   repoConfig
}

// NewRepository crea el repositorio de un modelo sobre la colección dada.
func NewRepository[T any](coll Collection, model string, opts ...Option) *Repository[T] {
	cfg := repoConfig{log: zerolog.Nop(), now: time.Now}
	for _, o := range opts {
		o(&cfg)
	}
	cfg.log = cfg.log.With().Str("collection", coll.Name()).Logger()
	return &Repository[T]{coll: coll, model: model, cfg: cfg}
}

// Insert valida y persiste el documento. Genera _id si viene vacío y fija la revisión en 0.
func (r *Repository[T]) Insert(ctx context.Context, payload *T) (*T, error) {
	if payload == nil {
		return nil, errors.Wrapf(domain.ErrInvalidInput, "%s: documento nil", r.model)
	}
	if err := validateDocument(r.model, payload); err != nil {
		return nil, err
	}
	doc, err := toDocument(payload)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: codificar documento", r.model)
	}
	if id, _ := doc[fieldID].(string); id == "" {
		doc[fieldID] = bson.NewObjectID().Hex()
	}
	now := bson.NewDateTimeFromTime(r.cfg.now().UTC())
	doc[fieldVersion] = int64(0)
	doc[fieldCreatedAt] = now
	doc[fieldUpdatedAt] = now

	if err := r.coll.InsertOne(ctx, doc); err != nil {
		var dup *domain.DuplicateKeyError
		if errors.As(err, &dup) {
			return nil, dup
		}
		r.cfg.log.Error().Err(err).Str("operation", "insert").Msg("error al insertar documento")
		return nil, errors.WithStack(err)
	}

	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return r.decode(raw)
}

// FindOne variante estricta de FindOneBy.
func (r *Repository[T]) FindOne(ctx context.Context, cond repository.Condition, opts ...repository.FindOptions) (*T, error) {
	raw, err := r.coll.FindOne(ctx, filter(cond), r.query(opts))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, errors.Wrapf(err, "%s.findOne", r.model)
	}
	return r.decode(raw)
}

// FindOneBy primer documento que coincide, o nil si no hay o si falla el almacén.
func (r *Repository[T]) FindOneBy(ctx context.Context, cond repository.Condition, opts ...repository.FindOptions) *T {
	out, err := r.FindOne(ctx, cond, opts...)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			r.swallow("findOneBy", err)
		}
		return nil
	}
	return out
}

// FindOneByID equivale a FindOneBy({_id: id}).
func (r *Repository[T]) FindOneByID(ctx context.Context, id string, opts ...repository.FindOptions) *T {
	return r.FindOneBy(ctx, repository.Condition{fieldID: id}, opts...)
}

// FindManyBy documentos que coinciden; slice vacío si no hay o si falla el almacén.
func (r *Repository[T]) FindManyBy(ctx context.Context, cond repository.Condition, opts ...repository.FindOptions) []*T {
	raws, err := r.coll.Find(ctx, filter(cond), r.query(opts))
	if err != nil {
		r.swallow("findManyBy", errors.WithStack(err))
		return []*T{}
	}
	out := make([]*T, 0, len(raws))
	for _, raw := range raws {
		item, err := r.decode(raw)
		if err != nil {
			r.swallow("findManyBy", err)
			continue
		}
		out = append(out, item)
	}
	return out
}

// FindAll todos los documentos de la colección.
func (r *Repository[T]) FindAll(ctx context.Context, opts ...repository.FindOptions) []*T {
	return r.FindManyBy(ctx, nil, opts...)
}

// UpdateOneBy aplica $set de fields (más updatedAt) e incrementa __v.
func (r *Repository[T]) UpdateOneBy(ctx context.Context, cond repository.Condition, fields repository.Fields) bool {
	if len(fields) == 0 {
		return false
	}
	set := bson.M{}
	for k, v := range fields {
		set[k] = v
	}
	set[fieldUpdatedAt] = bson.NewDateTimeFromTime(r.cfg.now().UTC())
	return r.update(ctx, "updateOneBy", cond, bson.M{
		"$set": set,
		"$inc": bson.M{fieldVersion: int64(1)},
	})
}

// DeleteOneBy elimina el primer documento que coincide.
func (r *Repository[T]) DeleteOneBy(ctx context.Context, cond repository.Condition) bool {
	n, err := r.coll.DeleteOne(ctx, filter(cond))
	if err != nil {
		r.swallow("deleteOneBy", errors.WithStack(err))
		return false
	}
	return n > 0
}

// PushArray agrega elementos a campos arreglo.
func (r *Repository[T]) PushArray(ctx context.Context, cond repository.Condition, fields repository.Fields) bool {
	return r.arrayUpdate(ctx, "pushArray", "$push", cond, fields)
}

// PullArray retira elementos de campos arreglo.
func (r *Repository[T]) PullArray(ctx context.Context, cond repository.Condition, fields repository.Fields) bool {
	return r.arrayUpdate(ctx, "pullArray", "$pull", cond, fields)
}

func (r *Repository[T]) arrayUpdate(ctx context.Context, op, operator string, cond repository.Condition, fields repository.Fields) bool {
	if len(fields) == 0 {
		return false
	}
	return r.update(ctx, op, cond, bson.M{
		operator: bson.M(fields),
		"$set":   bson.M{fieldUpdatedAt: bson.NewDateTimeFromTime(r.cfg.now().UTC())},
		"$inc":   bson.M{fieldVersion: int64(1)},
	})
}

func (r *Repository[T]) update(ctx context.Context, op string, cond repository.Condition, update bson.M) bool {
	n, err := r.coll.UpdateOne(ctx, filter(cond), update)
	if err != nil {
		r.swallow(op, errors.WithStack(err))
		return false
	}
	return n > 0
}

func (r *Repository[T]) decode(raw bson.Raw) (*T, error) {
	out := new(T)
	if err := fromRaw(raw, out); err != nil {
		return nil, errors.Wrapf(err, "%s: decodificar documento", r.model)
	}
	return out, nil
}

// query arma proyección y paginación. Los campos ocultos se excluyen salvo que Select los pida.
func (r *Repository[T]) query(opts []repository.FindOptions) QueryOptions {
	var o repository.FindOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	q := QueryOptions{Limit: o.Limit, Skip: o.Offset}
	for _, h := range r.cfg.hidden {
		if !contains(o.Select, h) {
			if q.Projection == nil {
				q.Projection = bson.M{}
			}
			q.Projection[h] = 0
		}
	}
	return q
}

// swallow registra y cuenta un error que el contrato del repositorio colapsa a nil/false/[].
func (r *Repository[T]) swallow(op string, err error) {
	r.cfg.log.Error().Stack().Err(err).Str("operation", op).Msg("error del almacén descartado")
	r.cfg.metrics.StoreError(r.coll.Name(), op)
}

func filter(cond repository.Condition) bson.M {
	f := bson.M{}
	for k, v := range cond {
		f[k] = v
	}
	return f
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
