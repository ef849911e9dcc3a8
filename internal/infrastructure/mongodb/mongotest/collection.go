// Package mongotest provee una mongodb.Collection en memoria para pruebas.
package mongotest

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/infrastructure/mongodb"
)

var _ mongodb.Collection = (*Collection)(nil)

// Option configura la colección en memoria.
type Option func(*Collection)

// WithUnique declara índices únicos de un solo campo.
func WithUnique(fields ...string) Option {
	return func(c *Collection) { c.unique = append(c.unique, fields...) }
}

// Collection almacén en memoria con el subconjunto de operadores que usa la aplicación:
// igualdad (también pertenencia a arreglos), $in, $nin, $ne en filtros; $set, $inc, $push y
// $pull en actualizaciones; proyecciones de inclusión o exclusión.
type Collection struct {
	mu     sync.Mutex
	name   string
	docs   []map[string]any
	unique []string
	err    error
}

// New crea una colección vacía.
func New(name string, opts ...Option) *Collection {
	c := &Collection{name: name}
	for _, o := range opts {
		o(c)
	}
	return c
}

// FailWith hace que todas las operaciones siguientes devuelvan err (nil restablece).
func (c *Collection) FailWith(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = err
}

// Len cantidad de documentos guardados.
func (c *Collection) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.docs)
}

// Doc copia del documento con el _id dado, o nil.
func (c *Collection) Doc(id string) map[string]any {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, d := range c.docs {
		if d["_id"] == id {
			return clone(d)
		}
	}
	return nil
}

func (c *Collection) Name() string { return c.name }

func (c *Collection) InsertOne(_ context.Context, doc bson.M) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	d, err := normalizeDoc(doc)
	if err != nil {
		return err
	}
	if err := c.checkUnique(d, -1); err != nil {
		return err
	}
	c.docs = append(c.docs, d)
	return nil
}

func (c *Collection) FindOne(_ context.Context, filter bson.M, opts mongodb.QueryOptions) (bson.Raw, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return nil, c.err
	}
	f, err := normalizeDoc(filter)
	if err != nil {
		return nil, err
	}
	skip := opts.Skip
	for _, d := range c.docs {
		if !matches(d, f) {
			continue
		}
		if skip > 0 {
			skip--
			continue
		}
		return bson.Marshal(project(d, opts.Projection))
	}
	return nil, domain.ErrNotFound
}

func (c *Collection) Find(_ context.Context, filter bson.M, opts mongodb.QueryOptions) ([]bson.Raw, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return nil, c.err
	}
	f, err := normalizeDoc(filter)
	if err != nil {
		return nil, err
	}
	out := make([]bson.Raw, 0)
	skip := opts.Skip
	for _, d := range c.docs {
		if !matches(d, f) {
			continue
		}
		if skip > 0 {
			skip--
			continue
		}
		raw, err := bson.Marshal(project(d, opts.Projection))
		if err != nil {
			return nil, err
		}
		out = append(out, raw)
		if opts.Limit > 0 && int64(len(out)) >= opts.Limit {
			break
		}
	}
	return out, nil
}

func (c *Collection) UpdateOne(_ context.Context, filter, update bson.M) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return 0, c.err
	}
	f, err := normalizeDoc(filter)
	if err != nil {
		return 0, err
	}
	u, err := normalizeDoc(update)
	if err != nil {
		return 0, err
	}
	for i, d := range c.docs {
		if !matches(d, f) {
			continue
		}
		next := clone(d)
		if err := applyUpdate(next, u); err != nil {
			return 0, err
		}
		if reflect.DeepEqual(next, d) {
			return 0, nil
		}
		if err := c.checkUnique(next, i); err != nil {
			return 0, err
		}
		c.docs[i] = next
		return 1, nil
	}
	return 0, nil
}

func (c *Collection) DeleteOne(_ context.Context, filter bson.M) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return 0, c.err
	}
	f, err := normalizeDoc(filter)
	if err != nil {
		return 0, err
	}
	for i, d := range c.docs {
		if matches(d, f) {
			c.docs = append(c.docs[:i], c.docs[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (c *Collection) checkUnique(doc map[string]any, skip int) error {
	fields := append([]string{"_id"}, c.unique...)
	for _, field := range fields {
		val, ok := lookup(doc, field)
		if !ok {
			continue
		}
		for i, other := range c.docs {
			if i == skip {
				continue
			}
			if ov, ok := lookup(other, field); ok && reflect.DeepEqual(ov, val) {
				return &domain.DuplicateKeyError{
					Code:       11000,
					KeyPattern: map[string]any{field: int64(1)},
					KeyValue:   map[string]any{field: val},
				}
			}
		}
	}
	return nil
}

func normalizeDoc(doc bson.M) (map[string]any, error) {
	if doc == nil {
		return map[string]any{}, nil
	}
	v, err := mongodb.NormalizeValue(doc)
	if err != nil {
		return nil, err
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("mongotest: documento inesperado %T", v)
	}
	return m, nil
}

func clone(d map[string]any) map[string]any {
	return mongodb.Canonical(d).(map[string]any)
}

func lookup(doc map[string]any, path string) (any, bool) {
	var cur any = doc
	for _, part := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		if cur, ok = m[part]; !ok {
			return nil, false
		}
	}
	return cur, true
}

func matches(doc, filter map[string]any) bool {
	for key, cond := range filter {
		val, present := lookup(doc, key)
		if ops, ok := operators(cond); ok {
			for op, arg := range ops {
				if !matchOperator(op, val, present, arg) {
					return false
				}
			}
			continue
		}
		if !equalValue(val, present, cond) {
			return false
		}
	}
	return true
}

func operators(cond any) (map[string]any, bool) {
	m, ok := cond.(map[string]any)
	if !ok || len(m) == 0 {
		return nil, false
	}
	for k := range m {
		if !strings.HasPrefix(k, "$") {
			return nil, false
		}
	}
	return m, true
}

func matchOperator(op string, val any, present bool, arg any) bool {
	switch op {
	case "$ne":
		return !equalValue(val, present, arg)
	case "$in", "$nin":
		list, _ := arg.([]any)
		found := false
		for _, want := range list {
			if equalValue(val, present, want) {
				found = true
				break
			}
		}
		return found == (op == "$in")
	case "$exists":
		want, _ := arg.(bool)
		return present == want
	default:
		return false
	}
}

// equalValue igualdad al estilo Mongo: un arreglo coincide si alguno de sus elementos es igual.
func equalValue(val any, present bool, want any) bool {
	if !present {
		return want == nil
	}
	if reflect.DeepEqual(val, want) {
		return true
	}
	if arr, ok := val.([]any); ok {
		for _, e := range arr {
			if reflect.DeepEqual(e, want) {
				return true
			}
		}
	}
	return false
}

func applyUpdate(doc, update map[string]any) error {
	for op, arg := range update {
		fields, ok := arg.(map[string]any)
		if !ok {
			return fmt.Errorf("mongotest: argumento inválido para %s", op)
		}
		for path, v := range fields {
			switch op {
			case "$set":
				setPath(doc, path, v)
			case "$inc":
				cur, _ := lookup(doc, path)
				setPath(doc, path, add(cur, v))
			case "$push":
				cur, _ := lookup(doc, path)
				arr, _ := cur.([]any)
				setPath(doc, path, append(append([]any{}, arr...), v))
			case "$pull":
				cur, _ := lookup(doc, path)
				arr, _ := cur.([]any)
				kept := make([]any, 0, len(arr))
				for _, e := range arr {
					if !reflect.DeepEqual(e, v) {
						kept = append(kept, e)
					}
				}
				setPath(doc, path, kept)
			default:
				return fmt.Errorf("mongotest: operador %s no soportado", op)
			}
		}
	}
	return nil
}

func setPath(doc map[string]any, path string, v any) {
	parts := strings.Split(path, ".")
	cur := doc
	for _, p := range parts[:len(parts)-1] {
		next, ok := cur[p].(map[string]any)
		if !ok {
			next = map[string]any{}
			cur[p] = next
		}
		cur = next
	}
	cur[parts[len(parts)-1]] = v
}

func add(cur, delta any) any {
	switch d := delta.(type) {
	case int64:
		switch c := cur.(type) {
		case int64:
			return c + d
		case float64:
			return c + float64(d)
		default:
			return d
		}
	case float64:
		switch c := cur.(type) {
		case int64:
			return float64(c) + d
		case float64:
			return c + d
		default:
			return d
		}
	default:
		return delta
	}
}

// project aplica una proyección de inclusión (1) o de exclusión (0).
func project(doc map[string]any, projection bson.M) map[string]any {
	if len(projection) == 0 {
		return doc
	}
	include := false
	for _, v := range projection {
		if isTruthy(v) {
			include = true
			break
		}
	}
	out := map[string]any{}
	if include {
		out["_id"] = doc["_id"]
		for k, v := range projection {
			if isTruthy(v) {
				if val, ok := doc[k]; ok {
					out[k] = val
				}
			}
		}
		return out
	}
	for k, v := range doc {
		if _, hidden := projection[k]; !hidden {
			out[k] = v
		}
	}
	return out
}

func isTruthy(v any) bool {
	switch x := v.(type) {
	case int:
		return x != 0
	case int32:
		return x != 0
	case int64:
		return x != 0
	case bool:
		return x
	default:
		return false
	}
}
