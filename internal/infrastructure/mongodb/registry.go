package mongodb

import (
	"bytes"
	"fmt"
	"reflect"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/v2/bson"
)

var tDecimal = reflect.TypeOf(decimal.Decimal{})

// NewRegistry registro BSON con codec para decimal.Decimal (se guarda como Decimal128).
func NewRegistry() *bson.Registry {
	reg := bson.NewRegistry()
	reg.RegisterTypeEncoder(tDecimal, bson.ValueEncoderFunc(encodeDecimal))
	reg.RegisterTypeDecoder(tDecimal, bson.ValueDecoderFunc(decodeDecimal))
	return reg
}

var registry = NewRegistry()

func encodeDecimal(_ bson.EncodeContext, vw bson.ValueWriter, val reflect.Value) error {
	if !val.IsValid() || val.Type() != tDecimal {
		return fmt.Errorf("decimal codec: tipo inesperado %v", val.Type())
	}
	d := val.Interface().(decimal.Decimal)
	d128, err := bson.ParseDecimal128(d.String())
	if err != nil {
		return fmt.Errorf("decimal codec: %w", err)
	}
	return vw.WriteDecimal128(d128)
}

func decodeDecimal(_ bson.DecodeContext, vr bson.ValueReader, val reflect.Value) error {
	if !val.CanSet() || val.Type() != tDecimal {
		return fmt.Errorf("decimal codec: no se puede asignar %v", val.Type())
	}
	var (
		d   decimal.Decimal
		err error
	)
	switch vr.Type() {
	case bson.TypeDecimal128:
		var d128 bson.Decimal128
		if d128, err = vr.ReadDecimal128(); err != nil {
			return err
		}
		d, err = decimal.NewFromString(d128.String())
	case bson.TypeString:
		var s string
		if s, err = vr.ReadString(); err != nil {
			return err
		}
		d, err = decimal.NewFromString(s)
	case bson.TypeDouble:
		var f float64
		if f, err = vr.ReadDouble(); err != nil {
			return err
		}
		d = decimal.NewFromFloat(f)
	case bson.TypeInt32:
		var i int32
		if i, err = vr.ReadInt32(); err != nil {
			return err
		}
		d = decimal.NewFromInt32(i)
	case bson.TypeInt64:
		var i int64
		if i, err = vr.ReadInt64(); err != nil {
			return err
		}
		d = decimal.NewFromInt(i)
	case bson.TypeNull:
		err = vr.ReadNull()
		d = decimal.Zero
	default:
		return fmt.Errorf("decimal codec: tipo BSON %v no soportado", vr.Type())
	}
	if err != nil {
		return err
	}
	val.Set(reflect.ValueOf(d))
	return nil
}

// toDocument convierte un valor tipado a bson.M usando el registro propio.
// Los slices nil se guardan como arreglos vacíos para que $push funcione sobre ellos.
func toDocument(v any) (bson.M, error) {
	buf := new(bytes.Buffer)
	enc := bson.NewEncoder(bson.NewDocumentWriter(buf))
	enc.SetRegistry(registry)
	enc.NilSliceAsEmpty()
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	var doc bson.M
	if err := bson.Unmarshal(buf.Bytes(), &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// fromRaw decodifica un documento crudo en out usando el registro propio.
func fromRaw(raw bson.Raw, out any) error {
	dec := bson.NewDecoder(bson.NewDocumentReader(bytes.NewReader(raw)))
	dec.SetRegistry(registry)
	dec.ObjectIDAsHexString()
	return dec.Decode(out)
}

// NormalizeValue convierte un valor Go a su forma BSON canónica (enteros a int64,
// documentos a map, arreglos a []any). Lo usan los filtros en memoria.
func NormalizeValue(v any) (any, error) {
	doc, err := toDocument(bson.M{"v": v})
	if err != nil {
		return nil, err
	}
	return Canonical(doc["v"]), nil
}

// Canonical normaliza un valor ya decodificado de BSON.
func Canonical(v any) any {
	switch x := v.(type) {
	case bson.D:
		m := make(map[string]any, len(x))
		for _, e := range x {
			m[e.Key] = Canonical(e.Value)
		}
		return m
	case bson.M:
		m := make(map[string]any, len(x))
		for k, e := range x {
			m[k] = Canonical(e)
		}
		return m
	case map[string]any:
		m := make(map[string]any, len(x))
		for k, e := range x {
			m[k] = Canonical(e)
		}
		return m
	case bson.A:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = Canonical(e)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = Canonical(e)
		}
		return out
	case int32:
		return int64(x)
	case int:
		return int64(x)
	default:
		return v
	}
}
