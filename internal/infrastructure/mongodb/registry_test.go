package mongodb

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type priced struct {
	Price decimal.Decimal `bson:"price"`
}

func TestDecimalCodec_Decimal128(t *testing.T) {
	doc, err := toDocument(priced{Price: decimal.RequireFromString("19.99")})
	require.NoError(t, err)
	_, ok := doc["price"].(bson.Decimal128)
	assert.True(t, ok, "se guarda como Decimal128, recibido %T", doc["price"])

	raw, err := bson.Marshal(doc)
	require.NoError(t, err)
	var out priced
	require.NoError(t, fromRaw(raw, &out))
	assert.True(t, decimal.RequireFromString("19.99").Equal(out.Price))
}

func TestDecimalCodec_AceptaNumerosYTexto(t *testing.T) {
	cases := map[string]bson.M{
		"double": {"price": 2.5},
		"int32":  {"price": int32(7)},
		"int64":  {"price": int64(9)},
		"string": {"price": "1.25"},
	}
	want := map[string]string{"double": "2.5", "int32": "7", "int64": "9", "string": "1.25"}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			raw, err := bson.Marshal(doc)
			require.NoError(t, err)
			var out priced
			require.NoError(t, fromRaw(raw, &out))
			assert.True(t, decimal.RequireFromString(want[name]).Equal(out.Price), "recibido %s", out.Price)
		})
	}
}

func TestCanonical(t *testing.T) {
	v, err := NormalizeValue(map[string]any{
		"n":    3,
		"tags": []string{"a"},
		"sub":  bson.D{{Key: "x", Value: int32(1)}},
	})
	require.NoError(t, err)
	m := v.(map[string]any)
	assert.Equal(t, int64(3), m["n"])
	assert.Equal(t, []any{"a"}, m["tags"])
	assert.Equal(t, map[string]any{"x": int64(1)}, m["sub"])
}
