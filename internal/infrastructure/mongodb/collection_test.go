package mongodb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/jhoicas/Restaurante-api/internal/domain"
)

func TestTranslateWriteError_ClaveDuplicada(t *testing.T) {
	raw, err := bson.Marshal(bson.D{
		{Key: "code", Value: int32(11000)},
		{Key: "keyPattern", Value: bson.D{{Key: "name", Value: int32(1)}}},
		{Key: "keyValue", Value: bson.D{{Key: "name", Value: "X"}}},
	})
	require.NoError(t, err)
	we := mongo.WriteException{WriteErrors: []mongo.WriteError{{
		Code:    11000,
		Message: `E11000 duplicate key error collection: restaurante.dishes index: name_unique dup key: { name: "X" }`,
		Raw:     raw,
	}}}

	got := translateWriteError(we)

	var dup *domain.DuplicateKeyError
	require.ErrorAs(t, got, &dup)
	assert.Equal(t, 11000, dup.Code)
	assert.Equal(t, "name 'X' already exists", dup.Error())
}

func TestTranslateWriteError_SinKeyValueUsaMensaje(t *testing.T) {
	we := mongo.WriteException{WriteErrors: []mongo.WriteError{{
		Code:    11000,
		Message: `E11000 duplicate key error collection: restaurante.users index: email_unique dup key: { email: "ana@restaurante.co" }`,
	}}}

	var dup *domain.DuplicateKeyError
	require.ErrorAs(t, translateWriteError(we), &dup)
	assert.Equal(t, "email 'ana@restaurante.co' already exists", dup.Error())
}

func TestTranslateWriteError_OtrosErroresPasan(t *testing.T) {
	assert.NoError(t, translateWriteError(nil))
	other := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 121, Message: "Document failed validation"}}}
	assert.Equal(t, other, translateWriteError(other))
}

func TestEvalWriteConcern(t *testing.T) {
	assert.Equal(t, "majority", EvalWriteConcern("").W)
	assert.Equal(t, 1, EvalWriteConcern("1").W)
	assert.Equal(t, 3, EvalWriteConcern("3").W)
	assert.Equal(t, "majority", EvalWriteConcern("x").W)
}
