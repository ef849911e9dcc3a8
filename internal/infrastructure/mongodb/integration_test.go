//go:build integration

package mongodb_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcmongo "github.com/testcontainers/testcontainers-go/modules/mongodb"

	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
	"github.com/jhoicas/Restaurante-api/internal/infrastructure/mongodb"
	"github.com/jhoicas/Restaurante-api/internal/observability"
	"github.com/jhoicas/Restaurante-api/pkg/config"
)

func TestMongo_RepositorioContraServidorReal(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	ctr, err := tcmongo.Run(ctx, "mongo:7")
	require.NoError(t, err)
	defer func() { _ = testcontainers.TerminateContainer(ctr) }()

	uri, err := ctr.ConnectionString(ctx)
	require.NoError(t, err)

	client, err := mongodb.NewClient(ctx, "restaurante-test", config.MongoConfig{
		URI:          uri,
		Database:     "restaurante_test",
		MaxPool:      5,
		Timeout:      10 * time.Second,
		WriteConcern: "1",
	}, observability.NewMetrics("restaurante_test"), zerolog.Nop())
	require.NoError(t, err)
	defer func() { _ = client.Disconnect(context.Background()) }()

	db := client.Database("restaurante_test")
	require.NoError(t, mongodb.EnsureIndexes(ctx, db))
	require.NoError(t, mongodb.EnsureIndexes(ctx, db), "crear índices es idempotente")

	dishes := mongodb.NewRepository[entity.Dish](mongodb.NewCollection(db, mongodb.CollDishes), "Dish")

	saved, err := dishes.Insert(ctx, &entity.Dish{Name: "Ajiaco", Category: entity.DishMain, Price: decimal.RequireFromString("28000.00")})
	require.NoError(t, err)

	got := dishes.FindOneByID(ctx, saved.ID)
	require.NotNil(t, got)
	assert.Equal(t, "Ajiaco", got.Name)
	assert.True(t, decimal.NewFromInt(28000).Equal(got.Price))

	_, err = dishes.Insert(ctx, &entity.Dish{Name: "Ajiaco", Category: entity.DishMain})
	var dup *domain.DuplicateKeyError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "name 'Ajiaco' already exists", dup.Error())

	assert.True(t, dishes.UpdateOneBy(ctx, repository.Condition{"_id": saved.ID}, repository.Fields{"available": true}))
	assert.False(t, dishes.UpdateOneBy(ctx, repository.Condition{"_id": "000000000000000000000000"}, repository.Fields{"available": true}))

	cards := mongodb.NewRepository[entity.Card](mongodb.NewCollection(db, mongodb.CollCards), "Card")
	card, err := cards.Insert(ctx, &entity.Card{Name: "Almuerzos"})
	require.NoError(t, err)
	assert.True(t, cards.PushArray(ctx, repository.Condition{"_id": card.ID}, repository.Fields{"dishes": saved.ID}))
	require.NotNil(t, cards.FindOneBy(ctx, repository.Condition{"dishes": saved.ID}))
	assert.True(t, cards.PullArray(ctx, repository.Condition{"_id": card.ID}, repository.Fields{"dishes": saved.ID}))

	assert.True(t, dishes.DeleteOneBy(ctx, repository.Condition{"_id": saved.ID}))
	assert.Nil(t, dishes.FindOneByID(ctx, saved.ID))
}
