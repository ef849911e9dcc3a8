package usecase

import (
	"context"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/domain"
)

func newMenu(r repos) (*IngredientUseCase, *DishUseCase, *CardUseCase) {
	dishes := NewDishUseCase(r.dishes, r.ingredients)
	return NewIngredientUseCase(r.ingredients), dishes, NewCardUseCase(r.cards, dishes)
}

func createDish(t *testing.T, uc *DishUseCase, name, price string, ingredients ...dto.DishIngredientInput) *dto.DishResponse {
	t.Helper()
	d, err := uc.Create(context.Background(), dto.CreateDishRequest{
		Name: name, Category: "main", Price: decimal.RequireFromString(price), Ingredients: ingredients,
	})
	require.NoError(t, err)
	return d
}

func TestIngredient_CrearYActualizarStock(t *testing.T) {
	ctx := context.Background()
	ingredients, _, _ := newMenu(newRepos())

	_, err := ingredients.Create(ctx, dto.CreateIngredientRequest{Name: "Sal", Unit: "g", Stock: decimal.NewFromInt(-1)})
	requireStatus(t, err, http.StatusBadRequest)

	created, err := ingredients.Create(ctx, dto.CreateIngredientRequest{Name: " Arroz ", Unit: "kg", Stock: decimal.RequireFromString("12.5")})
	require.NoError(t, err)
	assert.Equal(t, "Arroz", created.Name)

	updated, err := ingredients.UpdateStock(ctx, created.ID, dto.UpdateStockRequest{Stock: decimal.RequireFromString("3.25")})
	require.NoError(t, err)
	assert.True(t, updated.Stock.Equal(decimal.RequireFromString("3.25")), updated.Stock.String())

	_, err = ingredients.Create(ctx, dto.CreateIngredientRequest{Name: "Arroz", Unit: "kg"})
	var dup *domain.DuplicateKeyError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "name 'Arroz' already exists", dup.Error())

	require.NoError(t, ingredients.Delete(ctx, created.ID))
	requireStatus(t, ingredients.Delete(ctx, created.ID), http.StatusNotFound)
}

func TestDish_CreateValidaIngredientes(t *testing.T) {
	ctx := context.Background()
	_, dishes, _ := newMenu(newRepos())

	_, err := dishes.Create(ctx, dto.CreateDishRequest{
		Name: "Bandeja", Category: "main", Price: decimal.NewFromInt(30000),
		Ingredients: []dto.DishIngredientInput{{IngredientID: "65f1a2b3c4d5e6f708192a3b", Quantity: decimal.NewFromInt(1)}},
	})
	requireStatus(t, err, http.StatusBadRequest)

	_, err = dishes.Create(ctx, dto.CreateDishRequest{Name: "Bandeja", Category: "main", Price: decimal.NewFromInt(-5)})
	requireStatus(t, err, http.StatusBadRequest)

	_, err = dishes.Create(ctx, dto.CreateDishRequest{
		Name: "Bandeja", Category: "main", Price: decimal.NewFromInt(30000),
		Ingredients: []dto.DishIngredientInput{{IngredientID: "x", Quantity: decimal.NewFromInt(1)}},
	})
	var cast *domain.CastError
	require.ErrorAs(t, err, &cast)
	assert.Equal(t, "ingredients.0.ingredientId", cast.Field)
}

func TestDish_GetPoblaIngredientes(t *testing.T) {
	ctx := context.Background()
	ingredients, dishes, _ := newMenu(newRepos())
	rice, err := ingredients.Create(ctx, dto.CreateIngredientRequest{Name: "Arroz", Unit: "kg", Stock: decimal.NewFromInt(10)})
	require.NoError(t, err)
	beans, err := ingredients.Create(ctx, dto.CreateIngredientRequest{Name: "Fríjol", Unit: "kg", Stock: decimal.NewFromInt(5)})
	require.NoError(t, err)

	dish := createDish(t, dishes, "Bandeja", "32000.50",
		dto.DishIngredientInput{IngredientID: rice.ID, Quantity: decimal.RequireFromString("0.2")},
		dto.DishIngredientInput{IngredientID: beans.ID, Quantity: decimal.RequireFromString("0.15")},
	)
	assert.True(t, dish.Available)

	got, err := dishes.Get(ctx, dish.ID)
	require.NoError(t, err)
	require.Len(t, got.Ingredients, 2)
	require.NotNil(t, got.Ingredients[0].Ingredient)
	assert.Equal(t, "Arroz", got.Ingredients[0].Ingredient.Name)
	assert.Equal(t, "Fríjol", got.Ingredients[1].Ingredient.Name)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("32000.50")))

	// Un ingrediente eliminado deja la referencia sin poblar.
	require.NoError(t, ingredients.Delete(ctx, beans.ID))
	got, err = dishes.Get(ctx, dish.ID)
	require.NoError(t, err)
	require.Len(t, got.Ingredients, 2)
	assert.Nil(t, got.Ingredients[1].Ingredient)
}

func TestDish_DisponibilidadYListado(t *testing.T) {
	ctx := context.Background()
	_, dishes, _ := newMenu(newRepos())
	a := createDish(t, dishes, "Ajiaco", "25000")
	createDish(t, dishes, "Sancocho", "27000")

	_, err := dishes.SetAvailability(ctx, a.ID, false)
	require.NoError(t, err)

	available := true
	list := dishes.List(ctx, &available, dto.PageRequest{})
	require.Len(t, list, 1)
	assert.Equal(t, "Sancocho", list[0].Name)
	assert.Len(t, dishes.List(ctx, nil, dto.PageRequest{}), 2)
}

func TestCard_AgregarYRetirarPlatos(t *testing.T) {
	ctx := context.Background()
	_, dishes, cards := newMenu(newRepos())
	a := createDish(t, dishes, "Ajiaco", "25000")
	b := createDish(t, dishes, "Sancocho", "27000")

	card, err := cards.Create(ctx, dto.CreateCardRequest{Name: "Almuerzo", Active: true})
	require.NoError(t, err)
	assert.Empty(t, card.DishIDs)

	_, err = cards.AddDish(ctx, card.ID, b.ID)
	require.NoError(t, err)
	updated, err := cards.AddDish(ctx, card.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{b.ID, a.ID}, updated.DishIDs)

	_, err = cards.AddDish(ctx, card.ID, a.ID)
	requireStatus(t, err, http.StatusConflict)

	_, err = cards.AddDish(ctx, card.ID, "65f1a2b3c4d5e6f708192a3b")
	requireStatus(t, err, http.StatusNotFound)

	got, err := cards.Get(ctx, card.ID)
	require.NoError(t, err)
	require.Len(t, got.Dishes, 2)
	assert.Equal(t, "Sancocho", got.Dishes[0].Name)
	assert.Equal(t, "Ajiaco", got.Dishes[1].Name)

	updated, err = cards.RemoveDish(ctx, card.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID}, updated.DishIDs)

	_, err = cards.RemoveDish(ctx, card.ID, b.ID)
	requireStatus(t, err, http.StatusNotFound)
}

func TestCard_GetOmitePlatosEliminados(t *testing.T) {
	ctx := context.Background()
	_, dishes, cards := newMenu(newRepos())
	a := createDish(t, dishes, "Ajiaco", "25000")
	b := createDish(t, dishes, "Sancocho", "27000")

	card, err := cards.Create(ctx, dto.CreateCardRequest{Name: "Cena", Dishes: []string{a.ID, b.ID}})
	require.NoError(t, err)
	require.NoError(t, dishes.Delete(ctx, a.ID))

	got, err := cards.Get(ctx, card.ID)
	require.NoError(t, err)
	require.Len(t, got.Dishes, 1)
	assert.Equal(t, b.ID, got.Dishes[0].ID)
	assert.Equal(t, []string{a.ID, b.ID}, got.DishIDs)

	active := cards.List(ctx, true)
	assert.Empty(t, active)
	assert.Len(t, cards.List(ctx, false), 1)
}
