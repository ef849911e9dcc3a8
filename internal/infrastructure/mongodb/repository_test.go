package mongodb_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
	"github.com/jhoicas/Restaurante-api/internal/infrastructure/mongodb"
	"github.com/jhoicas/Restaurante-api/internal/infrastructure/mongodb/mongotest"
)

var (
	_ repository.Repository[entity.User] = (*mongodb.Repository[entity.User])(nil)
	_ repository.Repository[entity.Card] = (*mongodb.Repository[entity.Card])(nil)
)

// ─────────────────────────────────────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────────────────────────────────────

func newUserRepo(t *testing.T) (*mongodb.Repository[entity.User], *mongotest.Collection) {
	t.Helper()
	coll := mongotest.New(mongodb.CollUsers, mongotest.WithUnique("email", "externalId"))
	repo := mongodb.NewRepository[entity.User](coll, "User", mongodb.WithHiddenFields("externalId"))
	return repo, coll
}

func sampleUser() *entity.User {
	return &entity.User{
		ExternalID: "ext-123",
		Email:      "ana@restaurante.co",
		Name:       "Ana",
		Role:       entity.RoleWaiter,
		Active:     true,
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Insert / FindOneByID
// ─────────────────────────────────────────────────────────────────────────────

func TestInsert_FindOneByID_IdaYVuelta(t *testing.T) {
	ctx := context.Background()
	repo, _ := newUserRepo(t)
	in := sampleUser()

	saved, err := repo.Insert(ctx, in)
	require.NoError(t, err)
	require.NoError(t, repository.CheckID("_id", saved.ID), "el id generado debe ser un ObjectID hexadecimal")
	assert.Equal(t, int64(0), saved.Version)
	assert.False(t, saved.CreatedAt.IsZero())

	got := repo.FindOneByID(ctx, saved.ID, repository.FindOptions{Select: []string{"externalId"}})
	require.NotNil(t, got)
	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, in.ExternalID, got.ExternalID)
	assert.Equal(t, in.Email, got.Email)
	assert.Equal(t, in.Name, got.Name)
	assert.Equal(t, in.Role, got.Role)
	assert.Equal(t, in.Active, got.Active)
}

func TestFindOneBy_OcultaCamposNoSeleccionables(t *testing.T) {
	ctx := context.Background()
	repo, _ := newUserRepo(t)
	saved, err := repo.Insert(ctx, sampleUser())
	require.NoError(t, err)

	got := repo.FindOneByID(ctx, saved.ID)
	require.NotNil(t, got)
	assert.Empty(t, got.ExternalID)

	byExternal := repo.FindOneBy(ctx, repository.Condition{"externalId": "ext-123"})
	require.NotNil(t, byExternal, "el filtro puede usar campos ocultos")
	assert.Equal(t, saved.ID, byExternal.ID)
}

func TestInsert_DecimalSeConserva(t *testing.T) {
	ctx := context.Background()
	coll := mongotest.New(mongodb.CollDishes)
	repo := mongodb.NewRepository[entity.Dish](coll, "Dish")

	saved, err := repo.Insert(ctx, &entity.Dish{
		Name:     "Bandeja paisa",
		Category: entity.DishMain,
		Price:    decimal.RequireFromString("32500.50"),
		Ingredients: []entity.DishIngredient{
			{IngredientID: "65f1a2b3c4d5e6f708192a3b", Quantity: decimal.RequireFromString("0.25")},
		},
	})
	require.NoError(t, err)

	got := repo.FindOneByID(ctx, saved.ID)
	require.NotNil(t, got)
	assert.True(t, decimal.RequireFromString("32500.5").Equal(got.Price), "precio: %s", got.Price)
	require.Len(t, got.Ingredients, 1)
	assert.True(t, decimal.RequireFromString("0.25").Equal(got.Ingredients[0].Quantity))
}

func TestInsert_ErrorDeValidacion(t *testing.T) {
	repo, coll := newUserRepo(t)

	_, err := repo.Insert(context.Background(), &entity.User{ExternalID: "x", Name: "Sin correo", Role: "chef"})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "User", verr.Model)
	fields := map[string]string{}
	for _, v := range verr.Violations {
		fields[v.Field] = v.Message
	}
	assert.Equal(t, "is required", fields["email"])
	assert.Contains(t, fields["role"], "must be one of")
	assert.Zero(t, coll.Len(), "no se persiste un documento inválido")
}

func TestInsert_ClaveDuplicada(t *testing.T) {
	ctx := context.Background()
	repo, _ := newUserRepo(t)
	_, err := repo.Insert(ctx, sampleUser())
	require.NoError(t, err)

	other := sampleUser()
	other.ExternalID = "ext-456"
	_, err = repo.Insert(ctx, other)

	var dup *domain.DuplicateKeyError
	require.ErrorAs(t, err, &dup)
	field, value := dup.Field()
	assert.Equal(t, "email", field)
	assert.Equal(t, "ana@restaurante.co", value)
	assert.Equal(t, "email 'ana@restaurante.co' already exists", dup.Error())
}

// ─────────────────────────────────────────────────────────────────────────────
// Lecturas múltiples
// ─────────────────────────────────────────────────────────────────────────────

func TestFindManyBy_InYPaginacion(t *testing.T) {
	ctx := context.Background()
	coll := mongotest.New(mongodb.CollIngredients, mongotest.WithUnique("name"))
	repo := mongodb.NewRepository[entity.Ingredient](coll, "Ingredient")

	ids := make([]string, 0, 3)
	for _, name := range []string{"arroz", "frijol", "plátano"} {
		saved, err := repo.Insert(ctx, &entity.Ingredient{Name: name, Unit: "kg", Stock: decimal.NewFromInt(10)})
		require.NoError(t, err)
		ids = append(ids, saved.ID)
	}

	found := repo.FindManyBy(ctx, repository.Condition{"_id": map[string]any{"$in": ids[:2]}})
	assert.Len(t, found, 2)

	page := repo.FindAll(ctx, repository.FindOptions{Limit: 2, Offset: 1})
	require.Len(t, page, 2)
	assert.Equal(t, "frijol", page[0].Name)
	assert.Equal(t, "plátano", page[1].Name)

	none := repo.FindManyBy(ctx, repository.Condition{"name": "yuca"})
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

// ─────────────────────────────────────────────────────────────────────────────
// Escrituras booleanas
// ─────────────────────────────────────────────────────────────────────────────

func TestUpdateOneBy(t *testing.T) {
	ctx := context.Background()
	repo, _ := newUserRepo(t)
	saved, err := repo.Insert(ctx, sampleUser())
	require.NoError(t, err)

	assert.False(t, repo.UpdateOneBy(ctx, repository.Condition{"_id": "000000000000000000000000"}, repository.Fields{"role": entity.RoleManager}))
	assert.False(t, repo.UpdateOneBy(ctx, repository.Condition{"_id": saved.ID}, nil))

	assert.True(t, repo.UpdateOneBy(ctx, repository.Condition{"_id": saved.ID}, repository.Fields{"role": entity.RoleManager}))
	got := repo.FindOneByID(ctx, saved.ID)
	require.NotNil(t, got)
	assert.Equal(t, entity.RoleManager, got.Role)
	assert.Equal(t, int64(1), got.Version)
}

func TestUpdateOneBy_CondicionCompuesta(t *testing.T) {
	ctx := context.Background()
	coll := mongotest.New(mongodb.CollOrders)
	repo := mongodb.NewRepository[entity.Order](coll, "Order")
	saved, err := repo.Insert(ctx, &entity.Order{
		TableNumber: 4,
		Items:       []entity.OrderItem{{DishID: "65f1a2b3c4d5e6f708192a3b", Quantity: 1, UnitPrice: decimal.NewFromInt(1000)}},
		Status:      entity.OrderPending,
		CreatedBy:   "65f1a2b3c4d5e6f708192a3c",
	})
	require.NoError(t, err)

	cond := repository.Condition{"_id": saved.ID, "status": entity.OrderPending}
	assert.True(t, repo.UpdateOneBy(ctx, cond, repository.Fields{"status": entity.OrderTaken}))
	assert.False(t, repo.UpdateOneBy(ctx, cond, repository.Fields{"status": entity.OrderTaken}), "la segunda transición desde pending no aplica")
}

func TestDeleteOneBy(t *testing.T) {
	ctx := context.Background()
	repo, coll := newUserRepo(t)
	saved, err := repo.Insert(ctx, sampleUser())
	require.NoError(t, err)

	assert.False(t, repo.DeleteOneBy(ctx, repository.Condition{"email": "nadie@restaurante.co"}))
	assert.True(t, repo.DeleteOneBy(ctx, repository.Condition{"_id": saved.ID}))
	assert.Nil(t, repo.FindOneByID(ctx, saved.ID))
	assert.Zero(t, coll.Len())
}

func TestPushPullArray(t *testing.T) {
	ctx := context.Background()
	coll := mongotest.New(mongodb.CollCards, mongotest.WithUnique("name"))
	repo := mongodb.NewRepository[entity.Card](coll, "Card")
	card, err := repo.Insert(ctx, &entity.Card{Name: "Almuerzos"})
	require.NoError(t, err)
	assert.NotNil(t, card.Dishes, "los arreglos nil se guardan vacíos")

	byID := repository.Condition{"_id": card.ID}
	dish := "65f1a2b3c4d5e6f708192a3b"
	require.True(t, repo.PushArray(ctx, byID, repository.Fields{"dishes": dish}))

	withDish := repo.FindOneBy(ctx, repository.Condition{"dishes": dish})
	require.NotNil(t, withDish)
	assert.True(t, withDish.HasDish(dish))

	require.True(t, repo.PullArray(ctx, byID, repository.Fields{"dishes": dish}))
	got := repo.FindOneByID(ctx, card.ID)
	require.NotNil(t, got)
	assert.False(t, got.HasDish(dish))
	assert.Equal(t, int64(2), got.Version)

	assert.False(t, repo.PushArray(ctx, repository.Condition{"_id": "000000000000000000000000"}, repository.Fields{"dishes": dish}))
}

// ─────────────────────────────────────────────────────────────────────────────
// Errores del almacén colapsados
// ─────────────────────────────────────────────────────────────────────────────

func TestFallaDelAlmacen_SeColapsa(t *testing.T) {
	ctx := context.Background()
	repo, coll := newUserRepo(t)
	saved, err := repo.Insert(ctx, sampleUser())
	require.NoError(t, err)

	down := errors.New("server selection timeout")
	coll.FailWith(down)

	assert.Nil(t, repo.FindOneByID(ctx, saved.ID))
	many := repo.FindManyBy(ctx, repository.Condition{})
	assert.NotNil(t, many)
	assert.Empty(t, many)
	assert.False(t, repo.UpdateOneBy(ctx, repository.Condition{"_id": saved.ID}, repository.Fields{"name": "Otra"}))
	assert.False(t, repo.DeleteOneBy(ctx, repository.Condition{"_id": saved.ID}))

	_, err = repo.FindOne(ctx, repository.Condition{"_id": saved.ID})
	require.ErrorIs(t, err, down)
	assert.NotErrorIs(t, err, domain.ErrNotFound)

	_, err = repo.Insert(ctx, &entity.User{ExternalID: "ext-9", Email: "b@restaurante.co", Name: "B", Role: entity.RoleCustomer})
	assert.ErrorIs(t, err, down)
}

func TestFindOne_NoEncontrado(t *testing.T) {
	repo, _ := newUserRepo(t)
	_, err := repo.FindOne(context.Background(), repository.Condition{"email": "nadie@restaurante.co"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestWithClock(t *testing.T) {
	fixed := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	coll := mongotest.New(mongodb.CollUsers)
	repo := mongodb.NewRepository[entity.User](coll, "User", mongodb.WithClock(func() time.Time { return fixed }))

	saved, err := repo.Insert(context.Background(), sampleUser())
	require.NoError(t, err)
	assert.True(t, fixed.Equal(saved.CreatedAt))
	assert.True(t, fixed.Equal(saved.UpdatedAt))
}
