package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Restaurante-api/internal/application/apperr"
	"github.com/jhoicas/Restaurante-api/internal/application/ports"
	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/infrastructure/mongodb"
	"github.com/jhoicas/Restaurante-api/internal/infrastructure/mongodb/mongotest"
)

// ─────────────────────────────────────────────────────────────────────────────
// Repositorios en memoria
// ─────────────────────────────────────────────────────────────────────────────

type repos struct {
	users       *mongodb.Repository[entity.User]
	ingredients *mongodb.Repository[entity.Ingredient]
	dishes      *mongodb.Repository[entity.Dish]
	cards       *mongodb.Repository[entity.Card]
	orders      *mongodb.Repository[entity.Order]
}

func newRepos() repos {
	coll := func(name string) *mongotest.Collection {
		return mongotest.New(name, mongotest.WithUnique(mongodb.UniqueFields[name]...))
	}
	return repos{
		users:       mongodb.NewRepository[entity.User](coll(mongodb.CollUsers), "User", mongodb.WithHiddenFields("externalId")),
		ingredients: mongodb.NewRepository[entity.Ingredient](coll(mongodb.CollIngredients), "Ingredient"),
		dishes:      mongodb.NewRepository[entity.Dish](coll(mongodb.CollDishes), "Dish"),
		cards:       mongodb.NewRepository[entity.Card](coll(mongodb.CollCards), "Card"),
		orders:      mongodb.NewRepository[entity.Order](coll(mongodb.CollOrders), "Order"),
	}
}

// seedUser inserta un usuario con el rol dado y devuelve su Principal.
func seedUser(t *testing.T, r repos, role entity.Role, active bool) *entity.Principal {
	t.Helper()
	n := r.users.FindAll(context.Background())
	ext := fmt.Sprintf("ext-%s-%d", role, len(n))
	u, err := r.users.Insert(context.Background(), &entity.User{
		ExternalID: ext,
		Email:      fmt.Sprintf("%s%d@restaurante.co", role, len(n)),
		Name:       string(role),
		Role:       role,
		Active:     active,
	})
	require.NoError(t, err)
	return entity.PrincipalFromUser(u, ext)
}

// ─────────────────────────────────────────────────────────────────────────────
// Proveedor de identidad falso
// ─────────────────────────────────────────────────────────────────────────────

type fakeAccounts struct {
	mu       sync.Mutex
	next     int
	accounts map[string]bool // uid -> deshabilitada
	fail     error
}

var _ ports.AccountManager = (*fakeAccounts)(nil)

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{accounts: map[string]bool{}}
}

func (f *fakeAccounts) CreateAccount(_ context.Context, _, _, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return "", f.fail
	}
	f.next++
	uid := fmt.Sprintf("uid-%d", f.next)
	f.accounts[uid] = false
	return uid, nil
}

func (f *fakeAccounts) SetAccountDisabled(_ context.Context, uid string, disabled bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return f.fail
	}
	if _, ok := f.accounts[uid]; !ok {
		return domain.ErrNotFound
	}
	f.accounts[uid] = disabled
	return nil
}

func (f *fakeAccounts) DeleteAccount(_ context.Context, uid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return f.fail
	}
	if _, ok := f.accounts[uid]; !ok {
		return domain.ErrNotFound
	}
	delete(f.accounts, uid)
	return nil
}

func (f *fakeAccounts) has(uid string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.accounts[uid]
	return ok
}

func (f *fakeAccounts) disabled(uid string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.accounts[uid]
}

// ─────────────────────────────────────────────────────────────────────────────
// Aserciones
// ─────────────────────────────────────────────────────────────────────────────

func requireStatus(t *testing.T, err error, status int) {
	t.Helper()
	var httpErr *apperr.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, status, httpErr.Status, httpErr.Error())
}

var nopLog = zerolog.Nop()
