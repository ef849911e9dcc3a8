package usecase

import (
	"context"
	"errors"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Restaurante-api/internal/application/apperr"
	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

// populateConcurrency lecturas simultáneas al poblar los platos de una carta.
const populateConcurrency = 8

// CardUseCase cartas (menús) y sus platos.
type CardUseCase struct {
	repo   repository.Repository[entity.Card]
	dishes *DishUseCase
}

// NewCardUseCase construye el caso de uso.
func NewCardUseCase(repo repository.Repository[entity.Card], dishes *DishUseCase) *CardUseCase {
	return &CardUseCase{repo: repo, dishes: dishes}
}

// Create da de alta una carta.
func (uc *CardUseCase) Create(ctx context.Context, in dto.CreateCardRequest) (*dto.CardResponse, error) {
	card := &entity.Card{
		Name:        normalizeName(in.Name),
		Description: in.Description,
		Active:      in.Active,
		Dishes:      make([]string, 0, len(in.Dishes)),
	}
	for _, id := range in.Dishes {
		if err := repository.CheckID("dishes", id); err != nil {
			return nil, err
		}
		if !card.HasDish(id) {
			card.Dishes = append(card.Dishes, id)
		}
	}
	saved, err := uc.repo.Insert(ctx, card)
	if err != nil {
		return nil, apperr.FromDomain(err)
	}
	return toCardResponse(saved), nil
}

// List cartas; onlyActive filtra las publicadas.
func (uc *CardUseCase) List(ctx context.Context, onlyActive bool) []dto.CardResponse {
	cond := repository.Condition{}
	if onlyActive {
		cond["active"] = true
	}
	cards := uc.repo.FindManyBy(ctx, cond)
	out := make([]dto.CardResponse, 0, len(cards))
	for _, c := range cards {
		out = append(out, *toCardResponse(c))
	}
	return out
}

// Get carta con sus platos poblados (cada uno con sus ingredientes), en el orden de la carta.
// Los platos que ya no existen se omiten.
func (uc *CardUseCase) Get(ctx context.Context, id string) (*dto.CardResponse, error) {
	if err := repository.CheckID("id", id); err != nil {
		return nil, err
	}
	card := uc.repo.FindOneByID(ctx, id)
	if card == nil {
		return nil, apperr.NotFound("carta no encontrada")
	}

	populated := make([]*dto.DishResponse, len(card.Dishes))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(populateConcurrency)
	for i, dishID := range card.Dishes {
		g.Go(func() error {
			dish, err := uc.dishes.Get(gctx, dishID)
			if err != nil {
				var httpErr *apperr.HTTPError
				if errors.As(err, &httpErr) && httpErr.Status == http.StatusNotFound {
					return nil
				}
				return err
			}
			populated[i] = dish
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, apperr.FromDomain(err)
	}

	resp := toCardResponse(card)
	resp.Dishes = make([]dto.DishResponse, 0, len(populated))
	for _, d := range populated {
		if d != nil {
			resp.Dishes = append(resp.Dishes, *d)
		}
	}
	return resp, nil
}

// AddDish agrega un plato a la carta. La verificación de duplicado y la escritura no son
// atómicas: dos peticiones simultáneas pueden agregar el mismo plato dos veces.
func (uc *CardUseCase) AddDish(ctx context.Context, cardID, dishID string) (*dto.CardResponse, error) {
	card, err := uc.loadForDish(ctx, cardID, dishID)
	if err != nil {
		return nil, err
	}
	if uc.dishes.repo.FindOneByID(ctx, dishID) == nil {
		return nil, apperr.NotFound("plato no encontrado")
	}
	if card.HasDish(dishID) {
		return nil, apperr.Conflict("el plato ya está en la carta")
	}
	if !uc.repo.PushArray(ctx, repository.Condition{"_id": card.ID}, repository.Fields{"dishes": dishID}) {
		return nil, apperr.Internal(errors.New("no se pudo agregar el plato"))
	}
	card.Dishes = append(card.Dishes, dishID)
	return toCardResponse(card), nil
}

// RemoveDish retira un plato de la carta (misma ventana de carrera que AddDish).
func (uc *CardUseCase) RemoveDish(ctx context.Context, cardID, dishID string) (*dto.CardResponse, error) {
	card, err := uc.loadForDish(ctx, cardID, dishID)
	if err != nil {
		return nil, err
	}
	if !card.HasDish(dishID) {
		return nil, apperr.NotFound("el plato no está en la carta")
	}
	if !uc.repo.PullArray(ctx, repository.Condition{"_id": card.ID}, repository.Fields{"dishes": dishID}) {
		return nil, apperr.Internal(errors.New("no se pudo retirar el plato"))
	}
	kept := card.Dishes[:0]
	for _, id := range card.Dishes {
		if id != dishID {
			kept = append(kept, id)
		}
	}
	card.Dishes = kept
	return toCardResponse(card), nil
}

// Delete elimina una carta.
func (uc *CardUseCase) Delete(ctx context.Context, id string) error {
	if err := repository.CheckID("id", id); err != nil {
		return err
	}
	if !uc.repo.DeleteOneBy(ctx, repository.Condition{"_id": id}) {
		return apperr.NotFound("carta no encontrada")
	}
	return nil
}

func (uc *CardUseCase) loadForDish(ctx context.Context, cardID, dishID string) (*entity.Card, error) {
	if err := repository.CheckID("id", cardID); err != nil {
		return nil, err
	}
	if err := repository.CheckID("dishId", dishID); err != nil {
		return nil, err
	}
	card := uc.repo.FindOneByID(ctx, cardID)
	if card == nil {
		return nil, apperr.NotFound("carta no encontrada")
	}
	return card, nil
}

func toCardResponse(c *entity.Card) *dto.CardResponse {
	ids := c.Dishes
	if ids == nil {
		ids = []string{}
	}
	return &dto.CardResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Active:      c.Active,
		DishIDs:     ids,
	}
}
