package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/Restaurante-api/internal/application/apperr"
	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

// DishUseCase platos; los ingredientes se pueblan con una consulta explícita.
type DishUseCase struct {
	repo        repository.Repository[entity.Dish]
	ingredients repository.Repository[entity.Ingredient]
}

// NewDishUseCase construye el caso de uso.
func NewDishUseCase(repo repository.Repository[entity.Dish], ingredients repository.Repository[entity.Ingredient]) *DishUseCase {
	return &DishUseCase{repo: repo, ingredients: ingredients}
}

// Create da de alta un plato; todos los ingredientes referenciados deben existir.
func (uc *DishUseCase) Create(ctx context.Context, in dto.CreateDishRequest) (*dto.DishResponse, error) {
	if in.Price.IsNegative() {
		return nil, apperr.BadRequest("price no puede ser negativo")
	}
	dish := &entity.Dish{
		Name:        normalizeName(in.Name),
		Description: in.Description,
		Category:    in.Category,
		Price:       in.Price,
		Available:   in.Available == nil || *in.Available,
		Ingredients: make([]entity.DishIngredient, 0, len(in.Ingredients)),
	}
	for i, ing := range in.Ingredients {
		if err := repository.CheckID(fmt.Sprintf("ingredients.%d.ingredientId", i), ing.IngredientID); err != nil {
			return nil, err
		}
		if !ing.Quantity.IsPositive() {
			return nil, apperr.BadRequest("la cantidad de cada ingrediente debe ser positiva")
		}
		dish.Ingredients = append(dish.Ingredients, entity.DishIngredient{IngredientID: ing.IngredientID, Quantity: ing.Quantity})
	}
	ids := dish.IngredientIDs()
	if len(ids) > 0 {
		found := uc.ingredients.FindManyBy(ctx, repository.Condition{"_id": map[string]any{"$in": ids}})
		if len(found) != len(ids) {
			return nil, apperr.BadRequest("uno o más ingredientes no existen")
		}
	}

	saved, err := uc.repo.Insert(ctx, dish)
	if err != nil {
		return nil, apperr.FromDomain(err)
	}
	return uc.populate(ctx, saved), nil
}

// List platos sin poblar; available filtra por disponibilidad si no es nil.
func (uc *DishUseCase) List(ctx context.Context, available *bool, page dto.PageRequest) []dto.DishResponse {
	page.DefaultPage()
	cond := repository.Condition{}
	if available != nil {
		cond["available"] = *available
	}
	dishes := uc.repo.FindManyBy(ctx, cond, repository.FindOptions{Limit: int64(page.Limit), Offset: int64(page.Offset)})
	out := make([]dto.DishResponse, 0, len(dishes))
	for _, d := range dishes {
		out = append(out, toDishResponse(d, nil))
	}
	return out
}

// Get plato con sus ingredientes poblados.
func (uc *DishUseCase) Get(ctx context.Context, id string) (*dto.DishResponse, error) {
	if err := repository.CheckID("id", id); err != nil {
		return nil, err
	}
	dish := uc.repo.FindOneByID(ctx, id)
	if dish == nil {
		return nil, apperr.NotFound("plato no encontrado")
	}
	return uc.populate(ctx, dish), nil
}

// SetAvailability marca el plato como disponible o agotado.
func (uc *DishUseCase) SetAvailability(ctx context.Context, id string, available bool) (*dto.DishResponse, error) {
	if err := repository.CheckID("id", id); err != nil {
		return nil, err
	}
	dish := uc.repo.FindOneByID(ctx, id)
	if dish == nil {
		return nil, apperr.NotFound("plato no encontrado")
	}
	if dish.Available != available {
		if !uc.repo.UpdateOneBy(ctx, repository.Condition{"_id": id}, repository.Fields{"available": available}) {
			return nil, apperr.Internal(errors.New("no se pudo actualizar la disponibilidad"))
		}
		dish.Available = available
	}
	resp := toDishResponse(dish, nil)
	return &resp, nil
}

// Delete elimina un plato.
func (uc *DishUseCase) Delete(ctx context.Context, id string) error {
	if err := repository.CheckID("id", id); err != nil {
		return err
	}
	if !uc.repo.DeleteOneBy(ctx, repository.Condition{"_id": id}) {
		return apperr.NotFound("plato no encontrado")
	}
	return nil
}

// populate expande ingredientId en el ingrediente completo con una sola consulta $in.
func (uc *DishUseCase) populate(ctx context.Context, dish *entity.Dish) *dto.DishResponse {
	ids := dish.IngredientIDs()
	byID := make(map[string]*entity.Ingredient, len(ids))
	if len(ids) > 0 {
		for _, it := range uc.ingredients.FindManyBy(ctx, repository.Condition{"_id": map[string]any{"$in": ids}}) {
			byID[it.ID] = it
		}
	}
	resp := toDishResponse(dish, byID)
	return &resp
}

func toDishResponse(d *entity.Dish, ingredients map[string]*entity.Ingredient) dto.DishResponse {
	resp := dto.DishResponse{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Category:    d.Category,
		Price:       d.Price,
		Available:   d.Available,
		Ingredients: make([]dto.DishIngredientResponse, 0, len(d.Ingredients)),
	}
	for _, in := range d.Ingredients {
		item := dto.DishIngredientResponse{IngredientID: in.IngredientID, Quantity: in.Quantity}
		if it, ok := ingredients[in.IngredientID]; ok {
			item.Ingredient = toIngredientResponse(it)
		}
		resp.Ingredients = append(resp.Ingredients, item)
	}
	return resp
}
