package usecase

import (
	"context"
	"errors"

	"github.com/jhoicas/Restaurante-api/internal/application/apperr"
	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

// IngredientUseCase ingredientes y su existencia.
type IngredientUseCase struct {
	repo repository.Repository[entity.Ingredient]
}

// NewIngredientUseCase construye el caso de uso.
func NewIngredientUseCase(repo repository.Repository[entity.Ingredient]) *IngredientUseCase {
	return &IngredientUseCase{repo: repo}
}

// Create da de alta un ingrediente.
func (uc *IngredientUseCase) Create(ctx context.Context, in dto.CreateIngredientRequest) (*dto.IngredientResponse, error) {
	if in.Stock.IsNegative() {
		return nil, apperr.BadRequest("stock no puede ser negativo")
	}
	saved, err := uc.repo.Insert(ctx, &entity.Ingredient{
		Name:     normalizeName(in.Name),
		Unit:     in.Unit,
		Stock:    in.Stock,
		Allergen: in.Allergen,
	})
	if err != nil {
		return nil, apperr.FromDomain(err)
	}
	return toIngredientResponse(saved), nil
}

// List ingredientes paginados.
func (uc *IngredientUseCase) List(ctx context.Context, page dto.PageRequest) []dto.IngredientResponse {
	page.DefaultPage()
	items := uc.repo.FindAll(ctx, repository.FindOptions{Limit: int64(page.Limit), Offset: int64(page.Offset)})
	out := make([]dto.IngredientResponse, 0, len(items))
	for _, it := range items {
		out = append(out, *toIngredientResponse(it))
	}
	return out
}

// Get ingrediente por id.
func (uc *IngredientUseCase) Get(ctx context.Context, id string) (*dto.IngredientResponse, error) {
	if err := repository.CheckID("id", id); err != nil {
		return nil, err
	}
	it := uc.repo.FindOneByID(ctx, id)
	if it == nil {
		return nil, apperr.NotFound("ingrediente no encontrado")
	}
	return toIngredientResponse(it), nil
}

// UpdateStock fija la existencia de un ingrediente.
func (uc *IngredientUseCase) UpdateStock(ctx context.Context, id string, in dto.UpdateStockRequest) (*dto.IngredientResponse, error) {
	if err := repository.CheckID("id", id); err != nil {
		return nil, err
	}
	if in.Stock.IsNegative() {
		return nil, apperr.BadRequest("stock no puede ser negativo")
	}
	if !uc.repo.UpdateOneBy(ctx, repository.Condition{"_id": id}, repository.Fields{"stock": in.Stock}) {
		if uc.repo.FindOneByID(ctx, id) == nil {
			return nil, apperr.NotFound("ingrediente no encontrado")
		}
		return nil, apperr.Internal(errors.New("no se pudo actualizar el stock"))
	}
	return uc.Get(ctx, id)
}

// Delete elimina un ingrediente.
func (uc *IngredientUseCase) Delete(ctx context.Context, id string) error {
	if err := repository.CheckID("id", id); err != nil {
		return err
	}
	if !uc.repo.DeleteOneBy(ctx, repository.Condition{"_id": id}) {
		return apperr.NotFound("ingrediente no encontrado")
	}
	return nil
}

func toIngredientResponse(it *entity.Ingredient) *dto.IngredientResponse {
	return &dto.IngredientResponse{
		ID:        it.ID,
		Name:      it.Name,
		Unit:      it.Unit,
		Stock:     it.Stock,
		Allergen:  it.Allergen,
		UpdatedAt: it.UpdatedAt,
	}
}
