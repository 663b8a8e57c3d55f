package ingredient

import (
	"Recipe-Vault-Backend/domain"
	"Recipe-Vault-Backend/entities"
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	IngredientService interface {
		GetIngredients(ctx context.Context, userID string, assignedOnly bool) ([]domain.IngredientResponse, error)
		UpdateIngredient(ctx context.Context, ingredientID string, req domain.UpdateIngredientRequest, userID string) (domain.IngredientResponse, error)
		DeleteIngredient(ctx context.Context, ingredientID string, userID string) error
	}

	ingredientService struct {
		ingredientRepository IngredientRepository
	}
)

func NewIngredientService(ingredientRepository IngredientRepository) IngredientService {
	return &ingredientService{ingredientRepository: ingredientRepository}
}

func (s *ingredientService) GetIngredients(ctx context.Context, userID string, assignedOnly bool) ([]domain.IngredientResponse, error) {
	ingredients, err := s.ingredientRepository.GetIngredients(ctx, userID, assignedOnly)
	if err != nil {
		return nil, err
	}

	res := make([]domain.IngredientResponse, 0, len(ingredients))
	for _, i := range ingredients {
		res = append(res, domain.IngredientResponse{ID: i.ID.String(), Name: i.Name})
	}
	return res, nil
}

func (s *ingredientService) UpdateIngredient(ctx context.Context, ingredientID string, req domain.UpdateIngredientRequest, userID string) (domain.IngredientResponse, error) {
	ingredient, err := s.findOwned(ctx, ingredientID, userID)
	if err != nil {
		return domain.IngredientResponse{}, err
	}

	ingredient.Name = req.Name
	if err := s.ingredientRepository.UpdateIngredient(ctx, ingredient); err != nil {
		return domain.IngredientResponse{}, err
	}
	return domain.IngredientResponse{ID: ingredient.ID.String(), Name: ingredient.Name}, nil
}

func (s *ingredientService) DeleteIngredient(ctx context.Context, ingredientID string, userID string) error {
	ingredient, err := s.findOwned(ctx, ingredientID, userID)
	if err != nil {
		return err
	}
	return s.ingredientRepository.DeleteIngredient(ctx, ingredient)
}

func (s *ingredientService) findOwned(ctx context.Context, ingredientID string, userID string) (*entities.Ingredient, error) {
	if _, err := uuid.Parse(ingredientID); err != nil {
		return nil, domain.ErrIngredientNotFound
	}

	ingredient, err := s.ingredientRepository.GetIngredientByID(ctx, ingredientID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrIngredientNotFound
		}
		return nil, err
	}
	return ingredient, nil
}
