package recipe

import (
	"Recipe-Vault-Backend/domain"
	"Recipe-Vault-Backend/entities"
	"Recipe-Vault-Backend/internal/utils/storage"
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RecipeService interface {
		CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, userID string) (domain.RecipeResponse, error)
		GetRecipes(ctx context.Context, query domain.RecipeListQuery, userID string) ([]domain.RecipeResponse, int64, error)
		GetRecipeDetail(ctx context.Context, recipeID string, userID string) (domain.RecipeResponse, error)
		UpdateRecipe(ctx context.Context, recipeID string, req domain.UpdateRecipeRequest, userID string, partial bool) (domain.RecipeResponse, error)
		DeleteRecipe(ctx context.Context, recipeID string, userID string) error
		UploadRecipeImage(ctx context.Context, recipeID string, req domain.UploadRecipeImageRequest, userID string) (string, error)
	}

	recipeService struct {
		recipeRepository RecipeRepository
		s3               storage.AwsS3
	}
)

func NewRecipeService(recipeRepository RecipeRepository, s3 storage.AwsS3) RecipeService {
	return &recipeService{
		recipeRepository: recipeRepository,
		s3:               s3,
	}
}

func (s *recipeService) CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, userID string) (domain.RecipeResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.RecipeResponse{}, domain.ErrParseUUID
	}

	recipe := &entities.Recipe{
		ID:          uuid.New(),
		UserID:      userUUID,
		Title:       req.Title,
		Description: req.Description,
		TimeMinutes: req.TimeMinutes,
		Price:       req.Price,
		Link:        req.Link,
	}

	if err := s.recipeRepository.CreateRecipe(ctx, recipe, req.Tags, req.Ingredients); err != nil {
		return domain.RecipeResponse{}, err
	}

	created, err := s.recipeRepository.GetRecipeByID(ctx, recipe.ID.String(), userID)
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	return recipeToResponse(created), nil
}

func (s *recipeService) GetRecipes(ctx context.Context, query domain.RecipeListQuery, userID string) ([]domain.RecipeResponse, int64, error) {
	recipes, count, err := s.recipeRepository.GetRecipes(ctx, userID, query)
	if err != nil {
		return nil, 0, err
	}

	res := make([]domain.RecipeResponse, 0, len(recipes))
	for _, r := range recipes {
		res = append(res, recipeToResponse(r))
	}
	return res, count, nil
}

func (s *recipeService) GetRecipeDetail(ctx context.Context, recipeID string, userID string) (domain.RecipeResponse, error) {
	recipe, err := s.findOwned(ctx, recipeID, userID)
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	return recipeToResponse(recipe), nil
}

// UpdateRecipe applies scalar changes and reconciles the association lists.
// With partial false every mutable scalar is replaced by the request value or
// its zero value. Ownership is not a settable field, so it never changes.
func (s *recipeService) UpdateRecipe(ctx context.Context, recipeID string, req domain.UpdateRecipeRequest, userID string, partial bool) (domain.RecipeResponse, error) {
	recipe, err := s.findOwned(ctx, recipeID, userID)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	if partial {
		if req.Title != nil {
			recipe.Title = *req.Title
		}
		if req.Description != nil {
			recipe.Description = *req.Description
		}
		if req.TimeMinutes != nil {
			recipe.TimeMinutes = *req.TimeMinutes
		}
		if req.Price != nil {
			recipe.Price = *req.Price
		}
		if req.Link != nil {
			recipe.Link = *req.Link
		}
	} else {
		recipe.Title = stringValue(req.Title)
		recipe.Description = stringValue(req.Description)
		recipe.TimeMinutes = intValue(req.TimeMinutes)
		recipe.Price = floatValue(req.Price)
		recipe.Link = stringValue(req.Link)
	}

	if err := s.recipeRepository.UpdateRecipe(ctx, recipe, req.Tags, req.Ingredients); err != nil {
		return domain.RecipeResponse{}, err
	}

	updated, err := s.recipeRepository.GetRecipeByID(ctx, recipeID, userID)
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	return recipeToResponse(updated), nil
}

func (s *recipeService) DeleteRecipe(ctx context.Context, recipeID string, userID string) error {
	recipe, err := s.findOwned(ctx, recipeID, userID)
	if err != nil {
		return err
	}

	if recipe.ImageURL != "" {
		objectKey := s.s3.GetObjectKeyFromLink(recipe.ImageURL)
		if objectKey != "" {
			_ = s.s3.DeleteFile(objectKey)
		}
	}

	return s.recipeRepository.DeleteRecipe(ctx, recipe)
}

func (s *recipeService) UploadRecipeImage(ctx context.Context, recipeID string, req domain.UploadRecipeImageRequest, userID string) (string, error) {
	recipe, err := s.findOwned(ctx, recipeID, userID)
	if err != nil {
		return "", err
	}

	var objectKey string
	if recipe.ImageURL != "" {
		existingKey := s.s3.GetObjectKeyFromLink(recipe.ImageURL)
		objectKey, err = s.s3.UpdateFile(existingKey, req.Image, storage.AllowImage...)
	} else {
		objectKey, err = s.s3.UploadFile(uuid.New().String(), req.Image, "recipes", storage.AllowImage...)
	}
	if err != nil {
		return "", err
	}

	recipe.ImageURL = s.s3.GetPublicLinkKey(objectKey)
	if err := s.recipeRepository.SaveRecipe(ctx, recipe); err != nil {
		return "", err
	}
	return recipe.ImageURL, nil
}

// findOwned loads a recipe scoped to the caller. A recipe belonging to
// another user is indistinguishable from a missing one.
func (s *recipeService) findOwned(ctx context.Context, recipeID string, userID string) (*entities.Recipe, error) {
	if _, err := uuid.Parse(recipeID); err != nil {
		return nil, domain.ErrRecipeNotFound
	}

	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}
	return recipe, nil
}

func recipeToResponse(recipe *entities.Recipe) domain.RecipeResponse {
	tags := make([]domain.TagResponse, 0, len(recipe.Tags))
	for _, t := range recipe.Tags {
		tags = append(tags, domain.TagResponse{ID: t.ID.String(), Name: t.Name})
	}

	ingredients := make([]domain.IngredientResponse, 0, len(recipe.Ingredients))
	for _, i := range recipe.Ingredients {
		ingredients = append(ingredients, domain.IngredientResponse{ID: i.ID.String(), Name: i.Name})
	}

	return domain.RecipeResponse{
		ID:          recipe.ID.String(),
		Title:       recipe.Title,
		Description: recipe.Description,
		TimeMinutes: recipe.TimeMinutes,
		Price:       recipe.Price,
		Link:        recipe.Link,
		ImageURL:    recipe.ImageURL,
		Tags:        tags,
		Ingredients: ingredients,
		CreatedAt:   recipe.CreatedAt,
	}
}

func stringValue(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func intValue(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func floatValue(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
