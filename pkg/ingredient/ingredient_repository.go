package ingredient

import (
	"Recipe-Vault-Backend/entities"
	"context"

	"gorm.io/gorm"
)

type (
	IngredientRepository interface {
		GetIngredients(ctx context.Context, userID string, assignedOnly bool) ([]*entities.Ingredient, error)
		GetIngredientByID(ctx context.Context, id string, userID string) (*entities.Ingredient, error)
		UpdateIngredient(ctx context.Context, ingredient *entities.Ingredient) error
		DeleteIngredient(ctx context.Context, ingredient *entities.Ingredient) error
	}

	ingredientRepository struct {
		db *gorm.DB
	}
)

func NewIngredientRepository(db *gorm.DB) IngredientRepository {
	return &ingredientRepository{db: db}
}

func (r *ingredientRepository) GetIngredients(ctx context.Context, userID string, assignedOnly bool) ([]*entities.Ingredient, error) {
	var ingredients []*entities.Ingredient

	query := r.db.WithContext(ctx).Model(&entities.Ingredient{}).
		Where("ingredients.user_id = ?", userID)

	if assignedOnly {
		query = query.
			Joins("JOIN recipe_ingredients ON recipe_ingredients.ingredient_id = ingredients.id").
			Distinct("ingredients.*")
	}

	if err := query.Order("ingredients.name asc").Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (r *ingredientRepository) GetIngredientByID(ctx context.Context, id string, userID string) (*entities.Ingredient, error) {
	var ingredient entities.Ingredient
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&ingredient).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

func (r *ingredientRepository) UpdateIngredient(ctx context.Context, ingredient *entities.Ingredient) error {
	return r.db.WithContext(ctx).Save(ingredient).Error
}

func (r *ingredientRepository) DeleteIngredient(ctx context.Context, ingredient *entities.Ingredient) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM recipe_ingredients WHERE ingredient_id = ?", ingredient.ID).Error; err != nil {
			return err
		}
		return tx.Delete(ingredient).Error
	})
}
