package recipe

import (
	"Recipe-Vault-Backend/domain"
	"Recipe-Vault-Backend/entities"
	"context"

	"gorm.io/gorm"
)

type (
	RecipeRepository interface {
		CreateRecipe(ctx context.Context, recipe *entities.Recipe, tags []domain.TagDescriptor, ingredients []domain.IngredientDescriptor) error
		UpdateRecipe(ctx context.Context, recipe *entities.Recipe, tags *[]domain.TagDescriptor, ingredients *[]domain.IngredientDescriptor) error
		SaveRecipe(ctx context.Context, recipe *entities.Recipe) error
		GetRecipeByID(ctx context.Context, id string, userID string) (*entities.Recipe, error)
		GetRecipes(ctx context.Context, userID string, query domain.RecipeListQuery) ([]*entities.Recipe, int64, error)
		DeleteRecipe(ctx context.Context, recipe *entities.Recipe) error
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

// CreateRecipe inserts the recipe and resolves its nested tag/ingredient
// lists in one transaction. On create there is nothing to preserve, so a nil
// list behaves like an empty one.
func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe, tags []domain.TagDescriptor, ingredients []domain.IngredientDescriptor) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(recipe).Error; err != nil {
			return err
		}

		resolvedTags, err := resolveTags(tx, recipe.UserID, tags)
		if err != nil {
			return err
		}
		if err := replaceTagAssociations(tx, recipe, resolvedTags); err != nil {
			return err
		}

		resolvedIngredients, err := resolveIngredients(tx, recipe.UserID, ingredients)
		if err != nil {
			return err
		}
		return replaceIngredientAssociations(tx, recipe, resolvedIngredients)
	})
}

// UpdateRecipe saves the scalar fields and reconciles associations for each
// list that is present. A nil list means the caller did not touch that kind.
func (r *recipeRepository) UpdateRecipe(ctx context.Context, recipe *entities.Recipe, tags *[]domain.TagDescriptor, ingredients *[]domain.IngredientDescriptor) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags", "Ingredients").Save(recipe).Error; err != nil {
			return err
		}

		if tags != nil {
			resolved, err := resolveTags(tx, recipe.UserID, *tags)
			if err != nil {
				return err
			}
			if err := replaceTagAssociations(tx, recipe, resolved); err != nil {
				return err
			}
		}

		if ingredients != nil {
			resolved, err := resolveIngredients(tx, recipe.UserID, *ingredients)
			if err != nil {
				return err
			}
			if err := replaceIngredientAssociations(tx, recipe, resolved); err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *recipeRepository) SaveRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Omit("Tags", "Ingredients").Save(recipe).Error
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id string, userID string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Tags").
		Preload("Ingredients").
		Where("id = ? AND user_id = ?", id, userID).
		First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) GetRecipes(ctx context.Context, userID string, query domain.RecipeListQuery) ([]*entities.Recipe, int64, error) {
	var recipes []*entities.Recipe
	var count int64
	offset := (query.Page - 1) * query.Limit

	q := r.db.WithContext(ctx).Model(&entities.Recipe{}).
		Where("recipes.user_id = ?", userID)

	if len(query.TagIDs) > 0 {
		q = q.Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Where("recipe_tags.tag_id IN ?", query.TagIDs)
	}
	if len(query.IngredientIDs) > 0 {
		q = q.Joins("JOIN recipe_ingredients ON recipe_ingredients.recipe_id = recipes.id").
			Where("recipe_ingredients.ingredient_id IN ?", query.IngredientIDs)
	}

	if err := q.Distinct("recipes.id").Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := q.Distinct("recipes.*").
		Preload("Tags").
		Preload("Ingredients").
		Offset(offset).
		Limit(query.Limit).
		Order("recipes.created_at desc").
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, count, nil
}

// DeleteRecipe removes the recipe and its association rows. The tag and
// ingredient rows themselves survive; they may be linked to other recipes.
func (r *recipeRepository) DeleteRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(recipe).Association("Tags").Clear(); err != nil {
			return err
		}
		if err := tx.Model(recipe).Association("Ingredients").Clear(); err != nil {
			return err
		}
		return tx.Delete(recipe).Error
	})
}
