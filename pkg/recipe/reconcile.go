package recipe

import (
	"Recipe-Vault-Backend/domain"
	"Recipe-Vault-Backend/entities"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// resolveTags maps descriptors to tag rows owned by userID, creating any that
// do not exist yet. Duplicate names within one call collapse to a single row.
// Must run inside the same transaction as the association write so a failed
// request leaves no visible change.
func resolveTags(tx *gorm.DB, userID uuid.UUID, descriptors []domain.TagDescriptor) ([]*entities.Tag, error) {
	resolved := make([]*entities.Tag, 0, len(descriptors))
	seen := make(map[string]*entities.Tag, len(descriptors))

	for _, d := range descriptors {
		if _, ok := seen[d.Name]; ok {
			continue
		}

		var tag entities.Tag
		err := tx.Where("user_id = ? AND name = ?", userID, d.Name).First(&tag).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			tag = entities.Tag{
				ID:     uuid.New(),
				UserID: userID,
				Name:   d.Name,
			}
			if err := tx.Create(&tag).Error; err != nil {
				return nil, err
			}
		} else if err != nil {
			return nil, err
		}

		seen[d.Name] = &tag
		resolved = append(resolved, &tag)
	}

	return resolved, nil
}

func resolveIngredients(tx *gorm.DB, userID uuid.UUID, descriptors []domain.IngredientDescriptor) ([]*entities.Ingredient, error) {
	resolved := make([]*entities.Ingredient, 0, len(descriptors))
	seen := make(map[string]*entities.Ingredient, len(descriptors))

	for _, d := range descriptors {
		if _, ok := seen[d.Name]; ok {
			continue
		}

		var ingredient entities.Ingredient
		err := tx.Where("user_id = ? AND name = ?", userID, d.Name).First(&ingredient).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ingredient = entities.Ingredient{
				ID:     uuid.New(),
				UserID: userID,
				Name:   d.Name,
			}
			if err := tx.Create(&ingredient).Error; err != nil {
				return nil, err
			}
		} else if err != nil {
			return nil, err
		}

		seen[d.Name] = &ingredient
		resolved = append(resolved, &ingredient)
	}

	return resolved, nil
}

// replaceTagAssociations makes the recipe's tag set exactly the resolved set.
// Previously associated tags that drop out are de-associated, never deleted.
func replaceTagAssociations(tx *gorm.DB, recipe *entities.Recipe, tags []*entities.Tag) error {
	assoc := tx.Model(recipe).Association("Tags")
	if len(tags) == 0 {
		return assoc.Clear()
	}
	return assoc.Replace(tags)
}

func replaceIngredientAssociations(tx *gorm.DB, recipe *entities.Recipe, ingredients []*entities.Ingredient) error {
	assoc := tx.Model(recipe).Association("Ingredients")
	if len(ingredients) == 0 {
		return assoc.Clear()
	}
	return assoc.Replace(ingredients)
}
