package tag

import (
	"Recipe-Vault-Backend/entities"
	"context"

	"gorm.io/gorm"
)

type (
	TagRepository interface {
		GetTags(ctx context.Context, userID string, assignedOnly bool) ([]*entities.Tag, error)
		GetTagByID(ctx context.Context, id string, userID string) (*entities.Tag, error)
		UpdateTag(ctx context.Context, tag *entities.Tag) error
		DeleteTag(ctx context.Context, tag *entities.Tag) error
	}

	tagRepository struct {
		db *gorm.DB
	}
)

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

// GetTags lists the owner's tags by name. With assignedOnly set, only tags
// referenced by at least one recipe are returned, each once regardless of how
// many recipes use it.
func (r *tagRepository) GetTags(ctx context.Context, userID string, assignedOnly bool) ([]*entities.Tag, error) {
	var tags []*entities.Tag

	query := r.db.WithContext(ctx).Model(&entities.Tag{}).
		Where("tags.user_id = ?", userID)

	if assignedOnly {
		query = query.
			Joins("JOIN recipe_tags ON recipe_tags.tag_id = tags.id").
			Distinct("tags.*")
	}

	if err := query.Order("tags.name asc").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *tagRepository) GetTagByID(ctx context.Context, id string, userID string) (*entities.Tag, error) {
	var tag entities.Tag
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) UpdateTag(ctx context.Context, tag *entities.Tag) error {
	return r.db.WithContext(ctx).Save(tag).Error
}

// DeleteTag removes the tag and any join rows pointing at it; recipes that
// referenced it simply lose the association.
func (r *tagRepository) DeleteTag(ctx context.Context, tag *entities.Tag) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM recipe_tags WHERE tag_id = ?", tag.ID).Error; err != nil {
			return err
		}
		return tx.Delete(tag).Error
	})
}
