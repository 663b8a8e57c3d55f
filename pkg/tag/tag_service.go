package tag

import (
	"Recipe-Vault-Backend/domain"
	"Recipe-Vault-Backend/entities"
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	TagService interface {
		GetTags(ctx context.Context, userID string, assignedOnly bool) ([]domain.TagResponse, error)
		UpdateTag(ctx context.Context, tagID string, req domain.UpdateTagRequest, userID string) (domain.TagResponse, error)
		DeleteTag(ctx context.Context, tagID string, userID string) error
	}

	tagService struct {
		tagRepository TagRepository
	}
)

func NewTagService(tagRepository TagRepository) TagService {
	return &tagService{tagRepository: tagRepository}
}

func (s *tagService) GetTags(ctx context.Context, userID string, assignedOnly bool) ([]domain.TagResponse, error) {
	tags, err := s.tagRepository.GetTags(ctx, userID, assignedOnly)
	if err != nil {
		return nil, err
	}

	res := make([]domain.TagResponse, 0, len(tags))
	for _, t := range tags {
		res = append(res, domain.TagResponse{ID: t.ID.String(), Name: t.Name})
	}
	return res, nil
}

func (s *tagService) UpdateTag(ctx context.Context, tagID string, req domain.UpdateTagRequest, userID string) (domain.TagResponse, error) {
	tag, err := s.findOwned(ctx, tagID, userID)
	if err != nil {
		return domain.TagResponse{}, err
	}

	tag.Name = req.Name
	if err := s.tagRepository.UpdateTag(ctx, tag); err != nil {
		return domain.TagResponse{}, err
	}
	return domain.TagResponse{ID: tag.ID.String(), Name: tag.Name}, nil
}

func (s *tagService) DeleteTag(ctx context.Context, tagID string, userID string) error {
	tag, err := s.findOwned(ctx, tagID, userID)
	if err != nil {
		return err
	}
	return s.tagRepository.DeleteTag(ctx, tag)
}

func (s *tagService) findOwned(ctx context.Context, tagID string, userID string) (*entities.Tag, error) {
	if _, err := uuid.Parse(tagID); err != nil {
		return nil, domain.ErrTagNotFound
	}

	tag, err := s.tagRepository.GetTagByID(ctx, tagID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTagNotFound
		}
		return nil, err
	}
	return tag, nil
}
