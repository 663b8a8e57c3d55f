package handlers

import (
	"Recipe-Vault-Backend/domain"
	"Recipe-Vault-Backend/internal/api/presenters"
	"Recipe-Vault-Backend/pkg/tag"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	TagHandler interface {
		GetTags(c *fiber.Ctx) error
		UpdateTag(c *fiber.Ctx) error
		DeleteTag(c *fiber.Ctx) error
	}

	tagHandler struct {
		tagService tag.TagService
		validator  *validator.Validate
	}
)

func NewTagHandler(tagService tag.TagService, validator *validator.Validate) TagHandler {
	return &tagHandler{
		tagService: tagService,
		validator:  validator,
	}
}

func tagErrorStatus(err error) int {
	if errors.Is(err, domain.ErrTagNotFound) {
		return fiber.StatusNotFound
	}
	return fiber.StatusBadRequest
}

func (h *tagHandler) GetTags(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	assignedOnly := c.QueryBool("assigned_only", false)

	res, err := h.tagService.GetTags(c.Context(), userID, assignedOnly)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetTags, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetTags)
}

func (h *tagHandler) UpdateTag(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	tagID := c.Params("id")
	req := new(domain.UpdateTagRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateTag, err)
	}

	res, err := h.tagService.UpdateTag(c.Context(), tagID, *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, tagErrorStatus(err), domain.MessageFailedUpdateTag, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateTag)
}

func (h *tagHandler) DeleteTag(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	tagID := c.Params("id")

	if err := h.tagService.DeleteTag(c.Context(), tagID, userID); err != nil {
		return presenters.ErrorResponse(c, tagErrorStatus(err), domain.MessageFailedDeleteTag, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteTag)
}
