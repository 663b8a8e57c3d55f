package handlers

import (
	"Recipe-Vault-Backend/domain"
	"Recipe-Vault-Backend/internal/api/presenters"
	"Recipe-Vault-Backend/pkg/ingredient"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	IngredientHandler interface {
		GetIngredients(c *fiber.Ctx) error
		UpdateIngredient(c *fiber.Ctx) error
		DeleteIngredient(c *fiber.Ctx) error
	}

	ingredientHandler struct {
		ingredientService ingredient.IngredientService
		validator         *validator.Validate
	}
)

func NewIngredientHandler(ingredientService ingredient.IngredientService, validator *validator.Validate) IngredientHandler {
	return &ingredientHandler{
		ingredientService: ingredientService,
		validator:         validator,
	}
}

func ingredientErrorStatus(err error) int {
	if errors.Is(err, domain.ErrIngredientNotFound) {
		return fiber.StatusNotFound
	}
	return fiber.StatusBadRequest
}

func (h *ingredientHandler) GetIngredients(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	assignedOnly := c.QueryBool("assigned_only", false)

	res, err := h.ingredientService.GetIngredients(c.Context(), userID, assignedOnly)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetIngredients, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetIngredients)
}

func (h *ingredientHandler) UpdateIngredient(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	ingredientID := c.Params("id")
	req := new(domain.UpdateIngredientRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateIngredient, err)
	}

	res, err := h.ingredientService.UpdateIngredient(c.Context(), ingredientID, *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, ingredientErrorStatus(err), domain.MessageFailedUpdateIngredient, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateIngredient)
}

func (h *ingredientHandler) DeleteIngredient(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	ingredientID := c.Params("id")

	if err := h.ingredientService.DeleteIngredient(c.Context(), ingredientID, userID); err != nil {
		return presenters.ErrorResponse(c, ingredientErrorStatus(err), domain.MessageFailedDeleteIngredient, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteIngredient)
}
